package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var matchSkillsCmd = &cobra.Command{
	Use:   "match-skills",
	Short: "Match a candidate's declared skills against required skills",
	Long: `Produces one skill match per required skill, in the order given. Required skills
come from --required or from the technical skills of a --job file. Declared skills are
read from a JSON object keyed by skill name.`,
	RunE: runMatchSkills,
}

var (
	matchRequired string
	matchJob      string
	matchSkills   string
	matchOutput   string
)

// skillMatchOutput is the document written by match-skills
type skillMatchOutput struct {
	Matches  []types.SkillMatch `json:"matches"`
	Coverage skills.Coverage    `json:"coverage"`
}

func init() {
	matchSkillsCmd.Flags().StringVar(&matchRequired, "required", "", "Comma-separated required skills")
	matchSkillsCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to a JobDescription JSON file whose technical skills are required")
	matchSkillsCmd.Flags().StringVar(&matchSkills, "skills", "", "Path to a JSON object of declared skills, or - for stdin (required)")
	matchSkillsCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output JSON file (default: stdout)")

	if err := matchSkillsCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}
	matchSkillsCmd.MarkFlagsMutuallyExclusive("required", "job")
	matchSkillsCmd.MarkFlagsOneRequired("required", "job")

	rootCmd.AddCommand(matchSkillsCmd)
}

func runMatchSkills(cmd *cobra.Command, _ []string) error {
	required := splitList(matchRequired)
	if matchJob != "" {
		var job types.JobDescription
		if err := readJSON(matchJob, &job); err != nil {
			return err
		}
		required = job.Skills.Technical
	}

	declared := map[string]types.DeclaredSkill{}
	if err := readJSON(matchSkills, &declared); err != nil {
		return err
	}

	matches, err := skills.ComputeSkillMatches(required, declared)
	if err != nil {
		return fmt.Errorf("failed to match skills: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), matchOutput, skillMatchOutput{
		Matches:  matches,
		Coverage: skills.Summarize(matches),
	}, "")
}
