package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Combine four sub-scores into an overall score",
	RunE:  runScore,
}

var (
	scoreExperience float64
	scoreSkills     float64
	scoreEducation  float64
	scoreLocation   float64
	scoreWeights    string
)

// scoreOutput is the document written by score
type scoreOutput struct {
	OverallScore int                `json:"overall_score"`
	Tier         observability.Tier `json:"tier"`
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreExperience, "experience", 0, "Experience sub-score (0-100)")
	scoreCmd.Flags().Float64Var(&scoreSkills, "skills", 0, "Skills sub-score (0-100)")
	scoreCmd.Flags().Float64Var(&scoreEducation, "education", 0, "Education sub-score (0-100)")
	scoreCmd.Flags().Float64Var(&scoreLocation, "location", 0, "Location sub-score (0-100)")
	scoreCmd.Flags().StringVar(&scoreWeights, "weights", "", "Weights as experience,skills,education,location (default from config)")

	for _, name := range []string{"experience", "skills", "education", "location"} {
		if err := scoreCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	weights := *cfg.Weights
	if cmd.Flags().Changed("weights") {
		weights, err = parseWeights(scoreWeights)
		if err != nil {
			return err
		}
	}

	score, err := ranking.ComputeOverallScore(types.SubScores{
		Experience: scoreExperience,
		Skills:     scoreSkills,
		Education:  scoreEducation,
		Location:   scoreLocation,
	}, weights)
	if err != nil {
		return fmt.Errorf("failed to compute overall score: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), "", scoreOutput{
		OverallScore: score,
		Tier:         observability.ScoreTier(score),
	}, "")
}
