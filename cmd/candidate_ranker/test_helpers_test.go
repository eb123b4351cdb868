package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// resetFlags restores every flag of the command tree to its default so
// commands can be executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI in-process and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// writeFile marshals v into dir/name and returns the path.
func writeFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func testJob() types.JobDescription {
	return types.JobDescription{
		Title:   "Senior Frontend Developer",
		Company: "TechCorp",
		Skills:  types.SkillRequirements{Technical: []string{"React", "TypeScript"}},
	}
}

// testCandidates carries sub-scores that give overall 90, 70 and 50 under equal weights.
func testCandidates() []types.Candidate {
	return []types.Candidate{
		{ID: 2, Name: "Bob Martinez", ExperienceScore: 80, SkillsScore: 60, EducationScore: 100, LocationScore: 40},
		{ID: 1, Name: "Alice Chen", ExperienceScore: 90, SkillsScore: 90, EducationScore: 90, LocationScore: 90},
		{ID: 3, Name: "Carol White", ExperienceScore: 50, SkillsScore: 50, EducationScore: 50, LocationScore: 50},
	}
}

const equalWeights = "0.25,0.25,0.25,0.25"
