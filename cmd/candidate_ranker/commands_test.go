package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/server"
	"github.com/jonathan/candidate-ranker/internal/types"
)

func TestRequiredFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"rank without job", []string{"rank", "--candidates", "c.json"}, `"job"`},
		{"rank without candidates", []string{"rank", "--job", "j.json"}, `"candidates"`},
		{"score without location", []string{"score", "--experience", "1", "--skills", "1", "--education", "1"}, `"location"`},
		{"match-skills without skills", []string{"match-skills", "--required", "Go"}, `"skills"`},
		{"match-skills without required list", []string{"match-skills", "--skills", "s.json"}, "at least one of the flags"},
		{"batch without out", []string{"batch", "--dataset", "d.json"}, `"out"`},
		{"token without client", []string{"token"}, `"client"`},
		{"requisitions delete without id", []string{"requisitions", "delete"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score",
		"--experience", "80", "--skills", "60", "--education", "100", "--location", "40",
		"--weights", equalWeights)
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 70, got.OverallScore)
	assert.Equal(t, "fair", string(got.Tier))
}

func TestScoreCommand_DefaultWeights(t *testing.T) {
	out, err := execute(t, "score",
		"--experience", "100", "--skills", "100", "--education", "100", "--location", "100")
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 100, got.OverallScore)
}

func TestScoreCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"weights do not sum to one", []string{"--weights", "0.5,0.5,0.5,0.5"}},
		{"too few weights", []string{"--weights", "0.5,0.5"}},
		{"weight not a number", []string{"--weights", "a,b,c,d"}},
		{"score above range", []string{"--location", "120"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"score",
				"--experience", "80", "--skills", "60", "--education", "100", "--location", "40"}, tt.args...)
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestMatchSkillsCommand(t *testing.T) {
	dir := t.TempDir()
	skillsPath := writeFile(t, dir, "skills.json", map[string]types.DeclaredSkill{
		"react": {Years: types.Years(4), Proficiency: types.ProficiencyExpert},
	})

	out, err := execute(t, "match-skills", "--required", "React, Go", "--skills", skillsPath)
	require.NoError(t, err)

	var got skillMatchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "React", got.Matches[0].Skill)
	assert.True(t, got.Matches[0].HasSkill)
	assert.Equal(t, types.ProficiencyExpert, got.Matches[0].ProficiencyLevel)
	assert.Equal(t, "Go", got.Matches[1].Skill)
	assert.False(t, got.Matches[1].HasSkill)
	assert.Nil(t, got.Matches[1].ExperienceYears)
	assert.Equal(t, 1, got.Coverage.Matched)
	assert.Equal(t, 2, got.Coverage.Total)
}

func TestMatchSkillsCommand_FromJob(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", testJob())
	skillsPath := writeFile(t, dir, "skills.json", map[string]types.DeclaredSkill{"TypeScript": {}})

	out, err := execute(t, "match-skills", "--job", jobPath, "--skills", skillsPath)
	require.NoError(t, err)

	var got skillMatchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Matches, 2)
	assert.False(t, got.Matches[0].HasSkill)
	assert.True(t, got.Matches[1].HasSkill)
}

func TestRankCommand(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", testJob())
	candidatesPath := writeFile(t, dir, "candidates.json", types.CandidateSet{Candidates: testCandidates()})

	out, err := execute(t, "rank", "-j", jobPath, "-c", candidatesPath, "--weights", equalWeights)
	require.NoError(t, err)

	var result types.RankingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, types.SortByOverall, result.SortKey)
	assert.Equal(t, "Senior Frontend Developer", result.JobTitle)
	require.Len(t, result.Entries, 3)

	var names []string
	var scores []int
	for _, e := range result.Entries {
		names = append(names, e.Candidate.Name)
		scores = append(scores, e.Candidate.OverallScore)
	}
	assert.Equal(t, []string{"Alice Chen", "Bob Martinez", "Carol White"}, names)
	assert.Equal(t, []int{90, 70, 50}, scores)
	assert.Equal(t, 1, result.Entries[0].Rank)
}

func TestRankCommand_SortByName(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", testJob())
	candidatesPath := writeFile(t, dir, "candidates.json", types.CandidateSet{Candidates: testCandidates()})
	outPath := filepath.Join(dir, "out", "ranking.json")

	out, err := execute(t, "rank", "-j", jobPath, "-c", candidatesPath, "-s", "name", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully ranked 3 candidates")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result types.RankingResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, types.SortByName, result.SortKey)
	assert.Equal(t, "Alice Chen", result.Entries[0].Candidate.Name)
	assert.Equal(t, "Carol White", result.Entries[2].Candidate.Name)
}

func TestRankCommand_Print(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", testJob())
	candidatesPath := writeFile(t, dir, "candidates.json", types.CandidateSet{Candidates: testCandidates()})

	out, err := execute(t, "rank", "-j", jobPath, "-c", candidatesPath, "--weights", equalWeights, "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "TechCorp")
	assert.Contains(t, out, "#1  Alice Chen  90%")
}

func TestRankCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", testJob())
	candidatesPath := writeFile(t, dir, "candidates.json", types.CandidateSet{Candidates: testCandidates()})

	dup := testCandidates()
	dup[2].ID = dup[0].ID
	dupPath := writeFile(t, dir, "dup.json", types.CandidateSet{Candidates: dup})

	tests := []struct {
		name string
		args []string
	}{
		{"missing job file", []string{"-j", filepath.Join(dir, "nope.json"), "-c", candidatesPath}},
		{"unknown sort key", []string{"-j", jobPath, "-c", candidatesPath, "-s", "salary"}},
		{"duplicate candidate ids", []string{"-j", jobPath, "-c", dupPath}},
		{"invalid weights", []string{"-j", jobPath, "-c", candidatesPath, "--weights", "1,1,0,0"}},
		{"save without database", []string{"-j", jobPath, "-c", candidatesPath, "--save"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "save without database" {
				t.Setenv("DATABASE_URL", "")
			}
			_, err := execute(t, append([]string{"rank"}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestRankCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", testJob())
	candidatesPath := writeFile(t, dir, "candidates.json", types.CandidateSet{Candidates: testCandidates()})
	configPath := writeFile(t, dir, "config.json", map[string]any{"sort_key": "name"})

	out, err := execute(t, "--config", configPath, "rank", "-j", jobPath, "-c", candidatesPath)
	require.NoError(t, err)

	var result types.RankingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, types.SortByName, result.SortKey)

	// flags win over the file
	out, err = execute(t, "--config", configPath, "rank", "-j", jobPath, "-c", candidatesPath, "-s", "overall")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, types.SortByOverall, result.SortKey)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	first, second := uuid.New(), uuid.New()
	datasetPath := writeFile(t, dir, "dataset.json", types.Dataset{Requisitions: []types.Requisition{
		{ID: first.String(), Job: testJob(), Candidates: testCandidates()},
		{ID: second.String(), Job: types.JobDescription{Title: "Backend Engineer", Company: "Acme"}, Candidates: []types.Candidate{}},
	}})
	outDir := filepath.Join(dir, "rankings")

	out, err := execute(t, "batch", "--dataset", datasetPath, "-o", outDir, "--concurrency", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully ranked 2 requisitions")

	data, err := os.ReadFile(filepath.Join(outDir, first.String()+".ranking.json"))
	require.NoError(t, err)
	var result types.RankingResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, first.String(), result.RequisitionID)
	assert.Len(t, result.Entries, 3)

	data, err = os.ReadFile(filepath.Join(outDir, second.String()+".ranking.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Empty(t, result.Entries)
}

func TestBatchCommand_SelectedRequisitions(t *testing.T) {
	dir := t.TempDir()
	first, second := uuid.New(), uuid.New()
	datasetPath := writeFile(t, dir, "dataset.json", types.Dataset{Requisitions: []types.Requisition{
		{ID: first.String(), Job: testJob(), Candidates: testCandidates()},
		{ID: second.String(), Job: testJob(), Candidates: testCandidates()},
	}})
	outDir := filepath.Join(dir, "rankings")

	_, err := execute(t, "batch", "--dataset", datasetPath, "-o", outDir, "--requisitions", second.String())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, second.String()+".ranking.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, first.String()+".ranking.json"))
	assert.True(t, os.IsNotExist(err))

	_, err = execute(t, "batch", "--dataset", datasetPath, "-o", outDir, "--requisitions", uuid.NewString())
	assert.Error(t, err, "unknown requisition")

	_, err = execute(t, "batch", "--dataset", datasetPath, "-o", outDir, "--requisitions", "not-a-uuid")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-with-enough-length")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	out, err := execute(t, "token", "--client", "dashboard", "--scope", "rank")
	require.NoError(t, err)

	cfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	claims, err := server.NewJWTService(cfg).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
	assert.Equal(t, "rank", claims.Scope)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := execute(t, "token", "--client", "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestServerConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/ranker")
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	require.NoError(t, serveCmd.Flags().Set("port", "9090"))

	cfg, err := serverConfig(serveCmd, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/ranker", cfg.DatabaseURL)
	assert.Nil(t, cfg.JWT)
	assert.NotNil(t, cfg.RateLimit)

	t.Setenv("JWT_SECRET", "test-secret-with-enough-length")
	cfg, err = serverConfig(serveCmd, config.Default())
	require.NoError(t, err)
	require.NotNil(t, cfg.JWT)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)

	t.Setenv("JWT_SECRET", "short")
	_, err = serverConfig(serveCmd, config.Default())
	assert.Error(t, err)
}

func TestParseWeights(t *testing.T) {
	w, err := parseWeights(" 0.4, 0.3 ,0.2,0.1")
	require.NoError(t, err)
	assert.Equal(t, types.Weights{ExperienceWeight: 0.4, SkillsWeight: 0.3, EducationWeight: 0.2, LocationWeight: 0.1}, w)

	_, err = parseWeights("0.4,0.3,0.3")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"React", "Node.js"}, splitList(" React, ,Node.js,"))
	assert.Nil(t, splitList(""))
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")

	url, err := databaseURL("postgres://flag")
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag", url)

	url, err = databaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", url)

	t.Setenv("DATABASE_URL", "")
	_, err = databaseURL("")
	assert.Error(t, err)
}
