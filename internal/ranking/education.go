package ranking

import (
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// degreeRank maps degree types to numeric ranks for comparison
var degreeRank = map[string]int{
	"associate": 1,
	"bachelor":  2,
	"master":    3,
	"phd":       4,
}

// degreeAliases maps words found in degree names to a degreeRank key.
// Checked in order, most specific first.
var degreeAliases = []struct {
	word   string
	degree string
}{
	{"phd", "phd"},
	{"ph.d", "phd"},
	{"doctor", "phd"},
	{"master", "master"},
	{"m.sc", "master"},
	{"mba", "master"},
	{"bachelor", "bachelor"},
	{"b.sc", "bachelor"},
	{"b.s.", "bachelor"},
	{"associate", "associate"},
}

// relatedFields lists fields that partially satisfy a preferred field
var relatedFields = map[string][]string{
	"computer science":       {"software engineering", "computer engineering", "information technology", "cs"},
	"software engineering":   {"computer science", "computer engineering", "cs"},
	"data science":           {"statistics", "mathematics", "computer science", "machine learning"},
	"statistics":             {"mathematics", "data science", "economics"},
	"mathematics":            {"statistics", "physics", "computer science"},
	"electrical engineering": {"computer engineering", "electronics"},
}

// Education scoring weights
const (
	degreeWeight = 0.6
	fieldWeight  = 0.4
)

// educationRequirement is what a free-text education level asks for
type educationRequirement struct {
	MinDegree string
	Field     string
}

// parseEducationLevel extracts the minimum degree and preferred field from text
// such as "Bachelor's degree in Computer Science or related field".
func parseEducationLevel(level string) educationRequirement {
	lower := strings.ToLower(level)
	req := educationRequirement{MinDegree: detectDegree(lower)}

	if idx := strings.Index(lower, " in "); idx >= 0 {
		field := lower[idx+len(" in "):]
		for _, stop := range []string{" or ", ",", ";", "("} {
			if cut := strings.Index(field, stop); cut >= 0 {
				field = field[:cut]
			}
		}
		req.Field = strings.TrimSpace(field)
	}

	return req
}

// detectDegree returns the degreeRank key named in text, or "".
func detectDegree(lower string) string {
	for _, alias := range degreeAliases {
		if strings.Contains(lower, alias.word) {
			return alias.degree
		}
	}
	return ""
}

// computeEducationScore scores a candidate's education against a free-text
// requirement. Degree level carries degreeWeight and field fieldWeight; parts the
// requirement does not mention are left out of the normalization.
// Meeting the degree earns full degree credit, one level below earns half.
func computeEducationScore(edu types.CandidateEducation, level string) float64 {
	req := parseEducationLevel(level)

	score := 0.0
	weights := 0.0

	if req.MinDegree != "" {
		weights += degreeWeight
		reqRank := degreeRank[req.MinDegree]
		eduRank := degreeRank[detectDegree(strings.ToLower(edu.Degree))]

		if eduRank >= reqRank {
			score += degreeWeight
		} else if eduRank == reqRank-1 {
			score += degreeWeight / 2
		}
	}

	if req.Field != "" {
		weights += fieldWeight
		score += fieldWeight * computeFieldMatchScore(edu.Field, []string{req.Field})
	}

	if weights == 0 {
		return 100 // No requirements = full score
	}

	return 100 * score / weights
}

// computeFieldMatchScore computes how well the education field matches preferred fields
func computeFieldMatchScore(field string, preferredFields []string) float64 {
	fieldLower := strings.ToLower(strings.TrimSpace(field))
	if fieldLower == "" {
		return 0
	}

	for _, preferred := range preferredFields {
		preferredLower := strings.ToLower(preferred)
		if fieldLower == preferredLower || strings.Contains(fieldLower, preferredLower) || strings.Contains(preferredLower, fieldLower) {
			return 1.0
		}
	}

	for _, preferred := range preferredFields {
		if related, ok := relatedFields[strings.ToLower(preferred)]; ok {
			for _, r := range related {
				if strings.Contains(fieldLower, r) || strings.Contains(r, fieldLower) {
					return 0.7 // Related field
				}
			}
		}
	}

	return 0.2 // Unrelated field
}
