package ranking

import (
	"testing"

	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNotes(t *testing.T) {
	has := func(name string) types.SkillMatch { return types.SkillMatch{Skill: name, HasSkill: true} }
	missing := func(name string) types.SkillMatch { return types.SkillMatch{Skill: name} }

	tests := []struct {
		name string
		c    types.Candidate
		want string
	}{
		{
			name: "strong match",
			c: types.Candidate{
				ExperienceScore: 95,
				LocationScore:   100,
				SkillMatches:    []types.SkillMatch{has("React"), has("Node.js"), has("AWS"), missing("Docker")},
			},
			want: "Strong skill match (React, Node.js, AWS). Experience on target. Location fit",
		},
		{
			name: "long match list is capped",
			c: types.Candidate{
				ExperienceScore: 75,
				SkillMatches:    []types.SkillMatch{has("React"), has("Node.js"), has("AWS"), has("Docker"), has("Go")},
			},
			want: "Strong skill match (React, Node.js, AWS, +2 more). Experience close to range",
		},
		{
			name: "moderate match",
			c: types.Candidate{
				ExperienceScore: 50,
				SkillMatches:    []types.SkillMatch{has("React"), missing("AWS")},
			},
			want: "Moderate skill match (React). Experience gap",
		},
		{
			name: "weak match",
			c: types.Candidate{
				ExperienceScore: 90,
				SkillMatches:    []types.SkillMatch{has("React"), missing("AWS"), missing("Go")},
			},
			want: "Weak skill match (React). Experience on target",
		},
		{
			name: "nothing matched",
			c: types.Candidate{
				SkillMatches: []types.SkillMatch{missing("AWS")},
			},
			want: "No required skills matched. Experience gap",
		},
		{
			name: "no skill data",
			c:    types.Candidate{ExperienceScore: 100, LocationScore: 90},
			want: "Experience on target. Location fit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Notes(&tt.c))
		})
	}
}

func TestNotes_DoesNotTouchMatches(t *testing.T) {
	c := types.Candidate{SkillMatches: []types.SkillMatch{
		{Skill: "A", HasSkill: true}, {Skill: "B", HasSkill: true},
		{Skill: "C", HasSkill: true}, {Skill: "D", HasSkill: true},
	}}

	Notes(&c)
	assert.Equal(t, "D", c.SkillMatches[3].Skill)
}
