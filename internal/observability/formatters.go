// Package observability provides console summaries, display formatting and metrics for ranking runs.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out       io.Writer
	topSkills int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, topSkills: skills.DefaultTopSkills}
}

// WithTopSkills sets how many skill matches a candidate card lists before
// collapsing the rest into "+N more". Non-positive n lists them all.
func (p *Printer) WithTopSkills(n int) *Printer {
	p.topSkills = n
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets followed by an "... and N more" line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintJobDescription outputs a human-readable summary of a requisition.
func (p *Printer) PrintJobDescription(job *types.JobDescription) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:      %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company:    %s\n", job.Company))
	if job.Location != "" || job.WorkType != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s (%s)\n", job.Location, job.WorkType))
	}
	if job.SalaryRange != nil {
		sb.WriteString(fmt.Sprintf("Salary:     %s\n", FormatSalary(*job.SalaryRange)))
	}
	sb.WriteString(fmt.Sprintf("Experience: %s\n", FormatExperienceRange(job.ExperienceRequired)))
	if job.EducationLevel != "" {
		sb.WriteString(fmt.Sprintf("Education:  %s\n", job.EducationLevel))
	}
	sb.WriteString("\n")

	writeList(&sb, "Technical Skills", job.Skills.Technical, maxItemsToShow)
	writeList(&sb, "Soft Skills", job.Skills.Soft, 3)
	writeList(&sb, "Certifications", job.Skills.Certifications, 3)

	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the top candidates of a ranking run with their scores.
func (p *Printer) PrintRanking(result *types.RankingResult) {
	if result == nil || len(result.Entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (sorted by %s)\n", result.JobTitle, result.SortKey))
	sb.WriteString(fmt.Sprintf("Candidates ranked: %d\n\n", len(result.Entries)))

	count := min(len(result.Entries), maxItemsToShow)
	for i, e := range result.Entries[:count] {
		c := e.Candidate
		sb.WriteString(fmt.Sprintf("#%d  %s  %d%% (%s)\n", e.Rank, c.Name, c.OverallScore, ScoreTier(c.OverallScore)))
		sb.WriteString(fmt.Sprintf("    Exp %.0f  Skills %.0f  Edu %.0f  Loc %.0f\n",
			c.ExperienceScore, c.SkillsScore, c.EducationScore, c.LocationScore))
		if matched := skills.MatchedNames(c.SkillMatches); len(matched) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(matched, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(result.Entries)-maxItemsToShow))
	}

	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidateDetail outputs the full card of a single candidate.
func (p *Printer) PrintCandidateDetail(c *types.Candidate) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s  %d%% match (%s)\n", c.Name, c.OverallScore, ScoreTier(c.OverallScore)))
	if c.CurrentTitle != "" {
		sb.WriteString(fmt.Sprintf("%s\n", c.CurrentTitle))
	}
	if c.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:     %s\n", c.Location))
	}
	if c.Experience.Company != "" {
		sb.WriteString(fmt.Sprintf("Experience:   %g years, %s at %s\n", c.Experience.YearsTotal, c.Experience.Title, c.Experience.Company))
	}
	if c.Education.Degree != "" {
		sb.WriteString(fmt.Sprintf("Education:    %s, %s\n", c.Education.Degree, c.Education.Field))
	}
	sb.WriteString(fmt.Sprintf("Salary:       %s\n", FormatExpectedSalary(c.ExpectedSalary)))
	if c.Availability != "" {
		sb.WriteString(fmt.Sprintf("Availability: %s\n", c.Availability))
	}
	sb.WriteString("\n")

	shown, hidden := skills.Top(c.SkillMatches, p.topSkills)
	if len(shown) > 0 {
		sb.WriteString("Skills:\n")
		for _, m := range shown {
			mark := "✗"
			if m.HasSkill {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s", mark, m.Skill))
			if m.ProficiencyLevel != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", m.ProficiencyLevel))
			}
			sb.WriteString("\n")
		}
		if hidden > 0 {
			sb.WriteString(fmt.Sprintf("  +%d more\n", hidden))
		}
	}

	p.printBox("CANDIDATE", strings.TrimSuffix(sb.String(), "\n"))
}
