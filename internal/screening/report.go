package screening

import (
	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/scoring"
)

// RankedResult is one candidate's position in a session report.
type RankedResult struct {
	Rank           int               `json:"rank"`
	Analysis       db.ResumeAnalysis `json:"analysis"`
	Category       string            `json:"category"`
	AboveThreshold bool              `json:"above_threshold"`
}

// Report is the full outcome of a screening session: the ranking plus
// aggregate statistics over the scored candidates.
type Report struct {
	Ranked     []RankedResult      `json:"ranked"`
	Unscored   []db.ResumeAnalysis `json:"unscored,omitempty"`
	Scores     scoring.Summary     `json:"scores"`
	Categories map[string]int      `json:"categories"`
}

// BuildReport turns a session's analyses into a ranked report. Scored
// analyses are ordered by final score descending with deterministic
// tie-breaks regardless of input order. Failed analyses are listed
// separately and excluded from ranks and statistics.
func BuildReport(analyses []db.ResumeAnalysis, threshold float64) *Report {
	report := &Report{
		Categories: make(map[string]int),
	}

	byCandidate := make(map[scoring.Ranked]db.ResumeAnalysis)
	var candidates []scoring.Ranked
	var finals []float64
	for _, a := range analyses {
		if a.Status != db.AnalysisStatusScored {
			report.Unscored = append(report.Unscored, a)
			continue
		}
		c := scoring.Ranked{
			ID:       a.ID.String(),
			Filename: a.Filename,
			Score:    a.FinalScore,
		}
		byCandidate[c] = a
		candidates = append(candidates, c)
		finals = append(finals, a.FinalScore)
	}

	for i, c := range scoring.Rank(candidates) {
		a := byCandidate[c]
		category := scoring.Category(a.FinalScore)
		report.Categories[category]++
		report.Ranked = append(report.Ranked, RankedResult{
			Rank:           i + 1,
			Analysis:       a,
			Category:       category,
			AboveThreshold: a.FinalScore >= threshold,
		})
	}

	report.Scores = scoring.Summarize(finals)
	return report
}
