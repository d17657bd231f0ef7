// Package export renders screening results for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/smarthire/internal/screening"
)

var csvHeader = []string{
	"Rank", "Filename", "Final Score", "Overall", "Skills",
	"Experience", "Education", "Category", "Top Skills",
}

// WriteCSV writes a session report as CSV. Only ranked candidates are
// included; one row per candidate in rank order.
func WriteCSV(w io.Writer, report *screening.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range report.Ranked {
		a := r.Analysis
		record := []string{
			fmt.Sprintf("%d", r.Rank),
			a.Filename,
			formatScore(a.FinalScore),
			formatScore(a.OverallScore),
			formatScore(a.SkillsScore),
			formatScore(a.ExperienceScore),
			formatScore(a.EducationScore),
			r.Category,
			strings.Join(a.MatchedSkills, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", a.Filename, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatScore renders a score with four decimal places.
func formatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}
