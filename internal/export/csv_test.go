package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/smarthire/internal/db"
	"github.com/jonathan/smarthire/internal/screening"
)

func TestWriteCSV(t *testing.T) {
	analyses := []db.ResumeAnalysis{
		{
			Filename:        "alice.pdf",
			OverallScore:    0.8,
			SkillsScore:     0.9,
			ExperienceScore: 0.6,
			EducationScore:  0.5,
			FinalScore:      0.76,
			MatchedSkills:   db.StringArray{"go", "postgresql"},
			Status:          db.AnalysisStatusScored,
		},
		{
			Filename:   "bob.pdf",
			FinalScore: 0.42,
			Status:     db.AnalysisStatusScored,
		},
		{
			Filename: "corrupt.pdf",
			Status:   db.AnalysisStatusFailed,
		},
	}
	report := screening.BuildReport(analyses, 0.5)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, report))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header plus the two scored candidates; the failed one is excluded.
	require.Len(t, records, 3)
	assert.Equal(t, "Rank", records[0][0])
	assert.Equal(t, "Top Skills", records[0][8])
	assert.Equal(t, []string{"1", "alice.pdf", "0.7600", "0.8000", "0.9000", "0.6000", "0.5000", "Good Match", "go; postgresql"}, records[1])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "bob.pdf", records[2][1])
	assert.Equal(t, "Fair Match", records[2][7])
}

func TestWriteCSV_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, screening.BuildReport(nil, 0.5)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
