package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Senior Software Engineer with 7+ years of experience.
Skills: Python, Go, Docker, Kubernetes, PostgreSQL, React.
Led a team that developed and maintained data pipelines on AWS.
Bachelor of Science in Computer Science, State University.
Contact: jane.doe@example.com | 555-123-4567
linkedin.com/in/jane-doe | github.com/janedoe`

func TestExtract_Skills(t *testing.T) {
	info := Extract(sampleResume)

	assert.Contains(t, info.Skills, "python")
	assert.Contains(t, info.Skills, "go")
	assert.Contains(t, info.Skills, "docker")
	assert.Contains(t, info.Skills, "kubernetes")
	assert.Contains(t, info.Skills, "postgresql")
	assert.Contains(t, info.Skills, "react")
	assert.LessOrEqual(t, len(info.Skills), 20)
	assert.IsIncreasing(t, info.Skills)
}

func TestExtract_Education(t *testing.T) {
	info := Extract(sampleResume)

	require.NotEmpty(t, info.Education)
	joined := ""
	for _, e := range info.Education {
		joined += e + " | "
	}
	assert.Contains(t, joined, "computer science")
	assert.LessOrEqual(t, len(info.Education), 10)
}

func TestExtract_Experience(t *testing.T) {
	info := Extract(sampleResume)

	require.NotEmpty(t, info.Experience)
	assert.Contains(t, info.Experience, "software engineer")
	assert.LessOrEqual(t, len(info.Experience), 15)
}

func TestExtract_Contact(t *testing.T) {
	info := Extract(sampleResume)

	assert.Equal(t, "jane.doe@example.com", info.Contact.Email)
	assert.Equal(t, "555-123-4567", info.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/jane-doe", info.Contact.LinkedIn)
	assert.Equal(t, "github.com/janedoe", info.Contact.GitHub)
}

func TestExtract_YearsExperience(t *testing.T) {
	info := Extract(sampleResume)

	require.NotNil(t, info.YearsExperience)
	assert.Equal(t, 7, *info.YearsExperience)
}

func TestExtract_YearsExperienceVariants(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"years of experience", "10 years of experience", 10},
		{"experience of years", "experience of 3 years", 3},
		{"yrs exp", "5 yrs exp in backend", 5},
		{"plus years", "8+ years experience", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(tt.text)
			require.NotNil(t, info.YearsExperience)
			assert.Equal(t, tt.expected, *info.YearsExperience)
		})
	}
}

func TestExtract_Empty(t *testing.T) {
	info := Extract("")

	assert.Empty(t, info.Skills)
	assert.Empty(t, info.Education)
	assert.Empty(t, info.Experience)
	assert.Equal(t, Contact{}, info.Contact)
	assert.Nil(t, info.YearsExperience)
}
