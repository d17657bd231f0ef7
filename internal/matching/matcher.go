package matching

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/smarthire/internal/scoring"
)

// Embedder produces a vector embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Matcher scores resumes against a job description.
type Matcher struct {
	embedder Embedder
}

// New creates a Matcher backed by the given embedder.
func New(embedder Embedder) *Matcher {
	return &Matcher{embedder: embedder}
}

// Result is the outcome of matching one resume against a job description.
type Result struct {
	Breakdown     scoring.Breakdown
	FinalScore    float64
	MatchedSkills []string
	MissingSkills []string
}

// Match computes all four sub-scores and the weighted final score for a
// resume against a job description.
func (m *Matcher) Match(ctx context.Context, jobText, resumeText string) (*Result, error) {
	overall, err := m.overallSimilarity(ctx, jobText, resumeText)
	if err != nil {
		return nil, fmt.Errorf("overall similarity: %w", err)
	}

	skills, matched, missing := skillsSimilarity(jobText, resumeText)

	breakdown := scoring.Breakdown{
		Overall:    overall,
		Skills:     skills,
		Experience: experienceSimilarity(jobText, resumeText),
		Education:  educationSimilarity(jobText, resumeText),
	}

	return &Result{
		Breakdown:     breakdown,
		FinalScore:    scoring.FinalScore(breakdown),
		MatchedSkills: matched,
		MissingSkills: missing,
	}, nil
}

// overallSimilarity embeds both preprocessed texts and returns their cosine
// similarity clamped to [0,1].
func (m *Matcher) overallSimilarity(ctx context.Context, jobText, resumeText string) (float64, error) {
	jobVec, err := m.embedder.Embed(ctx, Preprocess(jobText))
	if err != nil {
		return 0, fmt.Errorf("embed job description: %w", err)
	}
	resumeVec, err := m.embedder.Embed(ctx, Preprocess(resumeText))
	if err != nil {
		return 0, fmt.Errorf("embed resume: %w", err)
	}
	return scoring.Clamp01(Cosine(jobVec, resumeVec)), nil
}

// skillsSimilarity is the Jaccard similarity of the skill sets extracted
// from the two texts, with the matched and missing job skills alongside.
// A job description naming no skills scores 0.
func skillsSimilarity(jobText, resumeText string) (float64, []string, []string) {
	jobSkills := ExtractSkills(jobText)
	resumeSkills := ExtractSkills(resumeText)

	if len(jobSkills) == 0 {
		return 0, nil, nil
	}

	var matched, missing []string
	intersection := 0
	for skill := range jobSkills {
		if _, ok := resumeSkills[skill]; ok {
			intersection++
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	union := len(jobSkills) + len(resumeSkills) - intersection
	if union == 0 {
		return 0, matched, missing
	}
	return float64(intersection) / float64(union), matched, missing
}

// experienceSimilarity is the fraction of the job's experience keywords that
// also appear in the resume. A job naming no experience keywords scores 0.
func experienceSimilarity(jobText, resumeText string) float64 {
	jobKeywords := extractKeywords(jobText, experienceKeywords)
	if len(jobKeywords) == 0 {
		return 0
	}
	resumeKeywords := extractKeywords(resumeText, experienceKeywords)
	return float64(countIntersection(jobKeywords, resumeKeywords)) / float64(len(jobKeywords))
}

// educationSimilarity is the fraction of the job's education keywords that
// also appear in the resume. A job naming no education requirements gets a
// neutral 0.5 so it neither rewards nor penalizes candidates.
func educationSimilarity(jobText, resumeText string) float64 {
	jobKeywords := extractKeywords(jobText, educationKeywords)
	if len(jobKeywords) == 0 {
		return 0.5
	}
	resumeKeywords := extractKeywords(resumeText, educationKeywords)
	return float64(countIntersection(jobKeywords, resumeKeywords)) / float64(len(jobKeywords))
}

// ExtractSkills returns the set of technical skills found in the text, from
// both the known keyword list and the skill regex patterns.
func ExtractSkills(text string) map[string]struct{} {
	lower := strings.ToLower(text)
	skills := make(map[string]struct{})

	for _, skill := range skillKeywords {
		if strings.Contains(lower, skill) {
			skills[skill] = struct{}{}
		}
	}
	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(lower, -1) {
			skills[strings.ToLower(match)] = struct{}{}
		}
	}
	return skills
}

func extractKeywords(text string, keywords []string) map[string]struct{} {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found[kw] = struct{}{}
		}
	}
	return found
}

func countIntersection(a, b map[string]struct{}) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// JobAnalysis summarizes what a job description asks for.
type JobAnalysis struct {
	WordCount     int      `json:"word_count"`
	Skills        []string `json:"skills"`
	Experience    []string `json:"experience"`
	Education     []string `json:"education"`
	RequiredYears *int     `json:"required_experience_years,omitempty"`
}

// AnalyzeJob extracts skills, experience and education keywords from a job
// description, along with the required years of experience when stated.
func AnalyzeJob(text string) JobAnalysis {
	analysis := JobAnalysis{
		WordCount:  len(strings.Fields(text)),
		Skills:     sortedKeys(ExtractSkills(text)),
		Experience: sortedKeys(extractKeywords(text, experienceKeywords)),
		Education:  sortedKeys(extractKeywords(text, educationKeywords)),
	}

	if m := requiredYearsRe.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			analysis.RequiredYears = &years
		}
	}
	return analysis
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
