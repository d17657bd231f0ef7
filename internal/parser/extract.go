package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	maxSkills     = 20
	maxEducation  = 10
	maxExperience = 15
)

// Info is the structured information extracted from a resume.
type Info struct {
	Skills          []string `json:"skills"`
	Education       []string `json:"education"`
	Experience      []string `json:"experience"`
	Contact         Contact  `json:"contact"`
	YearsExperience *int     `json:"years_of_experience,omitempty"`
}

// Contact holds contact details found in a resume. Empty fields mean the
// detail was not found.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

var resumeSkillPatterns = []*regexp.Regexp{
	// Programming languages
	regexp.MustCompile(`(?i)\b(?:python|java|javascript|c\+\+|c#|php|ruby|go|rust|swift|kotlin|scala|matlab)\b`),
	// Web technologies
	regexp.MustCompile(`(?i)\b(?:html|css|react|angular|vue|node\.?js|express|django|flask|spring|laravel)\b`),
	// Databases
	regexp.MustCompile(`(?i)\b(?:mysql|postgresql|mongodb|redis|elasticsearch|oracle|sql\s*server|sqlite)\b`),
	// Cloud and DevOps
	regexp.MustCompile(`(?i)\b(?:aws|azure|gcp|docker|kubernetes|jenkins|git|github|gitlab|terraform)\b`),
	// Data science
	regexp.MustCompile(`(?i)\b(?:pandas|numpy|scikit-learn|tensorflow|pytorch|keras|spark|hadoop|tableau|power\s*bi)\b`),
	// Other tooling
	regexp.MustCompile(`(?i)\b(?:linux|windows|macos|agile|scrum|jira|confluence|slack|microsoft\s*office)\b`),
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "diploma", "certificate",
	"b.tech", "b.e", "m.tech", "m.e", "mba", "mca", "bca", "b.sc", "m.sc",
	"engineering", "computer science", "information technology", "software",
	"university", "college", "institute", "school",
}

var experienceKeywords = []string{
	"experience", "worked", "developed", "managed", "led", "created", "designed",
	"implemented", "built", "maintained", "optimized", "collaborated", "achieved",
	"years", "months", "intern", "internship", "trainee", "junior", "senior",
	"lead", "manager", "developer", "engineer", "analyst", "consultant",
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)b\.?tech|bachelor of technology`),
	regexp.MustCompile(`(?i)m\.?tech|master of technology`),
	regexp.MustCompile(`(?i)mba|master of business administration`),
	regexp.MustCompile(`(?i)mca|master of computer applications`),
	regexp.MustCompile(`(?i)bca|bachelor of computer applications`),
	regexp.MustCompile(`(?i)b\.?sc|bachelor of science`),
	regexp.MustCompile(`(?i)m\.?sc|master of science`),
	regexp.MustCompile(`(?i)phd|doctorate`),
}

var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:software|web|mobile|data|ml|ai)\s+(?:engineer|developer|analyst|scientist)`),
	regexp.MustCompile(`(?i)(?:senior|junior|lead|principal)\s+(?:engineer|developer|analyst)`),
	regexp.MustCompile(`(?i)(?:project|product|technical)\s+(?:manager|lead)`),
	regexp.MustCompile(`(?i)(?:full\s*stack|front\s*end|back\s*end)\s+developer`),
	regexp.MustCompile(`(?i)(?:data|business|system)\s+analyst`),
}

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)

	yearsExperienceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`(?i)experience\s+(?:of\s+)?(\d+)\s*\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\s*\+?\s*yrs?\s+(?:of\s+)?(?:exp|experience)`),
		regexp.MustCompile(`(?i)(?:exp|experience)\s+(?:of\s+)?(\d+)\s*\+?\s*yrs?`),
	}
)

// Extract pulls structured information out of resume text.
func Extract(text string) Info {
	lower := strings.ToLower(text)
	return Info{
		Skills:          extractSkills(lower),
		Education:       extractEducation(lower),
		Experience:      extractExperience(lower),
		Contact:         extractContact(text),
		YearsExperience: extractYearsExperience(lower),
	}
}

func extractSkills(text string) []string {
	seen := make(map[string]struct{})
	for _, pattern := range resumeSkillPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			skill := strings.ToLower(strings.TrimSpace(match))
			if keepSkill(skill) {
				seen[skill] = struct{}{}
			}
		}
	}

	skills := make([]string, 0, len(seen))
	for skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return capped(skills, maxSkills)
}

func keepSkill(skill string) bool {
	if strings.ContainsAny(skill, ".+#") {
		return true
	}
	return len(skill) > 1
}

func extractEducation(text string) []string {
	var found []string
	found = append(found, sentencesContaining(text, educationKeywords, 0)...)
	for _, pattern := range degreePatterns {
		found = append(found, pattern.FindAllString(text, -1)...)
	}
	return capped(dedupe(found), maxEducation)
}

func extractExperience(text string) []string {
	var found []string
	found = append(found, sentencesContaining(text, experienceKeywords, 10)...)
	for _, pattern := range jobTitlePatterns {
		found = append(found, pattern.FindAllString(text, -1)...)
	}
	return capped(dedupe(found), maxExperience)
}

// sentencesContaining returns the sentences (split on ".") that contain any
// of the keywords and are longer than minLen, in document order.
func sentencesContaining(text string, keywords []string, minLen int) []string {
	var out []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minLen {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(sentence, kw) {
				out = append(out, sentence)
				break
			}
		}
	}
	return out
}

func extractContact(text string) Contact {
	var c Contact
	if m := emailRe.FindString(text); m != "" {
		c.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		c.Phone = strings.TrimSpace(m)
	}
	if m := linkedinRe.FindString(text); m != "" {
		c.LinkedIn = strings.ToLower(m)
	}
	if m := githubRe.FindString(text); m != "" {
		c.GitHub = strings.ToLower(m)
	}
	return c
}

func extractYearsExperience(text string) *int {
	for _, re := range yearsExperienceRes {
		if m := re.FindStringSubmatch(text); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				return &years
			}
		}
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func capped(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}
