package matching

import "regexp"

// Keyword lists used by the keyword-based sub-scores. Matching is substring
// based over lowercased text, so multi-word entries work as written.
var (
	skillKeywords = []string{
		"python", "java", "javascript", "react", "angular", "vue", "node.js",
		"django", "flask", "spring", "mysql", "postgresql", "mongodb",
		"aws", "azure", "docker", "kubernetes", "git", "machine learning",
		"data science", "artificial intelligence", "deep learning",
	}

	experienceKeywords = []string{
		"experience", "years", "worked", "developed", "managed", "led",
		"created", "designed", "implemented", "built", "maintained",
	}

	educationKeywords = []string{
		"degree", "bachelor", "master", "phd", "university", "college",
		"engineering", "computer science", "information technology",
	}
)

// skillPatterns catch technologies the keyword list misses, including
// punctuated names like c++ and c#.
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:python|java|javascript|c\+\+|c#|php|ruby|go|rust|swift|kotlin)\b`),
	regexp.MustCompile(`(?i)\b(?:react|angular|vue|node\.?js|django|flask|spring|laravel)\b`),
	regexp.MustCompile(`(?i)\b(?:mysql|postgresql|mongodb|redis|elasticsearch|oracle)\b`),
	regexp.MustCompile(`(?i)\b(?:aws|azure|gcp|docker|kubernetes|jenkins|git|github)\b`),
}

var requiredYearsRe = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\s+(?:of\s+)?experience`)
