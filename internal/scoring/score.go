// Package scoring combines per-candidate similarity sub-scores into a final
// score and produces a deterministic ranking.
package scoring

// Weights for the final score. They sum to 1.0, so a candidate with perfect
// sub-scores gets exactly 1.0.
const (
	OverallWeight    = 0.40
	SkillsWeight     = 0.30
	ExperienceWeight = 0.20
	EducationWeight  = 0.10
)

// Breakdown holds the four similarity sub-scores for one candidate.
type Breakdown struct {
	Overall    float64 `json:"overall"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

// Clamp01 clamps a value to the [0,1] range. Sub-scores outside the range
// are clamped before weighting rather than rejected.
func Clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// Clamped returns a copy of the breakdown with every sub-score in [0,1].
func (b Breakdown) Clamped() Breakdown {
	return Breakdown{
		Overall:    Clamp01(b.Overall),
		Skills:     Clamp01(b.Skills),
		Experience: Clamp01(b.Experience),
		Education:  Clamp01(b.Education),
	}
}

// FinalScore computes the weighted final score from a breakdown.
// Each sub-score is clamped to [0,1] first, so the result is always in [0,1].
func FinalScore(b Breakdown) float64 {
	c := b.Clamped()
	score := OverallWeight*c.Overall +
		SkillsWeight*c.Skills +
		ExperienceWeight*c.Experience +
		EducationWeight*c.Education
	return Clamp01(score)
}

// Category buckets a final score for display, matching the thresholds used
// in reports: Excellent >= 0.8, Good >= 0.6, Fair >= 0.4, else Poor.
func Category(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent Match"
	case score >= 0.6:
		return "Good Match"
	case score >= 0.4:
		return "Fair Match"
	default:
		return "Poor Match"
	}
}
