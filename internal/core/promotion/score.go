package promotion

import (
	"time"

	"timelineforum/internal/core/post"
)

// Scoring configuration. The decay-weighted formula is the canonical one;
// an older additive formula (upvotes + comment/source/content bonuses) was
// retired together with its 50.0 threshold and is intentionally not blended
// in here.
const (
	// Threshold is the promotion cutoff checked by the sweep.
	Threshold = 5.0

	// VoteWeight and SourceWeight form the base score.
	VoteWeight   = 0.7
	SourceWeight = 0.3

	// Posts older than GraceDays lose DecayPerDay of the score per day,
	// floored at MinTimeFactor.
	GraceDays     = 7
	DecayPerDay   = 0.1
	MinTimeFactor = 0.1
)

// Score computes the promotion score of a post at the given instant. Pure:
// the caller decides whether to persist the result.
func Score(p *post.Post, now time.Time) float64 {
	base := float64(p.PromotionVotes)*VoteWeight + float64(p.SourceCount)*SourceWeight
	return base * TimeFactor(p.CreatedAt, now)
}

// TimeFactor returns the age multiplier: 1.0 during the grace window, then a
// linear decay floored at MinTimeFactor.
func TimeFactor(createdAt, now time.Time) float64 {
	daysOld := int(now.Sub(createdAt).Hours() / 24)
	if daysOld <= GraceDays {
		return 1.0
	}
	factor := 1.0 - DecayPerDay*float64(daysOld-GraceDays)
	if factor < MinTimeFactor {
		return MinTimeFactor
	}
	return factor
}

// Eligible reports whether a score clears the promotion threshold.
func Eligible(score float64) bool {
	return score >= Threshold
}
