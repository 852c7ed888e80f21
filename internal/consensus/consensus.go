// Package consensus derives the displayed attributes of a toilet from its
// initial submission and every review. Nothing here is persisted; callers
// recompute on each read.
package consensus

import (
	"sort"

	"toiletfinder/internal/model"
)

// Result bundles the derived attributes of one toilet.
type Result struct {
	Accessible     bool
	HasToiletPaper bool
	Cleanliness    int
	ReviewCount    int
}

// Compute applies every consensus rule to t and its reviews.
func Compute(t model.Toilet, reviews []model.Review) Result {
	return Result{
		Accessible:     Accessibility(t, reviews),
		HasToiletPaper: ToiletPaper(t, reviews),
		Cleanliness:    MedianCleanliness(t, reviews),
		ReviewCount:    len(reviews),
	}
}

// MedianCleanliness returns the median of the toilet's rating and all review
// ratings. Even-sized sets average the two middle values, truncated.
func MedianCleanliness(t model.Toilet, reviews []model.Review) int {
	ratings := make([]int, 0, len(reviews)+1)
	ratings = append(ratings, t.Cleanliness)
	for _, r := range reviews {
		ratings = append(ratings, r.Cleanliness)
	}
	sort.Ints(ratings)

	mid := len(ratings) / 2
	if len(ratings)%2 == 1 {
		return ratings[mid]
	}
	return int(float64(ratings[mid-1]+ratings[mid]) / 2)
}

// Accessibility reports whether at least half of all votes say accessible.
func Accessibility(t model.Toilet, reviews []model.Review) bool {
	yes := boolCount(t.Accessible)
	for _, r := range reviews {
		yes += boolCount(r.Accessible)
	}
	return majority(yes, len(reviews))
}

// ToiletPaper reports whether at least half of all votes say paper is available.
func ToiletPaper(t model.Toilet, reviews []model.Review) bool {
	yes := boolCount(t.HasToiletPaper)
	for _, r := range reviews {
		yes += boolCount(r.HasToiletPaper)
	}
	return majority(yes, len(reviews))
}

// majority applies yes >= (n+1)/2 where n is the review count; ties count as yes.
func majority(yes, n int) bool {
	return float64(yes) >= float64(n+1)/2
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
