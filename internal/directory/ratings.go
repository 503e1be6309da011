package directory

import (
	"math"

	"carefinder/internal/models"
)

// RatingSummary is the derived per-location review aggregate.
type RatingSummary struct {
	LocationID    uint    `json:"location_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// round1 rounds half-up to one decimal place.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// Aggregate reduces a flat review list to per-location summaries. The mean
// is rounded half-up to one decimal. Locations with zero reviews have no
// entry (absence, not zero). An empty input yields an empty map.
func Aggregate(reviews []models.Review) map[uint]RatingSummary {
	sums := make(map[uint]int)
	counts := make(map[uint]int)
	for i := range reviews {
		sums[reviews[i].LocationID] += reviews[i].Rating
		counts[reviews[i].LocationID]++
	}
	out := make(map[uint]RatingSummary, len(counts))
	for id, n := range counts {
		out[id] = RatingSummary{
			LocationID:    id,
			AverageRating: round1(float64(sums[id]) / float64(n)),
			ReviewCount:   n,
		}
	}
	return out
}
