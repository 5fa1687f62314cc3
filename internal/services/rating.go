package services

// RatingSummary is the aggregate of a provider's raw review ratings. It is
// recomputed per request, never persisted.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SummarizeRatings reduces raw ratings to their arithmetic mean and count.
// The empty list summarizes to an average of exactly 0, so callers can sort
// and filter without special-casing providers that have no reviews yet.
func SummarizeRatings(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	return RatingSummary{
		Average: float64(sum) / float64(len(ratings)),
		Count:   len(ratings),
	}
}
