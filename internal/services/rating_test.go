package services

import "testing"

func TestSummarizeRatingsEmpty(t *testing.T) {
	summary := SummarizeRatings(nil)
	if summary.Average != 0 || summary.Count != 0 {
		t.Fatalf("expected {0, 0} for empty ratings, got %+v", summary)
	}

	summary = SummarizeRatings([]int{})
	if summary.Average != 0 || summary.Count != 0 {
		t.Fatalf("expected {0, 0} for empty slice, got %+v", summary)
	}
}

func TestSummarizeRatings(t *testing.T) {
	summary := SummarizeRatings([]int{5, 5, 4, 3})
	if summary.Average != 4.25 {
		t.Errorf("expected average 4.25, got %v", summary.Average)
	}
	if summary.Count != 4 {
		t.Errorf("expected count 4, got %d", summary.Count)
	}
}

func TestSummarizeRatingsSingle(t *testing.T) {
	summary := SummarizeRatings([]int{4})
	if summary.Average != 4 || summary.Count != 1 {
		t.Fatalf("expected {4, 1}, got %+v", summary)
	}
}
