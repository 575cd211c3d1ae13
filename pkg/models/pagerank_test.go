package models

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	testCases := []struct {
		name             string
		map1             RankMap
		map2             RankMap
		expectedDistance float64
	}{
		{
			name:             "nil maps",
			map1:             nil,
			map2:             nil,
			expectedDistance: 0.0,
		},
		{
			name:             "equal maps",
			map1:             RankMap{0: 0.5, 1: 0.5},
			map2:             RankMap{0: 0.5, 1: 0.5},
			expectedDistance: 0.0,
		},
		{
			name:             "different maps",
			map1:             RankMap{0: 0.6, 1: 0.4},
			map2:             RankMap{0: 0.4, 1: 0.6},
			expectedDistance: 0.4,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			distance := Distance(test.map1, test.map2)
			if math.Abs(distance-test.expectedDistance) > 1e-9 {
				t.Errorf("Distance(): expected %v, got %v", test.expectedDistance, distance)
			}
		})
	}
}

func TestTotalRank(t *testing.T) {
	ranks := RankMap{0: 0.2, 1: 0.3, 2: 0.5}
	if total := TotalRank(ranks); math.Abs(total-1.0) > 1e-9 {
		t.Errorf("TotalRank(): expected 1.0, got %v", total)
	}

	if total := TotalRank(nil); total != 0.0 {
		t.Errorf("TotalRank(): expected 0.0, got %v", total)
	}
}
