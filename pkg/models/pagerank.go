package models

import "math"

// RankMap associates each nodeID with its pagerank value.
type RankMap map[uint32]float64

// Distance() computes the L1 distance between two rank maps, which are supposed
// to have the same keys. If map1 is nil or empty, it returns 0.0.
func Distance(map1, map2 RankMap) float64 {
	distance := 0.0
	for key := range map1 {
		distance += math.Abs(map1[key] - map2[key])
	}
	return distance
}

// TotalRank() returns the sum of all ranks in the map.
func TotalRank(ranks RankMap) float64 {
	total := 0.0
	for _, rank := range ranks {
		total += rank
	}
	return total
}
