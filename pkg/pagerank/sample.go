package pagerank

import (
	"context"
	"math/rand"
	"time"

	"github.com/vertex-lab/webrank/pkg/models"
)

// Sample() estimates the pagerank of every node by simulating a single random
// walk of n steps, starting from a node chosen uniformly at random. Each step
// draws the next node from the Transition distribution of the current one.
func Sample(ctx context.Context, DB models.Database, damping float64, n int) (models.RankMap, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return SampleWithSource(ctx, DB, damping, n, rng)
}

// SampleWithSource() is like Sample(), but draws randomness from the specified
// source, for reproducibility in tests.
func SampleWithSource(ctx context.Context, DB models.Database, damping float64,
	n int, rng *rand.Rand) (models.RankMap, error) {

	if err := checkDamping(damping); err != nil {
		return nil, err
	}

	if n <= 0 {
		return nil, models.ErrInvalidSampleCount
	}

	s, err := NewSnapshot(ctx, DB)
	if err != nil {
		return nil, err
	}

	return sample(s, damping, n, rng), nil
}

// sample() implements the random walk over the snapshot. Only the first n-1
// positions of the walk are tallied; the visit counts are then normalized by n,
// so the returned ranks sum to (n-1)/n rather than exactly 1. The bias vanishes
// as n grows.
func sample(s *Snapshot, damping float64, n int, rng *rand.Rand) models.RankMap {
	visits := make([]float64, s.Size())
	current := rng.Intn(s.Size())

	for i := 1; i < n; i++ {
		visits[current]++

		dist := transition(s, current, damping)
		current = pick(dist, rng)
	}

	for pos := range visits {
		visits[pos] /= float64(n)
	}

	return s.rankMap(visits)
}

// pick() draws a position from the probability distribution dist.
func pick(dist []float64, rng *rand.Rand) int {
	r := rng.Float64()

	cumulative := 0.0
	for pos, p := range dist {
		cumulative += p
		if r < cumulative {
			return pos
		}
	}

	// only reachable when rounding makes the cumulative sum fall short of 1
	return len(dist) - 1
}
