package pagerank

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vertex-lab/webrank/pkg/database/memdb"
	"github.com/vertex-lab/webrank/pkg/models"
)

func TestSampleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		DBType        string
		damping       float64
		samples       int
		expectedError error
	}{
		{
			name:          "nil DB",
			DBType:        "nil",
			damping:       0.85,
			samples:       100,
			expectedError: models.ErrNilDB,
		},
		{
			name:          "empty DB",
			DBType:        "empty",
			damping:       0.85,
			samples:       100,
			expectedError: models.ErrEmptyDB,
		},
		{
			name:          "invalid damping factor",
			DBType:        "pair",
			damping:       1.5,
			samples:       100,
			expectedError: models.ErrInvalidDamping,
		},
		{
			name:          "zero samples",
			DBType:        "pair",
			damping:       0.85,
			samples:       0,
			expectedError: models.ErrInvalidSampleCount,
		},
		{
			name:          "negative samples",
			DBType:        "pair",
			damping:       0.85,
			samples:       -10,
			expectedError: models.ErrInvalidSampleCount,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			DB := memdb.SetupDB(test.DBType)
			rng := rand.New(rand.NewSource(42))

			ranks, err := SampleWithSource(context.Background(), DB, test.damping, test.samples, rng)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Sample(): expected %v, got %v", test.expectedError, err)
			}

			if ranks != nil {
				t.Errorf("Sample(): expected nil ranks on failure, got %v", ranks)
			}
		})
	}
}

// only the first n-1 positions of the walk are tallied, so the ranks sum to (n-1)/n.
func TestSampleTotalRank(t *testing.T) {
	const samples = 10000

	ctx := context.Background()
	DB := memdb.SetupDB("triangle")
	rng := rand.New(rand.NewSource(42))

	ranks, err := SampleWithSource(ctx, DB, 0.85, samples, rng)
	if err != nil {
		t.Fatalf("Sample(): expected nil, got %v", err)
	}

	expectedTotal := float64(samples-1) / float64(samples)
	if total := models.TotalRank(ranks); math.Abs(total-expectedTotal) > 1e-9 {
		t.Errorf("Sample(): expected total %v, got %v", expectedTotal, total)
	}
}

func TestSampleSingleNode(t *testing.T) {
	const samples = 10000

	ctx := context.Background()
	DB := memdb.SetupDB("one-node0")
	rng := rand.New(rand.NewSource(42))

	ranks, err := SampleWithSource(ctx, DB, 0.85, samples, rng)
	if err != nil {
		t.Fatalf("Sample(): expected nil, got %v", err)
	}

	// the only node receives all the mass, minus the untallied last visit
	if math.Abs(ranks[0]-1.0) > 0.01 {
		t.Errorf("Sample(): expected rank 1.0, got %v", ranks[0])
	}
}

func TestSamplePair(t *testing.T) {
	const samples = 10000
	const maxDiff = 0.05

	ctx := context.Background()
	DB := memdb.SetupDB("pair")

	// the graph is symmetric, so each node gets 0.5 regardless of the damping factor
	for _, damping := range []float64{0.2, 0.5, 0.85} {
		rng := rand.New(rand.NewSource(42))

		ranks, err := SampleWithSource(ctx, DB, damping, samples, rng)
		if err != nil {
			t.Fatalf("Sample(): expected nil, got %v", err)
		}

		for nodeID, rank := range ranks {
			if math.Abs(rank-0.5) > maxDiff {
				t.Errorf("Sample(d=%v): expected rank 0.5 for node %d, got %v", damping, nodeID, rank)
			}
		}
	}
}

// two independent runs get closer to each other as the number of samples grows.
func TestSampleConsistency(t *testing.T) {
	ctx := context.Background()
	DB := memdb.SetupDB("triangle")

	// average L1 distance between pairs of independent runs with n samples each
	meanDistance := func(samples int) float64 {
		total := 0.0
		for seed := int64(0); seed < 5; seed++ {
			rng1 := rand.New(rand.NewSource(seed))
			rng2 := rand.New(rand.NewSource(seed + 1000))

			ranks1, err := SampleWithSource(ctx, DB, 0.85, samples, rng1)
			if err != nil {
				t.Fatalf("Sample(): expected nil, got %v", err)
			}

			ranks2, err := SampleWithSource(ctx, DB, 0.85, samples, rng2)
			if err != nil {
				t.Fatalf("Sample(): expected nil, got %v", err)
			}

			total += models.Distance(ranks1, ranks2)
		}

		return total / 5
	}

	smallRun := meanDistance(100)
	bigRun := meanDistance(100000)

	if bigRun >= smallRun {
		t.Errorf("Sample(): expected the distance to shrink with n, got %v (n=100) and %v (n=100000)",
			smallRun, bigRun)
	}
}
