package pagerank

import (
	"context"
	"math"

	"github.com/vertex-lab/webrank/pkg/models"
)

// SolverOptions configures the iterative solver.
type SolverOptions struct {

	// the damping factor. Default is 0.85
	Damping float64

	// a sweep converges when every node moved by less than Threshold. Default is 0.001
	Threshold float64

	// the maximum number of sweeps before giving up. Default is 100000
	MaxSweeps int

	// when true, the rank mass of dead ends is redistributed uniformly at each
	// sweep. The default (false) matches the behaviour of the sampler's restart
	// rule only approximately: dead-end mass is simply not propagated, which
	// can leave the total rank below 1 when dead ends exist.
	RedistributeDeadEnds bool
}

// NewSolverOptions() returns a SolverOptions with the default parameters.
func NewSolverOptions() *SolverOptions {
	return &SolverOptions{
		Damping:   0.85,
		Threshold: 0.001,
		MaxSweeps: 100000,
	}
}

// validate() returns the appropriate error if any of the options is out of range.
func (o *SolverOptions) validate() error {
	if err := checkDamping(o.Damping); err != nil {
		return err
	}

	if o.Threshold <= 0 {
		return models.ErrInvalidThreshold
	}

	if o.MaxSweeps <= 0 {
		return models.ErrInvalidMaxSweeps
	}

	return nil
}

/*
Iterate() computes the pagerank of every node as the fixed point of

	rank(p) = (1-d)/N + d * sum_{q : p in succ(q)} rank(q) / |succ(q)|

starting from the uniform distribution 1/N. Each sweep recomputes every rank
from the previous sweep's values (synchronous update), and the relaxation stops
once every node moved by less than opts.Threshold.

The backward sum only ranges over nodes with at least one out-link, so the mass
sitting on dead ends is not propagated; only the sampler redistributes it, via
its uniform-restart rule. Set opts.RedistributeDeadEnds to spread that mass
uniformly at each sweep instead, which brings the two estimators closer on
graphs with dead ends.

If convergence isn't reached within opts.MaxSweeps, Iterate returns the ranks
computed so far together with ErrMaxSweepsReached; callers may accept them as a
best-effort result.
*/
func Iterate(ctx context.Context, DB models.Database, opts *SolverOptions) (models.RankMap, error) {
	if opts == nil {
		opts = NewSolverOptions()
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	s, err := NewSnapshot(ctx, DB)
	if err != nil {
		return nil, err
	}

	N := s.Size()
	nf := float64(N)

	// reverse adjacency: pred[p] lists the positions that link to p. By
	// construction every q in pred[p] has a non-empty out-set.
	pred := make([][]int, N)
	for q, succ := range s.Succ {
		for _, p := range succ {
			pred[p] = append(pred[p], q)
		}
	}

	rank := make([]float64, N)
	for pos := range rank {
		rank[pos] = 1.0 / nf
	}

	base := (1.0 - opts.Damping) / nf

	for sweep := 1; sweep <= opts.MaxSweeps; sweep++ {

		var deadEndShare float64
		if opts.RedistributeDeadEnds {
			for pos, succ := range s.Succ {
				if len(succ) == 0 {
					deadEndShare += rank[pos]
				}
			}
			deadEndShare = opts.Damping * deadEndShare / nf
		}

		next := make([]float64, N)
		converged := true

		for p := 0; p < N; p++ {
			sum := 0.0
			for _, q := range pred[p] {
				sum += rank[q] / float64(len(s.Succ[q]))
			}

			next[p] = base + opts.Damping*sum + deadEndShare
			if math.Abs(next[p]-rank[p]) >= opts.Threshold {
				converged = false
			}
		}

		rank = next
		if converged {
			return s.rankMap(rank), nil
		}
	}

	return s.rankMap(rank), models.ErrMaxSweepsReached
}
