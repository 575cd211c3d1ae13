package pagerank

import (
	"github.com/vertex-lab/webrank/pkg/models"
)

/*
Transition() returns the probability distribution over which node a random
surfer visits next, given the current node. dist[i] is the probability of
visiting s.NodeIDs[i].

With probability `damping`, the surfer follows one of the out-links of the
current node, chosen uniformly; with probability `1 - damping` it jumps to a
node chosen uniformly among all of them. A dead end has no out-links to follow,
so the surfer restarts uniformly: every node gets probability 1/N.

The distribution always sums to 1.0. Transition is a pure function: calling it
twice with the same inputs returns identical distributions.
*/
func Transition(s *Snapshot, nodeID uint32, damping float64) ([]float64, error) {
	if s == nil {
		return nil, models.ErrNilSnapshot
	}

	if err := checkDamping(damping); err != nil {
		return nil, err
	}

	pos, err := s.Position(nodeID)
	if err != nil {
		return nil, err
	}

	return transition(s, pos, damping), nil
}

// transition() computes the distribution for the node at the specified position.
// Inputs are assumed to have been validated by the caller.
func transition(s *Snapshot, pos int, damping float64) []float64 {
	N := float64(s.Size())
	dist := make([]float64, s.Size())

	succ := s.Succ[pos]
	if len(succ) == 0 {
		// random restart: the surfer jumps anywhere, including back here
		uniform := 1.0 / N
		for i := range dist {
			dist[i] = uniform
		}

		return dist
	}

	base := (1.0 - damping) / N
	for i := range dist {
		dist[i] = base
	}

	link := damping / float64(len(succ))
	for _, succPos := range succ {
		dist[succPos] += link
	}

	return dist
}
