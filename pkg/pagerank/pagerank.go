/*
The pagerank package implements two independent estimators of the stationary
distribution of the damped random walk over the page graph:

- Sample() approximates it by simulating a single long random walk and counting visits.

- Iterate() computes it as the fixed point of the pagerank recurrence by relaxation.

Both estimators read the graph through a Snapshot, an immutable dense view of the
Database where each node is addressed by its position in the canonical order
(ascending nodeID). The two results are expected to be close, but not identical:
the sampler is subject to sampling noise, and the solver intentionally doesn't
redistribute the rank mass of dead ends (see Iterate).
*/
package pagerank

import (
	"context"
	"fmt"
	"slices"

	"github.com/vertex-lab/webrank/pkg/models"
)

// Snapshot is a read-only dense view of the page graph, taken once before an
// estimator runs. Positions are stable for the lifetime of the Snapshot, which
// makes array-indexed accumulators possible.
type Snapshot struct {

	// the nodeIDs in canonical order (ascending). NodeIDs[i] is the node at position i.
	NodeIDs []uint32

	// the successors of each node, as positions. Succ[i] lists the positions
	// of the nodes that NodeIDs[i] links to.
	Succ [][]int

	// a map that associates each nodeID with its position
	positionByID map[uint32]int
}

// NewSnapshot() reads the whole graph from the DB and returns its dense view.
func NewSnapshot(ctx context.Context, DB models.Database) (*Snapshot, error) {
	if DB == nil {
		return nil, models.ErrNilDB
	}

	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeIDs, err := DB.AllNodes(ctx)
	if err != nil {
		return nil, err
	}

	if len(nodeIDs) == 0 {
		return nil, models.ErrEmptyDB
	}

	slices.Sort(nodeIDs)
	positionByID := make(map[uint32]int, len(nodeIDs))
	for pos, nodeID := range nodeIDs {
		positionByID[nodeID] = pos
	}

	succ := make([][]int, len(nodeIDs))
	for pos, nodeID := range nodeIDs {

		succIDs, err := DB.Successors(ctx, nodeID)
		if err != nil {
			return nil, err
		}

		positions := make([]int, 0, len(succIDs))
		for _, succID := range succIDs {

			succPos, exist := positionByID[succID]
			if !exist {
				return nil, fmt.Errorf("successor %d of node %d: %w", succID, nodeID, models.ErrNodeNotFound)
			}

			positions = append(positions, succPos)
		}

		succ[pos] = positions
	}

	return &Snapshot{
		NodeIDs:      nodeIDs,
		Succ:         succ,
		positionByID: positionByID,
	}, nil
}

// Size() returns the number of nodes in the Snapshot.
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}

	return len(s.NodeIDs)
}

// Position() returns the position of nodeID in the canonical order.
func (s *Snapshot) Position(nodeID uint32) (int, error) {
	if s == nil {
		return -1, models.ErrNilSnapshot
	}

	pos, exist := s.positionByID[nodeID]
	if !exist {
		return -1, models.ErrNodeNotFound
	}

	return pos, nil
}

// rankMap() converts a dense slice of ranks (aligned with the canonical order)
// into a RankMap keyed by nodeID.
func (s *Snapshot) rankMap(dense []float64) models.RankMap {
	ranks := make(models.RankMap, len(s.NodeIDs))
	for pos, nodeID := range s.NodeIDs {
		ranks[nodeID] = dense[pos]
	}

	return ranks
}

// checkDamping() returns ErrInvalidDamping if the damping factor is outside (0,1).
func checkDamping(damping float64) error {
	if damping <= 0 || damping >= 1 {
		return models.ErrInvalidDamping
	}

	return nil
}
