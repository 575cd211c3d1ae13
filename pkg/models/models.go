/*
The models package defines the fundamental structures and interfaces used in this project.

Interfaces:

Database:
The Database interface abstracts the basic operations on the page graph, allowing
for multiple implementations (in-memory, Redis). The graph is built once by the
crawler and read by the pagerank estimators, which never mutate it.
*/
package models

import (
	"context"
	"errors"
)

// Node represents a page in the graph. Out-links are kept by the Database
// implementations, not on the node itself.
type Node struct {
	ID       uint32  `redis:"id"`
	URL      string  `redis:"url"`
	Pagerank float64 `redis:"pagerank"`
}

// Delta represents a change to the out-links of a node. The crawler applies one
// Delta per page after the dangling-link filter has run.
type Delta struct {
	NodeID  uint32
	Added   []uint32
	Removed []uint32
}

// The Database interface abstracts the basic functions of the page graph.
type Database interface {
	// Validate() returns the appropriate error if the DB is nil or empty.
	Validate() error

	// Size() returns the number of nodes in the DB (ignores errors).
	Size(ctx context.Context) int

	// ContainsNode() returns whether nodeID is found in the DB.
	ContainsNode(ctx context.Context, nodeID uint32) bool

	// AddNode() adds a node with the specified URL and returns its assigned nodeID.
	// Node IDs are assigned sequentially from 0, so the insertion order fixes
	// the canonical iteration order used by the estimators.
	AddNode(ctx context.Context, URL string) (uint32, error)

	// Update() applies the delta to the out-links of delta.NodeID.
	// Self-links and links to nodes outside the DB are rejected.
	Update(ctx context.Context, delta *Delta) error

	// NodeByID() retrieves a node by its nodeID.
	NodeByID(ctx context.Context, nodeID uint32) (*Node, error)

	// NodeByURL() retrieves a node by its URL.
	NodeByURL(ctx context.Context, URL string) (*Node, error)

	// Successors() returns the slice of nodeIDs the specified node links to,
	// in ascending order. A node with no successors is a dead end.
	Successors(ctx context.Context, nodeID uint32) ([]uint32, error)

	// AllNodes() returns a slice with the IDs of all nodes in the DB.
	AllNodes(ctx context.Context) ([]uint32, error)

	// SetPagerank() writes the ranks in the rank map to the corresponding nodes.
	SetPagerank(ctx context.Context, ranks RankMap) error
}

//---------------------------------ERROR-CODES---------------------------------

// Database errors
var ErrNilDB = errors.New("database pointer is nil")
var ErrEmptyDB = errors.New("database is empty")
var ErrNodeNotFound = errors.New("node not found in the database")
var ErrNodeAlreadyInDB = errors.New("node already in the database")
var ErrNilDelta = errors.New("delta pointer is nil")
var ErrSelfLink = errors.New("a node cannot link to itself")
var ErrNilClient = errors.New("nil redis client pointer")

// Estimator errors
var ErrNilSnapshot = errors.New("snapshot pointer is nil")
var ErrInvalidDamping = errors.New("the damping factor should be a number between 0 and 1 (excluded)")
var ErrInvalidSampleCount = errors.New("the sample count should be greater than zero")
var ErrInvalidThreshold = errors.New("the convergence threshold should be greater than zero")
var ErrInvalidMaxSweeps = errors.New("the maximum number of sweeps should be greater than zero")
var ErrMaxSweepsReached = errors.New("the maximum number of sweeps was reached before convergence")
