// The memdb package defines an in-memory database that fulfills the Database
// interface in models. It's the default backend for small corpora and tests.
package memdb

import (
	"context"
	"math"
	"math/rand"
	"slices"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/webrank/pkg/models"
)

type NodeSet mapset.Set[uint32]

// Database is a simple in-memory graph database.
type Database struct {

	// a map that associates each URL with a unique nodeID
	KeyIndex map[string]uint32

	// a map that associates each nodeID with its node data
	NodeIndex map[uint32]*models.Node

	// a map that associates each nodeID with the set of nodes it links to
	OutLinks map[uint32]NodeSet

	// the last nodeID assigned. When a new node is added, this field is incremented by one
	LastNodeID int
}

// NewDatabase() creates and returns a new Database instance.
func NewDatabase() *Database {
	return &Database{
		KeyIndex:   make(map[string]uint32),
		NodeIndex:  make(map[uint32]*models.Node),
		OutLinks:   make(map[uint32]NodeSet),
		LastNodeID: -1, // the first nodeID will be 0
	}
}

// Validate() returns an error if the DB is nil or has no nodes.
func (DB *Database) Validate() error {
	if DB == nil {
		return models.ErrNilDB
	}

	if len(DB.NodeIndex) == 0 {
		return models.ErrEmptyDB
	}

	return nil
}

// Size() returns the number of nodes in the DB (ignores errors).
func (DB *Database) Size(ctx context.Context) int {
	_ = ctx
	if DB == nil {
		return 0
	}

	return len(DB.NodeIndex)
}

// ContainsNode() returns whether nodeID is found in the DB.
func (DB *Database) ContainsNode(ctx context.Context, nodeID uint32) bool {
	_ = ctx
	if DB == nil {
		return false
	}

	_, exist := DB.NodeIndex[nodeID]
	return exist
}

// AddNode() adds a node with the specified URL and returns its assigned nodeID.
// In case of errors, it returns MaxUint32 as the nodeID.
func (DB *Database) AddNode(ctx context.Context, URL string) (uint32, error) {
	_ = ctx
	if DB == nil {
		return math.MaxUint32, models.ErrNilDB
	}

	if _, exist := DB.KeyIndex[URL]; exist {
		return math.MaxUint32, models.ErrNodeAlreadyInDB
	}

	DB.LastNodeID++
	nodeID := uint32(DB.LastNodeID)
	DB.KeyIndex[URL] = nodeID
	DB.OutLinks[nodeID] = mapset.NewSet[uint32]()
	DB.NodeIndex[nodeID] = &models.Node{
		ID:  nodeID,
		URL: URL,
	}

	return nodeID, nil
}

// Update() applies the delta to the out-links of delta.NodeID.
func (DB *Database) Update(ctx context.Context, delta *models.Delta) error {
	if err := DB.Validate(); err != nil {
		return err
	}

	if delta == nil {
		return models.ErrNilDelta
	}

	if _, exist := DB.NodeIndex[delta.NodeID]; !exist {
		return models.ErrNodeNotFound
	}

	// every link target has to be a node in the DB, and not the node itself
	for _, added := range delta.Added {
		if added == delta.NodeID {
			return models.ErrSelfLink
		}

		if !DB.ContainsNode(ctx, added) {
			return models.ErrNodeNotFound
		}
	}

	DB.OutLinks[delta.NodeID].Append(delta.Added...)
	DB.OutLinks[delta.NodeID].RemoveAll(delta.Removed...)
	return nil
}

// NodeByID() retrieves a node by its nodeID.
func (DB *Database) NodeByID(ctx context.Context, nodeID uint32) (*models.Node, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	node, exist := DB.NodeIndex[nodeID]
	if !exist {
		return nil, models.ErrNodeNotFound
	}

	return node, nil
}

// NodeByURL() retrieves a node by its URL.
func (DB *Database) NodeByURL(ctx context.Context, URL string) (*models.Node, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeID, exist := DB.KeyIndex[URL]
	if !exist {
		return nil, models.ErrNodeNotFound
	}

	return DB.NodeIndex[nodeID], nil
}

// Successors() returns the slice of nodeIDs that nodeID links to, in ascending order.
func (DB *Database) Successors(ctx context.Context, nodeID uint32) ([]uint32, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	outLinks, exist := DB.OutLinks[nodeID]
	if !exist {
		return nil, models.ErrNodeNotFound
	}

	successors := outLinks.ToSlice()
	slices.Sort(successors)
	return successors, nil
}

// AllNodes() returns a slice with the IDs of all nodes in the DB.
func (DB *Database) AllNodes(ctx context.Context) ([]uint32, error) {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	nodeIDs := make([]uint32, 0, len(DB.NodeIndex))
	for nodeID := range DB.NodeIndex {
		nodeIDs = append(nodeIDs, nodeID)
	}

	return nodeIDs, nil
}

// SetPagerank() writes the ranks in the rank map to the corresponding nodes.
func (DB *Database) SetPagerank(ctx context.Context, ranks models.RankMap) error {
	_ = ctx
	if err := DB.Validate(); err != nil {
		return err
	}

	for nodeID, rank := range ranks {
		node, exist := DB.NodeIndex[nodeID]
		if !exist {
			return models.ErrNodeNotFound
		}

		node.Pagerank = rank
	}

	return nil
}

// SetupDB() returns a DB setup based on the DBType.
func SetupDB(DBType string) *Database {
	switch DBType {

	case "nil":
		return nil

	case "empty":
		return NewDatabase()

	case "one-node0":
		DB := NewDatabase()
		DB.KeyIndex = map[string]uint32{"a.html": 0}
		DB.LastNodeID = 0
		DB.NodeIndex[0] = &models.Node{ID: 0, URL: "a.html"}
		DB.OutLinks[0] = mapset.NewSet[uint32]()
		return DB

	case "pair":
		// a.html <--> b.html
		DB := NewDatabase()
		DB.KeyIndex = map[string]uint32{"a.html": 0, "b.html": 1}
		DB.LastNodeID = 1
		DB.NodeIndex[0] = &models.Node{ID: 0, URL: "a.html"}
		DB.NodeIndex[1] = &models.Node{ID: 1, URL: "b.html"}
		DB.OutLinks[0] = mapset.NewSet[uint32](1)
		DB.OutLinks[1] = mapset.NewSet[uint32](0)
		return DB

	case "chain":
		// a.html --> b.html --> c.html, with c.html a dead end
		DB := NewDatabase()
		DB.KeyIndex = map[string]uint32{"a.html": 0, "b.html": 1, "c.html": 2}
		DB.LastNodeID = 2
		DB.NodeIndex[0] = &models.Node{ID: 0, URL: "a.html"}
		DB.NodeIndex[1] = &models.Node{ID: 1, URL: "b.html"}
		DB.NodeIndex[2] = &models.Node{ID: 2, URL: "c.html"}
		DB.OutLinks[0] = mapset.NewSet[uint32](1)
		DB.OutLinks[1] = mapset.NewSet[uint32](2)
		DB.OutLinks[2] = mapset.NewSet[uint32]()
		return DB

	case "triangle":
		// a.html --> b.html --> c.html --> a.html
		DB := NewDatabase()
		DB.KeyIndex = map[string]uint32{"a.html": 0, "b.html": 1, "c.html": 2}
		DB.LastNodeID = 2
		DB.NodeIndex[0] = &models.Node{ID: 0, URL: "a.html"}
		DB.NodeIndex[1] = &models.Node{ID: 1, URL: "b.html"}
		DB.NodeIndex[2] = &models.Node{ID: 2, URL: "c.html"}
		DB.OutLinks[0] = mapset.NewSet[uint32](1)
		DB.OutLinks[1] = mapset.NewSet[uint32](2)
		DB.OutLinks[2] = mapset.NewSet[uint32](0)
		return DB

	case "dandlings":
		// five nodes without any out-links
		DB := NewDatabase()
		for nodeID := uint32(0); nodeID < 5; nodeID++ {
			URL := strconv.FormatUint(uint64(nodeID), 10) + ".html"
			DB.KeyIndex[URL] = nodeID
			DB.NodeIndex[nodeID] = &models.Node{ID: nodeID, URL: URL}
			DB.OutLinks[nodeID] = mapset.NewSet[uint32]()
		}
		DB.LastNodeID = 4
		return DB

	default:
		return nil // invalid DBType
	}
}

// GenerateDB() generates a DB with the specified number of nodes, each linking
// to up to successorsPerNode other nodes chosen at random.
func GenerateDB(nodesNum, successorsPerNode int, rng *rand.Rand) *Database {
	DB := NewDatabase()

	for i := 0; i < nodesNum; i++ {
		URL := strconv.Itoa(i) + ".html"
		DB.AddNode(context.Background(), URL)
	}

	for nodeID := uint32(0); nodeID < uint32(nodesNum); nodeID++ {
		for i := 0; i < successorsPerNode; i++ {
			succ := uint32(rng.Intn(nodesNum))
			if succ == nodeID {
				continue
			}

			DB.OutLinks[nodeID].Add(succ)
		}
	}

	return DB
}
