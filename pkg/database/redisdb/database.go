// The redisdb package defines a Redis-backed database that fulfills the
// Database interface in models, for corpora that should survive restarts.
package redisdb

import (
	"context"
	"errors"
	"math"
	"slices"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/webrank/pkg/models"
	"github.com/vertex-lab/webrank/pkg/utils/redisutils"
)

const (
	KeyDatabase    string = "database"
	KeyLastNodeID  string = "lastNodeID"
	KeyURLIndex    string = "urlIndex"
	KeyNodePrefix  string = "node:"
	KeyLinksPrefix string = "links:"
)

// KeyNode() returns the Redis key for the node with the specified nodeID.
func KeyNode(nodeID uint32) string {
	return KeyNodePrefix + redisutils.FormatID(nodeID)
}

// KeyLinks() returns the Redis key for the out-links of the specified nodeID.
func KeyLinks(nodeID uint32) string {
	return KeyLinksPrefix + redisutils.FormatID(nodeID)
}

// Database fulfills the Database interface defined in models.
type Database struct {
	client *redis.Client
}

// NewDatabase() initializes the database fields and returns a new Database instance.
func NewDatabase(ctx context.Context, cl *redis.Client) (*Database, error) {
	if cl == nil {
		return nil, models.ErrNilClient
	}

	// the first ID will be 0, since we increment and return with HIncrBy
	if err := cl.HSetNX(ctx, KeyDatabase, KeyLastNodeID, -1).Err(); err != nil {
		return nil, err
	}

	return &Database{client: cl}, nil
}

// Validate() returns the appropriate error if the DB or its client is nil.
// The empty check requires a round-trip, so it's left to the operations that need it.
func (DB *Database) Validate() error {
	if DB == nil {
		return models.ErrNilDB
	}

	if DB.client == nil {
		return models.ErrNilClient
	}

	return nil
}

// Size() returns the number of nodes in the DB (ignores errors).
func (DB *Database) Size(ctx context.Context) int {
	if err := DB.Validate(); err != nil {
		return 0
	}

	size, err := DB.client.HLen(ctx, KeyURLIndex).Result()
	if err != nil {
		return 0
	}

	return int(size)
}

// ContainsNode() returns whether nodeID is found in the DB (ignores errors).
func (DB *Database) ContainsNode(ctx context.Context, nodeID uint32) bool {
	if err := DB.Validate(); err != nil {
		return false
	}

	exist, err := DB.client.Exists(ctx, KeyNode(nodeID)).Result()
	return err == nil && exist > 0
}

// AddNode() adds a node with the specified URL and returns its assigned nodeID.
// In case of errors, it returns MaxUint32 as the nodeID.
func (DB *Database) AddNode(ctx context.Context, URL string) (uint32, error) {
	if err := DB.Validate(); err != nil {
		return math.MaxUint32, err
	}

	exist, err := DB.client.HExists(ctx, KeyURLIndex, URL).Result()
	if err != nil {
		return math.MaxUint32, err
	}
	if exist {
		return math.MaxUint32, models.ErrNodeAlreadyInDB
	}

	// get the nodeID outside the transaction. This implies that there might
	// be "holes", meaning IDs not associated with any node
	lastNodeID, err := DB.client.HIncrBy(ctx, KeyDatabase, KeyLastNodeID, 1).Result()
	if err != nil {
		return math.MaxUint32, err
	}

	nodeID := uint32(lastNodeID)
	node := models.Node{
		ID:  nodeID,
		URL: URL,
	}

	pipe := DB.client.TxPipeline()
	pipe.HSetNX(ctx, KeyURLIndex, URL, lastNodeID)
	pipe.HSet(ctx, KeyNode(nodeID), node)

	if _, err := pipe.Exec(ctx); err != nil {
		return math.MaxUint32, err
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

	if !DB.ContainsNode(ctx, delta.NodeID) {
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

	pipe := DB.client.TxPipeline()
	if len(delta.Added) > 0 {
		pipe.SAdd(ctx, KeyLinks(delta.NodeID), redisutils.FormatIDs(delta.Added))
	}
	if len(delta.Removed) > 0 {
		pipe.SRem(ctx, KeyLinks(delta.NodeID), redisutils.FormatIDs(delta.Removed))
	}

	_, err := pipe.Exec(ctx)
	return err
}

// NodeByID() retrieves a node by its nodeID.
func (DB *Database) NodeByID(ctx context.Context, nodeID uint32) (*models.Node, error) {
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	cmd := DB.client.HGetAll(ctx, KeyNode(nodeID))
	if cmd.Err() != nil {
		return nil, cmd.Err()
	}

	// if an empty map is returned, it means the node was not found
	if len(cmd.Val()) == 0 {
		return nil, models.ErrNodeNotFound
	}

	var node models.Node
	if err := cmd.Scan(&node); err != nil {
		return nil, err
	}

	return &node, nil
}

// NodeByURL() retrieves a node by its URL.
func (DB *Database) NodeByURL(ctx context.Context, URL string) (*models.Node, error) {
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	strNodeID, err := DB.client.HGet(ctx, KeyURLIndex, URL).Result()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNodeNotFound
	}
	if err != nil {
		return nil, err
	}

	nodeID, err := redisutils.ParseID(strNodeID)
	if err != nil {
		return nil, err
	}

	return DB.NodeByID(ctx, nodeID)
}

// Successors() returns the slice of nodeIDs that nodeID links to, in ascending order.
func (DB *Database) Successors(ctx context.Context, nodeID uint32) ([]uint32, error) {
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	if !DB.ContainsNode(ctx, nodeID) {
		return nil, models.ErrNodeNotFound
	}

	strLinks, err := DB.client.SMembers(ctx, KeyLinks(nodeID)).Result()
	if err != nil {
		return nil, err
	}

	successors, err := redisutils.ParseIDs(strLinks)
	if err != nil {
		return nil, err
	}

	slices.Sort(successors)
	return successors, nil
}

// AllNodes() returns a slice with the IDs of all nodes in the DB.
func (DB *Database) AllNodes(ctx context.Context) ([]uint32, error) {
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	strNodeIDs, err := DB.client.HVals(ctx, KeyURLIndex).Result()
	if err != nil {
		return nil, err
	}

	if len(strNodeIDs) == 0 {
		return nil, models.ErrEmptyDB
	}

	return redisutils.ParseIDs(strNodeIDs)
}

// SetPagerank() writes the ranks in the rank map to the corresponding nodes.
func (DB *Database) SetPagerank(ctx context.Context, ranks models.RankMap) error {
	if err := DB.Validate(); err != nil {
		return err
	}

	for nodeID := range ranks {
		if !DB.ContainsNode(ctx, nodeID) {
			return models.ErrNodeNotFound
		}
	}

	pipe := DB.client.TxPipeline()
	for nodeID, rank := range ranks {
		pipe.HSet(ctx, KeyNode(nodeID), "pagerank", rank)
	}

	_, err := pipe.Exec(ctx)
	return err
}
