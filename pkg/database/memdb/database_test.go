package memdb

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vertex-lab/webrank/pkg/models"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		DBType        string
		expectedError error
	}{
		{
			name:          "nil DB",
			DBType:        "nil",
			expectedError: models.ErrNilDB,
		},
		{
			name:          "empty DB",
			DBType:        "empty",
			expectedError: models.ErrEmptyDB,
		},
		{
			name:          "DB with node 0",
			DBType:        "one-node0",
			expectedError: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			DB := SetupDB(test.DBType)
			err := DB.Validate()

			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Validate(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}

func TestContainsNode(t *testing.T) {
	testCases := []struct {
		name             string
		DBType           string
		expectedContains bool
	}{
		{
			name:             "nil DB",
			DBType:           "nil",
			expectedContains: false,
		},
		{
			name:             "empty DB",
			DBType:           "empty",
			expectedContains: false,
		},
		{
			name:             "node not found in DB",
			DBType:           "one-node0",
			expectedContains: false,
		},
		{
			name:             "node found in DB",
			DBType:           "pair",
			expectedContains: true,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			DB := SetupDB(test.DBType)

			contains := DB.ContainsNode(context.Background(), 1)
			if contains != test.expectedContains {
				t.Errorf("ContainsNode(1): expected %v, got %v", test.expectedContains, contains)
			}
		})
	}
}

func TestAddNode(t *testing.T) {
	testCases := []struct {
		name               string
		DBType             string
		URL                string
		expectedNodeID     uint32
		expectedLastNodeID int
		expectedError      error
	}{
		{
			name:               "nil DB",
			DBType:             "nil",
			URL:                "d.html",
			expectedNodeID:     math.MaxUint32,
			expectedLastNodeID: -1,
			expectedError:      models.ErrNilDB,
		},
		{
			name:               "node already in the DB",
			DBType:             "chain",
			URL:                "a.html",
			expectedNodeID:     math.MaxUint32,
			expectedLastNodeID: 2,
			expectedError:      models.ErrNodeAlreadyInDB,
		},
		{
			name:               "valid",
			DBType:             "chain",
			URL:                "d.html",
			expectedNodeID:     3,
			expectedLastNodeID: 3,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			DB := SetupDB(test.DBType)

			nodeID, err := DB.AddNode(context.Background(), test.URL)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("AddNode(%v): expected %v, got %v", test.URL, test.expectedError, err)
			}

			if nodeID != test.expectedNodeID {
				t.Errorf("AddNode(%v): expected nodeID = %v, got %v", test.URL, test.expectedNodeID, nodeID)
			}

			if DB != nil {
				if DB.LastNodeID != test.expectedLastNodeID {
					t.Errorf("AddNode(%v): expected LastNodeID = %v, got %v", test.URL, test.expectedLastNodeID, DB.LastNodeID)
				}
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	testCases := []struct {
		name          string
		DBType        string
		delta         *models.Delta
		expectedSucc  []uint32
		expectedError error
	}{
		{
			name:          "nil DB",
			DBType:        "nil",
			delta:         &models.Delta{NodeID: 0, Added: []uint32{1}},
			expectedError: models.ErrNilDB,
		},
		{
			name:          "nil delta",
			DBType:        "chain",
			delta:         nil,
			expectedError: models.ErrNilDelta,
		},
		{
			name:          "node not found",
			DBType:        "chain",
			delta:         &models.Delta{NodeID: 99, Added: []uint32{1}},
			expectedError: models.ErrNodeNotFound,
		},
		{
			name:          "self link",
			DBType:        "chain",
			delta:         &models.Delta{NodeID: 0, Added: []uint32{0}},
			expectedError: models.ErrSelfLink,
		},
		{
			name:          "link target not found",
			DBType:        "chain",
			delta:         &models.Delta{NodeID: 0, Added: []uint32{99}},
			expectedError: models.ErrNodeNotFound,
		},
		{
			name:         "valid addition",
			DBType:       "chain",
			delta:        &models.Delta{NodeID: 0, Added: []uint32{2}},
			expectedSucc: []uint32{1, 2},
		},
		{
			name:         "valid removal",
			DBType:       "chain",
			delta:        &models.Delta{NodeID: 0, Removed: []uint32{1}},
			expectedSucc: []uint32{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			DB := SetupDB(test.DBType)

			err := DB.Update(ctx, test.delta)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Update(): expected %v, got %v", test.expectedError, err)
			}

			if test.expectedError == nil {
				succ, err := DB.Successors(ctx, test.delta.NodeID)
				if err != nil {
					t.Fatalf("Successors(): expected nil, got %v", err)
				}

				if !reflect.DeepEqual(succ, test.expectedSucc) {
					t.Errorf("Successors(): expected %v, got %v", test.expectedSucc, succ)
				}
			}
		})
	}
}

func TestNodeByURL(t *testing.T) {
	testCases := []struct {
		name           string
		DBType         string
		URL            string
		expectedNodeID uint32
		expectedError  error
	}{
		{
			name:          "nil DB",
			DBType:        "nil",
			URL:           "a.html",
			expectedError: models.ErrNilDB,
		},
		{
			name:          "node not found",
			DBType:        "pair",
			URL:           "z.html",
			expectedError: models.ErrNodeNotFound,
		},
		{
			name:           "valid",
			DBType:         "pair",
			URL:            "b.html",
			expectedNodeID: 1,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			node, err := SetupDB(test.DBType).NodeByURL(context.Background(), test.URL)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("NodeByURL(%v): expected %v, got %v", test.URL, test.expectedError, err)
			}

			if test.expectedError == nil && node.ID != test.expectedNodeID {
				t.Errorf("NodeByURL(%v): expected nodeID %v, got %v", test.URL, test.expectedNodeID, node.ID)
			}
		})
	}
}

func TestSuccessors(t *testing.T) {
	testCases := []struct {
		name          string
		DBType        string
		nodeID        uint32
		expectedSucc  []uint32
		expectedError error
	}{
		{
			name:          "node not found",
			DBType:        "triangle",
			nodeID:        99,
			expectedError: models.ErrNodeNotFound,
		},
		{
			name:         "valid",
			DBType:       "triangle",
			nodeID:       2,
			expectedSucc: []uint32{0},
		},
		{
			name:         "dead end",
			DBType:       "chain",
			nodeID:       2,
			expectedSucc: []uint32{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			succ, err := SetupDB(test.DBType).Successors(context.Background(), test.nodeID)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Successors(%d): expected %v, got %v", test.nodeID, test.expectedError, err)
			}

			if !reflect.DeepEqual(succ, test.expectedSucc) {
				t.Errorf("Successors(%d): expected %v, got %v", test.nodeID, test.expectedSucc, succ)
			}
		})
	}
}

func TestSetPagerank(t *testing.T) {
	testCases := []struct {
		name          string
		DBType        string
		ranks         models.RankMap
		expectedError error
	}{
		{
			name:          "nil DB",
			DBType:        "nil",
			ranks:         models.RankMap{0: 1.0},
			expectedError: models.ErrNilDB,
		},
		{
			name:          "node not found",
			DBType:        "one-node0",
			ranks:         models.RankMap{99: 1.0},
			expectedError: models.ErrNodeNotFound,
		},
		{
			name:   "valid",
			DBType: "pair",
			ranks:  models.RankMap{0: 0.5, 1: 0.5},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			DB := SetupDB(test.DBType)

			err := DB.SetPagerank(context.Background(), test.ranks)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("SetPagerank(): expected %v, got %v", test.expectedError, err)
			}

			if test.expectedError == nil {
				for nodeID, rank := range test.ranks {
					if DB.NodeIndex[nodeID].Pagerank != rank {
						t.Errorf("SetPagerank(): expected rank %v for node %d, got %v",
							rank, nodeID, DB.NodeIndex[nodeID].Pagerank)
					}
				}
			}
		})
	}
}

func TestAllNodes(t *testing.T) {
	DB := SetupDB("triangle")

	nodeIDs, err := DB.AllNodes(context.Background())
	if err != nil {
		t.Fatalf("AllNodes(): expected nil, got %v", err)
	}

	if len(nodeIDs) != 3 {
		t.Errorf("AllNodes(): expected 3 nodes, got %v", nodeIDs)
	}
}
