package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/vertex-lab/webrank/pkg/crawler"
	"github.com/vertex-lab/webrank/pkg/database/memdb"
	"github.com/vertex-lab/webrank/pkg/database/redisdb"
	"github.com/vertex-lab/webrank/pkg/models"
	"github.com/vertex-lab/webrank/pkg/pagerank"
	"github.com/vertex-lab/webrank/pkg/utils/redisutils"
)

func main() {
	godotenv.Load() // the .env file is optional

	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	defer config.CloseLogs()

	if config.CorpusDir == "" {
		panic("CORPUS_DIR is not set")
	}

	ctx := context.Background()
	DB, err := setupDatabase(ctx, config)
	if err != nil {
		panic(err)
	}

	if err := crawler.Crawl(ctx, DB, config.CorpusDir, config.Crawler); err != nil {
		panic(err)
	}

	sampled, err := pagerank.Sample(ctx, DB, config.Solver.Damping, config.SampleCount)
	if err != nil {
		panic(err)
	}

	fmt.Printf("PageRank Results from Sampling (n = %d)\n", config.SampleCount)
	printRanks(ctx, DB, sampled)

	iterated, err := pagerank.Iterate(ctx, DB, config.Solver)
	if errors.Is(err, models.ErrMaxSweepsReached) {
		config.Log.Warn("solver did not converge within %d sweeps; printing best-effort ranks", config.Solver.MaxSweeps)
	} else if err != nil {
		panic(err)
	}

	fmt.Println("PageRank Results from Iteration")
	printRanks(ctx, DB, iterated)

	// persist the iterated ranks on the nodes
	if err := DB.SetPagerank(ctx, iterated); err != nil {
		config.Log.Error("failed to persist the ranks: %v", err)
	}
}

// setupDatabase() returns the database specified by the config.
func setupDatabase(ctx context.Context, config *Config) (models.Database, error) {
	if !config.UseRedis {
		return memdb.NewDatabase(), nil
	}

	cl := redisutils.SetupClient(config.RedisAddress)
	return redisdb.NewDatabase(ctx, cl)
}

// printRanks() prints the pages sorted by URL, with their ranks.
func printRanks(ctx context.Context, DB models.Database, ranks models.RankMap) {
	type pageRank struct {
		URL  string
		Rank float64
	}

	pageRanks := make([]pageRank, 0, len(ranks))
	for nodeID, rank := range ranks {

		node, err := DB.NodeByID(ctx, nodeID)
		if err != nil {
			fmt.Printf("  node %d: %v\n", nodeID, err)
			continue
		}

		pageRanks = append(pageRanks, pageRank{URL: node.URL, Rank: rank})
	}

	sort.Slice(pageRanks, func(i, j int) bool { return pageRanks[i].URL < pageRanks[j].URL })
	for _, pr := range pageRanks {
		fmt.Printf("  %s: %.4f\n", pr.URL, pr.Rank)
	}
}
