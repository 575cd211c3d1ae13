/*
The crawler package builds the page graph from a directory of HTML pages.

Crawl() enumerates the .html files in the corpus directory, extracts the target
of every <a href="..."> with a pool of parse workers, and loads the result into
a Database. Self-links and links to pages outside the corpus (dangling links)
are dropped, so the resulting graph satisfies the invariants the pagerank
estimators rely on: every link target is a node, and no node links to itself.
*/
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/webrank/pkg/models"
	"github.com/vertex-lab/webrank/pkg/utils/logger"
	"github.com/vertex-lab/webrank/pkg/utils/sliceutils"
	"golang.org/x/net/html"
)

// Config contains the configuration parameters for the crawler.
type Config struct {
	Log *logger.Aggregate

	// the number of concurrent parse workers. Default is 4
	Workers int
}

// NewConfig() returns a config with default parameters.
func NewConfig() *Config {
	return &Config{
		Log:     logger.New(os.Stdout),
		Workers: 4,
	}
}

// Crawl() builds the page graph of the corpus directory inside the DB.
// Pages are registered in lexical order, which fixes the canonical node order.
// Re-crawling a directory into the same DB refreshes the links of known pages.
func Crawl(ctx context.Context, DB models.Database, dir string, config *Config) error {
	if DB == nil {
		return models.ErrNilDB
	}

	if config == nil {
		config = NewConfig()
	}

	pages, err := htmlPages(dir)
	if err != nil {
		return err
	}

	if len(pages) == 0 {
		return fmt.Errorf("no html pages found in %s", dir)
	}

	// first pass: register every page, so link targets can be resolved
	for _, page := range pages {
		if _, err := DB.AddNode(ctx, page); err != nil && !errors.Is(err, models.ErrNodeAlreadyInDB) {
			return fmt.Errorf("failed to add %s: %w", page, err)
		}
	}

	linksByPage, err := parsePages(ctx, dir, pages, config)
	if err != nil {
		return err
	}

	// second pass: resolve links to nodeIDs, dropping the dangling ones
	for _, page := range pages {

		node, err := DB.NodeByURL(ctx, page)
		if err != nil {
			return err
		}

		targets := make([]uint32, 0, len(linksByPage[page]))
		dangling := 0

		for _, link := range linksByPage[page] {
			target, err := DB.NodeByURL(ctx, link)

			switch {
			case errors.Is(err, models.ErrNodeNotFound):
				dangling++

			case err != nil:
				return err

			default:
				targets = append(targets, target.ID)
			}
		}

		if dangling > 0 {
			config.Log.Warn("%s: dropped %d dangling links", page, dangling)
		}

		current, err := DB.Successors(ctx, node.ID)
		if err != nil {
			return err
		}

		delta := &models.Delta{
			NodeID:  node.ID,
			Added:   sliceutils.Difference(targets, current),
			Removed: sliceutils.Difference(current, targets),
		}

		if len(delta.Added) == 0 && len(delta.Removed) == 0 {
			continue
		}

		if err := DB.Update(ctx, delta); err != nil {
			return fmt.Errorf("failed to update %s: %w", page, err)
		}
	}

	return nil
}

// htmlPages() returns the names of the .html files in dir, in lexical order.
func htmlPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	pages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		pages = append(pages, entry.Name())
	}

	return pages, nil
}

// parsePages() extracts the links of each page with a pool of parse workers.
func parsePages(ctx context.Context, dir string, pages []string, config *Config) (map[string][]string, error) {

	linksByPage := make(map[string][]string, len(pages))
	pageCounter := xsync.NewCounter()

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan string)

	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for page := range jobs {
				links, err := parsePage(filepath.Join(dir, page), page)
				if err != nil {
					config.Log.Error("failed to parse %s: %v", page, err)
					continue
				}

				mu.Lock()
				linksByPage[page] = links
				mu.Unlock()
				pageCounter.Inc()
			}
		}()
	}

	for _, page := range pages {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()

		case jobs <- page:
		}
	}

	close(jobs)
	wg.Wait()

	config.Log.Info("parsed %d pages in %s", pageCounter.Value(), dir)
	return linksByPage, nil
}

// parsePage() returns the targets of the <a href="..."> links in the page,
// sorted and de-duplicated, excluding links of the page to itself.
func parsePage(path, page string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	links := []string{}
	tokenizer := html.NewTokenizer(file)

	for {
		tokenType := tokenizer.Next()

		if tokenType == html.ErrorToken {
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}

			return sliceutils.Unique(links), nil
		}

		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := tokenizer.TagName()
		if string(name) != "a" || !hasAttr {
			continue
		}

		for {
			key, val, more := tokenizer.TagAttr()
			if string(key) == "href" {
				if link := string(val); link != "" && link != page {
					links = append(links, link)
				}
				break
			}

			if !more {
				break
			}
		}
	}
}
