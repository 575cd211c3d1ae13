package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vertex-lab/webrank/pkg/crawler"
	"github.com/vertex-lab/webrank/pkg/pagerank"
	"github.com/vertex-lab/webrank/pkg/utils/logger"
)

// The configuration parameters for the system and the main processes.
type Config struct {
	Log       *logger.Aggregate
	LogWriter io.Writer

	// the directory with the html pages to rank
	CorpusDir string

	// the number of steps of the sampling random walk. Default is 10000
	SampleCount int

	Crawler *crawler.Config
	Solver  *pagerank.SolverOptions

	UseRedis     bool
	RedisAddress string
}

// NewConfig() returns a config with default parameters.
func NewConfig() *Config {
	log := logger.New(os.Stdout)

	crawlerConfig := crawler.NewConfig()
	crawlerConfig.Log = log

	return &Config{
		Log:          log,
		LogWriter:    os.Stdout,
		SampleCount:  10000,
		Crawler:      crawlerConfig,
		Solver:       pagerank.NewSolverOptions(),
		RedisAddress: "localhost:6379",
	}
}

func (c *Config) Print() {
	fmt.Println("Config:")
	fmt.Printf("  CorpusDir: %s\n", c.CorpusDir)
	fmt.Printf("  SampleCount: %d\n", c.SampleCount)
	fmt.Printf("  Damping: %f\n", c.Solver.Damping)
	fmt.Printf("  Threshold: %f\n", c.Solver.Threshold)
	fmt.Printf("  MaxSweeps: %d\n", c.Solver.MaxSweeps)
	fmt.Printf("  RedistributeDeadEnds: %t\n", c.Solver.RedistributeDeadEnds)
	fmt.Printf("  CrawlWorkers: %d\n", c.Crawler.Workers)
	fmt.Printf("  UseRedis: %t\n", c.UseRedis)
	fmt.Printf("  RedisAddress: %s\n", c.RedisAddress)
}

// LoadConfig() reads the variables from the environment and parses them into a config struct.
func LoadConfig() (*Config, error) {
	var config = NewConfig()
	var err error

	for _, item := range os.Environ() {
		keyVal := strings.SplitN(item, "=", 2)
		key, val := keyVal[0], keyVal[1]

		switch key {
		case "LOGS":
			// LogWriter gets updated if a .log file is specified; otherwise it remains os.Stdout
			if strings.HasSuffix(val, ".log") {
				config.LogWriter, err = os.OpenFile(val, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
				if err != nil {
					return nil, fmt.Errorf("error opening file \"%v\": %v", val, err)
				}
			}

			config.Log = logger.New(config.LogWriter)
			config.Crawler.Log = config.Log

		case "CORPUS_DIR":
			config.CorpusDir = val

		case "SAMPLE_COUNT":
			config.SampleCount, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "DAMPING_FACTOR":
			config.Solver.Damping, err = strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "CONVERGENCE_THRESHOLD":
			config.Solver.Threshold, err = strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "MAX_SWEEPS":
			config.Solver.MaxSweeps, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "REDISTRIBUTE_DEAD_ENDS":
			config.Solver.RedistributeDeadEnds, err = strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "CRAWL_WORKERS":
			config.Crawler.Workers, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "USE_REDIS":
			config.UseRedis, err = strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "REDIS_ADDRESS":
			config.RedisAddress = val
		}
	}

	return config, nil
}

// CloseLogs() closes the config.LogWriter if that is a file.
func (c *Config) CloseLogs() {
	if file, ok := c.LogWriter.(*os.File); ok && file != os.Stdout {
		file.Close()
	}
}
