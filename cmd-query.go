package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/hashlookup/mih/mih"
)

// newCmd_Query builds an index in-process from the same glob-matched
// files `build` would ingest, trains it, and issues a single query.
// There is no persisted index to load: a separate `query` invocation
// always repeats ingestion, which is the honest consequence of the
// module's no-persistence non-goal rather than a shortcut.
func newCmd_Query() *cli.Command {
	var dir, pattern, preset, hash string
	var maxDistance int

	return &cli.Command{
		Name:        "query",
		Usage:       "Build an index from a directory of hash files and run a single query against it.",
		Description: "Ingests the same way `build` does, then prints every frozen record within --max-distance of --hash as a JSON line.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "directory to scan",
				Value:       ".",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "glob",
				Usage:       "glob pattern matched against each candidate file's path",
				Value:       "*.PDQ",
				Destination: &pattern,
			},
			&cli.StringFlag{
				Name:        "preset",
				Usage:       "named index preset",
				Value:       string(mih.PDQ),
				Destination: &preset,
			},
			&cli.StringFlag{
				Name:        "hash",
				Usage:       "hex-encoded hash to query",
				Required:    true,
				Destination: &hash,
			},
			&cli.IntFlag{
				Name:        "max-distance",
				Usage:       "maximum Hamming distance to accept",
				Value:       0,
				Destination: &maxDistance,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "if set, serve Prometheus metrics on this address for the duration of the query",
			},
		},
		Action: func(c *cli.Context) error {
			serveMetrics(c.String("metrics-addr"))

			idx, err := mih.NewFromPreset(mih.Preset(preset))
			if err != nil {
				return err
			}
			if err := ingestGlob(idx, dir, pattern); err != nil {
				return err
			}
			if _, err := idx.Train(); err != nil {
				return err
			}
			return printQuery(idx, hash, maxDistance)
		},
	}
}

// printQuery runs a single query and prints each result as a JSON
// line to stdout, logging the match count and elapsed time at klog's
// informational level.
func printQuery(idx *mih.Index, hash string, maxDistance int) error {
	startedAt := time.Now()
	results, err := idx.Query(hash, maxDistance)
	if err != nil {
		return fmt.Errorf("querying %s: %w", hash, err)
	}

	var n int
	for result := range results {
		asJSON, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Println(string(asJSON))
		n++
	}
	klog.Infof("mih query: hash=%s maxDistance=%d matches=%d elapsed=%s", hash, maxDistance, n, time.Since(startedAt))
	return nil
}
