package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	glob "github.com/ryanuber/go-glob"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/hashlookup/mih/mih"
)

// newCmd_Build implements the CLI front-end described by the core's
// programmatic contract: scan a directory for files matching a glob,
// Update the index with each file's newline-delimited hashes under a
// category named after the file's path, then Train once. Persistence
// is out of scope, so --query may be repeated to run a fixed set of
// queries against the freshly trained index before exiting.
func newCmd_Build() *cli.Command {
	var dir, pattern, preset string
	var queries cli.StringSlice

	return &cli.Command{
		Name:        "build",
		Usage:       "Ingest every file under a directory matching a glob, one category per file, then train the index.",
		Description: "Each matching file must contain newline-delimited hex hashes. The file's path becomes the category label for every hash it contains.",
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
			&cli.StringSliceFlag{
				Name:        "query",
				Usage:       "query to run after training, formatted hash:maxDistance (may be repeated)",
				Destination: &queries,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "if set, serve Prometheus metrics on this address for the duration of the build",
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

			trainedAt := time.Now()
			n, err := idx.Train()
			if err != nil {
				return err
			}
			klog.Infof("mih build: trained %s records in %s", humanize.Comma(int64(n)), time.Since(trainedAt))

			for _, q := range queries.Value() {
				if err := runFixedQuery(idx, q); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func ingestGlob(idx *mih.Index, dir, pattern string) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if glob.Glob(pattern, path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files under %q matched glob %q", dir, pattern)
	}

	bar := progressbar.Default(int64(len(files)), "ingesting")
	startedAt := time.Now()
	var totalHashes int
	for _, path := range files {
		hashes, err := readHashLines(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := idx.Update(hashes, path); err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		totalHashes += len(hashes)
		_ = bar.Add(1)
	}
	klog.Infof("mih build: ingested %s hashes from %d files in %s", humanize.Comma(int64(totalHashes)), len(files), time.Since(startedAt))
	return nil
}

func readHashLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// runFixedQuery parses "hash:maxDistance" and prints the matches to
// stdout as JSON lines.
func runFixedQuery(idx *mih.Index, spec string) error {
	hash, distanceStr, ok := strings.Cut(spec, ":")
	if !ok {
		return fmt.Errorf("malformed --query %q, expected hash:maxDistance", spec)
	}
	maxDistance, err := strconv.Atoi(distanceStr)
	if err != nil {
		return fmt.Errorf("malformed --query %q: %w", spec, err)
	}
	return printQuery(idx, hash, maxDistance)
}
