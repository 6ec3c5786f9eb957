package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func newCmd_Version() *cli.Command {
	return &cli.Command{
		Name:        "version",
		Usage:       "Print version information of this binary.",
		Description: "Print version information of this binary.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print version information as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("json") {
				return printVersionAsJSON()
			}
			printVersion()
			return nil
		},
	}
}

func printVersion() {
	fmt.Println("MIH CLI")
	fmt.Printf("Commit: %s\n", gitCommitSHA)
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Printf("More info:\n")
		for _, setting := range info.Settings {
			if isAnyOf(setting.Key, "-compiler", "GOARCH", "GOOS", "GOAMD64", "vcs", "vcs.revision", "vcs.time", "vcs.modified") {
				fmt.Printf("  %s: %s\n", setting.Key, setting.Value)
			}
		}
	}
	fmt.Println("Date:", time.Now().Format(time.RFC3339))
	fmt.Println("Go version:", runtime.Version())
	fmt.Println("Num CPU:", runtime.NumCPU())
	fmt.Println("Session:", SessionID)
}

func printVersionAsJSON() error {
	info := map[string]string{
		"commit":     gitCommitSHA,
		"date":       time.Now().Format(time.RFC3339),
		"go_version": runtime.Version(),
		"num_cpu":    fmt.Sprintf("%d", runtime.NumCPU()),
		"session_id": SessionID,
	}
	asJSON, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling version info: %w", err)
	}
	fmt.Println(string(asJSON))
	return nil
}

var SessionID string

func init() {
	SessionID = uuid.New().String() + ":" + time.Now().Format("20060102T150405")
}

func isAnyOf(s string, anyOf ...string) bool {
	return slices.Contains(anyOf, s)
}
