// Package main is the entry point for the secbot CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

// dataDirEnv overrides the default data directory when --data-dir is absent.
const dataDirEnv = "SECBOT_DATA_DIR"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	args := os.Args[1:]
	dataDir := dataDirFromArgs(args)
	if dataDir == "" {
		dataDir = os.Getenv(dataDirEnv)
	}

	container, err := app.New(cwd, app.WithDataDir(dataDir))
	if err != nil {
		// Help and version still work with a broken config
		if canRunWithoutContainer(args) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	return cli.NewRootCommand(container, version).Execute()
}

// dataDirFromArgs returns the --data-dir value from args, or "".
// The container is built before cobra parses flags, so the flag is read here.
func dataDirFromArgs(args []string) string {
	flag := "--" + cli.DataDirFlag
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func canRunWithoutContainer(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
