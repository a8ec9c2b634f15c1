// Package cli implements the decyclify command-line interface.
//
// This package provides commands for breaking cycles in task graphs,
// inspecting the derived dependency matrices, computing cycle-aware
// schedules, rendering graphs, and serving the HTTP API. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - decyclify: Break cycles in an edge-list graph
//   - matrix: Print the intra- and inter-iteration dependency matrices
//   - schedule: Compute ready batches across repeated cycles
//   - play: Step through a schedule interactively
//   - render: Export the decyclified graph as DOT, SVG, or PNG
//   - serve: Run the HTTP API
//   - cache: Manage the schedule cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/taskweave/decyclify/pkg/cache"
	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "decyclify"

// newRunner creates a pipeline runner for CLI use, wiring the cache backend
// selected by the configuration and the context logger.
func newRunner(ctx context.Context, cfg Config, noCache bool) *pipeline.Runner {
	logger := loggerFromContext(ctx)
	return pipeline.NewRunner(newCacheBackend(ctx, cfg, noCache), nil, logger)
}

// newCacheBackend selects the cache backend from flags and configuration.
// Failures fall back to a null cache rather than aborting the command:
// caching is an optimization, never a requirement.
func newCacheBackend(ctx context.Context, cfg Config, noCache bool) cache.Cache {
	logger := loggerFromContext(ctx)
	if noCache || cfg.Cache.Backend == CacheBackendNone {
		return cache.NewNullCache()
	}
	if cfg.Cache.Backend == CacheBackendRedis {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, "", 0)
		if err != nil {
			logger.Warnf("Redis cache unavailable, falling back to file cache: %v", err)
		} else {
			return rc
		}
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/decyclify/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/decyclify/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Input
// =============================================================================

// readEdgeLines reads "source target" lines from a file, or from stdin when
// path is "-". Blank lines are kept; the parser skips them.
func readEdgeLines(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// decyclifyGraph breaks cycles in g, starting from start when given and
// from the first node otherwise.
func decyclifyGraph(g *graph.Digraph, start string) (*graph.Digraph, []graph.Edge, error) {
	if start != "" {
		return decyclify.DecyclifyFrom(g, start)
	}
	return decyclify.Decyclify(g)
}

// loadGraph reads a graph for a command. JSON files (by extension) use the
// node-link format written by decyclify --output; everything else is parsed
// as an edge list, one "source target" pair per line.
func loadGraph(path string) (*graph.Digraph, error) {
	if filepath.Ext(path) == ".json" {
		return graph.ReadGraphFile(path)
	}
	lines, err := readEdgeLines(path)
	if err != nil {
		return nil, err
	}
	return graph.ParseEdgeList(lines)
}
