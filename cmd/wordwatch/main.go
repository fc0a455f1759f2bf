// Command wordwatch is the word-mention notifier for directory-backed
// wikis. It wires the SQLite store, the analyzers and the services
// together and hands control to the CLI.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/authz"
	"github.com/custodia-labs/wordwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wordwatch/internal/adapters/driven/notify"
	"github.com/custodia-labs/wordwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wordwatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/wordwatch/internal/analyzers"
	"github.com/custodia-labs/wordwatch/internal/core/services"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)

	deps, cleanup, err := wire()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordwatch: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	cli.SetDependencies(deps)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wire builds the dependency graph from the configuration file.
func wire() (*cli.Dependencies, func(), error) {
	config, err := file.NewConfigStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString(file.KeyDataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	registry := analyzers.NewDefaultRegistry()
	for _, binding := range config.GetStringSlice(file.KeyPropertyAnalyzers) {
		kind, property, ok := strings.Cut(binding, "/")
		if !ok || kind == "" || property == "" {
			logger.Warn("ignoring malformed property analyzer binding %q", binding)
			continue
		}
		registry.Register(analyzers.NewProperty(kind, property))
	}

	queries := services.NewQueryService(store.QueryStore())
	analysis := services.NewAnalysisService(store.AnalysisStore(), registry)

	rate := float64(config.GetInt(file.KeyNotifyRate))
	burst := config.GetInt(file.KeyNotifyBurst)
	sink := notify.NewMultiSink(
		store.NotificationStore(),
		notify.NewRateLimitedSink(notify.NewConsoleSink(os.Stdout), rate, burst),
	)

	watcher := services.NewWatchService(
		store.RevisionStore(),
		analysis,
		store.AnalysisStore(),
		queries,
		authz.AllowAll{},
		sink,
	)

	queue := services.NewQueue(
		store.TaskStore(),
		watcher,
		time.Duration(config.GetInt(file.KeyPollMS))*time.Millisecond,
		config.GetInt(file.KeyMaxAttempts),
	)

	deps := &cli.Dependencies{
		Queries:       queries,
		Analysis:      analysis,
		Watcher:       watcher,
		Notifications: store.NotificationStore(),
		Revisions:     store.RevisionStore(),
		Queue:         queue,
		Config:        config,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}
	return deps, cleanup, nil
}
