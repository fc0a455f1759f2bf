// Package cli provides the wordwatch command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
	"github.com/custodia-labs/wordwatch/internal/core/services"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands run against, injected by the composition root
// before Execute.
var (
	queryService       driving.QueryManager
	analysisService    driving.AnalysisService
	watchService       driving.ChangeWatcher
	notificationReader driving.NotificationReader
	revisionStore      driven.RevisionRecorder
	taskQueue          *services.Queue
	configStore        driven.ConfigStore
)

// verbose enables debug logging for all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wordwatch",
	Short: "Watch wiki documents for word mentions",
	Long: `Wordwatch watches a directory of documents and notifies users when
words or phrases they care about appear in, or disappear from, a
document revision.

Queries are whole-word matches and support * and ? wildcards with
backslash escapes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Dependencies bundles everything the commands need. The composition
// root builds it once and hands it to SetDependencies.
type Dependencies struct {
	Queries       driving.QueryManager
	Analysis      driving.AnalysisService
	Watcher       driving.ChangeWatcher
	Notifications driving.NotificationReader
	Revisions     driven.RevisionRecorder
	Queue         *services.Queue
	Config        driven.ConfigStore
}

// SetDependencies injects the services the commands run against.
func SetDependencies(deps *Dependencies) {
	if deps == nil {
		return
	}
	queryService = deps.Queries
	analysisService = deps.Analysis
	watchService = deps.Watcher
	notificationReader = deps.Notifications
	revisionStore = deps.Revisions
	taskQueue = deps.Queue
	configStore = deps.Config
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
