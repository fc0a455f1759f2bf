package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wordwatch/internal/adapters/driven/wiki/filesystem"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory of documents",
	Long: `Watches a directory tree, records a revision for every document
change, and evaluates each revision against all saved queries.
Mention and removal notifications are printed as they happen and
recorded for later listing.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchAuthor     string
	watchDebounceMS int
)

func init() {
	watchCmd.Flags().StringVar(&watchAuthor, "author", "", "user to attribute file changes to")
	watchCmd.Flags().IntVar(&watchDebounceMS, "debounce-ms", 0, "quiet period after a write before a revision is recorded")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if revisionStore == nil || taskQueue == nil || watchService == nil {
		return errors.New("watch services not configured")
	}

	author := watchAuthor
	if author == "" && configStore != nil {
		author = configStore.GetString(file.KeyAuthor)
	}

	debounce := time.Duration(watchDebounceMS) * time.Millisecond
	if debounce <= 0 && configStore != nil {
		debounce = time.Duration(configStore.GetInt(file.KeyDebounceMS)) * time.Millisecond
	}
	if debounce <= 0 {
		debounce = filesystem.DefaultDebounce
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := filesystem.New(args[0], author, debounce, revisionStore, taskQueue)
	defer source.Close()

	if err := source.Validate(ctx); err != nil {
		return fmt.Errorf("cannot watch %s: %w", args[0], err)
	}

	cmd.Printf("Seeding revisions from %s...\n", args[0])
	if err := source.Seed(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	go func() {
		if err := taskQueue.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("task queue stopped: %v", err)
		}
	}()
	defer taskQueue.Stop()

	cmd.Printf("Watching %s. Press Ctrl+C to stop.\n", args[0])
	if err := source.Run(ctx); err != nil {
		return fmt.Errorf("watcher failed: %w", err)
	}

	cmd.Println("Stopped.")
	return nil
}
