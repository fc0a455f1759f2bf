package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/authz"
	"github.com/custodia-labs/wordwatch/internal/adapters/driven/notify"
	"github.com/custodia-labs/wordwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordwatch/internal/analyzers"
	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/services"
)

// fakeNotificationReader serves a fixed notification list.
type fakeNotificationReader struct {
	notifications []domain.Notification

	lastUser  string
	lastLimit int
}

func (f *fakeNotificationReader) List(_ context.Context, user string, limit int) ([]domain.Notification, error) {
	f.lastUser = user
	f.lastLimit = limit

	var out []domain.Notification
	for _, n := range f.notifications {
		if user != "" && !targetsUser(n.Targets, user) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func targetsUser(targets []string, user string) bool {
	for _, t := range targets {
		if t == user {
			return true
		}
	}
	return false
}

// setupTestCLI wires the commands to in-memory services and returns
// the buffer command output is written to.
func setupTestCLI(t *testing.T) (*bytes.Buffer, *fakeNotificationReader) {
	t.Helper()

	queries := services.NewQueryService(memory.NewQueryStore())
	analysisStore := memory.NewAnalysisStore()
	analysis := services.NewAnalysisService(analysisStore, analyzers.NewDefaultRegistry())
	revisions := memory.NewRevisionStore()
	watcher := services.NewWatchService(revisions, analysis, analysisStore, queries, authz.AllowAll{}, notify.NewConsoleSink(io.Discard))
	queue := services.NewQueue(memory.NewTaskStore(), watcher, 0, 0)
	reader := &fakeNotificationReader{}

	SetDependencies(&Dependencies{
		Queries:       queries,
		Analysis:      analysis,
		Watcher:       watcher,
		Notifications: reader,
		Revisions:     revisions,
		Queue:         queue,
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		clearDependencies()
		resetFlags()
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	return buf, reader
}

// clearDependencies unsets every injected service.
func clearDependencies() {
	SetDependencies(&Dependencies{})
}

// resetFlags restores the package-level flag values between tests.
func resetFlags() {
	queryUser = ""
	notificationsUser = ""
	notificationsLimit = 20
	watchAuthor = ""
	watchDebounceMS = 0
	verbose = false
}

// execute runs the root command with the given arguments.
func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}
