package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before its latest
// write is recorded as a revision. Editors emit bursts of write events
// per save; the debounce collapses each burst into one revision.
const DefaultDebounce = 200 * time.Millisecond

// Enqueuer submits recorded revisions for analysis.
// Implemented by services.Queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, documentID, version string) error
}

// Source watches a root directory and records file changes as document
// revisions.
type Source struct {
	rootPath  string
	author    string
	debounce  time.Duration
	revisions driven.RevisionRecorder
	tasks     Enqueuer

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// New creates a filesystem source over rootPath. Revisions are
// attributed to author. A zero debounce selects DefaultDebounce.
func New(rootPath, author string, debounce time.Duration, revisions driven.RevisionRecorder, tasks Enqueuer) *Source {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Source{
		rootPath:  rootPath,
		author:    author,
		debounce:  debounce,
		revisions: revisions,
		tasks:     tasks,
		timers:    make(map[string]*time.Timer),
	}
}

// Validate checks that the root path exists and is a directory.
func (s *Source) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("root path does not exist: %s", s.rootPath)
	}
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", s.rootPath)
	}
	return nil
}

// Seed records a first revision for every visible file under the root
// that has no recorded revisions yet. Files already known are left
// alone; their next write produces the next revision.
func (s *Source) Seed(ctx context.Context) error {
	if err := s.Validate(ctx); err != nil {
		return err
	}

	return filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if isHidden(path) {
			if d.IsDir() && path != s.rootPath {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		docID, idErr := DocumentID(s.rootPath, path)
		if idErr != nil {
			return idErr
		}
		_, verErr := s.revisions.LatestVersion(ctx, docID)
		if verErr == nil {
			return nil // Already recorded
		}
		if !errors.Is(verErr, domain.ErrNotFound) {
			return verErr
		}
		return s.recordChange(ctx, path)
	})
}

// Run watches the root directory until the context is cancelled.
// Subdirectories are watched recursively; hidden files and directories
// are ignored.
func (s *Source) Run(ctx context.Context) error {
	if err := s.Validate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("source is closed")
	}
	s.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addDirs(watcher, s.rootPath); err != nil {
		return fmt.Errorf("watching directories: %w", err)
	}
	logger.Info("watching %s", s.rootPath)

	for {
		select {
		case <-ctx.Done():
			s.cancelTimers()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(ctx, watcher, event)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", watchErr)
		}
	}
}

// Close stops pending debounce timers. Idempotent.
func (s *Source) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancelTimers()
	return nil
}

// handleEvent routes one fsnotify event. Writes and creates are
// debounced; removes and renames are recorded immediately.
func (s *Source) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	if isHidden(event.Name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return // Gone already; a remove event follows
		}
		if info.IsDir() {
			if err := addDirs(watcher, event.Name); err != nil {
				logger.Error("watching new directory %s: %v", event.Name, err)
			}
			s.scheduleTree(ctx, event.Name)
			return
		}
		s.scheduleRecord(ctx, event.Name)
	case event.Op.Has(fsnotify.Write):
		if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
			return
		}
		s.scheduleRecord(ctx, event.Name)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if err := s.recordDeletion(ctx, event.Name); err != nil {
			logger.Error("recording deletion of %s: %v", event.Name, err)
		}
	}
}

// scheduleRecord arms (or re-arms) the debounce timer for one file.
func (s *Source) scheduleRecord(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if timer, ok := s.timers[path]; ok {
		timer.Reset(s.debounce)
		return
	}
	s.timers[path] = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		delete(s.timers, path)
		closed := s.closed
		s.mu.Unlock()
		if closed || ctx.Err() != nil {
			return
		}
		if err := s.recordChange(ctx, path); err != nil {
			logger.Error("recording change to %s: %v", path, err)
		}
	})
}

// scheduleTree schedules every visible file under dir, for directories
// created (or moved in) after the watch started.
func (s *Source) scheduleTree(ctx context.Context, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best effort, the watcher catches up later
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			s.scheduleRecord(ctx, path)
		}
		return nil
	})
}

// recordChange reads the file and appends a new revision, unless the
// content is unchanged from the latest recorded revision.
func (s *Source) recordChange(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Deleted between event and debounce fire
		}
		return fmt.Errorf("reading file: %w", err)
	}

	docID, err := DocumentID(s.rootPath, path)
	if err != nil {
		return err
	}

	previous, err := s.latestVersion(ctx, docID)
	if err != nil {
		return err
	}
	if previous != "" {
		prevRev, prevErr := s.revisions.GetRevision(ctx, docID, previous)
		if prevErr == nil && prevRev.Content == string(content) {
			return nil // Nothing changed
		}
	}

	return s.appendRevision(ctx, docID, previous, string(content))
}

// recordDeletion appends an empty revision for a removed file, so
// watchers of its words get removal notifications.
func (s *Source) recordDeletion(ctx context.Context, path string) error {
	docID, err := DocumentID(s.rootPath, path)
	if err != nil {
		return err
	}

	previous, err := s.latestVersion(ctx, docID)
	if err != nil || previous == "" {
		return err // Unknown document, nothing to tear down
	}
	prevRev, err := s.revisions.GetRevision(ctx, docID, previous)
	if err == nil && prevRev.Content == "" {
		return nil // Already recorded as gone
	}

	return s.appendRevision(ctx, docID, previous, "")
}

// appendRevision persists the next revision of a document and enqueues
// it for analysis.
func (s *Source) appendRevision(ctx context.Context, docID, previous, content string) error {
	version := "1"
	if previous != "" {
		n, err := strconv.Atoi(previous)
		if err != nil {
			return fmt.Errorf("unexpected version %q for %s: %w", previous, docID, err)
		}
		version = strconv.Itoa(n + 1)
	}

	rev := &domain.DocumentRevision{
		Ref:             domain.DocumentVersionReference{DocumentID: docID, Version: version},
		PreviousVersion: previous,
		Title:           DocumentTitle(docID),
		Content:         content,
		Author:          s.author,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.revisions.SaveRevision(ctx, rev); err != nil {
		return fmt.Errorf("saving revision: %w", err)
	}
	logger.Debug("recorded %s", rev.Ref.String())

	if err := s.tasks.Enqueue(ctx, docID, version); err != nil {
		return fmt.Errorf("enqueuing revision: %w", err)
	}
	return nil
}

// latestVersion returns the document's head version, or empty for an
// unknown document.
func (s *Source) latestVersion(ctx context.Context, docID string) (string, error) {
	version, err := s.revisions.LatestVersion(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading latest version: %w", err)
	}
	return version, nil
}

// cancelTimers stops all pending debounce timers.
func (s *Source) cancelTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, timer := range s.timers {
		timer.Stop()
		delete(s.timers, path)
	}
}

// addDirs adds dir and all visible subdirectories to the watcher.
func addDirs(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isHidden(path) && path != dir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// isHidden reports whether any element of the path starts with a dot.
// The "." and ".." elements do not count as hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
