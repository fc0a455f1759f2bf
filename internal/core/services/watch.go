package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.ChangeWatcher = (*WatchService)(nil)

// WatchService is the change detector and notifier. For one recorded
// revision it fans out across every authorized watching user and each
// of their queries, compares the revision's occurrence count against
// the previous revision's, and emits mention/removal notifications
// through the sink.
type WatchService struct {
	revisions  driven.RevisionProvider
	analysis   driving.AnalysisService
	results    driven.AnalysisStore
	queries    driving.QueryManager
	authorizer driven.Authorizer
	sink       driven.NotificationSink
}

// NewWatchService creates a change watcher. The authorizer may be nil,
// in which case every watching user is evaluated.
func NewWatchService(
	revisions driven.RevisionProvider,
	analysis driving.AnalysisService,
	results driven.AnalysisStore,
	queries driving.QueryManager,
	authorizer driven.Authorizer,
	sink driven.NotificationSink,
) *WatchService {
	return &WatchService{
		revisions:  revisions,
		analysis:   analysis,
		results:    results,
		queries:    queries,
		authorizer: authorizer,
		sink:       sink,
	}
}

// ProcessRevision analyzes one revision for all watchers.
//
// Only failures that prevent computing any result at all (the revision
// itself cannot be loaded, the watcher directory is unreachable)
// propagate and make the task retryable. Everything below user level
// degrades gracefully: a user, query or analyzer failing is logged and
// the rest proceed. Under-notification is preferred over failing the
// whole task.
func (s *WatchService) ProcessRevision(ctx context.Context, documentID, version string) error {
	rev, err := s.revisions.GetRevision(ctx, documentID, version)
	if err != nil {
		return fmt.Errorf("loading revision %s@%s: %w", documentID, version, err)
	}

	users, err := s.queries.Users(ctx)
	if err != nil {
		return fmt.Errorf("listing watching users: %w", err)
	}

	for _, user := range users {
		if !s.canView(ctx, user, documentID) {
			continue
		}

		userQueries, err := s.queries.List(ctx, user)
		if err != nil {
			logger.Warn("listing queries for %s: %v", user, err)
			continue
		}

		for _, query := range userQueries {
			if err := s.processQuery(ctx, rev, query); err != nil {
				logger.Warn("processing query %q for %s on %s: %v", query.Text, user, rev.Ref, err)
			}
		}
	}

	return nil
}

// canView applies the privacy boundary. Errors from the authorizer
// skip the user: better a missed notification than a leaked one.
func (s *WatchService) canView(ctx context.Context, user, documentID string) bool {
	if s.authorizer == nil {
		return true
	}
	ok, err := s.authorizer.CanView(ctx, user, documentID)
	if err != nil {
		logger.Warn("authorization check for %s on %s failed: %v", user, documentID, err)
		return false
	}
	return ok
}

// processQuery runs the compare-and-notify state machine for one query.
func (s *WatchService) processQuery(ctx context.Context, rev *domain.DocumentRevision, query domain.WordsQuery) error {
	current, err := s.analysis.GetOrCompute(ctx, rev, query.Text)
	if err != nil {
		return err
	}

	previous := s.previousResult(ctx, rev, query.Text)

	var notification *domain.Notification
	switch {
	case previous == nil:
		// New document (or unobtainable previous revision): only a
		// non-zero count produces an event.
		if current.Occurrences() > 0 {
			notification = s.newNotification(rev, query, domain.NotificationMention, 0, current.Occurrences(), true)
		}
	case current.Occurrences() > previous.Occurrences():
		notification = s.newNotification(rev, query, domain.NotificationMention,
			previous.Occurrences(), current.Occurrences(), false)
	case current.Occurrences() < previous.Occurrences():
		notification = s.newNotification(rev, query, domain.NotificationRemoval,
			previous.Occurrences(), current.Occurrences(), false)
	}

	if notification == nil {
		return nil
	}

	// Delivery is best-effort; the comparison already happened and
	// retrying the task would not change it.
	if err := s.sink.Notify(ctx, notification); err != nil {
		logger.Warn("delivering %s notification for %q to %s: %v",
			notification.Kind, query.Text, query.Owner, err)
	}
	return nil
}

// previousResult resolves the previous revision's aggregate: from the
// result store when present, recomputed from the previous revision
// otherwise. Returns nil when there is no previous version or it
// cannot be obtained; the caller then applies new-document semantics.
func (s *WatchService) previousResult(ctx context.Context, rev *domain.DocumentRevision, queryText string) *domain.AnalysisResult {
	if rev.IsFirstVersion() {
		return nil
	}

	prevRef := rev.PreviousRef()
	stored, err := s.results.Load(ctx, prevRef, queryText)
	if err == nil {
		return stored
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("loading previous result %s %q: %v", prevRef, queryText, err)
	}

	prevRev, err := s.revisions.GetRevision(ctx, prevRef.DocumentID, prevRef.Version)
	if err != nil {
		logger.Warn("previous revision %s unobtainable, treating %s as new: %v", prevRef, rev.Ref, err)
		return nil
	}

	previous, err := s.analysis.GetOrCompute(ctx, prevRev, queryText)
	if err != nil {
		logger.Warn("recomputing previous result %s %q: %v", prevRef, queryText, err)
		return nil
	}
	return previous
}

func (s *WatchService) newNotification(
	rev *domain.DocumentRevision,
	query domain.WordsQuery,
	kind domain.NotificationKind,
	oldOccurrences, newOccurrences int64,
	isNew bool,
) *domain.Notification {
	return &domain.Notification{
		Kind:           kind,
		Targets:        []string{query.Owner},
		QueryText:      query.Text,
		Document:       rev.Ref,
		Author:         rev.Author,
		IsNew:          isNew,
		OldOccurrences: oldOccurrences,
		NewOccurrences: newOccurrences,
		CreatedAt:      time.Now(),
	}
}
