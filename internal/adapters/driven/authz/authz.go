// Package authz provides Authorizer implementations. The filesystem
// wiki has no user model of its own, so the default allows everything;
// the rule-based variant restricts documents by path prefix for hosts
// that need a boundary.
package authz

import (
	"context"
	"strings"

	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// AllowAll grants every user view access to every document.
type AllowAll struct{}

var _ driven.Authorizer = AllowAll{}

// CanView always reports true.
func (AllowAll) CanView(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

// PrefixRules restricts documents under listed path prefixes to the
// users named for that prefix. Documents matching no rule are visible
// to everyone.
type PrefixRules struct {
	rules map[string][]string
}

var _ driven.Authorizer = (*PrefixRules)(nil)

// NewPrefixRules builds an authorizer from prefix -> allowed users.
func NewPrefixRules(rules map[string][]string) *PrefixRules {
	copied := make(map[string][]string, len(rules))
	for prefix, users := range rules {
		copied[prefix] = append([]string(nil), users...)
	}
	return &PrefixRules{rules: copied}
}

// CanView checks the longest matching prefix rule for the document.
func (a *PrefixRules) CanView(_ context.Context, user, documentID string) (bool, error) {
	var match string
	found := false
	for prefix := range a.rules {
		if strings.HasPrefix(documentID, prefix) && (!found || len(prefix) > len(match)) {
			match = prefix
			found = true
		}
	}
	if !found {
		return true, nil
	}
	for _, allowed := range a.rules[match] {
		if allowed == user {
			return true, nil
		}
	}
	return false, nil
}
