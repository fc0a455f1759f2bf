// Package match implements the whole-token pattern engine: compiling a
// words query (with `*`/`?` wildcards and `\` escapes) into a regular
// expression, and scanning text fragments for token matches.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// Named capture groups for the three ways a token can sit in a fragment.
// The scanner uses them to recover offsets that exclude the separating
// whitespace.
const (
	groupPrefix = "prefix" // token preceded by whitespace
	groupSuffix = "suffix" // token followed by whitespace
	groupAlone  = "alone"  // token is the entire fragment
)

// Pattern is a compiled words query. It matches the query text as a
// whole token only: preceded by whitespace or start-of-fragment, and
// followed by whitespace or end-of-fragment. Compilation is pure; a
// Pattern is reusable across any number of fragments.
type Pattern struct {
	query string
	re    *regexp.Regexp

	prefixIdx int
	suffixIdx int
	aloneIdx  int
}

// Compile translates a words query into a whole-token Pattern.
//
// Matching is case-insensitive: the query is folded to lowercase here
// and fragments are folded at scan time (folding both sides is cheaper
// than a case-insensitive engine flag). An unescaped `*` matches any
// run of characters including the empty run; an unescaped `?` matches
// exactly one character. A backslash escapes the next character; the
// backslash itself is dropped for characters with no special meaning.
func Compile(query string) (*Pattern, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	inner := expand(strings.ToLower(query))
	re, err := regexp.Compile(fmt.Sprintf(
		`(\s(?P<%[2]s>%[1]s))|((?P<%[3]s>%[1]s)\s)|(^(?P<%[4]s>%[1]s)$)`,
		inner, groupPrefix, groupSuffix, groupAlone))
	if err != nil {
		return nil, fmt.Errorf("compiling query %q: %w", query, err)
	}

	return &Pattern{
		query:     query,
		re:        re,
		prefixIdx: re.SubexpIndex(groupPrefix),
		suffixIdx: re.SubexpIndex(groupSuffix),
		aloneIdx:  re.SubexpIndex(groupAlone),
	}, nil
}

// Query returns the original query text.
func (p *Pattern) Query() string {
	return p.query
}

// expand walks the folded query character by character, quoting runs of
// literal text and splicing in wildcard metacharacters outside the
// quoted blocks so they keep their meaning.
func expand(query string) string {
	var out strings.Builder
	var literal []rune

	flush := func() {
		if len(literal) > 0 {
			out.WriteString(regexp.QuoteMeta(string(literal)))
			literal = literal[:0]
		}
	}

	escaped := false
	for _, ch := range query {
		switch {
		case escaped:
			// Whatever follows a backslash is taken literally; the
			// backslash itself is dropped.
			literal = append(literal, ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '*':
			flush()
			out.WriteString(".*")
		case ch == '?':
			flush()
			out.WriteString(".")
		default:
			literal = append(literal, ch)
		}
	}
	// A trailing lone backslash escapes nothing and is dropped.
	flush()

	return out.String()
}
