package tryui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordwatch/internal/analyzers"
	"github.com/custodia-labs/wordwatch/internal/core/services"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	analysis := services.NewAnalysisService(memory.NewAnalysisStore(), analyzers.NewDefaultRegistry())
	app, err := NewApp(analysis, "")
	require.NoError(t, err)
	return app
}

func TestNewApp_RequiresAnalysisService(t *testing.T) {
	_, err := NewApp(nil, "")
	assert.Error(t, err)
}

func TestApp_EmptyQueryShowsHint(t *testing.T) {
	app := newTestApp(t)

	assert.Empty(t, app.Matches())
	assert.Contains(t, app.View(), "type a query to see matches")
}

func TestApp_MatchesHighlighted(t *testing.T) {
	app := newTestApp(t)

	app.SetQuery("release")
	app.SetText("the release date")

	require.Len(t, app.Matches(), 1)
	assert.Contains(t, app.View(), "1 match(es)")
}

func TestApp_WildcardQuery(t *testing.T) {
	app := newTestApp(t)

	app.SetQuery("rel*")
	app.SetText("release related retry")

	// The greedy * extends one span over "release related".
	matches := app.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Start)
	assert.Equal(t, 15, matches[0].End)
}

func TestApp_NoMatches(t *testing.T) {
	app := newTestApp(t)

	app.SetQuery("launch")
	app.SetText("nothing relevant here")

	assert.Empty(t, app.Matches())
	assert.Contains(t, app.View(), "no matches")
}

func TestApp_SuffixBoundaryMatch(t *testing.T) {
	app := newTestApp(t)

	app.SetQuery("release")
	app.SetText("prerelease builds")

	// The token only needs a boundary on one side; the trailing space
	// after "prerelease" lets the suffix alternative fire mid-word.
	matches := app.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].Start)
	assert.Equal(t, 10, matches[0].End)
}

func TestApp_TypingRecomputesMatches(t *testing.T) {
	app := newTestApp(t)
	app.SetText("the release date")

	for _, r := range "release" {
		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		app = model.(*App)
	}

	assert.Len(t, app.Matches(), 1)
}

func TestApp_TabSwitchesFocus(t *testing.T) {
	app := newTestApp(t)
	require.True(t, app.query.Focused())

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)

	assert.False(t, app.query.Focused())
	assert.True(t, app.text.Focused())
}

func TestApp_EscQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_InitialQuery(t *testing.T) {
	analysis := services.NewAnalysisService(memory.NewAnalysisStore(), analyzers.NewDefaultRegistry())
	app, err := NewApp(analysis, "deadline")
	require.NoError(t, err)

	app.SetText("the deadline moved")
	assert.Len(t, app.Matches(), 1)
}
