// Package tryui provides the interactive query tester: a small
// terminal UI where a query and a sample text are typed side by side
// and matches are highlighted as you type.
package tryui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
)

// focus identifies which input currently receives keystrokes.
type focus int

const (
	focusQuery focus = iota
	focusText
)

// App is the bubbletea model of the query tester.
type App struct {
	styles   *Styles
	analysis driving.AnalysisService

	query textinput.Model
	text  textinput.Model
	focus focus

	matches  []domain.Localization
	probeErr error
	width    int
}

// NewApp creates the tester. The initial query may be empty.
func NewApp(analysis driving.AnalysisService, initialQuery string) (*App, error) {
	if analysis == nil {
		return nil, errors.New("analysis service is required")
	}

	query := textinput.New()
	query.Placeholder = "word or phrase, * and ? wildcards"
	query.CharLimit = 256
	query.Width = 50
	query.SetValue(initialQuery)
	query.Focus()

	text := textinput.New()
	text.Placeholder = "sample text to scan"
	text.CharLimit = 1024
	text.Width = 50

	app := &App{
		styles:   DefaultStyles(),
		analysis: analysis,
		query:    query,
		text:     text,
		focus:    focusQuery,
		width:    80,
	}
	app.refresh()
	return app, nil
}

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "tab", "shift+tab", "enter":
			a.toggleFocus()
			return a, textinput.Blink
		}
	}

	var cmd tea.Cmd
	if a.focus == focusQuery {
		a.query, cmd = a.query.Update(msg)
	} else {
		a.text, cmd = a.text.Update(msg)
	}
	a.refresh()
	return a, cmd
}

// View renders the tester.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("wordwatch query tester"))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Label.Render("Query"))
	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.query.View()))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Label.Render("Text"))
	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.text.View()))
	b.WriteString("\n\n")

	b.WriteString(a.resultView())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("tab: switch field • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

// SetQuery replaces the query input value.
func (a *App) SetQuery(query string) {
	a.query.SetValue(query)
	a.refresh()
}

// SetText replaces the sample text value.
func (a *App) SetText(text string) {
	a.text.SetValue(text)
	a.refresh()
}

// Matches returns the matches of the current query against the
// current text.
func (a *App) Matches() []domain.Localization {
	return a.matches
}

func (a *App) toggleFocus() {
	if a.focus == focusQuery {
		a.focus = focusText
		a.query.Blur()
		a.text.Focus()
	} else {
		a.focus = focusQuery
		a.text.Blur()
		a.query.Focus()
	}
}

// refresh recomputes the matches for the current inputs.
func (a *App) refresh() {
	a.matches = nil
	a.probeErr = nil

	queryText := a.query.Value()
	if strings.TrimSpace(queryText) == "" {
		return
	}

	matches, err := a.analysis.Probe(queryText, []string{a.text.Value()})
	if err != nil {
		a.probeErr = err
		return
	}
	a.matches = matches
}

// resultView renders the outcome section: an error, a miss, or the
// sample with match spans highlighted.
func (a *App) resultView() string {
	if a.probeErr != nil {
		return a.styles.Error.Render(fmt.Sprintf("invalid query: %v", a.probeErr))
	}
	if strings.TrimSpace(a.query.Value()) == "" {
		return a.styles.Help.Render("type a query to see matches")
	}
	if len(a.matches) == 0 {
		return a.styles.Help.Render("no matches")
	}

	summary := a.styles.Count.Render(fmt.Sprintf("%d match(es)", len(a.matches)))
	return summary + "\n" + a.highlight(a.text.Value(), a.matches)
}

// highlight renders the text with every matched span styled. Offsets
// refer to the case-folded text; folding is length-preserving for the
// ASCII inputs the tester deals with.
func (a *App) highlight(text string, matches []domain.Localization) string {
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End > len(text) {
			continue
		}
		b.WriteString(text[last:m.Start])
		b.WriteString(a.styles.Match.Render(text[m.Start:m.End]))
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}
