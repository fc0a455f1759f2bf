package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordwatch/internal/adapters/driving/tryui"
)

var tryCmd = &cobra.Command{
	Use:   "try [query]",
	Short: "Try a query interactively",
	Long: `Launches an interactive tester where a query and a sample text are
typed side by side and whole-word matches are highlighted as you type.
Nothing is stored.

Controls:
  Tab  - Switch between query and text
  Esc  - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTry,
}

func init() {
	rootCmd.AddCommand(tryCmd)
}

func runTry(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	// Panic recovery to get stack traces out of the alternate screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in tester: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	initialQuery := ""
	if len(args) > 0 {
		initialQuery = args[0]
	}

	app, err := tryui.NewApp(analysisService, initialQuery)
	if err != nil {
		return fmt.Errorf("failed to create tester: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tester error: %w", err)
	}

	return nil
}
