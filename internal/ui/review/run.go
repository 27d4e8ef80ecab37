package review

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Options configures Run.
type Options struct {
	Input       io.Reader
	Output      io.Writer
	Document    string
	HistorySize int
	AltScreen   bool
}

// Run shows the interactive review and returns the final model once every
// suggestion has a verdict, the reviewer quits, or ctx is canceled.
func Run(ctx context.Context, suggestions []models.FixSuggestion, opts Options) (Model, error) {
	model := NewModel(opts.Document, suggestions, opts.HistorySize)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return model, fmt.Errorf("review: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return model, fmt.Errorf("review: unexpected model type %T", final)
	}
	return result, nil
}
