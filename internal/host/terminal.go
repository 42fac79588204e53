package host

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/oakwood-commons/baiacufmt/pkg/core"
)

// Terminal answers prompts interactively with huh forms.
type Terminal struct {
	*Document
	*Messenger

	// Input and Output override the terminal used by the forms.
	Input  io.Reader
	Output io.Writer
	// Accessible renders plain line-based prompts instead of the TUI.
	Accessible bool
}

var _ core.Host = (*Terminal)(nil)

// MultiSelect shows a checklist. Selections come back in option order.
func (t *Terminal) MultiSelect(ctx context.Context, title string, options []string) ([]string, error) {
	var selected []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&selected)
	if err := t.run(ctx, field); err != nil {
		return nil, err
	}
	return selected, nil
}

// TextInput shows a single-line input pre-filled with value.
func (t *Terminal) TextInput(ctx context.Context, prompt, value string) (string, error) {
	text := value
	field := huh.NewInput().
		Title(prompt).
		Value(&text)
	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return text, nil
}

func (t *Terminal) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeBase16()).
		WithAccessible(t.Accessible)
	if t.Input != nil {
		form = form.WithInput(t.Input)
	}
	if t.Output != nil {
		form = form.WithOutput(t.Output)
	}
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return core.ErrCancelled
	}
	return err
}
