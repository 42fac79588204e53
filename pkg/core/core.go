// Package core turns one line of C-style source and the user's answers into
// a finished comment block. All editor access goes through the Host
// interface so the flow can run against a terminal, a scripted answers file
// or a test fake.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/baiacufmt/internal/formatter"
	"github.com/oakwood-commons/baiacufmt/pkg/logger"
	"github.com/oakwood-commons/baiacufmt/pkg/signature"
)

var (
	// ErrCancelled is returned by a Host when the user dismisses a prompt.
	ErrCancelled = errors.New("prompt cancelled")
	// ErrSelectionCancelled aborts generation when the variable selection is dismissed.
	ErrSelectionCancelled = errors.New("no variables were selected")
	// ErrLineOutOfRange is returned by a Host when the requested line does not exist.
	ErrLineOutOfRange = errors.New("line out of range")
)

// MessageKind classifies a user-facing notification.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageInfo:
		return "info"
	case MessageWarning:
		return "warning"
	case MessageError:
		return "error"
	default:
		return fmt.Sprintf("MessageKind(%d)", int(k))
	}
}

// Host is the editor surface the generator talks to.
type Host interface {
	// LineAt returns the text of the zero-based line index.
	LineAt(ctx context.Context, index int) (string, error)
	// MultiSelect lets the user pick any subset of options, in pick order.
	MultiSelect(ctx context.Context, title string, options []string) ([]string, error)
	// TextInput asks for free text, pre-filled with value.
	TextInput(ctx context.Context, prompt, value string) (string, error)
	// ShowMessage notifies the user.
	ShowMessage(kind MessageKind, text string)
}

// Prompt texts shown by the generator. The description prompts are
// followed by the variable or function name.
const (
	PromptSelectVariables     = "Select variables"
	PromptRename              = "Name of variable to show on comment block"
	PromptVariableDescription = "Description for variable "
	PromptFunctionDescription = "Description for function "
)

// Generator drives the prompt sequence and renders the block.
type Generator struct {
	Host     Host
	Template formatter.Template
	// ReadCursorLine reads the cursor line itself instead of the line below it.
	ReadCursorLine bool
}

// Option configures the Generator.
type Option func(*Generator)

// WithTemplate overrides the default box template.
func WithTemplate(t formatter.Template) Option {
	return func(g *Generator) {
		g.Template = t
	}
}

// WithCursorLine makes Generate read the cursor line rather than the next one.
func WithCursorLine(enabled bool) Option {
	return func(g *Generator) {
		g.ReadCursorLine = enabled
	}
}

// New creates a Generator with the default template.
func New(host Host, opts ...Option) (*Generator, error) {
	if host == nil {
		return nil, fmt.Errorf("host is required")
	}
	g := &Generator{
		Host:     host,
		Template: formatter.DefaultTemplate(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return g, nil
}

// Generate reads the signature relative to the zero-based cursor line and
// builds the comment block. By default the line below the cursor is used,
// matching where the cursor sits when a header is typed above a function.
func (g *Generator) Generate(ctx context.Context, cursor int) (string, error) {
	index := cursor + 1
	if g.ReadCursorLine {
		index = cursor
	}
	line, err := g.Host.LineAt(ctx, index)
	if err != nil {
		g.Host.ShowMessage(MessageError, fmt.Sprintf("Could not read line %d", index+1))
		return "", fmt.Errorf("read line %d: %w", index+1, err)
	}
	return g.GenerateFromLine(ctx, line)
}

// GenerateFromLine builds the comment block for an already known line.
// Nothing is returned unless every required step succeeds.
func (g *Generator) GenerateFromLine(ctx context.Context, line string) (string, error) {
	lgr := logger.FromContext(ctx)

	sig, err := signature.Extract(line)
	if err != nil {
		var ee *signature.ExtractionError
		if errors.As(err, &ee) {
			g.Host.ShowMessage(MessageError, fmt.Sprintf("%s not found on function signature", capitalize(string(ee.Step))))
		}
		return "", err
	}
	lgr.V(1).Info("extracted signature", "returnType", sig.ReturnType, "name", sig.Name, "arguments", sig.RawArguments)

	vars, err := g.collectVariables(ctx, sig.Arguments())
	if err != nil {
		return "", err
	}

	desc, err := g.optionalText(ctx, PromptFunctionDescription+sig.Name, "", g.Template.Sentinel)
	if err != nil {
		return "", err
	}

	block, err := formatter.Assemble(formatter.Block{
		Name:        sig.Name,
		Description: desc,
		ReturnType:  sig.ReturnType,
		Variables:   vars,
	}, g.Template)
	if err != nil {
		return "", err
	}
	lgr.V(1).Info("assembled comment block", "name", sig.Name, "variables", len(vars))
	g.Host.ShowMessage(MessageInfo, fmt.Sprintf("Comment block generated for %s", sig.Name))
	return block, nil
}

func (g *Generator) collectVariables(ctx context.Context, args []signature.Argument) ([]formatter.VariableEntry, error) {
	if len(args) == 0 {
		return nil, nil
	}
	options := make([]string, len(args))
	for i, a := range args {
		options[i] = a.Raw
	}

	selected, err := g.Host.MultiSelect(ctx, PromptSelectVariables, options)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			g.Host.ShowMessage(MessageError, "No variables were selected")
			return nil, ErrSelectionCancelled
		}
		return nil, err
	}

	vars := make([]formatter.VariableEntry, 0, len(selected))
	for _, raw := range selected {
		name, err := g.optionalText(ctx, PromptRename, raw, raw)
		if err != nil {
			return nil, err
		}
		desc, err := g.optionalText(ctx, PromptVariableDescription+name, "", g.Template.Sentinel)
		if err != nil {
			return nil, err
		}
		vars = append(vars, formatter.VariableEntry{Name: name, Description: desc})
	}
	return vars, nil
}

// optionalText asks for free text and falls back when the prompt is
// dismissed or left blank. Context cancellation still aborts.
func (g *Generator) optionalText(ctx context.Context, prompt, value, fallback string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := g.Host.TextInput(ctx, prompt, value)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return fallback, nil
		}
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return fallback, nil
	}
	return strings.TrimSpace(text), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
