package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/baiacufmt/internal/formatter"
	"github.com/oakwood-commons/baiacufmt/pkg/signature"
)

type message struct {
	kind MessageKind
	text string
}

// fakeHost replays canned answers and records every call in order.
type fakeHost struct {
	lines     []string
	selection []string
	selectErr error
	inputs    []string // consumed in order; "<cancel>" returns ErrCancelled
	calls     []string
	messages  []message
}

func (f *fakeHost) LineAt(_ context.Context, index int) (string, error) {
	f.calls = append(f.calls, "line")
	if index < 0 || index >= len(f.lines) {
		return "", ErrLineOutOfRange
	}
	return f.lines[index], nil
}

func (f *fakeHost) MultiSelect(_ context.Context, title string, options []string) ([]string, error) {
	f.calls = append(f.calls, "select:"+title+":"+strings.Join(options, "|"))
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selection, nil
}

func (f *fakeHost) TextInput(_ context.Context, prompt, value string) (string, error) {
	f.calls = append(f.calls, "input:"+prompt+":"+value)
	if len(f.inputs) == 0 {
		return "", ErrCancelled
	}
	next := f.inputs[0]
	f.inputs = f.inputs[1:]
	if next == "<cancel>" {
		return "", ErrCancelled
	}
	return next, nil
}

func (f *fakeHost) ShowMessage(kind MessageKind, text string) {
	f.messages = append(f.messages, message{kind: kind, text: text})
}

func newGenerator(t *testing.T, host Host, opts ...Option) *Generator {
	t.Helper()
	g, err := New(host, opts...)
	require.NoError(t, err)
	return g
}

func TestGenerateReadsLineBelowCursor(t *testing.T) {
	host := &fakeHost{
		lines:     []string{"// cursor here", "int add(int a, int b)"},
		selection: []string{"int a", "int b"},
		inputs:    []string{"a", "first operand", "b", "second operand", "Adds two integers"},
	}
	out, err := newGenerator(t, host).Generate(context.Background(), 0)
	require.NoError(t, err)

	want, err := formatter.Assemble(formatter.Block{
		Name:        "add",
		Description: "Adds two integers",
		ReturnType:  "int",
		Variables: []formatter.VariableEntry{
			{Name: "a", Description: "first operand"},
			{Name: "b", Description: "second operand"},
		},
	}, formatter.DefaultTemplate())
	require.NoError(t, err)
	assert.Equal(t, want, out)

	assert.Equal(t, []string{
		"line",
		"select:Select variables:int a|int b",
		"input:Name of variable to show on comment block:int a",
		"input:Description for variable a:",
		"input:Name of variable to show on comment block:int b",
		"input:Description for variable b:",
		"input:Description for function add:",
	}, host.calls)
	require.Len(t, host.messages, 1)
	assert.Equal(t, MessageInfo, host.messages[0].kind)
}

func TestGenerateWithCursorLine(t *testing.T) {
	host := &fakeHost{lines: []string{"void tick()"}}
	out, err := newGenerator(t, host, WithCursorLine(true)).Generate(context.Background(), 0)
	require.NoError(t, err)
	assert.Contains(t, out, "tick")
	// No arguments means no selection prompt.
	assert.Equal(t, []string{"line", "input:Description for function tick:"}, host.calls)
}

func TestGenerateLineOutOfRange(t *testing.T) {
	host := &fakeHost{lines: []string{"int add(int a, int b)"}}
	out, err := newGenerator(t, host).Generate(context.Background(), 0)
	require.ErrorIs(t, err, ErrLineOutOfRange)
	assert.Empty(t, out)
	require.Len(t, host.messages, 1)
	assert.Equal(t, MessageError, host.messages[0].kind)
}

func TestGenerateExtractionFailureEmitsNothing(t *testing.T) {
	host := &fakeHost{}
	out, err := newGenerator(t, host).GenerateFromLine(context.Background(), "int x = 5;")
	require.ErrorIs(t, err, signature.ErrExtraction)
	assert.Empty(t, out)
	assert.Empty(t, host.calls)
	require.Len(t, host.messages, 1)
	assert.Equal(t, message{kind: MessageError, text: "Return type not found on function signature"}, host.messages[0])
}

func TestGenerateSelectionCancelled(t *testing.T) {
	host := &fakeHost{selectErr: ErrCancelled}
	out, err := newGenerator(t, host).GenerateFromLine(context.Background(), "int add(int a, int b)")
	require.ErrorIs(t, err, ErrSelectionCancelled)
	assert.Empty(t, out)
	require.Len(t, host.messages, 1)
	assert.Equal(t, MessageError, host.messages[0].kind)
}

func TestGenerateHostErrorPropagates(t *testing.T) {
	boom := errors.New("terminal gone")
	host := &fakeHost{selectErr: boom}
	_, err := newGenerator(t, host).GenerateFromLine(context.Background(), "int add(int a, int b)")
	require.ErrorIs(t, err, boom)
}

func TestGenerateCancelledInputsFallBack(t *testing.T) {
	host := &fakeHost{
		selection: []string{"int b"},
		inputs:    []string{"<cancel>", "   ", "<cancel>"},
	}
	out, err := newGenerator(t, host).GenerateFromLine(context.Background(), "int add(int a, int b)")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[2], "// Method description: "+formatter.DefaultSentinel)
	assert.Contains(t, lines[3], "// Input params:       int b")
	assert.Contains(t, lines[4], formatter.DefaultSentinel)
}

func TestGenerateEmptySelection(t *testing.T) {
	host := &fakeHost{selection: []string{}, inputs: []string{"does things"}}
	out, err := newGenerator(t, host).GenerateFromLine(context.Background(), "int add(int a, int b)")
	require.NoError(t, err)
	assert.Contains(t, out, "// Input params:       "+formatter.DefaultNoParams)
}

func TestGenerateContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	host := &fakeHost{selection: []string{"int a"}}
	_, err := newGenerator(t, host).GenerateFromLine(ctx, "int add(int a, int b)")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	tpl := formatter.DefaultTemplate()
	tpl.Width = 0
	_, err = New(&fakeHost{}, WithTemplate(tpl))
	require.Error(t, err)
}

func TestMessageKindString(t *testing.T) {
	assert.Equal(t, "info", MessageInfo.String())
	assert.Equal(t, "warning", MessageWarning.String())
	assert.Equal(t, "error", MessageError.String())
	assert.Equal(t, "MessageKind(9)", MessageKind(9).String())
}
