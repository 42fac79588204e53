// Package selector picks function arguments with a CEL predicate so that
// documentation can be generated without an interactive selection prompt.
//
// Each argument is exposed to the expression as:
//
//	arg.raw    full source text, e.g. "const char *name"
//	arg.type   text before the name, e.g. "const char *"
//	arg.name   trailing identifier, "" for unnamed parameters
//	index      zero-based position in the argument list
//
// Example: `arg.name != "" && !arg.type.contains("*")`.
package selector

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/baiacufmt/pkg/signature"
)

// Selector is a compiled argument predicate. It is safe for concurrent use.
type Selector struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("arg", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("index", cel.IntType),
		celext.Strings(),
	)
}

// Compile parses and type-checks expr. The expression must yield a bool.
func Compile(expr string) (*Selector, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("selection expression must return bool, got %s", out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Selector{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (s *Selector) String() string { return s.expr }

// Match evaluates the predicate for one argument.
func (s *Selector) Match(a signature.Argument) (bool, error) {
	out, _, err := s.prg.Eval(map[string]interface{}{
		"arg": map[string]string{
			"raw":  a.Raw,
			"type": a.Type,
			"name": a.Name,
		},
		"index": int64(a.Index),
	})
	if err != nil {
		return false, fmt.Errorf("eval error for argument %q: %w", a.Raw, err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("selection expression returned %s, want bool", out.Type())
	}
	return bool(b), nil
}

// Filter keeps the arguments the predicate accepts, preserving order.
func (s *Selector) Filter(args []signature.Argument) ([]signature.Argument, error) {
	out := make([]signature.Argument, 0, len(args))
	for _, a := range args {
		ok, err := s.Match(a)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}
