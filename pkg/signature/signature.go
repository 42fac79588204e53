// Package signature pulls the return type, function name and argument list
// out of a single line of C-style source.
//
// This is a heuristic single-line matcher built from three regular
// expressions. It does not parse C or C++ grammar, does not follow
// declarations across lines, and does not understand templates, function
// pointers or default arguments beyond what the expressions happen to accept.
package signature

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Step names one of the three extraction passes.
type Step string

const (
	StepReturnType Step = "return type"
	StepName       Step = "function name"
	StepArguments  Step = "arguments"
)

var (
	returnTypeRe = regexp.MustCompile(`([\w\s*]+?)\s+\w+\s*\(.*\)`)
	nameRe       = regexp.MustCompile(`^\s*[\w\s*]+\s+(\w+)\s*\(`)
	argumentsRe  = regexp.MustCompile(`\((.*)\)`)
	identRe      = regexp.MustCompile(`\w+$`)
)

// ErrExtraction is wrapped by every ExtractionError.
var ErrExtraction = errors.New("signature extraction failed")

// ExtractionError reports which pass failed and on what line.
type ExtractionError struct {
	Step Step
	Line string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s not found on function signature %q", e.Step, e.Line)
}

func (e *ExtractionError) Unwrap() error { return ErrExtraction }

// FunctionSignature is the result of running all three passes on one line.
type FunctionSignature struct {
	ReturnType   string
	Name         string
	RawArguments string
}

// Arguments splits RawArguments into candidates.
func (s FunctionSignature) Arguments() []Argument {
	return SplitArguments(s.RawArguments)
}

// Extract runs the return type, name and argument passes in that order and
// stops at the first failure.
func Extract(line string) (FunctionSignature, error) {
	var sig FunctionSignature
	var err error
	if sig.ReturnType, err = ReturnType(line); err != nil {
		return FunctionSignature{}, err
	}
	if sig.Name, err = FunctionName(line); err != nil {
		return FunctionSignature{}, err
	}
	if sig.RawArguments, err = Arguments(line); err != nil {
		return FunctionSignature{}, err
	}
	return sig, nil
}

// ReturnType returns the leftmost run of word characters, whitespace or '*'
// that precedes an identifier followed by a parenthesised list.
func ReturnType(line string) (string, error) {
	m := returnTypeRe.FindStringSubmatch(line)
	if m == nil {
		return "", &ExtractionError{Step: StepReturnType, Line: line}
	}
	return strings.TrimSpace(m[1]), nil
}

// FunctionName returns the identifier immediately before the first '('.
func FunctionName(line string) (string, error) {
	m := nameRe.FindStringSubmatch(line)
	if m == nil {
		return "", &ExtractionError{Step: StepName, Line: line}
	}
	return m[1], nil
}

// Arguments returns the text between the first '(' and the last ')'.
func Arguments(line string) (string, error) {
	m := argumentsRe.FindStringSubmatch(line)
	if m == nil {
		return "", &ExtractionError{Step: StepArguments, Line: line}
	}
	return m[1], nil
}

// Argument is one comma-separated entry of an argument list.
type Argument struct {
	Index int    // Position in the argument list, starting at 0
	Raw   string // Trimmed source text, e.g. "const char *name"
	Type  string // Everything before Name, e.g. "const char *"
	Name  string // Trailing identifier, empty for unnamed parameters
}

// SplitArguments splits a raw argument list on commas. Empty entries and a
// lone "void" are dropped. Nested commas (function pointers, templates) are
// not understood.
func SplitArguments(raw string) []Argument {
	parts := strings.Split(raw, ",")
	out := make([]Argument, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "void" {
			continue
		}
		out = append(out, ParseArgument(len(out), p))
	}
	return out
}

// ParseArgument splits one trimmed argument into type and trailing name.
func ParseArgument(index int, raw string) Argument {
	arg := Argument{Index: index, Raw: raw, Type: raw}
	name := identRe.FindString(raw)
	if name == "" {
		return arg
	}
	rest := strings.TrimSpace(strings.TrimSuffix(raw, name))
	// A single word is a bare type such as "int" in a prototype.
	if rest == "" {
		return arg
	}
	arg.Name = name
	arg.Type = rest
	return arg
}
