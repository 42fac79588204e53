package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/baiacufmt/internal/selector"
	"github.com/oakwood-commons/baiacufmt/pkg/core"
	"github.com/oakwood-commons/baiacufmt/pkg/signature"
)

// VariableAnswer is the scripted reply for one argument.
type VariableAnswer struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
}

// Answers replaces the interactive prompts.
//
// Select lists raw candidates or argument names in the order they should be
// documented. A missing list selects every argument; an empty list selects
// none. Variables is keyed by raw candidate or argument name.
type Answers struct {
	Select      []string                  `yaml:"select" toml:"select"`
	Variables   map[string]VariableAnswer `yaml:"variables" toml:"variables"`
	Description string                    `yaml:"description" toml:"description"`
}

// LoadAnswers reads a YAML or TOML answers file, chosen by extension.
func LoadAnswers(path string) (Answers, error) {
	var a Answers
	data, err := os.ReadFile(path)
	if err != nil {
		return a, fmt.Errorf("read answers: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &a)
	default:
		err = yaml.Unmarshal(data, &a)
	}
	if err != nil {
		return a, fmt.Errorf("decode answers %s: %w", path, err)
	}
	return a, nil
}

// Scripted answers prompts from an Answers value and an optional selector.
// Prompts without an answer report core.ErrCancelled so the generator
// applies its defaults.
type Scripted struct {
	*Document
	*Messenger

	Answers  Answers
	Selector *selector.Selector

	current *VariableAnswer
}

var _ core.Host = (*Scripted)(nil)

// MultiSelect picks options by Selector, then by Answers.Select, else all.
func (s *Scripted) MultiSelect(ctx context.Context, _ string, options []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	args := make([]signature.Argument, len(options))
	for i, o := range options {
		args[i] = signature.ParseArgument(i, o)
	}

	if s.Selector != nil {
		picked, err := s.Selector.Filter(args)
		if err != nil {
			return nil, err
		}
		return raws(picked), nil
	}
	if s.Answers.Select == nil {
		return append([]string(nil), options...), nil
	}

	out := make([]string, 0, len(s.Answers.Select))
	for _, want := range s.Answers.Select {
		a, ok := findArgument(args, want)
		if !ok {
			return nil, fmt.Errorf("answers select %q matches no argument of %v", want, options)
		}
		out = append(out, a.Raw)
	}
	return out, nil
}

// TextInput answers the rename and description prompts issued by core.
func (s *Scripted) TextInput(ctx context.Context, prompt, value string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case prompt == core.PromptRename:
		s.current = s.lookup(value)
		if s.current == nil || s.current.Name == "" {
			return "", core.ErrCancelled
		}
		return s.current.Name, nil
	case strings.HasPrefix(prompt, core.PromptVariableDescription):
		ans := s.current
		s.current = nil
		if ans == nil || ans.Description == "" {
			return "", core.ErrCancelled
		}
		return ans.Description, nil
	case strings.HasPrefix(prompt, core.PromptFunctionDescription):
		if s.Answers.Description == "" {
			return "", core.ErrCancelled
		}
		return s.Answers.Description, nil
	default:
		return "", core.ErrCancelled
	}
}

func (s *Scripted) lookup(raw string) *VariableAnswer {
	if v, ok := s.Answers.Variables[raw]; ok {
		return &v
	}
	if name := signature.ParseArgument(0, raw).Name; name != "" {
		if v, ok := s.Answers.Variables[name]; ok {
			return &v
		}
	}
	return nil
}

func findArgument(args []signature.Argument, want string) (signature.Argument, bool) {
	want = strings.TrimSpace(want)
	for _, a := range args {
		if a.Raw == want || (a.Name != "" && a.Name == want) {
			return a, true
		}
	}
	return signature.Argument{}, false
}

func raws(args []signature.Argument) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Raw
	}
	return out
}
