package formatter

import (
	"fmt"
	"strings"
)

// Block is everything needed to render one comment box.
type Block struct {
	Name        string
	Description string
	ReturnType  string
	Variables   []VariableEntry
}

// Assemble renders the full comment box: border, method name, description,
// input params, output params, border. Every line ends with a newline and
// has Template.LineWidth cells unless a single word is wider than the body.
func Assemble(b Block, tpl Template) (string, error) {
	if err := tpl.Validate(); err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}
	border := tpl.Border()

	var out strings.Builder
	out.WriteString(border)
	out.WriteByte('\n')
	out.WriteString(FormatDescription(tpl.Label(tpl.Labels.MethodName), b.Name, tpl))
	out.WriteString(FormatDescription(tpl.Label(tpl.Labels.Description), orSentinel(b.Description, tpl), tpl))
	out.WriteString(FormatVariables(tpl.Label(tpl.Labels.InputParams), b.Variables, tpl))
	out.WriteString(FormatDescription(tpl.Label(tpl.Labels.OutputParams), b.ReturnType, tpl))
	out.WriteString(border)
	out.WriteByte('\n')
	return out.String(), nil
}

func orSentinel(s string, tpl Template) string {
	if strings.TrimSpace(s) == "" {
		return tpl.Sentinel
	}
	return s
}
