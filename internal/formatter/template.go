// Package formatter lays out the fixed-width comment box: label column,
// justified body and border lines.
package formatter

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/baiacufmt/pkg/justify"
)

const (
	// DefaultLabelWidth is the number of cells between the line prefix and
	// the body column. Continuation lines are indented by this amount.
	DefaultLabelWidth = 21
	// DefaultDetailIndent is how far a variable description sits to the
	// right of the variable name. The description body is narrowed by the
	// same amount so the right border stays put.
	DefaultDetailIndent = 3
	// DefaultSentinel replaces descriptions the user skipped.
	DefaultSentinel = "no description provided"
	// DefaultNoParams is shown in the input params section when nothing was selected.
	DefaultNoParams = "none"
)

// Labels are the section captions printed in the label column.
type Labels struct {
	MethodName   string `yaml:"method_name" toml:"method_name" json:"method_name"`
	Description  string `yaml:"description" toml:"description" json:"description"`
	InputParams  string `yaml:"input_params" toml:"input_params" json:"input_params"`
	OutputParams string `yaml:"output_params" toml:"output_params" json:"output_params"`
}

// Template describes the geometry and wording of the comment box.
//
// A content line is LinePrefix, LabelWidth cells of label or padding, Width
// cells of justified body, then LineSuffix. Border lines are filled to the
// same total width.
type Template struct {
	Width        int    `yaml:"width" toml:"width" json:"width"`
	LabelWidth   int    `yaml:"label_width" toml:"label_width" json:"label_width"`
	DetailIndent int    `yaml:"detail_indent" toml:"detail_indent" json:"detail_indent"`
	LinePrefix   string `yaml:"line_prefix" toml:"line_prefix" json:"line_prefix"`
	LineSuffix   string `yaml:"line_suffix" toml:"line_suffix" json:"line_suffix"`
	BorderFill   string `yaml:"border_fill" toml:"border_fill" json:"border_fill"`
	Sentinel     string `yaml:"sentinel" toml:"sentinel" json:"sentinel"`
	NoParams     string `yaml:"no_params" toml:"no_params" json:"no_params"`
	Labels       Labels `yaml:"labels" toml:"labels" json:"labels"`
}

// DefaultTemplate returns the stock box.
func DefaultTemplate() Template {
	return Template{
		Width:        justify.DecoratedWidth,
		LabelWidth:   DefaultLabelWidth,
		DetailIndent: DefaultDetailIndent,
		LinePrefix:   "//",
		LineSuffix:   " //",
		BorderFill:   "*",
		Sentinel:     DefaultSentinel,
		NoParams:     DefaultNoParams,
		Labels: Labels{
			MethodName:   "Method name:",
			Description:  "Method description:",
			InputParams:  "Input params:",
			OutputParams: "Output params:",
		},
	}
}

// Validate reports geometry that would break the fixed-width invariant.
func (t Template) Validate() error {
	if t.Width < 1 {
		return fmt.Errorf("template width must be positive, got %d", t.Width)
	}
	if t.DetailIndent < 0 || t.DetailIndent >= t.Width {
		return fmt.Errorf("template detail_indent must be in [0, %d), got %d", t.Width, t.DetailIndent)
	}
	if strings.TrimSpace(t.BorderFill) == "" {
		return fmt.Errorf("template border_fill must not be blank")
	}
	for _, l := range []string{t.Labels.MethodName, t.Labels.Description, t.Labels.InputParams, t.Labels.OutputParams} {
		// One leading space separates the label from the prefix.
		if w := runewidth.StringWidth(l) + 1; w > t.LabelWidth {
			return fmt.Errorf("label %q needs %d cells but label_width is %d", l, w, t.LabelWidth)
		}
	}
	return nil
}

// LineWidth is the visual width of every line in the box.
func (t Template) LineWidth() int {
	return runewidth.StringWidth(t.LinePrefix) + t.LabelWidth + t.Width + runewidth.StringWidth(t.LineSuffix)
}

// Label renders a caption padded to fill the prefix and label column.
func (t Template) Label(caption string) string {
	return t.LinePrefix + " " + runewidth.FillRight(caption, t.LabelWidth-1)
}

// Border renders the top and bottom rule.
func (t Template) Border() string {
	prefix := t.LinePrefix + " "
	suffix := t.LineSuffix
	if !strings.HasPrefix(suffix, " ") {
		suffix = " " + suffix
	}
	fill := t.LineWidth() - runewidth.StringWidth(prefix) - runewidth.StringWidth(suffix)
	return prefix + repeatToWidth(t.BorderFill, fill) + suffix
}

func (t Template) nameConfig() justify.Config {
	return justify.Config{
		Width:  t.Width,
		Offset: t.LabelWidth,
		Prefix: t.LinePrefix,
		Suffix: t.LineSuffix,
	}
}

func (t Template) detailConfig() justify.Config {
	return justify.Config{
		Width:     t.Width,
		Offset:    t.LabelWidth + t.DetailIndent,
		Prefix:    t.LinePrefix,
		Suffix:    t.LineSuffix,
		Deduction: t.DetailIndent,
	}
}

// repeatToWidth repeats fill until it covers width cells.
func repeatToWidth(fill string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for runewidth.StringWidth(b.String()) < width {
		b.WriteString(fill)
	}
	result := b.String()
	if runewidth.StringWidth(result) > width {
		result = runewidth.Truncate(result, width, "")
	}
	return result
}
