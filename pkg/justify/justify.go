// Package justify wraps a single paragraph into fixed-width lines and
// distributes spare whitespace between words so both edges line up.
//
// Two modes are provided. Bare output carries no decoration and uses
// BareWidth columns. Decorated output wraps every line in a prefix and a
// suffix (for example a "//" comment border) and uses DecoratedWidth columns.
// The last line of a paragraph is never stretched; it is padded on the
// right instead so the suffix column stays aligned.
package justify

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

const (
	// BareWidth is the column width used when no decoration is applied.
	BareWidth = 36
	// DecoratedWidth is the column width used inside the comment box.
	DecoratedWidth = 37
)

// Config controls a single justification pass.
type Config struct {
	Width     int    // Base column width before Deduction is applied
	Offset    int    // Spaces inserted after Prefix on every line
	Prefix    string // Emitted first on every line
	Suffix    string // Emitted last on every line
	Deduction int    // Columns removed from Width to reserve a right margin
}

// EffectiveWidth returns the usable body width. It never drops below one
// column so that degenerate configs still make progress.
func (c Config) EffectiveWidth() int {
	w := c.Width - c.Deduction
	if w < 1 {
		return 1
	}
	return w
}

// Bare justifies text without decoration at the bare column width.
func Bare(text string, offset int) string {
	return Justify(text, Config{Width: BareWidth, Offset: offset})
}

// Decorated justifies text inside a prefix/suffix border at the decorated
// column width.
func Decorated(text string, offset int, prefix, suffix string, deduction int) string {
	return Justify(text, Config{
		Width:     DecoratedWidth,
		Offset:    offset,
		Prefix:    prefix,
		Suffix:    suffix,
		Deduction: deduction,
	})
}

// Justify returns the justified lines of text, each terminated by a newline.
func Justify(text string, cfg Config) string {
	lines := Lines(text, cfg)
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines wraps text greedily and returns the decorated lines without
// trailing newlines. Words are split on single spaces, so runs of spaces
// produce empty words that still occupy a gap.
func Lines(text string, cfg Config) []string {
	width := cfg.EffectiveWidth()
	words := strings.Split(text, " ")

	var (
		out     []string
		current []string
		used    int // cells of current joined by single spaces, plus one trailing space
	)
	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if len(current) == 0 || used+ww <= width {
			current = append(current, word)
			used += ww + 1
			continue
		}
		out = append(out, cfg.decorate(spread(current, width)))
		current = []string{word}
		used = ww + 1
	}

	last := strings.TrimSpace(strings.Join(current, " "))
	out = append(out, cfg.decorate(padRight(last, width)))
	return out
}

func (c Config) decorate(body string) string {
	return c.Prefix + strings.Repeat(" ", max(c.Offset, 0)) + body + c.Suffix
}

// spread distributes width minus the word cells across the gaps between
// words. Leftover spaces go to the leftmost gaps. A lone word is padded on
// the right, or left untouched when it is already wider than the column.
func spread(words []string, width int) string {
	if len(words) == 1 {
		return padRight(words[0], width)
	}

	chars := 0
	for _, w := range words {
		chars += runewidth.StringWidth(w)
	}
	gaps := len(words) - 1
	total := width - chars
	if total < gaps {
		total = gaps
	}
	base, extra := total/gaps, total%gaps

	var b strings.Builder
	for i, w := range words[:gaps] {
		b.WriteString(w)
		n := base
		if i < extra {
			n++
		}
		b.WriteString(strings.Repeat(" ", n))
	}
	b.WriteString(words[gaps])
	return b.String()
}

func padRight(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
