package host

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oakwood-commons/baiacufmt/pkg/core"
)

// Document is an in-memory copy of a source file.
type Document struct {
	Path  string
	Lines []string
}

// NewDocument splits text into lines. CRLF endings are normalized.
func NewDocument(path, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{Path: path, Lines: strings.Split(text, "\n")}
}

// LoadDocument reads path, or stdin when path is "-".
func LoadDocument(path string, stdin io.Reader) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return NewDocument(path, string(data)), nil
}

// LineAt returns the zero-based line index.
func (d *Document) LineAt(ctx context.Context, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d == nil || index < 0 || index >= len(d.Lines) {
		n := 0
		if d != nil {
			n = len(d.Lines)
		}
		return "", fmt.Errorf("line %d of %d: %w", index+1, n, core.ErrLineOutOfRange)
	}
	return d.Lines[index], nil
}
