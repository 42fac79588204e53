package host

import (
	"fmt"
	"io"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/baiacufmt/pkg/core"
)

var (
	infoColor    = lipgloss.Color("12")
	warningColor = lipgloss.Color("11")
	errorColor   = lipgloss.Color("9")
)

// Messenger prints notifications to a writer and mirrors them to the log.
type Messenger struct {
	Out     io.Writer
	NoColor bool
	Log     logr.Logger

	mu sync.Mutex
}

// ShowMessage implements the notification part of core.Host.
func (m *Messenger) ShowMessage(kind core.MessageKind, text string) {
	switch kind {
	case core.MessageError:
		m.Log.Info("user notified of failure", "kind", kind.String(), "text", text)
	default:
		m.Log.V(1).Info("user notified", "kind", kind.String(), "text", text)
	}
	if m.Out == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintf(m.Out, "%s %s\n", m.tag(kind), text)
}

func (m *Messenger) tag(kind core.MessageKind) string {
	label := kind.String() + ":"
	if m.NoColor {
		return label
	}
	style := lipgloss.NewStyle().Bold(true)
	switch kind {
	case core.MessageError:
		style = style.Foreground(errorColor)
	case core.MessageWarning:
		style = style.Foreground(warningColor)
	default:
		style = style.Foreground(infoColor)
	}
	return style.Render(label)
}
