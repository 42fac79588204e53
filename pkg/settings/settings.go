// Package settings provides build metadata, per-run options, and context
// helpers shared by the baiacufmt CLI and its library packages.
package settings

import "context"

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "baiacufmt"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options for a single invocation.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	// Interactive is true when prompts are answered on a terminal rather
	// than from an answers file.
	Interactive bool
	ConfigPath  string
}

// NewCliParams returns the defaults used by the CLI before flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		Interactive: true,
	}
}

type runKey struct{}

// IntoContext stores run settings in the context.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run settings stored by IntoContext, or fresh CLI
// defaults when the context carries none.
func FromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey{}).(*Run); ok && r != nil {
		return r
	}
	return NewCliParams()
}
