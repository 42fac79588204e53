package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/baiacufmt/internal/config"
)

func resetRootCmdState(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, c := range cmds {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	activeConfig = config.File{}

	origTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = origTerminal })
}

// runCLI executes the root command with args and captured streams.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetRootCmdState(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "baiacufmt "))
	assert.Contains(t, out, "(go ")
}

func TestRootWithoutSubcommandShowsHelp(t *testing.T) {
	out, _, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "justify")
}

func TestConfigCommandFormats(t *testing.T) {
	out, _, err := runCLI(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "label_width: 21")
	assert.Contains(t, out, "sentinel: no description provided")

	out, _, err = runCLI(t, "", "config", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"detail_indent": 3`)

	out, _, err = runCLI(t, "", "config", "-o", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[template]")

	_, _, err = runCLI(t, "", "config", "-o", "xml")
	require.Error(t, err)
}

func TestConfigFileOverridesTemplate(t *testing.T) {
	path := writeFile(t, "config.yaml", "template:\n  sentinel: TODO describe\n")
	out, _, err := runCLI(t, "", "config", "--config-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sentinel: TODO describe")
	assert.Contains(t, out, "width: 37")
}

func TestInvalidConfigFileFails(t *testing.T) {
	path := writeFile(t, "config.yaml", "template:\n  width: 0\n")
	_, _, err := runCLI(t, "", "config", "--config-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width must be positive")
}

func TestJustifyCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "justify", "--width", "10", "aa", "bb", "cc", "dd")
	require.NoError(t, err)
	assert.Equal(t, "aa  bb  cc\ndd        \n", out)
}

func TestJustifyCommandDecoratedFromStdin(t *testing.T) {
	out, _, err := runCLI(t, "aa bb\ncc dd\n", "justify", "--width", "10", "--prefix", "[", "--suffix", "]", "--offset", "1")
	require.NoError(t, err)
	assert.Equal(t, "[ aa  bb  cc]\n[ dd        ]\n", out)
}

func TestJustifyCommandBare(t *testing.T) {
	out, _, err := runCLI(t, "", "justify", "--bare", "short")
	require.NoError(t, err)
	assert.Equal(t, "short"+strings.Repeat(" ", 31)+"\n", out)
}

func TestJustifyCommandRejectsBadWidth(t *testing.T) {
	_, _, err := runCLI(t, "", "justify", "--width", "0", "x")
	require.Error(t, err)
}

func TestReported(t *testing.T) {
	assert.True(t, Reported(reportedError{err: assert.AnError}))
	assert.False(t, Reported(assert.AnError))
}
