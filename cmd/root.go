package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	rdebug "runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/baiacufmt/internal/config"
	"github.com/oakwood-commons/baiacufmt/internal/formatter"
	"github.com/oakwood-commons/baiacufmt/pkg/logger"
	"github.com/oakwood-commons/baiacufmt/pkg/settings"
)

var (
	debug      bool
	noColor    bool
	configFile string

	// activeConfig is the merged config for the running command.
	activeConfig config.File

	configOutput string
)

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// reportedError marks failures the host already showed to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown to the user, so main
// does not need to print it again.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Generate justified comment blocks for C-style functions",
	Long: `baiacufmt reads a C-style function signature, asks which arguments to
document, and prints a fixed-width comment box with justified text.`,
	Example:       "\n  baiacufmt generate main.c --line 11\n  baiacufmt generate -s 'int add(int a, int b)' --answers add.yaml\n  baiacufmt justify --bare 'some text to justify'\n",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		path := resolveConfigPath(configFile)
		cfg, err := loadMergedConfig(path)
		if err != nil {
			return err
		}
		activeConfig = cfg

		// Map CLI debug flag to log level: debug => zap.DebugLevel (-1), else the configured level.
		level, _ := cfg.App.Log.ZapLevel()
		if debug {
			level = -1
		}
		lgr := logger.Setup(logger.Options{Level: level, Console: cfg.App.Log.Console()})
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.NoColor = noColor || os.Getenv("NO_COLOR") != ""
		run.ConfigPath = path

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, lgr)
		ctx = settings.IntoContext(ctx, run)
		cmd.SetContext(ctx)
		lgr.V(1).Info("config loaded", "path", displayConfigPath(path))
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print baiacufmt version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := formatter.Encode(activeConfig, configOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML or TOML config file")
	configCmd.Flags().StringVarP(&configOutput, "output", "o", formatter.FormatYAML, "output format: yaml|toml|json")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(generateCmd, justifyCmd, configCmd, versionCmd)
}

// Execute runs the root command. Ctrl-C cancels the command context so
// open prompts return.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Subcommands keep the context of an earlier run unless it is replaced.
	for _, c := range rootCmd.Commands() {
		c.SetContext(ctx)
	}
	return rootCmd.ExecuteContext(ctx)
}

// buildVersion resolves the version from ldflags, then module build info.
func buildVersion() (version, goVersion string) {
	version = settings.VersionInformation.BuildVersion
	goVersion = runtime.Version()
	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		return version, goVersion
	}
	if info.GoVersion != "" {
		goVersion = info.GoVersion
	}
	if version == "" || version == "v0.0.0-nightly" {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		} else {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					version = s.Value[:7]
					break
				}
			}
		}
	}
	return version, goVersion
}

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	version, goVersion := buildVersion()
	return fmt.Sprintf("%s %s (go %s)", settings.CliBinaryName, version, goVersion)
}
