package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/baiacufmt/internal/host"
	"github.com/oakwood-commons/baiacufmt/internal/selector"
	"github.com/oakwood-commons/baiacufmt/pkg/core"
	"github.com/oakwood-commons/baiacufmt/pkg/logger"
	"github.com/oakwood-commons/baiacufmt/pkg/settings"
	"github.com/oakwood-commons/baiacufmt/pkg/signature"
)

var (
	cursorLine    int
	atCursor      bool
	signatureLine string
	answersPath   string
	selectExpr    string
	noInput       bool
	accessible    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a comment block for a function signature",
	Long: `Generate reads the function signature on the line below --line (or the
cursor line itself with --at-cursor), asks which arguments to document and
prints the comment block on stdout. Use '-' to read the document from stdin,
or --signature to pass the line directly.

Prompts are interactive when stdin is a terminal. With --answers, --select or
--no-input they are answered from the answers file; unanswered prompts fall
back to the raw argument and the sentinel description.`,
	Example: "\n  baiacufmt generate main.c --line 11\n  baiacufmt generate -s 'char* dup(const char* s)' --select 'arg.name == \"s\"' --no-input\n  cat main.c | baiacufmt generate - -l 3 --answers answers.toml\n",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runGenerate,
}

func init() { //nolint:gochecknoinits
	f := generateCmd.Flags()
	f.IntVarP(&cursorLine, "line", "l", 0, "1-based cursor line; the signature is read from the line below")
	f.BoolVar(&atCursor, "at-cursor", false, "read the signature from the cursor line itself")
	f.StringVarP(&signatureLine, "signature", "s", "", "function signature to document instead of reading a file")
	f.StringVar(&answersPath, "answers", "", "YAML or TOML file answering the prompts")
	f.StringVar(&selectExpr, "select", "", "CEL predicate over 'arg' (raw, type, name) and 'index' choosing the arguments")
	f.BoolVar(&noInput, "no-input", false, "never prompt; answer from --answers or defaults")
	f.BoolVar(&accessible, "accessible", false, "use plain line-based prompts")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	run := settings.FromContext(ctx)

	docPath := ""
	if len(args) == 1 {
		docPath = args[0]
	}
	switch {
	case signatureLine != "" && docPath != "":
		return fmt.Errorf("--signature cannot be combined with a file argument")
	case signatureLine == "" && docPath == "":
		return fmt.Errorf("a source file, '-' or --signature is required")
	case docPath != "" && cursorLine < 1:
		return fmt.Errorf("--line must be a 1-based line number when reading a file")
	}

	var doc *host.Document
	if signatureLine != "" {
		doc = host.NewDocument("", signatureLine)
	} else {
		var err error
		if doc, err = host.LoadDocument(docPath, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	lgr := logger.WithValues(logger.FromContext(ctx), logger.FileKey, doc.Path, logger.LineKey, cursorLine)
	ctx = logger.WithLogger(ctx, lgr)

	messenger := &host.Messenger{
		Out:     cmd.ErrOrStderr(),
		NoColor: run.NoColor,
		Log:     *lgr,
	}

	run.Interactive = !noInput && answersPath == "" && selectExpr == "" && docPath != "-" && stdinIsTerminal()

	var h core.Host
	if run.Interactive {
		h = &host.Terminal{Document: doc, Messenger: messenger, Output: cmd.ErrOrStderr(), Accessible: accessible}
	} else {
		scripted := &host.Scripted{Document: doc, Messenger: messenger}
		if answersPath != "" {
			a, err := host.LoadAnswers(answersPath)
			if err != nil {
				return err
			}
			scripted.Answers = a
		}
		if selectExpr != "" {
			sel, err := selector.Compile(selectExpr)
			if err != nil {
				return fmt.Errorf("--select: %w", err)
			}
			scripted.Selector = sel
		}
		h = scripted
	}
	lgr.V(1).Info("host selected", "interactive", run.Interactive)

	gen, err := core.New(h, core.WithTemplate(activeConfig.Template), core.WithCursorLine(atCursor))
	if err != nil {
		return err
	}

	var block string
	if signatureLine != "" {
		block, err = gen.GenerateFromLine(ctx, signatureLine)
	} else {
		block, err = gen.Generate(ctx, cursorLine-1)
	}
	if err != nil {
		if shownByHost(err) {
			return reportedError{err: err}
		}
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), block)
	return nil
}

// shownByHost lists the failures the generator already reported through
// ShowMessage.
func shownByHost(err error) bool {
	return errors.Is(err, signature.ErrExtraction) ||
		errors.Is(err, core.ErrSelectionCancelled) ||
		errors.Is(err, core.ErrLineOutOfRange)
}
