package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/baiacufmt/pkg/justify"
)

var (
	justifyWidth     int
	justifyOffset    int
	justifyPrefix    string
	justifySuffix    string
	justifyDeduction int
	justifyBare      bool
)

var justifyCmd = &cobra.Command{
	Use:   "justify [text...]",
	Short: "Justify text to a fixed width",
	Long: `Justify wraps text greedily and spreads spaces so every line but the last
fills the width exactly. The last line is padded so a suffix lines up.
Text is read from stdin when no arguments are given; line breaks are
treated as spaces.`,
	Example: "\n  baiacufmt justify --bare 'the quick brown fox jumps over the lazy dog'\n  baiacufmt justify --prefix '//' --suffix ' //' --offset 21 < notes.txt\n",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = joinLines(string(data))
		}
		if justifyBare {
			fmt.Fprint(cmd.OutOrStdout(), justify.Bare(text, justifyOffset))
			return nil
		}
		if justifyWidth < 1 {
			return fmt.Errorf("--width must be positive, got %d", justifyWidth)
		}
		if justifyOffset < 0 || justifyDeduction < 0 {
			return fmt.Errorf("--offset and --deduction must not be negative")
		}
		fmt.Fprint(cmd.OutOrStdout(), justify.Justify(text, justify.Config{
			Width:     justifyWidth,
			Offset:    justifyOffset,
			Prefix:    justifyPrefix,
			Suffix:    justifySuffix,
			Deduction: justifyDeduction,
		}))
		return nil
	},
}

func init() { //nolint:gochecknoinits
	f := justifyCmd.Flags()
	f.IntVar(&justifyWidth, "width", justify.DecoratedWidth, "body width in cells")
	f.IntVar(&justifyOffset, "offset", 0, "spaces inserted after the prefix on every line")
	f.StringVar(&justifyPrefix, "prefix", "", "text written at the start of every line")
	f.StringVar(&justifySuffix, "suffix", "", "text written at the end of every line")
	f.IntVar(&justifyDeduction, "deduction", 0, "cells removed from the width")
	f.BoolVar(&justifyBare, "bare", false, "undecorated mode with the fixed bare width; ignores --width, --prefix, --suffix and --deduction")
}

func joinLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	return strings.ReplaceAll(s, "\n", " ")
}
