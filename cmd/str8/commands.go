package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/str8"
	"github.com/pavanmanishd/str8/internal/logging"
)

func printString(w io.Writer, s *str8.String) {
	fmt.Fprintf(w, "(%d)'%s'\n", s.Len(), s)
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [text]",
		Short: "Clone a string, append it to itself and print both",
		Long: `Create a string (default "Hello world!"), clone it, append the
original onto itself and print length and content of each step.

Examples:
  str8 demo
  str8 demo abc --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := "Hello world!"
			if len(args) == 1 {
				text = args[0]
			}
			out := cmd.OutOrStdout()

			s1, err := a.newString(text)
			if err != nil {
				return err
			}
			defer s1.Release()
			s2, err := s1.Clone()
			if err != nil {
				return err
			}
			defer s2.Release()

			printString(out, s1)
			printString(out, s2)
			if _, err := str8.Append(s1, s1); err != nil {
				a.logger.Error("self-append failed", logging.StringField("str", s1), zap.Error(err))
				return err
			}
			printString(out, s1)
			a.logger.Debug("demo done", logging.StringField("original", s1), logging.StringField("clone", s2))
			return nil
		},
	}
}

func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <text>...",
		Short: "Append every argument onto the first",
		Example: `  str8 cat foo bar baz
  STR8_HEAP_LIMIT=16 str8 cat 0123456789 0123456789`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := a.newString(args[0])
			if err != nil {
				return err
			}
			defer dst.Release()

			for _, arg := range args[1:] {
				if err := a.appendArg(dst, arg); err != nil {
					return err
				}
			}
			printString(cmd.OutOrStdout(), dst)
			return nil
		},
	}
}

// appendArg appends arg onto dst through a temporary String that is
// released on every path.
func (a *app) appendArg(dst *str8.String, arg string) error {
	src, err := a.newString(arg)
	if err != nil {
		return err
	}
	defer src.Release()

	if _, err := str8.Append(dst, src); err != nil {
		a.logger.Error("append failed", logging.StringField("dst", dst), zap.Error(err))
		return err
	}
	a.logger.Debug("appended", zap.Int("added", len(arg)), logging.StringField("dst", dst))
	return nil
}

func newFindCmd(a *app) *cobra.Command {
	var from int
	cmd := &cobra.Command{
		Use:   "find <haystack> <needle>",
		Short: "Print the offset of needle in haystack, or -1",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.newString(args[0])
			if err != nil {
				return err
			}
			defer h.Release()
			n, err := a.newString(args[1])
			if err != nil {
				return err
			}
			defer n.Release()

			off := str8.FindFirst(h, n)
			if cmd.Flags().Changed("from") {
				off = str8.Find(h, n, from)
			}
			a.logger.Debug("searched", zap.Int("from", from), zap.Int("offset", off))
			fmt.Fprintln(cmd.OutOrStdout(), off)
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "byte offset to start searching at")
	return cmd
}
