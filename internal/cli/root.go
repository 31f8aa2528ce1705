// Package cli implements the richdoc command line tool using Cobra.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// app carries state shared by all subcommands.
type app struct {
	verbose bool
	pdfText bool
	log     *slog.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "richdoc",
		Short: "richdoc renders stored rich-text content safely",
		Long: `richdoc turns rich-text documents (Lexical JSON, Markdown, HTML, plain text,
DOCX, PDF, CSV) into escaped HTML, JSON block descriptors, Markdown, DOCX, PDF
or a one-line plain-text summary.

Usage:
  richdoc render [file] [flags]
  richdoc summary [file] [flags]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log render statistics to stderr")
	root.PersistentFlags().BoolVar(&a.pdfText, "pdftotext", true, "Fall back to pdftotext for PDFs the Go reader cannot handle")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newSummaryCmd(a))
	root.AddCommand(newFormatsCmd(a))
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
