package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/richdoc/internal/output"
	"github.com/dgallion1/richdoc/internal/parser"
	"github.com/dgallion1/richdoc/internal/render"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	var source, policy string
	var maxRunes int
	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print the plain-text summary of a document",
		Long: `Summary prints the document's text as one line, the form used for labels,
aria text and previews.

Examples:
  richdoc summary faq-answer.json --max 80
  richdoc summary --source markdown < README.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxRunes < 0 {
				return fmt.Errorf("--max must be non-negative")
			}
			p, err := render.ParsePolicy(policy)
			if err != nil {
				return err
			}
			seq, err := a.parseInput(args, source)
			if err != nil {
				return err
			}
			start := time.Now()
			doc := render.BuildSequence(seq, render.NewContext(p))
			a.logStats("summary", time.Since(start), doc.Stats)
			_, err = fmt.Fprintln(a.stdout, render.Excerpt(doc.Summary, maxRunes))
			return err
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Source format (default: from file extension, else json)")
	cmd.Flags().StringVarP(&policy, "policy", "p", string(render.PolicySilent), "Unknown node policy: silent, best-effort, diagnostic")
	cmd.Flags().IntVar(&maxRunes, "max", 0, "Cut the summary to this many characters (0 = no limit)")
	return cmd
}

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported source and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]string, 0, len(parser.SupportedFormats))
			for name := range parser.SupportedFormats {
				sources = append(sources, name)
			}
			sort.Strings(sources)
			fmt.Fprintf(a.stdout, "source: %s\n", strings.Join(sources, ", "))
			fmt.Fprintf(a.stdout, "output: %s\n", strings.Join(output.Formats(), ", "))
			return nil
		},
	}
}
