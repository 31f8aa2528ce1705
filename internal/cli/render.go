package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/richdoc/internal/doctree"
	"github.com/dgallion1/richdoc/internal/output"
	"github.com/dgallion1/richdoc/internal/parser"
	"github.com/dgallion1/richdoc/internal/render"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	source  string
	format  string
	policy  string
	trusted bool
	output  string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to the chosen output format",
		Long: `Render reads a document from a file (or stdin when the file is omitted or "-")
and writes it in the chosen output format.

Examples:
  richdoc render page.json
  richdoc render notes.md --format docx --output notes.docx
  richdoc render legacy.html --trusted
  cat field.json | richdoc render --policy best-effort --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(f, args)
		},
	}
	cmd.Flags().StringVar(&f.source, "source", "", "Source format (default: from file extension, else json)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "html", "Output format: "+strings.Join(output.Formats(), ", "))
	cmd.Flags().StringVarP(&f.policy, "policy", "p", string(render.PolicySilent), "Unknown node policy: silent, best-effort, diagnostic")
	cmd.Flags().BoolVar(&f.trusted, "trusted", false, "Treat the input as editor-authored HTML and sanitize it")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func (a *app) runRender(f *renderFlags, args []string) error {
	writer, err := output.ForFormat(f.format)
	if err != nil {
		return err
	}

	var doc render.Document
	start := time.Now()
	if f.trusted {
		data, err := a.readInput(args)
		if err != nil {
			return err
		}
		doc = render.BuildTrusted(render.TrustedHTML(data))
	} else {
		policy, err := render.ParsePolicy(f.policy)
		if err != nil {
			return err
		}
		seq, err := a.parseInput(args, f.source)
		if err != nil {
			return err
		}
		doc = render.BuildSequence(seq, render.NewContext(policy))
	}
	a.logStats("render", time.Since(start), doc.Stats)

	var buf bytes.Buffer
	if err := writer.Write(&buf, doc); err != nil {
		return fmt.Errorf("write %s: %w", f.format, err)
	}
	if f.output == "" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(f.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(a.stderr, "✓ Written: %s\n", f.output)
	return nil
}

// parseInput picks a parser from --source, else the file extension, else
// json, and parses the input with it.
func (a *app) parseInput(args []string, source string) (doctree.Sequence, error) {
	opts := parser.Options{PDFFallbackPdftotext: a.pdfText}
	var p parser.Parser
	var err error
	switch {
	case source != "":
		p, err = opts.ForFormat(source)
	case len(args) == 1 && args[0] != "-" && filepath.Ext(args[0]) != "":
		p, err = opts.ForFile(args[0])
	default:
		p, err = opts.ForFormat("json")
	}
	if err != nil {
		return nil, err
	}

	data, err := a.readInput(args)
	if err != nil {
		return nil, err
	}
	seq, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return seq, nil
}

func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(a.stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func (a *app) logStats(op string, d time.Duration, st render.Stats) {
	attrs := []any{
		"op", op,
		"nodes", st.Nodes,
		"unknown_nodes", st.Unknown,
		"truncated_nodes", st.Truncated,
		"duration_us", d.Microseconds(),
	}
	if st.Truncated > 0 {
		a.log.Warn("document exceeded depth bound", attrs...)
		return
	}
	a.log.Debug("rendered", attrs...)
}
