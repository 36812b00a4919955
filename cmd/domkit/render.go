package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/dom"
	"github.com/vango-dev/domkit/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var (
		templatePath string
		dataPath     string
		selector     string
		pretty       bool
		showDiff     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template with a render map",
		Long: `Render an HTML template with a YAML or JSON render map and print
the result.

A render map pairs CSS selectors with attribute sets. A list of attribute
sets repeats the first match once per item:

  h1: Inbox
  li.row:
    - innerHTML: A
    - {innerHTML: B, className: row active}

Examples:
  domkit render --template list.html --data rows.yaml
  domkit render -t list.html -d rows.json --selector ul --pretty
  cat rows.yaml | domkit render -t list.html -d - --diff`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if templatePath == "" {
				return errors.New("E140").WithDetail("--template is required")
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = a.cfg.Render.Pretty
			}
			return runRender(cmd, a, templatePath, dataPath, selector, pretty, showDiff)
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "HTML template file")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Render map file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "Scope the render map to the first match")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output (default from domkit.json)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print a diff between the template and the output")

	return cmd
}

func runRender(cmd *cobra.Command, a *app, templatePath, dataPath, selector string, pretty, showDiff bool) error {
	markup, err := readInput(cmd.InOrStdin(), templatePath)
	if err != nil {
		return err
	}
	var data []byte
	if dataPath != "" {
		if data, err = readInput(cmd.InOrStdin(), dataPath); err != nil {
			return err
		}
	}

	doc := dom.NewDocument(
		dom.WithLogger(a.logger),
		dom.WithStyleProperties(a.cfg.Style.Properties...),
	)
	tmpl := render.Template{
		Markup:   string(markup),
		Data:     data,
		Selector: selector,
		Pretty:   pretty,
		Indent:   a.cfg.Render.Indent,
	}
	out, err := render.Execute(doc, tmpl)
	if err != nil {
		return locate(err, dataPath)
	}
	a.logger.Debug("rendered template", "template", templatePath, "data", dataPath, "bytes", len(out))

	w := cmd.OutOrStdout()
	if !showDiff {
		_, err := io.WriteString(w, out)
		return err
	}

	// Diff against the template serialized the same way, so only
	// rendered changes show up.
	tmpl.Data = nil
	tmpl.Selector = ""
	before, err := render.Execute(doc, tmpl)
	if err != nil {
		return err
	}
	writeDiff(w, before, out)
	return nil
}

// readInput reads a file, or stdin for "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New("E141").WithDetail("Cannot read " + path).Wrap(err)
	}
	return data, nil
}

// locate attaches the data file to decode errors so they print with
// surrounding lines.
func locate(err error, path string) error {
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Location == nil || e.Location.File != "" {
		return err
	}
	if path == "" || path == "-" {
		return err
	}
	return e.WithLocation(path, e.Location.Line, e.Location.Column)
}

// writeDiff prints a line diff of before and after.
func writeDiff(w io.Writer, before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(ensureNewline(before), ensureNewline(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	changed := false
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				changed = true
				fmt.Fprintln(w, color.GreenString("+ %s", line))
			case diffmatchpatch.DiffDelete:
				changed = true
				fmt.Fprintln(w, color.RedString("- %s", line))
			default:
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
	if !changed {
		info(w, "no changes")
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
