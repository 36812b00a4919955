package render

import (
	"bytes"
	"strings"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Template is a markup template with the render map to apply to it.
type Template struct {
	// Markup is the HTML template.
	Markup string

	// Data is a YAML or JSON render map.
	Data []byte

	// Selector, when set, scopes the render map to the first match
	// instead of the whole template.
	Selector string

	// Pretty indents the output with Indent.
	Pretty bool
	Indent string
}

// Execute renders t and returns the resulting markup. Errors carry code
// E100 (empty template or unmatched selector) or those of Decode.
func Execute(doc *dom.Document, t Template) (string, error) {
	if strings.TrimSpace(t.Markup) == "" {
		return "", errors.New("E100").WithDetail("The template is empty.")
	}

	m, err := Decode(doc, t.Data)
	if err != nil {
		return "", err
	}

	out := doc.Frag(t.Markup)
	if t.Selector != "" {
		target := doc.BySelector(t.Selector, out)
		if target == nil {
			return "", errors.New("E100").
				WithDetail("No element matches " + t.Selector + ".").
				WithSuggestion("Check --selector against the template markup")
		}
		Render(doc, target, m)
	} else {
		out = Render(doc, out, m)
	}

	var buf bytes.Buffer
	if err := dom.Serialize(&buf, out, dom.SerializeOptions{Pretty: t.Pretty, Indent: t.Indent}); err != nil {
		return "", errors.New("E100").Wrap(err)
	}
	return buf.String(), nil
}
