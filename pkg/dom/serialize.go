package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// SerializeOptions configures HTML output.
type SerializeOptions struct {
	// Pretty enables indented output with one element per line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty
	// mode. Defaults to two spaces.
	Indent string
}

type serializer struct {
	w    io.Writer
	opts SerializeOptions
	err  error
}

// Serialize writes n as HTML. Documents and fragments write their
// children.
func Serialize(w io.Writer, n *html.Node, opts SerializeOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	s := &serializer{w: w, opts: opts}
	s.node(n, 0)
	return s.err
}

// OuterHTML returns the markup of n including n itself.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = Serialize(&buf, n, SerializeOptions{})
	return buf.String()
}

// InnerHTML returns the markup of the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	s := &serializer{w: &buf, opts: SerializeOptions{Indent: "  "}}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.node(c, 0)
	}
	return buf.String()
}

// Pretty returns the indented markup of n.
func Pretty(n *html.Node, indent string) string {
	var buf bytes.Buffer
	_ = Serialize(&buf, n, SerializeOptions{Pretty: true, Indent: indent})
	return buf.String()
}

func (s *serializer) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (s *serializer) indent(depth int) {
	if s.opts.Pretty {
		s.write(strings.Repeat(s.opts.Indent, depth))
	}
}

func (s *serializer) newline() {
	if s.opts.Pretty {
		s.write("\n")
	}
}

// node dispatches on node type.
func (s *serializer) node(n *html.Node, depth int) {
	if n == nil {
		return
	}

	switch n.Type {
	case html.ElementNode:
		s.element(n, depth)
	case html.TextNode:
		s.text(n, depth)
	case html.CommentNode:
		s.indent(depth)
		s.write("<!--" + n.Data + "-->")
		s.newline()
	case html.DoctypeNode:
		s.write("<!DOCTYPE " + n.Data + ">")
		s.newline()
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.node(c, depth)
		}
	}
}

func (s *serializer) text(n *html.Node, depth int) {
	data := n.Data
	if s.opts.Pretty && n.Parent != nil && hasElementChildren(n.Parent) {
		data = strings.TrimSpace(data)
		if data == "" {
			return
		}
		s.indent(depth)
		s.write(escapeHTML(data))
		s.newline()
		return
	}
	if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data] {
		s.write(data)
		return
	}
	s.write(escapeHTML(data))
}

// element writes an element with its attributes and children.
func (s *serializer) element(n *html.Node, depth int) {
	tag := n.Data
	inline := inlineElements[tag] && !s.blockParent(n)

	if !inline {
		s.indent(depth)
	}
	s.write("<" + tag)
	s.attributes(n)
	s.write(">")

	if voidElements[tag] {
		if !inline {
			s.newline()
		}
		return
	}

	block := s.opts.Pretty && hasElementChildren(n) && !inlineElements[tag]
	if block {
		s.newline()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.node(c, depth+1)
		}
		s.indent(depth)
	} else {
		inner := s.opts.Pretty
		s.opts.Pretty = false
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.node(c, depth+1)
		}
		s.opts.Pretty = inner
	}

	s.write("</" + tag + ">")
	if !inline {
		s.newline()
	}
}

// blockParent reports whether an inline element sits among block
// siblings and so gets its own line.
func (s *serializer) blockParent(n *html.Node) bool {
	return n.Parent != nil && (n.Parent.Type == html.DocumentNode || hasElementChildren(n.Parent))
}

// attributes writes the attributes of n in document order.
func (s *serializer) attributes(n *html.Node) {
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		if booleanAttrs[key] && (a.Val == "" || strings.EqualFold(a.Val, key)) {
			s.write(" " + key)
			continue
		}
		s.write(" " + key + `="` + escapeAttr(a.Val) + `"`)
	}
}

func hasElementChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

// escapeHTML escapes text for inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for inclusion in a double-quoted attribute
// value, including whitespace that would break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
