package dom

import (
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domkit/pkg/events"
	"github.com/vango-dev/domkit/pkg/style"
)

// Node type codes.
const (
	ElementNode  = 1
	TextNode     = 3
	CommentNode  = 8
	DocumentNode = 9
	DoctypeNode  = 10
	FragmentNode = 11
)

const fragmentData = "#document-fragment"

const blankDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an HTML document tree with its style resolver and event
// listeners. It is not safe for concurrent use.
type Document struct {
	root      *html.Node
	styles    *style.Resolver
	probe     style.Probe
	logger    *slog.Logger
	listeners map[*html.Node]map[string][]events.Listener
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStyleProperties declares the style property names (camelCase,
// including vendor forms such as WebkitTransform) supported by the
// document. They drive vendor-prefix detection.
func WithStyleProperties(names ...string) Option {
	return func(d *Document) {
		d.probe = style.NewProperties(names...)
	}
}

// WithStyleProbe sets the probe used for vendor-prefix detection.
func WithStyleProbe(p style.Probe) Option {
	return func(d *Document) {
		d.probe = p
	}
}

// NewDocument returns an empty document with html, head and body
// elements.
func NewDocument(opts ...Option) *Document {
	d, err := Parse(strings.NewReader(blankDocument), opts...)
	if err != nil {
		// The blank document always parses.
		panic(err)
	}
	return d
}

// Parse reads a complete HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root, opts), nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

func newDocument(root *html.Node, opts []Option) *Document {
	d := &Document{
		root:      root,
		logger:    slog.Default(),
		listeners: make(map[*html.Node]map[string][]events.Listener),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.styles = style.NewResolver(d.probe)
	return d
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Styles returns the document's vendor-prefix resolver.
func (d *Document) Styles() *style.Resolver { return d.styles }

// Logger returns the document's logger.
func (d *Document) Logger() *slog.Logger { return d.logger }

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *html.Node {
	return firstChildElement(d.root, "html")
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *html.Node {
	return firstChildElement(d.DocumentElement(), "head")
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	return firstChildElement(d.DocumentElement(), "body")
}

func firstChildElement(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

// NodeType returns the DOM node type code of n, or 0 for nil.
func NodeType(n *html.Node) int {
	if n == nil {
		return 0
	}
	switch n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DoctypeNode:
		return DoctypeNode
	case html.DocumentNode:
		if n.Data == fragmentData {
			return FragmentNode
		}
		return DocumentNode
	}
	return 0
}

// IsFragment reports whether n is a fragment container.
func IsFragment(n *html.Node) bool {
	return NodeType(n) == FragmentNode
}

// IsDom reports whether n is an element or a fragment container.
func IsDom(n *html.Node) bool {
	t := NodeType(n)
	return t == ElementNode || t == FragmentNode
}

// parseMarkup parses markup as the children of context. Parse failures
// are logged and yield no nodes.
func (d *Document) parseMarkup(markup string, context *html.Node) []*html.Node {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		d.logger.Debug("markup parse failed", "error", err)
		return nil
	}
	return nodes
}
