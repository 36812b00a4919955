package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// walk visits the descendants of n in document order until fn returns
// false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !fn(c) || !walk(c, fn) {
			return false
		}
	}
	return true
}

func (d *Document) scope(parent *html.Node) *html.Node {
	if parent == nil {
		return d.root
	}
	return parent
}

func (d *Document) findFirst(parent *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(d.scope(parent), func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func (d *Document) findAll(parent *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(d.scope(parent), func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	return d.findFirst(nil, func(n *html.Node) bool {
		v, ok := GetAttr(n, "id")
		return ok && v == id
	})
}

// ByName returns the first element with the given name attribute, or nil.
func (d *Document) ByName(name string) *html.Node {
	return d.findFirst(nil, func(n *html.Node) bool {
		v, ok := GetAttr(n, "name")
		return ok && v == name
	})
}

// ByTag returns the elements with the given tag below parent, or below
// the document when parent is nil. "*" matches every element.
func (d *Document) ByTag(tag string, parent *html.Node) []*html.Node {
	tag = strings.ToLower(tag)
	return d.findAll(parent, func(n *html.Node) bool {
		return tag == "*" || n.Data == tag
	})
}

// ByClass returns the elements carrying the class cls below parent.
func (d *Document) ByClass(cls string, parent *html.Node) []*html.Node {
	return d.findAll(parent, func(n *html.Node) bool {
		return HasClass(n, cls)
	})
}

func (d *Document) compile(sel string) cascadia.Selector {
	s, err := cascadia.Compile(sel)
	if err != nil {
		d.logger.Debug("invalid selector", "selector", sel, "error", err)
		return nil
	}
	return s
}

// BySelector returns the first descendant of parent matching the CSS
// selector group sel, or nil. Invalid selectors match nothing.
func (d *Document) BySelector(sel string, parent *html.Node) *html.Node {
	s := d.compile(sel)
	if s == nil {
		return nil
	}
	return cascadia.Query(d.scope(parent), s)
}

// BySelectorAll returns the descendants of parent matching the CSS
// selector group sel, in document order. Invalid selectors match nothing.
func (d *Document) BySelectorAll(sel string, parent *html.Node) []*html.Node {
	s := d.compile(sel)
	if s == nil {
		return nil
	}
	return cascadia.QueryAll(d.scope(parent), s)
}
