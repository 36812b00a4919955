package render

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/pkg/dom"
)

// Render applies m to root and returns the populated node. A fragment
// root is deep-cloned once and the clone is returned; an element root is
// modified in place and returned. Entries are applied in order.
func Render(doc *dom.Document, root *html.Node, m Map) *html.Node {
	if root == nil {
		return nil
	}
	node := root
	if dom.IsFragment(root) {
		node = doc.Clone(root, true)
	}
	renderInto(doc, node, m)
	return node
}

func renderInto(doc *dom.Document, node *html.Node, m Map) {
	for _, e := range m {
		var targets []*html.Node
		if e.Selector == RootSelector {
			targets = []*html.Node{node}
		} else {
			targets = doc.BySelectorAll(e.Selector, node)
		}
		if len(targets) == 0 {
			doc.Logger().Debug("render entry matched nothing", "selector", e.Selector)
			continue
		}

		if e.Repeat {
			renderRows(doc, targets, e.Items)
			continue
		}
		if len(e.Items) > 0 {
			apply(doc, targets[0], e.Items[0])
		}
	}
}

// renderRows applies items positionally to targets. The first target is
// cloned up front as the template for surplus items. A surplus item with
// a nested map gets one fresh clone for the nested render and, when it
// also carries attributes, a second fresh clone for them. Both are
// appended under the first target's parent. Targets without an item are
// removed.
func renderRows(doc *dom.Document, targets []*html.Node, items []Item) {
	tmpl := doc.Clone(targets[0], true)
	parent := targets[0].Parent

	for i, item := range items {
		if i < len(targets) {
			apply(doc, targets[i], item)
			continue
		}

		if len(item.Render) > 0 {
			fresh := doc.Clone(tmpl, true)
			renderInto(doc, fresh, item.Render)
			appendTo(doc, parent, fresh)
		}
		if len(item.Attrs) > 0 || len(item.Render) == 0 {
			appendTo(doc, parent, doc.SetAttrs(doc.Clone(tmpl, true), item.Attrs, nil))
		}
	}

	for i := len(items); i < len(targets); i++ {
		doc.Remove(targets[i])
	}
}

func appendTo(doc *dom.Document, parent, n *html.Node) {
	if parent != nil && n != nil {
		doc.Append(parent, n)
	}
}

// apply renders the nested map of item into target, then sets its
// attributes. Attributes are skipped only when the item is a bare nested
// render.
func apply(doc *dom.Document, target *html.Node, item Item) {
	if len(item.Render) > 0 {
		renderInto(doc, target, item.Render)
	}
	if len(item.Attrs) > 0 || len(item.Render) == 0 {
		doc.SetAttrs(target, item.Attrs, nil)
	}
}
