package render

import (
	"fmt"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Reserved attribute keys in decoded render maps.
const (
	keyClass    = "className"
	keyMarkup   = "innerHTML"
	keyParent   = "parentNode"
	keyStyles   = "styles"
	keyChildren = "children"
	keyRemove   = "remove"
	keyRender   = "render"
)

// Decode parses a YAML or JSON render map. Keys keep their document
// order. Errors carry code E101 (malformed map) or E102 (malformed
// attribute value) with the offending line and column.
func Decode(doc *dom.Document, data []byte) (Map, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	return DecodeNode(doc, root.Content[0])
}

// DecodeNode builds a Map from a YAML mapping node. parentNode values are
// selectors resolved against doc.
func DecodeNode(doc *dom.Document, n *yaml.Node) (Map, error) {
	n = resolve(n)
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = resolve(n.Content[0])
	}
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, nodeError("E101", n, "a render map must be a mapping of selectors")
	}

	m := make(Map, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		sel := n.Content[i].Value
		v := resolve(n.Content[i+1])

		if v.Kind == yaml.SequenceNode {
			items := make([]Item, 0, len(v.Content))
			for _, c := range v.Content {
				item, err := decodeItem(doc, resolve(c))
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			m = append(m, Each(sel, items...))
			continue
		}

		item, err := decodeItem(doc, v)
		if err != nil {
			return nil, err
		}
		m = append(m, Entry{Selector: sel, Items: []Item{item}})
	}
	return m, nil
}

func decodeItem(doc *dom.Document, n *yaml.Node) (Item, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return Item{}, nil
		}
		return Row(dom.Text(n.Value)), nil
	case yaml.MappingNode:
	default:
		return Item{}, nodeError("E101", n, "an attribute set must be a mapping or a string")
	}

	var item Item
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v := resolve(n.Content[i+1])

		switch key {
		case keyRender:
			sub, err := DecodeNode(doc, v)
			if err != nil {
				return Item{}, err
			}
			item.Render = sub
			continue
		case keyStyles:
			attr, err := decodeStyles(v)
			if err != nil {
				return Item{}, err
			}
			item.Attrs = append(item.Attrs, attr)
			continue
		case keyChildren:
			attr, err := decodeChildren(doc, v)
			if err != nil {
				return Item{}, err
			}
			item.Attrs = append(item.Attrs, attr)
			continue
		case keyRemove:
			var remove bool
			if err := v.Decode(&remove); err != nil {
				return Item{}, nodeError("E102", v, "remove must be a boolean")
			}
			if remove {
				item.Attrs = append(item.Attrs, dom.Detach())
			}
			continue
		}

		if v.Kind != yaml.ScalarNode {
			return Item{}, nodeError("E102", v, fmt.Sprintf("%s must be a scalar", key))
		}
		switch key {
		case keyClass:
			item.Attrs = append(item.Attrs, dom.Class(v.Value))
		case keyMarkup:
			item.Attrs = append(item.Attrs, dom.Markup(v.Value))
		case keyParent:
			item.Attrs = append(item.Attrs, dom.ParentNode(doc.BySelector(v.Value, nil)))
		case string(dom.Before), string(dom.Front), string(dom.Back), string(dom.After):
			item.Attrs = append(item.Attrs, dom.Adjacent(dom.Position(key), v.Value))
		default:
			item.Attrs = append(item.Attrs, dom.Plain(key, v.Value))
		}
	}
	return item, nil
}

func decodeStyles(n *yaml.Node) (dom.Attr, error) {
	if n.Kind != yaml.MappingNode {
		return dom.Attr{}, nodeError("E102", n, "styles must be a mapping of property to value")
	}
	vs := make([]dom.StyleValue, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := resolve(n.Content[i+1])
		if v.Kind != yaml.ScalarNode {
			return dom.Attr{}, nodeError("E102", v, "style values must be scalars")
		}
		var val any
		if err := v.Decode(&val); err != nil {
			return dom.Attr{}, nodeError("E102", v, err.Error())
		}
		vs = append(vs, dom.Style(n.Content[i].Value, val))
	}
	return dom.Styles(vs...), nil
}

func decodeChildren(doc *dom.Document, n *yaml.Node) (dom.Attr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return dom.Children(doc.Frag(n.Value)), nil
	case yaml.SequenceNode:
		nodes := make([]*html.Node, 0, len(n.Content))
		for _, c := range n.Content {
			c = resolve(c)
			if c.Kind != yaml.ScalarNode {
				return dom.Attr{}, nodeError("E102", c, "children must be markup strings")
			}
			nodes = append(nodes, doc.Frag(c.Value))
		}
		return dom.Children(nodes...), nil
	}
	return dom.Attr{}, nodeError("E102", n, "children must be markup or a list of markup")
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func nodeError(code string, n *yaml.Node, detail string) *errors.Error {
	e := errors.New(code).WithDetail(detail)
	if n != nil {
		e.Location = &errors.Location{Line: n.Line, Column: n.Column}
	}
	return e
}
