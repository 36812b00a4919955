package render

import "github.com/vango-dev/domkit/pkg/dom"

// RootSelector targets the node being rendered instead of a descendant.
const RootSelector = "root"

// Item is the attribute set for one node, with an optional nested map
// rendered into that node.
type Item struct {
	Attrs  dom.AttrSet
	Render Map
}

// WithRender returns a copy of i carrying a nested render map.
func (i Item) WithRender(m Map) Item {
	i.Render = m
	return i
}

// Entry pairs a selector with the items applied to its matches. A
// repeated entry applies Items positionally; otherwise only the first
// item is applied, to the first match.
type Entry struct {
	Selector string
	Items    []Item
	Repeat   bool
}

// WithRender returns a copy of a single entry whose item carries a nested
// render map.
func (e Entry) WithRender(m Map) Entry {
	if len(e.Items) == 0 {
		e.Items = []Item{{}}
	} else {
		e.Items = append([]Item(nil), e.Items...)
	}
	e.Items[0] = e.Items[0].WithRender(m)
	return e
}

// Map is an ordered render map.
type Map []Entry

// Set returns an entry applying attrs to the first match of sel.
func Set(sel string, attrs ...dom.Attr) Entry {
	return Entry{Selector: sel, Items: []Item{{Attrs: attrs}}}
}

// Each returns an entry applying items positionally to the matches of
// sel.
func Each(sel string, items ...Item) Entry {
	return Entry{Selector: sel, Items: items, Repeat: true}
}

// Row returns an item with the given attributes.
func Row(attrs ...dom.Attr) Item {
	return Item{Attrs: attrs}
}
