package dom

import (
	"fmt"
	"sort"

	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/pkg/events"
)

// AttrKind identifies how SetAttrs applies an Attr.
type AttrKind uint8

const (
	// AttrPlain sets an element attribute.
	AttrPlain AttrKind = iota
	// AttrClass sets the class attribute.
	AttrClass
	// AttrMarkup replaces the element's children with parsed markup.
	AttrMarkup
	// AttrParent appends the element under another node.
	AttrParent
	// AttrStyles sets inline style properties, resolving vendor prefixes.
	AttrStyles
	// AttrChildren appends nodes to the element.
	AttrChildren
	// AttrAdjacent inserts parsed markup relative to the element.
	AttrAdjacent
	// AttrRemove detaches the element.
	AttrRemove
)

var attrKindNames = [...]string{"plain", "className", "innerHTML", "parentNode", "styles", "children", "adjacent", "remove"}

func (k AttrKind) String() string {
	if int(k) < len(attrKindNames) {
		return attrKindNames[k]
	}
	return fmt.Sprintf("AttrKind(%d)", k)
}

// Position is where Adj inserts markup relative to a node.
type Position string

const (
	Before Position = "before" // before the node
	Front  Position = "front"  // first inside the node
	Back   Position = "back"   // last inside the node
	After  Position = "after"  // after the node
)

// StyleValue is one inline style property. Numeric values get a px unit
// except for zIndex.
type StyleValue struct {
	Name  string
	Value any
}

// Style returns a StyleValue.
func Style(name string, v any) StyleValue {
	return StyleValue{Name: name, Value: v}
}

// Attr is one attribute instruction for SetAttrs.
type Attr struct {
	Kind     AttrKind
	Name     string
	Value    string
	Position Position
	Node     *html.Node
	Nodes    []*html.Node
	Styles   []StyleValue
}

// AttrSet is an ordered list of attribute instructions.
type AttrSet []Attr

// Plain sets the attribute name to v.
func Plain(name string, v any) Attr {
	return Attr{Kind: AttrPlain, Name: name, Value: attrToString(v)}
}

// Class sets the class attribute.
func Class(v string) Attr {
	return Attr{Kind: AttrClass, Name: "class", Value: v}
}

// Markup replaces the children with parsed markup.
func Markup(s string) Attr {
	return Attr{Kind: AttrMarkup, Name: "innerHTML", Value: s}
}

// Text is shorthand for Markup.
func Text(s string) Attr {
	return Markup(s)
}

// ParentNode appends the element under parent.
func ParentNode(parent *html.Node) Attr {
	return Attr{Kind: AttrParent, Name: "parentNode", Node: parent}
}

// Styles sets inline style properties in order.
func Styles(vs ...StyleValue) Attr {
	return Attr{Kind: AttrStyles, Name: "styles", Styles: vs}
}

// Children appends nodes to the element.
func Children(nodes ...*html.Node) Attr {
	return Attr{Kind: AttrChildren, Name: "children", Nodes: nodes}
}

// Adjacent inserts markup at pos relative to the element.
func Adjacent(pos Position, markup string) Attr {
	return Attr{Kind: AttrAdjacent, Name: string(pos), Position: pos, Value: markup}
}

// Detach removes the element from its parent.
func Detach() Attr {
	return Attr{Kind: AttrRemove, Name: "remove"}
}

// Events maps event types to listeners. They are bound in sorted type
// order.
type Events map[string]events.Listener

// SetAttrs applies attrs to el in order and binds evs. A removal
// instruction detaches el and stops processing: later attributes and the
// events are skipped and nil is returned.
func (d *Document) SetAttrs(el *html.Node, attrs AttrSet, evs Events) *html.Node {
	if el == nil {
		return nil
	}

	for _, a := range attrs {
		switch a.Kind {
		case AttrClass:
			SetAttr(el, "class", a.Value)
		case AttrMarkup:
			d.SetInnerHTML(el, a.Value)
		case AttrParent:
			d.Append(a.Node, el)
		case AttrStyles:
			d.SetStyles(el, a.Styles, true)
		case AttrChildren:
			for _, c := range a.Nodes {
				d.Append(el, c)
			}
		case AttrAdjacent:
			d.Adj(el, a.Value, a.Position)
		case AttrRemove:
			d.Remove(el)
			return nil
		default:
			SetAttr(el, a.Name, a.Value)
		}
	}

	types := make([]string, 0, len(evs))
	for typ := range evs {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		events.Listen(d.Target(el), typ, evs[typ])
	}
	return el
}

// attrToString converts an attribute value to a string.
func attrToString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
