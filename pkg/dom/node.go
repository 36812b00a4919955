package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateTextNode returns a new detached text node.
func (d *Document) CreateTextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// CreateFragment returns a new empty fragment container.
func (d *Document) CreateFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode, Data: fragmentData}
}

// Create returns a new element with attrs applied and evs bound.
func (d *Document) Create(tag string, attrs AttrSet, evs Events) *html.Node {
	return d.SetAttrs(d.CreateElement(tag), attrs, evs)
}

// Frag returns a fragment holding content. A node is deep-cloned into
// the fragment; a string is parsed as markup. Other content yields an
// empty fragment.
func (d *Document) Frag(content any) *html.Node {
	frag := d.CreateFragment()
	switch c := content.(type) {
	case *html.Node:
		if IsDom(c) {
			d.Append(frag, d.Clone(c, true))
		}
	case string:
		for _, n := range d.parseMarkup(c, nil) {
			frag.AppendChild(n)
		}
	}
	return frag
}

// Append appends child to parent. Both must be elements or fragments;
// anything else is ignored. An attached child is moved. Appending a
// fragment moves its children.
func (d *Document) Append(parent, child *html.Node) {
	if !IsDom(parent) || !IsDom(child) || parent == child {
		return
	}
	if IsFragment(child) {
		for c := child.FirstChild; c != nil; c = child.FirstChild {
			child.RemoveChild(c)
			parent.AppendChild(c)
		}
		return
	}
	detach(child)
	parent.AppendChild(child)
}

// Adj parses markup and inserts it at pos relative to node. Before and
// After need node to have a parent.
func (d *Document) Adj(node *html.Node, markup string, pos Position) {
	if !IsDom(node) {
		return
	}

	switch pos {
	case Before, After:
		parent := node.Parent
		if parent == nil {
			return
		}
		ref := node
		if pos == After {
			ref = node.NextSibling
		}
		for _, n := range d.parseMarkup(markup, parent) {
			parent.InsertBefore(n, ref)
		}
	case Front:
		ref := node.FirstChild
		for _, n := range d.parseMarkup(markup, node) {
			node.InsertBefore(n, ref)
		}
	case Back:
		for _, n := range d.parseMarkup(markup, node) {
			node.AppendChild(n)
		}
	}
}

// Replace puts newNode in place of old and returns newNode. It returns
// nil when either is not an element or fragment, or old is detached.
func (d *Document) Replace(old, newNode *html.Node) *html.Node {
	if !IsDom(old) || !IsDom(newNode) || old.Parent == nil {
		return nil
	}
	parent := old.Parent
	if IsFragment(newNode) {
		for c := newNode.FirstChild; c != nil; c = newNode.FirstChild {
			newNode.RemoveChild(c)
			parent.InsertBefore(c, old)
		}
	} else {
		detach(newNode)
		parent.InsertBefore(newNode, old)
	}
	parent.RemoveChild(old)
	return newNode
}

// Remove detaches n from its parent. Detached nodes are left alone.
func (d *Document) Remove(n *html.Node) {
	detach(n)
}

func detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Clone copies n. A deep clone also copies all descendants. Listeners
// are not copied.
func (d *Document) Clone(n *html.Node, deep bool) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	if deep {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			c.AppendChild(d.Clone(child, true))
		}
	}
	return c
}

// Parent returns the ancestor level steps above el. Levels below one
// count as one. It returns nil when the tree is not that deep.
func (d *Document) Parent(el *html.Node, level int) *html.Node {
	if el == nil {
		return nil
	}
	if level < 1 {
		level = 1
	}
	for n := el.Parent; n != nil; n = n.Parent {
		level--
		if level == 0 {
			return n
		}
	}
	return nil
}

// Match is the verdict of a ParentWhere predicate.
type Match int

const (
	// Abort stops the search without a result.
	Abort Match = -1
	// Continue moves on to the next ancestor.
	Continue Match = 0
	// Select stops the search and returns the current ancestor.
	Select Match = 1
)

// ParentWhere walks the ancestors of el, nearest first, and returns the
// first one fn selects. It returns nil when fn aborts or no ancestor is
// selected.
func (d *Document) ParentWhere(el *html.Node, fn func(*html.Node) Match) *html.Node {
	if el == nil || fn == nil {
		return nil
	}
	for n := el.Parent; n != nil; n = n.Parent {
		switch fn(n) {
		case Select:
			return n
		case Abort:
			return nil
		}
	}
	return nil
}

// SetInnerHTML replaces the children of el with parsed markup.
func (d *Document) SetInnerHTML(el *html.Node, markup string) {
	if !IsDom(el) {
		return
	}
	removeChildren(el)
	for _, n := range d.parseMarkup(markup, el) {
		el.AppendChild(n)
	}
}

// SetTextContent replaces the children of el with a single text node.
func (d *Document) SetTextContent(el *html.Node, s string) {
	if !IsDom(el) {
		return
	}
	removeChildren(el)
	if s != "" {
		el.AppendChild(d.CreateTextNode(s))
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func attrKey(n *html.Node, name string) string {
	if n.Namespace == "" {
		return strings.ToLower(name)
	}
	return name
}

// GetAttr returns the value of an attribute.
func GetAttr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	key := attrKey(n, name)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute on an element.
func SetAttr(n *html.Node, name, val string) {
	if n == nil || n.Type != html.ElementNode || name == "" {
		return
	}
	key := attrKey(n, name)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute.
func RemoveAttr(n *html.Node, name string) {
	if n == nil {
		return
	}
	key := attrKey(n, name)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// HasClass reports whether n carries the class cls.
func HasClass(n *html.Node, cls string) bool {
	v, _ := GetAttr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == cls {
			return true
		}
	}
	return false
}

// AddClass adds cls to n when missing.
func AddClass(n *html.Node, cls string) {
	if cls == "" || HasClass(n, cls) {
		return
	}
	v, _ := GetAttr(n, "class")
	SetClass(n, strings.TrimSpace(v+" "+cls))
}

// DelClass removes every occurrence of cls from n.
func DelClass(n *html.Node, cls string) {
	v, ok := GetAttr(n, "class")
	if !ok {
		return
	}
	fields := strings.Fields(v)
	kept := fields[:0]
	for _, c := range fields {
		if c != cls {
			kept = append(kept, c)
		}
	}
	SetClass(n, strings.Join(kept, " "))
}

// SetClass replaces the class attribute of n.
func SetClass(n *html.Node, cls string) {
	SetAttr(n, "class", cls)
}
