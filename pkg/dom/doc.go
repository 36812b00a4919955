// Package dom is an in-memory HTML document with the query, creation and
// mutation helpers used by the render engine.
//
// Nodes are golang.org/x/net/html nodes. A Document owns the tree, a
// vendor-prefix resolver for style properties and the event listeners
// bound to its nodes.
//
// # Fragments
//
// Fragment containers are html.DocumentNode nodes whose Data is
// "#document-fragment". They hold detached markup and report node type
// 11, matching the browser model:
//
//	doc := dom.NewDocument()
//	frag := doc.Frag(`<ul><li class="row"></li></ul>`)
//	rows := doc.BySelectorAll("li.row", frag)
//
// # Attributes
//
// SetAttrs applies an ordered AttrSet. Each Attr is a tagged variant
// (see AttrKind) so reserved behaviors such as inner markup, styles,
// positional inserts and removal are dispatched in one place.
package dom
