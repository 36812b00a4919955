// Package render populates an HTML template from a declarative render
// map.
//
// A Map is an ordered list of entries. Each entry pairs a CSS selector
// with either one attribute set, applied to the first match, or a list of
// attribute sets applied positionally to every match:
//
//	m := render.Map{
//		render.Set("h1", dom.Text("Inbox")),
//		render.Each("li.row",
//			render.Row(dom.Text("A")),
//			render.Row(dom.Text("B")),
//			render.Row(dom.Text("C")),
//		),
//	}
//	out := render.Render(doc, doc.Frag(tmpl), m)
//
// With a list, the first match serves as the row template: surplus items
// clone it under the same parent and missing items prune the leftover
// matches. Rendering a fragment works on a deep clone, so a template
// fragment can be rendered any number of times. Rendering an element
// mutates it in place.
//
// # Data files
//
// Decode builds a Map from YAML or JSON, keeping key order:
//
//	h1: Inbox
//	li.row:
//	  - innerHTML: A
//	  - innerHTML: B
//	    className: row active
//	  - {innerHTML: C, render: {span.badge: "new"}}
package render
