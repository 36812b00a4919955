package dom

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/pkg/style"
	"github.com/vango-dev/domkit/pkg/value"
)

// StyleOf parses the inline style of el.
func StyleOf(el *html.Node) *style.Declaration {
	v, _ := GetAttr(el, "style")
	return style.Parse(v)
}

func writeStyle(el *html.Node, decl *style.Declaration) {
	if decl.Len() == 0 {
		RemoveAttr(el, "style")
		return
	}
	SetAttr(el, "style", decl.String())
}

// SetStyle sets one camelCase style property on el. Numbers get a px
// unit except for zIndex; nil or "" removes the property. With resolve
// set the vendor-prefixed name is used when the document supports it.
func (d *Document) SetStyle(el *html.Node, prop string, v any, resolve bool) {
	if el == nil || el.Type != html.ElementNode {
		return
	}
	decl := StyleOf(el)
	d.setStyle(decl, prop, v, resolve)
	writeStyle(el, decl)
}

// SetStyles sets several style properties in order.
func (d *Document) SetStyles(el *html.Node, styles []StyleValue, resolve bool) {
	if el == nil || el.Type != html.ElementNode || len(styles) == 0 {
		return
	}
	decl := StyleOf(el)
	for _, s := range styles {
		d.setStyle(decl, s.Name, s.Value, resolve)
	}
	writeStyle(el, decl)
}

func (d *Document) setStyle(decl *style.Declaration, prop string, v any, resolve bool) {
	if resolve {
		prop = d.styles.ResolvePrefix(prop, d.probe, false)
	}
	val := attrToString(v)
	if value.IsNumber(v) && prop != "zIndex" {
		val += "px"
	}
	decl.Set(style.CamelToKebab(prop), val)
}

// GetStyle returns the inline value of a camelCase style property, or
// def when unset.
func (d *Document) GetStyle(el *html.Node, prop string, def string) string {
	if v, ok := StyleOf(el).Get(prop); ok {
		return v
	}
	return def
}
