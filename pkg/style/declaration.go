package style

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type decl struct {
	name  string
	value string
}

// Declaration is an ordered inline style, as found in a style attribute.
// Property names are kept in their dashed CSS form.
type Declaration struct {
	items []decl
}

// Parse reads a style attribute value. Malformed declarations are
// skipped. Values are tokenized, so semicolons inside url() or quoted
// strings stay part of the value.
func Parse(s string) *Declaration {
	d := &Declaration{}
	if strings.TrimSpace(s) == "" {
		return d
	}

	p := css.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() {
				return d
			}
		case css.DeclarationGrammar:
			d.Set(string(data), joinValues(p.Values()))
		case css.CustomPropertyGrammar:
			var val string
			if vs := p.Values(); len(vs) > 0 {
				val = strings.TrimSpace(string(vs[0].Data))
			}
			d.set(string(data), val)
		}
	}
}

func joinValues(vs []css.Token) string {
	var b strings.Builder
	for _, v := range vs {
		if v.TokenType == css.DelimToken && len(v.Data) == 1 && v.Data[0] == '!' && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.Write(v.Data)
	}
	return strings.TrimSpace(b.String())
}

func (d *Declaration) index(name string) int {
	for i, it := range d.items {
		if it.name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of a property.
func (d *Declaration) Get(name string) (string, bool) {
	if i := d.index(CamelToKebab(name)); i >= 0 {
		return d.items[i].value, true
	}
	return "", false
}

// Set assigns a property, keeping its position when already present. An
// empty value removes the property.
func (d *Declaration) Set(name, val string) {
	d.set(CamelToKebab(name), val)
}

func (d *Declaration) set(name, val string) {
	if val == "" {
		d.remove(name)
		return
	}
	if i := d.index(name); i >= 0 {
		d.items[i].value = val
		return
	}
	d.items = append(d.items, decl{name: name, value: val})
}

// Remove deletes a property.
func (d *Declaration) Remove(name string) {
	d.remove(CamelToKebab(name))
}

func (d *Declaration) remove(name string) {
	if i := d.index(name); i >= 0 {
		d.items = append(d.items[:i], d.items[i+1:]...)
	}
}

// Has reports whether a property is set. It lets a Declaration act as a
// Probe.
func (d *Declaration) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Len returns the number of properties.
func (d *Declaration) Len() int {
	return len(d.items)
}

// Names returns the property names in declaration order.
func (d *Declaration) Names() []string {
	names := make([]string, len(d.items))
	for i, it := range d.items {
		names[i] = it.name
	}
	return names
}

// String serializes the declaration for a style attribute.
func (d *Declaration) String() string {
	var b strings.Builder
	for i, it := range d.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.name)
		b.WriteString(": ")
		b.WriteString(it.value)
		b.WriteByte(';')
	}
	return b.String()
}
