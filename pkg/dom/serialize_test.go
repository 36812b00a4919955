package dom

import "testing"

func TestOuterHTML(t *testing.T) {
	d := NewDocument()
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"text escaping", `<p>a &lt; b &amp; c</p>`, `<p>a &lt; b &amp; c</p>`},
		{"attribute escaping", `<a title='say "hi"'>x</a>`, `<a title="say &quot;hi&quot;">x</a>`},
		{"void element", `<img src="a.png">`, `<img src="a.png">`},
		{"boolean attribute", `<input type="checkbox" checked>`, `<input type="checkbox" checked>`},
		{"boolean attribute with own name", `<input disabled="disabled">`, `<input disabled>`},
		{"comment", `<div><!-- note --></div>`, `<div><!-- note --></div>`},
		{"raw text", `<script>if (a < b) {}</script>`, `<script>if (a < b) {}</script>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := d.Frag(tt.markup)
			if got := OuterHTML(frag); got != tt.want {
				t.Errorf("OuterHTML = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInnerHTML(t *testing.T) {
	d := NewDocument()
	el := d.Create("ul", AttrSet{Text("<li>a</li><li>b</li>")}, nil)
	if got := InnerHTML(el); got != "<li>a</li><li>b</li>" {
		t.Errorf("InnerHTML = %q", got)
	}
	if InnerHTML(nil) != "" {
		t.Error("InnerHTML(nil) should be empty")
	}
}

func TestPretty(t *testing.T) {
	d := NewDocument()
	frag := d.Frag(`<ul><li>A</li><li>B <em>b</em></li></ul>`)

	want := "<ul>\n" +
		"  <li>A</li>\n" +
		"  <li>\n" +
		"    B\n" +
		"    <em>b</em>\n" +
		"  </li>\n" +
		"</ul>\n"
	if got := Pretty(frag, "  "); got != want {
		t.Errorf("Pretty =\n%s\nwant\n%s", got, want)
	}
}

func TestDocumentSerialize(t *testing.T) {
	d := NewDocument()
	want := "<!DOCTYPE html><html><head></head><body></body></html>"
	if got := OuterHTML(d.Root()); got != want {
		t.Errorf("OuterHTML(document) = %q, want %q", got, want)
	}
}
