package style

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type countingProbe struct {
	mu    sync.Mutex
	names Properties
	calls int
}

func (p *countingProbe) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.names.Has(name)
}

func TestVendorPrefix(t *testing.T) {
	tests := []struct {
		name    string
		props   Properties
		want    string
		wantCSS string
	}{
		{"webkit", NewProperties("WebkitTransform"), "Webkit", "-webkit-"},
		{"moz", NewProperties("MozTransform"), "Moz", "-moz-"},
		{"ms", NewProperties("msTransform"), "ms", "-ms-"},
		{"first hit wins", NewProperties("MozTransform", "WebkitTransform"), "Webkit", "-webkit-"},
		{"none", NewProperties("transform"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.props)
			if got := r.VendorPrefix("", false); got != tt.want {
				t.Errorf("VendorPrefix() = %q, want %q", got, tt.want)
			}
			if got := r.VendorPrefix("", true); got != tt.wantCSS {
				t.Errorf("VendorPrefix(css) = %q, want %q", got, tt.wantCSS)
			}
		})
	}
}

func TestVendorPrefix_Hint(t *testing.T) {
	r := NewResolver(NewProperties("MozBoxSizing"))
	if got := r.VendorPrefix("boxSizing", false); got != "Moz" {
		t.Errorf("VendorPrefix(boxSizing) = %q, want Moz", got)
	}
}

func TestVendorPrefix_Cached(t *testing.T) {
	p := &countingProbe{names: NewProperties()}
	r := NewResolver(p)

	r.VendorPrefix("", false)
	first := p.calls
	if first != len(Vendors) {
		t.Fatalf("first call probed %d names, want %d", first, len(Vendors))
	}

	r.VendorPrefix("", true)
	r.ResolveProperty("transform")
	if p.calls != first {
		t.Errorf("cached no-prefix result was probed again (%d calls)", p.calls)
	}

	r.Reset("")
	r.VendorPrefix("", false)
	if p.calls != 2*first {
		t.Errorf("Reset should force a new probe, got %d calls", p.calls)
	}
}

func TestReset_Pins(t *testing.T) {
	r := NewResolver(NewProperties("WebkitTransform"))
	r.Reset("Moz")
	if got := r.VendorPrefix("", true); got != "-moz-" {
		t.Errorf("pinned prefix = %q, want -moz-", got)
	}
}

func TestVendorPrefix_Concurrent(t *testing.T) {
	r := NewResolver(NewProperties("OTransform"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := r.VendorPrefix("", false); got != "O" {
				t.Errorf("VendorPrefix() = %q, want O", got)
			}
		}()
	}
	wg.Wait()
}

func TestResolveProperty(t *testing.T) {
	r := NewResolver(NewProperties("WebkitTransform"))
	if got := r.ResolveProperty("transform"); got != "-webkit-transform" {
		t.Errorf("ResolveProperty = %q", got)
	}

	plain := NewResolver(nil)
	if got := plain.ResolveProperty("transform"); got != "transform" {
		t.Errorf("ResolveProperty without prefix = %q", got)
	}
}

func TestResolvePrefix(t *testing.T) {
	webkit := NewProperties("WebkitTransform", "WebkitTransition", "webkitRequestAnimationFrame")

	tests := []struct {
		name   string
		prop   string
		target Probe
		lower  bool
		want   string
	}{
		{"transform via own probe", "transform", nil, false, "WebkitTransform"},
		{"transition via own probe", "transition", nil, false, "WebkitTransition"},
		{"non-trans without target", "color", nil, false, "color"},
		{"exception transitionend", "transitionend", nil, false, "webkitTransitionEnd"},
		{"exception cancelAnimationFrame", "cancelAnimationFrame", webkit, true, "webkitCancelRequestAnimationFrame"},
		{"exception optimizeSpeed", "optimizeSpeed", webkit, false, "webkitOptimizeContrast"},
		{"lower-case prefix on target", "requestAnimationFrame", webkit, true, "webkitRequestAnimationFrame"},
		{"unsupported on target", "boxShadow", webkit, false, "boxShadow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(webkit)
			if got := r.ResolvePrefix(tt.prop, tt.target, tt.lower); got != tt.want {
				t.Errorf("ResolvePrefix(%q) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestResolvePrefix_HintsDetection(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
		prop  string
		want  string
	}{
		{"transition only", NewProperties("WebkitTransition", "transition"), "transition", "WebkitTransition"},
		{"moz transition", NewProperties("MozTransition"), "transition", "MozTransition"},
		{"falls back to transform", NewProperties("WebkitTransform"), "transitionend", "webkitTransitionEnd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.props)
			if got := r.ResolvePrefix(tt.prop, nil, false); got != tt.want {
				t.Errorf("ResolvePrefix(%q) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestResolvePrefix_NoVendor(t *testing.T) {
	r := NewResolver(NewProperties("transform"))
	if got := r.ResolvePrefix("transform", nil, false); got != "transform" {
		t.Errorf("ResolvePrefix = %q, want transform", got)
	}
}

func TestCaseConversion(t *testing.T) {
	tests := []struct {
		camel string
		kebab string
	}{
		{"color", "color"},
		{"backgroundColor", "background-color"},
		{"zIndex", "z-index"},
		{"WebkitTransform", "-webkit-transform"},
		{"MozBoxSizing", "-moz-box-sizing"},
		{"OTransition", "-o-transition"},
		{"msTransform", "-ms-transform"},
	}
	for _, tt := range tests {
		if got := CamelToKebab(tt.camel); got != tt.kebab {
			t.Errorf("CamelToKebab(%q) = %q, want %q", tt.camel, got, tt.kebab)
		}
		if got := KebabToCamel(tt.kebab); got != tt.camel {
			t.Errorf("KebabToCamel(%q) = %q, want %q", tt.kebab, got, tt.camel)
		}
	}
}

func TestDeclaration(t *testing.T) {
	d := Parse("color: red; width:10px ;; bogus; background-color : blue")

	if diff := cmp.Diff([]string{"color", "width", "background-color"}, d.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	if v, ok := d.Get("backgroundColor"); !ok || v != "blue" {
		t.Errorf("Get(backgroundColor) = %q, %v", v, ok)
	}

	d.Set("width", "20px")
	d.Set("zIndex", "3")
	d.Remove("color")
	if got, want := d.String(), "width: 20px; background-color: blue; z-index: 3;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	d.Set("width", "")
	if d.Has("width") {
		t.Error("empty value should remove the property")
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestParse_TokenizedValues(t *testing.T) {
	tests := []struct {
		name  string
		style string
		prop  string
		want  string
	}{
		{"data uri", "background: url(data:image/png;base64,AAAA); color: red", "background", "url(data:image/png;base64,AAAA)"},
		{"quoted semicolon", `content: "a;b"; color: red`, "content", `"a;b"`},
		{"quoted font", `font-family: 'Helvetica Neue', Arial`, "fontFamily", `'Helvetica Neue',Arial`},
		{"important", "color: red !important", "color", "red !important"},
		{"multi token", "border: 1px  solid red", "border", "1px solid red"},
		{"custom property", "--Gap: 4px; margin: 0", "--Gap", "4px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Parse(tt.style).Get(tt.prop)
			if !ok || v != tt.want {
				t.Errorf("Get(%q) = %q, %v; want %q", tt.prop, v, ok, tt.want)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, s := range []string{"", "  ", ";;", "bogus"} {
		if n := Parse(s).Len(); n != 0 {
			t.Errorf("Parse(%q).Len() = %d, want 0", s, n)
		}
	}
}
