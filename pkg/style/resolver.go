// Package style resolves vendor-prefixed CSS property and event names and
// reads and writes inline style declarations.
package style

import (
	"strings"
	"sync"

	"github.com/vango-dev/domkit/pkg/value"
)

// Probe reports whether a property name is supported by a style target.
type Probe interface {
	Has(name string) bool
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(name string) bool

// Has implements Probe.
func (f ProbeFunc) Has(name string) bool { return f(name) }

// Properties is a fixed set of supported property names.
type Properties map[string]struct{}

// NewProperties returns a Properties containing names.
func NewProperties(names ...string) Properties {
	p := make(Properties, len(names))
	for _, n := range names {
		p[n] = struct{}{}
	}
	return p
}

// Has implements Probe.
func (p Properties) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Vendors are probed in this order.
var Vendors = []string{"Webkit", "Moz", "O", "ms"}

// exceptions holds names that do not follow the prefix + Capitalized rule.
var exceptions = map[string]map[string]string{
	"Webkit": {
		"transitionend":        "webkitTransitionEnd",
		"cancelAnimationFrame": "webkitCancelRequestAnimationFrame",
		"optimizeSpeed":        "webkitOptimizeContrast",
	},
}

// Resolver detects and caches the vendor prefix of a style target.
// The zero value has no probe and resolves to no prefix.
type Resolver struct {
	mu       sync.Mutex
	probe    Probe
	prefix   string
	resolved bool
}

// NewResolver creates a Resolver that probes p on first use.
func NewResolver(p Probe) *Resolver {
	return &Resolver{probe: p}
}

// VendorPrefix returns the detected vendor prefix ("Webkit", "Moz", "O",
// "ms" or ""). The first call probes vendor+Capitalize(hint) for every
// vendor and, when the hint finds nothing, vendor+"Transform". The first
// hit wins and the result, including no prefix, is cached. With css set
// the dashed form ("-webkit-") is returned.
func (r *Resolver) VendorPrefix(hint string, css bool) string {
	r.mu.Lock()
	if !r.resolved {
		r.prefix = detect(r.probe, hint)
		r.resolved = true
	}
	prefix := r.prefix
	r.mu.Unlock()

	if css {
		return cssPrefix(prefix)
	}
	return prefix
}

const defaultHint = "transform"

func detect(p Probe, hint string) string {
	if p == nil {
		return ""
	}
	if hint != "" && hint != defaultHint {
		if v := probeVendors(p, hint); v != "" {
			return v
		}
	}
	return probeVendors(p, defaultHint)
}

func probeVendors(p Probe, hint string) string {
	name := value.Capitalize(hint)
	for _, v := range Vendors {
		if p.Has(v + name) {
			return v
		}
	}
	return ""
}

func cssPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return "-" + strings.ToLower(prefix) + "-"
}

// Reset clears the cached prefix so the next call probes again. A
// non-empty prefix pins the cache to that value instead.
func (r *Resolver) Reset(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefix = prefix
	r.resolved = prefix != ""
}

// ResolveProperty returns the dashed CSS property prefixed for the
// detected vendor.
func (r *Resolver) ResolveProperty(prop string) string {
	return r.VendorPrefix("", true) + prop
}

// ResolvePrefix returns the vendor-specific name of a camelCase property
// or event. Resolution only happens when target is given or prop starts
// with "trans"; otherwise prop is returned as is.
//
// The vendor prefix is detected with prop as the hint. Known irregular
// names are returned directly. Other names are prefixed
// (lower-cased prefix when lower is set) and used only when target, or
// the Resolver's own probe, has them.
func (r *Resolver) ResolvePrefix(prop string, target Probe, lower bool) string {
	if target == nil && !strings.HasPrefix(prop, "trans") {
		return prop
	}

	prefix := r.VendorPrefix(prop, false)
	if ex, ok := exceptions[prefix][prop]; ok {
		return ex
	}

	if target == nil {
		target = r.probe
	}
	if lower {
		prefix = strings.ToLower(prefix)
	}
	prefixed := prefix + value.Capitalize(prop)
	if target != nil && target.Has(prefixed) {
		return prefixed
	}
	return prop
}
