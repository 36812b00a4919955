package style

import (
	"strings"
	"unicode"
)

// CamelToKebab converts a camelCase property name to its CSS form.
// Vendor-prefixed names gain a leading dash: WebkitTransform becomes
// -webkit-transform and msFlex becomes -ms-flex. Names that already
// contain a dash are returned unchanged.
func CamelToKebab(name string) string {
	if name == "" || strings.Contains(name, "-") {
		return name
	}

	var b strings.Builder
	if strings.HasPrefix(name, "ms") && len(name) > 2 && unicode.IsUpper(rune(name[2])) {
		b.WriteString("-")
	}
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 || isVendor(name) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isVendor(name string) bool {
	for _, v := range Vendors {
		if v == "ms" {
			continue
		}
		if strings.HasPrefix(name, v) && len(name) > len(v) && unicode.IsUpper(rune(name[len(v)])) {
			return true
		}
	}
	return false
}

// KebabToCamel converts a CSS property name to camelCase. -webkit-x
// becomes WebkitX and -ms-x becomes msX.
func KebabToCamel(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}

	vendor := strings.HasPrefix(name, "-")
	parts := strings.Split(strings.TrimPrefix(name, "-"), "-")

	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 && !(vendor && p != "ms") {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
