package xhr

import (
	"net/url"
	"strings"
)

// ParseQuery parses "a=1&b" into {"a": "1", "b": "1"}. A leading "?" is
// ignored, empty parts are skipped and keys without a value map to "1".
// Keys and values are percent-decoded when valid.
func ParseQuery(query string) map[string]string {
	out := make(map[string]string)
	query = strings.TrimPrefix(query, "?")
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		key, val, _ := strings.Cut(part, "=")
		key = unescape(key)
		if key == "" {
			continue
		}
		if val == "" {
			val = "1"
		} else {
			val = unescape(val)
		}
		out[key] = val
	}
	return out
}

// QueryFromURL parses the query string of href.
func QueryFromURL(href string) map[string]string {
	if u, err := url.Parse(href); err == nil {
		return ParseQuery(u.RawQuery)
	}
	_, q, _ := strings.Cut(href, "?")
	q, _, _ = strings.Cut(q, "#")
	return ParseQuery(q)
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}
