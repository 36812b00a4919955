package xhr

import (
	"context"
	"sort"
	"strings"
)

// ReadyState is the lifecycle stage of a Conn.
type ReadyState int

const (
	Unsent ReadyState = iota
	Opened
	HeadersReceived
	Loading
	Done
)

func (s ReadyState) String() string {
	switch s {
	case Unsent:
		return "UNSENT"
	case Opened:
		return "OPENED"
	case HeadersReceived:
		return "HEADERS_RECEIVED"
	case Loading:
		return "LOADING"
	case Done:
		return "DONE"
	}
	return "UNKNOWN"
}

// Conn is one request with an XMLHttpRequest-style lifecycle. Send
// returns once the request is under way; the ready-state handler runs on
// every state change, Done last.
type Conn interface {
	Open(method, url string) error
	SetRequestHeader(name, value string)
	SetProperty(name string, v any)
	OnReadyStateChange(fn func())
	Send(body []byte) error
	Abort()
	ReadyState() ReadyState
	Status() int
	ResponseText() string
	ResponseHeader(name string) string
	AllResponseHeaders() string
}

// Transport creates connections.
type Transport interface {
	NewConn(ctx context.Context) Conn
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context) Conn

// NewConn implements Transport.
func (f TransportFunc) NewConn(ctx context.Context) Conn { return f(ctx) }

// errConn is implemented by connections that can report why a request
// failed before a response arrived.
type errConn interface {
	Err() error
}

// ParseHeaders parses a raw header block ("Name: value" lines) into a map
// keyed by lower-cased name. Repeated headers are joined with ", ".
func ParseHeaders(block string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		name, val, ok := strings.Cut(strings.TrimRight(line, "\r"), ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		val = strings.TrimSpace(val)
		if prev, ok := out[name]; ok {
			val = prev + ", " + val
		}
		out[name] = val
	}
	return out
}

// formatHeaders renders headers as a raw block with lower-cased names in
// sorted order.
func formatHeaders(h map[string][]string) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(strings.ToLower(name))
		b.WriteString(": ")
		b.WriteString(strings.Join(h[name], ", "))
		b.WriteString("\r\n")
	}
	return b.String()
}
