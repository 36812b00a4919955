package xhr

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/domkit/internal/errors"
)

const defaultTracerName = "domkit/xhr"

var jsonType = regexp.MustCompile(`(?im)^[a-z/-]+json`)

// Options configures one request.
type Options struct {
	// Method is the HTTP method (default: "GET").
	Method string

	// Headers are set on the request in sorted order.
	Headers map[string]string

	// Data is sent as the request body.
	Data []byte

	// JSON, when non-nil, is encoded and sent instead of Data. The
	// Content-Type defaults to application/json.
	JSON any

	// Props are passed to Conn.SetProperty before sending.
	Props map[string]any

	// ParseJSON decodes the response as JSON regardless of its
	// Content-Type.
	ParseJSON bool
}

// Callback receives the outcome of a request. body is the response text,
// or the decoded value when the response was parsed as JSON.
type Callback func(err error, body any, conn Conn)

// StatusError is reported for responses outside 200-299.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("xhr: status %d: %s", e.Status, e.Message)
}

// Response is the result of a finished Call.
type Response struct {
	Status  int
	Body    any
	Text    string
	Headers map[string]string
	Conn    Conn
}

// Call is a single-shot future for one request.
type Call struct {
	conn Conn
	done chan struct{}
	once sync.Once
	resp *Response
	err  error
}

func newCall(conn Conn) *Call {
	return &Call{conn: conn, done: make(chan struct{})}
}

// Done is closed once the request has finished.
func (c *Call) Done() <-chan struct{} { return c.done }

// Wait blocks until the request finishes or ctx is done.
func (c *Call) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-c.done:
		return c.resp, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ErrPending is returned by Call.Result while the request is running.
var ErrPending = stderrors.New("xhr: request pending")

// Result returns the outcome without blocking.
func (c *Call) Result() (*Response, error) {
	select {
	case <-c.done:
		return c.resp, c.err
	default:
		return nil, ErrPending
	}
}

// Abort aborts the underlying connection.
func (c *Call) Abort() {
	if c.conn != nil {
		c.conn.Abort()
	}
}

// Conn returns the connection used by the call.
func (c *Call) Conn() Conn { return c.conn }

// finish records the outcome and reports whether this was the first.
func (c *Call) finish(resp *Response, err error) bool {
	first := false
	c.once.Do(func() {
		c.resp = resp
		c.err = err
		close(c.done)
		first = true
	})
	return first
}

// Client issues requests through a Transport.
type Client struct {
	transport Transport
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransport sets the transport (default: an HTTPTransport without
// timeout).
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics records every finished request in m.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer sets the tracer (default: the global provider's "domkit/xhr").
func WithTracer(t trace.Tracer) ClientOption {
	return func(c *Client) {
		c.tracer = t
	}
}

// NewClient creates a Client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(0)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(defaultTracerName)
	}
	return c
}

// Request starts a request to url. cb, when non-nil, is invoked exactly
// once with the outcome; the returned Call carries the same outcome.
//
// Failures are reported as *errors.Error with code E201 (JSON encode),
// E202 (JSON decode), E203 (empty url) or E204 (transport), and non-2xx
// responses as *StatusError. With the HTTP transport cb runs on the
// request's goroutine.
func (c *Client) Request(ctx context.Context, url string, cb Callback, opts Options) *Call {
	if ctx == nil {
		ctx = context.Background()
	}
	method := opts.Method
	if method == "" {
		method = "GET"
	}

	conn := c.transport.NewConn(ctx)
	call := newCall(conn)
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "xhr "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		),
	)

	report := func(resp *Response, err error) {
		if !call.finish(resp, err) {
			return
		}
		status := 0
		var body any
		if resp != nil {
			status = resp.Status
			body = resp.Body
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		c.metrics.observe(method, status, time.Since(start))
		c.logger.DebugContext(ctx, "request finished",
			"method", method,
			"url", url,
			"status", status,
			"duration", time.Since(start),
			"error", err,
		)
		if cb != nil {
			cb(err, body, conn)
		}
	}

	headers := make(map[string]string, len(opts.Headers)+1)
	for k, v := range opts.Headers {
		headers[k] = v
	}
	data := opts.Data
	if opts.JSON != nil {
		if !hasHeader(headers, "Content-Type") {
			headers["Content-Type"] = "application/json"
		}
		encoded, err := json.Marshal(opts.JSON)
		if err != nil {
			report(nil, errors.New("E201").Wrap(err))
			return call
		}
		data = encoded
	}

	if url == "" {
		report(nil, errors.New("E203"))
		return call
	}

	if err := conn.Open(method, url); err != nil {
		report(nil, errors.New("E204").Wrap(err))
		return call
	}
	for _, name := range sortedKeys(headers) {
		conn.SetRequestHeader(name, headers[name])
	}
	for _, name := range sortedKeys(opts.Props) {
		conn.SetProperty(name, opts.Props[name])
	}

	conn.OnReadyStateChange(func() {
		if conn.ReadyState() != Done {
			return
		}
		report(c.complete(conn, opts.ParseJSON))
	})

	c.logger.DebugContext(ctx, "request sent", "method", method, "url", url, "bytes", len(data))
	if err := conn.Send(data); err != nil {
		report(nil, errors.New("E204").Wrap(err))
	}
	return call
}

// complete builds the outcome of a connection in the Done state.
func (c *Client) complete(conn Conn, parseJSON bool) (*Response, error) {
	if ec, ok := conn.(errConn); ok {
		if err := ec.Err(); err != nil {
			return &Response{Conn: conn}, errors.New("E204").Wrap(err)
		}
	}

	text := conn.ResponseText()
	resp := &Response{
		Status:  conn.Status(),
		Body:    text,
		Text:    text,
		Headers: ParseHeaders(conn.AllResponseHeaders()),
		Conn:    conn,
	}

	if parseJSON || jsonType.MatchString(conn.ResponseHeader("Content-Type")) {
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return resp, errors.New("E202").Wrap(err)
		}
		resp.Body = v
	}

	if resp.Status < 200 || resp.Status > 299 {
		return resp, &StatusError{Status: resp.Status, Message: "Non-200 returned."}
	}
	return resp, nil
}

func hasHeader(h map[string]string, name string) bool {
	for k, v := range h {
		if v != "" && strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
