package xhr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// HTTPTransport creates connections backed by an http.Client.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport returns a transport whose requests time out after
// timeout. Zero means no timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{Timeout: timeout}}
}

// NewConn implements Transport.
func (t *HTTPTransport) NewConn(ctx context.Context) Conn {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &httpConn{
		ctx:    ctx,
		client: client,
		header: make(http.Header),
		props:  make(map[string]any),
	}
}

type httpConn struct {
	ctx    context.Context
	client *http.Client

	mu         sync.Mutex
	method     string
	url        string
	header     http.Header
	props      map[string]any
	onChange   func()
	state      ReadyState
	status     int
	text       string
	respHeader http.Header
	err        error
	cancel     context.CancelFunc
}

func (c *httpConn) Open(method, url string) error {
	if _, err := http.NewRequest(method, url, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.method = method
	c.url = url
	c.mu.Unlock()
	c.setState(Opened)
	return nil
}

func (c *httpConn) SetRequestHeader(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header.Add(name, value)
}

// SetProperty stores an arbitrary property. "timeout" limits the request
// and accepts a time.Duration, a duration string or a number of
// milliseconds.
func (c *httpConn) SetProperty(name string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[name] = v
}

func (c *httpConn) Property(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props[name]
}

func (c *httpConn) OnReadyStateChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

func (c *httpConn) Send(body []byte) error {
	c.mu.Lock()
	if c.state != Opened {
		c.mu.Unlock()
		return fmt.Errorf("xhr: send in state %s", c.state)
	}

	ctx, cancel := context.WithCancel(c.ctx)
	if d, ok := timeoutOf(c.props["timeout"]); ok && d > 0 {
		cancel()
		ctx, cancel = context.WithTimeout(c.ctx, d)
	}
	c.cancel = cancel

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, c.method, c.url, r)
	if err != nil {
		c.mu.Unlock()
		cancel()
		return err
	}
	req.Header = c.header.Clone()
	c.mu.Unlock()

	go c.do(req, cancel)
	return nil
}

func (c *httpConn) do(req *http.Request, cancel context.CancelFunc) {
	defer cancel()

	resp, err := c.client.Do(req)
	if err != nil {
		c.fail(err)
		return
	}
	defer resp.Body.Close()

	c.mu.Lock()
	c.status = resp.StatusCode
	c.respHeader = resp.Header
	c.mu.Unlock()
	c.setState(HeadersReceived)
	c.setState(Loading)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fail(err)
		return
	}
	c.mu.Lock()
	c.text = string(data)
	c.mu.Unlock()
	c.setState(Done)
}

func (c *httpConn) fail(err error) {
	c.mu.Lock()
	if c.state == Done {
		c.mu.Unlock()
		return
	}
	c.err = err
	c.status = 0
	c.mu.Unlock()
	c.setState(Done)
}

// setState records s and runs the handler outside the lock. Done is
// reported only once.
func (c *httpConn) setState(s ReadyState) {
	c.mu.Lock()
	if c.state == Done {
		c.mu.Unlock()
		return
	}
	c.state = s
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (c *httpConn) Abort() {
	c.mu.Lock()
	cancel := c.cancel
	sent := cancel != nil
	c.mu.Unlock()

	if !sent {
		return
	}
	cancel()
	c.fail(context.Canceled)
}

func (c *httpConn) ReadyState() ReadyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *httpConn) Status() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *httpConn) ResponseText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *httpConn) ResponseHeader(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.respHeader.Get(name)
}

func (c *httpConn) AllResponseHeaders() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return formatHeaders(c.respHeader)
}

// Err returns the transport error of a failed request.
func (c *httpConn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func timeoutOf(v any) (time.Duration, bool) {
	switch t := v.(type) {
	case time.Duration:
		return t, true
	case int:
		return time.Duration(t) * time.Millisecond, true
	case int64:
		return time.Duration(t) * time.Millisecond, true
	case float64:
		return time.Duration(t * float64(time.Millisecond)), true
	case string:
		if d, err := time.ParseDuration(t); err == nil {
			return d, true
		}
		if ms, err := strconv.Atoi(t); err == nil {
			return time.Duration(ms) * time.Millisecond, true
		}
	}
	return 0, false
}
