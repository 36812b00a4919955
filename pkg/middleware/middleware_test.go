package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// =============================================================================
// Test Helpers
// =============================================================================

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

type hijackWriter struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

// =============================================================================
// Prometheus
// =============================================================================

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	t.Run("success increments counter and duration", func(t *testing.T) {
		resetGlobalMetricsForTest()
		mw := Prometheus(WithRegistry(prometheus.NewRegistry()))

		rr := httptest.NewRecorder()
		mw(statusHandler(http.StatusOK)).ServeHTTP(rr, httptest.NewRequest("GET", "/render", nil))

		c := GetMetrics()
		if c == nil {
			t.Fatal("expected GetMetrics to return collector after initialization")
		}
		if got := testutil.ToFloat64(c.RequestsTotal.WithLabelValues("/render", "200")); got != 1 {
			t.Fatalf("requests_total(200)=%v, want 1", got)
		}
		if got := metricHistogramCount(t, c.RequestDuration.WithLabelValues("/render")); got == 0 {
			t.Fatal("expected request_duration_seconds histogram to have sample count > 0")
		}
		if got := testutil.ToFloat64(c.RequestsInFlight); got != 0 {
			t.Fatalf("requests_in_flight=%v, want 0 after completion", got)
		}
	})

	t.Run("error status is labelled", func(t *testing.T) {
		resetGlobalMetricsForTest()
		mw := Prometheus(WithRegistry(prometheus.NewRegistry()))

		rr := httptest.NewRecorder()
		mw(statusHandler(http.StatusBadRequest)).ServeHTTP(rr, httptest.NewRequest("POST", "/render", nil))

		c := GetMetrics()
		if got := testutil.ToFloat64(c.RequestsTotal.WithLabelValues("/render", "400")); got != 1 {
			t.Fatalf("requests_total(400)=%v, want 1", got)
		}
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("response code = %d, want 400", rr.Code)
		}
	})
}

func TestPrometheusMiddleware_PathLabel(t *testing.T) {
	resetGlobalMetricsForTest()
	mw := Prometheus(
		WithRegistry(prometheus.NewRegistry()),
		WithPathLabel(func(r *http.Request) string { return "/items/{id}" }),
	)

	for _, p := range []string{"/items/1", "/items/2"} {
		mw(statusHandler(http.StatusOK)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", p, nil))
	}

	c := GetMetrics()
	if got := testutil.ToFloat64(c.RequestsTotal.WithLabelValues("/items/{id}", "200")); got != 2 {
		t.Fatalf("requests_total(/items/{id})=%v, want 2", got)
	}
}

func TestPrometheusMiddleware_CustomNamespace(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg), WithNamespace("preview"), WithSubsystem(""))
	mw(statusHandler(http.StatusOK)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if n, err := testutil.GatherAndCount(reg, "preview_requests_total"); err != nil || n != 1 {
		t.Fatalf("GatherAndCount(preview_requests_total) = %d, %v; want 1", n, err)
	}
}

func TestMetricsRecordFunctions(t *testing.T) {
	resetGlobalMetricsForTest()
	RecordWebSocketOpen() // no-op before initialization

	_ = Prometheus(WithRegistry(prometheus.NewRegistry()))
	c := GetMetrics()

	RecordWebSocketOpen()
	RecordWebSocketOpen()
	RecordWebSocketClose()
	RecordWebSocketError(errTest("websocket: close 1006 (abnormal closure)"))
	RecordWebSocketError(errTest("i/o timeout"))
	RecordWebSocketError(nil)

	if got := testutil.ToFloat64(c.WSConnections); got != 1 {
		t.Fatalf("websocket_connections=%v, want 1", got)
	}
	if got := testutil.ToFloat64(c.WSErrors.WithLabelValues("close")); got != 1 {
		t.Fatalf("websocket_errors_total(close)=%v, want 1", got)
	}
	if got := testutil.ToFloat64(c.WSErrors.WithLabelValues("timeout")); got != 1 {
		t.Fatalf("websocket_errors_total(timeout)=%v, want 1", got)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"read: i/o Timeout", "timeout"},
		{"websocket: close sent", "close"},
		{"E202: JSON decode failed", "decode"},
		{"invalid character", "decode"},
		{"render failed", "render"},
		{"boom", "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(errTest(tt.msg)); got != tt.want {
			t.Errorf("categorizeError(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

// =============================================================================
// StatusRecorder
// =============================================================================

func TestStatusRecorder(t *testing.T) {
	rec := NewStatusRecorder(httptest.NewRecorder())
	if rec.Status() != http.StatusOK {
		t.Fatalf("default Status() = %d, want 200", rec.Status())
	}
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusInternalServerError)
	if rec.Status() != http.StatusTeapot {
		t.Fatalf("Status() = %d, want first written 418", rec.Status())
	}
	if NewStatusRecorder(rec) != rec {
		t.Fatal("NewStatusRecorder should not double wrap")
	}
}

func TestStatusRecorder_Hijack(t *testing.T) {
	hw := &hijackWriter{ResponseRecorder: httptest.NewRecorder()}
	rec := NewStatusRecorder(hw)
	if _, _, err := rec.Hijack(); err != nil {
		t.Fatalf("Hijack() error: %v", err)
	}
	if !hw.hijacked || rec.Status() != http.StatusSwitchingProtocols {
		t.Fatalf("hijacked=%v status=%d", hw.hijacked, rec.Status())
	}

	plain := NewStatusRecorder(httptest.NewRecorder())
	if _, _, err := plain.Hijack(); err == nil {
		t.Fatal("expected Hijack error for a writer without Hijacker")
	}
}

// =============================================================================
// OpenTelemetry
// =============================================================================

func TestOpenTelemetryMiddleware_StoresSpanInContext(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithTracerName("test"),
		WithIncludeQuery(true),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			extracted = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	var sawSpan bool
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusAccepted)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/render?x=1", nil))

	if !sawSpan {
		t.Fatal("expected a span in the handler context")
	}
	if !extracted {
		t.Fatal("expected attribute extractor to run")
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("code = %d, want 202", rr.Code)
	}
}

func TestOpenTelemetryMiddleware_FilterSkipsTracing(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			extracted = true
			return nil
		}),
	)

	called := false
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

	if !called {
		t.Fatal("expected next handler to be called")
	}
	if extracted {
		t.Fatal("filtered request should not be traced")
	}
}

func TestFormatSpanName(t *testing.T) {
	r := httptest.NewRequest("POST", "/render", nil)
	if got := formatSpanName(r); got != "POST /render" {
		t.Fatalf("formatSpanName() = %q", got)
	}
	r.URL.Path = ""
	if got := formatSpanName(r); got != "POST /" {
		t.Fatalf("formatSpanName(empty) = %q", got)
	}
}
