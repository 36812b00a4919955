package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/domkit/internal/config"
	"github.com/vango-dev/domkit/pkg/dom"
	"github.com/vango-dev/domkit/pkg/middleware"
)

// maxBodyBytes limits render request bodies.
const maxBodyBytes = 4 << 20

// Server is the preview server.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	router   chi.Router
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithRegistry registers metrics in reg and serves reg on /metrics
// instead of the default registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// New creates a Server for cfg.
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Preview tool, any origin
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	if s.cfg.Server.Tracing {
		r.Use(middleware.OpenTelemetry(
			middleware.WithTracerName("domkit-preview"),
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
			}),
		))
	}
	if s.cfg.Server.Metrics {
		opts := []middleware.MetricsOption{
			middleware.WithPathLabel(routePattern),
		}
		var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
		if s.registry != nil {
			opts = append(opts, middleware.WithRegistry(s.registry))
			gatherer = s.registry
		}
		r.Use(middleware.Prometheus(opts...))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/ws", s.handleWebSocket)
	return r
}

// routePattern labels metrics by chi route so unknown paths share one
// series.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// newDocument creates the per-request document. Documents are not safe
// for concurrent use, so every render gets its own.
func (s *Server) newDocument() *dom.Document {
	return dom.NewDocument(
		dom.WithLogger(s.logger),
		dom.WithStyleProperties(s.cfg.Style.Properties...),
	)
}

// ListenAndServe serves on the configured address until ctx is done,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}
