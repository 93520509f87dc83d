package devserver

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/laiweb/internal/config"
	"github.com/vango-dev/laiweb/internal/demo"
	"github.com/vango-dev/laiweb/internal/telemetry"
	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

// WebSocketPath is where the hub is mounted.
const WebSocketPath = "/ws"

// Server is the development server.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	hub      *Hub
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server for cfg. It fails if the configured demo does not
// exist.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{config: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := demo.Lookup(cfg.Dev.Demo); err != nil {
		return nil, err
	}

	sessionOpts := SessionOptions{Logger: s.logger, Equality: vdom.NodesEqual}
	if cfg.Keyed() {
		sessionOpts.Equality = vdom.KeyedEqual
	}
	if cfg.MetricsEnabled() {
		s.registry = prometheus.NewRegistry()
		sessionOpts.Metrics = telemetry.NewMetrics(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(s.registry),
		)
	}

	s.hub = NewHub(s.resolve, sessionOpts)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get(WebSocketPath, s.hub.HandleWebSocket)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// resolve picks the demo named by the "demo" query parameter, falling back
// to the configured one.
func (s *Server) resolve(r *http.Request) (*runtime.Definition, error) {
	name := r.URL.Query().Get("demo")
	if name == "" {
		name = s.config.Dev.Demo
	}
	return demo.Lookup(name)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	def, err := s.resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, html.EscapeString("laiweb: "+def.ComponentName()), WebSocketPath)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("devserver: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves on the configured address until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.DevAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("devserver: listening", "url", s.config.DevURL(), "demo", s.config.Dev.Demo)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
