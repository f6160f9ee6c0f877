package preview

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/vdsl/internal/document"
	"github.com/vango-dev/vdsl/internal/errors"
	"github.com/vango-dev/vdsl/pkg/dsl"
	"github.com/vango-dev/vdsl/pkg/render"
	"github.com/vango-dev/vdsl/pkg/telemetry"
	"github.com/vango-dev/vdsl/pkg/vdom"
)

// Config configures the preview server.
type Config struct {
	// Addr is the listen address (default ":7070").
	Addr string

	// Title prefixes page titles.
	Title string

	// Strict makes every render fail with 503 while an element is waiting
	// on resources. A document's own strict setting and the ?strict query
	// parameter override it.
	Strict bool

	// Render configures HTML output.
	Render render.RendererConfig

	// Namespace is the metrics namespace (default "vdsl").
	Namespace string

	// Registry receives the render metrics and is served on /metrics.
	// Default: a new registry.
	Registry *prometheus.Registry

	// Observer is notified of every render in addition to the metrics.
	Observer dsl.Observer

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration
}

// Server renders documents from a store to HTML pages.
type Server struct {
	config   Config
	store    *document.Store
	renderer *render.Renderer
	observer dsl.Observer
	logger   *slog.Logger
	router   chi.Router
}

// New creates a preview server for the documents in store.
func New(store *document.Store, config Config) *Server {
	if config.Addr == "" {
		config.Addr = ":7070"
	}
	if config.Title == "" {
		config.Title = "vdsl preview"
	}
	if config.Namespace == "" {
		config.Namespace = "vdsl"
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 5 * time.Second
	}

	observers := dsl.Observers{
		telemetry.Prometheus(
			telemetry.WithRegistry(config.Registry),
			telemetry.WithNamespace(config.Namespace),
			telemetry.WithSubsystem("preview"),
		),
	}
	if config.Observer != nil {
		observers = append(observers, config.Observer)
	}

	s := &Server{
		config:   config,
		store:    store,
		renderer: render.NewRenderer(config.Render),
		observer: observers,
		logger:   config.Logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/components/{name}", s.handleComponent)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the server's http.Handler, for mounting in another
// router or for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server starting", "address", s.config.Addr, "documents", s.store.Dir())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
		s.logger.Info("server shutdown complete")
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	c := dsl.NewContext(dsl.WithLogger(s.logger), dsl.WithStdContext(r.Context()))
	body, err := c.Render("main", func() (any, error) {
		if _, err := dsl.TagOf(c, "h1", s.config.Title); err != nil {
			return nil, err
		}
		return c.Render("ul", func() (any, error) {
			for _, name := range names {
				_, err := c.Render("li", func() (any, error) {
					return dsl.TagOf(c, "a", name, vdom.Href("/components/"+name))
				})
				if err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePage(w, r, s.config.Title, body)
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := s.store.Open(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	strict := s.config.Strict
	if doc.Strict != nil {
		strict = *doc.Strict
	}
	if v := r.URL.Query().Get("strict"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			strict = b
		}
	}

	c := dsl.NewContext(
		dsl.WithStrict(strict),
		dsl.WithLogger(s.logger.With("document", name, "request_id", middleware.GetReqID(r.Context()))),
		dsl.WithObserver(s.observer),
		dsl.WithStdContext(r.Context()),
	)
	el, err := doc.Render(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("fragment") != "" {
		html, err := s.renderer.RenderToString(el)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
		return
	}

	title := doc.Title
	if title == "" {
		title = doc.Name
	}
	s.writePage(w, r, s.config.Title+" · "+title, el)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, title string, el *vdom.VNode) {
	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, render.PageData{Title: title, Body: el}); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if el.Pending() {
		w.Header().Set("X-Vdsl-Waiting", "true")
	}
	w.Write(buf.Bytes())
}

// StatusOf maps a render or document error to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, dsl.ErrNotQuiet):
		return http.StatusServiceUnavailable
	case errors.Is(err, dsl.ErrImproperRender):
		return http.StatusInternalServerError
	}

	var e *errors.Error
	if errors.As(err, &e) {
		switch {
		case e.Code == "E133":
			return http.StatusNotFound
		case e.Category == errors.CategoryDocument:
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	s.logger.Log(r.Context(), levelFor(status), "preview request failed",
		"path", r.URL.Path, "status", status, "error", err)

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}

	var e *errors.Error
	if !errors.As(err, &e) {
		http.Error(w, err.Error(), status)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(e.FormatJSON()))
		return
	}
	http.Error(w, e.FormatCompact(), status)
}

func levelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return slog.LevelError
	}
	return slog.LevelInfo
}
