package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/router"
	"github.com/vango-dev/isoview/pkg/ssr"
	"github.com/vango-dev/isoview/pkg/state"
)

// Renderer renders a root placeholder request. *isoview.StateRouter
// implements it.
type Renderer interface {
	RenderRequest(ctx context.Context, req ssr.Request) (*ssr.Result, error)
}

// Server serves rendered documents.
type Server struct {
	cfg        Config
	mux        chi.Router
	httpServer *http.Server
}

// New creates a Server.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg.withDefaults()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(canonicalPaths)

	if s.cfg.Metrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/*", s.servePage)

	s.mux = r
	return s
}

// Handler returns the HTTP handler for mounting in another router.
func (s *Server) Handler() http.Handler { return s.mux }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// canonicalPaths redirects non-canonical paths with 308, which preserves
// the method, and rejects paths that cannot be canonicalized.
func canonicalPaths(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.EscapedPath()
		canonical, err := router.Canonicalize(raw)
		if err != nil {
			http.Error(w, "Invalid path", http.StatusBadRequest)
			return
		}
		if canonical != raw {
			target := canonical
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	log := s.cfg.Logger.With("path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))

	match, ok := s.cfg.Routes.Match(r.URL.EscapedPath())
	if !ok {
		http.NotFound(w, r)
		return
	}

	params := make(map[string]string, len(match.Params))
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	for k, v := range match.Params {
		params[k] = v
	}

	var value any = r
	if s.cfg.RequestContext != nil {
		value = s.cfg.RequestContext(r)
	}

	ctx := ssr.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
	res, err := s.cfg.Renderer.RenderRequest(ctx, ssr.Request{
		State:         match.State,
		Params:        params,
		Context:       value,
		PlaceholderID: s.cfg.PlaceholderID,
	})
	if err != nil {
		status := statusFor(err)
		log.Error("render failed", "state", match.State, "status", status, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	var buf bytes.Buffer
	if err := render.RenderPage(&buf, s.cfg.Document.Compose(res.Markup, res.Stylesheets)); err != nil {
		log.Error("document failed", "state", match.State, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func statusFor(err error) int {
	switch {
	case stderrors.Is(err, state.ErrStateNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Run listens on the configured address and blocks until the server fails
// or the process receives SIGINT or SIGTERM.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("server starting", "address", s.cfg.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-shutdown:
		s.cfg.Logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops a server started with Run.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.cfg.Logger.Error("shutdown error", "error", err)
		return err
	}
	s.cfg.Logger.Info("server shutdown complete")
	return nil
}
