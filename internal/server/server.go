// Package server exposes the diagram-filtering operations to UI
// collaborators over HTTP. It is a thin shell: parsing, traversal, and
// rendering all live in the pkg packages; the server only moves sessions
// in and out of their store and re-renders after each visibility mutation.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hbauer/flowview/pkg/cache"
	"github.com/hbauer/flowview/pkg/events"
	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/session"
	"github.com/hbauer/flowview/pkg/store"
)

// Options configures a Server. Zero-value fields fall back to in-memory
// backends and renderer defaults.
type Options struct {
	Sessions session.Store
	Diagrams store.Store
	Cache    cache.Cache
	Hub      *events.Hub
	Renderer flowchart.Renderer
	Logger   *log.Logger

	// PreviewTTL bounds how long rendered SVG previews stay cached.
	PreviewTTL time.Duration
}

// Server handles the flowview HTTP API.
type Server struct {
	sessions   session.Store
	diagrams   store.Store
	cache      cache.Cache
	hub        *events.Hub
	renderer   flowchart.Renderer
	logger     *log.Logger
	previewTTL time.Duration
}

// New creates a server. A click handler is registered on the hub that
// hides the clicked node, mirroring the interactive behavior of the
// original viewer: clicking a rendered node collapses it, and the sidebar
// operations bring nodes back.
func New(opts Options) *Server {
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore()
	}
	if opts.Diagrams == nil {
		opts.Diagrams = store.NewMemoryStore()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache()
	}
	if opts.Hub == nil {
		opts.Hub = events.NewHub()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.PreviewTTL == 0 {
		opts.PreviewTTL = time.Hour
	}

	s := &Server{
		sessions:   opts.Sessions,
		diagrams:   opts.Diagrams,
		cache:      opts.Cache,
		hub:        opts.Hub,
		renderer:   opts.Renderer,
		logger:     opts.Logger,
		previewTTL: opts.PreviewTTL,
	}
	s.hub.Subscribe(s.onClick)
	return s
}

// Hub returns the event hub so additional click handlers can be attached.
func (s *Server) Hub() *events.Hub { return s.hub }

// onClick applies the default interaction policy: hide the clicked node.
func (s *Server) onClick(c events.Click) {
	ctx := context.Background()
	sess, err := s.sessions.Get(ctx, c.Session)
	if err != nil {
		s.logger.Warnf("click on unknown session %s: %v", c.Session, err)
		return
	}
	sess.Visibility().SetVisible(c.Node, false)
	if err := s.sessions.Put(ctx, sess); err != nil {
		s.logger.Warnf("persist session %s: %v", c.Session, err)
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/", s.handleListDiagrams)
			r.Post("/", s.handleCreateDiagram)
			r.Get("/{id}", s.handleGetDiagram)
			r.Delete("/{id}", s.handleDeleteDiagram)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleOpenSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleCloseSession)
				r.Get("/text", s.handleText)
				r.Get("/preview.svg", s.handlePreview)
				r.Post("/visibility", s.handleSetVisibility)
				r.Post("/show-all", s.handleShowAll)
				r.Post("/hide-all", s.handleHideAll)
				r.Post("/descendants/{node}", s.handleShowDescendants)
				r.Post("/ancestors/{node}", s.handleShowAncestors)
				r.Post("/click/{node}", s.handleClick)
			})
		})
	})

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Infof("Listening on %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugf("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}
