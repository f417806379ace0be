package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"topicreview/internal"
	"topicreview/internal/review"
	"topicreview/internal/theme"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/css/*
var embeddedFiles embed.FS

const sessionCookie = "topicreview_session"

// Options configures the review server
type Options struct {
	Store          *review.Store
	Palette        theme.Palette
	MaxUploadBytes int64
	Logger         *internal.Logger
}

// Server is the interactive review surface
type Server struct {
	router    *gin.Engine
	store     *review.Store
	palette   theme.Palette
	maxUpload int64
	log       *internal.Logger
}

// NewServer parses the embedded templates and registers routes
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}

	s := &Server{
		router:    gin.New(),
		store:     opts.Store,
		palette:   opts.Palette,
		maxUpload: opts.MaxUploadBytes,
		log:       opts.Logger.With("Server"),
	}

	funcMap := template.FuncMap{
		"rowStyle": func(p theme.Palette, correct bool) template.CSS {
			return template.CSS(p.RowStyle(correct))
		},
		"pct": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.router.SetHTMLTemplate(templates)

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures Gin middleware and static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger(), gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/upload", s.handleUpload)
	s.router.POST("/select", s.handleSelect)

	s.router.GET("/download/validated", s.handleDownloadValidated)
	s.router.GET("/download/overview", s.handleDownloadOverview)

	s.router.GET("/stats", s.handleStats)
	s.router.GET("/stats/charts", s.handleStatsCharts)

	s.router.GET("/api/review", s.handleReviewJSON)
	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until it fails
func (s *Server) Start(addr string) error {
	s.log.Info("Starting topic review UI on http://%s", addr)
	return s.router.Run(addr)
}

// StartSweeper drops idle sessions every interval until ctx is done
func (s *Server) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.store.Sweep(); n > 0 {
					s.log.Debug("dropped %d idle sessions", n)
				}
			}
		}
	}()
}

// session returns the caller's review session, issuing a cookie for new ones
func (s *Server) session(c *gin.Context) *review.Session {
	id, _ := c.Cookie(sessionCookie)
	sess, created := s.store.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
		s.log.Debug("new session %s", sess.ID)
	}
	return sess
}
