// Package web serves the dashboard page and its update channel over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"launchdash/internal/dashboard"
)

// EChartsURL is the script the page loads to draw figures.
const EChartsURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// Route paths.
const (
	PathIndex        = "/"
	PathLayout       = "/_dash-layout"
	PathDependencies = "/_dash-dependencies"
	PathUpdate       = "/_dash-update-component"
	PathExport       = "/export/"
	PathHealth       = "/healthz"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// maxBodyBytes bounds update request bodies.
const maxBodyBytes = 64 << 10

// Server serves one dashboard.
type Server struct {
	router   *dashboard.Router
	logger   *zap.Logger
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server for router that will listen on addr.
func NewServer(router *dashboard.Router, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router: router,
		logger: logger,
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+PathIndex+"{$}", compress(http.HandlerFunc(s.handleIndex)))
	mux.Handle(PathLayout, compress(http.HandlerFunc(s.handleLayout)))
	mux.Handle(PathDependencies, compress(http.HandlerFunc(s.handleDependencies)))
	mux.Handle(PathUpdate, compress(http.HandlerFunc(s.handleUpdate)))
	mux.HandleFunc("GET "+PathExport+"{graph}", s.handleExport)
	mux.HandleFunc("GET "+PathHealth, s.handleHealth)

	return requestID(accessLog(s.logger, mux))
}

// Start binds the listen address and serves in a background goroutine.
// It returns once the listener is open.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	s.listener = ln
	s.logger.Info("dashboard listening", zap.String("url", "http://"+ln.Addr().String()+"/"))

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
		}
	}()
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("dashboard stopping")
	return s.server.Shutdown(ctx)
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}
