package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// consoleBuffer bounds queued console messages; older renders lose messages first
const consoleBuffer = 256

// Server handles web requests for the raytracer
type Server struct {
	port    int
	echo    *echo.Echo
	console chan ConsoleMessage
	renders chan struct{} // Semaphore limiting concurrent renders
}

// NewServer creates a new web server allowing maxRenders renders at a time
func NewServer(port, maxRenders int) *Server {
	s := &Server{
		port:    port,
		echo:    echo.New(),
		console: make(chan ConsoleMessage, consoleBuffer),
		renders: make(chan struct{}, max(maxRenders, 1)),
	}
	s.echo.HideBanner = true
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.Use(corsMiddleware)

	// API endpoints
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/system", s.handleSystem)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		c.Response().Header().Set("Access-Control-Expose-Headers", "X-Render-Id, X-Render-Time-Ms")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// jsonError writes an {"error": message} body
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the builtin scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"default": scene.DefaultSceneID,
		"scenes":  scene.ListBuiltinScenes(),
	})
}

// handleConsole returns console messages queued since the last call
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, drainConsole(s.console))
}
