// Package web serves the wellness dashboard API: live blink stats over
// REST and websocket. It serves data only; presentation is the UI's
// problem.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/okulo/go-okulo/internal/log"
	"github.com/okulo/go-okulo/pkg/hub"
	"github.com/okulo/go-okulo/pkg/monitor"
)

// Session is the monitoring session the dashboard exposes.
type Session interface {
	Snapshot() monitor.Snapshot
	Reset()
}

// Server is the dashboard API server
type Server struct {
	app     *fiber.App
	port    string
	session Session

	// Hubs for websocket broadcast
	statsHub  *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates a dashboard server for one monitoring session.
func NewServer(port string, session Session) *Server {
	s := &Server{
		port:      port,
		session:   session,
		statsHub:  hub.New("stats"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Okulo Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/status", s.handleStatus)
	api.Get("/stats", s.handleStats)
	api.Post("/reset", s.handleReset)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/stats", websocket.New(s.handleStatsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start starts the server and the broadcast hubs. Blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "port", s.port)

	go s.statsHub.Run()
	go s.cameraHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server failed", "error", err)
		}
	}()
}

// PublishSnapshot broadcasts a monitor snapshot to stats subscribers.
// Safe to call from the monitor's run loop.
func (s *Server) PublishSnapshot(snap monitor.Snapshot) {
	s.statsHub.BroadcastJSON(snap)
}

// SendCameraFrame broadcasts a JPEG frame to camera subscribers
func (s *Server) SendCameraFrame(jpeg []byte) {
	s.cameraHub.BroadcastBinary(jpeg)
}

// StatsClientCount returns the number of connected stats subscribers
func (s *Server) StatsClientCount() int {
	return s.statsHub.ClientCount()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
