package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/okulo/go-okulo/pkg/hub"
)

// handleHealth reports server liveness
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleStatus returns the full monitor snapshot
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.session.Snapshot())
}

// handleStats returns just the blink statistics
func (s *Server) handleStats(c *fiber.Ctx) error {
	snap := s.session.Snapshot()
	return c.JSON(fiber.Map{
		"session_id": snap.SessionID,
		"stats":      snap.Stats,
		"rate_level": snap.RateLevel,
	})
}

// handleReset clears the session's blink history
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.session.Reset()
	return c.JSON(fiber.Map{"reset": true})
}

// handleStatsWS streams snapshot updates to one subscriber
func (s *Server) handleStatsWS(c *websocket.Conn) {
	client := hub.NewClient(s.statsHub, c)
	client.Run() // Blocks until disconnect
}

// handleCameraWS streams JPEG frames to one subscriber
func (s *Server) handleCameraWS(c *websocket.Conn) {
	client := hub.NewClient(s.cameraHub, c)
	client.Run()
}
