// Package web provides the installation's control server: a REST API for
// introspection and manual overrides, plus websocket streams carrying the
// per-frame visual and audio state to renderer and synthesizer clients
// and sensor input back to the engine.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/danhstorm/inner-reflection-sub001/internal/log"
	"github.com/danhstorm/inner-reflection-sub001/pkg/hub"
	"github.com/danhstorm/inner-reflection-sub001/pkg/session"
	"github.com/danhstorm/inner-reflection-sub001/pkg/state"
)

// Server is the installation control server
type Server struct {
	app    *fiber.App
	port   string
	runner *session.Runner

	// Hubs for websocket broadcast (thread-safe!)
	visualHub *hub.Hub
	audioHub  *hub.Hub
}

// NewServer creates a control server bound to the given runner.
func NewServer(port string, runner *session.Runner) *Server {
	s := &Server{
		port:      port,
		runner:    runner,
		visualHub: hub.New("visual"),
		audioHub:  hub.New("audio"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Inner Reflection",
		DisableStartupMessage: true,
	})

	// CORS for the renderer page during development
	app.Use(cors.New())

	// Static files (renderer page, synth patch)
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/visual", s.handleVisual)
	api.Get("/audio", s.handleAudio)
	api.Get("/session", s.handleSession)
	api.Post("/dimensions/:name", s.handleSetDimension)
	api.Post("/dimensions/:name/lock", s.handleLockDimension)
	api.Delete("/dimensions/:name/lock", s.handleUnlockDimension)
	api.Post("/dimensions/:name/target", s.handleGlideDimension)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/visual", websocket.New(s.handleVisualWS))
	app.Get("/ws/audio", websocket.New(s.handleAudioWS))
	app.Get("/ws/input", websocket.New(s.handleInputWS))

	s.app = app

	// Wire the runner's per-frame snapshots into the hubs. Must happen
	// before the frame loop starts; the runner reads these unlocked.
	runner.OnVisual = func(v state.VisualState) {
		if s.visualHub.ClientCount() > 0 {
			s.visualHub.BroadcastJSON(v)
		}
	}
	runner.OnAudio = func(a state.AudioState) {
		if s.audioHub.ClientCount() > 0 {
			s.audioHub.BroadcastJSON(a)
		}
	}

	return s
}

// Start starts the web server
func (s *Server) Start() error {
	log.Info("control server listening", "port", s.port)

	go s.visualHub.Run()
	go s.audioHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("control server error", "error", err)
		}
	}()
}

// VisualHub returns the visual stream hub for external use
func (s *Server) VisualHub() *hub.Hub {
	return s.visualHub
}

// AudioHub returns the audio stream hub for external use
func (s *Server) AudioHub() *hub.Hub {
	return s.audioHub
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
