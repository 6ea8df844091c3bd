package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/danhstorm/inner-reflection-sub001/internal/log"
	"github.com/danhstorm/inner-reflection-sub001/pkg/hub"
	"github.com/danhstorm/inner-reflection-sub001/pkg/protocol"
	"github.com/danhstorm/inner-reflection-sub001/pkg/state"
)

// dimensionRequest is the JSON body for dimension mutation routes
type dimensionRequest struct {
	Value float64 `json:"value"`
}

// handleState returns every dimension's current value by canonical name
func (s *Server) handleState(c *fiber.Ctx) error {
	var all map[string]float64
	s.runner.Snapshot(func(e *state.Engine) {
		all = e.AllState()
	})
	if all == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "engine busy",
		})
	}
	return c.JSON(all)
}

// handleVisual returns the current visual projection
func (s *Server) handleVisual(c *fiber.Ctx) error {
	var v state.VisualState
	var ok bool
	s.runner.Snapshot(func(e *state.Engine) {
		v = e.VisualState()
		ok = true
	})
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "engine busy",
		})
	}
	return c.JSON(v)
}

// handleAudio returns the current audio projection
func (s *Server) handleAudio(c *fiber.Ctx) error {
	var a state.AudioState
	var ok bool
	s.runner.Snapshot(func(e *state.Engine) {
		a = e.AudioState()
		ok = true
	})
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "engine busy",
		})
	}
	return c.JSON(a)
}

// handleSession returns session diagnostics
func (s *Server) handleSession(c *fiber.Ctx) error {
	var harmony string
	var focusActive bool
	var focusIntensity float64
	var shifts int
	s.runner.Snapshot(func(e *state.Engine) {
		harmony = e.Harmony().String()
		focusActive = e.FocusActive()
		focusIntensity = e.FocusIntensity()
		shifts = e.ActiveShiftCount()
	})

	return c.JSON(fiber.Map{
		"id":              s.runner.ID(),
		"running":         s.runner.IsRunning(),
		"uptime_seconds":  int(s.runner.Uptime() / time.Second),
		"ticks":           s.runner.TickCount(),
		"harmony":         harmony,
		"focus_active":    focusActive,
		"focus_intensity": focusIntensity,
		"active_shifts":   shifts,
		"visual_clients":  s.visualHub.ClientCount(),
		"audio_clients":   s.audioHub.ClientCount(),
	})
}

// handleSetDimension applies a manual value: settle, hold, then release
func (s *Server) handleSetDimension(c *fiber.Ctx) error {
	name := c.Params("name")
	if state.IndexOf(name) < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown dimension: " + name,
		})
	}

	var req dimensionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	s.runner.Enqueue(func(e *state.Engine) {
		e.SetManualValue(name, req.Value)
	})
	return c.JSON(fiber.Map{"status": "accepted", "dimension": name, "value": req.Value})
}

// handleLockDimension pins a dimension until unlocked
func (s *Server) handleLockDimension(c *fiber.Ctx) error {
	name := c.Params("name")
	if state.IndexOf(name) < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown dimension: " + name,
		})
	}

	var req dimensionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	s.runner.Enqueue(func(e *state.Engine) {
		e.LockDimension(name, req.Value)
	})
	return c.JSON(fiber.Map{"status": "locked", "dimension": name, "value": req.Value})
}

// handleUnlockDimension releases a locked dimension back to autonomy
func (s *Server) handleUnlockDimension(c *fiber.Ctx) error {
	name := c.Params("name")
	if state.IndexOf(name) < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown dimension: " + name,
		})
	}

	s.runner.Enqueue(func(e *state.Engine) {
		e.UnlockDimension(name)
	})
	return c.JSON(fiber.Map{"status": "unlocked", "dimension": name})
}

// handleGlideDimension sets only the target for a smooth glide
func (s *Server) handleGlideDimension(c *fiber.Ctx) error {
	name := c.Params("name")
	if state.IndexOf(name) < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown dimension: " + name,
		})
	}

	var req dimensionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	s.runner.Enqueue(func(e *state.Engine) {
		e.SetTargetValue(name, req.Value)
	})
	return c.JSON(fiber.Map{"status": "gliding", "dimension": name, "value": req.Value})
}

// handleVisualWS streams visual state frames to a renderer client
func (s *Server) handleVisualWS(conn *websocket.Conn) {
	client := hub.NewClient(s.visualHub, conn)
	client.Run() // Blocks until disconnect
}

// handleAudioWS streams audio state frames to a synthesizer client
func (s *Server) handleAudioWS(conn *websocket.Conn) {
	client := hub.NewClient(s.audioHub, conn)
	client.Run() // Blocks until disconnect
}

// handleInputWS receives sensor messages and forwards them to the engine
// through the session queue. One connection per sensor feed; the read
// loop owns the connection.
func (s *Server) handleInputWS(conn *websocket.Conn) {
	defer conn.Close()
	log.Info("input feed connected", "remote", conn.RemoteAddr().String())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("input feed disconnected", "error", err)
			return
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			log.Warn("unparseable input message", "error", err)
			continue
		}

		if msg.Type == protocol.TypePing {
			s.replyPong(conn, msg)
			continue
		}

		if err := s.dispatchInput(msg); err != nil {
			log.Warn("bad input payload", "type", string(msg.Type), "error", err)
		}
	}
}

// dispatchInput converts one protocol message into a queued engine input.
func (s *Server) dispatchInput(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.TypeKey:
		var d protocol.KeyData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		if d.Key == "" {
			return nil
		}
		symbol := []rune(d.Key)[0]
		s.runner.Enqueue(func(e *state.Engine) { e.HandleKeyPress(symbol) })

	case protocol.TypePointer:
		var d protocol.PointerData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) { e.HandleMouseMove(d.X, d.Y) })

	case protocol.TypeGesture:
		var d protocol.GestureData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.HandleGestureInput(state.Gesture{
				IsPinching:     d.IsPinching,
				PinchScale:     d.PinchScale,
				PinchCenterX:   d.PinchCenterX,
				PinchCenterY:   d.PinchCenterY,
				IsRotating:     d.IsRotating,
				Rotation:       d.Rotation,
				SwipeVelocityX: d.SwipeVelocityX,
				SwipeVelocityY: d.SwipeVelocityY,
			})
		})

	case protocol.TypeAudio:
		var d protocol.AudioLevels
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.HandleAudioInput(d.Volume, d.Bass, d.Mid, d.Treble)
		})

	case protocol.TypeFace:
		var d protocol.FaceData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.HandleFaceFeatures(state.FaceFeatures{
				Detected:        d.Detected,
				HeadYaw:         d.HeadYaw,
				HeadPitch:       d.HeadPitch,
				HeadRoll:        d.HeadRoll,
				LeftEyeOpen:     d.LeftEyeOpen,
				RightEyeOpen:    d.RightEyeOpen,
				GazeX:           d.GazeX,
				GazeY:           d.GazeY,
				MouthOpen:       d.MouthOpen,
				MouthWidth:      d.MouthWidth,
				BrowRaise:       d.BrowRaise,
				BrowFurrow:      d.BrowFurrow,
				LookingAtScreen: d.LookingAtScreen,
				Engagement:      d.Engagement,
			})
		})

	case protocol.TypeFacePosition:
		var d protocol.FacePositionData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.HandleFacePosition(d.X, d.Y, d.Size)
		})

	case protocol.TypeFacePush:
		var d protocol.FacePushData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.HandleFacePositionSmooth(d.PushX, d.PushY, d.PushSize)
		})

	case protocol.TypeBlink:
		s.runner.Enqueue(func(e *state.Engine) { e.HandleBlink() })

	case protocol.TypeTalking:
		var d protocol.TalkingData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) { e.HandleTalking(d.Talking) })

	case protocol.TypeMotion:
		var d protocol.MotionData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.HandleMotion(d.TiltX, d.TiltY, d.Shake)
		})

	case protocol.TypeFeedback:
		var d protocol.FeedbackData
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) {
			e.TriggerInputFeedback(d.Intensity)
		})

	case protocol.TypeSet:
		var d protocol.DimensionCommand
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) { e.SetManualValue(d.Name, d.Value) })

	case protocol.TypeLock:
		var d protocol.DimensionCommand
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) { e.LockDimension(d.Name, d.Value) })

	case protocol.TypeUnlock:
		var d protocol.DimensionCommand
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) { e.UnlockDimension(d.Name) })

	case protocol.TypeGlide:
		var d protocol.DimensionCommand
		if err := msg.ParseData(&d); err != nil {
			return err
		}
		s.runner.Enqueue(func(e *state.Engine) { e.SetTargetValue(d.Name, d.Value) })

	default:
		log.Debug("ignoring unknown input type", "type", string(msg.Type))
	}
	return nil
}

// replyPong answers a ping on the input connection.
func (s *Server) replyPong(conn *websocket.Conn, ping *protocol.Message) {
	var d protocol.PingData
	if err := ping.ParseData(&d); err != nil {
		return
	}
	pong, err := protocol.NewPongMessage(d.ID, ping.Timestamp, time.Now().UnixMilli())
	if err != nil {
		return
	}
	data, err := pong.Bytes()
	if err != nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, data)
}
