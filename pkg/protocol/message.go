// Package protocol defines the WebSocket message types exchanged between
// the installation server, its sensor feeds, and the renderer/synthesizer
// clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Sensor → Engine messages
	TypeKey          MessageType = "key"           // Key press
	TypePointer      MessageType = "pointer"       // Pointer/mouse position
	TypeGesture      MessageType = "gesture"       // Pinch/rotate/swipe features
	TypeAudio        MessageType = "audio"         // Analyzer band levels
	TypeFace         MessageType = "face"          // Structured face features
	TypeFacePosition MessageType = "face_position" // Absolute face position
	TypeFacePush     MessageType = "face_push"     // Smoothed face push vector
	TypeBlink        MessageType = "blink"         // One-shot blink
	TypeTalking      MessageType = "talking"       // Talking level change
	TypeMotion       MessageType = "motion"        // Device tilt/shake
	TypeFeedback     MessageType = "feedback"      // Input feedback intensity

	// Control → Engine messages
	TypeSet    MessageType = "set"    // Manual value (hold + release)
	TypeLock   MessageType = "lock"   // Pin a dimension
	TypeUnlock MessageType = "unlock" // Release a pinned dimension
	TypeGlide  MessageType = "glide"  // Target-only smooth glide

	// Engine → Renderer/Synthesizer messages
	TypeVisual     MessageType = "visual"      // Visual state frame
	TypeAudioState MessageType = "audio_state" // Audio state frame

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Sensor → Engine Message Types
// =============================================================================

// KeyData carries one key press
type KeyData struct {
	Key string `json:"key"` // single character
}

// PointerData carries a normalized pointer position
type PointerData struct {
	X float64 `json:"x"` // [0,1]
	Y float64 `json:"y"` // [0,1]
}

// GestureData carries pinch/rotate/swipe features from the gesture tracker
type GestureData struct {
	IsPinching     bool    `json:"is_pinching"`
	PinchScale     float64 `json:"pinch_scale"`
	PinchCenterX   float64 `json:"pinch_center_x"`
	PinchCenterY   float64 `json:"pinch_center_y"`
	IsRotating     bool    `json:"is_rotating"`
	Rotation       float64 `json:"rotation"`
	SwipeVelocityX float64 `json:"swipe_velocity_x"`
	SwipeVelocityY float64 `json:"swipe_velocity_y"`
}

// AudioLevels carries the analyzer's band levels, all in [0,1]
type AudioLevels struct {
	Volume float64 `json:"volume"`
	Bass   float64 `json:"bass"`
	Mid    float64 `json:"mid"`
	Treble float64 `json:"treble"`
}

// FaceData carries the structured face-feature frame
type FaceData struct {
	Detected bool `json:"detected"`

	HeadYaw   float64 `json:"head_yaw"`   // [-1,1]
	HeadPitch float64 `json:"head_pitch"` // [-1,1]
	HeadRoll  float64 `json:"head_roll"`  // [-1,1]

	LeftEyeOpen  float64 `json:"left_eye_open"`  // [0,1]
	RightEyeOpen float64 `json:"right_eye_open"` // [0,1]

	GazeX float64 `json:"gaze_x"` // [-1,1]
	GazeY float64 `json:"gaze_y"` // [-1,1]

	MouthOpen  float64 `json:"mouth_open"`  // [0,1]
	MouthWidth float64 `json:"mouth_width"` // [0,1]

	BrowRaise  float64 `json:"brow_raise"`  // [0,1]
	BrowFurrow float64 `json:"brow_furrow"` // [0,1]

	LookingAtScreen bool    `json:"looking_at_screen"`
	Engagement      float64 `json:"engagement"` // [0,1]
}

// FacePositionData carries the absolute face position and apparent size
type FacePositionData struct {
	X    float64 `json:"x"`    // [0,1]
	Y    float64 `json:"y"`    // [0,1]
	Size float64 `json:"size"` // [0,1]
}

// FacePushData carries the tracker's pre-smoothed push vector
type FacePushData struct {
	PushX    float64 `json:"push_x"`    // [-1,1]
	PushY    float64 `json:"push_y"`    // [-1,1]
	PushSize float64 `json:"push_size"` // [-1,1]
}

// TalkingData carries the talking level state
type TalkingData struct {
	Talking bool `json:"talking"`
}

// MotionData carries device tilt and shake
type MotionData struct {
	TiltX float64 `json:"tilt_x"` // [-1,1]
	TiltY float64 `json:"tilt_y"` // [-1,1]
	Shake float64 `json:"shake"`  // [0,1]
}

// FeedbackData carries input feedback intensity
type FeedbackData struct {
	Intensity float64 `json:"intensity"` // [0,1]
}

// =============================================================================
// Control → Engine Message Types
// =============================================================================

// DimensionCommand names a dimension and, for set/lock/glide, a value
type DimensionCommand struct {
	Name  string  `json:"name"`
	Value float64 `json:"value,omitempty"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
