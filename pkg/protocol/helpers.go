package protocol

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewKeyMessage creates a key press message
func NewKeyMessage(key string) (*Message, error) {
	return NewMessage(TypeKey, KeyData{Key: key})
}

// NewPointerMessage creates a pointer position message
func NewPointerMessage(x, y float64) (*Message, error) {
	return NewMessage(TypePointer, PointerData{X: x, Y: y})
}

// NewGestureMessage creates a gesture message
func NewGestureMessage(g GestureData) (*Message, error) {
	return NewMessage(TypeGesture, g)
}

// NewAudioMessage creates an analyzer band-level message
func NewAudioMessage(volume, bass, mid, treble float64) (*Message, error) {
	return NewMessage(TypeAudio, AudioLevels{
		Volume: volume,
		Bass:   bass,
		Mid:    mid,
		Treble: treble,
	})
}

// NewFaceMessage creates a structured face-feature message
func NewFaceMessage(f FaceData) (*Message, error) {
	return NewMessage(TypeFace, f)
}

// NewFacePositionMessage creates an absolute face position message
func NewFacePositionMessage(x, y, size float64) (*Message, error) {
	return NewMessage(TypeFacePosition, FacePositionData{X: x, Y: y, Size: size})
}

// NewFacePushMessage creates a smoothed face push message
func NewFacePushMessage(pushX, pushY, pushSize float64) (*Message, error) {
	return NewMessage(TypeFacePush, FacePushData{PushX: pushX, PushY: pushY, PushSize: pushSize})
}

// NewBlinkMessage creates a one-shot blink message
func NewBlinkMessage() (*Message, error) {
	return NewMessage(TypeBlink, nil)
}

// NewTalkingMessage creates a talking level message
func NewTalkingMessage(talking bool) (*Message, error) {
	return NewMessage(TypeTalking, TalkingData{Talking: talking})
}

// NewMotionMessage creates a device motion message
func NewMotionMessage(tiltX, tiltY, shake float64) (*Message, error) {
	return NewMessage(TypeMotion, MotionData{TiltX: tiltX, TiltY: tiltY, Shake: shake})
}

// NewFeedbackMessage creates an input feedback message
func NewFeedbackMessage(intensity float64) (*Message, error) {
	return NewMessage(TypeFeedback, FeedbackData{Intensity: intensity})
}

// NewSetMessage creates a manual value command
func NewSetMessage(name string, value float64) (*Message, error) {
	return NewMessage(TypeSet, DimensionCommand{Name: name, Value: value})
}

// NewLockMessage creates a lock command
func NewLockMessage(name string, value float64) (*Message, error) {
	return NewMessage(TypeLock, DimensionCommand{Name: name, Value: value})
}

// NewUnlockMessage creates an unlock command
func NewUnlockMessage(name string) (*Message, error) {
	return NewMessage(TypeUnlock, DimensionCommand{Name: name})
}

// NewGlideMessage creates a target-only glide command
func NewGlideMessage(name string, value float64) (*Message, error) {
	return NewMessage(TypeGlide, DimensionCommand{Name: name, Value: value})
}

// NewVisualMessage wraps a visual state snapshot
func NewVisualMessage(v interface{}) (*Message, error) {
	return NewMessage(TypeVisual, v)
}

// NewAudioStateMessage wraps an audio state snapshot
func NewAudioStateMessage(a interface{}) (*Message, error) {
	return NewMessage(TypeAudioState, a)
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{ID: id})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}
