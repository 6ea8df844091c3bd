package protocol

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "audio message",
			msgType: TypeAudio,
			data:    AudioLevels{Volume: 0.7, Bass: 0.5, Mid: 0.3, Treble: 0.2},
			wantErr: false,
		},
		{
			name:    "face message",
			msgType: TypeFace,
			data:    FaceData{Detected: true, HeadYaw: 0.2, Engagement: 0.9},
			wantErr: false,
		},
		{
			name:    "nil data",
			msgType: TypeBlink,
			data:    nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if msg == nil && !tt.wantErr {
				t.Error("NewMessage() returned nil message")
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	original := FaceData{
		Detected:        true,
		HeadYaw:         -0.4,
		HeadPitch:       0.1,
		LeftEyeOpen:     0.9,
		RightEyeOpen:    0.8,
		MouthOpen:       0.3,
		LookingAtScreen: true,
		Engagement:      0.75,
	}

	msg, err := NewFaceMessage(original)
	if err != nil {
		t.Fatalf("NewFaceMessage() error = %v", err)
	}

	data, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	parsed, err := ParseMessage(data)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if parsed.Type != TypeFace {
		t.Errorf("parsed type = %v, want %v", parsed.Type, TypeFace)
	}

	var got FaceData
	if err := parsed.ParseData(&got); err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if got != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, original)
	}
}

func TestParseMessage_Malformed(t *testing.T) {
	if _, err := ParseMessage([]byte("{not json")); err == nil {
		t.Error("ParseMessage() should fail on malformed JSON")
	}
}

func TestParseData_NilData(t *testing.T) {
	msg := &Message{Type: TypeBlink}
	var v KeyData
	if err := msg.ParseData(&v); err != nil {
		t.Errorf("ParseData() with nil data should be a no-op, got %v", err)
	}
}

func TestDimensionCommandHelpers(t *testing.T) {
	msg, err := NewLockMessage("displacementStrength", 0.25)
	if err != nil {
		t.Fatalf("NewLockMessage() error = %v", err)
	}

	var cmd DimensionCommand
	if err := msg.ParseData(&cmd); err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if cmd.Name != "displacementStrength" || cmd.Value != 0.25 {
		t.Errorf("got %+v", cmd)
	}

	unlock, err := NewUnlockMessage("displacementStrength")
	if err != nil {
		t.Fatalf("NewUnlockMessage() error = %v", err)
	}
	if unlock.Type != TypeUnlock {
		t.Errorf("type = %v, want %v", unlock.Type, TypeUnlock)
	}
}

func TestPingPong(t *testing.T) {
	ping, err := NewPingMessage("abc123")
	if err != nil {
		t.Fatalf("NewPingMessage() error = %v", err)
	}

	var pd PingData
	if err := ping.ParseData(&pd); err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if pd.ID != "abc123" {
		t.Errorf("ping ID = %q", pd.ID)
	}

	now := time.Now().UnixMilli()
	pong, err := NewPongMessage(pd.ID, now-25, now)
	if err != nil {
		t.Fatalf("NewPongMessage() error = %v", err)
	}
	var pgd PongData
	if err := pong.ParseData(&pgd); err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if pgd.LatencyMs != 25 {
		t.Errorf("latency = %d, want 25", pgd.LatencyMs)
	}
}

func TestVisualMessage_ArbitraryPayload(t *testing.T) {
	payload := map[string]float64{"hue1": 0.12, "bloom": 0.8}
	msg, err := NewVisualMessage(payload)
	if err != nil {
		t.Fatalf("NewVisualMessage() error = %v", err)
	}

	var got map[string]float64
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got["hue1"] != 0.12 || got["bloom"] != 0.8 {
		t.Errorf("payload mismatch: %v", got)
	}
}
