// Synthetic sensor feed for exercising an installation server without
// cameras or microphones attached. Dials the /ws/input endpoint and
// streams plausible audio levels, a wandering face, occasional blinks
// and key presses.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danhstorm/inner-reflection-sub001/pkg/protocol"
)

func main() {
	addr := flag.String("addr", "localhost:8090", "Installation server address")
	rate := flag.Int("rate", 20, "Sensor frames per second")
	seed := flag.Int64("seed", 0, "Feed randomness seed (0 = time-based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	url := fmt.Sprintf("ws://%s/ws/input", *addr)
	fmt.Printf("dialing %s\n", url)

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial failed: %v\n", err)
		os.Exit(1)
	}
	defer ws.Close()
	fmt.Println("connected, streaming synthetic sensors (Ctrl+C to stop)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()

	start := time.Now()
	var sent int64
	talking := false

	for {
		select {
		case <-sigChan:
			fmt.Printf("\nsent %d messages over %s\n", sent, time.Since(start).Round(time.Second))
			ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-ticker.C:
			t := time.Since(start).Seconds()

			// Band levels: slow swells on incommensurate periods so the
			// mix never repeats exactly.
			volume := 0.4 + 0.3*math.Sin(t*0.31) + 0.1*rng.Float64()
			bass := 0.3 + 0.25*math.Sin(t*0.17+1.3)
			mid := 0.35 + 0.2*math.Sin(t*0.23+2.1)
			treble := 0.25 + 0.2*math.Sin(t*0.41+0.7) + 0.05*rng.Float64()
			msg, err := protocol.NewAudioMessage(
				clamp01(volume), clamp01(bass), clamp01(mid), clamp01(treble))
			send(ws, &sent, msg, err)

			// A face drifting slowly around the center of frame.
			faceX := 0.5 + 0.25*math.Sin(t*0.09)
			faceY := 0.5 + 0.2*math.Sin(t*0.13+0.8)
			faceSize := 0.45 + 0.15*math.Sin(t*0.05)
			msg, err = protocol.NewFacePositionMessage(faceX, faceY, faceSize)
			send(ws, &sent, msg, err)

			// Blink a couple times per minute of frames.
			if rng.Float64() < 0.002 {
				msg, err = protocol.NewBlinkMessage()
				send(ws, &sent, msg, err)
			}

			// Occasional key press from the exhibit keyboard.
			if rng.Float64() < 0.005 {
				keys := "abcdefghijklmnopqrstuvwxyz0123456789"
				k := string(keys[rng.Intn(len(keys))])
				msg, err = protocol.NewKeyMessage(k)
				send(ws, &sent, msg, err)
			}

			// Flip the talking state now and then.
			if rng.Float64() < 0.003 {
				talking = !talking
				msg, err = protocol.NewTalkingMessage(talking)
				send(ws, &sent, msg, err)
			}
		}
	}
}

// send writes one message, ignoring marshal errors from the constructors
// (they only fail on unmarshalable payloads, which these never are).
func send(ws *websocket.Conn, sent *int64, msg *protocol.Message, err error) {
	if err != nil {
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	*sent++
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
