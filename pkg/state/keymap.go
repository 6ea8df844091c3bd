package state

import "math/rand"

// KeyBinding associates one dimension with a signed influence strength.
type KeyBinding struct {
	Dim      int
	Strength float64
}

// keyAlphabet lists every symbol that receives a mapping. Symbols outside
// this set are no-ops in HandleKeyPress.
const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Structured overlay rows: each key row biases one dimension group so the
// keyboard has a coarse spatial layout (top = color, home = displacement,
// bottom = mood, digits = audio).
const (
	topRow    = "qwertyuiop"
	homeRow   = "asdfghjkl"
	bottomRow = "zxcvbnm"
	digitRow  = "0123456789"
)

// keyPressGain scales a binding's strength when the key is pressed.
const keyPressGain = 0.5

// buildKeyMap generates the session's key-to-dimension table: for each
// symbol, 5-10 unique random dimensions with signed strengths in
// [0.02, 0.07], plus 2-3 overlay bindings into the symbol's row group.
func buildKeyMap(rng *rand.Rand) map[rune][]KeyBinding {
	keymap := make(map[rune][]KeyBinding, len(keyAlphabet))

	for _, sym := range keyAlphabet {
		n := 5 + rng.Intn(6)
		seen := make(map[int]bool, n)
		bindings := make([]KeyBinding, 0, n+3)

		for len(bindings) < n {
			dim := rng.Intn(Count)
			if seen[dim] {
				continue
			}
			seen[dim] = true
			bindings = append(bindings, KeyBinding{Dim: dim, Strength: randomKeyStrength(rng)})
		}

		lo, hi := rowRange(sym)
		overlay := 2 + rng.Intn(2)
		for i := 0; i < overlay; i++ {
			dim := lo + rng.Intn(hi-lo+1)
			bindings = append(bindings, KeyBinding{Dim: dim, Strength: randomKeyStrength(rng)})
		}

		keymap[sym] = bindings
	}
	return keymap
}

// randomKeyStrength returns a signed strength in ±[0.02, 0.07].
func randomKeyStrength(rng *rand.Rand) float64 {
	s := 0.02 + rng.Float64()*0.05
	if rng.Float64() < 0.5 {
		return -s
	}
	return s
}

// rowRange returns the dimension group biased by the given symbol's
// keyboard row.
func rowRange(sym rune) (lo, hi int) {
	switch {
	case containsRune(digitRow, sym):
		return audioFirst, audioLast
	case containsRune(topRow, sym):
		return colorFirst, colorLast
	case containsRune(homeRow, sym):
		return dispFirst, dispLast
	default: // bottom row
		return moodFirst, moodLast
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
