// Package keymap maps host keyboard characters to the Chip-8 hex keyboard
// and to the operator controls, independent of any windowing library.
package keymap

import (
	"time"

	"github.com/mpingram/chip8vm/cpu"
)

// Layout maps each Chip-8 key to the host key at the same position on a
// QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var Layout = [cpu.KeyCount]rune{
	cpu.Key0: 'x',
	cpu.Key1: '1',
	cpu.Key2: '2',
	cpu.Key3: '3',
	cpu.Key4: 'q',
	cpu.Key5: 'w',
	cpu.Key6: 'e',
	cpu.Key7: 'a',
	cpu.Key8: 's',
	cpu.Key9: 'd',
	cpu.KeyA: 'z',
	cpu.KeyB: 'c',
	cpu.KeyC: '4',
	cpu.KeyD: 'r',
	cpu.KeyE: 'f',
	cpu.KeyF: 'v',
}

// Controls maps host keys to operator controls. Quitting is bound to the
// Escape key by each frontend since it has no character.
var Controls = map[rune]cpu.Control{
	'p': cpu.ControlPause,
	'[': cpu.ControlResume,
	']': cpu.ControlStep,
	'o': cpu.ControlDump,
}

// Lookup returns the Chip-8 key bound to the host character r.
func Lookup(r rune) (cpu.KeyCode, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for key, host := range Layout {
		if host == r {
			return cpu.KeyCode(key), true
		}
	}
	return 0, false
}

// Latch turns level-triggered key state into edge-triggered controls, so
// that holding a key down requests its control only once.
type Latch struct {
	down map[rune]bool
}

// Update samples the control keys with isDown and returns the controls
// whose key went down since the previous call.
func (l *Latch) Update(isDown func(r rune) bool) cpu.Control {
	if l.down == nil {
		l.down = make(map[rune]bool, len(Controls))
	}

	var control cpu.Control
	for r, c := range Controls {
		pressed := isDown(r)
		if pressed && !l.down[r] {
			control |= c
		}
		l.down[r] = pressed
	}
	return control
}

// DefaultHold is how long a key counts as down after a press event.
const DefaultHold = 150 * time.Millisecond

// HeldKeys emulates key state for hosts that only report key presses,
// like terminals: a key counts as down for a while after each press.
type HeldKeys struct {
	hold  time.Duration
	now   func() time.Time
	until [cpu.KeyCount]time.Time
}

// NewHeldKeys returns HeldKeys that keep keys down for hold after each
// press, measured with now. A nil now uses time.Now.
func NewHeldKeys(hold time.Duration, now func() time.Time) *HeldKeys {
	if now == nil {
		now = time.Now
	}
	return &HeldKeys{hold: hold, now: now}
}

// Press records a key press of the host character r and returns whether
// it is bound to a Chip-8 key.
func (h *HeldKeys) Press(r rune) bool {
	key, ok := Lookup(r)
	if !ok {
		return false
	}
	h.until[key] = h.now().Add(h.hold)
	return true
}

// IsKeyDown reports whether the key was pressed within the hold time.
func (h *HeldKeys) IsKeyDown(key cpu.KeyCode) bool {
	if int(key) >= cpu.KeyCount {
		return false
	}
	return h.now().Before(h.until[key])
}
