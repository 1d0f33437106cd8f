package keymap

import (
	"testing"
	"time"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestLayout_Unique(t *testing.T) {
	seen := map[rune]bool{}
	for _, r := range Layout {
		assert.False(t, seen[r])
		seen[r] = true

		_, isControl := Controls[r]
		assert.False(t, isControl)
	}
	assert.Len(t, seen, cpu.KeyCount)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		r    rune
		key  cpu.KeyCode
		want bool
	}{
		{'1', cpu.Key1, true},
		{'4', cpu.KeyC, true},
		{'x', cpu.Key0, true},
		{'X', cpu.Key0, true},
		{'v', cpu.KeyF, true},
		{'F', cpu.KeyE, true},
		{'p', 0, false},
		{'5', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := Lookup(tt.r)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLatch(t *testing.T) {
	var latch Latch
	down := map[rune]bool{}
	isDown := func(r rune) bool { return down[r] }

	assert.Equal(t, cpu.ControlNone, latch.Update(isDown))

	down['p'] = true
	assert.Equal(t, cpu.ControlPause, latch.Update(isDown))
	// still held
	assert.Equal(t, cpu.ControlNone, latch.Update(isDown))

	down['p'] = false
	down[']'] = true
	down['o'] = true
	assert.Equal(t, cpu.ControlStep|cpu.ControlDump, latch.Update(isDown))

	down[']'] = false
	assert.Equal(t, cpu.ControlNone, latch.Update(isDown))
	down[']'] = true
	assert.Equal(t, cpu.ControlStep, latch.Update(isDown))
}

func TestHeldKeys(t *testing.T) {
	now := time.Unix(100, 0)
	held := NewHeldKeys(DefaultHold, func() time.Time { return now })

	assert.False(t, held.IsKeyDown(cpu.Key5))
	assert.True(t, held.Press('w'))
	assert.False(t, held.Press('p'))
	assert.True(t, held.IsKeyDown(cpu.Key5))
	assert.False(t, held.IsKeyDown(cpu.Key6))

	now = now.Add(DefaultHold - time.Millisecond)
	assert.True(t, held.IsKeyDown(cpu.Key5))

	now = now.Add(time.Millisecond)
	assert.False(t, held.IsKeyDown(cpu.Key5))
	assert.False(t, held.IsKeyDown(cpu.KeyCode(16)))
}
