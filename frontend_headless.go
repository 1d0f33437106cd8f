package main

import (
	"github.com/mpingram/chip8vm/cpu"
)

// headlessPeripheral runs without a display, with no keys held down. It
// requests to quit after a fixed number of frames when frames is positive.
type headlessPeripheral struct {
	frames int
	shown  int
	last   cpu.Framebuffer
}

func (p *headlessPeripheral) IsKeyDown(key cpu.KeyCode) bool {
	return false
}

func (p *headlessPeripheral) Present(pixels []bool, width, height int) {
	p.shown++
	p.last.Clear()
	for i, on := range pixels {
		if on {
			p.last.Draw([]byte{0x80}, byte(i%width), byte(i/width))
		}
	}
}

func (p *headlessPeripheral) Poll() cpu.Control {
	if p.frames > 0 && p.shown >= p.frames {
		return cpu.ControlQuit
	}
	return cpu.ControlNone
}
