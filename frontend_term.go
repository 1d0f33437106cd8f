package main

import (
	"fmt"
	"unicode"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/keymap"
	"github.com/nsf/termbox-go"
)

// termPeripheral draws the screen with two terminal cells per pixel.
//
// Terminals only report key presses, so key state is emulated with
// keymap.HeldKeys. termbox.PollEvent blocks, events are read on their own
// goroutine and drained by Poll on the emulator goroutine.
type termPeripheral struct {
	events chan termbox.Event
	held   *keymap.HeldKeys
}

func newTermPeripheral() (*termPeripheral, func(), error) {
	if err := termbox.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	p := &termPeripheral{
		events: make(chan termbox.Event, 64),
		held:   keymap.NewHeldKeys(keymap.DefaultHold, nil),
	}
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			p.events <- ev
		}
	}()

	cleanup := func() {
		termbox.Interrupt()
		termbox.Close()
	}
	return p, cleanup, nil
}

func (p *termPeripheral) IsKeyDown(key cpu.KeyCode) bool {
	return p.held.IsKeyDown(key)
}

func (p *termPeripheral) Present(pixels []bool, width, height int) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixels[y*width+x] {
				termbox.SetCell(2*x, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
				termbox.SetCell(2*x+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			}
		}
	}
	_ = termbox.Flush()
}

func (p *termPeripheral) Poll() cpu.Control {
	var control cpu.Control
	for {
		select {
		case ev := <-p.events:
			control |= p.handle(ev)
		default:
			return control
		}
	}
}

func (p *termPeripheral) handle(ev termbox.Event) cpu.Control {
	switch ev.Type {
	case termbox.EventError:
		return cpu.ControlQuit
	case termbox.EventKey:
	default:
		return cpu.ControlNone
	}

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return cpu.ControlQuit
	}
	if c, ok := keymap.Controls[unicode.ToLower(ev.Ch)]; ok {
		return c
	}
	p.held.Press(ev.Ch)
	return cpu.ControlNone
}
