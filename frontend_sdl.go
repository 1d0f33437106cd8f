package main

import (
	"fmt"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/keymap"
	"github.com/veandco/go-sdl2/sdl"
)

// sdlPeripheral renders into an SDL window and reads the SDL keyboard state.
type sdlPeripheral struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
	keys     [cpu.KeyCount]sdl.Scancode
	latch    keymap.Latch
	quit     bool
}

func newSDLPeripheral(scale int) (*sdlPeripheral, func(), error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, nil, fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow("Chip-8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cpu.ScreenWidth*scale), int32(cpu.ScreenHeight*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	p := &sdlPeripheral{
		window:   window,
		renderer: renderer,
		scale:    int32(scale),
	}
	for key, r := range keymap.Layout {
		p.keys[key] = sdlScancode(r)
	}

	cleanup := func() {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
	}
	return p, cleanup, nil
}

// sdlScancode converts a printable character to the scancode of the
// physical key producing it, SDL keycodes of printable keys being their
// lower case character.
func sdlScancode(r rune) sdl.Scancode {
	return sdl.GetScancodeFromKey(sdl.Keycode(r))
}

func (p *sdlPeripheral) IsKeyDown(key cpu.KeyCode) bool {
	return sdl.GetKeyboardState()[p.keys[key]] != 0
}

func (p *sdlPeripheral) Present(pixels []bool, width, height int) {
	_ = p.renderer.SetDrawColor(0, 0, 0, 255)
	_ = p.renderer.Clear()

	_ = p.renderer.SetDrawColor(255, 255, 255, 255)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !pixels[y*width+x] {
				continue
			}
			_ = p.renderer.FillRect(&sdl.Rect{
				X: int32(x) * p.scale,
				Y: int32(y) * p.scale,
				W: p.scale,
				H: p.scale,
			})
		}
	}
	p.renderer.Present()
}

// Poll drains the SDL event queue, which also refreshes the keyboard state.
func (p *sdlPeripheral) Poll() cpu.Control {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			p.quit = true
		}
	}

	state := sdl.GetKeyboardState()
	control := p.latch.Update(func(r rune) bool {
		return state[sdlScancode(r)] != 0
	})
	if p.quit || state[sdl.SCANCODE_ESCAPE] != 0 {
		control |= cpu.ControlQuit
	}
	return control
}
