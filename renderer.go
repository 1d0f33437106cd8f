package main

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/mpingram/chip8vm/cpu"
)

// OpenGLRenderer draws frames into a GLFW window as one quad per lit pixel.
type OpenGLRenderer struct {
	window *glfw.Window
}

// NewOpenGLRenderer initializes OpenGL for the current context of window.
func NewOpenGLRenderer(window *glfw.Window) (*OpenGLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	// top-left origin with one unit per Chip-8 pixel
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, cpu.ScreenWidth, cpu.ScreenHeight, 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	gl.ClearColor(0, 0, 0, 1)

	return &OpenGLRenderer{window: window}, nil
}

func (r *OpenGLRenderer) Present(pixels []bool, width, height int) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Color3f(1, 1, 1)

	gl.Begin(gl.QUADS)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !pixels[y*width+x] {
				continue
			}
			fx, fy := float32(x), float32(y)
			gl.Vertex2f(fx, fy)
			gl.Vertex2f(fx+1, fy)
			gl.Vertex2f(fx+1, fy+1)
			gl.Vertex2f(fx, fy+1)
		}
	}
	gl.End()

	r.window.SwapBuffers()
}

// glfwPeripheral combines the GLFW window renderer and keyboard.
type glfwPeripheral struct {
	*OpenGLRenderer
	*GLFWKeyboardInput
}

func newGLFWPeripheral(scale int) (*glfwPeripheral, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	window, err := glfw.CreateWindow(cpu.ScreenWidth*scale, cpu.ScreenHeight*scale, "Chip-8", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()

	renderer, err := NewOpenGLRenderer(window)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}

	cleanup := func() {
		window.Destroy()
		glfw.Terminate()
	}
	return &glfwPeripheral{
		OpenGLRenderer:    renderer,
		GLFWKeyboardInput: NewGLFWKeyboardInput(window),
	}, cleanup, nil
}
