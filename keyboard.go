package main

import (
	"unicode"

	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/keymap"
)

// GLFWKeyboardInput reads the Chip-8 keys and the operator controls from
// the key state of a GLFW window.
type GLFWKeyboardInput struct {
	window *glfw.Window
	keys   [cpu.KeyCount]glfw.Key
	latch  keymap.Latch
}

func NewGLFWKeyboardInput(window *glfw.Window) *GLFWKeyboardInput {
	input := &GLFWKeyboardInput{window: window}
	for key, r := range keymap.Layout {
		input.keys[key] = glfwKey(r)
	}
	return input
}

// glfwKey converts a printable character to its GLFW key, which for
// letters, digits and brackets is the upper case ASCII code.
func glfwKey(r rune) glfw.Key {
	return glfw.Key(unicode.ToUpper(r))
}

func (input *GLFWKeyboardInput) IsKeyDown(key cpu.KeyCode) bool {
	return input.window.GetKey(input.keys[key]) == glfw.Press
}

// Poll pumps the GLFW event queue and returns the newly pressed controls.
func (input *GLFWKeyboardInput) Poll() cpu.Control {
	glfw.PollEvents()

	control := input.latch.Update(func(r rune) bool {
		return input.window.GetKey(glfwKey(r)) == glfw.Press
	})

	// Power Off key
	if input.window.GetKey(glfw.KeyEscape) == glfw.Press || input.window.ShouldClose() {
		input.window.SetShouldClose(true)
		control |= cpu.ControlQuit
	}
	return control
}
