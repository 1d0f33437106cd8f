package cpu

// A KeyCode is a number that represents a key on the Chip-8 hexadecimal keyboard.
// Only the numbers 0x0 through 0xF are valid KeyCodes.
type KeyCode byte

const (
	Key0 KeyCode = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// KeyCount is the number of keys on the hex keyboard.
	KeyCount = 16
)

// Control is a set of operator requests collected by a Peripheral while
// polling, on top of the 16 Chip8 keys.
type Control uint8

const (
	ControlQuit Control = 1 << iota
	ControlPause
	ControlResume
	ControlStep
	ControlDump

	ControlNone Control = 0
)

// Has reports whether all bits of c2 are set in c.
func (c Control) Has(c2 Control) bool {
	return c&c2 == c2 && c2 != ControlNone
}

// The Peripheral interface is everything the Chip8 needs from the outside
// world: a keyboard to query and a screen to show frames on.
//
// The Chip8 polls on its own time, once per frame, which mirrors how the
// COSMAC VIP handled input. Poll is where an adapter pumps its event loop
// and it returns any operator controls seen since the previous call.
// IsKeyDown is only called between polls.
type Peripheral interface {
	IsKeyDown(key KeyCode) bool
	Present(pixels []bool, width, height int)
	Poll() Control
}
