package cpu

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// DefaultSpeed is the number of instructions executed per second unless
// Options says otherwise.
const DefaultSpeed = 700

// FrameRate is the number of frames presented per second.
const FrameRate = 60

// Options configures a Chip8. The zero value is usable.
type Options struct {
	// InstructionSet selects the executed instructions, CoreSet by default.
	InstructionSet InstructionSet
	// Speed is the number of instructions per second, DefaultSpeed if zero.
	Speed int
	Logger *log.Logger
	// Random returns the random bytes used by RND. Seeded math/rand if nil.
	Random func() byte
	// Now is the clock of the delay timer. time.Now if nil.
	Now func() time.Time
}

// Chip8 represents an emulated Chip-8 CPU. Not that the Chip-8 was ever a real physical
// computer with a CPU, but it's fun to pretend.
//
// To run a program, attach a Peripheral with NewChip8, Load the program and
// call Run. If you want to poke around at the inner workings instead, Step
// executes a single instruction and Snapshot shows you the resulting state.
type Chip8 struct {
	// program counter
	pc uint16
	// address register
	i uint16
	// data registers
	v [16]byte
	// delay and sound timers, both count down at 60hz once set.
	// Nothing plays a sound, st is kept so programs that set it run.
	dt byte
	st byte

	stack  Stack
	memory Memory
	screen Framebuffer

	timer *Timer
	// err is the fatal error that halted the cpu, if any.
	err error

	isa    InstructionSet
	speed  int
	random func() byte
	logger *log.Logger

	isPausedFlag bool

	peripheral Peripheral
}

// State is a read-only snapshot of the Chip8 registers, memory and screen.
type State struct {
	PC     uint16
	I      uint16
	V      [16]byte
	DT     byte
	ST     byte
	SP     int
	Stack  []uint16
	Memory Memory
	Pixels []bool
}

// NewChip8 returns an initialized Chip8 with the font loaded and no
// program in memory, connected to peripheral.
func NewChip8(peripheral Peripheral, opts Options) *Chip8 {
	c := &Chip8{
		peripheral: peripheral,
		isa:        opts.InstructionSet,
		speed:      opts.Speed,
		random:     opts.Random,
		logger:     opts.Logger,
		timer:      NewTimer(opts.Now),
	}
	if c.speed <= 0 {
		c.speed = DefaultSpeed
	}
	if c.random == nil {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		c.random = func() byte {
			return byte(rnd.Intn(256))
		}
	}
	if c.logger == nil {
		c.logger = log.NewWithConfig(log.DefaultConfig())
	}
	c.Reset()
	return c
}

// Reset clears the memory and registers and returns the Chip8 to its power-on
// state. The attached peripheral stays attached.
func (c *Chip8) Reset() {
	c.pc = ProgramAddress
	c.i = 0
	c.v = [16]byte{}
	c.dt = 0
	c.st = 0
	c.stack = Stack{}
	c.memory.reset()
	c.screen.Clear()
	c.err = nil
	c.isPausedFlag = false
	c.timer.Restart()
}

// Load copies a program into memory at 0x200. Programs larger than
// MaxProgramSize are rejected with ErrProgramTooLarge.
func (c *Chip8) Load(program []byte) error {
	if err := c.memory.load(program); err != nil {
		return err
	}
	c.logger.Debug("Program loaded", log.Int("size", len(program)))
	return nil
}

// Pause stops instruction execution in Run; frames are still presented.
func (c *Chip8) Pause() {
	if !c.isPausedFlag {
		c.isPausedFlag = true
		c.logger.Info("Paused", log.Hex("pc", c.pc))
	}
}

// Resume continues a paused Chip8.
func (c *Chip8) Resume() {
	if c.isPausedFlag {
		c.isPausedFlag = false
		c.logger.Info("Resumed", log.Hex("pc", c.pc))
	}
}

// IsPaused returns true while Run is not executing instructions.
func (c *Chip8) IsPaused() bool {
	return c.isPausedFlag
}

// Run executes the loaded program until the peripheral asks to quit, the
// context is cancelled or a fatal error occurs, which is returned.
//
// Every frame Run executes speed/60 instructions, presents the screen and
// polls the peripheral. The frame ticker is the only place Run sleeps.
func (c *Chip8) Run(ctx context.Context) error {
	clock := time.NewTicker(time.Second / FrameRate)
	defer clock.Stop()

	cyclesPerFrame := c.speed / FrameRate
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}

	for {
		if !c.isPausedFlag {
			for n := 0; n < cyclesPerFrame; n++ {
				if err := c.Step(); err != nil {
					return err
				}
			}
		}

		quit, err := c.frame()
		if err != nil || quit {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-clock.C:
		}
	}
}

// frame presents the screen and acts on the operator controls returned
// by the peripheral.
func (c *Chip8) frame() (bool, error) {
	c.peripheral.Present(c.screen.Pixels(), ScreenWidth, ScreenHeight)

	control := c.peripheral.Poll()
	switch {
	case control.Has(ControlQuit):
		c.logger.Info("Power off requested")
		return true, nil
	case control.Has(ControlResume):
		c.Resume()
	case control.Has(ControlPause):
		c.Pause()
	}

	if control.Has(ControlDump) {
		c.logger.Info("State dump",
			log.Hex("pc", c.pc),
			log.Hex("i", c.i),
			log.String("v", fmt.Sprintf("% X", c.v[:])),
			log.Uint8("dt", c.dt),
			log.Int("sp", c.stack.Depth()))
		c.logger.Info("Screen\n" + c.screen.String())
	}
	if control.Has(ControlStep) && c.isPausedFlag {
		if err := c.Step(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Step executes a single cycle: it counts down the timers for the elapsed
// time, then fetches, decodes and executes one instruction.
//
// Once a fatal error was returned the Chip8 is halted and every following
// call returns the same error until Reset.
func (c *Chip8) Step() error {
	if c.err != nil {
		return c.err
	}

	if ticks := c.timer.Elapsed(); ticks > 0 {
		c.dt = countDown(c.dt, ticks)
		c.st = countDown(c.st, ticks)
	}

	if err := c.cycle(); err != nil {
		c.err = err
		c.logger.Error("Chip8 halted", log.Hex("pc", c.pc), log.Err(err))
		return err
	}
	return nil
}

func (c *Chip8) cycle() error {
	word, err := c.fetch()
	if err != nil {
		return err
	}

	ins := Decode(word)
	if !c.isa.Supports(ins.Kind) {
		return &UnimplementedOpcodeError{
			Address: c.pc,
			Bytes:   [2]byte{byte(word >> 8), byte(word)},
		}
	}

	c.logger.Debug("Executing", log.Hex("pc", c.pc), log.String("op", ins.String()))
	if err := c.execute(ins); err != nil {
		return fmt.Errorf("executing %s at 0x%04X: %w", ins, c.pc, err)
	}
	return nil
}

// fetch reads the two byte big-endian instruction word at pc.
func (c *Chip8) fetch() (uint16, error) {
	high, err := c.memory.Read(c.pc, "fetch")
	if err != nil {
		return 0, err
	}
	low, err := c.memory.Read(c.pc+1, "fetch")
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Snapshot returns a static copy of the Chip8 at the moment the method is called.
func (c *Chip8) Snapshot() State {
	return State{
		PC:     c.pc,
		I:      c.i,
		V:      c.v,
		DT:     c.dt,
		ST:     c.st,
		SP:     c.stack.Depth(),
		Stack:  c.stack.Addresses(),
		Memory: c.memory,
		Pixels: c.screen.Pixels(),
	}
}

// Screen returns the framebuffer. It must not be modified.
func (c *Chip8) Screen() *Framebuffer {
	return &c.screen
}
