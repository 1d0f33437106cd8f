package cpu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakePeripheral struct {
	keys     [KeyCount]bool
	frames   int
	pixels   []bool
	controls []Control
}

func (p *fakePeripheral) IsKeyDown(key KeyCode) bool {
	return p.keys[key]
}

func (p *fakePeripheral) Present(pixels []bool, width, height int) {
	p.frames++
	p.pixels = pixels
}

func (p *fakePeripheral) Poll() Control {
	if len(p.controls) == 0 {
		return ControlNone
	}
	control := p.controls[0]
	p.controls = p.controls[1:]
	return control
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// assemble converts instruction words to program bytes.
func assemble(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

func newTestChip8(t *testing.T, isa InstructionSet, words ...uint16) (*Chip8, *fakePeripheral, *fakeClock) {
	t.Helper()

	peripheral := &fakePeripheral{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewChip8(peripheral, Options{
		InstructionSet: isa,
		Logger:         log.NewTestLogger(t),
		Random:         func() byte { return 0xa5 },
		Now:            clock.Now,
	})
	assert.NoError(t, c.Load(assemble(words...)))
	return c, peripheral, clock
}

func steps(t *testing.T, c *Chip8, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, c.Step())
	}
}

func TestNewChip8(t *testing.T) {
	c, _, _ := newTestChip8(t, CoreSet)
	state := c.Snapshot()

	assert.Equal(t, ProgramAddress, state.PC)
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, 0, state.SP)
	assert.Equal(t, DefaultSpeed, c.speed)
	assert.Equal(t, fontSpriteData[:], state.Memory[FontAddress:FontAddress+80])
	assert.Len(t, state.Pixels, ScreenWidth*ScreenHeight)
}

func TestLoad(t *testing.T) {
	c, _, _ := newTestChip8(t, CoreSet)

	program := make([]byte, MaxProgramSize)
	program[len(program)-1] = 0x42
	assert.NoError(t, c.Load(program))
	assert.Equal(t, byte(0x42), c.Snapshot().Memory[0xfff])

	err := c.Load(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
}

func TestReset(t *testing.T) {
	c, _, _ := newTestChip8(t, CoreSet, 0x6042, 0xa123, 0x2300)
	steps(t, c, 3)

	c.Reset()
	state := c.Snapshot()
	assert.Equal(t, ProgramAddress, state.PC)
	assert.Equal(t, byte(0), state.V[0])
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, 0, state.SP)
	assert.Equal(t, byte(0), state.Memory[ProgramAddress])
}

func TestStep_Halted(t *testing.T) {
	c, _, _ := newTestChip8(t, CoreSet, 0x5000, 0x6001)

	err := c.Step()
	var opErr *UnimplementedOpcodeError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, uint16(0x200), opErr.Address)
	assert.Equal(t, [2]byte{0x50, 0x00}, opErr.Bytes)
	assert.ErrorContains(t, err, "unimplemented opcode 0x5000 at address 0x0200")

	// halted: the pc does not move and the error sticks
	assert.Equal(t, uint16(0x200), c.Snapshot().PC)
	assert.Equal(t, err, c.Step())
}

func TestStep_FetchOutOfRange(t *testing.T) {
	c, _, _ := newTestChip8(t, CompleteSet, 0x1fff)
	steps(t, c, 1)

	err := c.Step()
	var addrErr *AddressError
	assert.True(t, errors.As(err, &addrErr))
	assert.Equal(t, uint16(0x1000), addrErr.Address)
	assert.Equal(t, "fetch", addrErr.Access)
}

func TestStep_DelayTimer(t *testing.T) {
	c, _, clock := newTestChip8(t, CoreSet,
		0x600a, // LD V0, 10
		0xf015, // LD DT, V0
		0xf107, // LD V1, DT
		0xf107, // LD V1, DT
		0xf207, // LD V2, DT
	)
	steps(t, c, 2)

	clock.Advance(3 * TimerPeriod)
	steps(t, c, 1)
	assert.Equal(t, byte(7), c.Snapshot().V[1])

	// many instructions inside the same period do not count down
	clock.Advance(TimerPeriod / 2)
	steps(t, c, 1)
	assert.Equal(t, byte(7), c.Snapshot().V[1])

	clock.Advance(TimerPeriod / 2)
	steps(t, c, 1)
	assert.Equal(t, byte(6), c.Snapshot().V[2])
}

func TestStep_DelayTimerStopsAtZero(t *testing.T) {
	c, _, clock := newTestChip8(t, CoreSet, 0x6002, 0xf015, 0xf107)
	steps(t, c, 2)

	clock.Advance(10 * TimerPeriod)
	steps(t, c, 1)
	assert.Equal(t, byte(0), c.Snapshot().V[1])
}

func TestRun_Quit(t *testing.T) {
	c, peripheral, _ := newTestChip8(t, CoreSet, 0x1200)
	peripheral.controls = []Control{ControlNone, ControlQuit}

	assert.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 2, peripheral.frames)
	assert.Len(t, peripheral.pixels, ScreenWidth*ScreenHeight)
}

func TestRun_ContextCancelled(t *testing.T) {
	c, peripheral, _ := newTestChip8(t, CoreSet, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Run(ctx))
	assert.Equal(t, 1, peripheral.frames)
}

func TestRun_FatalError(t *testing.T) {
	c, peripheral, _ := newTestChip8(t, CoreSet, 0x00ee)

	err := c.Run(context.Background())
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, 0, peripheral.frames)
}

func TestRun_PauseAndStep(t *testing.T) {
	c, peripheral, _ := newTestChip8(t, CoreSet,
		0x7001, // ADD V0, 1
		0x1200, // JP 0x200
	)
	c.speed = FrameRate // one instruction per frame
	peripheral.controls = []Control{
		ControlPause,
		ControlNone,
		ControlStep,
		ControlStep | ControlDump,
		ControlQuit,
	}

	assert.NoError(t, c.Run(context.Background()))
	// frame 1 executes ADD then pauses, the two steps execute JP and ADD
	assert.Equal(t, byte(2), c.Snapshot().V[0])
	assert.True(t, c.IsPaused())
	assert.Equal(t, 5, peripheral.frames)
}

func TestRun_Resume(t *testing.T) {
	c, peripheral, _ := newTestChip8(t, CoreSet, 0x7001, 0x1200)
	c.speed = FrameRate
	peripheral.controls = []Control{ControlPause, ControlResume, ControlQuit}

	assert.NoError(t, c.Run(context.Background()))
	assert.False(t, c.IsPaused())
	// frames 1 and 3 execute, frame 2 is paused
	assert.Equal(t, byte(1), c.Snapshot().V[0])
	assert.Equal(t, uint16(0x200), c.Snapshot().PC)
}
