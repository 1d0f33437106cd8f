package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := ParseFlags(nil)
	assert.NoError(t, err)

	assert.Equal(t, DefaultROM, opts.ROM)
	assert.Equal(t, FrontendGLFW, opts.Frontend)
	assert.Equal(t, cpu.CompleteSet, opts.InstructionSet)
	assert.Equal(t, cpu.DefaultSpeed, opts.Speed)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, 0, opts.Frames)
	assert.False(t, opts.Disassemble)
	assert.False(t, opts.Debug)
	assert.False(t, opts.Quiet)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "rom file",
			args: []string{"pong.ch8"},
			want: Options{ROM: "pong.ch8", Frontend: FrontendGLFW, InstructionSet: cpu.CompleteSet, Speed: 700, Scale: 10},
		},
		{
			name: "headless core",
			args: []string{"-frontend", "HEADLESS", "-isa", "core", "-frames", "120", "pong.ch8"},
			want: Options{ROM: "pong.ch8", Frontend: FrontendHeadless, InstructionSet: cpu.CoreSet, Speed: 700, Scale: 10, Frames: 120},
		},
		{
			name: "sdl fast",
			args: []string{"-frontend=sdl", "-speed", "1000", "-scale", "4", "-debug", "game.ch8"},
			want: Options{ROM: "game.ch8", Frontend: FrontendSDL, InstructionSet: cpu.CompleteSet, Speed: 1000, Scale: 4, Debug: true},
		},
		{
			name: "disassemble quietly",
			args: []string{"-disassemble", "-q", "-frontend", "term"},
			want: Options{ROM: DefaultROM, Frontend: FrontendTerminal, InstructionSet: cpu.CompleteSet, Speed: 700, Scale: 10, Disassemble: true, Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		usage   bool
		message string
	}{
		{"unknown flag", []string{"-fullscreen"}, true, "flag provided but not defined: -fullscreen"},
		{"flag after rom", []string{"pong.ch8", "-debug"}, true, "Potential argument -debug found after ROM file"},
		{"two roms", []string{"a.ch8", "b.ch8"}, true, "expected a single ROM file, got 2 arguments"},
		{"bad frontend", []string{"-frontend", "x11"}, false, "unsupported frontend: x11"},
		{"bad isa", []string{"-isa", "schip"}, false, "unsupported instruction set 'schip'"},
		{"zero speed", []string{"-speed", "0"}, false, "speed must be positive"},
		{"negative scale", []string{"-scale", "-1"}, false, "scale must be positive"},
		{"negative frames", []string{"-frames", "-5"}, false, "frames must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.ErrorContains(t, err, tt.message)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestUsageError_ShowUsage(t *testing.T) {
	_, err := ParseFlags([]string{"-nope"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)
	assert.Contains(t, buf.String(), "usage: chip8 [options] [ROM file]")
	assert.Contains(t, buf.String(), "-frontend")
}
