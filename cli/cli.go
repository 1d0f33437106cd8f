// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mpingram/chip8vm/cpu"
)

// DefaultROM is run when no ROM file is given.
const DefaultROM = "Pong (1 player).ch8"

// Frontend names accepted by the -frontend flag.
const (
	FrontendGLFW     = "glfw"
	FrontendSDL      = "sdl"
	FrontendTerminal = "term"
	FrontendHeadless = "headless"
)

var frontends = []string{FrontendGLFW, FrontendSDL, FrontendTerminal, FrontendHeadless}

// Options of the emulator.
type Options struct {
	ROM            string
	Frontend       string
	InstructionSet cpu.InstructionSet
	Speed          int
	Scale          int
	// Frames stops a headless run after this many frames, 0 runs until quit.
	Frames      int
	Disassemble bool
	Debug       bool
	Quiet       bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8 [options] [ROM file]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, excluding the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	var isa string
	flags.StringVar(&opts.Frontend, "frontend", FrontendGLFW, "display and keyboard frontend ("+strings.Join(frontends, "/")+")")
	flags.StringVar(&isa, "isa", "complete", "instruction set to execute (core/complete)")
	flags.IntVar(&opts.Speed, "speed", cpu.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per Chip-8 pixel")
	flags.IntVar(&opts.Frames, "frames", 0, "stop a headless run after this many frames, 0 runs until interrupted")
	flags.BoolVar(&opts.Disassemble, "disassemble", false, "print the ROM as assembler listing and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if err := validateArgs(rest); err != nil {
		err.flags = flags
		return opts, err
	}
	opts.ROM = DefaultROM
	if len(rest) == 1 {
		opts.ROM = rest[0]
	}

	var err error
	opts.InstructionSet, err = cpu.ParseInstructionSet(strings.ToLower(isa))
	if err != nil {
		return opts, err
	}
	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// validateArgs checks that at most one ROM file is given and that it is
// the last argument.
func validateArgs(args []string) *UsageError {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{msg: fmt.Sprintf("expected a single ROM file, got %d arguments", len(args))}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *Options) error {
	opts.Frontend = strings.ToLower(opts.Frontend)

	valid := false
	for _, name := range frontends {
		if opts.Frontend == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontends, ", "))
	}

	switch {
	case opts.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %d", opts.Speed)
	case opts.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %d", opts.Scale)
	case opts.Frames < 0:
		return fmt.Errorf("frames must not be negative, got %d", opts.Frames)
	}
	return nil
}
