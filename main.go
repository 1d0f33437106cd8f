// Package main implements the main entry point for the Chip-8 emulator
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mpingram/chip8vm/cli"
	"github.com/mpingram/chip8vm/config"
	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/disasm"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func init() {
	// GLFW and SDL have to be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "%s\n\n", usageErr)
			usageErr.ShowUsage(os.Stdout)
		} else {
			config.CreateLogger(false, false).Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	rom, err := os.ReadFile(opts.ROM)
	if err != nil {
		logger.Fatal("Reading ROM failed", log.String("file", opts.ROM), log.Err(err))
	}

	if opts.Disassemble {
		for _, line := range disasm.Program(rom) {
			fmt.Println(line)
		}
		return
	}

	peripheral, cleanup, err := openFrontend(opts)
	if err != nil {
		logger.Fatal("Opening frontend failed", log.String("frontend", opts.Frontend), log.Err(err))
	}
	defer cleanup()

	c8 := cpu.NewChip8(peripheral, cpu.Options{
		InstructionSet: opts.InstructionSet,
		Speed:          opts.Speed,
		Logger:         logger,
	})
	if err := c8.Load(rom); err != nil {
		cleanup()
		logger.Fatal("Loading ROM failed", log.String("file", opts.ROM), log.Err(err))
	}

	logger.Info("Running ROM",
		log.String("file", opts.ROM),
		log.String("frontend", opts.Frontend),
		log.String("isa", opts.InstructionSet.String()),
		log.Int("speed", opts.Speed))

	if err := c8.Run(ctx); err != nil {
		cleanup()
		logger.Fatal("Emulation stopped", log.Err(err))
	}

	if headless, ok := peripheral.(*headlessPeripheral); ok && !opts.Quiet {
		fmt.Print(headless.last.String())
	}
}

func openFrontend(opts cli.Options) (cpu.Peripheral, func(), error) {
	switch opts.Frontend {
	case cli.FrontendSDL:
		return newSDLPeripheral(opts.Scale)
	case cli.FrontendTerminal:
		return newTermPeripheral()
	case cli.FrontendHeadless:
		return &headlessPeripheral{frames: opts.Frames}, func() {}, nil
	default:
		return newGLFWPeripheral(opts.Scale)
	}
}
