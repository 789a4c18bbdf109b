package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/corvid-labs/gbz80"
	"github.com/corvid-labs/gbz80/backend"
	"github.com/corvid-labs/gbz80/input"
	"github.com/corvid-labs/gbz80/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbz80"
	app.Usage = "gbz80 [options] <ROM file>"
	app.Description = "A Game Boy emulator"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without presenting a frame, exiting after --frames",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run in headless mode (required with --headless)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "present with the SDL2 window backend instead of the terminal",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug-level log output",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gbz80 exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if c.NArg() > 1 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("gbz80: expected exactly one ROM path, got %d arguments", c.NArg())
	}

	romPath := c.Args().Get(0)
	if romPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}

	emu, err := gbz80.NewFromFile(romPath)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		return runHeadless(emu, c.Int("frames"))
	}
	return runInteractive(emu, c.Bool("sdl2"))
}

func runHeadless(emu *gbz80.Emulator, frames int) error {
	if frames <= 0 {
		return errors.New("headless mode requires --frames with a positive value")
	}

	for i := 0; i < frames; i++ {
		emu.RunFrame()
		if (i+1)%60 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("headless run completed", "frames", emu.FrameCount(), "instructions", emu.InstructionCount())
	return nil
}

func runInteractive(emu *gbz80.Emulator, useSDL2 bool) error {
	var be backend.Backend
	if useSDL2 {
		be = backend.New()
	} else {
		be = render.NewTerminal()
	}

	if err := be.Init(); err != nil {
		return fmt.Errorf("gbz80: initializing backend: %w", err)
	}
	defer be.Cleanup()

	mgr := input.NewManager(emu.Bus())

	paused := false
	for {
		if !paused {
			emu.RunFrame()
		}

		actions, err := be.Update(emu.FrameBuffer(), mgr)
		if err != nil {
			return fmt.Errorf("gbz80: backend update: %w", err)
		}

		for _, a := range actions {
			switch a {
			case input.EmulatorQuit:
				return nil
			case input.EmulatorPauseToggle:
				paused = !paused
			case input.EmulatorStepFrame:
				if paused {
					emu.RunFrame()
				}
			}
		}
	}
}
