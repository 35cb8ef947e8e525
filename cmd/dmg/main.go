package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/lcerati/go-dmg/dmg"
	"github.com/lcerati/go-dmg/dmg/backend"
	"github.com/lcerati/go-dmg/dmg/cpu"
	"github.com/lcerati/go-dmg/dmg/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmg"
	app.Description = "A classic handheld console emulator"
	app.Usage = "dmg [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "Path to a 256-byte boot image, mapped over the start of the ROM",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Frame output: terminal, sdl2 or headless",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a display (same as --backend headless)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 = until the program exits)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scaling factor for the SDL2 backend",
			Value: 4,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("emulator failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else if c.String("boot") == "" {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	machine, err := dmg.NewWithFile(romPath, c.String("boot"))
	if err != nil {
		return err
	}

	name := c.String("backend")
	if c.Bool("headless") {
		name = "headless"
	}

	var out backend.Backend
	var limiter timing.Limiter
	switch name {
	case "terminal":
		out = backend.NewTerminalBackend()
		limiter = timing.NewTickerLimiter()
	case "sdl2":
		out = backend.NewSDL2Backend()
		limiter = timing.NewTickerLimiter()
	case "headless":
		out = backend.NewHeadlessBackend(c.Int("frames"))
		limiter = timing.NewNoOpLimiter()
	default:
		return fmt.Errorf("unknown backend: %s", name)
	}

	config := backend.Config{
		Title:  "dmg",
		Scale:  c.Int("scale"),
		OnQuit: machine.Stop,
	}
	if err := out.Init(config); err != nil {
		return err
	}
	defer out.Cleanup()

	frames := machine.Frames()

	// The machine runs on its own goroutine; this one consumes and
	// presents frames.
	runErr := make(chan error, 1)
	go func() {
		runErr <- machine.Run()
		machine.Sync().Close()
	}()

	for {
		select {
		case frame := <-frames:
			if err := out.Update(frame); err != nil {
				machine.Stop()
				<-runErr
				return err
			}
			machine.Sync().Ack()
			limiter.WaitForNextFrame()

		case err := <-runErr:
			// A STOP or HALT is the program ending on its own
			// terms, not a failure.
			var exit *cpu.Exit
			if errors.As(err, &exit) &&
				(exit.Reason == cpu.ExitStop || exit.Reason == cpu.ExitHalt) {
				return nil
			}
			return err
		}
	}
}
