package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/valerio/go-sfc/sfc"
	"github.com/valerio/go-sfc/sfc/backend"
	"github.com/valerio/go-sfc/sfc/backend/headless"
	"github.com/valerio/go-sfc/sfc/backend/terminal"
	"github.com/valerio/go-sfc/sfc/config"
	"github.com/valerio/go-sfc/sfc/timing"
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running session", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sfc"
	app.Description = "Cycle scheduler and CPU timing core of a Super Famicom"
	app.Usage = "sfc [options]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run (required without --monitor)",
		},
		cli.StringFlag{
			Name:  "region",
			Usage: "Video timing, NTSC or PAL",
			Value: "NTSC",
		},
		cli.IntFlag{
			Name:  "cpu-version",
			Usage: "S-CPU revision (1 or 2)",
			Value: 2,
		},
		cli.IntFlag{
			Name:  "overclock",
			Usage: "CPU speed in percent of nominal (100-400)",
			Value: 100,
		},
		cli.BoolFlag{
			Name:  "delayed-sync",
			Usage: "Only synchronize coprocessors at explicit sync points",
		},
		cli.BoolFlag{
			Name:  "fast-joypad",
			Usage: "Read all controller bits on the first vblank edge",
		},
		cli.BoolFlag{
			Name:  "fast-ppu",
			Usage: "Flush batched video lines at the start of vblank",
		},
		cli.BoolFlag{
			Name:  "overscan",
			Usage: "Use the 240 line display mode",
		},
		cli.IntFlag{
			Name:  "quantum",
			Usage: "Master cycles spent per idle CPU operation (2-12, even)",
			Value: sfc.DefaultQuantum,
		},
		cli.StringSliceFlag{
			Name:  "coprocessor",
			Usage: "Attach a stand-in coprocessor as name:hz[:fast], e.g. sa1:10738636",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Minimum log level: debug, info, warn or error",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "monitor",
			Usage: "Show a live timing monitor in the terminal",
		},
		cli.StringFlag{
			Name:  "limiter",
			Usage: "Frame pacing in monitor mode: adaptive, ticker or none",
			Value: "adaptive",
		},
		cli.StringFlag{
			Name:  "statsview",
			Usage: "Serve runtime statistics charts on this address, e.g. localhost:12600",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(c)
	if err != nil {
		return err
	}

	if addr := c.String("statsview"); addr != "" {
		launchStatsview(addr)
	}

	system, err := sfc.New(cfg, opts...)
	if err != nil {
		return err
	}

	frames := c.Int("frames")
	var be backend.Backend
	var limiter timing.Limiter
	if c.Bool("monitor") {
		be = terminal.New()
		limiter = timing.New(c.String("limiter"), cfg.Region)
	} else {
		if frames <= 0 {
			cli.ShowAppHelp(c)
			return errors.New("headless mode requires --frames option with a positive value")
		}
		be = headless.New(frames, 0)
		limiter = timing.NewNoOpLimiter()
	}
	if t, ok := limiter.(*timing.TickerLimiter); ok {
		defer t.Stop()
	}

	if err := be.Init(backend.Config{Title: "SFC", LogLevel: level}); err != nil {
		return err
	}
	defer be.Cleanup()

	return runLoop(system, be, limiter, frames)
}

// runLoop runs frames until the backend asks to quit or, when frames is
// positive, until that many frames have completed.
func runLoop(s *sfc.System, be backend.Backend, limiter timing.Limiter, frames int) error {
	paused := false
	for {
		if !paused {
			if err := s.RunFrame(); err != nil {
				return err
			}
		}

		actions, err := be.Update(s.Stats())
		if err != nil {
			return err
		}
		for _, act := range actions {
			switch act {
			case backend.Quit:
				slog.Info("Session finished", "frames", s.Frames())
				return nil
			case backend.TogglePause:
				paused = !paused
				limiter.Reset()
				slog.Info("Pause toggled", "paused", paused, "frame", s.Frames())
			}
		}

		if frames > 0 && s.Frames() >= uint64(frames) {
			slog.Info("Session finished", "frames", s.Frames())
			return nil
		}
		limiter.WaitForNextFrame()
	}
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", name)
	}
	return level, nil
}

func configFromFlags(c *cli.Context) (config.Config, error) {
	region, err := config.ParseRegion(c.String("region"))
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	cfg.Region = region
	cfg.CPUVersion = c.Int("cpu-version")
	cfg.Overclock = c.Int("overclock")
	cfg.DelayedSync = c.Bool("delayed-sync")
	cfg.FastJoypadPolling = c.Bool("fast-joypad")
	cfg.FastPPU = c.Bool("fast-ppu")
	return cfg, nil
}

func optionsFromFlags(c *cli.Context) ([]sfc.Option, error) {
	quantum := c.Int("quantum")
	if quantum < 2 || quantum > 12 || quantum%2 != 0 {
		return nil, errors.Errorf("invalid quantum %d, must be an even number of cycles from 2 to 12", quantum)
	}
	opts := []sfc.Option{sfc.WithQuantum(quantum)}

	if c.Bool("overscan") {
		opts = append(opts, sfc.WithOverscan())
	}
	for _, arg := range c.StringSlice("coprocessor") {
		opt, err := parseCoprocessor(arg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// parseCoprocessor reads name:hz[:fast].
func parseCoprocessor(arg string) (sfc.Option, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
		return nil, errors.Errorf("invalid coprocessor %q, expected name:hz[:fast]", arg)
	}

	hz, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || hz == 0 {
		return nil, errors.Errorf("invalid coprocessor frequency %q", parts[1])
	}

	fast := false
	if len(parts) == 3 {
		if parts[2] != "fast" {
			return nil, errors.Errorf("invalid coprocessor flag %q", parts[2])
		}
		fast = true
	}
	return sfc.WithCoprocessor(parts[0], hz, fast), nil
}
