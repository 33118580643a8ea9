package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/stigoleg/nudge/internal/activity"
	"github.com/stigoleg/nudge/internal/config"
	"github.com/stigoleg/nudge/internal/cursor"
	"github.com/stigoleg/nudge/internal/engine"
	"github.com/stigoleg/nudge/internal/mover"
	"github.com/stigoleg/nudge/internal/power"
	"github.com/stigoleg/nudge/internal/state"
	"github.com/stigoleg/nudge/internal/ui"
)

const appVersion = "1.0.0"

func main() {
	flags, err := config.ParseFlags(appVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nudge: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(flags.LogLevel, flags.LogFile)

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed to load")
	}

	log.Info().
		Str("config", flags.ConfigPath).
		Int("heartbeat_interval", cfg.HeartbeatInterval).
		Int("worker_interval", cfg.WorkerInterval).
		Int("inactivity_threshold", cfg.InactivityThreshold).
		Int("movement_delta", cfg.MovementDelta).
		Uint("max_errors", cfg.MaxErrors).
		Bool("auto_start", cfg.AutoStart).
		Msg("configuration loaded")

	st := state.New(time.Now())
	if cfg.AutoStart || flags.Start {
		st.SetEnabled(true)
	}

	dev := cursor.NewRobotgoDevice()
	ctrl := mover.New(dev, st, cfg.MaxErrors, log.With().Str("component", "mover").Logger())

	actSrc, err := activity.NewSystemSource()
	if err != nil {
		log.Fatal().Err(err).Msg("activity source registration failed")
	}
	act := activity.NewListener(actSrc, st, log.With().Str("component", "activity").Logger())

	powSrc, err := power.NewSystemSource()
	if err != nil {
		log.Fatal().Err(err).Msg("power source registration failed")
	}
	pow := power.NewListener(powSrc, st, log.With().Str("component", "power").Logger())

	eng := engine.New(cfg, st, ctrl, act, pow, log.With().Str("component", "engine").Logger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received signal")
		cancel()
	}()

	model := ui.NewModel(st, eng.Commands())
	model.SetVersion(appVersion)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())

	// The engine ends on Quit, signal, or listener failure; either way the
	// UI has nothing left to control.
	engineErr := make(chan error, 1)
	go func() {
		err := eng.Run(ctx)
		engineErr <- err
		p.Kill()
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("ui error")
	}

	cancel()
	if err := <-engineErr; err != nil {
		log.Fatal().Err(err).Msg("engine failed")
	}
	log.Info().Msg("stopped")
}

// newLogger writes human-readable lines to stderr and, when requested,
// JSON lines to an append-mode log file.
func newLogger(level, file string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nudge: cannot open log file %s: %v\n", file, err)
		} else {
			writers = append(writers, f)
		}
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(lvl).With().Timestamp().Logger()
}
