package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/teardown/internal/logger"
	"github.com/Faultbox/teardown/internal/telemetry"
	"github.com/Faultbox/teardown/internal/tui"
	"github.com/Faultbox/teardown/internal/viewer"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Interactive player for a plan on its product scene",
		Long: `Open the interactive player.

  teardown play --scene kettle.yaml --plan plan.json
  teardown play --plan plan.json --telemetry-addr :7070   # also serve state over HTTP

Keys: space play/pause, s stop, left/right step, h/j/k/l orbit, +/- zoom, q quit.
Logs go to the configured log file only.`,
		Annotations: map[string]string{quietConsole: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.BoolVar(&a.overrides.Telemetry, "telemetry", false, "serve viewer state over HTTP")
	f.StringVar(&a.overrides.TelemetryAddr, "telemetry-addr", "", "telemetry listen address (implies --telemetry)")
	f.BoolVar(&a.overrides.Autoplay, "autoplay", false, "start playing immediately")
	f.IntVar(&a.overrides.FPS, "fps", 0, "host loop frame rate")
	return cmd
}

func (a *app) play(ctx context.Context) error {
	in, err := a.loadInputs(false)
	if err != nil {
		return err
	}
	v := a.newViewer(in)
	defer v.Close()

	if a.cfg.Telemetry.Enabled {
		stop := a.startTelemetry(v)
		defer stop(ctx)
	}

	if a.cfg.Playback.Autoplay {
		v.Play()
	}
	return tui.Run(v, a.cfg.Viewer.FPS)
}

// startTelemetry serves the viewer state in the background and returns a
// function that shuts the server down.
func (a *app) startTelemetry(v *viewer.Viewer) func(context.Context) {
	store := telemetry.NewStore()
	v.AddPublisher(store)

	tc := a.cfg.Telemetry
	srv := telemetry.NewServer(telemetry.Config{
		Addr:         tc.Addr,
		ReadTimeout:  tc.ReadTimeout,
		WriteTimeout: tc.WriteTimeout,
	}, store, logger.Named("telemetry"))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("telemetry server stopped", zap.Error(err))
		}
	}()

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
}
