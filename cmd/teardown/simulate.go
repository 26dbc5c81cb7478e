package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/viewer"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		tick  time.Duration
		limit time.Duration
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a plan headlessly and print what the viewer shows",
		Long: `Run the player on a simulated clock and report each step: the part
that is highlighted, the meshes it resolved to and where the camera ends up.

  teardown simulate --scene kettle.yaml --plan plan.json --metadata meta.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadInputs(true)
			if err != nil {
				return err
			}
			v := a.newViewer(in)
			defer v.Close()

			out := cmd.OutOrStdout()
			banner(out, "simulate")
			if in.sceneErr != nil {
				return fmt.Errorf("loading scene: %w", in.sceneErr)
			}
			simulate(out, v, tick, limit)
			printMetrics(out, v.Plan())
			return nil
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", 50*time.Millisecond, "simulated frame interval")
	cmd.Flags().DurationVar(&limit, "limit", 10*time.Minute, "stop after this much simulated time")
	return cmd
}

// simEvent is one observed playback change.
type simEvent struct {
	At     time.Duration
	Status string
	Step   int
	Part   string
	Meshes []string
}

// simulate plays v from the first step until playback pauses at the end
// (or limit passes), then stops and lets the camera return home. Each
// change is written to w.
func simulate(w io.Writer, v *viewer.Viewer, tick, limit time.Duration) []simEvent {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}

	var (
		events  []simEvent
		elapsed time.Duration
		last    viewer.Snapshot
	)
	record := func(s viewer.Snapshot) {
		e := simEvent{
			At:     elapsed,
			Status: s.Status,
			Step:   s.Step,
			Part:   s.CurrentPart,
			Meshes: meshNames(v.HighlightedNodes()),
		}
		events = append(events, e)
		printEvent(w, e, s)
	}

	v.Stop()
	v.Play()
	last = v.Snapshot()
	record(last)

	for elapsed < limit {
		v.Tick(tick)
		elapsed += tick
		s := v.Snapshot()
		if s.Status != last.Status || s.Step != last.Step {
			record(s)
		}
		last = s
		if s.Status != "playing" && !s.Camera.Animating {
			break
		}
	}
	if last.Status == "playing" {
		warn.Fprintf(w, "  limit of %s reached while playing\n", limit)
	}

	v.Stop()
	for v.Snapshot().Camera.Animating {
		v.Tick(tick)
		elapsed += tick
	}
	rest := v.Snapshot()
	record(rest)
	fmt.Fprintf(w, "  %s camera home at %s\n", subtle.Sprint("at rest:"), vec(rest.Camera.Position))
	return events
}

func printEvent(w io.Writer, e simEvent, s viewer.Snapshot) {
	at := subtle.Sprintf("t=%6.2fs", e.At.Seconds())
	switch e.Status {
	case "playing":
		fmt.Fprintf(w, "  %s  step %d/%d  %s  %s %s\n", at, e.Step+1, s.StepCount,
			part.Sprint(e.Part), statusIcon(len(e.Meshes) > 0), joinOr(e.Meshes, "no matching mesh"))
	case "paused":
		fmt.Fprintf(w, "  %s  paused at step %d/%d\n", at, e.Step+1, s.StepCount)
	default:
		fmt.Fprintf(w, "  %s  stopped, showing %s\n", at, joinOr(s.Highlighted, "nothing"))
	}
}

func meshNames(nodes []*scene.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func vec(v [3]float32) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
