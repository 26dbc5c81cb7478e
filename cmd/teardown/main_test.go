package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/teardown/internal/config"
	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/plan"
	"github.com/Faultbox/teardown/internal/viewer"
)

const (
	kettleScene    = "../../internal/engine/scene/testdata/kettle.yaml"
	kettlePlan     = "../../internal/plan/testdata/kettle_plan.json"
	kettleMetadata = "../../internal/plan/testdata/kettle_metadata.json"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func abs(t *testing.T, rel string) string {
	t.Helper()
	p, err := filepath.Abs(rel)
	require.NoError(t, err)
	return p
}

func TestSimulateSteps(t *testing.T) {
	sc, err := scene.Load(kettleScene)
	require.NoError(t, err)
	p, err := plan.LoadPlan(kettlePlan, time.Second, nil)
	require.NoError(t, err)

	v := viewer.New(viewer.DefaultOptions(), nil)
	v.LoadScene(sc, nil)
	v.SetPlan(p)

	var out bytes.Buffer
	events := simulate(&out, v, 50*time.Millisecond, time.Minute)
	require.Len(t, events, 5)

	assert.Equal(t, simEvent{At: 0, Status: "playing", Step: 0, Part: "Lid_Assembly", Meshes: []string{"lid assembly (top)"}}, events[0])
	assert.Equal(t, time.Second, events[1].At)
	assert.Equal(t, []string{"Handle"}, events[1].Meshes)
	assert.Equal(t, 3*time.Second, events[2].At)
	assert.Equal(t, []string{"heating_element"}, events[2].Meshes)
	assert.Equal(t, "paused", events[3].Status)
	assert.Equal(t, 4*time.Second, events[3].At)
	assert.Equal(t, "stopped", events[4].Status)
	assert.Len(t, events[4].Meshes, 3)

	assert.Contains(t, out.String(), "step 2/3")
	assert.Contains(t, out.String(), "camera home at (5.00, 5.00, 5.00)")
}

func TestSimulateCommand(t *testing.T) {
	scenePath, planPath := abs(t, kettleScene), abs(t, kettlePlan)
	out, err := run(t, "simulate", "--scene", scenePath, "--plan", planPath)
	require.NoError(t, err)

	assert.Contains(t, out, "paused at step 3/3")
	assert.Contains(t, out, "dijkstra")
	assert.Contains(t, out, "Optimal path")
}

func TestSimulateRequiresPlan(t *testing.T) {
	_, err := run(t, "simulate", "--scene", abs(t, kettleScene))
	assert.ErrorContains(t, err, "no plan given")
}

func TestSimulateRejectsBrokenScene(t *testing.T) {
	_, err := run(t, "simulate", "--scene", "missing.yaml", "--plan", abs(t, kettlePlan))
	assert.ErrorContains(t, err, "loading scene")
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, "resolve",
		"--scene", abs(t, kettleScene),
		"--metadata", abs(t, kettleMetadata),
		"Lid_Assembly", "heater", "spout",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Lid_Assembly -> lid assembly (top)")
	assert.Contains(t, out, "heater -> heating_element")
	assert.Contains(t, out, "spout -> no matching mesh")
	assert.Contains(t, out, "1 of 3 identifiers did not resolve")
}

func TestResolvePlanSequence(t *testing.T) {
	out, err := run(t, "resolve", "--scene", abs(t, kettleScene), "--plan", abs(t, kettlePlan))
	require.NoError(t, err)
	assert.Contains(t, out, "all 3 identifiers resolved")
}

func TestViewerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.ZoomFactor = 3
	cfg.Camera.MaxDistance = 42
	cfg.Highlight.Brightness = 1.1

	opts := viewerOptions(cfg)
	assert.Equal(t, float32(3), opts.Camera.ZoomFactor)
	assert.Equal(t, time.Second, opts.Camera.TweenDuration)
	assert.Equal(t, float32(42), opts.Camera.Orbit.MaxDistance)
	assert.Equal(t, float32(1.1), opts.Highlight.Brightness)
	assert.Equal(t, [3]float32{0, 1, 0}, opts.Highlight.Emissive)
}
