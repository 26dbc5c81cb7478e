package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/teardown/internal/config"
	"github.com/Faultbox/teardown/internal/engine/camera"
	"github.com/Faultbox/teardown/internal/engine/material"
	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/logger"
	"github.com/Faultbox/teardown/internal/plan"
	"github.com/Faultbox/teardown/internal/viewer"
)

var version = "0.3.0"

// app is the state shared by every command.
type app struct {
	overrides config.Overrides
	cfg       *config.Config
}

// quietConsole is set on commands that own the terminal; they log to the
// log file only.
const quietConsole = "quiet-console"

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "teardown",
		Short:         "Step through disassembly plans on a 3D product scene",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, quiet := cmd.Annotations[quietConsole]
			return a.setup(quiet)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.overrides.ConfigPath, "config", "", "path to config file (.yaml or .toml)")
	f.StringVar(&a.overrides.EnvFile, "env-file", "", "dotenv file with TEARDOWN_* overrides (default ./.env if present)")
	f.BoolVar(&a.overrides.Debug, "debug", false, "enable debug logging")
	f.StringVar(&a.overrides.ScenePath, "scene", "", "scene description (YAML)")
	f.StringVar(&a.overrides.PlanPath, "plan", "", "disassembly plan (JSON)")
	f.StringVar(&a.overrides.MetadataPath, "metadata", "", "product component metadata (JSON)")

	root.AddCommand(
		newPlayCmd(a),
		newSimulateCmd(a),
		newResolveCmd(a),
	)
	return root
}

func (a *app) setup(quiet bool) error {
	cfg, err := config.Load(a.overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if quiet {
		file := cfg.Logging.LogFile
		var fileCfg logger.FileConfig
		if file != "" {
			fileCfg = logger.DefaultFileConfig(file)
		}
		err = logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, false)
	} else {
		err = logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return nil
}

// viewerOptions maps configuration onto the viewer components.
func viewerOptions(cfg *config.Config) viewer.Options {
	orbit := camera.NewOrbitCamera()
	orbit.MinDistance = cfg.Camera.MinDistance
	orbit.MaxDistance = cfg.Camera.MaxDistance
	orbit.DragSensitivity = cfg.Camera.DragSensitivity
	orbit.ZoomSensitivity = cfg.Camera.ZoomSensitivity

	return viewer.Options{
		Camera: camera.Config{
			TweenDuration: cfg.Camera.TweenDuration,
			ZoomFactor:    cfg.Camera.ZoomFactor,
			Orbit:         *orbit,
		},
		Highlight: material.Style{
			Emissive:          cfg.Highlight.Emissive,
			EmissiveIntensity: cfg.Highlight.EmissiveIntensity,
			Brightness:        cfg.Highlight.Brightness,
		},
	}
}

// inputs are the documents a viewer session is built from.
type inputs struct {
	scene    *scene.Scene
	sceneErr error
	plan     *plan.Plan
	meta     *plan.Metadata
}

// loadInputs reads the configured documents. A missing or broken scene is
// not fatal: the viewer shows a placeholder. A broken plan or metadata file
// is.
func (a *app) loadInputs(requirePlan bool) (*inputs, error) {
	vc := a.cfg.Viewer
	in := &inputs{}

	if vc.ScenePath == "" {
		in.sceneErr = viewer.ErrNoScene
	} else {
		in.scene, in.sceneErr = scene.Load(vc.ScenePath)
	}

	switch {
	case vc.PlanPath != "":
		p, err := plan.LoadPlan(vc.PlanPath, a.cfg.Playback.DefaultStepDuration, logger.Named("plan"))
		if err != nil {
			return nil, err
		}
		in.plan = p
	case requirePlan:
		return nil, errors.New("no plan given (use --plan or viewer.plan)")
	}

	if vc.MetadataPath != "" {
		m, err := plan.LoadMetadata(vc.MetadataPath)
		if err != nil {
			return nil, err
		}
		in.meta = m
	}
	return in, nil
}

// newViewer builds a viewer from the configuration and loads in into it.
func (a *app) newViewer(in *inputs) *viewer.Viewer {
	v := viewer.New(viewerOptions(a.cfg), logger.Named("viewer"))
	v.SetMetadata(in.meta)
	v.LoadScene(in.scene, in.sceneErr)
	v.SetPlan(in.plan)
	logger.Debug("viewer ready",
		zap.Bool("scene", in.scene != nil),
		zap.Bool("plan", in.plan != nil),
		zap.Duration("default_step", a.cfg.Playback.DefaultStepDuration),
	)
	return v
}
