package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TEARDOWN_"

// applyEnv reads TEARDOWN_* variables into cfg. Variables from envFile (or
// ./.env when envFile is empty) are loaded first without overriding the
// real environment; a missing default .env is not an error.
func applyEnv(cfg *Config, envFile string) error {
	path := envFile
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	float := func(key string, dst *float32) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = float32(f)
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}

	duration("CAMERA_TWEEN_DURATION", &cfg.Camera.TweenDuration)
	float("CAMERA_ZOOM_FACTOR", &cfg.Camera.ZoomFactor)
	float("HIGHLIGHT_EMISSIVE_INTENSITY", &cfg.Highlight.EmissiveIntensity)
	float("HIGHLIGHT_BRIGHTNESS", &cfg.Highlight.Brightness)
	duration("PLAYBACK_DEFAULT_STEP_DURATION", &cfg.Playback.DefaultStepDuration)
	boolean("PLAYBACK_AUTOPLAY", &cfg.Playback.Autoplay)
	integer("VIEWER_FPS", &cfg.Viewer.FPS)
	str("VIEWER_SCENE", &cfg.Viewer.ScenePath)
	str("VIEWER_PLAN", &cfg.Viewer.PlanPath)
	str("VIEWER_METADATA", &cfg.Viewer.MetadataPath)
	boolean("TELEMETRY_ENABLED", &cfg.Telemetry.Enabled)
	str("TELEMETRY_ADDR", &cfg.Telemetry.Addr)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FILE", &cfg.Logging.LogFile)

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
