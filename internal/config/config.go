// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Camera    CameraConfig    `yaml:"camera" toml:"camera"`
	Highlight HighlightConfig `yaml:"highlight" toml:"highlight"`
	Playback  PlaybackConfig  `yaml:"playback" toml:"playback"`
	Viewer    ViewerConfig    `yaml:"viewer" toml:"viewer"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// CameraConfig holds framing and manual control settings.
type CameraConfig struct {
	TweenDuration   time.Duration `yaml:"tween_duration" toml:"tween_duration"`
	ZoomFactor      float32       `yaml:"zoom_factor" toml:"zoom_factor"`
	MinDistance     float32       `yaml:"min_distance" toml:"min_distance"`
	MaxDistance     float32       `yaml:"max_distance" toml:"max_distance"`
	DragSensitivity float32       `yaml:"drag_sensitivity" toml:"drag_sensitivity"`
	ZoomSensitivity float32       `yaml:"zoom_sensitivity" toml:"zoom_sensitivity"`
}

// HighlightConfig holds the highlight material style.
type HighlightConfig struct {
	Emissive          [3]float32 `yaml:"emissive" toml:"emissive"`
	EmissiveIntensity float32    `yaml:"emissive_intensity" toml:"emissive_intensity"`
	Brightness        float32    `yaml:"brightness" toml:"brightness"`
}

// PlaybackConfig holds step timing settings.
type PlaybackConfig struct {
	DefaultStepDuration time.Duration `yaml:"default_step_duration" toml:"default_step_duration"`
	Autoplay            bool          `yaml:"autoplay" toml:"autoplay"`
}

// ViewerConfig holds input paths and the host loop rate.
type ViewerConfig struct {
	FPS          int    `yaml:"fps" toml:"fps"`
	ScenePath    string `yaml:"scene" toml:"scene"`
	PlanPath     string `yaml:"plan" toml:"plan"`
	MetadataPath string `yaml:"metadata" toml:"metadata"`
}

// TelemetryConfig holds the HTTP readout settings.
type TelemetryConfig struct {
	Enabled      bool          `yaml:"enabled" toml:"enabled"`
	Addr         string        `yaml:"addr" toml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" toml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			TweenDuration:   time.Second,
			ZoomFactor:      2.0,
			MinDistance:     0.05,
			MaxDistance:     500,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Highlight: HighlightConfig{
			Emissive:          [3]float32{0, 1, 0},
			EmissiveIntensity: 0.8,
			Brightness:        1.3,
		},
		Playback: PlaybackConfig{
			DefaultStepDuration: time.Second,
		},
		Viewer: ViewerConfig{
			FPS: 30,
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			Addr:         "127.0.0.1:7070",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate replaces settings that cannot work with their defaults.
func (c *Config) Validate() {
	d := Default()
	if c.Camera.TweenDuration < 0 {
		c.Camera.TweenDuration = d.Camera.TweenDuration
	}
	if !(c.Camera.ZoomFactor > 0) {
		c.Camera.ZoomFactor = d.Camera.ZoomFactor
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		c.Camera.MinDistance = d.Camera.MinDistance
		c.Camera.MaxDistance = d.Camera.MaxDistance
	}
	if c.Playback.DefaultStepDuration <= 0 {
		c.Playback.DefaultStepDuration = d.Playback.DefaultStepDuration
	}
	if c.Viewer.FPS <= 0 {
		c.Viewer.FPS = d.Viewer.FPS
	}
}
