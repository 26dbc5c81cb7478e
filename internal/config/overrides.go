package config

// Overrides carries command-line settings. Zero values leave the loaded
// configuration untouched.
type Overrides struct {
	ConfigPath string
	EnvFile    string

	Debug         bool
	ScenePath     string
	PlanPath      string
	MetadataPath  string
	Telemetry     bool
	TelemetryAddr string
	Autoplay      bool
	FPS           int
}

// apply applies CLI overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.ScenePath != "" {
		cfg.Viewer.ScenePath = o.ScenePath
	}
	if o.PlanPath != "" {
		cfg.Viewer.PlanPath = o.PlanPath
	}
	if o.MetadataPath != "" {
		cfg.Viewer.MetadataPath = o.MetadataPath
	}
	if o.Telemetry {
		cfg.Telemetry.Enabled = true
	}
	if o.TelemetryAddr != "" {
		cfg.Telemetry.Addr = o.TelemetryAddr
		cfg.Telemetry.Enabled = true
	}
	if o.Autoplay {
		cfg.Playback.Autoplay = true
	}
	if o.FPS > 0 {
		cfg.Viewer.FPS = o.FPS
	}
}
