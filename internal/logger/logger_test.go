package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestQuietModeLogsToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "teardown.log")

	if err := InitWithFileConfig("info", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Named("viewer").Info("scene loaded", zap.String("scene", "kettle"), zap.Int("meshes", 5))

	if Log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug should be filtered at info level")
	}
	content := readLog(t, logFile)
	for _, want := range []string{"INFO", "viewer", "scene loaded", "kettle", "meshes"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in log file, got %q", want, content)
		}
	}
}

func TestConsoleAndFileCores(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "teardown.log")
	var console bytes.Buffer

	if err := build(parseLevel("debug"), FileConfig{Path: logFile, MaxSizeMB: 1}, &console); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Named("playback").Debug("playback transition", zap.String("to", "playing"))
	Sync()

	if !strings.Contains(console.String(), "playback transition") {
		t.Errorf("expected console output, got %q", console.String())
	}
	// Only the console core colors its levels.
	if strings.Contains(readLog(t, logFile), "\x1b[") {
		t.Error("file output contains color escapes")
	}
}

func TestComponentLevels(t *testing.T) {
	tests := []struct {
		level    string
		present  []string
		filtered []string
	}{
		{"error", []string{"plan rejected"}, []string{"step timer armed", "scene loaded", "duration defaulted"}},
		{"warning", []string{"plan rejected", "duration defaulted"}, []string{"step timer armed", "scene loaded"}},
		{"info", []string{"plan rejected", "duration defaulted", "scene loaded"}, []string{"step timer armed"}},
		{"debug", []string{"plan rejected", "duration defaulted", "scene loaded", "step timer armed"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), tt.level+".log")
			if err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Named("playback").Debug("step timer armed")
			Named("viewer").Info("scene loaded")
			Named("plan").Warn("duration defaulted")
			Error("plan rejected")

			content := readLog(t, logFile)
			for _, msg := range tt.present {
				if !strings.Contains(content, msg) {
					t.Errorf("expected %q at level %s", msg, tt.level)
				}
			}
			for _, msg := range tt.filtered {
				if strings.Contains(content, msg) {
					t.Errorf("unexpected %q at level %s", msg, tt.level)
				}
			}
		})
	}
}

func TestNamedBeforeInitIsSilent(t *testing.T) {
	Log = zap.NewNop()
	Sugar = Log.Sugar()

	// Must not panic or write anywhere.
	Named("camera").Info("tween finished")
	Info("ignored")
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("teardown.log")

	if cfg.Path != "teardown.log" {
		t.Errorf("expected path teardown.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 || !cfg.Compress {
		t.Errorf("unexpected rotation settings: %+v", cfg)
	}
}

func TestInitWithoutFile(t *testing.T) {
	if err := Init("info", ""); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	if Log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug should be filtered at info level")
	}
	if !Log.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		" WARN ":  "warn",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		"verbose": "info",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
