package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// LoadPlan reads a plan JSON document and normalizes it. Replaced step
// durations are logged at warn level.
func LoadPlan(path string, defaultDuration time.Duration, log *zap.Logger) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	return ParsePlan(data, defaultDuration, log)
}

// ParsePlan decodes and normalizes a plan.
func ParsePlan(data []byte, defaultDuration time.Duration, log *zap.Logger) (*Plan, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	for _, i := range p.Normalize(defaultDuration) {
		log.Warn("animation step without positive duration, using default",
			zap.Int("step", i),
			zap.String("part", p.AnimationSteps[i].PartID),
			zap.Float64("seconds", p.AnimationSteps[i].Duration),
		)
	}
	return &p, nil
}

// LoadMetadata reads a product metadata JSON document.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding metadata %s: %w", path, err)
	}
	return &m, nil
}
