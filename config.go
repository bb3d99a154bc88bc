package cascade

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by DefaultConfig and to keys omitted from a config file.
const (
	DefaultOverlapFraction = 0.25
	DefaultSectionCount    = 5
	DefaultBaseZIndex      = 10
	DefaultViewportHeight  = 800.0
	maxOverlapFraction     = 0.5
)

// Config is the engine's configuration surface.
type Config struct {
	// LayoutPolicy chooses discrete snapping or overlapping transitions.
	LayoutPolicy LayoutPolicy `yaml:"layoutPolicy"`
	// OverlapFraction is f in (0, 0.5]; each adjacent pair transitions over
	// 2·f viewport heights. Ignored by PolicyDiscrete.
	OverlapFraction float64 `yaml:"overlapFraction"`
	// SectionCount is the number of stacked sections (at least 1).
	SectionCount int `yaml:"sectionCount"`
	// BaseZIndex is the z-index of section 0; section i gets BaseZIndex+i.
	BaseZIndex int `yaml:"baseZIndex"`
	// Fade adds an opacity ramp to entering and exiting sections.
	Fade bool `yaml:"fade"`
	// DefaultViewportHeight is used until the viewport reports a usable height.
	DefaultViewportHeight float64 `yaml:"defaultViewportHeight"`
}

// DefaultConfig returns an overlapping five-section configuration.
func DefaultConfig() Config {
	return Config{
		LayoutPolicy:          PolicyOverlapping,
		OverlapFraction:       DefaultOverlapFraction,
		SectionCount:          DefaultSectionCount,
		BaseZIndex:            DefaultBaseZIndex,
		DefaultViewportHeight: DefaultViewportHeight,
	}
}

// Validate reports the first problem found as a *ConfigError.
func (c Config) Validate() error {
	switch c.LayoutPolicy {
	case PolicyDiscrete, PolicyOverlapping:
	default:
		return configErr("layoutPolicy", c.LayoutPolicy.String(), "unknown policy")
	}
	if c.SectionCount < 1 {
		return configErr("sectionCount", c.SectionCount, "must be at least 1")
	}
	if c.LayoutPolicy == PolicyOverlapping {
		f := c.OverlapFraction
		if math.IsNaN(f) || f <= 0 || f > maxOverlapFraction {
			return configErr("overlapFraction", f, "must be in (0, 0.5]")
		}
	}
	if !validHeight(c.DefaultViewportHeight) {
		return configErr("defaultViewportHeight", c.DefaultViewportHeight, "must be a positive finite number")
	}
	return nil
}

// bandFraction returns the width of a transition band in viewport heights.
func (c Config) bandFraction() float64 {
	if c.LayoutPolicy == PolicyDiscrete {
		return 0
	}
	return 2 * c.OverlapFraction
}

// directiveStyle extracts the parts of the config the transform step needs.
func (c Config) directiveStyle() DirectiveStyle {
	return DirectiveStyle{BaseZIndex: c.BaseZIndex, Fade: c.Fade}
}

// rawConfig mirrors Config with pointer fields so LoadConfig can tell an
// explicit zero from an omitted key.
type rawConfig struct {
	LayoutPolicy          *LayoutPolicy `yaml:"layoutPolicy"`
	OverlapFraction       *float64      `yaml:"overlapFraction"`
	SectionCount          *int          `yaml:"sectionCount"`
	BaseZIndex            *int          `yaml:"baseZIndex"`
	Fade                  *bool         `yaml:"fade"`
	DefaultViewportHeight *float64      `yaml:"defaultViewportHeight"`
}

// LoadConfig parses YAML, fills omitted keys from DefaultConfig and validates
// the result. Explicitly invalid values are reported, not replaced.
func LoadConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("cascade: parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.LayoutPolicy != nil {
		cfg.LayoutPolicy = *raw.LayoutPolicy
	}
	if raw.OverlapFraction != nil {
		cfg.OverlapFraction = *raw.OverlapFraction
	}
	if raw.SectionCount != nil {
		cfg.SectionCount = *raw.SectionCount
	}
	if raw.BaseZIndex != nil {
		cfg.BaseZIndex = *raw.BaseZIndex
	}
	if raw.Fade != nil {
		cfg.Fade = *raw.Fade
	}
	if raw.DefaultViewportHeight != nil {
		cfg.DefaultViewportHeight = *raw.DefaultViewportHeight
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cascade: read config: %w", err)
	}
	return LoadConfig(data)
}
