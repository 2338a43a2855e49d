package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile describes a presentation target: the fixed logical
// resolution the simulation renders at and the scale mode used to
// present it on the display surface. Supplied at construction and via
// a platform switch; never read from a process-wide registry
type Profile struct {
	Name             string `yaml:"name"`
	LogicalWidth     int    `yaml:"logical_width"`
	LogicalHeight    int    `yaml:"logical_height"`
	DefaultScaleMode string `yaml:"default_scale_mode"`
}

// DefaultProfile is the fallback presentation target
var DefaultProfile = Profile{
	Name:             "default",
	LogicalWidth:     320,
	LogicalHeight:    240,
	DefaultScaleMode: "integer",
}

// Validate checks profile invariants
func (p Profile) Validate() error {
	if p.LogicalWidth <= 0 || p.LogicalHeight <= 0 {
		return fmt.Errorf("profile %q: logical resolution must be positive, got %dx%d",
			p.Name, p.LogicalWidth, p.LogicalHeight)
	}
	switch p.DefaultScaleMode {
	case "integer", "fit", "stretch":
	default:
		return fmt.Errorf("profile %q: unknown scale mode %q", p.Name, p.DefaultScaleMode)
	}
	return nil
}

// ParseProfile decodes a YAML profile document. Fields absent from the
// document keep the default profile's values
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
