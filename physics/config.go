package physics

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseOverride decodes a partial tuning document, e.g. a per-level
// physics block. Absent fields stay nil and keep prior values on Apply
func ParseOverride(data []byte) (Override, error) {
	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Override{}, fmt.Errorf("failed to decode physics override: %w", err)
	}
	if o.Friction != nil && (*o.Friction < 0 || *o.Friction > 1) {
		return Override{}, fmt.Errorf("friction must be in [0, 1], got %g", *o.Friction)
	}
	if o.MaxVelocity != nil && *o.MaxVelocity < 0 {
		return Override{}, fmt.Errorf("max_velocity must be non-negative, got %g", *o.MaxVelocity)
	}
	return o, nil
}
