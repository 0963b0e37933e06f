package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a customer profile from a YAML file and validates it.
func LoadFromFile(path string) (CustomerProfile, error) {
	var p CustomerProfile

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
