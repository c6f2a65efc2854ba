package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultStateArea is the placeholder area in square kilometres used for
// states missing from the reference table. It is an approximation, not a
// measured figure.
const DefaultStateArea = 100000.0

// StateAreas maps a state name to its area in square kilometres.
// The table is injectable so alternate region sets can be substituted
// without code changes.
type StateAreas map[string]float64

// Area returns the area for the given state, falling back to
// DefaultStateArea for unknown states. The result is always positive.
func (a StateAreas) Area(state string) float64 {
	if area, ok := a[state]; ok && area > 0 {
		return area
	}
	return DefaultStateArea
}

// DefaultStateAreas returns the built-in reference table of Indian state
// areas in square kilometres.
func DefaultStateAreas() StateAreas {
	return StateAreas{
		"Rajasthan":      342239,
		"Maharashtra":    307713,
		"Uttar Pradesh":  240928,
		"Madhya Pradesh": 308245,
		"Gujarat":        196244,
		"Karnataka":      191791,
		"Andhra Pradesh": 160205,
		"Tamil Nadu":     130060,
		"Bihar":          94163,
		"West Bengal":    88752,
		"Telangana":      112077,
		"Haryana":        44212,
		"Punjab":         50362,
		"Kerala":         38852,
		"Jharkhand":      79716,
	}
}

// LoadStateAreas loads a state-area table from a YAML file. An empty path
// returns the built-in defaults. Entries in the file are merged over the
// defaults so partial overrides are possible.
func LoadStateAreas(path string) (StateAreas, error) {
	areas := DefaultStateAreas()
	if path == "" {
		return areas, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state areas file %s: %w", path, err)
	}

	var overrides map[string]float64
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse state areas file %s: %w", path, err)
	}

	for state, area := range overrides {
		areas[state] = area
	}

	return areas, nil
}
