package config

import (
	_ "embed"
)

//go:embed defaults/ghostbird.yaml
var defaultYAML []byte

//go:embed defaults/map.csv
var defaultMapCSV []byte

// Default returns the hard-coded configuration.
// Used when neither a config file nor the embedded YAML can be parsed.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:  600,
			Height: 400,
		},
		Avatar: AvatarConfig{
			Width:     42,
			Height:    30,
			XFraction: 0.3,
		},
		Obstacles: ObstacleConfig{
			Width: 50,
			Speed: 6,
		},
		Physics: PhysicsConfig{
			TickMS:       50,
			Gravity:      1,
			FlapVelocity: -10,
		},
		Rebound: ReboundConfig{
			Offset: 2,
			Scale:  5,
		},
		Run: RunConfig{
			Lives: 3,
			Seed:  1234,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultMap returns the embedded default obstacle schedule (CSV).
func DefaultMap() []byte {
	return defaultMapCSV
}
