// Package config provides YAML-based configuration loading for ghostbird:
// field geometry, physics constants, rebound tuning and run parameters.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tunables of the engine.
type Config struct {
	Field     FieldConfig    `yaml:"field"`
	Avatar    AvatarConfig   `yaml:"avatar"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Rebound   ReboundConfig  `yaml:"rebound"`
	Run       RunConfig      `yaml:"run"`
}

// FieldConfig defines the play field in pixels.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AvatarConfig defines the bird's hitbox and fixed horizontal position.
type AvatarConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	XFraction float64 `yaml:"x_fraction"` // Horizontal position as a fraction of field width
}

// ObstacleConfig defines pipe geometry and scroll speed.
type ObstacleConfig struct {
	Width float64 `yaml:"width"`
	Speed float64 `yaml:"speed"` // Pixels scrolled per tick interval
}

// PhysicsConfig defines the simulation cadence and vertical physics.
type PhysicsConfig struct {
	TickMS       int     `yaml:"tick_ms" env:"GHOSTBIRD_TICK_MS"`
	Gravity      float64 `yaml:"gravity" env:"GHOSTBIRD_GRAVITY"`
	FlapVelocity float64 `yaml:"flap_velocity"` // Negative = up
}

// ReboundConfig shapes the impulse applied on a collision:
// magnitude = (r + Offset) * Scale, with r drawn from the PRNG in [-1, 1].
type ReboundConfig struct {
	Offset float64 `yaml:"offset"`
	Scale  float64 `yaml:"scale"`
}

// RunConfig defines per-run parameters.
type RunConfig struct {
	Lives int   `yaml:"lives" env:"GHOSTBIRD_LIVES"`
	Seed  int64 `yaml:"seed" env:"GHOSTBIRD_SEED"` // 0 = derive from the clock at session start
}

// TickInterval returns the simulation tick as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Physics.TickMS) * time.Millisecond
}

// PxPerMs returns the pipe scroll speed in pixels per millisecond.
func (c Config) PxPerMs() float64 {
	return c.Obstacles.Speed / float64(c.Physics.TickMS)
}

// AvatarX returns the bird's fixed horizontal position.
func (c Config) AvatarX() float64 {
	return c.Field.Width * c.Avatar.XFraction
}

// Validate checks that the geometry and cadence can drive a simulation.
func (c Config) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field must be positive, got %vx%v", c.Field.Width, c.Field.Height))
	}
	if c.Avatar.Width <= 0 || c.Avatar.Height <= 0 {
		errs = append(errs, fmt.Errorf("avatar must be positive, got %vx%v", c.Avatar.Width, c.Avatar.Height))
	}
	if c.Avatar.XFraction < 0 || c.Avatar.XFraction > 1 {
		errs = append(errs, fmt.Errorf("avatar x_fraction must be in [0, 1], got %v", c.Avatar.XFraction))
	}
	if c.Obstacles.Width <= 0 {
		errs = append(errs, fmt.Errorf("obstacle width must be positive, got %v", c.Obstacles.Width))
	}
	if c.Physics.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_ms must be positive, got %d", c.Physics.TickMS))
	}
	if c.Run.Lives <= 0 {
		errs = append(errs, fmt.Errorf("lives must be positive, got %d", c.Run.Lives))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
