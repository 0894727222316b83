// Package config provides YAML-based game configuration loading and
// difficulty presets for the brick breaker.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all configuration for the brick breaker.
type BreakoutConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Ball     BallConfig     `yaml:"ball"`
	Physics  PhysicsConfig  `yaml:"physics"`
	PowerUps PowerUpsConfig `yaml:"powerups"`
	Levels   []LevelSource  `yaml:"levels"`
}

// WindowConfig defines the logical playfield size.
type WindowConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the player paddle.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// BallConfig defines the ball and its launch velocity.
type BallConfig struct {
	Radius    float64 `yaml:"radius"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}

// PhysicsConfig defines collision response parameters.
type PhysicsConfig struct {
	PaddleStrength float64 `yaml:"paddle_strength"` // Horizontal redirection strength on paddle hits
	ShakeDuration  float64 `yaml:"shake_duration"`  // Seconds of screen shake after a solid brick hit
}

// PowerUpsConfig defines power-up physics, effect magnitudes and spawn odds.
type PowerUpsConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	FallSpeed    float64 `yaml:"fall_speed"`
	SpeedFactor  float64 `yaml:"speed_factor"`  // Ball velocity multiplier for Speed
	PaddleGrowth float64 `yaml:"paddle_growth"` // Width added by IncreasePaddle

	Speed          PowerUpKindConfig `yaml:"speed"`
	Sticky         PowerUpKindConfig `yaml:"sticky"`
	PassThrough    PowerUpKindConfig `yaml:"pass_through"`
	IncreasePaddle PowerUpKindConfig `yaml:"increase_paddle"`
	Confuse        PowerUpKindConfig `yaml:"confuse"`
	Chaos          PowerUpKindConfig `yaml:"chaos"`
}

// PowerUpKindConfig defines the spawn odds and effect duration of one kind.
type PowerUpKindConfig struct {
	OneIn    int     `yaml:"one_in"`   // Spawn probability is 1/OneIn, 0 disables
	Duration float64 `yaml:"duration"` // Effect duration in seconds
}

// LevelSource names an extra level file.
type LevelSource struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Validate checks the values the simulation cannot run without.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %gx%g", c.Window.Width, c.Window.Height))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, fmt.Errorf("paddle size must be positive, got %gx%g", c.Paddle.Width, c.Paddle.Height))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius must be positive, got %g", c.Ball.Radius))
	}
	if c.PowerUps.Width <= 0 || c.PowerUps.Height <= 0 {
		errs = append(errs, fmt.Errorf("power-up size must be positive, got %gx%g", c.PowerUps.Width, c.PowerUps.Height))
	}
	for i, l := range c.Levels {
		if l.Path == "" {
			errs = append(errs, fmt.Errorf("levels[%d]: path is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid breakout config: %w", errors.Join(errs...))
	}
	return nil
}
