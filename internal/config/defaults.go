package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default brick breaker configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:  100,
			Height: 20,
			Speed:  500,
		},
		Ball: BallConfig{
			Radius:    12.5,
			VelocityX: 100,
			VelocityY: -350,
		},
		Physics: PhysicsConfig{
			PaddleStrength: 2.0,
			ShakeDuration:  0.05,
		},
		PowerUps: PowerUpsConfig{
			Width:        60,
			Height:       20,
			FallSpeed:    150,
			SpeedFactor:  1.2,
			PaddleGrowth: 50,

			Speed:          PowerUpKindConfig{OneIn: 75, Duration: 0},
			Sticky:         PowerUpKindConfig{OneIn: 75, Duration: 20},
			PassThrough:    PowerUpKindConfig{OneIn: 75, Duration: 10},
			IncreasePaddle: PowerUpKindConfig{OneIn: 75, Duration: 0},
			Confuse:        PowerUpKindConfig{OneIn: 15, Duration: 15},
			Chaos:          PowerUpKindConfig{OneIn: 15, Duration: 15},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
