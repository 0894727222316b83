package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value to a preset.
// An empty string selects normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Normal leaves the config untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width *= 1.3
		scaleBallVelocity(cfg, 0.85)
		// Helpful drops twice as often
		cfg.PowerUps.Speed.OneIn = halveChance(cfg.PowerUps.Speed.OneIn)
		cfg.PowerUps.Sticky.OneIn = halveChance(cfg.PowerUps.Sticky.OneIn)
		cfg.PowerUps.PassThrough.OneIn = halveChance(cfg.PowerUps.PassThrough.OneIn)
		cfg.PowerUps.IncreasePaddle.OneIn = halveChance(cfg.PowerUps.IncreasePaddle.OneIn)
		cfg.PowerUps.Confuse.OneIn *= 2
		cfg.PowerUps.Chaos.OneIn *= 2
	case DifficultyHard:
		cfg.Paddle.Width *= 0.8
		scaleBallVelocity(cfg, 1.25)
		cfg.PowerUps.Sticky.OneIn *= 2
		cfg.PowerUps.PassThrough.OneIn *= 2
		cfg.PowerUps.IncreasePaddle.OneIn *= 2
		cfg.PowerUps.Confuse.OneIn = halveChance(cfg.PowerUps.Confuse.OneIn)
		cfg.PowerUps.Chaos.OneIn = halveChance(cfg.PowerUps.Chaos.OneIn)
	}
}

func scaleBallVelocity(cfg *BreakoutConfig, factor float64) {
	cfg.Ball.VelocityX *= factor
	cfg.Ball.VelocityY *= factor
}

// halveChance doubles spawn probability; 0 stays disabled.
func halveChance(oneIn int) int {
	if oneIn <= 1 {
		return oneIn
	}
	return oneIn / 2
}
