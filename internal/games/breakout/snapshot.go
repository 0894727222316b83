package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Sprite is a draw command for one entity. Renderers skip destroyed sprites.
type Sprite struct {
	Texture   TextureID
	Position  core.Vec2
	Size      core.Vec2
	Rotation  float64
	Color     core.Color
	Destroyed bool
}

func spriteOf(b *Body) Sprite {
	return Sprite{
		Texture:   b.Texture,
		Position:  b.Position,
		Size:      b.Size,
		Rotation:  b.Rotation,
		Color:     b.Color,
		Destroyed: b.Destroyed,
	}
}

// DrawList returns draw commands in back-to-front order: bricks, paddle,
// falling power-ups, ball. Collected power-ups are included as destroyed.
func (s *Session) DrawList() []Sprite {
	level := s.levels[s.levelIndex]
	out := make([]Sprite, 0, len(level.Bricks)+len(s.powerups.PowerUps)+2)
	for i := range level.Bricks {
		out = append(out, spriteOf(&level.Bricks[i]))
	}
	out = append(out, spriteOf(&s.paddle.Body))
	for _, p := range s.powerups.PowerUps {
		out = append(out, spriteOf(&p.Body))
	}
	out = append(out, spriteOf(&s.ball.Body))
	return out
}

// Snapshot contains the complete simulation state for determinism checks.
// Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick       uint64
	State      State
	LevelIndex int
	Elapsed    float64

	BallX, BallY   float64
	BallVX, BallVY float64
	BallFlags      int // Bit 0 stuck, bit 1 sticky, bit 2 pass-through

	PaddleX     float64
	PaddleWidth float64

	// Brick destroyed flags in level order
	BricksDestroyed []bool

	// Each power-up is 5 values: Kind, X, Y, Duration, Flags (bit 0 destroyed, bit 1 active)
	PowerUpData []float64

	Shake, Confuse, Chaos bool
	ShakeTime             float64

	RNGState uint64
}

// Snapshot returns the current simulation state.
func (s *Session) Snapshot() Snapshot {
	level := s.levels[s.levelIndex]
	bricks := make([]bool, len(level.Bricks))
	for i := range level.Bricks {
		bricks[i] = level.Bricks[i].Destroyed
	}

	powerups := make([]float64, 0, len(s.powerups.PowerUps)*5)
	for _, p := range s.powerups.PowerUps {
		flags := 0
		if p.Destroyed {
			flags |= 1
		}
		if p.Active {
			flags |= 2
		}
		powerups = append(powerups, float64(p.Kind), p.Position.X, p.Position.Y, p.Duration, float64(flags))
	}

	flags := 0
	if s.ball.Stuck {
		flags |= 1
	}
	if s.ball.Sticky {
		flags |= 2
	}
	if s.ball.PassThrough {
		flags |= 4
	}

	return Snapshot{
		Tick:            s.tick,
		State:           s.state,
		LevelIndex:      s.levelIndex,
		Elapsed:         s.elapsed,
		BallX:           s.ball.Position.X,
		BallY:           s.ball.Position.Y,
		BallVX:          s.ball.Velocity.X,
		BallVY:          s.ball.Velocity.Y,
		BallFlags:       flags,
		PaddleX:         s.paddle.Position.X,
		PaddleWidth:     s.paddle.Size.X,
		BricksDestroyed: bricks,
		PowerUpData:     powerups,
		Shake:           s.effects.Shake,
		Confuse:         s.effects.Confuse,
		Chaos:           s.effects.Chaos,
		ShakeTime:       s.effects.ShakeTime,
		RNGState:        s.powerups.RNG.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) {
		h = h*31 + v
	}
	bit := func(b bool) uint64 {
		if b {
			return 1
		}
		return 0
	}

	mix(uint64(snap.State))      //#nosec G115 -- hash computation
	mix(uint64(snap.LevelIndex)) //#nosec G115 -- hash computation
	mix(math.Float64bits(snap.Elapsed))
	mix(math.Float64bits(snap.BallX))
	mix(math.Float64bits(snap.BallY))
	mix(math.Float64bits(snap.BallVX))
	mix(math.Float64bits(snap.BallVY))
	mix(uint64(snap.BallFlags)) //#nosec G115 -- hash computation
	mix(math.Float64bits(snap.PaddleX))
	mix(math.Float64bits(snap.PaddleWidth))
	for _, d := range snap.BricksDestroyed {
		mix(bit(d))
	}
	for _, v := range snap.PowerUpData {
		mix(math.Float64bits(v))
	}
	mix(bit(snap.Shake))
	mix(bit(snap.Confuse))
	mix(bit(snap.Chaos))
	mix(math.Float64bits(snap.ShakeTime))
	mix(snap.RNGState)
	return h
}
