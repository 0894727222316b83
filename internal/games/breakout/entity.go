package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// TextureID is an opaque handle the renderer maps to an image or glyph.
type TextureID int

const (
	TextureNone TextureID = iota
	TextureBlock
	TextureBlockSolid
	TexturePaddle
	TextureBall
	TexturePowerUpSpeed
	TexturePowerUpSticky
	TexturePowerUpPassThrough
	TexturePowerUpIncrease
	TexturePowerUpConfuse
	TexturePowerUpChaos
)

// Body is the axis-aligned shape shared by every game entity.
// Position is the top-left corner in playfield pixels.
type Body struct {
	Position  core.Vec2
	Size      core.Vec2
	Velocity  core.Vec2
	Color     core.Color
	Rotation  float64
	Texture   TextureID
	Destroyed bool
	IsSolid   bool
}

// NewBody creates a body with the given shape, texture, tint and velocity.
func NewBody(pos, size core.Vec2, tex TextureID, color core.Color, vel core.Vec2) Body {
	return Body{
		Position: pos,
		Size:     size,
		Velocity: vel,
		Color:    color,
		Texture:  tex,
	}
}

// Bounds returns the body's bounding box.
func (b *Body) Bounds() core.Rect {
	return core.Rect{Pos: b.Position, Size: b.Size}
}

// Paddle is the player-controlled board at the bottom of the playfield.
type Paddle struct {
	Body
}

// CenterX returns the x-coordinate of the paddle center.
func (p *Paddle) CenterX() float64 {
	return p.Position.X + p.Size.X/2
}

// Ball is the circular projectile. Its Body spans the bounding square of
// the circle, so Size is always twice the radius.
type Ball struct {
	Body
	Radius      float64
	Stuck       bool // Resting on the paddle, velocity not integrated
	Sticky      bool // Paddle hits leave the ball stuck
	PassThrough bool // Non-solid bricks are destroyed without deflecting the ball
}

// NewBall creates a ball stuck to the paddle.
func NewBall(pos core.Vec2, radius float64, vel core.Vec2) *Ball {
	return &Ball{
		Body:   NewBody(pos, core.V(radius*2, radius*2), TextureBall, core.ColorWhite, vel),
		Radius: radius,
		Stuck:  true,
	}
}

// Center returns the center of the ball.
func (b *Ball) Center() core.Vec2 {
	return b.Position.AddScalar(b.Radius)
}

// Move integrates the ball over dt and keeps it inside the left, right and
// top walls, reflecting velocity on contact. The bottom is open.
// A stuck ball does not move. Returns the new position.
func (b *Ball) Move(dt, windowWidth float64) core.Vec2 {
	if b.Stuck {
		return b.Position
	}

	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if b.Position.X <= 0 {
		b.Velocity.X = -b.Velocity.X
		b.Position.X = 0
	} else if b.Position.X+b.Size.X >= windowWidth {
		b.Velocity.X = -b.Velocity.X
		b.Position.X = windowWidth - b.Size.X
	}
	if b.Position.Y <= 0 {
		b.Velocity.Y = -b.Velocity.Y
		b.Position.Y = 0
	}

	return b.Position
}

// Reset puts the ball back on the paddle with the given position and velocity
// and clears every power-up flag.
func (b *Ball) Reset(pos, vel core.Vec2) {
	b.Position = pos
	b.Velocity = vel
	b.Stuck = true
	b.Sticky = false
	b.PassThrough = false
	b.Color = core.ColorWhite
}

// Effects is the post-processing state sampled by the renderer.
type Effects struct {
	Shake     bool
	Confuse   bool
	Chaos     bool
	ShakeTime float64 // Seconds of shake remaining
}

// Actors bundles the session entities the resolver and the power-up manager
// act upon.
type Actors struct {
	Ball    *Ball
	Paddle  *Paddle
	Effects *Effects
}
