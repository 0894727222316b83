package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Resolver resolves ball contacts with bricks and the paddle.
type Resolver struct {
	InitialVelocity core.Vec2 // Launch velocity, the reference for paddle redirection
	PaddleStrength  float64   // Horizontal redirection strength on paddle hits
	ShakeDuration   float64   // Seconds of shake after a solid brick hit
}

// BrickHit describes one resolved ball-brick contact.
type BrickHit struct {
	Index     int // Brick index in level order
	Dir       core.Direction
	Destroyed bool
	Solid     bool
}

// Resolution summarizes the contacts resolved in one tick.
type Resolution struct {
	Bricks    []BrickHit
	PaddleHit bool
}

// Destroyed returns the number of bricks destroyed.
func (r Resolution) Destroyed() int {
	n := 0
	for _, h := range r.Bricks {
		if h.Destroyed {
			n++
		}
	}
	return n
}

// Resolve runs brick and then paddle collision for one tick. Bricks are
// scanned in level order and every hit mutates the ball immediately, so later
// bricks are tested against the corrected ball. onDestroy is called with each
// brick destroyed and may be nil.
func (r Resolver) Resolve(level *Level, a Actors, onDestroy func(brick *Body)) Resolution {
	var res Resolution
	for i := range level.Bricks {
		brick := &level.Bricks[i]
		if brick.Destroyed {
			continue
		}
		hit, ok := r.resolveBrick(brick, a)
		if !ok {
			continue
		}
		hit.Index = i
		res.Bricks = append(res.Bricks, hit)
		if hit.Destroyed && onDestroy != nil {
			onDestroy(brick)
		}
	}

	res.PaddleHit = r.ResolvePaddle(a)
	return res
}

// resolveBrick tests a single brick and applies the hit response.
func (r Resolver) resolveBrick(brick *Body, a Actors) (BrickHit, bool) {
	ball := a.Ball
	c := core.CircleRectCollision(ball.Position, ball.Radius, brick.Bounds())
	if !c.Hit {
		return BrickHit{}, false
	}

	hit := BrickHit{Dir: c.Dir, Solid: brick.IsSolid}
	if brick.IsSolid {
		a.Effects.ShakeTime = r.ShakeDuration
		a.Effects.Shake = true
	} else {
		brick.Destroyed = true
		hit.Destroyed = true
	}

	if ball.PassThrough && !brick.IsSolid {
		return hit, true
	}

	if c.Dir.Horizontal() {
		ball.Velocity.X = -ball.Velocity.X
		penetration := ball.Radius - math.Abs(c.Delta.X)
		if c.Dir == core.DirLeft {
			ball.Position.X += penetration
		} else {
			ball.Position.X -= penetration
		}
	} else {
		ball.Velocity.Y = -ball.Velocity.Y
		penetration := ball.Radius - math.Abs(c.Delta.Y)
		if c.Dir == core.DirUp {
			ball.Position.Y -= penetration
		} else {
			ball.Position.Y += penetration
		}
	}
	return hit, true
}

// ResolvePaddle redirects the ball off the paddle. The horizontal component
// depends on where the ball struck relative to the paddle center, the speed
// is preserved and the ball always leaves upwards. A stuck ball is ignored.
func (r Resolver) ResolvePaddle(a Actors) bool {
	ball, paddle := a.Ball, a.Paddle
	if ball.Stuck {
		return false
	}
	c := core.CircleRectCollision(ball.Position, ball.Radius, paddle.Bounds())
	if !c.Hit {
		return false
	}

	distance := ball.Position.X + ball.Radius - paddle.CenterX()
	percentage := distance / (paddle.Size.X / 2)

	speed := ball.Velocity.Len()
	if speed == 0 {
		speed = r.InitialVelocity.Len()
	}
	dir := core.V(r.InitialVelocity.X*percentage*r.PaddleStrength, ball.Velocity.Y)
	if dir.Y == 0 {
		dir.Y = r.InitialVelocity.Y
	}
	if dir.Y == 0 {
		dir.Y = -1
	}
	unit, _ := dir.Normalize()

	ball.Velocity = unit.Scale(speed)
	ball.Velocity.Y = -math.Abs(ball.Velocity.Y)
	ball.Stuck = ball.Sticky
	return true
}
