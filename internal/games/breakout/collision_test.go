package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func testResolver() Resolver {
	return Resolver{
		InitialVelocity: core.V(100, -350),
		PaddleStrength:  2.0,
		ShakeDuration:   0.05,
	}
}

func testActors(ball *Ball) (Actors, *Effects) {
	fx := &Effects{}
	paddle := &Paddle{Body: NewBody(core.V(350, 580), core.V(100, 20), TexturePaddle, core.ColorWhite, core.Vec2{})}
	return Actors{Ball: ball, Paddle: paddle, Effects: fx}, fx
}

func singleBrickLevel(x, y, w, h float64, solid bool) *Level {
	brick := NewBody(core.V(x, y), core.V(w, h), TextureBlock, core.ColorWhite, core.Vec2{})
	brick.IsSolid = solid
	return &Level{ID: "test", Name: "test", Bricks: []Body{brick}}
}

func freeBall(x, y, r float64, vel core.Vec2) *Ball {
	b := NewBall(core.V(x, y), r, vel)
	b.Stuck = false
	return b
}

func TestResolveBrickFromInside(t *testing.T) {
	ball := freeBall(100, 100, 12.5, core.V(100, -350))
	a, _ := testActors(ball)
	level := singleBrickLevel(90, 100, 60, 20, false)

	var destroyed []*Body
	res := testResolver().Resolve(level, a, func(b *Body) { destroyed = append(destroyed, b) })

	if len(res.Bricks) != 1 {
		t.Fatalf("expected 1 brick hit, got %d", len(res.Bricks))
	}
	if res.Bricks[0].Dir != core.DirLeft {
		t.Errorf("hit direction = %s, expected Left", res.Bricks[0].Dir)
	}
	if !level.Bricks[0].Destroyed {
		t.Error("brick should be destroyed")
	}
	if len(destroyed) != 1 || destroyed[0] != &level.Bricks[0] {
		t.Error("onDestroy should be called once with the brick")
	}
	if ball.Velocity.X != -100 {
		t.Errorf("velocity.x = %f, expected -100", ball.Velocity.X)
	}
	if ball.Velocity.Y != -350 {
		t.Errorf("velocity.y = %f, expected unchanged -350", ball.Velocity.Y)
	}
}

func TestResolveNoContactLeavesBallUnchanged(t *testing.T) {
	ball := freeBall(400, 400, 12.5, core.V(100, -350))
	a, fx := testActors(ball)
	level := singleBrickLevel(0, 0, 60, 20, false)
	before := *ball

	res := testResolver().Resolve(level, a, nil)

	if len(res.Bricks) != 0 || res.PaddleHit {
		t.Fatalf("expected no contacts, got %+v", res)
	}
	if ball.Position != before.Position || ball.Velocity != before.Velocity {
		t.Errorf("ball changed: %+v -> %+v", before.Body, ball.Body)
	}
	if level.Bricks[0].Destroyed || fx.Shake {
		t.Error("no brick or effect should change")
	}
}

func TestResolveBrickReflectsOneAxis(t *testing.T) {
	const radius = 10.0
	vel := core.V(30, 40)

	tests := []struct {
		name    string
		pos     core.Vec2
		dir     core.Direction
		flipX   bool
		wantPos core.Vec2
	}{
		{"from above", core.V(100, 80), core.DirUp, false, core.V(100, 75)},
		{"from below", core.V(120, 110), core.DirDown, false, core.V(120, 115)},
		{"from the left", core.V(85, 95), core.DirRight, true, core.V(80, 95)},
		{"from the right", core.V(155, 95), core.DirLeft, true, core.V(160, 95)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := freeBall(tc.pos.X, tc.pos.Y, radius, vel)
			a, _ := testActors(ball)
			level := singleBrickLevel(100, 95, 60, 20, false)

			res := testResolver().Resolve(level, a, nil)
			if len(res.Bricks) != 1 {
				t.Fatalf("expected a hit, got %d", len(res.Bricks))
			}
			if res.Bricks[0].Dir != tc.dir {
				t.Errorf("direction = %s, expected %s", res.Bricks[0].Dir, tc.dir)
			}

			xFlipped := ball.Velocity.X == -vel.X
			yFlipped := ball.Velocity.Y == -vel.Y
			if xFlipped == yFlipped {
				t.Fatalf("exactly one axis should flip, velocity %v -> %v", vel, ball.Velocity)
			}
			if xFlipped != tc.flipX {
				t.Errorf("flipped x = %v, expected %v", xFlipped, tc.flipX)
			}
			if ball.Position != tc.wantPos {
				t.Errorf("position = %v, expected %v", ball.Position, tc.wantPos)
			}
		})
	}
}

func TestResolveSolidBrickShakes(t *testing.T) {
	ball := freeBall(100, 80, 10, core.V(30, 40))
	a, fx := testActors(ball)
	level := singleBrickLevel(100, 95, 60, 20, true)

	called := false
	res := testResolver().Resolve(level, a, func(*Body) { called = true })

	if len(res.Bricks) != 1 || !res.Bricks[0].Solid {
		t.Fatalf("expected one solid hit, got %+v", res.Bricks)
	}
	if level.Bricks[0].Destroyed || called {
		t.Error("solid bricks are never destroyed")
	}
	if !fx.Shake || fx.ShakeTime != 0.05 {
		t.Errorf("effects = %+v, expected shake for 0.05s", *fx)
	}
	if ball.Velocity.Y != -40 {
		t.Errorf("velocity.y = %f, expected -40", ball.Velocity.Y)
	}
}

func TestResolvePassThrough(t *testing.T) {
	t.Run("non-solid brick", func(t *testing.T) {
		ball := freeBall(100, 80, 10, core.V(30, 40))
		ball.PassThrough = true
		a, _ := testActors(ball)
		level := singleBrickLevel(100, 95, 60, 20, false)

		testResolver().Resolve(level, a, nil)

		if !level.Bricks[0].Destroyed {
			t.Error("brick should still be destroyed")
		}
		if ball.Velocity != core.V(30, 40) || ball.Position != core.V(100, 80) {
			t.Errorf("ball should pass through untouched, got %+v", ball.Body)
		}
	})

	t.Run("solid brick still deflects", func(t *testing.T) {
		ball := freeBall(100, 80, 10, core.V(30, 40))
		ball.PassThrough = true
		a, _ := testActors(ball)
		level := singleBrickLevel(100, 95, 60, 20, true)

		testResolver().Resolve(level, a, nil)

		if ball.Velocity.Y != -40 {
			t.Errorf("velocity.y = %f, expected -40", ball.Velocity.Y)
		}
	})
}

func TestResolveLaterBricksSeeCorrectedBall(t *testing.T) {
	ball := freeBall(100, 80, 10, core.V(30, 40))
	a, _ := testActors(ball)
	level := singleBrickLevel(100, 95, 60, 20, false)
	level.Bricks = append(level.Bricks, level.Bricks[0])

	res := testResolver().Resolve(level, a, nil)

	if len(res.Bricks) != 1 || res.Bricks[0].Index != 0 {
		t.Fatalf("only the first brick should be hit, got %+v", res.Bricks)
	}
	if level.Bricks[1].Destroyed {
		t.Error("second brick was tested against the uncorrected ball")
	}
}

func TestResolvePaddlePreservesSpeed(t *testing.T) {
	velocities := []core.Vec2{
		core.V(100, -350),
		core.V(100, 350),
		core.V(-250, 80),
		core.V(400, 0),
		core.V(0, 500),
		core.V(-3, 1),
	}
	offsets := []float64{-60, -25, 0, 10, 48}

	for _, vel := range velocities {
		for _, off := range offsets {
			ball := freeBall(400+off-12.5, 575, 12.5, vel)
			a, _ := testActors(ball)
			speed := vel.Len()

			if !testResolver().ResolvePaddle(a) {
				t.Fatalf("vel %v offset %f: expected a paddle hit", vel, off)
			}
			if got := ball.Velocity.Len(); math.Abs(got-speed) > 1e-9 {
				t.Errorf("vel %v offset %f: speed %f, expected %f", vel, off, got, speed)
			}
			if ball.Velocity.Y >= 0 {
				t.Errorf("vel %v offset %f: velocity.y = %f, expected upwards", vel, off, ball.Velocity.Y)
			}
		}
	}
}

func TestResolvePaddleRedirects(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		sign   float64
	}{
		{"left half goes left", -30, -1},
		{"right half goes right", 30, 1},
		{"center goes straight up", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := freeBall(400+tc.offset-12.5, 575, 12.5, core.V(100, 350))
			a, _ := testActors(ball)

			testResolver().ResolvePaddle(a)

			switch {
			case tc.sign < 0 && ball.Velocity.X >= 0,
				tc.sign > 0 && ball.Velocity.X <= 0,
				tc.sign == 0 && ball.Velocity.X != 0:
				t.Errorf("velocity.x = %f, expected sign %v", ball.Velocity.X, tc.sign)
			}
		})
	}
}

func TestResolvePaddleZeroVelocity(t *testing.T) {
	ball := freeBall(387.5, 575, 12.5, core.Vec2{})
	a, _ := testActors(ball)

	testResolver().ResolvePaddle(a)

	want := core.V(100, -350).Len()
	if got := ball.Velocity.Len(); math.Abs(got-want) > 1e-9 {
		t.Errorf("speed = %f, expected initial speed %f", got, want)
	}
	if ball.Velocity.Y >= 0 {
		t.Errorf("velocity.y = %f, expected upwards", ball.Velocity.Y)
	}
}

func TestResolvePaddleSticky(t *testing.T) {
	ball := freeBall(387.5, 575, 12.5, core.V(100, 350))
	ball.Sticky = true
	a, _ := testActors(ball)

	testResolver().ResolvePaddle(a)

	if !ball.Stuck {
		t.Error("sticky ball should stick to the paddle")
	}
}

func TestResolvePaddleIgnoresStuckBall(t *testing.T) {
	ball := NewBall(core.V(387.5, 575), 12.5, core.V(100, 350))
	a, _ := testActors(ball)

	if testResolver().ResolvePaddle(a) {
		t.Error("stuck ball should not collide with the paddle")
	}
	if ball.Velocity != core.V(100, 350) {
		t.Errorf("velocity changed to %v", ball.Velocity)
	}
}

func TestBallMove(t *testing.T) {
	tests := []struct {
		name    string
		pos     core.Vec2
		vel     core.Vec2
		dt      float64
		wantPos core.Vec2
		wantVel core.Vec2
	}{
		{"right wall", core.V(795, 300), core.V(100, 0), 0.1, core.V(775, 300), core.V(-100, 0)},
		{"left wall", core.V(5, 300), core.V(-100, 0), 0.1, core.V(0, 300), core.V(100, 0)},
		{"top wall", core.V(300, 10), core.V(0, -200), 0.1, core.V(300, 0), core.V(0, 200)},
		{"free flight", core.V(300, 300), core.V(100, -350), 0.1, core.V(310, 265), core.V(100, -350)},
		{"no bottom clamp", core.V(300, 590), core.V(0, 200), 0.1, core.V(300, 610), core.V(0, 200)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := freeBall(tc.pos.X, tc.pos.Y, 12.5, tc.vel)
			got := ball.Move(tc.dt, 800)

			if math.Abs(got.X-tc.wantPos.X) > 1e-9 || math.Abs(got.Y-tc.wantPos.Y) > 1e-9 {
				t.Errorf("position = %v, expected %v", got, tc.wantPos)
			}
			if ball.Velocity != tc.wantVel {
				t.Errorf("velocity = %v, expected %v", ball.Velocity, tc.wantVel)
			}
		})
	}
}

func TestBallMoveStuck(t *testing.T) {
	ball := NewBall(core.V(100, 100), 12.5, core.V(100, -350))
	ball.Move(1, 800)

	if ball.Position != core.V(100, 100) {
		t.Errorf("stuck ball moved to %v", ball.Position)
	}
}
