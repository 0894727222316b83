package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var red = core.RGB(1, 0, 0)

func testSprite() []breakout.Sprite {
	return []breakout.Sprite{{
		Texture:  breakout.TextureBlock,
		Position: core.V(0, 0),
		Size:     core.V(80, 24),
		Color:    red,
	}}
}

func activeFrame() Frame {
	return Frame{State: breakout.StateActive, Levels: 1, Elapsed: 1}
}

func TestCellRect(t *testing.T) {
	r := NewRenderer(800, 600)
	screen := core.NewScreen(80, 25)

	tests := []struct {
		name       string
		pos, size  core.Vec2
		x, y, w, h int
	}{
		{"whole field", core.V(0, 0), core.V(800, 600), 0, 1, 80, 24},
		{"brick", core.V(0, 0), core.V(80, 24), 0, 1, 8, 1},
		{"tiny sprite", core.V(400, 300), core.V(10, 10), 40, 13, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := r.cellRect(screen, tt.pos, tt.size)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("cellRect() = (%d,%d,%d,%d), expected (%d,%d,%d,%d)", x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestRenderSkipsDestroyed(t *testing.T) {
	r := NewRenderer(800, 600)
	screen := core.NewScreen(80, 25)

	sprites := testSprite()
	sprites[0].Destroyed = true
	r.Render(screen, sprites, activeFrame())

	if screen.Get(0, 1) != ' ' {
		t.Errorf("Destroyed sprite drawn: %q", screen.Get(0, 1))
	}
}

func TestRenderEffects(t *testing.T) {
	r := NewRenderer(800, 600)

	t.Run("plain", func(t *testing.T) {
		screen := core.NewScreen(80, 25)
		r.Render(screen, testSprite(), activeFrame())
		cell := screen.GetCell(0, 1)
		if cell.Rune != BrickGlyph || cell.Color != red {
			t.Errorf("Brick cell = %q %v, expected %q %v", cell.Rune, cell.Color, BrickGlyph, red)
		}
	})

	t.Run("chaos inverts colors", func(t *testing.T) {
		screen := core.NewScreen(80, 25)
		f := activeFrame()
		f.Effects.Chaos = true
		r.Render(screen, testSprite(), f)
		if c := screen.GetCell(0, 1).Color; c != red.Invert() {
			t.Errorf("Chaos color = %v, expected %v", c, red.Invert())
		}
	})

	t.Run("confuse mirrors playfield", func(t *testing.T) {
		screen := core.NewScreen(80, 25)
		f := activeFrame()
		f.Effects.Confuse = true
		r.Render(screen, testSprite(), f)
		if screen.Get(79, 24) != BrickGlyph {
			t.Errorf("Mirrored brick missing at bottom right, got %q", screen.Get(79, 24))
		}
		if screen.Get(0, 1) == BrickGlyph {
			t.Error("Brick should have moved away from top left")
		}
	})

	t.Run("shake shifts playfield", func(t *testing.T) {
		screen := core.NewScreen(80, 25)
		f := activeFrame()
		f.Effects.Shake = true
		f.Tick = 0
		r.Render(screen, testSprite(), f)
		if screen.Get(0, 1) != ' ' || screen.Get(1, 1) != BrickGlyph {
			t.Errorf("Shake should shift right by one: row = %q", screen.Row(1))
		}
	})
}

func TestRenderOverlays(t *testing.T) {
	session, err := breakout.NewSession(config.DefaultBreakoutConfig(), breakout.WithSeed(1))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	w, h := session.Size()
	r := NewRenderer(w, h)

	tests := []struct {
		name   string
		frame  Frame
		expect string
	}{
		{"menu", Frame{State: breakout.StateMenu, Level: session.Level()}, "BREAKOUT"},
		{"menu best time", Frame{State: breakout.StateMenu, Level: session.Level(), BestTime: 65.5}, "Best: 1:05.5"},
		{"win", Frame{State: breakout.StateWin, LastClear: &breakout.LevelClear{Elapsed: 3}}, "You WON!!!"},
		{"win time", Frame{State: breakout.StateWin, LastClear: &breakout.LevelClear{Elapsed: 3}}, "Time: 0:03.0"},
		{"paused", Frame{State: breakout.StateActive, Elapsed: 2, Paused: true}, "PAUSED"},
		{"launch hint", Frame{State: breakout.StateActive}, "Press SPACE to launch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := core.NewScreen(80, 25)
			r.Render(screen, session.DrawList(), tt.frame)
			if !strings.Contains(screen.String(), tt.expect) {
				t.Errorf("Screen missing %q:\n%s", tt.expect, screen.String())
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	r := NewRenderer(800, 600)
	screen := core.NewScreen(18, 6)
	r.Render(screen, testSprite(), activeFrame())
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("Expected size warning, got:\n%s", screen.String())
	}
}

func TestHUDShowsActiveEffects(t *testing.T) {
	r := NewRenderer(800, 600)
	screen := core.NewScreen(80, 25)
	f := activeFrame()
	f.Level = breakout.LevelInfo{Name: "Standard", Remaining: 12}
	f.Active = []breakout.ActiveEffect{{Kind: breakout.PowerUpSticky, Remaining: 4.2}}
	r.Render(screen, nil, f)

	hud := screen.Row(0)
	for _, want := range []string{"Level 1/1: Standard", "Bricks: 12", "(5)"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs     float64
		expected string
	}{
		{0, "0:00.0"},
		{3, "0:03.0"},
		{65.5, "1:05.5"},
		{-2, "0:00.0"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.secs); got != tt.expected {
			t.Errorf("formatSeconds(%v) = %q, expected %q", tt.secs, got, tt.expected)
		}
	}
}

func TestPowerUpGlyph(t *testing.T) {
	if PowerUpGlyph(breakout.TexturePowerUpChaos) != 'X' {
		t.Error("Chaos power-up should draw X")
	}
	if PowerUpGlyph(breakout.TextureBall) != '?' {
		t.Error("Non power-up texture should draw ?")
	}
}
