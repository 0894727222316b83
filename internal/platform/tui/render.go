package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Glyphs used on the playfield.
const (
	BrickGlyph      = '█'
	BrickEdgeGlyph  = '▌'
	SolidBrickGlyph = '▓'
	PaddleGlyph     = '▀'
	BallGlyph       = '●'
	PowerUpFill     = '▒'
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

var hudColor = core.ColorGray

// styleCache maps tints to lipgloss styles.
type styleCache map[core.Color]lipgloss.Style

func (c styleCache) get(col core.Color) lipgloss.Style {
	if s, ok := c[col]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if !col.IsZero() {
		s = s.Foreground(lipgloss.Color(col.Hex()))
	}
	c[col] = s
	return s
}

// defaultStyles is shared by every renderer in the process. Bubble Tea
// renders from a single goroutine.
var defaultStyles = styleCache{}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(defaultStyles.get(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// PowerUpGlyph returns the letter drawn on a falling power-up.
func PowerUpGlyph(t breakout.TextureID) rune {
	switch t {
	case breakout.TexturePowerUpSpeed:
		return 'S'
	case breakout.TexturePowerUpSticky:
		return 'T'
	case breakout.TexturePowerUpPassThrough:
		return 'P'
	case breakout.TexturePowerUpIncrease:
		return '+'
	case breakout.TexturePowerUpConfuse:
		return 'C'
	case breakout.TexturePowerUpChaos:
		return 'X'
	default:
		return '?'
	}
}

// Frame holds the view state the renderer needs beyond the sprites.
type Frame struct {
	State     breakout.State
	Effects   breakout.Effects
	Level     breakout.LevelInfo
	Levels    int
	Elapsed   float64
	Tick      uint64
	Active    []breakout.ActiveEffect
	Paused    bool
	BestTime  float64 // Zero when the level was never cleared
	LastClear *breakout.LevelClear
}

// Renderer rasterizes draw lists onto a character screen.
type Renderer struct {
	worldW, worldH float64
}

// NewRenderer creates a renderer for a playfield of the given world size.
func NewRenderer(worldW, worldH float64) *Renderer {
	return &Renderer{worldW: worldW, worldH: worldH}
}

// cellRect converts a world rectangle to screen cells. The result always
// spans at least one cell.
func (r *Renderer) cellRect(dst *core.Screen, pos, size core.Vec2) (x, y, w, h int) {
	cols := float64(dst.Width())
	rows := float64(dst.Height() - hudRows)
	sx, sy := cols/r.worldW, rows/r.worldH

	x0 := int(math.Floor(pos.X * sx))
	y0 := int(math.Floor(pos.Y * sy))
	x1 := int(math.Ceil((pos.X + size.X) * sx))
	y1 := int(math.Ceil((pos.Y + size.Y) * sy))
	return x0, y0 + hudRows, max(x1-x0, 1), max(y1-y0, 1)
}

// Render draws the sprites, HUD and overlays, then applies the
// post-processing effects.
func (r *Renderer) Render(dst *core.Screen, sprites []breakout.Sprite, f Frame) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	for _, sp := range sprites {
		if sp.Destroyed {
			continue
		}
		r.drawSprite(dst, sp)
	}

	fx := f.Effects
	if fx.Shake {
		dx := 1
		if f.Tick%2 == 1 {
			dx = -1
		}
		dst.Shift(hudRows, dx)
	}
	if fx.Confuse {
		dst.Mirror(hudRows)
	}
	if fx.Chaos {
		invert(dst, hudRows)
	}

	r.renderHUD(dst, f)
	r.renderOverlay(dst, f)
}

func (r *Renderer) drawSprite(dst *core.Screen, sp breakout.Sprite) {
	x, y, w, h := r.cellRect(dst, sp.Position, sp.Size)
	switch sp.Texture {
	case breakout.TextureBlock:
		dst.FillRect(x, y, w, h, BrickGlyph, sp.Color)
		if w >= 3 {
			for yy := y; yy < y+h; yy++ {
				dst.SetColored(x+w-1, yy, BrickEdgeGlyph, sp.Color)
			}
		}
	case breakout.TextureBlockSolid:
		dst.FillRect(x, y, w, h, SolidBrickGlyph, sp.Color)
	case breakout.TexturePaddle:
		dst.FillRect(x, y, w, 1, PaddleGlyph, sp.Color)
	case breakout.TextureBall:
		cx := x + w/2
		cy := y + h/2
		dst.SetColored(cx, cy, BallGlyph, sp.Color)
	default:
		dst.FillRect(x, y, w, 1, PowerUpFill, sp.Color)
		dst.SetColored(x+w/2, y, PowerUpGlyph(sp.Texture), sp.Color)
	}
}

// invert swaps every tinted cell below top for its complement.
func invert(dst *core.Screen, top int) {
	for y := top; y < dst.Height(); y++ {
		for x := range dst.Width() {
			c := dst.GetCell(x, y)
			if c.Color.IsZero() {
				continue
			}
			dst.SetColored(x, y, c.Rune, c.Color.Invert())
		}
	}
}

// renderHUD draws the level, timer and active effects.
func (r *Renderer) renderHUD(dst *core.Screen, f Frame) {
	dst.FillRect(0, 0, dst.Width(), 1, ' ', core.Color{})

	left := fmt.Sprintf("Level %d/%d: %s", f.Level.Index+1, f.Levels, f.Level.Name)
	drawColored(dst, 1, 0, left, hudColor)

	if f.State == breakout.StateActive {
		center := fmt.Sprintf("Bricks: %d  Time: %s", f.Level.Remaining, formatSeconds(f.Elapsed))
		drawColored(dst, (dst.Width()-len([]rune(center)))/2, 0, center, hudColor)
	}

	var parts []string
	for _, e := range f.Active {
		if e.Remaining > 0 {
			parts = append(parts, fmt.Sprintf("%s(%d)", e.Kind, int(math.Ceil(e.Remaining))))
		}
	}
	if right := strings.Join(parts, " "); right != "" {
		drawColored(dst, dst.Width()-len([]rune(right))-1, 0, right, hudColor)
	}
}

// renderOverlay draws state messages.
func (r *Renderer) renderOverlay(dst *core.Screen, f Frame) {
	switch {
	case f.Paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case f.State == breakout.StateMenu:
		best := "No clear yet"
		if f.BestTime > 0 {
			best = "Best: " + formatSeconds(f.BestTime)
		}
		drawCenteredBox(dst, "BREAKOUT",
			fmt.Sprintf("< %s >", f.Level.Name),
			best,
			"Press ENTER to start or W/S to select level")

	case f.State == breakout.StateWin:
		lines := []string{"You WON!!!"}
		if f.LastClear != nil {
			lines = append(lines, "Time: "+formatSeconds(f.LastClear.Elapsed))
		}
		lines = append(lines, "Press ENTER to retry or Q to quit")
		drawCenteredBox(dst, lines[0], lines[1:]...)

	case f.State == breakout.StateActive:
		// Hint while the ball rests on the paddle at level start
		if f.Elapsed < 0.5 {
			dst.DrawTextCentered(dst.Height()-2, "Press SPACE to launch")
		}
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.Color{})
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawHLine(boxX+1, boxY+2, boxW-2, '─')
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}

func drawColored(dst *core.Screen, x, y int, text string, c core.Color) {
	i := 0
	for _, ch := range text {
		dst.SetColored(x+i, y, ch, c)
		i++
	}
}

// formatSeconds renders a duration in seconds as m:ss.t.
func formatSeconds(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	m := int(secs) / 60
	s := secs - float64(m*60)
	return fmt.Sprintf("%d:%04.1f", m, s)
}
