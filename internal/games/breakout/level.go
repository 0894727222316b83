package breakout

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Tile codes in a level grid.
const (
	TileEmpty = 0
	TileSolid = 1
)

var (
	// ErrRaggedLevel is returned when level rows have different lengths.
	ErrRaggedLevel = errors.New("breakout: level rows have different lengths")
	// ErrEmptyLevel is returned when a level grid has no tiles.
	ErrEmptyLevel = errors.New("breakout: level has no tiles")
)

//go:embed levels/*.lvl
var builtinFS embed.FS

// builtinLevels lists the embedded levels in play order.
var builtinLevels = []struct {
	id   string
	name string
}{
	{"one", "Standard"},
	{"two", "A few small gaps"},
	{"three", "Space invader"},
	{"four", "Bounce galore"},
}

// tileColors maps destructible tile codes to brick tints.
var tileColors = map[int]core.Color{
	TileSolid: core.RGB(0.8, 0.8, 0.7),
	2:         core.RGB(0.2, 0.6, 1.0),
	3:         core.RGB(0.0, 0.7, 0.0),
	4:         core.RGB(0.8, 0.8, 0.4),
	5:         core.RGB(1.0, 0.5, 0.0),
}

// TileColor returns the brick tint for a tile code. Unknown codes are white.
func TileColor(tile int) core.Color {
	if c, ok := tileColors[tile]; ok {
		return c
	}
	return core.ColorWhite
}

// Level is a grid of bricks. Its shape is fixed at load time; bricks only
// toggle their Destroyed flag.
type Level struct {
	ID     string
	Name   string
	Tiles  [][]int
	Bricks []Body
}

// ParseTiles reads a whitespace-separated integer grid, one row per line.
// Blank lines are skipped.
func ParseTiles(r io.Reader) ([][]int, error) {
	var tiles [][]int
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("breakout: line %d column %d: invalid tile %q", line, i+1, f)
			}
			row[i] = v
		}
		if len(tiles) > 0 && len(row) != len(tiles[0]) {
			return nil, fmt.Errorf("line %d has %d tiles, expected %d: %w", line, len(row), len(tiles[0]), ErrRaggedLevel)
		}
		tiles = append(tiles, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("breakout: read level: %w", err)
	}
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyLevel
	}
	return tiles, nil
}

// NewLevel builds the bricks of a tile grid laid out over a levelWidth by
// levelHeight area anchored at the playfield origin.
func NewLevel(id, name string, tiles [][]int, levelWidth, levelHeight float64) (*Level, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyLevel
	}
	cols := len(tiles[0])
	for _, row := range tiles {
		if len(row) != cols {
			return nil, ErrRaggedLevel
		}
	}

	unit := core.V(levelWidth/float64(cols), levelHeight/float64(len(tiles)))
	l := &Level{ID: id, Name: name, Tiles: tiles}
	for y, row := range tiles {
		for x, tile := range row {
			if tile == TileEmpty {
				continue
			}
			pos := core.V(unit.X*float64(x), unit.Y*float64(y))
			tex := TextureBlock
			if tile == TileSolid {
				tex = TextureBlockSolid
			}
			brick := NewBody(pos, unit, tex, TileColor(tile), core.Vec2{})
			brick.IsSolid = tile == TileSolid
			l.Bricks = append(l.Bricks, brick)
		}
	}
	return l, nil
}

// ParseLevel reads a tile grid and builds its level.
func ParseLevel(id, name string, r io.Reader, levelWidth, levelHeight float64) (*Level, error) {
	tiles, err := ParseTiles(r)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", id, err)
	}
	return NewLevel(id, name, tiles, levelWidth, levelHeight)
}

// LoadLevelFile reads a level from disk. The level ID is the file name
// without its extension; an empty name defaults to the ID.
func LoadLevelFile(path, name string, levelWidth, levelHeight float64) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("breakout: open level: %w", err)
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" {
		name = id
	}
	return ParseLevel(id, name, f, levelWidth, levelHeight)
}

// BuiltinLevels loads the embedded levels sized for the given area.
func BuiltinLevels(levelWidth, levelHeight float64) ([]*Level, error) {
	levels := make([]*Level, 0, len(builtinLevels))
	for _, b := range builtinLevels {
		f, err := builtinFS.Open("levels/" + b.id + ".lvl")
		if err != nil {
			return nil, fmt.Errorf("breakout: builtin level %s: %w", b.id, err)
		}
		l, err := ParseLevel(b.id, b.name, f, levelWidth, levelHeight)
		f.Close()
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// IsCompleted reports whether every non-solid brick is destroyed.
func (l *Level) IsCompleted() bool {
	for i := range l.Bricks {
		if !l.Bricks[i].IsSolid && !l.Bricks[i].Destroyed {
			return false
		}
	}
	return true
}

// Remaining returns the number of destructible bricks still standing.
func (l *Level) Remaining() int {
	n := 0
	for i := range l.Bricks {
		if !l.Bricks[i].IsSolid && !l.Bricks[i].Destroyed {
			n++
		}
	}
	return n
}

// Destructible returns the number of non-solid bricks in the level.
func (l *Level) Destructible() int {
	n := 0
	for i := range l.Bricks {
		if !l.Bricks[i].IsSolid {
			n++
		}
	}
	return n
}

// Reset restores every brick.
func (l *Level) Reset() {
	for i := range l.Bricks {
		l.Bricks[i].Destroyed = false
	}
}
