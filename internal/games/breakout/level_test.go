package breakout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestParseTiles(t *testing.T) {
	tiles, err := ParseTiles(strings.NewReader("1 0 2\n\n3  4 5\n"))
	if err != nil {
		t.Fatalf("ParseTiles() error: %v", err)
	}
	want := [][]int{{1, 0, 2}, {3, 4, 5}}
	if len(tiles) != len(want) {
		t.Fatalf("got %d rows, expected %d", len(tiles), len(want))
	}
	for y := range want {
		for x := range want[y] {
			if tiles[y][x] != want[y][x] {
				t.Errorf("tile (%d, %d) = %d, expected %d", x, y, tiles[y][x], want[y][x])
			}
		}
	}
}

func TestParseTilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"ragged rows", "1 1 1\n1 1\n", ErrRaggedLevel},
		{"empty input", "", ErrEmptyLevel},
		{"blank lines only", "\n  \n", ErrEmptyLevel},
		{"not a number", "1 x 1\n", nil},
		{"negative tile", "1 -2 1\n", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTiles(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewLevelLayout(t *testing.T) {
	tiles := [][]int{
		{1, 0, 2, 9},
		{3, 4, 5, 0},
	}
	l, err := NewLevel("t", "Test", tiles, 800, 300)
	if err != nil {
		t.Fatalf("NewLevel() error: %v", err)
	}

	if len(l.Bricks) != 6 {
		t.Fatalf("got %d bricks, expected 6 (empty tiles skipped)", len(l.Bricks))
	}

	first := l.Bricks[0]
	if !first.IsSolid || first.Texture != TextureBlockSolid {
		t.Error("tile 1 should be a solid brick")
	}
	if first.Size != core.V(200, 150) {
		t.Errorf("brick size = %v, expected (200, 150)", first.Size)
	}
	if l.Bricks[1].Position != core.V(400, 0) || l.Bricks[1].IsSolid {
		t.Errorf("tile 2 brick at %v, expected (400, 0) non-solid", l.Bricks[1].Position)
	}
	if l.Bricks[2].Color != core.ColorWhite {
		t.Error("unknown tile codes should be white")
	}
	if l.Bricks[3].Position != core.V(0, 150) || l.Bricks[3].Color != TileColor(3) {
		t.Errorf("tile 3 brick at %v", l.Bricks[3].Position)
	}

	if l.Destructible() != 5 || l.Remaining() != 5 {
		t.Errorf("destructible=%d remaining=%d, expected 5", l.Destructible(), l.Remaining())
	}
}

func TestLevelCompletion(t *testing.T) {
	l, err := NewLevel("t", "Test", [][]int{{1, 2, 1, 3}}, 400, 50)
	if err != nil {
		t.Fatalf("NewLevel() error: %v", err)
	}

	if l.IsCompleted() {
		t.Fatal("fresh level should not be completed")
	}
	for i := range l.Bricks {
		if !l.Bricks[i].IsSolid {
			l.Bricks[i].Destroyed = true
		}
	}
	if !l.IsCompleted() {
		t.Error("level should be completed when only solid bricks stand")
	}

	l.Reset()
	if l.Remaining() != 2 || l.IsCompleted() {
		t.Error("Reset should restore every brick")
	}
}

func TestNewLevelRejectsBadGrid(t *testing.T) {
	if _, err := NewLevel("t", "", nil, 800, 300); !errors.Is(err, ErrEmptyLevel) {
		t.Errorf("nil grid: error = %v, expected ErrEmptyLevel", err)
	}
	if _, err := NewLevel("t", "", [][]int{{1, 1}, {1}}, 800, 300); !errors.Is(err, ErrRaggedLevel) {
		t.Errorf("ragged grid: error = %v, expected ErrRaggedLevel", err)
	}
}

func TestBuiltinLevels(t *testing.T) {
	levels, err := BuiltinLevels(800, 300)
	if err != nil {
		t.Fatalf("BuiltinLevels() error: %v", err)
	}
	if len(levels) != 4 {
		t.Fatalf("got %d levels, expected 4", len(levels))
	}
	for _, l := range levels {
		if l.Destructible() == 0 {
			t.Errorf("level %s has nothing to destroy", l.ID)
		}
		for _, b := range l.Bricks {
			if b.Position.X < 0 || b.Bounds().Right() > 800+1e-9 || b.Bounds().Bottom() > 300+1e-9 {
				t.Errorf("level %s: brick %v outside the level area", l.ID, b.Bounds())
			}
		}
	}
}

func TestLoadLevelFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.lvl")
	if err := os.WriteFile(path, []byte("2 2\n1 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLevelFile(path, "", 800, 300)
	if err != nil {
		t.Fatalf("LoadLevelFile() error: %v", err)
	}
	if l.ID != "custom" || l.Name != "custom" {
		t.Errorf("ID=%q Name=%q, expected both custom", l.ID, l.Name)
	}
	if len(l.Bricks) != 4 {
		t.Errorf("got %d bricks, expected 4", len(l.Bricks))
	}

	if _, err := LoadLevelFile(filepath.Join(dir, "missing.lvl"), "", 800, 300); err == nil {
		t.Error("missing file should fail")
	}
}
