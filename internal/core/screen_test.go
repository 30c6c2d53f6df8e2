package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 12 {
		t.Errorf("Height() = %d, expected 12", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '8', ColorTile8)
	if c := s.GetCell(5, 5); c.Rune != '8' || c.Color != ColorTile8 {
		t.Errorf("GetCell(5, 5) = %+v, expected '8' in ColorTile8", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if c := s.GetCell(-1, 0); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v, expected uncolored space", c)
	}
	if c := s.GetCell(0, 100); c.Rune != ' ' {
		t.Errorf("out of bounds GetCell = %+v, expected space", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(6, 3)
	s.FillRect(NewRect(0, 0, 6, 3), '#', ColorAccent)
	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Clear() left content: %q", s.String())
	}
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Clear() should reset colors")
	}
}

func TestDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(2, 0, "Score")
	s.DrawText(7, 1, "clipped")

	if got := s.Row(0); got != "  Score   " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(1); got != "       cli" {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "2048")

	if got := s.Row(0); got != "   2048    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "abcde")
	s.Resize(3, 3)

	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize dims = %dx%d", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "abc" {
		t.Errorf("Row(0) after resize = %q, expected \"abc\"", got)
	}
	if got := s.Row(2); got != "   " {
		t.Errorf("Row(2) after resize = %q, expected blank", got)
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(0) != ColorDim {
		t.Error("empty cell should be dim")
	}
	if TileColor(2048) != ColorTile2048 {
		t.Error("2048 should use its own color")
	}
	if TileColor(8192) != ColorTileSuper {
		t.Error("tiles above 2048 share the super color")
	}
}
