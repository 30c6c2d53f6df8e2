package engine

import "testing"

func TestIsTerminal(t *testing.T) {
	// Board with no empty cells and no possible merges
	board := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if !IsTerminal(board) {
		t.Error("Board with no moves should be terminal")
	}

	// Checkerboard of two values is full and has no equal neighbours
	checker := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if !IsTerminal(checker) {
		t.Error("Checkerboard should be terminal")
	}

	// Board with no empty cells but possible merges
	boardWithMerge := Grid{
		{2, 2, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if IsTerminal(boardWithMerge) {
		t.Error("Board with possible merge should not be terminal")
	}

	// Vertical pair in the last column
	boardWithVertical := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 8},
		{8192, 16384, 32768, 8},
	}
	if IsTerminal(boardWithVertical) {
		t.Error("Board with vertical pair should not be terminal")
	}

	// Board with empty cells
	boardWithEmpty := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	}

	if IsTerminal(boardWithEmpty) {
		t.Error("Board with empty cell should not be terminal")
	}

	if IsTerminal(NewGrid()) {
		t.Error("Empty board should not be terminal")
	}
}

func TestTerminalBoardCannotSlide(t *testing.T) {
	board := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	for _, dir := range Directions {
		if res := Slide(board, dir); res.Moved {
			t.Errorf("terminal board moved %s", dir)
		}
	}
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name    string
		board   Grid
		winTile int
		want    bool
	}{
		{
			name:    "single 2048 on empty board",
			board:   Grid{{0, 0, 0, 0}, {0, 2048, 0, 0}},
			winTile: 2048,
			want:    true,
		},
		{
			name:    "below threshold",
			board:   Grid{{1024, 1024, 512, 0}},
			winTile: 2048,
			want:    false,
		},
		{
			name:    "larger tile only is not an exact match",
			board:   Grid{{4096, 0, 0, 0}},
			winTile: 2048,
			want:    false,
		},
		{
			name:    "custom threshold",
			board:   Grid{{2, 0, 0, 128}},
			winTile: 128,
			want:    true,
		},
		{
			name:    "disabled threshold",
			board:   Grid{{2048, 0, 0, 0}},
			winTile: 0,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasWon(tt.board, tt.winTile); got != tt.want {
				t.Errorf("HasWon(%d) = %v, want %v", tt.winTile, got, tt.want)
			}
		})
	}
}
