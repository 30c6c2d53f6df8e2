package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewBoardHasTwoTiles(t *testing.T) {
	e := New(DefaultRules(), rand.New(rand.NewSource(42)))
	board := e.NewBoard()

	if board.TileCount() != 2 {
		t.Errorf("NewBoard tile count = %d, want 2", board.TileCount())
	}
	if err := board.Validate(); err != nil {
		t.Errorf("NewBoard invalid: %v", err)
	}
}

func TestDeterministicBoards(t *testing.T) {
	e1 := New(DefaultRules(), rand.New(rand.NewSource(12345)))
	e2 := New(DefaultRules(), rand.New(rand.NewSource(12345)))

	b1, b2 := e1.NewBoard(), e2.NewBoard()
	if b1 != b2 {
		t.Fatalf("Same seed should produce same initial board:\n%v\nvs\n%v", b1, b2)
	}

	for _, dir := range []Direction{DirLeft, DirUp, DirRight, DirDown, DirLeft} {
		o1 := e1.ApplyMove(b1, dir)
		o2 := e2.ApplyMove(b2, dir)
		if o1.Grid != o2.Grid {
			t.Fatalf("Same seed diverged after %s", dir)
		}
		b1, b2 = o1.Grid, o2.Grid
	}
}

func TestApplyMoveSpawnsOnlyWhenMoved(t *testing.T) {
	e := New(DefaultRules(), &scriptedRand{floats: []float64{0.9}})

	board := Grid{{2, 2, 0, 0}}
	out := e.ApplyMove(board, DirLeft)

	if !out.Moved {
		t.Fatal("move should be accepted")
	}
	if out.Score != 4 {
		t.Errorf("Score = %d, want 4", out.Score)
	}
	if out.Spawned == nil {
		t.Fatal("accepted move should spawn a tile")
	}
	if out.Grid.At(*out.Spawned) != 2 {
		t.Errorf("spawned value = %d, want 2", out.Grid.At(*out.Spawned))
	}
	if out.Grid.TileCount() != 2 {
		t.Errorf("TileCount = %d, want 2 (merged tile + spawn)", out.Grid.TileCount())
	}
	if len(out.Merged) != 1 || out.Merged[0] != (Cell{0, 0}) {
		t.Errorf("Merged = %v, want [{0 0}]", out.Merged)
	}

	rejected := e.ApplyMove(Grid{{4, 2, 0, 0}}, DirLeft)
	if rejected.Moved {
		t.Error("left-aligned row should not move")
	}
	if rejected.Spawned != nil {
		t.Error("rejected move should not spawn")
	}
	if rejected.Grid != (Grid{{4, 2, 0, 0}}) {
		t.Errorf("rejected move changed grid:\n%v", rejected.Grid)
	}
}

func TestApplyMoveDetectsWin(t *testing.T) {
	e := New(DefaultRules(), rand.New(rand.NewSource(1)))

	out := e.ApplyMove(Grid{{1024, 1024, 0, 0}}, DirLeft)
	if !out.Won {
		t.Error("merging into 2048 should win")
	}
	if out.Score != 2048 {
		t.Errorf("Score = %d, want 2048", out.Score)
	}
}

func TestApplyMoveCustomThreshold(t *testing.T) {
	e := New(Rules{WinTile: 16, Spawn4Prob: 0}, rand.New(rand.NewSource(1)))

	out := e.ApplyMove(Grid{{8, 8, 0, 0}}, DirLeft)
	if !out.Won {
		t.Error("merging into the configured win tile should win")
	}
}

func TestApplyMoveDetectsGameOver(t *testing.T) {
	board := Grid{
		{0, 4, 2, 4},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
	}
	// The only free cell after the slide is (0,3), next to a 4 on both sides.
	e := New(DefaultRules(), &scriptedRand{ints: []int{0}, floats: []float64{0.01}})

	out := e.ApplyMove(board, DirLeft)
	if !out.Moved {
		t.Fatal("move should be accepted")
	}

	want := Grid{
		{4, 2, 4, 4},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
	}
	if out.Grid != want {
		t.Fatalf("grid:\n%v\nwant\n%v", out.Grid, want)
	}
	if out.GameOver {
		t.Error("board with a horizontal pair is not over")
	}

	e = New(DefaultRules(), &scriptedRand{ints: []int{0}, floats: []float64{0.5}})
	out = e.ApplyMove(board, DirLeft)
	if !out.GameOver {
		t.Errorf("board should be over:\n%v", out.Grid)
	}
}

func TestGridHelpers(t *testing.T) {
	board := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	cells := board.EmptyCells()
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	if cells[0] != (Cell{0, 1}) || cells[7] != (Cell{3, 2}) {
		t.Errorf("EmptyCells order = %v, want row-major", cells)
	}

	if !board.Contains(2048) || board.Contains(4) {
		t.Error("Contains mismatch")
	}
	if board.MaxTile() != 2048 {
		t.Errorf("MaxTile = %d, want 2048", board.MaxTile())
	}
	if board.TileCount() != 8 {
		t.Errorf("TileCount = %d, want 8", board.TileCount())
	}

	clone := board.Clone()
	clone[0][0] = 4
	if board[0][0] != 2 {
		t.Error("Clone shares storage with original")
	}

	if len(NewGrid().EmptyCells()) != Size*Size {
		t.Error("NewGrid should be empty")
	}
}

func TestValidate(t *testing.T) {
	if err := (Grid{{2, 4, 0, 2048}}).Validate(); err != nil {
		t.Errorf("valid grid rejected: %v", err)
	}
	for _, v := range []int{1, 3, 6, -2} {
		err := (Grid{{v}}).Validate()
		if !errors.Is(err, ErrInvalidTile) {
			t.Errorf("Validate(%d) = %v, want ErrInvalidTile", v, err)
		}
	}
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid("2,2,.,./.,.,.,./0 0 0 0/.,.,.,4")
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	want := Grid{{2, 2, 0, 0}, {}, {}, {0, 0, 0, 4}}
	if g != want {
		t.Errorf("ParseGrid = \n%v\nwant\n%v", g, want)
	}

	round, err := ParseGrid(g.String())
	if err != nil {
		t.Fatalf("ParseGrid(String()): %v", err)
	}
	if round != g {
		t.Errorf("String round trip = \n%v", round)
	}

	bad := []string{
		"2,2,2,2",
		"2,2/2,2/2,2/2,2",
		"2,2,x,2/././.",
		"3,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0",
	}
	for _, s := range bad {
		if _, err := ParseGrid(s); err == nil {
			t.Errorf("ParseGrid(%q) should fail", s)
		}
	}
}

func TestParseMoves(t *testing.T) {
	dirs, err := ParseMoves("LuR, d")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	want := []Direction{DirLeft, DirUp, DirRight, DirDown}
	if len(dirs) != len(want) {
		t.Fatalf("ParseMoves = %v, want %v", dirs, want)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dirs[%d] = %s, want %s", i, dirs[i], want[i])
		}
	}

	if _, err := ParseMoves("lx"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("ParseMoves bad input err = %v", err)
	}

	d, err := ParseDirection(" Down ")
	if err != nil || d != DirDown {
		t.Errorf("ParseDirection = %v, %v", d, err)
	}
	if DirRight.String() != "right" || Direction(9).Valid() {
		t.Error("Direction String/Valid mismatch")
	}
}
