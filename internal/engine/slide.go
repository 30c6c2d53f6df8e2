package engine

// TileMove records where a tile travelled during a slide.
// Both tiles of a merge get a TileMove with Merged set and the same To.
type TileMove struct {
	From   Cell
	To     Cell
	Value  int // Value before the merge
	Merged bool
}

// SlideResult is the outcome of sliding a board without spawning.
type SlideResult struct {
	Grid   Grid
	Score  int
	Moved  bool
	Moves  []TileMove
	Merged []Cell // Cells holding a freshly merged tile
}

// lineMove is a TileMove expressed as indexes within one line.
type lineMove struct {
	from, to int
	merged   bool
}

// lineResult is the compact-left outcome for one line.
type lineResult struct {
	row    Row
	score  int
	moved  bool
	moves  []lineMove
	merged [Size]bool
}

// compactLeft slides a row to the left and merges equal neighbours in a
// single left-to-right pass. A tile produced by a merge does not merge again
// in the same pass, so [2,2,2,2] becomes [4,4,0,0] and [2,2,4,0] becomes
// [4,4,0,0].
func compactLeft(row Row) lineResult {
	var res lineResult
	writePos := 0

	for i, v := range row {
		if v == 0 {
			continue
		}

		if writePos > 0 && !res.merged[writePos-1] && res.row[writePos-1] == v {
			// Merge with previous tile
			for j := range res.moves {
				if res.moves[j].to == writePos-1 {
					res.moves[j].merged = true
				}
			}
			res.row[writePos-1] *= 2
			res.merged[writePos-1] = true
			res.score += res.row[writePos-1]
			res.moves = append(res.moves, lineMove{from: i, to: writePos - 1, merged: true})
			continue
		}

		res.row[writePos] = v
		res.moves = append(res.moves, lineMove{from: i, to: writePos})
		writePos++
	}

	res.moved = res.row != row
	return res
}

// Slide moves every tile in the given direction and merges equal tiles.
// Right is left on mirrored rows, up is left on the transposed board, and
// down is right on the transposed board. An invalid direction returns the
// board unchanged.
func Slide(board Grid, dir Direction) SlideResult {
	if !dir.Valid() {
		return SlideResult{Grid: board}
	}

	cells := [Size][Size]int(board)
	pos := identityCells()

	if dir == DirUp || dir == DirDown {
		cells = transpose(cells)
		pos = transpose(pos)
	}
	if dir == DirRight || dir == DirDown {
		for i := range Size {
			cells[i] = reverse(cells[i])
			pos[i] = reverse(pos[i])
		}
	}

	var res SlideResult
	var out [Size][Size]int
	for i := range Size {
		line := compactLeft(Row(cells[i]))
		out[i] = line.row
		res.Score += line.score
		if line.moved {
			res.Moved = true
		}

		for _, m := range line.moves {
			res.Moves = append(res.Moves, TileMove{
				From:   pos[i][m.from],
				To:     pos[i][m.to],
				Value:  cells[i][m.from],
				Merged: m.merged,
			})
		}
		for j, merged := range line.merged {
			if merged {
				res.Merged = append(res.Merged, pos[i][j])
			}
		}
	}

	// Undo the orientation in reverse order
	if dir == DirRight || dir == DirDown {
		for i := range Size {
			out[i] = reverse(out[i])
		}
	}
	if dir == DirUp || dir == DirDown {
		out = transpose(out)
	}

	res.Grid = Grid(out)
	return res
}

// SlideLeft slides all tiles left.
func SlideLeft(board Grid) SlideResult { return Slide(board, DirLeft) }

// SlideRight slides all tiles right.
func SlideRight(board Grid) SlideResult { return Slide(board, DirRight) }

// SlideUp slides all tiles up.
func SlideUp(board Grid) SlideResult { return Slide(board, DirUp) }

// SlideDown slides all tiles down.
func SlideDown(board Grid) SlideResult { return Slide(board, DirDown) }

// identityCells maps every position to its own coordinates.
func identityCells() [Size][Size]Cell {
	var pos [Size][Size]Cell
	for r := range Size {
		for c := range Size {
			pos[r][c] = Cell{Row: r, Col: c}
		}
	}
	return pos
}
