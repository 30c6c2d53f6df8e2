package core

// Color represents a foreground/background pairing for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Predefined colors. Tile colors follow the classic 2048 palette from light
// (small tiles) to saturated (large tiles).
const (
	ColorDefault Color = iota
	ColorDim
	ColorTitle
	ColorAccent
	ColorWin
	ColorLose
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper
)

// TileColor returns the color for a tile value. Zero (empty) is dim.
func TileColor(value int) Color {
	switch value {
	case 0:
		return ColorDim
	case 2:
		return ColorTile2
	case 4:
		return ColorTile4
	case 8:
		return ColorTile8
	case 16:
		return ColorTile16
	case 32:
		return ColorTile32
	case 64:
		return ColorTile64
	case 128:
		return ColorTile128
	case 256:
		return ColorTile256
	case 512:
		return ColorTile512
	case 1024:
		return ColorTile1024
	case 2048:
		return ColorTile2048
	default:
		return ColorTileSuper
	}
}
