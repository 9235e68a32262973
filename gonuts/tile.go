package gonuts

import (
	"strings"
	"sync"
)

var (
	gTablesOnce sync.Once
	gShapeTile  [NumShapes]Tile
	gTileShape  map[Tile]TileShape
)

// initShapeTables fills the two complementary lookup tables over the 120
// permutations of the marks 1..5 following the fixed leading 0, ranked in
// lexicographic order of the tail.
func initShapeTables() {
	gTileShape = make(map[Tile]TileShape, NumShapes)

	var tail [NumMarks - 1]Mark
	var used [NumMarks]bool
	shape := TileShape(0)

	var permute func(depth int)
	permute = func(depth int) {
		if depth == len(tail) {
			tile := Tile{0, tail[0], tail[1], tail[2], tail[3], tail[4]}
			gShapeTile[shape] = tile
			gTileShape[tile] = shape
			shape++
			return
		}
		for m := Mark(1); m < NumMarks; m++ {
			if used[m] {
				continue
			}
			used[m] = true
			tail[depth] = m
			permute(depth + 1)
			used[m] = false
		}
	}
	permute(0)
}

func shapeTables() {
	gTablesOnce.Do(initShapeTables)
}

// NewTile forms a Tile from six marks, validating that they are a permutation
// of the mark alphabet.
func NewTile(marks ...Mark) (Tile, error) {
	var tile Tile
	if len(marks) != NumMarks {
		return tile, ErrNotATile
	}
	copy(tile[:], marks)
	if err := tile.Validate(); err != nil {
		return Tile{}, err
	}
	return tile, nil
}

// ParseTile reads a tile from six digit characters, e.g. "250341".
func ParseTile(str string) (Tile, error) {
	var tile Tile
	if len(str) != NumMarks {
		return tile, ErrNotATile
	}
	for i := 0; i < NumMarks; i++ {
		d := str[i] - '0'
		if d >= NumMarks {
			return Tile{}, ErrNotATile
		}
		tile[i] = Mark(d)
	}
	if err := tile.Validate(); err != nil {
		return Tile{}, err
	}
	return tile, nil
}

// Validate returns an error unless this tile bears each mark exactly once.
func (tile Tile) Validate() error {
	seen := 0
	for _, m := range tile {
		if m >= NumMarks {
			return ErrNotATile
		}
		seen |= 1 << m
	}
	if seen != (1<<NumMarks)-1 {
		return ErrNotATile
	}
	return nil
}

// Align returns this tile rotated so that its first edge bears the given mark.
func (tile Tile) Align(mark Mark) (Tile, error) {
	for k, m := range tile {
		if m == mark {
			return tile.rotated(k), nil
		}
	}
	return Tile{}, ErrMarkNotFound
}

// MustAlign is Align for callers working with validated tiles, where every
// mark of the alphabet is known to be present.
func (tile Tile) MustAlign(mark Mark) Tile {
	aligned, err := tile.Align(mark)
	if err != nil {
		panic(err)
	}
	return aligned
}

// rotated returns this tile rotated left by k edges.
func (tile Tile) rotated(k int) Tile {
	var out Tile
	for i := 0; i < NumMarks; i++ {
		out[i] = tile[(i+k)%NumMarks]
	}
	return out
}

// Shape returns the canonical index of this tile: 0-align it, then rank the
// remaining 5-mark tail.  The tile must be valid.
func (tile Tile) Shape() TileShape {
	shapeTables()
	shape, found := gTileShape[tile.MustAlign(0)]
	if !found {
		panic(ErrNotATile)
	}
	return shape
}

// Tile is the inverse of Tile.Shape: the 0-aligned tile bearing the given
// canonical index.  Panics if the shape is out of range, since shape bytes
// only ever originate from Pack.
func (shape TileShape) Tile() Tile {
	shapeTables()
	if shape >= NumShapes {
		panic(ErrBadShape)
	}
	return gShapeTile[shape]
}

// CenterTiles returns the 120 canonical (0-aligned) center tiles in shape
// order.  Two centers that are rotations of each other share one entry.
func CenterTiles() []Tile {
	shapeTables()
	tiles := make([]Tile, NumShapes)
	copy(tiles, gShapeTile[:])
	return tiles
}

// String prints a tile as its six mark digits, e.g. "250341".
func (tile Tile) String() string {
	var b strings.Builder
	b.Grow(NumMarks)
	for _, m := range tile {
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}
