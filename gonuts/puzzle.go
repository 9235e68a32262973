package gonuts

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// NewPuzzle forms a Puzzle from seven tiles (ring positions 0..5, then the
// center), validating each.
func NewPuzzle(tiles ...Tile) (Puzzle, error) {
	var puzzle Puzzle
	if len(tiles) != PuzzleSize {
		return puzzle, ErrNotATile
	}
	for i, tile := range tiles {
		if err := tile.Validate(); err != nil {
			return Puzzle{}, err
		}
		puzzle[i] = tile
	}
	return puzzle, nil
}

// Center returns the center tile.
func (puzzle Puzzle) Center() Tile {
	return puzzle[CenterPos]
}

// Pack converts a puzzle to its minimal integer representation: the multiset
// of the seven tiles' canonical shapes.  Pack is invariant under any
// permutation of the seven tiles and any rotation of each individual tile.
func Pack(puzzle Puzzle) PuzzleID {
	var shapes [PuzzleSize]TileShape
	for i, tile := range puzzle {
		shapes[i] = tile.Shape()
	}
	return PackShapes(shapes)
}

// PackShapes sorts the seven shape bytes ascending and concatenates them
// big-endian into the low 7 bytes of a PuzzleID.
func PackShapes(shapes [PuzzleSize]TileShape) PuzzleID {
	// Insertion sort; seven elements.
	for i := 1; i < PuzzleSize; i++ {
		for j := i; j > 0 && shapes[j-1] > shapes[j]; j-- {
			shapes[j-1], shapes[j] = shapes[j], shapes[j-1]
		}
	}
	id := PuzzleID(0)
	for _, s := range shapes {
		id = id<<8 | PuzzleID(s)
	}
	return id
}

// Unpack converts a PuzzleID back to a puzzle of seven 0-aligned tiles.
// The original ring assignment and rotations are not recoverable; Unpack is
// only an inverse of the canonical form:
//
//	Pack(Unpack(Pack(p))) == Pack(p)
func Unpack(id PuzzleID) Puzzle {
	var puzzle Puzzle
	for i := PuzzleSize - 1; i >= 0; i-- {
		puzzle[i] = TileShape(id & 0xFF).Tile()
		id >>= 8
	}
	return puzzle
}

// ContainsShape returns whether the puzzle encoded by this id includes a tile
// of the given canonical shape.
func (id PuzzleID) ContainsShape(shape TileShape) bool {
	for i := 0; i < PuzzleSize; i++ {
		if TileShape(id&0xFF) == shape {
			return true
		}
		id >>= 8
	}
	return false
}

// AppendTo marshals this id as 8 big-endian bytes, the one wire form shared
// by artifact files and catalog keys (lexicographic order == numeric order).
func (id PuzzleID) AppendTo(buf []byte) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// ReadPuzzleID unmarshals an id written by AppendTo.
func ReadPuzzleID(buf []byte) (PuzzleID, error) {
	if len(buf) < PuzzleIDSz {
		return 0, ErrUnmarshal
	}
	return PuzzleID(binary.BigEndian.Uint64(buf)), nil
}

func (id PuzzleID) String() string {
	return fmt.Sprintf("%014x", uint64(id))
}

// String prints a puzzle as its seven tiles, ring first, center last.
func (puzzle Puzzle) String() string {
	var b strings.Builder
	b.Grow(PuzzleSize * (NumMarks + 1))
	for i, tile := range puzzle {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tile.String())
	}
	return b.String()
}
