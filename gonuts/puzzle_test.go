package gonuts

import (
	"math/rand"
	"testing"
)

func randomTile(rnd *rand.Rand) Tile {
	tile := Tile{0, 1, 2, 3, 4, 5}
	rnd.Shuffle(NumMarks, func(i, j int) {
		tile[i], tile[j] = tile[j], tile[i]
	})
	return tile
}

func randomPuzzle(rnd *rand.Rand) Puzzle {
	var puzzle Puzzle
	for i := range puzzle {
		puzzle[i] = randomTile(rnd)
	}
	return puzzle
}

func TestPackInvariance(t *testing.T) {
	gT = t
	rnd := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		puzzle := randomPuzzle(rnd)
		id := Pack(puzzle)

		// Permute the tile order and independently rotate each tile.
		var shuffled Puzzle
		for i, pi := range rnd.Perm(PuzzleSize) {
			shuffled[i] = puzzle[pi].rotated(rnd.Intn(NumMarks))
		}

		if got := Pack(shuffled); got != id {
			gT.Fatalf("pack not invariant: %v != %v\n%v\n%v", got, id, puzzle, shuffled)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	gT = t
	rnd := rand.New(rand.NewSource(2))

	for trial := 0; trial < 200; trial++ {
		id := Pack(randomPuzzle(rnd))
		unpacked := Unpack(id)
		for _, tile := range unpacked {
			if tile[0] != 0 {
				gT.Fatalf("unpacked tile %v is not 0-aligned", tile)
			}
		}
		if got := Pack(unpacked); got != id {
			gT.Fatalf("round trip %v -> %v", id, got)
		}
	}

	// Seven identity tiles pack to the zero id.
	identity := Tile{0, 1, 2, 3, 4, 5}
	puzzle := Puzzle{identity, identity, identity, identity, identity, identity, identity}
	if id := Pack(puzzle); id != 0 {
		gT.Fatalf("identity puzzle packed to %v", id)
	}
}

func TestPuzzleIDWire(t *testing.T) {
	gT = t

	id := PuzzleID(0x00010217380a5177)
	buf := id.AppendTo(nil)
	if len(buf) != PuzzleIDSz {
		gT.Fatalf("wire size %d", len(buf))
	}
	back, err := ReadPuzzleID(buf)
	if err != nil || back != id {
		gT.Fatalf("wire round trip %v -> %v (%v)", id, back, err)
	}
	if _, err := ReadPuzzleID(buf[:7]); err == nil {
		gT.Fatal("expected error on short buffer")
	}
}

func TestContainsShape(t *testing.T) {
	gT = t

	var shapes [PuzzleSize]TileShape
	for i := range shapes {
		shapes[i] = TileShape(10 * i) // 0, 10, ..., 60
	}
	id := PackShapes(shapes)

	for _, s := range shapes {
		if !id.ContainsShape(s) {
			gT.Fatalf("id %v should contain shape %d", id, s)
		}
	}
	if id.ContainsShape(5) || id.ContainsShape(119) {
		gT.Fatalf("id %v contains unexpected shape", id)
	}
}
