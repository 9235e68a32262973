package libnuts

import (
	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

// EnumSolutions finds every solved arrangement of the given seven tiles: each
// distinct (center choice, ring order, ring rotation) satisfying the matching
// constraints.  onHit returns false to stop the enumeration early.
//
// Candidate orderings are 0-aligned before permuting so that tiles of
// identical shape do not produce duplicate solutions.
func EnumSolutions(puzzle gonuts.Puzzle, onHit func(solved gonuts.Puzzle) bool) {
	var nuts gonuts.Puzzle
	for i, tile := range puzzle {
		nuts[i] = tile.MustAlign(0)
	}

	seen := make(map[gonuts.Puzzle]struct{})

	var walk func(k int) bool
	walk = func(k int) bool {
		if k == gonuts.PuzzleSize {
			if _, dup := seen[nuts]; dup {
				return true
			}
			seen[nuts] = struct{}{}
			if solved, arrangement := trySolve(nuts); solved {
				return onHit(arrangement)
			}
			return true
		}
		for i := k; i < gonuts.PuzzleSize; i++ {
			nuts[k], nuts[i] = nuts[i], nuts[k]
			keepGoing := walk(k + 1)
			nuts[k], nuts[i] = nuts[i], nuts[k]
			if !keepGoing {
				return false
			}
		}
		return true
	}
	walk(0)
}

// trySolve treats the last tile as center, rotates each ring candidate so its
// edge 0 faces the corresponding center mark, and checks the neighbor
// constraint ring[k][1] == ring[k-1][5] around the ring.
func trySolve(nuts gonuts.Puzzle) (bool, gonuts.Puzzle) {
	center := nuts[gonuts.CenterPos]

	var out gonuts.Puzzle
	out[gonuts.CenterPos] = center
	for k := 0; k < gonuts.RingSize; k++ {
		out[k] = nuts[k].MustAlign(center[k])
	}

	for k := 0; k < gonuts.RingSize; k++ {
		prev := (k + gonuts.RingSize - 1) % gonuts.RingSize
		if out[k][1] != out[prev][gonuts.NumMarks-1] {
			return false, gonuts.Puzzle{}
		}
	}
	return true, out
}
