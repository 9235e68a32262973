package libnuts

import (
	"math/bits"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

// The six orderings of three free marks.
var gPerm3 = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// EnumPuzzles generates every packed puzzle admitting at least one solved
// arrangement with the given tile as center.  The center is canonicalized to
// its 0-aligned form first.  onID returns false to stop early.
//
// Rather than enumerating all 6!×6^6 rings, the search factors each ring tile
// into 3 forced edges and 3 free ones.  For every candidate matching sequence
// (the ordered center-facing marks of the six ring positions), ring tile k is
// forced to carry the triple (matching[k], center[k], matching[k-1]); its
// remaining three marks permute freely.  A triple with a repeated mark rules
// out the whole matching before any tile is formed.
//
// Distinct (matching, permutation) choices may collapse to the same id after
// packing; duplicates are emitted as-is and folded in downstream.
func EnumPuzzles(center gonuts.Tile, onID func(id gonuts.PuzzleID) bool) error {
	if err := center.Validate(); err != nil {
		return err
	}
	center = center.MustAlign(0)
	centerShape := center.Shape()

	var matching [gonuts.RingSize]gonuts.Mark
	for {
		if cands, ok := ringCandidates(matching, center); ok {
			if !emitProducts(centerShape, &cands, onID) {
				return nil
			}
		}

		// Advance the matching odometer.
		k := 0
		for ; k < gonuts.RingSize; k++ {
			matching[k]++
			if matching[k] < gonuts.NumMarks {
				break
			}
			matching[k] = 0
		}
		if k == gonuts.RingSize {
			return nil
		}
	}
}

// ringCandidates derives, per ring position, the shapes of the six tiles that
// realize the forced triple (matching[k], center[k], matching[k-1]) followed
// by one of the 3! orderings of the remaining marks.  ok is false when any
// position's triple has fewer than 3 distinct marks, which invalidates the
// whole matching sequence.
func ringCandidates(matching [gonuts.RingSize]gonuts.Mark, center gonuts.Tile) (cands [gonuts.RingSize][6]gonuts.TileShape, ok bool) {
	for k := 0; k < gonuts.RingSize; k++ {
		prev := (k + gonuts.RingSize - 1) % gonuts.RingSize
		a, b, c := matching[k], center[k], matching[prev]

		inner := uint(1<<a | 1<<b | 1<<c)
		if bits.OnesCount(inner) != 3 {
			return cands, false
		}

		var free [3]gonuts.Mark
		n := 0
		for m := gonuts.Mark(0); m < gonuts.NumMarks; m++ {
			if inner&(1<<m) == 0 {
				free[n] = m
				n++
			}
		}

		for p, perm := range gPerm3 {
			tile := gonuts.Tile{a, b, c, free[perm[0]], free[perm[1]], free[perm[2]]}
			cands[k][p] = tile.Shape()
		}
	}
	return cands, true
}

// emitProducts walks the Cartesian product of the candidate shapes across the
// six ring positions, packing each completed ring with the fixed center.
func emitProducts(centerShape gonuts.TileShape, cands *[gonuts.RingSize][6]gonuts.TileShape, onID func(gonuts.PuzzleID) bool) bool {
	var shapes [gonuts.PuzzleSize]gonuts.TileShape
	shapes[gonuts.CenterPos] = centerShape

	for _, s0 := range cands[0] {
		shapes[0] = s0
		for _, s1 := range cands[1] {
			shapes[1] = s1
			for _, s2 := range cands[2] {
				shapes[2] = s2
				for _, s3 := range cands[3] {
					shapes[3] = s3
					for _, s4 := range cands[4] {
						shapes[4] = s4
						for _, s5 := range cands[5] {
							shapes[5] = s5
							if !onID(gonuts.PackShapes(shapes)) {
								return false
							}
						}
					}
				}
			}
		}
	}
	return true
}
