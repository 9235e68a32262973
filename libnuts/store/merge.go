package store

import (
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/pkg/errors"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

// mergeSource is one open artifact together with its pending (smallest
// unconsumed) id.  Only one pending value per center is ever held in memory.
type mergeSource struct {
	pending gonuts.PuzzleID
	ord     int
	r       *Reader
}

func sourceComparator(a, b interface{}) int {
	sa, sb := a.(*mergeSource), b.(*mergeSource)
	if sa.pending != sb.pending {
		if sa.pending < sb.pending {
			return -1
		}
		return 1
	}
	return sa.ord - sb.ord
}

// Tally merges all per-center artifacts under dir in ascending id order,
// counts the run length of each repeated id (= how many center assignments
// solve that puzzle), and returns the histogram of solution count vs. number
// of distinct puzzles.
//
// Every merged (id, run length) pair is also offered to addTo when non-nil.
//
// A missing or truncated artifact aborts the whole tally: partial data would
// silently understate every count.
func Tally(dir string, addTo gonuts.PuzzleAdder) (gonuts.Histogram, error) {
	return TallyCenters(dir, gonuts.CenterTiles(), addTo)
}

// TallyCenters is Tally restricted to the given center tiles, counting only
// the center assignments drawn from that subset.
func TallyCenters(dir string, centers []gonuts.Tile, addTo gonuts.PuzzleAdder) (gonuts.Histogram, error) {
	readers := make([]*Reader, 0, len(centers))
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	heap := binaryheap.NewWith(sourceComparator)
	for ord, center := range centers {
		r, err := OpenPuzzles(dir, center)
		if err != nil {
			return nil, err
		}
		readers = append(readers, r)

		id, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if ok {
			heap.Push(&mergeSource{pending: id, ord: ord, r: r})
		}
	}

	hist := make(gonuts.Histogram)
	current := gonuts.PuzzleID(0)
	runLen := uint32(0)

	flush := func() {
		if runLen == 0 {
			return
		}
		hist.Add(runLen, 1)
		if addTo != nil {
			addTo.TryAddPuzzle(current, runLen)
		}
	}

	for !heap.Empty() {
		v, _ := heap.Pop()
		src := v.(*mergeSource)

		if runLen == 0 || src.pending != current {
			flush()
			current = src.pending
			runLen = 1
		} else {
			runLen++
		}

		id, ok, err := src.r.Next()
		if err != nil {
			return nil, err
		}
		if ok {
			if id < src.pending {
				return nil, errors.Wrapf(gonuts.ErrShortArtifact,
					"artifact for center %v is not sorted", src.r.Center())
			}
			src.pending = id
			heap.Push(src)
		}
	}
	flush()

	return hist, nil
}
