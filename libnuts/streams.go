package libnuts

import (
	"fmt"
	"io"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

// SolutionStream delivers solved arrangements as they are found.
type SolutionStream struct {
	Outlet chan gonuts.Puzzle
}

// AllSolutions generates all solutions of the given puzzle.
func AllSolutions(puzzle gonuts.Puzzle) *SolutionStream {
	stream := &SolutionStream{
		Outlet: make(chan gonuts.Puzzle, 1),
	}

	go func() {
		EnumSolutions(puzzle, func(solved gonuts.Puzzle) bool {
			stream.Outlet <- solved
			return true
		})
		close(stream.Outlet)
	}()

	return stream
}

// PullAll drains this stream, returning how many solutions it carried.
func (stream *SolutionStream) PullAll() int {
	count := 0
	for range stream.Outlet {
		count++
	}
	return count
}

// Print relays this stream while writing each arrangement to out.
func (stream *SolutionStream) Print(out io.Writer, label string) *SolutionStream {
	next := &SolutionStream{
		Outlet: make(chan gonuts.Puzzle, 1),
	}

	go func() {
		count := 0
		for solved := range stream.Outlet {
			count++
			fmt.Fprintf(out, "%s,%06d,%v\n", label, count, solved)
			next.Outlet <- solved
		}
		close(next.Outlet)
	}()

	return next
}

// PuzzleIDStream delivers packed puzzle ids as they are generated.
type PuzzleIDStream struct {
	Outlet chan gonuts.PuzzleID
}

// AllPuzzles generates all packed puzzles solvable with the given center.
func AllPuzzles(center gonuts.Tile) (*PuzzleIDStream, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	stream := &PuzzleIDStream{
		Outlet: make(chan gonuts.PuzzleID, 64),
	}

	go func() {
		EnumPuzzles(center, func(id gonuts.PuzzleID) bool {
			stream.Outlet <- id
			return true
		})
		close(stream.Outlet)
	}()

	return stream, nil
}

// PullAll drains this stream, returning how many ids it carried.
func (stream *PuzzleIDStream) PullAll() int64 {
	count := int64(0)
	for range stream.Outlet {
		count++
	}
	return count
}
