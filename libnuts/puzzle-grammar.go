package libnuts

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

// PuzzleExpr is the text notation for a puzzle: seven 6-digit tiles, ring
// positions first and center last, separated by spaces or commas, e.g.
//
//	250341 053241 014253 021543 032451 045132 012345
type PuzzleExpr struct {
	Tiles []string `parser:"@Int (\",\"? @Int)*"`
}

var parsePuzzleExpr = participle.MustBuild[PuzzleExpr]()

// ParsePuzzle reads a Puzzle from its text notation.
func ParsePuzzle(expr string) (gonuts.Puzzle, error) {
	ast, err := parsePuzzleExpr.ParseString("", expr)
	if err != nil {
		return gonuts.Puzzle{}, errors.Wrapf(gonuts.ErrBadPuzzleExpr, "%v", err)
	}
	if len(ast.Tiles) != gonuts.PuzzleSize {
		return gonuts.Puzzle{}, errors.Wrapf(gonuts.ErrBadPuzzleExpr,
			"expected %d tiles, got %d", gonuts.PuzzleSize, len(ast.Tiles))
	}

	var puzzle gonuts.Puzzle
	for i, str := range ast.Tiles {
		tile, err := gonuts.ParseTile(str)
		if err != nil {
			return gonuts.Puzzle{}, errors.Wrapf(err, "tile #%d %q", i+1, str)
		}
		puzzle[i] = tile
	}
	return puzzle, nil
}
