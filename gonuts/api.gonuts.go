package gonuts

const (

	// NumMarks is the size of the mark alphabet, which is also the number of
	// edges on every tile.
	NumMarks = 6

	// RingSize is the number of tiles surrounding the center.
	RingSize = 6

	// PuzzleSize is the total number of tiles in a puzzle: a ring of six
	// around one center tile.
	PuzzleSize = 7

	// CenterPos is the Puzzle index of the center tile.
	CenterPos = 6

	// NumShapes is the number of distinct 0-aligned tiles: the 5! permutations
	// of the marks following the leading 0.
	NumShapes = 120
)

// Mark is a symbol from the fixed alphabet [0, NumMarks) labeling one tile edge.
type Mark byte

// Tile is a hexagonal nut: a permutation of the six marks read counterclockwise
// around one face.  Tiles are values; rotation produces a new Tile.
type Tile [NumMarks]Mark

// TileShape is the canonical index of a tile in [0, NumShapes): the
// lexicographic rank of its 5-mark tail once the tile is 0-aligned.
// A TileShape identifies a tile up to rotation.
type TileShape byte

// Puzzle is seven tiles: positions 0..5 form the ring (position k faces edge k
// of the center through its own edge 0), position 6 is the center.
type Puzzle [PuzzleSize]Tile

// PuzzleID is the order-independent 64-bit encoding of a puzzle: the seven
// TileShapes sorted ascending, packed big-endian into the low 7 bytes.
// Two physical puzzles whose multisets of canonicalized tiles coincide map to
// the same PuzzleID.
type PuzzleID uint64

// PuzzleIDSz is the wire size of a PuzzleID in artifact files and catalog keys.
const PuzzleIDSz = 8

// PuzzleHit is one solvable puzzle paired with its solution count (the number
// of center assignments that admit a solved arrangement).
type PuzzleHit struct {
	ID        PuzzleID
	Solutions uint32
}

// OnPuzzleHit is a callback channel used to return puzzles meeting a set of
// selection criteria.
type OnPuzzleHit chan<- PuzzleHit

// PuzzleAdder accepts merged (PuzzleID, solution count) pairs from the
// aggregation phase.
type PuzzleAdder interface {

	// Tries to add the given puzzle to this catalog.
	// If true is returned, the puzzle did not exist and was added.
	TryAddPuzzle(id PuzzleID, solutions uint32) bool
}

// Catalog wraps a database of solvable puzzle encodings.
type Catalog interface {
	PuzzleAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumPuzzles returns the number of distinct puzzles added so far.
	NumPuzzles() uint64

	// Counts returns the catalog's histogram of solution count vs. number of
	// distinct puzzles having that count.
	Counts() Histogram

	// Select fires the given callback channel with every cataloged puzzle
	// meeting the selection criteria.
	Select(sel PuzzleSelector, onHit OnPuzzleHit)

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Signals all open catalogs to close, then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed.
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a puzzle Catalog.
type CatalogOpts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
}

// PuzzleSelector is an operator that either selects a given puzzle or not.
type PuzzleSelector struct {
	MinSolutions uint32 // lower solution-count bound (inclusive)
	MaxSolutions uint32 // upper solution-count bound (inclusive, 0 denotes no bound)

	// If set, only puzzles containing the given tile shape are selected.
	MustContain bool
	Contains    TileShape
}

// SelectsHit returns whether the given hit meets this selector's criteria.
func (sel *PuzzleSelector) SelectsHit(hit PuzzleHit) bool {
	if hit.Solutions < sel.MinSolutions {
		return false
	}
	if sel.MaxSolutions > 0 && hit.Solutions > sel.MaxSolutions {
		return false
	}
	if sel.MustContain && !hit.ID.ContainsShape(sel.Contains) {
		return false
	}
	return true
}

// DefaultPuzzleSelector selects every cataloged puzzle.
var DefaultPuzzleSelector = PuzzleSelector{}
