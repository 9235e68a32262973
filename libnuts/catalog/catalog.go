// Package catalog wraps a badger database of solvable puzzles keyed by their
// canonical ids, each paired with its solution count.  It lets the merged
// tally be queried afterwards (e.g. the histogram restricted to puzzles
// containing a given tile) without re-running the merge.
package catalog

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

/***

Catalog database format:

	gCatalogStateKey                     => CatalogState (varint record)
	gPuzzleKeyPrefix, PuzzleID (8B BE)   => solution count (uvarint)
	...

Puzzle keys iterate in ascending id order since the big-endian encoding makes
lexicographic order match numeric order.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gPuzzleKeyPrefix = []byte{0x01}
)

const (
	kMajorVers = 2026
	kMinorVers = 1
)

type catalog struct {
	ctx        gonuts.CatalogContext
	readOnly   bool
	stateDirty bool
	state      gonuts.CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) a puzzle catalog per the given opts and
// attaches it to ctx.  An empty DbPathName opens an in-memory catalog.
func OpenCatalog(ctx gonuts.CatalogContext, opts gonuts.CatalogOpts) (gonuts.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single writer, so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gonuts.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the context holds this catalog until it closes.
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
		cat.state.Counts = make(gonuts.Histogram)
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = gonuts.ErrCatalogVersion
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumPuzzles() uint64 {
	return cat.state.NumPuzzles
}

func (cat *catalog) Counts() gonuts.Histogram {
	counts := make(gonuts.Histogram, len(cat.state.Counts))
	for solutions, n := range cat.state.Counts {
		counts[solutions] = n
	}
	return counts
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.readOnly {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal(nil))
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
}

func (cat *catalog) Close() error {
	cat.flushState()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return nil
}

func puzzleKey(buf []byte, id gonuts.PuzzleID) []byte {
	buf = append(buf, gPuzzleKeyPrefix...)
	return id.AppendTo(buf)
}

// TryAddPuzzle adds the given puzzle if not already present.
//
// If true is returned, the puzzle was not present and was added, and the
// catalog's histogram was advanced accordingly.
func (cat *catalog) TryAddPuzzle(id gonuts.PuzzleID, solutions uint32) bool {
	if cat.readOnly {
		return false
	}

	var keyBuf [16]byte
	key := puzzleKey(keyBuf[:0], id)

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		panic(err)
	}

	var valBuf [binary.MaxVarintLen32]byte
	val := binary.AppendUvarint(valBuf[:0], uint64(solutions))
	if err = txn.Set(key, val); err != nil {
		panic(err)
	}
	if err = txn.Commit(); err != nil {
		panic(err)
	}

	cat.state.NumPuzzles++
	cat.state.Counts.Add(solutions, 1)
	cat.stateDirty = true
	return true
}

// Select fires onHit with every cataloged puzzle meeting the selection
// criteria, in ascending id order.
func (cat *catalog) Select(sel gonuts.PuzzleSelector, onHit gonuts.OnPuzzleHit) {
	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   300,
		Prefix:         gPuzzleKeyPrefix,
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()

		id, err := gonuts.ReadPuzzleID(item.Key()[len(gPuzzleKeyPrefix):])
		if err != nil {
			panic(err)
		}

		hit := gonuts.PuzzleHit{ID: id}
		err = item.Value(func(val []byte) error {
			solutions, n := binary.Uvarint(val)
			if n <= 0 {
				return gonuts.ErrUnmarshal
			}
			hit.Solutions = uint32(solutions)
			return nil
		})
		if err != nil {
			panic(err)
		}

		if sel.SelectsHit(hit) {
			onHit <- hit
		}
	}
}
