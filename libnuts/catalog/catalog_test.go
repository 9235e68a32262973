package catalog_test

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
	"github.com/possibly-wrong/drive-ya-nuts/libnuts/catalog"
)

func collectHits(cat gonuts.Catalog, sel gonuts.PuzzleSelector) []gonuts.PuzzleHit {
	onHit := make(chan gonuts.PuzzleHit, 4)
	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	var hits []gonuts.PuzzleHit
	for hit := range onHit {
		hits = append(hits, hit)
	}
	return hits
}

func TestCatalogBasics(t *testing.T) {
	ctx := gonuts.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	dbPath := path.Join(t.TempDir(), "TestCatalogBasics")
	cat, err := catalog.OpenCatalog(ctx, gonuts.CatalogOpts{DbPathName: dbPath})
	require.NoError(t, err)

	tile := gonuts.Tile{0, 2, 1, 4, 3, 5}
	withTile := gonuts.Pack(gonuts.Puzzle{tile, tile, tile, tile, tile, tile, tile})

	require.True(t, cat.TryAddPuzzle(withTile, 2))
	require.False(t, cat.TryAddPuzzle(withTile, 2), "second add must be a no-op")
	require.True(t, cat.TryAddPuzzle(0x0100000000000000|withTile, 1))
	require.True(t, cat.TryAddPuzzle(gonuts.PuzzleID(0x77), 5))

	require.Equal(t, uint64(3), cat.NumPuzzles())
	require.Equal(t, gonuts.Histogram{1: 1, 2: 1, 5: 1}, cat.Counts())

	// Select everything: ascending id order.
	hits := collectHits(cat, gonuts.DefaultPuzzleSelector)
	require.Len(t, hits, 3)
	require.Equal(t, gonuts.PuzzleID(0x77), hits[0].ID)

	// Restrict to puzzles containing the tile's shape.
	sel := gonuts.PuzzleSelector{MustContain: true, Contains: tile.Shape()}
	hits = collectHits(cat, sel)
	require.Len(t, hits, 2)

	// Restrict by solution count.
	hits = collectHits(cat, gonuts.PuzzleSelector{MinSolutions: 2, MaxSolutions: 2})
	require.Len(t, hits, 1)
	require.Equal(t, uint32(2), hits[0].Solutions)

	require.NoError(t, cat.Close())

	// Reopen read-only: state survives, adds are refused.
	cat, err = catalog.OpenCatalog(ctx, gonuts.CatalogOpts{DbPathName: dbPath, ReadOnly: true})
	require.NoError(t, err)
	require.True(t, cat.IsReadOnly())
	require.Equal(t, uint64(3), cat.NumPuzzles())
	require.False(t, cat.TryAddPuzzle(gonuts.PuzzleID(0x99), 1))
	require.NoError(t, cat.Close())
}

func TestCatalogInMemory(t *testing.T) {
	ctx := gonuts.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	cat, err := catalog.OpenCatalog(ctx, gonuts.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	require.False(t, cat.IsReadOnly())
	require.True(t, cat.TryAddPuzzle(42, 1))
	require.Equal(t, uint64(1), cat.NumPuzzles())
}

func TestCatalogBadParams(t *testing.T) {
	ctx := gonuts.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	_, err := catalog.OpenCatalog(ctx, gonuts.CatalogOpts{ReadOnly: true})
	require.ErrorIs(t, err, gonuts.ErrBadCatalogParam)
}
