package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

func mustTile(t *testing.T, str string) gonuts.Tile {
	tile, err := gonuts.ParseTile(str)
	require.NoError(t, err)
	return tile
}

func TestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	center := mustTile(t, "021435")

	ids := []gonuts.PuzzleID{3, 3, 17, 0x00010217380a5177, 0x7fffffffffffffff}
	require.NoError(t, writeArtifact(ArtifactPath(dir, center), ids))

	r, err := OpenPuzzles(dir, center)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, int64(len(ids)), r.NumIDs())
	require.Equal(t, center.MustAlign(0), r.Center())

	var got []gonuts.PuzzleID
	for {
		id, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, id)
	}
	require.Equal(t, ids, got, "records must read back in the same order, duplicates preserved")
}

func TestArtifactNameCanonicalizesCenter(t *testing.T) {
	// Two centers that are rotations of each other share one artifact.
	require.Equal(t,
		ArtifactName(mustTile(t, "021435")),
		ArtifactName(mustTile(t, "435021")))
}

func TestOpenPuzzlesMissing(t *testing.T) {
	_, err := OpenPuzzles(t.TempDir(), mustTile(t, "012345"))
	require.ErrorIs(t, err, gonuts.ErrMissingArtifact)
}

func TestOpenPuzzlesTruncated(t *testing.T) {
	dir := t.TempDir()
	center := mustTile(t, "012345")

	require.NoError(t, os.WriteFile(ArtifactPath(dir, center), make([]byte, 12), 0644))

	_, err := OpenPuzzles(dir, center)
	require.ErrorIs(t, err, gonuts.ErrShortArtifact)
}

func TestStreamPuzzles(t *testing.T) {
	dir := t.TempDir()
	center := mustTile(t, "012345")

	ids := []gonuts.PuzzleID{1, 2, 2, 5}
	require.NoError(t, writeArtifact(ArtifactPath(dir, center), ids))

	stream, err := StreamPuzzles(dir, center)
	require.NoError(t, err)

	var got []gonuts.PuzzleID
	for id := range stream.Outlet {
		got = append(got, id)
	}
	require.Equal(t, ids, got)
}
