// Package store persists the per-center streams of packed puzzle ids as
// sorted binary artifacts and merges them into the final solution-count
// histogram.
package store

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
	"github.com/possibly-wrong/drive-ya-nuts/libnuts"
)

const artifactExt = ".nuts"

// ArtifactName returns the deterministic file name for a center's artifact,
// keyed by the canonicalized center's mark sequence.
func ArtifactName(center gonuts.Tile) string {
	return center.MustAlign(0).String() + artifactExt
}

// ArtifactPath returns the full path of a center's artifact under dir.
func ArtifactPath(dir string, center gonuts.Tile) string {
	return filepath.Join(dir, ArtifactName(center))
}

// SavePuzzles materializes all puzzles solvable with the given center, sorts
// them ascending, and writes them as fixed 8-byte big-endian records.
// Returns the number of records written.
//
// Duplicate ids from the generator are deliberately kept: the merge phase
// folds intra-center repeats into the multiplicity count.
func SavePuzzles(dir string, center gonuts.Tile) (int64, error) {
	var ids []gonuts.PuzzleID
	err := libnuts.EnumPuzzles(center, func(id gonuts.PuzzleID) bool {
		ids = append(ids, id)
		return true
	})
	if err != nil {
		return 0, errors.Wrapf(err, "generating puzzles for center %v", center)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if err := writeArtifact(ArtifactPath(dir, center), ids); err != nil {
		return 0, errors.Wrapf(err, "writing artifact for center %v", center)
	}
	return int64(len(ids)), nil
}

// writeArtifact writes the given ids as fixed 8-byte big-endian records.
// The artifact only appears under its final name once fully written, so a
// partially generated file is never mistaken for a ready one.
func writeArtifact(finalPath string, ids []gonuts.PuzzleID) error {
	tmpPath := finalPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	w := bufio.NewWriterSize(f, 1<<20)
	var rec [gonuts.PuzzleIDSz]byte
	for _, id := range ids {
		binary.BigEndian.PutUint64(rec[:], uint64(id))
		if _, err = w.Write(rec[:]); err != nil {
			break
		}
	}
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, finalPath)
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Reader streams one center's artifact back in sorted order without loading
// it into memory.
type Reader struct {
	center gonuts.Tile
	f      *os.File
	r      *bufio.Reader
	numIDs int64
}

// OpenPuzzles opens the artifact written by SavePuzzles for the given center.
// A missing artifact returns ErrMissingArtifact; a file whose size is not a
// multiple of the record width returns ErrShortArtifact.
func OpenPuzzles(dir string, center gonuts.Tile) (*Reader, error) {
	path := ArtifactPath(dir, center)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(gonuts.ErrMissingArtifact, path)
		}
		return nil, errors.Wrap(err, path)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, path)
	}
	if info.Size()%gonuts.PuzzleIDSz != 0 {
		f.Close()
		return nil, errors.Wrapf(gonuts.ErrShortArtifact, "%s: %d bytes", path, info.Size())
	}

	return &Reader{
		center: center,
		f:      f,
		r:      bufio.NewReaderSize(f, 1<<16),
		numIDs: info.Size() / gonuts.PuzzleIDSz,
	}, nil
}

// Center returns the center tile this artifact belongs to.
func (r *Reader) Center() gonuts.Tile {
	return r.center
}

// NumIDs returns the total number of records in the artifact.
func (r *Reader) NumIDs() int64 {
	return r.numIDs
}

// Next returns the next id, or ok == false at end of artifact.
func (r *Reader) Next() (id gonuts.PuzzleID, ok bool, err error) {
	var rec [gonuts.PuzzleIDSz]byte
	if _, err = io.ReadFull(r.r, rec[:]); err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(gonuts.ErrShortArtifact, "center %v: %v", r.center, err)
	}
	id, err = gonuts.ReadPuzzleID(rec[:])
	return id, err == nil, err
}

// Close releases the underlying file.  Safe to call more than once.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// StreamPuzzles streams the artifact for the given center as a lazy sequence.
func StreamPuzzles(dir string, center gonuts.Tile) (*libnuts.PuzzleIDStream, error) {
	r, err := OpenPuzzles(dir, center)
	if err != nil {
		return nil, err
	}

	stream := &libnuts.PuzzleIDStream{
		Outlet: make(chan gonuts.PuzzleID, 64),
	}

	go func() {
		defer r.Close()
		for {
			id, ok, err := r.Next()
			if err != nil {
				panic(err)
			}
			if !ok {
				break
			}
			stream.Outlet <- id
		}
		close(stream.Outlet)
	}()

	return stream, nil
}
