package gonuts

import "errors"

// Errors
var (
	ErrNotATile        = errors.New("tile is not a permutation of the mark alphabet")
	ErrMarkNotFound    = errors.New("mark not present on tile")
	ErrBadShape        = errors.New("tile shape out of range")
	ErrBadPuzzleExpr   = errors.New("bad puzzle expression")
	ErrMissingArtifact = errors.New("per-center artifact not found")
	ErrShortArtifact   = errors.New("per-center artifact is truncated")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogVersion  = errors.New("catalog version is incompatible")
	ErrCatalogReadOnly = errors.New("catalog is read-only")
	ErrUnmarshal       = errors.New("unmarshal failed")
)
