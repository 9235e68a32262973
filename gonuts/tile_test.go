package gonuts

import (
	"errors"
	"testing"
)

var gT *testing.T

func TestAlign(t *testing.T) {
	gT = t
	tiles := []Tile{
		{0, 1, 2, 3, 4, 5},
		{2, 5, 0, 3, 4, 1},
		{5, 4, 3, 2, 1, 0},
	}

	for _, tile := range tiles {
		for mark := Mark(0); mark < NumMarks; mark++ {
			aligned, err := tile.Align(mark)
			if err != nil {
				gT.Fatalf("align %v to %d: %v", tile, mark, err)
			}
			if aligned[0] != mark {
				gT.Fatalf("align %v to %d produced %v", tile, mark, aligned)
			}
			back, err := aligned.Align(tile[0])
			if err != nil {
				gT.Fatal(err)
			}
			if back != tile {
				gT.Fatalf("align round trip %v -> %v -> %v", tile, aligned, back)
			}
		}
	}

	if _, err := tiles[0].Align(Mark(6)); !errors.Is(err, ErrMarkNotFound) {
		gT.Fatalf("expected ErrMarkNotFound, got %v", err)
	}
}

func TestShapeBijection(t *testing.T) {
	gT = t

	seen := make(map[Tile]TileShape, NumShapes)
	for shape := TileShape(0); shape < NumShapes; shape++ {
		tile := shape.Tile()
		if tile[0] != 0 {
			gT.Fatalf("shape %d tile %v is not 0-aligned", shape, tile)
		}
		if err := tile.Validate(); err != nil {
			gT.Fatalf("shape %d tile %v: %v", shape, tile, err)
		}
		if prev, dup := seen[tile]; dup {
			gT.Fatalf("shapes %d and %d both map to %v", prev, shape, tile)
		}
		seen[tile] = shape

		if got := tile.Shape(); got != shape {
			gT.Fatalf("tile %v: shape %d, expected %d", tile, got, shape)
		}
	}

	// Shape is rotation-invariant.
	tile := TileShape(73).Tile()
	for k := Mark(0); k < NumMarks; k++ {
		if tile.MustAlign(k).Shape() != 73 {
			gT.Fatalf("rotation of %v changed its shape", tile)
		}
	}
}

func TestCenterTiles(t *testing.T) {
	gT = t
	centers := CenterTiles()
	if len(centers) != NumShapes {
		gT.Fatalf("expected %d centers, got %d", NumShapes, len(centers))
	}
	if (centers[0] != Tile{0, 1, 2, 3, 4, 5}) {
		gT.Fatalf("first center should be the identity tile, got %v", centers[0])
	}
}

func TestTileValidation(t *testing.T) {
	gT = t

	if _, err := NewTile(0, 1, 2, 3, 4, 5); err != nil {
		gT.Fatal(err)
	}
	if _, err := NewTile(0, 1, 2, 3, 4); !errors.Is(err, ErrNotATile) {
		gT.Fatalf("expected ErrNotATile, got %v", err)
	}
	if _, err := NewTile(0, 1, 2, 3, 4, 4); !errors.Is(err, ErrNotATile) {
		gT.Fatalf("expected ErrNotATile, got %v", err)
	}
	if _, err := NewTile(0, 1, 2, 3, 4, 6); !errors.Is(err, ErrNotATile) {
		gT.Fatalf("expected ErrNotATile, got %v", err)
	}
}

func TestParseTile(t *testing.T) {
	gT = t

	tile, err := ParseTile("250341")
	if err != nil {
		gT.Fatal(err)
	}
	if (tile != Tile{2, 5, 0, 3, 4, 1}) {
		gT.Fatalf("parsed %v", tile)
	}
	if tile.String() != "250341" {
		gT.Fatalf("printed %q", tile.String())
	}

	for _, bad := range []string{"", "01234", "0123456", "012346", "012344", "01234x"} {
		if _, err := ParseTile(bad); err == nil {
			gT.Fatalf("expected error parsing %q", bad)
		}
	}
}
