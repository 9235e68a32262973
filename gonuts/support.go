package gonuts

import (
	"encoding/binary"
	"sort"
	"sync"
)

// Histogram maps a solution count to the number of distinct puzzles having
// exactly that many solutions.
type Histogram map[uint32]uint64

// HistogramEntry is one histogram bucket.
type HistogramEntry struct {
	Solutions uint32
	Puzzles   uint64
}

// Add folds n distinct puzzles with the given solution count into this histogram.
func (h Histogram) Add(solutions uint32, n uint64) {
	h[solutions] += n
}

// Total returns the number of distinct solvable puzzles.
func (h Histogram) Total() uint64 {
	total := uint64(0)
	for _, n := range h {
		total += n
	}
	return total
}

// Pairs returns the number of (puzzle, solving center) pairs folded into this
// histogram, i.e. the sum of solution-count x bucket-size.  Conservation: this
// equals the total number of ids generated across all centers.
func (h Histogram) Pairs() uint64 {
	pairs := uint64(0)
	for solutions, n := range h {
		pairs += uint64(solutions) * n
	}
	return pairs
}

// Buckets returns the histogram entries in ascending solution-count order.
func (h Histogram) Buckets() []HistogramEntry {
	buckets := make([]HistogramEntry, 0, len(h))
	for solutions, n := range h {
		buckets = append(buckets, HistogramEntry{Solutions: solutions, Puzzles: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Solutions < buckets[j].Solutions
	})
	return buckets
}

// CatalogState is the persistent header record of a puzzle Catalog.
type CatalogState struct {
	MajorVers  int32
	MinorVers  int32
	NumPuzzles uint64
	Counts     Histogram
}

// Marshal appends the binary encoding of this state: a fixed sequence of
// uvarints followed by (solutions, puzzles) uvarint pairs in ascending order.
func (state *CatalogState) Marshal(buf []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(state.MajorVers))
	buf = binary.AppendUvarint(buf, uint64(state.MinorVers))
	buf = binary.AppendUvarint(buf, state.NumPuzzles)
	buckets := state.Counts.Buckets()
	buf = binary.AppendUvarint(buf, uint64(len(buckets)))
	for _, bucket := range buckets {
		buf = binary.AppendUvarint(buf, uint64(bucket.Solutions))
		buf = binary.AppendUvarint(buf, bucket.Puzzles)
	}
	return buf
}

// Unmarshal assigns this state from an encoding made by Marshal.
func (state *CatalogState) Unmarshal(src []byte) error {
	fields := [3]uint64{}
	for i := range fields {
		v, n := binary.Uvarint(src)
		if n <= 0 {
			return ErrUnmarshal
		}
		fields[i] = v
		src = src[n:]
	}
	state.MajorVers = int32(fields[0])
	state.MinorVers = int32(fields[1])
	state.NumPuzzles = fields[2]

	numBuckets, n := binary.Uvarint(src)
	if n <= 0 {
		return ErrUnmarshal
	}
	src = src[n:]

	state.Counts = make(Histogram, numBuckets)
	for i := uint64(0); i < numBuckets; i++ {
		solutions, n := binary.Uvarint(src)
		if n <= 0 {
			return ErrUnmarshal
		}
		src = src[n:]
		puzzles, n := binary.Uvarint(src)
		if n <= 0 {
			return ErrUnmarshal
		}
		src = src[n:]
		state.Counts[uint32(solutions)] = puzzles
	}
	return nil
}

// NewCatalogContext returns a CatalogContext ready to track open catalogs.
func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.closing
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	close(ctx.closing)
	ctx.mu.Lock()
	for cat := range ctx.openCatalogs {
		go cat.Close()
	}
	ctx.mu.Unlock()
}
