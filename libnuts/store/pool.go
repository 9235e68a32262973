package store

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
)

// GenerateOpts specifies params for a full generation run.
type GenerateOpts struct {
	Dir        string // artifact directory, created if absent
	NumWorkers int    // 0 denotes runtime.NumCPU()
}

// GenerateAll runs SavePuzzles for each of the 120 canonical centers across a
// fixed pool of workers drawing from a shared task queue.  Centers are fully
// independent units: workers share no mutable generation state and each
// writes its own artifact.
//
// A failed center aborts only its own unit; the remaining centers still run
// and the failures are reported at the end so they can be retried
// individually.
func GenerateAll(opts GenerateOpts) error {
	centers := gonuts.CenterTiles()

	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(centers) {
		numWorkers = len(centers)
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return errors.Wrap(err, "creating artifact dir")
	}

	type result struct {
		center gonuts.Tile
		numIDs int64
		err    error
	}

	tasks := make(chan gonuts.Tile)
	results := make(chan result)

	var wg sync.WaitGroup
	for wi := 0; wi < numWorkers; wi++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for center := range tasks {
				numIDs, err := SavePuzzles(opts.Dir, center)
				results <- result{center, numIDs, err}
			}
		}()
	}

	go func() {
		for _, center := range centers {
			tasks <- center
		}
		close(tasks)
		wg.Wait()
		close(results)
	}()

	var failed []string
	completed := 0
	for res := range results {
		if res.err != nil {
			klog.Errorf("center %v failed: %v", res.center, res.err)
			failed = append(failed, res.center.String())
			continue
		}
		completed++
		klog.Infof("%d of %d completed (center %v, %d ids)",
			completed, len(centers), res.center, res.numIDs)
	}

	if len(failed) > 0 {
		return errors.Errorf("generation failed for %d center(s): %s",
			len(failed), strings.Join(failed, ","))
	}
	return nil
}
