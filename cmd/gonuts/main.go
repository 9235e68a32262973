package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/possibly-wrong/drive-ya-nuts/gonuts"
	"github.com/possibly-wrong/drive-ya-nuts/libnuts"
	"github.com/possibly-wrong/drive-ya-nuts/libnuts/catalog"
	"github.com/possibly-wrong/drive-ya-nuts/libnuts/store"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(args[1:])
	case "tally":
		err = runTally(args[1:])
	case "solve":
		err = runSolve(args[1:])
	case "query":
		err = runQuery(args[1:])
	default:
		usage()
	}

	if err != nil {
		klog.Fatalf("%v", err)
	}
	klog.Flush()
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gonuts <command> [flags]

commands:
  generate   generate one sorted artifact per canonical center tile
  tally      merge all artifacts into the solution-count histogram
  solve      print all solutions of one puzzle expression
  query      query a tally catalog for a restricted histogram`)
	os.Exit(2)
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dir := fs.String("dir", "puzzles", "artifact output directory")
	workers := fs.Int("workers", 0, "worker count (0 denotes NumCPU)")
	fs.Parse(args)

	return store.GenerateAll(store.GenerateOpts{
		Dir:        *dir,
		NumWorkers: *workers,
	})
}

// Reference totals for the full run (one artifact per each of the 120
// canonical centers):
//
//	3899636160 with  1 solutions.
//	 819638640 with  2 solutions.
//	 169424400 with  3 solutions.
//	  54822000 with  4 solutions.
//	  14079840 with  5 solutions.
//	   6587880 with  6 solutions.
//	   2049120 with  7 solutions.
//	    994080 with  8 solutions.
//	    317520 with  9 solutions.
//	    185760 with 10 solutions.
//	     77760 with 11 solutions.
//	     27240 with 12 solutions.
//	     13680 with 13 solutions.
//	      5040 with 14 solutions.
//	      1440 with 15 solutions.
//	      2160 with 16 solutions.
//	      1800 with 20 solutions.
//	4967864520 total unique puzzles.
func runTally(args []string) error {
	fs := flag.NewFlagSet("tally", flag.ExitOnError)
	dir := fs.String("dir", "puzzles", "artifact directory")
	dbPath := fs.String("catalog", "", "optional catalog db path to fill with the merged tally")
	fs.Parse(args)

	var addTo gonuts.PuzzleAdder
	if *dbPath != "" {
		ctx := gonuts.NewCatalogContext()
		cat, err := catalog.OpenCatalog(ctx, gonuts.CatalogOpts{
			DbPathName: *dbPath,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx.Close()
			<-ctx.Done()
		}()
		addTo = cat
	}

	hist, err := store.Tally(*dir, addTo)
	if err != nil {
		return err
	}
	printHistogram(hist)
	return nil
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	fs.Parse(args)

	puzzle, err := libnuts.ParsePuzzle(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	numSolutions := libnuts.AllSolutions(puzzle).Print(os.Stdout, "solution").PullAll()
	fmt.Printf("%d solution(s).\n", numSolutions)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	dbPath := fs.String("catalog", "", "catalog db path (required)")
	contains := fs.String("contains", "", "restrict to puzzles containing this tile, e.g. 012345")
	minSolutions := fs.Uint("min", 0, "minimum solution count")
	maxSolutions := fs.Uint("max", 0, "maximum solution count (0 denotes no bound)")
	fs.Parse(args)

	if *dbPath == "" {
		return gonuts.ErrBadCatalogParam
	}

	sel := gonuts.PuzzleSelector{
		MinSolutions: uint32(*minSolutions),
		MaxSolutions: uint32(*maxSolutions),
	}
	if *contains != "" {
		tile, err := gonuts.ParseTile(*contains)
		if err != nil {
			return err
		}
		sel.MustContain = true
		sel.Contains = tile.Shape()
	}

	ctx := gonuts.NewCatalogContext()
	cat, err := catalog.OpenCatalog(ctx, gonuts.CatalogOpts{
		DbPathName: *dbPath,
		ReadOnly:   true,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	onHit := make(chan gonuts.PuzzleHit, 64)
	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	hist := make(gonuts.Histogram)
	for hit := range onHit {
		hist.Add(hit.Solutions, 1)
	}
	printHistogram(hist)
	return nil
}

func printHistogram(hist gonuts.Histogram) {
	for _, bucket := range hist.Buckets() {
		fmt.Printf("%10d with %2d solutions.\n", bucket.Puzzles, bucket.Solutions)
	}
	fmt.Printf("%10d total unique puzzles.\n", hist.Total())
}
