// The regioninfer-dump command loads a fixture program, runs it through
// the region inference engine, and prints the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nllgo/regioninfer/dump"
	"github.com/nllgo/regioninfer/fixture"
	"github.com/nllgo/regioninfer/region"
)

var (
	svgFlag    = flag.String("svg", "", "write an SVG visualization of one region's value to this path")
	regionFlag = flag.Int("region", -1, "region.Vid to visualize with -svg (defaults to the fn-body region)")
	quietFlag  = flag.Bool("q", false, "suppress the region-value table")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [<flag> ...] <fixture.yaml>

Loads a region-inference fixture, solves it, and reports the outcome.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(path string) int {
	prog, err := fixture.LoadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, universal, _, err := prog.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	req, log := ctx.Solve(prog.IsClosure, prog.NumExternalVids)

	if log.ContainsErrors() {
		fmt.Fprint(os.Stderr, log.String())
	}

	if len(req.Items) > 0 {
		fmt.Printf("propagated %d closure requirement(s)\n", len(req.Items))
	}

	if !*quietFlag {
		names := make([]string, 0, len(universal.Named()))
		vids := make([]region.Vid, 0, len(universal.Named()))
		for _, n := range universal.Named() {
			names = append(names, n.Name)
			vids = append(vids, n.Vid)
		}
		nameOf := func(v region.Vid) string {
			for i, nv := range vids {
				if nv == v {
					return names[i]
				}
			}
			return fmt.Sprintf("'_%d", v)
		}
		dump.WriteTable(os.Stdout, ctx, vids, nameOf)
	}

	if *svgFlag != "" {
		target := region.Vid(*regionFlag)
		if *regionFlag < 0 {
			target = universal.FrFnBody()
		}
		data, err := dump.WriteSVG(ctx, target, dump.DefaultSVGOptions())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := os.WriteFile(*svgFlag, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if log.ContainsErrors() {
		return 1
	}
	return 0
}
