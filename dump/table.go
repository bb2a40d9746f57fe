// Package dump renders a solved inference context for humans: a
// colorized per-region membership table (fatih/color) and an SVG graph of
// the CFG (ajstarks/svgo, grounded on pkg/export/svg.go's layout style).
package dump

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
)

// Querier is the subset of infer.Context a dump needs: which points a
// solved region contains, and its element table.
type Querier interface {
	Elements() *region.Elements
	RegionContainsPoint(v region.Vid, p mir.Location) bool
}

// WriteTable prints, for each of the given regions, every CFG point it
// contains, with membership highlighted the way a passing/failing check
// would be in a CLI: green for "contains", a plain dot otherwise.
func WriteTable(w io.Writer, ctx Querier, vids []region.Vid, names func(region.Vid) string) {
	green := color.New(color.FgGreen)
	locs := mir.AllLocations(ctx.Elements().Body())

	fmt.Fprintf(w, "%-10s", "")
	for _, loc := range locs {
		fmt.Fprintf(w, "%-8s", loc.String())
	}
	fmt.Fprintln(w)

	for _, v := range vids {
		fmt.Fprintf(w, "%-10s", names(v))
		for _, loc := range locs {
			if ctx.RegionContainsPoint(v, loc) {
				green.Fprintf(w, "%-8s", "*")
			} else {
				fmt.Fprintf(w, "%-8s", ".")
			}
		}
		fmt.Fprintln(w)
	}
}
