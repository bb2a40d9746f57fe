package dump

import (
	"bytes"

	svg "github.com/ajstarks/svgo"

	"github.com/nllgo/regioninfer/mir"
	"github.com/nllgo/regioninfer/region"
)

// SVGOptions configures the CFG visualization.
type SVGOptions struct {
	Width      int
	Height     int
	NodeRadius int
	ColStep    int
	RowStep    int
	Margin     int
	Title      string
}

// DefaultSVGOptions returns sensible default layout parameters.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1000,
		Height:     700,
		NodeRadius: 14,
		ColStep:    120,
		RowStep:    80,
		Margin:     60,
		Title:      "CFG",
	}
}

// WriteSVG renders body's CFG, one row per block and one column per
// statement, with the points contained in highlight's solved value
// filled in a distinct color from the rest.
func WriteSVG(ctx Querier, highlight region.Vid, opts SVGOptions) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 1000
	}
	if opts.Height <= 0 {
		opts.Height = 700
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 14
	}
	if opts.ColStep <= 0 {
		opts.ColStep = 120
	}
	if opts.RowStep <= 0 {
		opts.RowStep = 80
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	body := ctx.Elements().Body()

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")

	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin/2, opts.Title, "font-size:18px;font-family:sans-serif")
	}

	for b := 0; b < body.NumBlocks(); b++ {
		y := opts.Margin + b*opts.RowStep
		for s := 0; s < body.NumStatements(b); s++ {
			x := opts.Margin + s*opts.ColStep
			loc := mir.Location{Block: b, Stmt: s}
			style := "fill:#cccccc;stroke:#333333"
			if ctx.RegionContainsPoint(highlight, loc) {
				style = "fill:#2a9d8f;stroke:#264653"
			}
			canvas.Circle(x, y, opts.NodeRadius, style)
			canvas.Text(x, y+opts.NodeRadius+14, loc.String(), "font-size:11px;font-family:sans-serif;text-anchor:middle")

			if s+1 < body.NumStatements(b) {
				canvas.Line(x, y, x+opts.ColStep, y, "stroke:#999999")
			}
		}
		for _, succ := range body.BlockSuccessors(b) {
			fromX := opts.Margin + (body.NumStatements(b)-1)*opts.ColStep
			toX := opts.Margin
			canvas.Line(fromX, y, toX, opts.Margin+succ*opts.RowStep, "stroke:#999999;stroke-dasharray:4,2")
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}
