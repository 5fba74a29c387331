package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/sunburst"
	"github.com/matzehuels/chartkit/pkg/waffle"
)

// SunburstPNG draws the sunburst described by p as a PNG without going
// through SVG. Scale multiplies the outer dimensions.
func SunburstPNG(p sunburst.Props, scale float64) ([]byte, error) {
	cfg := sunburst.Resolve(p)
	dims := chart.ResolveDimensions(cfg.Width, cfg.Height, cfg.Margin)
	nodes := sunburst.Layout(p)

	dc := newCanvas(dims, cfg.Theme, scale)
	dc.Translate(dims.Margin.Left+dims.InnerWidth/2, dims.Margin.Top+dims.InnerHeight/2)

	border := cfg.BorderColor.Func(cfg.Theme)
	dc.SetLineWidth(cfg.BorderWidth)
	for _, n := range nodes {
		if n.Depth == 0 {
			continue
		}
		drawArc(dc, n.Arc)
		setColor(dc, n.Color, 1)
		dc.FillPreserve()
		if cfg.BorderWidth > 0 && setColor(dc, border(n), 1) {
			dc.Stroke()
		} else {
			dc.ClearPath()
		}
	}

	if cfg.EnableSliceLabels {
		textColor := cfg.SliceLabelsTextColor.Func(cfg.Theme)
		dc.SetFontFace(basicfont.Face7x13)
		for _, n := range nodes {
			if n.Depth == 0 || n.Arc.AngleDeg() < cfg.SliceLabelsSkipAngle {
				continue
			}
			x, y := n.Arc.Centroid()
			setColor(dc, textColor(n), 1)
			dc.DrawStringAnchored(cfg.SliceLabel.String(n.Datum()), x, y, 0.5, 0.5)
		}
	}
	return encode(dc)
}

// WafflePNG draws the waffle grid described by p as a PNG.
func WafflePNG(p waffle.Props, scale float64) ([]byte, error) {
	cfg := waffle.Resolve(p)
	dims := chart.ResolveDimensions(cfg.Width, cfg.Height, cfg.Margin)
	geo := waffle.Layout(p)

	dc := newCanvas(dims, cfg.Theme, scale)
	dc.Translate(dims.Margin.Left, dims.Margin.Top)
	dc.SetLineWidth(cfg.BorderWidth)
	for _, c := range geo.Cells {
		dc.DrawRectangle(c.X, c.Y, c.Size, c.Size)
		setColor(dc, c.Color, c.Opacity)
		dc.FillPreserve()
		if cfg.BorderWidth > 0 && setColor(dc, c.BorderColor, c.Opacity) {
			dc.Stroke()
		} else {
			dc.ClearPath()
		}
	}
	return encode(dc)
}

func newCanvas(dims chart.Dimensions, theme chart.Theme, scale float64) *gg.Context {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(dims.OuterWidth * scale))
	h := int(math.Ceil(dims.OuterHeight * scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	if setColor(dc, theme.Background, 1) {
		dc.Clear()
	}
	dc.Scale(scale, scale)
	return dc
}

// drawArc traces an annular sector. Chart angles start at 12 o'clock and
// run clockwise; gg angles start at 3 o'clock.
func drawArc(dc *gg.Context, a sunburst.Arc) {
	start := a.StartAngle - math.Pi/2
	end := a.EndAngle - math.Pi/2
	dc.NewSubPath()
	dc.DrawArc(0, 0, a.OuterRadius, start, end)
	if a.InnerRadius > 0 {
		dc.DrawArc(0, 0, a.InnerRadius, end, start)
	} else {
		dc.LineTo(0, 0)
	}
	dc.ClosePath()
}

// setColor applies a CSS color and reports whether it was understood.
// Unknown colors, transparent and pattern references leave the context
// unchanged.
func setColor(dc *gg.Context, s string, opacity float64) bool {
	c, alpha, ok := chart.ParseColor(s)
	if !ok {
		return false
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha*opacity)
	return true
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
