package sunburst

import (
	"math"
	"strings"

	"github.com/matzehuels/chartkit/pkg/markup"
)

const epsilon = 1e-9

// ArcGenerator turns an [Arc] into SVG path data.
type ArcGenerator struct {
	CornerRadius float64
}

// Path returns the path data for a, relative to the chart center.
// Rounded corners are approximated with quadratic curves; the radius is
// clamped to half the band thickness and to half the arc length.
func (g ArcGenerator) Path(a Arc) string {
	r0, r1 := max(0, a.InnerRadius), max(0, a.OuterRadius)
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	span := a.Angle()
	var p pathBuilder

	if r1 <= epsilon {
		p.move(0, 0)
		p.close()
		return p.String()
	}
	if span >= 2*math.Pi-epsilon {
		return fullRing(a.StartAngle, r0, r1)
	}

	cr := max(0, g.CornerRadius)
	cr = min(cr, (r1-r0)/2, r1*span/2)
	if r0 > epsilon {
		cr = min(cr, r0*span/2)
	}

	a0, a1 := a.StartAngle, a.EndAngle
	if cr <= epsilon {
		p.move(polar(r1, a0))
		p.arc(r1, span > math.Pi, true, a1)
		if r0 > epsilon {
			p.line(polar(r0, a1))
			p.arc(r0, span > math.Pi, false, a0)
		} else {
			p.line(0, 0)
		}
		p.close()
		return p.String()
	}

	do := cr / r1
	p.move(polar(r1-cr, a0))
	p.quad(r1, a0, r1, a0+do)
	p.arc(r1, span-2*do > math.Pi, true, a1-do)
	p.quad(r1, a1, r1-cr, a1)
	if r0 > epsilon {
		di := cr / r0
		p.line(polar(r0+cr, a1))
		p.quad(r0, a1, r0, a1-di)
		p.arc(r0, span-2*di > math.Pi, false, a0+di)
		p.quad(r0, a0, r0+cr, a0)
	} else {
		p.line(0, 0)
	}
	p.close()
	return p.String()
}

// fullRing draws a complete annulus as two half circles per edge. The inner
// edge runs counter-clockwise so the hole stays unfilled.
func fullRing(start, r0, r1 float64) string {
	var p pathBuilder
	p.move(polar(r1, start))
	p.arc(r1, false, true, start+math.Pi)
	p.arc(r1, false, true, start+2*math.Pi)
	p.close()
	if r0 > epsilon {
		p.move(polar(r0, start))
		p.arc(r0, false, false, start-math.Pi)
		p.arc(r0, false, false, start-2*math.Pi)
		p.close()
	}
	return p.String()
}

// polar converts a radius and an angle clockwise from twelve o'clock.
func polar(r, angle float64) (x, y float64) {
	return r * math.Sin(angle), -r * math.Cos(angle)
}

type pathBuilder struct {
	sb strings.Builder
}

func (p *pathBuilder) point(x, y float64) {
	p.sb.WriteString(markup.Num(x))
	p.sb.WriteByte(',')
	p.sb.WriteString(markup.Num(y))
}

func (p *pathBuilder) move(x, y float64) {
	p.sb.WriteByte('M')
	p.point(x, y)
}

func (p *pathBuilder) line(x, y float64) {
	p.sb.WriteByte('L')
	p.point(x, y)
}

func (p *pathBuilder) arc(r float64, large, clockwise bool, to float64) {
	p.sb.WriteByte('A')
	p.sb.WriteString(markup.Num(r))
	p.sb.WriteByte(',')
	p.sb.WriteString(markup.Num(r))
	p.sb.WriteString(",0,")
	p.sb.WriteString(flag(large))
	p.sb.WriteByte(',')
	p.sb.WriteString(flag(clockwise))
	p.sb.WriteByte(',')
	p.point(polar(r, to))
}

func (p *pathBuilder) quad(cr, ca, r, a float64) {
	p.sb.WriteByte('Q')
	p.point(polar(cr, ca))
	p.sb.WriteByte(',')
	p.point(polar(r, a))
}

func (p *pathBuilder) close() { p.sb.WriteByte('Z') }

func (p *pathBuilder) String() string { return p.sb.String() }

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
