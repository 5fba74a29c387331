package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/sunburst"
	"github.com/matzehuels/chartkit/pkg/waffle"
)

func withoutRsvg(t *testing.T) {
	t.Helper()
	orig := lookPath
	lookPath = func(string) (string, error) { return "", fmt.Errorf("not found") }
	t.Cleanup(func() { lookPath = orig })
}

func TestConvertWithoutRsvg(t *testing.T) {
	withoutRsvg(t)

	if Available() {
		t.Fatal("Available() = true, want false")
	}
	if _, err := ToPDF(context.Background(), []byte("<svg/>")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := sunburst.Render(sunburst.Props{Data: testTree()}).Bytes()
	data, err := ToPNG(context.Background(), svg, 1)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func testTree() chart.Datum {
	return chart.Datum{
		"id": "root",
		"children": []any{
			chart.Datum{"id": "a", "value": 3.0},
			chart.Datum{"id": "b", "value": 1.0},
		},
	}
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func assertPixel(t *testing.T, img image.Image, x, y int, want string) {
	t.Helper()
	c, _, ok := chart.ParseColor(want)
	if !ok {
		t.Fatalf("bad color %q", want)
	}
	r, g, b, _ := img.At(x, y).RGBA()
	got := [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
	exp := [3]int{int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)}
	for i := range got {
		if d := got[i] - exp[i]; d < -2 || d > 2 {
			t.Errorf("pixel (%d,%d) = %v, want %v (%s)", x, y, got, exp, want)
			return
		}
	}
}

func TestSunburstPNG(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		size  int
	}{
		{"default scale", 0, 600},
		{"double", 2, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := SunburstPNG(sunburst.Props{Data: testTree()}, tt.scale)
			if err != nil {
				t.Fatalf("SunburstPNG: %v", err)
			}
			img := decode(t, data)
			if b := img.Bounds(); b.Dx() != tt.size || b.Dy() != tt.size {
				t.Fatalf("bounds = %v, want %dx%d", b, tt.size, tt.size)
			}
		})
	}
}

func TestSunburstPNGColors(t *testing.T) {
	data, err := SunburstPNG(sunburst.Props{Data: testTree()}, 1)
	if err != nil {
		t.Fatalf("SunburstPNG: %v", err)
	}
	img := decode(t, data)

	// Depth-1 ring spans radius 212..300 around (300, 300).
	// "a" covers the first three quarters clockwise from 12 o'clock, "b" the last.
	point := func(angle float64) (int, int) {
		return int(300 + 256*math.Sin(angle)), int(300 - 256*math.Cos(angle))
	}
	x, y := point(math.Pi / 2)
	assertPixel(t, img, x, y, "#e8c1a0")
	x, y = point(7 * math.Pi / 4)
	assertPixel(t, img, x, y, "#f47560")
}

func TestWafflePNG(t *testing.T) {
	props := waffle.Props{
		Data: []chart.Datum{
			{"id": "a", "value": 50.0},
			{"id": "b", "value": 50.0},
		},
		Width:  chart.Ptr(200.0),
		Height: chart.Ptr(200.0),
	}
	data, err := WafflePNG(props, 1)
	if err != nil {
		t.Fatalf("WafflePNG: %v", err)
	}
	img := decode(t, data)
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("bounds = %v, want 200x200", b)
	}

	geo := waffle.Layout(props)
	for _, i := range []int{0, 99} {
		c := geo.Cells[i]
		assertPixel(t, img, int(c.X+c.Size/2), int(c.Y+c.Size/2), c.Color)
	}
}
