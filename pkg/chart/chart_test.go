package chart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/markup"
)

func TestResolveDimensions(t *testing.T) {
	d := ResolveDimensions(400, 300, Margin{Top: 10, Left: 20, Right: 30})
	if d.OuterWidth != 400 || d.OuterHeight != 300 {
		t.Errorf("outer = %vx%v", d.OuterWidth, d.OuterHeight)
	}
	if d.InnerWidth != 350 || d.InnerHeight != 290 {
		t.Errorf("inner = %vx%v, want 350x290", d.InnerWidth, d.InnerHeight)
	}
	if d.Margin.Bottom != 0 {
		t.Errorf("missing margin side should be 0, got %v", d.Margin.Bottom)
	}

	tiny := ResolveDimensions(10, 10, Margin{Left: 20, Top: 20})
	if tiny.InnerWidth != 0 || tiny.InnerHeight != 0 {
		t.Errorf("inner size must not be negative: %+v", tiny)
	}
}

func TestAccessor(t *testing.T) {
	d := Datum{
		"id":    "a",
		"value": 3.5,
		"count": 2,
		"text":  "7.25",
		"meta":  map[string]any{"color": "#fff"},
	}

	if got := Field("id").String(d); got != "a" {
		t.Errorf("id = %q", got)
	}
	if got := Field("value").Float(d); got != 3.5 {
		t.Errorf("value = %v", got)
	}
	if got := Field("count").Float(d); got != 2 {
		t.Errorf("count = %v", got)
	}
	if got := Field("text").Float(d); got != 7.25 {
		t.Errorf("text = %v", got)
	}
	if got := Field("meta.color").String(d); got != "#fff" {
		t.Errorf("meta.color = %q", got)
	}
	if got := Field("missing").Float(d); got != 0 {
		t.Errorf("missing = %v", got)
	}

	double := Func(func(d Datum) any { return Field("value").Float(d) * 2 })
	if got := double.Float(d); got != 7 {
		t.Errorf("func accessor = %v", got)
	}
	if !(Accessor{}).IsZero() || double.IsZero() {
		t.Error("IsZero mismatch")
	}
	if got := (Accessor{}).Or(Field("id")); got.Field != "id" {
		t.Errorf("Or() = %+v", got)
	}
}

func TestDatumChildren(t *testing.T) {
	var d Datum
	if err := json.Unmarshal([]byte(`{"id":"root","children":[{"id":"a"},{"id":"b"},3]}`), &d); err != nil {
		t.Fatal(err)
	}
	kids := d.Children("children")
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	if kids[1]["id"] != "b" {
		t.Errorf("second child = %v", kids[1])
	}
}

func TestSelectLayersOrder(t *testing.T) {
	builtins := map[string]*markup.Node{
		"cells":  markup.El("g", []markup.Attr{markup.A("id", "cells")}),
		"areas":  markup.El("g", []markup.Attr{markup.A("id", "areas")}),
		"labels": nil,
	}

	perms := [][]string{
		{"cells", "areas"},
		{"areas", "cells"},
	}
	for _, names := range perms {
		out := SelectLayers(Builtins(names...), builtins)
		if len(out) != len(names) {
			t.Fatalf("%v: got %d layers", names, len(out))
		}
		for i, n := range out {
			if n.ID() != names[i] {
				t.Errorf("%v: position %d = %s", names, i, n.ID())
			}
		}
	}
}

func TestSelectLayersSkipsDisabledAndUnknown(t *testing.T) {
	builtins := map[string]*markup.Node{
		"arcs":   markup.El("g", []markup.Attr{markup.A("id", "arcs")}),
		"labels": nil,
	}
	out := SelectLayers(Builtins("labels", "bogus", "arcs"), builtins)
	if len(out) != 1 || out[0].ID() != "arcs" {
		t.Fatalf("got %d layers", len(out))
	}
	if out[0].Key != "arcs" {
		t.Errorf("builtin key = %q", out[0].Key)
	}
}

func TestSelectLayersCustom(t *testing.T) {
	calls := 0
	custom := Custom(func() *markup.Node {
		calls++
		return markup.El("circle", nil)
	})
	builtins := map[string]*markup.Node{"arcs": markup.El("g", nil)}

	out := SelectLayers([]Layer{Builtin("arcs"), custom}, builtins)
	if calls != 1 {
		t.Errorf("custom layer called %d times", calls)
	}
	if len(out) != 2 {
		t.Fatalf("got %d layers", len(out))
	}
	if out[1].Key != CustomLayerKey(1) || !out[1].IsFragment() {
		t.Errorf("custom layer key = %q", out[1].Key)
	}

	out = SelectLayers([]Layer{custom, Builtin("arcs")}, builtins)
	if out[0].Key != "layer-0" {
		t.Errorf("custom layer should be keyed by position, got %q", out[0].Key)
	}
}

func TestLayerJSON(t *testing.T) {
	var layers []Layer
	if err := json.Unmarshal([]byte(`["cells","areas"]`), &layers); err != nil {
		t.Fatal(err)
	}
	if len(layers) != 2 || layers[1].Name() != "areas" {
		t.Errorf("layers = %v", layers)
	}
	data, _ := json.Marshal(layers)
	if string(data) != `["cells","areas"]` {
		t.Errorf("marshal = %s", data)
	}
}

type colored struct{ color string }

func (c colored) Get(path string) (any, bool) {
	if path == "color" {
		return c.color, true
	}
	return nil, false
}

func TestInheritedColorLiteralMatchesFunc(t *testing.T) {
	theme := DefaultTheme()
	lit := Literal[colored]("#123456")
	fn := FromDatum(func(colored) string { return "#123456" })

	for _, elem := range []colored{{"#ff0000"}, {"#00ff00"}} {
		if a, b := lit.Resolve(elem, theme), fn.Resolve(elem, theme); a != b {
			t.Errorf("literal %q != func %q", a, b)
		}
	}
}

func TestInheritedColorFrom(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		name  string
		color InheritedColor[colored]
		elem  colored
		want  string
	}{
		{"plain", Inherit[colored]("color"), colored{"#e8c1a0"}, "#e8c1a0"},
		{"darker", Inherit[colored]("color", Darker(1)), colored{"#ffffff"}, "#b3b3b3"},
		{"opacity", Inherit[colored]("color", Opacity(0.5)), colored{"#ff0000"}, "rgba(255, 0, 0, 0.5)"},
		{"unparseable", Inherit[colored]("color", Darker(1)), colored{"tomato"}, "tomato"},
		{"theme", FromTheme[colored]("labels.text.fill"), colored{}, "#333333"},
		{"missing path", Inherit[colored]("nope"), colored{"#fff"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Resolve(tt.elem, theme); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInheritedColorJSON(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		in   string
		want string
	}{
		{`"white"`, "white"},
		{`"inherit"`, "#ff0000"},
		{`{"from":"color","modifiers":[["darker",1]]}`, "#b30000"},
		{`{"theme":"labels.text.fill"}`, "#333333"},
	}
	for _, tt := range tests {
		var c InheritedColor[colored]
		if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got := c.Resolve(colored{"#ff0000"}, theme); got != tt.want {
			t.Errorf("%s: Resolve() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrdinalScale(t *testing.T) {
	s := Palette("#a", "#b").Scale()
	got := []string{
		s.Color("x", nil),
		s.Color("y", nil),
		s.Color("x", nil),
		s.Color("z", nil),
	}
	want := []string{"#a", "#b", "#a", "#a"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color %d = %s, want %s", i, got[i], want[i])
		}
	}

	unknown := Scheme("does-not-exist").Scale()
	if c := unknown.Color("a", nil); c != Schemes[DefaultScheme][0] {
		t.Errorf("unknown scheme should fall back to %s, got %s", DefaultScheme, c)
	}

	field := FromField("color").Scale()
	if c := field.Color("a", Datum{"color": "#abc"}); c != "#abc" {
		t.Errorf("datum color = %s", c)
	}
}

func TestOrdinalColorsJSON(t *testing.T) {
	tests := []struct {
		in   string
		want OrdinalColors
	}{
		{`"set2"`, Scheme("set2")},
		{`{"scheme":"dark2"}`, Scheme("dark2")},
		{`{"datum":"color"}`, FromField("color")},
	}
	for _, tt := range tests {
		var o OrdinalColors
		if err := json.Unmarshal([]byte(tt.in), &o); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if o.Scheme != tt.want.Scheme || o.DatumField != tt.want.DatumField {
			t.Errorf("%s: got %+v", tt.in, o)
		}
	}

	var p OrdinalColors
	if err := json.Unmarshal([]byte(`["#1","#2"]`), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Palette) != 2 {
		t.Errorf("palette = %v", p.Palette)
	}
}

type bindable struct {
	datum Datum
	color string
	fill  string
}

func TestBindDefs(t *testing.T) {
	defs := []Def{
		{ID: "dots", Type: DefPatternDots, Color: "inherit"},
		{ID: "lines", Type: DefPatternLines, Color: "#000"},
	}
	items := []*bindable{
		{datum: Datum{"id": "a"}, color: "#ff0000"},
		{datum: Datum{"id": "b"}, color: "#00ff00"},
		{datum: Datum{"id": "c"}, color: "#ff0000"},
	}
	rules := []FillRule{
		{Match: MatchID("b"), ID: "lines"},
		{Match: MatchAll(), ID: "dots"},
	}
	keys := BindKeys[*bindable]{
		Datum:   func(b *bindable) Datum { return b.datum },
		Color:   func(b *bindable) string { return b.color },
		SetFill: func(b *bindable, f string) { b.fill = f },
	}

	bound := BindDefs(defs, items, rules, keys)

	if items[1].fill != "url(#lines)" {
		t.Errorf("b fill = %s", items[1].fill)
	}
	if items[0].fill != "url(#dots.ff0000)" || items[2].fill != items[0].fill {
		t.Errorf("a fill = %s, c fill = %s", items[0].fill, items[2].fill)
	}
	if len(bound) != 2 {
		t.Fatalf("bound defs = %d, want 2 (lines + one dots variant)", len(bound))
	}
	if bound[1].Color != "#ff0000" {
		t.Errorf("variant color = %s", bound[1].Color)
	}

	svg := RenderDefs(bound).String()
	if !strings.Contains(svg, `id="dots.ff0000"`) || !strings.Contains(svg, `id="lines"`) {
		t.Errorf("defs markup missing ids: %s", svg)
	}
}

func TestValueFormat(t *testing.T) {
	tests := []struct {
		spec string
		in   float64
		want string
	}{
		{"", 60, "60"},
		{"", 1.5, "1.5"},
		{".2f", 3.14159, "3.14"},
		{">-.2f", 3.14159, "3.14"},
		{"d", 3.6, "4"},
		{".0%", 0.25, "25%"},
		{"+.1f", 2, "+2.0"},
		{"$.2f", 5, "$5.00"},
		{".2~f", 1.5, "1.5"},
		{"not a format", 1.5, "1.5"},
	}
	for _, tt := range tests {
		if got := FormatSpec(tt.spec).Format(tt.in); got != tt.want {
			t.Errorf("Format(%q, %v) = %q, want %q", tt.spec, tt.in, got, tt.want)
		}
	}

	custom := FormatFunc(func(v float64) string { return "≈" + markup.Num(v) })
	if got := custom.Format(2.5); got != "≈2.5" {
		t.Errorf("custom format = %q", got)
	}
}

func TestValueFormatGrouping(t *testing.T) {
	if got := FormatSpec(",.2f").Format(1234.5); got != "1,234.50" {
		t.Errorf("grouped = %q", got)
	}
	if got := FormatSpec(",d").Format(-1234567); got != "-1,234,567" {
		t.Errorf("grouped int = %q", got)
	}
}

func TestBasicTooltip(t *testing.T) {
	n := BasicTooltip(BasicTooltipProps{ID: "a", Value: "12", Color: "#f00", EnableChip: true, Theme: DefaultTheme()})
	if got := n.TextContent(); got != "a: 12" {
		t.Errorf("text = %q", got)
	}
	if !strings.Contains(n.String(), "background:#f00") {
		t.Errorf("chip missing: %s", n.String())
	}
}

func TestBindInteractions(t *testing.T) {
	c := NewContainer(ContainerOptions{Theme: DefaultTheme(), IsInteractive: true})
	var entered, left, clicked string
	h := Handlers[string]{
		OnMouseEnter: func(s string, _ markup.Event) { entered = s },
		OnMouseLeave: func(s string, _ markup.Event) { left = s },
	}
	el := markup.El("rect", []markup.Attr{markup.A("id", "r")})
	BindInteractions(c, el, "datum", h, func() *markup.Node { return markup.Text("tip") })
	view := &View{Container: c, Root: markup.El("svg", nil, el), Format: FormatSVG}

	view.Dispatch("r", markup.Event{Type: markup.MouseEnter, X: 5, Y: 6})
	if entered != "datum" {
		t.Errorf("enter callback got %q", entered)
	}
	if c.Tooltip() == nil {
		t.Fatal("tooltip should be visible after enter")
	}
	if !strings.Contains(view.Markup().String(), "tip") {
		t.Error("tooltip not rendered")
	}

	// click has no callback: must be a no-op, not a fallback
	view.Dispatch("r", markup.Event{Type: markup.Click})
	if clicked != "" {
		t.Error("unexpected click")
	}

	view.Dispatch("r", markup.Event{Type: markup.MouseLeave})
	if left != "datum" {
		t.Errorf("leave callback got %q", left)
	}
	if c.Tooltip() != nil {
		t.Error("tooltip should be hidden after leave")
	}
	if strings.Contains(view.Markup().String(), "tip") {
		t.Error("hidden tooltip rendered")
	}
}

func TestBindInteractionsNotInteractive(t *testing.T) {
	c := NewContainer(ContainerOptions{IsInteractive: false})
	el := markup.El("rect", nil)
	BindInteractions(c, el, 1, Handlers[int]{OnClick: func(int, markup.Event) {}}, nil)
	if el.Interactive() {
		t.Error("handlers attached to non-interactive chart")
	}
}

func TestExtendTheme(t *testing.T) {
	th := Extend(&Theme{Labels: TextStyle{Fill: "#fff"}})
	if th.Labels.Fill != "#fff" {
		t.Errorf("labels fill = %s", th.Labels.Fill)
	}
	if th.Labels.FontSize != DefaultTheme().Labels.FontSize {
		t.Errorf("unset field should keep default, got %v", th.Labels.FontSize)
	}
	if Extend(nil) != DefaultTheme() {
		t.Error("Extend(nil) should return the default theme")
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	content := `
background = "#111111"

[labels]
fill = "#eeeeee"
font_size = 14
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Background != "#111111" || th.Labels.Fill != "#eeeeee" || th.Labels.FontSize != 14 {
		t.Errorf("theme = %+v", th)
	}
	if th.Tooltip.Background != "white" {
		t.Errorf("tooltip background should default, got %s", th.Tooltip.Background)
	}

	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSVGWrapper(t *testing.T) {
	svg := SVGWrapper(SVGWrapperProps{
		Width: 200, Height: 100,
		Margin: Margin{Top: 10, Left: 20},
		Role:   "img",
		Aria:   Aria{Label: "chart"},
		Theme:  Extend(&Theme{Background: "#000"}),
	}, markup.El("circle", nil)).String()

	for _, want := range []string{
		`viewBox="0 0 200 100"`,
		`role="img"`,
		`aria-label="chart"`,
		`<rect width="200" height="100" fill="#000"></rect>`,
		`<g transform="translate(20, 10)"><circle></circle></g>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s in %s", want, svg)
		}
	}
}
