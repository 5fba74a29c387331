package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/errors"
)

func jsonEqual(t *testing.T, got json.RawMessage, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("unmarshal got %s: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestReadDocumentFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "json",
			format: FormatJSON,
			input: `{"chart": "waffle", "props": {"rows": 5},
				"data": [{"id": "cats", "value": 12}], "theme": {"background": "white"}}`,
		},
		{
			name:   "toml",
			format: FormatTOML,
			input: `chart = "waffle"

[props]
rows = 5

[theme]
background = "white"

[[data]]
id = "cats"
value = 12
`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input: `chart: waffle
props:
  rows: 5
theme:
  background: white
data:
  - id: cats
    value: 12
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadDocument(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadDocument: %v", err)
			}
			if doc.Chart != "waffle" {
				t.Errorf("Chart = %q, want waffle", doc.Chart)
			}
			jsonEqual(t, doc.Props, `{"rows": 5}`)
			jsonEqual(t, doc.Data, `[{"id": "cats", "value": 12}]`)
			jsonEqual(t, doc.Theme, `{"background": "white"}`)
		})
	}
}

func TestReadDocumentBareData(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   string
	}{
		{"json tree", FormatJSON, `{"id": "root", "children": [{"id": "a", "value": 1}]}`,
			`{"id": "root", "children": [{"id": "a", "value": 1}]}`},
		{"json list", FormatJSON, `[{"id": "a", "value": 1}]`, `[{"id": "a", "value": 1}]`},
		{"yaml list", FormatYAML, "- id: a\n  value: 1\n", `[{"id": "a", "value": 1}]`},
		{"yaml int keys", FormatYAML, "id: root\n1: one\n", `{"id": "root", "1": "one"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadDocument(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadDocument: %v", err)
			}
			if doc.Chart != "" || doc.Props != nil || doc.Theme != nil {
				t.Errorf("bare data should only set Data, got %+v", doc)
			}
			jsonEqual(t, doc.Data, tt.want)
		})
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"empty json", FormatJSON, "", errors.ErrCodeInvalidData},
		{"empty toml", FormatTOML, "", errors.ErrCodeInvalidData},
		{"malformed json", FormatJSON, `{"data": [`, errors.ErrCodeInvalidData},
		{"malformed yaml", FormatYAML, "data: [a, b\n", errors.ErrCodeInvalidData},
		{"unknown chart", FormatJSON, `{"chart": "pie", "data": []}`, errors.ErrCodeInvalidChart},
		{"chart not a string", FormatJSON, `{"chart": 1, "data": []}`, errors.ErrCodeInvalidData},
		{"unknown format", Format("xml"), "<data/>", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data.json", FormatJSON, false},
		{"props.TOML", FormatTOML, false},
		{"a/b/chart.yml", FormatYAML, false},
		{"chart.yaml", FormatYAML, false},
		{"chart.csv", "", true},
		{"chart", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImportDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	content := "chart: sunburst\ndata:\n  id: root\n  children:\n    - id: a\n      value: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if doc.Chart != "sunburst" {
		t.Errorf("Chart = %q, want sunburst", doc.Chart)
	}
	jsonEqual(t, doc.Data, `{"id": "root", "children": [{"id": "a", "value": 2}]}`)

	_, err = ImportDocument(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestImportProps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.toml")
	content := "cornerRadius = 3\nenableSliceLabels = true\n\n[margin]\ntop = 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	props, err := ImportProps(path)
	if err != nil {
		t.Fatalf("ImportProps: %v", err)
	}
	jsonEqual(t, props, `{"cornerRadius": 3, "enableSliceLabels": true, "margin": {"top": 10}}`)

	_, err = ReadProps(strings.NewReader(`[1, 2]`), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("array props error = %v, want INVALID_DATA", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	doc := &Document{
		Chart: "sunburst",
		Props: json.RawMessage(`{"borderWidth":2}`),
		Data:  json.RawMessage(`{"id":"root"}`),
	}
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if got.Chart != doc.Chart {
		t.Errorf("Chart = %q, want %q", got.Chart, doc.Chart)
	}
	jsonEqual(t, got.Props, string(doc.Props))
	jsonEqual(t, got.Data, string(doc.Data))
	if got.Theme != nil {
		t.Errorf("Theme = %s, want nil", got.Theme)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "{\n  \"a\": 1\n}\n"; got != want {
		t.Errorf("MarshalJSON = %q, want %q", got, want)
	}
}
