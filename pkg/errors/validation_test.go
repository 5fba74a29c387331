package errors

import (
	"strings"
	"testing"
)

func TestValidateChart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"sunburst", "sunburst", false},
		{"waffle", "waffle", false},
		{"empty", "", true},
		{"unknown", "pie", true},
		{"case sensitive", "Waffle", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChart(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChart(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidChart) {
				t.Errorf("ValidateChart(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidChart)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name     string
		chart    string
		formats  []string
		wantCode Code
	}{
		{"sunburst svg", "sunburst", []string{"svg"}, ""},
		{"sunburst all", "sunburst", []string{"svg", "png", "pdf", "json"}, ""},
		{"waffle html", "waffle", []string{"html", "svg"}, ""},
		{"sunburst html", "sunburst", []string{"html"}, ErrCodeInvalidFormat},
		{"unknown format", "waffle", []string{"gif"}, ErrCodeInvalidFormat},
		{"no formats", "waffle", nil, ErrCodeInvalidFormat},
		{"unknown chart", "pie", []string{"svg"}, ErrCodeInvalidChart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.chart, tt.formats)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateFormats(%q, %v) code = %q, want %q", tt.chart, tt.formats, got, tt.wantCode)
			}
		})
	}
}

func TestValidateChartID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "3f2b8c1e-9d4a-4e1b-8f7c-2a6d5e4b3c21", false},
		{"empty", "", true},
		{"not a uuid", "chart-1", true},
		{"path traversal", "../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Budget 2026", false},
		{"unicode", "Répartition", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/tree.json", false},
		{"absolute", "/tmp/out.svg", false},
		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		schemes []string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", []string{"redis", "rediss"}, false},
		{"rediss", "rediss://cache:6380", []string{"redis", "rediss"}, false},
		{"mongodb", "mongodb://localhost:27017", []string{"mongodb", "mongodb+srv"}, false},
		{"wrong scheme", "http://localhost", []string{"redis"}, true},
		{"empty", "", []string{"redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
