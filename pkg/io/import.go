package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported document encodings.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var formatFromExt = map[string]Format{
	".json": FormatJSON,
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// DetectFormat returns the encoding implied by the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatFromExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported file extension %q (must be one of: .json, .toml, .yaml, .yml)", ext)
}

// Document is a chart input: chart type, props, data and theme override.
// Sections are kept as raw JSON so each chart decodes its own props.
type Document struct {
	Chart string          `json:"chart,omitempty"`
	Props json.RawMessage `json:"props,omitempty"`
	Data  json.RawMessage `json:"data"`
	Theme json.RawMessage `json:"theme,omitempty"`
}

// ReadDocument decodes a chart document from r.
//
// An object with a "data" key is read as a full document; anything else is
// read as bare data with no chart, props or theme. The chart type, when
// present, must be a known chart. ReadDocument does not close r.
func ReadDocument(r io.Reader, format Format) (*Document, error) {
	v, err := decode(r, format)
	if err != nil {
		return nil, err
	}

	obj, isObject := v.(map[string]any)
	if _, hasData := obj["data"]; !isObject || !hasData {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "encode data")
		}
		return &Document{Data: data}, nil
	}

	doc := &Document{}
	if c, ok := obj["chart"]; ok {
		s, ok := c.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidData, "chart must be a string, got %T", c)
		}
		if err := errors.ValidateChart(s); err != nil {
			return nil, err
		}
		doc.Chart = s
	}
	for key, dst := range map[string]*json.RawMessage{"props": &doc.Props, "data": &doc.Data, "theme": &doc.Theme} {
		section, ok := obj[key]
		if !ok {
			continue
		}
		if *dst, err = json.Marshal(section); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "encode %s", key)
		}
	}
	return doc, nil
}

// ImportDocument reads the chart document at path. The encoding follows the
// file extension.
func ImportDocument(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := ReadDocument(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadProps decodes a props object from r and returns it as JSON.
func ReadProps(r io.Reader, format Format) (json.RawMessage, error) {
	v, err := decode(r, format)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(map[string]any); !ok {
		return nil, errors.New(errors.ErrCodeInvalidData, "props must be an object, got %T", v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "encode props")
	}
	return data, nil
}

// ImportProps reads the props file at path.
func ImportProps(path string) (json.RawMessage, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	props, err := ReadProps(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return props, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// decode reads any value and normalizes it to JSON-compatible types.
func decode(r io.Reader, format Format) (any, error) {
	var v any
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&v)
	case FormatTOML:
		var m map[string]any
		_, err = toml.NewDecoder(r).Decode(&m)
		if len(m) > 0 {
			v = m
		}
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&v)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err == io.EOF || (err == nil && v == nil) {
		return nil, errors.New(errors.ErrCodeInvalidData, "empty %s document", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode %s", format)
	}
	return normalize(v), nil
}

// normalize converts YAML maps with non-string keys into string-keyed maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
