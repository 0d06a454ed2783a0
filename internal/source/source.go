// Package source decodes raw JSON or YAML documents into the untyped data
// the converter consumes: map[string]any, []any and scalars.
//
// Numbers are normalized so that both formats agree: integral values that
// fit become int, everything else float64.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrTrailingData  = errors.New("unexpected data after the JSON document")
)

// ParseFormat parses a format name. "yml" is accepted for YAML and "" or
// "auto" select detection.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFor picks the format from a file extension, defaulting to YAML
// (a superset of JSON).
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// Decode decodes data in the given format. FormatAuto tries JSON when the
// first non-space byte opens an object or array and falls back to YAML.
func Decode(data []byte, format Format) (any, error) {
	if format == FormatAuto {
		if sniff(data) == FormatJSON {
			if v, err := JSON(data); err == nil {
				return v, nil
			}
		}

		format = FormatYAML
	}

	switch format {
	case FormatJSON:
		return JSON(data)
	case FormatYAML:
		return YAML(data)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ReadFile decodes the file at path. FormatAuto uses the file extension.
func ReadFile(path string, format Format) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if format == FormatAuto {
		format = FormatFor(path)
	}

	v, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return v, nil
}

// Read decodes everything from r.
func Read(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return Decode(data, format)
}

// JSON decodes a single JSON document.
func JSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	if dec.More() {
		return nil, ErrTrailingData
	}

	return Normalize(v), nil
}

// YAML decodes a single YAML document.
func YAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	return Normalize(v), nil
}

// Normalize rewrites decoded values in place of their decoder-specific
// forms: json.Number and sized integers become int or float64, and maps
// with non-string keys become map[string]any.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = Normalize(e)
		}

		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = Normalize(e)
		}

		return out
	case []any:
		for i, e := range t {
			t[i] = Normalize(e)
		}

		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return intOrFloat(i)
		}

		f, _ := t.Float64()

		return f
	case int64:
		return intOrFloat(t)
	case int32:
		return int(t)
	case uint64:
		if t <= math.MaxInt64 {
			return intOrFloat(int64(t))
		}

		return float64(t)
	case uint32:
		return int(t)
	case float32:
		return float64(t)
	}

	return v
}

func intOrFloat(i int64) any {
	if i >= math.MinInt && i <= math.MaxInt {
		return int(i)
	}

	return float64(i)
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}

	return FormatYAML
}
