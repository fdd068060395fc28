// Package codec reads and writes form snapshots as JSON or YAML.
//
// JSON is the canonical shape. YAML documents are converted to and from
// that shape, so both formats describe the same enveloped tree.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vladocavric/survey-js/pkg/schema"
)

// Format selects the serialisation of a snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat reports a format or file extension the codec does
// not handle.
var ErrUnsupportedFormat = errors.New("codec: unsupported format")

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("codec: format %q: %w", raw, ErrUnsupportedFormat)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("codec: extension of %s: %w", path, ErrUnsupportedFormat)
	}
}

// Decode parses data as JSON and falls back to YAML. The result carries the
// defaults of a freshly loaded form.
func Decode(data []byte) (schema.Form, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return schema.NewForm(), nil
	}
	form, jsonErr := DecodeFormat(data, FormatJSON)
	if jsonErr == nil {
		return form, nil
	}
	if json.Valid(data) {
		return schema.Form{}, jsonErr
	}
	form, err := DecodeFormat(data, FormatYAML)
	if err != nil {
		return schema.Form{}, fmt.Errorf("codec: invalid JSON or YAML: %w", err)
	}
	return form, nil
}

// DecodeFormat parses data in the given format.
func DecodeFormat(data []byte, format Format) (schema.Form, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		converted, err := yamlToJSON(data)
		if err != nil {
			return schema.Form{}, err
		}
		data = converted
	default:
		return schema.Form{}, fmt.Errorf("codec: decode %q: %w", format, ErrUnsupportedFormat)
	}

	var form schema.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return schema.Form{}, fmt.Errorf("codec: decode %s: %w", format, err)
	}
	return form.Normalize(), nil
}

// Encode serialises form. JSON output is indented with two spaces.
func Encode(form schema.Form, format Format) ([]byte, error) {
	raw, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	switch format {
	case FormatJSON:
		return append(raw, '\n'), nil
	case FormatYAML:
		return jsonToYAML(raw)
	default:
		return nil, fmt.Errorf("codec: encode %q: %w", format, ErrUnsupportedFormat)
	}
}

// Load reads name from fsys, choosing the format from its extension.
func Load(fsys fs.FS, name string) (schema.Form, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return schema.Form{}, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return schema.Form{}, fmt.Errorf("codec: read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return schema.NewForm(), nil
	}
	return DecodeFormat(data, format)
}

// LoadFile reads a form from disk.
func LoadFile(path string) (schema.Form, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return Load(os.DirFS(dir), name)
}

// SaveFile writes form to path in the format its extension names.
func SaveFile(path string, form schema.Form) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(form, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	return nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: parse yaml: %w", err)
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("codec: convert yaml: %w", err)
	}
	return out, nil
}

// jsonToYAML re-parses JSON as a YAML node tree so key order survives, then
// switches every collection to block style.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("codec: convert to yaml: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(node *yaml.Node) {
	switch node.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		if len(node.Content) > 0 {
			node.Style = 0
		}
	case yaml.ScalarNode:
		if node.Style&yaml.DoubleQuotedStyle != 0 && node.Tag == "!!str" && !needsQuotes(node.Value) {
			node.Style = 0
		}
	}
	for _, child := range node.Content {
		blockStyle(child)
	}
}

// needsQuotes reports whether an unquoted scalar would resolve to something
// other than the string value.
func needsQuotes(value string) bool {
	var decoded any
	if err := yaml.Unmarshal([]byte(value), &decoded); err != nil {
		return true
	}
	s, ok := decoded.(string)
	return !ok || s != value
}
