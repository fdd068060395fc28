package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladocavric/survey-js/pkg/codec"
	"github.com/vladocavric/survey-js/pkg/schema"
)

// LoadForm reads a JSON or YAML form fixture.
func LoadForm(t *testing.T, path string) schema.Form {
	t.Helper()

	form, err := LoadFormFromPath(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadFormFromPath returns a form fixture without requiring testing.T so
// setup helpers can share fixtures.
func LoadFormFromPath(path string) (schema.Form, error) {
	if path == "" {
		return schema.Form{}, errors.New("testsupport: form path is required")
	}
	form, err := codec.LoadFile(path)
	if err != nil {
		return schema.Form{}, fmt.Errorf("testsupport: load form: %w", err)
	}
	return form, nil
}

// WriteFormGolden writes form as an indented JSON golden when
// UPDATE_GOLDENS is set.
func WriteFormGolden(t *testing.T, path string, form schema.Form) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := codec.Encode(form, codec.FormatJSON)
	if err != nil {
		t.Fatalf("encode golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
