package codec_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vladocavric/survey-js/pkg/codec"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/testsupport"
)

var formOpts = cmp.Options{cmpopts.EquateEmpty()}

func TestDecodeFixtures(t *testing.T) {
	want := testsupport.SampleForm()

	for _, name := range []string{"sample.json", "sample.yaml"} {
		t.Run(name, func(t *testing.T) {
			got := testsupport.LoadForm(t, filepath.Join("testdata", name))
			if diff := cmp.Diff(want, got, formOpts); diff != "" {
				t.Fatalf("decoded form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeMatchesGolden(t *testing.T) {
	goldenPath := filepath.Join("testdata", "sample.json")
	form := testsupport.SampleForm()
	testsupport.WriteFormGolden(t, goldenPath, form)

	payload, err := codec.Encode(form, codec.FormatJSON)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasSuffix(string(payload), "}\n") {
		t.Fatalf("expected trailing newline, got %q", payload[len(payload)-3:])
	}

	var got, want any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal encoded: %v", err)
	}
	if err := json.Unmarshal(testsupport.MustReadGolden(t, goldenPath), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoded JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	form := testsupport.SampleForm()

	for _, format := range []codec.Format{codec.FormatJSON, codec.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			payload, err := codec.Encode(form, format)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := codec.DecodeFormat(payload, format)
			if err != nil {
				t.Fatalf("decode: %v\n%s", err, payload)
			}
			if diff := cmp.Diff(form, got, formOpts); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeYAMLUsesBlockStyle(t *testing.T) {
	payload, err := codec.Encode(testsupport.SampleForm(), codec.FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(payload)
	for _, want := range []string{
		"title: Intake\n",
		"- type: question\n",
		"regex: .+@.+\n",
		"description: \"\"\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in yaml output:\n%s", want, text)
		}
	}
	if strings.Contains(text, `"name"`) {
		t.Fatalf("expected plain keys, got:\n%s", text)
	}
}

func TestDecodeFallsBackToYAML(t *testing.T) {
	doc := `
title: Short
elements:
  - type: question
    element:
      name: q
      type: boolean
      title: Agree
      visible: true
`
	form, err := codec.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if form.Title != "Short" || len(form.Elements) != 1 {
		t.Fatalf("unexpected form: %+v", form)
	}
	q, ok := form.Elements[0].(*schema.Question)
	if !ok || q.Type != schema.QuestionBoolean {
		t.Fatalf("expected boolean question, got %#v", form.Elements[0])
	}
	if q.Validators == nil {
		t.Fatalf("expected validators to default to an empty list")
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n\t"} {
		form, err := codec.Decode([]byte(input))
		if err != nil {
			t.Fatalf("decode %q: %v", input, err)
		}
		if diff := cmp.Diff(schema.NewForm(), form); diff != "" {
			t.Fatalf("empty input mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecodeNormalizesTitle(t *testing.T) {
	form, err := codec.Decode([]byte(`{"elements":[]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if form.Title != schema.DefaultFormTitle {
		t.Fatalf("expected default title, got %q", form.Title)
	}
}

func TestDecodeRejectsUnknownElementType(t *testing.T) {
	_, err := codec.Decode([]byte(`{"title":"x","elements":[{"type":"matrix","element":{}}]}`))
	if err == nil {
		t.Fatalf("expected error for unknown element type")
	}
	if !strings.Contains(err.Error(), "matrix") {
		t.Fatalf("expected error to name the type, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]codec.Format{
		"form.json":     codec.FormatJSON,
		"dir/form.YAML": codec.FormatYAML,
		"form.yml":      codec.FormatYAML,
	}
	for path, want := range tests {
		got, err := codec.FormatFromPath(path)
		if err != nil {
			t.Fatalf("FormatFromPath(%q): %v", path, err)
		}
		if got != want {
			t.Fatalf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}

	if _, err := codec.FormatFromPath("form.toml"); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := codec.ParseFormat("xml"); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := codec.Encode(schema.NewForm(), codec.Format("xml")); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat from Encode, got %v", err)
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/empty.json": &fstest.MapFile{Data: []byte("\n")},
		"forms/one.yaml": &fstest.MapFile{Data: []byte(`
title: One
description: From fs
elements:
  - type: panel
    element:
      id: p
      title: Panel
      visible: true
      elements: []
`)},
	}

	empty, err := codec.Load(fsys, "forms/empty.json")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if empty.Title != schema.DefaultFormTitle {
		t.Fatalf("expected default form, got %+v", empty)
	}

	one, err := codec.Load(fsys, "forms/one.yaml")
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	want := schema.Form{
		Title:       "One",
		Description: "From fs",
		Elements:    []schema.Element{schema.NewPanel("p", "Panel")},
	}
	if diff := cmp.Diff(want, one, formOpts); diff != "" {
		t.Fatalf("loaded form mismatch (-want +got):\n%s", diff)
	}

	if _, err := codec.Load(fsys, "forms/missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	form := testsupport.SampleForm()

	if err := codec.SaveFile(path, form); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := codec.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(form, got, formOpts); diff != "" {
		t.Fatalf("saved form mismatch (-want +got):\n%s", diff)
	}
}
