package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladocavric/survey-js/pkg/codec"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/testsupport"
	"github.com/vladocavric/survey-js/pkg/tree"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func sampleFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := codec.SaveFile(path, testsupport.SampleForm()); err != nil {
		t.Fatalf("save sample: %v", err)
	}
	return path
}

func load(t *testing.T, path string) schema.Form {
	t.Helper()
	form, err := codec.LoadFile(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return form
}

func TestNewAndAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	if _, _, err := execute(t, "new", "-f", path, "--title", "Survey"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := execute(t, "new", "-f", path); err == nil {
		t.Fatalf("expected new to refuse an existing file")
	}

	out, _, err := execute(t, "add", "panel", "-f", path, "--title", "Address")
	if err != nil {
		t.Fatalf("add panel: %v", err)
	}
	if got := strings.TrimSpace(out); got != "FORM_STYLE_DATA.ADDRESS" {
		t.Fatalf("panel id = %q", got)
	}
	if _, _, err := execute(t, "add", "email", "-f", path, "-p", "FORM_STYLE_DATA.ADDRESS"); err != nil {
		t.Fatalf("add email: %v", err)
	}

	form := load(t, path)
	if form.Title != "Survey" {
		t.Fatalf("title = %q", form.Title)
	}
	want := []string{"FORM_STYLE_DATA.ADDRESS", "FORM_STYLE_DATA.NEW_EMAIL_QUESTION"}
	if diff := cmp.Diff(want, tree.Identifiers(form.Elements)); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := execute(t, "add", "slider", "-f", path); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
}

func TestUpdateAndDuplicate(t *testing.T) {
	path := sampleFile(t, "form.json")
	if _, _, err := execute(t, "update", "city", "-f", path, "--required", "--visible-if", "{country} = 'DE'"); err != nil {
		t.Fatalf("update: %v", err)
	}
	city, _ := tree.FindQuestion(load(t, path).Elements, "city")
	if !city.IsRequired || city.VisibleIf != "{country} = 'DE'" {
		t.Fatalf("unexpected city: %+v", city)
	}

	_, stderr, err := execute(t, "update", "email", "-f", path, "--name", "name")
	if err == nil {
		t.Fatalf("expected duplicate identifier error")
	}
	if !strings.Contains(stderr, "This identifier is already in use.") {
		t.Fatalf("expected notification on stderr, got %q", stderr)
	}
}

func TestMoveAndDelete(t *testing.T) {
	path := sampleFile(t, "form.json")
	if _, _, err := execute(t, "move", "name", "-f", path, "--into", "people", "--index", "0"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, _, err := execute(t, "delete", "contact", "-f", path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []string{"people", "name", "person", "age"}
	if diff := cmp.Diff(want, tree.Identifiers(load(t, path).Elements)); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := execute(t, "move", "people", "-f", path, "--into", "people"); err == nil {
		t.Fatalf("expected moving a container into itself to fail")
	}
}

func TestLint(t *testing.T) {
	path := sampleFile(t, "form.json")
	if _, _, err := execute(t, "lint", "-f", path); err != nil {
		t.Fatalf("lint clean form: %v", err)
	}
	if _, _, err := execute(t, "update", "city", "-f", path, "--visible-if", "{missing} = 1"); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, stderr, err := execute(t, "lint", "-f", path)
	if err == nil || !strings.Contains(stderr, "city:") {
		t.Fatalf("expected a city diagnostic, err=%v stderr=%q", err, stderr)
	}
}

const petsDocument = `openapi: 3.0.3
info:
  title: Pets
  version: "1"
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [petName]
              properties:
                petName:
                  type: string
                vaccinated:
                  type: boolean
`

func TestImport(t *testing.T) {
	path := sampleFile(t, "form.json")
	doc := filepath.Join(t.TempDir(), "pets.yaml")
	if err := os.WriteFile(doc, []byte(petsDocument), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	out, _, err := execute(t, "import", doc, "-f", path, "--list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "createPet") {
		t.Fatalf("operation missing from %q", out)
	}

	if _, _, err := execute(t, "import", doc, "-f", path, "-p", "contact"); err != nil {
		t.Fatalf("import: %v", err)
	}
	contact, _ := tree.Find(load(t, path).Elements, "contact")
	want := []string{"email", "country", "city", "FORM_STYLE_DATA.PET_NAME", "FORM_STYLE_DATA.VACCINATED"}
	if diff := cmp.Diff(want, tree.Identifiers(contact.(*schema.Panel).Elements)); diff != "" {
		t.Fatalf("contact children mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewAndShow(t *testing.T) {
	path := sampleFile(t, "form.json")
	answers := filepath.Join(t.TempDir(), "answers.json")
	if err := os.WriteFile(answers, []byte(`{"country": "NL"}`), 0o644); err != nil {
		t.Fatalf("write answers: %v", err)
	}

	out, _, err := execute(t, "preview", "-f", path)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "is-hidden") || !strings.Contains(out, "Intake") {
		t.Fatalf("unexpected preview:\n%s", out)
	}

	out, _, err = execute(t, "preview", "-f", path, "--answers", answers)
	if err != nil {
		t.Fatalf("preview with answers: %v", err)
	}
	if strings.Contains(out, "is-hidden") {
		t.Fatalf("city should be visible:\n%s", out)
	}

	out, _, err = execute(t, "show", "-f", path)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "    city [Text] City (hidden)") {
		t.Fatalf("unexpected outline:\n%s", out)
	}
}
