package selection_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/selection"
)

func TestSelectionFollowsRename(t *testing.T) {
	s := selection.New()
	s.Select("a")
	s.SetExpanded("p", true)
	s.Rename("a", "b")
	s.Rename("p", "q")

	want := selection.Snapshot{Selected: "b", Expanded: []string{"q"}}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if !s.IsSelected("b") || s.IsSelected("a") {
		t.Fatalf("selection must follow the rename")
	}
}

func TestToggleAndForget(t *testing.T) {
	s := selection.New()
	if !s.Toggle("p") {
		t.Fatalf("first toggle must expand")
	}
	s.SetExpanded("a", true)
	if diff := cmp.Diff([]string{"a", "p"}, s.Expanded()); diff != "" {
		t.Fatalf("expanded mismatch (-want +got):\n%s", diff)
	}
	if s.Toggle("p") {
		t.Fatalf("second toggle must collapse")
	}
	s.Select("a")
	s.Forget("a")
	if _, ok := s.Selected(); ok {
		t.Fatalf("forget must clear the selection")
	}
	if len(s.Expanded()) != 0 {
		t.Fatalf("forget must clear the expansion, got %v", s.Expanded())
	}
}

func TestReconcile(t *testing.T) {
	panel := schema.NewPanel("p", "P")
	panel.Elements = []schema.Element{schema.NewQuestion(schema.QuestionText, "q", "Q")}
	form := schema.NewForm().WithElements([]schema.Element{panel})

	s := selection.New()
	s.Select("gone")
	s.SetExpanded("p", true)
	s.SetExpanded("q", true)
	s.SetExpanded("old", true)
	s.Reconcile(form)

	want := selection.Snapshot{Expanded: []string{"p"}}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	s.Select("q")
	s.Reconcile(form)
	if id, ok := s.Selected(); !ok || id != "q" {
		t.Fatalf("nested selection must survive reconcile, got %q", id)
	}
}
