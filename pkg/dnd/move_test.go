package dnd_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladocavric/survey-js/pkg/dnd"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

func question(name string) *schema.Question {
	return schema.NewQuestion(schema.QuestionText, name, name)
}

func panel(id string, children ...schema.Element) *schema.Panel {
	p := schema.NewPanel(id, id)
	p.Elements = children
	return p
}

func dynamicPanel(id string, template ...schema.Element) *schema.DynamicPanel {
	d := schema.NewDynamicPanel(id, id)
	d.TemplateElements = template
	return d
}

func formOf(elements ...schema.Element) schema.Form {
	return schema.NewForm().WithElements(elements)
}

func TestMoveSameContainerUsesIndexAsGiven(t *testing.T) {
	form := formOf(question("A"), question("B"), question("C"))

	got, err := dnd.Move(form, dnd.RootAt(0), dnd.RootAt(2))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "C", "A"}, tree.Identifiers(got.Elements)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	got, err = dnd.Move(form, dnd.RootAt(2), dnd.RootAt(0))
	if err != nil {
		t.Fatalf("move up: %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, tree.Identifiers(got.Elements)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, tree.Identifiers(form.Elements)); diff != "" {
		t.Fatalf("input form changed (-want +got):\n%s", diff)
	}
}

func TestMovePanelToDynamicPanelTemplate(t *testing.T) {
	form := formOf(
		panel("P", question("X"), question("Y")),
		dynamicPanel("D", question("Z")),
	)

	got, err := dnd.Move(form,
		dnd.Location{Type: dnd.Panel, ContainerID: "P", Index: 0},
		dnd.Location{Type: dnd.DynamicPanel, ContainerID: "D", Index: 0},
	)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	p := got.Elements[0].(*schema.Panel)
	d := got.Elements[1].(*schema.DynamicPanel)
	if diff := cmp.Diff([]string{"Y"}, tree.Identifiers(p.Elements)); diff != "" {
		t.Fatalf("panel mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"X", "Z"}, tree.Identifiers(d.TemplateElements)); diff != "" {
		t.Fatalf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveBetweenDepths(t *testing.T) {
	form := formOf(
		question("A"),
		panel("outer", question("B"), panel("inner", question("C"))),
	)

	got, err := dnd.Move(form,
		dnd.Location{Type: dnd.Panel, ContainerID: "inner", Index: 0},
		dnd.RootAt(0),
	)
	if err != nil {
		t.Fatalf("move out: %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A", "outer", "B", "inner"}, tree.Identifiers(got.Elements)); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}

	got, err = dnd.Move(got, dnd.RootAt(1), dnd.Location{Type: dnd.Panel, ContainerID: "inner", Index: 5})
	if err != nil {
		t.Fatalf("move in: %v", err)
	}
	pos, ok := tree.Locate(got.Elements, "A")
	if !ok || pos.ContainerID != "inner" || pos.Index != 0 {
		t.Fatalf("unexpected position %+v (found=%v)", pos, ok)
	}
}

func TestMoveIdentityLeavesTreeUnchanged(t *testing.T) {
	form := formOf(
		question("A"),
		panel("P", question("X"), question("Y")),
		dynamicPanel("D", question("Z")),
	)
	locations := []dnd.Location{
		dnd.RootAt(0),
		dnd.RootAt(2),
		{Type: dnd.Panel, ContainerID: "P", Index: 1},
		{Type: dnd.DynamicPanel, ContainerID: "D", Index: 0},
	}
	for _, loc := range locations {
		t.Run(loc.String(), func(t *testing.T) {
			got, err := dnd.Move(form, loc, loc)
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if diff := cmp.Diff(form, got); diff != "" {
				t.Fatalf("identity move changed the form (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveConservesElements(t *testing.T) {
	form := formOf(
		question("A"),
		panel("P", question("X"), panel("Q", question("W"))),
		dynamicPanel("D", question("Z"), question("V")),
	)
	total := tree.Count(form.Elements)

	var sources []dnd.Location
	for _, id := range tree.Identifiers(form.Elements) {
		pos, ok := tree.Locate(form.Elements, id)
		if !ok {
			t.Fatalf("locate %q", id)
		}
		sources = append(sources, dnd.FromPosition(pos))
	}
	dests := []dnd.Location{
		dnd.RootAt(0), dnd.RootAt(3),
		{Type: dnd.Panel, ContainerID: "P", Index: 1},
		{Type: dnd.Panel, ContainerID: "Q", Index: 0},
		{Type: dnd.DynamicPanel, ContainerID: "D", Index: 2},
	}

	for _, src := range sources {
		moved, ok := dnd.Resolve(form, src)
		if !ok {
			t.Fatalf("resolve %s", src)
		}
		for _, dest := range dests {
			got, err := dnd.Move(form, src, dest)
			if errors.Is(err, dnd.ErrCycle) {
				if diff := cmp.Diff(form, got); diff != "" {
					t.Fatalf("rejected move %s -> %s changed the form", src, dest)
				}
				continue
			}
			if err != nil {
				t.Fatalf("move %s -> %s: %v", src, dest, err)
			}
			if n := tree.Count(got.Elements); n != total {
				t.Fatalf("move %s -> %s: count %d, want %d", src, dest, n, total)
			}
			after, ok := tree.Find(got.Elements, moved.Identifier())
			if !ok || after != moved {
				t.Fatalf("move %s -> %s: moved element must be carried unchanged", src, dest)
			}
			if dups := tree.Duplicates(got.Elements); len(dups) != 0 {
				t.Fatalf("move %s -> %s duplicated %v", src, dest, dups)
			}
		}
	}
}

func TestMoveRejectsCycles(t *testing.T) {
	form := formOf(panel("outer", panel("inner", question("X"))))

	for _, dest := range []dnd.Location{
		{Type: dnd.Panel, ContainerID: "outer", Index: 0},
		{Type: dnd.Panel, ContainerID: "inner", Index: 0},
	} {
		got, err := dnd.Move(form, dnd.RootAt(0), dest)
		if !errors.Is(err, dnd.ErrCycle) {
			t.Fatalf("move into %s: expected ErrCycle, got %v", dest, err)
		}
		if diff := cmp.Diff(form, got); diff != "" {
			t.Fatalf("form changed (-want +got):\n%s", diff)
		}
	}
}

func TestMoveMissingSourceIsNoOp(t *testing.T) {
	form := formOf(question("A"), panel("P"))
	for _, src := range []dnd.Location{
		dnd.RootAt(7),
		{Type: dnd.Panel, ContainerID: "P", Index: 0},
		{Type: dnd.Panel, ContainerID: "missing", Index: 0},
		{Type: dnd.DynamicPanel, ContainerID: "P", Index: 0},
	} {
		got, err := dnd.Move(form, src, dnd.RootAt(0))
		if !errors.Is(err, dnd.ErrNotFound) {
			t.Fatalf("move from %s: expected ErrNotFound, got %v", src, err)
		}
		if diff := cmp.Diff(form, got); diff != "" {
			t.Fatalf("form changed (-want +got):\n%s", diff)
		}
	}

	if _, err := dnd.Move(form, dnd.Location{Type: "grid"}, dnd.RootAt(0)); !errors.Is(err, dnd.ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestMoveToVanishedDestinationDropsElement(t *testing.T) {
	form := formOf(question("A"), question("B"))

	got, err := dnd.Move(form, dnd.RootAt(0), dnd.Location{Type: dnd.Panel, ContainerID: "gone", Index: 0})
	if !errors.Is(err, dnd.ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"B"}, tree.Identifiers(got.Elements)); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestAtEnd(t *testing.T) {
	form := formOf(question("A"), panel("P", question("X")))
	loc, ok := dnd.AtEnd(form, dnd.Panel, "P")
	if !ok || loc.Index != 1 {
		t.Fatalf("unexpected end location %+v (ok=%v)", loc, ok)
	}
	loc, ok = dnd.AtEnd(form, dnd.Root, "")
	if !ok || loc.Index != 2 {
		t.Fatalf("unexpected root end location %+v (ok=%v)", loc, ok)
	}
	if _, ok := dnd.AtEnd(form, dnd.DynamicPanel, "P"); ok {
		t.Fatalf("container type must match")
	}
}
