package tree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

func sampleTree() []schema.Element {
	inner := schema.NewPanel("inner", "Inner")
	inner.Elements = []schema.Element{schema.NewQuestion(schema.QuestionText, "deep", "Deep")}

	outer := schema.NewPanel("outer", "Outer")
	outer.Elements = []schema.Element{
		schema.NewQuestion(schema.QuestionText, "first", "First"),
		inner,
	}

	dp := schema.NewDynamicPanel("people", "People")
	dp.TemplateElements = []schema.Element{schema.NewQuestion(schema.QuestionEmail, "email", "Email")}
	dp.Elements = []schema.Element{schema.NewQuestion(schema.QuestionText, "instance", "Instance")}

	return []schema.Element{
		schema.NewQuestion(schema.QuestionText, "root", "Root"),
		outer,
		dp,
	}
}

func TestFindWalksEverySequence(t *testing.T) {
	elements := sampleTree()
	for _, id := range []string{"root", "outer", "first", "inner", "deep", "people", "email", "instance"} {
		el, ok := tree.Find(elements, id)
		if !ok {
			t.Fatalf("expected %q to resolve", id)
		}
		if el.Identifier() != id {
			t.Fatalf("Find(%q) returned %q", id, el.Identifier())
		}
	}
	if _, ok := tree.Find(elements, "missing"); ok {
		t.Fatalf("expected missing id to fail")
	}
}

func TestFindReturnsFirstMatchInLookupOrder(t *testing.T) {
	dp := schema.NewDynamicPanel("dp", "DP")
	template := schema.NewQuestion(schema.QuestionText, "dup", "Template")
	dp.TemplateElements = []schema.Element{template}
	dp.Elements = []schema.Element{schema.NewQuestion(schema.QuestionText, "dup", "Instance")}

	el, ok := tree.Find([]schema.Element{dp}, "dup")
	if !ok {
		t.Fatalf("expected dup to resolve")
	}
	if el != schema.Element(template) {
		t.Fatalf("expected template element to win, got %q", schema.TitleOf(el))
	}
}

func TestIdentifiersAndDuplicates(t *testing.T) {
	elements := sampleTree()
	want := []string{"root", "outer", "first", "inner", "deep", "people", "email", "instance"}
	if diff := cmp.Diff(want, tree.Identifiers(elements)); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Count(elements); got != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), got)
	}
	if dups := tree.Duplicates(elements); len(dups) != 0 {
		t.Fatalf("expected no duplicates, got %v", dups)
	}

	elements = append(elements, schema.NewPanel("first", "Clash"))
	if diff := cmp.Diff([]string{"first"}, tree.Duplicates(elements)); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestLocate(t *testing.T) {
	elements := sampleTree()
	tests := []struct {
		id   string
		want tree.Position
	}{
		{"root", tree.Position{Index: 0}},
		{"people", tree.Position{Index: 2}},
		{"inner", tree.Position{ContainerType: schema.ElementPanel, ContainerID: "outer", Index: 1}},
		{"deep", tree.Position{ContainerType: schema.ElementPanel, ContainerID: "inner", Index: 0}},
		{"email", tree.Position{ContainerType: schema.ElementDynamicPanel, ContainerID: "people", Index: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := tree.Locate(elements, tt.id)
			if !ok {
				t.Fatalf("expected %q to be located", tt.id)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("position mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, ok := tree.Locate(elements, "instance"); ok {
		t.Fatalf("instance elements are not editable positions")
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Home Address", want: "FORM_STYLE_DATA.HOME_ADDRESS"},
		{title: "Straße", want: "FORM_STYLE_DATA.STRASSE"},
		{title: "café 2", want: "FORM_STYLE_DATA.CAF__2"},
		{title: "Hi😀", want: "FORM_STYLE_DATA.HI__"},
		{title: "", want: "FORM_STYLE_DATA."},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := tree.BaseName(tt.title); got != tt.want {
				t.Fatalf("BaseName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestGenerateUniqueName(t *testing.T) {
	if got := tree.BaseName("First name?"); got != "FORM_STYLE_DATA.FIRST_NAME_" {
		t.Fatalf("unexpected base name %q", got)
	}

	var elements []schema.Element
	first := tree.GenerateUniqueName("Name", elements)
	elements = append(elements, schema.NewQuestion(schema.QuestionText, first, "Name"))
	second := tree.GenerateUniqueName("Name", elements)
	panel := schema.NewPanel("group", "Group")
	panel.Elements = []schema.Element{schema.NewQuestion(schema.QuestionText, second, "Name")}
	elements = append(elements, panel)
	third := tree.GenerateUniqueName("name", elements)

	want := []string{"FORM_STYLE_DATA.NAME", "FORM_STYLE_DATA.NAME_1", "FORM_STYLE_DATA.NAME_2"}
	if diff := cmp.Diff(want, []string{first, second, third}); diff != "" {
		t.Fatalf("generated names mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateUniqueNameSharesNamespaceWithContainers(t *testing.T) {
	elements := []schema.Element{schema.NewPanel(tree.BaseName("Contact"), "Contact")}
	if got := tree.GenerateUniqueName("Contact", elements); got != "FORM_STYLE_DATA.CONTACT_1" {
		t.Fatalf("expected question name to avoid panel id, got %q", got)
	}
}

func TestIsAutoNamed(t *testing.T) {
	if !tree.IsAutoNamed("FORM_STYLE_DATA.EMAIL") {
		t.Fatalf("expected prefixed id to be auto-named")
	}
	if tree.IsAutoNamed("email") {
		t.Fatalf("expected manual id to be kept")
	}
}

func TestUpdateContainerSharesUntouchedBranches(t *testing.T) {
	elements := sampleTree()
	added := schema.NewQuestion(schema.QuestionText, "added", "Added")

	got, ok := tree.UpdateContainer(elements, schema.ElementPanel, "inner", func(seq []schema.Element) []schema.Element {
		return append(seq, added)
	})
	if !ok {
		t.Fatalf("expected inner panel to be found")
	}
	if got[0] != elements[0] || got[2] != elements[2] {
		t.Fatalf("untouched siblings must be shared")
	}
	if got[1] == elements[1] {
		t.Fatalf("ancestor panel must be copied")
	}
	if _, ok := tree.Find(elements, "added"); ok {
		t.Fatalf("input tree must not change")
	}
	pos, ok := tree.Locate(got, "added")
	if !ok || pos.ContainerID != "inner" || pos.Index != 1 {
		t.Fatalf("unexpected position %+v (found=%v)", pos, ok)
	}

	if _, ok := tree.UpdateContainer(elements, schema.ElementDynamicPanel, "outer", func(seq []schema.Element) []schema.Element {
		return seq
	}); ok {
		t.Fatalf("container type must match")
	}
}

func TestMapDropsSubtrees(t *testing.T) {
	elements := sampleTree()
	got := tree.Map(elements, func(el schema.Element) (schema.Element, bool) {
		return el, el.Identifier() != "outer"
	})
	want := []string{"root", "people", "email", "instance"}
	if diff := cmp.Diff(want, tree.Identifiers(got)); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
	if got[1] != elements[2] {
		t.Fatalf("untouched dynamic panel must be shared")
	}

	same := tree.Map(elements, func(el schema.Element) (schema.Element, bool) { return el, true })
	if &same[0] != &elements[0] {
		t.Fatalf("identity map must return the input sequence")
	}
}

func TestInsertClampsIndex(t *testing.T) {
	a := schema.NewQuestion(schema.QuestionText, "a", "A")
	b := schema.NewQuestion(schema.QuestionText, "b", "B")
	c := schema.NewQuestion(schema.QuestionText, "c", "C")
	seq := []schema.Element{a, b}

	tests := []struct {
		index int
		want  []string
	}{
		{-3, []string{"c", "a", "b"}},
		{1, []string{"a", "c", "b"}},
		{9, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		got := tree.Identifiers(tree.Insert(seq, tt.index, c))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("Insert(%d) mismatch (-want +got):\n%s", tt.index, diff)
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, tree.Identifiers(seq)); diff != "" {
		t.Fatalf("input sequence changed (-want +got):\n%s", diff)
	}
}
