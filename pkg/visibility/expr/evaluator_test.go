package expr

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/visibility"
)

func TestEvaluatorComparisons(t *testing.T) {
	t.Parallel()

	ctx := visibility.Context{Values: map[string]any{
		"FORM_STYLE_DATA.COUNTRY": "NL",
		"age":                     42,
		"subscribed":              "true",
		"tags":                    []any{},
	}}
	tests := []struct {
		rule string
		want bool
	}{
		{"", true},
		{"{FORM_STYLE_DATA.COUNTRY} = 'NL'", true},
		{"{FORM_STYLE_DATA.COUNTRY} <> 'NL'", false},
		{`{FORM_STYLE_DATA.COUNTRY} == "DE" or {age} >= 18`, true},
		{"{age} > 50 and {subscribed} = true", false},
		{"not ({age} < 18) && subscribed", true},
		{"{age} = '42'", true},
		{"{missing} = null", true},
		{"{missing} empty and {tags} empty", true},
		{"{age} notempty", true},
		{"!{missing}", true},
		{"{age} = {age}", true},
		{"extras.role = 'admin'", true},
	}
	eval := New()
	for _, tt := range tests {
		ctx := ctx
		ctx.Extras = map[string]any{"role": "admin"}
		got, err := eval.Eval("q", tt.rule, ctx)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tt.rule, err)
		}
		if got != tt.want {
			t.Fatalf("Eval(%q) = %v, want %v", tt.rule, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, rule := range []string{
		"{a} = ",
		"({a} = 1",
		"{a} & {b}",
		"{a",
		"{} = 1",
		"'unterminated",
		"= 1",
		"{a} = 1 {b}",
	} {
		if _, err := Parse(rule); err == nil {
			t.Fatalf("Parse(%q): expected error", rule)
		} else if !strings.HasPrefix(err.Error(), "visibility/expr:") {
			t.Fatalf("Parse(%q): unexpected error %v", rule, err)
		}
	}
}

func TestReferences(t *testing.T) {
	t.Parallel()

	parsed, err := Parse("{a} = 'x' and (b or {c} <> {a}) and extras.flag and {d} = plain")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, parsed.References()); diff != "" {
		t.Fatalf("references mismatch (-want +got):\n%s", diff)
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	t.Parallel()

	ctx := visibility.Context{Values: map[string]any{"q": `it's "quoted"`}}
	ok, err := New().Eval("q", `{q} = 'it\'s "quoted"'`, ctx)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected escaped literal to match")
	}
}

func lintForm() schema.Form {
	country := schema.NewQuestion(schema.QuestionDropdown, "country", "Country")
	city := schema.NewQuestion(schema.QuestionText, "city", "City")
	city.VisibleIf = "{country} = 'NL'"
	broken := schema.NewQuestion(schema.QuestionText, "broken", "Broken")
	broken.VisibleIf = "{country} = "
	self := schema.NewQuestion(schema.QuestionText, "self", "Self")
	self.VisibleIf = "{self} notempty"

	panel := schema.NewPanel("details", "Details")
	panel.VisibleIf = "{ghost} = 1"
	panel.Elements = []schema.Element{city, broken, self}
	return schema.NewForm().WithElements([]schema.Element{country, panel})
}

func TestLint(t *testing.T) {
	t.Parallel()

	got := Lint(lintForm())
	want := []Diagnostic{
		{ElementID: "details", Rule: "{ghost} = 1", Message: `unknown reference "ghost"`},
		{ElementID: "broken", Rule: "{country} =", Message: "visibility/expr: missing operand"},
		{ElementID: "self", Rule: "{self} notempty", Message: "rule references its own element"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	form := lintForm()
	got := Resolve(form, visibility.Context{Values: map[string]any{"country": "NL"}})
	want := map[string]bool{
		"country": true,
		"details": false,
		"city":    false,
		"broken":  false,
		"self":    false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visibility mismatch (-want +got):\n%s", diff)
	}

	panel := form.Elements[1].(*schema.Panel)
	panel.VisibleIf = ""
	got = Resolve(form, visibility.Context{Values: map[string]any{"country": "DE"}})
	if !got["details"] || got["city"] || !got["broken"] || got["self"] {
		t.Fatalf("unexpected visibility %v", got)
	}
}

func TestResolveWith(t *testing.T) {
	t.Parallel()

	failing := visibility.EvaluatorFunc(func(elementID, rule string, _ visibility.Context) (bool, error) {
		if elementID == "details" {
			return false, errors.New("unsupported rule")
		}
		return elementID != "country", nil
	})
	got := ResolveWith(lintForm(), visibility.Context{}, failing)
	want := map[string]bool{
		"country": false,
		"details": true,
		"city":    true,
		"broken":  true,
		"self":    true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visibility mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Resolve(lintForm(), visibility.Context{}), ResolveWith(lintForm(), visibility.Context{}, nil)); diff != "" {
		t.Fatalf("nil evaluator should match Resolve (-want +got):\n%s", diff)
	}
}
