package expr

import (
	"fmt"
	"strings"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
	"github.com/vladocavric/survey-js/pkg/visibility"
)

// Diagnostic is one problem found in an element. Rule holds the offending
// visibleIf rule, if any.
type Diagnostic struct {
	ElementID string `json:"elementId"`
	Rule      string `json:"rule"`
	Message   string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Rule == "" {
		return d.ElementID + ": " + d.Message
	}
	return fmt.Sprintf("%s: %s (%q)", d.ElementID, d.Message, d.Rule)
}

// Lint parses every visibleIf rule in form and reports syntax errors,
// references to identifiers that do not resolve and self references.
// Diagnostics follow tree lookup order.
func Lint(form schema.Form) []Diagnostic {
	var out []Diagnostic
	tree.Walk(form.Elements, func(el schema.Element, _ int) bool {
		rule := strings.TrimSpace(schema.VisibleIfOf(el))
		if rule == "" {
			return true
		}
		id := el.Identifier()
		parsed, err := Parse(rule)
		if err != nil {
			out = append(out, Diagnostic{ElementID: id, Rule: rule, Message: err.Error()})
			return true
		}
		for _, ref := range parsed.References() {
			switch {
			case ref == id:
				out = append(out, Diagnostic{ElementID: id, Rule: rule, Message: "rule references its own element"})
			case !tree.IsNameUsed(ref, form.Elements):
				out = append(out, Diagnostic{ElementID: id, Rule: rule, Message: fmt.Sprintf("unknown reference %q", ref)})
			}
		}
		return true
	})
	return out
}

// Resolve reports, for every element of form, whether it is shown given the
// sample answers in ctx. An element is shown when its visible flag is set,
// its rule holds and its container is shown. Rules that fail to parse do not
// hide anything.
func Resolve(form schema.Form, ctx visibility.Context) map[string]bool {
	return ResolveWith(form, ctx, New())
}

// ResolveWith is Resolve with a caller supplied evaluator. A nil evaluator
// falls back to the parser in this package; evaluation errors leave the
// element shown.
func ResolveWith(form schema.Form, ctx visibility.Context, evaluator visibility.Evaluator) map[string]bool {
	if evaluator == nil {
		evaluator = New()
	}
	out := make(map[string]bool)
	resolve(form.Elements, true, ctx, evaluator, out)
	return out
}

func resolve(elements []schema.Element, parentShown bool, ctx visibility.Context, evaluator visibility.Evaluator, out map[string]bool) {
	for _, el := range elements {
		if el == nil {
			continue
		}
		shown := parentShown && schema.VisibleOf(el)
		if shown {
			if ok, err := evaluator.Eval(el.Identifier(), schema.VisibleIfOf(el), ctx); err == nil {
				shown = ok
			}
		}
		if _, seen := out[el.Identifier()]; !seen {
			out[el.Identifier()] = shown
		}
		switch typed := el.(type) {
		case *schema.Panel:
			resolve(typed.Elements, shown, ctx, evaluator, out)
		case *schema.DynamicPanel:
			resolve(typed.TemplateElements, shown, ctx, evaluator, out)
		}
	}
}
