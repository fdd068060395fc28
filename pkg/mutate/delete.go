package mutate

import (
	"fmt"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// Delete removes every element identified by id from wherever it lives.
// Containers are removed together with their descendants.
func Delete(form schema.Form, id string) (schema.Form, error) {
	if _, ok := tree.Find(form.Elements, id); !ok {
		return form, fmt.Errorf("mutate: delete %q: %w", id, ErrNotFound)
	}
	elements := tree.Map(form.Elements, func(el schema.Element) (schema.Element, bool) {
		return el, el.Identifier() != id
	})
	return form.WithElements(elements), nil
}

// Removed lists the identifiers that Delete(form, id) would discard: the
// element itself and all of its descendants.
func Removed(form schema.Form, id string) []string {
	var out []string
	tree.Walk(form.Elements, func(el schema.Element, _ int) bool {
		if el.Identifier() != id {
			return true
		}
		out = append(out, tree.Identifiers([]schema.Element{el})...)
		return false
	})
	return out
}

// SetMeta replaces the form's display title and description.
func SetMeta(form schema.Form, title, description string) schema.Form {
	form.Title = title
	form.Description = description
	return form
}
