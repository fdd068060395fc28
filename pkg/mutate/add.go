package mutate

import (
	"fmt"
	"strings"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// RootTitle returns the title given to elements added to the root sequence.
func RootTitle(kind schema.Kind) string {
	return "New " + kind.Label()
}

// NestedTitle returns the title given to elements added inside a container.
func NestedTitle(kind schema.Kind) string {
	if kind.IsContainer() {
		return RootTitle(kind)
	}
	return "New " + kind.Label() + " Question"
}

// Add appends a new element of kind to the root sequence. The element gets
// the builder defaults and an identifier generated from its title.
func Add(form schema.Form, kind schema.Kind) (schema.Form, schema.Element, error) {
	title := RootTitle(kind)
	el, ok := schema.NewElement(kind, tree.GenerateUniqueName(title, form.Elements), title)
	if !ok {
		return form, nil, fmt.Errorf("mutate: add %q: %w", kind, ErrInvalidKind)
	}
	elements := make([]schema.Element, 0, len(form.Elements)+1)
	elements = append(elements, form.Elements...)
	elements = append(elements, el)
	return form.WithElements(elements), el, nil
}

// AddTo appends a new element of kind to the editable sequence of the
// container named containerID: a panel's elements or a dynamic panel's
// template elements. The container may sit at any depth. The generated
// identifier is unique across the whole tree.
func AddTo(form schema.Form, containerID string, kind schema.Kind) (schema.Form, schema.Element, error) {
	container, ok := tree.Find(form.Elements, containerID)
	if !ok {
		return form, nil, fmt.Errorf("mutate: add to %q: %w", containerID, ErrNotFound)
	}
	if _, ok := tree.EditableSequence(container); !ok {
		return form, nil, fmt.Errorf("mutate: add to question %q: %w", containerID, ErrInvalidKind)
	}

	title := NestedTitle(kind)
	el, ok := schema.NewElement(kind, tree.GenerateUniqueName(title, form.Elements), title)
	if !ok {
		return form, nil, fmt.Errorf("mutate: add %q: %w", kind, ErrInvalidKind)
	}
	elements, ok := tree.UpdateContainer(form.Elements, container.ElementType(), containerID, func(seq []schema.Element) []schema.Element {
		return tree.Insert(seq, len(seq), el)
	})
	if !ok {
		return form, nil, fmt.Errorf("mutate: add to %q: %w", containerID, ErrNotFound)
	}
	return form.WithElements(elements), el, nil
}

// Append adds prebuilt elements to the end of the root sequence, or to the
// editable sequence of containerID when it is not empty. Every identifier in
// the batch, descendants included, must be non-empty and unused in form and
// in the rest of the batch, and no member may be nil; otherwise nothing is
// added.
func Append(form schema.Form, containerID string, elements ...schema.Element) (schema.Form, error) {
	if len(elements) == 0 {
		return form, nil
	}
	if hasNil(elements) {
		return form, fmt.Errorf("mutate: append nil element: %w", ErrInvalidIdentifier)
	}
	seen := make(map[string]struct{})
	for _, id := range tree.Identifiers(elements) {
		if strings.TrimSpace(id) == "" {
			return form, fmt.Errorf("mutate: append: %w", ErrInvalidIdentifier)
		}
		if _, dup := seen[id]; dup || tree.IsNameUsed(id, form.Elements) {
			return form, fmt.Errorf("mutate: append %q: %w", id, ErrDuplicateIdentifier)
		}
		seen[id] = struct{}{}
	}

	if containerID == "" {
		out := make([]schema.Element, 0, len(form.Elements)+len(elements))
		out = append(out, form.Elements...)
		out = append(out, elements...)
		return form.WithElements(out), nil
	}

	container, ok := tree.Find(form.Elements, containerID)
	if !ok {
		return form, fmt.Errorf("mutate: append to %q: %w", containerID, ErrNotFound)
	}
	if _, ok := tree.EditableSequence(container); !ok {
		return form, fmt.Errorf("mutate: append to question %q: %w", containerID, ErrInvalidKind)
	}
	out, ok := tree.UpdateContainer(form.Elements, container.ElementType(), containerID, func(seq []schema.Element) []schema.Element {
		next := make([]schema.Element, 0, len(seq)+len(elements))
		next = append(next, seq...)
		return append(next, elements...)
	})
	if !ok {
		return form, fmt.Errorf("mutate: append to %q: %w", containerID, ErrNotFound)
	}
	return form.WithElements(out), nil
}

// hasNil reports whether elements hold a nil member at any depth.
func hasNil(elements []schema.Element) bool {
	for _, el := range elements {
		switch typed := el.(type) {
		case nil:
			return true
		case *schema.Question:
			if typed == nil {
				return true
			}
		case *schema.Panel:
			if typed == nil || hasNil(typed.Elements) {
				return true
			}
		case *schema.DynamicPanel:
			if typed == nil || hasNil(typed.TemplateElements) || hasNil(typed.Elements) {
				return true
			}
		}
	}
	return false
}
