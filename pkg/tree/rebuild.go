package tree

import "github.com/vladocavric/survey-js/pkg/schema"

// EditableSequence returns the child sequence the builder edits for a
// container: a panel's elements or a dynamic panel's template elements.
func EditableSequence(el schema.Element) ([]schema.Element, bool) {
	switch typed := el.(type) {
	case *schema.Panel:
		return typed.Elements, true
	case *schema.DynamicPanel:
		return typed.TemplateElements, true
	default:
		return nil, false
	}
}

// FindContainer returns the first container of the given type named id.
func FindContainer(elements []schema.Element, containerType schema.ElementType, id string) (schema.Element, bool) {
	var found schema.Element
	Walk(elements, func(el schema.Element, _ int) bool {
		if found != nil {
			return false
		}
		if el.ElementType() == containerType && el.Identifier() == id {
			found = el
			return false
		}
		return true
	})
	return found, found != nil
}

// UpdateContainer rebuilds the editable sequence of the first container of
// the given type named id using fn. Only the ancestors of that container are
// copied; the input slice is never modified. The boolean reports whether the
// container was found.
func UpdateContainer(elements []schema.Element, containerType schema.ElementType, id string, fn func([]schema.Element) []schema.Element) ([]schema.Element, bool) {
	for idx, el := range elements {
		var (
			next    schema.Element
			updated bool
		)
		switch typed := el.(type) {
		case *schema.Panel:
			if containerType == schema.ElementPanel && typed.ID == id {
				clone := typed.Clone()
				clone.Elements = fn(clone.Elements)
				next, updated = clone, true
				break
			}
			if children, ok := UpdateContainer(typed.Elements, containerType, id, fn); ok {
				clone := typed.Clone()
				clone.Elements = children
				next, updated = clone, true
			}
		case *schema.DynamicPanel:
			if containerType == schema.ElementDynamicPanel && typed.ID == id {
				clone := typed.Clone()
				clone.TemplateElements = fn(clone.TemplateElements)
				next, updated = clone, true
				break
			}
			if template, ok := UpdateContainer(typed.TemplateElements, containerType, id, fn); ok {
				clone := typed.Clone()
				clone.TemplateElements = template
				next, updated = clone, true
				break
			}
			if instances, ok := UpdateContainer(typed.Elements, containerType, id, fn); ok {
				clone := typed.Clone()
				clone.Elements = instances
				next, updated = clone, true
			}
		}
		if updated {
			out := append([]schema.Element(nil), elements...)
			out[idx] = next
			return out, true
		}
	}
	return elements, false
}

// Map rebuilds the tree bottom-up. fn receives every element after its
// descendants were rebuilt and returns the replacement plus whether to keep
// it; dropping a container drops its descendants with it. Sequences that did
// not change are returned as-is so untouched branches stay shared.
func Map(elements []schema.Element, fn func(schema.Element) (schema.Element, bool)) []schema.Element {
	var out []schema.Element
	changed := false
	for idx, el := range elements {
		rebuilt := rebuildChildren(el, fn)
		next, keep := fn(rebuilt)
		if !changed && keep && next == el {
			continue
		}
		if !changed {
			out = make([]schema.Element, idx, len(elements))
			copy(out, elements[:idx])
			changed = true
		}
		if keep {
			out = append(out, next)
		}
	}
	if !changed {
		return elements
	}
	return out
}

func rebuildChildren(el schema.Element, fn func(schema.Element) (schema.Element, bool)) schema.Element {
	switch typed := el.(type) {
	case *schema.Panel:
		children := Map(typed.Elements, fn)
		if sameSequence(children, typed.Elements) {
			return typed
		}
		clone := typed.Clone()
		clone.Elements = children
		return clone
	case *schema.DynamicPanel:
		template := Map(typed.TemplateElements, fn)
		instances := Map(typed.Elements, fn)
		if sameSequence(template, typed.TemplateElements) && sameSequence(instances, typed.Elements) {
			return typed
		}
		clone := typed.Clone()
		clone.TemplateElements = template
		clone.Elements = instances
		return clone
	default:
		return el
	}
}

func sameSequence(a, b []schema.Element) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}

// Insert returns a copy of seq with el inserted at index. The index is
// clamped to the sequence bounds.
func Insert(seq []schema.Element, index int, el schema.Element) []schema.Element {
	if index < 0 {
		index = 0
	}
	if index > len(seq) {
		index = len(seq)
	}
	out := make([]schema.Element, 0, len(seq)+1)
	out = append(out, seq[:index]...)
	out = append(out, el)
	out = append(out, seq[index:]...)
	return out
}

// RemoveAt returns a copy of seq without the element at index. An
// out-of-range index yields an unchanged copy.
func RemoveAt(seq []schema.Element, index int) []schema.Element {
	out := make([]schema.Element, 0, len(seq))
	for i, el := range seq {
		if i == index {
			continue
		}
		out = append(out, el)
	}
	return out
}

// At returns the element at index when it exists.
func At(seq []schema.Element, index int) (schema.Element, bool) {
	if index < 0 || index >= len(seq) {
		return nil, false
	}
	el := seq[index]
	return el, el != nil
}
