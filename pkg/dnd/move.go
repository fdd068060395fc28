package dnd

import (
	"fmt"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// Move relocates the element at src to dest.
//
// The element is removed from its source sequence first and then inserted
// at dest.Index as given, clamped to the destination bounds. The index is
// not shifted when both locations share a container, so moving index 0 to
// index 2 of [A B C] yields [B C A].
//
// A destination container that cannot be found after the removal yields
// ErrDestinationNotFound together with the form minus the moved element.
// Every other error returns the input form.
func Move(form schema.Form, src, dest Location) (schema.Form, error) {
	if err := src.validate(); err != nil {
		return form, err
	}
	if err := dest.validate(); err != nil {
		return form, err
	}
	moved, ok := Resolve(form, src)
	if !ok {
		return form, fmt.Errorf("dnd: move from %s: %w", src, ErrNotFound)
	}
	if dest.Type != Root {
		if _, inside := tree.FindContainer([]schema.Element{moved}, dest.Type.elementType(), dest.ContainerID); inside {
			return form, fmt.Errorf("dnd: move %q into %s: %w", moved.Identifier(), dest, ErrCycle)
		}
	}

	removed := remove(form.Elements, src)
	inserted, ok := insert(removed, dest, moved)
	if !ok {
		return form.WithElements(removed), fmt.Errorf("dnd: move %q to %s: %w", moved.Identifier(), dest, ErrDestinationNotFound)
	}
	return form.WithElements(inserted), nil
}

func remove(elements []schema.Element, src Location) []schema.Element {
	if src.Type == Root {
		return tree.RemoveAt(elements, src.Index)
	}
	out, _ := tree.UpdateContainer(elements, src.Type.elementType(), src.ContainerID, func(seq []schema.Element) []schema.Element {
		return tree.RemoveAt(seq, src.Index)
	})
	return out
}

func insert(elements []schema.Element, dest Location, el schema.Element) ([]schema.Element, bool) {
	if dest.Type == Root {
		return tree.Insert(elements, dest.Index, el), true
	}
	return tree.UpdateContainer(elements, dest.Type.elementType(), dest.ContainerID, func(seq []schema.Element) []schema.Element {
		return tree.Insert(seq, dest.Index, el)
	})
}
