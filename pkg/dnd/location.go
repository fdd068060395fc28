package dnd

import (
	"fmt"
	"strconv"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// ContainerType names the kind of sequence a Location points into.
type ContainerType string

const (
	Root         ContainerType = "root"
	Panel        ContainerType = "panel"
	DynamicPanel ContainerType = "dynamicpanel"
)

// Valid reports whether t is a known container type.
func (t ContainerType) Valid() bool {
	switch t {
	case Root, Panel, DynamicPanel:
		return true
	default:
		return false
	}
}

func (t ContainerType) elementType() schema.ElementType {
	switch t {
	case Panel:
		return schema.ElementPanel
	case DynamicPanel:
		return schema.ElementDynamicPanel
	default:
		return ""
	}
}

// Location addresses a slot in an editable sequence: the root sequence, a
// panel's elements or a dynamic panel's template elements. ContainerID is
// empty for the root sequence.
type Location struct {
	Type        ContainerType
	ContainerID string
	Index       int
}

// RootAt returns the root-sequence location at index.
func RootAt(index int) Location {
	return Location{Type: Root, Index: index}
}

// In returns the location at index inside the given container.
func In(container schema.Element, index int) (Location, bool) {
	switch container.(type) {
	case *schema.Panel:
		return Location{Type: Panel, ContainerID: container.Identifier(), Index: index}, true
	case *schema.DynamicPanel:
		return Location{Type: DynamicPanel, ContainerID: container.Identifier(), Index: index}, true
	default:
		return Location{}, false
	}
}

// FromPosition converts an index position into a Location.
func FromPosition(pos tree.Position) Location {
	switch pos.ContainerType {
	case schema.ElementPanel:
		return Location{Type: Panel, ContainerID: pos.ContainerID, Index: pos.Index}
	case schema.ElementDynamicPanel:
		return Location{Type: DynamicPanel, ContainerID: pos.ContainerID, Index: pos.Index}
	default:
		return RootAt(pos.Index)
	}
}

// SameContainer reports whether both locations point into one sequence.
func (l Location) SameContainer(other Location) bool {
	if l.Type == Root || other.Type == Root {
		return l.Type == other.Type
	}
	return l.Type == other.Type && l.ContainerID == other.ContainerID
}

func (l Location) validate() error {
	if !l.Type.Valid() {
		return fmt.Errorf("dnd: location type %q: %w", l.Type, ErrInvalidLocation)
	}
	if l.Type != Root && l.ContainerID == "" {
		return fmt.Errorf("dnd: %s location without container id: %w", l.Type, ErrInvalidLocation)
	}
	return nil
}

func (l Location) String() string {
	if l.Type == Root {
		return "root[" + strconv.Itoa(l.Index) + "]"
	}
	return string(l.Type) + ":" + l.ContainerID + "[" + strconv.Itoa(l.Index) + "]"
}

// Sequence returns the editable sequence a location points into.
func Sequence(form schema.Form, l Location) ([]schema.Element, bool) {
	if l.Type == Root {
		return form.Elements, true
	}
	container, ok := tree.FindContainer(form.Elements, l.Type.elementType(), l.ContainerID)
	if !ok {
		return nil, false
	}
	return tree.EditableSequence(container)
}

// Resolve returns the element at l.
func Resolve(form schema.Form, l Location) (schema.Element, bool) {
	seq, ok := Sequence(form, l)
	if !ok {
		return nil, false
	}
	return tree.At(seq, l.Index)
}

// AtEnd returns the location just past the last element of a sequence.
func AtEnd(form schema.Form, t ContainerType, containerID string) (Location, bool) {
	l := Location{Type: t, ContainerID: containerID}
	if err := l.validate(); err != nil {
		return Location{}, false
	}
	seq, ok := Sequence(form, l)
	if !ok {
		return Location{}, false
	}
	l.Index = len(seq)
	return l, true
}
