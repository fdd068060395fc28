package dnd

import "errors"

var (
	// ErrNotFound reports a source location with no element. The form is
	// left unchanged.
	ErrNotFound = errors.New("dnd: no element at source location")
	// ErrDestinationNotFound reports a destination container that does not
	// exist once the element was removed from its source. The element is
	// lost and the returned form no longer contains it.
	ErrDestinationNotFound = errors.New("dnd: destination container not found")
	// ErrCycle reports a container dropped into itself or a descendant.
	ErrCycle           = errors.New("dnd: container cannot be moved into itself")
	ErrInvalidLocation = errors.New("dnd: invalid location")
	ErrInvalidPayload  = errors.New("dnd: invalid drag payload")
	// ErrNoDrag reports a drop with neither a payload nor a dragged root
	// index.
	ErrNoDrag = errors.New("dnd: no drag in progress")
)
