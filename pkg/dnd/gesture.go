package dnd

import (
	"strconv"

	"github.com/vladocavric/survey-js/pkg/schema"
)

// Slot identifies a hovered drop slot: a position inside a container or the
// terminal end marker. An empty ContainerID denotes the root sequence.
type Slot struct {
	ContainerID string
	Index       int
	End         bool
}

// RootSlot returns the root-sequence slot at index.
func RootSlot(index int) Slot { return Slot{Index: index} }

// ChildSlot returns the slot at index inside a container.
func ChildSlot(containerID string, index int) Slot {
	return Slot{ContainerID: containerID, Index: index}
}

// EndSlot returns the terminal slot of a container.
func EndSlot(containerID string) Slot {
	return Slot{ContainerID: containerID, End: true}
}

// IsChild reports whether the slot lies inside a container.
func (s Slot) IsChild() bool { return s.ContainerID != "" }

func (s Slot) String() string {
	container := s.ContainerID
	if container == "" {
		container = string(Root)
	}
	if s.End {
		return container + ":end"
	}
	return container + ":" + strconv.Itoa(s.Index)
}

// DropEvent is one drop delivered to nested handlers, innermost first.
// Payload holds the child-drag origin, if any.
type DropEvent struct {
	Payload string
	stopped bool
}

// StopPropagation keeps outer handlers from acting on the event.
func (e *DropEvent) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether an inner handler consumed the event.
func (e *DropEvent) PropagationStopped() bool { return e.stopped }

// Gesture tracks one drag gesture: idle, then dragging with any number of
// hover updates, then idle again on drop or end. It never holds a copy of
// the form; drops take the current form and return the next one.
type Gesture struct {
	dragging  bool
	rootIndex int
	hasRoot   bool
	hovered   Slot
	hasHover  bool
}

// NewGesture returns an idle gesture.
func NewGesture() *Gesture {
	return &Gesture{}
}

// BeginRootDrag starts dragging the root element at index. Root drags carry
// no payload; drops fall back to this index.
func (g *Gesture) BeginRootDrag(index int) {
	g.reset()
	g.dragging = true
	g.rootIndex = index
	g.hasRoot = true
}

// BeginChildDrag starts dragging the element at src and returns the payload
// the drag carries to its drop.
func (g *Gesture) BeginChildDrag(src Location) (string, error) {
	raw, err := EncodePayload(src)
	if err != nil {
		return "", err
	}
	g.reset()
	g.dragging = true
	return raw, nil
}

// Dragging reports whether a gesture is in progress.
func (g *Gesture) Dragging() bool { return g.dragging }

// RootIndex returns the dragged root index of a root-origin drag.
func (g *Gesture) RootIndex() (int, bool) { return g.rootIndex, g.hasRoot }

// Hover records slot as the single hovered drop slot.
func (g *Gesture) Hover(slot Slot) {
	g.hovered = slot
	g.hasHover = true
}

// Leave clears the hovered slot.
func (g *Gesture) Leave() {
	g.hovered = Slot{}
	g.hasHover = false
}

// Hovered returns the hovered drop slot.
func (g *Gesture) Hovered() (Slot, bool) { return g.hovered, g.hasHover }

// End finishes the gesture without a drop. The form is not involved.
func (g *Gesture) End() { g.reset() }

func (g *Gesture) reset() {
	*g = Gesture{}
}

func (g *Gesture) origin(ev *DropEvent) (Location, error) {
	if ev != nil && ev.Payload != "" {
		return DecodePayload(ev.Payload)
	}
	if g.hasRoot {
		return RootAt(g.rootIndex), nil
	}
	return Location{}, ErrNoDrag
}

// DropOnChild handles a drop on a slot inside a container. The origin comes
// from the event payload or, failing that, the dragged root index. The
// event's propagation is stopped before the move so outer handlers ignore
// it, and the gesture returns to idle.
func (g *Gesture) DropOnChild(form schema.Form, ev *DropEvent, dest Location) (schema.Form, error) {
	if ev == nil {
		ev = &DropEvent{}
	}
	ev.StopPropagation()
	src, err := g.origin(ev)
	g.reset()
	if err != nil {
		return form, err
	}
	return Move(form, src, dest)
}

// DropOnRoot handles a drop on the root sequence at index. It does nothing
// when an inner handler already consumed the event or when a child slot is
// hovered; in the latter case the drop belongs to that slot.
func (g *Gesture) DropOnRoot(form schema.Form, ev *DropEvent, index int) (schema.Form, error) {
	if ev != nil && ev.PropagationStopped() {
		g.reset()
		return form, nil
	}
	if slot, ok := g.Hovered(); ok && slot.IsChild() {
		g.reset()
		return form, nil
	}
	src, err := g.origin(ev)
	g.reset()
	if err != nil {
		return form, err
	}
	return Move(form, src, RootAt(index))
}
