package editor

import (
	"context"

	"github.com/vladocavric/survey-js/pkg/dnd"
	"github.com/vladocavric/survey-js/pkg/schema"
)

// BeginRootDrag starts dragging the root element at index.
func (s *Session) BeginRootDrag(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture.BeginRootDrag(index)
}

// BeginChildDrag starts dragging the element at src and returns the payload
// the host attaches to the drag.
func (s *Session) BeginChildDrag(src dnd.Location) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture.BeginChildDrag(src)
}

// Hover marks slot as the drop slot under the pointer.
func (s *Session) Hover(slot dnd.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture.Hover(slot)
}

// Leave clears the hovered drop slot.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture.Leave()
}

// EndDrag finishes a gesture without a drop. The form is left untouched.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture.End()
}

// DropOnChild completes a drag on a slot inside a container and stops the
// event from reaching the root handler.
func (s *Session) DropOnChild(ctx context.Context, ev *dnd.DropEvent, dest dnd.Location) error {
	if ev == nil {
		ev = &dnd.DropEvent{}
	}
	return s.apply(ctx, "drop on child", func(form schema.Form) (schema.Form, error) {
		next, err := s.gesture.DropOnChild(form, ev, dest)
		if err == nil {
			s.selection.SetExpanded(dest.ContainerID, true)
		}
		return next, err
	})
}

// DropOnRoot completes a drag on the root sequence at index. Events already
// handled by a container, and drops while a container slot is hovered, only
// end the gesture.
func (s *Session) DropOnRoot(ctx context.Context, ev *dnd.DropEvent, index int) error {
	s.mu.Lock()
	ignored := ev != nil && ev.PropagationStopped()
	if slot, ok := s.gesture.Hovered(); ok && slot.IsChild() {
		ignored = true
	}
	if ignored {
		s.gesture.End()
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "root drop ignored", "index", index)
		return nil
	}
	s.mu.Unlock()

	return s.apply(ctx, "drop on root", func(form schema.Form) (schema.Form, error) {
		return s.gesture.DropOnRoot(form, ev, index)
	})
}

// Move relocates the element at src to dest without a gesture.
func (s *Session) Move(ctx context.Context, src, dest dnd.Location) error {
	return s.apply(ctx, "move", func(form schema.Form) (schema.Form, error) {
		return dnd.Move(form, src, dest)
	})
}
