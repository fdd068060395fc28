// Package selection keeps the UI-facing index of a form editor: the selected
// element and the set of expanded containers.
package selection

import (
	"slices"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// State is not safe for concurrent use; the editor session owns it.
type State struct {
	selected string
	expanded map[string]struct{}
}

// New returns a state with nothing selected or expanded.
func New() *State {
	return &State{expanded: make(map[string]struct{})}
}

// Select marks id as the selected element. An empty id clears the selection.
func (s *State) Select(id string) { s.selected = id }

// Clear drops the selection.
func (s *State) Clear() { s.selected = "" }

// Selected returns the selected identifier.
func (s *State) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// IsSelected reports whether id is the selected element.
func (s *State) IsSelected(id string) bool {
	return id != "" && s.selected == id
}

// SetExpanded records whether the container id is expanded.
func (s *State) SetExpanded(id string, expanded bool) {
	if id == "" {
		return
	}
	if expanded {
		s.expanded[id] = struct{}{}
		return
	}
	delete(s.expanded, id)
}

// Toggle flips the expansion of id and returns the new value.
func (s *State) Toggle(id string) bool {
	next := !s.IsExpanded(id)
	s.SetExpanded(id, next)
	return next
}

func (s *State) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// Expanded lists the expanded container ids in sorted order.
func (s *State) Expanded() []string {
	out := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Rename carries the selection and expansion of oldID over to newID.
func (s *State) Rename(oldID, newID string) {
	if oldID == newID || newID == "" {
		return
	}
	if s.selected == oldID {
		s.selected = newID
	}
	if _, ok := s.expanded[oldID]; ok {
		delete(s.expanded, oldID)
		s.expanded[newID] = struct{}{}
	}
}

// Forget drops every reference to id.
func (s *State) Forget(id string) {
	if s.selected == id {
		s.selected = ""
	}
	delete(s.expanded, id)
}

// Reconcile drops a selection or expansion entry whose identifier no longer
// resolves in form. Expansion entries that no longer name a container are
// dropped too.
func (s *State) Reconcile(form schema.Form) {
	if s.selected != "" && !tree.IsNameUsed(s.selected, form.Elements) {
		s.selected = ""
	}
	for id := range s.expanded {
		el, ok := tree.Find(form.Elements, id)
		if !ok {
			delete(s.expanded, id)
			continue
		}
		if _, container := tree.EditableSequence(el); !container {
			delete(s.expanded, id)
		}
	}
}

// Snapshot is a copy of the state for callers outside the session.
type Snapshot struct {
	Selected string   `json:"selected,omitempty"`
	Expanded []string `json:"expanded"`
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Selected: s.selected, Expanded: s.Expanded()}
}
