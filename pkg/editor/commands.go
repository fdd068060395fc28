package editor

import (
	"context"
	"fmt"

	"github.com/vladocavric/survey-js/pkg/mutate"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// AddElement adds a new element of kind to the root sequence, or to the
// container parentID when it is not empty. The new element is selected and
// its container expanded.
func (s *Session) AddElement(ctx context.Context, kind schema.Kind, parentID string) (schema.Element, error) {
	var added schema.Element
	err := s.apply(ctx, "add", func(form schema.Form) (schema.Form, error) {
		var (
			next schema.Form
			el   schema.Element
			err  error
		)
		if parentID == "" {
			next, el, err = mutate.Add(form, kind)
		} else {
			next, el, err = mutate.AddTo(form, parentID, kind)
		}
		if err != nil {
			return form, err
		}
		added = el
		s.selection.Select(el.Identifier())
		s.selection.SetExpanded(parentID, true)
		return next, nil
	})
	return added, err
}

// UpdateElement merges patch into the element id. Display strings are
// sanitized first. Renaming the selected element keeps it selected.
func (s *Session) UpdateElement(ctx context.Context, id string, patch mutate.Patch) error {
	patch = s.cleanPatch(patch)
	return s.apply(ctx, "update", func(form schema.Form) (schema.Form, error) {
		next, err := mutate.Update(form, id, patch)
		if err != nil {
			return form, err
		}
		if patch.Identifier != nil {
			s.selection.Rename(id, *patch.Identifier)
		}
		return next, nil
	})
}

// RetitleElement changes the title of id, regenerating an auto-generated
// identifier from it. It returns the element's identifier afterwards.
func (s *Session) RetitleElement(ctx context.Context, id, title string) (string, error) {
	title = s.text(title)
	current := id
	err := s.apply(ctx, "retitle", func(form schema.Form) (schema.Form, error) {
		next, newID, err := mutate.Retitle(form, id, title)
		if err != nil {
			return form, err
		}
		s.selection.Rename(id, newID)
		current = newID
		return next, nil
	})
	return current, err
}

// DeleteElement removes id and its descendants. A selection inside the
// removed subtree is cleared.
func (s *Session) DeleteElement(ctx context.Context, id string) error {
	return s.apply(ctx, "delete", func(form schema.Form) (schema.Form, error) {
		removed := mutate.Removed(form, id)
		next, err := mutate.Delete(form, id)
		if err != nil {
			return form, err
		}
		for _, gone := range removed {
			if !tree.IsNameUsed(gone, next.Elements) {
				s.selection.Forget(gone)
			}
		}
		s.logger.DebugContext(ctx, "elements removed", "id", id, "count", len(removed))
		return next, nil
	})
}

// SetMeta replaces the form title and description.
func (s *Session) SetMeta(ctx context.Context, title, description string) error {
	title, description = s.text(title), s.description(description)
	return s.apply(ctx, "meta", func(form schema.Form) (schema.Form, error) {
		return mutate.SetMeta(form, title, description), nil
	})
}

// ImportElements appends prebuilt elements to the root sequence or to the
// container parentID. The batch is rejected as a whole when any identifier
// clashes.
func (s *Session) ImportElements(ctx context.Context, parentID string, elements []schema.Element) error {
	return s.apply(ctx, "import", func(form schema.Form) (schema.Form, error) {
		next, err := mutate.Append(form, parentID, elements...)
		if err != nil {
			return form, err
		}
		s.selection.SetExpanded(parentID, true)
		return next, nil
	})
}

// AddValidator appends a validator of kind to question id.
func (s *Session) AddValidator(ctx context.Context, id string, kind schema.ValidatorKind) error {
	return s.apply(ctx, "add validator", func(form schema.Form) (schema.Form, error) {
		return mutate.AddValidator(form, id, kind)
	})
}

// UpdateValidator patches validator index of question id.
func (s *Session) UpdateValidator(ctx context.Context, id string, index int, patch mutate.ValidatorPatch) error {
	if patch.Text != nil {
		cleaned := s.text(*patch.Text)
		patch.Text = &cleaned
	}
	return s.apply(ctx, "update validator", func(form schema.Form) (schema.Form, error) {
		return mutate.UpdateValidator(form, id, index, patch)
	})
}

// DeleteValidator removes validator index of question id.
func (s *Session) DeleteValidator(ctx context.Context, id string, index int) error {
	return s.apply(ctx, "delete validator", func(form schema.Form) (schema.Form, error) {
		return mutate.DeleteValidator(form, id, index)
	})
}

// AddChoice appends the next default option to choice question id.
func (s *Session) AddChoice(ctx context.Context, id string) error {
	return s.apply(ctx, "add choice", func(form schema.Form) (schema.Form, error) {
		return mutate.AddChoice(form, id)
	})
}

// UpdateChoice replaces option index of choice question id.
func (s *Session) UpdateChoice(ctx context.Context, id string, index int, value string) error {
	value = s.text(value)
	return s.apply(ctx, "update choice", func(form schema.Form) (schema.Form, error) {
		return mutate.UpdateChoice(form, id, index, value)
	})
}

// RemoveChoice removes option index of choice question id.
func (s *Session) RemoveChoice(ctx context.Context, id string, index int) error {
	return s.apply(ctx, "remove choice", func(form schema.Form) (schema.Form, error) {
		return mutate.RemoveChoice(form, id, index)
	})
}

// SetSelected selects id. An empty id clears the selection.
func (s *Session) SetSelected(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.selection.Clear()
		return nil
	}
	if !tree.IsNameUsed(id, s.form.Elements) {
		return fmt.Errorf("editor: select %q: %w", id, mutate.ErrNotFound)
	}
	s.selection.Select(id)
	return nil
}

// SetExpanded records whether container id is expanded.
func (s *Session) SetExpanded(id string, expanded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.container(id); err != nil {
		return err
	}
	s.selection.SetExpanded(id, expanded)
	return nil
}

// ToggleExpanded flips the expansion of container id and returns the new
// value.
func (s *Session) ToggleExpanded(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.container(id); err != nil {
		return false, err
	}
	return s.selection.Toggle(id), nil
}

func (s *Session) container(id string) error {
	el, ok := tree.Find(s.form.Elements, id)
	if !ok {
		return fmt.Errorf("editor: expand %q: %w", id, mutate.ErrNotFound)
	}
	if _, ok := tree.EditableSequence(el); !ok {
		return fmt.Errorf("editor: expand question %q: %w", id, mutate.ErrInvalidKind)
	}
	return nil
}

func (s *Session) cleanPatch(patch mutate.Patch) mutate.Patch {
	if s.policy == nil {
		return patch
	}
	clean := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := s.text(*p)
		return &v
	}
	patch.Title = clean(patch.Title)
	patch.PanelAddText = clean(patch.PanelAddText)
	patch.PanelRemoveText = clean(patch.PanelRemoveText)
	if patch.Description != nil {
		v := s.description(*patch.Description)
		patch.Description = &v
	}
	if patch.Choices != nil {
		choices := make([]string, len(patch.Choices))
		for i, c := range patch.Choices {
			choices[i] = s.text(c)
		}
		patch.Choices = choices
	}
	if patch.Validators != nil {
		validators := make([]schema.Validator, len(patch.Validators))
		for i, v := range patch.Validators {
			v = v.Clone()
			v.Text = s.text(v.Text)
			validators[i] = v
		}
		patch.Validators = validators
	}
	return patch
}
