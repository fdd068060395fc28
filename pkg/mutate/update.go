package mutate

import (
	"fmt"
	"strings"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// Bound patches a nullable numeric bound. A nil Value clears the bound.
type Bound struct {
	Value *float64
}

// Patch lists the fields an update replaces. Nil fields are left alone, and
// fields that do not apply to the target's kind are ignored.
type Patch struct {
	// Identifier renames a question (name) or container (id).
	Identifier  *string
	Title       *string
	Description *string
	Visible     *bool
	VisibleIf   *string

	// Question fields.
	Type                    *schema.QuestionType
	IsRequired              *bool
	ReadOnly                *bool
	ShowTitleAndDescription *bool
	Validators              []schema.Validator
	Choices                 []string
	Min                     *Bound
	Max                     *Bound

	// Dynamic panel fields.
	MinPanelCount   *int
	MaxPanelCount   *int
	PanelCount      *int
	PanelAddText    *string
	PanelRemoveText *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Identifier == nil && p.Title == nil && p.Description == nil &&
		p.Visible == nil && p.VisibleIf == nil && p.Type == nil &&
		p.IsRequired == nil && p.ReadOnly == nil && p.ShowTitleAndDescription == nil &&
		p.Validators == nil && p.Choices == nil && p.Min == nil && p.Max == nil &&
		p.MinPanelCount == nil && p.MaxPanelCount == nil && p.PanelCount == nil &&
		p.PanelAddText == nil && p.PanelRemoveText == nil
}

// Update merges patch into every element identified by id. Renaming to an
// identifier that another element uses fails with ErrDuplicateIdentifier
// and keeps the old identifier.
func Update(form schema.Form, id string, patch Patch) (schema.Form, error) {
	if _, ok := tree.Find(form.Elements, id); !ok {
		return form, fmt.Errorf("mutate: update %q: %w", id, ErrNotFound)
	}
	if patch.Identifier != nil {
		next := *patch.Identifier
		if strings.TrimSpace(next) == "" {
			return form, fmt.Errorf("mutate: rename %q: %w", id, ErrInvalidIdentifier)
		}
		if next != id && tree.IsNameUsed(next, form.Elements) {
			return form, fmt.Errorf("mutate: rename %q to %q: %w", id, next, ErrDuplicateIdentifier)
		}
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return form, fmt.Errorf("mutate: update %q type %q: %w", id, *patch.Type, ErrInvalidKind)
	}

	elements := tree.Map(form.Elements, func(el schema.Element) (schema.Element, bool) {
		if el.Identifier() != id {
			return el, true
		}
		return applyPatch(el, patch), true
	})
	return form.WithElements(elements), nil
}

// Retitle sets the title of the element identified by id. An auto-named
// element also gets a fresh identifier derived from the new title; a
// manually named one keeps its identifier. The returned string is the
// element's identifier after the change.
func Retitle(form schema.Form, id, title string) (schema.Form, string, error) {
	if _, ok := tree.Find(form.Elements, id); !ok {
		return form, id, fmt.Errorf("mutate: retitle %q: %w", id, ErrNotFound)
	}
	patch := Patch{Title: &title}
	next := id
	if tree.IsAutoNamed(id) {
		next = tree.GenerateUniqueNameFunc(title, func(candidate string) bool {
			return candidate != id && tree.IsNameUsed(candidate, form.Elements)
		})
		if next != id {
			patch.Identifier = &next
		}
	}
	updated, err := Update(form, id, patch)
	if err != nil {
		return form, id, err
	}
	return updated, next, nil
}

func applyPatch(el schema.Element, patch Patch) schema.Element {
	if patch.Empty() {
		return el
	}
	switch typed := el.(type) {
	case *schema.Question:
		return patchQuestion(typed, patch)
	case *schema.Panel:
		out := typed.Clone()
		setString(&out.ID, patch.Identifier)
		setString(&out.Title, patch.Title)
		setString(&out.Description, patch.Description)
		setBool(&out.Visible, patch.Visible)
		setString(&out.VisibleIf, patch.VisibleIf)
		return out
	case *schema.DynamicPanel:
		out := typed.Clone()
		setString(&out.ID, patch.Identifier)
		setString(&out.Title, patch.Title)
		setString(&out.Description, patch.Description)
		setBool(&out.Visible, patch.Visible)
		setString(&out.VisibleIf, patch.VisibleIf)
		setInt(&out.MinPanelCount, patch.MinPanelCount)
		setInt(&out.MaxPanelCount, patch.MaxPanelCount)
		setInt(&out.PanelCount, patch.PanelCount)
		setString(&out.PanelAddText, patch.PanelAddText)
		setString(&out.PanelRemoveText, patch.PanelRemoveText)
		return out
	default:
		return el
	}
}

func patchQuestion(q *schema.Question, patch Patch) *schema.Question {
	out := q.Clone()
	setString(&out.Name, patch.Identifier)
	setString(&out.Title, patch.Title)
	setString(&out.Description, patch.Description)
	setBool(&out.Visible, patch.Visible)
	setString(&out.VisibleIf, patch.VisibleIf)
	setBool(&out.IsRequired, patch.IsRequired)
	setBool(&out.ReadOnly, patch.ReadOnly)
	setBool(&out.ShowTitleAndDescription, patch.ShowTitleAndDescription)

	if patch.Type != nil && *patch.Type != out.Type {
		out.Type = *patch.Type
		if out.Type.IsChoice() && len(out.Choices) == 0 {
			out.Choices = append([]string(nil), schema.DefaultChoices...)
		}
	}
	if patch.Validators != nil {
		out.Validators = make([]schema.Validator, len(patch.Validators))
		for i, v := range patch.Validators {
			out.Validators[i] = v.Clone()
		}
	}
	if patch.Choices != nil && out.IsChoice() {
		out.Choices = append([]string{}, patch.Choices...)
	}
	if out.IsNumber() {
		if patch.Min != nil {
			out.Min = copyFloat(patch.Min.Value)
		}
		if patch.Max != nil {
			out.Max = copyFloat(patch.Max.Value)
		}
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
