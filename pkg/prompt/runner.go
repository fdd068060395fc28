package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vladocavric/survey-js/pkg/dnd"
	"github.com/vladocavric/survey-js/pkg/editor"
	"github.com/vladocavric/survey-js/pkg/mutate"
	"github.com/vladocavric/survey-js/pkg/preview"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
	"github.com/vladocavric/survey-js/pkg/visibility"
	"github.com/vladocavric/survey-js/pkg/visibility/expr"
)

const rootOption = "(root)"

// Menu actions, in display order.
const (
	ActionAdd     = "Add element"
	ActionEdit    = "Edit element"
	ActionMove    = "Move element"
	ActionDelete  = "Delete element"
	ActionDetails = "Form details"
	ActionLint    = "Lint"
	ActionSave    = "Save"
	ActionQuit    = "Quit"
)

var menu = []string{
	ActionAdd,
	ActionEdit,
	ActionMove,
	ActionDelete,
	ActionDetails,
	ActionLint,
	ActionSave,
	ActionQuit,
}

// SaveFunc persists the form when the user picks Save.
type SaveFunc func(ctx context.Context, form schema.Form) error

// Runner drives an editor session through a menu loop.
type Runner struct {
	session *editor.Session
	driver  Driver
	save      SaveFunc
	answers   visibility.Context
	evaluator visibility.Evaluator
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSave sets the callback used by the Save action.
func WithSave(fn SaveFunc) RunnerOption {
	return func(r *Runner) {
		r.save = fn
	}
}

// WithAnswers sets the sample answers used to mark hidden elements in the
// outline.
func WithAnswers(ctx visibility.Context) RunnerOption {
	return func(r *Runner) {
		r.answers = ctx
	}
}

// WithEvaluator replaces the visibleIf evaluator used for the outline.
func WithEvaluator(evaluator visibility.Evaluator) RunnerOption {
	return func(r *Runner) {
		if evaluator != nil {
			r.evaluator = evaluator
		}
	}
}

// NewRunner returns a Runner editing session through driver.
func NewRunner(session *editor.Session, driver Driver, options ...RunnerOption) *Runner {
	r := &Runner{session: session, driver: driver, evaluator: expr.New()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run loops until the user quits. Failed commands are reported and the loop
// continues; an interrupted prompt ends the loop with ErrAborted.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := r.driver.Info(ctx, outline(r.session.Form().Title, r.rows())); err != nil {
			return err
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: "What next?", Options: menu, PageSize: len(menu)})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			return fmt.Errorf("prompt: menu index %d out of range", idx)
		}
		action := menu[idx]
		if action == ActionQuit {
			return nil
		}
		if err := r.dispatch(ctx, action); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return err
			}
			if errors.Is(err, mutate.ErrDuplicateIdentifier) {
				continue
			}
			if err := r.driver.Info(ctx, "Error: "+err.Error()); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, action string) error {
	switch action {
	case ActionAdd:
		return r.add(ctx)
	case ActionEdit:
		return r.edit(ctx)
	case ActionMove:
		return r.move(ctx)
	case ActionDelete:
		return r.remove(ctx)
	case ActionDetails:
		return r.details(ctx)
	case ActionLint:
		return r.lint(ctx)
	case ActionSave:
		return r.persist(ctx)
	default:
		return fmt.Errorf("prompt: unknown action %q", action)
	}
}

// Outline renders the form as an indented plain-text listing.
func Outline(form schema.Form, answers visibility.Context) string {
	return outline(form.Title, preview.Flatten(form, answers))
}

func outline(title string, rows []preview.Row) string {
	var b strings.Builder
	b.WriteString(title)
	if len(rows) == 0 {
		b.WriteString("\n  (no elements)")
		return b.String()
	}
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(rowLabel(row))
	}
	return b.String()
}

func rowLabel(row preview.Row) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", row.Depth+1))
	fmt.Fprintf(&b, "%s [%s] %s", row.ID, row.Label, row.Title)
	if row.Required {
		b.WriteString(" *")
	}
	if row.Hidden {
		b.WriteString(" (hidden)")
	}
	return b.String()
}

func (r *Runner) add(ctx context.Context) error {
	kinds := schema.Kinds()
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Label()
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Element type", Options: labels})
	if err != nil {
		return err
	}
	parent, err := r.pickContainer(ctx, "Add to")
	if err != nil {
		return err
	}
	el, err := r.session.AddElement(ctx, kinds[idx], parent)
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, fmt.Sprintf("Added %s.", el.Identifier()))
}

func (r *Runner) edit(ctx context.Context) error {
	id, ok, err := r.pickElement(ctx, "Element to edit")
	if err != nil || !ok {
		return err
	}
	el, found := r.session.Find(id)
	if !found {
		return fmt.Errorf("prompt: edit %q: %w", id, mutate.ErrNotFound)
	}
	q, isQuestion := el.(*schema.Question)

	fields := []string{"Title", "Description", "Identifier", "Visible if"}
	if isQuestion {
		fields = append(fields, "Required", "Type", "Validators")
		if q.IsChoice() {
			fields = append(fields, "Choices")
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Field", Options: fields})
	if err != nil {
		return err
	}

	switch fields[idx] {
	case "Title":
		title, err := r.driver.Input(ctx, InputConfig{Message: "Title", Default: schema.TitleOf(el)})
		if err != nil {
			return err
		}
		_, err = r.session.RetitleElement(ctx, id, title)
		return err
	case "Description":
		current := ""
		switch typed := el.(type) {
		case *schema.Question:
			current = typed.Description
		case *schema.Panel:
			current = typed.Description
		case *schema.DynamicPanel:
			current = typed.Description
		}
		desc, err := r.driver.TextArea(ctx, TextAreaConfig{Message: "Description", Default: current})
		if err != nil {
			return err
		}
		return r.session.UpdateElement(ctx, id, mutate.Patch{Description: &desc})
	case "Identifier":
		name, err := r.driver.Input(ctx, InputConfig{Message: "Identifier", Default: id, Validator: nonEmpty})
		if err != nil {
			return err
		}
		return r.session.UpdateElement(ctx, id, mutate.Patch{Identifier: &name})
	case "Visible if":
		rule, err := r.driver.Input(ctx, InputConfig{
			Message: "Visible if",
			Default: schema.VisibleIfOf(el),
			Help:    "Example: {country} = 'DE'. Leave empty to always show.",
		})
		if err != nil {
			return err
		}
		return r.session.UpdateElement(ctx, id, mutate.Patch{VisibleIf: &rule})
	case "Required":
		required, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Required?", Default: q.IsRequired})
		if err != nil {
			return err
		}
		return r.session.UpdateElement(ctx, id, mutate.Patch{IsRequired: &required})
	case "Type":
		labels := make([]string, len(schema.QuestionTypes))
		current := 0
		for i, t := range schema.QuestionTypes {
			labels[i] = t.Label()
			if t == q.Type {
				current = i
			}
		}
		ti, err := r.driver.Select(ctx, SelectConfig{Message: "Type", Options: labels, DefaultIndex: current})
		if err != nil {
			return err
		}
		t := schema.QuestionTypes[ti]
		return r.session.UpdateElement(ctx, id, mutate.Patch{Type: &t})
	case "Validators":
		return r.editValidators(ctx, q)
	case "Choices":
		return r.editChoices(ctx, q)
	}
	return nil
}

func (r *Runner) editChoices(ctx context.Context, q *schema.Question) error {
	options := append(append([]string(nil), q.Choices...), "+ Add choice")
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Choice", Options: options})
	if err != nil {
		return err
	}
	if idx == len(q.Choices) {
		return r.session.AddChoice(ctx, q.Name)
	}
	action, err := r.driver.Select(ctx, SelectConfig{Message: q.Choices[idx], Options: []string{"Rename", "Remove"}})
	if err != nil {
		return err
	}
	if action == 1 {
		return r.session.RemoveChoice(ctx, q.Name, idx)
	}
	value, err := r.driver.Input(ctx, InputConfig{Message: "Choice", Default: q.Choices[idx], Validator: nonEmpty})
	if err != nil {
		return err
	}
	return r.session.UpdateChoice(ctx, q.Name, idx, value)
}

func (r *Runner) editValidators(ctx context.Context, q *schema.Question) error {
	options := make([]string, 0, len(q.Validators)+1)
	for _, v := range q.Validators {
		options = append(options, fmt.Sprintf("%s: %s", v.Kind.Label(), v.Text))
	}
	options = append(options, "+ Add validator")
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Validator", Options: options})
	if err != nil {
		return err
	}
	if idx == len(q.Validators) {
		labels := make([]string, len(schema.ValidatorKinds))
		for i, k := range schema.ValidatorKinds {
			labels[i] = k.Label()
		}
		ki, err := r.driver.Select(ctx, SelectConfig{Message: "Validator type", Options: labels})
		if err != nil {
			return err
		}
		return r.session.AddValidator(ctx, q.Name, schema.ValidatorKinds[ki])
	}
	action, err := r.driver.Select(ctx, SelectConfig{Message: options[idx], Options: []string{"Edit message", "Remove"}})
	if err != nil {
		return err
	}
	if action == 1 {
		return r.session.DeleteValidator(ctx, q.Name, idx)
	}
	text, err := r.driver.Input(ctx, InputConfig{Message: "Error message", Default: q.Validators[idx].Text})
	if err != nil {
		return err
	}
	return r.session.UpdateValidator(ctx, q.Name, idx, mutate.ValidatorPatch{Text: &text})
}

func (r *Runner) move(ctx context.Context) error {
	id, ok, err := r.pickElement(ctx, "Element to move")
	if err != nil || !ok {
		return err
	}
	pos, found := tree.Locate(r.session.Form().Elements, id)
	if !found {
		return fmt.Errorf("prompt: move %q: %w", id, mutate.ErrNotFound)
	}
	src := dnd.FromPosition(pos)

	parent, err := r.pickContainer(ctx, "Move into")
	if err != nil {
		return err
	}
	form := r.session.Form()
	seq := form.Elements
	var container schema.Element
	if parent != "" {
		container, found = tree.Find(form.Elements, parent)
		if !found {
			return fmt.Errorf("prompt: move into %q: %w", parent, mutate.ErrNotFound)
		}
		seq, _ = tree.EditableSequence(container)
	}
	raw, err := r.driver.Input(ctx, InputConfig{
		Message:   "Position",
		Default:   strconv.Itoa(len(seq)),
		Help:      "Zero-based index in the destination, counted before the element is removed.",
		Validator: nonNegativeInt,
	})
	if err != nil {
		return err
	}
	index, _ := strconv.Atoi(strings.TrimSpace(raw))

	dest := dnd.RootAt(index)
	if container != nil {
		dest, _ = dnd.In(container, index)
	}
	return r.session.Move(ctx, src, dest)
}

func (r *Runner) remove(ctx context.Context) error {
	id, ok, err := r.pickElement(ctx, "Element to delete")
	if err != nil || !ok {
		return err
	}
	confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Delete %s and everything inside it?", id)})
	if err != nil || !confirmed {
		return err
	}
	return r.session.DeleteElement(ctx, id)
}

func (r *Runner) details(ctx context.Context) error {
	form := r.session.Form()
	title, err := r.driver.Input(ctx, InputConfig{Message: "Form title", Default: form.Title})
	if err != nil {
		return err
	}
	desc, err := r.driver.TextArea(ctx, TextAreaConfig{Message: "Form description", Default: form.Description})
	if err != nil {
		return err
	}
	return r.session.SetMeta(ctx, title, desc)
}

func (r *Runner) lint(ctx context.Context) error {
	diags := r.session.Lint()
	if len(diags) == 0 {
		return r.driver.Info(ctx, "No problems found.")
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("%s: %s", d.ElementID, d.Message)
	}
	return r.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (r *Runner) persist(ctx context.Context) error {
	if r.save == nil {
		return r.driver.Info(ctx, "Saving is not configured.")
	}
	if err := r.save(ctx, r.session.Form()); err != nil {
		return err
	}
	return r.driver.Info(ctx, "Saved.")
}

func (r *Runner) rows() []preview.Row {
	return preview.FlattenWith(r.session.Form(), r.answers, r.evaluator)
}

// pickElement asks for an editable element. ok is false when the form has
// none.
func (r *Runner) pickElement(ctx context.Context, message string) (string, bool, error) {
	rows := r.rows()
	if len(rows) == 0 {
		return "", false, r.driver.Info(ctx, "No elements yet.")
	}
	options := make([]string, len(rows))
	for i, row := range rows {
		options[i] = rowLabel(row)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", false, err
	}
	return rows[idx].ID, true, nil
}

// pickContainer asks for the root sequence or a container. The root is
// returned as an empty id.
func (r *Runner) pickContainer(ctx context.Context, message string) (string, error) {
	ids := []string{""}
	options := []string{rootOption}
	for _, row := range r.rows() {
		if row.ElementType == string(schema.ElementQuestion) {
			continue
		}
		ids = append(ids, row.ID)
		options = append(options, rowLabel(row))
	}
	if len(ids) == 1 {
		return "", nil
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", err
	}
	return ids[idx], nil
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter a whole number of zero or more")
	}
	return nil
}
