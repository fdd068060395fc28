package mutate

import (
	"fmt"
	"strconv"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// ValidatorPatch lists the validator fields an update replaces. Fields that
// do not apply to the validator's kind are ignored.
type ValidatorPatch struct {
	Text       *string
	Expression *string
	Regex      *string
	MinValue   *Bound
	MaxValue   *Bound
	MinLength  *int
	MaxLength  *int
}

func (p ValidatorPatch) apply(v schema.Validator) schema.Validator {
	out := v.Clone()
	setString(&out.Text, p.Text)
	switch out.Kind {
	case schema.ValidatorExpression:
		setString(&out.Expression, p.Expression)
	case schema.ValidatorRegex:
		setString(&out.Regex, p.Regex)
	case schema.ValidatorNumeric:
		if p.MinValue != nil {
			out.MinValue = copyFloat(p.MinValue.Value)
		}
		if p.MaxValue != nil {
			out.MaxValue = copyFloat(p.MaxValue.Value)
		}
	case schema.ValidatorText:
		setInt(&out.MinLength, p.MinLength)
		setInt(&out.MaxLength, p.MaxLength)
	}
	return out
}

func question(form schema.Form, id, op string) (*schema.Question, error) {
	el, ok := tree.Find(form.Elements, id)
	if !ok {
		return nil, fmt.Errorf("mutate: %s %q: %w", op, id, ErrNotFound)
	}
	q, ok := el.(*schema.Question)
	if !ok {
		return nil, fmt.Errorf("mutate: %s on %s %q: %w", op, el.ElementType(), id, ErrInvalidKind)
	}
	return q, nil
}

func choiceQuestion(form schema.Form, id, op string) (*schema.Question, error) {
	q, err := question(form, id, op)
	if err != nil {
		return nil, err
	}
	if !q.IsChoice() {
		return nil, fmt.Errorf("mutate: %s on %s question %q: %w", op, q.Type, id, ErrInvalidKind)
	}
	return q, nil
}

// AddValidator appends a validator of kind, with that kind's defaults, to
// the question identified by questionID.
func AddValidator(form schema.Form, questionID string, kind schema.ValidatorKind) (schema.Form, error) {
	q, err := question(form, questionID, "add validator")
	if err != nil {
		return form, err
	}
	v, err := schema.NewValidator(kind)
	if err != nil {
		return form, fmt.Errorf("mutate: add validator %q: %w", kind, ErrInvalidKind)
	}
	validators := append(append(make([]schema.Validator, 0, len(q.Validators)+1), q.Validators...), v)
	return Update(form, questionID, Patch{Validators: validators})
}

// UpdateValidator merges patch into the validator at index.
func UpdateValidator(form schema.Form, questionID string, index int, patch ValidatorPatch) (schema.Form, error) {
	q, err := question(form, questionID, "update validator")
	if err != nil {
		return form, err
	}
	if index < 0 || index >= len(q.Validators) {
		return form, fmt.Errorf("mutate: update validator %d of %q: %w", index, questionID, ErrIndexOutOfRange)
	}
	validators := append([]schema.Validator(nil), q.Validators...)
	validators[index] = patch.apply(validators[index])
	return Update(form, questionID, Patch{Validators: validators})
}

// DeleteValidator removes the validator at index.
func DeleteValidator(form schema.Form, questionID string, index int) (schema.Form, error) {
	q, err := question(form, questionID, "delete validator")
	if err != nil {
		return form, err
	}
	if index < 0 || index >= len(q.Validators) {
		return form, fmt.Errorf("mutate: delete validator %d of %q: %w", index, questionID, ErrIndexOutOfRange)
	}
	validators := make([]schema.Validator, 0, len(q.Validators)-1)
	validators = append(validators, q.Validators[:index]...)
	validators = append(validators, q.Validators[index+1:]...)
	return Update(form, questionID, Patch{Validators: validators})
}

// AddChoice appends "Option N" to a choice question, N being the new
// number of choices.
func AddChoice(form schema.Form, questionID string) (schema.Form, error) {
	q, err := choiceQuestion(form, questionID, "add choice")
	if err != nil {
		return form, err
	}
	choices := append(append(make([]string, 0, len(q.Choices)+1), q.Choices...), "Option "+strconv.Itoa(len(q.Choices)+1))
	return Update(form, questionID, Patch{Choices: choices})
}

// UpdateChoice replaces the choice at index.
func UpdateChoice(form schema.Form, questionID string, index int, value string) (schema.Form, error) {
	q, err := choiceQuestion(form, questionID, "update choice")
	if err != nil {
		return form, err
	}
	if index < 0 || index >= len(q.Choices) {
		return form, fmt.Errorf("mutate: update choice %d of %q: %w", index, questionID, ErrIndexOutOfRange)
	}
	choices := append([]string(nil), q.Choices...)
	choices[index] = value
	return Update(form, questionID, Patch{Choices: choices})
}

// RemoveChoice removes the choice at index.
func RemoveChoice(form schema.Form, questionID string, index int) (schema.Form, error) {
	q, err := choiceQuestion(form, questionID, "remove choice")
	if err != nil {
		return form, err
	}
	if index < 0 || index >= len(q.Choices) {
		return form, fmt.Errorf("mutate: remove choice %d of %q: %w", index, questionID, ErrIndexOutOfRange)
	}
	choices := make([]string, 0, len(q.Choices)-1)
	choices = append(choices, q.Choices[:index]...)
	choices = append(choices, q.Choices[index+1:]...)
	return Update(form, questionID, Patch{Choices: choices})
}
