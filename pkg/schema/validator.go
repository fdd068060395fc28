package schema

import (
	"encoding/json"
	"fmt"
)

// ValidatorKind keys the Validator union.
type ValidatorKind string

const (
	ValidatorExpression ValidatorKind = "expression"
	ValidatorRegex      ValidatorKind = "regex"
	ValidatorNumeric    ValidatorKind = "numeric"
	ValidatorText       ValidatorKind = "text"
	ValidatorEmail      ValidatorKind = "email"
)

// ValidatorKinds lists the validator kinds in palette order.
var ValidatorKinds = []ValidatorKind{
	ValidatorExpression,
	ValidatorRegex,
	ValidatorNumeric,
	ValidatorText,
	ValidatorEmail,
}

// Valid reports whether k is a known validator kind.
func (k ValidatorKind) Valid() bool {
	switch k {
	case ValidatorExpression, ValidatorRegex, ValidatorNumeric, ValidatorText, ValidatorEmail:
		return true
	default:
		return false
	}
}

// Label returns the palette label for the validator kind.
func (k ValidatorKind) Label() string {
	switch k {
	case ValidatorExpression:
		return "Expression"
	case ValidatorRegex:
		return "Regex"
	case ValidatorNumeric:
		return "Numeric"
	case ValidatorText:
		return "Text Length"
	case ValidatorEmail:
		return "Email"
	default:
		return string(k)
	}
}

// Validator is a tagged union keyed by Kind. Text is the user-facing error
// message; the remaining fields only apply to their kind and are dropped
// from the JSON payload otherwise.
type Validator struct {
	Kind       ValidatorKind `json:"type"`
	Text       string        `json:"text"`
	Expression string        `json:"expression,omitempty"`
	Regex      string        `json:"regex,omitempty"`
	MinValue   *float64      `json:"minValue,omitempty"`
	MaxValue   *float64      `json:"maxValue,omitempty"`
	MinLength  int           `json:"minLength,omitempty"`
	MaxLength  int           `json:"maxLength,omitempty"`
}

// NewValidator returns a validator of the requested kind with its defaults.
func NewValidator(kind ValidatorKind) (Validator, error) {
	switch kind {
	case ValidatorExpression:
		return Validator{Kind: kind}, nil
	case ValidatorRegex:
		return Validator{Kind: kind}, nil
	case ValidatorNumeric:
		return Validator{Kind: kind}, nil
	case ValidatorText:
		return Validator{Kind: kind, MinLength: 0, MaxLength: 100}, nil
	case ValidatorEmail:
		return Validator{Kind: kind, Text: "Invalid email"}, nil
	default:
		return Validator{}, fmt.Errorf("schema: unknown validator kind %q", kind)
	}
}

// Clone returns a copy that shares no pointers with v.
func (v Validator) Clone() Validator {
	out := v
	out.MinValue = cloneFloat(v.MinValue)
	out.MaxValue = cloneFloat(v.MaxValue)
	return out
}

type expressionValidatorJSON struct {
	Kind       ValidatorKind `json:"type"`
	Text       string        `json:"text"`
	Expression string        `json:"expression"`
}

type regexValidatorJSON struct {
	Kind  ValidatorKind `json:"type"`
	Text  string        `json:"text"`
	Regex string        `json:"regex"`
}

type numericValidatorJSON struct {
	Kind     ValidatorKind `json:"type"`
	Text     string        `json:"text"`
	MinValue *float64      `json:"minValue"`
	MaxValue *float64      `json:"maxValue"`
}

type textValidatorJSON struct {
	Kind      ValidatorKind `json:"type"`
	Text      string        `json:"text"`
	MinLength int           `json:"minLength"`
	MaxLength int           `json:"maxLength"`
}

type emailValidatorJSON struct {
	Kind ValidatorKind `json:"type"`
	Text string        `json:"text"`
}

// MarshalJSON emits only the fields that belong to the validator's kind.
func (v Validator) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValidatorExpression:
		return json.Marshal(expressionValidatorJSON{Kind: v.Kind, Text: v.Text, Expression: v.Expression})
	case ValidatorRegex:
		return json.Marshal(regexValidatorJSON{Kind: v.Kind, Text: v.Text, Regex: v.Regex})
	case ValidatorNumeric:
		return json.Marshal(numericValidatorJSON{Kind: v.Kind, Text: v.Text, MinValue: v.MinValue, MaxValue: v.MaxValue})
	case ValidatorText:
		return json.Marshal(textValidatorJSON{Kind: v.Kind, Text: v.Text, MinLength: v.MinLength, MaxLength: v.MaxLength})
	case ValidatorEmail:
		return json.Marshal(emailValidatorJSON{Kind: v.Kind, Text: v.Text})
	default:
		return nil, fmt.Errorf("schema: unknown validator kind %q", v.Kind)
	}
}

// UnmarshalJSON decodes a validator payload and rejects unknown kinds.
func (v *Validator) UnmarshalJSON(data []byte) error {
	type plain Validator
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if !decoded.Kind.Valid() {
		return fmt.Errorf("schema: unknown validator kind %q", decoded.Kind)
	}
	*v = Validator(decoded)
	return nil
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
