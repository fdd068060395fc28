package schema

import (
	"fmt"
	"strings"
)

// QuestionType is the fixed enumeration of question input kinds.
type QuestionType string

const (
	QuestionText        QuestionType = "text"
	QuestionDropdown    QuestionType = "dropdown"
	QuestionMultiSelect QuestionType = "multiselect"
	QuestionBoolean     QuestionType = "boolean"
	QuestionCheckbox    QuestionType = "checkbox"
	QuestionRadioGroup  QuestionType = "radiogroup"
	QuestionDate        QuestionType = "date"
	QuestionURL         QuestionType = "url"
	QuestionEmail       QuestionType = "email"
	QuestionNumber      QuestionType = "number"
	QuestionPhone       QuestionType = "phone"
	QuestionComment     QuestionType = "comment"
)

// QuestionTypes lists every question type in palette order.
var QuestionTypes = []QuestionType{
	QuestionText,
	QuestionDropdown,
	QuestionMultiSelect,
	QuestionBoolean,
	QuestionCheckbox,
	QuestionRadioGroup,
	QuestionDate,
	QuestionURL,
	QuestionEmail,
	QuestionNumber,
	QuestionPhone,
	QuestionComment,
}

var questionLabels = map[QuestionType]string{
	QuestionText:        "Text",
	QuestionDropdown:    "Dropdown",
	QuestionMultiSelect: "Multi Select",
	QuestionBoolean:     "Boolean",
	QuestionCheckbox:    "Checkbox",
	QuestionRadioGroup:  "Radio Group",
	QuestionDate:        "Date",
	QuestionURL:         "URL",
	QuestionEmail:       "Email",
	QuestionNumber:      "Numeric",
	QuestionPhone:       "Phone",
	QuestionComment:     "Comment",
}

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	_, ok := questionLabels[t]
	return ok
}

// Label returns the palette label for the question type.
func (t QuestionType) Label() string {
	if label, ok := questionLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsChoice reports whether questions of this type carry a choice list.
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionDropdown, QuestionMultiSelect, QuestionCheckbox, QuestionRadioGroup:
		return true
	default:
		return false
	}
}

// IsNumber reports whether questions of this type carry numeric bounds.
func (t QuestionType) IsNumber() bool {
	return t == QuestionNumber
}

// ElementType discriminates the Element union in the JSON envelope.
type ElementType string

const (
	ElementQuestion     ElementType = "question"
	ElementPanel        ElementType = "panel"
	ElementDynamicPanel ElementType = "dynamicpanel"
)

// Kind names anything the builder can add: a question type or a container.
type Kind string

const (
	KindPanel        Kind = "panel"
	KindDynamicPanel Kind = "dynamicpanel"
)

// QuestionKind lifts a question type into a Kind.
func QuestionKind(t QuestionType) Kind {
	return Kind(t)
}

// ParseKind validates raw and returns the matching Kind.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if kind.IsContainer() {
		return kind, nil
	}
	if QuestionType(kind).Valid() {
		return kind, nil
	}
	return "", fmt.Errorf("schema: unknown element kind %q", raw)
}

// IsContainer reports whether the kind builds a Panel or DynamicPanel.
func (k Kind) IsContainer() bool {
	return k == KindPanel || k == KindDynamicPanel
}

// QuestionType returns the question type for question kinds.
func (k Kind) QuestionType() (QuestionType, bool) {
	t := QuestionType(k)
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Label returns the palette label used when titling new elements.
func (k Kind) Label() string {
	switch k {
	case KindPanel:
		return "Panel"
	case KindDynamicPanel:
		return "Dynamic Panel"
	default:
		return QuestionType(k).Label()
	}
}

// Kinds lists every addable kind in palette order: question types first,
// then the containers.
func Kinds() []Kind {
	out := make([]Kind, 0, len(QuestionTypes)+2)
	for _, t := range QuestionTypes {
		out = append(out, QuestionKind(t))
	}
	return append(out, KindPanel, KindDynamicPanel)
}
