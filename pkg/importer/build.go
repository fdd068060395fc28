package importer

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// Elements converts the request body of operationID into elements whose
// identifiers are unique against existing and against each other.
func (d *Document) Elements(operationID string, existing []schema.Element) ([]schema.Element, error) {
	s, _, err := d.Schema(operationID)
	if err != nil {
		return nil, err
	}
	return d.importer.FromSchema(s, existing), nil
}

// FromSchema converts the properties of an object schema into elements.
// Identifiers are generated from the property titles and checked against
// existing plus every name reserved earlier in the same batch.
func (im *Importer) FromSchema(s *openapi3.Schema, existing []schema.Element) []schema.Element {
	b := &builder{
		importer: im,
		reserved: make(map[string]struct{}),
		existing: existing,
		active:   make(map[*openapi3.Schema]struct{}),
	}
	return b.properties(s)
}

type builder struct {
	importer *Importer
	reserved map[string]struct{}
	existing []schema.Element
	// active holds the object schemas on the current path so recursive
	// references stop instead of expanding forever.
	active map[*openapi3.Schema]struct{}
}

func (b *builder) name(title string) string {
	name := tree.GenerateUniqueNameFunc(title, func(candidate string) bool {
		if _, ok := b.reserved[candidate]; ok {
			return true
		}
		return tree.IsNameUsed(candidate, b.existing)
	})
	b.reserved[name] = struct{}{}
	return name
}

func (b *builder) properties(s *openapi3.Schema) []schema.Element {
	out := []schema.Element{}
	if s == nil || len(s.Properties) == 0 {
		return out
	}
	if _, ok := b.active[s]; ok {
		return out
	}
	b.active[s] = struct{}{}
	defer delete(b.active, s)

	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, propName := range names {
		ref := s.Properties[propName]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[propName]
		if el := b.element(propName, ref.Value, isRequired); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (b *builder) element(propName string, s *openapi3.Schema, required bool) schema.Element {
	title := s.Title
	if title == "" {
		title = b.importer.labeler(propName)
	}

	switch {
	case isType(s, openapi3.TypeObject) || (s.Type == nil && len(s.Properties) > 0):
		if _, ok := b.active[s]; ok {
			return nil
		}
		panel := schema.NewPanel(b.name(title), title)
		panel.Description = s.Description
		panel.Elements = b.properties(s)
		return panel
	case isType(s, openapi3.TypeArray):
		return b.array(title, s, required)
	default:
		return b.question(title, s, required)
	}
}

func (b *builder) array(title string, s *openapi3.Schema, required bool) schema.Element {
	var items *openapi3.Schema
	if s.Items != nil {
		items = s.Items.Value
	}

	if items != nil && (isType(items, openapi3.TypeObject) || len(items.Properties) > 0) {
		if _, ok := b.active[items]; ok {
			return nil
		}
		panel := schema.NewDynamicPanel(b.name(title), title)
		panel.Description = s.Description
		if s.MinItems > 0 {
			panel.MinPanelCount = int(s.MinItems)
			if panel.PanelCount < panel.MinPanelCount {
				panel.PanelCount = panel.MinPanelCount
			}
		}
		if s.MaxItems != nil {
			panel.MaxPanelCount = int(*s.MaxItems)
		}
		panel.TemplateElements = b.properties(items)
		return panel
	}

	q := schema.NewQuestion(schema.QuestionComment, "", title)
	if items != nil && len(items.Enum) > 0 {
		q.Type = schema.QuestionCheckbox
		q.Choices = enumChoices(items.Enum)
	}
	return b.finish(q, s, required)
}

func (b *builder) question(title string, s *openapi3.Schema, required bool) schema.Element {
	q := schema.NewQuestion(questionType(s, b.importer.longTextThreshold), "", title)

	if len(s.Enum) > 0 {
		q.Type = schema.QuestionDropdown
		q.Choices = enumChoices(s.Enum)
	}
	if q.Type == schema.QuestionNumber {
		q.Min = cloneFloat(s.Min)
		q.Max = cloneFloat(s.Max)
	}
	if q.Type.IsChoice() || q.Type == schema.QuestionBoolean {
		return b.finish(q, s, required)
	}

	if s.Pattern != "" {
		q.Validators = append(q.Validators, schema.Validator{
			Kind:  schema.ValidatorRegex,
			Text:  b.importer.patternMessage,
			Regex: s.Pattern,
		})
	}
	if s.MinLength > 0 || s.MaxLength != nil {
		// A zero MaxLength leaves the length unbounded.
		v := schema.Validator{Kind: schema.ValidatorText, MinLength: int(s.MinLength)}
		if s.MaxLength != nil {
			v.MaxLength = int(*s.MaxLength)
		}
		q.Validators = append(q.Validators, v)
	}
	return b.finish(q, s, required)
}

func (b *builder) finish(q *schema.Question, s *openapi3.Schema, required bool) *schema.Question {
	q.Name = b.name(q.Title)
	q.Description = s.Description
	q.IsRequired = required
	q.ReadOnly = s.ReadOnly
	return q
}

func questionType(s *openapi3.Schema, longText int) schema.QuestionType {
	switch {
	case isType(s, openapi3.TypeBoolean):
		return schema.QuestionBoolean
	case isType(s, openapi3.TypeInteger), isType(s, openapi3.TypeNumber):
		return schema.QuestionNumber
	}

	switch s.Format {
	case "email":
		return schema.QuestionEmail
	case "date", "date-time":
		return schema.QuestionDate
	case "uri", "url":
		return schema.QuestionURL
	case "phone", "tel":
		return schema.QuestionPhone
	}
	if longText > 0 && s.MaxLength != nil && *s.MaxLength > uint64(longText) {
		return schema.QuestionComment
	}
	return schema.QuestionText
}

func isType(s *openapi3.Schema, name string) bool {
	return s.Type != nil && s.Type.Is(name)
}

func enumChoices(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		switch typed := value.(type) {
		case nil:
			continue
		case string:
			out = append(out, typed)
		case float64:
			out = append(out, strconv.FormatFloat(typed, 'f', -1, 64))
		default:
			out = append(out, fmt.Sprint(typed))
		}
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
