package schema

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Type    ElementType `json:"type"`
	Element Element     `json:"element"`
}

type rawEnvelope struct {
	Type    ElementType     `json:"type"`
	Element json.RawMessage `json:"element"`
}

func encodeElements(elements []Element) []envelope {
	out := make([]envelope, 0, len(elements))
	for _, el := range elements {
		if el == nil {
			continue
		}
		out = append(out, envelope{Type: el.ElementType(), Element: el})
	}
	return out
}

func decodeElements(raw []rawEnvelope) ([]Element, error) {
	out := make([]Element, 0, len(raw))
	for idx, item := range raw {
		el, err := decodeElement(item)
		if err != nil {
			return nil, fmt.Errorf("schema: element %d: %w", idx, err)
		}
		out = append(out, el)
	}
	return out, nil
}

func decodeElement(item rawEnvelope) (Element, error) {
	if len(item.Element) == 0 {
		return nil, fmt.Errorf("missing %q payload", item.Type)
	}
	switch item.Type {
	case ElementQuestion:
		var q Question
		if err := json.Unmarshal(item.Element, &q); err != nil {
			return nil, err
		}
		return &q, nil
	case ElementPanel:
		var p Panel
		if err := json.Unmarshal(item.Element, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case ElementDynamicPanel:
		var d DynamicPanel
		if err := json.Unmarshal(item.Element, &d); err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("unknown element type %q", item.Type)
	}
}

type formJSON struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Elements    []envelope `json:"elements"`
}

type formWire struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Elements    []rawEnvelope `json:"elements"`
}

// MarshalJSON wraps every element in its type envelope.
func (f Form) MarshalJSON() ([]byte, error) {
	return json.Marshal(formJSON{
		Title:       f.Title,
		Description: f.Description,
		Elements:    encodeElements(f.Elements),
	})
}

// UnmarshalJSON decodes the enveloped element tree.
func (f *Form) UnmarshalJSON(data []byte) error {
	var wire formWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	elements, err := decodeElements(wire.Elements)
	if err != nil {
		return err
	}
	*f = Form{Title: wire.Title, Description: wire.Description, Elements: elements}
	return nil
}

type questionJSON struct {
	Name                    string          `json:"name"`
	Type                    QuestionType    `json:"type"`
	Title                   string          `json:"title"`
	Description             string          `json:"description"`
	IsRequired              bool            `json:"isRequired"`
	ReadOnly                bool            `json:"readOnly"`
	Visible                 bool            `json:"visible"`
	ShowTitleAndDescription bool            `json:"showTitleAndDescription"`
	Validators              []Validator     `json:"validators"`
	VisibleIf               string          `json:"visibleIf"`
	Choices                 *[]string       `json:"choices,omitempty"`
	Min                     json.RawMessage `json:"min,omitempty"`
	Max                     json.RawMessage `json:"max,omitempty"`
}

// MarshalJSON includes choices only for choice types and the nullable
// min/max bounds only for the number type.
func (q *Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		Name:                    q.Name,
		Type:                    q.Type,
		Title:                   q.Title,
		Description:             q.Description,
		IsRequired:              q.IsRequired,
		ReadOnly:                q.ReadOnly,
		Visible:                 q.Visible,
		ShowTitleAndDescription: q.ShowTitleAndDescription,
		Validators:              q.Validators,
		VisibleIf:               q.VisibleIf,
	}
	if out.Validators == nil {
		out.Validators = []Validator{}
	}
	if q.IsChoice() {
		choices := q.Choices
		if choices == nil {
			choices = []string{}
		}
		out.Choices = &choices
	}
	if q.IsNumber() {
		var err error
		if out.Min, err = json.Marshal(q.Min); err != nil {
			return nil, err
		}
		if out.Max, err = json.Marshal(q.Max); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a question payload and rejects unknown types.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if !decoded.Type.Valid() {
		return fmt.Errorf("unknown question type %q", decoded.Type)
	}
	if decoded.Validators == nil {
		decoded.Validators = []Validator{}
	}
	*q = Question(decoded)
	return nil
}

type panelJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Elements    []envelope `json:"elements"`
	Visible     bool       `json:"visible"`
	VisibleIf   string     `json:"visibleIf"`
}

type panelWire struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Elements    []rawEnvelope `json:"elements"`
	Visible     bool          `json:"visible"`
	VisibleIf   string        `json:"visibleIf"`
}

// MarshalJSON wraps the panel's children in their type envelopes.
func (p *Panel) MarshalJSON() ([]byte, error) {
	return json.Marshal(panelJSON{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Elements:    encodeElements(p.Elements),
		Visible:     p.Visible,
		VisibleIf:   p.VisibleIf,
	})
}

// UnmarshalJSON decodes the panel and its enveloped children.
func (p *Panel) UnmarshalJSON(data []byte) error {
	var wire panelWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	elements, err := decodeElements(wire.Elements)
	if err != nil {
		return fmt.Errorf("panel %q: %w", wire.ID, err)
	}
	*p = Panel{
		ID:          wire.ID,
		Title:       wire.Title,
		Description: wire.Description,
		Elements:    elements,
		Visible:     wire.Visible,
		VisibleIf:   wire.VisibleIf,
	}
	return nil
}

type dynamicPanelJSON struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Elements         []envelope `json:"elements"`
	TemplateElements []envelope `json:"templateElements"`
	MinPanelCount    int        `json:"minPanelCount"`
	MaxPanelCount    int        `json:"maxPanelCount"`
	PanelCount       int        `json:"panelCount"`
	PanelAddText     string     `json:"panelAddText"`
	PanelRemoveText  string     `json:"panelRemoveText"`
	Visible          bool       `json:"visible"`
	VisibleIf        string     `json:"visibleIf"`
}

type dynamicPanelWire struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Elements         []rawEnvelope `json:"elements"`
	TemplateElements []rawEnvelope `json:"templateElements"`
	MinPanelCount    int           `json:"minPanelCount"`
	MaxPanelCount    int           `json:"maxPanelCount"`
	PanelCount       int           `json:"panelCount"`
	PanelAddText     string        `json:"panelAddText"`
	PanelRemoveText  string        `json:"panelRemoveText"`
	Visible          bool          `json:"visible"`
	VisibleIf        string        `json:"visibleIf"`
}

// MarshalJSON wraps both child sequences in their type envelopes.
func (d *DynamicPanel) MarshalJSON() ([]byte, error) {
	return json.Marshal(dynamicPanelJSON{
		ID:               d.ID,
		Title:            d.Title,
		Description:      d.Description,
		Elements:         encodeElements(d.Elements),
		TemplateElements: encodeElements(d.TemplateElements),
		MinPanelCount:    d.MinPanelCount,
		MaxPanelCount:    d.MaxPanelCount,
		PanelCount:       d.PanelCount,
		PanelAddText:     d.PanelAddText,
		PanelRemoveText:  d.PanelRemoveText,
		Visible:          d.Visible,
		VisibleIf:        d.VisibleIf,
	})
}

// UnmarshalJSON decodes the dynamic panel and both enveloped sequences.
func (d *DynamicPanel) UnmarshalJSON(data []byte) error {
	var wire dynamicPanelWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	elements, err := decodeElements(wire.Elements)
	if err != nil {
		return fmt.Errorf("dynamic panel %q: %w", wire.ID, err)
	}
	template, err := decodeElements(wire.TemplateElements)
	if err != nil {
		return fmt.Errorf("dynamic panel %q template: %w", wire.ID, err)
	}
	*d = DynamicPanel{
		ID:               wire.ID,
		Title:            wire.Title,
		Description:      wire.Description,
		Elements:         elements,
		TemplateElements: template,
		MinPanelCount:    wire.MinPanelCount,
		MaxPanelCount:    wire.MaxPanelCount,
		PanelCount:       wire.PanelCount,
		PanelAddText:     wire.PanelAddText,
		PanelRemoveText:  wire.PanelRemoveText,
		Visible:          wire.Visible,
		VisibleIf:        wire.VisibleIf,
	}
	return nil
}
