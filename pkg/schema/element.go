package schema

// Element is any node in the form tree. The interface is sealed: only
// *Question, *Panel and *DynamicPanel implement it.
type Element interface {
	// ElementType returns the union discriminator.
	ElementType() ElementType
	// Identifier returns the question name or container id.
	Identifier() string

	sealed()
}

// Question is a single input in the form.
type Question struct {
	Name                    string       `json:"name"`
	Type                    QuestionType `json:"type"`
	Title                   string       `json:"title"`
	Description             string       `json:"description"`
	IsRequired              bool         `json:"isRequired"`
	ReadOnly                bool         `json:"readOnly"`
	Visible                 bool         `json:"visible"`
	ShowTitleAndDescription bool         `json:"showTitleAndDescription"`
	Validators              []Validator  `json:"validators"`
	VisibleIf               string       `json:"visibleIf"`

	// Choices applies to choice types only.
	Choices []string `json:"choices,omitempty"`
	// Min and Max apply to the number type only; nil means unbounded.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (*Question) ElementType() ElementType { return ElementQuestion }

func (q *Question) Identifier() string { return q.Name }

func (*Question) sealed() {}

// IsChoice reports whether the question carries a choice list.
func (q *Question) IsChoice() bool { return q.Type.IsChoice() }

// IsNumber reports whether the question carries numeric bounds.
func (q *Question) IsNumber() bool { return q.Type.IsNumber() }

// Clone copies the question, including its validators and choices.
func (q *Question) Clone() *Question {
	out := *q
	if q.Validators != nil {
		out.Validators = make([]Validator, len(q.Validators))
		for i, v := range q.Validators {
			out.Validators[i] = v.Clone()
		}
	}
	if q.Choices != nil {
		out.Choices = append([]string(nil), q.Choices...)
	}
	out.Min = cloneFloat(q.Min)
	out.Max = cloneFloat(q.Max)
	return &out
}

// Panel groups child elements.
type Panel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Elements    []Element `json:"elements"`
	Visible     bool      `json:"visible"`
	VisibleIf   string    `json:"visibleIf"`
}

func (*Panel) ElementType() ElementType { return ElementPanel }

func (p *Panel) Identifier() string { return p.ID }

func (*Panel) sealed() {}

// Clone copies the panel. Children are shared; the slice is not.
func (p *Panel) Clone() *Panel {
	out := *p
	out.Elements = cloneSequence(p.Elements)
	return &out
}

// DynamicPanel repeats its template elements between MinPanelCount and
// MaxPanelCount times.
type DynamicPanel struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Elements         []Element `json:"elements"`
	TemplateElements []Element `json:"templateElements"`
	MinPanelCount    int       `json:"minPanelCount"`
	MaxPanelCount    int       `json:"maxPanelCount"`
	PanelCount       int       `json:"panelCount"`
	PanelAddText     string    `json:"panelAddText"`
	PanelRemoveText  string    `json:"panelRemoveText"`
	Visible          bool      `json:"visible"`
	VisibleIf        string    `json:"visibleIf"`
}

func (*DynamicPanel) ElementType() ElementType { return ElementDynamicPanel }

func (d *DynamicPanel) Identifier() string { return d.ID }

func (*DynamicPanel) sealed() {}

// Clone copies the dynamic panel. Children are shared; the slices are not.
func (d *DynamicPanel) Clone() *DynamicPanel {
	out := *d
	out.Elements = cloneSequence(d.Elements)
	out.TemplateElements = cloneSequence(d.TemplateElements)
	return &out
}

// DefaultChoices seeds new choice questions.
var DefaultChoices = []string{"Option 1", "Option 2", "Option 3"}

// NewQuestion builds a question of type t with the builder defaults.
func NewQuestion(t QuestionType, name, title string) *Question {
	q := &Question{
		Name:                    name,
		Type:                    t,
		Title:                   title,
		Visible:                 true,
		ShowTitleAndDescription: true,
		Validators:              []Validator{},
	}
	if t.IsChoice() {
		q.Choices = append([]string(nil), DefaultChoices...)
	}
	return q
}

// NewPanel builds an empty, visible panel.
func NewPanel(id, title string) *Panel {
	return &Panel{
		ID:       id,
		Title:    title,
		Elements: []Element{},
		Visible:  true,
	}
}

// NewDynamicPanel builds an empty dynamic panel with the default repetition
// bounds.
func NewDynamicPanel(id, title string) *DynamicPanel {
	return &DynamicPanel{
		ID:               id,
		Title:            title,
		Elements:         []Element{},
		TemplateElements: []Element{},
		MinPanelCount:    0,
		MaxPanelCount:    10,
		PanelCount:       1,
		PanelAddText:     "Add New",
		PanelRemoveText:  "Remove",
		Visible:          true,
	}
}

// NewElement builds an element of the given kind.
func NewElement(kind Kind, id, title string) (Element, bool) {
	switch kind {
	case KindPanel:
		return NewPanel(id, title), true
	case KindDynamicPanel:
		return NewDynamicPanel(id, title), true
	}
	t, ok := kind.QuestionType()
	if !ok {
		return nil, false
	}
	return NewQuestion(t, id, title), true
}

// TitleOf returns the display title of any element.
func TitleOf(el Element) string {
	switch typed := el.(type) {
	case *Question:
		return typed.Title
	case *Panel:
		return typed.Title
	case *DynamicPanel:
		return typed.Title
	default:
		return ""
	}
}

// VisibleIfOf returns the visibility expression of any element.
func VisibleIfOf(el Element) string {
	switch typed := el.(type) {
	case *Question:
		return typed.VisibleIf
	case *Panel:
		return typed.VisibleIf
	case *DynamicPanel:
		return typed.VisibleIf
	default:
		return ""
	}
}

// VisibleOf returns the static visibility flag of any element.
func VisibleOf(el Element) bool {
	switch typed := el.(type) {
	case *Question:
		return typed.Visible
	case *Panel:
		return typed.Visible
	case *DynamicPanel:
		return typed.Visible
	default:
		return false
	}
}

func cloneSequence(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	return append([]Element(nil), elements...)
}

// KindOf returns the palette kind that builds el.
func KindOf(el Element) Kind {
	switch typed := el.(type) {
	case *Question:
		return QuestionKind(typed.Type)
	case *Panel:
		return KindPanel
	case *DynamicPanel:
		return KindDynamicPanel
	default:
		return ""
	}
}
