package schema

// DefaultFormTitle titles forms created without initial data.
const DefaultFormTitle = "Untitled Form"

// Form is the root aggregate: display metadata plus the root sequence.
type Form struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Elements    []Element `json:"elements"`
}

// NewForm returns an empty form with the default title.
func NewForm() Form {
	return Form{
		Title:    DefaultFormTitle,
		Elements: []Element{},
	}
}

// WithElements returns a copy of f that owns elements as its root sequence.
func (f Form) WithElements(elements []Element) Form {
	f.Elements = elements
	return f
}

// Normalize fills the defaults applied when a form is loaded from initial
// data: an empty title becomes DefaultFormTitle and a nil root sequence
// becomes empty.
func (f Form) Normalize() Form {
	if f.Title == "" {
		f.Title = DefaultFormTitle
	}
	if f.Elements == nil {
		f.Elements = []Element{}
	}
	return f
}
