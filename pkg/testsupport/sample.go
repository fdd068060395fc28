package testsupport

import "github.com/vladocavric/survey-js/pkg/schema"

// SampleForm builds a small intake form that exercises every element kind:
//
//	name          text, required
//	contact       panel
//	  email       email, regex validator
//	  country     dropdown
//	  city        text, visibleIf {country} = 'NL'
//	people        dynamic panel
//	  person      text
//	  age         number, 0..120
//
// Every call returns a fresh tree.
func SampleForm() schema.Form {
	name := schema.NewQuestion(schema.QuestionText, "name", "Name")
	name.IsRequired = true

	email := schema.NewQuestion(schema.QuestionEmail, "email", "Email")
	email.Validators = []schema.Validator{{Kind: schema.ValidatorRegex, Text: "Invalid address", Regex: ".+@.+"}}
	country := schema.NewQuestion(schema.QuestionDropdown, "country", "Country")
	country.Choices = []string{"NL", "DE", "BE"}
	city := schema.NewQuestion(schema.QuestionText, "city", "City")
	city.VisibleIf = "{country} = 'NL'"

	contact := schema.NewPanel("contact", "Contact")
	contact.Description = "How to reach you"
	contact.Elements = []schema.Element{email, country, city}

	minAge, maxAge := 0.0, 120.0
	age := schema.NewQuestion(schema.QuestionNumber, "age", "Age")
	age.Min = &minAge
	age.Max = &maxAge

	people := schema.NewDynamicPanel("people", "People")
	people.TemplateElements = []schema.Element{
		schema.NewQuestion(schema.QuestionText, "person", "Person"),
		age,
	}

	return schema.Form{
		Title:       "Intake",
		Description: "Sample intake form",
		Elements:    []schema.Element{name, contact, people},
	}
}
