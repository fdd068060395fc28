package editor

import (
	"fmt"

	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
	"github.com/vladocavric/survey-js/pkg/visibility/expr"
)

// Lint reports problems in the current form: identifiers used more than
// once and visibleIf rules that fail to parse or read unknown elements.
func (s *Session) Lint() []expr.Diagnostic {
	return Lint(s.Form())
}

// Lint checks form without a session.
func Lint(form schema.Form) []expr.Diagnostic {
	var out []expr.Diagnostic
	for _, id := range tree.Duplicates(form.Elements) {
		out = append(out, expr.Diagnostic{
			ElementID: id,
			Message:   fmt.Sprintf("identifier %q is used more than once", id),
		})
	}
	return append(out, expr.Lint(form)...)
}
