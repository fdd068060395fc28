// Package preview renders a read-only HTML outline of a form snapshot.
package preview

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/vladocavric/survey-js/pkg/sanitize"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
	"github.com/vladocavric/survey-js/pkg/visibility"
	"github.com/vladocavric/survey-js/pkg/visibility/expr"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// DefaultTemplate is the outline template shipped with the package.
const DefaultTemplate = "outline.tmpl"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Row is one element of the flattened outline.
type Row struct {
	ID          string
	ElementType string
	Label       string
	Title       string
	Depth       int
	Indent      int
	Required    bool
	Hidden      bool
	VisibleIf   string
	Choices     []string
	Validators  int
}

// Flatten lists the editable elements of form in display order. Dynamic
// panel instances are skipped; their template is listed instead. Hidden is
// set for elements that sample answers in ctx would hide.
func Flatten(form schema.Form, ctx visibility.Context) []Row {
	return FlattenWith(form, ctx, expr.New())
}

// FlattenWith is Flatten with evaluator deciding visibleIf rules.
func FlattenWith(form schema.Form, ctx visibility.Context, evaluator visibility.Evaluator) []Row {
	shown := expr.ResolveWith(form, ctx, evaluator)
	var rows []Row
	flatten(form.Elements, 0, shown, &rows)
	return rows
}

func flatten(elements []schema.Element, depth int, shown map[string]bool, rows *[]Row) {
	for _, el := range elements {
		if el == nil {
			continue
		}
		row := Row{
			ID:          el.Identifier(),
			ElementType: string(el.ElementType()),
			Label:       schema.KindOf(el).Label(),
			Title:       schema.TitleOf(el),
			Depth:       depth,
			Indent:      depth * 2,
			Hidden:      !shown[el.Identifier()],
			VisibleIf:   strings.TrimSpace(schema.VisibleIfOf(el)),
		}
		if q, ok := el.(*schema.Question); ok {
			row.Required = q.IsRequired
			row.Validators = len(q.Validators)
			if q.IsChoice() {
				row.Choices = q.Choices
			}
		}
		*rows = append(*rows, row)
		if children, ok := tree.EditableSequence(el); ok {
			flatten(children, depth+1, shown, rows)
		}
	}
}

// Renderer renders outlines through a pongo2 template set.
type Renderer struct {
	set      *pongo2.TemplateSet
	template  string
	policy    *sanitize.Policy
	evaluator visibility.Evaluator
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	policy    *sanitize.Policy
	evaluator visibility.Evaluator
}

// WithFS loads templates from files instead of the embedded bundle.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects the template rendered by Render.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithSanitizer overrides the policy applied to form descriptions.
func WithSanitizer(policy *sanitize.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithEvaluator replaces the visibleIf evaluator used to mark hidden rows.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		templates: TemplatesFS(),
		name:      DefaultTemplate,
		policy:    sanitize.Default(),
		evaluator: expr.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	r := &Renderer{
		set:       pongo2.NewSet("preview", pongo2.NewFSLoader(cfg.templates)),
		template:  cfg.name,
		policy:    cfg.policy,
		evaluator: cfg.evaluator,
	}
	if _, err := r.set.FromCache(r.template); err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", r.template, err)
	}
	return r, nil
}

// Render writes the outline of form to w. Answers in ctx decide which rows
// are marked hidden.
func (r *Renderer) Render(w io.Writer, form schema.Form, ctx visibility.Context) error {
	if r == nil || r.set == nil {
		return errors.New("preview: renderer is nil")
	}
	tmpl, err := r.set.FromCache(r.template)
	if err != nil {
		return fmt.Errorf("preview: load template %q: %w", r.template, err)
	}

	data := pongo2.Context{
		"title":       form.Title,
		"description": r.policy.Description(form.Description),
		"rows":        FlattenWith(form, ctx, r.evaluator),
		"count":       tree.Count(form.Elements),
	}
	if err := tmpl.ExecuteWriter(data, w); err != nil {
		return fmt.Errorf("preview: execute template %q: %w", r.template, err)
	}
	return nil
}

// RenderString renders the outline of form into a string.
func (r *Renderer) RenderString(form schema.Form, ctx visibility.Context) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, form, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}
