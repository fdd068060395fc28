// Package importer builds form elements from the request body schema of an
// OpenAPI operation.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrEmptyDocument reports an empty OpenAPI payload.
	ErrEmptyDocument = errors.New("importer: document payload is empty")
	// ErrOperationNotFound reports an unknown operation id.
	ErrOperationNotFound = errors.New("importer: operation not found")
	// ErrAmbiguousOperation reports that no operation id was given and the
	// document holds more than one operation with a request body.
	ErrAmbiguousOperation = errors.New("importer: operation id required")
	// ErrNoRequestBody reports an operation without a request body schema.
	ErrNoRequestBody = errors.New("importer: operation has no request body")
)

// Operation summarises an OpenAPI operation.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	HasBody bool
}

// Importer loads OpenAPI documents and converts request schemas into
// elements.
type Importer struct {
	labeler           Labeler
	allowExternalRefs bool
	longTextThreshold int
	patternMessage    string
}

// Option configures an Importer.
type Option func(*Importer)

// WithLabeler overrides how property names become titles.
func WithLabeler(labeler Labeler) Option {
	return func(im *Importer) {
		if labeler != nil {
			im.labeler = labeler
		}
	}
}

// WithExternalRefs allows the loader to follow references outside the
// document.
func WithExternalRefs(allow bool) Option {
	return func(im *Importer) {
		im.allowExternalRefs = allow
	}
}

// WithLongTextThreshold sets the maxLength above which plain strings become
// comment questions. Zero disables the mapping.
func WithLongTextThreshold(n int) Option {
	return func(im *Importer) {
		if n >= 0 {
			im.longTextThreshold = n
		}
	}
}

// New constructs an Importer.
func New(options ...Option) *Importer {
	im := &Importer{
		labeler:           DefaultLabeler,
		longTextThreshold: 255,
		patternMessage:    "Invalid format",
	}
	for _, opt := range options {
		if opt != nil {
			opt(im)
		}
	}
	return im
}

// Document is a loaded OpenAPI document.
type Document struct {
	spec       *openapi3.T
	importer   *Importer
	operations map[string]*openapi3.Operation
	summaries  []Operation
}

// Load parses an OpenAPI document from JSON or YAML.
func (im *Importer) Load(ctx context.Context, data []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: im.allowExternalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("importer: load document: %w", err)
	}

	doc := &Document{
		spec:       spec,
		importer:   im,
		operations: make(map[string]*openapi3.Operation),
	}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				doc.collect(method, path, op)
			}
		}
	}
	sort.Slice(doc.summaries, func(i, j int) bool {
		return doc.summaries[i].ID < doc.summaries[j].ID
	})
	return doc, nil
}

func (d *Document) collect(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	d.operations[id] = op
	d.summaries = append(d.summaries, Operation{
		ID:      id,
		Method:  strings.ToUpper(method),
		Path:    path,
		Summary: op.Summary,
		HasBody: requestSchema(op) != nil,
	})
}

// Title returns the document's info title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Operations lists the document's operations sorted by id.
func (d *Document) Operations() []Operation {
	return append([]Operation(nil), d.summaries...)
}

// Schema returns the request body schema of the operation. An empty
// operationID selects the only operation that has a request body.
func (d *Document) Schema(operationID string) (*openapi3.Schema, Operation, error) {
	if operationID == "" {
		var found []Operation
		for _, op := range d.summaries {
			if op.HasBody {
				found = append(found, op)
			}
		}
		switch len(found) {
		case 0:
			return nil, Operation{}, ErrNoRequestBody
		case 1:
			operationID = found[0].ID
		default:
			return nil, Operation{}, fmt.Errorf("%w: %d candidates", ErrAmbiguousOperation, len(found))
		}
	}

	op, ok := d.operations[operationID]
	if !ok {
		return nil, Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	var summary Operation
	for _, candidate := range d.summaries {
		if candidate.ID == operationID {
			summary = candidate
			break
		}
	}
	schema := requestSchema(op)
	if schema == nil {
		return nil, summary, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}
	return schema, summary, nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
