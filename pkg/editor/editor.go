// Package editor owns one editable form. A Session applies inbound commands
// to the form through the mutation and move engines, keeps the selection and
// drag gesture state, and publishes every new snapshot to its listeners.
package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/vladocavric/survey-js/pkg/dnd"
	"github.com/vladocavric/survey-js/pkg/mutate"
	"github.com/vladocavric/survey-js/pkg/sanitize"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/selection"
	"github.com/vladocavric/survey-js/pkg/tree"
)

// ChangeFunc receives every published snapshot.
type ChangeFunc func(form schema.Form)

// Notifier surfaces a message the user must acknowledge. Notify blocks until
// the message was acknowledged.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, message string) { fn(ctx, message) }

// Option customises a Session.
type Option func(*Session)

// WithForm seeds the session with initial data. Missing defaults are filled
// in the way a freshly loaded form gets them.
func WithForm(form schema.Form) Option {
	return func(s *Session) {
		s.form = form.Normalize()
	}
}

// WithLogger injects a structured logger. Sessions log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnChange registers a listener for published snapshots.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// WithNotifier sets the notifier used for rejected identifier changes.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithSanitizer overrides the policy applied to user-entered display
// strings. Pass nil to store strings verbatim.
func WithSanitizer(policy *sanitize.Policy) Option {
	return func(s *Session) {
		s.policy = policy
	}
}

// Session is safe for concurrent use. Commands are applied one at a time in
// the order they acquire the session; listeners and the notifier run after
// the session is released, on the calling goroutine.
type Session struct {
	mu sync.Mutex

	form      schema.Form
	selection *selection.State
	gesture   *dnd.Gesture

	logger    *slog.Logger
	listeners []ChangeFunc
	notifier  Notifier
	policy    *sanitize.Policy
}

// New constructs a Session. Without WithForm it starts from an empty,
// untitled form.
func New(options ...Option) *Session {
	s := &Session{
		form:      schema.NewForm(),
		selection: selection.New(),
		gesture:   dnd.NewGesture(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy:    sanitize.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// OnChange registers a listener and returns a function that removes it.
func (s *Session) OnChange(fn ChangeFunc) (remove func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// Form returns the current snapshot.
func (s *Session) Form() schema.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Find looks id up in the current snapshot.
func (s *Session) Find(id string) (schema.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tree.Find(s.form.Elements, id)
}

// SelectedElement returns the selected element, if any.
func (s *Session) SelectedElement() (schema.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.selection.Selected()
	if !ok {
		return nil, false
	}
	return tree.Find(s.form.Elements, id)
}

// Selection returns a copy of the selection and expansion state.
func (s *Session) Selection() selection.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Snapshot()
}

// IsExpanded reports whether the container id is expanded.
func (s *Session) IsExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsExpanded(id)
}

// Hovered returns the drop slot under the pointer during a drag.
func (s *Session) Hovered() (dnd.Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture.Hovered()
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture.Dragging()
}

// apply runs fn against the current form while the session is held. A
// successful result, or the lossy result of a move whose destination
// vanished, becomes the current form and is published.
func (s *Session) apply(ctx context.Context, op string, fn func(form schema.Form) (schema.Form, error)) error {
	s.mu.Lock()
	next, err := fn(s.form)
	publish := err == nil || errors.Is(err, dnd.ErrDestinationNotFound)
	if publish {
		s.form = next
		s.selection.Reconcile(next)
	}
	listeners := make([]ChangeFunc, 0, len(s.listeners))
	for _, l := range s.listeners {
		if l != nil {
			listeners = append(listeners, l)
		}
	}
	notifier := s.notifier
	s.mu.Unlock()

	s.report(ctx, op, err, notifier)
	if publish {
		for _, l := range listeners {
			l(next)
		}
	}
	return err
}

func (s *Session) report(ctx context.Context, op string, err error, notifier Notifier) {
	switch {
	case err == nil:
		s.logger.DebugContext(ctx, "form changed", "op", op)
	case errors.Is(err, mutate.ErrDuplicateIdentifier):
		s.logger.InfoContext(ctx, "identifier rejected", "op", op, "error", err)
		if notifier != nil {
			notifier.Notify(ctx, "This identifier is already in use. Please choose a unique name.")
		}
	case errors.Is(err, dnd.ErrDestinationNotFound):
		s.logger.WarnContext(ctx, "moved element dropped: destination container vanished", "op", op, "error", err)
	case errors.Is(err, mutate.ErrNotFound), errors.Is(err, mutate.ErrInvalidKind),
		errors.Is(err, dnd.ErrNotFound), errors.Is(err, dnd.ErrNoDrag):
		s.logger.DebugContext(ctx, "command ignored", "op", op, "error", err)
	default:
		s.logger.WarnContext(ctx, "command rejected", "op", op, "error", err)
	}
}

func (s *Session) text(raw string) string {
	if s.policy == nil {
		return raw
	}
	return s.policy.Text(raw)
}

func (s *Session) description(raw string) string {
	if s.policy == nil {
		return raw
	}
	return s.policy.Description(raw)
}
