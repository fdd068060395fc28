// Package schema defines the in-memory survey form tree edited by the builder.
//
// A Form owns an ordered sequence of root Elements. An Element is a closed
// tagged union of *Question, *Panel and *DynamicPanel; code that inspects
// elements uses exhaustive type switches over those three types. Panels and
// dynamic panels are containers: a Panel owns its Elements, a DynamicPanel
// owns the TemplateElements that describe one repeated instance (its
// Elements hold materialised instances and are not edited by the builder).
//
// Question names and container ids share one identifier namespace that is
// unique across the whole tree. Ordering inside every sequence is the only
// positional signal.
//
// Values are treated as immutable once published. Mutations copy the touched
// node and every ancestor on the path to the root, sharing untouched
// branches, so consumers can detect changes by pointer identity.
//
// The JSON shape mirrors the builder snapshot: the form carries title,
// description and elements; each element is wrapped as
// {"type": "question"|"panel"|"dynamicpanel", "element": {...}}.
package schema
