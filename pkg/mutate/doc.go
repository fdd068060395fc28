// Package mutate implements the add, update and delete operations over a
// form's element tree together with the validator and choice sub-editors.
//
// Every operation is a pure function from one schema.Form to the next. The
// input form is never modified: the touched element and its ancestors are
// copied and every other branch is shared with the input, so callers can
// detect changes by comparing element pointers.
//
// Failures never leave a half-applied tree behind. When an operation returns
// an error the form it returns is the input form.
package mutate
