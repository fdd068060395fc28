// Package dnd moves elements between the editable sequences of a form and
// tracks the drag gesture that requests such moves.
//
// Containers act as drop targets while also sitting inside the sequences
// they can be dragged within, so drop handlers nest. A drop is delivered as
// a DropEvent to the innermost handler first; DropOnChild consumes it and
// stops propagation, and DropOnRoot then ignores it.
package dnd
