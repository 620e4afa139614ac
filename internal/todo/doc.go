// Package todo holds the live todo model: Items owned by a single List, the
// List's persistence through a Backend, and change events for the views.
//
// Every mutation persists first and only then changes memory and emits, so a
// failed write never leaves memory and storage disagreeing and observers never
// see a change that did not happen.
package todo
