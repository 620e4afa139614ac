package todo

import "fmt"

// EventKind names what happened to a resource.
type EventKind int

const (
	Added EventKind = iota + 1
	Changed
	Removed
	Reset
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "add"
	case Changed:
		return "change"
	case Removed:
		return "remove"
	case Reset:
		return "reset"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is delivered to subscribers after the mutation has completed.
// ItemID is empty for Reset.
type Event struct {
	Kind   EventKind
	ItemID string
}
