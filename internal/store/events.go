package store

// Event kinds emitted to subscribers. Views re-derive on the events that
// touch the collection; the shell re-renders its form on selection and
// option changes.
const (
	EventRefreshed EventKind = iota + 1
	EventCreated
	EventUpdated
	EventDeleted
	EventSelection
	EventOptions
	EventError
)

type EventKind int

func (k EventKind) String() string {
	switch k {
	case EventRefreshed:
		return "refreshed"
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	case EventSelection:
		return "selection"
	case EventOptions:
		return "options"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event describes one committed state change. ID is set for events about a
// single record.
type Event struct {
	Kind EventKind
	ID   string
}
