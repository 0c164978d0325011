package session

// Status is the connection state machine:
// offline -> connecting -> online -> offline.
type Status int

const (
	StatusOffline Status = iota
	StatusConnecting
	StatusOnline
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOnline:
		return "online"
	default:
		return "offline"
	}
}

// MenuDescriptor tells the UI layer what to offer for a connection
// state. A pure mapping instead of per-state menu subclasses.
type MenuDescriptor struct {
	Title   string
	Actions []string
}

func MenuFor(s Status) MenuDescriptor {
	switch s {
	case StatusConnecting:
		return MenuDescriptor{Title: "Connecting...", Actions: []string{"cancel"}}
	case StatusOnline:
		return MenuDescriptor{Title: "Collaboration", Actions: []string{"leave", "spectate", "share-settings"}}
	default:
		return MenuDescriptor{Title: "Join Collaboration", Actions: []string{"host", "join"}}
	}
}

// Notification is a user-visible message surfaced by the session; the
// UI decides how to render it.
type Notification struct {
	Level   string // "info" | "error"
	Message string
}
