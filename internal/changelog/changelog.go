package changelog

import "errors"

// ErrMissingTarget is returned by an Applier when the entity an inverse
// should act on no longer exists. The undo engine treats it as benign:
// the entry is consumed and the walk continues.
var ErrMissingTarget = errors.New("undo target missing")

type Kind string

const (
	KindCreate Kind = "create"
	KindRename Kind = "rename"
	KindDelete Kind = "delete"
)

// Entry is one recorded structural edit.
type Entry struct {
	Kind     Kind
	TargetID string
	// Name/OldName carry enough to invert a rename; Payload carries
	// enough to re-create a deleted entity.
	Name    string
	OldName string
	Payload map[string]string
}

// Applier performs the structural inverse of an entry against the
// current model. The changelog itself never crosses the network; the
// session wires these calls through the restructure synchronizer so
// peers see plain create/rename/delete effects.
type Applier interface {
	DeleteEntity(id string) error
	RenameEntity(id, name string) error
	RecreateEntity(e Entry) error
}

// Log is the ordered restructure changelog. Mutated only by local
// restructuring and undo, never by inbound messages.
type Log struct {
	entries []Entry
	applier Applier
}

func New(applier Applier) *Log {
	return &Log{applier: applier}
}

func (l *Log) Append(e Entry) { l.entries = append(l.entries, e) }

// Entries returns a read-only copy of the log.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *Log) Len() int { return len(l.entries) }

// UndoLast undoes the most recent user-visible step. A maximal
// contiguous run of create entries at the tail is a bundle and is
// undone as one step, most recent first. Any non-create entry, a
// rename of the just-created entity included, breaks the bundle.
func (l *Log) UndoLast() error {
	if len(l.entries) == 0 {
		return nil
	}

	start := len(l.entries)
	for start > 0 && l.entries[start-1].Kind == KindCreate {
		start--
	}

	// Not a create at the tail: undo exactly one entry.
	if start == len(l.entries) {
		start = len(l.entries) - 1
	}

	for i := len(l.entries) - 1; i >= start; i-- {
		err := l.invert(l.entries[i])
		// Pop before deciding: a consumed entry stays consumed even
		// when its inverse was a no-op.
		l.entries = l.entries[:i]
		if err != nil && !errors.Is(err, ErrMissingTarget) {
			return err
		}
	}
	return nil
}

func (l *Log) invert(e Entry) error {
	switch e.Kind {
	case KindCreate:
		return l.applier.DeleteEntity(e.TargetID)
	case KindRename:
		return l.applier.RenameEntity(e.TargetID, e.OldName)
	case KindDelete:
		return l.applier.RecreateEntity(e)
	}
	return nil
}
