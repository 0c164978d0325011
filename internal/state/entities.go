package state

import "errors"

var ErrNoEntity = errors.New("no such entity")

// Entity is one structural element created or edited by restructuring.
// These are tracked per client and are not part of the room snapshot;
// late joiners receive restructure effects as ordinary messages.
type Entity struct {
	ID       string
	Type     string
	Name     string
	ParentID string
}

func (s *RoomState) CreateEntity(e Entity) {
	if e.ID == "" {
		return
	}
	s.entities[e.ID] = e
}

func (s *RoomState) RenameEntity(id, name string) error {
	e, ok := s.entities[id]
	if !ok {
		return ErrNoEntity
	}
	e.Name = name
	s.entities[id] = e
	return nil
}

// DeleteEntity removes the entity and its descendants.
func (s *RoomState) DeleteEntity(id string) error {
	if _, ok := s.entities[id]; !ok {
		return ErrNoEntity
	}
	delete(s.entities, id)
	for childID, child := range s.entities {
		if child.ParentID == id {
			_ = s.DeleteEntity(childID)
		}
	}
	return nil
}

func (s *RoomState) Entity(id string) (Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}
