package session

import (
	"errors"

	"github.com/collabvis/syncroom/internal/changelog"
	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/pkg/protocol"
)

var ErrUnknownEntity = errors.New("unknown entity")

// Restructuring works offline too; the edit stays local and the
// suppression cache stays cold, so a reconnect re-announces state.
func ignoreOffline(err error) error {
	if errors.Is(err, ErrNotConnected) {
		return nil
	}
	return err
}

// Local restructuring. Each edit mutates the local model, lands in the
// changelog for undo, and goes out through the restructure synchronizer
// so peers see the effect. The changelog itself never leaves this
// client.

func (s *Session) CreateEntity(id, entityType, name, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model.CreateEntity(state.Entity{ID: id, Type: entityType, Name: name, ParentID: parentID})
	s.log.Append(changelog.Entry{
		Kind:     changelog.KindCreate,
		TargetID: id,
		Name:     name,
		Payload:  map[string]string{"type": entityType, "parent": parentID},
	})
	err := s.restructure.PublishCreate(protocol.RestructureCreate{
		EntityID: id, EntityType: entityType, Name: name, ParentID: parentID,
	})
	return ignoreOffline(err)
}

func (s *Session) RenameEntity(id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.model.Entity(id)
	if !ok {
		return ErrUnknownEntity
	}
	if err := s.model.RenameEntity(id, newName); err != nil {
		return err
	}
	s.log.Append(changelog.Entry{
		Kind:     changelog.KindRename,
		TargetID: id,
		Name:     newName,
		OldName:  entity.Name,
	})
	err := s.restructure.PublishRename(protocol.RestructureRename{
		EntityID: id, NewName: newName, OldName: entity.Name,
	})
	return ignoreOffline(err)
}

func (s *Session) DeleteEntity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.model.Entity(id)
	if !ok {
		return ErrUnknownEntity
	}
	if err := s.model.DeleteEntity(id); err != nil {
		return err
	}
	s.log.Append(changelog.Entry{
		Kind:     changelog.KindDelete,
		TargetID: id,
		Name:     entity.Name,
		Payload:  map[string]string{"type": entity.Type, "parent": entity.ParentID},
	})
	err := s.restructure.PublishDelete(protocol.RestructureDelete{EntityID: id})
	return ignoreOffline(err)
}

// Undo reverts the last changelog step; a tail bundle of creates is one
// step.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.UndoLast()
}

// Changelog returns a read-only copy of the restructure log.
func (s *Session) Changelog() []changelog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries()
}

// undoApplier performs structural inverses against the local model and
// announces them like ordinary edits. Called with s.mu held.
type undoApplier struct {
	s *Session
}

func (a *undoApplier) DeleteEntity(id string) error {
	s := a.s
	if _, ok := s.model.Entity(id); !ok {
		return changelog.ErrMissingTarget
	}
	if err := s.model.DeleteEntity(id); err != nil {
		return changelog.ErrMissingTarget
	}
	err := s.restructure.PublishDelete(protocol.RestructureDelete{EntityID: id})
	return ignoreOffline(err)
}

func (a *undoApplier) RenameEntity(id, name string) error {
	s := a.s
	entity, ok := s.model.Entity(id)
	if !ok {
		return changelog.ErrMissingTarget
	}
	if err := s.model.RenameEntity(id, name); err != nil {
		return changelog.ErrMissingTarget
	}
	err := s.restructure.PublishRename(protocol.RestructureRename{
		EntityID: id, NewName: name, OldName: entity.Name,
	})
	return ignoreOffline(err)
}

func (a *undoApplier) RecreateEntity(e changelog.Entry) error {
	s := a.s
	entity := state.Entity{
		ID:       e.TargetID,
		Type:     e.Payload["type"],
		Name:     e.Name,
		ParentID: e.Payload["parent"],
	}
	// Re-creating under a parent that no longer exists is the benign
	// no-op case.
	if entity.ParentID != "" {
		if _, ok := s.model.Entity(entity.ParentID); !ok {
			return changelog.ErrMissingTarget
		}
	}
	s.model.CreateEntity(entity)
	err := s.restructure.PublishCreate(protocol.RestructureCreate{
		EntityID: entity.ID, EntityType: entity.Type, Name: entity.Name, ParentID: entity.ParentID,
	})
	return ignoreOffline(err)
}
