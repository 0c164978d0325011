package state

import (
	"sort"

	"github.com/collabvis/syncroom/pkg/protocol"
)

// Snapshot serializes the current state. Sub-lists are sorted so two
// states with the same contents produce the same snapshot.
func (s *RoomState) Snapshot() protocol.SerializedRoom {
	room := protocol.SerializedRoom{
		Landscape:     s.landscape,
		OpenApps:      make([]protocol.App, 0, len(s.apps)),
		Highlights:    s.Highlights(),
		Popups:        make([]protocol.Popup, 0, len(s.popups)),
		Annotations:   make([]protocol.Annotation, 0, len(s.annotations)),
		DetachedMenus: make([]protocol.DetachedMenu, 0, len(s.menus)),
	}
	for _, app := range s.apps {
		app.OpenComponents = append([]string(nil), app.OpenComponents...)
		sort.Strings(app.OpenComponents)
		room.OpenApps = append(room.OpenApps, app)
	}
	sort.Slice(room.OpenApps, func(i, j int) bool { return room.OpenApps[i].ID < room.OpenApps[j].ID })
	for _, p := range s.popups {
		room.Popups = append(room.Popups, p)
	}
	sort.Slice(room.Popups, func(i, j int) bool { return room.Popups[i].EntityID < room.Popups[j].EntityID })
	for _, a := range s.annotations {
		room.Annotations = append(room.Annotations, a)
	}
	sort.Slice(room.Annotations, func(i, j int) bool { return room.Annotations[i].ID < room.Annotations[j].ID })
	for _, m := range s.menus {
		room.DetachedMenus = append(room.DetachedMenus, m)
	}
	sort.Slice(room.DetachedMenus, func(i, j int) bool { return room.DetachedMenus[i].ID < room.DetachedMenus[j].ID })
	return room
}

// ApplySnapshot replays a SerializedRoom into the state. Categories are
// applied in a fixed order because later ones reference entities the
// earlier ones create (a popup points at an app that must be open).
// Replaying the same snapshot twice leaves the state unchanged.
func (s *RoomState) ApplySnapshot(room protocol.SerializedRoom) {
	s.SetLandscape(room.Landscape)
	for _, app := range room.OpenApps {
		s.OpenApp(app)
	}
	for _, h := range room.Highlights {
		s.Highlight(h)
	}
	for _, p := range room.Popups {
		s.PutPopup(p)
	}
	for _, a := range room.Annotations {
		s.PutAnnotation(a)
	}
	for _, m := range room.DetachedMenus {
		s.PutDetachedMenu(m)
	}
}

// Apply routes one inbound shared-state message into the model. The
// sender id attributes highlights. Pose, ping and spectate traffic
// never lands here; those are presence concerns. Returns false for
// messages that carry no room state.
func (s *RoomState) Apply(from string, msg protocol.Message) bool {
	switch m := msg.(type) {
	case protocol.TimestampUpdate:
		s.SetLandscape(protocol.Landscape{Token: m.Token, Timestamp: m.Timestamp})
	case protocol.AppOpened:
		s.OpenApp(m.App)
	case protocol.AppClosed:
		s.CloseApp(m.AppID)
	case protocol.ComponentUpdate:
		s.SetComponent(m.AppID, m.ComponentID, m.IsOpened)
	case protocol.HighlightingUpdate:
		if m.IsHighlighted {
			s.Highlight(protocol.Highlight{
				UserID:     from,
				AppID:      m.AppID,
				EntityType: m.EntityType,
				EntityID:   m.EntityID,
			})
		} else {
			s.Unhighlight(m.EntityID)
		}
	case protocol.AllHighlightsReset:
		s.ResetHighlights()
	case protocol.HeatmapUpdate:
		s.SetHeatmap(m)
	case protocol.PopupOpened:
		s.PutPopup(m.Popup)
	case protocol.PopupClosed:
		s.RemovePopup(m.EntityID)
	case protocol.AnnotationOpened:
		s.PutAnnotation(m.Annotation)
	case protocol.AnnotationClosed:
		s.RemoveAnnotation(m.AnnotationID)
	case protocol.DetachedMenuOpened:
		s.PutDetachedMenu(m.Menu)
	case protocol.DetachedMenuClosed:
		s.RemoveDetachedMenu(m.MenuID)
	case protocol.RestructureCreate:
		s.CreateEntity(Entity{ID: m.EntityID, Type: m.EntityType, Name: m.Name, ParentID: m.ParentID})
	case protocol.RestructureRename:
		_ = s.RenameEntity(m.EntityID, m.NewName)
	case protocol.RestructureDelete:
		_ = s.DeleteEntity(m.EntityID)
	default:
		return false
	}
	return true
}
