package state

import (
	"sort"

	"github.com/collabvis/syncroom/pkg/protocol"
)

// RoomState is the mutable model behind a SerializedRoom. The room
// actor holds the authoritative copy; each client holds a mirror that
// synchronizers and snapshot replay write into. Every mutation is
// idempotent so duplicate or replayed messages are harmless.
//
// RoomState is not safe for concurrent use; a single owner goroutine
// mutates it.
type RoomState struct {
	landscape   protocol.Landscape
	apps        map[string]protocol.App
	highlights  map[string]protocol.Highlight // keyed by entity id
	popups      map[string]protocol.Popup     // keyed by entity id
	annotations map[string]protocol.Annotation
	menus       map[string]protocol.DetachedMenu
	heatmap     protocol.HeatmapUpdate
	entities    map[string]Entity
}

func New() *RoomState {
	return &RoomState{
		apps:        make(map[string]protocol.App),
		highlights:  make(map[string]protocol.Highlight),
		popups:      make(map[string]protocol.Popup),
		annotations: make(map[string]protocol.Annotation),
		menus:       make(map[string]protocol.DetachedMenu),
		entities:    make(map[string]Entity),
	}
}

func (s *RoomState) SetLandscape(l protocol.Landscape) { s.landscape = l }

func (s *RoomState) Landscape() protocol.Landscape { return s.landscape }

func (s *RoomState) OpenApp(app protocol.App) {
	if app.ID == "" {
		return
	}
	s.apps[app.ID] = app
}

func (s *RoomState) CloseApp(appID string) {
	delete(s.apps, appID)
	// Anything anchored on the app goes with it.
	for id, h := range s.highlights {
		if h.AppID == appID {
			delete(s.highlights, id)
		}
	}
}

func (s *RoomState) App(appID string) (protocol.App, bool) {
	app, ok := s.apps[appID]
	return app, ok
}

// SetComponent opens or closes one component of an open application.
// Unknown applications are ignored; the component list stays a set.
func (s *RoomState) SetComponent(appID, componentID string, opened bool) {
	app, ok := s.apps[appID]
	if !ok {
		return
	}
	idx := -1
	for i, c := range app.OpenComponents {
		if c == componentID {
			idx = i
			break
		}
	}
	switch {
	case opened && idx < 0:
		app.OpenComponents = append(app.OpenComponents, componentID)
	case !opened && idx >= 0:
		app.OpenComponents = append(app.OpenComponents[:idx], app.OpenComponents[idx+1:]...)
	default:
		return
	}
	s.apps[appID] = app
}

func (s *RoomState) Highlight(h protocol.Highlight) {
	if h.EntityID == "" {
		return
	}
	s.highlights[h.EntityID] = h
}

func (s *RoomState) Unhighlight(entityID string) { delete(s.highlights, entityID) }

func (s *RoomState) ResetHighlights() { clear(s.highlights) }

func (s *RoomState) Highlights() []protocol.Highlight {
	out := make([]protocol.Highlight, 0, len(s.highlights))
	for _, h := range s.highlights {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}

func (s *RoomState) PutPopup(p protocol.Popup) {
	if p.EntityID == "" {
		return
	}
	s.popups[p.EntityID] = p
}

func (s *RoomState) RemovePopup(entityID string) { delete(s.popups, entityID) }

func (s *RoomState) PutAnnotation(a protocol.Annotation) {
	if a.ID == "" {
		return
	}
	s.annotations[a.ID] = a
}

func (s *RoomState) RemoveAnnotation(id string) { delete(s.annotations, id) }

func (s *RoomState) PutDetachedMenu(m protocol.DetachedMenu) {
	if m.ID == "" {
		return
	}
	s.menus[m.ID] = m
}

func (s *RoomState) RemoveDetachedMenu(id string) { delete(s.menus, id) }

func (s *RoomState) SetHeatmap(h protocol.HeatmapUpdate) { s.heatmap = h }

func (s *RoomState) Heatmap() protocol.HeatmapUpdate { return s.heatmap }
