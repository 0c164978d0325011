package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collabvis/syncroom/pkg/protocol"
)

func sampleRoom() protocol.SerializedRoom {
	return protocol.SerializedRoom{
		Landscape: protocol.Landscape{Token: "tok-1", Timestamp: 1700000000},
		OpenApps: []protocol.App{
			{ID: "app-a", OpenComponents: []string{"c1", "c2"}},
			{ID: "app-b"},
		},
		Highlights: []protocol.Highlight{
			{UserID: "u1", AppID: "app-a", EntityType: "clazz", EntityID: "e1"},
		},
		Popups: []protocol.Popup{
			{UserID: "u1", EntityID: "e1"},
		},
		Annotations: []protocol.Annotation{
			{ID: "an1", UserID: "u2", Title: "note"},
		},
		DetachedMenus: []protocol.DetachedMenu{
			{ID: "dm1", EntityID: "e1"},
		},
	}
}

func TestApplySnapshot_Idempotent(t *testing.T) {
	s := New()
	s.ApplySnapshot(sampleRoom())
	once := s.Snapshot()

	s.ApplySnapshot(sampleRoom())
	twice := s.Snapshot()

	require.Equal(t, once, twice, "replaying the same snapshot must not change observable state")
	require.Len(t, twice.OpenApps, 2)
	require.Len(t, twice.Popups, 1)
	require.Len(t, twice.Highlights, 1)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	a := New()
	a.ApplySnapshot(sampleRoom())

	b := New()
	b.ApplySnapshot(a.Snapshot())

	require.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestApply_HighlightToggle(t *testing.T) {
	s := New()
	upd := protocol.HighlightingUpdate{AppID: "app-a", EntityType: "clazz", EntityID: "e1", IsHighlighted: true}

	require.True(t, s.Apply("u1", upd))
	require.Len(t, s.Highlights(), 1)
	require.Equal(t, "u1", s.Highlights()[0].UserID)

	// Duplicate apply is a no-op, not a second toggle.
	s.Apply("u1", upd)
	require.Len(t, s.Highlights(), 1)

	upd.IsHighlighted = false
	s.Apply("u1", upd)
	require.Empty(t, s.Highlights())
}

func TestApply_CloseAppDropsItsHighlights(t *testing.T) {
	s := New()
	s.OpenApp(protocol.App{ID: "app-a"})
	s.Apply("u1", protocol.HighlightingUpdate{AppID: "app-a", EntityID: "e1", IsHighlighted: true})
	s.Apply("u1", protocol.AppClosed{AppID: "app-a"})

	require.Empty(t, s.Highlights())
	_, open := s.App("app-a")
	require.False(t, open)
}

func TestSetComponent_SetSemantics(t *testing.T) {
	s := New()
	s.OpenApp(protocol.App{ID: "app-a"})

	s.SetComponent("app-a", "c1", true)
	s.SetComponent("app-a", "c1", true) // duplicate open
	app, _ := s.App("app-a")
	require.Equal(t, []string{"c1"}, app.OpenComponents)

	s.SetComponent("app-a", "c1", false)
	app, _ = s.App("app-a")
	require.Empty(t, app.OpenComponents)

	// Unknown app is ignored.
	s.SetComponent("nope", "c1", true)
}

func TestDeleteEntity_Cascades(t *testing.T) {
	s := New()
	s.CreateEntity(Entity{ID: "pkg", Type: "package", Name: "root"})
	s.CreateEntity(Entity{ID: "cls", Type: "class", Name: "Child", ParentID: "pkg"})

	require.NoError(t, s.DeleteEntity("pkg"))

	_, ok := s.Entity("cls")
	require.False(t, ok, "children go with the parent")
	require.ErrorIs(t, s.DeleteEntity("pkg"), ErrNoEntity)
}
