package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/changelog"
	"github.com/collabvis/syncroom/pkg/protocol"
)

func TestRestructure_OfflineEditingAndBundleUndo(t *testing.T) {
	// Restructuring is a local concern first; no connection required.
	s := New(Config{ServerURL: "http://test.invalid"}, zap.NewNop())

	require.NoError(t, s.CreateEntity("pkg", "package", "root", ""))
	require.NoError(t, s.CreateEntity("clsA", "class", "A", "pkg"))
	require.NoError(t, s.CreateEntity("clsB", "class", "B", "pkg"))
	require.Len(t, s.Changelog(), 3)

	// Three contiguous creates undo as one user-visible step.
	require.NoError(t, s.Undo())
	require.Empty(t, s.Changelog())
	require.Empty(t, s.Snapshot().OpenApps) // untouched concern stays untouched
}

func TestRestructure_MixedHistoryUndo(t *testing.T) {
	s := New(Config{ServerURL: "http://test.invalid"}, zap.NewNop())

	require.NoError(t, s.CreateEntity("pkg", "package", "root", ""))
	require.NoError(t, s.RenameEntity("pkg", "renamed"))
	require.NoError(t, s.CreateEntity("cls", "class", "C", "pkg"))

	require.NoError(t, s.Undo())

	entries := s.Changelog()
	require.Len(t, entries, 2, "rename breaks the create bundle")
	require.Equal(t, changelog.KindRename, entries[1].Kind)
}

func TestRestructure_EditsReachTheWire(t *testing.T) {
	h := newHarness(t)
	join(t, h)

	require.NoError(t, h.sess.CreateEntity("pkg", "package", "root", ""))

	rcv := h.serverRecv(t, time.Second)
	created, ok := rcv.Msg.(protocol.RestructureCreate)
	require.True(t, ok, "expected restructure_create, got %T", rcv.Msg)
	require.Equal(t, "pkg", created.EntityID)

	// Undo announces the structural inverse; the changelog stays local.
	require.NoError(t, h.sess.Undo())
	rcv = h.serverRecv(t, time.Second)
	deleted, ok := rcv.Msg.(protocol.RestructureDelete)
	require.True(t, ok, "expected restructure_delete, got %T", rcv.Msg)
	require.Equal(t, "pkg", deleted.EntityID)
}

func TestRestructure_RenameUnknownEntity(t *testing.T) {
	s := New(Config{ServerURL: "http://test.invalid"}, zap.NewNop())
	require.ErrorIs(t, s.RenameEntity("ghost", "x"), ErrUnknownEntity)
	require.ErrorIs(t, s.DeleteEntity("ghost"), ErrUnknownEntity)
}
