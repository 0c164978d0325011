package syncer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/presence"
	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/pkg/protocol"
)

type sendRecorder struct {
	sent []protocol.Message
}

func (r *sendRecorder) send(msg protocol.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestCore_SuppressionIdempotence(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())

	cfg := protocol.HeatmapUpdate{ApplicationID: "app-1", Metric: "m", Mode: "aggregatedHeatmap", IsActive: true}

	sent, err := core.Publish(cfg)
	require.NoError(t, err)
	require.True(t, sent)

	sent, err = core.Publish(cfg)
	require.NoError(t, err)
	require.False(t, sent, "identical payload must be suppressed")
	require.Len(t, rec.sent, 1, "exactly one transport send")

	cfg.Metric = "other"
	sent, _ = core.Publish(cfg)
	require.True(t, sent, "changed payload must go out")
	require.Len(t, rec.sent, 2)
}

func TestCore_PerEventKeyCaches(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())

	_, _ = core.Publish(protocol.HeatmapUpdate{ApplicationID: "a", IsActive: true})
	_, _ = core.Publish(protocol.HighlightingUpdate{EntityID: "e1", IsHighlighted: true})
	_, _ = core.Publish(protocol.HeatmapUpdate{ApplicationID: "a", IsActive: true})

	require.Len(t, rec.sent, 2, "caches are independent per event key")
}

func TestCore_ResetResends(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())

	cfg := protocol.HeatmapUpdate{ApplicationID: "a", IsActive: true}
	_, _ = core.Publish(cfg)
	core.Reset()
	sent, _ := core.Publish(cfg)

	require.True(t, sent, "after reset the full state goes out again")
	require.Len(t, rec.sent, 2)
}

func TestHighlight_EchoNotANewTransition(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())
	model := state.New()
	hl := NewHighlight(core, model)

	upd := protocol.HighlightingUpdate{AppID: "app", EntityID: "e1", IsHighlighted: true}
	_, err := hl.Publish(upd)
	require.NoError(t, err)

	model.Apply("me", upd)
	before := model.Highlights()

	// Our own message comes back from a broadcast medium.
	hl.Accept("me", upd)
	require.Equal(t, before, model.Highlights(), "echo must not re-apply as a new transition")

	// A remote update does apply.
	hl.Accept("u2", protocol.HighlightingUpdate{AppID: "app", EntityID: "e2", IsHighlighted: true})
	require.Len(t, model.Highlights(), 2)
}

func TestHeatmap_SharedPredicateGuards(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())
	model := state.New()
	shared := true
	hm := NewHeatmap(core, model, func() bool { return shared })

	cfg := protocol.HeatmapUpdate{ApplicationID: "app", Metric: "m", IsActive: true}

	shared = false
	hm.Accept("u2", cfg)
	require.Equal(t, protocol.HeatmapUpdate{}, model.Heatmap(), "unshared concern ignores inbound updates")

	shared = true
	hm.Accept("u2", cfg)
	require.Equal(t, cfg, model.Heatmap())

	// Accept primed the cache: publishing the same value back is
	// suppressed instead of echoed to the room.
	sent, err := hm.Publish(cfg)
	require.NoError(t, err)
	require.False(t, sent)
	require.Empty(t, rec.sent)
}

func TestRestructure_RecreateAfterUndoReachesTheWire(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())
	model := state.New()
	rs := NewRestructure(core, model)

	create := protocol.RestructureCreate{EntityID: "A", EntityType: "package", Name: "a"}
	require.NoError(t, rs.PublishCreate(create))
	require.NoError(t, rs.PublishDelete(protocol.RestructureDelete{EntityID: "A"}))

	// The identical create after an undo is a real transition; the
	// peers have forgotten A and must learn it again.
	require.NoError(t, rs.PublishCreate(create))
	require.Len(t, rec.sent, 3)
}

func TestHighlight_RepeatedResetReachesTheWire(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())
	model := state.New()
	hl := NewHighlight(core, model)

	require.NoError(t, hl.PublishReset())

	upd := protocol.HighlightingUpdate{AppID: "app", EntityID: "e1", IsHighlighted: true}
	_, err := hl.Publish(upd)
	require.NoError(t, err)

	// Second reset clears e1 on the peers; it must not be swallowed.
	require.NoError(t, hl.PublishReset())
	require.Len(t, rec.sent, 3)

	// And after a reset, re-toggling the same entity is new again.
	sent, err := hl.Publish(upd)
	require.NoError(t, err)
	require.True(t, sent, "toggle after reset must go out despite matching the last toggle sent")
}

func TestPose_BroadcastGate(t *testing.T) {
	rec := &sendRecorder{}
	core := NewCore(rec.send, zap.NewNop())
	reg := presence.NewRegistry()
	p := NewPose(core, reg)

	up := protocol.UserPositions{Camera: protocol.Pose{Position: [3]float64{1, 2, 3}}}

	p.SetBroadcast(false)
	sent, err := p.Publish(up)
	require.NoError(t, err)
	require.False(t, sent, "a spectator must not leak its own camera")

	p.SetBroadcast(true)
	sent, _ = p.Publish(up)
	require.True(t, sent)
	require.Equal(t, up.Camera, reg.Local().User.Pose)
}
