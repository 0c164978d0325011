package syncer

import (
	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/pkg/protocol"
)

// Heatmap synchronizes the shared heatmap configuration. Sharing can be
// toggled off locally; inbound updates are then ignored.
type Heatmap struct {
	core   *Core
	model  *state.RoomState
	shared func() bool
}

func NewHeatmap(core *Core, model *state.RoomState, shared func() bool) *Heatmap {
	if shared == nil {
		shared = func() bool { return true }
	}
	return &Heatmap{core: core, model: model, shared: shared}
}

func (h *Heatmap) Publish(cfg protocol.HeatmapUpdate) (bool, error) {
	return h.core.Publish(cfg)
}

func (h *Heatmap) Accept(from string, cfg protocol.HeatmapUpdate) {
	if !h.shared() {
		return
	}
	h.core.Prime(cfg)
	h.model.SetHeatmap(cfg)
}
