package syncer

import (
	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/pkg/protocol"
)

// Highlight synchronizes entity highlight toggles and full resets.
type Highlight struct {
	core  *Core
	model *state.RoomState
}

func NewHighlight(core *Core, model *state.RoomState) *Highlight {
	return &Highlight{core: core, model: model}
}

func (h *Highlight) Publish(upd protocol.HighlightingUpdate) (bool, error) {
	return h.core.Publish(upd)
}

// PublishReset always goes out: a second reset after highlights were
// toggled in between clears real peer state. It also invalidates the
// toggle cache, since a reset makes the previous toggle stale.
func (h *Highlight) PublishReset() error {
	h.core.Forget(protocol.EventHighlightingUpdate)
	return h.core.Send(protocol.AllHighlightsReset{})
}

func (h *Highlight) Accept(from string, upd protocol.HighlightingUpdate) {
	// An echoed toggle must not read as a new transition.
	if h.core.IsEcho(upd) {
		return
	}
	h.core.Prime(upd)
	h.model.Apply(from, upd)
}

func (h *Highlight) AcceptReset(from string) {
	h.model.ResetHighlights()
}
