package syncer

import (
	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/pkg/protocol"
)

// Restructure synchronizes structural edits. Peers receive the effects
// of changelog operations through here; the changelog itself stays
// local.
type Restructure struct {
	core  *Core
	model *state.RoomState
}

func NewRestructure(core *Core, model *state.RoomState) *Restructure {
	return &Restructure{core: core, model: model}
}

// Restructure ops are commands, not state mirrors: creating an entity
// again after undoing it must reach the peers even though the payload
// matches the last create sent. No diff suppression here.

func (r *Restructure) PublishCreate(msg protocol.RestructureCreate) error {
	return r.core.Send(msg)
}

func (r *Restructure) PublishRename(msg protocol.RestructureRename) error {
	return r.core.Send(msg)
}

func (r *Restructure) PublishDelete(msg protocol.RestructureDelete) error {
	return r.core.Send(msg)
}

func (r *Restructure) Accept(from string, msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.RestructureCreate:
		if r.core.IsEcho(m) {
			return
		}
		r.core.Prime(m)
	case protocol.RestructureRename:
		if r.core.IsEcho(m) {
			return
		}
		r.core.Prime(m)
	case protocol.RestructureDelete:
		if r.core.IsEcho(m) {
			return
		}
		r.core.Prime(m)
	}
	r.model.Apply(from, msg)
}
