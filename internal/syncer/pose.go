package syncer

import (
	"github.com/collabvis/syncroom/internal/presence"
	"github.com/collabvis/syncroom/pkg/protocol"
)

// Pose synchronizes camera/controller poses and scene pings. The
// broadcast gate is flipped by the spectate controller: a spectator
// does not leak its own camera while following.
type Pose struct {
	core      *Core
	registry  *presence.Registry
	broadcast bool
}

func NewPose(core *Core, registry *presence.Registry) *Pose {
	return &Pose{core: core, registry: registry, broadcast: true}
}

func (p *Pose) SetBroadcast(enabled bool) { p.broadcast = enabled }

func (p *Pose) Broadcasting() bool { return p.broadcast }

// Publish sends the local pose if it moved since the last send. Called
// from the render tick, so suppression is what bounds chatter here.
func (p *Pose) Publish(up protocol.UserPositions) (bool, error) {
	if !p.broadcast {
		return false, nil
	}
	p.registry.SetLocalPose(up.Camera, up.Controller1, up.Controller2)
	return p.core.Publish(up)
}

func (p *Pose) PublishPing(ping protocol.Ping) (bool, error) {
	return p.core.Publish(ping)
}

func (p *Pose) Accept(from string, up protocol.UserPositions) {
	p.registry.UpdatePose(from, up)
}
