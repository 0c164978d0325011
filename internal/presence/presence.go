package presence

import (
	"sort"

	"github.com/collabvis/syncroom/pkg/protocol"
)

// LocalUser is the locally controlled participant. It owns its camera
// and controller poses; nothing on the network mutates it.
type LocalUser struct {
	User        protocol.User
	Controller1 *protocol.Pose
	Controller2 *protocol.Pose
}

// RemoteUser mirrors another client. It is read-mostly: only inbound
// pose and identity messages update it, local code never mutates one.
type RemoteUser struct {
	User        protocol.User
	Controller1 *protocol.Pose
	Controller2 *protocol.Pose
}

// Registry tracks the local user plus a proxy per connected remote.
// It owns RemoteUser lifetimes; lookups hand out pointers whose
// validity ends when the user disconnects or the registry is cleared.
// Not safe for concurrent use; the session loop owns it.
type Registry struct {
	local   LocalUser
	remotes map[string]*RemoteUser
}

func NewRegistry() *Registry {
	return &Registry{remotes: make(map[string]*RemoteUser)}
}

func (r *Registry) SetLocal(u protocol.User) { r.local.User = u }

func (r *Registry) Local() LocalUser { return r.local }

func (r *Registry) SetLocalPose(camera protocol.Pose, c1, c2 *protocol.Pose) {
	r.local.User.Pose = camera
	r.local.Controller1 = c1
	r.local.Controller2 = c2
}

// Seed bulk-constructs remote proxies from a self_connected enumeration.
// Existing proxies are replaced; the local user is never added.
func (r *Registry) Seed(self protocol.User, users []protocol.User) {
	r.local.User = self
	clear(r.remotes)
	for _, u := range users {
		r.AddRemote(u)
	}
}

func (r *Registry) AddRemote(u protocol.User) {
	if u.ID == "" || u.ID == r.local.User.ID {
		return
	}
	r.remotes[u.ID] = &RemoteUser{User: u}
}

func (r *Registry) Remove(id string) { delete(r.remotes, id) }

func (r *Registry) Lookup(id string) (*RemoteUser, bool) {
	u, ok := r.remotes[id]
	return u, ok
}

// All returns the remote users ordered by id for stable iteration.
func (r *Registry) All() []*RemoteUser {
	out := make([]*RemoteUser, 0, len(r.remotes))
	for _, u := range r.remotes {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out
}

func (r *Registry) UpdatePose(id string, p protocol.UserPositions) {
	u, ok := r.remotes[id]
	if !ok {
		return
	}
	u.User.Pose = p.Camera
	u.Controller1 = p.Controller1
	u.Controller2 = p.Controller2
}

func (r *Registry) Clear() {
	r.local = LocalUser{}
	clear(r.remotes)
}
