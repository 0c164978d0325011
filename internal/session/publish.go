package session

import (
	"github.com/collabvis/syncroom/internal/presence"
	"github.com/collabvis/syncroom/pkg/protocol"
)

// Local interaction entry points and the synchronous read accessors the
// rendering/UI collaborators consume.

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *Session) LocalUser() presence.LocalUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Local()
}

// Presence returns the current remote users as value copies.
func (s *Session) Presence() []protocol.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	remotes := s.registry.All()
	out := make([]protocol.User, 0, len(remotes))
	for _, r := range remotes {
		out = append(out, r.User)
	}
	return out
}

func (s *Session) Highlights() []protocol.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Highlights()
}

func (s *Session) HeatmapConfig() protocol.HeatmapUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Heatmap()
}

func (s *Session) Snapshot() protocol.SerializedRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Snapshot()
}

func (s *Session) LastPing() (protocol.Ping, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPing == nil {
		return protocol.Ping{}, false
	}
	return *s.lastPing, true
}

// SetHeatmapShared toggles whether inbound heatmap updates are applied.
func (s *Session) SetHeatmapShared(shared bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heatmapShared = shared
}

func (s *Session) PublishHeatmap(cfg protocol.HeatmapUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.SetHeatmap(cfg)
	_, err := s.heatmap.Publish(cfg)
	return err
}

func (s *Session) PublishHighlight(upd protocol.HighlightingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.Apply(s.registry.Local().User.ID, upd)
	_, err := s.highlight.Publish(upd)
	return err
}

func (s *Session) ResetAllHighlights() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.ResetHighlights()
	return s.highlight.PublishReset()
}

// PublishPose is called once per render tick; the synchronizer
// suppresses unchanged poses so network chatter tracks transitions,
// not frames.
func (s *Session) PublishPose(up protocol.UserPositions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.pose.Publish(up)
	return err
}

func (s *Session) PublishPing(ping protocol.Ping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.pose.PublishPing(ping)
	return err
}

func (s *Session) OpenApp(app protocol.App) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.OpenApp(app)
	return s.sendLocked(protocol.AppOpened{App: app})
}

func (s *Session) CloseApp(appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.CloseApp(appID)
	return s.sendLocked(protocol.AppClosed{AppID: appID})
}

// SpectateTarget reports the currently followed remote user, if any.
func (s *Session) SpectateTarget() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spectator.Target()
}

// StartSpectating follows the given remote user. Any previous target is
// released; local pose broadcast stops while following.
func (s *Session) StartSpectating(remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry.Lookup(remoteID); !ok {
		return ErrUnknownUser
	}
	s.spectator.Activate(remoteID)
	return s.sendLocked(protocol.SpectatingUpdate{IsSpectating: true, SpectatedUserID: remoteID})
}

func (s *Session) StopSpectating() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, active := s.spectator.Target(); !active {
		return nil
	}
	s.spectator.Deactivate()
	return s.sendLocked(protocol.SpectatingUpdate{IsSpectating: false})
}
