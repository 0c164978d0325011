package syncer

import (
	"go.uber.org/zap"

	"github.com/collabvis/syncroom/pkg/protocol"
)

// SendFunc puts one message on the wire. The session provides it; a
// synchronizer never talks to the transport directly.
type SendFunc func(protocol.Message) error

// Core is the diff-based suppression shared by every synchronizer: one
// last-sent payload per event key, a send only on structural change.
// The cache is never transmitted. Not safe for concurrent use; the
// session loop owns it.
type Core struct {
	send     SendFunc
	lastSent map[string]protocol.Equaler
	logger   *zap.Logger
}

func NewCore(send SendFunc, logger *zap.Logger) *Core {
	return &Core{
		send:     send,
		lastSent: make(map[string]protocol.Equaler),
		logger:   logger,
	}
}

// Publish sends the payload unless it equals the last payload sent
// under the same event key. Reports whether a send happened.
func (c *Core) Publish(msg protocol.Equaler) (bool, error) {
	if last, ok := c.lastSent[msg.Event()]; ok && last.Equal(msg) {
		c.logger.Debug("suppressed unchanged payload", zap.String("event", msg.Event()))
		return false, nil
	}
	if err := c.send(msg); err != nil {
		return false, err
	}
	c.lastSent[msg.Event()] = msg
	return true, nil
}

// Send transmits unconditionally, for command-shaped events whose
// repeats are meaningful (a re-create after an undo is a transition,
// not chatter). The payload is still recorded for echo detection.
func (c *Core) Send(msg protocol.Equaler) error {
	if err := c.send(msg); err != nil {
		return err
	}
	c.lastSent[msg.Event()] = msg
	return nil
}

// Forget drops the cached payload for one event key so the next
// Publish under it always goes out.
func (c *Core) Forget(event string) {
	delete(c.lastSent, event)
}

// Prime seeds the cache with a received payload so the next local
// Publish of the same value is suppressed instead of echoed back.
func (c *Core) Prime(msg protocol.Equaler) {
	c.lastSent[msg.Event()] = msg
}

// IsEcho reports whether the payload matches our own last-sent value
// for its event key. Used on broadcast transports without inherent
// sender filtering.
func (c *Core) IsEcho(msg protocol.Equaler) bool {
	last, ok := c.lastSent[msg.Event()]
	return ok && last.Equal(msg)
}

// Reset clears all suppression state. Invoked on disconnect so a later
// reconnect re-sends current local state in full.
func (c *Core) Reset() {
	clear(c.lastSent)
}
