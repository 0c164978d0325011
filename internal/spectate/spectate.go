package spectate

import "github.com/collabvis/syncroom/pkg/protocol"

// Controller follows one remote user's pose stream. At most one target
// is active; activating a new one silently replaces the old.
type Controller struct {
	target string
	active bool

	// onPose receives the followed user's camera pose.
	onPose func(protocol.Pose)
	// setLocalBroadcast gates the local pose synchronizer: a spectator
	// must not leak its own camera while following.
	setLocalBroadcast func(enabled bool)
}

func NewController(onPose func(protocol.Pose), setLocalBroadcast func(bool)) *Controller {
	if onPose == nil {
		onPose = func(protocol.Pose) {}
	}
	if setLocalBroadcast == nil {
		setLocalBroadcast = func(bool) {}
	}
	return &Controller{onPose: onPose, setLocalBroadcast: setLocalBroadcast}
}

func (c *Controller) Activate(remoteID string) {
	if c.active {
		c.Deactivate()
	}
	c.target = remoteID
	c.active = true
	c.setLocalBroadcast(false)
}

func (c *Controller) Deactivate() {
	if !c.active {
		return
	}
	c.target = ""
	c.active = false
	c.setLocalBroadcast(true)
}

func (c *Controller) Target() (string, bool) { return c.target, c.active }

// HandlePose feeds an inbound pose frame; only frames from the active
// target drive the camera.
func (c *Controller) HandlePose(from string, p protocol.UserPositions) {
	if !c.active || from != c.target {
		return
	}
	c.onPose(p.Camera)
}

// HandleDisconnect drops spectating when the target leaves.
func (c *Controller) HandleDisconnect(userID string) {
	if c.active && userID == c.target {
		c.Deactivate()
	}
}
