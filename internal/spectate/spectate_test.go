package spectate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collabvis/syncroom/pkg/protocol"
)

func TestController_Exclusivity(t *testing.T) {
	var followed []protocol.Pose
	broadcast := true
	c := NewController(
		func(p protocol.Pose) { followed = append(followed, p) },
		func(on bool) { broadcast = on },
	)

	c.Activate("x")
	c.Activate("y")

	target, active := c.Target()
	require.True(t, active)
	require.Equal(t, "y", target)
	require.False(t, broadcast, "local pose broadcast stays off while following")

	// X's stream is unbound, Y's drives the camera.
	poseX := protocol.UserPositions{Camera: protocol.Pose{Position: [3]float64{1, 0, 0}}}
	poseY := protocol.UserPositions{Camera: protocol.Pose{Position: [3]float64{0, 1, 0}}}
	c.HandlePose("x", poseX)
	c.HandlePose("y", poseY)

	require.Len(t, followed, 1)
	require.Equal(t, poseY.Camera, followed[0])
}

func TestController_DeactivateRestoresBroadcast(t *testing.T) {
	broadcast := true
	c := NewController(nil, func(on bool) { broadcast = on })

	c.Activate("x")
	require.False(t, broadcast)

	c.Deactivate()
	require.True(t, broadcast)
	_, active := c.Target()
	require.False(t, active)

	// Deactivating twice is harmless.
	c.Deactivate()
	require.True(t, broadcast)
}

func TestController_TargetDisconnect(t *testing.T) {
	c := NewController(nil, nil)
	c.Activate("x")

	c.HandleDisconnect("other")
	_, active := c.Target()
	require.True(t, active, "unrelated disconnects keep spectating alive")

	c.HandleDisconnect("x")
	_, active = c.Target()
	require.False(t, active)
}
