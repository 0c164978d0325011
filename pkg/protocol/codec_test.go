package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_KnownEvent(t *testing.T) {
	data, err := Encode(HeatmapUpdate{
		ApplicationID: "app-1",
		Metric:        "instanceCount",
		Mode:          "aggregatedHeatmap",
		IsActive:      true,
	})
	require.NoError(t, err)

	rcv, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, rcv.From)

	got, ok := rcv.Msg.(HeatmapUpdate)
	require.True(t, ok, "expected HeatmapUpdate, got %T", rcv.Msg)
	require.Equal(t, "app-1", got.ApplicationID)
	require.True(t, got.IsActive)
}

func TestDecode_ForwardedCarriesSender(t *testing.T) {
	data, err := EncodeFrom("user-42", Ping{Position: [3]float64{1, 2, 3}, DurationMS: 500})
	require.NoError(t, err)

	// The envelope keeps the original event name plus the sender id.
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &env))
	require.Contains(t, env, "userId")

	rcv, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "user-42", rcv.From)
	require.IsType(t, Ping{}, rcv.Msg)
}

func TestDecode_UnknownEventRejected(t *testing.T) {
	_, err := Decode([]byte(`{"event":"mystery_event","x":1}`))
	require.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"event":`))
	require.ErrorIs(t, err, ErrBadPayload)
}

func TestDecode_GuardRejectsBadPayload(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"self_connected without id", `{"event":"self_connected","self":{"name":"a"},"users":[]}`},
		{"highlight without entity", `{"event":"highlighting_update","appId":"a","isHighlighted":true}`},
		{"heatmap with bogus mode", `{"event":"heatmap_update","applicationId":"a","mode":"nope"}`},
		{"spectate active without target", `{"event":"spectating_update","isSpectating":true}`},
		{"timestamp without token", `{"event":"timestamp_update","timestamp":5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected guard to reject payload")
			}
			if !errors.Is(err, ErrBadPayload) {
				t.Fatalf("want ErrBadPayload, got %v", err)
			}
		})
	}
}

func TestEqual_StructuralNotGeneric(t *testing.T) {
	a := UserPositions{Camera: Pose{Position: [3]float64{1, 0, 0}}}
	b := UserPositions{Camera: Pose{Position: [3]float64{1, 0, 0}}}
	require.True(t, a.Equal(b))

	c1 := Pose{Position: [3]float64{0, 1, 0}}
	withController := UserPositions{Camera: a.Camera, Controller1: &c1}
	require.False(t, a.Equal(withController))

	// Different message type under the same interface never compares equal.
	require.False(t, a.Equal(Ping{}))
}
