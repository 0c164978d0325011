package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown event")

// Received is a decoded inbound message. From carries the sender's user
// id when the room forwarded the message on behalf of another client;
// it is empty for messages originated by the room itself.
type Received struct {
	From string
	Msg  Message
}

type validator interface {
	validate() error
}

// decoders is the type-guard registry: one decode func per receivable
// event. Decoding fails closed: an unknown event or a payload that
// does not pass its guard never reaches dispatch.
var decoders = map[string]func([]byte) (Message, error){
	EventSelfConnected:      decodeInto[SelfConnected],
	EventSelfDisconnected:   decodeInto[SelfDisconnected],
	EventUserConnected:      decodeInto[UserConnected],
	EventUserDisconnected:   decodeInto[UserDisconnected],
	EventSyncRoomState:      decodeInto[SyncRoomState],
	EventHeatmapUpdate:      decodeInto[HeatmapUpdate],
	EventHighlightingUpdate: decodeInto[HighlightingUpdate],
	EventAllHighlightsReset: decodeInto[AllHighlightsReset],
	EventUserPositions:      decodeInto[UserPositions],
	EventPing:               decodeInto[Ping],
	EventSpectatingUpdate:   decodeInto[SpectatingUpdate],
	EventAppOpened:          decodeInto[AppOpened],
	EventAppClosed:          decodeInto[AppClosed],
	EventComponentUpdate:    decodeInto[ComponentUpdate],
	EventPopupOpened:        decodeInto[PopupOpened],
	EventPopupClosed:        decodeInto[PopupClosed],
	EventAnnotationOpened:   decodeInto[AnnotationOpened],
	EventAnnotationClosed:   decodeInto[AnnotationClosed],
	EventDetachedMenuOpened: decodeInto[DetachedMenuOpened],
	EventDetachedMenuClosed: decodeInto[DetachedMenuClosed],
	EventRestructureCreate:  decodeInto[RestructureCreate],
	EventRestructureRename:  decodeInto[RestructureRename],
	EventRestructureDelete:  decodeInto[RestructureDelete],
	EventTimestampUpdate:    decodeInto[TimestampUpdate],
	EventError:              decodeInto[Error],
}

func decodeInto[T Message](data []byte) (Message, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if v, ok := any(msg).(validator); ok {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", msg.Event(), err)
		}
	}
	return msg, nil
}

// Decode parses one wire frame into a typed message.
func Decode(data []byte) (Received, error) {
	var env struct {
		Event  string `json:"event"`
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return Received{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	decode, ok := decoders[env.Event]
	if !ok {
		return Received{}, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
	msg, err := decode(data)
	if err != nil {
		return Received{}, err
	}
	return Received{From: env.UserID, Msg: msg}, nil
}

// Encode flattens the message into its wire envelope.
func Encode(msg Message) ([]byte, error) {
	return encode(msg, "")
}

// EncodeFrom encodes a forwarded message, stamping the sender's id so
// receivers can attribute it and skip their own echo.
func EncodeFrom(userID string, msg Message) ([]byte, error) {
	return encode(msg, userID)
}

func encode(msg Message, from string) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	obj := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	obj["event"], _ = json.Marshal(msg.Event())
	if from != "" {
		obj["userId"], _ = json.Marshal(from)
	}
	return json.Marshal(obj)
}
