package protocol

import "errors"

var ErrBadPayload = errors.New("bad payload")

// Message is one typed wire message. Event returns the envelope
// discriminator the message travels under.
type Message interface {
	Event() string
}

// Pose is a camera or controller transform.
type Pose struct {
	Position   [3]float64 `json:"position"`
	Quaternion [4]float64 `json:"quaternion"`
}

// User describes one connected participant.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Pose  Pose   `json:"pose"`
}

// SelfConnected is the first message a joining client receives. Users
// enumerates the membership at join time, excluding the joiner itself.
type SelfConnected struct {
	Self  User   `json:"self"`
	Users []User `json:"users"`
}

func (SelfConnected) Event() string { return EventSelfConnected }

func (m SelfConnected) validate() error {
	if m.Self.ID == "" {
		return ErrBadPayload
	}
	for _, u := range m.Users {
		if u.ID == "" {
			return ErrBadPayload
		}
	}
	return nil
}

type SelfDisconnected struct {
	Reason string `json:"reason,omitempty"`
}

func (SelfDisconnected) Event() string { return EventSelfDisconnected }

type UserConnected struct {
	User User `json:"user"`
}

func (UserConnected) Event() string { return EventUserConnected }

func (m UserConnected) validate() error {
	if m.User.ID == "" {
		return ErrBadPayload
	}
	return nil
}

type UserDisconnected struct {
	UserID string `json:"id"`
}

func (UserDisconnected) Event() string { return EventUserDisconnected }

func (m UserDisconnected) validate() error {
	if m.UserID == "" {
		return ErrBadPayload
	}
	return nil
}

// SyncRoomState carries the full replayable snapshot sent after
// self_connected and on demand.
type SyncRoomState struct {
	Room SerializedRoom `json:"room"`
}

func (SyncRoomState) Event() string { return EventSyncRoomState }

// HeatmapUpdate is the shared heatmap configuration.
type HeatmapUpdate struct {
	ApplicationID string `json:"applicationId"`
	Metric        string `json:"metric"`
	Mode          string `json:"mode"`
	IsActive      bool   `json:"isActive"`
}

func (HeatmapUpdate) Event() string { return EventHeatmapUpdate }

func (m HeatmapUpdate) validate() error {
	if m.IsActive && m.ApplicationID == "" {
		return ErrBadPayload
	}
	switch m.Mode {
	case "", "aggregatedHeatmap", "windowedHeatmap":
		return nil
	}
	return ErrBadPayload
}

// HighlightingUpdate toggles highlighting of one entity.
type HighlightingUpdate struct {
	AppID         string `json:"appId"`
	EntityType    string `json:"entityType"`
	EntityID      string `json:"entityId"`
	IsHighlighted bool   `json:"isHighlighted"`
}

func (HighlightingUpdate) Event() string { return EventHighlightingUpdate }

func (m HighlightingUpdate) validate() error {
	if m.EntityID == "" {
		return ErrBadPayload
	}
	return nil
}

type AllHighlightsReset struct{}

func (AllHighlightsReset) Event() string { return EventAllHighlightsReset }

// UserPositions is the per-tick pose broadcast. Controller poses are
// optional; desktop clients only carry a camera.
type UserPositions struct {
	Camera      Pose  `json:"camera"`
	Controller1 *Pose `json:"controller1,omitempty"`
	Controller2 *Pose `json:"controller2,omitempty"`
}

func (UserPositions) Event() string { return EventUserPositions }

// Ping marks a point in the scene for the other participants.
type Ping struct {
	Position   [3]float64 `json:"position"`
	DurationMS int        `json:"durationMs"`
	Nonce      int        `json:"nonce"`
}

func (Ping) Event() string { return EventPing }

type SpectatingUpdate struct {
	IsSpectating    bool   `json:"isSpectating"`
	SpectatedUserID string `json:"spectatedUserId,omitempty"`
}

func (SpectatingUpdate) Event() string { return EventSpectatingUpdate }

func (m SpectatingUpdate) validate() error {
	if m.IsSpectating && m.SpectatedUserID == "" {
		return ErrBadPayload
	}
	return nil
}

type AppOpened struct {
	App App `json:"app"`
}

func (AppOpened) Event() string { return EventAppOpened }

func (m AppOpened) validate() error {
	if m.App.ID == "" {
		return ErrBadPayload
	}
	return nil
}

type AppClosed struct {
	AppID string `json:"appId"`
}

func (AppClosed) Event() string { return EventAppClosed }

func (m AppClosed) validate() error {
	if m.AppID == "" {
		return ErrBadPayload
	}
	return nil
}

// ComponentUpdate opens or closes one component of an open application.
type ComponentUpdate struct {
	AppID        string `json:"appId"`
	ComponentID  string `json:"componentId"`
	IsOpened     bool   `json:"isOpened"`
	IsFoundation bool   `json:"isFoundation"`
}

func (ComponentUpdate) Event() string { return EventComponentUpdate }

func (m ComponentUpdate) validate() error {
	if m.AppID == "" || m.ComponentID == "" {
		return ErrBadPayload
	}
	return nil
}

type PopupOpened struct {
	Popup Popup `json:"popup"`
}

func (PopupOpened) Event() string { return EventPopupOpened }

func (m PopupOpened) validate() error {
	if m.Popup.EntityID == "" {
		return ErrBadPayload
	}
	return nil
}

type PopupClosed struct {
	EntityID string `json:"entityId"`
}

func (PopupClosed) Event() string { return EventPopupClosed }

func (m PopupClosed) validate() error {
	if m.EntityID == "" {
		return ErrBadPayload
	}
	return nil
}

type AnnotationOpened struct {
	Annotation Annotation `json:"annotation"`
}

func (AnnotationOpened) Event() string { return EventAnnotationOpened }

func (m AnnotationOpened) validate() error {
	if m.Annotation.ID == "" {
		return ErrBadPayload
	}
	return nil
}

type AnnotationClosed struct {
	AnnotationID string `json:"annotationId"`
}

func (AnnotationClosed) Event() string { return EventAnnotationClosed }

func (m AnnotationClosed) validate() error {
	if m.AnnotationID == "" {
		return ErrBadPayload
	}
	return nil
}

type DetachedMenuOpened struct {
	Menu DetachedMenu `json:"menu"`
}

func (DetachedMenuOpened) Event() string { return EventDetachedMenuOpened }

func (m DetachedMenuOpened) validate() error {
	if m.Menu.ID == "" {
		return ErrBadPayload
	}
	return nil
}

type DetachedMenuClosed struct {
	MenuID string `json:"menuId"`
}

func (DetachedMenuClosed) Event() string { return EventDetachedMenuClosed }

func (m DetachedMenuClosed) validate() error {
	if m.MenuID == "" {
		return ErrBadPayload
	}
	return nil
}

// RestructureCreate announces a structural create. Peers receive the
// effect of a changelog entry, never the changelog itself.
type RestructureCreate struct {
	EntityID   string `json:"entityId"`
	EntityType string `json:"entityType"`
	Name       string `json:"name"`
	ParentID   string `json:"parentId,omitempty"`
}

func (RestructureCreate) Event() string { return EventRestructureCreate }

func (m RestructureCreate) validate() error {
	if m.EntityID == "" {
		return ErrBadPayload
	}
	return nil
}

type RestructureRename struct {
	EntityID string `json:"entityId"`
	NewName  string `json:"newName"`
	OldName  string `json:"oldName"`
}

func (RestructureRename) Event() string { return EventRestructureRename }

func (m RestructureRename) validate() error {
	if m.EntityID == "" {
		return ErrBadPayload
	}
	return nil
}

type RestructureDelete struct {
	EntityID string `json:"entityId"`
}

func (RestructureDelete) Event() string { return EventRestructureDelete }

func (m RestructureDelete) validate() error {
	if m.EntityID == "" {
		return ErrBadPayload
	}
	return nil
}

// TimestampUpdate selects the visualized landscape snapshot.
type TimestampUpdate struct {
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

func (TimestampUpdate) Event() string { return EventTimestampUpdate }

func (m TimestampUpdate) validate() error {
	if m.Token == "" {
		return ErrBadPayload
	}
	return nil
}

// Error is sent to a single client when its own frame was rejected.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (Error) Event() string { return EventError }
