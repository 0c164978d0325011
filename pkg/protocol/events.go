package protocol

// Event names on the wire. The event string is the discriminator of the
// JSON envelope; everything else in the object is event-specific payload.
const (
	EventSelfConnected    = "self_connected"
	EventSelfDisconnected = "self_disconnected"
	EventUserConnected    = "user_connected"
	EventUserDisconnected = "user_disconnected"
	EventSyncRoomState    = "sync_room_state"

	EventHeatmapUpdate      = "heatmap_update"
	EventHighlightingUpdate = "highlighting_update"
	EventAllHighlightsReset = "all_highlights_reset"

	EventUserPositions = "user_positions"
	EventPing          = "ping"

	EventSpectatingUpdate = "spectating_update"

	EventAppOpened       = "app_opened"
	EventAppClosed       = "app_closed"
	EventComponentUpdate = "component_update"

	EventPopupOpened        = "popup_opened"
	EventPopupClosed        = "popup_closed"
	EventAnnotationOpened   = "annotation_opened"
	EventAnnotationClosed   = "annotation_closed"
	EventDetachedMenuOpened = "detached_menu_opened"
	EventDetachedMenuClosed = "detached_menu_closed"

	EventRestructureCreate = "restructure_create"
	EventRestructureRename = "restructure_rename"
	EventRestructureDelete = "restructure_delete"

	EventTimestampUpdate = "timestamp_update"

	EventError = "error"
)
