package protocol

// SerializedRoom is a complete point-in-time description of the shared
// UI state. It is a value object; the message carrying it owns nothing.
type SerializedRoom struct {
	Landscape     Landscape      `json:"landscape"`
	OpenApps      []App          `json:"openApps"`
	Highlights    []Highlight    `json:"highlightedEntities"`
	Popups        []Popup        `json:"popups"`
	Annotations   []Annotation   `json:"annotations"`
	DetachedMenus []DetachedMenu `json:"detachedMenus"`
}

// RoomListRecord is one row of the REST room listing. Clients filter
// the list against the landscape tokens they are authorized for.
type RoomListRecord struct {
	RoomID         string `json:"roomId"`
	RoomName       string `json:"roomName"`
	LandscapeToken string `json:"landscapeToken"`
	Alias          string `json:"alias,omitempty"`
}

// Landscape identifies which landscape snapshot the room visualizes.
type Landscape struct {
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

// App is one opened application with its transform and opened components.
type App struct {
	ID             string     `json:"id"`
	Position       [3]float64 `json:"position"`
	Quaternion     [4]float64 `json:"quaternion"`
	Scale          [3]float64 `json:"scale"`
	OpenComponents []string   `json:"openComponents"`
}

// Highlight records one highlighted entity within an application.
type Highlight struct {
	UserID     string `json:"userId"`
	AppID      string `json:"appId"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
}

type Popup struct {
	UserID   string     `json:"userId"`
	EntityID string     `json:"entityId"`
	Position [2]float64 `json:"position"`
}

type Annotation struct {
	ID       string     `json:"annotationId"`
	UserID   string     `json:"userId"`
	EntityID string     `json:"entityId,omitempty"`
	Title    string     `json:"annotationTitle"`
	Text     string     `json:"annotationText"`
	Position [2]float64 `json:"position"`
}

type DetachedMenu struct {
	ID         string     `json:"objectId"`
	EntityID   string     `json:"entityId"`
	EntityType string     `json:"entityType"`
	Position   [3]float64 `json:"position"`
	Quaternion [4]float64 `json:"quaternion"`
	Scale      [3]float64 `json:"scale"`
}
