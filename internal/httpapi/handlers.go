package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/hub"
	"github.com/collabvis/syncroom/internal/room"
	"github.com/collabvis/syncroom/pkg/protocol"
)

type createRoomRequest struct {
	RoomName       string `json:"roomName"`
	LandscapeToken string `json:"landscapeToken"`
	Alias          string `json:"alias,omitempty"`
}

type createRoomResponse struct {
	RoomID string `json:"roomId"`
}

func CreateRoom(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if req.LandscapeToken == "" {
			http.Error(w, "missing landscapeToken", http.StatusBadRequest)
			return
		}

		meta := room.Meta{
			ID:             uuid.NewString(),
			Name:           req.RoomName,
			LandscapeToken: req.LandscapeToken,
			Alias:          req.Alias,
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.CreateRoom{Meta: meta, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}
		logger.Info("room hosted", zap.String("room", meta.ID), zap.String("token", meta.LandscapeToken))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createRoomResponse{RoomID: meta.ID})
	}
}

func ListRooms(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []protocol.RoomListRecord, 1)
		h.Inbox() <- hub.ListRooms{Reply: reply}
		records := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
