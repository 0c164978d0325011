package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/hub"
	"github.com/collabvis/syncroom/internal/room"
	"github.com/collabvis/syncroom/pkg/protocol"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 3 * time.Second
)

// Handler upgrades a member connection and bridges it into the room
// actor: one writer goroutine drains the room outbox, the request
// goroutine pumps inbound frames.
func Handler(h *hub.Hub, logger *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "roomID")
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "anonymous"
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{ID: roomID, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		userID := uuid.NewString()
		out := make(chan []byte, 32)

		rm.Inbox() <- room.Join{
			User:   protocol.User{ID: userID, Name: name},
			Outbox: out,
		}
		defer func() { rm.Inbox() <- room.Leave{UserID: userID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for data := range out {
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err := conn.Write(ctx, websocket.MessageText, data)
				cancel()
				if err != nil {
					return
				}
			}
			// Outbox closed: the room dropped or released us.
			conn.Close(websocket.StatusGoingAway, "room closed")
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				logger.Debug("read failed", zap.String("user", userID), zap.Error(err))
				return
			}

			rm.Inbox() <- room.FromClient{UserID: userID, Raw: data}
		}
	}
}
