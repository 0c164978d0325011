package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/hub"
	"github.com/collabvis/syncroom/internal/ws"
)

func SetupRoutes(h *hub.Hub, logger *zap.Logger, originPatterns []string) http.Handler {
	r := chi.NewRouter()

	r.Post("/v1/rooms", CreateRoom(h, logger))
	r.Get("/v1/rooms", ListRooms(h))
	r.Get("/v1/rooms/{roomID}/ws", ws.Handler(h, logger, originPatterns))
	r.Get("/healthz", Healthz)
	return r
}
