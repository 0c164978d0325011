package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/room"
	"github.com/collabvis/syncroom/pkg/protocol"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Meta  room.Meta
	Reply chan *room.Room
}

type GetRoom struct {
	ID    string
	Reply chan *room.Room
}

type ListRooms struct {
	Reply chan []protocol.RoomListRecord
}

type RemoveRoom struct {
	ID string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (ListRooms) isHubMsg()   {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// Hub owns every live room. A single goroutine serializes access, so
// room creation, lookup and teardown never race.
type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if r := h.rooms[msg.Meta.ID]; r != nil {
					msg.Reply <- r
					break
				}
				onEmpty := func(id string) {
					// Called from the room's goroutine; go back through
					// the inbox instead of touching the map directly.
					select {
					case h.inbox <- RemoveRoom{ID: id}:
					case <-h.ctx.Done():
					}
				}
				r := room.NewRoom(h.ctx, msg.Meta, h.logger, onEmpty)
				h.rooms[msg.Meta.ID] = r
				h.logger.Info("room created", zap.String("room", msg.Meta.ID))
				msg.Reply <- r

			case GetRoom:
				msg.Reply <- h.rooms[msg.ID] // May be nil

			case ListRooms:
				records := make([]protocol.RoomListRecord, 0, len(h.rooms))
				for _, r := range h.rooms {
					meta := r.Meta()
					records = append(records, protocol.RoomListRecord{
						RoomID:         meta.ID,
						RoomName:       meta.Name,
						LandscapeToken: meta.LandscapeToken,
						Alias:          meta.Alias,
					})
				}
				msg.Reply <- records

			case RemoveRoom:
				delete(h.rooms, msg.ID)
				h.logger.Info("room removed", zap.String("room", msg.ID))

			case ShutdownHub:
				for _, r := range h.rooms {
					r.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}
