package room

import (
	"context"

	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/pkg/protocol"
)

type Msg interface{ isRoomMsg() }

// Join registers a client. Outbox is where this client wants to receive
// wire frames; the room sends self_connected and the state snapshot
// before anything else can be fanned out to the joiner.
type Join struct {
	User   protocol.User
	Outbox chan []byte
}

func (Join) isRoomMsg() {}

type Leave struct{ UserID string }

func (Leave) isRoomMsg() {}

// FromClient is one raw frame received from a member's websocket.
type FromClient struct {
	UserID string
	Raw    []byte
}

func (FromClient) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

// View reflects internal room state without data races (test-only).
type View struct {
	OwnerID    string
	NumMembers int
	Users      []protocol.User
	Room       protocol.SerializedRoom
}

// Meta is the immutable listing record of a room.
type Meta struct {
	ID             string
	Name           string
	LandscapeToken string
	Alias          string
}

type member struct {
	user   protocol.User
	outbox chan []byte
	seq    int // join order, for owner succession
}

type Room struct {
	meta    Meta
	inbox   chan Msg
	members map[string]*member
	state   *state.RoomState
	ownerID string
	nextSeq int
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc

	// OnEmpty is called once when the last member leaves, so the hub
	// can drop its reference.
	onEmpty func(roomID string)
}

var colorPalette = []string{
	"#ff6b6b", "#4ecdc4", "#ffe66d", "#95e1d3", "#a29bfe",
	"#fd9644", "#6c5ce7", "#00b894", "#e84393", "#0984e3",
}

func NewRoom(parent context.Context, meta Meta, logger *zap.Logger, onEmpty func(roomID string)) *Room {
	ctx, cancel := context.WithCancel(parent)

	st := state.New()
	st.SetLandscape(protocol.Landscape{Token: meta.LandscapeToken})

	r := &Room{
		meta:    meta,
		inbox:   make(chan Msg, 64),
		members: make(map[string]*member),
		state:   st,
		logger:  logger.With(zap.String("room", meta.ID)),
		ctx:     ctx,
		cancel:  cancel,
		onEmpty: onEmpty,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) Meta() Meta { return r.meta }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)

			case Leave:
				r.handleLeave(msg.UserID)

			case FromClient:
				r.handleFrame(msg.UserID, msg.Raw)

			case GetState:
				users := make([]protocol.User, 0, len(r.members))
				for _, mb := range r.members {
					users = append(users, mb.user)
				}
				msg.Reply <- View{
					OwnerID:    r.ownerID,
					NumMembers: len(r.members),
					Users:      users,
					Room:       r.state.Snapshot(),
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) {
	user := msg.User
	if user.Color == "" {
		user.Color = colorPalette[r.nextSeq%len(colorPalette)]
	}

	others := make([]protocol.User, 0, len(r.members))
	for _, mb := range r.members {
		others = append(others, mb.user)
	}

	r.members[user.ID] = &member{user: user, outbox: msg.Outbox, seq: r.nextSeq}
	r.nextSeq++
	if r.ownerID == "" {
		r.ownerID = user.ID
	}

	// The joiner must see self_connected before any other frame so it
	// can seed its presence registry, then the snapshot, then the rest
	// of the room learns about the join.
	r.sendTo(user.ID, protocol.SelfConnected{Self: user, Users: others})
	r.sendTo(user.ID, protocol.SyncRoomState{Room: r.state.Snapshot()})
	r.broadcastExcept(user.ID, protocol.UserConnected{User: user})

	r.logger.Info("user joined", zap.String("user", user.ID), zap.Int("members", len(r.members)))
}

func (r *Room) handleLeave(userID string) {
	mb, ok := r.members[userID]
	if !ok {
		return
	}
	close(mb.outbox)
	delete(r.members, userID)

	if len(r.members) == 0 {
		r.logger.Info("room empty, closing")
		if r.onEmpty != nil {
			r.onEmpty(r.meta.ID)
		}
		r.shutdown()
		return
	}

	if userID == r.ownerID {
		r.ownerID = r.oldestMember()
		r.logger.Info("owner left, promoted successor", zap.String("owner", r.ownerID))
	}

	r.broadcastExcept(userID, protocol.UserDisconnected{UserID: userID})
}

// oldestMember returns the earliest joiner still present.
func (r *Room) oldestMember() string {
	best := ""
	bestSeq := int(^uint(0) >> 1)
	for id, mb := range r.members {
		if mb.seq < bestSeq {
			best, bestSeq = id, mb.seq
		}
	}
	return best
}

func (r *Room) handleFrame(userID string, raw []byte) {
	// Frames can still be queued from a member that was just dropped;
	// they no longer speak for anyone.
	if _, ok := r.members[userID]; !ok {
		return
	}

	rcv, err := protocol.Decode(raw)
	if err != nil {
		// Malformed frames never cross the dispatch boundary; answer
		// the sender and move on.
		r.logger.Debug("dropping frame", zap.String("user", userID), zap.Error(err))
		r.sendTo(userID, protocol.Error{Code: "bad_message", Message: err.Error()})
		return
	}

	if up, ok := rcv.Msg.(protocol.UserPositions); ok {
		if mb, found := r.members[userID]; found {
			mb.user.Pose = up.Camera
		}
	}

	r.state.Apply(userID, rcv.Msg)
	r.forwardExcept(userID, rcv.Msg)
}

func (r *Room) sendTo(userID string, msg protocol.Message) {
	mb, ok := r.members[userID]
	if !ok {
		return
	}
	data, err := protocol.Encode(msg)
	if err != nil {
		r.logger.Warn("encode failed", zap.String("event", msg.Event()), zap.Error(err))
		return
	}
	r.push(userID, mb, data)
}

func (r *Room) broadcastExcept(userID string, msg protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		r.logger.Warn("encode failed", zap.String("event", msg.Event()), zap.Error(err))
		return
	}
	for id, mb := range r.members {
		if id == userID {
			continue
		}
		r.push(id, mb, data)
	}
}

// forwardExcept fans a client message out with the sender id stamped on
// the envelope, skipping the sender.
func (r *Room) forwardExcept(userID string, msg protocol.Message) {
	data, err := protocol.EncodeFrom(userID, msg)
	if err != nil {
		r.logger.Warn("encode failed", zap.String("event", msg.Event()), zap.Error(err))
		return
	}
	for id, mb := range r.members {
		if id == userID {
			continue
		}
		r.push(id, mb, data)
	}
}

func (r *Room) push(id string, mb *member, data []byte) {
	select {
	case mb.outbox <- data:
		// ok
	default:
		// Member is slow/full - drop them.
		r.logger.Warn("dropping slow member", zap.String("user", id))
		close(mb.outbox)
		delete(r.members, id)
		if id == r.ownerID {
			r.ownerID = r.oldestMember()
		}
		if len(r.members) == 0 {
			if r.onEmpty != nil {
				r.onEmpty(r.meta.ID)
			}
			r.cancel()
		}
	}
}

func (r *Room) shutdown() {
	for id, mb := range r.members {
		close(mb.outbox)
		delete(r.members, id)
	}
	r.cancel()
}
