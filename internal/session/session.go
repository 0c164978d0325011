package session

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/collabvis/syncroom/internal/changelog"
	"github.com/collabvis/syncroom/internal/presence"
	"github.com/collabvis/syncroom/internal/spectate"
	"github.com/collabvis/syncroom/internal/state"
	"github.com/collabvis/syncroom/internal/syncer"
	"github.com/collabvis/syncroom/internal/transport"
	"github.com/collabvis/syncroom/pkg/protocol"
)

var (
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrUnknownUser      = errors.New("unknown user")
)

const (
	defaultRetryAttempts = 5
	defaultRetryDelay    = 5 * time.Second
	defaultConnectWait   = 10 * time.Second
	sendTimeout          = 3 * time.Second
)

// Config wires a Session to its environment. Zero values fall back to
// production defaults; tests swap the dialer for a pipe.
type Config struct {
	ServerURL      string // http(s) base of the room server
	UserName       string
	RetryAttempts  int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
	HTTPClient     *http.Client
	Dialer         transport.Dialer
	// Notify surfaces user-visible messages; nil means drop them.
	Notify func(Notification)
}

func (c *Config) fillDefaults() {
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectWait
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Dialer == nil {
		c.Dialer = transport.WebsocketDialer{}
	}
	if c.Notify == nil {
		c.Notify = func(Notification) {}
	}
}

// Session is the client half of the collaboration engine: connection
// state machine, presence, synchronizers, spectate and the restructure
// changelog, all behind one mutex. Inbound frames are dispatched from
// the receive pump under the same mutex, so component state needs no
// further locking.
type Session struct {
	cfg    Config
	logger *zap.Logger

	mu          sync.Mutex
	status      Status
	roomID      string
	conn        transport.Conn
	pumpCancel  context.CancelFunc
	retryCancel context.CancelFunc
	synced      bool

	model       *state.RoomState
	registry    *presence.Registry
	core        *syncer.Core
	heatmap     *syncer.Heatmap
	highlight   *syncer.Highlight
	pose        *syncer.Pose
	restructure *syncer.Restructure
	spectator   *spectate.Controller
	log         *changelog.Log

	heatmapShared  bool
	lastPing       *protocol.Ping
	onSpectatePose func(protocol.Pose)
}

func New(cfg Config, logger *zap.Logger) *Session {
	cfg.fillDefaults()

	s := &Session{
		cfg:           cfg,
		logger:        logger,
		model:         state.New(),
		registry:      presence.NewRegistry(),
		heatmapShared: true,
	}
	s.core = syncer.NewCore(s.sendLocked, logger)
	s.heatmap = syncer.NewHeatmap(s.core, s.model, func() bool { return s.heatmapShared })
	s.highlight = syncer.NewHighlight(s.core, s.model)
	s.pose = syncer.NewPose(s.core, s.registry)
	s.restructure = syncer.NewRestructure(s.core, s.model)
	s.spectator = spectate.NewController(
		func(p protocol.Pose) {
			if s.onSpectatePose != nil {
				s.onSpectatePose(p)
			}
		},
		s.pose.SetBroadcast,
	)
	s.log = changelog.New(&undoApplier{s: s})
	return s
}

// SetSpectatePoseSink registers the camera-follow callback. Call before
// joining; the rendering layer owns what "follow" means.
func (s *Session) SetSpectatePoseSink(fn func(protocol.Pose)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSpectatePose = fn
}

// sendLocked encodes and sends one message on the current transport.
// Callers hold s.mu.
func (s *Session) sendLocked(msg protocol.Message) error {
	if s.conn == nil {
		return ErrNotConnected
	}
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return s.conn.Send(ctx, data)
}

// Join connects to an existing room. The server answers with
// self_connected and sync_room_state before forwarding anything else,
// so the presence registry and model are seeded in order.
func (s *Session) Join(ctx context.Context, roomID string) error {
	s.mu.Lock()
	if s.status != StatusOffline {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.status = StatusConnecting
	s.mu.Unlock()

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()
	conn, err := s.cfg.Dialer.Dial(dialCtx, s.wsURL(roomID))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusOffline
		return err
	}

	s.conn = conn
	s.roomID = roomID
	s.status = StatusOnline

	pumpCtx, pumpCancel := context.WithCancel(context.Background())
	s.pumpCancel = pumpCancel
	go s.pump(pumpCtx, conn)

	s.logger.Info("joined room", zap.String("room", roomID))
	return nil
}

// Disconnect tears the session down. Safe to call from any state; every
// disconnect path (explicit, transport error, exhausted retries)
// converges on the same teardown.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked("disconnect")
}

func (s *Session) teardownLocked(reason string) {
	if s.pumpCancel != nil {
		s.pumpCancel()
		s.pumpCancel = nil
	}
	// A disconnect also ends any auto-rejoin loop waiting between
	// attempts.
	if s.retryCancel != nil {
		s.retryCancel()
		s.retryCancel = nil
	}
	if s.conn != nil {
		_ = s.conn.Close(reason)
		s.conn = nil
	}
	s.spectator.Deactivate()
	s.core.Reset()
	s.registry.Clear()
	s.status = StatusOffline
	s.roomID = ""
	s.synced = false
	s.logger.Info("session offline", zap.String("reason", reason))
}

func (s *Session) pump(ctx context.Context, conn transport.Conn) {
	for {
		data, err := conn.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, transport.ErrClosed) {
				return
			}
			s.mu.Lock()
			if s.conn == conn {
				s.teardownLocked("transport error")
				s.cfg.Notify(Notification{Level: "error", Message: "connection to room lost"})
			}
			s.mu.Unlock()
			return
		}

		rcv, err := protocol.Decode(data)
		if err != nil {
			// Malformed frames die here, never in the render loop.
			s.logger.Debug("dropping inbound frame", zap.Error(err))
			continue
		}

		s.mu.Lock()
		if s.conn == conn {
			s.handleLocked(rcv)
		}
		s.mu.Unlock()
	}
}

func (s *Session) handleLocked(rcv protocol.Received) {
	// Sender-id echo filter for broadcast transports.
	if rcv.From != "" && rcv.From == s.registry.Local().User.ID {
		return
	}

	switch m := rcv.Msg.(type) {
	case protocol.SelfConnected:
		s.registry.Seed(m.Self, m.Users)

	case protocol.SyncRoomState:
		s.model.ApplySnapshot(m.Room)
		s.synced = true

	case protocol.SelfDisconnected:
		s.teardownLocked("removed by room")
		s.cfg.Notify(Notification{Level: "info", Message: "disconnected from room"})

	case protocol.UserConnected:
		s.registry.AddRemote(m.User)

	case protocol.UserDisconnected:
		s.registry.Remove(m.UserID)
		s.spectator.HandleDisconnect(m.UserID)

	case protocol.UserPositions:
		s.pose.Accept(rcv.From, m)
		s.spectator.HandlePose(rcv.From, m)

	case protocol.Ping:
		ping := m
		s.lastPing = &ping

	case protocol.Error:
		s.cfg.Notify(Notification{Level: "error", Message: m.Message})

	case protocol.SpectatingUpdate:
		// Informational only; the local spectate state is not driven
		// by remote announcements.
		s.logger.Debug("spectating update",
			zap.String("user", rcv.From), zap.Bool("active", m.IsSpectating))

	default:
		// Shared-state concerns enable only after the snapshot replay.
		if !s.synced {
			return
		}
		switch m := rcv.Msg.(type) {
		case protocol.HeatmapUpdate:
			s.heatmap.Accept(rcv.From, m)
		case protocol.HighlightingUpdate:
			s.highlight.Accept(rcv.From, m)
		case protocol.AllHighlightsReset:
			s.highlight.AcceptReset(rcv.From)
		case protocol.RestructureCreate, protocol.RestructureRename, protocol.RestructureDelete:
			s.restructure.Accept(rcv.From, m)
		default:
			s.model.Apply(rcv.From, rcv.Msg)
		}
	}
}

func (s *Session) wsURL(roomID string) string {
	base := s.cfg.ServerURL
	base = strings.Replace(base, "https://", "wss://", 1)
	base = strings.Replace(base, "http://", "ws://", 1)
	return base + "/v1/rooms/" + roomID + "/ws?name=" + url.QueryEscape(s.cfg.UserName)
}
