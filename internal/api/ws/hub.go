package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"kitchen-rush/internal/config"
	"kitchen-rush/internal/logging"
	"kitchen-rush/internal/room"
)

// Hub owns every live connection and the room membership used for
// broadcasts. It implements room.Broadcaster.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*client
	rooms       map[string]map[string]struct{}
	roomManager RoomManager

	// wg tracks serving connections so Close can wait for their disconnect.
	wg     sync.WaitGroup
	closed bool

	cfg      config.Config
	upgrader websocket.Upgrader
}

var _ room.Broadcaster = (*Hub)(nil)

func NewHub(roomManager RoomManager, cfg config.Config) *Hub {
	h := &Hub{
		clients:     make(map[string]*client),
		rooms:       make(map[string]map[string]struct{}),
		roomManager: roomManager,
		cfg:         cfg,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// HandleWS upgrades the request and serves the connection until it closes.
func (h *Hub) HandleWS(c *gin.Context) {
	logger := logging.FromContext(c.Request.Context()).Named("ws.hub")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("failed to upgrade connection: %v", err)
		return
	}

	cl := &client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, h.cfg.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(h.cfg.MsgRate), h.cfg.MsgBurst),
		logger:  logger,
	}
	ctx := logging.WithLogger(context.WithoutCancel(c.Request.Context()), logger.With("player", cl.id))

	if !h.register(cl) {
		_ = conn.Close()
		return
	}
	defer h.wg.Done()
	go cl.writePump()
	h.Send(cl.id, room.EventSession, room.SessionPayload{PlayerID: cl.id})
	logger.Infow("client connected", "player", cl.id)

	h.readPump(ctx, cl)

	h.roomManager.Disconnect(ctx, cl.id)
	h.unregister(cl)
	logger.Infow("client disconnected", "player", cl.id)
}

func (h *Hub) readPump(ctx context.Context, cl *client) {
	logger := logging.FromContext(ctx)
	cl.prepareRead()

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debugf("read failed: %v", err)
			}
			return
		}
		if !cl.limiter.Allow() {
			logger.Debugw("rate limited, dropping message")
			continue
		}

		msg, err := Decode(raw)
		if err != nil {
			logger.Debugw("rejected message", "error", err)
			h.Send(cl.id, room.EventErrorMessage, room.MessagePayload{Message: err.Error()})
			continue
		}
		h.dispatch(ctx, cl.id, msg)
	}
}

// dispatch hands a decoded message to the manager. The manager already
// reports user-facing failures to the player, so errors are only logged.
func (h *Hub) dispatch(ctx context.Context, playerID string, msg Message) {
	var err error
	switch m := msg.(type) {
	case CreateRoom:
		_, err = h.roomManager.CreateRoom(ctx, playerID, m.Name)
	case JoinRoom:
		err = h.roomManager.JoinRoom(ctx, playerID, m.Name, m.RoomID)
	case StartGame:
		err = h.roomManager.StartGame(ctx, playerID, m.RoomID)
	case GameAction:
		err = h.roomManager.HandleAction(ctx, playerID, m.RoomID, m.Action)
	}
	if err != nil && !errors.Is(err, room.ErrNoActiveRound) {
		logging.FromContext(ctx).Debugw("request failed", "action", msg.Kind(), "error", err)
	}
}

// register refuses new clients once the hub is closing.
func (h *Hub) register(cl *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	h.clients[cl.id] = cl
	return true
}

// unregister drops the client from every room and closes its send channel,
// which stops the write pump.
func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[cl.id]; !ok {
		return
	}
	delete(h.clients, cl.id)
	for code, members := range h.rooms {
		delete(members, cl.id)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	close(cl.send)
}

func (h *Hub) Join(roomCode, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[string]struct{})
	}
	h.rooms[roomCode][playerID] = struct{}{}
}

func (h *Hub) Leave(roomCode, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	delete(members, playerID)
	if len(members) == 0 {
		delete(h.rooms, roomCode)
	}
}

func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	msg, err := encode(action, data)
	if err != nil {
		logging.DefaultLogger().Named("ws.hub").Errorf("failed to encode %s: %v", action, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.rooms[roomCode] {
		if cl, ok := h.clients[id]; ok {
			cl.enqueue(msg)
		}
	}
}

func (h *Hub) Send(playerID string, action string, data interface{}) {
	msg, err := encode(action, data)
	if err != nil {
		logging.DefaultLogger().Named("ws.hub").Errorf("failed to encode %s: %v", action, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if cl, ok := h.clients[playerID]; ok {
		cl.enqueue(msg)
	}
}

// Close drops every connection and waits until each read pump has run its
// disconnect, or ctx is done.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for _, cl := range h.clients {
		conns = append(conns, cl.conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for connections: %w", ctx.Err())
	}
}

// Connections reports how many clients are connected.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
