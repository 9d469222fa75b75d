package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/config"
	"kitchen-rush/internal/database/result/model"
	"kitchen-rush/internal/game"
	"kitchen-rush/internal/logging"
	"kitchen-rush/internal/shared"
)

// Store is the registry of open rooms and of which room each player is in.
type Store interface {
	Create(build func(code string) *Room) (*Room, error)
	Get(code string) (*Room, bool)
	Delete(code string, r *Room)
	Active() []*Room
	List() []*Room
	BindPlayer(playerID, code string)
	UnbindPlayer(playerID string)
	RoomOf(playerID string) (string, bool)
}

// ResultStore keeps finished games.
type ResultStore interface {
	Add(m model.Result) error
}

type Manager struct {
	store   Store
	cfg     config.Config
	cat     *catalog.Catalog
	hub     Broadcaster
	results ResultStore

	rng   game.Rand
	now   func() time.Time
	after func(d time.Duration, f func())
}

type Option func(*Manager)

func WithRand(rng game.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithAfter replaces time.AfterFunc for the pause between levels.
func WithAfter(after func(d time.Duration, f func())) Option {
	return func(m *Manager) { m.after = after }
}

func WithResults(rs ResultStore) Option {
	return func(m *Manager) { m.results = rs }
}

func NewManager(s Store, cfg config.Config, cat *catalog.Catalog, hub Broadcaster, opts ...Option) *Manager {
	m := &Manager{
		store: s,
		cfg:   cfg,
		cat:   cat,
		hub:   hub,
		rng:   game.FastRand{},
		now:   time.Now,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetHub wires the broadcaster once the hub, which needs the manager, exists.
func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.Get(code)
}

func (m *Manager) roomOptions() Options {
	return Options{
		MaxPlayers:   m.cfg.MaxPlayers,
		AbilityDelay: m.cfg.AbilityDelay,
		Now:          m.now,
		Rand:         m.rng,
	}
}

func (m *Manager) fail(playerID string, err error) {
	m.hub.Send(playerID, EventErrorMessage, MessagePayload{Message: err.Error()})
}

func (m *Manager) CreateRoom(ctx context.Context, playerID, name string) (*Room, error) {
	logger := logging.FromContext(ctx).Named("room.manager")

	if _, ok := m.store.RoomOf(playerID); ok {
		m.fail(playerID, ErrAlreadyInRoom)
		return nil, ErrAlreadyInRoom
	}

	r, err := m.store.Create(func(code string) *Room {
		return NewWithHost(code, playerID, name, m.cat, m.roomOptions())
	})
	if err != nil {
		m.fail(playerID, err)
		return nil, fmt.Errorf("create room: %w", err)
	}

	m.store.BindPlayer(playerID, r.Code)
	m.hub.Join(r.Code, playerID)
	m.hub.Send(playerID, EventRoomCreated, RoomJoinedPayload{RoomID: r.Code, IsHost: true})
	m.hub.Broadcast(r.Code, EventUpdateLobby, r.Lobby())

	logger.Infow("room created", "room", r.Code, "player", playerID)
	return r, nil
}

func (m *Manager) JoinRoom(ctx context.Context, playerID, name, code string) error {
	logger := logging.FromContext(ctx).Named("room.manager")

	if _, ok := m.store.RoomOf(playerID); ok {
		m.fail(playerID, ErrAlreadyInRoom)
		return ErrAlreadyInRoom
	}

	r, ok := m.store.Get(code)
	if !ok {
		m.fail(playerID, ErrRoomNotFound)
		return ErrRoomNotFound
	}
	if err := r.AddPlayer(playerID, name); err != nil {
		m.fail(playerID, err)
		return fmt.Errorf("join room %s: %w", code, err)
	}

	m.store.BindPlayer(playerID, code)
	m.hub.Join(code, playerID)
	m.hub.Send(playerID, EventJoinSuccess, RoomJoinedPayload{RoomID: code, IsHost: r.IsHost(playerID)})
	m.hub.Broadcast(code, EventUpdateLobby, r.Lobby())

	logger.Infow("player joined", "room", code, "player", playerID)
	return nil
}

// StartGame starts level one. Requests from anyone but the host are ignored.
func (m *Manager) StartGame(ctx context.Context, playerID, code string) error {
	logger := logging.FromContext(ctx).Named("room.manager")

	r, ok := m.store.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	if !r.IsHost(playerID) {
		return ErrNotHost
	}

	res, err := r.StartRound()
	if err != nil {
		return fmt.Errorf("start game in %s: %w", code, err)
	}

	for _, seat := range res.Seats {
		m.hub.Send(seat.PlayerID, EventGameStarted, GameStartedPayload{
			InitialState:  res.Snapshot,
			YourID:        seat.PlayerID,
			YourName:      seat.Name,
			LeftNeighbor:  seat.Left,
			RightNeighbor: seat.Right,
		})
	}

	logger.Infow("game started", "room", code, "players", len(res.Seats))
	return nil
}

// HandleAction applies a player action and fans out its effects. Actions
// outside an active round or from non-participants are dropped silently.
func (m *Manager) HandleAction(ctx context.Context, playerID, code string, a Action) error {
	logger := logging.FromContext(ctx).Named("room.manager")

	r, ok := m.store.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	res, err := r.Apply(playerID, a)
	switch {
	case errors.Is(err, ErrNoActiveRound), errors.Is(err, ErrNotParticipant):
		return err
	case err != nil:
		logger.Debugw("action rejected", "room", code, "player", playerID, "action", a.Type(), "error", err)
		m.hub.Send(playerID, EventActionFail, NoticePayload{Message: err.Error(), Sound: SoundError})
	}

	if res.Success != nil {
		m.hub.Send(playerID, EventActionSuccess, *res.Success)
	}
	m.deliver(res.Deliveries)
	if res.LevelUp != nil {
		m.levelUp(ctx, r, *res.LevelUp)
	}
	if res.Snapshot != nil {
		m.hub.Broadcast(code, EventUpdateGameState, *res.Snapshot)
	}
	return err
}

func (m *Manager) deliver(ds []Delivery) {
	for _, d := range ds {
		m.hub.Send(d.PlayerID, EventReceiveItem, ReceiveItemPayload{Item: d.Item})
	}
}

func (m *Manager) levelUp(ctx context.Context, r *Room, lu LevelUp) {
	logging.FromContext(ctx).Named("room.manager").
		Infow("level complete", "room", r.Code, "level", lu.Level, "total", lu.TotalScore)

	m.hub.Broadcast(r.Code, EventLevelComplete, LevelCompletePayload{
		Level:      lu.Level,
		LevelScore: lu.LevelScore,
		TotalScore: lu.TotalScore,
	})

	ctx = context.WithoutCancel(ctx)
	m.after(m.cfg.LevelPause, func() {
		m.advanceLevel(ctx, r, lu.Seq)
	})
}

func (m *Manager) advanceLevel(ctx context.Context, r *Room, seq uint64) {
	res := r.AdvanceLevel(seq)
	if !res.Advanced {
		return
	}

	if res.Won {
		m.hub.Broadcast(r.Code, EventGameWon, GameWonPayload{TotalScore: res.TotalScore})
		m.record(ctx, r.Code, model.ReasonWon, res.Level, res.TotalScore, res.Players)
		return
	}

	m.hub.Broadcast(r.Code, EventClearAllItems, struct{}{})
	m.hub.Broadcast(r.Code, EventStartNextLevel, res.Snapshot)
	m.sendNeighbours(res.Seats)
}

func (m *Manager) sendNeighbours(seats []Seat) {
	for _, seat := range seats {
		m.hub.Send(seat.PlayerID, EventUpdateNeighbors, NeighborsPayload{
			LeftNeighbor:  seat.Left,
			RightNeighbor: seat.Right,
		})
	}
}

// Disconnect removes the player from whatever room they were in.
func (m *Manager) Disconnect(ctx context.Context, playerID string) {
	logger := logging.FromContext(ctx).Named("room.manager")

	code, ok := m.store.RoomOf(playerID)
	if !ok {
		return
	}
	m.store.UnbindPlayer(playerID)
	m.hub.Leave(code, playerID)

	r, ok := m.store.Get(code)
	if !ok {
		return
	}

	res := r.RemovePlayer(playerID)
	switch res.Outcome {
	case RemoveNotFound:
		return
	case RemoveRoomEmpty:
		m.store.Delete(code, r)
		logger.Infow("room closed", "room", code)
		return
	case RemoveRoundEnded:
		m.hub.Broadcast(code, EventGameOver, GameOverPayload{TotalScore: res.FinalScore, Message: MessageNoPlayers})
		m.record(ctx, code, model.ReasonNoPlayers, res.Level, res.FinalScore, res.Players)
	}

	m.hub.Broadcast(code, EventUpdateLobby, res.Lobby)
	if res.HostChanged {
		m.hub.Broadcast(code, EventNewHost, NewHostPayload{HostID: res.HostID})
	}
	if res.Snapshot != nil {
		m.sendNeighbours(res.Seats)
		m.hub.Broadcast(code, EventUpdateGameState, *res.Snapshot)
	}

	logger.Infow("player left", "room", code, "player", playerID)
}

// TickAll advances every room with a round in play and broadcasts its state.
func (m *Manager) TickAll(ctx context.Context) {
	for _, r := range m.store.Active() {
		res := r.Tick()
		m.deliver(res.Deliveries)

		if res.Ended {
			m.hub.Broadcast(r.Code, EventGameOver, GameOverPayload{TotalScore: res.FinalScore, Message: MessageTimeUp})
			m.record(ctx, r.Code, model.ReasonTimeUp, res.Level, res.FinalScore, res.Players)
			continue
		}
		if res.Snapshot != nil {
			m.hub.Broadcast(r.Code, EventUpdateGameState, *res.Snapshot)
		}
	}
}

func (m *Manager) record(ctx context.Context, code string, reason model.Reason, level, total int, players []string) {
	if m.results == nil {
		return
	}

	res := model.NewResult(code, reason)
	res.Level = level
	res.TotalScore = total
	res.Players = players
	res.FinishedAt = m.now()
	if err := m.results.Add(res); err != nil {
		logging.FromContext(ctx).Named("room.manager").Errorf("record result for %s: %v", code, err)
	}
}

type Summary struct {
	Code      string               `json:"code"`
	HostID    string               `json:"host_sid"`
	Players   []shared.LobbyPlayer `json:"players"`
	Phase     string               `json:"phase"`
	Active    bool                 `json:"active"`
	CreatedAt time.Time            `json:"created_at"`
}

// Rooms summarizes every open room.
func (m *Manager) Rooms() []Summary {
	rooms := m.store.List()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		lobby := r.Lobby()
		out = append(out, Summary{
			Code:      r.Code,
			HostID:    lobby.HostID,
			Players:   lobby.Players,
			Phase:     r.Phase().String(),
			Active:    r.Active(),
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
