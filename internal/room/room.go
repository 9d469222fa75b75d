package room

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/game"
	"kitchen-rush/internal/shared"
)

type Phase int

const (
	PhaseLobby Phase = iota
	PhasePlaying
	PhaseTransition
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseTransition:
		return "transition"
	default:
		return "lobby"
	}
}

type Options struct {
	MaxPlayers   int
	AbilityDelay time.Duration
	Now          func() time.Time
	Rand         game.Rand
}

func (o Options) withDefaults() Options {
	if o.MaxPlayers <= 0 {
		o.MaxPlayers = 8
	}
	if o.AbilityDelay <= 0 {
		o.AbilityDelay = 6 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Rand == nil {
		o.Rand = game.FastRand{}
	}
	return o
}

// Room is one kitchen: its players, host and at most one running round.
// Every method takes the room lock for its whole duration.
type Room struct {
	Code      string
	CreatedAt time.Time

	cat  *catalog.Catalog
	opts Options

	mu      sync.Mutex
	hostID  string
	order   []string
	players map[string]*game.Player
	round   *game.Round
	phase   Phase
	seq     uint64
	closed  bool

	active atomic.Bool
}

func New(code string, cat *catalog.Catalog, opts Options) *Room {
	opts = opts.withDefaults()
	return &Room{
		Code:      code,
		CreatedAt: opts.Now(),
		cat:       cat,
		opts:      opts,
		players:   map[string]*game.Player{},
	}
}

// NewWithHost builds a room whose founding player is already the host.
func NewWithHost(code, hostID, hostName string, cat *catalog.Catalog, opts Options) *Room {
	r := New(code, cat, opts)
	r.players[hostID] = game.NewPlayer(hostID, hostName)
	r.order = []string{hostID}
	r.hostID = hostID
	return r
}

// Seat is a participant's place in the turn order.
type Seat struct {
	PlayerID string
	Name     string
	Left     string
	Right    string
}

// Delivery is an item handed to one player.
type Delivery struct {
	PlayerID string
	Item     game.Item
}

type RemoveOutcome int

const (
	RemoveOK RemoveOutcome = iota
	RemoveRoomEmpty
	RemoveRoundEnded
	RemoveNotFound
)

type RemoveResult struct {
	Outcome     RemoveOutcome
	HostChanged bool
	HostID      string
	Lobby       shared.LobbyInfo
	// Set when the round ended because too few players were left.
	FinalScore int
	Level      int
	Players    []string
	// Set when a round is still running after the removal.
	Seats    []Seat
	Snapshot *shared.Snapshot
}

type StartResult struct {
	Snapshot shared.Snapshot
	Seats    []Seat
}

type TickResult struct {
	Deliveries []Delivery
	Ended      bool
	FinalScore int
	Level      int
	Players    []string
	Snapshot   *shared.Snapshot
}

type LevelUp struct {
	Level      int
	LevelScore int
	TotalScore int
	Seq        uint64
}

type ActionResult struct {
	Deliveries []Delivery
	Success    *NoticePayload
	LevelUp    *LevelUp
	Snapshot   *shared.Snapshot
}

type AdvanceResult struct {
	Advanced   bool
	Won        bool
	TotalScore int
	Level      int
	Players    []string
	Snapshot   shared.Snapshot
	Seats      []Seat
}

// Active reports whether a round is being played. It never blocks.
func (r *Room) Active() bool {
	return r.active.Load()
}

func (r *Room) AddPlayer(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.closed:
		return ErrRoomClosed
	case r.phase != PhaseLobby:
		return ErrRoundActive
	case len(r.players) >= r.opts.MaxPlayers:
		return ErrRoomFull
	}
	if _, ok := r.players[id]; ok {
		return nil
	}

	r.players[id] = game.NewPlayer(id, name)
	r.order = append(r.order, id)
	if r.hostID == "" {
		r.hostID = id
	}
	return nil
}

func (r *Room) RemovePlayer(id string) RemoveResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return RemoveResult{Outcome: RemoveNotFound, HostID: r.hostID}
	}

	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if len(r.players) == 0 {
		r.closed = true
		r.clearRoundLocked()
		return RemoveResult{Outcome: RemoveRoomEmpty}
	}

	res := RemoveResult{Outcome: RemoveOK}
	if r.hostID == id {
		r.hostID = r.order[0]
		res.HostChanged = true
	}
	res.HostID = r.hostID

	if r.round != nil && r.round.Remove(id) && len(r.round.TurnOrder) < 2 {
		res.Outcome = RemoveRoundEnded
		res.FinalScore = r.round.Total()
		res.Level = r.round.Level
		res.Players = r.namesLocked()
		r.clearRoundLocked()
	}

	res.Lobby = r.lobbyLocked()
	if r.phase == PhasePlaying {
		snap := r.snapshotLocked()
		res.Snapshot = &snap
		res.Seats = r.seatsLocked()
	}
	return res
}

// StartRound begins level one with a fresh shuffled turn order.
func (r *Room) StartRound() (StartResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.closed:
		return StartResult{}, ErrRoomClosed
	case r.phase != PhaseLobby:
		return StartResult{}, ErrRoundActive
	case len(r.players) == 0:
		return StartResult{}, ErrNoPlayers
	}

	first, ok := r.cat.Level(1)
	if !ok {
		return StartResult{}, fmt.Errorf("start round: %w", catalog.ErrNoLevels)
	}
	r.beginLocked(first, 0)

	return StartResult{Snapshot: r.snapshotLocked(), Seats: r.seatsLocked()}, nil
}

func (r *Room) beginLocked(level catalog.Level, cumulative int) {
	order := game.Shuffled(r.opts.Rand, r.order)
	for _, p := range r.players {
		p.Reset()
	}
	r.round = game.NewRound(level, cumulative, order, r.opts.Now())
	game.AssignAbilities(r.opts.Rand, r.cat, order, r.players)
	game.AssignObjectives(r.opts.Rand, r.cat, order, r.players)
	r.phase = PhasePlaying
	r.active.Store(true)
}

func (r *Room) clearRoundLocked() {
	r.round = nil
	r.phase = PhaseLobby
	r.active.Store(false)
	for _, p := range r.players {
		p.Reset()
	}
}

// Tick advances the clock by one unit: finished transformations are handed
// back, ingredients spawn when due and the round ends when time runs out.
func (r *Room) Tick() TickResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res TickResult
	if r.phase != PhasePlaying || r.round == nil || !r.round.Active {
		return res
	}

	now := r.opts.Now()
	r.round.TimeLeft--

	for _, id := range r.round.TurnOrder {
		p := r.players[id]
		if p.Processing.Ready(now) {
			res.Deliveries = append(res.Deliveries, Delivery{PlayerID: id, Item: game.Ingredient(p.Processing.Output)})
			p.Processing = nil
		}
	}

	if r.round.SpawnDue(now) {
		pool := game.SpawnPool(r.cat, r.objectivesLocked())
		if len(pool) > 0 {
			for _, id := range r.round.TurnOrder {
				res.Deliveries = append(res.Deliveries, Delivery{PlayerID: id, Item: game.Ingredient(game.Pick(r.opts.Rand, pool))})
			}
		}
		r.round.LastSpawn = now
	}

	if r.round.TimeLeft <= 0 {
		res.Ended = true
		res.FinalScore = r.round.Total()
		res.Level = r.round.Level
		res.Players = r.namesLocked()
		r.clearRoundLocked()
		return res
	}

	snap := r.snapshotLocked()
	res.Snapshot = &snap
	return res
}

// Apply runs a player action. A result is returned even on error: rejected
// items that must go back to the player are listed in its Deliveries.
func (r *Room) Apply(playerID string, a Action) (ActionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res ActionResult
	if r.phase != PhasePlaying || r.round == nil || !r.round.Active {
		return res, ErrNoActiveRound
	}
	p, ok := r.players[playerID]
	if !ok || !r.round.Contains(playerID) {
		return res, ErrNotParticipant
	}

	var err error
	switch act := a.(type) {
	case PassItem:
		err = r.passItemLocked(playerID, act, &res)
	case UpdatePlate:
		p.Plate = append([]string{}, act.Contents...)
	case SubmitOrder:
		err = r.submitOrderLocked(p, &res)
	case TrashItem:
	case UseAbility:
		err = r.useAbilityLocked(p, act, &res)
	default:
		return res, fmt.Errorf("unsupported action %T", a)
	}

	if r.phase == PhasePlaying {
		snap := r.snapshotLocked()
		res.Snapshot = &snap
	}
	return res, err
}

func (r *Room) passItemLocked(playerID string, act PassItem, res *ActionResult) error {
	if act.Item.Type == game.ItemPlate {
		return ErrCannotPassPlate
	}
	if len(r.round.TurnOrder) < 2 {
		res.Deliveries = append(res.Deliveries, Delivery{PlayerID: playerID, Item: act.Item})
		return ErrNoNeighbour
	}

	left, right, _ := r.round.Neighbours(playerID)
	target := right
	if act.Direction == Left {
		target = left
	}
	res.Deliveries = append(res.Deliveries, Delivery{PlayerID: target, Item: act.Item})
	return nil
}

func (r *Room) submitOrderLocked(p *game.Player, res *ActionResult) error {
	if p.Objective == "" {
		return ErrNoObjective
	}
	recipe, ok := r.cat.Recipe(p.Objective)
	if !ok {
		return ErrNoObjective
	}
	if !r.cat.Matches(recipe.Name, p.Plate) {
		return ErrWrongRecipe
	}

	r.round.Score += recipe.Points
	r.round.AddTime(recipe.TimeBonus)
	p.Plate = []string{}
	game.AssignObjectives(r.opts.Rand, r.cat, r.round.TurnOrder, r.players)
	res.Success = &NoticePayload{
		Message: fmt.Sprintf("%s served! (+%d points)", recipe.Name, recipe.Points),
		Sound:   SoundSuccess,
	}

	if r.round.LevelCleared() {
		res.LevelUp = r.levelUpLocked()
	}
	return nil
}

// levelUpLocked folds the level score into the total and parks the room in
// the transition phase until AdvanceLevel is called with the returned Seq.
func (r *Room) levelUpLocked() *LevelUp {
	levelScore := r.round.Score
	r.round.CumulativeScore += levelScore
	r.round.Score = 0
	r.round.Active = false
	r.phase = PhaseTransition
	r.active.Store(false)
	r.seq++

	return &LevelUp{
		Level:      r.round.Level,
		LevelScore: levelScore,
		TotalScore: r.round.CumulativeScore,
		Seq:        r.seq,
	}
}

func (r *Room) useAbilityLocked(p *game.Player, act UseAbility, res *ActionResult) error {
	giveBack := Delivery{PlayerID: p.ID, Item: game.Ingredient(act.ItemName)}

	if p.Ability == "" || p.Processing != nil {
		res.Deliveries = append(res.Deliveries, giveBack)
		return ErrAbilityUnavailable
	}
	out, ok := r.cat.Transform(p.Ability, act.ItemName)
	if !ok {
		res.Deliveries = append(res.Deliveries, giveBack)
		return ErrInvalidAbilityInput
	}

	p.Processing = &game.Transformation{
		Input:   act.ItemName,
		Output:  out,
		ReadyAt: r.opts.Now().Add(r.opts.AbilityDelay),
	}
	ability, _ := r.cat.Ability(p.Ability)
	res.Success = &NoticePayload{
		Message: fmt.Sprintf("%s %s...", ability.Verb, act.ItemName),
		Sound:   SoundClick,
	}
	return nil
}

// AdvanceLevel ends the transition started by the level-up identified by
// seq. It is a no-op if that transition is no longer pending.
func (r *Room) AdvanceLevel(seq uint64) AdvanceResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseTransition || r.round == nil || r.seq != seq {
		return AdvanceResult{}
	}

	total := r.round.CumulativeScore
	next, ok := r.cat.Level(r.round.Level + 1)
	if !ok {
		res := AdvanceResult{
			Advanced:   true,
			Won:        true,
			TotalScore: total,
			Level:      r.round.Level,
			Players:    r.namesLocked(),
		}
		r.clearRoundLocked()
		return res
	}

	r.beginLocked(next, total)
	return AdvanceResult{
		Advanced:   true,
		TotalScore: total,
		Level:      next.Number,
		Snapshot:   r.snapshotLocked(),
		Seats:      r.seatsLocked(),
	}
}

// Snapshot returns the round state, or false when no round exists.
func (r *Room) Snapshot() (shared.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.round == nil {
		return shared.Snapshot{}, false
	}
	return r.snapshotLocked(), true
}

func (r *Room) Lobby() shared.LobbyInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lobbyLocked()
}

func (r *Room) IsHost(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return id != "" && r.hostID == id
}

func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Player returns a copy of a player's state.
func (r *Room) Player(id string) (game.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return game.Player{}, false
	}
	cp := *p
	cp.Plate = append([]string(nil), p.Plate...)
	if p.Processing != nil {
		tr := *p.Processing
		cp.Processing = &tr
	}
	return cp, true
}

func (r *Room) lobbyLocked() shared.LobbyInfo {
	info := shared.LobbyInfo{
		Players: make([]shared.LobbyPlayer, 0, len(r.order)),
		HostID:  r.hostID,
		RoomID:  r.Code,
	}
	for _, id := range r.order {
		info.Players = append(info.Players, shared.LobbyPlayer{ID: id, Name: r.players[id].Name})
	}
	return info
}

func (r *Room) namesLocked() []string {
	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		names = append(names, r.players[id].Name)
	}
	return names
}

func (r *Room) objectivesLocked() []string {
	var out []string
	for _, id := range r.round.TurnOrder {
		if o := r.players[id].Objective; o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (r *Room) seatsLocked() []Seat {
	seats := make([]Seat, 0, len(r.round.TurnOrder))
	for _, id := range r.round.TurnOrder {
		left, right, _ := r.round.Neighbours(id)
		seats = append(seats, Seat{
			PlayerID: id,
			Name:     r.players[id].Name,
			Left:     r.players[left].Name,
			Right:    r.players[right].Name,
		})
	}
	return seats
}

func (r *Room) snapshotLocked() shared.Snapshot {
	rd := r.round
	snap := shared.Snapshot{
		IsActive:     rd.Active,
		Level:        rd.Level,
		Score:        rd.Score,
		TotalScore:   rd.CumulativeScore,
		TargetScore:  rd.TargetScore,
		TimeLeft:     rd.TimeLeft,
		PlayerOrder:  append([]string{}, rd.TurnOrder...),
		PlayersState: make(map[string]shared.PlayerState, len(rd.TurnOrder)),
		Objectives:   []shared.ObjectiveView{},
	}

	for _, id := range rd.TurnOrder {
		p := r.players[id]
		ps := shared.PlayerState{Plate: append([]string{}, p.Plate...)}
		if p.Objective != "" {
			ps.Objective = &shared.ObjectiveRef{Name: p.Objective}
		}
		if p.Ability != "" {
			ability := p.Ability
			ps.Ability = &ability
		}
		if p.Processing != nil {
			ps.Processing = &shared.Processing{
				Input:   p.Processing.Input,
				Output:  p.Processing.Output,
				EndTime: float64(p.Processing.ReadyAt.UnixNano()) / float64(time.Second),
			}
		}
		snap.PlayersState[id] = ps

		if recipe, ok := r.cat.Recipe(p.Objective); ok {
			snap.Objectives = append(snap.Objectives, shared.ObjectiveView{
				PlayerName:    p.Name,
				ObjectiveName: recipe.Name,
				Ingredients:   r.hintsFor(recipe),
				Points:        recipe.Points,
			})
		}
	}
	return snap
}

func (r *Room) hintsFor(recipe catalog.Recipe) []shared.IngredientHint {
	hints := make([]shared.IngredientHint, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		h := shared.IngredientHint{Name: ing}
		if ability, ok := r.cat.ProducedBy(ing); ok {
			base := r.cat.BaseOf(ing)
			h.Hint = &ability
			h.Base = &base
		}
		hints = append(hints, h)
	}
	return hints
}
