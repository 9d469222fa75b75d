package room

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/game"
	"kitchen-rush/internal/shared"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func newTestRoom(t *testing.T, clock *fakeClock, ids ...string) *Room {
	t.Helper()
	r := New("ABCD", testCatalog(t), Options{
		MaxPlayers:   8,
		AbilityDelay: 6 * time.Second,
		Now:          clock.Now,
		Rand:         rand.New(rand.NewSource(42)),
	})
	for _, id := range ids {
		require.NoError(t, r.AddPlayer(id, "name-"+id))
	}
	return r
}

func startedRoom(t *testing.T, clock *fakeClock, ids ...string) *Room {
	t.Helper()
	r := newTestRoom(t, clock, ids...)
	_, err := r.StartRound()
	require.NoError(t, err)
	return r
}

func deliveriesOf(ds []Delivery, item string) []Delivery {
	var out []Delivery
	for _, d := range ds {
		if d.Item.Name == item {
			out = append(out, d)
		}
	}
	return out
}

func TestAddPlayerCapacity(t *testing.T) {
	r := newTestRoom(t, newFakeClock())
	for i := 0; i < 8; i++ {
		require.NoError(t, r.AddPlayer(fmt.Sprintf("p%d", i), "cook"))
	}

	err := r.AddPlayer("p8", "cook")
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Equal(t, 8, r.Len())
	_, ok := r.Player("p8")
	assert.False(t, ok)
}

func TestConcurrentAddPlayerNeverExceedsCapacity(t *testing.T) {
	const joiners = 20
	for iter := 0; iter < 50; iter++ {
		r := newTestRoom(t, newFakeClock())

		var (
			wg    sync.WaitGroup
			ok    atomic.Int32
			full  atomic.Int32
			start = make(chan struct{})
		)
		for i := 0; i < joiners; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				err := r.AddPlayer(fmt.Sprintf("p%d", i), "cook")
				switch {
				case err == nil:
					ok.Add(1)
				case errors.Is(err, ErrRoomFull):
					full.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		close(start)
		wg.Wait()

		require.EqualValues(t, 8, ok.Load(), "iteration %d", iter)
		assert.EqualValues(t, joiners-8, full.Load())
		assert.Equal(t, 8, r.Len())
		assert.Len(t, r.order, 8)
		assert.Contains(t, r.players, r.hostID)
		assert.Equal(t, r.order[0], r.hostID)
	}
}

func TestAddPlayerFirstBecomesHost(t *testing.T) {
	r := newTestRoom(t, newFakeClock(), "a", "b")
	assert.True(t, r.IsHost("a"))
	assert.False(t, r.IsHost("b"))
	assert.False(t, r.IsHost(""))

	lobby := r.Lobby()
	assert.Equal(t, "ABCD", lobby.RoomID)
	assert.Equal(t, "a", lobby.HostID)
	require.Len(t, lobby.Players, 2)
	assert.Equal(t, "name-b", lobby.Players[1].Name)
}

func TestNewWithHost(t *testing.T) {
	r := NewWithHost("WXYZ", "h", "Host", testCatalog(t), Options{})
	assert.True(t, r.IsHost("h"))
	assert.Equal(t, 1, r.Len())
}

func TestAddPlayerRejectedOnceStarted(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	assert.ErrorIs(t, r.AddPlayer("c", "late"), ErrRoundActive)
	assert.Equal(t, 2, r.Len())
}

func TestRemovePlayerReassignsHostInJoinOrder(t *testing.T) {
	r := newTestRoom(t, newFakeClock(), "a", "b", "c")

	res := r.RemovePlayer("a")
	assert.Equal(t, RemoveOK, res.Outcome)
	assert.True(t, res.HostChanged)
	assert.Equal(t, "b", res.HostID)
	assert.Len(t, res.Lobby.Players, 2)

	res = r.RemovePlayer("c")
	assert.False(t, res.HostChanged)
	assert.Equal(t, "b", res.HostID)

	assert.Equal(t, RemoveNotFound, r.RemovePlayer("zzz").Outcome)
}

func TestRemoveLastPlayerClosesRoom(t *testing.T) {
	r := newTestRoom(t, newFakeClock(), "a")

	res := r.RemovePlayer("a")
	assert.Equal(t, RemoveRoomEmpty, res.Outcome)
	assert.ErrorIs(t, r.AddPlayer("b", "late"), ErrRoomClosed)
	_, err := r.StartRound()
	assert.ErrorIs(t, err, ErrRoomClosed)
}

func TestStartRoundRequiresPlayers(t *testing.T) {
	r := newTestRoom(t, newFakeClock())
	_, err := r.StartRound()
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestStartRoundTwoPlayersAreMutualNeighbours(t *testing.T) {
	r := newTestRoom(t, newFakeClock(), "p1", "p2")

	res, err := r.StartRound()
	require.NoError(t, err)
	require.Len(t, res.Seats, 2)
	for _, seat := range res.Seats {
		other := "name-p1"
		if seat.PlayerID == "p1" {
			other = "name-p2"
		}
		assert.Equal(t, other, seat.Left)
		assert.Equal(t, other, seat.Right)
	}

	assert.True(t, r.Active())
	assert.Equal(t, PhasePlaying, r.Phase())
	assert.True(t, res.Snapshot.IsActive)
	assert.Equal(t, 1, res.Snapshot.Level)
	assert.Equal(t, 130, res.Snapshot.TimeLeft)
	assert.Equal(t, 300, res.Snapshot.TargetScore)
	assert.ElementsMatch(t, []string{"p1", "p2"}, res.Snapshot.PlayerOrder)

	_, err = r.StartRound()
	assert.ErrorIs(t, err, ErrRoundActive)
}

func TestStartRoundAssignsAbilitiesAndObjectives(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b", "c", "d", "e")

	abilities := map[string]int{}
	without := 0
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		p, ok := r.Player(id)
		require.True(t, ok)
		assert.NotEmpty(t, p.Objective)
		if p.Ability == "" {
			without++
			continue
		}
		abilities[p.Ability]++
	}
	assert.Len(t, abilities, 3)
	for _, n := range abilities {
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, 2, without)
}

func TestActionsRequireActiveRoundAndParticipant(t *testing.T) {
	r := newTestRoom(t, newFakeClock(), "a", "b")

	_, err := r.Apply("a", SubmitOrder{})
	assert.ErrorIs(t, err, ErrNoActiveRound)

	_, err = r.StartRound()
	require.NoError(t, err)

	_, err = r.Apply("stranger", SubmitOrder{})
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSubmitOrderIgnoresPlateOrder(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "p1", "p2")
	r.players["p1"].Objective = "สลัดผัก"
	r.players["p2"].Objective = ""

	res, err := r.Apply("p1", UpdatePlate{Contents: []string{"🥕", "🍅", "🥬"}})
	require.NoError(t, err)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, []string{"🥕", "🍅", "🥬"}, res.Snapshot.PlayersState["p1"].Plate)

	res, err = r.Apply("p1", SubmitOrder{})
	require.NoError(t, err)
	require.NotNil(t, res.Success)
	assert.Equal(t, SoundSuccess, res.Success.Sound)
	assert.Nil(t, res.LevelUp)

	snap, ok := r.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 50, snap.Score)
	assert.Equal(t, 140, snap.TimeLeft)
	assert.Empty(t, snap.PlayersState["p1"].Plate)

	p1, _ := r.Player("p1")
	p2, _ := r.Player("p2")
	pool := game.ObjectivePool(r.cat, []string{p1.Ability, p2.Ability})
	assert.Contains(t, pool, p1.Objective)
	assert.Contains(t, pool, p2.Objective)
}

func TestSubmitOrderRejectsOtherMultisets(t *testing.T) {
	plates := [][]string{
		{"🥬", "🍅"},
		{"🥬", "🍅", "🥕", "🥕"},
		{"🥬", "🍅", "🍅"},
		{},
	}
	for _, plate := range plates {
		r := startedRoom(t, newFakeClock(), "p1", "p2")
		r.players["p1"].Objective = "สลัดผัก"

		_, err := r.Apply("p1", UpdatePlate{Contents: plate})
		require.NoError(t, err)
		_, err = r.Apply("p1", SubmitOrder{})
		assert.ErrorIs(t, err, ErrWrongRecipe)

		p1, _ := r.Player("p1")
		assert.ElementsMatch(t, plate, p1.Plate)
		assert.Equal(t, "สลัดผัก", p1.Objective)
		snap, _ := r.Snapshot()
		assert.Zero(t, snap.Score)
	}
}

func TestSubmitOrderWithoutObjective(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "p1", "p2")
	r.players["p1"].Objective = ""

	_, err := r.Apply("p1", SubmitOrder{})
	assert.ErrorIs(t, err, ErrNoObjective)
}

func TestSubmitOrderTimeBonusCapped(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "p1", "p2")
	r.players["p1"].Objective = "สลัดผัก"
	r.players["p1"].Plate = []string{"🥬", "🍅", "🥕"}
	r.round.TimeLeft = 995

	_, err := r.Apply("p1", SubmitOrder{})
	require.NoError(t, err)

	snap, _ := r.Snapshot()
	assert.Equal(t, game.MaxTimeLeft, snap.TimeLeft)
}

func TestPassItemToNeighbours(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b", "c")
	order := append([]string(nil), r.round.TurnOrder...)
	item := game.Ingredient("🍅")

	res, err := r.Apply(order[0], PassItem{Direction: Left, Item: item})
	require.NoError(t, err)
	require.Len(t, res.Deliveries, 1)
	assert.Equal(t, Delivery{PlayerID: order[2], Item: item}, res.Deliveries[0])

	res, err = r.Apply(order[0], PassItem{Direction: Right, Item: item})
	require.NoError(t, err)
	require.Len(t, res.Deliveries, 1)
	assert.Equal(t, order[1], res.Deliveries[0].PlayerID)
}

func TestPassItemRejectsPlate(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")

	res, err := r.Apply("a", PassItem{Direction: Left, Item: game.Item{Type: game.ItemPlate, Name: "🍽️"}})
	assert.ErrorIs(t, err, ErrCannotPassPlate)
	assert.Equal(t, "cannot pass a plate", err.Error())
	assert.Empty(t, res.Deliveries)
}

func TestPassItemAloneReturnsItem(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "solo")
	item := game.Ingredient("🍅")

	res, err := r.Apply("solo", PassItem{Direction: Right, Item: item})
	assert.ErrorIs(t, err, ErrNoNeighbour)
	assert.Equal(t, []Delivery{{PlayerID: "solo", Item: item}}, res.Deliveries)
}

func TestTrashItemOnlyRefreshesSnapshot(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	before, _ := r.Snapshot()

	res, err := r.Apply("a", TrashItem{})
	require.NoError(t, err)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, before, *res.Snapshot)
}

func TestUseAbility(t *testing.T) {
	clock := newFakeClock()
	r := startedRoom(t, clock, "a", "b")
	r.players["a"].Ability = "กระทะ"

	res, err := r.Apply("a", UseAbility{ItemName: "🥚"})
	require.NoError(t, err)
	require.NotNil(t, res.Success)
	assert.Empty(t, res.Deliveries)

	p, _ := r.Player("a")
	require.NotNil(t, p.Processing)
	assert.Equal(t, "🥚", p.Processing.Input)
	assert.Equal(t, "🍳", p.Processing.Output)
	assert.Equal(t, clock.Now().Add(6*time.Second), p.Processing.ReadyAt)

	ps := res.Snapshot.PlayersState["a"]
	require.NotNil(t, ps.Processing)
	assert.InDelta(t, float64(clock.Now().Add(6*time.Second).Unix()), ps.Processing.EndTime, 0.001)

	res, err = r.Apply("a", UseAbility{ItemName: "🥩"})
	assert.ErrorIs(t, err, ErrAbilityUnavailable)
	assert.Equal(t, []Delivery{{PlayerID: "a", Item: game.Ingredient("🥩")}}, res.Deliveries)
}

func TestUseAbilityRejections(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	r.players["a"].Ability = "หม้อ"
	r.players["b"].Ability = ""

	res, err := r.Apply("a", UseAbility{ItemName: "🥚"})
	assert.ErrorIs(t, err, ErrInvalidAbilityInput)
	assert.Equal(t, []Delivery{{PlayerID: "a", Item: game.Ingredient("🥚")}}, res.Deliveries)

	res, err = r.Apply("b", UseAbility{ItemName: "🦐"})
	assert.ErrorIs(t, err, ErrAbilityUnavailable)
	assert.Equal(t, []Delivery{{PlayerID: "b", Item: game.Ingredient("🦐")}}, res.Deliveries)

	p, _ := r.Player("a")
	assert.Nil(t, p.Processing)
}

func TestTransformationDeliveredNoEarlierThanDelay(t *testing.T) {
	clock := newFakeClock()
	r := startedRoom(t, clock, "a", "b")
	r.players["a"].Ability = "เขียง"

	_, err := r.Apply("a", UseAbility{ItemName: "🐟"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		res := r.Tick()
		assert.Empty(t, deliveriesOf(res.Deliveries, "🍣"), "tick %d", i+1)
	}

	clock.Advance(time.Second)
	res := r.Tick()
	got := deliveriesOf(res.Deliveries, "🍣")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].PlayerID)
	assert.Equal(t, game.ItemIngredient, got[0].Item.Type)

	p, _ := r.Player("a")
	assert.Nil(t, p.Processing)
}

func TestTickSpawnsOnePerParticipantAfterInterval(t *testing.T) {
	clock := newFakeClock()
	r := startedRoom(t, clock, "a", "b", "c")

	clock.Advance(3 * time.Second)
	res := r.Tick()
	assert.Empty(t, res.Deliveries)

	clock.Advance(time.Second)
	res = r.Tick()
	require.Len(t, res.Deliveries, 3)

	pool := game.SpawnPool(r.cat, r.objectivesLocked())
	got := map[string]bool{}
	for _, d := range res.Deliveries {
		got[d.PlayerID] = true
		assert.Contains(t, pool, d.Item.Name)
	}
	assert.Len(t, got, 3)

	clock.Advance(time.Second)
	res = r.Tick()
	assert.Empty(t, res.Deliveries)
}

func TestTickDecrementsAndBroadcastsSnapshot(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")

	res := r.Tick()
	assert.False(t, res.Ended)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, 129, res.Snapshot.TimeLeft)
}

func TestTickTimeOutEndsRound(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	r.round.TimeLeft = 2
	r.round.Score = 40
	r.round.CumulativeScore = 100

	res := r.Tick()
	assert.False(t, res.Ended)

	res = r.Tick()
	assert.True(t, res.Ended)
	assert.Equal(t, 140, res.FinalScore)
	assert.Equal(t, 1, res.Level)
	assert.ElementsMatch(t, []string{"name-a", "name-b"}, res.Players)
	assert.Nil(t, res.Snapshot)

	_, ok := r.Snapshot()
	assert.False(t, ok)
	assert.False(t, r.Active())
	assert.Equal(t, PhaseLobby, r.Phase())
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, TickResult{}, r.Tick())
}

func TestLevelUpAndAdvance(t *testing.T) {
	clock := newFakeClock()
	r := startedRoom(t, clock, "a", "b")
	r.round.Score = 290
	r.players["a"].Objective = "สลัดผัก"
	r.players["a"].Plate = []string{"🥬", "🍅", "🥕"}

	res, err := r.Apply("a", SubmitOrder{})
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelUp.Level)
	assert.Equal(t, 340, res.LevelUp.LevelScore)
	assert.Equal(t, 340, res.LevelUp.TotalScore)
	assert.Nil(t, res.Snapshot)

	assert.False(t, r.Active())
	assert.Equal(t, PhaseTransition, r.Phase())
	assert.ErrorIs(t, r.AddPlayer("c", "late"), ErrRoundActive)

	_, err = r.Apply("a", TrashItem{})
	assert.ErrorIs(t, err, ErrNoActiveRound)
	assert.Equal(t, TickResult{}, r.Tick())

	assert.False(t, r.AdvanceLevel(res.LevelUp.Seq+1).Advanced)

	clock.Advance(5 * time.Second)
	adv := r.AdvanceLevel(res.LevelUp.Seq)
	require.True(t, adv.Advanced)
	assert.False(t, adv.Won)
	assert.Equal(t, 2, adv.Level)
	assert.Equal(t, 2, adv.Snapshot.Level)
	assert.Equal(t, 0, adv.Snapshot.Score)
	assert.Equal(t, 340, adv.Snapshot.TotalScore)
	assert.Equal(t, 120, adv.Snapshot.TimeLeft)
	assert.Equal(t, 475, adv.Snapshot.TargetScore)
	assert.Len(t, adv.Seats, 2)
	assert.True(t, r.Active())
	assert.Equal(t, clock.Now(), r.round.LastSpawn)

	assert.False(t, r.AdvanceLevel(res.LevelUp.Seq).Advanced)
}

func TestAdvancePastLastLevelWinsGame(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	last, _ := r.cat.Level(3)
	r.round = game.NewRound(last, 900, r.round.TurnOrder, time.Now())
	r.round.Score = 740
	r.players["a"].Objective = "สลัดผัก"
	r.players["a"].Plate = []string{"🥬", "🍅", "🥕"}

	res, err := r.Apply("a", SubmitOrder{})
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, 3, res.LevelUp.Level)
	assert.Equal(t, 1690, res.LevelUp.TotalScore)

	adv := r.AdvanceLevel(res.LevelUp.Seq)
	assert.True(t, adv.Advanced)
	assert.True(t, adv.Won)
	assert.Equal(t, 1690, adv.TotalScore)
	assert.Equal(t, 3, adv.Level)

	_, ok := r.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, PhaseLobby, r.Phase())
}

func TestRemoveDuringRoundKeepsTurnOrderSubset(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b", "c")

	res := r.RemovePlayer("b")
	assert.Equal(t, RemoveOK, res.Outcome)
	require.NotNil(t, res.Snapshot)
	assert.ElementsMatch(t, []string{"a", "c"}, res.Snapshot.PlayerOrder)
	assert.NotContains(t, res.Snapshot.PlayersState, "b")
	require.Len(t, res.Seats, 2)
	for _, seat := range res.Seats {
		assert.NotEqual(t, "name-b", seat.Left)
		assert.NotEqual(t, "name-b", seat.Right)
	}

	for _, id := range r.round.TurnOrder {
		_, ok := r.players[id]
		assert.True(t, ok)
	}
	assert.True(t, r.Active())
}

// assertTurnOrderSubset checks under the room lock that every seat in the
// turn order belongs to a current player.
func assertTurnOrderSubset(t *testing.T, r *Room) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Len(t, r.order, len(r.players))
	if r.round == nil {
		return
	}
	for _, id := range r.round.TurnOrder {
		assert.Contains(t, r.players, id)
	}
}

func TestTickApplyRemoveInterleaved(t *testing.T) {
	clock := newFakeClock()
	ids := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	r := startedRoom(t, clock, ids...)
	r.round.TimeLeft = 10_000

	actions := []Action{
		PassItem{Direction: Left, Item: game.Ingredient("🍅")},
		PassItem{Direction: Right, Item: game.Ingredient("🥬")},
		UpdatePlate{Contents: []string{"🍅", "🥬"}},
		TrashItem{},
		SubmitOrder{},
		UseAbility{ItemName: "🥚"},
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	checked := make(chan struct{})
	go func() {
		defer close(checked)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if snap, ok := r.Snapshot(); ok {
				assert.Len(t, snap.PlayersState, len(snap.PlayerOrder))
			}
			assertTurnOrderSubset(t, r)
		}
	}()

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			for n := 0; n < 60; n++ {
				_, _ = r.Apply(id, actions[(i+n)%len(actions)])
				if i%2 == 0 {
					clock.Advance(100 * time.Millisecond)
					r.Tick()
				}
				if i < 4 && n == 30 {
					r.RemovePlayer(id)
				}
			}
		}(i, id)
	}
	wg.Wait()
	close(stop)
	<-checked

	assert.Equal(t, 4, r.Len())
	assertTurnOrderSubset(t, r)
	for _, id := range ids[:4] {
		_, ok := r.Player(id)
		assert.False(t, ok, id)
	}
	assert.True(t, r.IsHost("p4"))
}

func TestRemoveLeavingOneParticipantEndsRound(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "p1", "p2")
	r.round.Score = 70

	res := r.RemovePlayer("p2")
	assert.Equal(t, RemoveRoundEnded, res.Outcome)
	assert.Equal(t, 70, res.FinalScore)
	assert.Nil(t, res.Snapshot)
	assert.Equal(t, 1, r.Len())
	assert.False(t, r.Active())

	_, ok := r.Snapshot()
	assert.False(t, ok)
	require.NoError(t, r.AddPlayer("p3", "new"))
}

func TestRemoveDuringTransitionCancelsAdvance(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	r.round.Score = 300
	r.players["a"].Objective = "สลัดผัก"
	r.players["a"].Plate = []string{"🥬", "🍅", "🥕"}

	res, err := r.Apply("a", SubmitOrder{})
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)

	rm := r.RemovePlayer("b")
	assert.Equal(t, RemoveRoundEnded, rm.Outcome)
	assert.Equal(t, 350, rm.FinalScore)

	assert.False(t, r.AdvanceLevel(res.LevelUp.Seq).Advanced)
}

func TestSnapshotObjectiveHints(t *testing.T) {
	r := startedRoom(t, newFakeClock(), "a", "b")
	r.players["a"].Objective = "ซูชิ"

	snap, ok := r.Snapshot()
	require.True(t, ok)

	var view *shared.ObjectiveView
	for i := range snap.Objectives {
		if snap.Objectives[i].PlayerName == "name-a" {
			view = &snap.Objectives[i]
		}
	}
	require.NotNil(t, view)
	assert.Equal(t, "ซูชิ", view.ObjectiveName)
	assert.Equal(t, 130, view.Points)

	require.Len(t, view.Ingredients, 2)
	sushi, lettuce := view.Ingredients[0], view.Ingredients[1]
	assert.Equal(t, "🍣", sushi.Name)
	require.NotNil(t, sushi.Hint)
	assert.Equal(t, "เขียง", *sushi.Hint)
	require.NotNil(t, sushi.Base)
	assert.Equal(t, "🐟", *sushi.Base)
	assert.Equal(t, "🥬", lettuce.Name)
	assert.Nil(t, lettuce.Hint)
	assert.Nil(t, lettuce.Base)

	require.NotNil(t, snap.PlayersState["a"].Objective)
	assert.Equal(t, "ซูชิ", snap.PlayersState["a"].Objective.Name)
}
