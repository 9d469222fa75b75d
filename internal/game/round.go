package game

import (
	"time"

	"kitchen-rush/internal/catalog"
)

// MaxTimeLeft caps the clock after time bonuses.
const MaxTimeLeft = 999

// Round is one timed attempt at a level.
type Round struct {
	Level           int
	Score           int
	CumulativeScore int
	TargetScore     int
	TimeLeft        int
	TurnOrder       []string
	LastSpawn       time.Time
	SpawnInterval   time.Duration
	Active          bool
}

func NewRound(level catalog.Level, cumulative int, order []string, now time.Time) *Round {
	return &Round{
		Level:           level.Number,
		CumulativeScore: cumulative,
		TargetScore:     level.TargetScore,
		TimeLeft:        level.Time,
		TurnOrder:       append([]string(nil), order...),
		LastSpawn:       now,
		SpawnInterval:   time.Duration(level.SpawnInterval) * time.Second,
		Active:          true,
	}
}

// Total is the cumulative score including the current level.
func (r *Round) Total() int {
	return r.CumulativeScore + r.Score
}

func (r *Round) Index(id string) int {
	for i, pid := range r.TurnOrder {
		if pid == id {
			return i
		}
	}
	return -1
}

func (r *Round) Contains(id string) bool {
	return r.Index(id) >= 0
}

// Remove drops id from the turn order and reports whether it was there.
func (r *Round) Remove(id string) bool {
	i := r.Index(id)
	if i < 0 {
		return false
	}
	r.TurnOrder = append(r.TurnOrder[:i], r.TurnOrder[i+1:]...)
	return true
}

// Neighbours returns the previous and next ids in the circular turn order.
// With a single participant both are the participant itself.
func (r *Round) Neighbours(id string) (left, right string, ok bool) {
	i := r.Index(id)
	if i < 0 {
		return "", "", false
	}
	n := len(r.TurnOrder)
	return r.TurnOrder[(i-1+n)%n], r.TurnOrder[(i+1)%n], true
}

// AddTime applies a time bonus, capped at MaxTimeLeft.
func (r *Round) AddTime(bonus int) {
	r.TimeLeft += bonus
	if r.TimeLeft > MaxTimeLeft {
		r.TimeLeft = MaxTimeLeft
	}
}

// SpawnDue reports whether strictly more than the spawn interval has passed.
func (r *Round) SpawnDue(now time.Time) bool {
	return now.Sub(r.LastSpawn) > r.SpawnInterval
}

// LevelCleared reports whether the level target has been reached.
func (r *Round) LevelCleared() bool {
	return r.Score >= r.TargetScore
}
