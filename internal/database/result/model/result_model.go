package model

import (
	"time"

	"github.com/google/uuid"
)

type Reason string

const (
	ReasonTimeUp    Reason = "time_up"
	ReasonNoPlayers Reason = "not_enough_players"
	ReasonWon       Reason = "won"
)

func NewResult(roomCode string, reason Reason) Result {
	return Result{ID: uuid.New(), RoomCode: roomCode, Reason: reason, FinishedAt: time.Now()}
}

// Result is one finished game.
type Result struct {
	ID         uuid.UUID `json:"id"`
	RoomCode   string    `json:"room_code"`
	Reason     Reason    `json:"reason"`
	Level      int       `json:"level"`
	TotalScore int       `json:"total_score"`
	Players    []string  `json:"players"`
	FinishedAt time.Time `json:"finished_at"`
}
