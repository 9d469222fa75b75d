package room

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrRoundActive   = errors.New("game in this room has already started")
	ErrRoomClosed    = errors.New("room is closed")
	ErrAlreadyInRoom = errors.New("already in a room")
	ErrNoPlayers     = errors.New("room has no players")
	ErrNotHost       = errors.New("only the host can start the game")

	ErrNoActiveRound  = errors.New("no active round")
	ErrNotParticipant = errors.New("not a participant of this round")

	ErrCannotPassPlate     = errors.New("cannot pass a plate")
	ErrNoNeighbour         = errors.New("no one to pass to")
	ErrNoObjective         = errors.New("no objective assigned")
	ErrWrongRecipe         = errors.New("wrong recipe")
	ErrAbilityUnavailable  = errors.New("ability cannot be used right now")
	ErrInvalidAbilityInput = errors.New("this item cannot be used with your ability")
)
