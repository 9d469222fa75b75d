package room

import (
	"kitchen-rush/internal/game"
	"kitchen-rush/internal/shared"
)

const (
	EventSession         = "session"
	EventRoomCreated     = "room_created"
	EventJoinSuccess     = "join_success"
	EventUpdateLobby     = "update_lobby"
	EventNewHost         = "new_host"
	EventErrorMessage    = "error_message"
	EventGameStarted     = "game_started"
	EventUpdateGameState = "update_game_state"
	EventUpdateNeighbors = "update_neighbors"
	EventReceiveItem     = "receive_item"
	EventActionSuccess   = "action_success"
	EventActionFail      = "action_fail"
	EventLevelComplete   = "level_complete"
	EventClearAllItems   = "clear_all_items"
	EventStartNextLevel  = "start_next_level"
	EventGameWon         = "game_won"
	EventGameOver        = "game_over"
)

const (
	SoundSuccess = "success"
	SoundError   = "error"
	SoundClick   = "click"
)

const (
	MessageTimeUp    = "Time's up!"
	MessageNoPlayers = "Not enough players to continue, game over"
)

type SessionPayload struct {
	PlayerID string `json:"player_id"`
}

type RoomJoinedPayload struct {
	RoomID string `json:"room_id"`
	IsHost bool   `json:"is_host"`
}

type MessagePayload struct {
	Message string `json:"message"`
}

type NoticePayload struct {
	Message string `json:"message"`
	Sound   string `json:"sound"`
}

type NewHostPayload struct {
	HostID string `json:"host_sid"`
}

type GameStartedPayload struct {
	InitialState  shared.Snapshot `json:"initial_state"`
	YourID        string          `json:"your_sid"`
	YourName      string          `json:"your_name"`
	LeftNeighbor  string          `json:"left_neighbor"`
	RightNeighbor string          `json:"right_neighbor"`
}

type NeighborsPayload struct {
	LeftNeighbor  string `json:"left_neighbor"`
	RightNeighbor string `json:"right_neighbor"`
}

type ReceiveItemPayload struct {
	Item game.Item `json:"item"`
}

type LevelCompletePayload struct {
	Level      int `json:"level"`
	LevelScore int `json:"level_score"`
	TotalScore int `json:"total_score"`
}

type GameWonPayload struct {
	TotalScore int `json:"total_score"`
}

type GameOverPayload struct {
	TotalScore int    `json:"total_score"`
	Message    string `json:"message"`
}
