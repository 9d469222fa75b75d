package shared

import "kitchen-rush/internal/game"

// Snapshot is the full round state sent to every participant.
type Snapshot struct {
	IsActive     bool                   `json:"is_active"`
	Level        int                    `json:"level"`
	Score        int                    `json:"score"`
	TotalScore   int                    `json:"total_score"`
	TargetScore  int                    `json:"target_score"`
	TimeLeft     int                    `json:"time_left"`
	PlayerOrder  []string               `json:"player_order_sids"`
	PlayersState map[string]PlayerState `json:"players_state"`
	Objectives   []ObjectiveView        `json:"all_player_objectives"`
}

type PlayerState struct {
	Plate      []string      `json:"plate"`
	Objective  *ObjectiveRef `json:"objective"`
	Ability    *string       `json:"ability"`
	Processing *Processing   `json:"ability_processing"`
}

type ObjectiveRef struct {
	Name string `json:"name"`
}

// Processing mirrors an ability in progress; EndTime is unix seconds.
type Processing struct {
	Input   string  `json:"input"`
	Output  string  `json:"output"`
	EndTime float64 `json:"end_time"`
}

type ObjectiveView struct {
	PlayerName    string           `json:"player_name"`
	ObjectiveName string           `json:"objective_name"`
	Ingredients   []IngredientHint `json:"ingredients"`
	Points        int              `json:"points"`
}

// IngredientHint names the ability and raw form behind a transformed
// ingredient. Both are nil for raw ingredients.
type IngredientHint struct {
	Name string  `json:"name"`
	Hint *string `json:"hint"`
	Base *string `json:"base"`
}

type LobbyInfo struct {
	Players []LobbyPlayer `json:"players"`
	HostID  string        `json:"host_sid"`
	RoomID  string        `json:"room_id"`
}

type LobbyPlayer struct {
	ID   string `json:"sid"`
	Name string `json:"name"`
}

// Item is re-exported for transport code that never touches the game package.
type Item = game.Item

const (
	ItemIngredient = game.ItemIngredient
	ItemPlate      = game.ItemPlate
)
