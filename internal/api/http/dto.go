package http

import (
	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/database/result/model"
	"kitchen-rush/internal/room"
	"kitchen-rush/internal/shared"
)

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// RoomsResponse lists every open room.
type RoomsResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

// RoomResponse is one room; State is set while a round is being played.
type RoomResponse struct {
	Room  room.Summary     `json:"room"`
	State *shared.Snapshot `json:"state,omitempty"`
}

// CatalogResponse exposes the recipes, abilities and levels in use.
type CatalogResponse struct {
	Recipes   []catalog.Recipe  `json:"recipes"`
	Abilities []catalog.Ability `json:"abilities"`
	Levels    []catalog.Level   `json:"levels"`
}

// SettingsResponse is the part of the server configuration clients care about.
type SettingsResponse struct {
	MaxPlayers          int     `json:"max_players"`
	TickSeconds         float64 `json:"tick_seconds"`
	LevelPauseSeconds   float64 `json:"level_pause_seconds"`
	AbilityDelaySeconds float64 `json:"ability_delay_seconds"`
}

// ResultsResponse lists finished games, newest first.
type ResultsResponse struct {
	Results []model.Result `json:"results"`
}
