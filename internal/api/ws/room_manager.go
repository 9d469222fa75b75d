package ws

import (
	"context"

	"kitchen-rush/internal/room"
)

type RoomManager interface {
	CreateRoom(ctx context.Context, playerID, name string) (*room.Room, error)
	JoinRoom(ctx context.Context, playerID, name, code string) error
	StartGame(ctx context.Context, playerID, code string) error
	HandleAction(ctx context.Context, playerID, code string, a room.Action) error
	Disconnect(ctx context.Context, playerID string)
}
