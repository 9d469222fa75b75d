package room

// Broadcaster delivers {"action","data"} envelopes to connected players.
// Delivery is best effort.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
	Send(playerID string, action string, data interface{})
	Join(roomCode, playerID string)
	Leave(roomCode, playerID string)
}
