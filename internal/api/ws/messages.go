package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kitchen-rush/internal/room"
	"kitchen-rush/internal/shared"
)

// Inbound actions.
const (
	ActionCreateRoom   = "create_room"
	ActionJoinRoom     = "join_room"
	ActionStartGame    = "start_game"
	ActionPlayerAction = "player_action"
	ActionUseAbility   = "use_ability"
)

const DefaultName = "Anonymous Cook"

var (
	ErrMalformed     = errors.New("malformed message")
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingRoomID = errors.New("room_id is required")
	ErrBadDirection  = errors.New("direction must be left or right")
	ErrMissingItem   = errors.New("item is required")
)

// envelope is the {"action","data"} frame used in both directions.
type envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

func encode(action string, data interface{}) ([]byte, error) {
	return json.Marshal(outbound{Action: action, Data: data})
}

// Message is a decoded, validated inbound request.
type Message interface {
	Kind() string
}

type CreateRoom struct {
	Name string
}

type JoinRoom struct {
	Name   string
	RoomID string
}

type StartGame struct {
	RoomID string
}

// GameAction is anything a participant does inside a running round.
type GameAction struct {
	RoomID string
	Action room.Action
}

func (CreateRoom) Kind() string { return ActionCreateRoom }
func (JoinRoom) Kind() string   { return ActionJoinRoom }
func (StartGame) Kind() string  { return ActionStartGame }
func (g GameAction) Kind() string {
	if _, ok := g.Action.(room.UseAbility); ok {
		return ActionUseAbility
	}
	return ActionPlayerAction
}

type lobbyData struct {
	Name   string `json:"name"`
	RoomID string `json:"room_id"`
}

type playerActionData struct {
	RoomID           string       `json:"room_id"`
	Type             string       `json:"type"`
	Direction        string       `json:"direction"`
	Item             *shared.Item `json:"item"`
	NewPlateContents []string     `json:"new_plate_contents"`
}

type useAbilityData struct {
	RoomID   string `json:"room_id"`
	ItemName string `json:"item_name"`
}

// Decode parses one inbound frame.
func Decode(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Action {
	case ActionCreateRoom:
		var d lobbyData
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		return CreateRoom{Name: cleanName(d.Name)}, nil

	case ActionJoinRoom:
		var d lobbyData
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		code := NormalizeCode(d.RoomID)
		if code == "" {
			return nil, ErrMissingRoomID
		}
		return JoinRoom{Name: cleanName(d.Name), RoomID: code}, nil

	case ActionStartGame:
		var d lobbyData
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		code := NormalizeCode(d.RoomID)
		if code == "" {
			return nil, ErrMissingRoomID
		}
		return StartGame{RoomID: code}, nil

	case ActionPlayerAction:
		return decodePlayerAction(env.Data)

	case ActionUseAbility:
		var d useAbilityData
		if err := unmarshalData(env.Data, &d); err != nil {
			return nil, err
		}
		code := NormalizeCode(d.RoomID)
		if code == "" {
			return nil, ErrMissingRoomID
		}
		if d.ItemName == "" {
			return nil, ErrMissingItem
		}
		return GameAction{RoomID: code, Action: room.UseAbility{ItemName: d.ItemName}}, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownAction, env.Action)
}

func decodePlayerAction(data json.RawMessage) (Message, error) {
	var d playerActionData
	if err := unmarshalData(data, &d); err != nil {
		return nil, err
	}
	code := NormalizeCode(d.RoomID)
	if code == "" {
		return nil, ErrMissingRoomID
	}

	var a room.Action
	switch d.Type {
	case "pass_item":
		dir := room.Direction(d.Direction)
		if dir != room.Left && dir != room.Right {
			return nil, ErrBadDirection
		}
		if d.Item == nil || d.Item.Name == "" {
			return nil, ErrMissingItem
		}
		item := *d.Item
		if item.Type == "" {
			item.Type = shared.ItemIngredient
		}
		a = room.PassItem{Direction: dir, Item: item}
	case "add_to_plate":
		contents := d.NewPlateContents
		if contents == nil {
			contents = []string{}
		}
		a = room.UpdatePlate{Contents: contents}
	case "submit_order":
		a = room.SubmitOrder{}
	case "trash_item":
		a = room.TrashItem{}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, d.Type)
	}
	return GameAction{RoomID: code, Action: a}, nil
}

func unmarshalData(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// NormalizeCode upper-cases and trims a user-typed room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}
