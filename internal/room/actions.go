package room

import "kitchen-rush/internal/game"

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Action is one of the validated player actions a Room accepts.
type Action interface {
	Type() string
}

type PassItem struct {
	Direction Direction
	Item      game.Item
}

type UpdatePlate struct {
	Contents []string
}

type SubmitOrder struct{}

type TrashItem struct{}

type UseAbility struct {
	ItemName string
}

func (PassItem) Type() string    { return "pass_item" }
func (UpdatePlate) Type() string { return "add_to_plate" }
func (SubmitOrder) Type() string { return "submit_order" }
func (TrashItem) Type() string   { return "trash_item" }
func (UseAbility) Type() string  { return "use_ability" }
