package game

import "time"

// Transformation is an ability in progress: Input was consumed and Output is
// handed back once ReadyAt has passed.
type Transformation struct {
	Input   string
	Output  string
	ReadyAt time.Time
}

func (t *Transformation) Ready(now time.Time) bool {
	return t != nil && !now.Before(t.ReadyAt)
}

type Player struct {
	ID         string
	Name       string
	Plate      []string
	Objective  string
	Ability    string
	Processing *Transformation
}

func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Plate: []string{}}
}

// Reset clears everything a round assigns to the player.
func (p *Player) Reset() {
	p.Plate = []string{}
	p.Objective = ""
	p.Ability = ""
	p.Processing = nil
}

// Item is something a player can hold or hand over.
type Item struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

const (
	ItemIngredient = "ingredient"
	ItemPlate      = "plate"
)

func Ingredient(name string) Item {
	return Item{Type: ItemIngredient, Name: name}
}
