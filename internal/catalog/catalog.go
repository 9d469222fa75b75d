package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultTables []byte

var (
	ErrNoRecipes    = errors.New("catalog has no recipes")
	ErrNoLevels     = errors.New("catalog has no levels")
	ErrLevelGap     = errors.New("levels must be numbered 1..n without gaps")
	ErrEmptyRecipe  = errors.New("recipe has no ingredients")
	ErrDuplicateKey = errors.New("duplicate catalog entry")
)

type Recipe struct {
	Name        string   `yaml:"name" json:"name"`
	Ingredients []string `yaml:"ingredients" json:"ingredients"`
	Points      int      `yaml:"points" json:"points"`
	TimeBonus   int      `yaml:"time_bonus" json:"time_bonus"`
}

type Ability struct {
	Name            string            `yaml:"name" json:"name"`
	Verb            string            `yaml:"verb" json:"verb"`
	Transformations map[string]string `yaml:"transformations" json:"transformations"`
}

type Level struct {
	Number        int `yaml:"level" json:"level"`
	TargetScore   int `yaml:"target_score" json:"target_score"`
	Time          int `yaml:"time" json:"time"`
	SpawnInterval int `yaml:"spawn_interval" json:"spawn_interval"`
}

type tables struct {
	Recipes   []Recipe  `yaml:"recipes"`
	Abilities []Ability `yaml:"abilities"`
	Levels    []Level   `yaml:"levels"`
}

// Catalog is the read-only lookup of recipes, abilities and levels together
// with the indices derived from them. It is safe for concurrent use.
type Catalog struct {
	recipes      map[string]Recipe
	recipeNames  []string
	abilities    map[string]Ability
	abilityNames []string
	levels       map[int]Level

	outputToBase    map[string]string
	outputToAbility map[string]string
	plainRecipes    []string
	abilityRecipes  map[string][]string
	spawnable       []string
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultTables)
}

// Load reads a catalog file, falling back to the embedded tables when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(t)
}

func build(t tables) (*Catalog, error) {
	if len(t.Recipes) == 0 {
		return nil, ErrNoRecipes
	}
	if len(t.Levels) == 0 {
		return nil, ErrNoLevels
	}

	c := &Catalog{
		recipes:         make(map[string]Recipe, len(t.Recipes)),
		abilities:       make(map[string]Ability, len(t.Abilities)),
		levels:          make(map[int]Level, len(t.Levels)),
		outputToBase:    map[string]string{},
		outputToAbility: map[string]string{},
		abilityRecipes:  map[string][]string{},
	}

	for _, r := range t.Recipes {
		if len(r.Ingredients) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRecipe, r.Name)
		}
		if _, ok := c.recipes[r.Name]; ok {
			return nil, fmt.Errorf("%w: recipe %s", ErrDuplicateKey, r.Name)
		}
		r.Ingredients = append([]string(nil), r.Ingredients...)
		c.recipes[r.Name] = r
		c.recipeNames = append(c.recipeNames, r.Name)
	}
	sort.Strings(c.recipeNames)

	for _, a := range t.Abilities {
		if _, ok := c.abilities[a.Name]; ok {
			return nil, fmt.Errorf("%w: ability %s", ErrDuplicateKey, a.Name)
		}
		c.abilities[a.Name] = a
		c.abilityNames = append(c.abilityNames, a.Name)
		for in, out := range a.Transformations {
			c.outputToBase[out] = in
			c.outputToAbility[out] = a.Name
		}
	}
	sort.Strings(c.abilityNames)

	for _, l := range t.Levels {
		if _, ok := c.levels[l.Number]; ok {
			return nil, fmt.Errorf("%w: level %d", ErrDuplicateKey, l.Number)
		}
		c.levels[l.Number] = l
	}
	for n := 1; n <= len(t.Levels); n++ {
		if _, ok := c.levels[n]; !ok {
			return nil, ErrLevelGap
		}
	}

	all := map[string]struct{}{}
	for _, name := range c.recipeNames {
		plain := true
		for _, ing := range c.recipes[name].Ingredients {
			all[ing] = struct{}{}
			if _, ok := c.outputToBase[ing]; ok {
				plain = false
			}
		}
		if plain {
			c.plainRecipes = append(c.plainRecipes, name)
		}
	}

	for _, ability := range c.abilityNames {
		outputs := c.abilities[ability].Transformations
		for _, name := range c.recipeNames {
			for _, ing := range c.recipes[name].Ingredients {
				if producedBy(outputs, ing) {
					c.abilityRecipes[ability] = append(c.abilityRecipes[ability], name)
					break
				}
			}
		}
	}

	for ing := range all {
		if _, ok := c.outputToBase[ing]; !ok {
			c.spawnable = append(c.spawnable, ing)
		}
	}
	sort.Strings(c.spawnable)

	return c, nil
}

func producedBy(transformations map[string]string, ing string) bool {
	for _, out := range transformations {
		if out == ing {
			return true
		}
	}
	return false
}

func (c *Catalog) Recipe(name string) (Recipe, bool) {
	r, ok := c.recipes[name]
	return r, ok
}

// RecipeNames returns every recipe name in sorted order.
func (c *Catalog) RecipeNames() []string {
	return append([]string(nil), c.recipeNames...)
}

func (c *Catalog) Ability(name string) (Ability, bool) {
	a, ok := c.abilities[name]
	return a, ok
}

// AbilityNames returns every ability name in sorted order.
func (c *Catalog) AbilityNames() []string {
	return append([]string(nil), c.abilityNames...)
}

func (c *Catalog) Level(n int) (Level, bool) {
	l, ok := c.levels[n]
	return l, ok
}

// Levels returns the level table ordered by number.
func (c *Catalog) Levels() []Level {
	out := make([]Level, 0, len(c.levels))
	for n := 1; n <= len(c.levels); n++ {
		out = append(out, c.levels[n])
	}
	return out
}

// Recipes returns the recipe table ordered by name.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, 0, len(c.recipeNames))
	for _, name := range c.recipeNames {
		out = append(out, c.recipes[name])
	}
	return out
}

// Abilities returns the ability table ordered by name.
func (c *Catalog) Abilities() []Ability {
	out := make([]Ability, 0, len(c.abilityNames))
	for _, name := range c.abilityNames {
		out = append(out, c.abilities[name])
	}
	return out
}

// BaseOf maps an ability output back to its raw ingredient. Raw ingredients map to themselves.
func (c *Catalog) BaseOf(ing string) string {
	if base, ok := c.outputToBase[ing]; ok {
		return base
	}
	return ing
}

// ProducedBy reports which ability turns some raw ingredient into ing.
func (c *Catalog) ProducedBy(ing string) (string, bool) {
	a, ok := c.outputToAbility[ing]
	return a, ok
}

// PlainRecipes lists recipes that need no ability at all.
func (c *Catalog) PlainRecipes() []string {
	return append([]string(nil), c.plainRecipes...)
}

// RecipesForAbility lists recipes using at least one output of the ability.
func (c *Catalog) RecipesForAbility(ability string) []string {
	return append([]string(nil), c.abilityRecipes[ability]...)
}

// Spawnable lists every recipe ingredient that is not an ability output.
func (c *Catalog) Spawnable() []string {
	return append([]string(nil), c.spawnable...)
}

// Transform returns the output of ability for input.
func (c *Catalog) Transform(ability, input string) (string, bool) {
	a, ok := c.abilities[ability]
	if !ok {
		return "", false
	}
	out, ok := a.Transformations[input]
	return out, ok
}

// Matches compares a plate against the recipe's ingredient multiset, ignoring order.
func (c *Catalog) Matches(recipe string, plate []string) bool {
	r, ok := c.recipes[recipe]
	if !ok || len(plate) != len(r.Ingredients) {
		return false
	}
	counts := make(map[string]int, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		counts[ing]++
	}
	for _, ing := range plate {
		counts[ing]--
		if counts[ing] < 0 {
			return false
		}
	}
	return true
}
