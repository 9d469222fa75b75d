package game

import (
	"sort"

	"kitchen-rush/internal/catalog"
)

// AssignAbilities hands out a shuffled copy of the catalog's abilities in
// turn order. Players past the number of abilities get none.
func AssignAbilities(rng Rand, c *catalog.Catalog, order []string, players map[string]*Player) {
	pool := Shuffled(rng, c.AbilityNames())
	for i, id := range order {
		p, ok := players[id]
		if !ok {
			continue
		}
		p.Processing = nil
		if i < len(pool) {
			p.Ability = pool[i]
		} else {
			p.Ability = ""
		}
	}
}

// ObjectivePool is every plain recipe plus the recipes reachable through the
// given abilities, de-duplicated and sorted. It falls back to the full
// recipe list when nothing qualifies.
func ObjectivePool(c *catalog.Catalog, abilities []string) []string {
	set := map[string]struct{}{}
	for _, name := range c.PlainRecipes() {
		set[name] = struct{}{}
	}
	for _, a := range abilities {
		if a == "" {
			continue
		}
		for _, name := range c.RecipesForAbility(a) {
			set[name] = struct{}{}
		}
	}
	if len(set) == 0 {
		return c.RecipeNames()
	}
	pool := make([]string, 0, len(set))
	for name := range set {
		pool = append(pool, name)
	}
	sort.Strings(pool)
	return pool
}

// AssignObjectives draws a fresh objective for every listed player.
func AssignObjectives(rng Rand, c *catalog.Catalog, order []string, players map[string]*Player) {
	held := make([]string, 0, len(order))
	for _, id := range order {
		if p, ok := players[id]; ok && p.Ability != "" {
			held = append(held, p.Ability)
		}
	}
	pool := ObjectivePool(c, held)
	for _, id := range order {
		if p, ok := players[id]; ok {
			p.Objective = Pick(rng, pool)
		}
	}
}

// SpawnPool is the set of raw ingredients the current objectives need. With
// no objectives it is every ingredient that is not an ability output.
func SpawnPool(c *catalog.Catalog, objectives []string) []string {
	set := map[string]struct{}{}
	for _, name := range objectives {
		r, ok := c.Recipe(name)
		if !ok {
			continue
		}
		for _, ing := range r.Ingredients {
			set[c.BaseOf(ing)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return c.Spawnable()
	}
	pool := make([]string, 0, len(set))
	for ing := range set {
		pool = append(pool, ing)
	}
	sort.Strings(pool)
	return pool
}
