package content

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is the engine's read-only view of static game content.
type Catalog interface {
	Card(id string) (CardDef, bool)
	Enemy(id string) (EnemyDef, bool)
	Unit(id string) (UnitDef, bool)
	Skill(id string) (SkillDef, bool)
	Tactic(id string) (TacticDef, bool)
	// EnemyIDsByPile returns the definition IDs in a token pile, in a
	// stable order so RNG draws are reproducible.
	EnemyIDsByPile(pile string) []string
	// TacticIDs returns all tactic IDs for a time of day, ordered by number.
	TacticIDs(timeOfDay string) []string
	// SkillIDs returns every skill ID in sorted order, for deterministic
	// level-up offers.
	SkillIDs() []string
	// UnitIDs returns every unit ID in sorted order, for deterministic
	// offer draws.
	UnitIDs() []string
}

// SetFile is the YAML document shape for a content set.
type SetFile struct {
	Name    string      `yaml:"name"`
	Cards   []CardDef   `yaml:"cards,omitempty"`
	Enemies []EnemyDef  `yaml:"enemies,omitempty"`
	Units   []UnitDef   `yaml:"units,omitempty"`
	Skills  []SkillDef  `yaml:"skills,omitempty"`
	Tactics []TacticDef `yaml:"tactics,omitempty"`
}

// mapCatalog is the standard map-backed catalog.
type mapCatalog struct {
	cards   map[string]CardDef
	enemies map[string]EnemyDef
	units   map[string]UnitDef
	skills  map[string]SkillDef
	tactics map[string]TacticDef
	piles   map[string][]string
}

// NewCatalog builds a catalog from one or more content sets. Later sets
// override earlier entries with the same ID.
func NewCatalog(sets ...SetFile) Catalog {
	c := &mapCatalog{
		cards:   make(map[string]CardDef),
		enemies: make(map[string]EnemyDef),
		units:   make(map[string]UnitDef),
		skills:  make(map[string]SkillDef),
		tactics: make(map[string]TacticDef),
		piles:   make(map[string][]string),
	}
	for _, set := range sets {
		for _, card := range set.Cards {
			c.cards[card.ID] = card
		}
		for _, enemy := range set.Enemies {
			if _, seen := c.enemies[enemy.ID]; !seen {
				c.piles[enemy.Pile] = append(c.piles[enemy.Pile], enemy.ID)
			}
			c.enemies[enemy.ID] = enemy
		}
		for _, unit := range set.Units {
			c.units[unit.ID] = unit
		}
		for _, skill := range set.Skills {
			c.skills[skill.ID] = skill
		}
		for _, tactic := range set.Tactics {
			c.tactics[tactic.ID] = tactic
		}
	}
	for pile := range c.piles {
		sort.Strings(c.piles[pile])
	}
	return c
}

// LoadSetFile parses a content set from YAML bytes.
func LoadSetFile(data []byte) (SetFile, error) {
	var set SetFile
	if err := yaml.Unmarshal(data, &set); err != nil {
		return SetFile{}, fmt.Errorf("failed to parse content set: %w", err)
	}
	return set, nil
}

// LoadSetFromPath reads and parses a content set YAML file.
func LoadSetFromPath(path string) (SetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SetFile{}, fmt.Errorf("failed to read content set %s: %w", path, err)
	}
	return LoadSetFile(data)
}

func (c *mapCatalog) Card(id string) (CardDef, bool) {
	def, ok := c.cards[id]
	return def, ok
}

func (c *mapCatalog) Enemy(id string) (EnemyDef, bool) {
	def, ok := c.enemies[id]
	return def, ok
}

func (c *mapCatalog) Unit(id string) (UnitDef, bool) {
	def, ok := c.units[id]
	return def, ok
}

func (c *mapCatalog) Skill(id string) (SkillDef, bool) {
	def, ok := c.skills[id]
	return def, ok
}

func (c *mapCatalog) Tactic(id string) (TacticDef, bool) {
	def, ok := c.tactics[id]
	return def, ok
}

func (c *mapCatalog) EnemyIDsByPile(pile string) []string {
	return append([]string(nil), c.piles[pile]...)
}

func (c *mapCatalog) UnitIDs() []string {
	ids := make([]string, 0, len(c.units))
	for id := range c.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *mapCatalog) SkillIDs() []string {
	ids := make([]string, 0, len(c.skills))
	for id := range c.skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *mapCatalog) TacticIDs(timeOfDay string) []string {
	ids := make([]string, 0, len(c.tactics))
	for id, t := range c.tactics {
		if string(t.TimeOfDay) == timeOfDay {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return c.tactics[ids[i]].Number < c.tactics[ids[j]].Number
	})
	return ids
}
