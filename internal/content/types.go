// Package content is the static content catalog: immutable definitions for
// cards, enemies, units, skills and tactics, keyed by ID, plus the elemental
// efficiency and terrain cost tables. The engine never hardcodes card data;
// it queries this package.
package content

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// Element qualifies attack and block values.
type Element string

const (
	ElementPhysical Element = "PHYSICAL"
	ElementFire     Element = "FIRE"
	ElementIce      Element = "ICE"
	ElementColdFire Element = "COLD_FIRE"
)

// CombatType distinguishes the three attack categories.
type CombatType string

const (
	CombatMelee  CombatType = "MELEE"
	CombatRanged CombatType = "RANGED"
	CombatSiege  CombatType = "SIEGE"
)

// CardType categorizes deed cards.
type CardType string

const (
	CardAction         CardType = "ACTION"
	CardAdvancedAction CardType = "ADVANCED_ACTION"
	CardSpell          CardType = "SPELL"
	CardArtifact       CardType = "ARTIFACT"
	CardWound          CardType = "WOUND"
)

// CardDef is the immutable definition of a deed card.
type CardDef struct {
	ID            string     `yaml:"id"`
	Name          string     `yaml:"name"`
	Type          CardType   `yaml:"type"`
	Color         mana.Color `yaml:"color,omitempty"`
	Basic         *Effect    `yaml:"basic,omitempty"`
	Powered       *Effect    `yaml:"powered,omitempty"`
	SidewaysValue int        `yaml:"sidewaysValue,omitempty"`
}

// IsSpell reports whether even the basic play requires mana.
func (c CardDef) IsSpell() bool { return c.Type == CardSpell }

// AcceptedColors returns the mana colors that power this card.
func (c CardDef) AcceptedColors() []mana.Color {
	if c.Color == "" {
		return nil
	}
	return []mana.Color{c.Color}
}

// EnemyAbility is a special rule printed on an enemy token.
type EnemyAbility string

const (
	AbilityFortified     EnemyAbility = "FORTIFIED"
	AbilitySwift         EnemyAbility = "SWIFT"
	AbilityBrutal        EnemyAbility = "BRUTAL"
	AbilityPoison        EnemyAbility = "POISON"
	AbilityAssassination EnemyAbility = "ASSASSINATION"
	AbilitySummon        EnemyAbility = "SUMMON"
)

// EnemyAttack is one discrete attack of an enemy. Multi-attack enemies carry
// several; each must be blocked or damage-assigned individually.
type EnemyAttack struct {
	Value   int     `yaml:"value"`
	Element Element `yaml:"element"`
}

// EnemyDef is the immutable definition of an enemy token.
type EnemyDef struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Pile        string         `yaml:"pile"` // token pile color: green, grey, brown, violet, white, red
	Armor       int            `yaml:"armor"`
	Attacks     []EnemyAttack  `yaml:"attacks"`
	Abilities   []EnemyAbility `yaml:"abilities,omitempty"`
	Resistances []Element      `yaml:"resistances,omitempty"`
	Fame        int            `yaml:"fame"`
}

// HasAbility reports whether the printed token carries the ability. Runtime
// nullification is layered on top by the modifier store, not here.
func (e EnemyDef) HasAbility(a EnemyAbility) bool {
	for _, ab := range e.Abilities {
		if ab == a {
			return true
		}
	}
	return false
}

// ResistantTo reports printed resistance to an element.
func (e EnemyDef) ResistantTo(el Element) bool {
	for _, r := range e.Resistances {
		if r == el {
			return true
		}
	}
	return false
}

// UnitDef is the immutable definition of a recruitable unit.
type UnitDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Level       int       `yaml:"level"`
	Cost        int       `yaml:"cost"` // influence
	Armor       int       `yaml:"armor"`
	Resistances []Element `yaml:"resistances,omitempty"`
	Ability     *Effect   `yaml:"ability,omitempty"`
}

// ResistantTo reports printed resistance to an element.
func (u UnitDef) ResistantTo(el Element) bool {
	for _, r := range u.Resistances {
		if r == el {
			return true
		}
	}
	return false
}

// SkillCooldown scopes how often a skill may be used.
type SkillCooldown string

const (
	CooldownTurn        SkillCooldown = "TURN"
	CooldownRound       SkillCooldown = "ROUND"
	CooldownCombat      SkillCooldown = "COMBAT"
	CooldownInteractive SkillCooldown = "INTERACTIVE" // token placed until returned
)

// SkillDef is the immutable definition of a hero skill. A skill either
// resolves an effect tree, injects a modifier, or both.
type SkillDef struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Hero     string        `yaml:"hero,omitempty"`
	Cooldown SkillCooldown `yaml:"cooldown"`
	Effect   *Effect       `yaml:"effect,omitempty"`
	Modifier *ModifierSpec `yaml:"modifier,omitempty"`
}

// TacticDef is the immutable definition of a round tactic.
type TacticDef struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Number    int            `yaml:"number"` // turn-order value
	TimeOfDay mana.TimeOfDay `yaml:"timeOfDay"`
	Effect    *Effect        `yaml:"effect,omitempty"`
	// Decision marks tactics that suspend into a pending decision when
	// activated (e.g. choosing a source die).
	Decision bool `yaml:"decision,omitempty"`
}

// ModifierSpec is the declarative shape of a rule override. The engine
// instantiates it into an active modifier with a source and scope.
type ModifierSpec struct {
	Kind     string       `yaml:"kind"` // see game package modifier kinds
	Amount   int          `yaml:"amount,omitempty"`
	Minimum  int          `yaml:"minimum,omitempty"`
	Duration string       `yaml:"duration"` // TURN, ROUND, COMBAT, PERMANENT
	Terrain  Terrain      `yaml:"terrain,omitempty"`
	Ability  EnemyAbility `yaml:"ability,omitempty"`
	RuleID   string       `yaml:"ruleId,omitempty"`
}
