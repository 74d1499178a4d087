package content

import "github.com/mage-knight-digital/knight-engine-go/internal/game/mana"

// EffectKind discriminates the effect tree union.
type EffectKind string

const (
	EffectSimple      EffectKind = "SIMPLE"
	EffectChoice      EffectKind = "CHOICE"
	EffectCompound    EffectKind = "COMPOUND"
	EffectConditional EffectKind = "CONDITIONAL"
)

// PointKind is what a simple effect grants.
type PointKind string

const (
	PointMove      PointKind = "MOVE"
	PointInfluence PointKind = "INFLUENCE"
	PointAttack    PointKind = "ATTACK"
	PointBlock     PointKind = "BLOCK"
	PointHeal      PointKind = "HEAL"
	PointDraw      PointKind = "DRAW"
	PointCrystal   PointKind = "CRYSTAL"
)

// ConditionID selects the predicate of a conditional effect.
type ConditionID string

const (
	CondIsDay    ConditionID = "IS_DAY"
	CondIsNight  ConditionID = "IS_NIGHT"
	CondInCombat ConditionID = "IN_COMBAT"
)

// Effect is a declarative effect tree node. Exactly one shape is populated
// according to Kind; interpretation lives in the engine's resolver, never
// here. Plain data keeps the catalog YAML-loadable and the trees
// serializable inside pending-choice state.
type Effect struct {
	Kind EffectKind `yaml:"kind" json:"kind"`

	// Simple
	Points     PointKind  `yaml:"points,omitempty" json:"points,omitempty"`
	Amount     int        `yaml:"amount,omitempty" json:"amount,omitempty"`
	Element    Element    `yaml:"element,omitempty" json:"element,omitempty"`
	CombatType CombatType `yaml:"combatType,omitempty" json:"combatType,omitempty"`
	Color      mana.Color `yaml:"color,omitempty" json:"color,omitempty"` // crystal gains

	// Choice / Compound
	Parts []Effect `yaml:"parts,omitempty" json:"parts,omitempty"`

	// Conditional
	Cond ConditionID `yaml:"cond,omitempty" json:"cond,omitempty"`
	Then *Effect     `yaml:"then,omitempty" json:"then,omitempty"`
	Else *Effect     `yaml:"else,omitempty" json:"else,omitempty"`
}

// Simple builds a simple point-gain effect.
func Simple(points PointKind, amount int) *Effect {
	return &Effect{Kind: EffectSimple, Points: points, Amount: amount}
}

// SimpleElemental builds a simple effect with an element qualifier.
func SimpleElemental(points PointKind, amount int, el Element) *Effect {
	return &Effect{Kind: EffectSimple, Points: points, Amount: amount, Element: el}
}

// SimpleAttack builds an attack effect with type and element qualifiers.
func SimpleAttack(amount int, ct CombatType, el Element) *Effect {
	return &Effect{Kind: EffectSimple, Points: PointAttack, Amount: amount, CombatType: ct, Element: el}
}

// Choice builds a pick-one effect.
func Choice(parts ...*Effect) *Effect {
	return &Effect{Kind: EffectChoice, Parts: deref(parts)}
}

// Compound builds an apply-all effect.
func Compound(parts ...*Effect) *Effect {
	return &Effect{Kind: EffectCompound, Parts: deref(parts)}
}

// Conditional builds a predicate-branch effect.
func Conditional(cond ConditionID, then, els *Effect) *Effect {
	return &Effect{Kind: EffectConditional, Cond: cond, Then: then, Else: els}
}

func deref(parts []*Effect) []Effect {
	out := make([]Effect, 0, len(parts))
	for _, p := range parts {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
