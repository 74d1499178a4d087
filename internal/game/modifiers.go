package game

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// ModifierKind names what rule an active modifier overrides. Kinds double as
// the query key: rule lookups scan the store for matching kinds instead of
// special-casing card IDs.
type ModifierKind string

const (
	// ModTerrainCost adjusts the move cost of a terrain (or all terrain
	// when Terrain is empty), clamped at Minimum.
	ModTerrainCost ModifierKind = "TERRAIN_COST"
	// ModEnemyAttack adjusts an enemy's attack values.
	ModEnemyAttack ModifierKind = "ENEMY_ATTACK"
	// ModAbilityNullifier suppresses one enemy ability.
	ModAbilityNullifier ModifierKind = "ABILITY_NULLIFIER"
	// ModRule toggles a named rule flag (see Rule* constants).
	ModRule ModifierKind = "RULE"
	// ModSidewaysBonus raises the value of cards played sideways.
	ModSidewaysBonus ModifierKind = "SIDEWAYS_BONUS"
	// ModSkipAttack makes an enemy skip its attack entirely.
	ModSkipAttack ModifierKind = "SKIP_ATTACK"
	// ModMoveCardBonus boosts the next move card played (one-shot).
	ModMoveCardBonus ModifierKind = "MOVE_CARD_BONUS"
	// ModCombatCardBonus boosts the next attack/block card played (one-shot).
	ModCombatCardBonus ModifierKind = "COMBAT_CARD_BONUS"
	// ModDamageRedirect forces the player's unblocked combat damage onto the
	// scoped unit while that unit can still take a wound.
	ModDamageRedirect ModifierKind = "DAMAGE_REDIRECT"
)

// Rule flags toggled by ModRule modifiers.
const (
	// RuleWoundsSideways lets wound cards be played sideways.
	RuleWoundsSideways = "WOUNDS_SIDEWAYS"
	// RuleNoDamageToUnits forbids assigning combat damage to units.
	RuleNoDamageToUnits = "NO_DAMAGE_TO_UNITS"
)

// ModifierDuration scopes a modifier's lifetime. Expiry is a sweep at the
// matching boundary, not a timer.
type ModifierDuration string

const (
	DurationTurn      ModifierDuration = "TURN"
	DurationRound     ModifierDuration = "ROUND"
	DurationCombat    ModifierDuration = "COMBAT"
	DurationPermanent ModifierDuration = "PERMANENT"
)

// ModifierSource records what created a modifier.
type ModifierSource struct {
	Kind     string `json:"kind"` // CARD, SKILL, UNIT, TACTIC, SITE
	ID       string `json:"id"`
	PlayerID string `json:"playerId,omitempty"`
}

// ActiveModifier is one live rule override on the game state. Modifiers are
// data: queries fold over the store every time, so removing one instantly
// restores the base rule.
type ActiveModifier struct {
	ID       string               `json:"id"`
	Source   ModifierSource       `json:"source"`
	Kind     ModifierKind         `json:"kind"`
	Amount   int                  `json:"amount,omitempty"`
	Minimum  int                  `json:"minimum,omitempty"`
	Terrain  content.Terrain      `json:"terrain,omitempty"`
	Ability  content.EnemyAbility `json:"ability,omitempty"`
	RuleID   string               `json:"ruleId,omitempty"`
	Duration ModifierDuration     `json:"duration"`
	// PlayerScope limits the modifier to one player; empty means global.
	PlayerScope string `json:"playerScope,omitempty"`
	// EnemyScope limits the modifier to one enemy instance; empty means all.
	EnemyScope string `json:"enemyScope,omitempty"`
	// UnitScope names the unit instance a redirect modifier points at.
	UnitScope string `json:"unitScope,omitempty"`
}

func (m ActiveModifier) appliesToPlayer(playerID string) bool {
	return m.PlayerScope == "" || m.PlayerScope == playerID
}

func (m ActiveModifier) appliesToEnemy(instanceID string) bool {
	return m.EnemyScope == "" || m.EnemyScope == instanceID
}

// AddModifier mints an ID and appends the modifier. Call on cloned state.
func (st *GameState) AddModifier(m ActiveModifier) ActiveModifier {
	if m.ID == "" {
		m.ID = st.NewInstanceID("mod")
	}
	st.ActiveModifiers = append(st.ActiveModifiers, m)
	return m
}

// RemoveModifier deletes a modifier by ID.
func (st *GameState) RemoveModifier(id string) bool {
	for i, m := range st.ActiveModifiers {
		if m.ID == id {
			st.ActiveModifiers = append(st.ActiveModifiers[:i:i], st.ActiveModifiers[i+1:]...)
			return true
		}
	}
	return false
}

// SweepModifiers removes every modifier with the given duration and returns
// the removed set, so callers can emit expiry events.
func (st *GameState) SweepModifiers(d ModifierDuration) []ActiveModifier {
	var kept []ActiveModifier
	var removed []ActiveModifier
	for _, m := range st.ActiveModifiers {
		if m.Duration == d {
			removed = append(removed, m)
		} else {
			kept = append(kept, m)
		}
	}
	st.ActiveModifiers = kept
	return removed
}

// EffectiveTerrainCost answers "what does this terrain cost right now" for a
// player, folding every terrain modifier over the printed cost. ok is false
// for impassable terrain; modifiers cannot make impassable terrain passable.
func (st *GameState) EffectiveTerrainCost(t content.Terrain, playerID string) (int, bool) {
	night := st.TimeOfDay == "NIGHT"
	cost, ok := content.TerrainCost(t, night)
	if !ok {
		return 0, false
	}
	for _, m := range st.ActiveModifiers {
		if m.Kind != ModTerrainCost || !m.appliesToPlayer(playerID) {
			continue
		}
		if m.Terrain != "" && m.Terrain != t {
			continue
		}
		cost += m.Amount
		if cost < m.Minimum {
			cost = m.Minimum
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost, true
}

// EffectiveEnemyAttack folds enemy-attack modifiers over a printed attack
// value, clamping at zero.
func (st *GameState) EffectiveEnemyAttack(enemyInstanceID string, base int) int {
	value := base
	for _, m := range st.ActiveModifiers {
		if m.Kind != ModEnemyAttack || !m.appliesToEnemy(enemyInstanceID) {
			continue
		}
		value += m.Amount
	}
	if value < 0 {
		value = 0
	}
	return value
}

// IsAbilityNullified reports whether an enemy ability is suppressed for this
// enemy instance.
func (st *GameState) IsAbilityNullified(enemyInstanceID string, ability content.EnemyAbility) bool {
	for _, m := range st.ActiveModifiers {
		if m.Kind == ModAbilityNullifier && m.Ability == ability && m.appliesToEnemy(enemyInstanceID) {
			return true
		}
	}
	return false
}

// IsRuleActive reports whether a named rule flag is on for a player.
func (st *GameState) IsRuleActive(ruleID, playerID string) bool {
	for _, m := range st.ActiveModifiers {
		if m.Kind == ModRule && m.RuleID == ruleID && m.appliesToPlayer(playerID) {
			return true
		}
	}
	return false
}

// SkipsAttack reports whether an enemy's attacks are skipped entirely.
func (st *GameState) SkipsAttack(enemyInstanceID string) (ActiveModifier, bool) {
	for _, m := range st.ActiveModifiers {
		if m.Kind == ModSkipAttack && m.appliesToEnemy(enemyInstanceID) {
			return m, true
		}
	}
	return ActiveModifier{}, false
}

// EffectiveSidewaysValue folds sideways bonuses over the base sideways value.
func (st *GameState) EffectiveSidewaysValue(playerID string, base int) int {
	value := base
	for _, m := range st.ActiveModifiers {
		if m.Kind == ModSidewaysBonus && m.appliesToPlayer(playerID) {
			value += m.Amount
		}
	}
	return value
}

// CardBonus finds a pending one-shot card bonus of the given kind for a
// player. The caller consumes it with RemoveModifier after applying.
func (st *GameState) CardBonus(kind ModifierKind, playerID string) (ActiveModifier, bool) {
	for _, m := range st.ActiveModifiers {
		if m.Kind == kind && m.appliesToPlayer(playerID) {
			return m, true
		}
	}
	return ActiveModifier{}, false
}

// DamageRedirectUnit returns the unit that must soak the player's combat
// damage first, when a redirect modifier names one.
func (st *GameState) DamageRedirectUnit(playerID string) (string, bool) {
	for _, m := range st.ActiveModifiers {
		if m.Kind == ModDamageRedirect && m.appliesToPlayer(playerID) && m.UnitScope != "" {
			return m.UnitScope, true
		}
	}
	return "", false
}

// modifierTargetsEnemy reports whether a kind is scoped to an enemy instance.
func modifierTargetsEnemy(kind ModifierKind) bool {
	switch kind {
	case ModEnemyAttack, ModSkipAttack, ModAbilityNullifier:
		return true
	}
	return false
}

// modifierTargetsUnit reports whether a kind is scoped to a unit instance.
func modifierTargetsUnit(kind ModifierKind) bool {
	return kind == ModDamageRedirect
}

// ModifierFromSpec instantiates a catalog modifier spec.
func ModifierFromSpec(spec content.ModifierSpec, source ModifierSource, playerScope, enemyScope, unitScope string) ActiveModifier {
	return ActiveModifier{
		Source:      source,
		Kind:        ModifierKind(spec.Kind),
		Amount:      spec.Amount,
		Minimum:     spec.Minimum,
		Terrain:     spec.Terrain,
		Ability:     spec.Ability,
		RuleID:      spec.RuleID,
		Duration:    ModifierDuration(spec.Duration),
		PlayerScope: playerScope,
		EnemyScope:  enemyScope,
		UnitScope:   unitScope,
	}
}
