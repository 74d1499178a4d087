package game

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// CombatPhase is one stage of the forward-only combat sequence.
type CombatPhase string

const (
	PhaseRangedSiege  CombatPhase = "RANGED_SIEGE"
	PhaseBlock        CombatPhase = "BLOCK"
	PhaseAssignDamage CombatPhase = "ASSIGN_DAMAGE"
	PhaseAttack       CombatPhase = "ATTACK"
)

// nextCombatPhase gives the successor phase, ok=false when combat ends.
func nextCombatPhase(p CombatPhase) (CombatPhase, bool) {
	switch p {
	case PhaseRangedSiege:
		return PhaseBlock, true
	case PhaseBlock:
		return PhaseAssignDamage, true
	case PhaseAssignDamage:
		return PhaseAttack, true
	}
	return "", false
}

// EnemyInstance is one enemy token in the current combat. Per-attack flags
// are parallel to the token's attack list (the summoned token's list while a
// summoner is hidden).
type EnemyInstance struct {
	InstanceID string `json:"instanceId"`
	DefID      string `json:"defId"`

	AttacksBlocked []bool `json:"attacksBlocked"`
	DamageResolved []bool `json:"damageResolved"`
	Defeated       bool   `json:"defeated,omitempty"`

	// Summoners fight behind a drawn token through the block and damage
	// phases; the token is discarded when the attack phase starts.
	SummonedTokenID string `json:"summonedTokenId,omitempty"`
	SummonerHidden  bool   `json:"summonerHidden,omitempty"`
}

// Clone returns a deep copy.
func (e *EnemyInstance) Clone() *EnemyInstance {
	out := *e
	out.AttacksBlocked = append([]bool(nil), e.AttacksBlocked...)
	out.DamageResolved = append([]bool(nil), e.DamageResolved...)
	return &out
}

// CombatState tracks one combat encounter. PlayerID is the initiator;
// Participants lists every hero fighting it, initiator first. Cooperative
// assaults admit any participant's combat actions, still one at a time.
type CombatState struct {
	Phase        CombatPhase      `json:"phase"`
	PlayerID     string           `json:"playerId"`
	Participants []string         `json:"participants"`
	Enemies      []*EnemyInstance `json:"enemies"`

	// Site context captured at combat start.
	Site         SiteType `json:"site,omitempty"`
	SiteCoord    HexCoord `json:"siteCoord"`
	Fortified    bool     `json:"fortified,omitempty"`
	UnitsAllowed bool     `json:"unitsAllowed"`
	NightRules   bool     `json:"nightRules,omitempty"`
}

// Clone returns a deep copy.
func (c *CombatState) Clone() *CombatState {
	if c == nil {
		return nil
	}
	out := *c
	out.Participants = append([]string(nil), c.Participants...)
	out.Enemies = make([]*EnemyInstance, len(c.Enemies))
	for i, e := range c.Enemies {
		out.Enemies[i] = e.Clone()
	}
	return &out
}

// HasParticipant reports whether a player fights in this combat.
func (c *CombatState) HasParticipant(playerID string) bool {
	for _, id := range c.Participants {
		if id == playerID {
			return true
		}
	}
	return false
}

// FindEnemy returns the instance with the given ID.
func (c *CombatState) FindEnemy(instanceID string) (*EnemyInstance, bool) {
	for _, e := range c.Enemies {
		if e.InstanceID == instanceID {
			return e, true
		}
	}
	return nil, false
}

// Undefeated returns the enemies still standing.
func (c *CombatState) Undefeated() []*EnemyInstance {
	var out []*EnemyInstance
	for _, e := range c.Enemies {
		if !e.Defeated {
			out = append(out, e)
		}
	}
	return out
}

// activeEnemyDef returns the definition whose attacks currently face the
// player: the summoned token while the summoner hides, the enemy itself
// otherwise.
func activeEnemyDef(cat content.Catalog, e *EnemyInstance) (content.EnemyDef, bool) {
	id := e.DefID
	if e.SummonerHidden && e.SummonedTokenID != "" {
		id = e.SummonedTokenID
	}
	return cat.Enemy(id)
}

// enemyHasAbility checks a printed ability against runtime nullifiers.
func enemyHasAbility(st *GameState, cat content.Catalog, e *EnemyInstance, a content.EnemyAbility) bool {
	def, ok := activeEnemyDef(cat, e)
	if !ok || !def.HasAbility(a) {
		return false
	}
	return !st.IsAbilityNullified(e.InstanceID, a)
}

// requiredBlock computes the block value needed to stop one attack:
// the modifier-adjusted attack value, doubled for swift enemies.
func requiredBlock(st *GameState, cat content.Catalog, e *EnemyInstance, attack content.EnemyAttack) int {
	value := st.EffectiveEnemyAttack(e.InstanceID, attack.Value)
	if enemyHasAbility(st, cat, e, content.AbilitySwift) {
		value *= 2
	}
	return value
}

// attackDamage computes the damage an unblocked attack deals: the
// modifier-adjusted value, doubled for brutal enemies.
func attackDamage(st *GameState, cat content.Catalog, e *EnemyInstance, attack content.EnemyAttack) int {
	value := st.EffectiveEnemyAttack(e.InstanceID, attack.Value)
	if enemyHasAbility(st, cat, e, content.AbilityBrutal) {
		value *= 2
	}
	return value
}

// effectiveBlock folds the player's accumulated block against an attack
// element: efficient elements count full, inefficient ones are halved,
// rounding down per bucket.
func effectiveBlock(accum Accumulator, attackElement content.Element) int {
	total := 0
	for el, v := range accum.Block {
		if content.BlockEfficient(el, attackElement) {
			total += v
		} else {
			total += v / 2
		}
	}
	return total
}

// phaseAllowsCombatType reports whether an attack bucket may be spent in the
// given phase. Siege is required against fortifications during the
// ranged/siege phase; the final attack phase takes everything.
func phaseAllowsCombatType(phase CombatPhase, ct content.CombatType, fortified bool) bool {
	switch phase {
	case PhaseRangedSiege:
		if fortified {
			return ct == content.CombatSiege
		}
		return ct == content.CombatRanged || ct == content.CombatSiege
	case PhaseAttack:
		return true
	}
	return false
}

// effectiveAttack folds the accumulated attack buckets usable in this phase
// against the combined resistances of the targets. Resisted elements are
// halved per bucket, rounding down. Fortified covers both the site and any
// individually fortified target.
func effectiveAttack(accum Accumulator, phase CombatPhase, fortified bool, resistances []content.Element) int {
	total := 0
	for key, v := range accum.Attack {
		ct, el := splitAttackKey(key)
		if !phaseAllowsCombatType(phase, ct, fortified) {
			continue
		}
		if content.AttackEfficient(el, resistances) {
			total += v
		} else {
			total += v / 2
		}
	}
	return total
}

// woundsFor converts damage into wound cards against an armor value,
// rounding up. Zero damage deals zero wounds.
func woundsFor(damage, armor int) int {
	if damage <= 0 {
		return 0
	}
	if armor < 1 {
		armor = 1
	}
	return (damage + armor - 1) / armor
}

// combinedResistances unions the printed resistances of the target set so
// an element is efficient only when no target resists it. Defense always
// uses the enemy's own token, not a summoned stand-in.
func combinedResistances(cat content.Catalog, targets []*EnemyInstance) []content.Element {
	seen := map[content.Element]bool{}
	var out []content.Element
	for _, e := range targets {
		def, ok := cat.Enemy(e.DefID)
		if !ok {
			continue
		}
		for _, r := range def.Resistances {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	return out
}

// targetsFortified reports whether any target enemy is itself fortified,
// which forces siege during the ranged/siege phase just like a fortified
// site.
func targetsFortified(st *GameState, cat content.Catalog, targets []*EnemyInstance) bool {
	for _, e := range targets {
		if enemyHasAbility(st, cat, e, content.AbilityFortified) {
			return true
		}
	}
	return false
}
