package game

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// ActionType is the closed set of player intents the engine accepts.
// Unknown types are rejected with an INVALID_ACTION event, never a panic.
type ActionType string

const (
	ActionMove             ActionType = "MOVE"
	ActionPlayCard         ActionType = "PLAY_CARD"
	ActionPlayCardSideways ActionType = "PLAY_CARD_SIDEWAYS"
	ActionUseSkill         ActionType = "USE_SKILL"

	ActionResolveChoice          ActionType = "RESOLVE_CHOICE"
	ActionResolveDiscard         ActionType = "RESOLVE_DISCARD"
	ActionResolveDiscardForBonus ActionType = "RESOLVE_DISCARD_FOR_BONUS"

	ActionRest      ActionType = "REST"
	ActionInteract  ActionType = "INTERACT"
	ActionEnterSite ActionType = "ENTER_SITE"

	ActionEnterCombat    ActionType = "ENTER_COMBAT"
	ActionEndCombatPhase ActionType = "END_COMBAT_PHASE"
	ActionDeclareBlock   ActionType = "DECLARE_BLOCK"
	ActionDeclareAttack  ActionType = "DECLARE_ATTACK"
	ActionAssignDamage   ActionType = "ASSIGN_DAMAGE"

	ActionRecruitUnit  ActionType = "RECRUIT_UNIT"
	ActionActivateUnit ActionType = "ACTIVATE_UNIT"

	ActionSelectTactic          ActionType = "SELECT_TACTIC"
	ActionActivateTactic        ActionType = "ACTIVATE_TACTIC"
	ActionResolveTacticDecision ActionType = "RESOLVE_TACTIC_DECISION"

	ActionSelectReward ActionType = "SELECT_REWARD"

	ActionRerollSource       ActionType = "REROLL_SOURCE_DICE"
	ActionEndTurn            ActionType = "END_TURN"
	ActionAnnounceEndOfRound ActionType = "ANNOUNCE_END_OF_ROUND"

	ActionUndo ActionType = "UNDO"

	// Debug actions bypass normal accumulation for scenario setup and
	// tests. They are registered only when the engine runs in debug mode.
	ActionDebugGainPoints ActionType = "DEBUG_GAIN_POINTS"
	ActionDebugSpawnEnemy ActionType = "DEBUG_SPAWN_ENEMY"
	ActionDebugSetPhase   ActionType = "DEBUG_SET_COMBAT_PHASE"
)

// ManaPaymentSource says where a mana payment comes from.
const (
	PayFromCrystal = "CRYSTAL"
	PayFromToken   = "TOKEN"
	PayFromDie     = "DIE"
)

// ManaPayment names one mana payment for a powered card play.
type ManaPayment struct {
	Source string     `json:"source"` // CRYSTAL, TOKEN or DIE
	Color  mana.Color `json:"color"`
	DieID  string     `json:"dieId,omitempty"`
}

// Action is a player intent. It is a flat parameter bag: each action type
// reads only the fields it needs, and validators reject missing or
// inconsistent parameters before any command runs.
type Action struct {
	Type ActionType `json:"type"`

	// Card plays.
	CardID  string       `json:"cardId,omitempty"`
	Powered bool         `json:"powered,omitempty"`
	Payment *ManaPayment `json:"payment,omitempty"`

	// Movement and sites.
	To *HexCoord `json:"to,omitempty"`

	// Pending interactions.
	OptionIndex int      `json:"optionIndex,omitempty"`
	CardIDs     []string `json:"cardIds,omitempty"`
	Decline     bool     `json:"decline,omitempty"`

	// Combat.
	EnemyInstanceID string   `json:"enemyInstanceId,omitempty"`
	AttackIndex     int      `json:"attackIndex,omitempty"`
	Targets         []string `json:"targets,omitempty"`
	// Allies are players on the same hex joining a cooperative assault.
	Allies []string `json:"allies,omitempty"`
	// DamageTarget is "hero" or a unit instance ID.
	DamageTarget string `json:"damageTarget,omitempty"`

	// Units, skills, tactics.
	UnitID   string `json:"unitId,omitempty"`
	SkillID  string `json:"skillId,omitempty"`
	TacticID string `json:"tacticId,omitempty"`
	DieID    string `json:"dieId,omitempty"`

	// Site interaction option ("heal", "recruit", ...).
	Option string `json:"option,omitempty"`

	// Debug parameters.
	Points     content.PointKind  `json:"points,omitempty"`
	Amount     int                `json:"amount,omitempty"`
	Element    content.Element    `json:"element,omitempty"`
	CombatType content.CombatType `json:"combatType,omitempty"`
	EnemyID    string             `json:"enemyId,omitempty"`
	Phase      CombatPhase        `json:"phase,omitempty"`
}

// DamageTargetHero is the DamageTarget value for assigning damage to the hero.
const DamageTargetHero = "hero"
