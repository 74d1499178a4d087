package game

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// EventType identifies what an event describes.
type EventType string

const (
	EventInvalidAction EventType = "INVALID_ACTION"

	EventCardPlayed     EventType = "CARD_PLAYED"
	EventCardDiscarded  EventType = "CARD_DISCARDED"
	EventCardsDrawn     EventType = "CARDS_DRAWN"
	EventChoiceRequired EventType = "CHOICE_REQUIRED"
	EventChoiceResolved EventType = "CHOICE_RESOLVED"
	EventEffectNoOp     EventType = "EFFECT_NO_OP"
	EventPointsGained   EventType = "POINTS_GAINED"
	EventCrystalGained  EventType = "CRYSTAL_GAINED"
	EventWoundsHealed   EventType = "WOUNDS_HEALED"
	EventManaPaid       EventType = "MANA_PAID"

	EventMoved         EventType = "MOVED"
	EventSiteEntered   EventType = "SITE_ENTERED"
	EventSiteConquered EventType = "SITE_CONQUERED"
	EventInteracted    EventType = "INTERACTED"
	EventRested        EventType = "RESTED"

	EventCombatStarted     EventType = "COMBAT_STARTED"
	EventCombatPhase       EventType = "COMBAT_PHASE_CHANGED"
	EventCombatEnded       EventType = "COMBAT_ENDED"
	EventEnemyBlocked      EventType = "ENEMY_BLOCKED"
	EventBlockFailed       EventType = "BLOCK_FAILED"
	EventDamageAssigned    EventType = "DAMAGE_ASSIGNED"
	EventEnemyDefeated     EventType = "ENEMY_DEFEATED"
	EventAttackFailed      EventType = "ATTACK_FAILED"
	EventEnemySummoned     EventType = "ENEMY_SUMMONED"
	EventSummonDiscarded   EventType = "SUMMON_DISCARDED"
	EventPlayerKnockedOut  EventType = "PLAYER_KNOCKED_OUT"
	EventAttackSkipped     EventType = "ATTACK_SKIPPED"
	EventRewardChoiceOpen  EventType = "REWARD_CHOICE_OPEN"
	EventRewardSelected    EventType = "REWARD_SELECTED"
	EventFameGained        EventType = "FAME_GAINED"
	EventLevelUp           EventType = "LEVEL_UP"
	EventReputationChanged EventType = "REPUTATION_CHANGED"

	EventModifierCreated  EventType = "MODIFIER_CREATED"
	EventModifierExpired  EventType = "MODIFIER_EXPIRED"
	EventModifierConsumed EventType = "MODIFIER_CONSUMED"

	EventUnitRecruited EventType = "UNIT_RECRUITED"
	EventUnitActivated EventType = "UNIT_ACTIVATED"
	EventUnitWounded   EventType = "UNIT_WOUNDED"

	EventSkillUsed EventType = "SKILL_USED"

	EventTacticSelected EventType = "TACTIC_SELECTED"
	EventTacticFlipped  EventType = "TACTIC_FLIPPED"
	EventSourceRerolled EventType = "SOURCE_REROLLED"
	EventDieTaken       EventType = "DIE_TAKEN"

	EventTurnEnded        EventType = "TURN_ENDED"
	EventEndOfRoundCalled EventType = "END_OF_ROUND_ANNOUNCED"
	EventRoundEnded       EventType = "ROUND_ENDED"
	EventGameFinished     EventType = "GAME_FINISHED"

	EventUndone EventType = "UNDONE"
)

// Event is the observer-facing record of something that happened. Events are
// plain serializable values; they are how clients learn outcomes, so every
// command reports what it changed through them.
type Event interface {
	Type() EventType
}

// InvalidActionEvent reports a rejected action. It is the only outcome of a
// failed validation; state is untouched.
type InvalidActionEvent struct {
	PlayerID string     `json:"playerId"`
	Action   ActionType `json:"action"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
}

func (InvalidActionEvent) Type() EventType { return EventInvalidAction }

type CardPlayedEvent struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
	Powered  bool   `json:"powered,omitempty"`
	Sideways bool   `json:"sideways,omitempty"`
}

func (CardPlayedEvent) Type() EventType { return EventCardPlayed }

type CardDiscardedEvent struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
	Reason   string `json:"reason,omitempty"`
}

func (CardDiscardedEvent) Type() EventType { return EventCardDiscarded }

type CardsDrawnEvent struct {
	PlayerID string `json:"playerId"`
	Count    int    `json:"count"`
}

func (CardsDrawnEvent) Type() EventType { return EventCardsDrawn }

// ChoiceRequiredEvent signals that effect resolution is suspended until the
// player resolves a pending choice.
type ChoiceRequiredEvent struct {
	PlayerID string `json:"playerId"`
	SourceID string `json:"sourceId"`
	Options  int    `json:"options"`
}

func (ChoiceRequiredEvent) Type() EventType { return EventChoiceRequired }

type ChoiceResolvedEvent struct {
	PlayerID string `json:"playerId"`
	SourceID string `json:"sourceId"`
	Option   int    `json:"option"`
}

func (ChoiceResolvedEvent) Type() EventType { return EventChoiceResolved }

// EffectNoOpEvent reports an effect that had no resolvable options and was
// skipped without error.
type EffectNoOpEvent struct {
	PlayerID string `json:"playerId"`
	SourceID string `json:"sourceId"`
}

func (EffectNoOpEvent) Type() EventType { return EventEffectNoOp }

type PointsGainedEvent struct {
	PlayerID   string             `json:"playerId"`
	Points     content.PointKind  `json:"points"`
	Amount     int                `json:"amount"`
	Element    content.Element    `json:"element,omitempty"`
	CombatType content.CombatType `json:"combatType,omitempty"`
}

func (PointsGainedEvent) Type() EventType { return EventPointsGained }

type CrystalGainedEvent struct {
	PlayerID string     `json:"playerId"`
	Color    mana.Color `json:"color"`
	// AsToken is set when the crystal cap converted the gain into a
	// turn-scoped token instead.
	AsToken bool `json:"asToken,omitempty"`
}

func (CrystalGainedEvent) Type() EventType { return EventCrystalGained }

type WoundsHealedEvent struct {
	PlayerID string `json:"playerId"`
	Count    int    `json:"count"`
	UnitID   string `json:"unitId,omitempty"`
}

func (WoundsHealedEvent) Type() EventType { return EventWoundsHealed }

type ManaPaidEvent struct {
	PlayerID string     `json:"playerId"`
	Color    mana.Color `json:"color"`
	Source   string     `json:"source"` // CRYSTAL, TOKEN or DIE
	DieID    string     `json:"dieId,omitempty"`
}

func (ManaPaidEvent) Type() EventType { return EventManaPaid }

type MovedEvent struct {
	PlayerID string   `json:"playerId"`
	From     HexCoord `json:"from"`
	To       HexCoord `json:"to"`
	Cost     int      `json:"cost"`
}

func (MovedEvent) Type() EventType { return EventMoved }

type SiteEnteredEvent struct {
	PlayerID string   `json:"playerId"`
	Site     SiteType `json:"site"`
	Coord    HexCoord `json:"coord"`
}

func (SiteEnteredEvent) Type() EventType { return EventSiteEntered }

type SiteConqueredEvent struct {
	PlayerID string   `json:"playerId"`
	Site     SiteType `json:"site"`
	Coord    HexCoord `json:"coord"`
}

func (SiteConqueredEvent) Type() EventType { return EventSiteConquered }

type InteractedEvent struct {
	PlayerID  string `json:"playerId"`
	Option    string `json:"option"`
	Influence int    `json:"influence"`
}

func (InteractedEvent) Type() EventType { return EventInteracted }

type RestedEvent struct {
	PlayerID  string `json:"playerId"`
	Discarded int    `json:"discarded"`
}

func (RestedEvent) Type() EventType { return EventRested }

type CombatStartedEvent struct {
	PlayerID     string   `json:"playerId"`
	Participants []string `json:"participants,omitempty"`
	Enemies      []string `json:"enemies"`
	Site         SiteType `json:"site,omitempty"`
}

func (CombatStartedEvent) Type() EventType { return EventCombatStarted }

type CombatPhaseChangedEvent struct {
	From CombatPhase `json:"from"`
	To   CombatPhase `json:"to"`
}

func (CombatPhaseChangedEvent) Type() EventType { return EventCombatPhase }

type CombatEndedEvent struct {
	PlayerID   string `json:"playerId"`
	Victorious bool   `json:"victorious"`
}

func (CombatEndedEvent) Type() EventType { return EventCombatEnded }

type EnemyBlockedEvent struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	AttackIndex     int    `json:"attackIndex"`
	BlockValue      int    `json:"blockValue"`
	Required        int    `json:"required"`
}

func (EnemyBlockedEvent) Type() EventType { return EventEnemyBlocked }

// BlockFailedEvent reports an insufficient block declaration. The block
// points are spent regardless; the attack stays unblocked.
type BlockFailedEvent struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	AttackIndex     int    `json:"attackIndex"`
	BlockValue      int    `json:"blockValue"`
	Required        int    `json:"required"`
}

func (BlockFailedEvent) Type() EventType { return EventBlockFailed }

type DamageAssignedEvent struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	AttackIndex     int    `json:"attackIndex"`
	Target          string `json:"target"` // "hero" or a unit instance ID
	Damage          int    `json:"damage"`
	Wounds          int    `json:"wounds"`
	Absorbed        bool   `json:"absorbed,omitempty"`
	Poisoned        bool   `json:"poisoned,omitempty"`
}

func (DamageAssignedEvent) Type() EventType { return EventDamageAssigned }

type EnemyDefeatedEvent struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	EnemyID         string `json:"enemyId"`
	Fame            int    `json:"fame"`
}

func (EnemyDefeatedEvent) Type() EventType { return EventEnemyDefeated }

// AttackFailedEvent reports an all-or-nothing attack declaration that fell
// short of the combined armor. Nothing is spent and nothing is defeated.
type AttackFailedEvent struct {
	Targets     []string `json:"targets"`
	AttackValue int      `json:"attackValue"`
	Required    int      `json:"required"`
}

func (AttackFailedEvent) Type() EventType { return EventAttackFailed }

type EnemySummonedEvent struct {
	SummonerInstanceID string `json:"summonerInstanceId"`
	TokenID            string `json:"tokenId"`
}

func (EnemySummonedEvent) Type() EventType { return EventEnemySummoned }

type SummonDiscardedEvent struct {
	SummonerInstanceID string `json:"summonerInstanceId"`
	TokenID            string `json:"tokenId"`
}

func (SummonDiscardedEvent) Type() EventType { return EventSummonDiscarded }

type PlayerKnockedOutEvent struct {
	PlayerID string `json:"playerId"`
	Wounds   int    `json:"wounds"`
}

func (PlayerKnockedOutEvent) Type() EventType { return EventPlayerKnockedOut }

type AttackSkippedEvent struct {
	EnemyInstanceID string `json:"enemyInstanceId"`
	ModifierID      string `json:"modifierId"`
}

func (AttackSkippedEvent) Type() EventType { return EventAttackSkipped }

type RewardChoiceOpenEvent struct {
	PlayerID string   `json:"playerId"`
	Level    int      `json:"level"`
	Options  []string `json:"options"`
}

func (RewardChoiceOpenEvent) Type() EventType { return EventRewardChoiceOpen }

type RewardSelectedEvent struct {
	PlayerID string `json:"playerId"`
	Reward   string `json:"reward"`
}

func (RewardSelectedEvent) Type() EventType { return EventRewardSelected }

type FameGainedEvent struct {
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
	Total    int    `json:"total"`
}

func (FameGainedEvent) Type() EventType { return EventFameGained }

type LevelUpEvent struct {
	PlayerID string `json:"playerId"`
	Level    int    `json:"level"`
}

func (LevelUpEvent) Type() EventType { return EventLevelUp }

type ReputationChangedEvent struct {
	PlayerID string `json:"playerId"`
	Delta    int    `json:"delta"`
	Total    int    `json:"total"`
}

func (ReputationChangedEvent) Type() EventType { return EventReputationChanged }

type ModifierCreatedEvent struct {
	ModifierID string       `json:"modifierId"`
	Kind       ModifierKind `json:"kind"`
}

func (ModifierCreatedEvent) Type() EventType { return EventModifierCreated }

type ModifierExpiredEvent struct {
	ModifierID string       `json:"modifierId"`
	Kind       ModifierKind `json:"kind"`
}

func (ModifierExpiredEvent) Type() EventType { return EventModifierExpired }

// ModifierConsumedEvent reports a one-shot modifier being used up.
type ModifierConsumedEvent struct {
	ModifierID string       `json:"modifierId"`
	Kind       ModifierKind `json:"kind"`
}

func (ModifierConsumedEvent) Type() EventType { return EventModifierConsumed }

type UnitRecruitedEvent struct {
	PlayerID       string `json:"playerId"`
	UnitID         string `json:"unitId"`
	UnitInstanceID string `json:"unitInstanceId"`
	Influence      int    `json:"influence"`
}

func (UnitRecruitedEvent) Type() EventType { return EventUnitRecruited }

type UnitActivatedEvent struct {
	PlayerID       string `json:"playerId"`
	UnitInstanceID string `json:"unitInstanceId"`
}

func (UnitActivatedEvent) Type() EventType { return EventUnitActivated }

type UnitWoundedEvent struct {
	PlayerID       string `json:"playerId"`
	UnitInstanceID string `json:"unitInstanceId"`
}

func (UnitWoundedEvent) Type() EventType { return EventUnitWounded }

type SkillUsedEvent struct {
	PlayerID string `json:"playerId"`
	SkillID  string `json:"skillId"`
}

func (SkillUsedEvent) Type() EventType { return EventSkillUsed }

type TacticSelectedEvent struct {
	PlayerID string `json:"playerId"`
	TacticID string `json:"tacticId"`
}

func (TacticSelectedEvent) Type() EventType { return EventTacticSelected }

type TacticFlippedEvent struct {
	PlayerID string `json:"playerId"`
	TacticID string `json:"tacticId"`
}

func (TacticFlippedEvent) Type() EventType { return EventTacticFlipped }

type SourceRerolledEvent struct {
	DieIDs []string `json:"dieIds"`
}

func (SourceRerolledEvent) Type() EventType { return EventSourceRerolled }

type DieTakenEvent struct {
	PlayerID string     `json:"playerId"`
	DieID    string     `json:"dieId"`
	Color    mana.Color `json:"color"`
}

func (DieTakenEvent) Type() EventType { return EventDieTaken }

type TurnEndedEvent struct {
	PlayerID string `json:"playerId"`
	NextID   string `json:"nextId"`
}

func (TurnEndedEvent) Type() EventType { return EventTurnEnded }

type EndOfRoundAnnouncedEvent struct {
	PlayerID string `json:"playerId"`
}

func (EndOfRoundAnnouncedEvent) Type() EventType { return EventEndOfRoundCalled }

type RoundEndedEvent struct {
	Round     int            `json:"round"`
	TimeOfDay mana.TimeOfDay `json:"timeOfDay"`
}

func (RoundEndedEvent) Type() EventType { return EventRoundEnded }

type GameFinishedEvent struct {
	Rounds int `json:"rounds"`
}

func (GameFinishedEvent) Type() EventType { return EventGameFinished }

type UndoneEvent struct {
	PlayerID string     `json:"playerId"`
	Action   ActionType `json:"action"`
}

func (UndoneEvent) Type() EventType { return EventUndone }
