package game

// Validation codes carried by INVALID_ACTION events. Stable, machine-readable
// strings; messages are for humans, codes are for clients and tests.
const (
	CodeUnknownAction     = "UNKNOWN_ACTION"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeNotCurrentPlayer  = "NOT_CURRENT_PLAYER"
	CodeGameFinished      = "GAME_FINISHED"
	CodePlayerKnockedOut  = "PLAYER_KNOCKED_OUT"
	CodePendingUnresolved = "PENDING_INTERACTION"

	CodeNoPendingChoice     = "NO_PENDING_CHOICE"
	CodeChoiceOutOfRange    = "CHOICE_INDEX_OUT_OF_RANGE"
	CodeNoPendingDiscard    = "NO_PENDING_DISCARD"
	CodeNoPendingLevelUp    = "NO_PENDING_LEVEL_UP"
	CodeRewardOutOfRange    = "REWARD_INDEX_OUT_OF_RANGE"
	CodeNoTacticDecision    = "NO_TACTIC_DECISION"
	CodeDiscardCountWrong   = "DISCARD_COUNT_MISMATCH"
	CodeCardNotInHand       = "CARD_NOT_IN_HAND"
	CodeWoundNotPlayable    = "WOUND_NOT_PLAYABLE"
	CodeCardWrongContext    = "CARD_NOT_PLAYABLE_HERE"
	CodeEffectNotResolvable = "EFFECT_NOT_RESOLVABLE"

	CodeManaRequired      = "MANA_REQUIRED"
	CodeManaUnavailable   = "MANA_SOURCE_UNAVAILABLE"
	CodeDieNotFound       = "DIE_NOT_FOUND"
	CodeDieTaken          = "DIE_ALREADY_TAKEN"
	CodeDieColorMismatch  = "DIE_COLOR_MISMATCH"
	CodeGoldManaAtNight   = "GOLD_MANA_NIGHT"
	CodeBlackManaByDay    = "BLACK_MANA_DAY"
	CodeBlackManaOnAction = "BLACK_MANA_ON_ACTION"

	CodeHexNotFound       = "HEX_NOT_FOUND"
	CodeNotAdjacent       = "NOT_ADJACENT"
	CodeTerrainImpassable = "TERRAIN_IMPASSABLE"
	CodeInsufficientMove  = "INSUFFICIENT_MOVE"

	CodeNotInCombat         = "NOT_IN_COMBAT"
	CodeAlreadyInCombat     = "ALREADY_IN_COMBAT"
	CodeWrongCombatPhase    = "WRONG_COMBAT_PHASE"
	CodeNoEnemiesHere       = "NO_ENEMIES_HERE"
	CodeEnemyNotFound       = "ENEMY_NOT_FOUND"
	CodeEnemyDefeated       = "ENEMY_ALREADY_DEFEATED"
	CodeEnemyAlreadyBlocked = "ENEMY_ALREADY_BLOCKED"
	CodeAttackOutOfRange    = "ATTACK_INDEX_OUT_OF_RANGE"
	CodeInsufficientBlock   = "INSUFFICIENT_BLOCK"
	CodeNoAttackDeclared    = "NO_ATTACK_POINTS"
	CodeNoTargets           = "NO_TARGETS"
	CodeDamageAssigned      = "DAMAGE_ALREADY_ASSIGNED"
	CodeDamageOutstanding   = "DAMAGE_NOT_FULLY_ASSIGNED"
	CodeAttackBlocked       = "ATTACK_ALREADY_BLOCKED"
	CodeUnitsNotAllowed     = "UNITS_NOT_ALLOWED"
	CodeUnitsProtected      = "DAMAGE_TO_UNITS_FORBIDDEN"
	CodeAssassination       = "ASSASSINATION_TARGETS_HERO"
	CodeDamageRedirected    = "DAMAGE_REDIRECTED_TO_UNIT"
	CodeAllyNotHere         = "ALLY_NOT_ON_THIS_HEX"

	CodeInsufficientInfluence = "INSUFFICIENT_INFLUENCE"
	CodeReputationTooLow      = "REPUTATION_TOO_LOW"
	CodeUnitNotInOffer        = "UNIT_NOT_IN_OFFER"
	CodeRosterFull            = "ROSTER_FULL"
	CodeUnitNotFound          = "UNIT_NOT_FOUND"
	CodeUnitNotReady          = "UNIT_NOT_READY"
	CodeUnitWounded           = "UNIT_WOUNDED"
	CodeNoSiteHere            = "NO_SITE_HERE"
	CodeSiteConquered         = "SITE_ALREADY_CONQUERED"
	CodeOptionUnknown         = "OPTION_UNKNOWN"
	CodeNothingToHeal         = "NOTHING_TO_HEAL"

	CodeSkillNotOwned   = "SKILL_NOT_OWNED"
	CodeSkillOnCooldown = "SKILL_ON_COOLDOWN"
	CodeSkillNotFound   = "SKILL_NOT_FOUND"

	CodeTacticNotFound     = "TACTIC_NOT_FOUND"
	CodeTacticTaken        = "TACTIC_ALREADY_TAKEN"
	CodeTacticAlreadyOwned = "TACTIC_ALREADY_SELECTED"
	CodeTacticWrongTime    = "TACTIC_WRONG_TIME_OF_DAY"
	CodeTacticUsed         = "TACTIC_ALREADY_FLIPPED"
	CodeNotYourTactic      = "NOT_YOUR_TACTIC"

	CodeEndAlreadyCalled = "END_OF_ROUND_ALREADY_ANNOUNCED"
	CodeNothingToUndo    = "NOTHING_TO_UNDO"
	CodeDebugDisabled    = "DEBUG_DISABLED"
)
