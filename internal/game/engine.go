package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// ErrGameFinished is returned for actions against a finished game when the
// caller asked for an error instead of an event.
var ErrGameFinished = errors.New("game is finished")

// binding pairs an action's validator chain with its command factory.
type binding struct {
	validate Validator
	build    commandFactory
}

// Engine drives one game: it validates actions, executes commands against
// the current snapshot and maintains the undo stack. The engine itself is
// the only mutable object; every state it holds is an immutable snapshot.
type Engine struct {
	logger   *zap.Logger
	catalog  content.Catalog
	registry map[ActionType]binding

	state *GameState
	undo  undoLog
	debug bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDebugActions enables the debug action set.
func WithDebugActions() Option {
	return func(e *Engine) { e.debug = true }
}

// NewEngine creates an engine over an initial state snapshot.
func NewEngine(cat content.Catalog, initial *GameState, opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		catalog: cat,
		state:   initial,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registry = newRegistry()
	return e
}

// State returns the current snapshot. Callers must treat it as read-only.
func (e *Engine) State() *GameState { return e.state }

// UndoDepth reports how many commands can currently be undone.
func (e *Engine) UndoDepth() int { return e.undo.depth() }

// ProcessAction validates and executes one player action. Rule violations
// are not errors: they produce a single INVALID_ACTION event and leave the
// state untouched. An error return signals an engine defect, not bad input.
func (e *Engine) ProcessAction(playerID string, act Action) ([]Event, error) {
	if act.Type == ActionUndo {
		return e.processUndo(playerID)
	}

	b, ok := e.registry[act.Type]
	if !ok || (!e.debug && isDebugAction(act.Type)) {
		code := CodeUnknownAction
		if isDebugAction(act.Type) {
			code = CodeDebugDisabled
		}
		return e.reject(playerID, act.Type, code, fmt.Sprintf("action %q is not available", act.Type)), nil
	}

	if verdict := b.validate(e.state, e.catalog, playerID, act); !verdict.OK {
		return e.reject(playerID, act.Type, verdict.Code, verdict.Message), nil
	}

	cmd := b.build(e.state, e.catalog, playerID, act)
	next, events, err := cmd.Apply(e.state)
	if err != nil {
		e.logger.Error("command failed",
			zap.String("action", string(act.Type)),
			zap.String("player_id", playerID),
			zap.Error(err))
		return nil, fmt.Errorf("apply %s: %w", act.Type, err)
	}

	e.state = next
	e.undo.push(cmd)
	e.logger.Debug("action applied",
		zap.String("action", string(act.Type)),
		zap.String("player_id", playerID),
		zap.Int("events", len(events)),
		zap.Bool("reversible", cmd.Reversible()))
	return events, nil
}

// processUndo pops the most recent reversible command and reverts it.
func (e *Engine) processUndo(playerID string) ([]Event, error) {
	cmd, ok := e.undo.pop()
	if !ok {
		return e.reject(playerID, ActionUndo, CodeNothingToUndo, "nothing to undo"), nil
	}
	prev, events, err := cmd.Revert(e.state)
	if err != nil {
		return nil, fmt.Errorf("undo %s: %w", cmd.ActionType(), err)
	}
	e.state = prev
	e.logger.Debug("action undone",
		zap.String("action", string(cmd.ActionType())),
		zap.String("player_id", playerID))
	return events, nil
}

func (e *Engine) reject(playerID string, action ActionType, code, message string) []Event {
	e.logger.Debug("action rejected",
		zap.String("action", string(action)),
		zap.String("player_id", playerID),
		zap.String("code", code))
	return []Event{InvalidActionEvent{
		PlayerID: playerID,
		Action:   action,
		Code:     code,
		Message:  message,
	}}
}

func isDebugAction(t ActionType) bool {
	switch t {
	case ActionDebugGainPoints, ActionDebugSpawnEnemy, ActionDebugSetPhase:
		return true
	}
	return false
}

// newRegistry wires every action to its validator chain and command factory.
// The common prelude (player exists, game running, actor may act, no pending
// interaction) runs before the per-action checks; resolve-* actions swap the
// pending check for their own matching one. Cooperative combat participants
// pass the actor gate during a shared combat; turn and round control stays
// with the current player.
func newRegistry() map[ActionType]binding {
	standard := func(extra Validator) Validator {
		return chain(playerExists, gameNotFinished, isActingPlayer, notKnockedOut, noPending, extra)
	}
	resolving := func(extra Validator) Validator {
		return chain(playerExists, gameNotFinished, isActingPlayer, extra)
	}
	// Knockout stops card plays and declarations, but the knocked-out hero
	// still owes damage assignment and the phase/turn bookkeeping.
	combatFlow := func(extra Validator) Validator {
		return chain(playerExists, gameNotFinished, isActingPlayer, noPending, inCombat, extra)
	}

	return map[ActionType]binding{
		ActionMove: {
			validate: standard(chain(notInCombat, validateMove)),
			build:    newMoveCommand,
		},
		ActionPlayCard: {
			validate: standard(validatePlayCard),
			build:    newPlayCardCommand,
		},
		ActionPlayCardSideways: {
			validate: standard(validatePlaySideways),
			build:    newPlaySidewaysCommand,
		},
		ActionUseSkill: {
			validate: standard(validateUseSkill),
			build:    newUseSkillCommand,
		},
		ActionResolveChoice: {
			validate: resolving(validateResolveChoice),
			build:    newResolveChoiceCommand,
		},
		ActionResolveDiscard: {
			validate: resolving(validateResolveDiscard),
			build:    newResolveDiscardCommand,
		},
		ActionResolveDiscardForBonus: {
			validate: resolving(validateResolveDiscardForBonus),
			build:    newResolveDiscardForBonusCommand,
		},
		ActionRest: {
			validate: standard(chain(notInCombat, validateRest)),
			build:    newRestCommand,
		},
		ActionInteract: {
			validate: standard(chain(notInCombat, validateInteract)),
			build:    newInteractCommand,
		},
		ActionEnterSite: {
			validate: standard(chain(notInCombat, validateEnterSite)),
			build:    newEnterSiteCommand,
		},
		ActionEnterCombat: {
			validate: standard(chain(notInCombat, validateEnterCombat)),
			build:    newEnterCombatCommand,
		},
		ActionEndCombatPhase: {
			validate: combatFlow(validateEndCombatPhase),
			build:    newEndCombatPhaseCommand,
		},
		ActionDeclareBlock: {
			validate: standard(chain(inCombat, combatPhaseIs(PhaseBlock), validateDeclareBlock)),
			build:    newDeclareBlockCommand,
		},
		ActionDeclareAttack: {
			validate: standard(chain(inCombat, combatPhaseIs(PhaseRangedSiege, PhaseAttack), validateDeclareAttack)),
			build:    newDeclareAttackCommand,
		},
		ActionAssignDamage: {
			validate: combatFlow(chain(combatPhaseIs(PhaseAssignDamage), validateAssignDamage)),
			build:    newAssignDamageCommand,
		},
		ActionRecruitUnit: {
			validate: standard(chain(notInCombat, validateRecruitUnit)),
			build:    newRecruitUnitCommand,
		},
		ActionActivateUnit: {
			validate: standard(validateActivateUnit),
			build:    newActivateUnitCommand,
		},
		ActionSelectTactic: {
			validate: standard(validateSelectTactic),
			build:    newSelectTacticCommand,
		},
		ActionActivateTactic: {
			validate: standard(validateActivateTactic),
			build:    newActivateTacticCommand,
		},
		ActionResolveTacticDecision: {
			validate: resolving(validateResolveTacticDecision),
			build:    newResolveTacticDecisionCommand,
		},
		ActionSelectReward: {
			validate: resolving(validateSelectReward),
			build:    newSelectRewardCommand,
		},
		ActionRerollSource: {
			validate: standard(validateRerollSource),
			build:    newRerollSourceCommand,
		},
		ActionEndTurn: {
			validate: chain(playerExists, gameNotFinished, isCurrentPlayer, noPending),
			build:    newEndTurnCommand,
		},
		ActionAnnounceEndOfRound: {
			validate: chain(playerExists, gameNotFinished, isCurrentPlayer, notKnockedOut, noPending, validateAnnounceEnd),
			build:    newAnnounceEndCommand,
		},
		ActionDebugGainPoints: {
			validate: chain(playerExists, gameNotFinished),
			build:    newDebugGainPointsCommand,
		},
		ActionDebugSpawnEnemy: {
			validate: chain(playerExists, gameNotFinished),
			build:    newDebugSpawnEnemyCommand,
		},
		ActionDebugSetPhase: {
			validate: chain(playerExists, gameNotFinished),
			build:    newDebugSetPhaseCommand,
		},
	}
}
