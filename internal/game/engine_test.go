package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

func TestUnknownActionIsRejectedNotPanic(t *testing.T) {
	h := newHarness(t)
	before := h.state().Checksum()

	h.expectInvalid("p1", Action{Type: "DANCE"}, CodeUnknownAction)
	assert.Equal(t, before, h.state().Checksum(), "rejected actions must not touch state")
}

func TestValidationShortCircuitsOnFirstFailure(t *testing.T) {
	h := newHarness(t, "p1", "p2")

	// An unknown player fails before the turn check even though both would
	// reject the action.
	h.expectInvalid("ghost", Action{Type: ActionMove, To: &HexCoord{Q: 1, R: 0}}, CodePlayerNotFound)

	// The off-turn player fails the turn check before anything
	// action-specific runs.
	h.expectInvalid("p2", Action{Type: ActionMove, To: &HexCoord{Q: 99, R: 99}}, CodeNotCurrentPlayer)
}

func TestRejectionLeavesStateUntouched(t *testing.T) {
	h := newHarness(t)
	before := h.state().Checksum()

	h.expectInvalid("p1", Action{Type: ActionMove, To: &HexCoord{Q: 1, R: 0}}, CodeInsufficientMove)
	assert.Equal(t, before, h.state().Checksum())
}

func TestUndoIsTrueInverse(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointMove, 4)
	before := h.state().Checksum()

	h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 1, R: 0}})
	assert.Equal(t, HexCoord{Q: 1, R: 0}, h.player("p1").Position)

	events := h.do("p1", Action{Type: ActionUndo})
	assert.True(t, hasEvent(events, EventUndone))
	assert.Equal(t, before, h.state().Checksum(), "undo must restore the exact prior state")
	assert.Equal(t, HexCoord{Q: 0, R: 0}, h.player("p1").Position)
	assert.Equal(t, 4, h.player("p1").Accum.Move)
}

func TestUndoStackUnwindsMultipleCommands(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointMove, 10)
	start := h.state().Checksum()

	h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 1, R: 0}})
	mid := h.state().Checksum()
	h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 2, R: 0}})

	h.do("p1", Action{Type: ActionUndo})
	assert.Equal(t, mid, h.state().Checksum())
	h.do("p1", Action{Type: ActionUndo})
	assert.Equal(t, start, h.state().Checksum())
}

func TestIrreversibleCommandIsUndoBarrier(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointMove, 4)
	h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 1, R: 0}})
	require.Equal(t, 2, h.eng.UndoDepth())

	// Ending the turn draws cards: a barrier that clears the stack.
	h.do("p1", Action{Type: ActionEndTurn})
	assert.Equal(t, 0, h.eng.UndoDepth())
	h.expectInvalid("p1", Action{Type: ActionUndo}, CodeNothingToUndo)
}

func TestUndoWithEmptyStack(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionUndo}, CodeNothingToUndo)
}

func TestDebugActionsGatedByMode(t *testing.T) {
	cat := content.NewBuiltinCatalog()
	st, err := NewGameState(7, []PlayerSetup{{ID: "p1", Name: "p1"}}, cat)
	require.NoError(t, err)
	eng := NewEngine(cat, st) // no debug option

	events, err := eng.ProcessAction("p1", Action{Type: ActionDebugGainPoints, Points: content.PointMove, Amount: 5})
	require.NoError(t, err)
	require.Len(t, events, 1)
	inv, ok := events[0].(InvalidActionEvent)
	require.True(t, ok)
	assert.Equal(t, CodeDebugDisabled, inv.Code)
}

func TestPendingInteractionBlocksOtherActions(t *testing.T) {
	h := newHarness(t)
	ids := h.startCombat("p1", "enemy_prowlers")
	h.do("p1", Action{Type: ActionDebugSetPhase, Phase: PhaseAttack})

	// In the attack phase both attack options of the card are live, so
	// playing it suspends into a pending choice.
	h.giveCard("p1", "card_battle_versatility")
	h.gainAttack("p1", 3, content.CombatMelee, content.ElementPhysical)
	events := h.do("p1", Action{Type: ActionPlayCard, CardID: "card_battle_versatility"})
	require.True(t, hasEvent(events, EventChoiceRequired))
	require.NotNil(t, h.player("p1").Pending)

	h.expectInvalid("p1", Action{Type: ActionDeclareAttack, Targets: []string{ids[0]}}, CodePendingUnresolved)
}

func TestSameSeedSameActionsSameChecksums(t *testing.T) {
	run := func() string {
		h := newHarness(t)
		h.gain("p1", content.PointMove, 6)
		h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 1, R: 0}})
		h.do("p1", Action{Type: ActionEndTurn})
		return h.state().Checksum()
	}
	assert.Equal(t, run(), run(), "identical seed and action log must reproduce the state")
}

func TestGameStateCloneIsDeep(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_pathfinding")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"})

	st := h.state()
	clone := st.Clone()
	clone.Players[0].Hand = append(clone.Players[0].Hand, "card_march")
	clone.ActiveModifiers[0].Amount = 99
	clone.Map[HexCoord{Q: 0, R: 0}.Key()].Terrain = content.TerrainLake

	assert.NotEqual(t, len(clone.Players[0].Hand), len(st.Players[0].Hand))
	assert.NotEqual(t, clone.ActiveModifiers[0].Amount, st.ActiveModifiers[0].Amount)
	assert.Equal(t, content.TerrainPlains, st.Map[HexCoord{Q: 0, R: 0}.Key()].Terrain)
}
