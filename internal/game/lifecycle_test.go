package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

func TestSelectTacticClaimsIt(t *testing.T) {
	h := newHarness(t)
	events := h.do("p1", Action{Type: ActionSelectTactic, TacticID: "tactic_rethink"})
	assert.True(t, hasEvent(events, EventTacticSelected))
	assert.Equal(t, "tactic_rethink", h.player("p1").Tactic)
	assert.Equal(t, "p1", h.state().TacticsTaken["tactic_rethink"])

	// One tactic per round per player.
	h.expectInvalid("p1", Action{Type: ActionSelectTactic, TacticID: "tactic_early_bird"}, CodeTacticAlreadyOwned)
}

func TestTacticMustMatchTimeOfDay(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionSelectTactic, TacticID: "tactic_long_night"}, CodeTacticWrongTime)
}

func TestTakenTacticUnavailableToOthers(t *testing.T) {
	h := newHarness(t, "p1", "p2")
	h.do("p1", Action{Type: ActionSelectTactic, TacticID: "tactic_rethink"})
	h.do("p1", Action{Type: ActionEndTurn})

	h.expectInvalid("p2", Action{Type: ActionSelectTactic, TacticID: "tactic_rethink"}, CodeTacticTaken)
	h.do("p2", Action{Type: ActionSelectTactic, TacticID: "tactic_early_bird"})
}

func TestActivateTacticOnce(t *testing.T) {
	h := newHarness(t)
	h.do("p1", Action{Type: ActionSelectTactic, TacticID: "tactic_rethink"})

	handBefore := len(h.player("p1").Hand)
	events := h.do("p1", Action{Type: ActionActivateTactic, TacticID: "tactic_rethink"})
	assert.True(t, hasEvent(events, EventTacticFlipped))
	assert.True(t, hasEvent(events, EventCardsDrawn))
	assert.Equal(t, handBefore+2, len(h.player("p1").Hand))

	h.expectInvalid("p1", Action{Type: ActionActivateTactic, TacticID: "tactic_rethink"}, CodeTacticUsed)
}

func TestActivatingForeignTacticRejected(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionActivateTactic, TacticID: "tactic_rethink"}, CodeNotYourTactic)
}

func TestDecisionTacticTakesSourceDie(t *testing.T) {
	h := newHarness(t)
	h.do("p1", Action{Type: ActionSelectTactic, TacticID: "tactic_mana_steal"})
	h.do("p1", Action{Type: ActionActivateTactic, TacticID: "tactic_mana_steal"})
	require.NotNil(t, h.player("p1").Pending)
	require.Equal(t, PendingTacticDecisionKind, h.player("p1").Pending.Kind)

	dieID := h.state().Source[0].ID
	color := h.state().Source[0].Color
	events := h.do("p1", Action{Type: ActionResolveTacticDecision, Option: "take", DieID: dieID})
	taken, ok := findEvent[DieTakenEvent](events)
	require.True(t, ok)
	assert.Equal(t, color, taken.Color)
	assert.True(t, h.player("p1").Mana.HasToken(color))

	die, _ := mana.FindDie(h.state().Source, dieID)
	assert.True(t, die.Taken)

	// The taken die rerolls back into the source at end of turn.
	h.do("p1", Action{Type: ActionEndTurn})
	die, _ = mana.FindDie(h.state().Source, dieID)
	assert.False(t, die.Taken)
}

func TestEndTurnClearsTurnResources(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointMove, 3)
	h.player("p1").Mana.AddToken(mana.ColorRed)
	h.giveCard("p1", "card_march") // 6 cards in hand

	h.do("p1", Action{Type: ActionEndTurn})

	p := h.player("p1")
	assert.Zero(t, p.Accum.Move)
	assert.False(t, p.Mana.HasToken(mana.ColorRed))
	assert.Len(t, p.Hand, 6, "hand above the limit is not trimmed")
}

func TestEndTurnRefillsHand(t *testing.T) {
	h := newHarness(t)
	card := h.player("p1").Hand[0]
	h.do("p1", Action{Type: ActionRest, CardIDs: []string{card}})

	events := h.do("p1", Action{Type: ActionEndTurn})
	assert.True(t, hasEvent(events, EventCardsDrawn))
	assert.Len(t, h.player("p1").Hand, 5)
}

func TestLevelUpRewardFlow(t *testing.T) {
	h := newHarness(t)
	h.player("p1").Fame = 2
	ids := h.startCombat("p1", "enemy_prowlers") // fame 2 crosses the level 2 threshold
	h.do("p1", Action{Type: ActionDebugSetPhase, Phase: PhaseAttack})
	h.gainAttack("p1", 3, content.CombatMelee, content.ElementPhysical)

	events := h.do("p1", Action{Type: ActionDeclareAttack, Targets: []string{ids[0]}})
	assert.True(t, hasEvent(events, EventLevelUp))
	assert.Equal(t, 1, h.player("p1").LevelUpsOwed)

	h.do("p1", Action{Type: ActionEndCombatPhase})
	events = h.do("p1", Action{Type: ActionEndTurn})
	open, ok := findEvent[RewardChoiceOpenEvent](events)
	require.True(t, ok)
	require.Len(t, open.Options, 2)
	require.NotNil(t, h.player("p1").Pending)

	// The reward must be resolved before anything else.
	h.expectInvalid("p1", Action{Type: ActionEndTurn}, CodePendingUnresolved)

	h.expectInvalid("p1", Action{Type: ActionSelectReward, OptionIndex: 2}, CodeRewardOutOfRange)

	tokensBefore := h.player("p1").CommandTokens
	h.do("p1", Action{Type: ActionSelectReward, OptionIndex: 1})
	p := h.player("p1")
	assert.True(t, p.HasSkill(open.Options[1]))
	assert.Equal(t, tokensBefore+1, p.CommandTokens)
	assert.Zero(t, p.LevelUpsOwed)
}

func TestRewardWithoutPendingLevelUp(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionSelectReward, OptionIndex: 0}, CodeNoPendingLevelUp)
}

func TestAnnounceEndTriggersRoundRollover(t *testing.T) {
	h := newHarness(t, "p1", "p2")
	h.do("p1", Action{Type: ActionAnnounceEndOfRound})
	h.expectInvalid("p1", Action{Type: ActionAnnounceEndOfRound}, CodeEndAlreadyCalled)

	// p2 gets one final turn, then the round rolls over.
	events := h.do("p1", Action{Type: ActionEndTurn})
	assert.False(t, hasEvent(events, EventRoundEnded))
	assert.Equal(t, "p2", h.state().CurrentPlayerID)

	events = h.do("p2", Action{Type: ActionEndTurn})
	assert.True(t, hasEvent(events, EventRoundEnded))

	st := h.state()
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, mana.Night, st.TimeOfDay)
	assert.Equal(t, "p1", st.CurrentPlayerID)
	assert.Empty(t, st.EndAnnouncedBy)
	assert.Empty(t, st.TacticsTaken)
	assert.Empty(t, h.player("p1").Tactic)
}

func TestRoundRolloverRerollsWholeSource(t *testing.T) {
	h := newHarness(t)
	sizeBefore := len(h.state().Source)

	h.do("p1", Action{Type: ActionAnnounceEndOfRound})
	events := h.do("p1", Action{Type: ActionEndTurn})
	rerolled, ok := findEvent[SourceRerolledEvent](events)
	require.True(t, ok)
	assert.Len(t, rerolled.DieIDs, sizeBefore)
	for _, d := range h.state().Source {
		assert.False(t, d.Taken)
	}
}

func TestGameFinishesAfterLastRound(t *testing.T) {
	h := newHarness(t)
	h.state().Round = MaxRounds

	h.do("p1", Action{Type: ActionAnnounceEndOfRound})
	events := h.do("p1", Action{Type: ActionEndTurn})
	assert.True(t, hasEvent(events, EventGameFinished))
	assert.True(t, h.state().Finished)

	h.expectInvalid("p1", Action{Type: ActionEndTurn}, CodeGameFinished)
}

func TestRerollSourceSingleDie(t *testing.T) {
	h := newHarness(t)
	dieID := h.state().Source[0].ID

	events := h.do("p1", Action{Type: ActionRerollSource, DieID: dieID})
	rerolled, ok := findEvent[SourceRerolledEvent](events)
	require.True(t, ok)
	assert.Equal(t, []string{dieID}, rerolled.DieIDs)

	// Rerolling is a commitment: no undo past it.
	h.expectInvalid("p1", Action{Type: ActionUndo}, CodeNothingToUndo)
}

func TestRerollUnknownDieRejected(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionRerollSource, DieID: "die-99"}, CodeDieNotFound)
}
