package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

func TestMoveSpendsPointsAndReportsSite(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointMove, 5)

	events := h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: -1, R: 1}}) // plains village
	moved, ok := findEvent[MovedEvent](events)
	require.True(t, ok)
	assert.Equal(t, 2, moved.Cost)
	assert.True(t, hasEvent(events, EventSiteEntered))
	assert.Equal(t, 3, h.player("p1").Accum.Move)
}

func TestMoveRejectsNonAdjacentAndImpassable(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointMove, 20)

	h.expectInvalid("p1", Action{Type: ActionMove, To: &HexCoord{Q: 2, R: -1}}, CodeNotAdjacent)
	// The lake is adjacent to (0,1) but never passable.
	h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 0, R: 1}})
	h.expectInvalid("p1", Action{Type: ActionMove, To: &HexCoord{Q: 0, R: 2}}, CodeTerrainImpassable)
}

func TestRecruitUnitSpendsInfluence(t *testing.T) {
	h := newHarness(t)
	unitID := h.state().UnitOffer[0]
	def, ok := h.cat.Unit(unitID)
	require.True(t, ok)
	h.gain("p1", content.PointInfluence, def.Cost)

	events := h.do("p1", Action{Type: ActionRecruitUnit, UnitID: unitID})
	recruited, ok := findEvent[UnitRecruitedEvent](events)
	require.True(t, ok)
	assert.Equal(t, def.Cost, recruited.Influence)

	p := h.player("p1")
	require.Len(t, p.Units, 1)
	assert.Equal(t, unitID, p.Units[0].DefID)
	assert.True(t, p.Units[0].Ready)
	assert.Zero(t, p.Accum.Influence)
	assert.NotContains(t, h.state().UnitOffer, unitID)
}

func TestRecruitNeedsInfluence(t *testing.T) {
	h := newHarness(t)
	unitID := h.state().UnitOffer[0]
	h.expectInvalid("p1", Action{Type: ActionRecruitUnit, UnitID: unitID}, CodeInsufficientInfluence)
}

func TestRosterLimitedByCommandTokens(t *testing.T) {
	h := newHarness(t)
	require.GreaterOrEqual(t, len(h.state().UnitOffer), 2)
	first, second := h.state().UnitOffer[0], h.state().UnitOffer[1]
	h.gain("p1", content.PointInfluence, 20)

	h.do("p1", Action{Type: ActionRecruitUnit, UnitID: first})
	h.expectInvalid("p1", Action{Type: ActionRecruitUnit, UnitID: second}, CodeRosterFull)
}

func TestReputationDiscountsRecruiting(t *testing.T) {
	h := newHarness(t)
	unitID := h.state().UnitOffer[0]
	def, _ := h.cat.Unit(unitID)
	h.player("p1").Reputation = 3 // +2 influence on interactions
	h.gain("p1", content.PointInfluence, def.Cost-2)

	events := h.do("p1", Action{Type: ActionRecruitUnit, UnitID: unitID})
	recruited, _ := findEvent[UnitRecruitedEvent](events)
	assert.Equal(t, def.Cost-2, recruited.Influence)
	assert.Zero(t, h.player("p1").Accum.Influence)
}

func TestBottomedOutReputationBlocksInteraction(t *testing.T) {
	h := newHarness(t)
	h.player("p1").Reputation = -7
	h.player("p1").Position = HexCoord{Q: -1, R: 1} // village
	h.gain("p1", content.PointInfluence, 10)
	h.giveCard("p1", WoundCardID)

	h.expectInvalid("p1", Action{Type: ActionInteract, Option: "heal"}, CodeReputationTooLow)
	h.expectInvalid("p1", Action{Type: ActionRecruitUnit, UnitID: h.state().UnitOffer[0]}, CodeReputationTooLow)
}

func TestVillageHealing(t *testing.T) {
	h := newHarness(t)
	h.player("p1").Position = HexCoord{Q: -1, R: 1}
	h.giveCard("p1", WoundCardID)
	h.gain("p1", content.PointInfluence, 3)

	events := h.do("p1", Action{Type: ActionInteract, Option: "heal"})
	assert.True(t, hasEvent(events, EventWoundsHealed))
	assert.Zero(t, h.player("p1").WoundsInHand())
	assert.Zero(t, h.player("p1").Accum.Influence)
}

func TestHealingNeedsASiteAndWounds(t *testing.T) {
	h := newHarness(t)
	h.gain("p1", content.PointInfluence, 5)
	h.expectInvalid("p1", Action{Type: ActionInteract, Option: "heal"}, CodeNoSiteHere)

	h.player("p1").Position = HexCoord{Q: -1, R: 1}
	h.expectInvalid("p1", Action{Type: ActionInteract, Option: "heal"}, CodeNothingToHeal)
}

func TestRestDiscardsCards(t *testing.T) {
	h := newHarness(t)
	card := h.player("p1").Hand[0]

	events := h.do("p1", Action{Type: ActionRest, CardIDs: []string{card}})
	assert.True(t, hasEvent(events, EventRested))
	assert.Contains(t, h.player("p1").Discard, card)
	assert.Len(t, h.player("p1").Hand, 4)

	h.expectInvalid("p1", Action{Type: ActionRest, CardIDs: nil}, CodeDiscardCountWrong)
}

func TestUnitActivationSpendsReadiness(t *testing.T) {
	h := newHarness(t)
	p := h.player("p1")
	p.Units = append(p.Units, &Unit{InstanceID: "unit-test-1", DefID: "unit_herbalists", Ready: true})
	h.giveCard("p1", WoundCardID)

	events := h.do("p1", Action{Type: ActionActivateUnit, UnitID: "unit-test-1"})
	assert.True(t, hasEvent(events, EventUnitActivated))
	assert.True(t, hasEvent(events, EventWoundsHealed))
	assert.Zero(t, h.player("p1").WoundsInHand())

	unit, _ := h.player("p1").FindUnit("unit-test-1")
	assert.False(t, unit.Ready)
	h.giveCard("p1", WoundCardID)
	h.expectInvalid("p1", Action{Type: ActionActivateUnit, UnitID: "unit-test-1"}, CodeUnitNotReady)
}

func TestUnitsReadyUpAtEndOfTurn(t *testing.T) {
	h := newHarness(t)
	p := h.player("p1")
	p.Units = append(p.Units,
		&Unit{InstanceID: "unit-test-1", DefID: "unit_peasants", Ready: false},
		&Unit{InstanceID: "unit-test-2", DefID: "unit_peasants", Ready: false, Wounded: true},
	)

	h.do("p1", Action{Type: ActionEndTurn})

	fresh, _ := h.player("p1").FindUnit("unit-test-1")
	assert.True(t, fresh.Ready)
	wounded, _ := h.player("p1").FindUnit("unit-test-2")
	assert.False(t, wounded.Ready, "wounded units do not ready up")
}

func TestWoundedUnitCannotActivate(t *testing.T) {
	h := newHarness(t)
	p := h.player("p1")
	p.Units = append(p.Units, &Unit{InstanceID: "unit-test-1", DefID: "unit_herbalists", Ready: true, Wounded: true})
	h.expectInvalid("p1", Action{Type: ActionActivateUnit, UnitID: "unit-test-1"}, CodeUnitWounded)
}
