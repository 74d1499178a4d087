package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

func TestTerrainCostModifierWithMinimum(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_pathfinding")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"})

	st := h.state()
	forest, ok := st.EffectiveTerrainCost(content.TerrainForest, "p1")
	require.True(t, ok)
	assert.Equal(t, 2, forest, "forest 3 drops to 2")

	plains, ok := st.EffectiveTerrainCost(content.TerrainPlains, "p1")
	require.True(t, ok)
	assert.Equal(t, 2, plains, "plains is already at the minimum")

	// Scoped to the caster only.
	other, _ := st.EffectiveTerrainCost(content.TerrainForest, "p2")
	assert.Equal(t, 3, other)
}

func TestTerrainModifierAffectsMoveCost(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_pathfinding")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"})
	h.gain("p1", content.PointMove, 2)

	events := h.do("p1", Action{Type: ActionMove, To: &HexCoord{Q: 0, R: 1}}) // forest
	moved, ok := findEvent[MovedEvent](events)
	require.True(t, ok)
	assert.Equal(t, 2, moved.Cost)
	assert.Zero(t, h.player("p1").Accum.Move)
}

func TestTurnModifierExpiresAtEndOfTurn(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_pathfinding")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"})
	require.Len(t, h.state().ActiveModifiers, 1)

	events := h.do("p1", Action{Type: ActionEndTurn})
	assert.True(t, hasEvent(events, EventModifierExpired))
	assert.Empty(t, h.state().ActiveModifiers)

	cost, _ := h.state().EffectiveTerrainCost(content.TerrainForest, "p1")
	assert.Equal(t, 3, cost, "expiry restores the printed cost")
}

func TestCombatModifierExpiresWithCombat(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_banner_of_fear")
	ids := h.startCombat("p1", "enemy_prowlers")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_banner_of_fear", EnemyInstanceID: ids[0]})
	require.Len(t, h.state().ActiveModifiers, 1)

	h.toPhase("p1", PhaseAttack)
	events := h.do("p1", Action{Type: ActionEndCombatPhase})
	assert.True(t, hasEvent(events, EventModifierExpired))
	assert.Empty(t, h.state().ActiveModifiers)
}

func TestEnemyAttackModifierRaisesBlockRequirement(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_provocation")
	ids := h.startCombat("p1", "enemy_prowlers") // attack 4
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_provocation", EnemyInstanceID: ids[0]})
	h.toPhase("p1", PhaseBlock)

	h.gainBlock("p1", 4, content.ElementPhysical)
	events := h.do("p1", Action{Type: ActionDeclareBlock, EnemyInstanceID: ids[0]})
	failed, ok := findEvent[BlockFailedEvent](events)
	require.True(t, ok)
	assert.Equal(t, 5, failed.Required)
}

func TestInteractiveSkillTokenStaysPlaced(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_provocation")
	ids := h.startCombat("p1", "enemy_prowlers")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_provocation", EnemyInstanceID: ids[0]})

	// The token is out until returned; a second use is blocked.
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_provocation", EnemyInstanceID: ids[0]}, CodeSkillOnCooldown)
	assert.Contains(t, h.player("p1").InteractiveTokens, "skill_provocation")
}

func TestEnemyTargetSkillNeedsCombat(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_provocation")
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_provocation"}, CodeNotInCombat)
}

func TestUnitTargetSkillChecksTheUnit(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_taunt")
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_taunt", UnitID: "unit-test-1"}, CodeNotInCombat)

	h.startCombat("p1", "enemy_prowlers")
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_taunt", UnitID: "unit-test-1"}, CodeUnitNotFound)

	p := h.player("p1")
	p.Units = append(p.Units, &Unit{InstanceID: "unit-test-1", DefID: "unit_peasants", Ready: true, Wounded: true})
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_taunt", UnitID: "unit-test-1"}, CodeUnitWounded)
}

func TestSkillNotOwnedRejected(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"}, CodeSkillNotOwned)
}

func TestTurnCooldownResetsNextTurn(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_pathfinding")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"})
	h.expectInvalid("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"}, CodeSkillOnCooldown)

	h.do("p1", Action{Type: ActionEndTurn})
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_pathfinding"})
}

func TestConditionalSkillEffect(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_dark_negotiation")

	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_dark_negotiation"})
	assert.Equal(t, 2, h.player("p1").Accum.Influence, "day branch")

	h.state().TimeOfDay = mana.Night
	h.player("p1").UsedRound = nil
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_dark_negotiation"})
	assert.Equal(t, 5, h.player("p1").Accum.Influence, "night branch adds 3")
}

func TestSweepModifiersReturnsRemoved(t *testing.T) {
	h := newHarness(t)
	st := h.state().Clone()
	st.AddModifier(ActiveModifier{Kind: ModTerrainCost, Amount: -1, Duration: DurationTurn})
	st.AddModifier(ActiveModifier{Kind: ModSidewaysBonus, Amount: 1, Duration: DurationRound})

	removed := st.SweepModifiers(DurationTurn)
	require.Len(t, removed, 1)
	assert.Equal(t, ModTerrainCost, removed[0].Kind)
	require.Len(t, st.ActiveModifiers, 1)
	assert.Equal(t, ModSidewaysBonus, st.ActiveModifiers[0].Kind)
}
