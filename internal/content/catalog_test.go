package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

func TestBuiltinCatalogLookups(t *testing.T) {
	cat := NewBuiltinCatalog()

	card, ok := cat.Card("card_march")
	require.True(t, ok)
	assert.Equal(t, "March", card.Name)
	assert.Equal(t, mana.ColorGreen, card.Color)
	require.NotNil(t, card.Basic)
	assert.Equal(t, PointMove, card.Basic.Points)

	enemy, ok := cat.Enemy("enemy_guardsmen")
	require.True(t, ok)
	assert.True(t, enemy.HasAbility(AbilityFortified))
	assert.Equal(t, 7, enemy.Armor)

	_, ok = cat.Card("card_nonexistent")
	assert.False(t, ok)
}

func TestEnemyIDsByPileStableOrder(t *testing.T) {
	cat := NewBuiltinCatalog()

	a := cat.EnemyIDsByPile("green")
	b := cat.EnemyIDsByPile("green")
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "enemy_orc_summoners")

	// Returned slice is a copy; mutating it must not corrupt the catalog.
	a[0] = "mutated"
	assert.NotEqual(t, a[0], cat.EnemyIDsByPile("green")[0])
}

func TestTacticIDsOrderedByNumber(t *testing.T) {
	cat := NewBuiltinCatalog()

	day := cat.TacticIDs("DAY")
	require.NotEmpty(t, day)
	for i := 1; i < len(day); i++ {
		prev, _ := cat.Tactic(day[i-1])
		cur, _ := cat.Tactic(day[i])
		assert.LessOrEqual(t, prev.Number, cur.Number)
	}
}

func TestLoadSetFileYAML(t *testing.T) {
	data := []byte(`
name: expansion
cards:
  - id: card_test
    name: Test Card
    type: ACTION
    color: RED
    basic:
      kind: SIMPLE
      points: MOVE
      amount: 2
    powered:
      kind: CHOICE
      parts:
        - kind: SIMPLE
          points: ATTACK
          amount: 3
          combatType: MELEE
          element: FIRE
        - kind: SIMPLE
          points: BLOCK
          amount: 3
          element: ICE
enemies:
  - id: enemy_test
    name: Test Enemy
    pile: green
    armor: 5
    fame: 3
    attacks:
      - value: 4
        element: FIRE
    abilities: [SWIFT]
    resistances: [FIRE]
`)
	set, err := LoadSetFile(data)
	require.NoError(t, err)
	assert.Equal(t, "expansion", set.Name)
	require.Len(t, set.Cards, 1)
	require.Len(t, set.Enemies, 1)

	card := set.Cards[0]
	assert.Equal(t, CardAction, card.Type)
	require.NotNil(t, card.Powered)
	require.Len(t, card.Powered.Parts, 2)
	assert.Equal(t, ElementFire, card.Powered.Parts[0].Element)

	enemy := set.Enemies[0]
	assert.True(t, enemy.HasAbility(AbilitySwift))
	assert.True(t, enemy.ResistantTo(ElementFire))
}

func TestLoadSetFileRejectsBadYAML(t *testing.T) {
	_, err := LoadSetFile([]byte("cards: {not: [valid"))
	assert.Error(t, err)
}

func TestCatalogOverride(t *testing.T) {
	base := BuiltinSet()
	override := SetFile{
		Name: "override",
		Cards: []CardDef{
			{ID: "card_march", Name: "March Revised", Type: CardAction, Color: mana.ColorGreen},
		},
	}
	cat := NewCatalog(base, override)

	card, ok := cat.Card("card_march")
	require.True(t, ok)
	assert.Equal(t, "March Revised", card.Name)
}

func TestBlockEfficiencyTable(t *testing.T) {
	cases := []struct {
		block, attack Element
		efficient     bool
	}{
		{ElementPhysical, ElementPhysical, true},
		{ElementFire, ElementPhysical, true},
		{ElementIce, ElementFire, true},
		{ElementFire, ElementFire, false},
		{ElementFire, ElementIce, true},
		{ElementIce, ElementIce, false},
		{ElementColdFire, ElementFire, true},
		{ElementColdFire, ElementIce, true},
		{ElementColdFire, ElementColdFire, true},
		{ElementPhysical, ElementColdFire, false},
		{ElementFire, ElementColdFire, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.efficient, BlockEfficient(tc.block, tc.attack),
			"block %s vs attack %s", tc.block, tc.attack)
	}
}

func TestAttackEfficiencyAgainstResistances(t *testing.T) {
	assert.False(t, AttackEfficient(ElementFire, []Element{ElementFire}))
	assert.True(t, AttackEfficient(ElementFire, []Element{ElementIce}))
	assert.True(t, AttackEfficient(ElementColdFire, []Element{ElementFire}))
	assert.False(t, AttackEfficient(ElementColdFire, []Element{ElementFire, ElementIce}))
	assert.True(t, AttackEfficient(ElementPhysical, nil))
	assert.False(t, AttackEfficient(ElementPhysical, []Element{ElementPhysical}))
}

func TestTerrainCost(t *testing.T) {
	cost, ok := TerrainCost(TerrainPlains, false)
	require.True(t, ok)
	assert.Equal(t, 2, cost)

	// Forest is more expensive at night.
	day, _ := TerrainCost(TerrainForest, false)
	night, _ := TerrainCost(TerrainForest, true)
	assert.Equal(t, 3, day)
	assert.Equal(t, 5, night)

	_, ok = TerrainCost(TerrainMountain, false)
	assert.False(t, ok, "mountains are impassable")
}

func TestLevelTables(t *testing.T) {
	assert.Equal(t, 1, LevelForFame(0))
	assert.Equal(t, 1, LevelForFame(2))
	assert.Equal(t, 2, LevelForFame(3))
	assert.Equal(t, 3, LevelForFame(8))

	assert.Equal(t, 2, ArmorForLevel(1))
	assert.Equal(t, 3, ArmorForLevel(3))
	assert.Equal(t, 4, ArmorForLevel(7))

	assert.Equal(t, 5, HandLimitForLevel(1))
	assert.Equal(t, 6, HandLimitForLevel(5))
	assert.Equal(t, 7, HandLimitForLevel(9))
}

func TestReputationBonus(t *testing.T) {
	assert.Equal(t, 0, ReputationBonus(0))
	assert.Equal(t, 1, ReputationBonus(2))
	assert.Equal(t, 2, ReputationBonus(3))
	assert.Equal(t, 5, ReputationBonus(7))
	assert.Equal(t, -1, ReputationBonus(-1))
	assert.Equal(t, -3, ReputationBonus(-5))
	assert.Less(t, ReputationBonus(-7), -100, "X space forbids interaction")
}
