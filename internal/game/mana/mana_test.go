package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/game/random"
)

func TestCanPayBasicColor(t *testing.T) {
	accepted := []Color{ColorRed}

	assert.Equal(t, PayOK, CanPay(ColorRed, accepted, Day, false, false))
	assert.Equal(t, PayColorMismatch, CanPay(ColorBlue, accepted, Day, false, false))
}

func TestCanPayGoldGating(t *testing.T) {
	accepted := []Color{ColorGreen}

	// Gold is wild by day.
	assert.Equal(t, PayOK, CanPay(ColorGold, accepted, Day, false, false))
	// Gold is rejected at night.
	assert.Equal(t, PayGoldAtNight, CanPay(ColorGold, accepted, Night, false, false))
	// Dungeon night rules reject gold even during the day.
	assert.Equal(t, PayGoldAtNight, CanPay(ColorGold, accepted, Day, true, false))
}

func TestCanPayBlackGating(t *testing.T) {
	accepted := []Color{ColorBlue}

	// Black powers spells at night.
	assert.Equal(t, PayOK, CanPay(ColorBlack, accepted, Night, false, true))
	// Black is rejected during the day.
	assert.Equal(t, PayBlackAtDay, CanPay(ColorBlack, accepted, Day, false, true))
	// Dungeon night rules allow black during the day.
	assert.Equal(t, PayOK, CanPay(ColorBlack, accepted, Day, true, true))
	// Black never pays for ordinary action cards.
	assert.Equal(t, PayBlackOnAction, CanPay(ColorBlack, accepted, Night, false, false))
}

func TestInventoryCrystalCap(t *testing.T) {
	inv := NewInventory()

	for i := 0; i < CrystalCap; i++ {
		require.True(t, inv.AddCrystal(ColorRed))
	}
	assert.False(t, inv.AddCrystal(ColorRed), "fourth crystal exceeds cap")
	assert.Equal(t, CrystalCap, inv.CrystalCount(ColorRed))
}

func TestInventoryRejectsNonBasicCrystals(t *testing.T) {
	inv := NewInventory()

	assert.False(t, inv.AddCrystal(ColorGold))
	assert.False(t, inv.AddCrystal(ColorBlack))
}

func TestInventoryTokens(t *testing.T) {
	inv := NewInventory()
	inv.AddToken(ColorGreen)
	inv.AddToken(ColorGold)

	assert.True(t, inv.HasToken(ColorGreen))
	assert.True(t, inv.SpendToken(ColorGreen))
	assert.False(t, inv.SpendToken(ColorGreen), "token already spent")
	assert.True(t, inv.HasToken(ColorGold))

	inv.ClearTokens()
	assert.False(t, inv.HasToken(ColorGold))
}

func TestInventoryCloneIsDeep(t *testing.T) {
	inv := NewInventory()
	inv.AddCrystal(ColorBlue)
	inv.AddToken(ColorRed)

	clone := inv.Clone()
	clone.AddCrystal(ColorBlue)
	clone.ClearTokens()

	assert.Equal(t, 1, inv.CrystalCount(ColorBlue))
	assert.True(t, inv.HasToken(ColorRed))
}

func TestRollSourceDeterministic(t *testing.T) {
	a, streamA := RollSource(random.NewStream(11), 3)
	b, streamB := RollSource(random.NewStream(11), 3)

	assert.Equal(t, a, b)
	assert.Equal(t, streamA, streamB)
	require.Len(t, a, 3)
	assert.Equal(t, "die-1", a[0].ID)
	assert.Equal(t, "die-3", a[2].ID)
}

func TestRerollDie(t *testing.T) {
	dice, stream := RollSource(random.NewStream(3), 2)
	dice[0].Taken = true
	dice[0].TakenBy = "p1"

	rerolled, _, found := RerollDie(dice, "die-1", stream)
	require.True(t, found)
	assert.False(t, rerolled[0].Taken)
	assert.Empty(t, rerolled[0].TakenBy)
	// Original slice untouched.
	assert.True(t, dice[0].Taken)

	_, _, found = RerollDie(dice, "die-9", stream)
	assert.False(t, found)
}
