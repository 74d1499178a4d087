package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

func TestPlayCardBasic(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")

	events := h.do("p1", Action{Type: ActionPlayCard, CardID: "card_march"})

	assert.Equal(t, 2, h.player("p1").Accum.Move)
	assert.True(t, hasEvent(events, EventCardPlayed))
	assert.Contains(t, h.player("p1").Discard, "card_march")
}

func TestPlayCardPoweredWithToken(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.player("p1").Mana.AddToken(mana.ColorGreen)

	events := h.do("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromToken, Color: mana.ColorGreen},
	})

	assert.Equal(t, 4, h.player("p1").Accum.Move)
	assert.True(t, hasEvent(events, EventManaPaid))
	assert.False(t, h.player("p1").Mana.HasToken(mana.ColorGreen))
}

func TestPlayCardPoweredWithoutPaymentRejected(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.expectInvalid("p1", Action{Type: ActionPlayCard, CardID: "card_march", Powered: true}, CodeManaRequired)
}

func TestPlayCardPoweredFromSourceDie(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.state().Source[0].Color = mana.ColorGreen
	dieID := h.state().Source[0].ID

	h.do("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromDie, Color: mana.ColorGreen, DieID: dieID},
	})

	die, ok := mana.FindDie(h.state().Source, dieID)
	require.True(t, ok)
	assert.True(t, die.Taken)
	assert.Equal(t, "p1", die.TakenBy)
	assert.Equal(t, []string{dieID}, h.player("p1").DiceTaken)

	// The same die cannot fund a second play this turn.
	h.giveCard("p1", "card_march")
	h.expectInvalid("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromDie, Color: mana.ColorGreen, DieID: dieID},
	}, CodeDieTaken)
}

func TestDieColorMismatchRejected(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.state().Source[0].Color = mana.ColorRed
	dieID := h.state().Source[0].ID

	h.expectInvalid("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromDie, Color: mana.ColorGreen, DieID: dieID},
	}, CodeDieColorMismatch)
}

func TestGoldManaInertAtNight(t *testing.T) {
	h := newHarness(t)
	h.state().TimeOfDay = mana.Night
	h.giveCard("p1", "card_march")
	h.player("p1").Mana.AddToken(mana.ColorGold)

	h.expectInvalid("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromToken, Color: mana.ColorGold},
	}, CodeGoldManaAtNight)
}

func TestGoldManaIsWildByDay(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.player("p1").Mana.AddToken(mana.ColorGold)

	h.do("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromToken, Color: mana.ColorGold},
	})
	assert.Equal(t, 4, h.player("p1").Accum.Move)
}

func TestBlackManaGating(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.giveCard("p1", "card_fireball")
	h.player("p1").Mana.AddToken(mana.ColorBlack)
	h.player("p1").Mana.AddToken(mana.ColorBlack)
	h.startCombat("p1", "enemy_prowlers")

	// Black never powers action cards, day or night.
	h.expectInvalid("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_march",
		Powered: true,
		Payment: &ManaPayment{Source: PayFromToken, Color: mana.ColorBlack},
	}, CodeBlackManaOnAction)

	// Spells refuse black by day...
	h.expectInvalid("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_fireball",
		Payment: &ManaPayment{Source: PayFromToken, Color: mana.ColorBlack},
	}, CodeBlackManaByDay)

	// ...and accept it at night.
	h.state().TimeOfDay = mana.Night
	events := h.do("p1", Action{
		Type:    ActionPlayCard,
		CardID:  "card_fireball",
		Payment: &ManaPayment{Source: PayFromToken, Color: mana.ColorBlack},
	})
	assert.True(t, hasEvent(events, EventManaPaid))
}

func TestSpellBasicPlayStillCostsMana(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_fireball")
	h.startCombat("p1", "enemy_prowlers")
	h.expectInvalid("p1", Action{Type: ActionPlayCard, CardID: "card_fireball"}, CodeManaRequired)
}

func TestWoundCardIsNotPlayable(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", WoundCardID)
	h.expectInvalid("p1", Action{Type: ActionPlayCard, CardID: WoundCardID}, CodeWoundNotPlayable)
}

func TestChoiceSuspendsWithMultipleOptions(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_tranquility")
	h.giveCard("p1", WoundCardID)

	// Heal and draw are both live, so the play suspends.
	events := h.do("p1", Action{Type: ActionPlayCard, CardID: "card_tranquility"})
	choice, ok := findEvent[ChoiceRequiredEvent](events)
	require.True(t, ok)
	assert.Equal(t, 2, choice.Options)
	require.NotNil(t, h.player("p1").Pending)
	assert.Equal(t, PendingChoiceKind, h.player("p1").Pending.Kind)

	woundsBefore := h.player("p1").WoundsInHand()
	resolved := h.do("p1", Action{Type: ActionResolveChoice, OptionIndex: 0})
	assert.True(t, hasEvent(resolved, EventWoundsHealed))
	assert.Equal(t, woundsBefore-1, h.player("p1").WoundsInHand())
	assert.Nil(t, h.player("p1").Pending)
}

func TestChoiceAutoResolvesSingleOption(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_tranquility")

	// No wounds anywhere: healing is filtered out, drawing auto-resolves.
	deckBefore := len(h.player("p1").Deck)
	events := h.do("p1", Action{Type: ActionPlayCard, CardID: "card_tranquility"})
	assert.False(t, hasEvent(events, EventChoiceRequired))
	assert.True(t, hasEvent(events, EventCardsDrawn))
	assert.Equal(t, deckBefore-1, len(h.player("p1").Deck))
	assert.Nil(t, h.player("p1").Pending)
}

func TestChoiceWithNoLiveOptionsIsRejected(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_tranquility")
	h.player("p1").Deck = nil

	// Nothing to heal and nothing to draw: the card can do nothing, so the
	// play is rejected up front rather than wasted.
	h.expectInvalid("p1", Action{Type: ActionPlayCard, CardID: "card_tranquility"}, CodeEffectNotResolvable)
}

func TestChoiceOptionIndexOutOfRange(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_tranquility")
	h.giveCard("p1", WoundCardID)
	h.do("p1", Action{Type: ActionPlayCard, CardID: "card_tranquility"})

	h.expectInvalid("p1", Action{Type: ActionResolveChoice, OptionIndex: 5}, CodeChoiceOutOfRange)
	h.expectInvalid("p1", Action{Type: ActionResolveChoice, OptionIndex: -1}, CodeChoiceOutOfRange)
}

func TestCrystalGainCapOverflowsToToken(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_crystallize")
	p := h.player("p1")
	p.Mana.Crystals[mana.ColorRed] = mana.CrystalCap

	h.do("p1", Action{Type: ActionPlayCard, CardID: "card_crystallize"})
	require.NotNil(t, h.player("p1").Pending)

	events := h.do("p1", Action{Type: ActionResolveChoice, OptionIndex: 0}) // red
	gained, ok := findEvent[CrystalGainedEvent](events)
	require.True(t, ok)
	assert.True(t, gained.AsToken)
	assert.Equal(t, mana.CrystalCap, h.player("p1").Mana.CrystalCount(mana.ColorRed))
	assert.True(t, h.player("p1").Mana.HasToken(mana.ColorRed))
}

func TestDiscardForBonusBoostsEffect(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")
	h.player("p1").Pending = &Pending{
		Kind: PendingDiscardForBonusKind,
		DiscardForBonus: &PendingDiscardForBonus{
			SourceID: "card_test_source",
			Base:     *content.Simple(content.PointMove, 2),
			Bonus:    2,
		},
	}

	events := h.do("p1", Action{Type: ActionResolveDiscardForBonus, CardIDs: []string{"card_march"}})
	assert.True(t, hasEvent(events, EventCardDiscarded))
	assert.Equal(t, 4, h.player("p1").Accum.Move)
	assert.Contains(t, h.player("p1").Discard, "card_march")
}

func TestDiscardForBonusDeclined(t *testing.T) {
	h := newHarness(t)
	h.player("p1").Pending = &Pending{
		Kind: PendingDiscardForBonusKind,
		DiscardForBonus: &PendingDiscardForBonus{
			SourceID: "card_test_source",
			Base:     *content.Simple(content.PointMove, 2),
			Bonus:    2,
		},
	}

	events := h.do("p1", Action{Type: ActionResolveDiscardForBonus, Decline: true})
	assert.False(t, hasEvent(events, EventCardDiscarded))
	assert.Equal(t, 2, h.player("p1").Accum.Move)
}

func TestPlaySidewaysForMove(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_rage")

	h.do("p1", Action{Type: ActionPlayCardSideways, CardID: "card_rage", Option: string(content.PointMove)})
	assert.Equal(t, 1, h.player("p1").Accum.Move)
	assert.Contains(t, h.player("p1").Discard, "card_rage")
}

func TestSidewaysBonusModifier(t *testing.T) {
	h := newHarness(t)
	h.giveSkill("p1", "skill_improvisation")
	h.giveCard("p1", "card_rage")

	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_improvisation"})
	h.do("p1", Action{Type: ActionPlayCardSideways, CardID: "card_rage", Option: string(content.PointMove)})
	assert.Equal(t, 2, h.player("p1").Accum.Move)
}

func TestWoundsSidewaysRule(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", WoundCardID)

	h.expectInvalid("p1", Action{
		Type: ActionPlayCardSideways, CardID: WoundCardID, Option: string(content.PointMove),
	}, CodeWoundNotPlayable)

	h.giveSkill("p1", "skill_power_of_pain")
	h.do("p1", Action{Type: ActionUseSkill, SkillID: "skill_power_of_pain"})

	h.do("p1", Action{Type: ActionPlayCardSideways, CardID: WoundCardID, Option: string(content.PointMove)})
	assert.Equal(t, 1, h.player("p1").Accum.Move)
}

func TestSidewaysContextGating(t *testing.T) {
	h := newHarness(t)
	h.giveCard("p1", "card_march")

	// Attack needs the attack phase, which needs a combat.
	h.expectInvalid("p1", Action{
		Type: ActionPlayCardSideways, CardID: "card_march", Option: string(content.PointAttack),
	}, CodeCardWrongContext)

	h.startCombat("p1", "enemy_prowlers")
	// Move is meaningless during combat.
	h.expectInvalid("p1", Action{
		Type: ActionPlayCardSideways, CardID: "card_march", Option: string(content.PointMove),
	}, CodeCardWrongContext)

	h.do("p1", Action{Type: ActionDebugSetPhase, Phase: PhaseAttack})
	h.do("p1", Action{Type: ActionPlayCardSideways, CardID: "card_march", Option: string(content.PointAttack)})
	assert.Equal(t, 1, h.player("p1").Accum.TotalAttack())
}

func TestCardNotInHandRejected(t *testing.T) {
	h := newHarness(t)
	h.expectInvalid("p1", Action{Type: ActionPlayCard, CardID: "card_fireball"}, CodeCardNotInHand)
}

func TestMoveCardBonusConsumedOnce(t *testing.T) {
	h := newHarness(t)
	h.state().AddModifier(ActiveModifier{
		Kind:        ModMoveCardBonus,
		Amount:      2,
		Duration:    DurationTurn,
		PlayerScope: "p1",
		Source:      ModifierSource{Kind: "CARD", ID: "card_test_source", PlayerID: "p1"},
	})
	h.giveCard("p1", "card_march")
	h.giveCard("p1", "card_march")

	events := h.do("p1", Action{Type: ActionPlayCard, CardID: "card_march"})
	assert.True(t, hasEvent(events, EventModifierConsumed))
	assert.Equal(t, 4, h.player("p1").Accum.Move)

	// One-shot: the second play is back to the printed value.
	h.do("p1", Action{Type: ActionPlayCard, CardID: "card_march"})
	assert.Equal(t, 6, h.player("p1").Accum.Move)
}
