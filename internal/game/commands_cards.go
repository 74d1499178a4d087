package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// payMana commits a validated mana payment on a cloned state.
func payMana(st *GameState, p *Player, pay ManaPayment) (Event, error) {
	switch pay.Source {
	case PayFromCrystal:
		if !p.Mana.SpendCrystal(pay.Color) {
			return nil, fmt.Errorf("no %s crystal to spend", pay.Color)
		}
	case PayFromToken:
		if !p.Mana.SpendToken(pay.Color) {
			return nil, fmt.Errorf("no %s token to spend", pay.Color)
		}
	case PayFromDie:
		found := false
		for i := range st.Source {
			if st.Source[i].ID == pay.DieID {
				st.Source[i].Taken = true
				st.Source[i].TakenBy = p.ID
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("source die %s not found", pay.DieID)
		}
		p.DiceTaken = append(p.DiceTaken, pay.DieID)
	default:
		return nil, fmt.Errorf("unknown mana source %q", pay.Source)
	}
	return ManaPaidEvent{PlayerID: p.ID, Color: pay.Color, Source: pay.Source, DieID: pay.DieID}, nil
}

// effectContainsPoints reports whether an effect tree can grant any of the
// given point kinds.
func effectContainsPoints(eff content.Effect, kinds ...content.PointKind) bool {
	switch eff.Kind {
	case content.EffectSimple:
		for _, k := range kinds {
			if eff.Points == k {
				return true
			}
		}
		return false
	case content.EffectChoice, content.EffectCompound:
		for _, part := range eff.Parts {
			if effectContainsPoints(part, kinds...) {
				return true
			}
		}
		return false
	case content.EffectConditional:
		if eff.Then != nil && effectContainsPoints(*eff.Then, kinds...) {
			return true
		}
		return eff.Else != nil && effectContainsPoints(*eff.Else, kinds...)
	}
	return false
}

// consumeCardBonus applies and removes a matching one-shot card bonus for
// the effect about to resolve. Move bonuses boost move cards; combat bonuses
// boost attack/block cards.
func consumeCardBonus(st *GameState, playerID string, eff content.Effect) (content.Effect, []Event) {
	var events []Event
	if effectContainsPoints(eff, content.PointMove) {
		if m, ok := st.CardBonus(ModMoveCardBonus, playerID); ok {
			eff = boostEffect(eff, m.Amount)
			st.RemoveModifier(m.ID)
			events = append(events, ModifierConsumedEvent{ModifierID: m.ID, Kind: m.Kind})
			return eff, events
		}
	}
	if effectContainsPoints(eff, content.PointAttack, content.PointBlock) {
		if m, ok := st.CardBonus(ModCombatCardBonus, playerID); ok {
			eff = boostEffect(eff, m.Amount)
			st.RemoveModifier(m.ID)
			events = append(events, ModifierConsumedEvent{ModifierID: m.ID, Kind: m.Kind})
		}
	}
	return eff, events
}

// playCardCommand plays a card from hand for its basic or powered effect.
type playCardCommand struct {
	baseCommand
	cat     content.Catalog
	cardID  string
	powered bool
	payment *ManaPayment
}

func newPlayCardCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &playCardCommand{
		baseCommand: baseCommand{actionType: ActionPlayCard, playerID: playerID},
		cat:         cat,
		cardID:      act.CardID,
		powered:     act.Powered,
		payment:     act.Payment,
	}
}

func (c *playCardCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	card, ok := c.cat.Card(c.cardID)
	if !ok {
		return nil, nil, fmt.Errorf("card %s not in catalog", c.cardID)
	}
	if !p.RemoveFromHand(c.cardID) {
		return nil, nil, fmt.Errorf("card %s not in hand", c.cardID)
	}
	p.Discard = append(p.Discard, c.cardID)

	events := []Event{CardPlayedEvent{PlayerID: c.playerID, CardID: c.cardID, Powered: c.powered}}

	if c.powered || card.IsSpell() {
		if c.payment == nil {
			return nil, nil, fmt.Errorf("card %s requires a mana payment", c.cardID)
		}
		paid, err := payMana(next, p, *c.payment)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, paid)
	}

	eff := card.Basic
	if c.powered {
		eff = card.Powered
	}
	boosted, bonusEvents := consumeCardBonus(next, c.playerID, *eff)
	events = append(events, bonusEvents...)

	resolved, err := resolveEffect(next, c.cat, c.playerID, c.cardID, boosted)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, resolved...)
	return next, events, nil
}

// playSidewaysCommand plays any card face down for a flat point.
type playSidewaysCommand struct {
	baseCommand
	cat    content.Catalog
	cardID string
	as     content.PointKind
}

func newPlaySidewaysCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &playSidewaysCommand{
		baseCommand: baseCommand{actionType: ActionPlayCardSideways, playerID: playerID},
		cat:         cat,
		cardID:      act.CardID,
		as:          content.PointKind(act.Option),
	}
}

func (c *playSidewaysCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	if !p.RemoveFromHand(c.cardID) {
		return nil, nil, fmt.Errorf("card %s not in hand", c.cardID)
	}
	p.Discard = append(p.Discard, c.cardID)

	card, _ := c.cat.Card(c.cardID)
	base := card.SidewaysValue
	if base == 0 {
		base = 1
	}
	value := next.EffectiveSidewaysValue(c.playerID, base)

	switch c.as {
	case content.PointMove:
		p.Accum.Move += value
	case content.PointInfluence:
		p.Accum.Influence += value
	case content.PointAttack:
		p.Accum.AddAttack(content.CombatMelee, content.ElementPhysical, value)
	case content.PointBlock:
		p.Accum.AddBlock(content.ElementPhysical, value)
	default:
		return nil, nil, fmt.Errorf("sideways play cannot grant %q", c.as)
	}

	events := []Event{
		CardPlayedEvent{PlayerID: c.playerID, CardID: c.cardID, Sideways: true},
		PointsGainedEvent{PlayerID: c.playerID, Points: c.as, Amount: value},
	}
	return next, events, nil
}

// resolveChoiceCommand picks one option of a pending choice and resumes the
// suspended effect worklist.
type resolveChoiceCommand struct {
	baseCommand
	cat    content.Catalog
	option int
}

func newResolveChoiceCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &resolveChoiceCommand{
		baseCommand: baseCommand{actionType: ActionResolveChoice, playerID: playerID},
		cat:         cat,
		option:      act.OptionIndex,
	}
}

func (c *resolveChoiceCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	pending := p.Pending
	if pending == nil || pending.Kind != PendingChoiceKind {
		return nil, nil, fmt.Errorf("no pending choice for %s", c.playerID)
	}
	choice := pending.Choice
	p.Pending = nil

	events := []Event{ChoiceResolvedEvent{PlayerID: c.playerID, SourceID: choice.SourceID, Option: c.option}}
	work := append([]content.Effect{choice.Options[c.option]}, choice.Remaining...)
	resolved, err := resolveWorklist(next, c.cat, c.playerID, choice.SourceID, work)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, resolved...)
	return next, events, nil
}

// resolveDiscardCommand satisfies a pending forced discard.
type resolveDiscardCommand struct {
	baseCommand
	cardIDs []string
}

func newResolveDiscardCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &resolveDiscardCommand{
		baseCommand: baseCommand{actionType: ActionResolveDiscard, playerID: playerID},
		cardIDs:     append([]string(nil), act.CardIDs...),
	}
}

func (c *resolveDiscardCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	pending := p.Pending
	if pending == nil || pending.Kind != PendingDiscardKind {
		return nil, nil, fmt.Errorf("no pending discard for %s", c.playerID)
	}
	reason := pending.Discard.Reason
	p.Pending = nil

	var events []Event
	for _, id := range c.cardIDs {
		if !p.RemoveFromHand(id) {
			return nil, nil, fmt.Errorf("card %s not in hand", id)
		}
		p.Discard = append(p.Discard, id)
		events = append(events, CardDiscardedEvent{PlayerID: c.playerID, CardID: id, Reason: reason})
	}
	return next, events, nil
}

// resolveDiscardForBonusCommand resolves a discard-for-stronger-effect offer:
// either discard a card and resolve the boosted effect, or decline and
// resolve the base effect.
type resolveDiscardForBonusCommand struct {
	baseCommand
	cat     content.Catalog
	cardIDs []string
	decline bool
}

func newResolveDiscardForBonusCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &resolveDiscardForBonusCommand{
		baseCommand: baseCommand{actionType: ActionResolveDiscardForBonus, playerID: playerID},
		cat:         cat,
		cardIDs:     append([]string(nil), act.CardIDs...),
		decline:     act.Decline,
	}
}

func (c *resolveDiscardForBonusCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	pending := p.Pending
	if pending == nil || pending.Kind != PendingDiscardForBonusKind {
		return nil, nil, fmt.Errorf("no pending bonus discard for %s", c.playerID)
	}
	offer := pending.DiscardForBonus
	p.Pending = nil

	var events []Event
	eff := offer.Base
	if !c.decline {
		id := c.cardIDs[0]
		if !p.RemoveFromHand(id) {
			return nil, nil, fmt.Errorf("card %s not in hand", id)
		}
		p.Discard = append(p.Discard, id)
		events = append(events, CardDiscardedEvent{PlayerID: c.playerID, CardID: id, Reason: "bonus"})
		eff = boostEffect(eff, offer.Bonus)
	}
	resolved, err := resolveEffect(next, c.cat, c.playerID, offer.SourceID, eff)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, resolved...)
	return next, events, nil
}

// useSkillCommand activates a hero skill: marks its cooldown, resolves its
// effect tree and injects its modifier.
type useSkillCommand struct {
	baseCommand
	cat     content.Catalog
	skillID string
	enemyID string
	unitID  string
}

func newUseSkillCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &useSkillCommand{
		baseCommand: baseCommand{actionType: ActionUseSkill, playerID: playerID},
		cat:         cat,
		skillID:     act.SkillID,
		enemyID:     act.EnemyInstanceID,
		unitID:      act.UnitID,
	}
}

func (c *useSkillCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	def, ok := c.cat.Skill(c.skillID)
	if !ok {
		return nil, nil, fmt.Errorf("skill %s not in catalog", c.skillID)
	}

	switch def.Cooldown {
	case content.CooldownTurn:
		if p.UsedTurn == nil {
			p.UsedTurn = map[string]bool{}
		}
		p.UsedTurn[c.skillID] = true
	case content.CooldownRound:
		if p.UsedRound == nil {
			p.UsedRound = map[string]bool{}
		}
		p.UsedRound[c.skillID] = true
	case content.CooldownCombat:
		if p.UsedCombat == nil {
			p.UsedCombat = map[string]bool{}
		}
		p.UsedCombat[c.skillID] = true
	}

	events := []Event{SkillUsedEvent{PlayerID: c.playerID, SkillID: c.skillID}}

	if def.Modifier != nil {
		enemyScope := ""
		unitScope := ""
		playerScope := c.playerID
		if modifierTargetsEnemy(ModifierKind(def.Modifier.Kind)) {
			enemyScope = c.enemyID
			playerScope = ""
		}
		if modifierTargetsUnit(ModifierKind(def.Modifier.Kind)) {
			unitScope = c.unitID
		}
		mod := next.AddModifier(ModifierFromSpec(*def.Modifier,
			ModifierSource{Kind: "SKILL", ID: c.skillID, PlayerID: c.playerID},
			playerScope, enemyScope, unitScope))
		events = append(events, ModifierCreatedEvent{ModifierID: mod.ID, Kind: mod.Kind})
		if def.Cooldown == content.CooldownInteractive {
			if p.InteractiveTokens == nil {
				p.InteractiveTokens = map[string]string{}
			}
			p.InteractiveTokens[c.skillID] = mod.ID
		}
	}

	if def.Effect != nil {
		resolved, err := resolveEffect(next, c.cat, c.playerID, c.skillID, *def.Effect)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, resolved...)
	}
	return next, events, nil
}
