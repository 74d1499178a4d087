package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// resolveEffect interprets one effect tree for a player, mutating the given
// (already cloned) state. Resolution walks an explicit worklist instead of
// recursing so that a choice can suspend: the not-yet-resolved tail is parked
// on the player's pending slot and resumed by the resolve-choice command.
func resolveEffect(st *GameState, cat content.Catalog, playerID, sourceID string, eff content.Effect) ([]Event, error) {
	return resolveWorklist(st, cat, playerID, sourceID, []content.Effect{eff})
}

func resolveWorklist(st *GameState, cat content.Catalog, playerID, sourceID string, work []content.Effect) ([]Event, error) {
	p, err := st.Player(playerID)
	if err != nil {
		return nil, err
	}
	var events []Event
	for len(work) > 0 {
		eff := work[0]
		work = work[1:]

		switch eff.Kind {
		case content.EffectSimple:
			evs, err := applySimple(st, p, eff)
			if err != nil {
				return nil, err
			}
			events = append(events, evs...)

		case content.EffectCompound:
			work = append(append([]content.Effect(nil), eff.Parts...), work...)

		case content.EffectConditional:
			branch := eff.Then
			if !conditionHolds(st, eff.Cond) {
				branch = eff.Else
			}
			if branch != nil {
				work = append([]content.Effect{*branch}, work...)
			}

		case content.EffectChoice:
			options := resolvableOptions(st, p, eff.Parts)
			switch len(options) {
			case 0:
				events = append(events, EffectNoOpEvent{PlayerID: playerID, SourceID: sourceID})
			case 1:
				work = append([]content.Effect{options[0]}, work...)
			default:
				p.Pending = &Pending{
					Kind: PendingChoiceKind,
					Choice: &PendingChoice{
						SourceID:  sourceID,
						Options:   options,
						Remaining: work,
					},
				}
				events = append(events, ChoiceRequiredEvent{
					PlayerID: playerID,
					SourceID: sourceID,
					Options:  len(options),
				})
				return events, nil
			}

		default:
			return nil, fmt.Errorf("unknown effect kind %q", eff.Kind)
		}
	}
	return events, nil
}

// conditionHolds evaluates a conditional effect predicate.
func conditionHolds(st *GameState, cond content.ConditionID) bool {
	switch cond {
	case content.CondIsDay:
		return st.TimeOfDay == mana.Day
	case content.CondIsNight:
		return st.TimeOfDay == mana.Night
	case content.CondInCombat:
		return st.Combat != nil
	}
	return false
}

// resolvableOptions filters a choice down to the options that would do
// something in the current context.
func resolvableOptions(st *GameState, p *Player, parts []content.Effect) []content.Effect {
	var out []content.Effect
	for _, part := range parts {
		if effectResolvable(st, p, part) {
			out = append(out, part)
		}
	}
	return out
}

// effectResolvable reports whether an effect can do anything right now.
// Attack and block points only exist inside combat (and only in phases that
// can spend them); healing is impossible with nothing wounded and forbidden
// during combat; drawing needs a deck.
func effectResolvable(st *GameState, p *Player, eff content.Effect) bool {
	switch eff.Kind {
	case content.EffectSimple:
		switch eff.Points {
		case content.PointAttack:
			if st.Combat == nil {
				return false
			}
			ct := eff.CombatType
			if ct == "" {
				ct = content.CombatMelee
			}
			return st.Combat.Phase == PhaseAttack ||
				(st.Combat.Phase == PhaseRangedSiege && ct != content.CombatMelee)
		case content.PointBlock:
			return st.Combat != nil && st.Combat.Phase == PhaseBlock
		case content.PointMove:
			return st.Combat == nil
		case content.PointInfluence:
			return st.Combat == nil
		case content.PointHeal:
			if st.Combat != nil {
				return false
			}
			if p.WoundsInHand() > 0 {
				return true
			}
			for _, u := range p.Units {
				if u.Wounded {
					return true
				}
			}
			return false
		case content.PointDraw:
			return len(p.Deck) > 0
		case content.PointCrystal:
			return true
		}
		return false
	case content.EffectChoice, content.EffectCompound:
		for _, part := range eff.Parts {
			if effectResolvable(st, p, part) {
				return true
			}
		}
		return false
	case content.EffectConditional:
		branch := eff.Then
		if !conditionHolds(st, eff.Cond) {
			branch = eff.Else
		}
		return branch != nil && effectResolvable(st, p, *branch)
	}
	return false
}

// applySimple commits one simple effect to the player.
func applySimple(st *GameState, p *Player, eff content.Effect) ([]Event, error) {
	var events []Event
	switch eff.Points {
	case content.PointMove:
		p.Accum.Move += eff.Amount
	case content.PointInfluence:
		p.Accum.Influence += eff.Amount
	case content.PointAttack:
		ct := eff.CombatType
		if ct == "" {
			ct = content.CombatMelee
		}
		el := eff.Element
		if el == "" {
			el = content.ElementPhysical
		}
		p.Accum.AddAttack(ct, el, eff.Amount)
	case content.PointBlock:
		el := eff.Element
		if el == "" {
			el = content.ElementPhysical
		}
		p.Accum.AddBlock(el, eff.Amount)
	case content.PointHeal:
		healed := healWounds(p, eff.Amount)
		if healed > 0 {
			events = append(events, WoundsHealedEvent{PlayerID: p.ID, Count: healed})
		}
		return events, nil
	case content.PointDraw:
		drawn := drawCards(p, eff.Amount)
		if drawn > 0 {
			events = append(events, CardsDrawnEvent{PlayerID: p.ID, Count: drawn})
		}
		return events, nil
	case content.PointCrystal:
		color := eff.Color
		if !mana.IsBasic(color) {
			return nil, fmt.Errorf("crystal effect with non-basic color %q", color)
		}
		asToken := false
		if !p.Mana.AddCrystal(color) {
			// Crystal cap reached: the gain becomes a turn token.
			p.Mana.AddToken(color)
			asToken = true
		}
		events = append(events, CrystalGainedEvent{PlayerID: p.ID, Color: color, AsToken: asToken})
		return events, nil
	default:
		return nil, fmt.Errorf("unknown point kind %q", eff.Points)
	}
	events = append(events, PointsGainedEvent{
		PlayerID:   p.ID,
		Points:     eff.Points,
		Amount:     eff.Amount,
		Element:    eff.Element,
		CombatType: eff.CombatType,
	})
	return events, nil
}

// healWounds removes up to n wound cards from hand, then heals wounded
// units. Returns the number actually healed; excess healing is lost.
func healWounds(p *Player, n int) int {
	healed := 0
	for healed < n && p.RemoveFromHand(WoundCardID) {
		healed++
	}
	for _, u := range p.Units {
		if healed >= n {
			break
		}
		if u.Wounded {
			u.Wounded = false
			healed++
		}
	}
	return healed
}

// drawCards moves up to n cards from deck to hand.
func drawCards(p *Player, n int) int {
	drawn := 0
	for drawn < n && len(p.Deck) > 0 {
		p.Hand = append(p.Hand, p.Deck[0])
		p.Deck = p.Deck[1:]
		drawn++
	}
	return drawn
}

// boostEffect raises move, influence, attack and block amounts in an effect
// tree by bonus. Other point kinds are deliberately untouched: a discard
// bonus never multiplies healing, draws or crystals.
func boostEffect(eff content.Effect, bonus int) content.Effect {
	switch eff.Kind {
	case content.EffectSimple:
		switch eff.Points {
		case content.PointMove, content.PointInfluence, content.PointAttack, content.PointBlock:
			eff.Amount += bonus
		}
		return eff
	case content.EffectChoice, content.EffectCompound:
		parts := make([]content.Effect, len(eff.Parts))
		for i, part := range eff.Parts {
			parts[i] = boostEffect(part, bonus)
		}
		eff.Parts = parts
		return eff
	case content.EffectConditional:
		if eff.Then != nil {
			then := boostEffect(*eff.Then, bonus)
			eff.Then = &then
		}
		if eff.Else != nil {
			els := boostEffect(*eff.Else, bonus)
			eff.Else = &els
		}
		return eff
	}
	return eff
}
