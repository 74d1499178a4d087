package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// moveCommand spends accumulated move points to enter an adjacent hex.
type moveCommand struct {
	baseCommand
	to HexCoord
}

func newMoveCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &moveCommand{
		baseCommand: baseCommand{actionType: ActionMove, playerID: playerID},
		to:          *act.To,
	}
}

func (c *moveCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	hex, ok := next.HexAt(c.to)
	if !ok {
		return nil, nil, fmt.Errorf("no hex at %s", c.to.Key())
	}
	cost, passable := next.EffectiveTerrainCost(hex.Terrain, c.playerID)
	if !passable || p.Accum.Move < cost {
		return nil, nil, fmt.Errorf("cannot enter %s", c.to.Key())
	}
	from := p.Position
	p.Accum.Move -= cost
	p.Position = c.to

	events := []Event{MovedEvent{PlayerID: c.playerID, From: from, To: c.to, Cost: cost}}
	if hex.Site != SiteNone {
		events = append(events, SiteEnteredEvent{PlayerID: c.playerID, Site: hex.Site, Coord: c.to})
	}
	return next, events, nil
}

// interactCommand spends influence at the local site. Only healing is
// offered directly; recruiting goes through the recruit-unit action.
type interactCommand struct {
	baseCommand
	option string
}

func newInteractCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &interactCommand{
		baseCommand: baseCommand{actionType: ActionInteract, playerID: playerID},
		option:      act.Option,
	}
}

func (c *interactCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	hex, _ := next.HexAt(p.Position)
	switch c.option {
	case "heal":
		cost := 3
		if hex.Site == SiteMonastery {
			cost = 2
		}
		spend := cost - content.ReputationBonus(p.Reputation)
		if spend < 0 {
			spend = 0
		}
		if p.Accum.Influence < spend {
			return nil, nil, fmt.Errorf("not enough influence to heal")
		}
		p.Accum.Influence -= spend
		healed := healWounds(p, 1)
		events := []Event{
			InteractedEvent{PlayerID: c.playerID, Option: c.option, Influence: spend},
		}
		if healed > 0 {
			events = append(events, WoundsHealedEvent{PlayerID: c.playerID, Count: healed})
		}
		return next, events, nil
	}
	return nil, nil, fmt.Errorf("unknown interaction %q", c.option)
}

// restCommand discards the named cards as a slow turn of recovery.
type restCommand struct {
	baseCommand
	cardIDs []string
}

func newRestCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &restCommand{
		baseCommand: baseCommand{actionType: ActionRest, playerID: playerID},
		cardIDs:     append([]string(nil), act.CardIDs...),
	}
}

func (c *restCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	var events []Event
	for _, id := range c.cardIDs {
		if !p.RemoveFromHand(id) {
			return nil, nil, fmt.Errorf("card %s not in hand", id)
		}
		p.Discard = append(p.Discard, id)
		events = append(events, CardDiscardedEvent{PlayerID: c.playerID, CardID: id, Reason: "rest"})
	}
	events = append(events, RestedEvent{PlayerID: c.playerID, Discarded: len(c.cardIDs)})
	return next, events, nil
}

// recruitUnitCommand hires a unit from the shared offer for influence.
type recruitUnitCommand struct {
	baseCommand
	cat    content.Catalog
	unitID string
}

func newRecruitUnitCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &recruitUnitCommand{
		baseCommand: baseCommand{actionType: ActionRecruitUnit, playerID: playerID},
		cat:         cat,
		unitID:      act.UnitID,
	}
}

func (c *recruitUnitCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	def, ok := c.cat.Unit(c.unitID)
	if !ok {
		return nil, nil, fmt.Errorf("unit %s not in catalog", c.unitID)
	}
	spend := def.Cost - content.ReputationBonus(p.Reputation)
	if spend < 0 {
		spend = 0
	}
	if p.Accum.Influence < spend {
		return nil, nil, fmt.Errorf("not enough influence for %s", c.unitID)
	}
	removed := false
	for i, id := range next.UnitOffer {
		if id == c.unitID {
			next.UnitOffer = append(next.UnitOffer[:i:i], next.UnitOffer[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return nil, nil, fmt.Errorf("unit %s not in offer", c.unitID)
	}
	p.Accum.Influence -= spend
	unit := &Unit{
		InstanceID: next.NewInstanceID("unit"),
		DefID:      c.unitID,
		Ready:      true,
	}
	p.Units = append(p.Units, unit)

	events := []Event{UnitRecruitedEvent{
		PlayerID:       c.playerID,
		UnitID:         c.unitID,
		UnitInstanceID: unit.InstanceID,
		Influence:      spend,
	}}
	return next, events, nil
}

// activateUnitCommand spends a ready unit for its ability.
type activateUnitCommand struct {
	baseCommand
	cat    content.Catalog
	unitID string
}

func newActivateUnitCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &activateUnitCommand{
		baseCommand: baseCommand{actionType: ActionActivateUnit, playerID: playerID},
		cat:         cat,
		unitID:      act.UnitID,
	}
}

func (c *activateUnitCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	unit, ok := p.FindUnit(c.unitID)
	if !ok {
		return nil, nil, fmt.Errorf("unit %s not in roster", c.unitID)
	}
	def, ok := c.cat.Unit(unit.DefID)
	if !ok || def.Ability == nil {
		return nil, nil, fmt.Errorf("unit %s has no activation", c.unitID)
	}
	unit.Ready = false

	events := []Event{UnitActivatedEvent{PlayerID: c.playerID, UnitInstanceID: c.unitID}}
	resolved, err := resolveEffect(next, c.cat, c.playerID, unit.DefID, *def.Ability)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, resolved...)
	return next, events, nil
}
