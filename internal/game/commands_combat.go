package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// startCombat builds the combat state for a set of enemy definitions at the
// player's hex, drawing summon tokens for summoners. Allies join the
// initiator as cooperative participants. Mutates the cloned state (RNG,
// instance counter) and returns the start events.
func startCombat(st *GameState, cat content.Catalog, playerID string, allies []string, defIDs []string, hex *Hex) ([]Event, error) {
	combat := &CombatState{
		Phase:        PhaseRangedSiege,
		PlayerID:     playerID,
		Participants: append([]string{playerID}, allies...),
		Site:         hex.Site,
		SiteCoord:    hex.Coord,
		Fortified:    fortifiedSites[hex.Site],
		UnitsAllowed: !noUnitSites[hex.Site],
		NightRules:   nightRuleSites[hex.Site],
	}

	var events []Event
	var instanceIDs []string
	for _, defID := range defIDs {
		def, ok := cat.Enemy(defID)
		if !ok {
			return nil, fmt.Errorf("enemy %s not in catalog", defID)
		}
		e := &EnemyInstance{
			InstanceID: st.NewInstanceID("enemy"),
			DefID:      defID,
		}
		if def.HasAbility(content.AbilitySummon) {
			pile := cat.EnemyIDsByPile("brown")
			if len(pile) > 0 {
				var idx int
				idx, st.RNG = st.RNG.Draw(len(pile))
				e.SummonedTokenID = pile[idx]
				e.SummonerHidden = true
				events = append(events, EnemySummonedEvent{
					SummonerInstanceID: e.InstanceID,
					TokenID:            e.SummonedTokenID,
				})
			}
		}
		active, _ := activeEnemyDef(cat, e)
		e.AttacksBlocked = make([]bool, len(active.Attacks))
		e.DamageResolved = make([]bool, len(active.Attacks))
		combat.Enemies = append(combat.Enemies, e)
		instanceIDs = append(instanceIDs, e.InstanceID)
	}
	st.Combat = combat

	started := []Event{CombatStartedEvent{
		PlayerID:     playerID,
		Participants: combat.Participants,
		Enemies:      instanceIDs,
		Site:         hex.Site,
	}}
	return append(started, events...), nil
}

// enterCombatCommand starts combat against the revealed enemies on the
// player's hex. Summon draws make it an undo barrier.
type enterCombatCommand struct {
	baseCommand
	cat    content.Catalog
	allies []string
}

func newEnterCombatCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &enterCombatCommand{
		baseCommand: baseCommand{actionType: ActionEnterCombat, playerID: playerID, irreversible: true},
		cat:         cat,
		allies:      act.Allies,
	}
}

func (c *enterCombatCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	hex, ok := next.HexAt(p.Position)
	if !ok || len(hex.EnemyIDs) == 0 {
		return nil, nil, fmt.Errorf("no enemies at %s", p.Position.Key())
	}
	events, err := startCombat(next, c.cat, c.playerID, c.allies, hex.EnemyIDs, hex)
	if err != nil {
		return nil, nil, err
	}
	return next, events, nil
}

// enterSiteCommand enters an adventure site. Dungeons and tombs draw their
// defender from the brown pile; other sites fight their placed garrison.
type enterSiteCommand struct {
	baseCommand
	cat content.Catalog
}

func newEnterSiteCommand(_ *GameState, cat content.Catalog, playerID string, _ Action) Command {
	return &enterSiteCommand{
		baseCommand: baseCommand{actionType: ActionEnterSite, playerID: playerID, irreversible: true},
		cat:         cat,
	}
}

func (c *enterSiteCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	hex, ok := next.HexAt(p.Position)
	if !ok || hex.Site == SiteNone {
		return nil, nil, fmt.Errorf("no site at %s", p.Position.Key())
	}

	defIDs := hex.EnemyIDs
	if nightRuleSites[hex.Site] && len(defIDs) == 0 {
		pile := c.cat.EnemyIDsByPile("brown")
		if len(pile) == 0 {
			return nil, nil, fmt.Errorf("no defenders available for %s", hex.Site)
		}
		var idx int
		idx, next.RNG = next.RNG.Draw(len(pile))
		defIDs = []string{pile[idx]}
	}
	if len(defIDs) == 0 {
		return nil, nil, fmt.Errorf("nothing to fight at %s", hex.Site)
	}

	events := []Event{SiteEnteredEvent{PlayerID: c.playerID, Site: hex.Site, Coord: hex.Coord}}
	started, err := startCombat(next, c.cat, c.playerID, nil, defIDs, hex)
	if err != nil {
		return nil, nil, err
	}
	return next, append(events, started...), nil
}

// declareBlockCommand spends all accumulated block against one enemy attack.
// Success marks the attack blocked; an insufficient total is still spent.
type declareBlockCommand struct {
	baseCommand
	cat         content.Catalog
	enemyID     string
	attackIndex int
}

func newDeclareBlockCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &declareBlockCommand{
		baseCommand: baseCommand{actionType: ActionDeclareBlock, playerID: playerID},
		cat:         cat,
		enemyID:     act.EnemyInstanceID,
		attackIndex: act.AttackIndex,
	}
}

func (c *declareBlockCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	enemy, ok := next.Combat.FindEnemy(c.enemyID)
	if !ok {
		return nil, nil, fmt.Errorf("enemy %s not in combat", c.enemyID)
	}
	def, ok := activeEnemyDef(c.cat, enemy)
	if !ok || c.attackIndex >= len(def.Attacks) {
		return nil, nil, fmt.Errorf("enemy %s has no attack %d", c.enemyID, c.attackIndex)
	}
	attack := def.Attacks[c.attackIndex]

	required := requiredBlock(next, c.cat, enemy, attack)
	block := effectiveBlock(p.Accum, attack.Element)
	p.Accum.Block = nil // declared block is spent either way

	if block >= required {
		enemy.AttacksBlocked[c.attackIndex] = true
		return next, []Event{EnemyBlockedEvent{
			EnemyInstanceID: c.enemyID,
			AttackIndex:     c.attackIndex,
			BlockValue:      block,
			Required:        required,
		}}, nil
	}
	return next, []Event{BlockFailedEvent{
		EnemyInstanceID: c.enemyID,
		AttackIndex:     c.attackIndex,
		BlockValue:      block,
		Required:        required,
	}}, nil
}

// declareAttackCommand spends all accumulated attack against a target group.
// All-or-nothing: either the total meets the combined armor and every target
// falls, or nothing happens and nothing is spent.
type declareAttackCommand struct {
	baseCommand
	cat     content.Catalog
	targets []string
}

func newDeclareAttackCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &declareAttackCommand{
		baseCommand: baseCommand{actionType: ActionDeclareAttack, playerID: playerID},
		cat:         cat,
		targets:     append([]string(nil), act.Targets...),
	}
}

func (c *declareAttackCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	combat := next.Combat
	var targets []*EnemyInstance
	required := 0
	for _, id := range c.targets {
		enemy, ok := combat.FindEnemy(id)
		if !ok || enemy.Defeated {
			return nil, nil, fmt.Errorf("enemy %s cannot be targeted", id)
		}
		def, ok := c.cat.Enemy(enemy.DefID)
		if !ok {
			return nil, nil, fmt.Errorf("enemy %s not in catalog", enemy.DefID)
		}
		targets = append(targets, enemy)
		required += def.Armor
	}

	fortified := combat.Fortified || targetsFortified(next, c.cat, targets)
	resistances := combinedResistances(c.cat, targets)
	total := effectiveAttack(p.Accum, combat.Phase, fortified, resistances)

	if total < required {
		return next, []Event{AttackFailedEvent{
			Targets:     c.targets,
			AttackValue: total,
			Required:    required,
		}}, nil
	}

	p.Accum.Attack = nil // a successful attack spends everything
	var events []Event
	for _, enemy := range targets {
		enemy.Defeated = true
		def, _ := c.cat.Enemy(enemy.DefID)
		events = append(events, EnemyDefeatedEvent{
			EnemyInstanceID: enemy.InstanceID,
			EnemyID:         enemy.DefID,
			Fame:            def.Fame,
		})
		events = append(events, grantFame(p, def.Fame)...)
	}
	return next, events, nil
}

// grantFame adds fame and reports any level crossings. Reward selection is
// deferred to end of turn.
func grantFame(p *Player, amount int) []Event {
	if amount <= 0 {
		return nil
	}
	before := p.Level()
	p.Fame += amount
	events := []Event{FameGainedEvent{PlayerID: p.ID, Amount: amount, Total: p.Fame}}
	after := p.Level()
	for lvl := before + 1; lvl <= after; lvl++ {
		p.LevelUpsOwed++
		events = append(events, LevelUpEvent{PlayerID: p.ID, Level: lvl})
	}
	return events
}

// assignDamageCommand resolves one unblocked enemy attack against the hero
// or a unit, converting damage to wounds.
type assignDamageCommand struct {
	baseCommand
	cat         content.Catalog
	enemyID     string
	attackIndex int
	target      string
}

func newAssignDamageCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &assignDamageCommand{
		baseCommand: baseCommand{actionType: ActionAssignDamage, playerID: playerID},
		cat:         cat,
		enemyID:     act.EnemyInstanceID,
		attackIndex: act.AttackIndex,
		target:      act.DamageTarget,
	}
}

func (c *assignDamageCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	enemy, ok := next.Combat.FindEnemy(c.enemyID)
	if !ok {
		return nil, nil, fmt.Errorf("enemy %s not in combat", c.enemyID)
	}
	def, ok := activeEnemyDef(c.cat, enemy)
	if !ok || c.attackIndex >= len(def.Attacks) {
		return nil, nil, fmt.Errorf("enemy %s has no attack %d", c.enemyID, c.attackIndex)
	}

	var events []Event
	if mod, skipped := next.SkipsAttack(c.enemyID); skipped {
		enemy.DamageResolved[c.attackIndex] = true
		events = append(events, AttackSkippedEvent{EnemyInstanceID: c.enemyID, ModifierID: mod.ID})
		return next, events, nil
	}

	damage := attackDamage(next, c.cat, enemy, def.Attacks[c.attackIndex])
	poison := enemyHasAbility(next, c.cat, enemy, content.AbilityPoison)
	enemy.DamageResolved[c.attackIndex] = true

	if c.target == DamageTargetHero {
		events = append(events, damageHero(p, c.enemyID, c.attackIndex, damage, poison)...)
		return next, events, nil
	}

	unit, ok := p.FindUnit(c.target)
	if !ok {
		return nil, nil, fmt.Errorf("unit %s not in roster", c.target)
	}
	udef, ok := c.cat.Unit(unit.DefID)
	if !ok {
		return nil, nil, fmt.Errorf("unit %s not in catalog", unit.DefID)
	}

	element := def.Attacks[c.attackIndex].Element
	if udef.ResistantTo(element) && !unit.ResistanceUsed && damage <= udef.Armor {
		unit.ResistanceUsed = true
		events = append(events, DamageAssignedEvent{
			EnemyInstanceID: c.enemyID,
			AttackIndex:     c.attackIndex,
			Target:          c.target,
			Damage:          damage,
			Absorbed:        true,
		})
		return next, events, nil
	}

	unit.Wounded = true
	events = append(events,
		DamageAssignedEvent{
			EnemyInstanceID: c.enemyID,
			AttackIndex:     c.attackIndex,
			Target:          c.target,
			Damage:          damage,
		},
		UnitWoundedEvent{PlayerID: c.playerID, UnitInstanceID: c.target},
	)
	if overflow := damage - udef.Armor; overflow > 0 {
		events = append(events, damageHero(p, c.enemyID, c.attackIndex, overflow, poison)...)
	}
	return next, events, nil
}

// damageHero converts damage into wound cards in hand, applying poison and
// the knockout rule.
func damageHero(p *Player, enemyID string, attackIndex, damage int, poison bool) []Event {
	wounds := woundsFor(damage, p.Armor())
	for i := 0; i < wounds; i++ {
		p.Hand = append(p.Hand, WoundCardID)
		if poison {
			p.Discard = append(p.Discard, WoundCardID)
		}
	}
	p.WoundsThisCombat += wounds

	events := []Event{DamageAssignedEvent{
		EnemyInstanceID: enemyID,
		AttackIndex:     attackIndex,
		Target:          DamageTargetHero,
		Damage:          damage,
		Wounds:          wounds,
		Poisoned:        poison && wounds > 0,
	}}

	if !p.KnockedOut && p.WoundsThisCombat >= p.HandLimit() {
		p.KnockedOut = true
		// Knockout throws away the rest of the hand; only wounds remain.
		var kept []string
		for _, card := range p.Hand {
			if card == WoundCardID {
				kept = append(kept, card)
			} else {
				p.Discard = append(p.Discard, card)
			}
		}
		p.Hand = kept
		events = append(events, PlayerKnockedOutEvent{PlayerID: p.ID, Wounds: p.WoundsThisCombat})
	}
	return events
}

// endCombatPhaseCommand advances the forward-only combat sequence. Ending
// the attack phase tears combat down, so that step is an undo barrier.
type endCombatPhaseCommand struct {
	baseCommand
	cat content.Catalog
}

func newEndCombatPhaseCommand(st *GameState, cat content.Catalog, playerID string, _ Action) Command {
	final := st.Combat != nil && st.Combat.Phase == PhaseAttack
	return &endCombatPhaseCommand{
		baseCommand: baseCommand{actionType: ActionEndCombatPhase, playerID: playerID, irreversible: final},
		cat:         cat,
	}
}

func (c *endCombatPhaseCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)

	combat := next.Combat
	from := combat.Phase
	to, more := nextCombatPhase(from)
	if !more {
		return c.finishCombat(next, p)
	}

	var events []Event
	if to == PhaseAttack {
		// Summoned tokens leave before the attack phase; the summoners
		// come out of hiding and can now be fought directly.
		for _, e := range combat.Enemies {
			if e.SummonerHidden {
				events = append(events, SummonDiscardedEvent{
					SummonerInstanceID: e.InstanceID,
					TokenID:            e.SummonedTokenID,
				})
				e.SummonerHidden = false
				e.SummonedTokenID = ""
			}
		}
	}
	combat.Phase = to
	events = append([]Event{CombatPhaseChangedEvent{From: from, To: to}}, events...)
	return next, events, nil
}

// finishCombat tears combat down: conquest bookkeeping on victory, combat
// modifier and cooldown sweeps, and accumulator cleanup.
func (c *endCombatPhaseCommand) finishCombat(next *GameState, p *Player) (*GameState, []Event, error) {
	combat := next.Combat
	victorious := len(combat.Undefeated()) == 0

	var events []Event
	if victorious {
		if hex, ok := next.HexAt(combat.SiteCoord); ok {
			hex.EnemyIDs = nil
			if hex.Site != SiteNone && !hex.Conquered {
				hex.Conquered = true
				hex.OwnerID = p.ID
				events = append(events, SiteConqueredEvent{PlayerID: p.ID, Site: hex.Site, Coord: hex.Coord})
				if hex.Site == SiteKeep || hex.Site == SiteMageTower || hex.Site == SiteCity {
					p.Reputation++
					events = append(events, ReputationChangedEvent{PlayerID: p.ID, Delta: 1, Total: p.Reputation})
				}
			}
		}
	}

	for _, m := range next.SweepModifiers(DurationCombat) {
		events = append(events, ModifierExpiredEvent{ModifierID: m.ID, Kind: m.Kind})
	}
	for _, id := range combat.Participants {
		part, err := next.Player(id)
		if err != nil {
			return nil, nil, err
		}
		part.Accum.ClearCombat()
		part.UsedCombat = nil
		part.WoundsThisCombat = 0
		part.KnockedOut = false
		for _, u := range part.Units {
			u.ResistanceUsed = false
		}
	}
	next.Combat = nil

	events = append(events, CombatEndedEvent{PlayerID: p.ID, Victorious: victorious})
	return next, events, nil
}
