package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// selectTacticCommand claims a tactic for the round. Tactic choices are
// public commitments, so the command is an undo barrier.
type selectTacticCommand struct {
	baseCommand
	tacticID string
}

func newSelectTacticCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &selectTacticCommand{
		baseCommand: baseCommand{actionType: ActionSelectTactic, playerID: playerID, irreversible: true},
		tacticID:    act.TacticID,
	}
}

func (c *selectTacticCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	p.Tactic = c.tacticID
	p.TacticFlipped = false
	if next.TacticsTaken == nil {
		next.TacticsTaken = map[string]string{}
	}
	next.TacticsTaken[c.tacticID] = c.playerID
	return next, []Event{TacticSelectedEvent{PlayerID: c.playerID, TacticID: c.tacticID}}, nil
}

// activateTacticCommand flips the round tactic for its one-time benefit.
type activateTacticCommand struct {
	baseCommand
	cat      content.Catalog
	tacticID string
}

func newActivateTacticCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &activateTacticCommand{
		baseCommand: baseCommand{actionType: ActionActivateTactic, playerID: playerID, irreversible: true},
		cat:         cat,
		tacticID:    act.TacticID,
	}
}

func (c *activateTacticCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	def, ok := c.cat.Tactic(c.tacticID)
	if !ok {
		return nil, nil, fmt.Errorf("tactic %s not in catalog", c.tacticID)
	}
	p.TacticFlipped = true

	events := []Event{TacticFlippedEvent{PlayerID: c.playerID, TacticID: c.tacticID}}
	if def.Decision {
		p.Pending = &Pending{
			Kind:           PendingTacticDecisionKind,
			TacticDecision: &PendingTacticDecision{TacticID: c.tacticID},
		}
		return next, events, nil
	}
	if def.Effect != nil {
		resolved, err := resolveEffect(next, c.cat, c.playerID, c.tacticID, *def.Effect)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, resolved...)
	}
	return next, events, nil
}

// resolveTacticDecisionCommand supplies the input a decision tactic waits
// for: taking a source die as mana or rerolling one. Both touch the shared
// source, so the command is an undo barrier.
type resolveTacticDecisionCommand struct {
	baseCommand
	cat    content.Catalog
	dieID  string
	option string
}

func newResolveTacticDecisionCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &resolveTacticDecisionCommand{
		baseCommand: baseCommand{actionType: ActionResolveTacticDecision, playerID: playerID, irreversible: true},
		cat:         cat,
		dieID:       act.DieID,
		option:      act.Option,
	}
}

func (c *resolveTacticDecisionCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	if p.Pending == nil || p.Pending.Kind != PendingTacticDecisionKind {
		return nil, nil, fmt.Errorf("no tactic decision pending for %s", c.playerID)
	}
	p.Pending = nil

	switch c.option {
	case "take":
		die, ok := mana.FindDie(next.Source, c.dieID)
		if !ok {
			return nil, nil, fmt.Errorf("source die %s not found", c.dieID)
		}
		for i := range next.Source {
			if next.Source[i].ID == c.dieID {
				next.Source[i].Taken = true
				next.Source[i].TakenBy = c.playerID
			}
		}
		p.DiceTaken = append(p.DiceTaken, c.dieID)
		p.Mana.AddToken(die.Color)
		return next, []Event{DieTakenEvent{PlayerID: c.playerID, DieID: c.dieID, Color: die.Color}}, nil
	case "reroll":
		dice, rng, ok := mana.RerollDie(next.Source, c.dieID, next.RNG)
		if !ok {
			return nil, nil, fmt.Errorf("source die %s not found", c.dieID)
		}
		next.Source = dice
		next.RNG = rng
		return next, []Event{SourceRerolledEvent{DieIDs: []string{c.dieID}}}, nil
	}
	return nil, nil, fmt.Errorf("unknown tactic decision %q", c.option)
}

// selectRewardCommand resolves a pending level-up by picking a skill.
// Rewards are commitments: no undo past them.
type selectRewardCommand struct {
	baseCommand
	option int
}

func newSelectRewardCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &selectRewardCommand{
		baseCommand: baseCommand{actionType: ActionSelectReward, playerID: playerID, irreversible: true},
		option:      act.OptionIndex,
	}
}

func (c *selectRewardCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	if p.Pending == nil || p.Pending.Kind != PendingLevelUpKind {
		return nil, nil, fmt.Errorf("no level-up pending for %s", c.playerID)
	}
	skillID := p.Pending.LevelUp.SkillOptions[c.option]
	p.Pending = nil
	p.Skills = append(p.Skills, skillID)
	p.CommandTokens++
	return next, []Event{RewardSelectedEvent{PlayerID: c.playerID, Reward: skillID}}, nil
}

// rerollSourceCommand rerolls one untaken source die, or every untaken die
// when no ID is given.
type rerollSourceCommand struct {
	baseCommand
	dieID string
}

func newRerollSourceCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &rerollSourceCommand{
		baseCommand: baseCommand{actionType: ActionRerollSource, playerID: playerID, irreversible: true},
		dieID:       act.DieID,
	}
}

func (c *rerollSourceCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	var rerolled []string
	if c.dieID != "" {
		dice, rng, ok := mana.RerollDie(next.Source, c.dieID, next.RNG)
		if !ok {
			return nil, nil, fmt.Errorf("source die %s not found", c.dieID)
		}
		next.Source = dice
		next.RNG = rng
		rerolled = []string{c.dieID}
	} else {
		for _, d := range next.Source {
			if d.Taken {
				continue
			}
			dice, rng, _ := mana.RerollDie(next.Source, d.ID, next.RNG)
			next.Source = dice
			next.RNG = rng
			rerolled = append(rerolled, d.ID)
		}
	}
	return next, []Event{SourceRerolledEvent{DieIDs: rerolled}}, nil
}

// announceEndCommand declares the end of the round; everyone else gets one
// final turn. A public announcement cannot be taken back.
type announceEndCommand struct {
	baseCommand
}

func newAnnounceEndCommand(_ *GameState, _ content.Catalog, playerID string, _ Action) Command {
	return &announceEndCommand{
		baseCommand: baseCommand{actionType: ActionAnnounceEndOfRound, playerID: playerID, irreversible: true},
	}
}

func (c *announceEndCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	next.EndAnnouncedBy = c.playerID
	return next, []Event{EndOfRoundAnnouncedEvent{PlayerID: c.playerID}}, nil
}

// --- debug commands ---

// debugGainPointsCommand injects points directly into the accumulator.
type debugGainPointsCommand struct {
	baseCommand
	points content.PointKind
	amount int
	el     content.Element
	ct     content.CombatType
}

func newDebugGainPointsCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &debugGainPointsCommand{
		baseCommand: baseCommand{actionType: ActionDebugGainPoints, playerID: playerID},
		points:      act.Points,
		amount:      act.Amount,
		el:          act.Element,
		ct:          act.CombatType,
	}
}

func (c *debugGainPointsCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)
	_, err = applySimple(next, p, content.Effect{
		Kind:       content.EffectSimple,
		Points:     c.points,
		Amount:     c.amount,
		Element:    c.el,
		CombatType: c.ct,
	})
	if err != nil {
		return nil, nil, err
	}
	return next, []Event{PointsGainedEvent{
		PlayerID:   c.playerID,
		Points:     c.points,
		Amount:     c.amount,
		Element:    c.el,
		CombatType: c.ct,
	}}, nil
}

// debugSpawnEnemyCommand adds a specific enemy to the current combat, or
// places it on the player's hex outside combat.
type debugSpawnEnemyCommand struct {
	baseCommand
	cat     content.Catalog
	enemyID string
}

func newDebugSpawnEnemyCommand(_ *GameState, cat content.Catalog, playerID string, act Action) Command {
	return &debugSpawnEnemyCommand{
		baseCommand: baseCommand{actionType: ActionDebugSpawnEnemy, playerID: playerID},
		cat:         cat,
		enemyID:     act.EnemyID,
	}
}

func (c *debugSpawnEnemyCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)
	def, ok := c.cat.Enemy(c.enemyID)
	if !ok {
		return nil, nil, fmt.Errorf("enemy %s not in catalog", c.enemyID)
	}
	if next.Combat != nil {
		e := &EnemyInstance{
			InstanceID:     next.NewInstanceID("enemy"),
			DefID:          c.enemyID,
			AttacksBlocked: make([]bool, len(def.Attacks)),
			DamageResolved: make([]bool, len(def.Attacks)),
		}
		next.Combat.Enemies = append(next.Combat.Enemies, e)
		return next, []Event{CombatStartedEvent{PlayerID: c.playerID, Enemies: []string{e.InstanceID}}}, nil
	}
	hex, ok := next.HexAt(p.Position)
	if !ok {
		return nil, nil, fmt.Errorf("player is off the map")
	}
	hex.EnemyIDs = append(hex.EnemyIDs, c.enemyID)
	return next, nil, nil
}

// debugSetPhaseCommand jumps the combat machine to a phase.
type debugSetPhaseCommand struct {
	baseCommand
	phase CombatPhase
}

func newDebugSetPhaseCommand(_ *GameState, _ content.Catalog, playerID string, act Action) Command {
	return &debugSetPhaseCommand{
		baseCommand: baseCommand{actionType: ActionDebugSetPhase, playerID: playerID},
		phase:       act.Phase,
	}
}

func (c *debugSetPhaseCommand) Apply(st *GameState) (*GameState, []Event, error) {
	if st.Combat == nil {
		return nil, nil, fmt.Errorf("no combat in progress")
	}
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}
	c.snapshot(next, p)
	from := next.Combat.Phase
	next.Combat.Phase = c.phase
	return next, []Event{CombatPhaseChangedEvent{From: from, To: c.phase}}, nil
}
