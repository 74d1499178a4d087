package game

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// MaxRounds is the scenario length: three day rounds and three night rounds.
const MaxRounds = 6

// levelUpSkillChoices is how many skill options a level-up offers.
const levelUpSkillChoices = 2

// endTurnCommand closes the current player's turn: expire turn-scoped
// resources, return taken dice, refill the hand and pass priority. Drawing
// cards makes it an undo barrier.
type endTurnCommand struct {
	baseCommand
	cat content.Catalog
}

func newEndTurnCommand(_ *GameState, cat content.Catalog, playerID string, _ Action) Command {
	return &endTurnCommand{
		baseCommand: baseCommand{actionType: ActionEndTurn, playerID: playerID, irreversible: true},
		cat:         cat,
	}
}

func (c *endTurnCommand) Apply(st *GameState) (*GameState, []Event, error) {
	next := st.Clone()
	p, err := next.Player(c.playerID)
	if err != nil {
		return nil, nil, err
	}

	var events []Event

	// Turn-scoped resources expire.
	p.Mana.ClearTokens()
	p.Accum = Accumulator{}
	p.UsedTurn = nil
	for _, m := range next.SweepModifiers(DurationTurn) {
		events = append(events, ModifierExpiredEvent{ModifierID: m.ID, Kind: m.Kind})
	}

	// Taken dice reroll back into the source.
	if len(p.DiceTaken) > 0 {
		for _, dieID := range p.DiceTaken {
			dice, rng, _ := mana.RerollDie(next.Source, dieID, next.RNG)
			next.Source = dice
			next.RNG = rng
		}
		events = append(events, SourceRerolledEvent{DieIDs: p.DiceTaken})
		p.DiceTaken = nil
	}

	// Units ready up between turns.
	for _, u := range p.Units {
		if !u.Wounded {
			u.Ready = true
		}
	}

	// Refill the hand.
	if limit := p.HandLimit(); len(p.Hand) < limit {
		if drawn := drawCards(p, limit-len(p.Hand)); drawn > 0 {
			events = append(events, CardsDrawnEvent{PlayerID: c.playerID, Count: drawn})
		}
	}

	// An owed level-up becomes the player's next mandatory decision.
	if p.LevelUpsOwed > 0 && p.Pending == nil {
		options := drawSkillOptions(next, c.cat, p)
		if len(options) > 0 {
			p.LevelUpsOwed--
			p.RewardedLevels++
			p.Pending = &Pending{
				Kind:    PendingLevelUpKind,
				LevelUp: &PendingLevelUp{Level: p.Level(), SkillOptions: options},
			}
			events = append(events, RewardChoiceOpenEvent{PlayerID: c.playerID, Level: p.Level(), Options: options})
		} else {
			p.LevelUpsOwed--
		}
	}

	nextID := nextPlayerID(next, c.playerID)
	events = append(events, TurnEndedEvent{PlayerID: c.playerID, NextID: nextID})

	if next.EndAnnouncedBy != "" && nextID == next.EndAnnouncedBy {
		roundEvents := endRound(next)
		events = append(events, roundEvents...)
		return next, events, nil
	}
	next.CurrentPlayerID = nextID
	return next, events, nil
}

// drawSkillOptions picks level-up skill options from the unowned pool using
// the state's random stream.
func drawSkillOptions(st *GameState, cat content.Catalog, p *Player) []string {
	var pool []string
	for _, id := range cat.SkillIDs() {
		if !p.HasSkill(id) {
			pool = append(pool, id)
		}
	}
	var options []string
	for len(options) < levelUpSkillChoices && len(pool) > 0 {
		var idx int
		idx, st.RNG = st.RNG.Draw(len(pool))
		options = append(options, pool[idx])
		pool = append(pool[:idx:idx], pool[idx+1:]...)
	}
	return options
}

// nextPlayerID returns the player after the given one in turn order.
func nextPlayerID(st *GameState, playerID string) string {
	for i, id := range st.TurnOrder {
		if id == playerID {
			return st.TurnOrder[(i+1)%len(st.TurnOrder)]
		}
	}
	if len(st.TurnOrder) > 0 {
		return st.TurnOrder[0]
	}
	return playerID
}

// endRound rolls the state over into the next round: round-scoped expiry,
// the day/night flip, a fresh source and tactic selection reopened. The
// last round instead finishes the game.
func endRound(st *GameState) []Event {
	var events []Event
	for _, m := range st.SweepModifiers(DurationRound) {
		events = append(events, ModifierExpiredEvent{ModifierID: m.ID, Kind: m.Kind})
	}
	for _, p := range st.Players {
		p.UsedRound = nil
		p.Tactic = ""
		p.TacticFlipped = false
	}
	st.TacticsTaken = nil
	st.EndAnnouncedBy = ""

	events = append(events, RoundEndedEvent{Round: st.Round, TimeOfDay: st.TimeOfDay})

	if st.Round >= MaxRounds {
		st.Finished = true
		events = append(events, GameFinishedEvent{Rounds: st.Round})
		return events
	}

	st.Round++
	if st.TimeOfDay == mana.Day {
		st.TimeOfDay = mana.Night
	} else {
		st.TimeOfDay = mana.Day
	}

	// The whole source rerolls at round start.
	dice, rng := mana.RollSource(st.RNG, len(st.Source))
	st.Source = dice
	st.RNG = rng
	var ids []string
	for _, d := range dice {
		ids = append(ids, d.ID)
	}
	events = append(events, SourceRerolledEvent{DieIDs: ids})

	if len(st.TurnOrder) > 0 {
		st.CurrentPlayerID = st.TurnOrder[0]
	}
	return events
}
