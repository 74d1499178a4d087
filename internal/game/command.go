package game

import (
	"errors"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// ErrNotReversible is returned when Revert is called on a command that
// cannot be undone.
var ErrNotReversible = errors.New("command is not reversible")

// Command is one executed player intent. Apply takes a state and returns the
// successor state plus the events describing what happened; the input state
// is never mutated. Reversible commands capture explicit previous-value
// snapshots during Apply so Revert can restore them without replaying
// history.
type Command interface {
	ActionType() ActionType
	PlayerID() string
	// Reversible reports whether this command can be undone. Commands that
	// consume randomness, reveal hidden information or commit a public
	// decision return false and act as undo barriers.
	Reversible() bool
	Apply(st *GameState) (*GameState, []Event, error)
	Revert(st *GameState) (*GameState, []Event, error)
}

// commandFactory builds a command from a validated action.
type commandFactory func(st *GameState, cat content.Catalog, playerID string, act Action) Command

// playerSnapshot is the explicit previous-value payload for the fields a
// player-scoped command may touch. It is plain serializable data, so replay
// tooling can persist undo information alongside the command log.
type playerSnapshot struct {
	Position HexCoord `json:"position"`

	Hand    []string `json:"hand"`
	Deck    []string `json:"deck"`
	Discard []string `json:"discard"`

	Mana  mana.Inventory `json:"mana"`
	Accum Accumulator    `json:"accum"`

	Units []*Unit `json:"units,omitempty"`

	UsedTurn          map[string]bool   `json:"usedTurn,omitempty"`
	UsedRound         map[string]bool   `json:"usedRound,omitempty"`
	UsedCombat        map[string]bool   `json:"usedCombat,omitempty"`
	InteractiveTokens map[string]string `json:"interactiveTokens,omitempty"`

	Tactic        string `json:"tactic,omitempty"`
	TacticFlipped bool   `json:"tacticFlipped,omitempty"`

	Pending        *Pending `json:"pending,omitempty"`
	LevelUpsOwed   int      `json:"levelUpsOwed,omitempty"`
	RewardedLevels int      `json:"rewardedLevels,omitempty"`

	Fame             int  `json:"fame"`
	Reputation       int  `json:"reputation"`
	KnockedOut       bool `json:"knockedOut,omitempty"`
	WoundsThisCombat int  `json:"woundsThisCombat,omitempty"`

	DiceTaken []string `json:"diceTaken,omitempty"`
}

// capturePlayer snapshots every command-touchable field of a player.
func capturePlayer(p *Player) playerSnapshot {
	c := p.Clone()
	return playerSnapshot{
		Position:          c.Position,
		Hand:              c.Hand,
		Deck:              c.Deck,
		Discard:           c.Discard,
		Mana:              c.Mana,
		Accum:             c.Accum,
		Units:             c.Units,
		UsedTurn:          c.UsedTurn,
		UsedRound:         c.UsedRound,
		UsedCombat:        c.UsedCombat,
		InteractiveTokens: c.InteractiveTokens,
		Tactic:            c.Tactic,
		TacticFlipped:     c.TacticFlipped,
		Pending:           c.Pending,
		LevelUpsOwed:      c.LevelUpsOwed,
		RewardedLevels:    c.RewardedLevels,
		Fame:              c.Fame,
		Reputation:        c.Reputation,
		KnockedOut:        c.KnockedOut,
		WoundsThisCombat:  c.WoundsThisCombat,
		DiceTaken:         c.DiceTaken,
	}
}

// restore writes the snapshot back onto a (cloned) player.
func (s playerSnapshot) restore(p *Player) {
	p.Position = s.Position
	p.Hand = append([]string(nil), s.Hand...)
	p.Deck = append([]string(nil), s.Deck...)
	p.Discard = append([]string(nil), s.Discard...)
	p.Mana = s.Mana.Clone()
	p.Accum = s.Accum.Clone()
	p.Units = make([]*Unit, len(s.Units))
	for i, u := range s.Units {
		p.Units[i] = u.Clone()
	}
	p.UsedTurn = cloneBoolMap(s.UsedTurn)
	p.UsedRound = cloneBoolMap(s.UsedRound)
	p.UsedCombat = cloneBoolMap(s.UsedCombat)
	p.InteractiveTokens = cloneStringMap(s.InteractiveTokens)
	p.Tactic = s.Tactic
	p.TacticFlipped = s.TacticFlipped
	p.Pending = s.Pending.Clone()
	p.LevelUpsOwed = s.LevelUpsOwed
	p.RewardedLevels = s.RewardedLevels
	p.Fame = s.Fame
	p.Reputation = s.Reputation
	p.KnockedOut = s.KnockedOut
	p.WoundsThisCombat = s.WoundsThisCombat
	p.DiceTaken = append([]string(nil), s.DiceTaken...)
}

// sharedSnapshot is the previous-value payload for the shared state a
// command may touch beyond its player.
type sharedSnapshot struct {
	Source          []mana.Die        `json:"source"`
	ActiveModifiers []ActiveModifier  `json:"activeModifiers,omitempty"`
	Combat          *CombatState      `json:"combat,omitempty"`
	UnitOffer       []string          `json:"unitOffer,omitempty"`
	Map             map[string]*Hex   `json:"map,omitempty"`
	TacticsTaken    map[string]string `json:"tacticsTaken,omitempty"`
	NextInstance    int               `json:"nextInstance"`
}

// captureShared snapshots the shared state.
func captureShared(st *GameState) sharedSnapshot {
	m := make(map[string]*Hex, len(st.Map))
	for k, h := range st.Map {
		m[k] = h.Clone()
	}
	return sharedSnapshot{
		Source:          mana.CloneDice(st.Source),
		ActiveModifiers: append([]ActiveModifier(nil), st.ActiveModifiers...),
		Combat:          st.Combat.Clone(),
		UnitOffer:       append([]string(nil), st.UnitOffer...),
		Map:             m,
		TacticsTaken:    cloneStringMap(st.TacticsTaken),
		NextInstance:    st.NextInstance,
	}
}

// restore writes the snapshot back onto a (cloned) state.
func (s sharedSnapshot) restore(st *GameState) {
	st.Source = mana.CloneDice(s.Source)
	st.ActiveModifiers = append([]ActiveModifier(nil), s.ActiveModifiers...)
	st.Combat = s.Combat.Clone()
	st.UnitOffer = append([]string(nil), s.UnitOffer...)
	st.Map = make(map[string]*Hex, len(s.Map))
	for k, h := range s.Map {
		st.Map[k] = h.Clone()
	}
	st.TacticsTaken = cloneStringMap(s.TacticsTaken)
	st.NextInstance = s.NextInstance
}

// baseCommand carries the fields every command shares plus the standard
// snapshot-based Revert. Commands embed it and mark themselves irreversible
// by setting irreversible.
type baseCommand struct {
	actionType ActionType
	playerID   string

	irreversible bool
	prevPlayer   playerSnapshot
	prevShared   sharedSnapshot
	captured     bool
}

func (b *baseCommand) ActionType() ActionType { return b.actionType }
func (b *baseCommand) PlayerID() string       { return b.playerID }
func (b *baseCommand) Reversible() bool       { return !b.irreversible }

// snapshot must be called by Apply before mutating anything.
func (b *baseCommand) snapshot(st *GameState, p *Player) {
	if b.irreversible {
		return
	}
	b.prevPlayer = capturePlayer(p)
	b.prevShared = captureShared(st)
	b.captured = true
}

// Revert restores the captured snapshots onto a clone of the current state.
func (b *baseCommand) Revert(st *GameState) (*GameState, []Event, error) {
	if b.irreversible || !b.captured {
		return nil, nil, ErrNotReversible
	}
	next := st.Clone()
	p, err := next.Player(b.playerID)
	if err != nil {
		return nil, nil, err
	}
	b.prevPlayer.restore(p)
	b.prevShared.restore(next)
	events := []Event{UndoneEvent{PlayerID: b.playerID, Action: b.actionType}}
	return next, events, nil
}

// undoLog is the per-game undo stack. Irreversible commands clear it: history
// before a barrier can never be walked back.
type undoLog struct {
	stack []Command
}

func (u *undoLog) push(c Command) {
	if !c.Reversible() {
		u.stack = u.stack[:0]
		return
	}
	u.stack = append(u.stack, c)
}

func (u *undoLog) pop() (Command, bool) {
	if len(u.stack) == 0 {
		return nil, false
	}
	c := u.stack[len(u.stack)-1]
	u.stack = u.stack[:len(u.stack)-1]
	return c, true
}

func (u *undoLog) clear() { u.stack = u.stack[:0] }

func (u *undoLog) depth() int { return len(u.stack) }
