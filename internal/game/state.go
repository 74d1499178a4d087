// Package game implements the rules engine: the immutable game state model,
// action validation, the command/undo layer, the effect resolver and the
// combat phase machine. State is only ever changed by commands producing a
// new GameState from an old one; observers learn what happened from the
// event stream, never by diffing states.
package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/random"
)

// HexCoord is an axial map coordinate.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Key returns the map key for this coordinate.
func (h HexCoord) Key() string { return fmt.Sprintf("%d,%d", h.Q, h.R) }

// Adjacent reports whether two hexes share an edge.
func (h HexCoord) Adjacent(o HexCoord) bool {
	dq, dr := o.Q-h.Q, o.R-h.R
	switch [2]int{dq, dr} {
	case [2]int{1, 0}, [2]int{-1, 0}, [2]int{0, 1}, [2]int{0, -1}, [2]int{1, -1}, [2]int{-1, 1}:
		return true
	}
	return false
}

// SiteType marks what occupies a hex.
type SiteType string

const (
	SiteNone      SiteType = ""
	SiteVillage   SiteType = "VILLAGE"
	SiteMonastery SiteType = "MONASTERY"
	SiteKeep      SiteType = "KEEP"
	SiteMageTower SiteType = "MAGE_TOWER"
	SiteDungeon   SiteType = "DUNGEON"
	SiteTomb      SiteType = "TOMB"
	SiteOrcCamp   SiteType = "ORC_CAMP"
	SiteCity      SiteType = "CITY"
)

// fortifiedSites require siege attack during the ranged/siege phase.
var fortifiedSites = map[SiteType]bool{
	SiteKeep:      true,
	SiteMageTower: true,
	SiteCity:      true,
}

// nightRuleSites force night mana rules regardless of the time of day.
var nightRuleSites = map[SiteType]bool{
	SiteDungeon: true,
	SiteTomb:    true,
}

// noUnitSites forbid unit participation in combat.
var noUnitSites = map[SiteType]bool{
	SiteDungeon: true,
	SiteTomb:    true,
}

// Hex is one map space.
type Hex struct {
	Coord     HexCoord        `json:"coord"`
	Terrain   content.Terrain `json:"terrain"`
	Site      SiteType        `json:"site,omitempty"`
	Conquered bool            `json:"conquered,omitempty"`
	OwnerID   string          `json:"ownerId,omitempty"`
	// EnemyIDs are pre-placed enemy definition IDs guarding the hex.
	EnemyIDs []string `json:"enemyIds,omitempty"`
}

// Clone returns a deep copy of the hex.
func (h *Hex) Clone() *Hex {
	out := *h
	out.EnemyIDs = append([]string(nil), h.EnemyIDs...)
	return &out
}

// Unit is a recruited ally in a player's roster.
type Unit struct {
	InstanceID     string `json:"instanceId"`
	DefID          string `json:"defId"`
	Ready          bool   `json:"ready"`
	Wounded        bool   `json:"wounded"`
	ResistanceUsed bool   `json:"resistanceUsed"`
}

// Clone returns a copy of the unit.
func (u *Unit) Clone() *Unit {
	out := *u
	return &out
}

// attackKey composes the accumulator key for an attack bucket.
func attackKey(ct content.CombatType, el content.Element) string {
	return string(ct) + "|" + string(el)
}

// splitAttackKey recovers the combat type and element from a bucket key.
func splitAttackKey(key string) (content.CombatType, content.Element) {
	for i := 0; i < len(key); i++ {
		if key[i] == '|' {
			return content.CombatType(key[:i]), content.Element(key[i+1:])
		}
	}
	return content.CombatType(key), content.ElementPhysical
}

// Accumulator holds a player's pending, uncommitted points for the current
// turn: move, influence and heal, plus attack and block values bucketed by
// combat type and element.
type Accumulator struct {
	Move      int `json:"move,omitempty"`
	Influence int `json:"influence,omitempty"`
	Heal      int `json:"heal,omitempty"`
	// Attack is keyed by "TYPE|ELEMENT" (see attackKey).
	Attack map[string]int `json:"attack,omitempty"`
	// Block is keyed by element.
	Block map[content.Element]int `json:"block,omitempty"`
}

// Clone returns a deep copy.
func (a Accumulator) Clone() Accumulator {
	out := a
	if a.Attack != nil {
		out.Attack = make(map[string]int, len(a.Attack))
		for k, v := range a.Attack {
			out.Attack[k] = v
		}
	}
	if a.Block != nil {
		out.Block = make(map[content.Element]int, len(a.Block))
		for k, v := range a.Block {
			out.Block[k] = v
		}
	}
	return out
}

// AddAttack adds attack points to a bucket.
func (a *Accumulator) AddAttack(ct content.CombatType, el content.Element, amount int) {
	if a.Attack == nil {
		a.Attack = make(map[string]int)
	}
	a.Attack[attackKey(ct, el)] += amount
}

// AddBlock adds block points to an element bucket.
func (a *Accumulator) AddBlock(el content.Element, amount int) {
	if a.Block == nil {
		a.Block = make(map[content.Element]int)
	}
	a.Block[el] += amount
}

// TotalAttack sums all attack buckets without efficiency weighting.
func (a *Accumulator) TotalAttack() int {
	total := 0
	for _, v := range a.Attack {
		total += v
	}
	return total
}

// TotalBlock sums all block buckets without efficiency weighting.
func (a *Accumulator) TotalBlock() int {
	total := 0
	for _, v := range a.Block {
		total += v
	}
	return total
}

// ClearCombat drops attack and block points (combat teardown).
func (a *Accumulator) ClearCombat() {
	a.Attack = nil
	a.Block = nil
}

// PendingKind discriminates the pending-interaction union.
type PendingKind string

const (
	PendingChoiceKind          PendingKind = "CHOICE"
	PendingDiscardKind         PendingKind = "DISCARD"
	PendingDiscardForBonusKind PendingKind = "DISCARD_FOR_BONUS"
	PendingTacticDecisionKind  PendingKind = "TACTIC_DECISION"
	PendingLevelUpKind         PendingKind = "LEVEL_UP"
)

// PendingChoice suspends effect resolution until the player picks an option.
// Remaining holds the continuation: effects resolved after the choice.
type PendingChoice struct {
	SourceID  string           `json:"sourceId"`
	Options   []content.Effect `json:"options"`
	Remaining []content.Effect `json:"remaining,omitempty"`
}

// PendingDiscard requires the player to discard before acting further.
type PendingDiscard struct {
	Count  int    `json:"count"`
	Reason string `json:"reason,omitempty"`
}

// PendingDiscardForBonus offers discarding another card to boost an effect.
type PendingDiscardForBonus struct {
	SourceID string         `json:"sourceId"`
	Base     content.Effect `json:"base"`
	Bonus    int            `json:"bonus"`
}

// PendingTacticDecision marks a tactic waiting for its decision input.
type PendingTacticDecision struct {
	TacticID string `json:"tacticId"`
}

// PendingLevelUp waits for the player to pick a level-up reward.
type PendingLevelUp struct {
	Level        int      `json:"level"`
	SkillOptions []string `json:"skillOptions"`
}

// Pending is the single pending-interaction slot on a player. Exactly one
// branch is non-nil, matching Kind; validators block unrelated actions while
// it is set.
type Pending struct {
	Kind            PendingKind             `json:"kind"`
	Choice          *PendingChoice          `json:"choice,omitempty"`
	Discard         *PendingDiscard         `json:"discard,omitempty"`
	DiscardForBonus *PendingDiscardForBonus `json:"discardForBonus,omitempty"`
	TacticDecision  *PendingTacticDecision  `json:"tacticDecision,omitempty"`
	LevelUp         *PendingLevelUp         `json:"levelUp,omitempty"`
}

// Clone returns a deep copy of the pending slot.
func (p *Pending) Clone() *Pending {
	if p == nil {
		return nil
	}
	out := *p
	if p.Choice != nil {
		c := *p.Choice
		c.Options = append([]content.Effect(nil), p.Choice.Options...)
		c.Remaining = append([]content.Effect(nil), p.Choice.Remaining...)
		out.Choice = &c
	}
	if p.Discard != nil {
		d := *p.Discard
		out.Discard = &d
	}
	if p.DiscardForBonus != nil {
		d := *p.DiscardForBonus
		out.DiscardForBonus = &d
	}
	if p.TacticDecision != nil {
		d := *p.TacticDecision
		out.TacticDecision = &d
	}
	if p.LevelUp != nil {
		l := *p.LevelUp
		l.SkillOptions = append([]string(nil), p.LevelUp.SkillOptions...)
		out.LevelUp = &l
	}
	return &out
}

// Player is one hero's full state.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position HexCoord `json:"position"`

	Hand    []string `json:"hand"`
	Deck    []string `json:"deck"`
	Discard []string `json:"discard"`

	Mana  mana.Inventory `json:"mana"`
	Accum Accumulator    `json:"accum"`

	Units         []*Unit `json:"units,omitempty"`
	CommandTokens int     `json:"commandTokens"`

	Skills     []string        `json:"skills,omitempty"`
	UsedTurn   map[string]bool `json:"usedTurn,omitempty"`
	UsedRound  map[string]bool `json:"usedRound,omitempty"`
	UsedCombat map[string]bool `json:"usedCombat,omitempty"`
	// InteractiveTokens maps an interactive skill ID to the permanent
	// modifier it placed, removed when the token returns.
	InteractiveTokens map[string]string `json:"interactiveTokens,omitempty"`

	Tactic        string `json:"tactic,omitempty"`
	TacticFlipped bool   `json:"tacticFlipped,omitempty"`

	Pending        *Pending `json:"pending,omitempty"`
	LevelUpsOwed   int      `json:"levelUpsOwed,omitempty"`
	RewardedLevels int      `json:"rewardedLevels,omitempty"`

	Fame       int `json:"fame"`
	Reputation int `json:"reputation"`

	KnockedOut       bool `json:"knockedOut,omitempty"`
	WoundsThisCombat int  `json:"woundsThisCombat,omitempty"`

	// DiceTaken lists source die IDs this player took this turn; they
	// reroll back into the source at end of turn.
	DiceTaken []string `json:"diceTaken,omitempty"`
}

// Level derives the hero level from fame.
func (p *Player) Level() int { return content.LevelForFame(p.Fame) }

// Armor derives hero armor from level.
func (p *Player) Armor() int { return content.ArmorForLevel(p.Level()) }

// HandLimit derives the unmodified hand limit from level.
func (p *Player) HandLimit() int { return content.HandLimitForLevel(p.Level()) }

// HasCardInHand reports whether the card ID is in hand.
func (p *Player) HasCardInHand(cardID string) bool {
	for _, c := range p.Hand {
		if c == cardID {
			return true
		}
	}
	return false
}

// RemoveFromHand removes the first matching card from hand.
func (p *Player) RemoveFromHand(cardID string) bool {
	for i, c := range p.Hand {
		if c == cardID {
			p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// WoundsInHand counts wound cards.
func (p *Player) WoundsInHand() int {
	n := 0
	for _, c := range p.Hand {
		if c == WoundCardID {
			n++
		}
	}
	return n
}

// FindUnit returns the roster unit with the given instance ID.
func (p *Player) FindUnit(instanceID string) (*Unit, bool) {
	for _, u := range p.Units {
		if u.InstanceID == instanceID {
			return u, true
		}
	}
	return nil, false
}

// HasSkill reports whether the player owns the skill.
func (p *Player) HasSkill(skillID string) bool {
	for _, s := range p.Skills {
		if s == skillID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	out := *p
	out.Hand = append([]string(nil), p.Hand...)
	out.Deck = append([]string(nil), p.Deck...)
	out.Discard = append([]string(nil), p.Discard...)
	out.Mana = p.Mana.Clone()
	out.Accum = p.Accum.Clone()
	out.Units = make([]*Unit, len(p.Units))
	for i, u := range p.Units {
		out.Units[i] = u.Clone()
	}
	out.Skills = append([]string(nil), p.Skills...)
	out.UsedTurn = cloneBoolMap(p.UsedTurn)
	out.UsedRound = cloneBoolMap(p.UsedRound)
	out.UsedCombat = cloneBoolMap(p.UsedCombat)
	out.InteractiveTokens = cloneStringMap(p.InteractiveTokens)
	out.Pending = p.Pending.Clone()
	out.DiceTaken = append([]string(nil), p.DiceTaken...)
	return &out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WoundCardID is the catalog ID of the wound card.
const WoundCardID = "card_wound"

// GameState is the root state snapshot. It is a plain, JSON-serializable
// value graph: no functions, no cycles. Commands clone it and return the
// mutated clone; the input state is never touched.
type GameState struct {
	Round     int            `json:"round"`
	TimeOfDay mana.TimeOfDay `json:"timeOfDay"`

	TurnOrder       []string `json:"turnOrder"`
	CurrentPlayerID string   `json:"currentPlayerId"`
	// EndAnnouncedBy is set once a player announces end of round; the
	// round ends after every other player takes one final turn.
	EndAnnouncedBy string `json:"endAnnouncedBy,omitempty"`

	Players []*Player       `json:"players"`
	Map     map[string]*Hex `json:"map"`

	Source          []mana.Die       `json:"source"`
	ActiveModifiers []ActiveModifier `json:"activeModifiers,omitempty"`
	Combat          *CombatState     `json:"combat,omitempty"`

	UnitOffer []string `json:"unitOffer,omitempty"`
	// TacticsTaken maps tactic ID -> player ID for the current round.
	TacticsTaken map[string]string `json:"tacticsTaken,omitempty"`

	RNG random.Stream `json:"rng"`
	// NextInstance feeds deterministic unique instance IDs (enemy tokens,
	// unit instances). Never a module-level counter.
	NextInstance int `json:"nextInstance"`

	Finished bool `json:"finished,omitempty"`
}

// Player returns the player with the given ID. A miss is a programmer
// error: validators guarantee existence before commands run.
func (st *GameState) Player(id string) (*Player, error) {
	for _, p := range st.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("player %s not found", id)
}

// HexAt returns the hex at a coordinate.
func (st *GameState) HexAt(c HexCoord) (*Hex, bool) {
	h, ok := st.Map[c.Key()]
	return h, ok
}

// NewInstanceID mints a deterministic unique instance ID. Call only on a
// cloned state inside a command.
func (st *GameState) NewInstanceID(prefix string) string {
	st.NextInstance++
	return fmt.Sprintf("%s-%d", prefix, st.NextInstance)
}

// Clone returns a deep copy of the whole state.
func (st *GameState) Clone() *GameState {
	out := *st
	out.TurnOrder = append([]string(nil), st.TurnOrder...)
	out.Players = make([]*Player, len(st.Players))
	for i, p := range st.Players {
		out.Players[i] = p.Clone()
	}
	out.Map = make(map[string]*Hex, len(st.Map))
	for k, h := range st.Map {
		out.Map[k] = h.Clone()
	}
	out.Source = mana.CloneDice(st.Source)
	out.ActiveModifiers = append([]ActiveModifier(nil), st.ActiveModifiers...)
	out.Combat = st.Combat.Clone()
	out.UnitOffer = append([]string(nil), st.UnitOffer...)
	out.TacticsTaken = cloneStringMap(st.TacticsTaken)
	return &out
}
