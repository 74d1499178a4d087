package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// harness wires an engine with the builtin catalog, debug actions and a test
// logger. Most tests drive it through ProcessAction like a real client.
type harness struct {
	t   *testing.T
	cat content.Catalog
	eng *Engine
}

func newHarness(t *testing.T, playerIDs ...string) *harness {
	t.Helper()
	if len(playerIDs) == 0 {
		playerIDs = []string{"p1"}
	}
	var setups []PlayerSetup
	for _, id := range playerIDs {
		setups = append(setups, PlayerSetup{ID: id, Name: id})
	}
	cat := content.NewBuiltinCatalog()
	st, err := NewGameState(42, setups, cat)
	require.NoError(t, err)
	eng := NewEngine(cat, st, WithLogger(zaptest.NewLogger(t)), WithDebugActions())
	return &harness{t: t, cat: cat, eng: eng}
}

func (h *harness) state() *GameState { return h.eng.State() }

func (h *harness) player(id string) *Player {
	h.t.Helper()
	p, err := h.eng.State().Player(id)
	require.NoError(h.t, err)
	return p
}

// do runs an action and fails the test if it is rejected.
func (h *harness) do(playerID string, act Action) []Event {
	h.t.Helper()
	events, err := h.eng.ProcessAction(playerID, act)
	require.NoError(h.t, err)
	for _, e := range events {
		if inv, ok := e.(InvalidActionEvent); ok {
			h.t.Fatalf("action %s rejected: %s (%s)", act.Type, inv.Code, inv.Message)
		}
	}
	return events
}

// expectInvalid runs an action and requires exactly one rejection with the
// given code.
func (h *harness) expectInvalid(playerID string, act Action, code string) {
	h.t.Helper()
	events, err := h.eng.ProcessAction(playerID, act)
	require.NoError(h.t, err)
	require.Len(h.t, events, 1)
	inv, ok := events[0].(InvalidActionEvent)
	require.True(h.t, ok, "expected INVALID_ACTION, got %T", events[0])
	require.Equal(h.t, code, inv.Code)
}

// gain injects points through the debug action.
func (h *harness) gain(playerID string, kind content.PointKind, amount int) {
	h.t.Helper()
	h.do(playerID, Action{Type: ActionDebugGainPoints, Points: kind, Amount: amount})
}

func (h *harness) gainAttack(playerID string, amount int, ct content.CombatType, el content.Element) {
	h.t.Helper()
	h.do(playerID, Action{Type: ActionDebugGainPoints, Points: content.PointAttack, Amount: amount, CombatType: ct, Element: el})
}

func (h *harness) gainBlock(playerID string, amount int, el content.Element) {
	h.t.Helper()
	h.do(playerID, Action{Type: ActionDebugGainPoints, Points: content.PointBlock, Amount: amount, Element: el})
}

// startCombat spawns the given enemies on the player's hex and enters
// combat, returning the instance IDs in spawn order.
func (h *harness) startCombat(playerID string, enemyIDs ...string) []string {
	h.t.Helper()
	for _, id := range enemyIDs {
		h.do(playerID, Action{Type: ActionDebugSpawnEnemy, EnemyID: id})
	}
	h.do(playerID, Action{Type: ActionEnterCombat})
	combat := h.state().Combat
	require.NotNil(h.t, combat)
	var ids []string
	for _, e := range combat.Enemies {
		ids = append(ids, e.InstanceID)
	}
	return ids
}

// startCombatAt enters combat against the garrison already on the player's
// hex, returning the enemy instance IDs.
func (h *harness) startCombatAt(playerID string) []string {
	h.t.Helper()
	h.do(playerID, Action{Type: ActionEnterCombat})
	combat := h.state().Combat
	require.NotNil(h.t, combat)
	var ids []string
	for _, e := range combat.Enemies {
		ids = append(ids, e.InstanceID)
	}
	return ids
}

// toPhase drives the combat machine forward to the given phase.
func (h *harness) toPhase(playerID string, phase CombatPhase) {
	h.t.Helper()
	for h.state().Combat != nil && h.state().Combat.Phase != phase {
		h.do(playerID, Action{Type: ActionEndCombatPhase})
	}
	require.NotNil(h.t, h.state().Combat)
}

// giveCard puts a card into the player's hand directly.
func (h *harness) giveCard(playerID, cardID string) {
	p := h.player(playerID)
	p.Hand = append(p.Hand, cardID)
}

// giveSkill grants a skill directly.
func (h *harness) giveSkill(playerID, skillID string) {
	p := h.player(playerID)
	p.Skills = append(p.Skills, skillID)
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type()
	}
	return out
}

func hasEvent(events []Event, t EventType) bool {
	for _, e := range events {
		if e.Type() == t {
			return true
		}
	}
	return false
}

func findEvent[E Event](events []Event) (E, bool) {
	for _, e := range events {
		if typed, ok := e.(E); ok {
			return typed, true
		}
	}
	var zero E
	return zero, false
}
