package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/random"
)

// PlayerSetup names one hero joining a new game.
type PlayerSetup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// startingDeck is the basic sixteen-card deed deck every hero begins with.
var startingDeck = []string{
	"card_march", "card_march", "card_march",
	"card_stamina", "card_stamina", "card_stamina",
	"card_swiftness", "card_swiftness",
	"card_rage", "card_rage",
	"card_determination",
	"card_tranquility",
	"card_promise",
	"card_threaten",
	"card_crystallize",
	"card_cold_toughness",
}

// startingHandSize is the initial draw (the level 1 hand limit).
const startingHandSize = 5

// sourceDicePerPlayer sizes the shared source: players plus two.
const sourceDiceExtra = 2

// NewGameState builds the initial snapshot for a scenario: the starting map,
// shuffled decks, a rolled source and the unit offer, all derived from the
// seed so identical inputs give identical games.
func NewGameState(seed uint64, players []PlayerSetup, cat content.Catalog) (*GameState, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("a game needs at least one player")
	}
	rng := random.NewStream(seed)

	st := &GameState{
		Round:     1,
		TimeOfDay: mana.Day,
		Map:       buildStartingMap(),
		RNG:       rng,
	}

	for _, setup := range players {
		deck := append([]string(nil), startingDeck...)
		var perm []int
		perm, st.RNG = st.RNG.Shuffle(len(deck))
		shuffled := make([]string, len(deck))
		for i, j := range perm {
			shuffled[i] = deck[j]
		}
		p := &Player{
			ID:            setup.ID,
			Name:          setup.Name,
			Position:      HexCoord{Q: 0, R: 0},
			Deck:          shuffled,
			Mana:          mana.NewInventory(),
			CommandTokens: 1,
		}
		drawCards(p, startingHandSize)
		st.Players = append(st.Players, p)
		st.TurnOrder = append(st.TurnOrder, setup.ID)
	}
	st.CurrentPlayerID = st.TurnOrder[0]

	st.Source, st.RNG = mana.RollSource(st.RNG, len(players)+sourceDiceExtra)

	// The unit offer holds one unit per player plus one, drawn from the
	// catalog in sorted order for determinism.
	offerSize := len(players) + 1
	unitIDs := cat.UnitIDs()
	for len(st.UnitOffer) < offerSize && len(unitIDs) > 0 {
		var idx int
		idx, st.RNG = st.RNG.Draw(len(unitIDs))
		st.UnitOffer = append(st.UnitOffer, unitIDs[idx])
		unitIDs = append(unitIDs[:idx:idx], unitIDs[idx+1:]...)
	}
	return st, nil
}

// buildStartingMap lays out the starting tile and its surroundings: open
// plains around the portal, a village, a keep garrisoned by guardsmen, an
// orc camp, a mage tower and rough terrain at the edges.
func buildStartingMap() map[string]*Hex {
	hexes := []*Hex{
		{Coord: HexCoord{0, 0}, Terrain: content.TerrainPlains},
		{Coord: HexCoord{1, 0}, Terrain: content.TerrainPlains},
		{Coord: HexCoord{0, 1}, Terrain: content.TerrainForest},
		{Coord: HexCoord{-1, 1}, Terrain: content.TerrainPlains, Site: SiteVillage},
		{Coord: HexCoord{-1, 0}, Terrain: content.TerrainHills},
		{Coord: HexCoord{1, -1}, Terrain: content.TerrainHills, Site: SiteOrcCamp, EnemyIDs: []string{"enemy_prowlers"}},
		{Coord: HexCoord{0, -1}, Terrain: content.TerrainPlains},
		{Coord: HexCoord{2, -1}, Terrain: content.TerrainHills, Site: SiteKeep, EnemyIDs: []string{"enemy_guardsmen"}},
		{Coord: HexCoord{2, 0}, Terrain: content.TerrainForest},
		{Coord: HexCoord{-2, 1}, Terrain: content.TerrainWasteland, Site: SiteMageTower, EnemyIDs: []string{"enemy_fire_golems"}},
		{Coord: HexCoord{-2, 2}, Terrain: content.TerrainSwamp, Site: SiteDungeon},
		{Coord: HexCoord{1, 1}, Terrain: content.TerrainDesert},
		{Coord: HexCoord{-1, 2}, Terrain: content.TerrainMountain},
		{Coord: HexCoord{0, 2}, Terrain: content.TerrainLake},
	}
	m := make(map[string]*Hex, len(hexes))
	for _, h := range hexes {
		m[h.Coord.Key()] = h
	}
	return m
}
