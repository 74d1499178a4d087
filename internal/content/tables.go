package content

// Terrain categorizes map hexes for movement cost.
type Terrain string

const (
	TerrainPlains    Terrain = "PLAINS"
	TerrainHills     Terrain = "HILLS"
	TerrainForest    Terrain = "FOREST"
	TerrainWasteland Terrain = "WASTELAND"
	TerrainDesert    Terrain = "DESERT"
	TerrainSwamp     Terrain = "SWAMP"
	TerrainMountain  Terrain = "MOUNTAIN"
	TerrainLake      Terrain = "LAKE"
	TerrainCity      Terrain = "CITY"
)

// baseTerrainCost is the printed day-time move cost per terrain. Absent
// entries are impassable.
var baseTerrainCost = map[Terrain]int{
	TerrainPlains:    2,
	TerrainHills:     3,
	TerrainForest:    3,
	TerrainWasteland: 4,
	TerrainDesert:    3,
	TerrainSwamp:     5,
	TerrainCity:      2,
}

// nightTerrainCost overrides the base cost for terrains whose cost changes
// at night.
var nightTerrainCost = map[Terrain]int{
	TerrainForest: 5,
	TerrainDesert: 3, // desert is cheap at night in some expansions; base set keeps 3
}

// TerrainCost returns the printed move cost for a terrain, before any
// modifier reductions. ok is false for impassable terrain.
func TerrainCost(t Terrain, night bool) (cost int, ok bool) {
	c, ok := baseTerrainCost[t]
	if !ok {
		return 0, false
	}
	if night {
		if n, has := nightTerrainCost[t]; has {
			return n, true
		}
	}
	return c, true
}

// BlockEfficient reports whether a block element counters an attack element
// at full value. Inefficient block is halved (rounding down). This is
// catalog data, not engine logic: the engine only asks the question.
//
//	physical attack  — every block is efficient
//	fire attack      — ice and cold-fire block are efficient
//	ice attack       — fire and cold-fire block are efficient
//	cold-fire attack — only cold-fire block is efficient
func BlockEfficient(block, attack Element) bool {
	switch attack {
	case ElementPhysical:
		return true
	case ElementFire:
		return block == ElementIce || block == ElementColdFire
	case ElementIce:
		return block == ElementFire || block == ElementColdFire
	case ElementColdFire:
		return block == ElementColdFire
	}
	return false
}

// AttackEfficient reports whether an attack element is applied at full value
// against an enemy with the given resistances. A resisted element is halved;
// cold-fire is resisted only when both fire and ice are.
func AttackEfficient(attack Element, resistances []Element) bool {
	resists := func(el Element) bool {
		for _, r := range resistances {
			if r == el {
				return true
			}
		}
		return false
	}
	switch attack {
	case ElementColdFire:
		return !(resists(ElementFire) && resists(ElementIce))
	default:
		return !resists(attack)
	}
}

// LevelThresholds lists the cumulative fame required for each level beyond
// the first. Index i is the fame needed to reach level i+2.
var LevelThresholds = []int{3, 8, 15, 24, 35, 48, 63, 80, 99}

// LevelForFame returns the hero level for a fame total (1-based).
func LevelForFame(fame int) int {
	level := 1
	for _, threshold := range LevelThresholds {
		if fame >= threshold {
			level++
		}
	}
	return level
}

// ArmorForLevel returns hero armor by level.
func ArmorForLevel(level int) int {
	switch {
	case level >= 7:
		return 4
	case level >= 3:
		return 3
	default:
		return 2
	}
}

// HandLimitForLevel returns the unmodified hand limit by level.
func HandLimitForLevel(level int) int {
	switch {
	case level >= 9:
		return 7
	case level >= 5:
		return 6
	default:
		return 5
	}
}

// ReputationBonus maps a reputation track position (clamped to [-7, 7]) to
// the influence bonus applied when interacting.
func ReputationBonus(rep int) int {
	switch {
	case rep <= -7:
		return -999 // X on the track: interaction impossible
	case rep <= -5:
		return -3
	case rep <= -3:
		return -2
	case rep <= -1:
		return -1
	case rep >= 7:
		return 5
	case rep >= 5:
		return 3
	case rep >= 3:
		return 2
	case rep >= 1:
		return 1
	}
	return 0
}
