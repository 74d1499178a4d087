package mana

// CrystalCap is the maximum number of crystals a player may hold per color.
const CrystalCap = 3

// Inventory holds a player's mana: permanent crystals (capped per basic
// color) and pure mana tokens that expire at end of turn. Inventory is plain
// data; commands copy it via Clone before mutating.
type Inventory struct {
	Crystals map[Color]int `json:"crystals"`
	Tokens   []Color       `json:"tokens"`
}

// NewInventory creates an empty inventory.
func NewInventory() Inventory {
	return Inventory{Crystals: make(map[Color]int)}
}

// Clone returns a deep copy.
func (inv Inventory) Clone() Inventory {
	out := Inventory{Crystals: make(map[Color]int, len(inv.Crystals))}
	for c, n := range inv.Crystals {
		out.Crystals[c] = n
	}
	if len(inv.Tokens) > 0 {
		out.Tokens = append([]Color(nil), inv.Tokens...)
	}
	return out
}

// AddCrystal adds one crystal of the given color. Returns false when the
// color is not crystal-capable or the cap is reached; callers convert the
// overflow into a turn-scoped token.
func (inv *Inventory) AddCrystal(c Color) bool {
	if !IsBasic(c) {
		return false
	}
	if inv.Crystals == nil {
		inv.Crystals = make(map[Color]int)
	}
	if inv.Crystals[c] >= CrystalCap {
		return false
	}
	inv.Crystals[c]++
	return true
}

// SpendCrystal removes one crystal of the given color.
func (inv *Inventory) SpendCrystal(c Color) bool {
	if inv.Crystals[c] <= 0 {
		return false
	}
	inv.Crystals[c]--
	return true
}

// AddToken adds a turn-scoped pure mana token.
func (inv *Inventory) AddToken(c Color) {
	inv.Tokens = append(inv.Tokens, c)
}

// SpendToken removes the first token of the given color.
func (inv *Inventory) SpendToken(c Color) bool {
	for i, t := range inv.Tokens {
		if t == c {
			inv.Tokens = append(inv.Tokens[:i:i], inv.Tokens[i+1:]...)
			return true
		}
	}
	return false
}

// HasToken reports whether a token of the color is held.
func (inv *Inventory) HasToken(c Color) bool {
	for _, t := range inv.Tokens {
		if t == c {
			return true
		}
	}
	return false
}

// ClearTokens drops all pure mana tokens (end of turn).
func (inv *Inventory) ClearTokens() {
	inv.Tokens = nil
}

// CrystalCount returns the crystal count for a color.
func (inv *Inventory) CrystalCount(c Color) int {
	return inv.Crystals[c]
}
