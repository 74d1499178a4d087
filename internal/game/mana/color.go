// Package mana models the three mana-acquisition mechanisms of the game:
// the shared source dice, permanent crystals, and turn-scoped pure mana
// tokens, together with the color-gating rules for paying card costs.
package mana

// Color represents a mana color.
type Color string

const (
	ColorRed   Color = "RED"
	ColorBlue  Color = "BLUE"
	ColorGreen Color = "GREEN"
	ColorWhite Color = "WHITE"
	ColorGold  Color = "GOLD"
	ColorBlack Color = "BLACK"
)

// BasicColors returns the four crystal-capable colors.
func BasicColors() []Color {
	return []Color{ColorRed, ColorBlue, ColorGreen, ColorWhite}
}

// IsBasic reports whether the color can be held as a crystal.
func IsBasic(c Color) bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorWhite:
		return true
	}
	return false
}

// AllColors returns every die face color.
func AllColors() []Color {
	return []Color{ColorRed, ColorBlue, ColorGreen, ColorWhite, ColorGold, ColorBlack}
}

// TimeOfDay gates gold and black mana availability.
type TimeOfDay string

const (
	Day   TimeOfDay = "DAY"
	Night TimeOfDay = "NIGHT"
)

// PayReason explains why a payment attempt was rejected.
type PayReason string

const (
	PayOK            PayReason = ""
	PayGoldAtNight   PayReason = "GOLD_AT_NIGHT"
	PayBlackAtDay    PayReason = "BLACK_AT_DAY"
	PayBlackOnAction PayReason = "BLACK_ON_ACTION"
	PayColorMismatch PayReason = "COLOR_MISMATCH"
)

// CanPay reports whether mana of color c can pay a cost accepting the given
// colors. Gold is wild by day only. Black pays spell costs by night; inside a
// dungeon or tomb the night rules are in force regardless of the actual time
// of day. Black never pays for ordinary action cards.
//
// nightRules is true when the combat site overrides the time of day
// (dungeon/tomb). isSpell distinguishes spells from action cards.
func CanPay(c Color, accepted []Color, tod TimeOfDay, nightRules, isSpell bool) PayReason {
	effectiveNight := tod == Night || nightRules
	switch c {
	case ColorGold:
		if effectiveNight {
			return PayGoldAtNight
		}
		return PayOK
	case ColorBlack:
		if !isSpell {
			return PayBlackOnAction
		}
		if !effectiveNight {
			return PayBlackAtDay
		}
		return PayOK
	}
	for _, a := range accepted {
		if a == c {
			return PayOK
		}
	}
	return PayColorMismatch
}
