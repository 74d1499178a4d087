package mana

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/game/random"
)

// Die is one die in the shared mana source. Taken dice stay out of the
// source until the taking player's turn ends, when they are rerolled.
type Die struct {
	ID      string `json:"id"`
	Color   Color  `json:"color"`
	Taken   bool   `json:"taken"`
	TakenBy string `json:"takenBy,omitempty"`
}

// RollSource rolls a fresh source of count dice, threading the random
// stream. Die IDs are stable across rerolls so modifiers and actions can
// reference them.
func RollSource(s random.Stream, count int) ([]Die, random.Stream) {
	colors := AllColors()
	dice := make([]Die, count)
	cur := s
	for i := range dice {
		var v int
		v, cur = cur.Draw(len(colors))
		dice[i] = Die{
			ID:    fmt.Sprintf("die-%d", i+1),
			Color: colors[v],
		}
	}
	return dice, cur
}

// RerollDie rerolls a single die in place within a copied slice, returning
// the new dice and the advanced stream.
func RerollDie(dice []Die, dieID string, s random.Stream) ([]Die, random.Stream, bool) {
	colors := AllColors()
	out := append([]Die(nil), dice...)
	for i := range out {
		if out[i].ID != dieID {
			continue
		}
		var v int
		v, s = s.Draw(len(colors))
		out[i].Color = colors[v]
		out[i].Taken = false
		out[i].TakenBy = ""
		return out, s, true
	}
	return out, s, false
}

// FindDie returns the die with the given ID.
func FindDie(dice []Die, dieID string) (Die, bool) {
	for _, d := range dice {
		if d.ID == dieID {
			return d, true
		}
	}
	return Die{}, false
}

// CloneDice copies a dice slice.
func CloneDice(dice []Die) []Die {
	if dice == nil {
		return nil
	}
	return append([]Die(nil), dice...)
}
