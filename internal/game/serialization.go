package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Checksum computes a deterministic SHA-256 fingerprint of a state snapshot.
// Two states with equal checksums are the same game position; replay playback
// and networked clients compare checksums to detect divergence.
func (st *GameState) Checksum() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%d|%s|%s|%s|%t|%d|%d\n",
		st.Round,
		st.TimeOfDay,
		st.CurrentPlayerID,
		st.EndAnnouncedBy,
		st.Finished,
		st.RNG.State,
		st.NextInstance,
	)

	for _, p := range st.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%d|%d|%d|%t|%d|%d\n",
			p.ID, p.Position.Key(), p.Fame, p.Reputation,
			p.CommandTokens, p.KnockedOut, p.WoundsThisCombat, p.LevelUpsOwed)
		fmt.Fprintf(&buf, "CARDS:%v|%v|%v\n", p.Hand, p.Deck, p.Discard)
		writeSortedCounts(&buf, "CRYSTALS", p.Mana.Crystals)
		fmt.Fprintf(&buf, "TOKENS:%v\n", p.Mana.Tokens)
		fmt.Fprintf(&buf, "ACCUM:%d|%d|%d\n", p.Accum.Move, p.Accum.Influence, p.Accum.Heal)
		writeSortedCounts(&buf, "ATTACK", p.Accum.Attack)
		writeSortedCounts(&buf, "BLOCK", p.Accum.Block)
		for _, u := range p.Units {
			fmt.Fprintf(&buf, "UNIT:%s|%s|%t|%t|%t\n",
				u.InstanceID, u.DefID, u.Ready, u.Wounded, u.ResistanceUsed)
		}
		fmt.Fprintf(&buf, "SKILLS:%v|%s|%t\n", p.Skills, p.Tactic, p.TacticFlipped)
		if p.Pending != nil {
			fmt.Fprintf(&buf, "PENDING:%s\n", p.Pending.Kind)
		}
	}

	hexKeys := make([]string, 0, len(st.Map))
	for k := range st.Map {
		hexKeys = append(hexKeys, k)
	}
	sort.Strings(hexKeys)
	for _, k := range hexKeys {
		h := st.Map[k]
		fmt.Fprintf(&buf, "HEX:%s|%s|%s|%t|%v\n", k, h.Terrain, h.Site, h.Conquered, h.EnemyIDs)
	}

	for _, d := range st.Source {
		fmt.Fprintf(&buf, "DIE:%s|%s|%t\n", d.ID, d.Color, d.Taken)
	}
	for _, m := range st.ActiveModifiers {
		fmt.Fprintf(&buf, "MOD:%s|%s|%d|%s|%s|%s|%s\n",
			m.ID, m.Kind, m.Amount, m.Duration, m.PlayerScope, m.EnemyScope, m.UnitScope)
	}
	if st.Combat != nil {
		fmt.Fprintf(&buf, "COMBAT:%s|%s|%v\n", st.Combat.Phase, st.Combat.PlayerID, st.Combat.Participants)
		for _, e := range st.Combat.Enemies {
			fmt.Fprintf(&buf, "ENEMY:%s|%s|%t|%v|%v|%s\n",
				e.InstanceID, e.DefID, e.Defeated, e.AttacksBlocked, e.DamageResolved, e.SummonedTokenID)
		}
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// writeSortedCounts emits a count map in key order so the fingerprint is
// independent of map iteration order.
func writeSortedCounts[K ~string](buf *bytes.Buffer, label string, m map[K]int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	buf.WriteString(label)
	for _, k := range keys {
		fmt.Fprintf(buf, ":%s=%d", k, m[K(k)])
	}
	buf.WriteString("\n")
}
