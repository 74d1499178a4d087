// Package random provides a pure, value-semantics random stream.
//
// Every draw returns the drawn value together with the advanced stream; the
// receiver is never mutated. Commands thread the stream through GameState so
// that a game is fully reproducible from its seed and action log.
package random

// Stream is an immutable position in a pseudo-random sequence. The zero value
// is a valid stream (equivalent to NewStream(0)).
type Stream struct {
	State uint64 `json:"state"`
}

// NewStream creates a stream seeded with the given value.
func NewStream(seed uint64) Stream {
	return Stream{State: seed}
}

// next advances the splitmix64 state and returns the output word.
func next(state uint64) (uint64, uint64) {
	state += 0x9e3779b97f4a7c15
	z := state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31), state
}

// Draw returns a uniformly distributed value in [0, n) and the advanced
// stream. n must be positive.
func (s Stream) Draw(n int) (int, Stream) {
	if n <= 0 {
		return 0, s
	}
	v, state := next(s.State)
	return int(v % uint64(n)), Stream{State: state}
}

// DrawN performs count draws in [0, n) and returns them with the final stream.
func (s Stream) DrawN(count, n int) ([]int, Stream) {
	out := make([]int, 0, count)
	cur := s
	for i := 0; i < count; i++ {
		var v int
		v, cur = cur.Draw(n)
		out = append(out, v)
	}
	return out, cur
}

// Shuffle returns a new permutation of indices [0, n) (Fisher-Yates) and the
// advanced stream. The input stream is unchanged.
func (s Stream) Shuffle(n int) ([]int, Stream) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	cur := s
	for i := n - 1; i > 0; i-- {
		var j int
		j, cur = cur.Draw(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, cur
}

// Pick removes a random element index from a collection of the given size,
// returning the chosen index and the advanced stream. Convenience for token
// draws from piles.
func (s Stream) Pick(size int) (int, Stream) {
	return s.Draw(size)
}
