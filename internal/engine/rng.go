package engine

// Deterministic PRNG primitives for the dice-bingo engine. Every draw is a
// pure function of host-recorded inputs (block height, timestamp, nonce,
// counters), so replaying the same inputs reproduces the same cards and
// dice bit-for-bit. The mixing constants are part of the recorded-game
// format and must not change.

const (
	mixMul1 = 0xc6a4a7935bd1e995
	mixMul2 = 0x5851f42d4c957f2d
	mixMul3 = 0x2545f4914f6cdd1d
	mixMul4 = 0x1b873593
	mixMul5 = 0xcc9e2d51
	mixPhi  = 0x9e3779b97f4a7c15
	finMul  = 0xff51afd7ed558ccd

	minstdMul = 48271
	minstdMod = 2147483647
)

// CardSeed mixes the host inputs into the 64-bit seed used for card
// generation, with a splitmix64-style finalization pass.
func CardSeed(height, timestamp, nonce, counter uint64) uint64 {
	seed := height*mixMul1 + timestamp + nonce*mixMul2 + counter*mixPhi
	seed ^= seed >> 33
	seed *= finMul
	seed ^= seed >> 33
	return seed
}

// DiceSeed mixes the host inputs into the initial xorshift state for a dice
// roll. nonce is the zero-based roll index within the current game. Unlike
// CardSeed there is no finalization pass; the raw mix is the stream state.
func DiceSeed(height, timestamp, nonce, counter, totalGames uint64) uint64 {
	return (height*mixMul1+timestamp)*mixMul2 +
		nonce*mixMul3 +
		counter*mixMul4 +
		totalGames*mixMul5
}

// NextMinstd advances a MINSTD linear-congruential state. The 64-bit
// multiply wraps before the modulo is applied, matching the original
// shuffle exactly.
func NextMinstd(state uint64) uint64 {
	return (state*minstdMul + 1) % minstdMod
}

// Xorshift is a 64-bit xorshift stream. The four dice of a roll are drawn
// from one evolving state, so draw order matters.
type Xorshift struct {
	state uint64
}

// NewXorshift seeds a stream.
func NewXorshift(seed uint64) *Xorshift {
	return &Xorshift{state: seed}
}

// Next advances the stream and returns the new state.
func (x *Xorshift) Next() uint64 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 7
	x.state ^= x.state << 17
	return x.state
}

// Die returns the next die value in [1,6].
func (x *Xorshift) Die() uint8 {
	return uint8(x.Next()%6) + 1
}

// Dice draws four dice from a fresh stream seeded with seed.
func Dice(seed uint64) [4]uint8 {
	x := NewXorshift(seed)
	var d [4]uint8
	for i := range d {
		d[i] = x.Die()
	}
	return d
}
