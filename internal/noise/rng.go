// Package noise provides the deterministic random source and the value-noise
// family (fBm, turbulence, ridged) used by procedural effects.
package noise

// Rng is a xorshift64 generator. The same seed always yields the same sequence.
type Rng struct {
	state uint64
}

// NewRng seeds a generator; a zero seed is coerced to 1.
func NewRng(seed uint64) *Rng {
	return &Rng{state: max(seed, 1)}
}

// Reseed restarts the sequence from seed.
func (r *Rng) Reseed(seed uint64) { r.state = max(seed, 1) }

func (r *Rng) Uint64() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

func (r *Rng) Uint32() uint32 { return uint32(r.Uint64()) }

// Uint8 returns the top byte of the next value.
func (r *Rng) Uint8() uint8 { return uint8(r.Uint64() >> 56) }

// Float64 returns a value in [0, 1) built from 24 random bits.
func (r *Rng) Float64() float64 {
	return float64(r.Uint64()&0xFFFFFF) / float64(0x1000000)
}

// Range returns a value in [lo, hi).
func (r *Rng) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Intn returns an integer in [lo, hi], inclusive. hi < lo returns lo.
func (r *Rng) Intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(hi-lo) + 1
	return lo + int(r.Uint64()%span)
}

// Chance reports true with probability p.
func (r *Rng) Chance(p float64) bool { return r.Float64() < p }
