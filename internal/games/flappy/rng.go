package flappy

// Linear-congruential generator constants (glibc's rand parameters).
const (
	rngA = 1103515245
	rngC = 12345
	rngM = 1 << 31
)

// Advance performs one LCG step: (a*seed + c) mod 2^31.
// The product fits in uint64 for any 31-bit seed, so the step is exact.
func Advance(seed int64) int64 {
	s := uint64(seed) & (rngM - 1)
	return int64((rngA*s + rngC) % rngM)
}

// Scale maps a raw 31-bit seed into [-1, 1].
func Scale(seed int64) float64 {
	return 2*float64(seed)/float64(rngM-1) - 1
}

// RNG is a stateful stream over Advance. A run pulls exactly one value per tick,
// so the sequence depends only on the seed and the tick count.
type RNG struct {
	seed  int64
	draws int
}

// NewRNG creates a generator. Only the low 31 bits of seed are used.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed & (rngM - 1)}
}

// Next advances the generator and returns the new value in [-1, 1].
func (r *RNG) Next() float64 {
	r.seed = Advance(r.seed)
	r.draws++
	return Scale(r.seed)
}

// Seed returns the current raw state.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Draws returns how many values have been pulled.
func (r *RNG) Draws() int {
	return r.draws
}
