package shash

// Key is the lookup key digested by hash strategies: the four 32-bit words
// [cellX, cellY, salt, nonce]. The engine builds it explicitly instead of
// reinterpreting struct memory, so the bit-level hash contract is independent
// of memory layout. Words are combined little-endian wherever a strategy
// folds them into wider integers.
type Key [4]uint32

// hashSeed is the fixed seed shared by the seeded strategies (Murmur, XXHash).
const hashSeed uint32 = 15953071

// Hasher digests a Key into a 32-bit hash value. Implementations are
// stateless value types so that instantiating SpatialHash with a concrete
// strategy compiles to direct calls; they must be pure, allocation-free and
// deterministic across processes.
type Hasher interface {
	Hash(k Key) uint32
}

// XorMul combines the four key words with per-word prime multipliers and XOR.
// The cheapest strategy here; distribution is noticeably weaker than Murmur
// or XXHash on low-entropy coordinates.
type XorMul struct{}

func (XorMul) Hash(k Key) uint32 {
	const (
		p1 = 15953071
		p2 = 37953119
		p3 = 73856093
		p4 = 93856897
	)
	return (p1 * k[0]) ^ (p2 * k[1]) ^ (p3 * k[2]) ^ (p4 * k[3])
}

// Knuth folds the key's two 64-bit halves and applies Knuth's multiplicative
// hash. Shifts by 8 rather than 16 to keep some of the low bits for a
// subsequent range reduction (middle bits carry the most entropy).
type Knuth struct{}

func (Knuth) Hash(k Key) uint32 {
	lo := uint64(k[0]) | uint64(k[1])<<32
	hi := uint64(k[2]) | uint64(k[3])<<32
	return uint32(((lo ^ hi) * 2654435761) >> 8)
}
