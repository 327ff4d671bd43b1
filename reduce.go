package shash

// Reducer folds a 32-bit hash value into a bucket index. Mod and FastRange
// guarantee result < tableSize for tableSize > 0; Identity does not and is
// for benchmarking only. Like Hasher, implementations are stateless value
// types bound as type parameters for direct dispatch.
type Reducer interface {
	Reduce(hash, tableSize uint32) uint32
}

// Mod reduces by modulo. Unbiased for any hash, but carries a hardware
// divide per probe and inherits low-bit weakness on power-of-two table sizes.
type Mod struct{}

func (Mod) Reduce(hash, tableSize uint32) uint32 {
	return hash % tableSize
}

// FastRange scales the hash's fractional value into [0, tableSize) using a
// widened multiply, avoiding the divide and the low-bit bias of Mod. Lemire's
// fast alternative to the modulo reduction.
type FastRange struct{}

func (FastRange) Reduce(hash, tableSize uint32) uint32 {
	return uint32((uint64(hash) * uint64(tableSize)) >> 32)
}

// Identity returns the hash unreduced. It exists to isolate reduction cost in
// benchmarks and is unsafe as a table reducer: indices are unbounded, and a
// SpatialHash instantiated with it will panic on out-of-range slots.
type Identity struct{}

func (Identity) Reduce(hash, _ uint32) uint32 {
	return hash
}
