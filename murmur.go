package shash

import "math/bits"

// MurmurHash3 x86_32 block constants.
const (
	murmurC1 = 0xcc9e2d51
	murmurC2 = 0x1b873593
)

// Murmur is a one-block MurmurHash3 (x86_32) over the four key words with a
// fixed seed. The default strategy: best distribution of the bunch on grid
// coordinates at a small constant cost.
type Murmur struct{}

func (Murmur) Hash(k Key) uint32 {
	h1 := hashSeed

	for i := 0; i < len(k); i++ {
		k1 := k[i]
		k1 *= murmurC1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= murmurC2

		h1 ^= k1
		h1 = bits.RotateLeft32(h1, 13)
		h1 = h1*5 + 0xe6546b64
	}

	h1 ^= uint32(len(k) * 4)
	return murmurFmix(h1)
}

// murmurFmix is the MurmurHash3 finalizer; forces avalanche on the last block.
func murmurFmix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
