package shash

import (
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// 32-bit xxHash constants.
const (
	prime32_1 = 2654435761
	prime32_2 = 2246822519
	prime32_3 = 3266489917
	prime32_4 = 668265263
	prime32_5 = 374761393
)

// XXHash is a one-block 32-bit xxHash over the four key words with the same
// fixed seed as Murmur. Since a Key is exactly one 16-byte stripe, the
// algorithm collapses to a single accumulator round plus the finalizer.
type XXHash struct{}

func (XXHash) Hash(k Key) uint32 {
	seed := hashSeed // force runtime (wrapping) uint32 arithmetic below
	v1 := xxhRound(seed+prime32_1+prime32_2, k[0])
	v2 := xxhRound(seed+prime32_2, k[1])
	v3 := xxhRound(seed, k[2])
	v4 := xxhRound(seed-prime32_1, k[3])

	h32 := bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
		bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)

	h32 += uint32(len(k) * 4)

	h32 ^= h32 >> 15
	h32 *= prime32_2
	h32 ^= h32 >> 13
	h32 *= prime32_3
	h32 ^= h32 >> 16
	return h32
}

func xxhRound(acc, input uint32) uint32 {
	acc += input * prime32_2
	acc = bits.RotateLeft32(acc, 13)
	acc *= prime32_1
	return acc
}

// XXHash64 digests the key's 16 little-endian bytes with cespare's xxHash64
// and folds the result to 32 bits. Kept as an external baseline so the
// benchmark suite can compare the hand-rolled strategies against a tuned
// general-purpose hash; interchangeable with the others everywhere.
type XXHash64 struct{}

func (XXHash64) Hash(k Key) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], k[0])
	binary.LittleEndian.PutUint32(buf[4:8], k[1])
	binary.LittleEndian.PutUint32(buf[8:12], k[2])
	binary.LittleEndian.PutUint32(buf[12:16], k[3])

	h := xxhash.Sum64(buf[:])
	return uint32(h ^ h>>32)
}
