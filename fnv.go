package shash

// FNV-1a 32-bit parameters.
const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// FNV is FNV-1a over the key's 16 little-endian bytes. Byte-at-a-time, so
// slower than the word-based strategies; included because its distribution on
// short binary keys is a useful benchmark reference point.
type FNV struct{}

func (FNV) Hash(k Key) uint32 {
	h := uint32(fnvOffset32)
	for i := 0; i < len(k); i++ {
		w := k[i]
		for s := 0; s < 32; s += 8 {
			h ^= (w >> s) & 0xff
			h *= fnvPrime32
		}
	}
	return h
}
