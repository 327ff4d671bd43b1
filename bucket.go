package shash

// neverClaimed marks a bucket no generation has touched yet. Fresh bucket
// arrays are stamped with it so the zero generation reads them as stale.
const neverClaimed = ^uint32(0)

// Bucket is one slot of the table: the value collection for a single
// (cell, salt) pair during a single generation. Its cell coordinates are
// meaningful only while its claim stamp equals the table's current
// generation; otherwise the contents are stale and the next resolution
// reclaims the slot.
type Bucket[V any] struct {
	cellX   int32
	cellY   int32
	claimed uint32
	values  []V
}

// claim takes the slot for cell (x, y) in the given generation. The value
// slice is truncated, not reallocated, so capacity survives across frames.
func (b *Bucket[V]) claim(x, y int32, generation uint32) {
	b.claimed = generation
	b.values = b.values[:0]
	b.cellX = x
	b.cellY = y
}

// Cell returns the cell coordinates this bucket currently represents.
func (b *Bucket[V]) Cell() (x, y int32) {
	return b.cellX, b.cellY
}

// Values returns the bucket's live value collection. The slice is owned by
// the table and is invalidated by the next claim of this slot; copy it to
// keep it past further table operations.
func (b *Bucket[V]) Values() []V {
	return b.values
}

// Append adds a value directly to the bucket. Diagnostic path for harnesses
// that resolve buckets themselves via GetBucket.
func (b *Bucket[V]) Append(v V) {
	b.values = append(b.values, v)
}

// Len returns the number of values currently stored in the bucket.
func (b *Bucket[V]) Len() int {
	return len(b.values)
}

// newBucketArray allocates n empty buckets, all stamped never-claimed.
func newBucketArray[V any](n uint32) []Bucket[V] {
	buckets := make([]Bucket[V], n)
	for i := range buckets {
		buckets[i].claimed = neverClaimed
	}
	return buckets
}
