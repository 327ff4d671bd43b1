// Package shash implements a fixed-capacity spatial hash for 2-D broad-phase
// queries: continuous coordinates are quantized into integer grid cells and
// each cell's values live in a hash bucket resolved through a pluggable
// hash/reduction strategy pair.
//
// The table is generational: Reset advances a counter instead of clearing
// buckets, so a per-frame clear is O(1) and stale buckets are reclaimed
// lazily on first touch. Collisions are resolved by re-hashing with a fresh
// nonce for a bounded number of rounds; when every round lands on a live
// bucket of a different cell, the lookup degrades to aliasing (the last
// probed bucket is used as-is) rather than failing. The contract is therefore
// probabilistic: queries can include values from unrelated cells, and sizing
// TableSize and RehashRounds against expected load is what keeps that rare.
// The Aliased counter in Stats reports every such degrade.
//
// A table assumes exclusive access per call: no internal locking, callers
// synchronize externally or partition work by salt or by instance.
package shash

import "math"

const (
	defaultCellSize     = 1.0
	defaultTableSize    = 1024
	defaultRehashRounds = 5
)

// Config sizes a table. Zero fields fall back to defaults, mirroring the
// zero value of Config being usable.
type Config struct {
	// CellSize is the world-unit edge length of one grid cell.
	CellSize float64

	// TableSize is the bucket count. Fixed until the next Reset that
	// changes it; choose it relative to the number of occupied cells per
	// generation, not the number of values.
	TableSize uint32

	// RehashRounds bounds collision resolution: a lookup makes at most
	// RehashRounds+1 hash attempts before settling for an aliased bucket.
	RehashRounds uint32

	// StatsEnabled maintains probe/collision counters. The aliasing
	// counter is always maintained regardless.
	StatsEnabled bool
}

// DefaultConfig returns a small general-purpose table: unit cells,
// 1024 buckets, 5 rehash rounds.
func DefaultConfig() Config {
	return Config{
		CellSize:     defaultCellSize,
		TableSize:    defaultTableSize,
		RehashRounds: defaultRehashRounds,
		StatsEnabled: true,
	}
}

// Stats is a point-in-time snapshot of table telemetry.
type Stats struct {
	Inserts    uint64 // cell-level insert operations
	Queries    uint64 // cell-level query operations
	Probes     uint64 // hash attempts across all lookups
	Collisions uint64 // probes that hit a live bucket of another cell
	Aliased    uint64 // lookups that exhausted all rounds and aliased
	TableSize  uint32
	Generation uint32
}

// SpatialHash maps grid cells to value collections. H and R bind the hash
// and reduction strategies statically; instantiate with stateless strategy
// types (Murmur, FastRange, ...) so per-probe dispatch is direct.
type SpatialHash[V any, H Hasher, R Reducer] struct {
	invCellSize  float64
	tableSize    uint32
	generation   uint32 // pepper; advanced by Reset
	rehashRounds uint32
	statsEnabled bool
	buckets      []Bucket[V]

	hasher  H
	reducer R

	inserts    uint64
	queries    uint64
	probes     uint64
	collisions uint64
	aliased    uint64
}

// New builds a table from config, normalizing zero or nonsensical fields to
// defaults.
func New[V any, H Hasher, R Reducer](config Config) *SpatialHash[V, H, R] {
	cellSize := config.CellSize
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	tableSize := config.TableSize
	if tableSize == 0 {
		tableSize = defaultTableSize
	}
	rounds := config.RehashRounds
	if rounds == 0 {
		rounds = defaultRehashRounds
	}

	return &SpatialHash[V, H, R]{
		invCellSize:  1.0 / cellSize,
		tableSize:    tableSize,
		rehashRounds: rounds,
		statsEnabled: config.StatsEnabled,
		buckets:      newBucketArray[V](tableSize),
	}
}

// NewWithDefaults builds a table with the default strategy pair
// (Murmur hashing, fast-range reduction) and DefaultConfig sizing.
func NewWithDefaults[V any]() *SpatialHash[V, Murmur, FastRange] {
	return New[V, Murmur, FastRange](DefaultConfig())
}

// Reset logically clears the table for a new generation and reassigns the
// cell size. The bucket array is reallocated only when tableSize differs
// from the current size; otherwise the clear is O(1) and stale buckets are
// reclaimed lazily as they are next resolved. Bucket pointers obtained
// before a Reset must not be retained across it.
func (t *SpatialHash[V, H, R]) Reset(cellSize float64, tableSize uint32) {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	if tableSize == 0 {
		tableSize = defaultTableSize
	}

	t.invCellSize = 1.0 / cellSize
	t.generation++

	if t.tableSize != tableSize {
		t.tableSize = tableSize
		t.buckets = newBucketArray[V](tableSize)
	}
}

// Cell quantizes one continuous coordinate into its grid cell index.
func (t *SpatialHash[V, H, R]) Cell(coordinate float64) int32 {
	return int32(math.Floor(coordinate * t.invCellSize))
}

// GetBucket resolves cell (x, y) under the given salt to its bucket for the
// current generation.
//
// Each attempt hashes [x, y, salt, nonce] with a fresh nonce: a stale bucket
// is claimed for the cell, a live bucket with matching coordinates is
// returned as-is, and a live bucket of a different cell retries. After
// rehashRounds+1 attempts the last probed bucket is returned even though it
// belongs to another cell; the degrade is counted in Stats().Aliased but is
// deliberately not an error path.
func (t *SpatialHash[V, H, R]) GetBucket(x, y, salt int32) *Bucket[V] {
	key := Key{uint32(x), uint32(y), uint32(salt), t.generation}

	var bucket *Bucket[V]
	for i := uint32(0); i <= t.rehashRounds; i++ {
		key[3]++
		if t.statsEnabled {
			t.probes++
		}

		index := t.reducer.Reduce(t.hasher.Hash(key), t.tableSize)
		bucket = &t.buckets[index]

		if bucket.claimed != t.generation {
			bucket.claim(x, y, t.generation)
			return bucket
		}
		if bucket.cellX == x && bucket.cellY == y {
			return bucket
		}
		if t.statsEnabled {
			t.collisions++
		}
	}

	t.aliased++
	return bucket
}

// InsertAtCell appends value to the bucket of cell (x, y).
func (t *SpatialHash[V, H, R]) InsertAtCell(x, y int32, value V, salt int32) {
	if t.statsEnabled {
		t.inserts++
	}
	bucket := t.GetBucket(x, y, salt)
	bucket.values = append(bucket.values, value)
}

// QueryAtCell appends the values stored at cell (x, y) to dst and returns
// the extended slice. The result never aliases bucket storage.
func (t *SpatialHash[V, H, R]) QueryAtCell(dst []V, x, y, salt int32) []V {
	if t.statsEnabled {
		t.queries++
	}
	bucket := t.GetBucket(x, y, salt)
	return append(dst, bucket.values...)
}

// Stats returns current telemetry. Probes and Collisions are only
// maintained when Config.StatsEnabled is set; Aliased always is.
func (t *SpatialHash[V, H, R]) Stats() Stats {
	return Stats{
		Inserts:    t.inserts,
		Queries:    t.queries,
		Probes:     t.probes,
		Collisions: t.collisions,
		Aliased:    t.aliased,
		TableSize:  t.tableSize,
		Generation: t.generation,
	}
}
