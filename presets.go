package shash

import (
	"math"

	"github.com/PawelBoe/SpatialHash/internal/mathutil"
)

// ConfigForLoad sizes a table for an expected number of occupied cells per
// generation at the given load factor (occupied cells / buckets). The bucket
// count is rounded up to a power of two so runs with different loads stay
// comparable; rounds are raised with load since probe exhaustion gets more
// likely as the table fills.
func ConfigForLoad(cellSize float64, expectedCells int, loadFactor float64) Config {
	if loadFactor <= 0 {
		loadFactor = 1.0
	}
	if expectedCells < 1 {
		expectedCells = 1
	}

	tableSize := mathutil.NextPowerOf2(int(math.Ceil(float64(expectedCells) / loadFactor)))

	rounds := uint32(defaultRehashRounds)
	if loadFactor > 0.7 {
		rounds = 10
	}

	return Config{
		CellSize:     cellSize,
		TableSize:    uint32(tableSize),
		RehashRounds: rounds,
		StatsEnabled: true,
	}
}

// SparseWorldConfig suits scenes where far fewer cells are occupied than
// exist: generous headroom, few rounds, counters on.
func SparseWorldConfig() Config {
	return Config{
		CellSize:     defaultCellSize,
		TableSize:    4096,
		RehashRounds: defaultRehashRounds,
		StatsEnabled: true,
	}
}

// CrowdedWorldConfig trades memory for probe headroom under dense occupancy;
// counters stay off to keep the per-probe cost minimal.
func CrowdedWorldConfig() Config {
	return Config{
		CellSize:     defaultCellSize,
		TableSize:    65536,
		RehashRounds: 10,
		StatsEnabled: false,
	}
}
