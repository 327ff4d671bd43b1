package shash

import (
	"math/rand"
	"slices"
	"testing"
)

func TestCellQuantization(t *testing.T) {
	tests := []struct {
		name     string
		cellSize float64
		coord    float64
		want     int32
	}{
		{"unit zero", 1.0, 0.0, 0},
		{"unit inside", 1.0, 0.5, 0},
		{"unit boundary", 1.0, 1.0, 1},
		{"unit negative", 1.0, -0.5, -1},
		{"unit negative boundary", 1.0, -1.0, -1},
		{"unit large", 1.0, 20.0, 20},
		{"half inside", 0.5, 0.4, 0},
		{"half boundary", 0.5, 0.5, 1},
		{"half negative", 0.5, -0.25, -1},
		{"half large", 0.5, 1.75, 3},
		{"coarse", 4.0, 9.0, 2},
		{"coarse negative", 4.0, -9.0, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := New[int, Murmur, FastRange](Config{CellSize: tt.cellSize, TableSize: 64})
			if got := table.Cell(tt.coord); got != tt.want {
				t.Errorf("Cell(%v) with cell size %v = %d, want %d", tt.coord, tt.cellSize, got, tt.want)
			}
		})
	}
}

func TestCellMonotonic(t *testing.T) {
	table := New[int, Murmur, FastRange](Config{CellSize: 0.25, TableSize: 64})

	prev := table.Cell(-10.0)
	for c := -10.0; c <= 10.0; c += 0.01 {
		got := table.Cell(c)
		if got < prev {
			t.Fatalf("Cell not monotonic: Cell(%v) = %d after %d", c, got, prev)
		}
		prev = got
	}
}

func TestGetBucketClaimsAndMatches(t *testing.T) {
	table := NewWithDefaults[int]()

	b := table.GetBucket(3, -4, 7)
	x, y := b.Cell()
	if x != 3 || y != -4 {
		t.Fatalf("claimed bucket has cell (%d, %d), want (3, -4)", x, y)
	}
	if b.Len() != 0 {
		t.Fatalf("freshly claimed bucket has %d values", b.Len())
	}

	b.Append(11)

	again := table.GetBucket(3, -4, 7)
	if again != b {
		t.Fatal("repeated resolution returned a different bucket")
	}
	if again.Len() != 1 || again.Values()[0] != 11 {
		t.Fatalf("bucket lost its value: %v", again.Values())
	}
}

func TestInsertQueryRoundTrip(t *testing.T) {
	table := NewWithDefaults[string]()

	table.InsertAtPoint(1.5, 2.5, "a", 0)
	table.InsertAtPoint(1.7, 2.1, "b", 0) // same cell
	table.InsertAtPoint(-3.2, 0.4, "c", 0)

	got := table.QueryAtPoint(nil, 1.5, 2.5, 0)
	if !slices.Contains(got, "a") || !slices.Contains(got, "b") {
		t.Errorf("query at (1.5, 2.5) = %v, want both a and b", got)
	}
	if slices.Contains(got, "c") {
		t.Errorf("query at (1.5, 2.5) leaked value from another cell: %v", got)
	}

	got = table.QueryAtPoint(nil, -3.2, 0.4, 0)
	if !slices.Contains(got, "c") {
		t.Errorf("query at (-3.2, 0.4) = %v, want c", got)
	}
}

func TestSaltsPartitionTable(t *testing.T) {
	table := New[string, Murmur, FastRange](Config{CellSize: 1.0, TableSize: 4096})

	table.InsertAtCell(5, 5, "layer-one", 1)
	table.InsertAtCell(5, 5, "layer-two", 2)

	one := table.QueryAtCell(nil, 5, 5, 1)
	two := table.QueryAtCell(nil, 5, 5, 2)

	if len(one) != 1 || one[0] != "layer-one" {
		t.Errorf("salt 1 query = %v", one)
	}
	if len(two) != 1 || two[0] != "layer-two" {
		t.Errorf("salt 2 query = %v", two)
	}
}

func TestQueryResultDoesNotAliasBucket(t *testing.T) {
	table := NewWithDefaults[int]()
	table.InsertAtCell(1, 1, 42, 0)

	got := table.QueryAtCell(nil, 1, 1, 0)
	got[0] = 99

	again := table.QueryAtCell(nil, 1, 1, 0)
	if again[0] != 42 {
		t.Errorf("mutating a query result corrupted the bucket: %v", again)
	}
}

func TestResetInvalidatesLazily(t *testing.T) {
	table := New[int, Murmur, FastRange](Config{CellSize: 1.0, TableSize: 256})
	table.InsertAtCell(10, 10, 1, 0)

	table.Reset(1.0, 256) // same size: array kept, generation advanced

	if got := table.QueryAtCell(nil, 10, 10, 0); len(got) != 0 {
		t.Errorf("value survived reset: %v", got)
	}
	if gen := table.Stats().Generation; gen != 1 {
		t.Errorf("generation after reset = %d, want 1", gen)
	}

	// The table stays usable in the new generation.
	table.InsertAtCell(10, 10, 2, 0)
	if got := table.QueryAtCell(nil, 10, 10, 0); len(got) != 1 || got[0] != 2 {
		t.Errorf("insert after reset = %v, want [2]", got)
	}
}

func TestResetResizesTable(t *testing.T) {
	table := New[int, Murmur, FastRange](Config{CellSize: 1.0, TableSize: 128})
	table.InsertAtCell(-7, 3, 1, 0)

	table.Reset(2.0, 512)

	if size := table.Stats().TableSize; size != 512 {
		t.Errorf("table size after reset = %d, want 512", size)
	}
	if got := table.QueryAtCell(nil, -7, 3, 0); len(got) != 0 {
		t.Errorf("value survived resizing reset: %v", got)
	}
	// Cell size was reassigned too.
	if got := table.Cell(3.0); got != 1 {
		t.Errorf("Cell(3.0) after reset to cell size 2.0 = %d, want 1", got)
	}
}

func TestConfigNormalization(t *testing.T) {
	table := New[int, Murmur, FastRange](Config{})

	stats := table.Stats()
	if stats.TableSize != defaultTableSize {
		t.Errorf("zero config table size = %d, want %d", stats.TableSize, defaultTableSize)
	}
	if table.rehashRounds != defaultRehashRounds {
		t.Errorf("zero config rehash rounds = %d, want %d", table.rehashRounds, defaultRehashRounds)
	}
	if got := table.Cell(2.5); got != 2 {
		t.Errorf("zero config cell size: Cell(2.5) = %d, want 2", got)
	}
}

// With a single bucket every second cell must alias into it: the lookup
// exhausts its rounds, reports the degrade, and the query mixes both cells'
// values. That mixing is the documented false-positive mode, not a bug.
func TestAliasingIsObservable(t *testing.T) {
	table := New[int, Murmur, FastRange](Config{
		CellSize:     1.0,
		TableSize:    1,
		RehashRounds: 2,
		StatsEnabled: true,
	})

	table.InsertAtCell(0, 0, 1, 0)
	table.InsertAtCell(9, 9, 2, 0)

	if aliased := table.Stats().Aliased; aliased == 0 {
		t.Error("aliasing went unreported")
	}

	got := table.QueryAtCell(nil, 9, 9, 0)
	if !slices.Contains(got, 2) {
		t.Errorf("aliased insert lost its own value: %v", got)
	}
	if !slices.Contains(got, 1) {
		t.Errorf("expected the alias false positive in %v", got)
	}
}

func TestStatsCounters(t *testing.T) {
	table := New[int, Murmur, FastRange](Config{CellSize: 1.0, TableSize: 1024, RehashRounds: 5, StatsEnabled: true})

	table.InsertAtCell(1, 2, 1, 0)
	table.InsertAtCell(3, 4, 2, 0)
	_ = table.QueryAtCell(nil, 1, 2, 0)

	stats := table.Stats()
	if stats.Inserts != 2 {
		t.Errorf("Inserts = %d, want 2", stats.Inserts)
	}
	if stats.Queries != 1 {
		t.Errorf("Queries = %d, want 1", stats.Queries)
	}
	if stats.Probes < 3 {
		t.Errorf("Probes = %d, want at least one per operation", stats.Probes)
	}
}

// Two overlapping boxes under one salt. The query box
// over the overlap must see both values in all nine cells, the shared corner
// cell holds exactly two values, and single-covered interior points hold one.
func TestOverlappingBoxesScenario(t *testing.T) {
	table := New[uint32, Murmur, FastRange](Config{
		CellSize:     1.0,
		TableSize:    1000,
		RehashRounds: 10,
		StatsEnabled: true,
	})

	table.InsertAtAABB(0.0, 0.0, 20.0, 20.0, 1, 1)
	table.InsertAtAABB(10.0, 10.0, 30.0, 30.0, 2, 1)

	if got := table.QueryAtAABB(nil, 18.0, 18.0, 20.0, 20.0, 1); len(got) != 18 {
		t.Errorf("overlap box query returned %d values, want 18: %v", len(got), got)
	}
	if got := table.QueryAtPoint(nil, 20.0, 20.0, 1); len(got) != 2 {
		t.Errorf("shared corner query returned %d values, want 2: %v", len(got), got)
	}
	if got := table.QueryAtPoint(nil, 1.0, 1.0, 1); len(got) != 1 {
		t.Errorf("first-box interior query returned %d values, want 1: %v", len(got), got)
	}
	if got := table.QueryAtPoint(nil, 25.0, 25.0, 1); len(got) != 1 {
		t.Errorf("second-box interior query returned %d values, want 1: %v", len(got), got)
	}
}

// Load sweep: random points over a large world at load factors up to 2x,
// every inserted value must be found again before the next reset. Aliasing can add false positives but never false negatives, since
// insert and query retrace the same probe path within a generation.
func TestPointRoundTripUnderLoad(t *testing.T) {
	const testSize = 20000
	const worldSize = 1000000.0

	type object struct {
		x, y  float64
		salt  int32
		value uint32
	}

	rng := rand.New(rand.NewSource(42))
	objects := make([]object, testSize)
	for i := range objects {
		objects[i] = object{
			x:     -worldSize + rng.Float64()*worldSize*2,
			y:     -worldSize + rng.Float64()*worldSize*2,
			salt:  int32(rng.Intn(256)),
			value: rng.Uint32(),
		}
	}

	table := New[uint32, Murmur, FastRange](Config{CellSize: 1.0, TableSize: 42, RehashRounds: 5, StatsEnabled: true})

	for _, load := range []float64{0.1, 0.3, 0.5, 0.7, 1.0, 2.0} {
		table.Reset(1.0, uint32(testSize/load))

		for _, o := range objects {
			table.InsertAtPoint(o.x, o.y, o.value, o.salt)
		}

		var result []uint32
		for _, o := range objects {
			result = table.QueryAtPoint(result[:0], o.x, o.y, o.salt)
			if !slices.Contains(result, o.value) {
				t.Fatalf("load %.1f: value %d lost at (%v, %v) salt %d", load, o.value, o.x, o.y, o.salt)
			}
		}

		stats := table.Stats()
		t.Logf("load %.1f: table %d, probes %d, collisions %d, aliased %d",
			load, stats.TableSize, stats.Probes, stats.Collisions, stats.Aliased)
	}
}
