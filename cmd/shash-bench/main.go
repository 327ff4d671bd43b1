// shash-bench sweeps hash/reduction strategy pairs over synthetic grid keys
// and reports bucket collision rates per load factor, averaged across table
// sizes. It drives the strategies directly through the probe protocol the
// table uses, so the numbers predict real aliasing behavior.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/sugawarayuuta/sonnet"

	shash "github.com/PawelBoe/SpatialHash"
)

var (
	loadFactors = []float64{0.1, 0.3, 0.5, 0.7, 1.0, 2.0}
	tableSizes  = []uint32{512, 1024, 2048, 4096, 8192, 16384, 32768, 65536}
)

type element struct {
	x, y   int32
	salt   uint32
	pepper uint32
}

type loadResult struct {
	Load      float64 `json:"load"`
	AvgRate   float64 `json:"avg_collision_rate"`
	Deviation float64 `json:"deviation"`
	Extremes  float64 `json:"extremes"`
}

type pairResult struct {
	Hash   string       `json:"hash"`
	Reduce string       `json:"reduce"`
	Loads  []loadResult `json:"loads"`
}

type report struct {
	RehashRounds int          `json:"rehash_rounds"`
	Elements     int          `json:"elements"`
	Seed         int64        `json:"seed"`
	Results      []pairResult `json:"results"`
}

func main() {
	var (
		rounds  = flag.Int("rounds", 5, "rehash rounds per placement")
		seed    = flag.Int64("seed", 1, "seed for synthetic key generation")
		coord   = flag.Int("coord", 100000, "coordinates drawn from [-coord, coord]")
		salts   = flag.Int("salts", 256, "number of distinct salts")
		jsonOut = flag.Bool("json", false, "emit the full report as JSON")
	)
	flag.Parse()

	if *rounds < 1 {
		log.Fatal("rounds must be at least 1")
	}

	maxLoad := loadFactors[len(loadFactors)-1]
	elements := makeElements(int(float64(tableSizes[len(tableSizes)-1])*maxLoad), *seed, int32(*coord), *salts)

	hashes := []struct {
		name string
		hash func(shash.Key) uint32
	}{
		{"XorMul", shash.XorMul{}.Hash},
		{"Knuth", shash.Knuth{}.Hash},
		{"Murmur", shash.Murmur{}.Hash},
		{"XXHash", shash.XXHash{}.Hash},
		{"XXHash64", shash.XXHash64{}.Hash},
		{"FNV", shash.FNV{}.Hash},
	}
	// Identity is excluded: it does not bound the index, so it cannot place
	// keys into a finite table.
	reducers := []struct {
		name   string
		reduce func(hash, tableSize uint32) uint32
	}{
		{"Mod", shash.Mod{}.Reduce},
		{"FastRange", shash.FastRange{}.Reduce},
	}

	rep := report{
		RehashRounds: *rounds,
		Elements:     len(elements),
		Seed:         *seed,
	}

	for _, h := range hashes {
		for _, r := range reducers {
			pr := pairResult{Hash: h.name, Reduce: r.name}
			for _, load := range loadFactors {
				pr.Loads = append(pr.Loads, sweepLoad(h.hash, r.reduce, elements, load, *rounds))
			}
			rep.Results = append(rep.Results, pr)
		}
	}

	if *jsonOut {
		out, err := sonnet.Marshal(rep)
		if err != nil {
			log.Fatalf("encode report: %v", err)
		}
		os.Stdout.Write(out)
		fmt.Println()
		return
	}

	printReport(rep)
}

func makeElements(n int, seed int64, coord int32, salts int) []element {
	rng := rand.New(rand.NewSource(seed))
	elems := make([]element, n)
	for i := range elems {
		elems[i] = element{
			x:      -coord + rng.Int31n(coord*2+1),
			y:      -coord + rng.Int31n(coord*2+1),
			salt:   uint32(rng.Intn(salts)),
			pepper: 42,
		}
	}
	return elems
}

// sweepLoad places load*tableSize keys into each table size using the probe
// protocol (rehash with a bumped nonce while the slot is already at the
// load's expected occupancy) and aggregates the resulting collision rates.
func sweepLoad(hash func(shash.Key) uint32, reduce func(uint32, uint32) uint32, elems []element, load float64, rounds int) loadResult {
	expected := int(math.Ceil(load))
	rates := make([]float64, 0, len(tableSizes))

	for _, buckets := range tableSizes {
		occupancy := make([]int, buckets)
		cells := int(float64(buckets) * load)
		if cells > len(elems) {
			cells = len(elems)
		}

		collisions := 0
		for i := 0; i < cells; i++ {
			e := &elems[i]
			index := place(hash, reduce, e, buckets, occupancy, expected, rounds)
			occupancy[index]++
			if occupancy[index] > 1 {
				collisions++
			}
		}
		rates = append(rates, float64(collisions)/float64(cells))
	}

	avg := 0.0
	minRate, maxRate := 1.0, 0.0
	for _, rate := range rates {
		avg += rate
		minRate = math.Min(minRate, rate)
		maxRate = math.Max(maxRate, rate)
	}
	avg /= float64(len(rates))

	variance := 0.0
	for _, rate := range rates {
		variance += (rate - avg) * (rate - avg)
	}
	variance /= float64(len(rates))

	return loadResult{
		Load:      load,
		AvgRate:   avg,
		Deviation: math.Sqrt(variance),
		Extremes:  maxRate - minRate,
	}
}

func place(hash func(shash.Key) uint32, reduce func(uint32, uint32) uint32, e *element, buckets uint32, occupancy []int, expected, rounds int) uint32 {
	key := shash.Key{uint32(e.x), uint32(e.y), e.salt, e.pepper}
	index := reduce(hash(key), buckets)

	for round := 1; round < rounds; round++ {
		if occupancy[index] < expected {
			break
		}
		key[3] = e.pepper + uint32(round)
		index = reduce(hash(key), buckets)
	}
	return index
}

func printReport(rep report) {
	fmt.Printf("Quality benchmark: %d rehash rounds, %d synthetic keys\n", rep.RehashRounds, rep.Elements)
	for _, pr := range rep.Results {
		fmt.Printf("\n%s / %s\n", pr.Hash, pr.Reduce)
		fmt.Printf("  %-8s %-12s %-12s %-12s\n", "load", "avg", "deviation", "extremes")
		for _, lr := range pr.Loads {
			fmt.Printf("  %-8.2f %-12.6f %-12.6f %-12.6f\n", lr.Load, lr.AvgRate, lr.Deviation, lr.Extremes)
		}
	}
}
