package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

func main() {
	fmt.Println("=== SpatialHash Benchmark Suite ===")
	fmt.Println("Hash/reduction strategy comparison and table workloads")
	fmt.Println()

	benchmarks := []struct {
		name        string
		pattern     string
		description string
		benchtime   string
	}{
		{
			name:        "Hash Speed",
			pattern:     "BenchmarkHashSpeed",
			description: "Raw digest cost per hash strategy",
			benchtime:   "2s",
		},
		{
			name:        "Hash + Reduce Speed",
			pattern:     "BenchmarkHashReduceSpeed",
			description: "Full per-probe cost per strategy pair",
			benchtime:   "2s",
		},
		{
			name:        "Point Insertion",
			pattern:     "BenchmarkInsertAtPoint",
			description: "Table insertion across strategy pairs",
			benchtime:   "3s",
		},
		{
			name:        "Point Query",
			pattern:     "BenchmarkQueryAtPoint",
			description: "Point lookups on a populated table",
			benchtime:   "3s",
		},
		{
			name:        "Box Insertion",
			pattern:     "BenchmarkInsertAtAABB",
			description: "Rectangular rasterization at several spans",
			benchtime:   "3s",
		},
		{
			name:        "Segment Insertion",
			pattern:     "BenchmarkInsertAtSegment",
			description: "Line rasterization cost",
			benchtime:   "3s",
		},
		{
			name:        "Map Grid Baseline",
			pattern:     "BenchmarkMapGridBaseline",
			description: "Naive map-of-slices grid for comparison",
			benchtime:   "3s",
		},
		{
			name:        "Reset",
			pattern:     "BenchmarkReset",
			description: "Generational clear cost (must be flat)",
			benchtime:   "1s",
		},
	}

	totalStart := time.Now()

	for i, bench := range benchmarks {
		fmt.Printf("[%d/%d] %s\n", i+1, len(benchmarks), bench.name)
		fmt.Printf("Description: %s\n", bench.description)
		fmt.Printf("Running: go test -bench=%s -benchmem -benchtime=%s\n", bench.pattern, bench.benchtime)
		fmt.Println(strings.Repeat("-", 80))

		start := time.Now()

		cmd := exec.Command("go", "test", "-bench="+bench.pattern, "-benchmem", "-benchtime="+bench.benchtime, ".")
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		err := cmd.Run()

		duration := time.Since(start)

		if err != nil {
			fmt.Printf(" - Benchmark failed: %v\n", err)
		} else {
			fmt.Printf(" + Benchmark completed in %v\n", duration)
		}

		fmt.Println()
	}

	fmt.Printf("All benchmarks completed in %v\n", time.Since(totalStart))
	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Println("Strategies compared:")
	fmt.Println("- XorMul (fixed-prime XOR-multiply)")
	fmt.Println("- Knuth (multiplicative, 64-bit fold)")
	fmt.Println("- Murmur (one-block MurmurHash3 x86_32)")
	fmt.Println("- XXHash (one-block 32-bit xxHash)")
	fmt.Println("- XXHash64 (cespare/xxhash baseline)")
	fmt.Println("- FNV (FNV-1a over key bytes)")
	fmt.Println()
	fmt.Println("Reductions compared: Identity (no-op), Mod, FastRange")
	fmt.Println("For collision-rate quality sweeps run cmd/shash-bench.")
}
