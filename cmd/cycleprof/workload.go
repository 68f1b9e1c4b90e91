package main

import (
	"strconv"

	"github.com/cwbudde/cycleprof"
)

var demoRegions = cycleprof.MustNewRegistry("workload", "fib", "matmul", "checksum", "parse")

const (
	regionWorkload cycleprof.Region = iota + 1
	regionFib
	regionMatmul
	regionChecksum
	regionParse
)

const matrixSize = 48

// runWorkload exercises recursion (fib), nesting (matmul around checksum)
// and sequential repetition (parse).
func runWorkload(p *cycleprof.Profiler, depth int) uint64 {
	s := p.Enter(regionWorkload)
	defer s.Close()

	sum := uint64(fib(p, depth))
	sum += matmul(p, matrixSize)

	for i := 0; i < 64; i++ {
		sum += parse(p, i)
	}

	return sum
}

func fib(p *cycleprof.Profiler, n int) int {
	s := p.Enter(regionFib)
	defer s.Close()

	if n < 2 {
		return n
	}

	return fib(p, n-1) + fib(p, n-2)
}

func matmul(p *cycleprof.Profiler, n int) uint64 {
	s := p.Enter(regionMatmul)
	defer s.Close()

	a := make([]float64, n*n)
	b := make([]float64, n*n)
	c := make([]float64, n*n)

	for i := range a {
		a[i] = float64(i%7) + 0.5
		b[i] = float64(i%5) - 1.5
	}

	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[k*n+j]
			}
		}
	}

	return checksum(p, c)
}

func checksum(p *cycleprof.Profiler, v []float64) uint64 {
	s := p.Enter(regionChecksum)
	defer s.Close()

	var h uint64 = 14695981039346656037
	for _, x := range v {
		h ^= uint64(int64(x))
		h *= 1099511628211
	}

	return h
}

func parse(p *cycleprof.Profiler, seed int) uint64 {
	s := p.Enter(regionParse)
	defer s.Close()

	var total uint64

	for i := 0; i < 256; i++ {
		n, err := strconv.ParseUint(strconv.Itoa(seed*256+i), 10, 64)
		if err == nil {
			total += n
		}
	}

	return total
}
