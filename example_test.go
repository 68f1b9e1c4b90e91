package cycleprof_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/cycleprof"
)

var regions = cycleprof.MustNewRegistry("fib", "sum")

const (
	regionFib cycleprof.Region = iota + 1
	regionSum
)

func fib(p *cycleprof.Profiler, n int) int {
	s := p.Enter(regionFib)
	defer s.Close()

	if n < 2 {
		return n
	}

	return fib(p, n-1) + fib(p, n-2)
}

func Example() {
	p, err := cycleprof.New(regions)
	if err != nil {
		log.Fatal(err)
	}

	p.Start()

	total := 0
	p.Time(regionSum, func() {
		for i := 0; i < 10; i++ {
			total += fib(p, i)
		}
	})

	p.End()

	out, err := p.Output()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(out)
}

func ExampleRegistry_Name() {
	reg := cycleprof.MustNewRegistry("parse", "eval")

	name, _ := reg.Name(2)
	fmt.Println(name)

	_, err := reg.Name(cycleprof.RootRegion)
	fmt.Println(err)

	// Output:
	// eval
	// cycleprof: no such region: id 0
}
