package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-bindable/bindable"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	widths = []int{1, 10, 100, 1_000, 10_000}
	iters  = 1_000
)

type gauge struct {
	value int
}

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkFanOut(false)

	benchmarkFanOut(true)
}

func benchmarkFanOut(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Bindable Fan-Out")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "digest"})

	for _, w := range widths {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		b := bindable.New[int]()
		targets := make([]*gauge, w)
		for i := range targets {
			targets[i] = &gauge{}
			bindable.Bind(b,
				func(v int) int { return v },
				targets[i],
				func(g *gauge, v int) { g.value = v },
			)
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			b.Set(i)
			tach.AddTime(time.Since(start))
		}

		// fold final target state into a digest so the handler work
		// cannot be optimized away
		digest := xxhash.New()
		var buf [8]byte
		for _, g := range targets {
			binary.LittleEndian.PutUint64(buf[:], uint64(g.value))
			digest.Write(buf[:])
		}
		runtime.KeepAlive(targets)

		calc := tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("fanout %dx%d", w, iters),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
			fmt.Sprintf("%016x", digest.Sum64()),
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
