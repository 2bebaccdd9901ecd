package main

import (
	"fmt"
	"io"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/graph-guard/assoclist/pkg/alloc"
	"github.com/graph-guard/assoclist/pkg/cli"
	"github.com/graph-guard/assoclist/pkg/container"
	"github.com/graph-guard/assoclist/pkg/container/assoclist"
	"github.com/graph-guard/assoclist/pkg/container/gomap"
	plog "github.com/phuslu/log"
)

const benchRounds = 1000

type benchResult struct {
	Name   string
	Insert time.Duration
	Get    time.Duration
	Remove time.Duration
}

func bench(w io.Writer, l *plog.Logger, c cli.CommandBench) (exitCode int) {
	keys := make([]string, c.Keys)
	for i := range keys {
		keys[i] = uuid.NewString()
	}

	counting := alloc.NewCounting[assoclist.Pair[string, int]](nil)
	list := assoclist.New(
		assoclist.WithAllocator[string, int](counting),
		assoclist.WithLogger[string, int](l),
	)
	results := []benchResult{
		measure("assoclist", list, keys),
		measure("gomap", gomap.New[string, int](0), keys),
	}

	fmt.Fprintf(w, "keys: %s, rounds: %s\n",
		humanize.Comma(int64(c.Keys)), humanize.Comma(benchRounds))
	for _, r := range results {
		fmt.Fprintf(w, "%-10s insert %-12s get %-12s remove %s\n",
			r.Name, perOp(r.Insert, c.Keys), perOp(r.Get, c.Keys),
			perOp(r.Remove, c.Keys))
	}

	stats := counting.Stats()
	fmt.Fprintf(w, "assoclist capacity: %d (%s), reallocations: %d\n",
		list.Cap(),
		humanize.IBytes(uint64(alloc.SizeOf[assoclist.Pair[string, int]](list.Cap()))),
		stats.Reallocations())

	l.Info().
		Int("keys", c.Keys).
		Int64("allocations", stats.Allocations).
		Int64("grows", stats.Grows).
		Msg("bench done")
	return 0
}

// measure returns the total time each phase took over all rounds.
func measure(
	name string,
	m container.Mapper[string, int],
	keys []string,
) (r benchResult) {
	r.Name = name
	for round := 0; round < benchRounds; round++ {
		start := time.Now()
		for i, k := range keys {
			m.Insert(k, i)
		}
		r.Insert += time.Since(start)

		start = time.Now()
		for _, k := range keys {
			if _, ok := m.Get(k); !ok {
				panic(fmt.Errorf("%s: key %q lost", name, k))
			}
		}
		r.Get += time.Since(start)

		start = time.Now()
		for _, k := range keys {
			m.Remove(k)
		}
		r.Remove += time.Since(start)
	}
	return r
}

func perOp(total time.Duration, keys int) string {
	return (total / time.Duration(benchRounds*keys)).String() + "/op"
}
