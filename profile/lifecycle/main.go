// Profiling:
// go build ./profile/lifecycle
// go tool pprof -http=":8000" -nodefraction=0.001 ./lifecycle mem.pprof

package main

import (
	"log"

	"github.com/TheBitDrifter/table"
	"github.com/driftworks/manifest"
	"github.com/pkg/profile"
)

type position struct {
	X float64
	Y float64
}

type velocity struct {
	X float64
	Y float64
}

func main() {
	count := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := manifest.Factory.NewWorld(table.Factory.NewSchema())
		posComp := manifest.ComponentFor[position](w)
		velocities := manifest.NewMapper[velocity](w)

		created, err := w.NewEntities(numEntities, posComp)
		if err != nil {
			log.Fatal(err)
		}

		for range iters {
			for _, en := range created {
				velocities.CreateForEntity(en)
			}
			for _, en := range created {
				velocities.RemoveFromEntity(en)
			}
		}
	}
}
