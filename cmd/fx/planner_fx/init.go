package planner_fx

import (
	"log"

	"go.uber.org/fx"
	"tripgen/internal/infra"
	"tripgen/internal/planner"
	"tripgen/pkg/metrics"
)

var Module = fx.Provide(provideMatrix, providePartitioner, provideScheduler, provideAssembler)

func provideMatrix() planner.DistanceMatrixService {
	return planner.NewHaversineMatrix()
}

func providePartitioner(cfg *infra.Config) *planner.Partitioner {
	p := planner.NewPartitioner()
	if seed := cfg.Planner.PartitionSeed; seed != 0 {
		log.Printf("Day clustering seeded with %d", seed)
		p.Primary = planner.KMeansStrategy{Seed: seed}
	}
	p.OnFallback = func(error) { metrics.PartitionFallbacks.Inc() }
	return p
}

func provideScheduler(matrix planner.DistanceMatrixService, cfg *infra.Config) *planner.Scheduler {
	return planner.NewScheduler(planner.NewRouteOptimizer(matrix), cfg.Planner.ActivitiesPerDay)
}

func provideAssembler(p *planner.Partitioner, s *planner.Scheduler) *planner.Assembler {
	return planner.NewAssembler(p, s)
}
