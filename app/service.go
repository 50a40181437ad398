// Package app wires the configuration into a runnable staging service: it
// loads the scenario, builds the directories and the stager, runs the trips
// through a worker pool and hands results to the configured observers.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/betsim/betroute/config"
	"github.com/betsim/betroute/core/charger"
	"github.com/betsim/betroute/core/consumption"
	"github.com/betsim/betroute/core/fleet"
	coremetrics "github.com/betsim/betroute/core/metrics"
	"github.com/betsim/betroute/core/model"
	"github.com/betsim/betroute/core/router"
	"github.com/betsim/betroute/core/stage"
	"github.com/betsim/betroute/infra/logger"
	"github.com/betsim/betroute/infra/metrics"
	"github.com/betsim/betroute/infra/mqtt"
	"github.com/betsim/betroute/internal/eventbus"
	"github.com/betsim/betroute/pkg/export"
	"github.com/betsim/betroute/scenario"
)

// Service orchestrates one scenario run.
type Service struct {
	cfg      *config.Config
	scen     *scenario.Scenario
	fleetDir *fleet.Directory
	stager   *stage.Stager
	bus      eventbus.EventBus
	sink     coremetrics.MetricsSink
	pub      *mqtt.PlanPublisher
	log      logger.Logger
}

// New creates a Service from the configuration, loading the scenario from
// the configured path.
func New(cfg *config.Config) (*Service, error) {
	scen, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	return NewWithScenario(cfg, scen)
}

// NewWithScenario creates a Service for an already loaded scenario.
func NewWithScenario(cfg *config.Config, scen *scenario.Scenario) (*Service, error) {
	logg := logger.New("service")

	fleetDir, err := fleet.NewDirectory(scen.Profiles())
	if err != nil {
		return nil, fmt.Errorf("fleet directory: %w", err)
	}
	chargerDir, err := charger.NewDirectory(scen.ChargerRecords())
	if err != nil {
		return nil, fmt.Errorf("charger directory: %w", err)
	}
	for _, id := range unsupportedVehicles(fleetDir.Profiles(), chargerDir.Chargers()) {
		logg.Warnf("vehicle %s supports none of the scenario charger types; its trips fail once a stop is needed", id)
	}

	delegate := router.FreespeedRouter{
		Mode:          cfg.Router.Mode,
		SegmentLength: cfg.Router.SegmentLengthM,
		Freespeed:     cfg.Router.FreespeedKmh / 3.6,
	}
	drive := consumption.BetDrive{PerMeter: cfg.Energy.DriveWhPerKm * 3.6}
	aux := consumption.ConstantAux{Power: cfg.Energy.AuxPowerKW * 1e3}
	stager, err := stage.NewStager(delegate, fleetDir, chargerDir, drive, aux, cfg.Run.NearestChargers, logg)
	if err != nil {
		return nil, fmt.Errorf("stager: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	for _, mc := range cfg.Metrics.Sinks {
		sink, err := coremetrics.NewMetricsSink(mc)
		if err != nil {
			return nil, fmt.Errorf("metrics sink %s: %w", mc.Type, err)
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub *mqtt.PlanPublisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPlanPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("plan publisher: %w", err)
		}
	}

	return &Service{
		cfg:      cfg,
		scen:     scen,
		fleetDir: fleetDir,
		stager:   stager,
		bus:      eventbus.New(),
		sink:     sink,
		pub:      pub,
		log:      logg,
	}, nil
}

// Run stages all scenario trips and writes the plans to the configured
// output. Failed requests are recorded and skipped; the run only aborts on
// cancellation or when fail_fast is set.
func (s *Service) Run(ctx context.Context) error {
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if rec, ok := s.sink.(coremetrics.FleetSizeRecorder); ok {
		if err := rec.RecordFleetSize(s.fleetDir.Len()); err != nil {
			s.log.Warnf("record fleet size: %v", err)
		}
	}

	plans, failed := s.stageAll(ctx)
	s.awaitSinkFlush(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 && s.cfg.Run.FailFast {
		return fmt.Errorf("app: %d of %d trips failed", failed, len(s.scen.Trips))
	}

	out, err := os.Create(s.cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("app: open output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			s.log.Errorf("close output: %v", cerr)
		}
	}()
	if err := export.Write(out, s.cfg.Output.Format, plans); err != nil {
		return fmt.Errorf("app: write output: %w", err)
	}

	s.log.Infof("staged %d plans (%d failed) to %s", len(plans), failed, s.cfg.Output.Path)
	return nil
}

// Plans stages all trips and returns the plans without touching the output
// file. It is the programmatic entry point used by tests and tooling.
func (s *Service) Plans(ctx context.Context) []model.StagedPlan {
	plans, _ := s.stageAll(ctx)
	return plans
}

// stageAll fans the trips out over the worker pool. Each worker owns a
// random source derived from the run seed, keeping charger draws reproducible
// per worker without sharing a locked source.
func (s *Service) stageAll(ctx context.Context) ([]model.StagedPlan, int) {
	trips := s.scen.Trips
	plans := make([]model.StagedPlan, len(trips))
	done := make([]bool, len(trips))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Run.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(s.cfg.Run.Seed + int64(worker)))
			for idx := range jobs {
				plan, err := s.stageOne(trips[idx].Trip(), rng)
				if err == nil {
					plans[idx] = plan
					done[idx] = true
				}
			}
		}(w)
	}
feed:
	for i := range trips {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var out []model.StagedPlan
	failed := 0
	for i := range trips {
		if done[i] {
			out = append(out, plans[i])
		} else {
			failed++
		}
	}
	return out, failed
}

// awaitSinkFlush blocks until the event collector has recorded everything
// published before the call, bounded by the shutdown timeout so a stalled
// sink cannot hang the run.
func (s *Service) awaitSinkFlush(ctx context.Context) {
	done := make(chan struct{})
	s.bus.Publish(metrics.FlushEvent{Done: done})
	timeout := time.Duration(s.cfg.Run.ShutdownTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	select {
	case <-done:
	case <-ctx.Done():
	case <-time.After(timeout):
		s.log.Warnf("metrics flush timed out after %s", timeout)
	}
}

// unsupportedVehicles returns the fleet vehicles that can use none of the
// scenario's chargers. They still route, but any trip of theirs that needs
// a stop aborts with a no-compatible-charger error.
func unsupportedVehicles(profiles []model.VehicleEnergyProfile, chargers []model.Charger) []string {
	var ids []string
	for _, p := range profiles {
		supported := false
		for _, c := range chargers {
			if p.SupportsCharger(c.Type) {
				supported = true
				break
			}
		}
		if !supported {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// stageOne runs a single trip and publishes its result on the bus.
func (s *Service) stageOne(trip model.Trip, rng *rand.Rand) (model.StagedPlan, error) {
	plan, err := s.stager.StageRoute(trip, rng)
	res := coremetrics.StagingResult{
		PlanID:   uuid.NewString(),
		PersonID: trip.PersonID,
		Time:     time.Now(),
	}
	if err != nil {
		res.Outcome = coremetrics.OutcomeError
		res.Error = err.Error()
		s.log.Errorf("stage trip of %s: %v", trip.PersonID, err)
	} else {
		res.VehicleID = plan.VehicleID
		res.ArrivalTime = plan.ArrivalTime
		res.Legs = len(plan.Legs())
		switch {
		case plan.Staged():
			res.Outcome = coremetrics.OutcomeStaged
			for _, act := range plan.Activities() {
				res.StopReasons = append(res.StopReasons, act.Reason)
			}
		default:
			if _, ok := s.fleetDir.Vehicle(plan.VehicleID); ok {
				res.Outcome = coremetrics.OutcomeBaseline
			} else {
				res.Outcome = coremetrics.OutcomeNoEV
			}
		}
	}
	s.bus.Publish(res)
	if s.pub != nil {
		s.pub.PublishResult(res)
	}
	return plan, err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.pub != nil {
		s.pub.Close()
	}
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}
