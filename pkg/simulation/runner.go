package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sherine-k/infection/pkg/agent"
	"github.com/sherine-k/infection/pkg/config"
	"github.com/sherine-k/infection/pkg/observability"
	"github.com/sherine-k/infection/pkg/random"
	"github.com/sherine-k/infection/pkg/snapshot"
	"github.com/sherine-k/infection/pkg/stats"
)

// Report is the outcome of a run
type Report struct {
	RunID        string
	Scenario     string
	Steps        int
	Elapsed      time.Duration
	TimePoints   []TimePoint
	Events       []Event
	Final        stats.Stats
	SnapshotPath string
}

// Runner drives a Simulator at a fixed step rate. Every step is followed by
// a velocity perturbation of each live person.
type Runner struct {
	cfg      *config.Config
	scenario string
	sim      *Simulator
	rng      random.Source
	logger   *slog.Logger
	runID    string

	report     cron.Schedule
	checkpoint cron.Schedule
	restored   bool
}

// NewRunner creates a runner for the named scenario
func NewRunner(cfg *config.Config, scenario string, logger *slog.Logger) (*Runner, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Scenario(scenario); err != nil {
		return nil, err
	}

	report, err := config.ParseSchedule(cfg.ReportSchedule)
	if err != nil {
		return nil, err
	}

	var checkpoint cron.Schedule
	if cfg.CheckpointSchedule != "" {
		checkpoint, err = config.ParseSchedule(cfg.CheckpointSchedule)
		if err != nil {
			return nil, err
		}
	}

	if logger == nil {
		logger = observability.Discard()
	}
	runID := uuid.NewString()
	logger = observability.WithRun(logger, runID)

	rng := random.New(cfg.Seed)
	sim := New(cfg.Width, cfg.Height, cfg.MaxSpeed,
		WithRand(rng),
		WithLogger(logger),
		WithTargetPopulation(cfg.TargetPopulation),
		WithReplacementInfectionChance(cfg.ReplacementInfectionChance),
		WithInfectionRadius(cfg.InfectionRadius),
		WithContactThreshold(cfg.ContactThreshold.Seconds()),
	)

	return &Runner{
		cfg:        cfg,
		scenario:   scenario,
		sim:        sim,
		rng:        rng,
		logger:     logger,
		runID:      runID,
		report:     report,
		checkpoint: checkpoint,
	}, nil
}

// Simulator returns the driven simulator
func (r *Runner) Simulator() *Simulator {
	return r.sim
}

// RunID returns the unique id of this run
func (r *Runner) RunID() string {
	return r.runID
}

// Resume starts the run from snapshot records instead of a seeded population
func (r *Runner) Resume(records []agent.Memento) error {
	if err := r.sim.Restore(records); err != nil {
		return err
	}
	r.restored = true
	return nil
}

// Run executes the simulation for the configured duration. Cancelling ctx
// stops the run between steps; the partial report is returned with the error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if !r.restored {
		scenario, _ := r.cfg.Scenario(r.scenario)
		r.sim.SeedInitialPopulation(r.cfg.Population, scenario.ImmunityRatio, scenario.InfectionChance)
	}

	steps := r.cfg.Steps()
	dt := r.cfg.Step()

	report := &Report{
		RunID:        r.runID,
		Scenario:     r.scenario,
		SnapshotPath: r.cfg.SnapshotPath,
	}

	r.logger.Info("simulation started", "scenario", r.scenario, "steps", steps, "dt", dt, "seed", r.cfg.Seed)

	report.TimePoints = append(report.TimePoints, r.timePoint(0))

	nextReport := r.report.Next(config.Epoch)
	var nextCheckpoint time.Time
	if r.checkpoint != nil {
		nextCheckpoint = r.checkpoint.Next(config.Epoch)
	}

	for step := 0; step < steps; step++ {
		if err := ctx.Err(); err != nil {
			r.finish(report, step)
			return report, fmt.Errorf("simulation interrupted: %w", err)
		}

		r.sim.Step(dt)

		for _, p := range r.sim.Agents() {
			if !p.IsExited() {
				p.ApplyRandomVelocityPerturbation(r.cfg.MaxSpeed, r.cfg.Perturbation, r.rng)
			}
		}

		elapsed := r.elapsedAt(step + 1)
		now := config.Epoch.Add(elapsed)

		if !now.Before(nextReport) {
			tp := r.timePoint(elapsed)
			report.TimePoints = append(report.TimePoints, tp)
			r.logger.Info("population",
				"t", elapsed,
				"remaining", tp.Remaining,
				"total", tp.Total,
				"healthy", tp.Healthy,
				"infected", tp.Infected,
				"immune", tp.Immune,
				"exited", tp.Exited,
			)
			nextReport = r.report.Next(now)
		}

		if r.checkpoint != nil && !now.Before(nextCheckpoint) {
			if err := r.save(); err != nil {
				r.logger.Error("checkpoint failed", "t", elapsed, "error", err)
			} else {
				r.logger.Info("checkpoint saved", "t", elapsed, "path", r.cfg.SnapshotPath)
			}
			nextCheckpoint = r.checkpoint.Next(now)
		}
	}

	r.finish(report, steps)

	if err := r.save(); err != nil {
		return report, err
	}

	r.logger.Info("simulation finished",
		"steps", report.Steps,
		"total", report.Final.Total,
		"infected", report.Final.Infected,
		"immune", report.Final.Immune,
		"exited", report.Final.Exited,
	)

	return report, nil
}

func (r *Runner) finish(report *Report, steps int) {
	report.Steps = steps
	report.Elapsed = r.elapsedAt(steps)
	report.Events = r.sim.GetEvents()
	report.Final = stats.CalculateFromSnapshot(r.sim.Snapshot())
}

// save writes the current population, if a snapshot path is configured
func (r *Runner) save() error {
	if r.cfg.SnapshotPath == "" {
		return nil
	}
	if err := snapshot.Save(r.cfg.SnapshotPath, r.sim.Snapshot()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *Runner) timePoint(elapsed time.Duration) TimePoint {
	return TimePoint{
		Time:       elapsed,
		Population: stats.Count(r.sim.Agents()),
	}
}

// elapsedAt computes the simulated time after n steps without accumulating
// floating point error
func (r *Runner) elapsedAt(n int) time.Duration {
	return time.Duration(math.Round(float64(n) / r.cfg.StepRate * float64(time.Second)))
}
