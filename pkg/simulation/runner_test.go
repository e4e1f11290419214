package simulation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sherine-k/infection/pkg/agent"
	"github.com/sherine-k/infection/pkg/config"
	"github.com/sherine-k/infection/pkg/snapshot"
	"github.com/sherine-k/infection/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Duration = 10 * time.Second
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "snapshot.json")
	return cfg
}

func TestRunnerRun(t *testing.T) {
	cfg := testConfig(t)

	runner, err := NewRunner(cfg, config.ScenarioNormal, nil)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, runner.RunID(), report.RunID)
	assert.Equal(t, 250, report.Steps)
	assert.Equal(t, 10*time.Second, report.Elapsed)

	// initial point plus one per simulated second
	require.Len(t, report.TimePoints, 11)
	for i, tp := range report.TimePoints {
		assert.Equal(t, time.Duration(i)*time.Second, tp.Time)
		assert.GreaterOrEqual(t, tp.Remaining, cfg.TargetPopulation)
	}

	records, err := snapshot.Load(cfg.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, stats.CalculateFromSnapshot(records), report.Final)
	assert.Len(t, records, len(runner.Simulator().Agents()))
}

func TestRunnerCheckpoints(t *testing.T) {
	cfg := testConfig(t)
	cfg.Duration = 3 * time.Second
	cfg.CheckpointSchedule = "@every 1s"
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "snapshot.yaml")

	runner, err := NewRunner(cfg, config.ScenarioPostEpidemic, nil)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	records, err := snapshot.Load(cfg.SnapshotPath)
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestRunnerResume(t *testing.T) {
	cfg := testConfig(t)
	cfg.Duration = time.Second

	first, err := NewRunner(cfg, config.ScenarioNormal, nil)
	require.NoError(t, err)
	_, err = first.Run(context.Background())
	require.NoError(t, err)

	records, err := snapshot.Load(cfg.SnapshotPath)
	require.NoError(t, err)

	second, err := NewRunner(cfg, config.ScenarioNormal, nil)
	require.NoError(t, err)
	require.NoError(t, second.Resume(records))

	report, err := second.Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.Final.Total, len(records))

	agents := second.Simulator().Agents()
	for i, m := range records {
		assert.Equal(t, m.ID, agents[i].ID())
	}
}

func TestRunnerCancelled(t *testing.T) {
	cfg := testConfig(t)

	runner, err := NewRunner(cfg, config.ScenarioNormal, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Zero(t, report.Steps)
	assert.Equal(t, cfg.Population, report.Final.Total)
}

func TestNewRunnerErrors(t *testing.T) {
	cfg := testConfig(t)

	_, err := NewRunner(cfg, "zombie-apocalypse", nil)
	assert.Error(t, err)

	cfg.StepRate = 0
	_, err = NewRunner(cfg, config.ScenarioNormal, nil)
	assert.Error(t, err)
}

func TestRunnerSnapshotFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Duration = time.Second
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "missing", "snapshot.json")

	runner, err := NewRunner(cfg, config.ScenarioNormal, nil)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	assert.Error(t, err)
}

func TestRunnerResumeInvalid(t *testing.T) {
	runner, err := NewRunner(testConfig(t), config.ScenarioNormal, nil)
	require.NoError(t, err)

	bad := agent.Memento{ID: 1, Immunity: "x", Health: agent.HealthHealthy, State: agent.StateMoving}
	assert.Error(t, runner.Resume([]agent.Memento{bad}))
}
