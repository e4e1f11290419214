package config

import (
	"time"
)

// Config represents the entire configuration for the infection simulator
type Config struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MaxSpeed float64 `yaml:"maxSpeed"`

	Population                 int     `yaml:"population"`
	TargetPopulation           int     `yaml:"targetPopulation"`
	ReplacementInfectionChance float64 `yaml:"replacementInfectionChance"`

	InfectionRadius  float64       `yaml:"infectionRadius"`
	ContactThreshold time.Duration `yaml:"contactThreshold"`

	// Perturbation is the maximum per-frame change of each velocity component
	Perturbation float64 `yaml:"perturbation"`

	StepRate float64       `yaml:"stepRate"`
	Duration time.Duration `yaml:"duration"`
	Seed     int64         `yaml:"seed"`

	SnapshotPath       string `yaml:"snapshotPath"`
	ReportSchedule     string `yaml:"reportSchedule"`
	CheckpointSchedule string `yaml:"checkpointSchedule,omitempty"`

	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario holds the starting parameters of the population
type Scenario struct {
	ImmunityRatio   float64 `yaml:"immunityRatio"`
	InfectionChance float64 `yaml:"infectionChance"`
}

const (
	ScenarioNormal       = "normal"
	ScenarioPostEpidemic = "post-epidemic"
)

// Default returns the reference configuration: a 30x30 field, 50 persons,
// 60 simulated seconds at 25 steps per second
func Default() *Config {
	return &Config{
		Width:                      30,
		Height:                     30,
		MaxSpeed:                   2.5,
		Population:                 50,
		TargetPopulation:           50,
		ReplacementInfectionChance: 0.1,
		InfectionRadius:            2.0,
		ContactThreshold:           3 * time.Second,
		Perturbation:               0.2,
		StepRate:                   25,
		Duration:                   60 * time.Second,
		SnapshotPath:               "snapshot.json",
		ReportSchedule:             "@every 1s",
		Scenarios: map[string]Scenario{
			ScenarioNormal:       {ImmunityRatio: 0.0, InfectionChance: 0.1},
			ScenarioPostEpidemic: {ImmunityRatio: 0.7, InfectionChance: 0.03},
		},
	}
}

// Step returns the fixed step in seconds
func (c *Config) Step() float64 {
	return 1 / c.StepRate
}

// Steps returns the number of steps covering Duration
func (c *Config) Steps() int {
	return int(c.Duration.Seconds()*c.StepRate + 0.5)
}
