package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads and parses the configuration file. Keys missing from the
// file keep their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses a YAML configuration document on top of the defaults
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate configuration
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("width and height must be greater than 0")
	}

	if config.MaxSpeed <= 0 {
		return fmt.Errorf("maxSpeed must be greater than 0")
	}

	if config.Population < 0 {
		return fmt.Errorf("population must not be negative")
	}

	if config.TargetPopulation < 0 {
		return fmt.Errorf("targetPopulation must not be negative")
	}

	if err := checkProbability("replacementInfectionChance", config.ReplacementInfectionChance); err != nil {
		return err
	}

	if config.InfectionRadius <= 0 {
		return fmt.Errorf("infectionRadius must be greater than 0")
	}

	if config.ContactThreshold < 0 {
		return fmt.Errorf("contactThreshold must not be negative")
	}

	if config.Perturbation < 0 {
		return fmt.Errorf("perturbation must not be negative")
	}

	if config.StepRate <= 0 {
		return fmt.Errorf("stepRate must be greater than 0")
	}

	if config.Duration <= 0 {
		return fmt.Errorf("duration must be greater than 0")
	}

	if _, err := ParseSchedule(config.ReportSchedule); err != nil {
		return fmt.Errorf("reportSchedule: %w", err)
	}

	if config.CheckpointSchedule != "" {
		if _, err := ParseSchedule(config.CheckpointSchedule); err != nil {
			return fmt.Errorf("checkpointSchedule: %w", err)
		}
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario must be defined")
	}

	for name, scenario := range config.Scenarios {
		if err := checkProbability("scenario "+name+": immunityRatio", scenario.ImmunityRatio); err != nil {
			return err
		}
		if err := checkProbability("scenario "+name+": infectionChance", scenario.InfectionChance); err != nil {
			return err
		}
	}

	return nil
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}

// Scenario returns the named scenario
func (c *Config) Scenario(name string) (Scenario, error) {
	scenario, ok := c.Scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}
	return scenario, nil
}
