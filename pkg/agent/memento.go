package agent

import "fmt"

// StepsPerSecond converts the infection timer to and from snapshot steps.
// It matches the default driver tick rate and must not change between the
// writer and the reader of a snapshot.
const StepsPerSecond = 25.0

// Memento is the flat, serializable state of a Person
type Memento struct {
	ID                      int           `json:"id" yaml:"id"`
	PosX                    float64       `json:"posX" yaml:"posX"`
	PosY                    float64       `json:"posY" yaml:"posY"`
	VelX                    float64       `json:"velX" yaml:"velX"`
	VelY                    float64       `json:"velY" yaml:"velY"`
	Immunity                Immunity      `json:"immunity" yaml:"immunity"`
	Health                  HealthState   `json:"health" yaml:"health"`
	Symptom                 *SymptomState `json:"symptom,omitempty" yaml:"symptom,omitempty"`
	State                   AgentState    `json:"state" yaml:"state"`
	InfectionRemainingSteps int           `json:"infectionRemainingSteps" yaml:"infectionRemainingSteps"`
}

// Validate checks that the record describes a reachable person state
func (m Memento) Validate() error {
	if !m.Immunity.valid() {
		return fmt.Errorf("person %d: unknown immunity %q", m.ID, m.Immunity)
	}
	if !m.Health.valid() {
		return fmt.Errorf("person %d: unknown health %q", m.ID, m.Health)
	}
	if m.Symptom != nil && !m.Symptom.valid() {
		return fmt.Errorf("person %d: unknown symptom %q", m.ID, *m.Symptom)
	}
	if !m.State.valid() {
		return fmt.Errorf("person %d: unknown state %q", m.ID, m.State)
	}
	if m.Immunity == ImmunityImmune && m.Health == HealthInfected {
		return fmt.Errorf("person %d: immune person cannot be infected", m.ID)
	}
	if m.InfectionRemainingSteps < 0 {
		return fmt.Errorf("person %d: infectionRemainingSteps must not be negative", m.ID)
	}
	return nil
}
