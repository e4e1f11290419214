package agent

// HealthState defines whether a person currently carries the infection
type HealthState string

const (
	HealthHealthy  HealthState = "Healthy"
	HealthInfected HealthState = "Infected"
)

// Immunity defines whether a person can be infected
type Immunity string

const (
	ImmunitySusceptible Immunity = "Susceptible"
	ImmunityImmune      Immunity = "Immune"
)

// SymptomState is only meaningful while a person is infected
type SymptomState string

const (
	SymptomAsymptomatic SymptomState = "Asymptomatic"
	SymptomSymptomatic  SymptomState = "Symptomatic"
)

// AgentState is the lifecycle of a person on the field. Exited is terminal.
type AgentState string

const (
	StateMoving AgentState = "Moving"
	StateExited AgentState = "Exited"
)

func (h HealthState) valid() bool {
	return h == HealthHealthy || h == HealthInfected
}

func (i Immunity) valid() bool {
	return i == ImmunitySusceptible || i == ImmunityImmune
}

func (s SymptomState) valid() bool {
	return s == SymptomAsymptomatic || s == SymptomSymptomatic
}

func (a AgentState) valid() bool {
	return a == StateMoving || a == StateExited
}
