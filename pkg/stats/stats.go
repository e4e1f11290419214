// Package stats reduces persons and snapshots into category counts.
package stats

import "github.com/sherine-k/infection/pkg/agent"

// Stats summarizes a snapshot. Infected and Immune count exited persons too.
type Stats struct {
	Total    int `json:"total" yaml:"total"`
	Healthy  int `json:"healthy" yaml:"healthy"`
	Infected int `json:"infected" yaml:"infected"`
	Immune   int `json:"immune" yaml:"immune"`
	Exited   int `json:"exited" yaml:"exited"`
}

// Population summarizes live persons; exited persons are only counted as Exited.
type Population struct {
	Remaining int
	Total     int
	Healthy   int
	Infected  int
	Immune    int
	Exited    int
}

// CalculateFromSnapshot computes the stats of a snapshot
func CalculateFromSnapshot(snapshot []agent.Memento) Stats {
	s := Stats{Total: len(snapshot)}

	for _, m := range snapshot {
		exited := m.State == agent.StateExited

		if m.Health == agent.HealthHealthy && m.Immunity == agent.ImmunitySusceptible && !exited {
			s.Healthy++
		}
		if m.Health == agent.HealthInfected {
			s.Infected++
		}
		if m.Immunity == agent.ImmunityImmune {
			s.Immune++
		}
		if exited {
			s.Exited++
		}
	}

	return s
}

// Count computes the population summary of live persons
func Count(persons []*agent.Person) Population {
	pop := Population{Total: len(persons)}

	for _, p := range persons {
		if p.IsExited() {
			pop.Exited++
			continue
		}

		if p.IsImmune() {
			pop.Immune++
		}
		if p.IsInfected() {
			pop.Infected++
		}
		if !p.IsInfected() && !p.IsImmune() {
			pop.Healthy++
		}
	}

	pop.Remaining = pop.Total - pop.Exited

	return pop
}
