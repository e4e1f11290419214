package simulation

import (
	"time"

	"github.com/sherine-k/infection/pkg/stats"
)

// EventType defines the type of event in the simulation
type EventType string

const (
	EventTypeSpawned   EventType = "spawned"
	EventTypeExited    EventType = "exited"
	EventTypeInfected  EventType = "infected"
	EventTypeRecovered EventType = "recovered"
)

// Event represents a point-in-time event in the simulation
type Event struct {
	Time     time.Duration
	Type     EventType
	PersonID int
	// SourceID is the infecting person for EventTypeInfected, 0 otherwise
	SourceID int
	Message  string
}

// TimePoint represents the population at a specific point in time
type TimePoint struct {
	Time time.Duration
	stats.Population
}
