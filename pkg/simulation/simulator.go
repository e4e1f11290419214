package simulation

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sherine-k/infection/pkg/agent"
	"github.com/sherine-k/infection/pkg/random"
	"github.com/sherine-k/infection/pkg/vector"
)

const (
	// DefaultStep is the fixed step of the reference driver, 25 Hz
	DefaultStep = 1.0 / 25.0

	DefaultTargetPopulation           = 50
	DefaultReplacementInfectionChance = 0.1
	DefaultInfectionRadius            = 2.0
	DefaultContactThreshold           = 3.0

	minSpawnSpeed = 0.2
	reflectChance = 0.5
)

// Options tunes a Simulator. Fields not set by an option keep the defaults above.
type Options struct {
	Rand                       random.Source
	Logger                     *slog.Logger
	TargetPopulation           int
	ReplacementInfectionChance float64
	InfectionRadius            float64
	ContactThreshold           float64
}

// pairKey identifies an unordered pair of persons, low id first
type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Simulator owns the population and advances it in discrete steps
type Simulator struct {
	width    float64
	height   float64
	maxSpeed float64

	rng    random.Source
	logger *slog.Logger

	targetPopulation           int
	replacementInfectionChance float64
	infectionRadius            float64
	contactThreshold           float64

	agents          []*agent.Person
	nextID          int
	proximityTimers map[pairKey]float64
	elapsed         float64
	events          []Event
}

// New creates a simulator for a width x height field
func New(width, height, maxSpeed float64, opts ...func(o *Options)) *Simulator {
	options := Options{
		TargetPopulation:           DefaultTargetPopulation,
		ReplacementInfectionChance: DefaultReplacementInfectionChance,
		InfectionRadius:            DefaultInfectionRadius,
		ContactThreshold:           DefaultContactThreshold,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Rand == nil {
		options.Rand = random.New(0)
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	return &Simulator{
		width:                      width,
		height:                     height,
		maxSpeed:                   maxSpeed,
		rng:                        options.Rand,
		logger:                     options.Logger,
		targetPopulation:           options.TargetPopulation,
		replacementInfectionChance: options.ReplacementInfectionChance,
		infectionRadius:            options.InfectionRadius,
		contactThreshold:           options.ContactThreshold,
		agents:                     []*agent.Person{},
		nextID:                     1,
		proximityTimers:            map[pairKey]float64{},
	}
}

// WithRand sets the random source shared by the simulator and its persons
func WithRand(rng random.Source) func(o *Options) {
	return func(o *Options) { o.Rand = rng }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = logger }
}

// WithTargetPopulation sets the floor of live persons kept after each step
func WithTargetPopulation(n int) func(o *Options) {
	return func(o *Options) { o.TargetPopulation = n }
}

// WithReplacementInfectionChance sets the chance that a replacement is infected
func WithReplacementInfectionChance(p float64) func(o *Options) {
	return func(o *Options) { o.ReplacementInfectionChance = p }
}

// WithInfectionRadius sets the contact distance
func WithInfectionRadius(r float64) func(o *Options) {
	return func(o *Options) { o.InfectionRadius = r }
}

// WithContactThreshold sets the contact time, in seconds, needed for transmission
func WithContactThreshold(seconds float64) func(o *Options) {
	return func(o *Options) { o.ContactThreshold = seconds }
}

// Width returns the field width
func (s *Simulator) Width() float64 { return s.width }

// Height returns the field height
func (s *Simulator) Height() float64 { return s.height }

// MaxSpeed returns the speed bound
func (s *Simulator) MaxSpeed() float64 { return s.maxSpeed }

// Rand returns the shared random source
func (s *Simulator) Rand() random.Source { return s.rng }

// Elapsed returns the simulated time
func (s *Simulator) Elapsed() time.Duration { return seconds(s.elapsed) }

// Agents returns every person ever created, exited ones included, in
// creation order. The slice is a copy.
func (s *Simulator) Agents() []*agent.Person {
	out := make([]*agent.Person, len(s.agents))
	copy(out, s.agents)
	return out
}

// Alive returns the number of persons that have not exited
func (s *Simulator) Alive() int {
	alive := 0
	for _, p := range s.agents {
		if !p.IsExited() {
			alive++
		}
	}
	return alive
}

// ContactTime returns the accumulated contact time of a pair, in seconds
func (s *Simulator) ContactTime(a, b int) (float64, bool) {
	t, ok := s.proximityTimers[newPairKey(a, b)]
	return t, ok
}

// SeedInitialPopulation spawns count persons, each immune with probability
// immunityRatio
func (s *Simulator) SeedInitialPopulation(count int, immunityRatio, infectionChance float64) {
	for i := 0; i < count; i++ {
		immune := random.Bernoulli(s.rng, immunityRatio)
		s.SpawnPerson(immune, infectionChance)
	}
	s.logger.Info("population seeded", "count", count, "immunity_ratio", immunityRatio, "infection_chance", infectionChance)
}

// SpawnPerson places a new person on a random edge heading to the field center
func (s *Simulator) SpawnPerson(immune bool, infectionChance float64) *agent.Person {
	var x, y float64
	switch s.rng.Intn(4) {
	case 0:
		x, y = 0, s.rng.Float64()*s.height
	case 1:
		x, y = s.width, s.rng.Float64()*s.height
	case 2:
		x, y = s.rng.Float64()*s.width, 0
	case 3:
		x, y = s.rng.Float64()*s.width, s.height
	}

	cx, cy := s.width/2, s.height/2
	angle := math.Atan2(cy-y, cx-x)
	speed := random.Uniform(s.rng, minSpawnSpeed, s.maxSpeed)
	vel := vector.FromPolar(angle, speed)

	infected := !immune && random.Bernoulli(s.rng, infectionChance)

	p := agent.NewPerson(s.nextID, vector.New(x, y), vel, immune, infected, s.rng)
	s.nextID++
	s.agents = append(s.agents, p)

	s.addEvent(Event{
		Type:     EventTypeSpawned,
		PersonID: p.ID(),
		Message:  fmt.Sprintf("Person %d entered at %s (immune=%t infected=%t)", p.ID(), p.Position(), immune, infected),
	})

	return p
}

// Step advances the simulation by dt seconds
func (s *Simulator) Step(dt float64) {
	s.elapsed += dt

	for _, p := range s.agents {
		if !p.IsExited() {
			wasInfected := p.IsInfected()
			p.Update(dt)
			if wasInfected && !p.IsInfected() {
				s.addEvent(Event{
					Type:     EventTypeRecovered,
					PersonID: p.ID(),
					Message:  fmt.Sprintf("Person %d recovered and is now immune", p.ID()),
				})
			}
		}

		s.handleBorders(p)
	}

	s.maintainPopulation()
	s.handleInfections(dt)
}

// maintainPopulation spawns susceptible persons until the target is met
func (s *Simulator) maintainPopulation() {
	alive := s.Alive()
	for alive < s.targetPopulation {
		s.SpawnPerson(false, s.replacementInfectionChance)
		alive++
	}
}

// handleBorders either reflects or removes a person at the field border
func (s *Simulator) handleBorders(p *agent.Person) {
	if p.IsExited() {
		return
	}

	pos := p.Position()
	hitX := pos.X <= 0 || pos.X >= s.width
	hitY := pos.Y <= 0 || pos.Y >= s.height
	if !hitX && !hitY {
		return
	}

	if random.Bernoulli(s.rng, reflectChance) {
		vel := p.Velocity()
		if hitX {
			vel.X = -vel.X
		}
		if hitY {
			vel.Y = -vel.Y
		}
		p.SetVelocity(vel)
		return
	}

	p.MarkExited()
	s.addEvent(Event{
		Type:     EventTypeExited,
		PersonID: p.ID(),
		Message:  fmt.Sprintf("Person %d left the field at %s", p.ID(), pos),
	})
}

// handleInfections accrues contact time for every close live pair and runs
// transmission trials once the threshold is reached
func (s *Simulator) handleInfections(dt float64) {
	for i := 0; i < len(s.agents); i++ {
		a := s.agents[i]
		if a.IsExited() {
			continue
		}

		for j := i + 1; j < len(s.agents); j++ {
			b := s.agents[j]
			if b.IsExited() {
				continue
			}

			key := newPairKey(a.ID(), b.ID())

			if a.Position().Distance(b.Position()) > s.infectionRadius {
				delete(s.proximityTimers, key)
				continue
			}

			s.proximityTimers[key] += dt
			if s.proximityTimers[key] < s.contactThreshold {
				continue
			}

			if a.IsInfected() && b.InfectFrom(a, s.rng) {
				s.recordInfection(b, a)
			}
			if b.IsInfected() && a.InfectFrom(b, s.rng) {
				s.recordInfection(a, b)
			}
		}
	}
}

func (s *Simulator) recordInfection(target, source *agent.Person) {
	s.addEvent(Event{
		Type:     EventTypeInfected,
		PersonID: target.ID(),
		SourceID: source.ID(),
		Message:  fmt.Sprintf("Person %d infected by person %d (%s)", target.ID(), source.ID(), source.Symptoms()),
	})
}

// Snapshot returns one record per person in creation order
func (s *Simulator) Snapshot() []agent.Memento {
	records := make([]agent.Memento, 0, len(s.agents))
	for _, p := range s.agents {
		records = append(records, p.CreateMemento())
	}
	return records
}

// Restore replaces the population with the persons described by records.
// Contact timers are cleared and new ids continue above the highest restored id.
func (s *Simulator) Restore(records []agent.Memento) error {
	seen := make(map[int]bool, len(records))
	agents := make([]*agent.Person, 0, len(records))
	maxID := 0

	for _, m := range records {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("invalid snapshot record: %w", err)
		}
		if seen[m.ID] {
			return fmt.Errorf("invalid snapshot record: duplicate person id %d", m.ID)
		}
		seen[m.ID] = true

		agents = append(agents, agent.FromMemento(m, s.rng))
		if m.ID > maxID {
			maxID = m.ID
		}
	}

	s.agents = agents
	s.nextID = maxID + 1
	s.proximityTimers = map[pairKey]float64{}

	s.logger.Info("population restored", "count", len(agents), "next_id", s.nextID)

	return nil
}

// addEvent stamps an event with the simulated time and stores it
func (s *Simulator) addEvent(event Event) {
	event.Time = seconds(s.elapsed)
	s.logger.Debug(event.Message, "type", string(event.Type), "person", event.PersonID, "t", event.Time)
	s.events = append(s.events, event)
}

// GetEvents returns all events
func (s *Simulator) GetEvents() []Event {
	return s.events
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
