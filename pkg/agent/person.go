package agent

import (
	"math"

	"github.com/sherine-k/infection/pkg/random"
	"github.com/sherine-k/infection/pkg/vector"
)

const (
	// MinInfectionDuration and MaxInfectionDuration bound the per-person
	// recovery time, in seconds.
	MinInfectionDuration = 20.0
	MaxInfectionDuration = 30.0

	symptomaticTransmission  = 1.0
	asymptomaticTransmission = 0.5
)

// Person is a single simulated individual
type Person struct {
	id       int
	position vector.Vector2D
	velocity vector.Vector2D

	health   HealthState
	immunity Immunity
	symptoms SymptomState
	state    AgentState

	infectionTimer    float64
	infectionDuration float64
}

// NewPerson creates a moving person. An immune person is never infected,
// regardless of the infected flag.
func NewPerson(id int, pos, vel vector.Vector2D, immune, infected bool, rng random.Source) *Person {
	p := &Person{
		id:       id,
		position: pos,
		velocity: vel,
		health:   HealthHealthy,
		immunity: ImmunitySusceptible,
		symptoms: SymptomAsymptomatic,
		state:    StateMoving,
	}

	if immune {
		p.immunity = ImmunityImmune
	} else if infected {
		p.health = HealthInfected
		p.symptoms = drawSymptoms(rng)
	}

	p.infectionDuration = random.Uniform(rng, MinInfectionDuration, MaxInfectionDuration)

	return p
}

func drawSymptoms(rng random.Source) SymptomState {
	if random.Bernoulli(rng, 0.5) {
		return SymptomAsymptomatic
	}
	return SymptomSymptomatic
}

func (p *Person) ID() int                    { return p.id }
func (p *Person) Position() vector.Vector2D  { return p.position }
func (p *Person) Velocity() vector.Vector2D  { return p.velocity }
func (p *Person) Health() HealthState        { return p.health }
func (p *Person) Immunity() Immunity         { return p.immunity }
func (p *Person) Symptoms() SymptomState     { return p.symptoms }
func (p *Person) State() AgentState          { return p.state }
func (p *Person) InfectionTimer() float64    { return p.infectionTimer }
func (p *Person) InfectionDuration() float64 { return p.infectionDuration }
func (p *Person) IsInfected() bool           { return p.health == HealthInfected }
func (p *Person) IsImmune() bool             { return p.immunity == ImmunityImmune }
func (p *Person) IsExited() bool             { return p.state == StateExited }

// Update advances position by explicit Euler integration and progresses the
// infection. Recovery grants permanent immunity.
func (p *Person) Update(dt float64) {
	if p.IsExited() {
		return
	}

	p.position = p.position.Add(p.velocity.Scale(dt))

	if p.IsInfected() {
		p.infectionTimer += dt

		if p.infectionTimer >= p.infectionDuration {
			p.health = HealthHealthy
			p.immunity = ImmunityImmune
			p.symptoms = SymptomAsymptomatic
		}
	}
}

// SetVelocity replaces the velocity of a moving person
func (p *Person) SetVelocity(vel vector.Vector2D) {
	if p.IsExited() {
		return
	}
	p.velocity = vel
}

// ApplyRandomVelocityPerturbation adds a uniform jitter in [-maxDelta, maxDelta]
// to each velocity component and clamps the resulting speed to maxSpeed.
func (p *Person) ApplyRandomVelocityPerturbation(maxSpeed, maxDelta float64, rng random.Source) {
	if p.IsExited() {
		return
	}

	dx := random.Uniform(rng, -maxDelta, maxDelta)
	dy := random.Uniform(rng, -maxDelta, maxDelta)
	vel := p.velocity.Add(vector.New(dx, dy))

	if speed := vel.Abs(); speed > maxSpeed {
		vel = vel.Normalize().Scale(maxSpeed)
	}

	p.velocity = vel
}

// MarkExited moves the person to the terminal Exited state
func (p *Person) MarkExited() {
	p.state = StateExited
}

// InfectFrom runs a transmission trial from other. Immune or already infected
// persons are skipped before any number is drawn.
func (p *Person) InfectFrom(other *Person, rng random.Source) bool {
	if p.IsImmune() || p.IsInfected() || p.IsExited() {
		return false
	}

	chance := asymptomaticTransmission
	if other.symptoms == SymptomSymptomatic {
		chance = symptomaticTransmission
	}

	if !random.Bernoulli(rng, chance) {
		return false
	}

	p.health = HealthInfected
	p.symptoms = drawSymptoms(rng)
	p.infectionTimer = 0

	return true
}

// CreateMemento projects the person into a snapshot record
func (p *Person) CreateMemento() Memento {
	symptom := p.symptoms

	return Memento{
		ID:                      p.id,
		PosX:                    p.position.X,
		PosY:                    p.position.Y,
		VelX:                    p.velocity.X,
		VelY:                    p.velocity.Y,
		Immunity:                p.immunity,
		Health:                  p.health,
		Symptom:                 &symptom,
		State:                   p.state,
		InfectionRemainingSteps: int(math.Round(p.infectionTimer * StepsPerSecond)),
	}
}

// FromMemento restores a person from a snapshot record. The infection
// duration is not part of the record and is drawn again.
func FromMemento(m Memento, rng random.Source) *Person {
	p := NewPerson(m.ID, vector.New(m.PosX, m.PosY), vector.New(m.VelX, m.VelY), false, false, rng)

	p.immunity = m.Immunity
	p.health = m.Health
	p.state = m.State
	p.symptoms = SymptomAsymptomatic
	if m.Symptom != nil {
		p.symptoms = *m.Symptom
	}
	p.infectionTimer = float64(m.InfectionRemainingSteps) / StepsPerSecond

	return p
}
