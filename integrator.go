package msim

import "math/rand"

// ElasticParticleResolver builds the default particle-particle strategy:
// an impulse exchange along the contact normal with the given coefficient
// of restitution, masses taken from the class table.
func ElasticParticleResolver(classes map[ClassID]ParticleClass, restitution float64) ParticleResolver {
	return func(p1, p2 *Particle, normal Vec2) (Vec2, Vec2) {
		return SeparationVelocities(
			p1.Velocity, mustParticleClass(classes, p1.Class()).Mass(),
			p2.Velocity, mustParticleClass(classes, p2.Class()).Mass(),
			normal, restitution,
		)
	}
}

// ThermalWallResolver builds the default particle-wall strategy: a
// heat-bath bounce against the wall class's temperature and conductivity.
//
// The wall's instantaneous energy is resampled per collision from its
// nominal temperature with a bounded positive perturbation, so repeated
// hits against the same wall do not trade identical amounts of energy.
// rng may be nil, in which case the global PRNG is used.
func ThermalWallResolver(particleClasses map[ClassID]ParticleClass, wallClasses map[ClassID]WallClass, rng *rand.Rand) WallResolver {
	sample := rand.Float64
	if rng != nil {
		sample = rng.Float64
	}
	return func(p *Particle, w *Wall, normal Vec2) Vec2 {
		class := mustWallClass(wallClasses, w.Class())
		energy := WallEnergy(class.Temperature()) * (1 + sample())
		return ThermalBounceVelocity(
			p.Velocity,
			mustParticleClass(particleClasses, p.Class()).Mass(),
			normal,
			energy,
			class.HeatConductivity(),
		)
	}
}

// An Integrator advances a scene by one fixed external time step.
type Integrator interface {
	Step(particles []Particle, particleClasses map[ClassID]ParticleClass, walls []Wall, wallClasses map[ClassID]WallClass, gravity Vec2, timeStep float64)
}

// EventIntegrator is the event-driven integrator: it applies gravity to
// every velocity, then hands the scene to Resolve with the default
// resolvers so that all collisions inside the step are handled in
// chronological order.
type EventIntegrator struct {
	// Restitution is the coefficient of restitution for particle-particle
	// collisions. NewEventIntegrator sets it to 1 (fully elastic).
	Restitution float64

	// Rand drives the thermal-wall energy resampling. When nil the
	// global PRNG is used.
	Rand *rand.Rand
}

// NewEventIntegrator returns an integrator for a fully elastic gas.
func NewEventIntegrator() *EventIntegrator {
	return &EventIntegrator{Restitution: 1}
}

// Step implements Integrator.
func (ei *EventIntegrator) Step(particles []Particle, particleClasses map[ClassID]ParticleClass, walls []Wall, wallClasses map[ClassID]WallClass, gravity Vec2, timeStep float64) {
	for i := range particles {
		particles[i].Velocity = particles[i].Velocity.Add(gravity.Scale(timeStep))
	}
	Resolve(
		particles, particleClasses, walls, timeStep,
		ElasticParticleResolver(particleClasses, ei.Restitution),
		ThermalWallResolver(particleClasses, wallClasses, ei.Rand),
	)
}
