package msim

import "fmt"

// A ParticleClass describes the immutable physical properties shared by
// all particles of one kind. Classes are addressed by ClassID and shared
// by reference across many particles.
type ParticleClass struct {
	name   string
	mass   float64
	radius float64
}

// NewParticleClass builds a particle class. Mass and radius must be
// strictly positive; a violation is a configuration bug and panics.
func NewParticleClass(name string, mass, radius float64) ParticleClass {
	if mass <= 0 {
		panic(fmt.Sprintf("msim: particle class %q has non-positive mass %v", name, mass))
	}
	if radius <= 0 {
		panic(fmt.Sprintf("msim: particle class %q has non-positive radius %v", name, radius))
	}
	return ParticleClass{name: name, mass: mass, radius: radius}
}

// Name returns the class name.
func (c ParticleClass) Name() string { return c.name }

// Mass returns the particle mass.
func (c ParticleClass) Mass() float64 { return c.mass }

// Radius returns the particle radius.
func (c ParticleClass) Radius() float64 { return c.radius }

// A Particle is the only state the engine mutates: a position, a velocity
// and a reference to the class holding its physical properties.
type Particle struct {
	Position Vec2
	Velocity Vec2
	class    ClassID
}

// NewParticle builds a particle of the given class.
func NewParticle(position, velocity Vec2, class ClassID) Particle {
	return Particle{Position: position, Velocity: velocity, class: class}
}

// Class returns the id of the particle's class.
func (p Particle) Class() ClassID { return p.class }

// mustParticleClass fetches a class from the lookup table, panicking on an
// unknown id. Dangling class references are construction-time bugs, never
// runtime conditions.
func mustParticleClass(classes map[ClassID]ParticleClass, id ClassID) ParticleClass {
	c, ok := classes[id]
	if !ok {
		panic(fmt.Sprintf("msim: unknown particle class %d", id))
	}
	return c
}
