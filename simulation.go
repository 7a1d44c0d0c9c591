package msim

import "fmt"

// A Simulation owns a scene: the class lookup tables plus the particles
// and walls spawned into them. It does no physics itself; an Integrator
// borrows the particle slice once per step.
type Simulation struct {
	particleClasses map[ClassID]ParticleClass
	wallClasses     map[ClassID]WallClass
	particles       []Particle
	walls           []Wall
}

// NewSimulation builds an empty scene over the given class tables.
func NewSimulation(particleClasses map[ClassID]ParticleClass, wallClasses map[ClassID]WallClass) *Simulation {
	return &Simulation{
		particleClasses: particleClasses,
		wallClasses:     wallClasses,
	}
}

// ParticleClasses returns the particle class table. Callers must treat it
// as read-only.
func (s *Simulation) ParticleClasses() map[ClassID]ParticleClass {
	return s.particleClasses
}

// WallClasses returns the wall class table. Callers must treat it as
// read-only.
func (s *Simulation) WallClasses() map[ClassID]WallClass {
	return s.wallClasses
}

// Particles returns the mutable particle slice.
func (s *Simulation) Particles() []Particle {
	return s.particles
}

// Walls returns the walls of the scene.
func (s *Simulation) Walls() []Wall {
	return s.walls
}

// SpawnParticle adds one particle. Referencing an unknown class is a
// configuration bug and panics.
func (s *Simulation) SpawnParticle(p Particle) {
	if _, ok := s.particleClasses[p.Class()]; !ok {
		panic(fmt.Sprintf("msim: spawning particle of unknown class %d", p.Class()))
	}
	s.particles = append(s.particles, p)
}

// SpawnParticles adds a batch of particles.
func (s *Simulation) SpawnParticles(particles []Particle) {
	for _, p := range particles {
		s.SpawnParticle(p)
	}
}

// SpawnWall adds one wall. Referencing an unknown class is a
// configuration bug and panics.
func (s *Simulation) SpawnWall(w Wall) {
	if _, ok := s.wallClasses[w.Class()]; !ok {
		panic(fmt.Sprintf("msim: spawning wall of unknown class %d", w.Class()))
	}
	s.walls = append(s.walls, w)
}

// SpawnWalls adds a batch of walls.
func (s *Simulation) SpawnWalls(walls []Wall) {
	for _, w := range walls {
		s.SpawnWall(w)
	}
}
