package msim

// Statistics aggregates read-only energy measures over a particle slice.
type Statistics struct {
	NumParticles int
	TotalEnergy  float64
	MeanEnergy   float64

	// Temperature is defined as ⅔ of the mean kinetic energy, the 2D
	// counterpart of the equipartition law used by the thermal walls.
	Temperature float64
}

// BuildStatistics computes statistics for the given particles.
func BuildStatistics(particles []Particle, classes map[ClassID]ParticleClass) Statistics {
	stats := Statistics{NumParticles: len(particles)}
	for i := range particles {
		p := &particles[i]
		mass := mustParticleClass(classes, p.Class()).Mass()
		stats.TotalEnergy += KineticEnergy(mass, p.Velocity.Length())
	}
	if stats.NumParticles > 0 {
		stats.MeanEnergy = stats.TotalEnergy / float64(stats.NumParticles)
		stats.Temperature = stats.MeanEnergy * 2 / 3
	}
	return stats
}
