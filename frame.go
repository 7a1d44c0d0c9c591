package msim

// A Frame is the per-step snapshot a driver emits for playback or
// recording: the simulated time, a copy of every particle and the scene
// statistics at that moment. Walls are static and travel separately.
type Frame struct {
	Time      float64
	Particles []Particle
	Stats     Statistics
}

// Snapshot builds a frame from the current state of a simulation.
func Snapshot(time float64, sim *Simulation) Frame {
	particles := make([]Particle, len(sim.Particles()))
	copy(particles, sim.Particles())
	return Frame{
		Time:      time,
		Particles: particles,
		Stats:     BuildStatistics(particles, sim.ParticleClasses()),
	}
}
