// Package msim is a deterministic continuous-time physics core for 2D
// circular particles moving among each other and against static polygonal
// walls.
//
// Instead of sampling motion at fixed steps, the engine computes analytic
// times of impact for every particle pair and every particle/wall pair,
// then resolves the resulting events strictly in chronological order.
// Fast particles therefore never tunnel through thin walls or narrow gaps.
//
// The core is the Resolve function together with the collision math it is
// built on. Velocity changes are injected as two strategy functions, so the
// same scheduler serves elastic gases, inelastic media and heat-bath walls
// alike. Everything else in the package (Simulation, Integrator, Statistics,
// frame snapshots, spawn helpers) exists to assemble scenes and drive the
// core once per fixed external step.
package msim

// ClassID addresses a particle or wall class in its lookup table.
type ClassID uint8

// Epsilon constants used across the engine. They are process-wide policy,
// initialized once and never mutated.
const (
	// DistanceEps is the tolerance for positional comparisons.
	DistanceEps = 1e-8

	// DistanceEpsSq is DistanceEps squared, for squared-length tests.
	DistanceEpsSq = DistanceEps * DistanceEps

	// StrictEps is the tolerance for strict scalar comparisons, such as
	// the grazing-contact filter in the time-of-impact solver.
	StrictEps = 1e-10

	// TimeEps is the tolerance for simulated-time comparisons. Collisions
	// computed up to TimeEps in a participant's past are still accepted,
	// absorbing floating-point drift across cascaded resolutions.
	TimeEps = 1e-6
)

// ApproxEq reports whether a and b differ by less than eps.
func ApproxEq(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
