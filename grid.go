package msim

// A VelocityField assigns an initial velocity to a spawn position.
type VelocityField func(pos Vec2) Vec2

// ConstantVelocity returns a velocity field that ignores the position.
func ConstantVelocity(velocity Vec2) VelocityField {
	return func(Vec2) Vec2 { return velocity }
}

// GenerateGrid spawns particles on a regular grid. The grid starts at
// origin, extends sizePrimary along the unit direction primaryDir and
// sizeSecondary along its 90° counterclockwise rotation, and is divided
// into the given number of cells per axis; particles sit on the cell
// corners, so an n×m grid yields (n+1)·(m+1) particles. Zero cells on
// either axis yields no particles.
func GenerateGrid(origin, primaryDir Vec2, sizePrimary, sizeSecondary float64, cellsPrimary, cellsSecondary int, velocity VelocityField, class ClassID) []Particle {
	if cellsPrimary <= 0 || cellsSecondary <= 0 {
		return nil
	}
	stepPrimary := sizePrimary / float64(cellsPrimary)
	stepSecondary := sizeSecondary / float64(cellsSecondary)
	secondaryDir := primaryDir.Rotated90()

	particles := make([]Particle, 0, (cellsPrimary+1)*(cellsSecondary+1))
	for i := 0; i <= cellsSecondary; i++ {
		for j := 0; j <= cellsPrimary; j++ {
			pos := origin.
				Add(primaryDir.Scale(float64(j) * stepPrimary)).
				Add(secondaryDir.Scale(float64(i) * stepSecondary))
			particles = append(particles, NewParticle(pos, velocity(pos), class))
		}
	}
	return particles
}
