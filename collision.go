package msim

import (
	"fmt"
	"math"
)

// solveQuadratic solves a·x² + b·x + c = 0. It returns the two real roots
// in ascending order, or ok == false when no real root exists.
func solveQuadratic(a, b, c float64) (x1, x2 float64, ok bool) {
	d := b*b - 4*a*c
	if d < 0 || a == 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(d)
	x1 = (-b - sq) / (2 * a)
	x2 = (-b + sq) / (2 * a)
	return x1, x2, true
}

// CircleVsOrigin computes the time at which a moving circle of the given
// radius touches the fixed point at the origin. The center and velocity are
// expressed in the origin's frame. The time may be negative when the circle
// already overlaps the origin. ok is false when no collision occurs.
//
// A circle that is departing, or whose closing speed is zero, never
// collides even when it overlaps the origin. Solutions where the contact
// direction is perpendicular to the motion are filtered out: the quadratic
// reports such grazing touches as genuine hits, but no momentum can cross
// the contact and downstream normals degenerate. This filter is deliberate
// policy; an exactly tangent approach yields no collision.
func CircleVsOrigin(center Vec2, radius float64, velocity Vec2) (float64, bool) {
	if velocity.Dot(center) >= 0 {
		return 0, false
	}
	// |center + velocity·t|² = radius² expands to a quadratic in t.
	a := velocity.LengthSquared()
	b := 2 * center.Dot(velocity)
	c := center.LengthSquared() - radius*radius
	t, _, ok := solveQuadratic(a, b, c)
	if !ok {
		return 0, false
	}
	// The departing case is already handled, so the smaller root is the
	// moment the surfaces first touch.
	contact, contactOK := center.Add(velocity.Scale(t)).Normalized()
	dir, dirOK := velocity.Normalized()
	if !contactOK || !dirOK {
		return 0, false
	}
	if math.Abs(contact.Dot(dir)) < StrictEps {
		return 0, false
	}
	return t, true
}

// ParticleVsParticle computes the collision time of two moving circles by
// reducing the problem to CircleVsOrigin in the second circle's frame.
func ParticleVsParticle(pos1 Vec2, radius1 float64, vel1 Vec2, pos2 Vec2, radius2 float64, vel2 Vec2) (float64, bool) {
	return CircleVsOrigin(pos1.Sub(pos2), radius1+radius2, vel1.Sub(vel2))
}

// PointVsPlane computes the time at which a moving point crosses the
// plane, approaching from the front. ok is false when the point moves away
// from the plane or parallel to it.
func PointVsPlane(point, velocity Vec2, plane Plane) (float64, bool) {
	approach := -velocity.Dot(plane.Normal)
	if approach <= 0 {
		return 0, false
	}
	return plane.Distance(point) / approach, true
}

// PointVsSegment computes the time at which a moving point hits the
// segment. The contact must land between the endpoints; crossing the
// segment's supporting plane beyond either end is not a hit. ok is false
// for a degenerate segment.
func PointVsSegment(point, velocity Vec2, segment LineSegment) (float64, bool) {
	plane, ok := segment.Plane()
	if !ok {
		return 0, false
	}
	t, ok := PointVsPlane(point, velocity, plane)
	if !ok {
		return 0, false
	}
	contact := point.Add(velocity.Scale(t))
	if contact.Sub(segment.Begin).Dot(contact.Sub(segment.End)) > 0 {
		return 0, false
	}
	return t, true
}

// ParticleVsPolygon computes the earliest collision between a moving circle
// and a static polygon, returning the collision time and the contact
// normal pointing out of the polygon. Candidates are the polygon's corners
// (tested as circle-vs-point, but only for corners the center is outside
// of) and its faces (tested by inflating each edge outward by the radius).
// ok is false when nothing is hit.
func ParticleVsPolygon(center Vec2, radius float64, velocity Vec2, polygon Polygon) (float64, Vec2, bool) {
	best := math.Inf(1)
	var bestNormal Vec2
	found := false

	for i, v := range polygon.Vertices {
		if !polygon.IsPointOutsideCorner(i, center) {
			continue
		}
		t, ok := CircleVsOrigin(center.Sub(v), radius, velocity)
		if !ok || t >= best {
			continue
		}
		contact := center.Add(velocity.Scale(t))
		normal, ok := contact.Sub(v).Normalized()
		if !ok {
			continue
		}
		best, bestNormal, found = t, normal, true
	}

	for i := 0; i < polygon.NumEdges(); i++ {
		edge := polygon.Edge(i)
		plane, ok := edge.Plane()
		if !ok {
			continue
		}
		// A center buried deeper than one radius behind the face can
		// no longer reach it from the front.
		if -plane.Distance(center) >= radius {
			continue
		}
		t, ok := PointVsSegment(center, velocity, edge.Offset(radius))
		if !ok || t >= best {
			continue
		}
		best, bestNormal, found = t, plane.Normal, true
	}

	if !found {
		return 0, Vec2{}, false
	}
	return best, bestNormal, true
}

// ParticlesCollisionNormal returns the unit contact normal between two
// colliding particles, pointing from the first body to the second. The
// positions must be taken at the moment of contact. When the centers
// coincide the normalized relative velocity is used instead; if that is
// also zero no normal exists and ok is false.
func ParticlesCollisionNormal(pos1, vel1, pos2, vel2 Vec2) (Vec2, bool) {
	if n, ok := pos2.Sub(pos1).Normalized(); ok {
		return n, true
	}
	return vel1.Sub(vel2).Normalized()
}

// SeparationVelocities applies an impulse along the contact normal and
// returns the post-collision velocities of both bodies. The normal must
// point from body 1 to body 2. Momentum is conserved exactly; restitution 1
// also conserves kinetic energy along the normal, restitution 0 cancels
// the normal component of the relative velocity.
func SeparationVelocities(vel1 Vec2, mass1 float64, vel2 Vec2, mass2 float64, normal Vec2, restitution float64) (Vec2, Vec2) {
	closing := vel1.Sub(vel2).Dot(normal)
	impulse := (1 + restitution) * closing / (1/mass1 + 1/mass2)
	return vel1.Sub(normal.Scale(impulse / mass1)),
		vel2.Add(normal.Scale(impulse / mass2))
}

// ReflectedVelocity returns the velocity mirrored about the contact
// normal: an elastic bounce off an infinitely heavy boundary.
func ReflectedVelocity(velocity, normal Vec2) Vec2 {
	return velocity.Sub(normal.Scale(2 * velocity.Dot(normal)))
}

// WallEnergy converts a wall temperature to the kinetic energy a particle
// holds at thermal equilibrium with it, the inverse of the temperature law
// used by Statistics.
func WallEnergy(temperature float64) float64 {
	return 1.5 * temperature
}

// ThermalBounceVelocity returns the post-collision velocity of a particle
// bouncing off a heat-bath wall. The elastic reflection serves as the
// reference; a scalar correction along the normal then adjusts the speed
// so that the particle's kinetic energy moves toward wallEnergy. Only the
// normal component of the motion carries energy across the boundary, so
// the exchangeable fraction scales with the squared cosine of the
// incidence angle, further damped by the wall's conductivity.
//
// A real correction always exists for conductivity in [0, 1]; failing to
// find one means the engine's own math is broken, so it panics.
func ThermalBounceVelocity(velocity Vec2, mass float64, normal Vec2, wallEnergy, conductivity float64) Vec2 {
	reflected := ReflectedVelocity(velocity, normal)

	speedSq := velocity.LengthSquared()
	if speedSq < DistanceEpsSq {
		return reflected
	}
	energy := KineticEnergy(mass, velocity.Length())

	// cos² of the incidence angle between velocity and normal.
	cosSq := velocity.Dot(normal) * velocity.Dot(normal) / speedSq

	target := energy + conductivity*cosSq*(wallEnergy-energy)

	// Solve |reflected + x·normal|² = 2·target/mass for the offset x.
	b := 2 * reflected.Dot(normal)
	c := reflected.LengthSquared() - 2*target/mass
	x1, x2, ok := solveQuadratic(1, b, c)
	if !ok {
		panic(fmt.Sprintf("msim: no energy-matching bounce for velocity %v, normal %v, target %v", velocity, normal, target))
	}
	// The root of smaller magnitude is the minimal perturbation from the
	// elastic reference.
	x := x1
	if math.Abs(x2) < math.Abs(x1) {
		x = x2
	}
	return reflected.Add(normal.Scale(x))
}

// KineticEnergy returns the kinetic energy of a mass moving at the given
// speed.
func KineticEnergy(mass, speed float64) float64 {
	return 0.5 * mass * speed * speed
}
