package msim

import "container/heap"

// A ParticleResolver derives the post-collision velocities of two
// particles from their states at the moment of contact and the unit
// contact normal pointing from the first to the second.
type ParticleResolver func(p1, p2 *Particle, normal Vec2) (Vec2, Vec2)

// A WallResolver derives the post-collision velocity of a particle
// hitting a wall, given the contact normal pointing out of the wall.
type WallResolver func(p *Particle, w *Wall, normal Vec2) Vec2

// A collision is a predicted contact: the particle, the other endpoint
// (a particle or a wall, by index), the contact normal and the time within
// the current budget at which it occurs. Collisions live only inside one
// Resolve call.
type collision struct {
	particle int
	other    int
	wall     bool
	normal   Vec2
	time     float64
}

// involvesParticle reports whether idx participates in the collision.
func (c collision) involvesParticle(idx int) bool {
	return c.particle == idx || (!c.wall && c.other == idx)
}

// A collisionQueue is a min-heap of collisions ordered by time. Exact
// time ties are broken arbitrarily, which is fine for well-posed scenes.
type collisionQueue []collision

func (q collisionQueue) Len() int            { return len(q) }
func (q collisionQueue) Less(i, j int) bool  { return q[i].time < q[j].time }
func (q collisionQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *collisionQueue) Push(x interface{}) { *q = append(*q, x.(collision)) }

func (q *collisionQueue) Pop() interface{} {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}

// dropInvolving removes every queued collision involving the particle.
// Such collisions are stale once the particle's velocity has changed.
func (q *collisionQueue) dropInvolving(idx int) {
	kept := (*q)[:0]
	for _, c := range *q {
		if !c.involvesParticle(idx) {
			kept = append(kept, c)
		}
	}
	*q = kept
	heap.Init(q)
}

// findParticleCollisions predicts collisions between one particle and a
// half-open index range of others. The range may contain the particle
// itself, which is skipped. Each particle may already have been advanced
// to its own simulated time, so positions are first rewound to the common
// time origin. Predictions earlier than a participant's simulated time
// (beyond the TimeEps slack) or at/after the budget are discarded.
func findParticleCollisions(main, from, to int, particles []Particle, classes map[ClassID]ParticleClass, times []float64, budget float64) []collision {
	var found []collision
	p1 := &particles[main]
	r1 := mustParticleClass(classes, p1.Class()).Radius()
	pos1 := p1.Position.Sub(p1.Velocity.Scale(times[main]))

	for i := from; i < to; i++ {
		if i == main {
			continue
		}
		p2 := &particles[i]
		pos2 := p2.Position.Sub(p2.Velocity.Scale(times[i]))
		r2 := mustParticleClass(classes, p2.Class()).Radius()

		t, ok := ParticleVsParticle(pos1, r1, p1.Velocity, pos2, r2, p2.Velocity)
		if !ok {
			continue
		}
		if t <= times[main]-TimeEps || t <= times[i]-TimeEps || t >= budget {
			continue
		}
		normal, ok := ParticlesCollisionNormal(
			pos1.Add(p1.Velocity.Scale(t)), p1.Velocity,
			pos2.Add(p2.Velocity.Scale(t)), p2.Velocity,
		)
		// Scenes set up with exact overlaps can yield no normal; such
		// contacts are dropped rather than resolved wrongly.
		if !ok {
			continue
		}
		found = append(found, collision{
			particle: main,
			other:    i,
			normal:   normal,
			time:     t,
		})
	}
	return found
}

// findWallCollisions predicts collisions between one particle and every
// wall, with the same time-window filter as findParticleCollisions.
func findWallCollisions(main int, particles []Particle, classes map[ClassID]ParticleClass, walls []Wall, times []float64, budget float64) []collision {
	var found []collision
	p := &particles[main]
	radius := mustParticleClass(classes, p.Class()).Radius()
	pos := p.Position.Sub(p.Velocity.Scale(times[main]))

	for i := range walls {
		t, normal, ok := ParticleVsPolygon(pos, radius, p.Velocity, walls[i].Polygon())
		if !ok {
			continue
		}
		if t <= times[main]-TimeEps || t >= budget {
			continue
		}
		found = append(found, collision{
			particle: main,
			other:    i,
			wall:     true,
			normal:   normal,
			time:     t,
		})
	}
	return found
}

// Resolve advances every particle through the time budget, detecting and
// resolving all collisions in chronological order.
//
// All pairwise and particle/wall contacts are predicted up front and kept
// in a time-ordered queue. The earliest event is popped, its participants
// are advanced exactly to the event time, the matching resolver supplies
// their new velocities, and every queued event touching those participants
// is discarded and recomputed against the whole scene: a velocity change
// at time t can both create earlier contacts with particles that were not
// previously nearby in time and invalidate later ones. When the queue
// drains, every particle is advanced to the end of the budget.
//
// The particle slice is mutated in place. Class tables and walls are
// read-only. The call is strictly sequential: any resolved event may
// invalidate any other, so events cannot be processed concurrently.
// Termination is guaranteed because every resolution strictly advances at
// least one participant's simulated time (up to the bounded TimeEps slack)
// and only finitely many pairs exist.
func Resolve(particles []Particle, particleClasses map[ClassID]ParticleClass, walls []Wall, budget float64, resolveParticles ParticleResolver, resolveWall WallResolver) {
	// Simulated time already covered for each particle within this call.
	times := make([]float64, len(particles))

	queue := &collisionQueue{}
	push := func(found []collision) {
		for _, c := range found {
			heap.Push(queue, c)
		}
	}

	for i := range particles {
		push(findParticleCollisions(i, i+1, len(particles), particles, particleClasses, times, budget))
		push(findWallCollisions(i, particles, particleClasses, walls, times, budget))
	}

	for queue.Len() > 0 {
		c := heap.Pop(queue).(collision)

		var touched [2]int
		numTouched := 0

		if c.wall {
			p := &particles[c.particle]
			p.Position = p.Position.Add(p.Velocity.Scale(c.time - times[c.particle]))
			p.Velocity = resolveWall(p, &walls[c.other], c.normal)
			times[c.particle] = c.time

			touched[0] = c.particle
			numTouched = 1
		} else {
			p1 := &particles[c.particle]
			p2 := &particles[c.other]
			p1.Position = p1.Position.Add(p1.Velocity.Scale(c.time - times[c.particle]))
			p2.Position = p2.Position.Add(p2.Velocity.Scale(c.time - times[c.other]))
			p1.Velocity, p2.Velocity = resolveParticles(p1, p2, c.normal)
			times[c.particle] = c.time
			times[c.other] = c.time

			touched[0], touched[1] = c.particle, c.other
			numTouched = 2
		}

		for _, idx := range touched[:numTouched] {
			queue.dropInvolving(idx)
		}
		for _, idx := range touched[:numTouched] {
			push(findParticleCollisions(idx, 0, len(particles), particles, particleClasses, times, budget))
			push(findWallCollisions(idx, particles, particleClasses, walls, times, budget))
		}
	}

	for i := range particles {
		p := &particles[i]
		p.Position = p.Position.Add(p.Velocity.Scale(budget - times[i]))
	}
}
