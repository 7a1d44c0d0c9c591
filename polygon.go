package msim

// A Polygon is an ordered sequence of vertices. It is implicitly closed:
// the last vertex connects back to the first. Vertices must be wound
// counterclockwise so that edge normals point outward; every inside/outside
// test in the engine relies on this sign convention.
type Polygon struct {
	Vertices []Vec2
}

// NewPolygon builds a polygon from its vertices.
func NewPolygon(vertices ...Vec2) Polygon {
	return Polygon{Vertices: vertices}
}

// NewRectangle builds an axis-aligned rectangle spanning the two corner
// points, wound counterclockwise.
func NewRectangle(x1, y1, x2, y2 float64) Polygon {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return NewPolygon(
		Vec2{x1, y1},
		Vec2{x2, y1},
		Vec2{x2, y2},
		Vec2{x1, y2},
	)
}

// NumEdges returns the number of edges, which equals the number of
// vertices because the polygon is closed.
func (p Polygon) NumEdges() int {
	return len(p.Vertices)
}

// Edge returns edge i: the segment from vertex i to vertex i+1 (mod N).
func (p Polygon) Edge(i int) LineSegment {
	return LineSegment{
		Begin: p.Vertices[i],
		End:   p.Vertices[(i+1)%len(p.Vertices)],
	}
}

// IsPointOutsideCorner reports whether pt lies outside the corner at
// vertex i. The corner is tested against the supporting planes of its two
// adjacent edges: a convex corner claims the point when it is in front of
// either plane, a concave corner only when it is in front of both. This
// keeps interior points from registering hits on vertices that are
// occluded by a face. Degenerate adjacent edges are skipped.
func (p Polygon) IsPointOutsideCorner(i int, pt Vec2) bool {
	n := len(p.Vertices)
	prev := p.Edge((i + n - 1) % n)
	next := p.Edge(i)

	prevPlane, prevOK := prev.Plane()
	nextPlane, nextOK := next.Plane()
	switch {
	case prevOK && nextOK:
		prevDir, _ := prev.Direction()
		nextDir, _ := next.Direction()
		convex := prevDir.Cross(nextDir) > 0
		if convex {
			return prevPlane.Distance(pt) > 0 || nextPlane.Distance(pt) > 0
		}
		return prevPlane.Distance(pt) > 0 && nextPlane.Distance(pt) > 0
	case prevOK:
		return prevPlane.Distance(pt) > 0
	case nextOK:
		return nextPlane.Distance(pt) > 0
	default:
		return false
	}
}
