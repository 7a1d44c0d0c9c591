package msim

// A Plane is an infinite oriented line in 2D, stored in normal form.
type Plane struct {
	// Normal is the unit normal of the plane. Points in front of the
	// plane have positive signed distance.
	Normal Vec2

	// Offset is the signed distance of the plane from the origin,
	// measured along Normal.
	Offset float64
}

// Distance returns the signed distance from p to the plane.
// Positive means p is in front of the plane.
func (pl Plane) Distance(p Vec2) float64 {
	return pl.Normal.Dot(p) - pl.Offset
}

// A LineSegment is a directed segment between two points.
type LineSegment struct {
	Begin Vec2
	End   Vec2
}

// Direction returns the unit direction from Begin to End. The second
// return value is false for a degenerate (zero-length) segment.
func (s LineSegment) Direction() (Vec2, bool) {
	return s.End.Sub(s.Begin).Normalized()
}

// Normal returns the unit normal of the segment: the direction rotated 90°
// clockwise. For counterclockwise-wound polygons this points outward.
// The second return value is false for a degenerate segment.
func (s LineSegment) Normal() (Vec2, bool) {
	d, ok := s.Direction()
	if !ok {
		return Vec2{}, false
	}
	return Vec2{d.Y, -d.X}, true
}

// Plane returns the supporting plane of the segment. The second return
// value is false for a degenerate segment.
func (s LineSegment) Plane() (Plane, bool) {
	n, ok := s.Normal()
	if !ok {
		return Plane{}, false
	}
	return Plane{Normal: n, Offset: n.Dot(s.Begin)}, true
}

// Offset returns the segment translated by d along its normal.
// A degenerate segment is returned unchanged.
func (s LineSegment) Offset(d float64) LineSegment {
	n, ok := s.Normal()
	if !ok {
		return s
	}
	t := n.Scale(d)
	return LineSegment{Begin: s.Begin.Add(t), End: s.End.Add(t)}
}
