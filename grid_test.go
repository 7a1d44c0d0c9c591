package msim

import (
	"math"
	"testing"
)

func TestGenerateGrid(t *testing.T) {
	// A 1×1-cell grid over a 2×4 region yields the four cell corners.
	particles := GenerateGrid(Vec2{1, 1}, Vec2{1, 0}, 2, 4, 1, 1, ConstantVelocity(Vec2{0.5, -0.5}), 7)
	if len(particles) != 4 {
		t.Fatalf("got %d particles, want 4", len(particles))
	}
	want := []Vec2{{1, 1}, {3, 1}, {1, 5}, {3, 5}}
	for i, w := range want {
		if !particles[i].Position.ApproxEq(w, StrictEps) {
			t.Errorf("particle %d position = %v, want %v", i, particles[i].Position, w)
		}
		if !particles[i].Velocity.ApproxEq(Vec2{0.5, -0.5}, StrictEps) {
			t.Errorf("particle %d velocity = %v", i, particles[i].Velocity)
		}
		if particles[i].Class() != 7 {
			t.Errorf("particle %d class = %d, want 7", i, particles[i].Class())
		}
	}
}

func TestGenerateGridCounts(t *testing.T) {
	// n×m cells put particles on the corners: (n+1)·(m+1) of them.
	particles := GenerateGrid(Vec2{}, Vec2{1, 0}, 10, 10, 4, 2, ConstantVelocity(Vec2{}), 1)
	if len(particles) != 15 {
		t.Errorf("got %d particles, want 15", len(particles))
	}

	if got := GenerateGrid(Vec2{}, Vec2{1, 0}, 10, 10, 0, 2, ConstantVelocity(Vec2{}), 1); got != nil {
		t.Errorf("zero cells: got %d particles, want none", len(got))
	}
	if got := GenerateGrid(Vec2{}, Vec2{1, 0}, 10, 10, 3, -1, ConstantVelocity(Vec2{}), 1); got != nil {
		t.Errorf("negative cells: got %d particles, want none", len(got))
	}
}

func TestGenerateGridRotated(t *testing.T) {
	// A grid along the diagonal: the secondary axis is the primary rotated
	// 90° counterclockwise.
	s := math.Sqrt2 / 2
	primary := Vec2{s, s}
	particles := GenerateGrid(Vec2{0, 0}, primary, math.Sqrt2, math.Sqrt2, 1, 1, ConstantVelocity(Vec2{}), 1)
	if len(particles) != 4 {
		t.Fatalf("got %d particles, want 4", len(particles))
	}
	want := []Vec2{{0, 0}, {1, 1}, {-1, 1}, {0, 2}}
	for i, w := range want {
		if !particles[i].Position.ApproxEq(w, 1e-9) {
			t.Errorf("particle %d position = %v, want %v", i, particles[i].Position, w)
		}
	}
}

func TestGenerateGridVelocityField(t *testing.T) {
	// The field sees each particle's spawn position.
	field := func(pos Vec2) Vec2 { return Vec2{pos.Y, -pos.X} }
	particles := GenerateGrid(Vec2{2, 0}, Vec2{1, 0}, 2, 2, 1, 1, field, 1)
	for _, p := range particles {
		want := Vec2{p.Position.Y, -p.Position.X}
		if !p.Velocity.ApproxEq(want, StrictEps) {
			t.Errorf("particle at %v velocity = %v, want %v", p.Position, p.Velocity, want)
		}
	}
}
