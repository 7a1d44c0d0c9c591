package main

import (
	"os"
	"path/filepath"
	"testing"

	msim "github.com/progDes007/m-sim"
)

func TestDefaultConfBuild(t *testing.T) {
	sim, err := DefaultConf.Build()
	if err != nil {
		t.Fatal(err)
	}
	// A 10×10-cell grid spawns 121 particles; the box is four walls.
	if got := len(sim.Particles()); got != 121 {
		t.Errorf("particles = %d, want 121", got)
	}
	if got := len(sim.Walls()); got != 4 {
		t.Errorf("walls = %d, want 4", got)
	}
}

func TestParseConfig(t *testing.T) {
	const src = `
name = "test"
duration = 5.0
time_step = 0.1
gravity = [0.0, -9.8]
restitution = 0.9

[[particle_class]]
id = 1
name = "gas"
mass = 1.0
radius = 0.2
color = [1.0, 0.0, 0.0, 1.0]

[[wall_class]]
id = 1
name = "bath"
temperature = 3.0
heat_conductivity = 0.25
color = [0.5, 0.5, 0.5, 1.0]

[[particle_grid]]
class_id = 1
center_x = 0.0
center_y = 0.0
dim_x = 4.0
dim_y = 4.0
num_x = 2
num_y = 2
velocity = [1.0, 0.0]

[[box]]
class_id = 1
x1 = -6.0
y1 = -6.0
x2 = 6.0
y2 = 6.0
thickness = 1.0
`
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := ParseConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Name != "test" || conf.Duration != 5 || conf.TimeStep != 0.1 {
		t.Errorf("run parameters not parsed: %+v", conf)
	}
	if conf.Gravity != [2]float64{0, -9.8} {
		t.Errorf("gravity = %v, want (0, -9.8)", conf.Gravity)
	}
	if conf.Restitution != 0.9 {
		t.Errorf("restitution = %v, want 0.9", conf.Restitution)
	}
	if len(conf.ParticleClasses) != 1 || conf.ParticleClasses[0].Radius != 0.2 {
		t.Errorf("particle classes not parsed: %+v", conf.ParticleClasses)
	}
	if len(conf.WallClasses) != 1 || conf.WallClasses[0].HeatConductivity != 0.25 {
		t.Errorf("wall classes not parsed: %+v", conf.WallClasses)
	}

	sim, err := conf.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(sim.Particles()); got != 9 {
		t.Errorf("particles = %d, want 9", got)
	}
	if got := len(sim.Walls()); got != 4 {
		t.Errorf("walls = %d, want 4", got)
	}
}

func TestParticleClassTableErrors(t *testing.T) {
	conf := &Config{ParticleClasses: []ParticleClassConfig{
		{ID: 1, Name: "a", Mass: 1, Radius: 1},
		{ID: 1, Name: "b", Mass: 1, Radius: 1},
	}}
	if _, err := conf.ParticleClassTable(); err == nil {
		t.Error("duplicate id: expected an error")
	}

	conf = &Config{ParticleClasses: []ParticleClassConfig{
		{ID: 1, Name: "weightless", Mass: 0, Radius: 1},
	}}
	if _, err := conf.ParticleClassTable(); err == nil {
		t.Error("non-positive mass: expected an error")
	}
}

func TestWallClassTableErrors(t *testing.T) {
	conf := &Config{WallClasses: []WallClassConfig{
		{ID: 2, Name: "a"},
		{ID: 2, Name: "b"},
	}}
	if _, err := conf.WallClassTable(); err == nil {
		t.Error("duplicate id: expected an error")
	}
}

func TestBuildUnknownClassReferences(t *testing.T) {
	conf := &Config{
		ParticleClasses: []ParticleClassConfig{{ID: 1, Name: "gas", Mass: 1, Radius: 1}},
		WallClasses:     []WallClassConfig{{ID: 1, Name: "bath"}},
		ParticleGrids:   []ParticleGridConfig{{ClassID: 9, NumX: 1, NumY: 1}},
	}
	if _, err := conf.Build(); err == nil {
		t.Error("grid with unknown particle class: expected an error")
	}

	conf.ParticleGrids = nil
	conf.Boxes = []BoxConfig{{ClassID: 9, X2: 1, Y2: 1, Thickness: 0.1}}
	if _, err := conf.Build(); err == nil {
		t.Error("box with unknown wall class: expected an error")
	}
}

func TestStraightWallPolygon(t *testing.T) {
	poly, err := straightWallPolygon(StraightWallConfig{
		FromX: 0, FromY: 0, ToX: 10, ToY: 0, Width: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(poly.Vertices) != 4 {
		t.Fatalf("vertices = %d, want 4", len(poly.Vertices))
	}
	// Counterclockwise winding: every edge normal points away from the
	// segment midpoint.
	mid := msim.Vec2{X: 5, Y: 0}
	for i := 0; i < poly.NumEdges(); i++ {
		pl, ok := poly.Edge(i).Plane()
		if !ok {
			t.Fatalf("edge %d degenerate", i)
		}
		if pl.Distance(mid) >= 0 {
			t.Errorf("edge %d normal %v does not point outward", i, pl.Normal)
		}
	}

	if _, err := straightWallPolygon(StraightWallConfig{FromX: 1, FromY: 1, ToX: 1, ToY: 1, Width: 2}); err == nil {
		t.Error("zero-length wall: expected an error")
	}
	if _, err := straightWallPolygon(StraightWallConfig{ToX: 10, Width: 0}); err == nil {
		t.Error("zero width: expected an error")
	}
}

func TestGridParticlesRotation(t *testing.T) {
	flat := gridParticles(ParticleGridConfig{
		ClassID: 1, CenterX: 5, CenterY: 5, DimX: 2, DimY: 2, NumX: 1, NumY: 1,
	})
	turned := gridParticles(ParticleGridConfig{
		ClassID: 1, CenterX: 5, CenterY: 5, XAxisAngle: 90, DimX: 2, DimY: 2, NumX: 1, NumY: 1,
	})
	if len(flat) != 4 || len(turned) != 4 {
		t.Fatalf("counts = %d, %d, want 4, 4", len(flat), len(turned))
	}

	// Rotating a square grid about its own center permutes the corners but
	// covers the same four points.
	covered := func(ps []msim.Particle, want msim.Vec2) bool {
		for _, p := range ps {
			if p.Position.ApproxEq(want, 1e-9) {
				return true
			}
		}
		return false
	}
	for _, w := range []msim.Vec2{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 4, Y: 6}, {X: 6, Y: 6}} {
		if !covered(flat, w) {
			t.Errorf("flat grid misses %v", w)
		}
		if !covered(turned, w) {
			t.Errorf("turned grid misses %v", w)
		}
	}
}

func TestNumSteps(t *testing.T) {
	if got := numSteps(&Config{Duration: 1, TimeStep: 0.25}); got != 4 {
		t.Errorf("numSteps = %d, want 4", got)
	}
	// A partial trailing step still counts.
	if got := numSteps(&Config{Duration: 1, TimeStep: 0.3}); got != 4 {
		t.Errorf("numSteps = %d, want 4", got)
	}
}
