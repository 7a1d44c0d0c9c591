package main

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	msim "github.com/progDes007/m-sim"
)

// Config holds the scene description and the run parameters.
type Config struct {
	Name string

	// Output is either a filename (path) for the HDF5 recording,
	// or the empty string for interactive OpenGL playback.
	Output string

	// Replay is the path of an existing HDF5 recording to play back
	// instead of simulating. The rest of the config still provides the
	// walls, classes and colors.
	Replay string

	Duration    float64    // total simulated time
	TimeStep    float64    `toml:"time_step"` // fixed external step
	Gravity     [2]float64 // acceleration applied every step
	Restitution float64    // particle-particle coefficient of restitution

	ParticleClasses []ParticleClassConfig `toml:"particle_class"`
	WallClasses     []WallClassConfig     `toml:"wall_class"`
	ParticleGrids   []ParticleGridConfig  `toml:"particle_grid"`
	StraightWalls   []StraightWallConfig  `toml:"straight_wall"`
	Boxes           []BoxConfig           `toml:"box"`
}

// ParticleClassConfig describes one particle class.
type ParticleClassConfig struct {
	ID     uint8
	Name   string
	Mass   float64
	Radius float64
	Color  [4]float32
}

// WallClassConfig describes one thermal wall class.
type WallClassConfig struct {
	ID               uint8
	Name             string
	Temperature      float64
	HeatConductivity float64 `toml:"heat_conductivity"`
	Color            [4]float32
}

// ParticleGridConfig spawns a rectangular grid of particles.
type ParticleGridConfig struct {
	ClassID    uint8   `toml:"class_id"`
	CenterX    float64 `toml:"center_x"`
	CenterY    float64 `toml:"center_y"`
	XAxisAngle float64 `toml:"x_axis_angle"` // degrees
	DimX       float64 `toml:"dim_x"`
	DimY       float64 `toml:"dim_y"`
	NumX       int     `toml:"num_x"`
	NumY       int     `toml:"num_y"`
	Velocity   [2]float64
}

// StraightWallConfig spawns one wall: a thick segment.
type StraightWallConfig struct {
	ClassID uint8   `toml:"class_id"`
	FromX   float64 `toml:"from_x"`
	FromY   float64 `toml:"from_y"`
	ToX     float64 `toml:"to_x"`
	ToY     float64 `toml:"to_y"`
	Width   float64
}

// BoxConfig spawns four walls enclosing a rectangular region.
type BoxConfig struct {
	ClassID   uint8 `toml:"class_id"`
	X1        float64
	Y1        float64
	X2        float64
	Y2        float64
	Thickness float64
}

// DefaultConf is a small demo scene: an elastic gas of 121 particles in a
// heat-bath box slightly warmer than the gas.
var DefaultConf = &Config{
	Name:        "demo",
	Duration:    60,
	TimeStep:    1.0 / 60,
	Gravity:     [2]float64{0, 0},
	Restitution: 1,
	ParticleClasses: []ParticleClassConfig{
		{ID: 1, Name: "gas", Mass: 1, Radius: 0.15, Color: [4]float32{1, 1, 0, 1}},
	},
	WallClasses: []WallClassConfig{
		{ID: 1, Name: "heat bath", Temperature: 2, HeatConductivity: 0.5, Color: [4]float32{0.6, 0.6, 0.6, 1}},
	},
	ParticleGrids: []ParticleGridConfig{
		{ClassID: 1, CenterX: 0, CenterY: 0, DimX: 14, DimY: 14, NumX: 10, NumY: 10, Velocity: [2]float64{1.5, 0.9}},
	},
	Boxes: []BoxConfig{
		{ClassID: 1, X1: -10, Y1: -10, X2: 10, Y2: 10, Thickness: 1},
	},
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := DefaultConf
	_, err := toml.DecodeFile(path, conf)
	return conf, err
}

// ParticleClassTable builds the particle class lookup table.
func (c *Config) ParticleClassTable() (map[msim.ClassID]msim.ParticleClass, error) {
	classes := make(map[msim.ClassID]msim.ParticleClass, len(c.ParticleClasses))
	for _, pc := range c.ParticleClasses {
		id := msim.ClassID(pc.ID)
		if _, ok := classes[id]; ok {
			return nil, fmt.Errorf("duplicate particle class id %d", pc.ID)
		}
		if pc.Mass <= 0 || pc.Radius <= 0 {
			return nil, fmt.Errorf("particle class %q needs positive mass and radius", pc.Name)
		}
		classes[id] = msim.NewParticleClass(pc.Name, pc.Mass, pc.Radius)
	}
	return classes, nil
}

// WallClassTable builds the wall class lookup table.
func (c *Config) WallClassTable() (map[msim.ClassID]msim.WallClass, error) {
	classes := make(map[msim.ClassID]msim.WallClass, len(c.WallClasses))
	for _, wc := range c.WallClasses {
		id := msim.ClassID(wc.ID)
		if _, ok := classes[id]; ok {
			return nil, fmt.Errorf("duplicate wall class id %d", wc.ID)
		}
		classes[id] = msim.NewWallClass(wc.Name, wc.Temperature, wc.HeatConductivity)
	}
	return classes, nil
}

// Build materializes the scene: class tables, walls and particle grids.
func (c *Config) Build() (*msim.Simulation, error) {
	particleClasses, err := c.ParticleClassTable()
	if err != nil {
		return nil, err
	}
	wallClasses, err := c.WallClassTable()
	if err != nil {
		return nil, err
	}
	sim := msim.NewSimulation(particleClasses, wallClasses)

	for _, b := range c.Boxes {
		if _, ok := wallClasses[msim.ClassID(b.ClassID)]; !ok {
			return nil, fmt.Errorf("box references unknown wall class %d", b.ClassID)
		}
		sim.SpawnWalls(msim.MakeBox(b.X1, b.Y1, b.X2, b.Y2, b.Thickness, msim.ClassID(b.ClassID)))
	}
	for _, sw := range c.StraightWalls {
		if _, ok := wallClasses[msim.ClassID(sw.ClassID)]; !ok {
			return nil, fmt.Errorf("straight wall references unknown wall class %d", sw.ClassID)
		}
		poly, err := straightWallPolygon(sw)
		if err != nil {
			return nil, err
		}
		sim.SpawnWall(msim.NewWall(poly, msim.ClassID(sw.ClassID)))
	}
	for _, g := range c.ParticleGrids {
		if _, ok := particleClasses[msim.ClassID(g.ClassID)]; !ok {
			return nil, fmt.Errorf("particle grid references unknown particle class %d", g.ClassID)
		}
		sim.SpawnParticles(gridParticles(g))
	}
	return sim, nil
}

// straightWallPolygon turns a thick segment into a counterclockwise
// rectangle.
func straightWallPolygon(sw StraightWallConfig) (msim.Polygon, error) {
	from := msim.Vec2{X: sw.FromX, Y: sw.FromY}
	to := msim.Vec2{X: sw.ToX, Y: sw.ToY}
	seg := msim.LineSegment{Begin: from, End: to}
	normal, ok := seg.Normal()
	if !ok {
		return msim.Polygon{}, fmt.Errorf("straight wall from (%g, %g) to (%g, %g) has zero length", sw.FromX, sw.FromY, sw.ToX, sw.ToY)
	}
	if sw.Width <= 0 {
		return msim.Polygon{}, fmt.Errorf("straight wall needs positive width, got %g", sw.Width)
	}
	h := normal.Scale(sw.Width / 2)
	return msim.NewPolygon(
		from.Add(h),
		to.Add(h),
		to.Sub(h),
		from.Sub(h),
	), nil
}

// gridParticles spawns the particles of one grid description.
func gridParticles(g ParticleGridConfig) []msim.Particle {
	angle := g.XAxisAngle * math.Pi / 180
	sin, cos := math.Sincos(angle)
	primary := msim.Vec2{X: cos, Y: sin}
	secondary := primary.Rotated90()
	center := msim.Vec2{X: g.CenterX, Y: g.CenterY}
	origin := center.
		Sub(primary.Scale(g.DimX / 2)).
		Sub(secondary.Scale(g.DimY / 2))
	velocity := msim.Vec2{X: g.Velocity[0], Y: g.Velocity[1]}
	return msim.GenerateGrid(origin, primary, g.DimX, g.DimY, g.NumX, g.NumY,
		msim.ConstantVelocity(velocity), msim.ClassID(g.ClassID))
}
