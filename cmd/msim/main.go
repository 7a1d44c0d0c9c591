// Command msim runs continuous-collision particle simulations.
//
// Usage
//
// The msim command takes one optional argument:
//  msim [config_file]
// It is the path to a TOML config file describing the scene: particle and
// wall classes, particle grids, walls and run parameters. If no config
// file is specified, a small demo scene runs in an OpenGL window.
//
// With an empty Output the simulation plays back interactively; space
// pauses, right arrow single-steps while paused, scrolling zooms, R resets
// the view. With Output set, frames are recorded to an HDF5 file instead.
// Setting Replay plays back a previous recording.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	msim "github.com/progDes007/m-sim"
	"github.com/progDes007/m-sim/hdf5"
	"github.com/progDes007/m-sim/opengl"
)

const usage = `Usage: msim [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, a demo scene runs in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This arranges that main() runs on the main thread.
	runtime.LockOSThread()

	// The thermal walls use the global PRNG, so it is seeded here.
	rand.Seed(time.Now().UnixNano())
}

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	if conf.Replay != "" {
		err = RunReplay(conf)
	} else if conf.Output == "" {
		err = RunInteractive(conf)
	} else {
		err = RunRecording(conf)
	}
	if err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard error and exits with a non-zero
// status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// RunInteractive simulates the scene and plays it back in an OpenGL
// window as frames become available.
func RunInteractive(conf *Config) error {
	sim, err := conf.Build()
	if err != nil {
		return err
	}
	frames := make(chan msim.Frame, 64)
	go produceFrames(sim, conf, frames)
	return opengl.Run(frames, sim.Walls(), viewerConfig(conf, sim))
}

// RunRecording simulates the scene and records every frame to an HDF5
// file.
func RunRecording(conf *Config) error {
	sim, err := conf.Build()
	if err != nil {
		return err
	}
	frames := make(chan msim.Frame, 64)
	go produceFrames(sim, conf, frames)
	return hdf5.Run(frames, &hdf5.Config{
		Output:   conf.Output,
		Frames:   numSteps(conf) + 1,
		Datasets: hdf5.DefaultDatasets(len(sim.Particles())),
	})
}

// RunReplay plays back a previous recording. The config still supplies
// the walls, classes and colors; the particles come from the file.
func RunReplay(conf *Config) error {
	sim, err := conf.Build()
	if err != nil {
		return err
	}
	loader, err := hdf5.NewLoader(conf.Replay)
	if err != nil {
		return err
	}
	defer loader.Close()

	frames := make(chan msim.Frame, 64)
	done := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		defer close(frames)
		errc <- replayFrames(loader, sim.ParticleClasses(), frames, done)
	}()

	err = opengl.Run(frames, sim.Walls(), viewerConfig(conf, sim))
	close(done)
	if err != nil {
		return err
	}
	return <-errc
}

// A frameSource yields recorded frames one at a time.
type frameSource interface {
	NumFrames() int
	LoadFrame(*msim.Frame) error
}

// replayFrames loads every recorded frame and sends it on frames,
// rebuilding the per-frame statistics from the class table. Closing done
// makes it return early once the consumer stops receiving.
func replayFrames(src frameSource, classes map[msim.ClassID]msim.ParticleClass, frames chan<- msim.Frame, done <-chan struct{}) error {
	for i := 0; i < src.NumFrames(); i++ {
		var f msim.Frame
		if err := src.LoadFrame(&f); err != nil {
			return err
		}
		f.Stats = msim.BuildStatistics(f.Particles, classes)
		select {
		case frames <- f:
		case <-done:
			return nil
		}
	}
	return nil
}

// produceFrames steps the simulation through its whole duration, sending
// one frame per fixed step, the initial state included.
func produceFrames(sim *msim.Simulation, conf *Config, frames chan<- msim.Frame) {
	defer close(frames)

	integrator := msim.NewEventIntegrator()
	integrator.Restitution = conf.Restitution
	gravity := msim.Vec2{X: conf.Gravity[0], Y: conf.Gravity[1]}

	frames <- msim.Snapshot(0, sim)
	steps := numSteps(conf)
	for i := 1; i <= steps; i++ {
		integrator.Step(
			sim.Particles(), sim.ParticleClasses(),
			sim.Walls(), sim.WallClasses(),
			gravity, conf.TimeStep,
		)
		frames <- msim.Snapshot(float64(i)*conf.TimeStep, sim)
	}
}

// numSteps returns the number of fixed steps covering the duration.
func numSteps(conf *Config) int {
	return int(math.Ceil(conf.Duration / conf.TimeStep))
}

// viewerConfig assembles the playback driver parameters: class skins and
// a viewport enclosing the scene.
func viewerConfig(conf *Config, sim *msim.Simulation) *opengl.Config {
	skins := make(map[msim.ClassID]opengl.Skin, len(conf.ParticleClasses))
	for _, pc := range conf.ParticleClasses {
		skins[msim.ClassID(pc.ID)] = opengl.Skin{Radius: pc.Radius, Color: pc.Color}
	}
	wallColors := make(map[msim.ClassID][4]float32, len(conf.WallClasses))
	for _, wc := range conf.WallClasses {
		wallColors[msim.ClassID(wc.ID)] = wc.Color
	}

	xmin, ymin, xmax, ymax := sceneBounds(sim)
	return &opengl.Config{
		Title:         conf.Name,
		MaxParticles:  len(sim.Particles()),
		ParticleSkins: skins,
		WallColors:    wallColors,
		Xmin:          xmin,
		Ymin:          ymin,
		Xmax:          xmax,
		Ymax:          ymax,
	}
}

// sceneBounds returns a square viewport enclosing all walls and
// particles, with a small margin.
func sceneBounds(sim *msim.Simulation) (xmin, ymin, xmax, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	grow := func(p msim.Vec2) {
		xmin = math.Min(xmin, p.X)
		ymin = math.Min(ymin, p.Y)
		xmax = math.Max(xmax, p.X)
		ymax = math.Max(ymax, p.Y)
	}
	for _, w := range sim.Walls() {
		for _, v := range w.Polygon().Vertices {
			grow(v)
		}
	}
	for _, p := range sim.Particles() {
		grow(p.Position)
	}
	if math.IsInf(xmin, 1) {
		return -10, -10, 10, 10
	}

	// keep the aspect ratio square
	const margin = 1
	xmin, ymin, xmax, ymax = xmin-margin, ymin-margin, xmax+margin, ymax+margin
	if dx, dy := xmax-xmin, ymax-ymin; dx > dy {
		ymin -= (dx - dy) / 2
		ymax += (dx - dy) / 2
	} else {
		xmin -= (dy - dx) / 2
		xmax += (dy - dx) / 2
	}
	return xmin, ymin, xmax, ymax
}
