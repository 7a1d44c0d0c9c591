//go:build nogl
// +build nogl

package opengl

import (
	"fmt"
	"os"

	msim "github.com/progDes007/m-sim"
)

// A Skin holds the display properties of one particle class.
type Skin struct {
	Radius float64
	Color  [4]float32
}

// Config holds the parameters of the OpenGL playback driver.
type Config struct {
	Title        string
	MaxParticles int

	// Display properties per particle class and wall class.
	ParticleSkins map[msim.ClassID]Skin
	WallColors    map[msim.ClassID][4]float32

	// Bounds of the default viewport.
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

// Run returns an error explaining that OpenGL support is disabled.
func Run(frames <-chan msim.Frame, walls []msim.Wall, conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support", os.Args[0])
}
