//go:build !nogl
// +build !nogl

// Package opengl plays back simulation frames in an interactive window.
//
// Controls: space pauses and resumes, right arrow advances one frame while
// paused, scrolling zooms around the cursor, R resets the viewport and
// Esc quits.
package opengl

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	msim "github.com/progDes007/m-sim"
)

// circleSegments is the number of triangles used to tessellate one
// particle.
const circleSegments = 24

// vertexStride is the number of floats per vertex: position + RGBA.
const vertexStride = 6

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

// Run opens a window and plays back frames as they arrive on the channel.
// It returns when the window is closed or Esc is pressed; a drained
// channel leaves the last frame on screen. Must run on the main OS thread.
func Run(frames <-chan msim.Frame, walls []msim.Wall, conf *Config) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	const width, height = 800, 800
	w, err := glfw.CreateWindow(width, height, conf.Title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	d, err := newDisplay(conf, walls)
	if err != nil {
		return err
	}

	vp := viewport{{float32(conf.Xmin), float32(conf.Ymin)}, {float32(conf.Xmax), float32(conf.Ymax)}}
	var frame msim.Frame

	// Zoom around the cursor position.
	w.SetScrollCallback(func(w *glfw.Window, xo, yo float64) {
		xc, yc := w.GetCursorPos()
		xs, ys := w.GetSize()
		x, y := float32(xc)/float32(xs), (float32(ys)-float32(yc))/float32(ys)
		dx, dy := vp[1].X-vp[0].X, vp[1].Y-vp[0].Y
		z := 0.05 * float32(yo)
		vp[0].X += z * -(x * dx)
		vp[0].Y += z * -(y * dy)
		vp[1].X += z * (1 - x) * dx
		vp[1].Y += z * (1 - y) * dy
	})

	var quit, pause, step bool
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press {
			pause = !pause
		}
		if key == glfw.KeyRight && (action == glfw.Press || action == glfw.Repeat) && pause {
			step = true
		}
		if key == glfw.KeyR && action == glfw.Press {
			vp = viewport{{float32(conf.Xmin), float32(conf.Ymin)}, {float32(conf.Xmax), float32(conf.Ymax)}}
		}
	})

	for !(quit || w.ShouldClose()) {
		if !pause || step {
			step = false
			select {
			case f, ok := <-frames:
				if ok {
					frame = f
					w.SetTitle(fmt.Sprintf("%s — t=%.2fs E=%.2f T=%.3f",
						conf.Title, frame.Time, frame.Stats.TotalEnergy, frame.Stats.Temperature))
				}
			default:
			}
		}
		d.draw(frame, vp)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// A viewport is a rectangle delimiting the area of simulation space shown
// on screen. The first point is the bottom left corner, the second point
// is the top right corner.
type viewport [2]struct{ X, Y float32 }

// display contains the OpenGL objects required to show one scene.
type display struct {
	conf *Config
	prog uint32
	vp   int32 // viewport uniform location

	vao struct {
		particles uint32
		walls     uint32
	}
	buf struct {
		particles uint32
		walls     uint32
	}
	numWallVerts int32
	scratch      []float32 // reused vertex staging buffer
}

const vertexShader = `#version 330 core

layout(location = 0) in vec2 pos;
layout(location = 1) in vec4 color;

uniform vec2 vp[2];

out vec4 vertexColor;

void main() {
	vec2 p = 2 * (pos - vp[0]) / (vp[1] - vp[0]) - 1;
	gl_Position = vec4(p, 0, 1);
	vertexColor = color;
}
`

const fragmentShader = `#version 330 core

in vec4 vertexColor;
out vec4 fragColor;

void main() {
	fragColor = vertexColor;
}
`

// newDisplay compiles the shaders and sets up one stream buffer for the
// particles and one static buffer for the wall outlines.
func newDisplay(conf *Config, walls []msim.Wall) (*display, error) {
	d := &display{conf: conf}

	var err error
	d.prog, err = makeProg(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	d.vp = gl.GetUniformLocation(d.prog, gl.Str("vp\x00"))

	gl.GenVertexArrays(1, &d.vao.particles)
	gl.BindVertexArray(d.vao.particles)
	gl.GenBuffers(1, &d.buf.particles)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.particles)
	maxFloats := conf.MaxParticles * circleSegments * 3 * vertexStride
	gl.BufferData(gl.ARRAY_BUFFER, 4*maxFloats, nil, gl.STREAM_DRAW)
	enableVertexFormat()

	wallVerts := buildWallVertices(walls, conf.WallColors)
	d.numWallVerts = int32(len(wallVerts) / vertexStride)
	gl.GenVertexArrays(1, &d.vao.walls)
	gl.BindVertexArray(d.vao.walls)
	gl.GenBuffers(1, &d.buf.walls)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.walls)
	if len(wallVerts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 4*len(wallVerts), gl.Ptr(wallVerts), gl.STATIC_DRAW)
	}
	enableVertexFormat()

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return d, nil
}

// enableVertexFormat declares the interleaved pos+color layout for the
// currently bound buffer.
func enableVertexFormat() {
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, 4*vertexStride, gl.PtrOffset(4*2))
}

// buildWallVertices tessellates wall polygons into line-list vertices.
func buildWallVertices(walls []msim.Wall, colors map[msim.ClassID][4]float32) []float32 {
	var verts []float32
	for _, wall := range walls {
		color := colors[wall.Class()]
		poly := wall.Polygon()
		for i := 0; i < poly.NumEdges(); i++ {
			edge := poly.Edge(i)
			verts = appendVertex(verts, edge.Begin, color)
			verts = appendVertex(verts, edge.End, color)
		}
	}
	return verts
}

// appendVertex appends one interleaved vertex.
func appendVertex(verts []float32, pos msim.Vec2, color [4]float32) []float32 {
	return append(verts, float32(pos.X), float32(pos.Y), color[0], color[1], color[2], color[3])
}

// draw renders one frame.
func (d *display) draw(frame msim.Frame, vp viewport) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(d.prog)
	gl.Uniform2fv(d.vp, 2, &vp[0].X)

	if d.numWallVerts > 0 {
		gl.BindVertexArray(d.vao.walls)
		gl.DrawArrays(gl.LINES, 0, d.numWallVerts)
	}

	verts := d.particleVertices(frame.Particles)
	if len(verts) > 0 {
		gl.BindVertexArray(d.vao.particles)
		gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.particles)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(verts), gl.Ptr(verts))
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/vertexStride))
	}
	gl.BindVertexArray(0)
}

// particleVertices tessellates every particle into a triangle fan around
// its center, reusing the scratch buffer between frames.
func (d *display) particleVertices(particles []msim.Particle) []float32 {
	verts := d.scratch[:0]
	n := len(particles)
	if n > d.conf.MaxParticles {
		n = d.conf.MaxParticles
	}
	for i := 0; i < n; i++ {
		p := particles[i]
		skin := d.conf.ParticleSkins[p.Class()]
		for s := 0; s < circleSegments; s++ {
			a1 := 2 * math.Pi * float64(s) / circleSegments
			a2 := 2 * math.Pi * float64(s+1) / circleSegments
			verts = appendVertex(verts, p.Position, skin.Color)
			verts = appendVertex(verts, offsetBy(p.Position, skin.Radius, a1), skin.Color)
			verts = appendVertex(verts, offsetBy(p.Position, skin.Radius, a2), skin.Color)
		}
	}
	d.scratch = verts
	return verts
}

// offsetBy returns pos displaced by r at angle a.
func offsetBy(pos msim.Vec2, r, a float64) msim.Vec2 {
	sin, cos := math.Sincos(a)
	return msim.Vec2{X: pos.X + r*cos, Y: pos.Y + r*sin}
}

// makeProg compiles and links the shader program.
func makeProg(vertexSrc, fragmentSrc string) (uint32, error) {
	compile := func(kind uint32, src string) (uint32, error) {
		shader := gl.CreateShader(kind)
		str, free := gl.Strs(src + "\x00")
		gl.ShaderSource(shader, 1, str, nil)
		free()
		gl.CompileShader(shader)
		var status int32
		gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n+1)
			gl.GetShaderInfoLog(shader, n, &n, &log[0])
			gl.DeleteShader(shader)
			return 0, fmt.Errorf("opengl: shader compilation error: %s", gl.GoStr(&log[0]))
		}
		return shader, nil
	}

	vs, err := compile(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, err
	}
	fs, err := compile(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := make([]uint8, n+1)
		gl.GetProgramInfoLog(prog, n, &n, &log[0])
		return 0, fmt.Errorf("opengl: program link error: %s", gl.GoStr(&log[0]))
	}
	return prog, nil
}
