package msim

import "fmt"

// A WallClass describes a thermal boundary. Temperature is the wall's
// target equilibrium kinetic energy expressed as a temperature;
// HeatConductivity in roughly [0, 1] controls how much of the exchangeable
// energy is actually traded per collision. A conductivity of zero makes
// the wall a perfect elastic mirror.
type WallClass struct {
	name             string
	temperature      float64
	heatConductivity float64
}

// NewWallClass builds a wall class.
func NewWallClass(name string, temperature, heatConductivity float64) WallClass {
	return WallClass{
		name:             name,
		temperature:      temperature,
		heatConductivity: heatConductivity,
	}
}

// Name returns the class name.
func (c WallClass) Name() string { return c.name }

// Temperature returns the wall's nominal temperature.
func (c WallClass) Temperature() float64 { return c.temperature }

// HeatConductivity returns the fraction of exchangeable energy traded
// per collision.
func (c WallClass) HeatConductivity() float64 { return c.heatConductivity }

// A Wall is a static polygonal obstacle. It is immutable for the duration
// of a scheduler call.
type Wall struct {
	polygon Polygon
	class   ClassID
}

// NewWall builds a wall from its polygon and class.
func NewWall(polygon Polygon, class ClassID) Wall {
	return Wall{polygon: polygon, class: class}
}

// Polygon returns the wall geometry.
func (w Wall) Polygon() Polygon { return w.polygon }

// Class returns the id of the wall's class.
func (w Wall) Class() ClassID { return w.class }

// MakeBox returns four rectangular walls of the given thickness forming a
// closed box. The walls lie inside the outer rectangle, so the enclosed
// free area is the outer rectangle shrunk by the thickness on every side.
func MakeBox(x1, y1, x2, y2, thickness float64, class ClassID) []Wall {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return []Wall{
		NewWall(NewRectangle(x1, y1, x2, y1+thickness), class), // bottom
		NewWall(NewRectangle(x1, y2-thickness, x2, y2), class), // top
		NewWall(NewRectangle(x1, y1, x1+thickness, y2), class), // left
		NewWall(NewRectangle(x2-thickness, y1, x2, y2), class), // right
	}
}

// mustWallClass fetches a wall class from the lookup table, panicking on
// an unknown id.
func mustWallClass(classes map[ClassID]WallClass, id ClassID) WallClass {
	c, ok := classes[id]
	if !ok {
		panic(fmt.Sprintf("msim: unknown wall class %d", id))
	}
	return c
}
