package battery

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrMissingGeometry is returned when a mesh is built without usable geometry.
var ErrMissingGeometry = errors.New("missing geometry")

// Geometry is an indexed triangle list with per-vertex normals.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint16
}

// Validate reports whether g can be drawn.
func (g *Geometry) Validate() error {
	if g == nil || len(g.Positions) == 0 || len(g.Indices) == 0 {
		return ErrMissingGeometry
	}
	if len(g.Normals) != len(g.Positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrMissingGeometry, len(g.Normals), len(g.Positions))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMissingGeometry, len(g.Indices))
	}
	for _, i := range g.Indices {
		if int(i) >= len(g.Positions) {
			return fmt.Errorf("%w: index %d out of range", ErrMissingGeometry, i)
		}
	}
	return nil
}

// Battery proportions in model units; the body is one unit tall.
const (
	bodyRadius     = 0.32
	bodyHalfHeight = 0.5
	nubRadius      = 0.11
	nubHeight      = 0.08
)

// NewBatteryGeometry builds a capped cylinder body with a terminal nub on
// top, centered on the origin. segments is the number of sides (minimum 3).
func NewBatteryGeometry(segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{}
	g.addCylinder(bodyRadius, -bodyHalfHeight, bodyHalfHeight, segments)
	g.addCylinder(nubRadius, bodyHalfHeight, bodyHalfHeight+nubHeight, segments)
	return g
}

// addCylinder appends an open tube from y0 to y1 plus both caps.
func (g *Geometry) addCylinder(radius, y0, y1 float64, segments int) {
	base := uint16(len(g.Positions))
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		cos, sin := math.Cos(a), math.Sin(a)
		n := mgl64.Vec3{cos, 0, sin}
		g.Positions = append(g.Positions,
			mgl64.Vec3{radius * cos, y0, radius * sin},
			mgl64.Vec3{radius * cos, y1, radius * sin},
		)
		g.Normals = append(g.Normals, n, n)
	}
	for i := 0; i < segments; i++ {
		b0 := base + uint16(2*i)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		g.Indices = append(g.Indices, b0, t0, b1, t0, t1, b1)
	}
	g.addCap(radius, y0, -1, segments)
	g.addCap(radius, y1, 1, segments)
}

// addCap appends a triangle fan disc at height y facing dir (+1 up, -1 down).
func (g *Geometry) addCap(radius, y, dir float64, segments int) {
	n := mgl64.Vec3{0, dir, 0}
	center := uint16(len(g.Positions))
	g.Positions = append(g.Positions, mgl64.Vec3{0, y, 0})
	g.Normals = append(g.Normals, n)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		g.Positions = append(g.Positions, mgl64.Vec3{radius * math.Cos(a), y, radius * math.Sin(a)})
		g.Normals = append(g.Normals, n)
	}
	for i := 0; i < segments; i++ {
		r0 := center + 1 + uint16(i)
		g.Indices = append(g.Indices, center, r0, r0+1)
	}
}
