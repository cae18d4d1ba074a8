package battery

import "github.com/go-gl/mathgl/mgl64"

// Transform is a local position/rotation/scale triple. Rotation is in
// radians and applied in X, then Y, then Z order.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// IdentityTransform returns a transform with unit scale and no offset.
func IdentityTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Matrix computes the local matrix of t.
//
// Composition order:
//
//	Scale -> Rotate(X, Y, Z) -> Translate(Position)
func (t Transform) Matrix() mgl64.Mat4 {
	rot := mgl64.AnglesToQuat(t.Rotation[0], t.Rotation[1], t.Rotation[2], mgl64.XYZ).Mat4()
	scale := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	trans := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	return trans.Mul4(rot).Mul4(scale)
}

// updateWorldTransform recomputes a node's world matrix. parentRecomputed
// forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.world = parent.Mul4(n.Transform.Matrix())
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.world, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetPositionX sets only the local X position.
func (n *Node) SetPositionX(x float64) {
	n.Position[0] = x
	n.transformDirty = true
}

// SetPositionY sets only the local Y position.
func (n *Node) SetPositionY(y float64) {
	n.Position[1] = y
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians) and marks it dirty.
func (n *Node) SetRotation(x, y, z float64) {
	n.Rotation = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's scale and marks it dirty. Negative components
// are clamped to zero.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.Scale = mgl64.Vec3{max(sx, 0), max(sy, 0), max(sz, 0)}
	n.transformDirty = true
}

// SetUniformScale sets all three scale components to s.
func (n *Node) SetUniformScale(s float64) {
	n.SetScale(s, s, s)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// World returns the world matrix computed during the last traversal.
func (n *Node) World() mgl64.Mat4 {
	return n.world
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.world)
}

// WorldToLocal converts a world-space point to this node's local space.
// Returns p unchanged if the world matrix is singular (e.g. zero scale).
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	if det := n.world.Det(); det > -1e-12 && det < 1e-12 {
		return p
	}
	return mgl64.TransformCoordinate(p, n.world.Inv())
}
