// Package grab implements the per-hand grab state machine: proximity
// candidates, hysteresis-based grab and release transitions, and the
// fixed hand-object offset while an object is carried.
package grab

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Volume is a collision volume used for proximity testing. Grabbables
// expose volumes to be felt; grabbers own volumes that can be switched
// off while holding an object.
type Volume interface {
	// ClosestPointOnBounds returns the point on the volume's bounds
	// closest to p. A point inside the bounds maps to itself.
	ClosestPointOnBounds(p mgl32.Vec3) mgl32.Vec3

	// Contains reports whether p is inside the bounds.
	Contains(p mgl32.Vec3) bool

	// Enabled reports whether the volume takes part in proximity tests.
	Enabled() bool

	// SetEnabled switches the volume on or off.
	SetEnabled(enabled bool)
}

// AABB is an axis-aligned box volume.
type AABB struct {
	centre   mgl32.Vec3
	halfSize mgl32.Vec3
	disabled bool
}

// NewAABB creates an enabled axis-aligned box volume.
func NewAABB(centre, size mgl32.Vec3) *AABB {
	return &AABB{centre: centre, halfSize: size.Mul(0.5)}
}

// Centre returns the box centre.
func (b *AABB) Centre() mgl32.Vec3 {
	return b.centre
}

// MoveTo recentres the box, keeping its size.
func (b *AABB) MoveTo(centre mgl32.Vec3) {
	b.centre = centre
}

// ClosestPointOnBounds clamps p into the box extents.
func (b *AABB) ClosestPointOnBounds(p mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		out[i] = mgl32.Clamp(p[i], b.centre[i]-b.halfSize[i], b.centre[i]+b.halfSize[i])
	}
	return out
}

// Contains reports whether p lies within the box extents.
func (b *AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.centre[i]-b.halfSize[i] || p[i] > b.centre[i]+b.halfSize[i] {
			return false
		}
	}
	return true
}

// Enabled reports whether the volume takes part in proximity tests.
func (b *AABB) Enabled() bool {
	return !b.disabled
}

// SetEnabled switches the volume on or off.
func (b *AABB) SetEnabled(enabled bool) {
	b.disabled = !enabled
}
