// Package geom provides pose and rotation helpers for hand-pose snapping.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose represents a position and orientation in space.
// Poses are value types: they are copied, never aliased.
type Pose struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Quat `json:"rotation"`
}

// PoseIdent returns the identity pose (origin, no rotation).
func PoseIdent() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// WorldPose composes a local pose with its owner's world pose, yielding
// the local pose expressed in world space.
func WorldPose(local, owner Pose) Pose {
	return Pose{
		Position: owner.Position.Add(owner.Rotation.Rotate(local.Position)),
		Rotation: owner.Rotation.Mul(local.Rotation).Normalize(),
	}
}

// RelativeTo expresses a world pose in the owner's local frame.
// It is the inverse of WorldPose: WorldPose(RelativeTo(w, o), o) == w.
func RelativeTo(world, owner Pose) Pose {
	inv := owner.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(world.Position.Sub(owner.Position)),
		Rotation: inv.Mul(world.Rotation).Normalize(),
	}
}

// ProjectOnSegment projects a point onto the line through the segment and
// clamps the result to the segment extent. A zero-length segment yields
// the single endpoint.
func ProjectOnSegment(point, segStart, segEnd mgl32.Vec3) mgl32.Vec3 {
	seg := segEnd.Sub(segStart)
	lenSq := seg.Dot(seg)
	if lenSq <= mgl32.Epsilon {
		return segStart
	}
	t := point.Sub(segStart).Dot(seg) / lenSq
	t = mgl32.Clamp(t, 0, 1)
	return segStart.Add(seg.Mul(t))
}

// RotationDifference measures how close two rotations are as the absolute
// dot product of their quaternion components, in [0, 1]. Higher means
// closer. Symmetric, and maximal when both rotations are equal; useful
// for ranking only, not as a metric distance.
func RotationDifference(a, b mgl32.Quat) float32 {
	return mgl32.Abs(a.Dot(b))
}

// RotateUp rotates base by angleDegrees around the given world axis.
func RotateUp(base mgl32.Quat, angleDegrees float32, axis mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(angleDegrees), axis).Mul(base).Normalize()
}

// SignedAngle returns the angle in degrees from one direction to another
// around the given axis, in (-180, 180]. Both directions are assumed to
// lie roughly in the plane perpendicular to the axis.
func SignedAngle(from, to, axis mgl32.Vec3) float32 {
	fromLen := from.Len()
	toLen := to.Len()
	if fromLen <= mgl32.Epsilon || toLen <= mgl32.Epsilon {
		return 0
	}
	f := from.Mul(1 / fromLen)
	t := to.Mul(1 / toLen)
	dot := mgl32.Clamp(f.Dot(t), -1, 1)
	angle := mgl32.RadToDeg(float32(math.Acos(float64(dot))))
	if f.Cross(t).Dot(axis) < 0 {
		angle = -angle
	}
	return angle
}

// WrapAngle wraps an angle in degrees into (-180, 180].
func WrapAngle(deg float32) float32 {
	wrapped := float32(math.Mod(float64(deg), 360))
	if wrapped > 180 {
		wrapped -= 360
	} else if wrapped <= -180 {
		wrapped += 360
	}
	return wrapped
}

// AngleAxis decomposes a rotation into an angle in radians and a unit
// axis, picking the representation with the shortest angle (at most pi).
// The identity rotation yields a zero angle and the Y axis.
func AngleAxis(q mgl32.Quat) (float32, mgl32.Vec3) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	w := mgl32.Clamp(q.W, -1, 1)
	angle := 2 * float32(math.Acos(float64(w)))
	s := float32(math.Sqrt(float64(1 - w*w)))
	if s <= mgl32.Epsilon {
		return 0, mgl32.Vec3{0, 1, 0}
	}
	return angle, q.V.Mul(1 / s)
}
