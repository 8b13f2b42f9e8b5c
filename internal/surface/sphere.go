package surface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// SphereParams parametrizes a spherical snap region. The sphere's centre
// sits behind the grip point along the grip's local -Z axis, so the grip
// itself lies on the surface.
type SphereParams struct {
	Radius float32 `json:"radius"`
}

// SphereSurface snaps hands anywhere on a sphere, reorienting the grip to
// stay tangent as it slides around the surface.
type SphereSurface struct {
	params SphereParams
	grip   geom.Pose
}

// gripDir is the unit direction from the centre to the grip point.
func (s *SphereSurface) gripDir() mgl32.Vec3 {
	return s.grip.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

func (s *SphereSurface) centre() mgl32.Vec3 {
	return s.grip.Position.Sub(s.gripDir().Mul(s.params.Radius))
}

// Type returns TypeSphere.
func (s *SphereSurface) Type() Type { return TypeSphere }

// NearestPointInSurface returns the point on the sphere closest to the
// target. A target at the exact centre degenerates to the grip point.
func (s *SphereSurface) NearestPointInSurface(target mgl32.Vec3) mgl32.Vec3 {
	centre := s.centre()
	dir := target.Sub(centre)
	lenSq := dir.Dot(dir)
	if lenSq <= mgl32.Epsilon {
		return s.grip.Position
	}
	return centre.Add(dir.Normalize().Mul(s.params.Radius))
}

// MinimalRotationPoseAtSurface finds the sphere point whose tangent
// orientation matches the user's rotation: the rotation the user already
// applied to the snap pose carries the grip direction to the desired
// surface direction.
func (s *SphereSurface) MinimalRotationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose {
	delta := userPose.Rotation.Mul(snapPose.Rotation.Inverse()).Normalize()
	dir := delta.Rotate(s.gripDir())
	return s.poseAt(dir, snapPose)
}

// MinimalTranslationPoseAtSurface snaps to the sphere point nearest the
// user's hand and rotates the snap pose along with the surface direction.
func (s *SphereSurface) MinimalTranslationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose {
	centre := s.centre()
	dir := userPose.Position.Sub(centre)
	lenSq := dir.Dot(dir)
	if lenSq <= mgl32.Epsilon {
		dir = s.gripDir()
	} else {
		dir = dir.Normalize()
	}
	return s.poseAt(dir, snapPose)
}

// poseAt places the snap pose at the surface point in the given direction
// from the centre, rotated by the arc from the grip direction.
func (s *SphereSurface) poseAt(dir mgl32.Vec3, snapPose geom.Pose) geom.Pose {
	grip := s.gripDir()
	arc := mgl32.QuatBetweenVectors(grip, dir)
	return geom.Pose{
		Position: s.centre().Add(dir.Mul(s.params.Radius)),
		Rotation: arc.Mul(snapPose.Rotation).Normalize(),
	}
}

// InvertedPose returns the pose unchanged: every direction on a sphere is
// already reachable, so there is no distinct mirrored grip.
func (s *SphereSurface) InvertedPose(pose geom.Pose) geom.Pose {
	return pose
}
