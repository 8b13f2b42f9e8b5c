package surface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// CylinderParams parametrizes a cylindrical snap region. The cylinder's
// axis runs along the grip's local up axis, centred on the grip height,
// and its centre line sits behind the grip along the local -Z axis so the
// grip lies on the lateral surface. ArcDegrees limits how far around the
// cylinder the hand may slide from the grip direction; zero or anything
// at or above 360 means the full circle.
type CylinderParams struct {
	Radius     float32 `json:"radius"`
	Height     float32 `json:"height"`
	ArcDegrees float32 `json:"arc_degrees"`
}

// CylinderSurface snaps hands to the lateral band of a cylinder, sliding
// along its height and around its arc while twisting the grip to follow.
type CylinderSurface struct {
	params CylinderParams
	grip   geom.Pose
}

func (s *CylinderSurface) axis() mgl32.Vec3 {
	return s.grip.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// radialDir is the unit direction from the axis to the grip point.
func (s *CylinderSurface) radialDir() mgl32.Vec3 {
	return s.grip.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

// axisSegment returns the capped centre line of the cylinder.
func (s *CylinderSurface) axisSegment() (mgl32.Vec3, mgl32.Vec3) {
	base := s.grip.Position.Sub(s.radialDir().Mul(s.params.Radius))
	half := s.axis().Mul(s.params.Height / 2)
	return base.Sub(half), base.Add(half)
}

// halfArc returns the maximum angular deviation from the grip direction
// in degrees.
func (s *CylinderSurface) halfArc() float32 {
	if s.params.ArcDegrees <= 0 || s.params.ArcDegrees >= 360 {
		return 180
	}
	return s.params.ArcDegrees / 2
}

// Type returns TypeCylinder.
func (s *CylinderSurface) Type() Type { return TypeCylinder }

// NearestPointInSurface clamps the target onto the axis extent, then onto
// the arc, and pushes it out to the radius.
func (s *CylinderSurface) NearestPointInSurface(target mgl32.Vec3) mgl32.Vec3 {
	point, _, _ := s.nearestPoint(target)
	return point
}

// nearestPoint returns the surface point closest to the target along with
// the point on the axis it hangs off and the clamped arc angle in degrees.
func (s *CylinderSurface) nearestPoint(target mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, float32) {
	axis := s.axis()
	start, end := s.axisSegment()
	axisPoint := geom.ProjectOnSegment(target, start, end)

	radial := target.Sub(axisPoint)
	radial = radial.Sub(axis.Mul(radial.Dot(axis)))
	if radial.Dot(radial) <= mgl32.Epsilon {
		radial = s.radialDir()
	}

	angle := geom.SignedAngle(s.radialDir(), radial, axis)
	half := s.halfArc()
	angle = mgl32.Clamp(angle, -half, half)

	dir := mgl32.QuatRotate(mgl32.DegToRad(angle), axis).Rotate(s.radialDir())
	return axisPoint.Add(dir.Mul(s.params.Radius)), axisPoint, angle
}

// MinimalRotationPoseAtSurface keeps the user's twist around the cylinder
// axis: the arc angle is taken from the rotation the user already applied
// to the snap pose, clamped to the arc, while the height follows the
// user's position.
func (s *CylinderSurface) MinimalRotationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose {
	axis := s.axis()
	delta := userPose.Rotation.Mul(snapPose.Rotation.Inverse()).Normalize()
	desired := delta.Rotate(s.radialDir())
	desired = desired.Sub(axis.Mul(desired.Dot(axis)))
	if desired.Dot(desired) <= mgl32.Epsilon {
		desired = s.radialDir()
	}

	angle := geom.SignedAngle(s.radialDir(), desired, axis)
	half := s.halfArc()
	angle = mgl32.Clamp(angle, -half, half)

	start, end := s.axisSegment()
	axisPoint := geom.ProjectOnSegment(userPose.Position, start, end)
	return s.poseAt(axisPoint, angle, snapPose)
}

// MinimalTranslationPoseAtSurface snaps to the nearest surface point and
// twists the snap pose by the same arc.
func (s *CylinderSurface) MinimalTranslationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose {
	_, axisPoint, angle := s.nearestPoint(userPose.Position)
	return s.poseAt(axisPoint, angle, snapPose)
}

func (s *CylinderSurface) poseAt(axisPoint mgl32.Vec3, angleDeg float32, snapPose geom.Pose) geom.Pose {
	axis := s.axis()
	twist := mgl32.QuatRotate(mgl32.DegToRad(angleDeg), axis)
	dir := twist.Rotate(s.radialDir())
	return geom.Pose{
		Position: axisPoint.Add(dir.Mul(s.params.Radius)),
		Rotation: twist.Mul(snapPose.Rotation).Normalize(),
	}
}

// InvertedPose flips the grip half a turn around the radial direction so
// the hand approaches the cylinder from the opposite side of its axis.
func (s *CylinderSurface) InvertedPose(pose geom.Pose) geom.Pose {
	return geom.Pose{
		Position: pose.Position,
		Rotation: geom.RotateUp(pose.Rotation, 180, s.radialDir()),
	}
}
