package surface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// PointSurface is the trivial surface: the only valid pose is the grip
// point itself.
type PointSurface struct {
	grip geom.Pose
}

// Type returns TypePoint.
func (s *PointSurface) Type() Type { return TypePoint }

// NearestPointInSurface always returns the grip position.
func (s *PointSurface) NearestPointInSurface(mgl32.Vec3) mgl32.Vec3 {
	return s.grip.Position
}

// MinimalRotationPoseAtSurface returns the snap pose unchanged; a point
// admits a single orientation.
func (s *PointSurface) MinimalRotationPoseAtSurface(_, snapPose geom.Pose) geom.Pose {
	return snapPose
}

// MinimalTranslationPoseAtSurface returns the snap pose unchanged.
func (s *PointSurface) MinimalTranslationPoseAtSurface(_, snapPose geom.Pose) geom.Pose {
	return snapPose
}

// InvertedPose returns the pose unchanged; a point has no symmetry.
func (s *PointSurface) InvertedPose(pose geom.Pose) geom.Pose {
	return pose
}
