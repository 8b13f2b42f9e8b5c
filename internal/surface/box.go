package surface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// BoxParams parametrizes a rectangular snap region. The rectangle lies in
// the grip's local XZ plane: its bottom edge runs through the grip point
// along the local right axis, and the region extends forward by the depth.
// WidthOffset is the fraction of the width sitting left of the grip point,
// so 0.5 centers the grip on the bottom edge.
type BoxParams struct {
	WidthOffset float32    `json:"width_offset"`
	Size        [3]float32 `json:"size"`
	EulerAngles [3]float32 `json:"euler_angles"`
}

// BoxSurface snaps hands to the perimeter of a rectangle. Grips can run
// along any of its four edges, each with a canonical orientation: the hand
// is upright on the bottom edge, flipped 180 degrees on the top edge, and
// turned 90 or -90 degrees on the left and right edges.
type BoxSurface struct {
	params BoxParams
	grip   geom.Pose
}

// boxEdge is one candidate edge with its canonical rotation angle around
// the surface up axis.
type boxEdge struct {
	start, end mgl32.Vec3
	angle      float32
}

func (s *BoxSurface) rotation() mgl32.Quat {
	e := s.params.EulerAngles
	offset := mgl32.AnglesToQuat(
		mgl32.DegToRad(e[0]), mgl32.DegToRad(e[1]), mgl32.DegToRad(e[2]), mgl32.XYZ)
	return s.grip.Rotation.Mul(offset).Normalize()
}

// edges returns the four candidate edges in the fixed evaluation order
// bottom, top, left, right. This order is a behavioral contract: on exact
// ties the first minimal (or maximal) edge wins.
func (s *BoxSurface) edges() [4]boxEdge {
	rot := s.rotation()
	right := rot.Rotate(mgl32.Vec3{1, 0, 0})
	forward := rot.Rotate(mgl32.Vec3{0, 0, 1})

	width := s.params.Size[0]
	depth := s.params.Size[2]

	bottomLeft := s.grip.Position.Sub(right.Mul(width * s.params.WidthOffset))
	bottomRight := bottomLeft.Add(right.Mul(width))
	topLeft := bottomLeft.Add(forward.Mul(depth))
	topRight := bottomRight.Add(forward.Mul(depth))

	return [4]boxEdge{
		{bottomLeft, bottomRight, 0},
		{topLeft, topRight, 180},
		{bottomLeft, topLeft, 90},
		{bottomRight, topRight, -90},
	}
}

func (s *BoxSurface) up() mgl32.Vec3 {
	return s.rotation().Rotate(mgl32.Vec3{0, 1, 0})
}

// Type returns TypeBox.
func (s *BoxSurface) Type() Type { return TypeBox }

// NearestPointInSurface projects the target onto each of the four edges
// and returns the globally closest projection.
func (s *BoxSurface) NearestPointInSurface(target mgl32.Vec3) mgl32.Vec3 {
	point, _ := s.nearestEdgePoint(target)
	return point
}

func (s *BoxSurface) nearestEdgePoint(target mgl32.Vec3) (mgl32.Vec3, boxEdge) {
	edges := s.edges()
	best := geom.ProjectOnSegment(target, edges[0].start, edges[0].end)
	bestEdge := edges[0]
	bestDist := target.Sub(best).Dot(target.Sub(best))
	for _, edge := range edges[1:] {
		p := geom.ProjectOnSegment(target, edge.start, edge.end)
		d := target.Sub(p).Dot(target.Sub(p))
		if d < bestDist {
			best, bestEdge, bestDist = p, edge, d
		}
	}
	return best, bestEdge
}

// MinimalRotationPoseAtSurface picks the edge whose canonical rotation of
// the snap pose best matches the user's hand orientation, then slides the
// hand along that edge to the projection of the user's position.
func (s *BoxSurface) MinimalRotationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose {
	up := s.up()
	edges := s.edges()

	bestEdge := edges[0]
	bestRot := geom.RotateUp(snapPose.Rotation, edges[0].angle, up)
	bestScore := geom.RotationDifference(bestRot, userPose.Rotation)
	for _, edge := range edges[1:] {
		rot := geom.RotateUp(snapPose.Rotation, edge.angle, up)
		score := geom.RotationDifference(rot, userPose.Rotation)
		if score > bestScore {
			bestEdge, bestRot, bestScore = edge, rot, score
		}
	}

	return geom.Pose{
		Position: geom.ProjectOnSegment(userPose.Position, bestEdge.start, bestEdge.end),
		Rotation: bestRot,
	}
}

// MinimalTranslationPoseAtSurface snaps to the edge point nearest the
// user's hand position and applies that edge's canonical rotation to the
// snap pose.
func (s *BoxSurface) MinimalTranslationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose {
	point, edge := s.nearestEdgePoint(userPose.Position)
	return geom.Pose{
		Position: point,
		Rotation: geom.RotateUp(snapPose.Rotation, edge.angle, s.up()),
	}
}

// InvertedPose mirrors a pose to approach the rectangle from its other
// face: a half turn around the surface forward axis.
func (s *BoxSurface) InvertedPose(pose geom.Pose) geom.Pose {
	forward := s.rotation().Rotate(mgl32.Vec3{0, 0, 1})
	return geom.Pose{
		Position: pose.Position,
		Rotation: geom.RotateUp(pose.Rotation, 180, forward),
	}
}
