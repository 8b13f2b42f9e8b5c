package surface

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

func testCylinder(t *testing.T, arcDegrees float32) Surface {
	t.Helper()
	data := Data{
		Type: TypeCylinder,
		Cylinder: &CylinderParams{
			Radius:     1,
			Height:     2,
			ArcDegrees: arcDegrees,
		},
	}
	s, err := data.Instantiate(geom.PoseIdent())
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	return s
}

func TestCylinderNearestPoint_FollowsHeightAndAngle(t *testing.T) {
	s := testCylinder(t, 0)

	// Axis runs along Y through (0,0,-1); the grip sits at the origin.
	got := s.NearestPointInSurface(mgl32.Vec3{0, 0.5, 5})
	want := mgl32.Vec3{0, 0.5, 0}
	if !got.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("NearestPointInSurface() = %v, want %v", got, want)
	}
}

func TestCylinderNearestPoint_ClampsHeight(t *testing.T) {
	s := testCylinder(t, 0)

	got := s.NearestPointInSurface(mgl32.Vec3{0, 10, 0})
	want := mgl32.Vec3{0, 1, 0}
	if !got.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("NearestPointInSurface() = %v, want top rim point %v", got, want)
	}
}

func TestCylinderNearestPoint_ClampsArc(t *testing.T) {
	s := testCylinder(t, 90)
	axisPoint := mgl32.Vec3{0, 0, -1}

	// A target right beside the axis is 90 degrees around from the grip
	// direction; a 90 degree arc only allows 45 either way.
	got := s.NearestPointInSurface(mgl32.Vec3{5, 0, -1})
	radial := got.Sub(axisPoint)
	angle := geom.SignedAngle(mgl32.Vec3{0, 0, 1}, radial, mgl32.Vec3{0, 1, 0})
	if mgl32.Abs(angle-45) > 1e-2 {
		t.Errorf("arc angle = %f, want clamped to 45", angle)
	}
	if mgl32.Abs(radial.Len()-1) > tolerance {
		t.Errorf("result %v is not at the cylinder radius", got)
	}
}

func TestCylinderNearestPoint_AxisDegeneratesToGripDirection(t *testing.T) {
	s := testCylinder(t, 0)

	got := s.NearestPointInSurface(mgl32.Vec3{0, 0, -1})
	want := mgl32.Vec3{0, 0, 0}
	if !got.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("axis query = %v, want the grip point %v", got, want)
	}
}

func TestCylinderMinimalRotation_KeepsUserTwist(t *testing.T) {
	s := testCylinder(t, 0)
	snap := geom.PoseIdent()
	up := mgl32.Vec3{0, 1, 0}

	user := geom.Pose{
		Position: mgl32.Vec3{0, 0.5, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(30), up),
	}
	got := s.MinimalRotationPoseAtSurface(user, snap)

	if geom.RotationDifference(got.Rotation, user.Rotation) < 1-tolerance {
		t.Errorf("rotation = %v, want the user's twist %v", got.Rotation, user.Rotation)
	}
	if mgl32.Abs(got.Position.Y()-0.5) > tolerance {
		t.Errorf("position = %v, want the user's height 0.5", got.Position)
	}
}

func TestCylinderMinimalTranslation_TwistsWithArc(t *testing.T) {
	s := testCylinder(t, 0)
	snap := geom.PoseIdent()

	// Directly opposite the grip, a quarter of the way up.
	user := geom.Pose{Position: mgl32.Vec3{5, 0.5, -1}, Rotation: mgl32.QuatIdent()}
	got := s.MinimalTranslationPoseAtSurface(user, snap)

	want := mgl32.Vec3{1, 0.5, -1}
	if !got.Position.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("position = %v, want %v", got.Position, want)
	}
	forward := got.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	if !forward.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, tolerance) {
		t.Errorf("forward = %v, want the new radial direction +X", forward)
	}
}

func TestCylinderInvertedPose_DoubleInversionRestores(t *testing.T) {
	s := testCylinder(t, 0)
	pose := geom.Pose{
		Position: mgl32.Vec3{0, 0.2, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(20), mgl32.Vec3{0, 1, 0}),
	}

	inverted := s.InvertedPose(pose)
	if geom.RotationDifference(inverted.Rotation, pose.Rotation) > 0.9 {
		t.Error("inversion should change the orientation")
	}
	twice := s.InvertedPose(inverted)
	if geom.RotationDifference(twice.Rotation, pose.Rotation) < 1-tolerance {
		t.Errorf("double inversion = %v, want original %v", twice.Rotation, pose.Rotation)
	}
}

func TestCylinderZeroHeightDoesNotDivideByZero(t *testing.T) {
	data := Data{
		Type:     TypeCylinder,
		Cylinder: &CylinderParams{Radius: 1},
	}
	s, err := data.Instantiate(geom.PoseIdent())
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	got := s.NearestPointInSurface(mgl32.Vec3{0, 5, 3})
	want := mgl32.Vec3{0, 0, 0}
	if !got.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("NearestPointInSurface() = %v, want %v", got, want)
	}
}
