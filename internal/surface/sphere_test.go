package surface

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

func unitSphere(t *testing.T) Surface {
	t.Helper()
	data := Data{Type: TypeSphere, Sphere: &SphereParams{Radius: 1}}
	s, err := data.Instantiate(geom.PoseIdent())
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	return s
}

func TestSphereNearestPoint(t *testing.T) {
	s := unitSphere(t)
	centre := mgl32.Vec3{0, 0, -1}

	var tests = []struct {
		name   string
		target mgl32.Vec3
		want   mgl32.Vec3
	}{
		{"ahead of grip", mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}},
		{"beside the centre", mgl32.Vec3{3, 0, -1}, mgl32.Vec3{1, 0, -1}},
		{"inside the sphere", mgl32.Vec3{0, 0.5, -1}, mgl32.Vec3{0, 1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.NearestPointInSurface(tt.target)
			if !got.ApproxEqualThreshold(tt.want, tolerance) {
				t.Errorf("NearestPointInSurface(%v) = %v, want %v", tt.target, got, tt.want)
			}
			if mgl32.Abs(got.Sub(centre).Len()-1) > tolerance {
				t.Errorf("result %v is not on the sphere", got)
			}
		})
	}
}

func TestSphereNearestPoint_CentreDegeneratesToGrip(t *testing.T) {
	s := unitSphere(t)

	got := s.NearestPointInSurface(mgl32.Vec3{0, 0, -1})
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, tolerance) {
		t.Errorf("centre query = %v, want the grip point", got)
	}
}

func TestSphereMinimalTranslation_RotatesWithSurface(t *testing.T) {
	s := unitSphere(t)
	snap := geom.PoseIdent()

	user := geom.Pose{Position: mgl32.Vec3{3, 0, -1}, Rotation: mgl32.QuatIdent()}
	got := s.MinimalTranslationPoseAtSurface(user, snap)

	if !got.Position.ApproxEqualThreshold(mgl32.Vec3{1, 0, -1}, tolerance) {
		t.Errorf("position = %v, want (1,0,-1)", got.Position)
	}
	// The grip's forward axis must now point along the new surface normal.
	forward := got.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	if !forward.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, tolerance) {
		t.Errorf("forward = %v, want +X", forward)
	}
}

func TestSphereMinimalRotation_FollowsUserRotation(t *testing.T) {
	s := unitSphere(t)
	snap := geom.PoseIdent()

	user := geom.Pose{
		Position: mgl32.Vec3{9, 9, 9}, // position ignored by rotation-first snapping
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
	}
	got := s.MinimalRotationPoseAtSurface(user, snap)

	if !got.Position.ApproxEqualThreshold(mgl32.Vec3{1, 0, -1}, tolerance) {
		t.Errorf("position = %v, want (1,0,-1)", got.Position)
	}
	if geom.RotationDifference(got.Rotation, user.Rotation) < 1-tolerance {
		t.Errorf("rotation = %v, want the user's own rotation %v", got.Rotation, user.Rotation)
	}
}

func TestSphereMinimalRotation_IdentityKeepsGrip(t *testing.T) {
	s := unitSphere(t)
	snap := geom.PoseIdent()

	user := geom.Pose{Position: mgl32.Vec3{0, 0, 2}, Rotation: mgl32.QuatIdent()}
	got := s.MinimalRotationPoseAtSurface(user, snap)

	if !got.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, tolerance) {
		t.Errorf("position = %v, want the grip point", got.Position)
	}
}

func TestSphereInvertedPose_Unchanged(t *testing.T) {
	s := unitSphere(t)
	pose := geom.Pose{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.QuatRotate(1, mgl32.Vec3{1, 0, 0}),
	}
	if got := s.InvertedPose(pose); got != pose {
		t.Errorf("InvertedPose() = %+v, want unchanged pose", got)
	}
}
