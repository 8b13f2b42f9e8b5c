package surface

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

const tolerance = 1e-4

func flatBox(t *testing.T) Surface {
	t.Helper()
	data := Data{
		Type: TypeBox,
		Box: &BoxParams{
			WidthOffset: 0.5,
			Size:        [3]float32{1, 0, 1},
		},
	}
	s, err := data.Instantiate(geom.PoseIdent())
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	return s
}

func TestBoxNearestPoint_GripPointIsOnSurface(t *testing.T) {
	s := flatBox(t)

	// The grip sits on the bottom edge, so querying at the grip itself
	// must come back with zero distance.
	got := s.NearestPointInSurface(mgl32.Vec3{0, 0, 0})
	if got.Len() > tolerance {
		t.Errorf("NearestPointInSurface(grip) = %v, want the grip point", got)
	}
}

func TestBoxNearestPoint_InteriorStaysOnBoundary(t *testing.T) {
	s := flatBox(t)

	// Rectangle spans x in [-0.5, 0.5], z in [0, 1].
	interior := []mgl32.Vec3{
		{0.1, 0, 0.2},
		{-0.3, 0, 0.7},
		{0.45, 0, 0.5},
	}
	for _, p := range interior {
		got := s.NearestPointInSurface(p)
		onBoundary := mgl32.Abs(got.X()) >= 0.5-tolerance ||
			got.Z() <= tolerance || got.Z() >= 1-tolerance
		if !onBoundary {
			t.Errorf("NearestPointInSurface(%v) = %v, not on the rectangle boundary", p, got)
		}
	}
}

func TestBoxNearestPoint_TieBreakPrefersBottom(t *testing.T) {
	s := flatBox(t)

	// The rectangle centre is exactly 0.5 from all four edges; the
	// bottom edge must win by evaluation order.
	got := s.NearestPointInSurface(mgl32.Vec3{0, 0, 0.5})
	want := mgl32.Vec3{0, 0, 0}
	if !got.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("NearestPointInSurface() = %v, want bottom edge point %v", got, want)
	}
}

func TestBoxNearestPoint_OutsideClampsToCorner(t *testing.T) {
	s := flatBox(t)

	got := s.NearestPointInSurface(mgl32.Vec3{5, 0, -5})
	want := mgl32.Vec3{0.5, 0, 0}
	if !got.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("NearestPointInSurface() = %v, want corner %v", got, want)
	}
}

func TestBoxMinimalRotation_PicksMatchingEdge(t *testing.T) {
	s := flatBox(t)
	snap := geom.PoseIdent()
	up := mgl32.Vec3{0, 1, 0}

	var tests = []struct {
		name      string
		userAngle float32
		wantAngle float32
	}{
		{"upright hand keeps bottom edge", 0, 0},
		{"flipped hand takes top edge", 180, 180},
		{"quarter turn takes left edge", 90, 90},
		{"negative quarter takes right edge", -90, -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := geom.Pose{
				Position: mgl32.Vec3{0, 0, 0.5},
				Rotation: mgl32.QuatRotate(mgl32.DegToRad(tt.userAngle), up),
			}
			got := s.MinimalRotationPoseAtSurface(user, snap)
			want := geom.RotateUp(snap.Rotation, tt.wantAngle, up)
			if geom.RotationDifference(got.Rotation, want) < 1-tolerance {
				t.Errorf("rotation = %v, want %v", got.Rotation, want)
			}
		})
	}
}

func TestBoxMinimalRotation_Deterministic(t *testing.T) {
	s := flatBox(t)
	snap := geom.PoseIdent()

	user := geom.Pose{
		Position: mgl32.Vec3{0.2, 0, 0.5},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0}),
	}
	first := s.MinimalRotationPoseAtSurface(user, snap)
	second := s.MinimalRotationPoseAtSurface(user, snap)
	if first != second {
		t.Errorf("identical input produced %+v then %+v", first, second)
	}
}

func TestBoxMinimalTranslation_FollowsNearestEdge(t *testing.T) {
	s := flatBox(t)
	snap := geom.PoseIdent()
	up := mgl32.Vec3{0, 1, 0}

	user := geom.Pose{Position: mgl32.Vec3{2, 0, 0.5}, Rotation: mgl32.QuatIdent()}
	got := s.MinimalTranslationPoseAtSurface(user, snap)

	wantPos := mgl32.Vec3{0.5, 0, 0.5}
	if !got.Position.ApproxEqualThreshold(wantPos, tolerance) {
		t.Errorf("position = %v, want right edge point %v", got.Position, wantPos)
	}
	wantRot := geom.RotateUp(snap.Rotation, -90, up)
	if geom.RotationDifference(got.Rotation, wantRot) < 1-tolerance {
		t.Errorf("rotation = %v, want the right edge's canonical rotation", got.Rotation)
	}
}

func TestBoxInvertedPose_FlipsAroundForward(t *testing.T) {
	s := flatBox(t)

	pose := geom.PoseIdent()
	inverted := s.InvertedPose(pose)

	// Twice inverted must come back to the original orientation.
	twice := s.InvertedPose(inverted)
	if geom.RotationDifference(twice.Rotation, pose.Rotation) < 1-tolerance {
		t.Errorf("double inversion = %v, want original %v", twice.Rotation, pose.Rotation)
	}
	if geom.RotationDifference(inverted.Rotation, pose.Rotation) > 0.9 {
		t.Error("single inversion should change the orientation")
	}
}

func TestBoxDegenerateSizeDoesNotDivideByZero(t *testing.T) {
	data := Data{
		Type: TypeBox,
		Box:  &BoxParams{WidthOffset: 0.5},
	}
	s, err := data.Instantiate(geom.PoseIdent())
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	got := s.NearestPointInSurface(mgl32.Vec3{3, 1, -2})
	if got.Len() > tolerance {
		t.Errorf("zero-size box should collapse to the grip point, got %v", got)
	}
}

func TestInstantiate_Errors(t *testing.T) {
	var tests = []struct {
		name string
		data Data
	}{
		{"box without params", Data{Type: TypeBox}},
		{"cylinder without params", Data{Type: TypeCylinder}},
		{"sphere without params", Data{Type: TypeSphere}},
		{"unknown type", Data{Type: "torus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.data.Instantiate(geom.PoseIdent()); err == nil {
				t.Error("Instantiate() expected an error")
			}
		})
	}
}

func TestDataParamsRoundTrip(t *testing.T) {
	data := Data{
		Type: TypeBox,
		Box: &BoxParams{
			WidthOffset: 0.25,
			Size:        [3]float32{0.3, 0, 0.1},
			EulerAngles: [3]float32{0, 45, 0},
		},
	}

	raw, err := data.MarshalParams()
	if err != nil {
		t.Fatalf("MarshalParams() error = %v", err)
	}
	back, err := UnmarshalParams(raw)
	if err != nil {
		t.Fatalf("UnmarshalParams() error = %v", err)
	}
	if back.Type != TypeBox || back.Box == nil {
		t.Fatalf("round trip lost the variant: %+v", back)
	}
	if back.Box.WidthOffset != data.Box.WidthOffset || back.Box.Size != data.Box.Size {
		t.Errorf("round trip = %+v, want %+v", back.Box, data.Box)
	}
}
