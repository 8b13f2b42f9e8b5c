package track

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
)

// MockPoseProvider is a test implementation of PoseProvider. It lets
// tests drive the hand to arbitrary poses.
type MockPoseProvider struct {
	pose snap.HandPose
	err  error
}

// NewMockPoseProvider creates a MockPoseProvider holding an identity pose.
func NewMockPoseProvider() *MockPoseProvider {
	return &MockPoseProvider{pose: snap.HandPose{Grip: geom.PoseIdent()}}
}

// SetPose sets the world-space pose returned by TrackedPose.
func (m *MockPoseProvider) SetPose(pose snap.HandPose) {
	m.pose = pose
}

// MoveTo moves the mock hand's grip to a world position, keeping its
// rotation.
func (m *MockPoseProvider) MoveTo(position mgl32.Vec3) {
	m.pose.Grip.Position = position
}

// SetError sets the error returned by TrackedPose.
func (m *MockPoseProvider) SetError(err error) {
	m.err = err
}

// TrackedPose returns the configured pose expressed relative to the
// reference pose, or the configured error.
func (m *MockPoseProvider) TrackedPose(relativeTo geom.Pose, includeBones bool) (snap.HandPose, error) {
	if m.err != nil {
		return snap.HandPose{}, m.err
	}
	out := m.pose
	out.Grip = geom.RelativeTo(m.pose.Grip, relativeTo)
	if !includeBones {
		out.Bones = nil
	}
	return out, nil
}

// MockFlexProvider is a test implementation of FlexProvider with a
// settable signal.
type MockFlexProvider struct {
	flex float64
}

// NewMockFlexProvider creates a MockFlexProvider at zero flex.
func NewMockFlexProvider() *MockFlexProvider {
	return &MockFlexProvider{}
}

// SetFlex sets the value returned by CurrentFlex.
func (m *MockFlexProvider) SetFlex(flex float64) {
	m.flex = flex
}

// CurrentFlex returns the configured flex value.
func (m *MockFlexProvider) CurrentFlex() float64 {
	return m.flex
}

// FistPose returns a preset right-hand pose with every finger curled, as
// recorded around a cylindrical grip.
func FistPose() snap.HandPose {
	bones := map[int]mgl32.Quat{}
	curl := func(bone int, degrees float32) {
		bones[bone] = mgl32.QuatRotate(mgl32.DegToRad(degrees), mgl32.Vec3{1, 0, 0})
	}
	curl(snap.IndexPIP, 95)
	curl(snap.IndexDIP, 70)
	curl(snap.MiddlePIP, 100)
	curl(snap.MiddleDIP, 75)
	curl(snap.RingPIP, 100)
	curl(snap.RingDIP, 75)
	curl(snap.PinkyPIP, 95)
	curl(snap.PinkyDIP, 70)
	curl(snap.ThumbIP, 40)
	return snap.HandPose{
		Grip:       geom.PoseIdent(),
		Bones:      bones,
		Handedness: snap.HandRight,
	}
}

// PinchPose returns a preset right-hand pose with thumb and index closed
// on a thin rim and the remaining fingers relaxed.
func PinchPose() snap.HandPose {
	bones := map[int]mgl32.Quat{}
	curl := func(bone int, degrees float32) {
		bones[bone] = mgl32.QuatRotate(mgl32.DegToRad(degrees), mgl32.Vec3{1, 0, 0})
	}
	curl(snap.IndexPIP, 55)
	curl(snap.IndexDIP, 40)
	curl(snap.ThumbIP, 35)
	curl(snap.MiddlePIP, 15)
	curl(snap.RingPIP, 10)
	curl(snap.PinkyPIP, 10)
	return snap.HandPose{
		Grip:       geom.PoseIdent(),
		Bones:      bones,
		Handedness: snap.HandRight,
	}
}
