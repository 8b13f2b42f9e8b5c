package grab

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// VelocityTracker derives linear and angular velocity from the grabber's
// pose deltas over tick time. When no delta is available yet (first tick,
// or a zero tick duration) both velocities are zero vectors.
type VelocityTracker struct {
	prev    geom.Pose
	current geom.Pose
	dt      float64
	primed  bool
}

// AddSample records the grabber's pose for this tick.
func (t *VelocityTracker) AddSample(pose geom.Pose, dt float64) {
	if !t.primed {
		t.prev = pose
		t.current = pose
		t.primed = true
	} else {
		t.prev = t.current
		t.current = pose
	}
	t.dt = dt
}

// LinearVelocityAt returns the linear velocity of a point carried at the
// given local offset from the tracked pose.
func (t *VelocityTracker) LinearVelocityAt(offset geom.Pose) mgl32.Vec3 {
	if !t.primed || t.dt <= 0 {
		return mgl32.Vec3{}
	}
	prev := geom.WorldPose(offset, t.prev).Position
	cur := geom.WorldPose(offset, t.current).Position
	return cur.Sub(prev).Mul(float32(1 / t.dt))
}

// AngularVelocity returns the rotational velocity in radians per second
// as an axis-scaled vector.
func (t *VelocityTracker) AngularVelocity() mgl32.Vec3 {
	if !t.primed || t.dt <= 0 {
		return mgl32.Vec3{}
	}
	delta := t.current.Rotation.Mul(t.prev.Rotation.Inverse())
	angle, axis := geom.AngleAxis(delta)
	return axis.Mul(angle * float32(1/t.dt))
}

// Reset forgets all samples.
func (t *VelocityTracker) Reset() {
	*t = VelocityTracker{}
}
