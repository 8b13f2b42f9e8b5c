package grab

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
)

// Grabbable is an object that can be picked up. It is owned by the scene,
// not by any grabber, and outlives every grab session. Its collision
// volumes feed proximity tests; an optional snappable describes where a
// hand should grip it.
type Grabbable struct {
	ID   string
	Name string

	pose      geom.Pose
	volumes   []Volume
	snappable *snap.Snappable

	grabbedBy *Grabber

	// Velocity handed to the object when it was last released, usable as
	// a post-release impulse.
	ReleaseLinearVelocity  mgl32.Vec3
	ReleaseAngularVelocity mgl32.Vec3
}

// NewGrabbable creates a grabbable at the identity pose.
func NewGrabbable(id, name string, volumes ...Volume) *Grabbable {
	return &Grabbable{
		ID:      id,
		Name:    name,
		pose:    geom.PoseIdent(),
		volumes: volumes,
	}
}

// Pose returns the object's current world pose.
func (g *Grabbable) Pose() geom.Pose {
	return g.pose
}

// SetPose moves the object, e.g. when the scene repositions it.
func (g *Grabbable) SetPose(pose geom.Pose) {
	g.pose = pose
}

// Volumes returns the object's collision volumes.
func (g *Grabbable) Volumes() []Volume {
	return g.volumes
}

// SetSnappable attaches the snap registry describing this object's grips.
func (g *Grabbable) SetSnappable(s *snap.Snappable) {
	g.snappable = s
}

// Snappable returns the attached snap registry, or nil.
func (g *Grabbable) Snappable() *snap.Snappable {
	return g.snappable
}

// GrabbedBy returns the grabber currently holding the object, or nil.
func (g *Grabbable) GrabbedBy() *Grabber {
	return g.grabbedBy
}

// IsGrabbed reports whether any grabber holds the object.
func (g *Grabbable) IsGrabbed() bool {
	return g.grabbedBy != nil
}

// ClosestPoint returns the point on the object's enabled volumes nearest
// to p, and whether any enabled volume exists.
func (g *Grabbable) ClosestPoint(p mgl32.Vec3) (mgl32.Vec3, bool) {
	found := false
	var best mgl32.Vec3
	var bestDist float32
	for _, v := range g.volumes {
		if !v.Enabled() {
			continue
		}
		candidate := v.ClosestPointOnBounds(p)
		d := candidate.Sub(p).Dot(candidate.Sub(p))
		if !found || d < bestDist {
			best, bestDist, found = candidate, d, true
		}
	}
	return best, found
}

// GrabBegin claims the object for a grabber.
func (g *Grabbable) GrabBegin(by *Grabber) {
	g.grabbedBy = by
}

// GrabMove repositions the object while it is carried.
func (g *Grabbable) GrabMove(pose geom.Pose) {
	g.pose = pose
}

// GrabEnd releases the object, handing it its post-release velocity.
func (g *Grabbable) GrabEnd(linear, angular mgl32.Vec3) {
	g.grabbedBy = nil
	g.ReleaseLinearVelocity = linear
	g.ReleaseAngularVelocity = angular
}
