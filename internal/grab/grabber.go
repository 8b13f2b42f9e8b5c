package grab

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
	"github.com/cyhunter/handposing/internal/track"
)

// State is the grabber's current phase.
type State string

const (
	// StateIdle means no grab intent: zero flex or nothing in reach.
	StateIdle State = "idle"
	// StateNearGrab means a candidate is in reach and flex is rising but
	// below the grab threshold.
	StateNearGrab State = "near_grab"
	// StateGrabbing means one object is attached to the hand.
	StateGrabbing State = "grabbing"
)

// Grabber is a per-hand grab controller. It is single-threaded and
// tick-driven: feed it the hand pose and flex signal once per tick and it
// handles candidate tracking, grab/release hysteresis, and carrying the
// held object at a fixed offset.
type Grabber struct {
	config track.Config

	pose     geom.Pose
	flex     float64
	prevFlex float64
	ticked   bool

	volumes    []Volume
	candidates map[*Grabbable]int

	grabbed       *Grabbable
	grabbedOffset geom.Pose

	velocity VelocityTracker

	// VelocityFunc, when set, overrides the tracked release velocity.
	VelocityFunc func() (linear, angular mgl32.Vec3)

	// OnGrabStarted fires once when an object is grabbed.
	OnGrabStarted func(obj *Grabbable)
	// OnGrabEnded fires once when the held object is released.
	OnGrabEnded func(obj *Grabbable)
	// OnGrabAttempt fires when the near-grab target or intent changes:
	// a nil object with zero strength means the hand went idle.
	OnGrabAttempt func(obj *Grabbable, strength float64)

	lastAttempt *Grabbable
	wasNear     bool
}

// NewGrabber creates a grabber with the given thresholds and proximity
// volumes.
func NewGrabber(config track.Config, volumes ...Volume) *Grabber {
	return &Grabber{
		config:     config,
		pose:       geom.PoseIdent(),
		volumes:    volumes,
		candidates: make(map[*Grabbable]int),
	}
}

// Pose returns the grabber's pose from the latest tick.
func (g *Grabber) Pose() geom.Pose {
	return g.pose
}

// Grabbed returns the held object, or nil.
func (g *Grabber) Grabbed() *Grabbable {
	return g.grabbed
}

// State returns the grabber's current phase.
func (g *Grabber) State() State {
	switch {
	case g.grabbed != nil:
		return StateGrabbing
	case g.flex > 0 && g.closestCandidate() != nil:
		return StateNearGrab
	default:
		return StateIdle
	}
}

// VolumeEnter registers a proximity overlap between one of the grabber's
// volumes and the object. The object stays a candidate until every
// overlap ends.
func (g *Grabber) VolumeEnter(obj *Grabbable) {
	if obj == nil || g.grabbed != nil {
		return
	}
	g.candidates[obj]++
}

// VolumeExit drops one proximity overlap with the object, removing it as
// a candidate when no overlaps remain. Unknown objects are a no-op.
func (g *Grabber) VolumeExit(obj *Grabbable) {
	if obj == nil {
		return
	}
	if count, ok := g.candidates[obj]; ok {
		if count <= 1 {
			delete(g.candidates, obj)
		} else {
			g.candidates[obj] = count - 1
		}
	}
}

// Update advances the grabber one tick: it records the hand pose, carries
// any held object at its grab offset, and evaluates the grab/release
// transitions from the previous and current flex values.
func (g *Grabber) Update(pose geom.Pose, flex float64, dt float64) {
	g.pose = pose
	g.velocity.AddSample(pose, dt)

	prev := g.flex
	if !g.ticked {
		prev = flex
		g.ticked = true
	}
	g.prevFlex = prev
	g.flex = flex

	if g.grabbed != nil {
		g.grabbed.GrabMove(geom.WorldPose(g.grabbedOffset, pose))
	}

	switch {
	case g.grabbed == nil && g.prevFlex < g.config.GrabThreshold && flex >= g.config.GrabThreshold:
		g.grabBegin()
	case g.grabbed != nil && g.prevFlex > g.config.ReleaseThreshold && flex <= g.config.ReleaseThreshold:
		g.grabEnd()
	}

	if g.grabbed == nil {
		g.emitAttempt()
	}
}

// grabBegin attaches the closest candidate. With no candidate in reach
// the flex crossing alone does not force a grab.
func (g *Grabber) grabBegin() {
	target := g.closestCandidate()
	if target == nil {
		return
	}
	if holder := target.GrabbedBy(); holder != nil && holder != g {
		holder.ForceRelease(target)
	}

	g.grabbed = target
	g.grabbedOffset = geom.RelativeTo(target.Pose(), g.pose)
	target.GrabBegin(g)

	for _, v := range g.volumes {
		v.SetEnabled(false)
	}
	g.candidates = make(map[*Grabbable]int)
	g.lastAttempt = nil
	g.wasNear = false

	if g.OnGrabStarted != nil {
		g.OnGrabStarted(target)
	}
}

func (g *Grabber) grabEnd() {
	obj := g.grabbed
	linear, angular := g.releaseVelocity()

	g.grabbed = nil
	if obj.GrabbedBy() == g {
		obj.GrabEnd(linear, angular)
	}
	for _, v := range g.volumes {
		v.SetEnabled(true)
	}

	if g.OnGrabEnded != nil {
		g.OnGrabEnded(obj)
	}
}

func (g *Grabber) releaseVelocity() (mgl32.Vec3, mgl32.Vec3) {
	if g.VelocityFunc != nil {
		return g.VelocityFunc()
	}
	return g.velocity.LinearVelocityAt(g.grabbedOffset), g.velocity.AngularVelocity()
}

// emitAttempt reports near-grab intent. It fires when the hand enters or
// leaves the near-grab phase, or when the nearest candidate changes. The
// strength is flex divided by the grab threshold, deliberately unclamped.
func (g *Grabber) emitAttempt() {
	target := g.closestCandidate()
	near := g.flex > 0 && target != nil
	if !near {
		target = nil
	}
	changed := near != g.wasNear || target != g.lastAttempt
	g.wasNear = near
	g.lastAttempt = target
	if !changed || g.OnGrabAttempt == nil {
		return
	}
	if !near {
		g.OnGrabAttempt(nil, 0)
		return
	}
	g.OnGrabAttempt(target, g.flex/g.config.GrabThreshold)
}

// closestCandidate returns the candidate whose collision volumes come
// nearest to the grip point, or nil when nothing is in reach.
func (g *Grabber) closestCandidate() *Grabbable {
	var best *Grabbable
	var bestDist float32
	for obj := range g.candidates {
		point, ok := obj.ClosestPoint(g.pose.Position)
		if !ok {
			continue
		}
		d := point.Sub(g.pose.Position).Dot(point.Sub(g.pose.Position))
		if best == nil || d < bestDist || (d == bestDist && obj.ID < best.ID) {
			best, bestDist = obj, d
		}
	}
	return best
}

// FindClosestGrabbable returns the nearest proximity candidate, or nil.
func (g *Grabber) FindClosestGrabbable() *Grabbable {
	return g.closestCandidate()
}

// FindClosestSnappable returns the nearest candidate's snap registry, or
// nil when no candidate has one.
func (g *Grabber) FindClosestSnappable() *snap.Snappable {
	if obj := g.closestCandidate(); obj != nil {
		return obj.Snappable()
	}
	return nil
}

// Volumes returns the grabber's own proximity volumes.
func (g *Grabber) Volumes() []Volume {
	return g.volumes
}

// ForceRelease drops the object if this grabber holds it; otherwise it is
// a no-op. Safe to call repeatedly.
func (g *Grabber) ForceRelease(obj *Grabbable) {
	if obj == nil || g.grabbed != obj {
		return
	}
	g.grabEnd()
}

// ForceUntouch removes the object from the candidate set regardless of
// how many overlaps it had. A no-op when the object was never a
// candidate.
func (g *Grabber) ForceUntouch(obj *Grabbable) {
	delete(g.candidates, obj)
}
