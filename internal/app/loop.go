package app

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/grab"
)

// Start begins the simulation loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	a.stopCh = make(chan struct{})
	go a.runLoop(a.stopCh)

	log.Println("Grab simulation loop started")
	return nil
}

// Stop halts the simulation loop.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	log.Println("Grab simulation loop stopped")
}

// runLoop drives the simulation at the configured tick rate.
//
// Each tick:
//  1. Sample every grabber's tracked pose and flex signal
//  2. Follow: move hand and object volumes to their owners
//  3. Synthesize volume enter/exit from overlap changes
//  4. Advance each grabber's state machine
func (a *App) runLoop(stopCh chan struct{}) {
	interval := time.Second / time.Duration(a.config.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}
			a.Tick(dt)
		}
	}
}

// Tick advances the whole simulation by dt seconds. Exposed so tests and
// embedders can step deterministically instead of running the loop.
func (a *App) Tick(dt float64) {
	objects := a.grabbableSnapshot()

	// Keep object volumes centred on their (possibly carried) objects.
	for _, obj := range objects {
		moveVolumes(obj.Volumes(), obj.Pose().Position)
	}

	for _, d := range a.driverSnapshot() {
		pose, err := d.poses.TrackedPose(geom.PoseIdent(), false)
		if err != nil {
			log.Printf("Error reading tracked pose for %s: %v", d.name, err)
			continue
		}
		flex := d.flex.CurrentFlex()

		moveVolumes(d.grabber.Volumes(), pose.Grip.Position)
		a.updateTouches(d, objects, pose.Grip.Position)
		d.grabber.Update(pose.Grip, flex, dt)
	}
}

// updateTouches diffs volume overlaps against the previous tick and feeds
// the grabber matching enter and exit calls.
func (a *App) updateTouches(d *driver, objects []*grab.Grabbable, hand mgl32.Vec3) {
	seen := make(map[*grab.Grabbable]bool, len(objects))
	for _, obj := range objects {
		touching := obj.GrabbedBy() != d.grabber && overlaps(d.grabber.Volumes(), obj, hand)
		seen[obj] = true
		if touching && !d.touching[obj] {
			d.touching[obj] = true
			d.grabber.VolumeEnter(obj)
		} else if !touching && d.touching[obj] {
			delete(d.touching, obj)
			d.grabber.VolumeExit(obj)
		}
	}

	// Objects removed from the scene stop being touched.
	for obj := range d.touching {
		if !seen[obj] {
			delete(d.touching, obj)
			d.grabber.VolumeExit(obj)
		}
	}
}

// overlaps reports whether any enabled grabber volume intersects any of
// the object's enabled volumes.
func overlaps(volumes []grab.Volume, obj *grab.Grabbable, hand mgl32.Vec3) bool {
	for _, gv := range volumes {
		if !gv.Enabled() {
			continue
		}
		// For box volumes the clamped centre test is an exact overlap
		// check; other volume shapes fall back to the hand position.
		probe := hand
		if box, ok := gv.(*grab.AABB); ok {
			probe = box.Centre()
		}
		if point, ok := obj.ClosestPoint(probe); ok && gv.Contains(point) {
			return true
		}
	}
	return false
}

func moveVolumes(volumes []grab.Volume, centre mgl32.Vec3) {
	for _, v := range volumes {
		if box, ok := v.(*grab.AABB); ok {
			box.MoveTo(centre)
		}
	}
}
