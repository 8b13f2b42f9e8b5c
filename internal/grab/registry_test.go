package grab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRegistryForceRelease(t *testing.T) {
	reg := NewRegistry()
	holder := NewGrabber(testConfig())
	bystander := NewGrabber(testConfig())
	reg.Add(holder)
	reg.Add(bystander)

	obj := cube("cube", mgl32.Vec3{0, 0, 0.1})
	holder.VolumeEnter(obj)
	holder.Update(poseAt(0, 0, 0), 0, tick)
	holder.Update(poseAt(0, 0, 0), 1, tick)
	if obj.GrabbedBy() != holder {
		t.Fatal("setup: holder should hold the object")
	}

	reg.ForceRelease(obj)
	if obj.IsGrabbed() {
		t.Error("object still held after broadcast release")
	}

	// Broadcasting again, or for an object nobody holds, is a no-op.
	reg.ForceRelease(obj)
	reg.ForceRelease(cube("other", mgl32.Vec3{}))
}

func TestRegistryForceUntouch(t *testing.T) {
	reg := NewRegistry()
	a := NewGrabber(testConfig())
	b := NewGrabber(testConfig())
	reg.Add(a)
	reg.Add(b)

	obj := cube("cube", mgl32.Vec3{0, 0, 0.1})
	a.VolumeEnter(obj)
	a.VolumeEnter(obj)
	b.VolumeEnter(obj)

	reg.ForceUntouch(obj)
	if a.FindClosestGrabbable() != nil || b.FindClosestGrabbable() != nil {
		t.Error("object should be gone from every candidate set")
	}
}

func TestRegistryAddRemove(t *testing.T) {
	reg := NewRegistry()
	g := NewGrabber(testConfig())

	reg.Add(g)
	reg.Add(g)
	if n := len(reg.Grabbers()); n != 1 {
		t.Errorf("grabbers = %d, want 1 after duplicate add", n)
	}

	reg.Remove(g)
	if n := len(reg.Grabbers()); n != 0 {
		t.Errorf("grabbers = %d, want 0 after remove", n)
	}
	reg.Remove(g)
	reg.Add(nil)
	if n := len(reg.Grabbers()); n != 0 {
		t.Errorf("grabbers = %d, want 0", n)
	}
}
