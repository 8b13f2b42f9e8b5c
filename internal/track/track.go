// Package track defines the input interfaces the grab system samples each
// tick: a tracked hand pose and a continuous flex signal.
package track

import (
	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
)

// PoseProvider supplies the tracked hand pose each tick.
type PoseProvider interface {
	// TrackedPose returns the current hand pose expressed relative to the
	// given reference pose. includeBones asks for per-bone rotations as
	// well; providers may skip them when false to save work.
	TrackedPose(relativeTo geom.Pose, includeBones bool) (snap.HandPose, error)
}

// FlexProvider supplies the grip flex driving grab intent.
type FlexProvider interface {
	// CurrentFlex returns the flex signal in [0, 1].
	CurrentFlex() float64
}

// Config holds tracking thresholds shared by grabbers.
type Config struct {
	// ReleaseThreshold is the flex value at or below which a held object
	// is released.
	ReleaseThreshold float64

	// GrabThreshold is the flex value at or above which a nearby object
	// is grabbed.
	GrabThreshold float64
}

// DefaultConfig returns thresholds with a comfortable hysteresis gap.
func DefaultConfig() Config {
	return Config{
		ReleaseThreshold: 0.35,
		GrabThreshold:    0.55,
	}
}
