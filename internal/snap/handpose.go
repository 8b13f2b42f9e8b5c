// Package snap scores tracked hand poses against authored snap points and
// finds the best grip on an object.
package snap

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// Hand bone indices, following the MediaPipe hand layout. Recorded
// reference poses and live tracked poses key their per-bone rotations to
// the same indices.
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20
	NumBones  = 21
)

// Handedness identifies which hand a pose belongs to.
type Handedness string

const (
	// HandLeft is a left hand pose.
	HandLeft Handedness = "left"
	// HandRight is a right hand pose.
	HandRight Handedness = "right"
)

// HandPose is a grip pose plus optional per-bone rotations. The grip is
// the reference point used for proximity and snapping; bone rotations
// describe finger curl and are carried through scoring untouched so the
// winning reference pose can drive a hand rig.
type HandPose struct {
	Grip       geom.Pose          `json:"grip"`
	Bones      map[int]mgl32.Quat `json:"bones,omitempty"`
	Handedness Handedness         `json:"handedness,omitempty"`
}

// MinScore is the score of the null sentinel pose. Real scores live in
// [0, 1]; the sentinel always loses a strictly-greater comparison.
const MinScore = -1.0

// ScoredHandPose pairs a hand pose with how well it matched, higher being
// better.
type ScoredHandPose struct {
	Pose  HandPose `json:"pose"`
	Score float64  `json:"score"`
}

// NullScoredPose returns the sentinel meaning "no match".
func NullScoredPose() ScoredHandPose {
	return ScoredHandPose{Score: MinScore}
}

// IsNull reports whether the result is the no-match sentinel.
func (s ScoredHandPose) IsNull() bool {
	return s.Score <= MinScore
}
