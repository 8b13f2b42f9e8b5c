package snap

import (
	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/surface"
)

// Mode selects which surface correction a snap point applies to its
// reference poses.
type Mode string

const (
	// ModeTranslation snaps position-first: the hand moves to the
	// nearest valid surface point and the orientation follows.
	ModeTranslation Mode = "translation"
	// ModeRotation snaps rotation-first: the hand keeps the orientation
	// closest to its own and the position follows.
	ModeRotation Mode = "rotation"
)

// Point is an authored location on an object where a hand pose is a good
// grip. It owns a surface, a grip pose in the owner's frame, and the
// reference hand poses recorded there. All geometry is expressed relative
// to the owning object, so the object may move and rotate freely.
type Point struct {
	ID        string
	LocalGrip geom.Pose
	Surface   surface.Data
	Mode      Mode
	// RotationWeight blends the position score (0) against the rotation
	// score (1) when ranking reference poses.
	RotationWeight float64
	// CanInvert also tries the mirrored form of each reference pose on
	// surfaces with symmetry.
	CanInvert bool
	RefPoses  []HandPose

	// RelativeTo supplies the owning object's current world pose. Nil
	// means the object sits at the origin.
	RelativeTo func() geom.Pose
}

func (p *Point) ownerPose() geom.Pose {
	if p.RelativeTo == nil {
		return geom.PoseIdent()
	}
	return p.RelativeTo()
}

// GripPose returns the snap point's grip pose in world space.
func (p *Point) GripPose() geom.Pose {
	return geom.WorldPose(p.LocalGrip, p.ownerPose())
}

// AddReferencePose records a reference hand pose, grip given in the
// owner's frame.
func (p *Point) AddReferencePose(pose HandPose) {
	p.RefPoses = append(p.RefPoses, pose)
}

// CalculateBestPose scores the user's hand pose against every recorded
// reference pose, surface-corrects each candidate, and returns the single
// best corrected pose in world space. With no recorded poses it returns
// the null sentinel; callers must check the score. Identical input always
// yields identical output, and strictly closer poses never score lower.
func (p *Point) CalculateBestPose(user HandPose) ScoredHandPose {
	if len(p.RefPoses) == 0 {
		return NullScoredPose()
	}

	surf, err := p.Surface.Instantiate(p.GripPose())
	if err != nil {
		return NullScoredPose()
	}

	owner := p.ownerPose()
	best := NullScoredPose()
	for _, ref := range p.RefPoses {
		refWorld := geom.WorldPose(ref.Grip, owner)

		candidates := []geom.Pose{refWorld}
		if p.CanInvert {
			candidates = append(candidates, surf.InvertedPose(refWorld))
		}
		for _, candidate := range candidates {
			corrected := p.correct(surf, user.Grip, candidate)
			score := p.score(user.Grip, corrected)
			if score > best.Score {
				best = ScoredHandPose{
					Pose: HandPose{
						Grip:       corrected,
						Bones:      ref.Bones,
						Handedness: ref.Handedness,
					},
					Score: score,
				}
			}
		}
	}
	return best
}

func (p *Point) correct(surf surface.Surface, user, snapPose geom.Pose) geom.Pose {
	if p.Mode == ModeRotation {
		return surf.MinimalRotationPoseAtSurface(user, snapPose)
	}
	return surf.MinimalTranslationPoseAtSurface(user, snapPose)
}

// score blends a position score and a rotation score, both in [0, 1].
// The position score follows 1/(1+d); the rotation score is the absolute
// quaternion dot product.
func (p *Point) score(user, corrected geom.Pose) float64 {
	dist := float64(user.Position.Sub(corrected.Position).Len())
	posScore := 1.0 / (1.0 + dist)
	rotScore := float64(geom.RotationDifference(user.Rotation, corrected.Rotation))
	w := p.RotationWeight
	return (1-w)*posScore + w*rotScore
}
