package store

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
	"github.com/cyhunter/handposing/internal/surface"
)

func poseFromColumns(pos [3]float64, rot [4]float64) geom.Pose {
	q := mgl32.Quat{
		W: float32(rot[0]),
		V: mgl32.Vec3{float32(rot[1]), float32(rot[2]), float32(rot[3])},
	}
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	return geom.Pose{
		Position: mgl32.Vec3{float32(pos[0]), float32(pos[1]), float32(pos[2])},
		Rotation: q.Normalize(),
	}
}

// LivePoint converts a stored snap point and its recorded poses into the
// in-memory form used for scoring.
func LivePoint(row *SnapPoint, poses []*ReferencePose) (*snap.Point, error) {
	data, err := surface.UnmarshalParams(row.SurfaceParams)
	if err != nil {
		return nil, fmt.Errorf("snap point %s: %w", row.ID, err)
	}
	if data.Type == "" {
		data.Type = surface.Type(row.SurfaceType)
	}

	p := &snap.Point{
		ID:             row.ID,
		LocalGrip:      poseFromColumns(row.GripPosition, row.GripRotation),
		Surface:        data,
		Mode:           snap.Mode(row.Mode),
		RotationWeight: row.RotationWeight,
		CanInvert:      row.CanInvert,
	}

	for _, rp := range poses {
		var bones map[int]mgl32.Quat
		if len(rp.Bones) > 0 {
			bones = make(map[int]mgl32.Quat, len(rp.Bones))
			for i, q := range rp.Bones {
				bones[i] = mgl32.Quat{
					W: float32(q[0]),
					V: mgl32.Vec3{float32(q[1]), float32(q[2]), float32(q[3])},
				}
			}
		}
		p.AddReferencePose(snap.HandPose{
			Grip:       poseFromColumns(rp.Position, rp.Rotation),
			Bones:      bones,
			Handedness: snap.Handedness(rp.Handedness),
		})
	}
	return p, nil
}

// LoadSnappable assembles the full in-memory snappable, snap points and
// reference poses included, for best-pose queries.
func (s *Store) LoadSnappable(id string) (*snap.Snappable, error) {
	meta, err := s.Snappables().GetByID(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.SnapPoints().ListBySnappable(id)
	if err != nil {
		return nil, fmt.Errorf("list snap points: %w", err)
	}

	live := &snap.Snappable{ID: meta.ID, Name: meta.Name}
	for _, row := range rows {
		poses, err := s.SnapPoints().GetReferencePoses(row.ID)
		if err != nil {
			return nil, fmt.Errorf("load reference poses: %w", err)
		}
		pt, err := LivePoint(row, poses)
		if err != nil {
			return nil, err
		}
		live.AddPoint(pt)
	}
	return live, nil
}
