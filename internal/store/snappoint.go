package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SnapPoint represents an authored snap point row: the surface-type tag,
// its parameters as JSON, the grip pose, and the scoring configuration.
type SnapPoint struct {
	ID             string
	SnappableID    string
	SurfaceType    string
	SurfaceParams  string
	Mode           string
	RotationWeight float64
	CanInvert      bool
	GripPosition   [3]float64
	GripRotation   [4]float64 // w, x, y, z
	CreatedAt      time.Time
}

// ReferencePose represents one recorded hand pose for a snap point.
// Bone rotations are stored as a JSON object keyed by bone index, each
// value a [w, x, y, z] quaternion.
type ReferencePose struct {
	SnapPointID string
	PoseIndex   int
	Handedness  string
	Position    [3]float64
	Rotation    [4]float64 // w, x, y, z
	Bones       map[int][4]float64
}

// SnapPointRepository provides CRUD operations for snap points and their
// reference poses.
type SnapPointRepository struct {
	db *sql.DB
}

// SnapPoints returns the snap point repository for this store.
func (s *Store) SnapPoints() *SnapPointRepository {
	return &SnapPointRepository{db: s.db}
}

// Create inserts a new snap point into the database.
func (r *SnapPointRepository) Create(p *SnapPoint) error {
	p.CreatedAt = time.Now()
	_, err := r.db.Exec(
		`INSERT INTO snap_points
		 (id, snappable_id, surface_type, surface_params, mode, rotation_weight, can_invert,
		  grip_px, grip_py, grip_pz, grip_qw, grip_qx, grip_qy, grip_qz, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SnappableID, p.SurfaceType, p.SurfaceParams, p.Mode, p.RotationWeight, p.CanInvert,
		p.GripPosition[0], p.GripPosition[1], p.GripPosition[2],
		p.GripRotation[0], p.GripRotation[1], p.GripRotation[2], p.GripRotation[3],
		p.CreatedAt,
	)
	return err
}

// ListBySnappable retrieves the snap points of one snappable in creation
// order. Iteration order is the tie-break order of best-pose queries, so
// it must be stable.
func (r *SnapPointRepository) ListBySnappable(snappableID string) ([]*SnapPoint, error) {
	rows, err := r.db.Query(
		`SELECT id, snappable_id, surface_type, surface_params, mode, rotation_weight, can_invert,
		        grip_px, grip_py, grip_pz, grip_qw, grip_qx, grip_qy, grip_qz, created_at
		 FROM snap_points WHERE snappable_id = ? ORDER BY created_at, id`,
		snappableID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*SnapPoint
	for rows.Next() {
		p := &SnapPoint{}
		if err := rows.Scan(
			&p.ID, &p.SnappableID, &p.SurfaceType, &p.SurfaceParams, &p.Mode,
			&p.RotationWeight, &p.CanInvert,
			&p.GripPosition[0], &p.GripPosition[1], &p.GripPosition[2],
			&p.GripRotation[0], &p.GripRotation[1], &p.GripRotation[2], &p.GripRotation[3],
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a snap point and its reference poses.
func (r *SnapPointRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM snap_points WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddReferencePose appends a recorded hand pose to a snap point.
func (r *SnapPointRepository) AddReferencePose(p *ReferencePose) error {
	bones := p.Bones
	if bones == nil {
		bones = map[int][4]float64{}
	}
	raw, err := json.Marshal(bones)
	if err != nil {
		return fmt.Errorf("marshal bones: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO reference_poses
		 (snap_point_id, pose_index, handedness, px, py, pz, qw, qx, qy, qz, bones)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SnapPointID, p.PoseIndex, p.Handedness,
		p.Position[0], p.Position[1], p.Position[2],
		p.Rotation[0], p.Rotation[1], p.Rotation[2], p.Rotation[3],
		string(raw),
	)
	return err
}

// GetReferencePoses retrieves the recorded poses of a snap point in
// recording order.
func (r *SnapPointRepository) GetReferencePoses(snapPointID string) ([]*ReferencePose, error) {
	rows, err := r.db.Query(
		`SELECT snap_point_id, pose_index, handedness, px, py, pz, qw, qx, qy, qz, bones
		 FROM reference_poses WHERE snap_point_id = ? ORDER BY pose_index, id`,
		snapPointID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ReferencePose
	for rows.Next() {
		p := &ReferencePose{}
		var bones string
		if err := rows.Scan(
			&p.SnapPointID, &p.PoseIndex, &p.Handedness,
			&p.Position[0], &p.Position[1], &p.Position[2],
			&p.Rotation[0], &p.Rotation[1], &p.Rotation[2], &p.Rotation[3],
			&bones,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(bones), &p.Bones); err != nil {
			return nil, fmt.Errorf("unmarshal bones: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ClearReferencePoses removes every recorded pose of a snap point.
func (r *SnapPointRepository) ClearReferencePoses(snapPointID string) error {
	_, err := r.db.Exec(`DELETE FROM reference_poses WHERE snap_point_id = ?`, snapPointID)
	return err
}
