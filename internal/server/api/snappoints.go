package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
	"github.com/cyhunter/handposing/internal/store"
	"github.com/cyhunter/handposing/internal/surface"
)

// SnapPointsHandler handles HTTP requests for snap point resources nested
// under a snappable.
type SnapPointsHandler struct {
	store *store.Store
}

// NewSnapPointsHandler creates a new SnapPointsHandler with the given store.
func NewSnapPointsHandler(s *store.Store) *SnapPointsHandler {
	return &SnapPointsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths:
//
//	/api/snappables/{id}/points
//	/api/snappables/{id}/points/{pointID}
//	/api/snappables/{id}/points/{pointID}/poses
func (h *SnapPointsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/snappables/")
	parts := strings.Split(path, "/")

	if len(parts) < 2 || parts[1] != "points" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	snappableID := parts[0]

	switch {
	case len(parts) == 2:
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, snappableID)
		case http.MethodPost:
			h.create(w, r, snappableID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 3:
		switch r.Method {
		case http.MethodDelete:
			h.delete(w, r, parts[2])
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 4 && parts[3] == "poses":
		switch r.Method {
		case http.MethodGet:
			h.listPoses(w, r, parts[2])
		case http.MethodPost:
			h.recordPose(w, r, parts[2])
		case http.MethodDelete:
			h.clearPoses(w, r, parts[2])
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Wire types

// poseJSON is the wire form of a pose. Rotation is a w, x, y, z quaternion.
type poseJSON struct {
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
}

func (p poseJSON) toPose() geom.Pose {
	q := mgl32.Quat{
		W: float32(p.Rotation[0]),
		V: mgl32.Vec3{float32(p.Rotation[1]), float32(p.Rotation[2]), float32(p.Rotation[3])},
	}
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	return geom.Pose{
		Position: mgl32.Vec3{float32(p.Position[0]), float32(p.Position[1]), float32(p.Position[2])},
		Rotation: q.Normalize(),
	}
}

func fromPose(p geom.Pose) poseJSON {
	return poseJSON{
		Position: [3]float64{float64(p.Position[0]), float64(p.Position[1]), float64(p.Position[2])},
		Rotation: [4]float64{float64(p.Rotation.W), float64(p.Rotation.V[0]), float64(p.Rotation.V[1]), float64(p.Rotation.V[2])},
	}
}

type createPointRequest struct {
	Surface        surface.Data `json:"surface"`
	Mode           string       `json:"mode"`
	RotationWeight float64      `json:"rotation_weight"`
	CanInvert      bool         `json:"can_invert"`
	Grip           poseJSON     `json:"grip"`
}

type pointResponse struct {
	ID             string       `json:"id"`
	SnappableID    string       `json:"snappable_id"`
	Surface        surface.Data `json:"surface"`
	Mode           string       `json:"mode"`
	RotationWeight float64      `json:"rotation_weight"`
	CanInvert      bool         `json:"can_invert"`
	Grip           poseJSON     `json:"grip"`
	Poses          int          `json:"poses"`
}

type listPointsResponse struct {
	Points []pointResponse `json:"points"`
}

type recordPoseRequest struct {
	Handedness string             `json:"handedness"`
	Grip       poseJSON           `json:"grip"`
	Bones      map[int][4]float64 `json:"bones,omitempty"`
}

type referencePoseResponse struct {
	PoseIndex  int                `json:"pose_index"`
	Handedness string             `json:"handedness"`
	Grip       poseJSON           `json:"grip"`
	Bones      map[int][4]float64 `json:"bones,omitempty"`
}

type listPosesResponse struct {
	Poses []referencePoseResponse `json:"poses"`
}

func pointToResponse(p *store.SnapPoint, poses int) (pointResponse, error) {
	data, err := surface.UnmarshalParams(p.SurfaceParams)
	if err != nil {
		return pointResponse{}, err
	}
	if data.Type == "" {
		data.Type = surface.Type(p.SurfaceType)
	}
	return pointResponse{
		ID:             p.ID,
		SnappableID:    p.SnappableID,
		Surface:        data,
		Mode:           p.Mode,
		RotationWeight: p.RotationWeight,
		CanInvert:      p.CanInvert,
		Grip:           poseJSON{Position: p.GripPosition, Rotation: p.GripRotation},
		Poses:          poses,
	}, nil
}

// list handles GET /api/snappables/{id}/points.
func (h *SnapPointsHandler) list(w http.ResponseWriter, r *http.Request, snappableID string) {
	points, err := h.store.SnapPoints().ListBySnappable(snappableID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snap points")
		return
	}

	response := listPointsResponse{Points: make([]pointResponse, 0, len(points))}
	for _, p := range points {
		poses, err := h.store.SnapPoints().GetReferencePoses(p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to count reference poses")
			return
		}
		resp, err := pointToResponse(p, len(poses))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to decode surface parameters")
			return
		}
		response.Points = append(response.Points, resp)
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/snappables/{id}/points.
func (h *SnapPointsHandler) create(w http.ResponseWriter, r *http.Request, snappableID string) {
	if _, err := h.store.Snappables().GetByID(snappableID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snappable not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify snappable")
		return
	}

	var req createPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Surface.Type == "" {
		req.Surface.Type = surface.TypePoint
	}
	grip := req.Grip.toPose()
	if _, err := req.Surface.Instantiate(grip); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid surface")
		return
	}

	mode := snap.Mode(req.Mode)
	if mode == "" {
		mode = snap.ModeTranslation
	}
	if mode != snap.ModeTranslation && mode != snap.ModeRotation {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	if req.RotationWeight < 0 || req.RotationWeight > 1 {
		writeError(w, http.StatusBadRequest, "Rotation weight must be in [0, 1]")
		return
	}

	params, err := req.Surface.MarshalParams()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode surface parameters")
		return
	}

	p := &store.SnapPoint{
		ID:             uuid.New().String(),
		SnappableID:    snappableID,
		SurfaceType:    string(req.Surface.Type),
		SurfaceParams:  params,
		Mode:           string(mode),
		RotationWeight: req.RotationWeight,
		CanInvert:      req.CanInvert,
		GripPosition:   req.Grip.Position,
		GripRotation:   fromPose(grip).Rotation,
	}
	if err := h.store.SnapPoints().Create(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create snap point")
		return
	}

	resp, err := pointToResponse(p, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode snap point")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// delete handles DELETE /api/snappables/{id}/points/{pointID}.
func (h *SnapPointsHandler) delete(w http.ResponseWriter, r *http.Request, pointID string) {
	if err := h.store.SnapPoints().Delete(pointID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snap point not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete snap point")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listPoses handles GET /api/snappables/{id}/points/{pointID}/poses.
func (h *SnapPointsHandler) listPoses(w http.ResponseWriter, r *http.Request, pointID string) {
	poses, err := h.store.SnapPoints().GetReferencePoses(pointID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reference poses")
		return
	}

	response := listPosesResponse{Poses: make([]referencePoseResponse, 0, len(poses))}
	for _, p := range poses {
		bones := p.Bones
		if len(bones) == 0 {
			bones = nil
		}
		response.Poses = append(response.Poses, referencePoseResponse{
			PoseIndex:  p.PoseIndex,
			Handedness: p.Handedness,
			Grip:       poseJSON{Position: p.Position, Rotation: p.Rotation},
			Bones:      bones,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// recordPose handles POST /api/snappables/{id}/points/{pointID}/poses and
// appends a recorded hand pose to the snap point.
func (h *SnapPointsHandler) recordPose(w http.ResponseWriter, r *http.Request, pointID string) {
	existing, err := h.store.SnapPoints().GetReferencePoses(pointID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load reference poses")
		return
	}

	var req recordPoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	handedness := snap.Handedness(req.Handedness)
	if handedness != "" && handedness != snap.HandLeft && handedness != snap.HandRight {
		writeError(w, http.StatusBadRequest, "Invalid handedness")
		return
	}

	grip := fromPose(req.Grip.toPose())
	pose := &store.ReferencePose{
		SnapPointID: pointID,
		PoseIndex:   len(existing),
		Handedness:  req.Handedness,
		Position:    grip.Position,
		Rotation:    grip.Rotation,
		Bones:       req.Bones,
	}
	if err := h.store.SnapPoints().AddReferencePose(pose); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save reference pose")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"status": "ok", "pose_index": pose.PoseIndex})
}

// clearPoses handles DELETE /api/snappables/{id}/points/{pointID}/poses.
func (h *SnapPointsHandler) clearPoses(w http.ResponseWriter, r *http.Request, pointID string) {
	if err := h.store.SnapPoints().ClearReferencePoses(pointID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear reference poses")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
