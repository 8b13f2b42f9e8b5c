package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cyhunter/handposing/internal/geom"
	"github.com/cyhunter/handposing/internal/snap"
	"github.com/cyhunter/handposing/internal/store"
)

// BestPoseHandler scores a tracked hand pose against a stored snappable and
// returns the best surface-corrected grip.
type BestPoseHandler struct {
	store *store.Store
}

// NewBestPoseHandler creates a new BestPoseHandler with the given store.
func NewBestPoseHandler(s *store.Store) *BestPoseHandler {
	return &BestPoseHandler{store: s}
}

type bestPoseRequest struct {
	Hand struct {
		Grip       poseJSON           `json:"grip"`
		Handedness string             `json:"handedness"`
		Bones      map[int][4]float64 `json:"bones,omitempty"`
	} `json:"hand"`
	// ObjectPose is the snappable's current world pose. Omitted means the
	// object sits at the origin.
	ObjectPose *poseJSON `json:"object_pose,omitempty"`
}

type bestPoseResponse struct {
	Found      bool               `json:"found"`
	PointID    string             `json:"point_id,omitempty"`
	Score      float64            `json:"score"`
	Grip       *poseJSON          `json:"grip,omitempty"`
	Handedness string             `json:"handedness,omitempty"`
	Bones      map[int][4]float64 `json:"bones,omitempty"`
}

// ServeHTTP handles POST /api/snappables/{id}/best-pose.
func (h *BestPoseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/snappables/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[1] != "best-pose" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	snappableID := parts[0]

	var req bestPoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	live, err := h.store.LoadSnappable(snappableID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snappable not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load snappable")
		return
	}

	owner := geom.PoseIdent()
	if req.ObjectPose != nil {
		owner = req.ObjectPose.toPose()
	}
	for _, p := range live.Points {
		p.RelativeTo = func() geom.Pose { return owner }
	}

	user := snap.HandPose{
		Grip:       req.Hand.Grip.toPose(),
		Handedness: snap.Handedness(req.Hand.Handedness),
	}

	point, scored := live.FindBestSnapPose(user)
	if scored.IsNull() {
		writeJSON(w, http.StatusOK, bestPoseResponse{Found: false, Score: snap.MinScore})
		return
	}

	grip := fromPose(scored.Pose.Grip)
	var bones map[int][4]float64
	if len(scored.Pose.Bones) > 0 {
		bones = make(map[int][4]float64, len(scored.Pose.Bones))
		for i, q := range scored.Pose.Bones {
			bones[i] = [4]float64{float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])}
		}
	}

	writeJSON(w, http.StatusOK, bestPoseResponse{
		Found:      true,
		PointID:    point.ID,
		Score:      scored.Score,
		Grip:       &grip,
		Handedness: string(scored.Pose.Handedness),
		Bones:      bones,
	})
}
