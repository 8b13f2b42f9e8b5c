package snap

// Snappable owns the snap points attached to one object. Point order only
// matters for deterministic tie-breaking: the first strictly-greater score
// wins a query.
type Snappable struct {
	ID     string
	Name   string
	Points []*Point
}

// AddPoint appends a snap point to the collection.
func (s *Snappable) AddPoint(p *Point) {
	if p == nil {
		return
	}
	s.Points = append(s.Points, p)
}

// RemovePoint removes a snap point by its ID.
func (s *Snappable) RemovePoint(id string) {
	for i, p := range s.Points {
		if p.ID == id {
			s.Points = append(s.Points[:i], s.Points[i+1:]...)
			return
		}
	}
}

// FindBestSnapPose scores the user pose against every snap point and
// returns the strictly-highest-scoring point with its corrected pose.
// Ties keep the first point seen. An empty registry, or one whose points
// all have no reference poses, yields (nil, null sentinel).
func (s *Snappable) FindBestSnapPose(user HandPose) (*Point, ScoredHandPose) {
	var bestPoint *Point
	best := NullScoredPose()
	for _, p := range s.Points {
		scored := p.CalculateBestPose(user)
		if scored.Score > best.Score {
			bestPoint = p
			best = scored
		}
	}
	return bestPoint, best
}
