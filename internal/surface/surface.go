// Package surface models the geometric regions where a hand can snap to
// an object: a rectangle, a cylinder section, a sphere, or a single point.
// Every variant answers the same four questions: the nearest valid point
// to an arbitrary position, the valid pose needing the least rotation from
// the user's hand, the valid pose needing the least translation, and the
// mirrored equivalent of a pose for surfaces with symmetry.
package surface

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cyhunter/handposing/internal/geom"
)

// Type tags the active surface variant.
type Type string

const (
	// TypePoint snaps to a single grip point.
	TypePoint Type = "point"
	// TypeBox snaps to the perimeter of a rectangle.
	TypeBox Type = "box"
	// TypeCylinder snaps to the lateral band of a cylinder.
	TypeCylinder Type = "cylinder"
	// TypeSphere snaps anywhere on a sphere.
	TypeSphere Type = "sphere"
)

// Surface is the common contract implemented by every variant.
// All positions are world-space; instances are built per query from the
// owning object's current pose, so the object may move freely while its
// snap geometry stays valid.
type Surface interface {
	Type() Type

	// NearestPointInSurface returns the closest point on the surface
	// region to an arbitrary world position.
	NearestPointInSurface(target mgl32.Vec3) mgl32.Vec3

	// MinimalRotationPoseAtSurface picks, among the surface's valid
	// orientations, the one requiring the least rotation from the user's
	// actual hand orientation, and returns the matching point and
	// rotation.
	MinimalRotationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose

	// MinimalTranslationPoseAtSurface picks the point on the surface
	// nearest the user's hand position and derives the orientation at
	// that point.
	MinimalTranslationPoseAtSurface(userPose, snapPose geom.Pose) geom.Pose

	// InvertedPose maps a pose to its mirrored equivalent on surfaces
	// with inherent symmetry; surfaces without symmetry return the pose
	// unchanged.
	InvertedPose(pose geom.Pose) geom.Pose
}

// Data is the serializable description of a surface: a type tag plus the
// parameters of the active variant. Exactly one variant is active.
type Data struct {
	Type     Type            `json:"type"`
	Box      *BoxParams      `json:"box,omitempty"`
	Cylinder *CylinderParams `json:"cylinder,omitempty"`
	Sphere   *SphereParams   `json:"sphere,omitempty"`
}

// PointData returns a Data describing the trivial point surface.
func PointData() Data {
	return Data{Type: TypePoint}
}

// Instantiate builds a live Surface at the given world-space grip pose.
// The grip pose is where the authored snap point currently sits; surfaces
// orient themselves from its rotation.
func (d Data) Instantiate(grip geom.Pose) (Surface, error) {
	switch d.Type {
	case TypePoint, "":
		return &PointSurface{grip: grip}, nil
	case TypeBox:
		if d.Box == nil {
			return nil, fmt.Errorf("box surface has no parameters")
		}
		return &BoxSurface{params: *d.Box, grip: grip}, nil
	case TypeCylinder:
		if d.Cylinder == nil {
			return nil, fmt.Errorf("cylinder surface has no parameters")
		}
		return &CylinderSurface{params: *d.Cylinder, grip: grip}, nil
	case TypeSphere:
		if d.Sphere == nil {
			return nil, fmt.Errorf("sphere surface has no parameters")
		}
		return &SphereSurface{params: *d.Sphere, grip: grip}, nil
	default:
		return nil, fmt.Errorf("unknown surface type %q", d.Type)
	}
}

// MarshalParams serializes the variant parameters to JSON for persistence.
func (d Data) MarshalParams() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal surface params: %w", err)
	}
	return string(raw), nil
}

// UnmarshalParams restores a Data from its persisted JSON form.
func UnmarshalParams(raw string) (Data, error) {
	var d Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Data{}, fmt.Errorf("unmarshal surface params: %w", err)
	}
	return d, nil
}
