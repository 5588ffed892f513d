package markers

import (
	"encoding/json"

	"github.com/golang/geo/r3"

	"go.viam.com/markerviz/models"
	"go.viam.com/markerviz/spatialmath"
)

// FilledPolygon is a filled outline drawn in the frame of Pose. Points may be shared between
// polygons and must not be modified.
type FilledPolygon struct {
	Pose            spatialmath.Pose `json:"pose"`
	InteractionData interface{}      `json:"interactionData,omitempty"`
	Points          []r3.Vector      `json:"points"`
	Color           RGBA             `json:"color"`
}

// ModelInstance places a vehicle mesh at Pose. The renderer resolves ModelKey through a
// models.Registry and skips the instance until the mesh has loaded.
type ModelInstance struct {
	ModelKey        models.Key       `json:"modelKey"`
	Pose            spatialmath.Pose `json:"pose"`
	Alpha           float64          `json:"alpha"`
	InteractionData interface{}      `json:"interactionData,omitempty"`
}

// Arrow is drawn from Points[0] (tail) to Points[1] (tip).
type Arrow struct {
	Pose            spatialmath.Pose `json:"pose"`
	Color           RGBA             `json:"color"`
	Scale           Scale            `json:"scale"`
	Points          [2]r3.Vector     `json:"points"`
	InteractionData interface{}      `json:"interactionData,omitempty"`
}

// MarshalJSON encodes the polygon with points as {"x", "y", "z"}.
func (p FilledPolygon) MarshalJSON() ([]byte, error) {
	type polygon FilledPolygon
	return json.Marshal(struct {
		polygon
		Points []spatialmath.PointJSON `json:"points"`
	}{polygon(p), spatialmath.NewPointsJSON(p.Points)})
}

// MarshalJSON encodes the arrow with points as {"x", "y", "z"}.
func (a Arrow) MarshalJSON() ([]byte, error) {
	type arrow Arrow
	return json.Marshal(struct {
		arrow
		Points [2]spatialmath.PointJSON `json:"points"`
	}{arrow(a), [2]spatialmath.PointJSON{spatialmath.NewPointJSON(a.Points[0]), spatialmath.NewPointJSON(a.Points[1])}})
}

// FilledPolygons is one draw call of polygons.
type FilledPolygons struct {
	LayerIndex int             `json:"layerIndex"`
	Polygons   []FilledPolygon `json:"polygons"`
}

// ModelInstances is the model instances of one frame.
type ModelInstances struct {
	LayerIndex int             `json:"layerIndex"`
	Instances  []ModelInstance `json:"instances"`
}

// Arrows is one draw call of arrows.
type Arrows struct {
	LayerIndex int     `json:"layerIndex"`
	Arrows     []Arrow `json:"arrows"`
}

// Batches are the primitives produced for one frame. They must be drawn in DrawOrder so that
// models and arrows are not hidden under the outline fill.
type Batches struct {
	Outlines FilledPolygons `json:"outlines"`
	Models   ModelInstances `json:"models"`
	Arrows   Arrows         `json:"arrows"`
}

// BatchKind names one of the three batches.
type BatchKind int

// The batch kinds, in draw order.
const (
	BatchOutlines BatchKind = iota
	BatchModels
	BatchArrows
)

func (k BatchKind) String() string {
	switch k {
	case BatchOutlines:
		return "outlines"
	case BatchModels:
		return "models"
	case BatchArrows:
		return "arrows"
	default:
		return "unknown"
	}
}

// DrawOrder returns the order the batches must be drawn in.
func (b *Batches) DrawOrder() []BatchKind {
	return []BatchKind{BatchOutlines, BatchModels, BatchArrows}
}

// Len returns the total number of primitives across all batches.
func (b *Batches) Len() int {
	return len(b.Outlines.Polygons) + len(b.Models.Instances) + len(b.Arrows.Arrows)
}

func newBatches(layerIndex int) *Batches {
	return &Batches{
		Outlines: FilledPolygons{LayerIndex: layerIndex, Polygons: []FilledPolygon{}},
		Models:   ModelInstances{LayerIndex: layerIndex, Instances: []ModelInstance{}},
		Arrows:   Arrows{LayerIndex: layerIndex, Arrows: []Arrow{}},
	}
}
