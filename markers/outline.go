package markers

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"go.viam.com/markerviz/utils"
)

//go:embed data/freight100_outline.json
var freight100OutlineJSON []byte

// baselineOutline is the freight100 footprint in the vehicle frame (origin at the rear axle,
// +X forward). It is parsed once and never modified.
var baselineOutline = mustParseOutline(freight100OutlineJSON)

func mustParseOutline(data []byte) []r3.Vector {
	var points []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	}
	if err := json.Unmarshal(data, &points); err != nil {
		panic(fmt.Sprintf("invalid embedded outline: %v", err))
	}
	if len(points) < 3 {
		panic("embedded outline needs at least 3 points")
	}
	outline := make([]r3.Vector, len(points))
	for i, p := range points {
		outline[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}
	return outline
}

// BaselineOutline returns a copy of the freight100 footprint polygon.
func BaselineOutline() []r3.Vector {
	return append([]r3.Vector(nil), baselineOutline...)
}

// Scaling is a horizontal scale applied to an outline. Z is never scaled.
type Scaling struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate checks that both factors are finite and positive.
func (s Scaling) Validate() error {
	for _, f := range []float64{s.X, s.Y} {
		if !utils.IsFinite(f) || f <= 0 {
			return errors.Errorf("scale factors must be finite and positive, got %+v", s)
		}
	}
	return nil
}

// ScalingMode selects which of the configured Scaling presets sizes the outline buffer.
type ScalingMode int

// The scaling modes. ScalingUpdated is chosen by the updatedPoseErrorScaling feature toggle.
const (
	ScalingOriginal ScalingMode = iota
	ScalingUpdated
	numScalingModes
)

func (m ScalingMode) String() string {
	switch m {
	case ScalingOriginal:
		return "original"
	case ScalingUpdated:
		return "updated"
	}
	return fmt.Sprintf("ScalingMode(%d)", int(m))
}

// ScalingModeFromToggle maps the updatedPoseErrorScaling feature toggle to a mode.
func ScalingModeFromToggle(useUpdatedScaling bool) ScalingMode {
	if useUpdatedScaling {
		return ScalingUpdated
	}
	return ScalingOriginal
}

// ScalingPresets holds the Scaling used for each mode.
type ScalingPresets struct {
	Original Scaling `json:"original"`
	Updated  Scaling `json:"updated"`
}

// DefaultScalingPresets returns the presets used when none are configured.
func DefaultScalingPresets() ScalingPresets {
	return ScalingPresets{
		Original: Scaling{X: 1.2, Y: 1.2},
		Updated:  Scaling{X: 2, Y: 1},
	}
}

// Get returns the preset for mode.
func (p ScalingPresets) Get(mode ScalingMode) (Scaling, error) {
	switch mode {
	case ScalingOriginal:
		return p.Original, nil
	case ScalingUpdated:
		return p.Updated, nil
	}
	return Scaling{}, errors.Errorf("unknown scaling mode %v", mode)
}

// Validate checks every preset.
func (p ScalingPresets) Validate() error {
	if err := p.Original.Validate(); err != nil {
		return errors.Wrap(err, "original scaling")
	}
	if err := p.Updated.Validate(); err != nil {
		return errors.Wrap(err, "updated scaling")
	}
	return nil
}

// PlanarCentroid returns the mean of the points' X and Y. Z is always 0.
func PlanarCentroid(points []r3.Vector) r3.Vector {
	if len(points) == 0 {
		return r3.Vector{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return r3.Vector{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

// ScaleOutline scales points horizontally about their planar centroid, so the centroid stays put
// while the shape grows or shrinks. Z coordinates are copied through. The input is not modified.
func ScaleOutline(points []r3.Vector, s Scaling) []r3.Vector {
	c := PlanarCentroid(points)
	tx := c.X*s.X - c.X
	ty := c.Y*s.Y - c.Y

	scaled := make([]r3.Vector, len(points))
	for i, p := range points {
		scaled[i] = r3.Vector{X: p.X*s.X - tx, Y: p.Y*s.Y - ty, Z: p.Z}
	}
	return scaled
}
