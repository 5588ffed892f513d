package markers

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/markerviz/logging"
	"go.viam.com/markerviz/spatialmath"
)

// Classifier sorts pose markers into outline, model and arrow batches. It is immutable once
// constructed and may be shared by concurrent Classify calls.
type Classifier struct {
	logger logging.Logger

	// scaled outline buffer per ScalingMode, computed once from the baseline
	buffers [numScalingModes][]r3.Vector
}

// NewClassifier returns a Classifier whose outline buffers use the given presets.
func NewClassifier(presets ScalingPresets, logger logging.Logger) (*Classifier, error) {
	if err := presets.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier{logger: logger}
	for mode := ScalingOriginal; mode < numScalingModes; mode++ {
		scaling, err := presets.Get(mode)
		if err != nil {
			return nil, err
		}
		c.buffers[mode] = ScaleOutline(baselineOutline, scaling)
	}
	return c, nil
}

// OutlineBuffer returns the scaled outline drawn for markers with AddCarOutlineBuffer in mode.
func (c *Classifier) OutlineBuffer(mode ScalingMode) ([]r3.Vector, error) {
	if mode < 0 || mode >= numScalingModes {
		return nil, errors.Errorf("unknown scaling mode %v", mode)
	}
	return append([]r3.Vector(nil), c.buffers[mode]...), nil
}

// Classify converts markers into draw batches in a single pass. Each batch keeps the markers'
// relative input order, and layerIndex is copied onto all three batches.
//
// A marker whose orientation is degenerate is skipped: it contributes nothing to any batch, a
// warning is logged, and an *InvalidMarkerError for it is included in the returned error. The
// returned Batches are valid even when the error is non-nil.
func (c *Classifier) Classify(markers []PoseMarker, mode ScalingMode, layerIndex int) (*Batches, error) {
	if mode < 0 || mode >= numScalingModes {
		return nil, errors.Errorf("unknown scaling mode %v", mode)
	}
	buffer := c.buffers[mode]
	out := newBatches(layerIndex)

	var errs error
	for i, m := range markers {
		q, err := spatialmath.NormalizeQuaternion(m.Pose.Orientation)
		if err != nil {
			c.logger.Warnw("skipping marker", "index", i, "error", err)
			errs = multierr.Append(errs, &InvalidMarkerError{Index: i, Err: err})
			continue
		}
		rs := m.Settings.Resolve()

		if rs.OutlineBuffer {
			out.Outlines.Polygons = append(out.Outlines.Polygons, FilledPolygon{
				Pose:            m.Pose,
				InteractionData: m.InteractionData,
				Points:          buffer,
				Color:           OutlineBufferColor,
			})
		}

		switch rs.Variant {
		case VariantOutline:
			color := DefaultOutlineColor
			if rs.OverrideColor != nil {
				color = *rs.OverrideColor
			}
			out.Outlines.Polygons = append(out.Outlines.Polygons, FilledPolygon{
				Pose:            m.Pose,
				InteractionData: m.InteractionData,
				Points:          baselineOutline,
				Color:           color,
			})
		case VariantFreight100, VariantFreight500, VariantFreight1500:
			key, _ := rs.Variant.ModelKey()
			out.Models.Instances = append(out.Models.Instances, ModelInstance{
				ModelKey:        key,
				Pose:            m.Pose,
				Alpha:           rs.Alpha,
				InteractionData: m.InteractionData,
			})
		default:
			out.Arrows.Arrows = append(out.Arrows.Arrows, newArrow(m, q, rs))
		}
	}
	return out, errs
}
