package markers

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/markerviz/spatialmath"
)

// Default arrow endpoints, as offsets along the pose's forward axis. The arrow is 4.70 long and
// starts 0.88 behind the pose, matching the freight100 footprint from rear bumper to front bumper.
const (
	DefaultTailOffset = -0.88
	DefaultTipOffset  = 3.82
)

// forward is the local axis an arrow points along before the pose's rotation is applied.
var forward = r3.Vector{X: 1}

// ArrowPoints returns the tail and tip of an arrow placed at pose, offset along its forward axis.
// It fails with spatialmath.ErrInvalidOrientation if the pose's orientation cannot be normalized.
func ArrowPoints(pose spatialmath.Pose, tailOffset, tipOffset float64) ([2]r3.Vector, error) {
	q, err := spatialmath.NormalizeQuaternion(pose.Orientation)
	if err != nil {
		return [2]r3.Vector{}, err
	}
	return arrowPoints(pose.Point, q, tailOffset, tipOffset), nil
}

// arrowPoints expects q to already be a unit quaternion.
func arrowPoints(pos r3.Vector, q quat.Number, tailOffset, tipOffset float64) [2]r3.Vector {
	dir := spatialmath.RotateVector(q, forward)
	return [2]r3.Vector{
		pos.Add(dir.Mul(tailOffset)),
		pos.Add(dir.Mul(tipOffset)),
	}
}

// newArrow builds the arrow drawn for marker m. q is m's normalized orientation.
func newArrow(m PoseMarker, q quat.Number, rs ResolvedSettings) Arrow {
	color := m.Color
	if rs.OverrideColor != nil {
		color = *rs.OverrideColor
	}
	scale := m.Scale
	if rs.ShaftWidth != nil {
		scale.X = *rs.ShaftWidth
	}
	if rs.HeadWidth != nil {
		scale.Y = *rs.HeadWidth
	}
	if rs.HeadLength != nil {
		scale.Z = *rs.HeadLength
	}
	return Arrow{
		Pose:            m.Pose,
		Color:           color,
		Scale:           scale,
		Points:          arrowPoints(m.Pose.Point, q, rs.TailOffset, rs.TipOffset),
		InteractionData: m.InteractionData,
	}
}
