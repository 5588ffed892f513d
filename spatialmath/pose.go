package spatialmath

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/markerviz/utils"
)

// Pose is the placement of a rigid body in 3D space: a position and an orientation quaternion.
// The orientation is not required to be normalized; consumers normalize it before rotating.
type Pose struct {
	Point       r3.Vector
	Orientation quat.Number
}

// NewPose returns a pose at the given point with the given orientation.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return Pose{Point: point, Orientation: orientation}
}

// NewPoseFromPoint returns a pose at the given point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{Point: point, Orientation: NewZeroOrientation()}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return NewPoseFromPoint(r3.Vector{})
}

// PointJSON is the JSON form of a point, {"x", "y", "z"}.
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPointJSON returns the JSON form of v.
func NewPointJSON(v r3.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y, Z: v.Z}
}

// NewPointsJSON returns the JSON form of each of vs.
func NewPointsJSON(vs []r3.Vector) []PointJSON {
	out := make([]PointJSON, len(vs))
	for i, v := range vs {
		out[i] = NewPointJSON(v)
	}
	return out
}

type jsonQuaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

type jsonPose struct {
	Position    PointJSON       `json:"position"`
	Orientation *jsonQuaternion `json:"orientation,omitempty"`
	YawDeg      *float64        `json:"yaw_deg,omitempty"`
	AxisAngle   *R4AA           `json:"axis_angle,omitempty"`
}

// MarshalJSON encodes the pose as {"position": {x,y,z}, "orientation": {x,y,z,w}}.
func (p Pose) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPose{
		Position: NewPointJSON(p.Point),
		Orientation: &jsonQuaternion{
			X: p.Orientation.Imag,
			Y: p.Orientation.Jmag,
			Z: p.Orientation.Kmag,
			W: p.Orientation.Real,
		},
	})
}

// UnmarshalJSON decodes a pose. The rotation is read from at most one of "orientation" (a
// quaternion), "yaw_deg" (degrees about +Z) and "axis_angle" (radians). None of them means no rotation.
func (p *Pose) UnmarshalJSON(data []byte) error {
	var jp jsonPose
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	p.Point = r3.Vector{X: jp.Position.X, Y: jp.Position.Y, Z: jp.Position.Z}

	set := 0
	for _, given := range []bool{jp.Orientation != nil, jp.YawDeg != nil, jp.AxisAngle != nil} {
		if given {
			set++
		}
	}
	if set > 1 {
		return errors.New(`only one of "orientation", "yaw_deg" and "axis_angle" may be set`)
	}

	switch {
	case jp.Orientation != nil:
		p.Orientation = quat.Number{
			Real: jp.Orientation.W,
			Imag: jp.Orientation.X,
			Jmag: jp.Orientation.Y,
			Kmag: jp.Orientation.Z,
		}
	case jp.YawDeg != nil:
		p.Orientation = QuatFromYaw(utils.DegToRad(*jp.YawDeg))
	case jp.AxisAngle != nil:
		p.Orientation = jp.AxisAngle.ToQuat()
	default:
		p.Orientation = NewZeroOrientation()
	}
	return nil
}
