// Package spatialmath defines spatial mathematical operations on poses and orientations.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/markerviz/utils"
)

// ErrInvalidOrientation is returned when a quaternion does not describe a rotation.
var ErrInvalidOrientation = errors.New("invalid orientation")

// quaternions with a norm below this are considered zero-length.
const quatEpsilon = 1e-12

// NewZeroOrientation returns a quaternion which signifies no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// NormalizeQuaternion returns the unit quaternion pointing the same way as q. Quaternions that are
// zero-length or contain NaN/Inf components cannot be normalized and yield ErrInvalidOrientation.
func NormalizeQuaternion(q quat.Number) (quat.Number, error) {
	if quat.IsNaN(q) || quat.IsInf(q) {
		return quat.Number{}, errors.Wrapf(ErrInvalidOrientation, "non-finite quaternion %v", q)
	}
	norm := quat.Abs(q)
	if norm < quatEpsilon {
		return quat.Number{}, errors.Wrapf(ErrInvalidOrientation, "zero-length quaternion %v", q)
	}
	if norm == 1 {
		return q, nil
	}
	return quat.Scale(1/norm, q), nil
}

// RotateVector rotates v by the unit quaternion q, computing q * v * q^-1.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage,
// so q and -q are treated as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return componentsAlmostEqual(a, b, tol) || componentsAlmostEqual(a, Flip(b), tol)
}

func componentsAlmostEqual(a, b quat.Number, tol float64) bool {
	return utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuatFromYaw returns the rotation of yaw radians about the +Z axis.
func QuatFromYaw(yaw float64) quat.Number {
	q := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 0, 1})
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// Yaw returns the heading of the unit quaternion q about +Z, in radians within [-pi, pi].
func Yaw(q quat.Number) float64 {
	return math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
}
