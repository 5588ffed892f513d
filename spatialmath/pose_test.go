package spatialmath

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestPoseJSON(t *testing.T) {
	var p Pose
	err := json.Unmarshal([]byte(`{"position":{"x":1,"y":2,"z":3},"orientation":{"x":0,"y":0,"z":1,"w":0}}`), &p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Point, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, p.Orientation, test.ShouldResemble, quat.Number{Kmag: 1})

	out, err := json.Marshal(p)
	test.That(t, err, test.ShouldBeNil)
	var back Pose
	test.That(t, json.Unmarshal(out, &back), test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, p)

	err = json.Unmarshal([]byte(`{"position":{"x":4}}`), &p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Point, test.ShouldResemble, r3.Vector{X: 4})
	test.That(t, p.Orientation, test.ShouldResemble, NewZeroOrientation())

	err = json.Unmarshal([]byte(`{"position":{"x":1},"yaw_deg":90}`), &p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, QuaternionAlmostEqual(p.Orientation, QuatFromYaw(math.Pi/2), 1e-12), test.ShouldBeTrue)

	err = json.Unmarshal([]byte(`{"axis_angle":{"th":3.141592653589793,"x":1,"y":0,"z":0}}`), &p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, QuaternionAlmostEqual(p.Orientation, quat.Number{Imag: 1}, 1e-12), test.ShouldBeTrue)

	err = json.Unmarshal([]byte(`{"yaw_deg":90,"orientation":{"w":1}}`), &p)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "only one of")
}
