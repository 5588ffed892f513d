package markers

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/markerviz/spatialmath"
)

func TestRGBAHex(t *testing.T) {
	test.That(t, RGBA{R: 1, A: 0.5}.Hex(), test.ShouldEqual, "#ff0000@0.50")
	test.That(t, RGBA{R: 2, G: -1, B: 1, A: 1}.Hex(), test.ShouldEqual, "#ff00ff@1.00")
}

func TestBatchesTable(t *testing.T) {
	c := newTestClassifier(t)
	pose := spatialmath.NewPose(r3.Vector{X: 1, Y: 2}, spatialmath.QuatFromYaw(math.Pi/2))
	batches, err := c.Classify([]PoseMarker{
		{Pose: pose, Settings: &Settings{ModelType: ModelTypeFreight1500Model, AddCarOutlineBuffer: true}},
		{Pose: pose, Color: RGBA{G: 1, A: 1}},
	}, ScalingOriginal, 7)
	test.That(t, err, test.ShouldBeNil)

	out := batches.Table()
	for _, want := range []string{"BATCH", "outlines", "models", "arrows", "freight1500, alpha 1.00", "X:1.00, Y:2.00, Z:0.00", "90.0", "#00ff00@1.00", "7"} {
		test.That(t, out, test.ShouldContainSubstring, want)
	}
	test.That(t, strings.Count(out, "\n"), test.ShouldBeGreaterThan, 5)
}
