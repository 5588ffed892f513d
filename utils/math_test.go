package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestMath(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, RadToDeg(DegToRad(42)), test.ShouldAlmostEqual, 42)
	test.That(t, Float64AlmostEqual(1, 1+1e-12, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, IsFinite(1), test.ShouldBeTrue)
	test.That(t, IsFinite(math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
}
