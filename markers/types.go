// Package markers turns pose markers into the outline polygons, model instances and arrows that
// the 3D view draws for them.
package markers

import (
	"go.viam.com/markerviz/spatialmath"
)

// RGBA is a color with float components in [0, 1].
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Scale holds the per-axis scale of a marker. For arrows X is the shaft width, Y the head width
// and Z the head length.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

var (
	// OutlineBufferColor fills the scaled outline drawn around markers with AddCarOutlineBuffer.
	OutlineBufferColor = RGBA{R: 0.6666, G: 0.6666, B: 0.6666, A: 1}
	// DefaultOutlineColor fills freight100 outlines without an override color.
	DefaultOutlineColor = RGBA{R: 0.3313, G: 0.3313, B: 0.3375, A: 1}
)

// PoseMarker is a single pose to draw, along with its default color, scale and optional settings.
// InteractionData is carried through to the output unmodified.
//
// Pose must be set. The zero spatialmath.Pose has a zero-length quaternion, so Classify skips the
// marker as invalid; use spatialmath.NewZeroPose() for a marker at the origin without rotation.
// DecodeMarkers already does this for markers without a pose.
type PoseMarker struct {
	Pose            spatialmath.Pose `json:"pose"`
	Color           RGBA             `json:"color"`
	Scale           Scale            `json:"scale"`
	Settings        *Settings        `json:"settings,omitempty"`
	InteractionData interface{}      `json:"interactionData,omitempty"`
}
