package markers

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"go.viam.com/markerviz/spatialmath"
	"go.viam.com/markerviz/utils"
)

type rawMarker struct {
	Pose            *spatialmath.Pose      `json:"pose"`
	Color           RGBA                   `json:"color"`
	Scale           Scale                  `json:"scale"`
	Settings        map[string]interface{} `json:"settings"`
	InteractionData interface{}            `json:"interactionData"`
}

// DecodeMarkers reads a JSON or JSON5 array of markers whose settings are untyped topic settings.
// A marker without a pose sits at the origin with no rotation.
func DecodeMarkers(r io.Reader) ([]PoseMarker, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read markers")
	}
	data, err = utils.NormalizeJSON5(data)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode markers")
	}
	var raw []rawMarker
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unable to decode markers")
	}
	markers := make([]PoseMarker, len(raw))
	for i, rm := range raw {
		settings, err := DecodeSettings(rm.Settings)
		if err != nil {
			return nil, errors.Wrapf(err, "marker %d", i)
		}
		pose := spatialmath.NewZeroPose()
		if rm.Pose != nil {
			pose = *rm.Pose
		}
		markers[i] = PoseMarker{
			Pose:            pose,
			Color:           rm.Color,
			Scale:           rm.Scale,
			Settings:        settings,
			InteractionData: rm.InteractionData,
		}
	}
	return markers, nil
}
