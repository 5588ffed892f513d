package markers

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/markerviz/models"
)

// ModelType is the modelType tag found in a topic's marker settings.
type ModelType string

// The recognized model types. Any other value, including the empty string, draws an arrow.
const (
	ModelTypeFreight100Outline ModelType = "freight100-outline"
	ModelTypeFreight100Model   ModelType = "freight100-model"
	ModelTypeFreight500Model   ModelType = "freight500-model"
	ModelTypeFreight1500Model  ModelType = "freight1500-model"
	ModelTypeArrow             ModelType = "arrow"
)

// Variant is the closed set of ways a marker can be drawn.
type Variant int

// The marker variants.
const (
	VariantArrow Variant = iota
	VariantOutline
	VariantFreight100
	VariantFreight500
	VariantFreight1500
)

// Variant returns the variant selected by the tag; unrecognized tags select VariantArrow.
func (mt ModelType) Variant() Variant {
	switch mt {
	case ModelTypeFreight100Outline:
		return VariantOutline
	case ModelTypeFreight100Model:
		return VariantFreight100
	case ModelTypeFreight500Model:
		return VariantFreight500
	case ModelTypeFreight1500Model:
		return VariantFreight1500
	case ModelTypeArrow:
		return VariantArrow
	default:
		return VariantArrow
	}
}

// ModelKey returns the mesh drawn for a model variant, or false for arrows and outlines.
func (v Variant) ModelKey() (models.Key, bool) {
	switch v {
	case VariantFreight100:
		return models.Freight100, true
	case VariantFreight500:
		return models.Freight500, true
	case VariantFreight1500:
		return models.Freight1500, true
	case VariantArrow, VariantOutline:
		return 0, false
	default:
		return 0, false
	}
}

func (v Variant) String() string {
	switch v {
	case VariantArrow:
		return "arrow"
	case VariantOutline:
		return "outline"
	case VariantFreight100, VariantFreight500, VariantFreight1500:
		key, _ := v.ModelKey()
		return key.String()
	default:
		return "unknown"
	}
}

// Size overrides arrow geometry. Nil fields keep the marker's own values.
type Size struct {
	ShaftWidth *float64 `json:"shaftWidth,omitempty"`
	HeadWidth  *float64 `json:"headWidth,omitempty"`
	HeadLength *float64 `json:"headLength,omitempty"`
	TailPoint  *float64 `json:"tailPoint,omitempty"`
	TipPoint   *float64 `json:"tipPoint,omitempty"`
}

// Settings are the sparse per-topic marker settings as edited by the user.
type Settings struct {
	ModelType           ModelType `json:"modelType,omitempty" jsonschema:"enum=freight100-outline,enum=freight100-model,enum=freight500-model,enum=freight1500-model,enum=arrow"`
	OverrideColor       *RGBA     `json:"overrideColor,omitempty"`
	AddCarOutlineBuffer bool      `json:"addCarOutlineBuffer,omitempty"`
	Alpha               *float64  `json:"alpha,omitempty" jsonschema:"minimum=0,maximum=1"`
	Size                *Size     `json:"size,omitempty"`
}

// ResolvedSettings is Settings with every default filled in.
type ResolvedSettings struct {
	Variant       Variant
	OverrideColor *RGBA
	OutlineBuffer bool
	Alpha         float64

	TailOffset float64
	TipOffset  float64
	ShaftWidth *float64
	HeadWidth  *float64
	HeadLength *float64
}

// Resolve fills in defaults. A nil receiver resolves to a default arrow.
func (s *Settings) Resolve() ResolvedSettings {
	rs := ResolvedSettings{
		Variant:    VariantArrow,
		Alpha:      1,
		TailOffset: DefaultTailOffset,
		TipOffset:  DefaultTipOffset,
	}
	if s == nil {
		return rs
	}

	rs.Variant = s.ModelType.Variant()
	rs.OverrideColor = s.OverrideColor
	rs.OutlineBuffer = s.AddCarOutlineBuffer
	// an alpha of 0 counts as unset
	if s.Alpha != nil && *s.Alpha != 0 {
		rs.Alpha = *s.Alpha
	}
	if size := s.Size; size != nil {
		if size.TailPoint != nil {
			rs.TailOffset = *size.TailPoint
		}
		if size.TipPoint != nil {
			rs.TipOffset = *size.TipPoint
		}
		rs.ShaftWidth = size.ShaftWidth
		rs.HeadWidth = size.HeadWidth
		rs.HeadLength = size.HeadLength
	}
	return rs
}

// DecodeSettings converts untyped topic settings, as stored by the settings editor, into Settings.
// Keys the pipeline does not use are ignored. Colors may be {r,g,b,a} maps or "#rrggbb" strings.
func DecodeSettings(raw map[string]interface{}) (*Settings, error) {
	if raw == nil {
		return nil, nil
	}
	var settings Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &settings,
		DecodeHook: mapstructure.DecodeHookFuncType(hexColorHook),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "invalid marker settings")
	}
	return &settings, nil
}

var rgbaType = reflect.TypeOf(RGBA{})

func hexColorHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != rgbaType || from.Kind() != reflect.String {
		return data, nil
	}
	hex, ok := data.(string)
	if !ok {
		return data, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid color %q", hex)
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
