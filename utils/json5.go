package utils

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// NormalizeJSON5 converts hand-written JSON5 (comments, unquoted keys, trailing commas) into plain
// JSON so it can be decoded into types with their own UnmarshalJSON. Numbers pass through float64.
func NormalizeJSON5(data []byte) ([]byte, error) {
	var v interface{}
	if err := json5.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "invalid JSON5")
	}
	return json.Marshal(v)
}
