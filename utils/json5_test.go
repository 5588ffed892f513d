package utils

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestNormalizeJSON5(t *testing.T) {
	out, err := NormalizeJSON5([]byte(`{
		// models are read from the local cache
		models: {dir: "/srv/models",},
		scaling: {updated: {x: 2.5, y: 1}},
	}`))
	test.That(t, err, test.ShouldBeNil)

	var decoded map[string]map[string]interface{}
	test.That(t, json.Unmarshal(out, &decoded), test.ShouldBeNil)
	test.That(t, decoded["models"]["dir"], test.ShouldEqual, "/srv/models")
	test.That(t, decoded["scaling"]["updated"], test.ShouldResemble, map[string]interface{}{"x": 2.5, "y": 1.0})

	out, err = NormalizeJSON5([]byte(`[1, {"a": [true, null]}]`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `[1,{"a":[true,null]}]`)

	_, err = NormalizeJSON5([]byte(`{"scaling": `))
	test.That(t, err, test.ShouldNotBeNil)
}
