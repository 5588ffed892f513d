package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/markerviz/models"
)

const testMarkers = `[
	{"pose": {"position": {"x": 1, "y": 2, "z": 0}, "orientation": {"x": 0, "y": 0, "z": 0, "w": 1}}},
	{"settings": {"modelType": "freight500-model", "alpha": 0.5}, "interactionData": {"id": "m1"}},
	{"settings": {"modelType": "freight100-outline", "addCarOutlineBuffer": true, "overrideColor": "#ff0000"}},
	{"pose": {"orientation": {"x": 0, "y": 0, "z": 0, "w": 0}}}
]`

type batchCounts struct {
	Outlines struct {
		LayerIndex int               `json:"layerIndex"`
		Polygons   []json.RawMessage `json:"polygons"`
	} `json:"outlines"`
	Models struct {
		Instances []struct {
			ModelKey string  `json:"modelKey"`
			Alpha    float64 `json:"alpha"`
		} `json:"instances"`
	} `json:"models"`
	Arrows struct {
		Arrows []json.RawMessage `json:"arrows"`
	} `json:"arrows"`
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"markerviz"}, args...))
	return out.String(), errOut.String(), err
}

func TestClassifyFromStdin(t *testing.T) {
	out, errOut, err := runApp(t, testMarkers, "classify", "--layer", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "markers skipped")

	var got batchCounts
	test.That(t, json.Unmarshal([]byte(out), &got), test.ShouldBeNil)
	test.That(t, got.Outlines.LayerIndex, test.ShouldEqual, 3)
	test.That(t, got.Outlines.Polygons, test.ShouldHaveLength, 2)
	test.That(t, got.Models.Instances, test.ShouldHaveLength, 1)
	test.That(t, got.Models.Instances[0].ModelKey, test.ShouldEqual, "freight500")
	test.That(t, got.Models.Instances[0].Alpha, test.ShouldEqual, 0.5)
	test.That(t, got.Arrows.Arrows, test.ShouldHaveLength, 1)
	test.That(t, out, test.ShouldNotContainSubstring, `"X"`)
}

func TestClassifyStrict(t *testing.T) {
	_, _, err := runApp(t, testMarkers, "classify", "--strict")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "marker 3")
}

func TestClassifyFromFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	markersPath := writeFile(t, dir, "markers.json", `[{"settings": {"addCarOutlineBuffer": true}}]`)
	configPath := writeFile(t, dir, "markerviz.json", `{"updated_pose_error_scaling": true, "log_level": "error"}`)

	updated, errOut, err := runApp(t, "", "--config", configPath, "classify", "--markers", markersPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)

	original, _, err := runApp(t, "", "--config", configPath, "classify", "--markers", markersPath,
		"--updated-scaling=false")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, updated, test.ShouldNotEqual, original)

	_, _, err = runApp(t, "", "classify", "--markers", filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, "", "--config", filepath.Join(dir, "missing.json"), "classify")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "error reading config")
}

func TestClassifyLoadModels(t *testing.T) {
	modelDir := t.TempDir()
	writeFile(t, modelDir, models.AssetName(models.Freight500),
		`{"asset": {"version": "2.0"}, "nodes": [{"name": "body", "translation": [1, 0, 0]}]}`)
	configPath := writeFile(t, t.TempDir(), "markerviz.json", `{"models": {"dir": "${MARKERVIZ_TEST_MODELS}"}}`)
	t.Setenv("MARKERVIZ_TEST_MODELS", modelDir)

	_, errOut, err := runApp(t, testMarkers, "--config", configPath, "classify", "--load-models")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "model loaded")

	_, _, err = runApp(t, `[{"settings": {"modelType": "freight1500-model"}}]`,
		"--config", configPath, "classify", "--load-models")
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, testMarkers, "classify", "--load-models")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no model source configured")
}

func TestClassifyPrefetchDoesNotBlock(t *testing.T) {
	modelDir := t.TempDir()
	writeFile(t, modelDir, models.AssetName(models.Freight500),
		`{"asset": {"version": "2.0"}, "nodes": [{"name": "body"}]}`)
	configPath := writeFile(t, t.TempDir(), "markerviz.json",
		`{"models": {"dir": "`+modelDir+`", "prefetch": ["freight1500", "freight500"]}}`)

	// freight1500 is missing from the model dir but no marker references it.
	out, errOut, err := runApp(t, testMarkers, "--config", configPath, "classify", "--load-models")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "model loaded")
	var counts batchCounts
	test.That(t, json.Unmarshal([]byte(out), &counts), test.ShouldBeNil)
	test.That(t, counts.Models.Instances, test.ShouldHaveLength, 1)

	out, _, err = runApp(t, `[]`, "--config", configPath, "classify", "--load-models")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, json.Unmarshal([]byte(out), &counts), test.ShouldBeNil)
}

func TestOutline(t *testing.T) {
	type point struct{ X, Y, Z float64 }

	out, _, err := runApp(t, "", "outline")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"x": `)
	test.That(t, out, test.ShouldNotContainSubstring, `"X"`)
	var baseline []point
	test.That(t, json.Unmarshal([]byte(out), &baseline), test.ShouldBeNil)
	test.That(t, baseline, test.ShouldNotBeEmpty)

	out, _, err = runApp(t, "", "outline", "--scaling", "updated")
	test.That(t, err, test.ShouldBeNil)
	var scaled []point
	test.That(t, json.Unmarshal([]byte(out), &scaled), test.ShouldBeNil)
	test.That(t, scaled, test.ShouldHaveLength, len(baseline))
	test.That(t, scaled, test.ShouldNotResemble, baseline)

	_, _, err = runApp(t, "", "outline", "--scaling", "huge")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestClassifyTableFormat(t *testing.T) {
	out, _, err := runApp(t, testMarkers, "classify", "--format", "table")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "freight500, alpha 0.50")
	test.That(t, out, test.ShouldContainSubstring, "#ff0000@1.00")

	_, _, err = runApp(t, testMarkers, "classify", "--format", "yaml")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchema(t *testing.T) {
	out, _, err := runApp(t, "", "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"addCarOutlineBuffer"`)
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "markerviz.log")
	configPath := writeFile(t, dir, "markerviz.json", `{"log_file": "`+logPath+`"}`)

	_, errOut, err := runApp(t, testMarkers, "--config", configPath, "classify")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)

	data, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "markers skipped")
}
