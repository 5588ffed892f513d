package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/markerviz/config"
	"go.viam.com/markerviz/logging"
	"go.viam.com/markerviz/markers"
	"go.viam.com/markerviz/models"
	"go.viam.com/markerviz/spatialmath"
)

// setup loads the config named by the --config flag, or the defaults, and builds the logger all
// actions share. Logs go to the configured log file or to the app's ErrWriter, so that Writer
// only carries results. The returned func must be called once the action is done.
func setup(c *cli.Context) (*config.Config, logging.Logger, func(), error) {
	cfg := config.NewDefault()
	if path := c.String(flagConfig); path != "" {
		var err error
		cfg, err = config.Read(path)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "error reading config %q", path)
		}
	}

	level := logging.INFO
	if cfg.LogLevel != nil {
		level = *cfg.LogLevel
	}
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	if cfg.LogFile == "" {
		logger := logging.NewWriterLogger("markerviz", c.App.ErrWriter, level)
		return cfg, logger, func() { _ = logger.Sync() }, nil
	}
	logger, closer := logging.NewFileLogger("markerviz", cfg.LogFile, level)
	return cfg, logger, func() {
		if err := multierr.Combine(logger.Sync(), closer.Close()); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error closing log file: %v\n", err)
		}
	}, nil
}

// ClassifyAction is the corresponding Action for 'classify'.
func ClassifyAction(c *cli.Context) error {
	cfg, logger, done, err := setup(c)
	if err != nil {
		return err
	}
	defer done()

	var registry *models.Registry
	if c.Bool(flagLoadModels) {
		registry, err = openRegistry(cfg, logger.Sublogger("models"))
		if err != nil {
			return err
		}
		defer registry.Close()
	}

	var in io.Reader = c.App.Reader
	if path := c.String(flagMarkers); path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "error reading markers")
		}
		in = bytes.NewReader(data)
	}
	ms, err := markers.DecodeMarkers(in)
	if err != nil {
		return err
	}

	mode := cfg.ScalingMode()
	if c.IsSet(flagUpdatedScaling) {
		mode = markers.ScalingModeFromToggle(c.Bool(flagUpdatedScaling))
	}
	classifier, err := markers.NewClassifier(cfg.Scaling, logger.Sublogger("classifier"))
	if err != nil {
		return err
	}
	batches, classifyErr := classifier.Classify(ms, mode, c.Int(flagLayer))
	if batches == nil || (classifyErr != nil && c.Bool(flagStrict)) {
		return classifyErr
	}
	if classifyErr != nil {
		logger.Warnw("markers skipped", "count", len(multierr.Errors(classifyErr)))
	}
	logger.Debugw("classified markers",
		"mode", mode,
		"outlines", len(batches.Outlines.Polygons),
		"models", len(batches.Models.Instances),
		"arrows", len(batches.Arrows.Arrows))

	if registry != nil {
		if err := loadModels(c, registry, logger.Sublogger("models"), batches); err != nil {
			return err
		}
	}
	switch format := c.String(flagFormat); format {
	case formatJSON:
		return printJSON(c.App.Writer, batches)
	case formatTable:
		_, err := fmt.Fprintln(c.App.Writer, batches.Table())
		return err
	default:
		return errors.Errorf("--%s must be %q or %q, got %q", flagFormat, formatJSON, formatTable, format)
	}
}

// openRegistry returns a models.Registry over the configured model source and starts
// prefetching the configured models in the background.
func openRegistry(cfg *config.Config, logger logging.Logger) (*models.Registry, error) {
	fetcher, err := cfg.Models.NewFetcher()
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", flagLoadModels)
	}
	prefetch, err := cfg.Models.PrefetchKeys()
	if err != nil {
		return nil, err
	}
	registry := models.NewRegistry(fetcher, logger)
	registry.Prefetch(prefetch...)
	return registry, nil
}

// loadModels waits for every mesh referenced by batches. Prefetches of other models are left
// to the registry.
func loadModels(c *cli.Context, registry *models.Registry, logger logging.Logger, batches *markers.Batches) error {
	keys := lo.Uniq(lo.Map(batches.Models.Instances, func(inst markers.ModelInstance, _ int) models.Key {
		return inst.ModelKey
	}))
	if err := registry.LoadAll(c.Context, keys...); err != nil {
		return err
	}
	for _, key := range keys {
		mesh, _ := registry.Get(key)
		logger.Infow("model loaded", "model", key, "nodes", len(mesh.Document.Nodes))
	}
	return nil
}

// OutlineAction is the corresponding Action for 'outline'.
func OutlineAction(c *cli.Context) error {
	cfg, logger, done, err := setup(c)
	if err != nil {
		return err
	}
	defer done()

	var mode markers.ScalingMode
	switch c.String(flagScaling) {
	case "":
		return printJSON(c.App.Writer, spatialmath.NewPointsJSON(markers.BaselineOutline()))
	case markers.ScalingOriginal.String():
		mode = markers.ScalingOriginal
	case markers.ScalingUpdated.String():
		mode = markers.ScalingUpdated
	default:
		return errors.Errorf("--%s must be %q or %q, got %q",
			flagScaling, markers.ScalingOriginal, markers.ScalingUpdated, c.String(flagScaling))
	}

	classifier, err := markers.NewClassifier(cfg.Scaling, logger.Sublogger("classifier"))
	if err != nil {
		return err
	}
	buffer, err := classifier.OutlineBuffer(mode)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, spatialmath.NewPointsJSON(buffer))
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	return printJSON(c.App.Writer, markers.SettingsSchema)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
