// Package config defines the structures to configure the marker pipeline and its model loader.
package config

import (
	"github.com/pkg/errors"

	"go.viam.com/markerviz/logging"
	"go.viam.com/markerviz/markers"
	"go.viam.com/markerviz/models"
	"go.viam.com/markerviz/utils"
)

// Config describes how markers are classified and where vehicle models are loaded from.
type Config struct {
	ConfigFilePath string `json:"-"`

	// Scaling holds the outline buffer presets. Presets left out of the file keep their defaults.
	Scaling markers.ScalingPresets `json:"scaling"`
	// UpdatedPoseErrorScaling is the feature toggle selecting the updated preset.
	UpdatedPoseErrorScaling bool `json:"updated_pose_error_scaling,omitempty"`

	Models   ModelsConfig   `json:"models"`
	LogLevel *logging.Level `json:"log_level,omitempty"`
	// LogFile, if set, receives logs instead of stderr. The file is rotated as it grows.
	LogFile string `json:"log_file,omitempty"`
}

// NewDefault returns the config used when no file is given.
func NewDefault() *Config {
	return &Config{Scaling: markers.DefaultScalingPresets()}
}

// Validate returns an error if the config is not usable.
func (c *Config) Validate() error {
	if err := c.Scaling.Original.Validate(); err != nil {
		return utils.NewConfigValidationError("scaling.original", err)
	}
	if err := c.Scaling.Updated.Validate(); err != nil {
		return utils.NewConfigValidationError("scaling.updated", err)
	}
	return c.Models.Validate("models")
}

// ScalingMode returns the outline buffer scaling selected by the feature toggle.
func (c *Config) ScalingMode() markers.ScalingMode {
	return markers.ScalingModeFromToggle(c.UpdatedPoseErrorScaling)
}

// ModelsConfig says where vehicle meshes are fetched from. At most one of Dir and BaseURL may be set.
// Prefetch names models to start loading in the background as soon as the source is opened, whether
// or not any marker references them; a failed prefetch is logged and never fails a command.
type ModelsConfig struct {
	Dir      string   `json:"dir,omitempty"`
	BaseURL  string   `json:"base_url,omitempty"`
	Prefetch []string `json:"prefetch,omitempty"`
}

// Validate returns an error if the models config is not usable.
func (mc *ModelsConfig) Validate(path string) error {
	if mc.Dir != "" && mc.BaseURL != "" {
		return utils.NewConfigValidationError(path, errors.New(`only one of "dir" and "base_url" may be set`))
	}
	if len(mc.Prefetch) > 0 && !mc.Enabled() {
		return utils.NewConfigValidationError(path, errors.New(`"prefetch" requires "dir" or "base_url"`))
	}
	if _, err := mc.PrefetchKeys(); err != nil {
		return utils.NewConfigValidationError(path+".prefetch", err)
	}
	return nil
}

// Enabled reports whether a model source is configured.
func (mc *ModelsConfig) Enabled() bool {
	return mc.Dir != "" || mc.BaseURL != ""
}

// PrefetchKeys parses the models to prefetch.
func (mc *ModelsConfig) PrefetchKeys() ([]models.Key, error) {
	keys := make([]models.Key, 0, len(mc.Prefetch))
	for _, name := range mc.Prefetch {
		key, err := models.ParseKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// NewFetcher returns the Fetcher for the configured model source.
func (mc *ModelsConfig) NewFetcher() (models.Fetcher, error) {
	switch {
	case mc.Dir != "":
		return models.NewDirFetcher(mc.Dir), nil
	case mc.BaseURL != "":
		return models.NewHTTPFetcher(mc.BaseURL, nil)
	default:
		return nil, errors.New("no model source configured")
	}
}
