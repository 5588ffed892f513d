package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/markerviz/utils"
)

// Read reads a config from the given file. Environment variables referenced as $VAR or ${VAR}
// are expanded before parsing.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from. The config may be written as JSON5.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	cfg := NewDefault()
	cfg.ConfigFilePath = originalPath

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err = utils.NormalizeJSON5(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
