// Package models loads and caches the freight vehicle meshes drawn for model-instance markers.
package models

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Key identifies one of the supported vehicle meshes.
type Key int

// The supported vehicle meshes.
const (
	Freight100 Key = iota
	Freight500
	Freight1500
)

var keyNames = map[Key]string{
	Freight100:  "freight100",
	Freight500:  "freight500",
	Freight1500: "freight1500",
}

// Keys returns every supported key.
func Keys() []Key {
	return []Key{Freight100, Freight500, Freight1500}
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the supported keys.
func (k Key) Valid() bool {
	_, ok := keyNames[k]
	return ok
}

// ParseKey returns the key with the given name.
func ParseKey(name string) (Key, error) {
	keys := Keys()
	if i := slices.IndexFunc(keys, func(k Key) bool { return keyNames[k] == name }); i >= 0 {
		return keys[i], nil
	}
	return 0, errors.Errorf("unknown model %q", name)
}

// MarshalText encodes the key as its name.
func (k Key) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Errorf("unknown model key %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key from its name.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
