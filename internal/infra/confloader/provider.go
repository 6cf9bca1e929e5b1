package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// errReadBytes is returned when ReadBytes is called on a map provider.
var errReadBytes = errors.New("confloader: map provider does not support ReadBytes")

// mapProvider is a koanf provider over a map of dotted keys.
type mapProvider map[string]any

// ReadBytes is not supported; koanf calls Read instead.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytes
}

// Read expands dotted keys into nested maps.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(map[string]any(m), "."), nil
}
