package models

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// Mesh is a decoded vehicle model ready to hand to the renderer.
type Mesh struct {
	Key      Key
	Document *gltf.Document
}

// decodeMesh parses a .glb or .gltf payload. The root node's translation is zeroed so the mesh
// pivots about its rear axle instead of its authored origin.
func decodeMesh(key Key, data []byte) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s model", key)
	}
	if len(doc.Nodes) == 0 {
		return nil, errors.Errorf("%s model has no nodes", key)
	}
	doc.Nodes[0].Translation = [3]float64{}
	return &Mesh{Key: key, Document: doc}, nil
}
