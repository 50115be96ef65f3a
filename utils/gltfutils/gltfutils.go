package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
)

const Generator = "scrap_remaster"

func NewDocument() *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator
	return doc
}

// AddMeshNode attaches mesh to the root scene through a new node
func AddMeshNode(doc *gltf.Document, name string, mesh uint32) uint32 {
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(mesh),
	})
	node := uint32(len(doc.Nodes) - 1)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, node)
	return node
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
