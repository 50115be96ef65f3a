package scrap

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/scrap_remaster/d3d"
	"github.com/mogaika/scrap_remaster/utils/gltfutils"
)

func (m *MD3D) exportGLTFMesh(doc *gltf.Document) (uint32, error) {
	if m.Vertices == nil || m.Vertices.NumVertices == 0 {
		return 0, errors.Errorf("Mesh %q has no vertices", m.Name)
	}
	layout := m.Vertices.Layout()
	if _, ok := layout.Find(d3d.USAGE_POSITION, 0); !ok {
		return 0, errors.Errorf("Mesh %q vertex format %v has no untransformed position", m.Name, m.Vertices.FVF)
	}

	vertices, err := m.Vertices.Vertices()
	if err != nil {
		return 0, errors.Wrapf(err, "Mesh %q", m.Name)
	}
	indices, err := m.Indices()
	if err != nil {
		return 0, errors.Wrapf(err, "Mesh %q", m.Name)
	}

	attributes := make(map[string]uint32)
	{
		positions := make([][3]float32, len(vertices))
		for i := range vertices {
			positions[i] = vertices[i].Position
		}
		attributes["POSITION"] = modeler.WritePosition(doc, positions)
	}

	if m.Vertices.FVF.HasNormal() {
		normals := make([][3]float32, len(vertices))
		for i := range vertices {
			normal := vertices[i].Normal
			if normal.Len() > 0.5 {
				normal = normal.Normalize()
			}
			normals[i] = normal
		}
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
	}

	if m.Vertices.FVF.HasDiffuse() {
		colors := make([][4]uint8, len(vertices))
		for i := range vertices {
			c := vertices[i].Diffuse
			colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
		}
		attributes["COLOR_0"] = modeler.WriteColor(doc, colors)
	}

	// glTF only knows 2 component texture coordinates
	uvLayer := 0
	for iSet := 0; iSet < m.Vertices.FVF.TexCoordCount(); iSet++ {
		if m.Vertices.FVF.TexCoordComponents(iSet) != 2 {
			continue
		}
		uvs := make([][2]float32, len(vertices))
		for i := range vertices {
			uv := vertices[i].TexCoords[iSet]
			uvs[i] = [2]float32{uv[0], uv[1]}
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", uvLayer)] = modeler.WriteTextureCoord(doc, uvs)
		uvLayer++
	}

	indicesAccessor := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{
			{
				Indices:    &indicesAccessor,
				Attributes: attributes,
				Material:   gltf.Index(0),
			},
		},
	})
	return uint32(len(doc.Meshes) - 1), nil
}

// ExportGLTF writes every mesh and its children as separate meshes of one document
func ExportGLTF(meshes []*MD3D) (*gltf.Document, error) {
	doc := gltfutils.NewDocument()
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "default",
		DoubleSided: true,
	})

	iMesh := 0
	for _, root := range meshes {
		for _, mesh := range root.Meshes() {
			index, err := mesh.exportGLTFMesh(doc)
			if err != nil {
				return nil, errors.Wrapf(err, "Failed to export mesh %d", iMesh)
			}
			gltfutils.AddMeshNode(doc, mesh.Name, index)
			iMesh++
		}
	}
	return doc, nil
}

func (m *MD3D) ExportGLTF() (*gltf.Document, error) {
	return ExportGLTF([]*MD3D{m})
}
