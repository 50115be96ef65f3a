package scrap

import (
	"github.com/mogaika/scrap_remaster/d3d"
)

type VertexBufferInfo struct {
	FormatId      uint32
	FVF           uint32
	Format        string
	Stride        int
	DecodedStride int
	Vertices      uint32
	Layout        d3d.Layout
}

type MeshInfo struct {
	Name      string
	Offset    int
	Triangles int
	Buffer    *VertexBufferInfo `json:",omitempty" yaml:",omitempty"`
	Child     *MeshInfo         `json:",omitempty" yaml:",omitempty"`
}

func (l *LFVF) Info() *VertexBufferInfo {
	return &VertexBufferInfo{
		FormatId:      l.FormatId,
		FVF:           uint32(l.FVF),
		Format:        l.FVF.String(),
		Stride:        l.Stride(),
		DecodedStride: l.FVF.VertexSize(),
		Vertices:      l.NumVertices,
		Layout:        l.Layout(),
	}
}

func (m *MD3D) Info() *MeshInfo {
	info := &MeshInfo{
		Name:      m.Name,
		Offset:    m.Offset,
		Triangles: len(m.Triangles),
	}
	if m.Vertices != nil {
		info.Buffer = m.Vertices.Info()
	}
	if m.Child != nil {
		info.Child = m.Child.Info()
	}
	return info
}
