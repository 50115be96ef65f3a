package scrap

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scrap_remaster/d3d"
)

type Vertex struct {
	Position  mgl32.Vec3
	RHW       float32   `json:",omitempty"`
	Weights   []float32 `json:",omitempty"`
	Normal    mgl32.Vec3
	PointSize float32 `json:",omitempty"`
	Diffuse   color.NRGBA
	Specular  color.NRGBA
	TexCoords [][]float32 `json:",omitempty"`
}

func floats(b []byte, n int) []float32 {
	r := make([]float32, n)
	for i := range r {
		r[i] = f32(b[i*4:])
	}
	return r
}

// D3DCOLOR is 0xAARRGGBB, so bytes go B G R A
func d3dColor(b []byte) color.NRGBA {
	return color.NRGBA{R: b[2], G: b[1], B: b[0], A: b[3]}
}

// DecodeVertex reads one record, len(record) must cover layout.Size()
func DecodeVertex(layout d3d.Layout, record []byte) Vertex {
	var v Vertex
	for _, e := range layout.Elements {
		b := record[e.Offset : e.Offset+e.Size]
		switch e.Usage {
		case d3d.USAGE_POSITION:
			v.Position = mgl32.Vec3{f32(b), f32(b[4:]), f32(b[8:])}
		case d3d.USAGE_POSITIONT:
			v.Position = mgl32.Vec3{f32(b), f32(b[4:]), f32(b[8:])}
			v.RHW = f32(b[12:])
		case d3d.USAGE_BLENDWEIGHT:
			v.Weights = floats(b, e.Components)
		case d3d.USAGE_NORMAL:
			v.Normal = mgl32.Vec3{f32(b), f32(b[4:]), f32(b[8:])}
		case d3d.USAGE_PSIZE:
			v.PointSize = f32(b)
		case d3d.USAGE_COLOR:
			if e.Index == 0 {
				v.Diffuse = d3dColor(b)
			} else {
				v.Specular = d3dColor(b)
			}
		case d3d.USAGE_TEXCOORD:
			v.TexCoords = append(v.TexCoords, floats(b, e.Components))
		}
	}
	return v
}
