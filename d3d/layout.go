package d3d

import (
	"github.com/pkg/errors"
)

type Usage uint8

const (
	USAGE_POSITION Usage = iota
	USAGE_POSITIONT
	USAGE_BLENDWEIGHT
	USAGE_NORMAL
	USAGE_PSIZE
	USAGE_COLOR
	USAGE_TEXCOORD
)

var usageNames = [...]string{
	USAGE_POSITION:    "POSITION",
	USAGE_POSITIONT:   "POSITIONT",
	USAGE_BLENDWEIGHT: "BLENDWEIGHT",
	USAGE_NORMAL:      "NORMAL",
	USAGE_PSIZE:       "PSIZE",
	USAGE_COLOR:       "COLOR",
	USAGE_TEXCOORD:    "TEXCOORD",
}

func (u Usage) String() string {
	if int(u) < len(usageNames) {
		return usageNames[u]
	}
	return "UNKNOWN"
}

func (u Usage) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Usage) UnmarshalText(text []byte) error {
	for i, name := range usageNames {
		if name == string(text) {
			*u = Usage(i)
			return nil
		}
	}
	return errors.Errorf("Unknown usage %q", text)
}

// Element is one attribute inside a vertex record.
// Components is count of 4 byte values, colors are a single packed D3DCOLOR.
type Element struct {
	Usage      Usage `json:"usage" yaml:"usage"`
	Index      int   `json:"index" yaml:"index"`
	Offset     int   `json:"offset" yaml:"offset"`
	Size       int   `json:"size" yaml:"size"`
	Components int   `json:"components" yaml:"components"`
}

// Layout follows Direct3D declaration order: position, blend weights,
// normal, point size, diffuse, specular, texture sets.
// Specular is placed on FVF_SPECULAR, so Size() can differ from VertexSize
// when only one of FVF_SPECULAR and the sign bit is set.
type Layout struct {
	FVF      FVF       `json:"fvf" yaml:"fvf"`
	Elements []Element `json:"elements" yaml:"elements"`
}

func NewLayout(f FVF) Layout {
	l := Layout{FVF: f, Elements: make([]Element, 0, 6+f.TexCoordCount())}
	offset := 0
	add := func(usage Usage, index, components int) {
		size := components * 4
		l.Elements = append(l.Elements, Element{
			Usage:      usage,
			Index:      index,
			Offset:     offset,
			Size:       size,
			Components: components,
		})
		offset += size
	}

	switch f.Position() {
	case FVF_XYZ:
		add(USAGE_POSITION, 0, 3)
	case FVF_XYZRHW:
		add(USAGE_POSITIONT, 0, 4)
	case FVF_XYZB1, FVF_XYZB2, FVF_XYZB3, FVF_XYZB4, FVF_XYZB5:
		add(USAGE_POSITION, 0, 3)
		add(USAGE_BLENDWEIGHT, 0, f.BlendWeights())
	}
	if f.HasNormal() {
		add(USAGE_NORMAL, 0, 3)
	}
	if f.HasPointSize() {
		add(USAGE_PSIZE, 0, 1)
	}
	if f.HasDiffuse() {
		add(USAGE_COLOR, 0, 1)
	}
	if f.HasSpecular() {
		add(USAGE_COLOR, 1, 1)
	}
	for i := 0; i < f.TexCoordCount(); i++ {
		add(USAGE_TEXCOORD, i, f.TexCoordComponents(i))
	}
	return l
}

func (l Layout) Size() int {
	if len(l.Elements) == 0 {
		return 0
	}
	last := l.Elements[len(l.Elements)-1]
	return last.Offset + last.Size
}

func (l Layout) Find(usage Usage, index int) (Element, bool) {
	for _, e := range l.Elements {
		if e.Usage == usage && e.Index == index {
			return e, true
		}
	}
	return Element{}, false
}
