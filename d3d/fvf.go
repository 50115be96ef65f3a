package d3d

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FVF is a Direct3D flexible vertex format descriptor
type FVF uint32

const (
	FVF_POSITION_MASK = 0x00e
	FVF_XYZ           = 0x002
	FVF_XYZRHW        = 0x004
	FVF_XYZB1         = 0x006
	FVF_XYZB2         = 0x008
	FVF_XYZB3         = 0x00a
	FVF_XYZB4         = 0x00c
	FVF_XYZB5         = 0x00e

	FVF_NORMAL   = 0x010
	FVF_PSIZE    = 0x020
	FVF_DIFFUSE  = 0x040
	FVF_SPECULAR = 0x080

	FVF_TEXCOUNT_MASK  = 0xf00
	FVF_TEXCOUNT_SHIFT = 8

	// sign bit of the descriptor, what the legacy size routine checks for specular
	FVF_SIGN = 0x80000000
)

// texture coordinate size codes, 2 bits per set starting at bit 16
const (
	TEXTUREFORMAT2 = 0
	TEXTUREFORMAT3 = 1
	TEXTUREFORMAT4 = 2
	TEXTUREFORMAT1 = 3
)

var positionSizes = [16]int{
	FVF_XYZ:    12,
	FVF_XYZRHW: 16,
	FVF_XYZB1:  16,
	FVF_XYZB2:  20,
	FVF_XYZB3:  24,
	FVF_XYZB4:  28,
	FVF_XYZB5:  32,
}

var texCoordSizes = [4]int{
	TEXTUREFORMAT2: 8,
	TEXTUREFORMAT3: 12,
	TEXTUREFORMAT4: 16,
	TEXTUREFORMAT1: 4,
}

// VertexSize returns byte size of one vertex record described by fvf.
// Matches D3DXGetFVFVertexSize as shipped with the game, including the
// specular check against the sign bit instead of FVF_SPECULAR.
// Any value is accepted, unknown position types contribute nothing.
func VertexSize(fvf uint32) int {
	size := positionSizes[fvf&FVF_POSITION_MASK]

	if fvf&FVF_NORMAL != 0 {
		size += 12
	}
	if fvf&FVF_PSIZE != 0 {
		size += 4
	}
	if fvf&FVF_DIFFUSE != 0 {
		size += 4
	}
	if fvf&FVF_SIGN != 0 {
		size += 4
	}

	texCount := int(fvf>>FVF_TEXCOUNT_SHIFT) & 0xf
	texFormats := fvf >> 16
	if texFormats == 0 {
		size += texCount * texCoordSizes[TEXTUREFORMAT2]
	} else {
		for ; texCount != 0; texCount-- {
			size += texCoordSizes[texFormats&3]
			texFormats >>= 2
		}
	}

	return size
}

func (f FVF) VertexSize() int { return VertexSize(uint32(f)) }

func (f FVF) Position() uint32 { return uint32(f) & FVF_POSITION_MASK }

func (f FVF) HasNormal() bool    { return f&FVF_NORMAL != 0 }
func (f FVF) HasPointSize() bool { return f&FVF_PSIZE != 0 }
func (f FVF) HasDiffuse() bool   { return f&FVF_DIFFUSE != 0 }

// HasSpecular reports the declaration flag, which is what vertex data follows.
// VertexSize does not look at this bit.
func (f FVF) HasSpecular() bool { return f&FVF_SPECULAR != 0 }

func (f FVF) TexCoordCount() int {
	return int(f&FVF_TEXCOUNT_MASK) >> FVF_TEXCOUNT_SHIFT
}

// TexCoordComponents returns float count of texture set i
func (f FVF) TexCoordComponents(i int) int {
	switch (uint32(f) >> (16 + uint(i)*2)) & 3 {
	case TEXTUREFORMAT3:
		return 3
	case TEXTUREFORMAT4:
		return 4
	case TEXTUREFORMAT1:
		return 1
	default:
		return 2
	}
}

// BlendWeights returns count of blend floats stored after xyz
func (f FVF) BlendWeights() int {
	switch p := f.Position(); p {
	case FVF_XYZB1, FVF_XYZB2, FVF_XYZB3, FVF_XYZB4, FVF_XYZB5:
		return int(p-FVF_XYZB1)/2 + 1
	default:
		return 0
	}
}

var positionNames = map[uint32]string{
	FVF_XYZ:    "XYZ",
	FVF_XYZRHW: "XYZRHW",
	FVF_XYZB1:  "XYZB1",
	FVF_XYZB2:  "XYZB2",
	FVF_XYZB3:  "XYZB3",
	FVF_XYZB4:  "XYZB4",
	FVF_XYZB5:  "XYZB5",
}

func (f FVF) String() string {
	parts := make([]string, 0, 8)
	if name, ok := positionNames[f.Position()]; ok {
		parts = append(parts, name)
	}
	if f.HasNormal() {
		parts = append(parts, "NORMAL")
	}
	if f.HasPointSize() {
		parts = append(parts, "PSIZE")
	}
	if f.HasDiffuse() {
		parts = append(parts, "DIFFUSE")
	}
	if f.HasSpecular() {
		parts = append(parts, "SPECULAR")
	}
	if n := f.TexCoordCount(); n != 0 {
		parts = append(parts, fmt.Sprintf("TEX%d", n))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("FVF(0x%x)", uint32(f))
	}
	return strings.Join(parts, "|")
}

// ParseFVF accepts decimal or 0x prefixed hex
func ParseFVF(s string) (FVF, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "Invalid fvf %q", s)
	}
	return FVF(v), nil
}
