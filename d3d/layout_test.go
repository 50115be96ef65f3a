package d3d

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutXYZNormalTex(t *testing.T) {
	assert := assert.New(t)
	l := NewLayout(0x112)

	assert.Equal([]Element{
		{Usage: USAGE_POSITION, Index: 0, Offset: 0, Size: 12, Components: 3},
		{Usage: USAGE_NORMAL, Index: 0, Offset: 12, Size: 12, Components: 3},
		{Usage: USAGE_TEXCOORD, Index: 0, Offset: 24, Size: 8, Components: 2},
	}, l.Elements)
	assert.Equal(32, l.Size())
	assert.Equal(VertexSize(0x112), l.Size())
}

func TestLayoutBlendWeights(t *testing.T) {
	assert := assert.New(t)
	for i, pos := range []FVF{FVF_XYZB1, FVF_XYZB2, FVF_XYZB3, FVF_XYZB4, FVF_XYZB5} {
		l := NewLayout(pos)
		weights, ok := l.Find(USAGE_BLENDWEIGHT, 0)
		assert.True(ok)
		assert.Equal(i+1, weights.Components)
		assert.Equal(12, weights.Offset)
		assert.Equal(pos.VertexSize(), l.Size())
	}
}

func TestLayoutSpecularUsesDeclarationBit(t *testing.T) {
	assert := assert.New(t)
	l := NewLayout(0x1c2)

	diffuse, ok := l.Find(USAGE_COLOR, 0)
	assert.True(ok)
	assert.Equal(12, diffuse.Offset)

	specular, ok := l.Find(USAGE_COLOR, 1)
	assert.True(ok)
	assert.Equal(16, specular.Offset)

	tex, ok := l.Find(USAGE_TEXCOORD, 0)
	assert.True(ok)
	assert.Equal(20, tex.Offset)

	assert.Equal(28, l.Size())
	assert.Equal(24, VertexSize(0x1c2))
}

func TestLayoutMatchesVertexSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		fvf := rng.Uint32()
		// keep specular flag and sign bit in agreement
		if fvf&FVF_SPECULAR != 0 {
			fvf |= FVF_SIGN
		} else {
			fvf &^= FVF_SIGN
		}
		l := NewLayout(FVF(fvf))
		if !assert.Equal(t, VertexSize(fvf), l.Size(), "fvf 0x%x", fvf) {
			return
		}

		offset := 0
		for _, e := range l.Elements {
			assert.Equal(t, offset, e.Offset)
			offset += e.Size
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	l := NewLayout(0)
	assert.Empty(t, l.Elements)
	assert.Equal(t, 0, l.Size())
	_, ok := l.Find(USAGE_POSITION, 0)
	assert.False(t, ok)
}

func TestFVFString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("XYZ|NORMAL|TEX1", FVF(0x112).String())
	assert.Equal("XYZ|DIFFUSE|SPECULAR|TEX1", FVF(0x1c2).String())
	assert.Equal("XYZRHW", FVF(0x4).String())
	assert.Equal("FVF(0x0)", FVF(0).String())
}

func TestFVFAccessors(t *testing.T) {
	assert := assert.New(t)
	f := FVF(0x00e40352)

	assert.Equal(uint32(FVF_XYZ), f.Position())
	assert.True(f.HasNormal())
	assert.False(f.HasPointSize())
	assert.True(f.HasDiffuse())
	assert.False(f.HasSpecular())
	assert.Equal(3, f.TexCoordCount())
	assert.Equal(2, f.TexCoordComponents(0))
	assert.Equal(3, f.TexCoordComponents(1))
	assert.Equal(4, f.TexCoordComponents(2))
	assert.Equal(1, f.TexCoordComponents(3))
	assert.Equal(0, f.BlendWeights())
}

func TestParseFVF(t *testing.T) {
	assert := assert.New(t)

	f, err := ParseFVF("0x112")
	assert.NoError(err)
	assert.Equal(FVF(0x112), f)

	f, err = ParseFVF(" 274 ")
	assert.NoError(err)
	assert.Equal(FVF(0x112), f)

	_, err = ParseFVF("0x100000000")
	assert.Error(err)

	_, err = ParseFVF("xyz")
	assert.Error(err)
}

func TestUsageText(t *testing.T) {
	var u Usage
	assert.NoError(t, u.UnmarshalText([]byte("TEXCOORD")))
	assert.Equal(t, USAGE_TEXCOORD, u)
	assert.Error(t, u.UnmarshalText([]byte("TANGENT")))
	assert.Equal(t, "UNKNOWN", Usage(200).String())
}
