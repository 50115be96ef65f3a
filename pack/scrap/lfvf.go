package scrap

import (
	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/d3d"
	"github.com/mogaika/scrap_remaster/utils"
)

const (
	LFVF_MAGIC   = "LFVF"
	LFVF_VERSION = 1

	LFVF_MAX_FORMAT_ID = 0x11
)

// format id -> fvf, ids missing here are rejected
var lfvfFormats = map[uint32]d3d.FVF{
	0:  0x0,
	1:  0x112,
	2:  0x212,
	3:  0x1c2,
	4:  0x116,
	5:  0x252,
	6:  0x352,
	7:  0x152,
	8:  0x1c4,
	10: 0x242,
}

// format id -> record size as written by the exporter
var lfvfStrides = map[uint32]uint32{
	0:    0x0,
	1:    0x20,
	8:    0x20,
	10:   0x20,
	2:    0x28,
	3:    0x1c,
	0xd:  0x1c,
	4:    0x24,
	7:    0x24,
	5:    0x2c,
	6:    0x34,
	0xb:  0x4,
	0xc:  0x18,
	0xe:  0x12,
	0xf:  0x16,
	0x10: 0x16,
	0x11: 0x1a,
}

func FormatIdFVF(id uint32) (d3d.FVF, error) {
	if f, ok := lfvfFormats[id]; ok {
		return f, nil
	}
	return 0, errors.Errorf("Invalid vertex format id: %d", id)
}

func FormatIdStride(id uint32) (uint32, error) {
	if s, ok := lfvfStrides[id]; ok {
		return s, nil
	}
	return 0, errors.Errorf("Invalid vertex format id: %d", id)
}

// LFVF is a vertex buffer chunk
type LFVF struct {
	Size        uint32
	Version     uint32
	FormatId    uint32
	FVF         d3d.FVF
	VertexSize  uint32
	NumVertices uint32
	Data        []byte `json:"-" yaml:"-"`
}

// NewLFVFFromBuffer wraps raw records of format fvf, stride comes from d3d.VertexSize
func NewLFVFFromBuffer(fvf d3d.FVF, data []byte) *LFVF {
	l := &LFVF{
		Version:    LFVF_VERSION,
		FVF:        fvf,
		VertexSize: uint32(fvf.VertexSize()),
	}
	if l.VertexSize != 0 {
		l.NumVertices = uint32(len(data)) / l.VertexSize
		l.Data = data[:l.NumVertices*l.VertexSize]
	}
	return l
}

// NewLFVF wraps records of a known format id, stride comes from the id table
func NewLFVF(formatId uint32, data []byte) (*LFVF, error) {
	fvf, err := FormatIdFVF(formatId)
	if err != nil {
		return nil, err
	}
	stride, err := FormatIdStride(formatId)
	if err != nil {
		return nil, err
	}
	l := &LFVF{Version: LFVF_VERSION, FormatId: formatId, FVF: fvf, VertexSize: stride}
	if stride != 0 {
		if len(data)%int(stride) != 0 {
			return nil, errors.Errorf("Vertex data of %d bytes is not a multiple of stride %d", len(data), stride)
		}
		l.NumVertices = uint32(len(data)) / stride
		l.Data = data
	}
	return l, nil
}

func NewLFVFFromData(b []byte, exlog *utils.Logger) (*LFVF, error) {
	r := newReader(b)
	l := parseLFVF(r, exlog)
	if r.err != nil {
		return nil, errors.Wrapf(r.err, "Failed to parse %s", LFVF_MAGIC)
	}
	return l, nil
}

func parseLFVF(r *reader, exlog *utils.Logger) *LFVF {
	start := r.pos
	l := &LFVF{}

	r.magic(LFVF_MAGIC)
	l.Size = r.u32("size")
	l.Version = r.u32("version")
	l.FormatId = r.u32("format id")
	if r.err != nil {
		return nil
	}
	if l.Version != LFVF_VERSION {
		r.fail("Invalid %s version %d", LFVF_MAGIC, l.Version)
		return nil
	}
	if l.FormatId > LFVF_MAX_FORMAT_ID {
		r.fail("Invalid %s format id 0x%x", LFVF_MAGIC, l.FormatId)
		return nil
	}
	if l.FormatId == 0 {
		exlog.Printf("%s at 0x%x: empty", LFVF_MAGIC, start)
		return l
	}

	l.FVF = d3d.FVF(r.u32("fvf"))
	l.VertexSize = r.u32("vertex size")
	l.NumVertices = r.u32("vertices count")
	if r.err != nil {
		return nil
	}

	expectedFVF, err := FormatIdFVF(l.FormatId)
	if err != nil {
		r.fail("%v", err)
		return nil
	}
	if expectedFVF != l.FVF {
		r.fail("Vertex format mismatch: 0x%x!=0x%x", uint32(expectedFVF), uint32(l.FVF))
		return nil
	}
	expectedStride, err := FormatIdStride(l.FormatId)
	if err != nil {
		r.fail("%v", err)
		return nil
	}
	if expectedStride != l.VertexSize {
		r.fail("Vertex size mismatch for format id %d: %d!=%d", l.FormatId, l.VertexSize, expectedStride)
		return nil
	}
	if computed := l.FVF.VertexSize(); computed != int(l.VertexSize) {
		exlog.Printf("%s at 0x%x: fvf %v (0x%x) decodes to %d bytes, file declares %d",
			LFVF_MAGIC, start, l.FVF, uint32(l.FVF), computed, l.VertexSize)
	}

	l.Data = r.bytes(r.span(l.NumVertices, l.VertexSize, "vertices"), "vertices")
	if r.err != nil {
		return nil
	}

	exlog.Printf("%s at 0x%x: format %d fvf %v stride %d vertices %d",
		LFVF_MAGIC, start, l.FormatId, l.FVF, l.VertexSize, l.NumVertices)
	if consumed := r.pos - start - 8; uint32(consumed) != l.Size {
		exlog.Printf("%s at 0x%x: size field %d, parsed %d", LFVF_MAGIC, start, l.Size, consumed)
	}
	return l
}

// Stride is byte distance between records
func (l *LFVF) Stride() int {
	return int(l.VertexSize)
}

func (l *LFVF) Vertex(i int) []byte {
	stride := l.Stride()
	return l.Data[i*stride : (i+1)*stride]
}

func (l *LFVF) Layout() d3d.Layout {
	return d3d.NewLayout(l.FVF)
}

func (l *LFVF) Vertices() ([]Vertex, error) {
	layout := l.Layout()
	if layout.Size() > l.Stride() {
		return nil, errors.Errorf("Layout of %v needs %d bytes, stride is %d", l.FVF, layout.Size(), l.Stride())
	}

	vertices := make([]Vertex, l.NumVertices)
	for i := range vertices {
		vertices[i] = DecodeVertex(layout, l.Vertex(i))
	}
	return vertices, nil
}
