package scrap

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/utils"
)

const (
	MD3D_MAGIC   = "MD3D"
	MD3D_VERSION = 1

	MD3D_TRIANGLE_SIZE = 6

	// child meshes nest recursively, real files stay shallow
	MD3D_MAX_DEPTH = 16
)

// RawTable is a counted table of fixed size entries not decoded further
type RawTable struct {
	EntrySize uint32
	Count     uint32
	Data      []byte `json:"-" yaml:"-"`
}

func (t *RawTable) Entry(i int) []byte {
	s := int(t.EntrySize)
	return t.Data[i*s : (i+1)*s]
}

func (r *reader) rawTable(entrySize uint32, what string) RawTable {
	t := RawTable{}
	t.Count = r.u32(what + " count")
	t.EntrySize = r.u32(what + " entry size")
	if r.err != nil {
		return t
	}
	if t.EntrySize != entrySize {
		r.fail("Invalid %s entry size %d, expected %d", what, t.EntrySize, entrySize)
		return t
	}
	t.Data = r.bytes(r.span(t.Count, t.EntrySize, what), what)
	return t
}

type MD3D struct {
	Offset  int
	Size    uint32
	Version uint32
	Name    string
	NameRaw []byte `json:"-" yaml:"-"`

	Triangles [][3]uint16
	Vertices  *LFVF

	VertexOrigins []uint16 // source vertex per buffer vertex
	Unk1          uint32
	Table2        RawTable
	Table3        RawTable
	Table4        RawTable
	TriangleFlags []uint32
	Unk2          uint32
	Table6        *RawTable `json:",omitempty" yaml:",omitempty"`
	Unk4          uint32
	Unk5          uint32
	Unk6          uint32
	UnkBytes1     []byte
	UnkBytes2     []byte
	UnkBytes3     []byte

	Child *MD3D `json:",omitempty" yaml:",omitempty"`
}

func NewMD3DFromData(b []byte, exlog *utils.Logger) (*MD3D, error) {
	r := newReader(b)
	m := parseMD3D(r, exlog, 0)
	if r.err != nil {
		return nil, errors.Wrapf(r.err, "Failed to parse %s", MD3D_MAGIC)
	}
	return m, nil
}

func parseMD3D(r *reader, exlog *utils.Logger, depth int) *MD3D {
	if depth > MD3D_MAX_DEPTH {
		r.fail("%s nesting deeper than %d", MD3D_MAGIC, MD3D_MAX_DEPTH)
		return nil
	}

	m := &MD3D{Offset: r.pos}
	r.magic(MD3D_MAGIC)
	m.Size = r.u32("size")
	m.Version = r.u32("version")
	if r.err == nil && m.Version != MD3D_VERSION {
		r.fail("Invalid %s version %d", MD3D_MAGIC, m.Version)
	}
	m.Name, m.NameRaw = r.pstring("name")

	trianglesCount := r.u32("triangles count")
	if triangleSize := r.u32("triangle size"); r.err == nil && triangleSize != MD3D_TRIANGLE_SIZE {
		r.fail("Invalid %s triangle size %d", MD3D_MAGIC, triangleSize)
	}
	trianglesRaw := r.bytes(r.span(trianglesCount, MD3D_TRIANGLE_SIZE, "triangles"), "triangles")
	if r.err != nil {
		return nil
	}
	m.Triangles = make([][3]uint16, trianglesCount)
	for i := range m.Triangles {
		t := trianglesRaw[i*MD3D_TRIANGLE_SIZE:]
		m.Triangles[i] = [3]uint16{
			binary.LittleEndian.Uint16(t[0:]),
			binary.LittleEndian.Uint16(t[2:]),
			binary.LittleEndian.Uint16(t[4:]),
		}
	}
	exlog.Printf("%s at 0x%x: %q triangles %d", MD3D_MAGIC, m.Offset, m.Name, trianglesCount)

	m.Vertices = parseLFVF(r, exlog)

	origins := r.rawTable(2, "vertex origins")
	m.Unk1 = r.u32("unk1")
	m.Table2 = r.rawTable(0x10, "table2")
	m.Table3 = r.rawTable(8, "table3")
	m.Table4 = r.rawTable(0xc, "table4")
	flags := r.rawTable(4, "triangle flags")
	m.Unk2 = r.u32("unk2")
	if r.err == nil && m.Unk2 == 0 {
		t := r.rawTable(0x10, "table6")
		m.Table6 = &t
	}
	m.Unk4 = r.u32("unk4")
	m.Unk5 = r.u32("unk5")
	m.Unk6 = r.u32("unk6")
	m.UnkBytes1 = r.bytes(0x18, "unk bytes1")
	m.UnkBytes2 = r.bytes(0x18, "unk bytes2")
	m.UnkBytes3 = r.bytes(0xc, "unk bytes3")
	hasChild := r.u32("has child")
	if r.err != nil {
		return nil
	}

	m.VertexOrigins = make([]uint16, origins.Count)
	for i := range m.VertexOrigins {
		m.VertexOrigins[i] = binary.LittleEndian.Uint16(origins.Entry(i))
	}
	m.TriangleFlags = make([]uint32, flags.Count)
	for i := range m.TriangleFlags {
		m.TriangleFlags[i] = binary.LittleEndian.Uint32(flags.Entry(i))
	}

	if hasChild != 0 {
		m.Child = parseMD3D(r, exlog, depth+1)
		if r.err != nil {
			return nil
		}
	}
	return m
}

// Indices flattens triangles, checking them against the vertex buffer
func (m *MD3D) Indices() ([]uint32, error) {
	indices := make([]uint32, 0, len(m.Triangles)*3)
	var count uint32
	if m.Vertices != nil {
		count = m.Vertices.NumVertices
	}
	for iTri, tri := range m.Triangles {
		for _, idx := range tri {
			if uint32(idx) >= count {
				return nil, errors.Errorf("Triangle %d references vertex %d of %d", iTri, idx, count)
			}
			indices = append(indices, uint32(idx))
		}
	}
	return indices, nil
}

// Meshes returns m and its children in file order
func (m *MD3D) Meshes() []*MD3D {
	result := make([]*MD3D, 0, 1)
	for ; m != nil; m = m.Child {
		result = append(result, m)
	}
	return result
}

// ScanMD3D finds every decodable mesh chunk inside b.
// Node containers are not parsed, chunks are located by magic.
func ScanMD3D(b []byte, exlog *utils.Logger) []*MD3D {
	result := make([]*MD3D, 0)
	magic := []byte(MD3D_MAGIC)
	for pos := 0; pos < len(b); {
		i := bytes.Index(b[pos:], magic)
		if i < 0 {
			break
		}
		r := newReader(b)
		r.pos = pos + i
		if m := parseMD3D(r, exlog, 0); r.err == nil {
			result = append(result, m)
			pos = r.pos
		} else {
			exlog.Printf("%s candidate at 0x%x skipped: %v", MD3D_MAGIC, pos+i, r.err)
			pos += i + len(magic)
		}
	}
	return result
}
