package scrap

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/utils"
)

type writer struct {
	bytes.Buffer
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

func (w *writer) rawTable(t RawTable, entrySize uint32, what string) error {
	if uint64(len(t.Data)) != uint64(t.Count)*uint64(entrySize) {
		return errors.Errorf("Table %s is %d bytes, expected %d*%d", what, len(t.Data), t.Count, entrySize)
	}
	w.u32(t.Count)
	w.u32(entrySize)
	w.Write(t.Data)
	return nil
}

// chunk prepends magic and size of body
func chunk(magic string, body []byte) []byte {
	var w writer
	w.WriteString(magic)
	w.u32(uint32(len(body)))
	w.Write(body)
	return w.Bytes()
}

func (l *LFVF) MarshalBinary() ([]byte, error) {
	var w writer
	w.u32(LFVF_VERSION)
	w.u32(l.FormatId)
	if l.FormatId != 0 {
		if uint64(len(l.Data)) != uint64(l.NumVertices)*uint64(l.VertexSize) {
			return nil, errors.Errorf("Vertex data is %d bytes, expected %d*%d", len(l.Data), l.NumVertices, l.VertexSize)
		}
		w.u32(uint32(l.FVF))
		w.u32(l.VertexSize)
		w.u32(l.NumVertices)
		w.Write(l.Data)
	}
	return chunk(LFVF_MAGIC, w.Bytes()), nil
}

// encodeName reuses the parsed bytes with their padding unless the mesh was renamed
func (m *MD3D) encodeName() ([]byte, error) {
	if m.NameRaw != nil && utils.BytesToString(m.NameRaw) == m.Name {
		return m.NameRaw, nil
	}
	name, err := utils.StringToBytes(m.Name, true)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to encode name %q", m.Name)
	}
	return name, nil
}

func (m *MD3D) MarshalBinary() ([]byte, error) {
	var w writer
	w.u32(MD3D_VERSION)

	name, err := m.encodeName()
	if err != nil {
		return nil, err
	}
	w.u32(uint32(len(name)))
	w.Write(name)

	w.u32(uint32(len(m.Triangles)))
	w.u32(MD3D_TRIANGLE_SIZE)
	for _, t := range m.Triangles {
		w.u16(t[0])
		w.u16(t[1])
		w.u16(t[2])
	}

	if m.Vertices == nil {
		return nil, errors.Errorf("Mesh %q has no vertex buffer", m.Name)
	}
	vertices, err := m.Vertices.MarshalBinary()
	if err != nil {
		return nil, errors.Wrapf(err, "Mesh %q", m.Name)
	}
	w.Write(vertices)

	w.u32(uint32(len(m.VertexOrigins)))
	w.u32(2)
	for _, v := range m.VertexOrigins {
		w.u16(v)
	}
	w.u32(m.Unk1)
	for _, t := range []struct {
		table     RawTable
		entrySize uint32
		name      string
	}{{m.Table2, 0x10, "table2"}, {m.Table3, 8, "table3"}, {m.Table4, 0xc, "table4"}} {
		if err := w.rawTable(t.table, t.entrySize, t.name); err != nil {
			return nil, errors.Wrapf(err, "Mesh %q", m.Name)
		}
	}
	w.u32(uint32(len(m.TriangleFlags)))
	w.u32(4)
	for _, v := range m.TriangleFlags {
		w.u32(v)
	}
	w.u32(m.Unk2)
	if m.Unk2 == 0 {
		var table6 RawTable
		if m.Table6 != nil {
			table6 = *m.Table6
		}
		if err := w.rawTable(table6, 0x10, "table6"); err != nil {
			return nil, errors.Wrapf(err, "Mesh %q", m.Name)
		}
	}
	w.u32(m.Unk4)
	w.u32(m.Unk5)
	w.u32(m.Unk6)

	for _, b := range []struct {
		data []byte
		size int
	}{{m.UnkBytes1, 0x18}, {m.UnkBytes2, 0x18}, {m.UnkBytes3, 0xc}} {
		if b.data == nil {
			b.data = make([]byte, b.size)
		}
		if len(b.data) != b.size {
			return nil, errors.Errorf("Mesh %q trailer block is %d bytes, expected %d", m.Name, len(b.data), b.size)
		}
		w.Write(b.data)
	}

	if m.Child != nil {
		w.u32(1)
		child, err := m.Child.MarshalBinary()
		if err != nil {
			return nil, err
		}
		w.Write(child)
	} else {
		w.u32(0)
	}

	return chunk(MD3D_MAGIC, w.Bytes()), nil
}
