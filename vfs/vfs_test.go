package vfs

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPacked(files map[string]string, order []string) []byte {
	var header bytes.Buffer
	header.WriteString(PACKED_MAGIC)
	binary.Write(&header, binary.LittleEndian, uint32(PACKED_VERSION))
	binary.Write(&header, binary.LittleEndian, uint32(len(order)))

	headerSize := header.Len()
	for _, name := range order {
		headerSize += 4 + len(name) + 1 + 8
	}

	var data bytes.Buffer
	for _, name := range order {
		binary.Write(&header, binary.LittleEndian, uint32(len(name)+1))
		header.WriteString(name)
		header.WriteByte(0)
		binary.Write(&header, binary.LittleEndian, uint32(len(files[name])))
		binary.Write(&header, binary.LittleEndian, uint32(headerSize+data.Len()))
		data.WriteString(files[name])
	}
	return append(header.Bytes(), data.Bytes()...)
}

func writePacked(t *testing.T, b []byte) string {
	path := filepath.Join(t.TempDir(), "data.packed")
	require.NoError(t, os.WriteFile(path, b, 0666))
	return path
}

func TestPackedDriver(t *testing.T) {
	files := map[string]string{
		`models\ship\ship.sm3`: "MD3D...",
		`levels\outskirts.emi`: "EMI",
	}
	pd, err := NewPackedDriverFromPath(writePacked(t,
		buildPacked(files, []string{`models\ship\ship.sm3`, `levels\outskirts.emi`})))
	require.NoError(t, err)
	defer pd.Close()

	assert := assert.New(t)
	names, err := pd.List()
	require.NoError(t, err)
	assert.Equal([]string{"levels/outskirts.emi", "models/ship/ship.sm3"}, names)

	data, err := ReadFile(pd, "MODELS/Ship/ship.sm3")
	require.NoError(t, err)
	assert.Equal("MD3D...", string(data))

	data, err = ReadFile(pd, `levels\outskirts.emi`)
	require.NoError(t, err)
	assert.Equal("EMI", string(data))

	_, err = ReadFile(pd, "missing.sm3")
	assert.Error(err)

	f, err := DirectoryGetFile(pd, "levels/outskirts.emi")
	require.NoError(t, err)
	require.NoError(t, f.Open())
	defer f.Close()
	buf := make([]byte, 2)
	n, err := f.ReadAt(buf, 1)
	require.NoError(t, err)
	assert.Equal(2, n)
	assert.Equal("MI", string(buf))
	_, err = f.ReadAt(buf, 2)
	assert.Error(err)
}

func TestPackedDriverErrors(t *testing.T) {
	valid := buildPacked(map[string]string{"a": "b"}, []string{"a"})

	for name, data := range map[string][]byte{
		"magic":     append([]byte("XFPK"), valid[4:]...),
		"version":   append(append([]byte("BFPK"), 1, 0, 0, 0), valid[8:]...),
		"truncated": valid[:14],
		"bounds":    valid[:len(valid)-1],
	} {
		_, err := NewPackedDriverFromPath(writePacked(t, data))
		assert.Error(t, err, name)
	}
}

func TestDirectoryDriver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "mesh.md3d"), []byte("MD3D"), 0666))

	dd := NewDirectoryDriver(dir)
	names, err := dd.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sub"}, names)

	data, err := ReadFile(dd, "sub/mesh.md3d")
	require.NoError(t, err)
	assert.Equal(t, "MD3D", string(data))

	_, err = ReadFile(dd, "sub")
	assert.Error(t, err)

	_, err = dd.GetElement("../outside")
	assert.Error(t, err)
}
