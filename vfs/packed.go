package vfs

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/utils"
)

const (
	PACKED_MAGIC   = "BFPK"
	PACKED_VERSION = 0
)

type PackedEntry struct {
	Path   string
	Size   uint32
	Offset uint32
}

// PackedDriver exposes a .packed archive as flat read-only directory.
// Names use forward slashes and are matched case insensitive.
type PackedDriver struct {
	f       File
	entries map[string]*PackedEntry
	names   []string
}

func normalizePackedName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "\\", "/"))
}

func readPackedHeader(r io.Reader, size int64) ([]*PackedEntry, error) {
	br := bufio.NewReader(r)
	var header struct {
		Magic   [4]byte
		Version uint32
		Count   uint32
	}
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrapf(err, "Failed to read header")
	}
	if string(header.Magic[:]) != PACKED_MAGIC {
		return nil, errors.Errorf("Invalid magic %q", utils.DumpToOneLineString(header.Magic[:]))
	}
	if header.Version != PACKED_VERSION {
		return nil, errors.Errorf("Invalid version %d", header.Version)
	}
	// every entry takes at least 12 bytes
	if int64(header.Count)*12 > size {
		return nil, errors.Errorf("Files count %d does not fit archive of %d bytes", header.Count, size)
	}

	entries := make([]*PackedEntry, header.Count)
	for i := range entries {
		var nameLen uint32
		if err := binary.Read(br, binary.LittleEndian, &nameLen); err != nil {
			return nil, errors.Wrapf(err, "Failed to read entry %d", i)
		}
		if int64(nameLen) > size {
			return nil, errors.Errorf("Entry %d name length %d is too big", i, nameLen)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(br, name); err != nil {
			return nil, errors.Wrapf(err, "Failed to read entry %d name", i)
		}
		var location struct {
			Size   uint32
			Offset uint32
		}
		if err := binary.Read(br, binary.LittleEndian, &location); err != nil {
			return nil, errors.Wrapf(err, "Failed to read entry %d location", i)
		}
		if int64(location.Offset)+int64(location.Size) > size {
			return nil, errors.Errorf("Entry %d (%s) is out of archive bounds", i, utils.BytesToString(name))
		}
		entries[i] = &PackedEntry{
			Path:   strings.ReplaceAll(utils.BytesToString(name), "\\", "/"),
			Size:   location.Size,
			Offset: location.Offset,
		}
	}
	return entries, nil
}

// NewPackedDriver opens f and keeps it open until Close
func NewPackedDriver(f File) (*PackedDriver, error) {
	r, err := OpenFileAndGetReader(f)
	if err != nil {
		return nil, err
	}
	entries, err := readPackedHeader(r, r.Size())
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "Failed to parse %s archive '%s'", PACKED_MAGIC, f.Name())
	}

	pd := &PackedDriver{
		f:       f,
		entries: make(map[string]*PackedEntry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		key := normalizePackedName(e.Path)
		if _, dup := pd.entries[key]; !dup {
			pd.names = append(pd.names, e.Path)
		}
		pd.entries[key] = e
	}
	sort.Strings(pd.names)
	return pd, nil
}

func NewPackedDriverFromPath(path string) (*PackedDriver, error) {
	return NewPackedDriver(NewDirectoryDriverFile(path))
}

func (pd *PackedDriver) Name() string      { return pd.f.Name() }
func (pd *PackedDriver) IsDirectory() bool { return true }
func (pd *PackedDriver) Close() error      { return pd.f.Close() }

func (pd *PackedDriver) List() ([]string, error) {
	return append([]string(nil), pd.names...), nil
}

func (pd *PackedDriver) Entry(name string) (*PackedEntry, bool) {
	e, ok := pd.entries[normalizePackedName(name)]
	return e, ok
}

func (pd *PackedDriver) GetElement(name string) (Element, error) {
	e, ok := pd.Entry(name)
	if !ok {
		return nil, errors.Errorf("File '%s' not found in '%s'", name, pd.Name())
	}
	return &PackedDriverFile{pd: pd, e: e}, nil
}

type PackedDriverFile struct {
	pd *PackedDriver
	e  *PackedEntry
}

func (pf *PackedDriverFile) Name() string {
	return pf.e.Path
}

func (pf *PackedDriverFile) IsDirectory() bool { return false }
func (pf *PackedDriverFile) Size() int64       { return int64(pf.e.Size) }

// archive stays open for the driver lifetime
func (pf *PackedDriverFile) Open() error { return nil }

func (pf *PackedDriverFile) Close() error { return nil }

func (pf *PackedDriverFile) Reader() (*io.SectionReader, error) {
	return io.NewSectionReader(pf.pd.f, int64(pf.e.Offset), int64(pf.e.Size)), nil
}

func (pf *PackedDriverFile) ReadAt(b []byte, off int64) (n int, err error) {
	r, err := pf.Reader()
	if err != nil {
		return 0, err
	}
	return r.ReadAt(b, off)
}
