package vfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type DirectoryDriver struct {
	path string
}

func (dd *DirectoryDriver) Name() string {
	return filepath.Base(dd.path)
}

func (dd *DirectoryDriver) IsDirectory() bool {
	return true
}

func (dd *DirectoryDriver) List() ([]string, error) {
	entries, err := os.ReadDir(dd.path)
	if err != nil {
		return nil, errors.Wrapf(err, "Error getting directory '%s' info", dd.path)
	}
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Name())
	}
	return result, nil
}

func (dd *DirectoryDriver) GetElement(name string) (Element, error) {
	newPath := filepath.Join(dd.path, filepath.FromSlash(name))
	if rel, err := filepath.Rel(dd.path, newPath); err != nil || strings.HasPrefix(rel, "..") {
		return nil, errors.Errorf("Path '%s' leaves directory '%s'", name, dd.path)
	}

	s, err := os.Stat(newPath)
	if err != nil {
		return nil, errors.Wrapf(err, "Stat error")
	}
	var e Element
	if s.IsDir() {
		e = NewDirectoryDriver(newPath)
	} else {
		e = NewDirectoryDriverFile(newPath)
	}
	return e, nil
}

func NewDirectoryDriver(path string) *DirectoryDriver {
	return &DirectoryDriver{path: path}
}

type DirectoryDriverFile struct {
	path string
	f    *os.File
}

func NewDirectoryDriverFile(path string) *DirectoryDriverFile {
	return &DirectoryDriverFile{
		path: path,
	}
}

func (ddf *DirectoryDriverFile) Name() string {
	return filepath.Base(ddf.path)
}

func (ddf *DirectoryDriverFile) IsDirectory() bool {
	return false
}

func (ddf *DirectoryDriverFile) Size() int64 {
	if stat, err := os.Stat(ddf.path); err != nil {
		return 0
	} else {
		return stat.Size()
	}
}

func (ddf *DirectoryDriverFile) Open() error {
	if ddf.f != nil {
		return errors.Errorf("File already opened")
	}

	f, err := os.Open(ddf.path)
	if err != nil {
		return errors.Wrapf(err, "os.Open('%s')", ddf.path)
	}
	ddf.f = f
	return nil
}

func (ddf *DirectoryDriverFile) Close() error {
	if ddf.f != nil {
		if err := ddf.f.Close(); err != nil {
			return errors.Wrapf(err, "os.File.Close()")
		}
		ddf.f = nil
	}
	return nil
}

func (ddf *DirectoryDriverFile) Reader() (*io.SectionReader, error) {
	if ddf.f == nil {
		return nil, errors.Errorf("First you need to open file")
	}
	return io.NewSectionReader(ddf.f, 0, ddf.Size()), nil
}

func (ddf *DirectoryDriverFile) ReadAt(b []byte, off int64) (n int, err error) {
	if ddf.f == nil {
		return 0, errors.Errorf("First you need to open file")
	}
	return ddf.f.ReadAt(b, off)
}
