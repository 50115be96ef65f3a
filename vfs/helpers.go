package vfs

import (
	"io"

	"github.com/pkg/errors"
)

func OpenFileAndGetReader(f File) (*io.SectionReader, error) {
	if err := f.Open(); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", f.Name())
	}
	r, err := f.Reader()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "Cannot get file '%s' reader", f.Name())
	}
	return r, nil
}

func DirectoryGetFile(d Directory, name string) (File, error) {
	if f, err := d.GetElement(name); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", name)
	} else if f.IsDirectory() {
		return nil, errors.Errorf("File '%s' is directory, not a file!", name)
	} else {
		return f.(File), nil
	}
}

// ReadFile opens name inside d and reads it whole
func ReadFile(d Directory, name string) ([]byte, error) {
	f, err := DirectoryGetFile(d, name)
	if err != nil {
		return nil, err
	}
	r, err := OpenFileAndGetReader(f)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make([]byte, r.Size())
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrapf(err, "Cannot read file '%s'", name)
	}
	return data, nil
}
