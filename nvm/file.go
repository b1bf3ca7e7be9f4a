//go:build !tinygo

package nvm

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// File is a Store backed by a one-byte file on the host.
type File struct {
	lock sync.Mutex
	path string
}

// NewFile returns a Store that keeps its byte in the file at path. The file
// is created on the first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Load() (byte, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	buf, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Erased, nil
	}
	if nil != err {
		return Erased, err
	}
	if len(buf) == 0 {
		return Erased, nil
	}
	return buf[0], nil
}

func (f *File) Save(b byte) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return os.WriteFile(f.path, []byte{b}, 0o644)
}
