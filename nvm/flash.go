//go:build tinygo && (atsamd51 || rp2040)

package nvm

import (
	"machine"
)

// Flash is a Store kept in the first write block of the on-chip flash data
// area.
type Flash struct {
	block []byte
}

// NewFlash returns a Store using machine.Flash.
func NewFlash() (*Flash, error) {
	size := machine.Flash.WriteBlockSize()
	if size <= 0 || machine.Flash.Size() < machine.Flash.EraseBlockSize() {
		return nil, ErrNoStore
	}
	return &Flash{block: make([]byte, size)}, nil
}

func (f *Flash) Load() (byte, error) {
	if _, err := machine.Flash.ReadAt(f.block[:1], 0); nil != err {
		return Erased, err
	}
	return f.block[0], nil
}

func (f *Flash) Save(b byte) error {
	// flash can only be written after the containing block is erased
	if err := machine.Flash.EraseBlocks(0, 1); nil != err {
		return err
	}
	for i := range f.block {
		f.block[i] = Erased
	}
	f.block[0] = b
	_, err := machine.Flash.WriteAt(f.block, 0)
	return err
}
