// Package nvm implements a single byte of non-volatile storage.
package nvm

import (
	"errors"
	"sync"
)

// Erased is the value of a byte that has never been written.
const Erased byte = 0xFF

var ErrNoStore = errors.New("non-volatile storage unavailable")

// Store persists one byte across restarts.
type Store interface {
	Load() (byte, error)
	Save(b byte) error
}

// Memory is a volatile Store, useful on boards without flash storage and in
// tests. The zero value holds Erased.
type Memory struct {
	lock  sync.Mutex
	value byte
	set   bool
}

func (m *Memory) Load() (byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.set {
		return Erased, nil
	}
	return m.value, nil
}

func (m *Memory) Save(b byte) error {
	m.lock.Lock()
	m.value, m.set = b, true
	m.lock.Unlock()
	return nil
}
