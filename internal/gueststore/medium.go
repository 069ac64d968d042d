// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package gueststore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// sessionKey is the single key under which the whole guest session blob is
// stored. Guest data is one small document, not a row set, so one key keeps
// reads and writes atomic without transactions spanning keys.
const sessionKey = "guest:session"

// ErrNotFound is returned by a Medium when no session blob has been saved yet.
var ErrNotFound = errors.New("guest session not found")

// Medium is the persistent key-value backing for guest session data. The
// store must tolerate a Medium failing at any point; see Store for the
// degraded-mode contract.
type Medium interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// BadgerMedium persists the guest session blob in BadgerDB.
type BadgerMedium struct {
	db *badger.DB
}

// OpenBadgerMedium opens a BadgerDB at path and returns a Medium backed by it.
// If inMemory is true the path is ignored and nothing touches disk.
func OpenBadgerMedium(path string, inMemory bool) (*BadgerMedium, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for guest store: %w", err)
	}
	return &BadgerMedium{db: db}, nil
}

// NewBadgerMedium wraps an already-open BadgerDB.
func NewBadgerMedium(db *badger.DB) *BadgerMedium {
	return &BadgerMedium{db: db}
}

func (m *BadgerMedium) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get guest session: %w", err)
		}
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (m *BadgerMedium) Save(ctx context.Context, data []byte) error {
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionKey), data)
	})
}

func (m *BadgerMedium) Close() error {
	return m.db.Close()
}

// MemoryMedium is an in-process Medium used in tests and as the transparent
// fallback when durable storage is unavailable.
type MemoryMedium struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{}
}

func (m *MemoryMedium) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryMedium) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryMedium) Close() error { return nil }
