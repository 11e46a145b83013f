// Package backend selects and constructs the Record Store implementation
// at process start. The chosen store is handed to the aggregator and the
// transport explicitly; nothing reaches the store through package state.
package backend

import (
	"fmt"

	"disciplina/internal/store"
)

// Type names a Record Store implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	}
	return false
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{MemoryBackend, SQLiteBackend}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result is a constructed store plus its optional cleanup.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Config holds what each backend needs to come up.
type Config struct {
	Type Type

	// SQLite
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Memory
	SeedFile string
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("sqlite database path is required for sqlite backend")
	}
	// AMQP is optional; the seed file is optional too.
	return nil
}
