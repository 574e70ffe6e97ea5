// Package dao provides data access objects for persisting paraphrase
// dictionaries and the lattices built from them.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/dekarrin/parattice"
	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories backing a running server.
type Store interface {
	Dictionaries() DictionaryRepository
	Lattices() LatticeRepository
	Close() error
}

// Dictionary is a named, persisted paraphrase dictionary.
type Dictionary struct {
	ID       uuid.UUID
	Name     string
	Data     parattice.Dictionary
	Created  time.Time
	Modified time.Time
}

type DictionaryRepository interface {
	Create(ctx context.Context, d Dictionary) (Dictionary, error)
	GetByID(ctx context.Context, id uuid.UUID) (Dictionary, error)
	GetByName(ctx context.Context, name string) (Dictionary, error)
	GetAll(ctx context.Context) ([]Dictionary, error)
	Update(ctx context.Context, id uuid.UUID, d Dictionary) (Dictionary, error)
	Delete(ctx context.Context, id uuid.UUID) (Dictionary, error)
	Close() error
}

// Lattice is a cached GetLattice result, keyed by the dictionary it was
// built from and the exact request parameters, so that repeated identical
// build requests do not re-run phrase-index expansion.
type Lattice struct {
	ID           uuid.UUID
	DictionaryID uuid.UUID
	Sentence     []string
	Shrink       bool
	MaxDepth     int
	Data         []byte // a serialized parattice.Lattice, per (*parattice.Lattice).ToBytes
	Created      time.Time
}

type LatticeRepository interface {
	Create(ctx context.Context, l Lattice) (Lattice, error)
	GetByRequest(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int) (Lattice, error)
	DeleteByDictionary(ctx context.Context, dictID uuid.UUID) error
	Close() error
}
