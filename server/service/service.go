// Package service contains the business logic layer of the server,
// gluing the paraphrase-lattice engine to the persistence layer. It is
// the single place where dao.Store and the parattice package meet.
package service

import (
	"context"
	"fmt"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/server/dao"
	"github.com/dekarrin/parattice/server/serr"
	"github.com/google/uuid"
)

// Service is the interface that the HTTP API layer calls into to carry out
// requests. It exists independently of its implementation so that the API
// layer can be tested against a fake.
type Service interface {
	// CreateDictionary compiles data and persists it under name. It returns
	// serr.ErrAlreadyExists if name is already in use or serr.ErrBadArgument
	// if data does not compile into a valid PhraseIndex.
	CreateDictionary(ctx context.Context, name string, data parattice.Dictionary) (dao.Dictionary, error)

	// GetDictionary retrieves a previously-created dictionary by ID.
	GetDictionary(ctx context.Context, id uuid.UUID) (dao.Dictionary, error)

	// ListDictionaries retrieves every stored dictionary.
	ListDictionaries(ctx context.Context) ([]dao.Dictionary, error)

	// UpdateDictionary replaces the contents of the dictionary with the
	// given ID and invalidates any lattices cached against it.
	UpdateDictionary(ctx context.Context, id uuid.UUID, name string, data parattice.Dictionary) (dao.Dictionary, error)

	// DeleteDictionary removes a dictionary and every lattice cached
	// against it.
	DeleteDictionary(ctx context.Context, id uuid.UUID) (dao.Dictionary, error)

	// BuildLattice produces the paraphrase lattice for sentence against the
	// named dictionary, consulting (and populating) the lattice cache.
	BuildLattice(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int) (parattice.Lattice, error)

	// SearchLattice builds the lattice for sentence the same way
	// BuildLattice does, then searches it for every path that spells out
	// pattern.
	SearchLattice(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int, pattern []string) ([][]parattice.PathEdge, error)
}

type service struct {
	store dao.Store
}

// New returns a Service backed by store.
func New(store dao.Store) Service {
	return &service{store: store}
}

func (s *service) CreateDictionary(ctx context.Context, name string, data parattice.Dictionary) (dao.Dictionary, error) {
	if name == "" {
		return dao.Dictionary{}, serr.New("name cannot be empty", serr.ErrBadArgument)
	}

	if _, err := parattice.NewPhraseIndex(data); err != nil {
		return dao.Dictionary{}, serr.New(fmt.Sprintf("invalid dictionary: %s", err.Error()), serr.ErrBadArgument)
	}

	created, err := s.store.Dictionaries().Create(ctx, dao.Dictionary{Name: name, Data: data})
	if err != nil {
		return dao.Dictionary{}, wrapDAOErr(err)
	}
	return created, nil
}

func (s *service) GetDictionary(ctx context.Context, id uuid.UUID) (dao.Dictionary, error) {
	d, err := s.store.Dictionaries().GetByID(ctx, id)
	if err != nil {
		return dao.Dictionary{}, wrapDAOErr(err)
	}
	return d, nil
}

func (s *service) ListDictionaries(ctx context.Context) ([]dao.Dictionary, error) {
	all, err := s.store.Dictionaries().GetAll(ctx)
	if err != nil {
		return nil, wrapDAOErr(err)
	}
	return all, nil
}

func (s *service) UpdateDictionary(ctx context.Context, id uuid.UUID, name string, data parattice.Dictionary) (dao.Dictionary, error) {
	if _, err := parattice.NewPhraseIndex(data); err != nil {
		return dao.Dictionary{}, serr.New(fmt.Sprintf("invalid dictionary: %s", err.Error()), serr.ErrBadArgument)
	}

	updated, err := s.store.Dictionaries().Update(ctx, id, dao.Dictionary{Name: name, Data: data})
	if err != nil {
		return dao.Dictionary{}, wrapDAOErr(err)
	}

	if err := s.store.Lattices().DeleteByDictionary(ctx, id); err != nil {
		return dao.Dictionary{}, wrapDAOErr(err)
	}

	return updated, nil
}

func (s *service) DeleteDictionary(ctx context.Context, id uuid.UUID) (dao.Dictionary, error) {
	deleted, err := s.store.Dictionaries().Delete(ctx, id)
	if err != nil {
		return dao.Dictionary{}, wrapDAOErr(err)
	}

	if err := s.store.Lattices().DeleteByDictionary(ctx, id); err != nil {
		return dao.Dictionary{}, wrapDAOErr(err)
	}

	return deleted, nil
}

func (s *service) BuildLattice(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int) (parattice.Lattice, error) {
	if cached, err := s.store.Lattices().GetByRequest(ctx, dictID, sentence, shrink, maxDepth); err == nil {
		return parattice.LatticeFromBytes(cached.Data)
	}

	dict, err := s.GetDictionary(ctx, dictID)
	if err != nil {
		return parattice.Lattice{}, err
	}

	idx, err := parattice.NewPhraseIndex(dict.Data)
	if err != nil {
		return parattice.Lattice{}, serr.New(fmt.Sprintf("stored dictionary is invalid: %s", err.Error()), serr.ErrBadArgument)
	}

	lat := idx.GetLattice(sentence, shrink, maxDepth)

	data := lat.ToBytes()
	_, _ = s.store.Lattices().Create(ctx, dao.Lattice{
		DictionaryID: dictID,
		Sentence:     sentence,
		Shrink:       shrink,
		MaxDepth:     maxDepth,
		Data:         data,
	})

	return lat, nil
}

func (s *service) SearchLattice(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int, pattern []string) ([][]parattice.PathEdge, error) {
	lat, err := s.BuildLattice(ctx, dictID, sentence, shrink, maxDepth)
	if err != nil {
		return nil, err
	}

	searcher := parattice.NewSearcher(pattern)
	return searcher.Search(&lat), nil
}

func wrapDAOErr(err error) error {
	switch err {
	case dao.ErrNotFound:
		return serr.New("", serr.ErrNotFound)
	case dao.ErrConstraintViolation:
		return serr.New("", serr.ErrAlreadyExists)
	default:
		return serr.WrapDB("", err)
	}
}
