// Package inmem provides a dao.Store backed entirely by in-process maps,
// for local development and tests where a sqlite file is unnecessary.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/dekarrin/parattice/server/dao"
	"github.com/google/uuid"
)

type store struct {
	dicts    *dictionaryRepo
	lattices *latticeRepo
}

// NewDatastore returns a dao.Store holding all data in memory. Data does
// not survive process restart.
func NewDatastore() dao.Store {
	return &store{
		dicts:    &dictionaryRepo{byID: make(map[uuid.UUID]dao.Dictionary)},
		lattices: &latticeRepo{byKey: make(map[latticeKey]dao.Lattice)},
	}
}

func (s *store) Dictionaries() dao.DictionaryRepository { return s.dicts }
func (s *store) Lattices() dao.LatticeRepository         { return s.lattices }
func (s *store) Close() error                            { return nil }

type dictionaryRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]dao.Dictionary
}

func (r *dictionaryRepo) Create(ctx context.Context, d dao.Dictionary) (dao.Dictionary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Name == d.Name {
			return dao.Dictionary{}, dao.ErrConstraintViolation
		}
	}

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now()
	d.Created = now
	d.Modified = now

	r.byID[d.ID] = d
	return d, nil
}

func (r *dictionaryRepo) GetByID(ctx context.Context, id uuid.UUID) (dao.Dictionary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dao.Dictionary{}, dao.ErrNotFound
	}
	return d, nil
}

func (r *dictionaryRepo) GetByName(ctx context.Context, name string) (dao.Dictionary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.byID {
		if d.Name == name {
			return d, nil
		}
	}
	return dao.Dictionary{}, dao.ErrNotFound
}

func (r *dictionaryRepo) GetAll(ctx context.Context) ([]dao.Dictionary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]dao.Dictionary, 0, len(r.byID))
	for _, d := range r.byID {
		all = append(all, d)
	}
	return all, nil
}

func (r *dictionaryRepo) Update(ctx context.Context, id uuid.UUID, d dao.Dictionary) (dao.Dictionary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return dao.Dictionary{}, dao.ErrNotFound
	}

	d.ID = id
	d.Created = existing.Created
	d.Modified = time.Now()
	r.byID[id] = d
	return d, nil
}

func (r *dictionaryRepo) Delete(ctx context.Context, id uuid.UUID) (dao.Dictionary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return dao.Dictionary{}, dao.ErrNotFound
	}
	delete(r.byID, id)
	return existing, nil
}

func (r *dictionaryRepo) Close() error { return nil }

type latticeKey struct {
	dictID   uuid.UUID
	sentence string
	shrink   bool
	maxDepth int
}

func keyFor(dictID uuid.UUID, sentence []string, shrink bool, maxDepth int) latticeKey {
	var joined string
	for i, w := range sentence {
		if i > 0 {
			joined += "\x1f"
		}
		joined += w
	}
	return latticeKey{dictID: dictID, sentence: joined, shrink: shrink, maxDepth: maxDepth}
}

type latticeRepo struct {
	mu    sync.RWMutex
	byKey map[latticeKey]dao.Lattice
}

func (r *latticeRepo) Create(ctx context.Context, l dao.Lattice) (dao.Lattice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.Created = time.Now()
	r.byKey[keyFor(l.DictionaryID, l.Sentence, l.Shrink, l.MaxDepth)] = l
	return l, nil
}

func (r *latticeRepo) GetByRequest(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int) (dao.Lattice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byKey[keyFor(dictID, sentence, shrink, maxDepth)]
	if !ok {
		return dao.Lattice{}, dao.ErrNotFound
	}
	return l, nil
}

func (r *latticeRepo) DeleteByDictionary(ctx context.Context, dictID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.byKey {
		if k.dictID == dictID {
			delete(r.byKey, k)
		}
	}
	return nil
}

func (r *latticeRepo) Close() error { return nil }
