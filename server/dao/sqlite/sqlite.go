// Package sqlite provides a dao.Store backed by a modernc.org/sqlite
// database file on disk.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/parattice/server/dao"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string
	db         *sql.DB

	dicts    *DictionariesDB
	lattices *LatticesDB
}

// NewDatastore opens (creating if necessary) a sqlite database file within
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "parattice.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.dicts = &DictionariesDB{db: st.db}
	if err := st.dicts.init(); err != nil {
		return nil, err
	}

	st.lattices = &LatticesDB{db: st.db}
	if err := st.lattices.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Dictionaries() dao.DictionaryRepository {
	return s.dicts
}

func (s *store) Lattices() dao.LatticeRepository {
	return s.lattices
}

func (s *store) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
