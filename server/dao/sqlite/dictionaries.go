package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/server/dao"
	"github.com/google/uuid"
)

// DictionariesDB is a dao.DictionaryRepository backed by a sqlite table.
// Dictionary contents are stored as TOML text, matching the file format
// loaded by internal/dictconf, so a row can be dumped straight to a file a
// user could hand-edit and reload.
type DictionariesDB struct {
	db *sql.DB
}

func (r *DictionariesDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS dictionaries (
			id       TEXT PRIMARY KEY,
			name     TEXT UNIQUE NOT NULL,
			data     TEXT NOT NULL,
			created  INTEGER NOT NULL,
			modified INTEGER NOT NULL
		);
	`)
	return wrapDBError(err)
}

// dictDoc is the TOML document shape for a stored Dictionary: a top-level
// table is required, so the group/phrase/token tree is nested under a
// single "groups" key.
type dictDoc struct {
	Groups [][][]string `toml:"groups"`
}

func convertToDB_Dictionary(d parattice.Dictionary) (string, error) {
	doc := dictDoc{}
	for _, group := range d {
		var g [][]string
		for _, phrase := range group {
			g = append(g, []string(phrase))
		}
		doc.Groups = append(doc.Groups, g)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func convertFromDB_Dictionary(s string) (parattice.Dictionary, error) {
	var doc dictDoc
	if _, err := toml.Decode(s, &doc); err != nil {
		return nil, err
	}

	dict := make(parattice.Dictionary, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		group := make(parattice.Group, 0, len(g))
		for _, phrase := range g {
			group = append(group, parattice.Phrase(phrase))
		}
		dict = append(dict, group)
	}
	return dict, nil
}

func (r *DictionariesDB) Create(ctx context.Context, d dao.Dictionary) (dao.Dictionary, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now()
	d.Created = now
	d.Modified = now

	data, err := convertToDB_Dictionary(d.Data)
	if err != nil {
		return dao.Dictionary{}, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO dictionaries (id, name, data, created, modified) VALUES (?, ?, ?, ?, ?)`,
		d.ID.String(), d.Name, data, d.Created.Unix(), d.Modified.Unix(),
	)
	if err != nil {
		return dao.Dictionary{}, wrapDBError(err)
	}

	return d, nil
}

func (r *DictionariesDB) scanRow(row interface{ Scan(...interface{}) error }) (dao.Dictionary, error) {
	var idStr, name, data string
	var created, modified int64

	if err := row.Scan(&idStr, &name, &data, &created, &modified); err != nil {
		return dao.Dictionary{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return dao.Dictionary{}, dao.ErrDecodingFailure
	}

	dict, err := convertFromDB_Dictionary(data)
	if err != nil {
		return dao.Dictionary{}, dao.ErrDecodingFailure
	}

	return dao.Dictionary{
		ID:       id,
		Name:     name,
		Data:     dict,
		Created:  time.Unix(created, 0),
		Modified: time.Unix(modified, 0),
	}, nil
}

func (r *DictionariesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Dictionary, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, data, created, modified FROM dictionaries WHERE id = ?`, id.String())
	return r.scanRow(row)
}

func (r *DictionariesDB) GetByName(ctx context.Context, name string) (dao.Dictionary, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, data, created, modified FROM dictionaries WHERE name = ?`, name)
	return r.scanRow(row)
}

func (r *DictionariesDB) GetAll(ctx context.Context) ([]dao.Dictionary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, data, created, modified FROM dictionaries ORDER BY name`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Dictionary
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, d)
	}
	return all, wrapDBError(rows.Err())
}

func (r *DictionariesDB) Update(ctx context.Context, id uuid.UUID, d dao.Dictionary) (dao.Dictionary, error) {
	data, err := convertToDB_Dictionary(d.Data)
	if err != nil {
		return dao.Dictionary{}, err
	}
	d.Modified = time.Now()

	res, err := r.db.ExecContext(ctx,
		`UPDATE dictionaries SET name = ?, data = ?, modified = ? WHERE id = ?`,
		d.Name, data, d.Modified.Unix(), id.String(),
	)
	if err != nil {
		return dao.Dictionary{}, wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dao.Dictionary{}, wrapDBError(err)
	}
	if n == 0 {
		return dao.Dictionary{}, dao.ErrNotFound
	}

	d.ID = id
	return d, nil
}

func (r *DictionariesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Dictionary, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return dao.Dictionary{}, err
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM dictionaries WHERE id = ?`, id.String())
	if err != nil {
		return dao.Dictionary{}, wrapDBError(err)
	}

	return existing, nil
}

func (r *DictionariesDB) Close() error {
	return nil
}
