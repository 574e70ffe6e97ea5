package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/dekarrin/parattice/server/dao"
	"github.com/google/uuid"
)

// LatticesDB is a dao.LatticeRepository backed by a sqlite table. It caches
// previously-built lattices by their exact request parameters so that
// repeat requests for the same (dictionary, sentence, shrink, max depth)
// tuple skip phrase-index expansion entirely.
type LatticesDB struct {
	db *sql.DB
}

func (r *LatticesDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS lattices (
			id            TEXT PRIMARY KEY,
			dictionary_id TEXT NOT NULL,
			sentence      TEXT NOT NULL,
			shrink        INTEGER NOT NULL,
			max_depth     INTEGER NOT NULL,
			data          TEXT NOT NULL,
			created       INTEGER NOT NULL,
			UNIQUE(dictionary_id, sentence, shrink, max_depth)
		);
	`)
	return wrapDBError(err)
}

func convertToDB_Sentence(sentence []string) (string, error) {
	b, err := json.Marshal(sentence)
	return string(b), err
}

func convertFromDB_Sentence(s string) ([]string, error) {
	var sentence []string
	err := json.Unmarshal([]byte(s), &sentence)
	return sentence, err
}

func (r *LatticesDB) Create(ctx context.Context, l dao.Lattice) (dao.Lattice, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.Created = time.Now()

	sentence, err := convertToDB_Sentence(l.Sentence)
	if err != nil {
		return dao.Lattice{}, dao.ErrDecodingFailure
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lattices (id, dictionary_id, sentence, shrink, max_depth, data, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(dictionary_id, sentence, shrink, max_depth) DO UPDATE SET data = excluded.data, created = excluded.created`,
		l.ID.String(), l.DictionaryID.String(), sentence, l.Shrink, l.MaxDepth,
		base64.StdEncoding.EncodeToString(l.Data), l.Created.Unix(),
	)
	if err != nil {
		return dao.Lattice{}, wrapDBError(err)
	}

	return l, nil
}

func (r *LatticesDB) GetByRequest(ctx context.Context, dictID uuid.UUID, sentence []string, shrink bool, maxDepth int) (dao.Lattice, error) {
	sentenceStr, err := convertToDB_Sentence(sentence)
	if err != nil {
		return dao.Lattice{}, dao.ErrDecodingFailure
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, dictionary_id, sentence, shrink, max_depth, data, created FROM lattices
		 WHERE dictionary_id = ? AND sentence = ? AND shrink = ? AND max_depth = ?`,
		dictID.String(), sentenceStr, shrink, maxDepth,
	)

	var idStr, dictIDStr, storedSentence, data string
	var storedShrink bool
	var storedMaxDepth int
	var created int64

	if err := row.Scan(&idStr, &dictIDStr, &storedSentence, &storedShrink, &storedMaxDepth, &data, &created); err != nil {
		return dao.Lattice{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return dao.Lattice{}, dao.ErrDecodingFailure
	}
	parsedDictID, err := uuid.Parse(dictIDStr)
	if err != nil {
		return dao.Lattice{}, dao.ErrDecodingFailure
	}
	decodedSentence, err := convertFromDB_Sentence(storedSentence)
	if err != nil {
		return dao.Lattice{}, dao.ErrDecodingFailure
	}
	decodedData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return dao.Lattice{}, dao.ErrDecodingFailure
	}

	return dao.Lattice{
		ID:           id,
		DictionaryID: parsedDictID,
		Sentence:     decodedSentence,
		Shrink:       storedShrink,
		MaxDepth:     storedMaxDepth,
		Data:         decodedData,
		Created:      time.Unix(created, 0),
	}, nil
}

func (r *LatticesDB) DeleteByDictionary(ctx context.Context, dictID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lattices WHERE dictionary_id = ?`, dictID.String())
	return wrapDBError(err)
}

func (r *LatticesDB) Close() error {
	return nil
}
