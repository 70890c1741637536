// Package sqlite provides a durable tabledb.Store backed by a single sqlite
// database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/tableau/internal/tabledb"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string
	db         *sql.DB
	history    *historyDB
}

// NewDatastore opens (creating if needed) a sqlite database under
// storageDir and returns a tabledb.Store backed by it.
func NewDatastore(storageDir string) (tabledb.Store, error) {
	st := &store{dbFilename: "history.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.history = &historyDB{db: st.db}
	if err := st.history.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) History() tabledb.HistoryRepository { return s.history }

func (s *store) Close() error {
	return s.db.Close()
}

type historyDB struct {
	db *sql.DB
}

func (repo *historyDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		fingerprint TEXT NOT NULL PRIMARY KEY,
		created INTEGER NOT NULL,
		data BLOB NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// encode marshals everything but the Fingerprint (the primary key, stored
// in its own column for indexed lookup) and Created (stored in its own
// integer column) via rezi.
func encode(rec tabledb.Record) []byte {
	return rezi.EncBinary(rec)
}

func decode(data []byte, rec *tabledb.Record) error {
	n, err := rezi.DecBinary(data, rec)
	if err != nil {
		return fmt.Errorf("%s: %w", tabledb.ErrDecodingFailure, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: decoded byte count mismatch; consumed %d/%d bytes", tabledb.ErrDecodingFailure, n, len(data))
	}
	return nil
}

func (repo *historyDB) Put(ctx context.Context, rec tabledb.Record) (tabledb.Record, error) {
	if rec.Created.IsZero() {
		rec.Created = time.Now()
	}

	data := encode(rec)

	_, err := repo.db.ExecContext(ctx, `INSERT INTO history (fingerprint, created, data)
		VALUES (?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET created=excluded.created, data=excluded.data;`,
		rec.Fingerprint, rec.Created.Unix(), data,
	)
	if err != nil {
		return tabledb.Record{}, wrapDBError(err)
	}

	return rec, nil
}

func (repo *historyDB) Get(ctx context.Context, fingerprint string) (tabledb.Record, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT created, data FROM history WHERE fingerprint = ?;`, fingerprint)

	var created int64
	var data []byte
	if err := row.Scan(&created, &data); err != nil {
		return tabledb.Record{}, wrapDBError(err)
	}

	rec := tabledb.Record{Fingerprint: fingerprint, Created: time.Unix(created, 0)}
	if err := decode(data, &rec); err != nil {
		return tabledb.Record{}, err
	}
	return rec, nil
}

func (repo *historyDB) Recent(ctx context.Context, limit int) ([]tabledb.Record, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT fingerprint, created, data FROM history ORDER BY created DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []tabledb.Record
	for rows.Next() {
		var fingerprint string
		var created int64
		var data []byte
		if err := rows.Scan(&fingerprint, &created, &data); err != nil {
			return nil, wrapDBError(err)
		}

		rec := tabledb.Record{Fingerprint: fingerprint, Created: time.Unix(created, 0)}
		if err := decode(data, &rec); err != nil {
			return nil, err
		}
		all = append(all, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return all, nil
}

func (repo *historyDB) Close() error {
	return repo.db.Close()
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return tabledb.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return tabledb.ErrNotFound
	}
	return err
}
