// Package sqlite is an optional queryable backend: submissions stored in
// long format (one row per field value) so schema widening never needs an
// ALTER TABLE.
package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/soulware-systems/training-survey/model"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite: open")
	}

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlite: pragma")
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if err = migrateDB(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Name() string { return "sqlite" }

// Append inserts the submission and its field values in one transaction.
// Field order is sorted by key so column reconstruction is deterministic,
// matching the widening order of the file backends.
func (s *Store) Append(ctx context.Context, rec model.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	var rowId int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO submission (submission_id) VALUES (?)
		RETURNING id`,
		rec[model.ColSubmissionID],
	).Scan(&rowId)
	if err != nil {
		return errors.Wrap(err, "sqlite: insert submission")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO submission_field (submission_id, seq, field, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "sqlite: prepare fields")
	}
	defer stmt.Close()

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for seq, key := range keys {
		if _, err := stmt.ExecContext(ctx, rowId, seq, key, rec[key]); err != nil {
			return errors.Wrap(err, "sqlite: insert field")
		}
	}

	return errors.Wrap(tx.Commit(), "sqlite: commit")
}

// ReadAll reconstructs wide records in submission order, widening the
// column set as new field names appear.
func (s *Store) ReadAll(ctx context.Context) (model.Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.submission_id, f.field, f.value
		FROM submission_field f
		ORDER BY f.submission_id, f.seq`)
	if err != nil {
		return model.Table{}, errors.Wrap(err, "sqlite: query")
	}
	defer rows.Close()

	t := model.Table{}
	var cur int64 = -1
	var rec model.Record
	for rows.Next() {
		var id int64
		var field, value string
		if err := rows.Scan(&id, &field, &value); err != nil {
			return model.Table{}, errors.Wrap(err, "sqlite: scan")
		}
		if id != cur {
			if rec != nil {
				t.Rows = append(t.Rows, rec)
			}
			cur, rec = id, model.Record{}
		}
		rec[field] = value
		t.WidenTo([]string{field})
	}
	if rec != nil {
		t.Rows = append(t.Rows, rec)
	}
	return t, errors.Wrap(rows.Err(), "sqlite: iterate")
}
