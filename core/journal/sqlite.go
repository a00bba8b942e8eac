package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS production_plans (
        id TEXT PRIMARY KEY,
        ts INTEGER,
        load INTEGER,
        balanced INTEGER,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS plan_setpoints (
        plan_id TEXT,
        plant TEXT,
        power INTEGER
    );
    CREATE INDEX IF NOT EXISTS plan_setpoints_plant ON plan_setpoints (plant);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the record and its setpoints in one transaction.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) (err error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO production_plans (id, ts, load, balanced, record) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UnixNano(), rec.Load, rec.Summary.Balanced, string(b)); err != nil {
		return err
	}
	for _, e := range rec.Plan {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO plan_setpoints (plan_id, plant, power) VALUES (?, ?, ?)`,
			rec.ID, e.Name, e.Power); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Query returns records matching q ordered by timestamp.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Record, error) {
	var args []any
	query := `SELECT record FROM production_plans WHERE 1=1`
	if !q.Start.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, q.Start.UnixNano())
	}
	if !q.End.IsZero() {
		query += ` AND ts <= ?`
		args = append(args, q.End.UnixNano())
	}
	if q.PlantName != "" {
		query += ` AND id IN (SELECT plan_id FROM plan_setpoints WHERE plant = ? AND power != 0)`
		args = append(args, q.PlantName)
	}
	query += ` ORDER BY ts`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
