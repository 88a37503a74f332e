package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scriptdeck/internal/database"
)

// ScriptRepo handles saved scripts.
type ScriptRepo struct {
	db *sql.DB
}

func NewScriptRepo(db *sql.DB) *ScriptRepo {
	return &ScriptRepo{db: db}
}

func (r *ScriptRepo) Upsert(ctx context.Context, s Script) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO scripts(id, name, body, last_run_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 body=excluded.body,
	 updated_at=CURRENT_TIMESTAMP;
	`, s.ID, s.Name, s.Body, s.LastRunAt)
	return err
}

func (r *ScriptRepo) List(ctx context.Context) ([]Script, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, body, last_run_at, created_at, updated_at
	FROM scripts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Script
	for rows.Next() {
		var s Script
		if err := rows.Scan(&s.ID, &s.Name, &s.Body, &s.LastRunAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ScriptRepo) Get(ctx context.Context, id string) (*Script, error) {
	var s Script
	err := r.db.QueryRowContext(ctx, `
	SELECT id, name, body, last_run_at, created_at, updated_at
	FROM scripts WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.Body, &s.LastRunAt, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScriptRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM scripts WHERE id = ?`, id)
	return err
}

// RecordRun persists the body that just ran and stamps last_run_at in one
// transaction, so the timestamp always refers to the stored body.
func (r *ScriptRepo) RecordRun(ctx context.Context, id, body string, at time.Time) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
		UPDATE scripts SET body = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, body, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("script %s not found", id)
		}
		_, err = tx.ExecContext(ctx, `UPDATE scripts SET last_run_at = ? WHERE id = ?`, at, id)
		return err
	})
}
