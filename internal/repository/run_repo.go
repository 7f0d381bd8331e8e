package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"transistor_bench/internal/models"

	"github.com/google/uuid"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

// Ensure implementation of RunRepo interface at compile time.
var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO simulation_runs (id, created_at, params, result)
		VALUES (?, ?, ?, ?)
	`
	selectRunsSQL = `SELECT id, created_at, params, result FROM simulation_runs`

	// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
	sqliteTimeLayout = "2006-01-02 15:04:05"
)

// Save appends a completed run. If ID or CreatedAt are empty, they're set.
// Params and result are stored as opaque JSON; nothing downstream depends on
// the storage format.
func (r *RunSQLite) Save(ctx context.Context, run models.SimulationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	ts := run.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("marshal run %s params: %w", run.ID, err)
	}
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("marshal run %s result: %w", run.ID, err)
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		ts.Format(sqliteTimeLayout),
		string(paramsJSON),
		string(resultJSON),
	)
	return err
}

// List returns runs within [from, to] (inclusive), newest first. Zero bounds
// are open.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time) ([]models.SimulationRun, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}

	q := selectRunsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SimulationRun, 0, 32)
	for rows.Next() {
		var (
			run       models.SimulationRun
			paramsStr string
			resultStr string
		)
		if err := rows.Scan(&run.ID, &run.CreatedAt, &paramsStr, &resultStr); err != nil {
			return nil, err
		}
		run.CreatedAt = run.CreatedAt.UTC()
		if err := json.Unmarshal([]byte(paramsStr), &run.Params); err != nil {
			return nil, fmt.Errorf("decode run %s params: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(resultStr), &run.Result); err != nil {
			return nil, fmt.Errorf("decode run %s result: %w", run.ID, err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
