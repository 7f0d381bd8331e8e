package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"transistor_bench/internal/models"
)

type CoolingSQLite struct {
	db *sql.DB
}

func NewCoolingSQLite(db *sql.DB) *CoolingSQLite { return &CoolingSQLite{db: db} }

// Ensure implementation of CoolingRepo interface at compile time.
var _ CoolingRepo = (*CoolingSQLite)(nil)

const (
	// Weakest cooling first, the order a selection form presents them in.
	selectProfilesSQL = `SELECT id, name, rth_ca, budget_w FROM cooling_profiles ORDER BY rth_ca DESC`
	selectProfileSQL  = `SELECT id, name, rth_ca, budget_w FROM cooling_profiles WHERE id = ?`
)

// List returns the full catalog. The catalog is read-only from the engine's
// point of view; nothing here mutates it.
func (r *CoolingSQLite) List(ctx context.Context) ([]models.CoolingProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfilesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CoolingProfile, 0, 8)
	for rows.Next() {
		var p models.CoolingProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.ThermalResistance, &p.CoolingBudget); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single profile by id.
func (r *CoolingSQLite) Get(ctx context.Context, id string) (models.CoolingProfile, error) {
	var p models.CoolingProfile
	err := r.db.QueryRowContext(ctx, selectProfileSQL, id).
		Scan(&p.ID, &p.Name, &p.ThermalResistance, &p.CoolingBudget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CoolingProfile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, id)
		}
		return models.CoolingProfile{}, fmt.Errorf("select cooling profile %q: %w", id, err)
	}
	return p, nil
}
