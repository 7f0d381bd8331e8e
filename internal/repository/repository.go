package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"transistor_bench/internal/models"
	"transistor_bench/internal/repository/db"
)

// ErrProfileNotFound is returned when a cooling profile id has no catalog entry.
var ErrProfileNotFound = errors.New("cooling profile not found")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// RunRepo persists completed simulation runs as opaque records.
type RunRepo interface {
	Save(ctx context.Context, run models.SimulationRun) error
	List(ctx context.Context, from, to time.Time) ([]models.SimulationRun, error)
}

// CoolingRepo is the read-only cooling profile catalog.
type CoolingRepo interface {
	List(ctx context.Context) ([]models.CoolingProfile, error)
	Get(ctx context.Context, id string) (models.CoolingProfile, error)
}

type Repository struct {
	Runs    RunRepo
	Cooling CoolingRepo
	Auth    Authorization
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Runs:    NewRunSQLite(database),
		Cooling: NewCoolingSQLite(database),
		Auth:    NewUserRepository(database),
	}
}

// InitDB opens/creates the SQLite file, applies pragmas, and ensures the
// schema plus the stock cooling profile catalog exist.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
