package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coretemp/internal/models"
	"coretemp/internal/repository/db"
)

// ErrRunNotFound is returned by RunRepo.Get for unknown ids.
var ErrRunNotFound = errors.New("fit run not found")

// RunRepo persists fit runs and their lines.
type RunRepo interface {
	Append(ctx context.Context, run models.FitRun) (string, error)
	List(ctx context.Context, from, to time.Time) ([]models.FitRun, error)
	Get(ctx context.Context, id string) (models.FitRun, error)
}

type Repository struct {
	RunRepo RunRepo
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		RunRepo: NewRunSQLite(conn),
	}
}

// InitDB opens the archive database at path.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
