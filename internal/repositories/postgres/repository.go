package postgres

import (
	"context"

	"github.com/aulalink/activity-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the Postgres-backed aggregate of the per-entity repositories.
type Repository struct {
	db         *gorm.DB
	activity   repositories.ActivityRepository
	submission repositories.SubmissionRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		activity:   NewActivityPostgreSQL(db),
		submission: NewSubmissionPostgreSQL(db),
	}
}

func (r *Repository) Activity() repositories.ActivityRepository {
	return r.activity
}

func (r *Repository) Submission() repositories.SubmissionRepository {
	return r.submission
}

// Begin returns a repository scoped to a new transaction.
func (r *Repository) Begin(ctx context.Context) (repositories.Repository, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return NewRepository(tx), nil
}

func (r *Repository) Commit(ctx context.Context) error {
	return r.db.Commit().Error
}

func (r *Repository) Rollback(ctx context.Context) error {
	return r.db.Rollback().Error
}
