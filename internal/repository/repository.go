package repository

import (
	"context"
	"database/sql"

	"anonboard/internal/models"
)

// PostRepo is the persistence surface for board posts. Soft-deleted rows are
// invisible to every method except Create.
type PostRepo interface {
	Create(ctx context.Context, p models.Post) (int64, error)
	List(ctx context.Context, beforeID int64, limit int) ([]models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, p models.Post) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

type Repository struct {
	Posts PostRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Posts: NewPostSQLite(db),
	}
}
