package service

import (
	"context"

	"anonboard/internal/models"
	"anonboard/internal/repository"
)

// CreateParams carries the fields of a new post before hashing.
type CreateParams struct {
	Title    string
	Content  string
	Password string
}

// UpdateParams carries a partial update. Empty fields are left untouched.
type UpdateParams struct {
	Title    string
	Content  string
	Password string
}

// ListPage is one keyset page of posts. NextCursor is 0 when the page was
// short, meaning there is nothing older to fetch.
type ListPage struct {
	Posts      []models.Post
	NextCursor int64
}

// Board exposes the post operations: create, list, read, password check,
// partial update and soft delete.
type Board interface {
	Create(ctx context.Context, p CreateParams) (int64, error)
	List(ctx context.Context, cursor int64) (ListPage, error)
	Get(ctx context.Context, id int64) (models.Post, error)
	CheckPassword(ctx context.Context, id int64, password string) (bool, error)
	Update(ctx context.Context, id int64, p UpdateParams) error
	Delete(ctx context.Context, id int64) error
}

// Hasher is the external hashing collaborator for post passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}

type Service struct {
	Board
	Hasher
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	hasher := NewBcryptHasher()
	return &Service{
		Board:  NewBoardService(repos.Posts, hasher),
		Hasher: hasher,
	}
}
