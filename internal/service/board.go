package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anonboard/internal/models"
	"anonboard/internal/repository"
)

// PageSize is the fixed number of posts per listing page.
const PageSize = 20

// Domain errors for board flows.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyTitle   = errors.New("title is required")
	ErrEmptyContent = errors.New("content is required")
)

// BoardService handles post logic on top of the repo and the hashing collaborator.
type BoardService struct {
	posts  repository.PostRepo
	hasher Hasher
}

func NewBoardService(posts repository.PostRepo, hasher Hasher) *BoardService {
	return &BoardService{posts: posts, hasher: hasher}
}

var _ Board = (*BoardService)(nil)

// Create hashes the password and inserts the post.
func (s *BoardService) Create(ctx context.Context, p CreateParams) (int64, error) {
	if strings.TrimSpace(p.Title) == "" {
		return 0, ErrEmptyTitle
	}
	if strings.TrimSpace(p.Content) == "" {
		return 0, ErrEmptyContent
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}

	return s.posts.Create(ctx, models.Post{
		Title:        p.Title,
		Content:      p.Content,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

// List returns one page of non-deleted posts, newest first. With a cursor,
// every returned post is strictly older than it. NextCursor is set only when
// a full page came back, so callers know another page may exist.
func (s *BoardService) List(ctx context.Context, cursor int64) (ListPage, error) {
	posts, err := s.posts.List(ctx, cursor, PageSize)
	if err != nil {
		return ListPage{}, err
	}

	page := ListPage{Posts: posts}
	if len(posts) == PageSize {
		page.NextCursor = posts[len(posts)-1].ID
	}
	return page, nil
}

// Get returns a single non-deleted post.
func (s *BoardService) Get(ctx context.Context, id int64) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if p == nil {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}

// CheckPassword compares plaintext against the post's stored hash.
// Absent or soft-deleted posts fail with ErrPostNotFound, never a false match.
func (s *BoardService) CheckPassword(ctx context.Context, id int64, password string) (bool, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, ErrPostNotFound
	}
	return s.hasher.Compare(password, p.PasswordHash), nil
}

// Update merges the partial payload into the stored post: empty fields are
// left untouched, a provided password is hashed before persistence.
// Read-then-write with no transaction; the final UPDATE still filters the
// soft-delete flag, so a row deleted in between reports not-found.
func (s *BoardService) Update(ctx context.Context, id int64, p UpdateParams) error {
	cur, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrPostNotFound
	}

	if p.Title != "" {
		cur.Title = p.Title
	}
	if p.Content != "" {
		cur.Content = p.Content
	}
	if p.Password != "" {
		hash, err := s.hasher.Hash(p.Password)
		if err != nil {
			return fmt.Errorf("invalid password: %w", err)
		}
		cur.PasswordHash = hash
	}

	ok, err := s.posts.Update(ctx, *cur)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}

// Delete soft-deletes a post. A second delete of the same id reports
// not-found since the flag filter excludes already-deleted rows.
func (s *BoardService) Delete(ctx context.Context, id int64) error {
	ok, err := s.posts.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}
