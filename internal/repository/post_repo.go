package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"anonboard/internal/models"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite { return &PostSQLite{db: db} }

// Ensure implementation of PostRepo interface at compile time.
var _ PostRepo = (*PostSQLite)(nil)

const (
	insertPostSQL = `INSERT INTO posts (title, content, password_hash, created_at, is_deleted)
		VALUES (?, ?, ?, ?, 0)`

	selectPostByIDSQL = `SELECT id, title, content, password_hash, created_at
		FROM posts WHERE id = ? AND is_deleted = 0`

	// Keyset page: newest first, strictly older than the cursor when given.
	selectPostsPageSQL = `SELECT id, title, content, password_hash, created_at
		FROM posts WHERE is_deleted = 0 ORDER BY id DESC LIMIT ?`

	selectPostsPageBeforeSQL = `SELECT id, title, content, password_hash, created_at
		FROM posts WHERE is_deleted = 0 AND id < ? ORDER BY id DESC LIMIT ?`

	updatePostSQL = `UPDATE posts SET title = ?, content = ?, password_hash = ?
		WHERE id = ? AND is_deleted = 0`

	softDeletePostSQL = `UPDATE posts SET is_deleted = 1
		WHERE id = ? AND is_deleted = 0`
)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Create inserts a new post and returns its ID. A zero CreatedAt is set to now.
func (r *PostSQLite) Create(ctx context.Context, p models.Post) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	} else {
		p.CreatedAt = p.CreatedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertPostSQL,
		p.Title,
		p.Content,
		p.PasswordHash,
		p.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for post: %w", err)
	}
	return lastID, nil
}

// List returns up to limit non-deleted posts ordered by id descending.
// When beforeID > 0 only rows with id < beforeID are returned.
func (r *PostSQLite) List(ctx context.Context, beforeID int64, limit int) ([]models.Post, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if beforeID > 0 {
		rows, err = r.db.QueryContext(ctx, selectPostsPageBeforeSQL, beforeID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, selectPostsPageSQL, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("select posts page: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, limit)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a non-deleted post. Returns (nil, nil) if absent or soft-deleted.
func (r *PostSQLite) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostByIDSQL, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d: %w", id, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// Update overwrites title, content and password hash of a non-deleted post.
// Returns false when no row matched (absent or soft-deleted).
func (r *PostSQLite) Update(ctx context.Context, p models.Post) (bool, error) {
	res, err := r.db.ExecContext(ctx, updatePostSQL, p.Title, p.Content, p.PasswordHash, p.ID)
	if err != nil {
		return false, fmt.Errorf("update post %d: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for post %d: %w", p.ID, err)
	}
	return n > 0, nil
}

// SoftDelete flags a non-deleted post as deleted. Returns false when no row
// matched, which also covers a second delete of the same id.
func (r *PostSQLite) SoftDelete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, softDeletePostSQL, id)
	if err != nil {
		return false, fmt.Errorf("soft delete post %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for post %d: %w", id, err)
	}
	return n > 0, nil
}
