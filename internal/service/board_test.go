package service

import (
	"context"
	"errors"
	"testing"

	"anonboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPostRepo is a lightweight in-test mock for repository.PostRepo.
type mockPostRepo struct {
	CreateFn     func(p models.Post) (int64, error)
	ListFn       func(beforeID int64, limit int) ([]models.Post, error)
	GetByIDFn    func(id int64) (*models.Post, error)
	UpdateFn     func(p models.Post) (bool, error)
	SoftDeleteFn func(id int64) (bool, error)

	createCalls []models.Post
	listCalls   []struct {
		beforeID int64
		limit    int
	}
	updateCalls []models.Post
}

func (m *mockPostRepo) Create(_ context.Context, p models.Post) (int64, error) {
	m.createCalls = append(m.createCalls, p)
	return m.CreateFn(p)
}

func (m *mockPostRepo) List(_ context.Context, beforeID int64, limit int) ([]models.Post, error) {
	m.listCalls = append(m.listCalls, struct {
		beforeID int64
		limit    int
	}{beforeID, limit})
	return m.ListFn(beforeID, limit)
}

func (m *mockPostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	return m.GetByIDFn(id)
}

func (m *mockPostRepo) Update(_ context.Context, p models.Post) (bool, error) {
	m.updateCalls = append(m.updateCalls, p)
	return m.UpdateFn(p)
}

func (m *mockPostRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	return m.SoftDeleteFn(id)
}

// fakeHasher makes hashing deterministic for assertions.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(plaintext string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (f *fakeHasher) Compare(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

func makePosts(ids ...int64) []models.Post {
	out := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Post{ID: id, Title: "t", Content: "c", PasswordHash: "hashed:pw"})
	}
	return out
}

func descendingIDs(n int, from int64) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, from-int64(i))
	}
	return ids
}

// --- Create ---

func TestBoardService_Create_HashesPasswordBeforePersisting(t *testing.T) {
	repo := &mockPostRepo{
		CreateFn: func(p models.Post) (int64, error) { return 11, nil },
	}
	svc := NewBoardService(repo, &fakeHasher{})

	id, err := svc.Create(context.Background(), CreateParams{
		Title: "hello", Content: "world", Password: "s3cr3t",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	require.Len(t, repo.createCalls, 1)
	got := repo.createCalls[0]
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, "world", got.Content)
	assert.Equal(t, "hashed:s3cr3t", got.PasswordHash, "raw password must not reach the repo")
	assert.False(t, got.CreatedAt.IsZero())
}

func TestBoardService_Create_RejectsBlankTitleAndContent(t *testing.T) {
	svc := NewBoardService(&mockPostRepo{}, &fakeHasher{})

	_, err := svc.Create(context.Background(), CreateParams{Title: "  ", Content: "c", Password: "p"})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(context.Background(), CreateParams{Title: "t", Content: "", Password: "p"})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestBoardService_Create_PropagatesHasherError(t *testing.T) {
	hashErr := errors.New("password is empty")
	repo := &mockPostRepo{CreateFn: func(p models.Post) (int64, error) { return 1, nil }}
	svc := NewBoardService(repo, &fakeHasher{hashErr: hashErr})

	_, err := svc.Create(context.Background(), CreateParams{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, hashErr)
	assert.Empty(t, repo.createCalls, "nothing may be persisted when hashing fails")
}

// --- List ---

func TestBoardService_List_PassesCursorAndFixedPageSize(t *testing.T) {
	repo := &mockPostRepo{
		ListFn: func(beforeID int64, limit int) ([]models.Post, error) {
			return makePosts(39, 38), nil
		},
	}
	svc := NewBoardService(repo, &fakeHasher{})

	page, err := svc.List(context.Background(), 40)
	require.NoError(t, err)

	require.Len(t, repo.listCalls, 1)
	assert.Equal(t, int64(40), repo.listCalls[0].beforeID)
	assert.Equal(t, PageSize, repo.listCalls[0].limit)

	assert.Len(t, page.Posts, 2)
	assert.Zero(t, page.NextCursor, "short page means no further pages")
}

func TestBoardService_List_FullPageSetsNextCursorToLastID(t *testing.T) {
	repo := &mockPostRepo{
		ListFn: func(beforeID int64, limit int) ([]models.Post, error) {
			return makePosts(descendingIDs(PageSize, 100)...), nil
		},
	}
	svc := NewBoardService(repo, &fakeHasher{})

	page, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, page.Posts, PageSize)
	assert.Equal(t, int64(100-PageSize+1), page.NextCursor)
}

// --- Get / CheckPassword ---

func TestBoardService_Get_NotFoundWhenRepoReturnsNil(t *testing.T) {
	repo := &mockPostRepo{GetByIDFn: func(id int64) (*models.Post, error) { return nil, nil }}
	svc := NewBoardService(repo, &fakeHasher{})

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBoardService_CheckPassword_NotFoundBeatsAnyMatch(t *testing.T) {
	// Absent or soft-deleted posts must yield not-found, never a false match.
	repo := &mockPostRepo{GetByIDFn: func(id int64) (*models.Post, error) { return nil, nil }}
	svc := NewBoardService(repo, &fakeHasher{})

	valid, err := svc.CheckPassword(context.Background(), 1, "pw")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.False(t, valid)
}

func TestBoardService_CheckPassword_ComparesAgainstStoredHash(t *testing.T) {
	post := models.Post{ID: 1, PasswordHash: "hashed:right"}
	repo := &mockPostRepo{GetByIDFn: func(id int64) (*models.Post, error) { return &post, nil }}
	svc := NewBoardService(repo, &fakeHasher{})

	valid, err := svc.CheckPassword(context.Background(), 1, "right")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.CheckPassword(context.Background(), 1, "wrong")
	require.NoError(t, err)
	assert.False(t, valid)
}

// --- Update ---

func TestBoardService_Update_MergesOnlyProvidedFields(t *testing.T) {
	stored := models.Post{ID: 5, Title: "old title", Content: "old content", PasswordHash: "hashed:old"}
	repo := &mockPostRepo{
		GetByIDFn: func(id int64) (*models.Post, error) { cp := stored; return &cp, nil },
		UpdateFn:  func(p models.Post) (bool, error) { return true, nil },
	}
	svc := NewBoardService(repo, &fakeHasher{})

	err := svc.Update(context.Background(), 5, UpdateParams{Content: "new content"})
	require.NoError(t, err)

	require.Len(t, repo.updateCalls, 1)
	got := repo.updateCalls[0]
	assert.Equal(t, "old title", got.Title, "absent field must stay untouched")
	assert.Equal(t, "new content", got.Content)
	assert.Equal(t, "hashed:old", got.PasswordHash, "absent password must keep the old hash")
}

func TestBoardService_Update_RehashesProvidedPassword(t *testing.T) {
	stored := models.Post{ID: 5, Title: "t", Content: "c", PasswordHash: "hashed:old"}
	repo := &mockPostRepo{
		GetByIDFn: func(id int64) (*models.Post, error) { cp := stored; return &cp, nil },
		UpdateFn:  func(p models.Post) (bool, error) { return true, nil },
	}
	svc := NewBoardService(repo, &fakeHasher{})

	err := svc.Update(context.Background(), 5, UpdateParams{Password: "fresh"})
	require.NoError(t, err)

	require.Len(t, repo.updateCalls, 1)
	assert.Equal(t, "hashed:fresh", repo.updateCalls[0].PasswordHash)
}

func TestBoardService_Update_NotFoundWhenAbsentOrDeleted(t *testing.T) {
	repo := &mockPostRepo{GetByIDFn: func(id int64) (*models.Post, error) { return nil, nil }}
	svc := NewBoardService(repo, &fakeHasher{})

	err := svc.Update(context.Background(), 9, UpdateParams{Title: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBoardService_Update_NotFoundWhenRowVanishedBetweenReadAndWrite(t *testing.T) {
	stored := models.Post{ID: 5, Title: "t", Content: "c", PasswordHash: "h"}
	repo := &mockPostRepo{
		GetByIDFn: func(id int64) (*models.Post, error) { cp := stored; return &cp, nil },
		UpdateFn:  func(p models.Post) (bool, error) { return false, nil },
	}
	svc := NewBoardService(repo, &fakeHasher{})

	err := svc.Update(context.Background(), 5, UpdateParams{Title: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

// --- Delete ---

func TestBoardService_Delete_SecondCallReportsNotFound(t *testing.T) {
	deleted := false
	repo := &mockPostRepo{
		SoftDeleteFn: func(id int64) (bool, error) {
			if deleted {
				return false, nil
			}
			deleted = true
			return true, nil
		},
	}
	svc := NewBoardService(repo, &fakeHasher{})

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.ErrorIs(t, svc.Delete(context.Background(), 3), ErrPostNotFound)
}
