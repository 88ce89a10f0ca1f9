package handlers

import (
	"context"

	"anonboard/internal/models"
	"anonboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockBoard struct {
	createID  int64
	createErr error
	page      service.ListPage
	listErr   error
	post      models.Post
	getErr    error
	checkOK   bool
	checkErr  error
	updateErr error
	deleteErr error

	lastCreate     service.CreateParams
	lastListCursor int64
	lastGetID      int64
	lastCheckID    int64
	lastCheckPw    string
	lastUpdateID   int64
	lastUpdate     service.UpdateParams
	lastDeleteID   int64
	deleteCalls    int
}

func (m *mockBoard) Create(_ context.Context, p service.CreateParams) (int64, error) {
	m.lastCreate = p
	return m.createID, m.createErr
}

func (m *mockBoard) List(_ context.Context, cursor int64) (service.ListPage, error) {
	m.lastListCursor = cursor
	return m.page, m.listErr
}

func (m *mockBoard) Get(_ context.Context, id int64) (models.Post, error) {
	m.lastGetID = id
	return m.post, m.getErr
}

func (m *mockBoard) CheckPassword(_ context.Context, id int64, password string) (bool, error) {
	m.lastCheckID = id
	m.lastCheckPw = password
	return m.checkOK, m.checkErr
}

func (m *mockBoard) Update(_ context.Context, id int64, p service.UpdateParams) error {
	m.lastUpdateID = id
	m.lastUpdate = p
	return m.updateErr
}

func (m *mockBoard) Delete(_ context.Context, id int64) error {
	m.lastDeleteID = id
	m.deleteCalls++
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
