package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"coretemp/internal/models"
	"coretemp/internal/repository"
	"coretemp/internal/service"
)

// ---- Service Mocks ----

type mockArchive struct {
	listResp []models.FitRun
	listErr  error
	lastList service.RunFilter
	runs     map[string]models.FitRun
	getErr   error
}

func (m *mockArchive) List(ctx context.Context, f service.RunFilter) ([]models.FitRun, error) {
	m.lastList = f
	return m.listResp, m.listErr
}

func (m *mockArchive) Get(ctx context.Context, id string) (models.FitRun, error) {
	if m.getErr != nil {
		return models.FitRun{}, m.getErr
	}
	run, ok := m.runs[id]
	if !ok {
		return models.FitRun{}, repository.ErrRunNotFound
	}
	return run, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func doGet(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}
