package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthub-backend/internal/domains/agreement/model"
	"renthub-backend/internal/shared/middleware"
)

type fakeAgreementRepo struct {
	agreements map[uuid.UUID]*model.Agreement
	updates    map[uuid.UUID]string
}

func newFakeAgreementRepo(agreements ...*model.Agreement) *fakeAgreementRepo {
	f := &fakeAgreementRepo{
		agreements: map[uuid.UUID]*model.Agreement{},
		updates:    map[uuid.UUID]string{},
	}
	for _, a := range agreements {
		f.agreements[a.ID] = a
	}
	return f
}

func (f *fakeAgreementRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Agreement, error) {
	a, ok := f.agreements[id]
	if !ok {
		return nil, model.ErrAgreementNotFound
	}
	return a, nil
}

func (f *fakeAgreementRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*model.Agreement, error) {
	out := make([]*model.Agreement, 0)
	for _, a := range f.agreements {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAgreementRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	a, ok := f.agreements[id]
	if !ok {
		return model.ErrAgreementNotFound
	}
	a.Status = status
	f.updates[id] = status
	return nil
}

// setupRouter mounts the handler behind a stub that injects the caller
// identity the way AuthMiddleware does
func setupRouter(h *AgreementHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
	})
	router.GET("/owner/agreements", h.ListForOwner)
	router.PUT("/admin/agreements/:agreement_id/status", h.UpdateStatus)
	return router
}

func TestListForOwner(t *testing.T) {
	ownerID := uuid.New()
	mine := &model.Agreement{
		ID:          uuid.New(),
		PropertyID:  uuid.New(),
		TenantID:    uuid.New(),
		MonthlyRent: decimal.RequireFromString("75000"),
		Status:      model.StatusActive,
		OwnerID:     ownerID,
	}
	foreign := &model.Agreement{
		ID:      uuid.New(),
		Status:  model.StatusActive,
		OwnerID: uuid.New(),
	}

	h := NewAgreementHandler(newFakeAgreementRepo(mine, foreign))
	router := setupRouter(h, ownerID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/owner/agreements", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    []model.Agreement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1, "only the caller's agreements are listed")
	assert.Equal(t, mine.ID, body.Data[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	agreement := &model.Agreement{
		ID:      uuid.New(),
		Status:  model.StatusActive,
		OwnerID: uuid.New(),
	}
	repo := newFakeAgreementRepo(agreement)
	router := setupRouter(NewAgreementHandler(repo), uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		"/admin/agreements/"+agreement.ID.String()+"/status",
		strings.NewReader(`{"status":"terminated"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.StatusTerminated, repo.updates[agreement.ID])
}

func TestUpdateStatus_Rejections(t *testing.T) {
	agreement := &model.Agreement{
		ID:      uuid.New(),
		Status:  model.StatusActive,
		OwnerID: uuid.New(),
	}

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "unknown status value",
			path:       "/admin/agreements/" + agreement.ID.String() + "/status",
			body:       `{"status":"paused"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed agreement id",
			path:       "/admin/agreements/not-a-uuid/status",
			body:       `{"status":"terminated"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown agreement",
			path:       "/admin/agreements/" + uuid.NewString() + "/status",
			body:       `{"status":"terminated"}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAgreementRepo(agreement)
			router := setupRouter(NewAgreementHandler(repo), uuid.New())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, repo.updates, "rejected requests change nothing")
		})
	}
}
