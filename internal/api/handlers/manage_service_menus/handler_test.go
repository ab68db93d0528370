package manage_service_menus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalog struct {
	activeOnly *bool
	deleted    []int64
	err        error
}

func (f *fakeCatalog) ListServiceMenus(_ context.Context, activeOnly bool) (*models.ServiceMenuListResponse, error) {
	f.activeOnly = &activeOnly
	return &models.ServiceMenuListResponse{ServiceMenus: []models.ServiceMenuResponse{{ID: 1, Name: "Tune-up"}}}, nil
}

func (f *fakeCatalog) CreateServiceMenu(_ context.Context, req *models.ServiceMenuRequest) (*models.ServiceMenuResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceMenuResponse{ID: 2, Name: req.Name, EstimatedDuration: req.EstimatedDuration}, nil
}

func (f *fakeCatalog) UpdateServiceMenu(_ context.Context, id int64, req *models.ServiceMenuRequest) (*models.ServiceMenuResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceMenuResponse{ID: id, Name: req.Name}, nil
}

func (f *fakeCatalog) DeleteServiceMenu(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestList_IncludesInactive(t *testing.T) {
	svc := &fakeCatalog{}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/service-menus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.activeOnly)
	assert.False(t, *svc.activeOnly)
}

func TestCreate(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/service-menus",
		strings.NewReader(`{"name":"Overhaul","estimatedDuration":120,"priceEstimate":15000}`))

	NewHandler(&fakeCatalog{}, nopLogger{}).Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.ServiceMenuResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Overhaul", resp.Name)
	assert.Equal(t, 120, resp.EstimatedDuration)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         fmt.Errorf("%w: name is required", catalog.ErrInvalidInput),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid input data: name is required",
		},
		{name: "duplicate", err: catalog.ErrAlreadyExists, wantStatus: http.StatusConflict, wantMessage: msgAlreadyExists},
		{name: "internal", err: catalog.ErrInternal, wantStatus: http.StatusInternalServerError, wantMessage: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

			NewHandler(&fakeCatalog{err: tt.err}, nopLogger{}).Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeCatalog{}
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": "4"})

		NewHandler(svc, nopLogger{}).Delete(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []int64{4}, svc.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": "4"})

		NewHandler(&fakeCatalog{err: catalog.ErrServiceMenuNotFound}, nopLogger{}).Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
