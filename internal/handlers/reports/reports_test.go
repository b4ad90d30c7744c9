package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/dto"
	"github.com/revibe-delhi/revibe/internal/service/reportservice"
	"github.com/revibe-delhi/revibe/pkg/auth"
)

func NewMock(t *testing.T) (*ReportHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authedRequest(method, target, body string, urlParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 1)
	if len(urlParams) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range urlParams {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestAddReportHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful submission",
			body: `{"title":"Overflowing bin","description":"Bin at the market corner","location":"Lajpat Nagar II"}`,
			prepareMock: func() {
				service.EXPECT().CreateReport(gomock.Any(), 1, "Overflowing bin", "Bin at the market corner", "Lajpat Nagar II", "").Return(&domain.Report{
					ID:        42,
					UserID:    1,
					Title:     "Overflowing bin",
					Status:    reportservice.PendingStatus,
					CreatedAt: time.Now(),
				}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Missing title",
			body:         `{"description":"Bin at the market corner","location":"Lajpat Nagar II"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			body:         `{invalid json`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Service failure",
			body: `{"title":"Overflowing bin","description":"Bin at the market corner","location":"Lajpat Nagar II"}`,
			prepareMock: func() {
				service.EXPECT().CreateReport(gomock.Any(), 1, "Overflowing bin", "Bin at the market corner", "Lajpat Nagar II", "").Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("POST", "/api/reports", tt.body, nil)
			rr := httptest.NewRecorder()
			handler.AddReport(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusCreated {
				var resp dto.ReportResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, 42, resp.ID)
				assert.Equal(t, reportservice.PendingStatus, resp.Status)
			}
		})
	}
}

func TestGetReportsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Returns the user's reports",
			prepareMock: func() {
				service.EXPECT().GetReports(gomock.Any(), 1).Return([]domain.Report{
					{ID: 2, UserID: 1, Title: "Street light broken", Status: reportservice.PendingStatus},
					{ID: 1, UserID: 1, Title: "Overflowing bin", Status: reportservice.ResolvedStatus, PointsAwarded: 10},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No reports yet",
			prepareMock: func() {
				service.EXPECT().GetReports(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("GET", "/api/reports", "", nil)
			rr := httptest.NewRecorder()
			handler.GetReports(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.ReportResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp, tt.expectedLen)
			}
		})
	}
}

func TestGetReportHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Own report",
			id:   "42",
			prepareMock: func() {
				service.EXPECT().GetReport(gomock.Any(), 42).Return(&domain.Report{ID: 42, UserID: 1, Title: "Overflowing bin"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Someone else's report looks like a missing one",
			id:   "42",
			prepareMock: func() {
				service.EXPECT().GetReport(gomock.Any(), 42).Return(&domain.Report{ID: 42, UserID: 2}, nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Unknown report",
			id:   "42",
			prepareMock: func() {
				service.EXPECT().GetReport(gomock.Any(), 42).Return(nil, domain.ErrReportNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Malformed id",
			id:           "forty-two",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("GET", "/api/reports/"+tt.id, "", map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()
			handler.GetReport(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Resolving a report",
			body: `{"status":"resolved"}`,
			prepareMock: func() {
				now := time.Now()
				service.EXPECT().UpdateStatus(gomock.Any(), 42, "resolved").Return(&domain.Report{
					ID: 42, UserID: 1, Status: reportservice.ResolvedStatus, PointsAwarded: 10, ResolvedAt: &now,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Status outside the lifecycle",
			body:         `{"status":"closed"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown report",
			body: `{"status":"resolved"}`,
			prepareMock: func() {
				service.EXPECT().UpdateStatus(gomock.Any(), 42, "resolved").Return(nil, domain.ErrReportNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authedRequest("PATCH", "/api/reports/42/status", tt.body, map[string]string{"id": "42"})
			rr := httptest.NewRecorder()
			handler.UpdateStatus(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.ReportResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, int64(10), resp.PointsAwarded)
				assert.NotNil(t, resp.ResolvedAt)
			}
		})
	}
}

func TestGetSummaryHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().GetSummary(gomock.Any(), 1).Return(&reportservice.Summary{TotalReports: 7, TotalPoints: 30}, nil)

	req := authedRequest("GET", "/api/reports/summary", "", nil)
	rr := httptest.NewRecorder()
	handler.GetSummary(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp dto.ReportSummaryResponseDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 7, resp.TotalReports)
	assert.Equal(t, int64(30), resp.TotalPoints)
}
