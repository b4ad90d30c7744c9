package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/dto"
	"github.com/revibe-delhi/revibe/pkg/auth"
)

func NewMock(t *testing.T) (*NotificationHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authedRequest(method, target string, urlParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
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

func TestGetNotificationsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Returns the notification feed",
			prepareMock: func() {
				service.EXPECT().GetNotifications(gomock.Any(), 1).Return([]domain.Notification{
					{ID: 2, UserID: 1, Title: "Points earned!", Type: "points"},
					{ID: 1, UserID: 1, Title: "Redemption accepted", Type: "info", IsRead: true},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Empty feed",
			prepareMock: func() {
				service.EXPECT().GetNotifications(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Service failure",
			prepareMock: func() {
				service.EXPECT().GetNotifications(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.GetNotifications(rr, authedRequest("GET", "/api/user/notifications", nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.NotificationResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp, 2)
			}
		})
	}
}

func TestMarkReadHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Marks one notification read",
			id:   "5",
			prepareMock: func() {
				service.EXPECT().MarkRead(gomock.Any(), 1, 5).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Malformed id",
			id:           "five",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.MarkRead(rr, authedRequest("POST", "/api/user/notifications/"+tt.id+"/read", map[string]string{"id": tt.id}))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestMarkAllReadHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().MarkAllRead(gomock.Any(), 1).Return(nil)

	rr := httptest.NewRecorder()
	handler.MarkAllRead(rr, authedRequest("POST", "/api/user/notifications/read-all", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
