package notificationservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/revibe-delhi/revibe/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestGetNotifications(t *testing.T) {
	service, repo := NewMock(t)
	tests := []struct {
		name          string
		prepareMock   func()
		expected      []domain.Notification
		expectedError error
	}{
		{
			name: "Returns the recent notifications",
			prepareMock: func() {
				repo.EXPECT().FindByUserID(gomock.Any(), 1, defaultLimit).Return([]domain.Notification{
					{ID: 2, UserID: 1, Title: "Points earned!", Type: "points"},
					{ID: 1, UserID: 1, Title: "Redemption accepted", Type: "info", IsRead: true},
				}, nil)
			},
			expected: []domain.Notification{
				{ID: 2, UserID: 1, Title: "Points earned!", Type: "points"},
				{ID: 1, UserID: 1, Title: "Redemption accepted", Type: "info", IsRead: true},
			},
		},
		{
			name: "Repository failure surfaces",
			prepareMock: func() {
				repo.EXPECT().FindByUserID(gomock.Any(), 1, defaultLimit).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			got, err := service.GetNotifications(context.Background(), 1)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMarkRead(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().MarkRead(gomock.Any(), 1, 5).Return(nil)
	assert.NoError(t, service.MarkRead(context.Background(), 1, 5))
}

func TestMarkAllRead(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().MarkAllRead(gomock.Any(), 1).Return(nil)
	assert.NoError(t, service.MarkAllRead(context.Background(), 1))
}
