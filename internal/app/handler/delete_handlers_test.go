package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/mocks"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

func TestDeactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := NewDelete(mockService, zap.NewNop())

	tests := []struct {
		name         string
		code         string
		mockErr      error
		expectedCode int
	}{
		{
			name:         "Accepted",
			code:         "abc123",
			expectedCode: http.StatusAccepted,
		},
		{
			name:         "Unknown code",
			code:         "nope",
			mockErr:      storage.ErrNotFound,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Store failure",
			code:         "abc123",
			mockErr:      errors.New("db down"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().Deactivate(gomock.Any(), tt.code).Return(tt.mockErr)

			req := withCode(httptest.NewRequest(http.MethodDelete, "/api/v1/links/"+tt.code, nil), tt.code)
			w := httptest.NewRecorder()

			handler.Deactivate(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
