package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/middleware"
	"github.com/avasilev/go-shortlinks/internal/mocks"
	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

func withCode(req *http.Request, code string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{"code"},
			Values: []string{code},
		},
	}))
}

func createTestGetHandler(link *mocks.MockLinkServiceIface, stats *mocks.MockStatsServiceIface) *GetHandler {
	return NewGet(link, stats, zap.NewNop())
}

func TestRedirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := createTestGetHandler(mockService, nil)

	tests := []struct {
		name         string
		code         string
		mockReturn   string
		mockErr      error
		expectedCode int
	}{
		{
			name:         "Active link",
			code:         "abc123",
			mockReturn:   "https://example.com",
			expectedCode: http.StatusTemporaryRedirect,
		},
		{
			name:         "Unknown code",
			code:         "unknown",
			mockErr:      storage.ErrNotFound,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Inactive or expired link",
			code:         "stale1",
			mockErr:      service.ErrLinkGone,
			expectedCode: http.StatusGone,
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
			mockService.EXPECT().Resolve(gomock.Any(), tt.code, gomock.Any()).Return(tt.mockReturn, tt.mockErr)

			req := withCode(httptest.NewRequest(http.MethodGet, "/"+tt.code, nil), tt.code)
			w := httptest.NewRecorder()

			handler.Redirect(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			if tt.mockErr == nil {
				assert.Equal(t, tt.mockReturn, resp.Header.Get("Location"))
			}
		})
	}
}

func TestRedirect_PassesVisitMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := createTestGetHandler(mockService, nil)

	var gotVisit service.Visit
	mockService.EXPECT().
		Resolve(gomock.Any(), "abc123", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, v service.Visit) (string, error) {
			gotVisit = v
			return "https://example.com", nil
		})

	req := withCode(httptest.NewRequest(http.MethodGet, "/abc123", nil), "abc123")
	req.Header.Set("X-Real-IP", "203.0.113.9")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Referer", "https://ref.example")
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, "203.0.113.9", gotVisit.IPAddress)
	assert.Equal(t, "test-agent", gotVisit.UserAgent)
	assert.Equal(t, "https://ref.example", gotVisit.Referer)
}

func TestPreview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := createTestGetHandler(mockService, nil)

	t.Run("Found", func(t *testing.T) {
		expires := time.Now().Add(time.Hour).UTC()
		mockService.EXPECT().Preview(gomock.Any(), "abc123").Return(&storage.LinkRecord{
			Code:      "abc123",
			LongURL:   "https://example.com",
			Clicks:    7,
			IsActive:  true,
			ExpiresAt: &expires,
		}, nil)

		req := withCode(httptest.NewRequest(http.MethodGet, "/preview/abc123", nil), "abc123")
		w := httptest.NewRecorder()

		handler.Preview(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.PreviewResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "abc123", got.Code)
		assert.Equal(t, "https://example.com", got.LongURL)
		assert.Equal(t, int64(7), got.Clicks)
		assert.True(t, got.IsActive)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService.EXPECT().Preview(gomock.Any(), "nope").Return(nil, storage.ErrNotFound)

		req := withCode(httptest.NewRequest(http.MethodGet, "/preview/nope", nil), "nope")
		w := httptest.NewRecorder()

		handler.Preview(w, req)

		resp := w.Result()
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStats := mocks.NewMockStatsServiceIface(ctrl)
	handler := createTestGetHandler(nil, mockStats)

	t.Run("Defaults", func(t *testing.T) {
		mockStats.EXPECT().
			Summary(gomock.Any(), "abc123", service.StatsQuery{}).
			Return(&models.LinkStats{Code: "abc123", TotalClicks: 3}, nil)

		req := withCode(httptest.NewRequest(http.MethodGet, "/api/v1/links/abc123/stats", nil), "abc123")
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.LinkStats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(3), got.TotalClicks)
	})

	t.Run("Query params forwarded", func(t *testing.T) {
		var gotQuery service.StatsQuery
		mockStats.EXPECT().
			Summary(gomock.Any(), "abc123", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, q service.StatsQuery) (*models.LinkStats, error) {
				gotQuery = q
				return &models.LinkStats{Code: "abc123"}, nil
			})

		target := "/api/v1/links/abc123/stats?bucket=hour&from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z&top=5"
		req := withCode(httptest.NewRequest(http.MethodGet, target, nil), "abc123")
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, storage.BucketHour, gotQuery.Bucket)
		assert.Equal(t, 5, gotQuery.TopN)
		require.NotNil(t, gotQuery.From)
		assert.Equal(t, 2026, gotQuery.From.Year())
		require.NotNil(t, gotQuery.To)
	})

	t.Run("Invalid bucket", func(t *testing.T) {
		req := withCode(httptest.NewRequest(http.MethodGet, "/api/v1/links/abc123/stats?bucket=year", nil), "abc123")
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid from", func(t *testing.T) {
		req := withCode(httptest.NewRequest(http.MethodGet, "/api/v1/links/abc123/stats?from=yesterday", nil), "abc123")
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid top", func(t *testing.T) {
		req := withCode(httptest.NewRequest(http.MethodGet, "/api/v1/links/abc123/stats?top=-1", nil), "abc123")
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown code", func(t *testing.T) {
		mockStats.EXPECT().Summary(gomock.Any(), "nope", gomock.Any()).Return(nil, storage.ErrNotFound)

		req := withCode(httptest.NewRequest(http.MethodGet, "/api/v1/links/nope/stats", nil), "nope")
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPingDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := createTestGetHandler(mockService, nil)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().PingContext(gomock.Any()).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		handler.PingDB(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Failure", func(t *testing.T) {
		mockService.EXPECT().PingContext(gomock.Any()).Return(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		handler.PingDB(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestLinksByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := createTestGetHandler(mockService, nil)

	t.Run("Valid user with links", func(t *testing.T) {
		mockService.EXPECT().LinksByUser(gomock.Any(), "user-1").Return([]models.ByUserResponse{
			{ShortURL: "http://localhost:8080/abc123", OriginalURL: "https://example.com"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/urls", nil)
		req = middleware.InjectUserID(req, "user-1")
		w := httptest.NewRecorder()

		handler.LinksByUser(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []models.ByUserResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "https://example.com", got[0].OriginalURL)
	})

	t.Run("No links", func(t *testing.T) {
		mockService.EXPECT().LinksByUser(gomock.Any(), "user-2").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/urls", nil)
		req = middleware.InjectUserID(req, "user-2")
		w := httptest.NewRecorder()

		handler.LinksByUser(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Missing user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/urls", nil)
		w := httptest.NewRecorder()

		handler.LinksByUser(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceIface(ctrl)
	handler := createTestGetHandler(mockService, nil)

	mockService.EXPECT().Totals(gomock.Any()).Return(storage.Totals{Links: 12, Clicks: 340}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/internal/totals", nil)
	w := httptest.NewRecorder()

	handler.Totals(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got storage.Totals
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, int64(12), got.Links)
	assert.Equal(t, int64(340), got.Clicks)
}
