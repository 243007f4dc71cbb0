package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/app/server"
	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

type noopGeo struct{}

func (noopGeo) Lookup(context.Context, string) string { return "" }

func newTestRouter(t *testing.T) (http.Handler, storage.Store) {
	t.Helper()

	store, err := storage.CreateMemoryStorage()
	require.NoError(t, err)
	logger := zap.NewNop()
	gen := service.NewCodeGenerator(store)
	deactivations := make(chan string, 16)
	linkSvc := service.NewLink(store, gen, noopGeo{}, logger, "http://localhost:8080", deactivations)
	statsSvc := service.NewStats(store, logger)
	auth := service.NewAuth("test-secret")

	return server.Init("http://localhost:8080", logger, auth, linkSvc, statsSvc, "127.0.0.0/8"), store
}

func TestRouter_ShortenAndRedirect(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	client := srv.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	body := strings.NewReader(`{"url":"https://example.com/landing"}`)
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/shorten", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.ShortenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.Code)

	redirect, err := client.Get(srv.URL + "/" + created.Code)
	require.NoError(t, err)
	defer redirect.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, redirect.StatusCode)
	assert.Equal(t, "https://example.com/landing", redirect.Header.Get("Location"))
}

func TestRouter_FixedRoutesWinOverRedirect(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	// /ping must hit the health handler, not resolve as a short code.
	resp, err := srv.Client().Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_UnknownCode(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/nosuchcode")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_TotalsGuardedBySubnet(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/internal/totals", nil)
		req.Header.Set("X-Real-IP", "127.0.0.1")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/internal/totals", nil)
		req.Header.Set("X-Real-IP", "203.0.113.8")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRouter_VisitorCookieIssued(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("https://example.com"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tokenCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie, "token cookie should be issued to new visitors")
}
