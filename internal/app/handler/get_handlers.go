package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/middleware"
	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

type GetHandler struct {
	service service.LinkServiceIface
	stats   service.StatsServiceIface
	logger  *zap.Logger
}

func NewGet(s service.LinkServiceIface, stats service.StatsServiceIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		stats:   stats,
		logger:  l,
	}
}

// Redirect resolves a short code, records the visit and issues a
// temporary redirect to the original URL.
func (h *GetHandler) Redirect(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	code := chi.URLParam(req, "code")

	longURL, err := h.service.Resolve(ctx, code, service.Visit{
		IPAddress: clientIP(req),
		UserAgent: req.Header.Get("User-Agent"),
		Referer:   req.Header.Get("Referer"),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(res, "link not found", http.StatusNotFound)
		case errors.Is(err, service.ErrLinkGone):
			http.Error(res, "link is gone", http.StatusGone)
		default:
			h.logger.Error("cannot resolve link", zap.String("code", code), zap.Error(err))
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	res.Header().Set("Location", longURL)
	res.WriteHeader(http.StatusTemporaryRedirect)
}

// Preview returns link metadata without recording a click.
func (h *GetHandler) Preview(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	code := chi.URLParam(req, "code")

	r, err := h.service.Preview(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(res, "link not found", http.StatusNotFound)
			return
		}
		h.logger.Error("cannot preview link", zap.String("code", code), zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response, _ := json.Marshal(models.PreviewResponse{
		Code:        r.Code,
		CustomAlias: r.CustomAlias,
		LongURL:     r.LongURL,
		Clicks:      r.Clicks,
		IsActive:    r.IsActive,
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
	})

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	_, writeErr := res.Write(response)
	if writeErr != nil {
		res.WriteHeader(http.StatusInternalServerError)
	}
}

// Stats returns the aggregated analytics of one link. Query params:
// bucket (hour|day|week|month), from, to (RFC 3339) and top.
func (h *GetHandler) Stats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
	defer cancel()

	code := chi.URLParam(req, "code")

	q := service.StatsQuery{}

	if b := req.URL.Query().Get("bucket"); b != "" {
		bucket := storage.Bucket(b)
		if !bucket.Valid() {
			http.Error(res, "bucket must be one of hour, day, week, month", http.StatusBadRequest)
			return
		}
		q.Bucket = bucket
	}

	if from := req.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			http.Error(res, "from must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		q.From = &t
	}

	if to := req.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			http.Error(res, "to must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		q.To = &t
	}

	if top := req.URL.Query().Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 1 {
			http.Error(res, "top must be a positive integer", http.StatusBadRequest)
			return
		}
		q.TopN = n
	}

	summary, err := h.stats.Summary(ctx, code, q)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(res, "link not found", http.StatusNotFound)
			return
		}
		h.logger.Error("cannot build stats", zap.String("code", code), zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response, _ := json.Marshal(summary)

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	_, writeErr := res.Write(response)
	if writeErr != nil {
		res.WriteHeader(http.StatusInternalServerError)
	}
}

// PingDB reports store health.
func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()
	if err := h.service.PingContext(ctx); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}

// LinksByUser lists the links created by the requesting visitor.
func (h *GetHandler) LinksByUser(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	val := req.Context().Value(middleware.UserIDKey)
	userID, ok := val.(string)
	if !ok || userID == "" {
		http.Error(res, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	links, err := h.service.LinksByUser(ctx, userID)
	if err != nil {
		h.logger.Error("cannot list links", zap.String("user_id", userID), zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(links) == 0 {
		res.WriteHeader(http.StatusNoContent)
		return
	}

	response, err := json.Marshal(links)
	if err != nil {
		res.WriteHeader(http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	_, writeErr := res.Write(response)
	if writeErr != nil {
		res.WriteHeader(http.StatusInternalServerError)
	}
}

// Totals returns service-wide counts. The route sits behind the
// trusted-subnet guard.
func (h *GetHandler) Totals(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	totals, err := h.service.Totals(ctx)
	if err != nil {
		h.logger.Error("cannot count totals", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response, _ := json.Marshal(totals)

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	_, writeErr := res.Write(response)
	if writeErr != nil {
		res.WriteHeader(http.StatusInternalServerError)
	}
}
