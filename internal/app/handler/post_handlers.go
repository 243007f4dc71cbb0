package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/middleware"
	"github.com/avasilev/go-shortlinks/internal/models"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

type PostHandler struct {
	baseURL string
	service service.LinkServiceIface
	logger  *zap.Logger
}

func NewPost(baseURL string, s service.LinkServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		baseURL: baseURL,
		service: s,
		logger:  l,
	}
}

func (h *PostHandler) userID(req *http.Request) string {
	id, _ := req.Context().Value(middleware.UserIDKey).(string)
	return id
}

func (h *PostHandler) toResponse(r *storage.LinkRecord) models.ShortenResponse {
	return models.ShortenResponse{
		Code:      r.Code,
		ShortURL:  h.baseURL + "/" + r.Code,
		LongURL:   r.LongURL,
		Clicks:    r.Clicks,
		IsActive:  r.IsActive,
		ExpiresAt: r.ExpiresAt,
	}
}

// HandleShorten handles JSON POST requests for URL shortening.
func (h *PostHandler) HandleShorten(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	var request models.ShortenRequest
	err := decodeJSONBody(res, req, &request)
	if err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			http.Error(res, mr.msg, mr.status)
			return
		}
		h.logger.Error(err.Error())
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r, err := h.service.Shorten(ctx, service.ShortenInput{
		LongURL:     request.URL,
		CustomAlias: request.CustomAlias,
		ExpiresAt:   request.ExpiresAt,
		UserID:      h.userID(req),
	})

	res.Header().Set("Content-Type", "application/json")
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			http.Error(res, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrConflict):
			h.logger.Info(fmt.Sprintf("identifier %q already exists", request.CustomAlias))
			http.Error(res, "alias already in use", http.StatusConflict)
		case errors.Is(err, service.ErrCapacityExhausted):
			h.logger.Error("short code namespace exhausted")
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		default:
			h.logger.Error(fmt.Sprintf("unable to create link: %s", err.Error()))
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	res.WriteHeader(http.StatusCreated)

	response, _ := json.Marshal(h.toResponse(r))
	_, writeErr := res.Write(response)
	if writeErr != nil {
		res.WriteHeader(http.StatusInternalServerError)
	}
}

// HandlePostPlainBody handles plain-text POST requests for URL shortening.
func (h *PostHandler) HandlePostPlainBody(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	body, err := io.ReadAll(req.Body)
	defer req.Body.Close()

	if err != nil {
		res.WriteHeader(http.StatusBadRequest)
		return
	}

	originalURL := strings.TrimSpace(string(body))
	if len(originalURL) == 0 {
		res.WriteHeader(http.StatusBadRequest)
		return
	}

	r, err := h.service.Shorten(ctx, service.ShortenInput{
		LongURL: originalURL,
		UserID:  h.userID(req),
	})

	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			http.Error(res, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrConflict):
			res.WriteHeader(http.StatusConflict)
		default:
			h.logger.Error(fmt.Sprintf("unable to create link: %s", err.Error()))
			res.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.WriteHeader(http.StatusCreated)

	_, resErr := res.Write([]byte(h.baseURL + "/" + r.Code))
	if resErr != nil {
		res.WriteHeader(http.StatusInternalServerError)
	}
}
