package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/storage"
)

type DeleteHandler struct {
	service service.LinkServiceIface
	logger  *zap.Logger
}

func NewDelete(s service.LinkServiceIface, l *zap.Logger) *DeleteHandler {
	return &DeleteHandler{
		service: s,
		logger:  l,
	}
}

// Deactivate queues a link for deactivation. The flip happens
// asynchronously in the background worker, hence 202.
func (h *DeleteHandler) Deactivate(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	code := chi.URLParam(req, "code")

	if err := h.service.Deactivate(ctx, code); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(res, "link not found", http.StatusNotFound)
			return
		}
		h.logger.Error("cannot deactivate link", zap.String("code", code), zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusAccepted)
}
