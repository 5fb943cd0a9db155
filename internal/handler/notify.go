package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/tasknotify/telegram-relay-go/internal/errors"
	"github.com/tasknotify/telegram-relay-go/internal/httputil"
	"github.com/tasknotify/telegram-relay-go/internal/model"
)

// NotificationSender is the channel surface the handler dispatches to.
type NotificationSender interface {
	Send(ctx context.Context, n model.Notification) error
}

type NotifyHandler struct {
	channel NotificationSender
}

func NewNotifyHandler(channel NotificationSender) *NotifyHandler {
	return &NotifyHandler{channel: channel}
}

func (h *NotifyHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/notify", h.Notify)

	return r
}

// POST /api/v1/notify
func (h *NotifyHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var n model.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("request body must be a notification JSON object"))
		return
	}

	if err := h.channel.Send(r.Context(), n); err != nil {
		log.Error().Err(err).Str("project", n.Project).Msg("notification send failed")
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
