package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sabigold/presence-backend-go/internal/domain/notification"
	"github.com/sabigold/presence-backend-go/internal/handler/http/response"
)

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	ListUnread(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notifService: notifService}
}

func (h *notificationHandlerImpl) ListUnread(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifService.ListUnread(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notifications)
}

func (h *notificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

func (h *notificationHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifService.MarkAllRead(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}
