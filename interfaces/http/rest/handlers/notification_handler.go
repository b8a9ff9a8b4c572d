package handlers

import (
	"net/http"

	"memoboard/application/ports"
	"memoboard/pkg/common"
)

// NotificationSource reports the visible notification
type NotificationSource interface {
	Current() (ports.Notification, bool)
}

// NotificationHandler serves the latest user notification
type NotificationHandler struct {
	source NotificationSource
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(source NotificationSource) *NotificationHandler {
	return &NotificationHandler{source: source}
}

// GetNotification handles GET /notification; 204 when nothing is shown
func (h *NotificationHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	n, ok := h.source.Current()
	if !ok {
		common.RespondNoContent(w)
		return
	}
	common.RespondJSON(w, http.StatusOK, n)
}
