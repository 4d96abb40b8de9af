package handlers

import (
	"net/http"
	"strconv"

	"github.com/nroux/clubhouse/internal/service"
	"github.com/nroux/clubhouse/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := service.DefaultFeedLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	feed, err := h.notificationService.Feed(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, "fetch notifications", err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
