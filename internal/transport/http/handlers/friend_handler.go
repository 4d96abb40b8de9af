package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nroux/clubhouse/internal/service"
	"github.com/nroux/clubhouse/internal/transport/http/middleware"
	"github.com/nroux/clubhouse/pkg/validator"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	list, err := h.friendService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list friends", err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	query := r.URL.Query().Get("q")

	candidates, err := h.friendService.Search(r.Context(), userID, query)
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			writeError(w, http.StatusBadRequest, "QUERY_TOO_SHORT", "Search query must be at least 2 characters")
			return
		}
		writeServiceError(w, "search candidates", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": candidates})
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.ValidateSendRequest(input.UserID); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}
	targetID, err := uuid.Parse(strings.TrimSpace(input.UserID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	req, err := h.friendService.SendRequest(r.Context(), userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotRequestSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_REQUEST_SELF", "Cannot send a request to yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrAlreadyFriends):
			writeError(w, http.StatusConflict, "ALREADY_FRIENDS", "You are already friends")
		case errors.Is(err, service.ErrRequestPending):
			writeError(w, http.StatusConflict, "REQUEST_PENDING", "A pending request already exists")
		default:
			writeServiceError(w, "send friend request", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

func (h *FriendHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	var input struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.ValidateRespond(input.Decision); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	newStatus, err := h.friendService.Respond(r.Context(), userID, requestID, service.Decision(input.Decision))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Request not found")
		case errors.Is(err, service.ErrNotAddressee):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the addressee can respond to this request")
		case errors.Is(err, service.ErrAlreadyHandled):
			writeError(w, http.StatusConflict, "ALREADY_HANDLED", "Request already handled")
		default:
			writeServiceError(w, "respond to friend request", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": newStatus})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}

// writeServiceError maps collaborator outages to distinct statuses and keeps
// everything else a logged 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrStoreSchemaMissing):
		writeError(w, http.StatusBadRequest, "STORE_SCHEMA_MISSING", "Table friend_requests missing")
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Relationship store unavailable")
	case errors.Is(err, service.ErrDirectoryUnavailable):
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusBadGateway, "DIRECTORY_UNAVAILABLE", "User directory unavailable")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
