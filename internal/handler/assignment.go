package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/studydesk-app/studydesk/internal/auth"
	"github.com/studydesk-app/studydesk/internal/model"
	"github.com/studydesk-app/studydesk/internal/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type AssignmentHandler struct {
	store  *store.AssignmentStore
	logger *slog.Logger
}

func NewAssignmentHandler(as *store.AssignmentStore, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{store: as, logger: logger}
}

type saveRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Create saves a new assignment owned by the caller. Every call creates a
// fresh record; duplicate content is not collapsed.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	req.Answer = strings.TrimSpace(req.Answer)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.Answer == "" {
		writeError(w, http.StatusBadRequest, "Answer is required")
		return
	}

	assignment, err := h.store.Create(auth.UserID(r.Context()), req.Question, req.Answer)
	if err != nil {
		h.logger.Error("save assignment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save assignment")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Assignment saved successfully",
		"assignment": assignment,
	})
}

// List returns one page of the caller's assignments, newest first, with
// pagination metadata computed from the same filter as the page itself.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := parsePositiveInt(q.Get("page"), defaultPage)
	limit := parsePositiveInt(q.Get("limit"), defaultLimit)
	search := strings.TrimSpace(q.Get("search"))

	filter := store.AssignmentFilter{
		OwnerID: auth.UserID(r.Context()),
		Search:  search,
	}

	total, err := h.store.Count(filter)
	if err != nil {
		h.logger.Error("count assignments", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch assignments")
		return
	}

	assignments, err := h.store.List(filter, page, limit)
	if err != nil {
		h.logger.Error("list assignments", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch assignments")
		return
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}

	pages := (total + int64(limit) - 1) / int64(limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"assignments": assignments,
		"pagination": paginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// Get fetches a single assignment by id, scoped to the caller. A record that
// does not exist and a record owned by someone else produce the same 404.
func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	assignment, err := h.store.GetByID(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get assignment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch assignment")
		return
	}
	if assignment == nil {
		writeError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"assignment": assignment})
}

// Delete removes a single assignment by id, scoped to the caller, with the
// same non-distinguishing 404 as Get. Repeating a delete yields 404.
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	deleted, err := h.store.Delete(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("delete assignment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete assignment")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Assignment deleted successfully"})
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
