package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/studydesk-app/studydesk/internal/answer"
)

const maxQuestionLen = 10000

type AnswerHandler struct {
	client *answer.Client
	logger *slog.Logger
}

func NewAnswerHandler(client *answer.Client, logger *slog.Logger) *AnswerHandler {
	return &AnswerHandler{client: client, logger: logger}
}

type generateRequest struct {
	Question string `json:"question"`
}

type rewriteRequest struct {
	Answer string `json:"answer"`
}

// Generate produces an AI answer for a question.
func (h *AnswerHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if len(req.Question) > maxQuestionLen {
		writeError(w, http.StatusBadRequest, "Question is too long")
		return
	}

	text, err := h.client.Generate(r.Context(), req.Question)
	if err != nil {
		h.answerError(w, "generate answer", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": text})
}

// Rewrite rephrases a previously generated answer.
func (h *AnswerHandler) Rewrite(w http.ResponseWriter, r *http.Request) {
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Answer = strings.TrimSpace(req.Answer)
	if req.Answer == "" {
		writeError(w, http.StatusBadRequest, "Answer is required")
		return
	}

	text, err := h.client.Rewrite(r.Context(), req.Answer)
	if err != nil {
		h.answerError(w, "rewrite answer", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": text})
}

func (h *AnswerHandler) answerError(w http.ResponseWriter, op string, err error) {
	if err == answer.ErrNotConfigured {
		writeError(w, http.StatusInternalServerError, "Answer service is not configured")
		return
	}
	h.logger.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to generate answer")
}
