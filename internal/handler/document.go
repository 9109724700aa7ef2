package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/studydesk-app/studydesk/internal/export"
	"github.com/studydesk-app/studydesk/internal/extract"
)

// maxUploadSize caps uploaded PDFs at 10MB.
const maxUploadSize = 10 << 20

type DocumentHandler struct {
	logger *slog.Logger
}

func NewDocumentHandler(logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{logger: logger}
}

// ParsePDF extracts the text of an uploaded PDF so it can be submitted as a
// question.
func (h *DocumentHandler) ParsePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File size exceeds 10MB limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusBadRequest, "File size exceeds 10MB limit")
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
		writeError(w, http.StatusBadRequest, "Invalid file type. Please upload a PDF file.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	result, err := extract.PDFText(data)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			writeError(w, http.StatusBadRequest, "No text could be extracted from the PDF")
			return
		}
		h.logger.Warn("parse pdf", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to parse PDF. Please ensure the file is a valid PDF.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"text":  result.Text,
		"pages": result.Pages,
	})
}

type exportRequest struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

func (h *DocumentHandler) decodeExport(w http.ResponseWriter, r *http.Request) (*exportRequest, bool) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return nil, false
	}
	return &req, true
}

// ExportPDF renders the given text as a downloadable PDF.
func (h *DocumentHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeExport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="assignment.pdf"`)
	if err := export.PDF(w, req.Title, req.Text); err != nil {
		// Headers are already out; all that is left is to log.
		h.logger.Error("export pdf", "error", err)
	}
}

// ExportDOCX renders the given text as a downloadable Word document.
func (h *DocumentHandler) ExportDOCX(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeExport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="assignment.docx"`)
	if err := export.DOCX(w, req.Title, req.Text); err != nil {
		h.logger.Error("export docx", "error", err)
	}
}
