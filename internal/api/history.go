package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/myssom/letterbrick/internal/report"
	"github.com/myssom/letterbrick/internal/store"
)

const maxImageBytes = 10 << 20

// recognize is best-effort: a failure is reported to the client but never
// blocks the manual-entry flow.
func (s *Server) recognize(w http.ResponseWriter, r *http.Request) {
	if s.ocr == nil {
		writeError(w, http.StatusNotImplemented, "ocr is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read image upload")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusUnsupportedMediaType, "upload is not an image")
		return
	}

	text, err := s.ocr.Recognize(r.Context(), data, mimeType)
	if err != nil {
		s.logger.Warn("ocr failed", "error", err)
		writeError(w, http.StatusBadGateway, "ocr failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.LoadAll(r.Context())
	if err != nil {
		s.logger.Error("load history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "load history failed")
		return
	}
	entries = store.NewestFirst(entries)
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusNotImplemented, "report export is not configured")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	entry, err := store.FindByID(r.Context(), s.history, id)
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.logger.Error("load history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "load history failed")
		return
	}

	doc, err := s.exporter.Render(report.Title, entry.Record.Sections())
	if err != nil {
		s.logger.Error("render report failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "render report failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
