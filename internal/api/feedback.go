package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/myssom/letterbrick/internal/feedback"
	"github.com/myssom/letterbrick/internal/pipeline"
	"github.com/myssom/letterbrick/internal/rating"
)

type textRequest struct {
	Text string `json:"text"`
}

type creativeResponse struct {
	Record    feedback.Record `json:"record"`
	Rating    *rating.Rating  `json:"rating"`
	Stars     string          `json:"stars,omitempty"`
	Persisted bool            `json:"persisted"`
	Warning   string          `json:"warning,omitempty"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	cache, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.pipeline.Analyze(r.Context(), cache, strings.TrimSpace(req.Text))
	if err != nil {
		s.writeFeedbackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) transform(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.lookupSession(w, r); !ok {
		return
	}
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fb, err := s.pipeline.Transform(r.Context(), strings.TrimSpace(req.Text))
	if err != nil {
		s.writeFeedbackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

func (s *Server) creative(w http.ResponseWriter, r *http.Request) {
	cache, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var sub pipeline.Submission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub.Original = strings.TrimSpace(sub.Original)
	sub.Transformed = strings.TrimSpace(sub.Transformed)
	sub.Creative = strings.TrimSpace(sub.Creative)

	out, err := s.pipeline.Creative(r.Context(), cache, sub)
	var collab *pipeline.CollaboratorError
	if err != nil && !errors.As(err, &collab) {
		s.writeFeedbackError(w, err)
		return
	}

	resp := creativeResponse{Record: out.Record, Persisted: out.Persisted}
	if out.Rated {
		rt := out.Rating
		resp.Rating = &rt
		resp.Stars = rt.String()
	}
	if collab != nil {
		resp.Warning = collab.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeFeedbackError maps pipeline failures onto status codes. Stage failures
// carry the stage and text so the client can retry that stage alone.
func (s *Server) writeFeedbackError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrEmptyText) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if se, ok := feedback.AsStageError(err); ok {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": se.Error(),
			"stage": string(se.Stage),
			"text":  se.SourceText,
		})
		return
	}
	if feedback.IsIncompleteRecord(err) {
		s.logger.Error("incomplete feedback record", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
			"kind":  "incomplete_record",
		})
		return
	}
	s.logger.Error("feedback request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
