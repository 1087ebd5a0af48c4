package wizard

import (
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
)

type Handler struct {
	p   *Pipeline
	log zerolog.Logger
}

func NewHandler(p *Pipeline, log zerolog.Logger) *Handler {
	return &Handler{p: p, log: log.With().Str("handler", "project").Logger()}
}

// Design runs the whole pipeline and returns the project state.
func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	s, err := h.p.Run(req)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	if !s.Compliant() {
		h.log.Warn().Str("project", s.ID).Int("warnings", len(s.Warnings)).Msg("Project completed with warnings")
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, s)
}

// Batch designs several projects in one call.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	res, err := h.p.RunBatch(req)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	if res.Failed > 0 {
		h.log.Warn().Int("failed", res.Failed).Int("succeeded", res.Succeeded).Msg("Batch completed with invalid projects")
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, res)
}
