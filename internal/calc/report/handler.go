package report

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
	"Cabina/internal/wizard"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	p   *wizard.Pipeline
	log zerolog.Logger
}

func NewHandler(p *wizard.Pipeline, log zerolog.Logger) *Handler {
	return &Handler{p: p, log: log.With().Str("handler", "report").Logger()}
}

// PDF designs the project from the request and returns the technical report.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "application/pdf", "pdf", WritePDF)
}

// XLSX designs the project from the request and returns the bill of
// materials.
func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, xlsxContentType, "xlsx", WriteXLSX)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, contentType, ext string, write func(io.Writer, wizard.State) error) {
	var req wizard.Request
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	s, err := h.p.Run(req)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}

	// render into memory so a failure can still answer with a JSON error
	var buf bytes.Buffer
	if err := write(&buf, s); err != nil {
		h.log.Error().Err(err).Str("project", s.ID).Msg("Report generation failed")
		apiutil.WriteJSON(w, h.log, http.StatusInternalServerError, map[string]string{"error": "Report generation error"})
		return
	}
	h.log.Info().Str("project", s.ID).Str("format", ext).Int("bytes", buf.Len()).Msg("Report generated")

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"cabina-%s.%s\"", s.ID, ext))
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error().Err(err).Msg("Failed to write report")
	}
}
