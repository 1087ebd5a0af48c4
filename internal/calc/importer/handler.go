package importer

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
	"Cabina/internal/calc/loads"
)

const maxUploadBytes = 10 << 20

type Response struct {
	Count     int          `json:"count"`
	Skipped   []RowError   `json:"skipped"`
	Loads     []loads.Load `json:"loads"`
	Aggregate loads.Result `json:"aggregate"`
}

type Handler struct {
	log zerolog.Logger
}

func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log.With().Str("handler", "importer").Logger()}
}

// Loads takes a multipart "file" field, imports it and aggregates the
// accepted rows.
func (h *Handler) Loads(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		apiutil.WriteJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": "File required"})
		return
	}
	defer file.Close()

	imp, err := ParseLoads(file)
	if err != nil {
		msg := "Invalid file"
		if errors.Is(err, ErrEmptySheet) {
			msg = "Empty sheet"
		}
		h.log.Debug().Err(err).Msg("Import rejected")
		apiutil.WriteJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	if len(imp.Skipped) > 0 {
		h.log.Info().Int("skipped", len(imp.Skipped)).Int("imported", len(imp.Loads)).Msg("Rows skipped during import")
	}

	agg, err := loads.Aggregate(imp.Loads)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, Response{
		Count:     len(imp.Loads),
		Skipped:   imp.Skipped,
		Loads:     imp.Loads,
		Aggregate: agg,
	})
}
