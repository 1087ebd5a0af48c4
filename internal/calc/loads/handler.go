package loads

import (
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
)

type Request struct {
	Loads []Load `json:"loads"`
}

type Handler struct {
	log zerolog.Logger
}

func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log.With().Str("handler", "loads").Logger()}
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	res, err := Aggregate(req.Loads)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, res)
}
