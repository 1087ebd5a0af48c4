package selectivity

import (
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
)

type Request struct {
	Upstream   Breaker   `json:"upstream"`
	Downstream []Breaker `json:"downstream"`
}

type Handler struct {
	checker *Checker
	log     zerolog.Logger
}

func NewHandler(checker *Checker, log zerolog.Logger) *Handler {
	return &Handler{checker: checker, log: log.With().Str("handler", "selectivity").Logger()}
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	res := h.checker.Verify(req.Upstream, req.Downstream)
	if !res.Selective {
		h.log.Warn().Strs("issues", res.Issues).Msg("Selectivity not verified")
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, res)
}
