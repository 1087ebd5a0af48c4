package switchgear

import (
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
	"Cabina/internal/calc/loads"
)

type MVRequest struct {
	Network      Network           `json:"network"`
	Transformers []TransformerFeed `json:"transformers"`
}

type LVRequest struct {
	TransformerKVA float64      `json:"transformer_kva"`
	Loads          []loads.Load `json:"loads"`
	Template       bool         `json:"use_template"` // typical distribution when no loads are given
}

type Handler struct {
	d   *Designer
	log zerolog.Logger
}

func NewHandler(d *Designer, log zerolog.Logger) *Handler {
	return &Handler{d: d, log: log.With().Str("handler", "switchgear").Logger()}
}

func (h *Handler) MV(w http.ResponseWriter, r *http.Request) {
	var req MVRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	panel, err := h.d.DesignMV(req.Network, req.Transformers)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	if !panel.Compliant {
		h.log.Warn().Strs("notes", panel.Notes).Msg("MV panel not compliant")
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, panel)
}

func (h *Handler) LV(w http.ResponseWriter, r *http.Request) {
	var req LVRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	if len(req.Loads) == 0 && req.Template && req.TransformerKVA > 0 {
		req.Loads = h.d.TemplateLoads(req.TransformerKVA)
	}
	board, err := h.d.DesignLV(req.TransformerKVA, req.Loads)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	if !board.Compliant {
		h.log.Warn().Strs("notes", board.Notes).Msg("LV board not compliant")
	}
	apiutil.WriteJSON(w, h.log, http.StatusOK, board)
}
