package selector

import (
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
	"Cabina/internal/calc/calcerr"
	"Cabina/internal/catalog"
)

type Handler struct {
	sel *Selector
	log zerolog.Logger
}

func NewHandler(sel *Selector, log zerolog.Logger) *Handler {
	return &Handler{sel: sel, log: log.With().Str("handler", "selector").Logger()}
}

func (h *Handler) warn(what string, compliant bool, notes []string) {
	if !compliant {
		h.log.Warn().Str("item", what).Strs("notes", notes).Msg("Non-compliant selection")
	}
}

type TransformerRequest struct {
	KVA        float64                   `json:"kva"`
	Series     catalog.TransformerSeries `json:"series"`
	Double     *bool                     `json:"double"`
	Continuity Continuity                `json:"service_continuity"`
}

// Transformer sizes the bank; without an explicit choice it follows the
// recommendation.
func (h *Handler) Transformer(w http.ResponseWriter, r *http.Request) {
	var req TransformerRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	if req.Continuity == "" {
		req.Continuity = ContinuityNormal
	}
	double := RecommendTransformerConfig(req.KVA, req.Continuity).Double
	if req.Double != nil {
		double = *req.Double
	}
	bank, err := h.sel.TransformerBank(req.KVA, double, req.Series, req.Continuity)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	h.warn("transformer", bank.Unit.Compliant, bank.Unit.Notes)
	apiutil.WriteJSON(w, h.log, http.StatusOK, bank)
}

type MVBreakerRequest struct {
	CurrentA   float64 `json:"current_a"`
	VoltageKV  float64 `json:"voltage_kv"`
	BreakingKA float64 `json:"breaking_ka"`
	Indoor     *bool   `json:"indoor"`
}

func (h *Handler) MVBreaker(w http.ResponseWriter, r *http.Request) {
	var req MVBreakerRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	indoor := req.Indoor == nil || *req.Indoor
	res, err := h.sel.MVBreaker(req.CurrentA, req.VoltageKV, req.BreakingKA, indoor)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	h.warn("mv_breaker", res.Compliant, res.Notes)
	apiutil.WriteJSON(w, h.log, http.StatusOK, res)
}

type LVBreakerRequest struct {
	Role           string  `json:"role"` // main, feeder or empty for a plain current
	CurrentA       float64 `json:"current_a"`
	TransformerKVA float64 `json:"transformer_kva"`
	BreakingKA     float64 `json:"breaking_ka"`
}

func (h *Handler) LVBreaker(w http.ResponseWriter, r *http.Request) {
	var req LVBreakerRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	if req.BreakingKA == 0 {
		req.BreakingKA = DefaultLVBreakingKA
	}

	var (
		res Selection[LVBreaker]
		err error
	)
	switch req.Role {
	case "main":
		res, err = h.sel.LVMainBreaker(req.TransformerKVA, req.BreakingKA)
	case "feeder":
		res, err = h.sel.LVFeederBreaker(req.CurrentA)
	case "":
		res, err = h.sel.LVBreaker(req.CurrentA, req.BreakingKA)
	default:
		err = calcerr.Invalid("role", "unknown role %q", req.Role)
	}
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	h.warn("lv_breaker", res.Compliant, res.Notes)
	apiutil.WriteJSON(w, h.log, http.StatusOK, res)
}

type LVSwitchRequest struct {
	CurrentA  float64 `json:"current_a"`
	LoadBreak *bool   `json:"load_break"`
}

func (h *Handler) LVSwitch(w http.ResponseWriter, r *http.Request) {
	var req LVSwitchRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	loadBreak := req.LoadBreak == nil || *req.LoadBreak
	res, err := h.sel.LVSwitch(req.CurrentA, loadBreak)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	h.warn("lv_switch", res.Compliant, res.Notes)
	apiutil.WriteJSON(w, h.log, http.StatusOK, res)
}

type EarthSwitchRequest struct {
	VoltageKV   float64         `json:"voltage_kv"`
	MaxCurrentA float64         `json:"max_current_a"`
	Kind        EarthSwitchKind `json:"kind"`
	Continuity  Continuity      `json:"service_continuity"`
}

func (h *Handler) EarthSwitch(w http.ResponseWriter, r *http.Request) {
	var req EarthSwitchRequest
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}
	sys, err := h.sel.EarthSwitchSystem(req.VoltageKV, req.MaxCurrentA, req.Continuity)
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	if req.Kind != "" && req.Kind != sys.RecommendedKind {
		sw, err := h.sel.EarthSwitch(req.VoltageKV, req.MaxCurrentA, req.Kind)
		if err != nil {
			apiutil.WriteError(w, h.log, err)
			return
		}
		sys.Switch = sw
		sys.Guide = GuideFor(sw.Item)
	}
	h.warn("earth_switch", sys.Switch.Compliant, sys.Switch.Notes)
	apiutil.WriteJSON(w, h.log, http.StatusOK, sys)
}
