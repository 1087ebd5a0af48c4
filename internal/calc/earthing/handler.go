package earthing

import (
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/apiutil"
)

type Request struct {
	Soil         Soil         `json:"soil"`
	Requirements Requirements `json:"requirements"`
	PerimeterM   float64      `json:"perimeter_m"`
	LengthM      float64      `json:"length_m"`
	WidthM       float64      `json:"width_m"`
}

type Response struct {
	Design         Result     `json:"design"`
	Materials      []Material `json:"materials"`
	MaterialsTotal float64    `json:"materials_total_eur"`
}

type Handler struct {
	log zerolog.Logger
}

func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log.With().Str("handler", "earthing").Logger()}
}

// Design uses the enclosure dimensions when both are given, the perimeter
// otherwise.
func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var req Request
	if !apiutil.Decode(w, r, h.log, &req) {
		return
	}

	var (
		res Result
		err error
	)
	if req.LengthM != 0 || req.WidthM != 0 {
		res, err = DesignForEnclosure(req.Soil, req.Requirements, req.LengthM, req.WidthM)
	} else {
		res, err = Design(req.Soil, req.Requirements, req.PerimeterM)
	}
	if err != nil {
		apiutil.WriteError(w, h.log, err)
		return
	}
	if !res.Compliant {
		h.log.Warn().
			Str("configuration", string(res.Configuration)).
			Float64("resistance_ohm", res.ResistanceOhm).
			Float64("required_ohm", res.RequiredResistanceOhm).
			Msg("Earthing design not compliant")
	}

	items := Materials(res)
	apiutil.WriteJSON(w, h.log, http.StatusOK, Response{
		Design:         res,
		Materials:      items,
		MaterialsTotal: MaterialsTotal(items),
	})
}
