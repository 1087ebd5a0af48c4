package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Cabina/internal/calc/earthing"
	"Cabina/internal/calc/loads"
	"Cabina/internal/catalog"
	"Cabina/internal/wizard"
)

func newPipeline(t *testing.T) *wizard.Pipeline {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return wizard.New(cat)
}

func completedState(t *testing.T) wizard.State {
	t.Helper()
	s, err := newPipeline(t).Run(wizard.Request{
		Params: wizard.Params{Name: "Workshop"},
		Distributor: wizard.Distributor{
			VoltageKV: 20, IccKA: 16, NeutralState: wizard.NeutralCompensated,
			EarthFaultCurrentA: 50, EarthFaultTimeS: 0.5,
		},
		Loads: []loads.Load{
			{Name: "Press", Category: "motori", PowerKW: 100, Quantity: 1, Ku: 1, CosPhi: 0.85, VoltageV: 400, Phases: 3},
			{Name: "Lighting", Category: "illuminazione", PowerKW: 5, Quantity: 4, Ku: 1, CosPhi: 0.9, VoltageV: 400, Phases: 3},
		},
		Earthing: wizard.EarthingInput{Soil: earthing.Soil{ResistivityOhm: 100}, LengthM: 6, WidthM: 4},
	})
	require.NoError(t, err)
	return s
}

func TestBOM_CoversEveryStep(t *testing.T) {
	s := completedState(t)
	lines := BOM(s)

	sections := map[string]bool{}
	for _, l := range lines {
		sections[l.Section] = true
		assert.InDelta(t, l.Quantity*l.UnitCost, l.Total, 1e-9)
	}
	for _, want := range []string{"Transformers", "Earth switch", "LV main", "Earthing", "LV Press"} {
		assert.True(t, sections[want], "missing section %q", want)
	}

	// MV units and earthing materials are costed the same way as the designs
	var mv, earth float64
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l.Section, "MV "):
			mv += l.Total
		case l.Section == "Earthing":
			earth += l.Total
		}
	}
	assert.InDelta(t, s.MV.TotalCost, mv, 1e-6)
	assert.InDelta(t, s.Earthing.MaterialsTotal, earth, 1e-6)
	assert.Greater(t, Total(lines), mv+earth)
}

func TestBOM_PartialState(t *testing.T) {
	assert.Empty(t, BOM(wizard.NewState(wizard.Params{})))
}

func TestWriteXLSX(t *testing.T) {
	s := completedState(t)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, s))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bomSheet)
	require.NoError(t, err)
	assert.Equal(t, "Bill of materials: Workshop", rows[0][0])
	assert.Equal(t, "Section", rows[2][0])
	// title, blank, header, lines, total
	assert.Len(t, rows, 3+len(BOM(s))+1)
	assert.Equal(t, "Total", rows[len(rows)-1][5])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, completedState(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, WritePDF(&buf, wizard.NewState(wizard.Params{})))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

const reportBody = `{
	"distributor": {"voltage_kv": 20, "icc_3phase_ka": 16, "neutral_state": "compensato", "earth_fault_current_a": 50, "earth_fault_time_s": 0.5},
	"loads": [{"name": "Press", "category": "motori", "power_kw": 100}],
	"earthing": {"soil": {"resistivity_ohm_m": 100}, "length_m": 6, "width_m": 4}
}`

func TestHandler(t *testing.T) {
	h := NewHandler(newPipeline(t), zerolog.Nop())

	w := httptest.NewRecorder()
	h.PDF(w, httptest.NewRequest(http.MethodPost, "/api/project/report/pdf", strings.NewReader(reportBody)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")

	w = httptest.NewRecorder()
	h.XLSX(w, httptest.NewRequest(http.MethodPost, "/api/project/report/xlsx", strings.NewReader(reportBody)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	w = httptest.NewRecorder()
	h.PDF(w, httptest.NewRequest(http.MethodPost, "/api/project/report/pdf", strings.NewReader(`{"loads":[]}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
