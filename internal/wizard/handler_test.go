package wizard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const designBody = `{
	"params": {"name": "Workshop"},
	"distributor": {"voltage_kv": 20, "icc_3phase_ka": 16, "neutral_state": "compensato", "earth_fault_current_a": 50, "earth_fault_time_s": 0.5},
	"loads": [{"name": "Press", "category": "motori", "power_kw": 100}],
	"earthing": {"soil": {"resistivity_ohm_m": 100}, "length_m": 6, "width_m": 4}
}`

func TestHandler_Design(t *testing.T) {
	h := NewHandler(newTestPipeline(t), zerolog.Nop())

	w := httptest.NewRecorder()
	h.Design(w, httptest.NewRequest(http.MethodPost, "/api/project/design", strings.NewReader(designBody)))
	require.Equal(t, http.StatusOK, w.Code)

	var s State
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, "Workshop", s.Params.Name)
	assert.Equal(t, StepEarthing, s.Completed)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.Transformers.Count)
}

func TestHandler_DesignInvalid(t *testing.T) {
	h := NewHandler(newTestPipeline(t), zerolog.Nop())

	body := strings.Replace(designBody, `"voltage_kv": 20`, `"voltage_kv": 40`, 1)
	w := httptest.NewRecorder()
	h.Design(w, httptest.NewRequest(http.MethodPost, "/api/project/design", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "voltage_kv", resp["field"])

	w = httptest.NewRecorder()
	h.Design(w, httptest.NewRequest(http.MethodPost, "/api/project/design", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Batch(t *testing.T) {
	h := NewHandler(newTestPipeline(t), zerolog.Nop())

	w := httptest.NewRecorder()
	h.Batch(w, httptest.NewRequest(http.MethodPost, "/api/project/batch", strings.NewReader(`{"items":[`+designBody+`]}`)))
	require.Equal(t, http.StatusOK, w.Code)
	var res BatchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 1, res.Succeeded)

	w = httptest.NewRecorder()
	h.Batch(w, httptest.NewRequest(http.MethodPost, "/api/project/batch", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
