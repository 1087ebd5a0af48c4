package earthing

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

func TestHandler_Design(t *testing.T) {
	h := NewHandler(zerolog.Nop())

	body := `{"soil":{"resistivity_ohm_m":100},"requirements":{"earth_fault_current_a":50,"fault_duration_s":0.5},"length_m":10,"width_m":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/tools/earthing/design", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Design(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, Rods, resp.Design.Configuration)
	assert.True(t, resp.Design.Compliant)
	assert.Len(t, resp.Materials, 4)
	assert.Greater(t, resp.MaterialsTotal, 0.0)
}

func TestHandler_DesignErrors(t *testing.T) {
	h := NewHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"soil":{"resistivity_ohm_m":100},"perimeter_m":40}`))
	w := httptest.NewRecorder()
	h.Design(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "earth_fault_current_a", body["field"])

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	w = httptest.NewRecorder()
	h.Design(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
