package selector

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

func post(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func TestHandler_Transformer(t *testing.T) {
	h := NewHandler(newTestSelector(t), zerolog.Nop())

	w := post(t, h.Transformer, `{"kva":350}`)
	require.Equal(t, http.StatusOK, w.Code)

	var bank TransformerBank
	require.NoError(t, json.NewDecoder(w.Body).Decode(&bank))
	assert.Equal(t, 1, bank.Count)
	assert.Equal(t, 500, bank.Unit.Item.PowerKVA)
	assert.True(t, bank.Concordant)

	w = post(t, h.Transformer, `{"kva":350,"double":true,"service_continuity":"essenziale"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&bank))
	assert.Equal(t, 2, bank.Count)
	assert.Equal(t, 250, bank.Unit.Item.PowerKVA)

	w = post(t, h.Transformer, `{"kva":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_LVBreaker(t *testing.T) {
	h := NewHandler(newTestSelector(t), zerolog.Nop())

	w := post(t, h.LVBreaker, `{"current_a":50000}`)
	require.Equal(t, http.StatusOK, w.Code)
	var sel Selection[LVBreaker]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sel))
	assert.Equal(t, 6300.0, sel.Item.RatedCurrentA)
	assert.False(t, sel.Compliant)

	w = post(t, h.LVBreaker, `{"role":"main","transformer_kva":630}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sel))
	assert.Equal(t, "E1.2", sel.Item.Frame)
	assert.Equal(t, 1200.0, sel.Item.RatedCurrentA)

	w = post(t, h.LVBreaker, `{"role":"sideways","current_a":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "role", body["field"])
}

func TestHandler_MVBreakerAndSwitches(t *testing.T) {
	h := NewHandler(newTestSelector(t), zerolog.Nop())

	w := post(t, h.MVBreaker, `{"current_a":630,"voltage_kv":20,"breaking_ka":16}`)
	require.Equal(t, http.StatusOK, w.Code)
	var mv Selection[MVBreaker]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&mv))
	assert.Equal(t, "VD4-P/630-24-H", mv.Item.ProductCode)

	w = post(t, h.LVSwitch, `{"current_a":100,"load_break":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var sw Selection[LVSwitch]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sw))
	assert.Equal(t, "OTM", sw.Item.Series)

	w = post(t, h.EarthSwitch, `{"voltage_kv":20,"max_current_a":630,"kind":"mobile"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var sys EarthSwitchSystem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sys))
	assert.Equal(t, EarthSwitchMobile, sys.Switch.Item.Kind)
	assert.Equal(t, EarthSwitchFixed, sys.RecommendedKind)

	w = post(t, h.EarthSwitch, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
