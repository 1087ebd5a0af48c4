package loads

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

func TestHandler_Calc(t *testing.T) {
	h := NewHandler(zerolog.Nop())

	body := `{"loads":[{"name":"Press","category":"motori","power_kw":100}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/tools/loads/calc", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Calc(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 80.0, res.TotalKW)
	assert.Equal(t, 135.9, res.Breakdown[0].CurrentA)
}

func TestHandler_CalcInvalid(t *testing.T) {
	h := NewHandler(zerolog.Nop())

	tests := []struct {
		name, body, field string
	}{
		{"malformed", `{"loads":`, ""},
		{"zero cos phi", `{"loads":[{"name":"a","power_kw":1,"cos_phi":0}]}`, "cos_phi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/tools/loads/calc", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Calc(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, tt.field, body["field"])
		})
	}
}
