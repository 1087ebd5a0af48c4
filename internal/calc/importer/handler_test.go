package importer

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(t *testing.T, field string, content io.Reader) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "loads.xlsx")
	require.NoError(t, err)
	_, err = io.Copy(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tools/loads/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Loads(t *testing.T) {
	h := NewHandler(zerolog.Nop())

	buf := workbook(t, [][]interface{}{
		header,
		{"Press", "motori", 100, 1, 1, 0.85, 400},
		{"Broken", "prese", "x"},
	})
	w := httptest.NewRecorder()
	h.Loads(w, upload(t, "file", buf))
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Skipped, 1)
	assert.Equal(t, 80.0, resp.Aggregate.TotalKW)
}

func TestHandler_LoadsErrors(t *testing.T) {
	h := NewHandler(zerolog.Nop())

	w := httptest.NewRecorder()
	h.Loads(w, upload(t, "other", bytes.NewBufferString("x")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Loads(w, upload(t, "file", workbook(t, [][]interface{}{header})))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Empty sheet", body["error"])
}
