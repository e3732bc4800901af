package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestWriteErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{Validationf("Kode undangan tidak valid"), http.StatusBadRequest, "Kode undangan tidak valid"},
		{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{ErrForbidden, http.StatusForbidden, "Forbidden"},
		{ErrNotFound, http.StatusNotFound, "Not found"},
		{assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.message, errBody(t, rec))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestValidationMessageShownVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, Validationf("Email %s sudah terdaftar", "a@example.com"))
	assert.Equal(t, "Email a@example.com sudah terdaftar", errBody(t, rec))
}
