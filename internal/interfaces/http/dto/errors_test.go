package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeCatalogUnavailable, http.StatusServiceUnavailable},
		{ErrCodeLedgerRead, http.StatusServiceUnavailable},
		{ErrCodeSinkWrite, http.StatusServiceUnavailable},
		{"ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeCatalogUnavailable, NormalizeErrorCode("CATALOG_UNAVAILABLE"))
	assert.Equal(t, ErrCodeSinkWrite, NormalizeErrorCode("SINK_WRITE_FAILURE"))
	assert.Equal(t, "ERR_CUSTOM", NormalizeErrorCode("ERR_CUSTOM"), "unknown codes pass through")
}
