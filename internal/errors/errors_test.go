package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusNotFound, "SHEET_NOT_FOUND", "No sheet found for the requested date")
	assert.Equal(t, "No sheet found for the requested date", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "SHEET_NOT_FOUND", err.ErrorCode)
}

func TestErrValidationCarriesField(t *testing.T) {
	err := ErrValidation("date", "must be YYYY-MM-DD")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "date", details.Field)
	assert.Equal(t, "must be YYYY-MM-DD", details.Message)
}

func TestUnprocessableFileError(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := UnprocessableFileError(cause)
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, cause.Error(), err.Details)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrSheetNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SHEET_NOT_FOUND", resp.Error.ErrorCode)
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("open failed")
	appErr := NewStorageError("failed to write report CSV", cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "STORAGE")
	assert.Contains(t, appErr.Error(), "open failed")
}

func TestAppErrorWithContext(t *testing.T) {
	appErr := NewParsingError("bad header", nil).WithContext("file", "day.csv")
	assert.Equal(t, "day.csv", appErr.Context["file"])
	assert.NotContains(t, appErr.Error(), "day.csv")
}
