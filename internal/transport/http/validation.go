package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apierrors "kpicli/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// reportQuery carries the parameters of the report endpoints.
type reportQuery struct {
	File string `validate:"required"`
	Date string `validate:"required,datetime=2006-01-02"`
}

// rangeQuery carries the parameters of the trends range endpoint.
type rangeQuery struct {
	From string `validate:"required,datetime=2006-01-02"`
	To   string `validate:"required,datetime=2006-01-02"`
}

// parseReportQuery validates file and date query parameters and returns the
// parsed date.
func parseReportQuery(r *http.Request) (string, time.Time, *apierrors.APIError) {
	q := reportQuery{
		File: r.URL.Query().Get("file"),
		Date: r.URL.Query().Get("date"),
	}
	if err := validate.Struct(q); err != nil {
		return "", time.Time{}, validationError(err)
	}
	if apiErr := validateFileParam(q.File); apiErr != nil {
		return "", time.Time{}, apiErr
	}

	date, err := time.ParseInLocation("2006-01-02", q.Date, time.UTC)
	if err != nil {
		return "", time.Time{}, apierrors.ErrValidation("date", "must be a valid YYYY-MM-DD date")
	}
	return q.File, date, nil
}

// parseRangeQuery validates from/to query parameters and returns the parsed
// range.
func parseRangeQuery(r *http.Request) (time.Time, time.Time, *apierrors.APIError) {
	q := rangeQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := validate.Struct(q); err != nil {
		return time.Time{}, time.Time{}, validationError(err)
	}

	from, err := time.ParseInLocation("2006-01-02", q.From, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apierrors.ErrValidation("from", "must be a valid YYYY-MM-DD date")
	}
	to, err := time.ParseInLocation("2006-01-02", q.To, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apierrors.ErrValidation("to", "must be a valid YYYY-MM-DD date")
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, apierrors.ErrValidation("to", "must not be before from")
	}
	return from, to, nil
}

// validateFileParam rejects path-like file parameters. Workbooks reachable
// over HTTP are addressed by bare name only; resolution against the uploads
// and data directories happens server-side.
func validateFileParam(file string) *apierrors.APIError {
	if filepath.IsAbs(file) || filepath.Base(file) != file ||
		file == "." || file == ".." || strings.ContainsRune(file, '\\') {
		return apierrors.ErrValidation("file", "must be a file name, not a path")
	}
	return nil
}

// validationError maps the first validator failure to a field-level APIError.
func validationError(err error) *apierrors.APIError {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		field := fieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			return apierrors.ErrValidation(field, "is required")
		case "datetime":
			return apierrors.ErrValidation(field, "must be a YYYY-MM-DD date")
		default:
			return apierrors.ErrValidation(field, fmt.Sprintf("failed %s validation", fe.Tag()))
		}
	}
	return apierrors.InvalidRequestWithError(err)
}

// fieldName lowercases the struct field to the query parameter name.
func fieldName(field string) string {
	switch field {
	case "File":
		return "file"
	case "Date":
		return "date"
	case "From":
		return "from"
	case "To":
		return "to"
	}
	return field
}
