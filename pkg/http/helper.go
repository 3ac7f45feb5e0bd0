package http

import (
	"net/http"
	"time"

	apperrors "slotbook/pkg/errors"
)

const DateLayout = "2006-01-02"

// ExtractDateRange reads the required start/end query parameters used by
// the calendar listing. Both must be YYYY-MM-DD and end must not precede
// start.
func ExtractDateRange(r *http.Request) (string, string, error) {
	query := r.URL.Query()

	start := query.Get("start")
	end := query.Get("end")
	if start == "" || end == "" {
		return "", "", apperrors.InvalidInput("start and end dates are required")
	}

	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return "", "", apperrors.InvalidInput("invalid start date, must be YYYY-MM-DD: " + start)
	}
	endDate, err := time.Parse(DateLayout, end)
	if err != nil {
		return "", "", apperrors.InvalidInput("invalid end date, must be YYYY-MM-DD: " + end)
	}
	if endDate.Before(startDate) {
		return "", "", apperrors.InvalidInput("end date must not be before start date")
	}

	return start, end, nil
}
