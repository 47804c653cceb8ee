package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gearledger/gearledger/internal/errors"
)

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2024-01-01", "2024-03-31")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), start)
	require.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local), end)

	// A single-day range is valid.
	_, _, err = parseDateRange("2024-01-01", "2024-01-01")
	require.NoError(t, err)
}

func TestParseDateRangeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"missing start", "", "2024-03-31"},
		{"missing end", "2024-01-01", ""},
		{"both missing", "", ""},
		{"unparseable start", "01/01/2024", "2024-03-31"},
		{"unparseable end", "2024-01-01", "soon"},
		{"inverted range", "2024-03-31", "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseDateRange(tt.start, tt.end)
			require.ErrorIs(t, err, errors.ErrValidationFailed)
		})
	}
}

func TestValidationMessage(t *testing.T) {
	_, _, err := parseDateRange("2024-03-31", "2024-01-01")
	require.Equal(t, "Start date must be before end date.", validationMessage(err))

	_, _, err = parseDateRange("", "")
	require.Equal(t, "Please select both start and end dates.", validationMessage(err))
}
