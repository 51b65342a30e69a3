package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStay(t *testing.T) {
	q := QuoteStay(200, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-03"))
	assert.True(t, q.Complete)
	assert.Equal(t, 2, q.Nights)
	assert.Equal(t, 400.0, q.Total)
}

func TestQuoteStayIncompleteSelection(t *testing.T) {
	day := mustDate(t, "2024-03-10")

	assert.Equal(t, StayQuote{}, QuoteStay(200, day, day), "same day")
	assert.Equal(t, StayQuote{}, QuoteStay(200, day, day.AddDate(0, 0, -2)), "reversed")
	assert.Equal(t, StayQuote{}, QuoteStay(200, time.Time{}, day), "missing check-in")
}

func TestStayNightsRoundsPartialDaysUp(t *testing.T) {
	in := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, StayNights(in, out))
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	a, b, c, d := mustDate(t, "2024-05-01"), mustDate(t, "2024-05-03"), mustDate(t, "2024-05-05"), mustDate(t, "2024-05-02")

	assert.False(t, Overlaps(a, b, b, c), "back-to-back stays share no night")
	assert.True(t, Overlaps(a, b, d, c))
	assert.True(t, Overlaps(d, c, a, b))
}

func TestParseStayDate(t *testing.T) {
	d, err := ParseStayDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseStayDate("2024-02-29T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseStayDate("29/02/2024")
	assert.Error(t, err)
	_, err = ParseStayDate("  ")
	assert.Error(t, err)
}

func TestValidateStay(t *testing.T) {
	assert.NoError(t, ValidateStay(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-02")))
	assert.ErrorIs(t, ValidateStay(mustDate(t, "2024-01-02"), mustDate(t, "2024-01-02")), ErrInvalidStay)
}
