package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// StayQuote is the price of a stay in base currency. An incomplete quote has zero nights and total.
type StayQuote struct {
	Nights   int     `json:"nights"`
	Total    float64 `json:"total"`
	Complete bool    `json:"complete"`
}

// StayNights returns ceil((checkOut - checkIn) / 24h), or 0 when checkOut is not after checkIn.
func StayNights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

func QuoteStay(pricePerNight float64, checkIn, checkOut time.Time) StayQuote {
	nights := StayNights(checkIn, checkOut)
	if nights <= 0 {
		return StayQuote{}
	}
	return StayQuote{Nights: nights, Total: float64(nights) * pricePerNight, Complete: true}
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share at least one night.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// ParseStayDate accepts 2006-01-02 or RFC3339 and returns the calendar date at UTC midnight.
func ParseStayDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return StartOfDay(t), nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateStay enforces at least one night between the two dates.
func ValidateStay(checkIn, checkOut time.Time) error {
	if StayNights(checkIn, checkOut) < 1 {
		return ErrInvalidStay
	}
	return nil
}
