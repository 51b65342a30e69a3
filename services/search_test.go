package services

import (
	"testing"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
)

func searchFixture() []models.Guest {
	return []models.Guest{
		{ID: 1, Name: "Adwoa Agyeman", Phone: "0244000001", Email: "adwoa@example.com", RoomName: "Deluxe Room", Status: models.GuestActive},
		{ID: 2, Name: "Chloé Dubois", Phone: "0244000002", RoomName: "Standard Room", Status: models.GuestCheckedOut},
		{ID: 3, Name: "Kwabena Owusu", Phone: "0551234567", RoomName: "Family Suite", Status: models.GuestRemoved},
	}
}

func ids(gs []models.Guest) []uint {
	out := []uint{}
	for _, g := range gs {
		out = append(out, g.ID)
	}
	return out
}

func TestSearchGuestsEmptyQueryReturnsAll(t *testing.T) {
	res := SearchGuests(searchFixture(), "  ")
	assert.Len(t, res.Guests, 3)
}

func TestSearchGuestsSubstring(t *testing.T) {
	assert.Equal(t, []uint{3}, ids(SearchGuests(searchFixture(), "055123").Guests))
	assert.Equal(t, []uint{1}, ids(SearchGuests(searchFixture(), "DELUXE").Guests))
	assert.Equal(t, []uint{2}, ids(SearchGuests(searchFixture(), "checked").Guests))
}

func TestSearchGuestsIgnoresAccents(t *testing.T) {
	assert.Equal(t, []uint{2}, ids(SearchGuests(searchFixture(), "chloe").Guests))
}

func TestSearchGuestsToleratesTypos(t *testing.T) {
	res := SearchGuests(searchFixture(), "kwabina")
	assert.Equal(t, []uint{3}, ids(res.Guests))
	assert.Empty(t, res.Suggestion)
}

func TestSearchGuestsSuggestsClosestName(t *testing.T) {
	res := SearchGuests(searchFixture(), "agyemang owusuu")
	assert.Empty(t, res.Guests)
	assert.NotEmpty(t, res.Suggestion)
}

func TestMaxTypos(t *testing.T) {
	assert.Equal(t, 0, maxTypos("abc"))
	assert.Equal(t, 1, maxTypos("abcdef"))
	assert.Equal(t, 2, maxTypos("abcdefg"))
}
