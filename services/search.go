package services

import (
	"strings"

	"lodge-backend/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

type GuestSearchResult struct {
	Guests     []models.Guest `json:"guests"`
	Suggestion string         `json:"suggestion,omitempty"`
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

func similarity(a, b string) int {
	return levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptionsWithSub)
}

// maxTypos scales the tolerated edit distance with the query length.
func maxTypos(q string) int {
	switch n := len([]rune(q)); {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

// SearchGuests filters guests by name, phone, email, room name or status, ignoring case and
// accents. When nothing contains the query, names within a small edit distance match instead,
// and when even that fails the closest known name is offered as a suggestion.
func SearchGuests(guests []models.Guest, query string) GuestSearchResult {
	q := normalizeSearch(query)
	if q == "" {
		return GuestSearchResult{Guests: guests}
	}

	matched := []models.Guest{}
	for _, g := range guests {
		fields := []string{g.Name, g.Phone, g.Email, g.RoomName, g.Status}
		for _, f := range fields {
			if strings.Contains(normalizeSearch(f), q) {
				matched = append(matched, g)
				break
			}
		}
	}
	if len(matched) > 0 {
		return GuestSearchResult{Guests: matched}
	}

	limit := maxTypos(q)
	names := make([]string, 0, len(guests))
	for _, g := range guests {
		name := normalizeSearch(g.Name)
		names = append(names, name)
		if limit == 0 {
			continue
		}
		candidates := append([]string{name}, strings.Fields(name)...)
		for _, c := range candidates {
			if similarity(q, c) <= limit {
				matched = append(matched, g)
				break
			}
		}
	}
	if len(matched) > 0 || len(names) == 0 {
		return GuestSearchResult{Guests: matched}
	}

	suggestion := closestmatch.New(names, []int{2, 3}).Closest(q)
	for _, g := range guests {
		if normalizeSearch(g.Name) == suggestion {
			return GuestSearchResult{Guests: matched, Suggestion: g.Name}
		}
	}
	return GuestSearchResult{Guests: matched}
}
