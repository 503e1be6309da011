package directory

import (
	"strings"

	"carefinder/internal/domain"
	"carefinder/internal/models"
)

// NormalizeCounty trims whitespace, lower-cases and strips a trailing
// "county" suffix so that "Erie County", " erie " and "erie" compare equal.
// Idempotent.
func NormalizeCounty(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "county")
	return strings.TrimSpace(s)
}

// MatchesQuery reports whether a location matches a free-text query:
// case-insensitive substring against organization name, city, county or any
// service label. An empty query matches everything. The location must carry
// its preloaded Organization.
func MatchesQuery(loc *models.Location, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(loc.Organization.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(loc.City), q) {
		return true
	}
	if strings.Contains(strings.ToLower(loc.County), q) {
		return true
	}
	for _, svc := range loc.Organization.ServiceList() {
		if strings.Contains(strings.ToLower(svc), q) {
			return true
		}
	}
	return false
}

// MatchesCounty applies the normalized county-equality filter. An empty
// selector or the "all" sentinel matches everything.
func MatchesCounty(loc *models.Location, county string) bool {
	sel := NormalizeCounty(county)
	if sel == "" || sel == domain.AllCounties || sel == "all counties" {
		return true
	}
	return NormalizeCounty(loc.County) == sel
}

// FilterLocations returns the sublist satisfying both the text and county
// predicates, preserving input order. Side-effect free.
func FilterLocations(list []models.Location, query, county string) []models.Location {
	out := make([]models.Location, 0, len(list))
	for i := range list {
		if MatchesQuery(&list[i], query) && MatchesCounty(&list[i], county) {
			out = append(out, list[i])
		}
	}
	return out
}
