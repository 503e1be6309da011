package directory

import (
	"testing"

	"carefinder/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleLocations() []models.Location {
	return []models.Location{
		{
			ID:     1,
			City:   "Buffalo",
			County: "Erie",
			Organization: models.Organization{
				Name:     "Sunrise Day Services",
				Services: "day habilitation,community outings",
			},
		},
		{
			ID:     2,
			City:   "Rochester",
			County: "Monroe County",
			Organization: models.Organization{
				Name:     "Harbor Supports",
				Services: "respite,transport",
			},
		},
		{
			ID:     3,
			City:   "Tonawanda",
			County: "Erie County",
			Organization: models.Organization{
				Name:     "Lakeside Programs",
				Services: "day habilitation",
			},
		},
	}
}

func TestNormalizeCounty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Erie County", "erie"},
		{"erie", "erie"},
		{"  Erie  ", "erie"},
		{"MONROE COUNTY", "monroe"},
		{"", ""},
		{"County", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCounty(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCountyIdempotent(t *testing.T) {
	for _, s := range []string{"Erie County", " erie ", "Monroe", "st. lawrence county"} {
		once := NormalizeCounty(s)
		assert.Equal(t, once, NormalizeCounty(once))
	}
}

func TestFilterLocationsEmptyQueryReturnsAll(t *testing.T) {
	locs := sampleLocations()
	got := FilterLocations(locs, "", "all")
	assert.Equal(t, locs, got)
}

func TestFilterLocationsTextPredicate(t *testing.T) {
	locs := sampleLocations()

	// organization name, case-insensitive
	got := FilterLocations(locs, "sunrise", "")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	// city
	got = FilterLocations(locs, "ROCHESTER", "")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)

	// county substring
	got = FilterLocations(locs, "monroe", "")
	assert.Len(t, got, 1)

	// service label
	got = FilterLocations(locs, "habilitation", "")
	assert.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(3), got[1].ID)

	// no match
	got = FilterLocations(locs, "zzz", "")
	assert.Empty(t, got)
}

func TestFilterLocationsCountyPredicate(t *testing.T) {
	locs := sampleLocations()

	// "Erie" matches both the bare and suffixed spellings
	got := FilterLocations(locs, "", "Erie")
	assert.Len(t, got, 2)

	got = FilterLocations(locs, "", "erie county")
	assert.Len(t, got, 2)

	got = FilterLocations(locs, "", "Monroe")
	assert.Len(t, got, 1)

	// sentinel matches everything, in either spelling
	got = FilterLocations(locs, "", "all")
	assert.Len(t, got, 3)
	got = FilterLocations(locs, "", "All Counties")
	assert.Len(t, got, 3)
}

func TestFilterLocationsBothPredicates(t *testing.T) {
	locs := sampleLocations()
	got := FilterLocations(locs, "habilitation", "erie")
	assert.Len(t, got, 2)

	got = FilterLocations(locs, "lakeside", "erie")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)

	got = FilterLocations(locs, "lakeside", "monroe")
	assert.Empty(t, got)
}

func TestFilterLocationsPreservesInputOrder(t *testing.T) {
	locs := sampleLocations()
	got := FilterLocations(locs, "", "erie")
	assert.Equal(t, []uint{1, 3}, []uint{got[0].ID, got[1].ID})
}
