package prompts

import (
	"testing"

	"travelguide/models"
)

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		name     string
		place    string
		expected models.LocationType
	}{
		{
			name:     "Museum keyword",
			place:    "British Museum",
			expected: models.LocationMuseum,
		},
		{
			name:     "Cathedral is a building",
			place:    "Notre-Dame Cathedral",
			expected: models.LocationBuilding,
		},
		{
			name:     "Tower is a building",
			place:    "Eiffel Tower",
			expected: models.LocationBuilding,
		},
		{
			name:     "Monument keyword",
			place:    "Washington Monument",
			expected: models.LocationMonument,
		},
		{
			name:     "Memorial keyword",
			place:    "Lincoln Memorial",
			expected: models.LocationMonument,
		},
		{
			name:     "Nature keyword",
			place:    "Yosemite National Park",
			expected: models.LocationNature,
		},
		{
			name:     "Restaurant keyword",
			place:    "Cafe de Flore",
			expected: models.LocationRestaurant,
		},
		{
			name:     "Short multi-word name defaults to city",
			place:    "New York",
			expected: models.LocationCity,
		},
		{
			name:     "Three-word city",
			place:    "Rio de Janeiro",
			expected: models.LocationCity,
		},
		{
			name:     "Single word falls to default",
			place:    "Paris",
			expected: models.LocationDefault,
		},
		{
			name:     "Keyword wins over multi-word city rule",
			place:    "Tokyo National Museum",
			expected: models.LocationMuseum,
		},
		{
			name:     "Case insensitive",
			place:    "MUSEUM OF MODERN ART",
			expected: models.LocationMuseum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLocation(tt.place)
			if got != tt.expected {
				t.Errorf("ClassifyLocation(%q) = %v, want %v", tt.place, got, tt.expected)
			}
		})
	}
}

func TestCategoriesForFallsBack(t *testing.T) {
	if len(CategoriesFor("nonsense")) == 0 {
		t.Fatal("expected default categories for unknown type")
	}
	got := CategoriesFor(models.LocationMuseum)
	if got[0] != "Introduction" || got[1] != "History & Architecture" {
		t.Errorf("unexpected museum categories: %v", got)
	}
}
