package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelguide/models"
)

func TestZoomFor(t *testing.T) {
	tests := []struct {
		locType models.LocationType
		want    int
	}{
		{models.LocationCity, 11},
		{models.LocationNature, 10},
		{models.LocationBuilding, 16},
		{models.LocationMonument, 16},
		{models.LocationMuseum, 13},
		{models.LocationRestaurant, 13},
		{models.LocationDefault, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZoomFor(tt.locType), "zoom for %s", tt.locType)
	}
}

func TestComputeWithMentionedPlaces(t *testing.T) {
	content := &models.PlaceContent{
		Name:        "Paris",
		Type:        models.LocationCity,
		Coordinates: &models.Coordinates{Lat: 48.8566, Lon: 2.3522},
	}
	mentioned := []models.MentionedPlace{
		{Name: "Versailles", Lat: 48.8049, Lon: 2.1204},
	}

	view := Compute(content, mentioned)

	require.NotNil(t, view)
	assert.Equal(t, 11, view.Zoom)
	assert.InDelta(t, 48.8566, view.Center.Lat, 0.0001)
	require.Len(t, view.Markers, 2)
	assert.True(t, view.Markers[0].Main)
	assert.Equal(t, "Paris", view.Markers[0].Name)
	assert.False(t, view.Markers[1].Main)
	assert.Equal(t, "Versailles", view.Markers[1].Name)
}

func TestComputeWithoutCoordinates(t *testing.T) {
	assert.Nil(t, Compute(&models.PlaceContent{Name: "Nowhere"}, nil))
	assert.Nil(t, Compute(nil, nil))
}
