// Package mapview computes marker placement and zoom for the embedded map
// widget. The widget itself lives client-side; this only decides what it shows.
package mapview

import "travelguide/models"

// Marker is one pin on the map
type Marker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Main bool    `json:"main,omitempty"`
}

// View is everything a map renderer needs for one place
type View struct {
	Center  models.Coordinates `json:"center"`
	Zoom    int                `json:"zoom"`
	Markers []Marker           `json:"markers"`
}

// ZoomFor picks a zoom level by location type: wide for cities and nature,
// tight for single structures.
func ZoomFor(locType models.LocationType) int {
	switch locType {
	case models.LocationCity:
		return 11
	case models.LocationNature:
		return 10
	case models.LocationBuilding, models.LocationMonument:
		return 16
	default:
		return 13
	}
}

// Compute builds the map view for a place: main marker at the place's
// coordinates plus one marker per geocoded mentioned place. Returns nil when
// the generator supplied no coordinates.
func Compute(content *models.PlaceContent, mentioned []models.MentionedPlace) *View {
	if content == nil || content.Coordinates == nil {
		return nil
	}

	view := &View{
		Center: *content.Coordinates,
		Zoom:   ZoomFor(content.Type),
		Markers: []Marker{
			{Name: content.Name, Lat: content.Coordinates.Lat, Lon: content.Coordinates.Lon, Main: true},
		},
	}
	for _, place := range mentioned {
		view.Markers = append(view.Markers, Marker{Name: place.Name, Lat: place.Lat, Lon: place.Lon})
	}
	return view
}
