package prompts

import (
	"strings"

	"travelguide/models"
)

// typeRule maps name substrings to a location type. Rules are checked in
// order; the first match wins, so more specific keywords come first.
type typeRule struct {
	keywords []string
	locType  models.LocationType
}

var typeRules = []typeRule{
	{[]string{"museum", "gallery"}, models.LocationMuseum},
	{[]string{"cathedral", "tower", "palace", "castle", "basilica", "temple"}, models.LocationBuilding},
	{[]string{"monument", "statue", "memorial"}, models.LocationMonument},
	{[]string{"park", "beach", "mountain", "forest", "island", "falls", "canyon"}, models.LocationNature},
	{[]string{"restaurant", "cafe", "café", "bar", "bistro"}, models.LocationRestaurant},
}

// ClassifyLocation guesses a location type from cheap keyword heuristics on
// the place name. It is best-effort, not authoritative; a wrong guess only
// means a less fitting category template and map zoom.
func ClassifyLocation(name string) models.LocationType {
	lower := strings.ToLower(name)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.locType
			}
		}
	}

	// Short multi-word names ("New York", "Rio de Janeiro") are usually cities
	words := strings.Fields(name)
	if len(words) >= 2 && len(words) <= 4 && len(name) <= 30 {
		return models.LocationCity
	}

	return models.LocationDefault
}
