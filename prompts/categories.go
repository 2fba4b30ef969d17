package prompts

import "travelguide/models"

// categoryTemplates maps a location type to its ordered category list
var categoryTemplates = map[models.LocationType][]string{
	models.LocationCity:       {"Introduction", "Getting There", "Where to Stay", "Food & Drink", "Top Sights", "Activities", "Day Trips", "Practical Tips"},
	models.LocationMuseum:     {"Introduction", "History & Architecture", "Must-See Exhibits", "Hidden Gems", "Special Collections", "Visitor Information"},
	models.LocationBuilding:   {"Introduction", "History", "Architecture & Design", "Notable Features", "Cultural Significance", "Visiting"},
	models.LocationMonument:   {"Introduction", "Historical Context", "Design & Construction", "Cultural Impact", "Visiting Information"},
	models.LocationNature:     {"Introduction", "Geography & Climate", "Flora & Fauna", "Activities", "Best Times to Visit", "Conservation"},
	models.LocationRestaurant: {"Introduction", "Signature Dishes", "Atmosphere", "History", "Practical Information"},
	models.LocationDefault:    {"Introduction", "Background", "Key Features", "Experience", "Practical Information"},
}

// CategoriesFor returns the category list for a location type, falling back
// to the default template for unknown types.
func CategoriesFor(locType models.LocationType) []string {
	if categories, ok := categoryTemplates[locType]; ok {
		return categories
	}
	return categoryTemplates[models.LocationDefault]
}
