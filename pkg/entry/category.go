package entry

import (
	"fmt"
	"strings"
)

// Category groups items inside a calendar period.
type Category string

const (
	DirectSowing  Category = "direct_sowing"
	SeedlingStart Category = "seedling_start"
	Transplanting Category = "transplanting"
	Greenhouse    Category = "greenhouse"
	CustomPlants  Category = "custom_plants"
	// CustomTasks holds every custom task, whatever category it was stored with.
	CustomTasks Category = "custom_tasks"
	// GardenTasks only appears in the built-in catalog.
	GardenTasks Category = "garden_tasks"
)

// PlantCategories returns the categories a custom plant may be filed under.
func PlantCategories() []Category {
	return []Category{
		DirectSowing,
		SeedlingStart,
		Transplanting,
		Greenhouse,
		CustomPlants,
	}
}

// DisplayOrder is the order categories are listed within a period.
func DisplayOrder() []Category {
	return []Category{
		DirectSowing,
		SeedlingStart,
		Transplanting,
		Greenhouse,
		GardenTasks,
		CustomPlants,
		CustomTasks,
	}
}

// IsPlantCategory reports whether c is one of PlantCategories.
func (c Category) IsPlantCategory() bool {
	for _, candidate := range PlantCategories() {
		if c == candidate {
			return true
		}
	}
	return false
}

// ParseCategory normalizes raw into a plant category. Empty input yields
// CustomPlants.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CustomPlants, nil
	}
	if !c.IsPlantCategory() {
		return CustomPlants, fmt.Errorf("entry: unknown category %q", raw)
	}
	return c, nil
}

var categoryTitles = map[Category]string{
	DirectSowing:  "Direct Sowing",
	SeedlingStart: "Starting Seedlings",
	Transplanting: "Transplanting",
	Greenhouse:    "Greenhouse",
	GardenTasks:   "Garden Tasks",
	CustomPlants:  "My Custom Plants",
	CustomTasks:   "My Custom Tasks",
}

var categoryIcons = map[Category]string{
	DirectSowing:  "🌱",
	SeedlingStart: "🌿",
	Transplanting: "🌿",
	Greenhouse:    "🏡",
	GardenTasks:   "🧰",
	CustomPlants:  "🌸",
	CustomTasks:   "📝",
}

// Title is the display name of the category; unknown categories echo their id.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Icon is a one-glyph marker for the category, or "•".
func (c Category) Icon() string {
	if i, ok := categoryIcons[c]; ok {
		return i
	}
	return "•"
}
