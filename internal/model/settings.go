package model

type MealSlot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type Settings struct {
	DefaultServings      int        `json:"defaultServings"`
	MealSlots            []MealSlot `json:"mealSlots"`
	ShoppingDays         []string   `json:"shoppingDays"`
	DefaultFreshnessDays *int       `json:"defaultFreshnessDays"`
}

// DefaultSettings returns the settings a new document is seeded with.
func DefaultSettings() Settings {
	freshness := 7
	return Settings{
		DefaultServings: 2,
		MealSlots: []MealSlot{
			{ID: "breakfast", Name: "Frühstück", Order: 0},
			{ID: "lunch", Name: "Mittagessen", Order: 1},
			{ID: "dinner", Name: "Abendessen", Order: 2},
		},
		ShoppingDays:         []string{"wednesday", "saturday"},
		DefaultFreshnessDays: &freshness,
	}
}

// Slot returns the configured meal slot with the given id.
func (s Settings) Slot(id string) (MealSlot, bool) {
	for _, slot := range s.MealSlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return MealSlot{}, false
}
