package model

import "time"

// MealStatus is ordered: planned → committed → prepared. A prepared meal can
// be reset to committed. Meals stored before statuses existed have "".
type MealStatus string

const (
	MealStatusPlanned   MealStatus = "planned"
	MealStatusCommitted MealStatus = "committed"
	MealStatusPrepared  MealStatus = "prepared"
)

func (s MealStatus) Valid() bool {
	switch s {
	case MealStatusPlanned, MealStatusCommitted, MealStatusPrepared:
		return true
	}
	return false
}

// Shoppable reports whether a meal with this status still needs to be shopped for.
func (s MealStatus) Shoppable() bool {
	return s == "" || s == MealStatusPlanned
}

// Meal schedules a dish on a calendar date (YYYY-MM-DD) and day slot. A nil
// DishID is a placeholder meal.
type Meal struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"`
	SlotID    *string      `json:"slotId"`
	SlotName  string       `json:"slotName"`
	SlotOrder int          `json:"slotOrder"`
	DishID    *string      `json:"dishId"`
	DishName  *string      `json:"dishName"`
	Servings  float64      `json:"servings"`
	Notes     *string      `json:"notes"`
	SubDishes []SubDishRef `json:"subDishes"`
	Status    MealStatus   `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
