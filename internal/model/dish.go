package model

import "time"

type DishType string

const (
	DishTypeDish        DishType = "dish"
	DishTypeEatingOut   DishType = "eating_out"
	DishTypePlaceholder DishType = "placeholder"
)

// Valid reports whether t is one of the known dish types.
func (t DishType) Valid() bool {
	switch t {
	case DishTypeDish, DishTypeEatingOut, DishTypePlaceholder:
		return true
	}
	return false
}

// Ingredient is embedded in a dish. ProductName is cached so the ingredient
// still displays after its product is deleted. A nil Amount means "to taste".
type Ingredient struct {
	ID          string   `json:"id"`
	ProductID   *string  `json:"productId"`
	ProductName string   `json:"productName"`
	Amount      *float64 `json:"amount"`
	Unit        string   `json:"unit"`
	Optional    bool     `json:"optional"`
}

// SubDishRef points at another dish whose ingredients are included, scaled by
// ScalingFactor. References may form cycles.
type SubDishRef struct {
	DishID        string  `json:"dishId"`
	ScalingFactor float64 `json:"scalingFactor"`
	Optional      bool    `json:"optional,omitempty"`
}

// Factor returns the scaling factor, treating an unset factor as 1.
func (r SubDishRef) Factor() float64 {
	if r.ScalingFactor <= 0 {
		return 1
	}
	return r.ScalingFactor
}

type Dish struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            DishType     `json:"type"`
	RecipeURL       *string      `json:"recipeUrl"`
	Recipe          *string      `json:"recipe"`
	Published       bool         `json:"published"`
	DefaultServings int          `json:"defaultServings"`
	Ingredients     []Ingredient `json:"ingredients"`
	SubDishes       []SubDishRef `json:"subDishes"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
