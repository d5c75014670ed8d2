package model

import "time"

type SourceType string

const (
	SourceMeal   SourceType = "meal"
	SourceManual SourceType = "manual"
)

type FreshnessStatus string

const (
	FreshnessOK   FreshnessStatus = "ok"
	FreshnessWait FreshnessStatus = "wait"
)

// Defaults for items whose product has no category or vendor.
const (
	MiscVendorName        = "Sonstiges"
	MiscVendorColor       = "#9CA3AF"
	UncategorizedOrder    = 999
	UnknownProductName    = "Unbekannt"
	DeletedAdjustmentNote = "deleted"
)

// SourceEntry is one contribution to a shopping item's quantity. Entries are
// only ever appended; edits are recorded as adjustment entries.
type SourceEntry struct {
	SourceType     SourceType `json:"sourceType"`
	MealID         string     `json:"mealId,omitempty"`
	MealDate       string     `json:"mealDate,omitempty"`
	MealSlot       string     `json:"mealSlot,omitempty"`
	DishID         string     `json:"dishId,omitempty"`
	DishName       string     `json:"dishName,omitempty"`
	SourceDishID   string     `json:"sourceDishId,omitempty"`
	SourceDishName string     `json:"sourceDishName,omitempty"`
	Amount         *float64   `json:"amount"`
	Unit           string     `json:"unit"`
	Optional       bool       `json:"optional,omitempty"`
	AddedAt        time.Time  `json:"addedAt"`
	IsAdjustment   bool       `json:"isAdjustment,omitempty"`
	Deleted        bool       `json:"deleted,omitempty"`
	Reason         string     `json:"reason,omitempty"`
}

// ShoppingItem aggregates every source entry for one merge key. Amount, Unit
// and DisplayAmount are derived from Amounts and recomputed on every change.
type ShoppingItem struct {
	ID                   string          `json:"id"`
	ProductID            *string         `json:"productId"`
	ProductName          string          `json:"productName"`
	CategoryID           *string         `json:"categoryId"`
	CategoryName         *string         `json:"categoryName"`
	CategoryOrder        int             `json:"categoryOrder"`
	VendorID             *string         `json:"vendorId"`
	VendorName           string          `json:"vendorName"`
	VendorColor          string          `json:"vendorColor"`
	FreshnessDays        *int            `json:"freshnessDays"`
	EarliestUseDate      *string         `json:"earliestUseDate"`
	EarliestPurchaseDate *string         `json:"earliestPurchaseDate"`
	FreshnessStatus      FreshnessStatus `json:"freshnessStatus"`
	Amounts              []SourceEntry   `json:"amounts"`
	Amount               *float64        `json:"amount"`
	Unit                 *string         `json:"unit"`
	DisplayAmount        string          `json:"displayAmount"`
	Checked              bool            `json:"checked"`
	Deleted              bool            `json:"deleted"`

	// MergeKey is the identity under which generation merges contributions.
	// It is fixed at creation so later category edits do not change it.
	MergeKey string `json:"mergeKey,omitempty"`
}

// HasMealSources reports whether any entry came from a planned meal.
func (i *ShoppingItem) HasMealSources() bool {
	for _, a := range i.Amounts {
		if a.SourceType == SourceMeal {
			return true
		}
	}
	return false
}

type ShoppingList struct {
	ID           string         `json:"id"`
	FromDate     *string        `json:"fromDate"`
	ToDate       *string        `json:"toDate"`
	ShoppingDate *string        `json:"shoppingDate"`
	GeneratedAt  time.Time      `json:"generatedAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Items        []ShoppingItem `json:"items"`
	MealIDs      []string       `json:"mealIds"`
}

// Item returns a pointer into Items for the given id, or nil.
func (l *ShoppingList) Item(id string) *ShoppingItem {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}
