package shopping

import (
	"time"

	"github.com/dukerupert/schompf/internal/model"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// SubtractDays returns date minus days as YYYY-MM-DD. The arithmetic is on
// calendar days in UTC, so no timezone shift can move the result.
func SubtractDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -days).Format(dateLayout), nil
}

// applyFreshness derives the use and purchase dates from the item's meal
// entries and sets the status for shoppingDate. Items without meal entries keep
// no dates and are always ok.
func applyFreshness(item *model.ShoppingItem, shoppingDate *string) {
	var earliest string
	for _, a := range item.Amounts {
		if a.SourceType != model.SourceMeal || a.MealDate == "" {
			continue
		}
		if earliest == "" || a.MealDate < earliest {
			earliest = a.MealDate
		}
	}

	item.FreshnessStatus = model.FreshnessOK
	if earliest == "" {
		return
	}
	item.EarliestUseDate = ptr(earliest)
	item.EarliestPurchaseDate = nil

	if item.FreshnessDays == nil {
		return
	}
	purchase, err := SubtractDays(earliest, *item.FreshnessDays)
	if err != nil {
		return
	}
	item.EarliestPurchaseDate = &purchase

	if shoppingDate != nil && *shoppingDate != "" && *shoppingDate < purchase {
		item.FreshnessStatus = model.FreshnessWait
	}
}
