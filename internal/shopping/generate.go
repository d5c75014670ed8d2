package shopping

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dukerupert/schompf/internal/model"
)

// GenerateRequest selects the meals to shop for. ShoppingDate, when set, is
// compared against each item's earliest purchase date.
type GenerateRequest struct {
	FromDate     string
	ToDate       string
	ShoppingDate *string
}

func (r GenerateRequest) validate() error {
	if r.FromDate == "" || r.ToDate == "" {
		return fmt.Errorf("%w: fromDate and toDate are required", model.ErrValidation)
	}
	if _, err := ParseDate(r.FromDate); err != nil {
		return fmt.Errorf("%w: invalid fromDate %q", model.ErrValidation, r.FromDate)
	}
	if _, err := ParseDate(r.ToDate); err != nil {
		return fmt.Errorf("%w: invalid toDate %q", model.ErrValidation, r.ToDate)
	}
	if r.FromDate > r.ToDate {
		return fmt.Errorf("%w: fromDate is after toDate", model.ErrValidation)
	}
	if r.ShoppingDate != nil && *r.ShoppingDate != "" {
		if _, err := ParseDate(*r.ShoppingDate); err != nil {
			return fmt.Errorf("%w: invalid shoppingDate %q", model.ErrValidation, *r.ShoppingDate)
		}
	}
	return nil
}

// GenerateResult reports what a generate pass did.
type GenerateResult struct {
	List          *model.ShoppingList
	EligibleMeals int
	Created       int
	Merged        int
	Truncated     int
}

type pendingItem struct {
	productID     *string
	productName   string
	categoryID    *string
	freshnessDays *int
	sources       []model.SourceEntry
}

// Generate merges the ingredients of every shoppable meal in the request's
// range into list. Existing items, their checked and deleted state and all
// manual entries are kept; a meal already recorded on an item is never added
// to it twice, so generating again over the same range changes nothing.
// list may be nil, in which case a new list is created.
func Generate(list *model.ShoppingList, cat Catalog, req GenerateRequest, now time.Time, newID func() string) (GenerateResult, error) {
	if err := req.validate(); err != nil {
		return GenerateResult{}, err
	}
	if list == nil {
		list = &model.ShoppingList{ID: newID(), GeneratedAt: now, Items: []model.ShoppingItem{}}
	}
	if req.ShoppingDate != nil && *req.ShoppingDate == "" {
		req.ShoppingDate = nil
	}

	existing := make(map[string]int, len(list.Items))
	for i := range list.Items {
		existing[itemKey(&list.Items[i])] = i
	}

	var meals []model.Meal
	for _, m := range cat.MealsInRange(req.FromDate, req.ToDate) {
		if m.Status.Shoppable() {
			meals = append(meals, m)
		}
	}

	settings := cat.CurrentSettings()
	collector := NewCollector(cat)
	pending := make(map[string]*pendingItem)
	var order []string

	for _, meal := range meals {
		if meal.DishID == nil {
			continue
		}
		dish, ok := cat.Dish(*meal.DishID)
		if !ok || dish.Type == model.DishTypeEatingOut {
			continue
		}

		for _, line := range collector.CollectMeal(meal) {
			var product *model.Product
			if line.ProductID != nil {
				if p, ok := cat.Product(*line.ProductID); ok {
					product = p
				}
			}

			var categoryID *string
			productName := line.ProductName
			if product != nil {
				categoryID = product.CategoryID
				if productName == "" {
					productName = product.Name
				}
			}
			if productName == "" {
				productName = model.UnknownProductName
			}

			key := MergeKey(productName, categoryID)
			p, ok := pending[key]
			if !ok {
				p = &pendingItem{
					productID:     line.ProductID,
					productName:   productName,
					categoryID:    categoryID,
					freshnessDays: resolveFreshness(product, settings),
				}
				pending[key] = p
				order = append(order, key)
			}

			entry := model.SourceEntry{
				SourceType:     model.SourceMeal,
				MealID:         meal.ID,
				MealDate:       meal.Date,
				MealSlot:       meal.SlotName,
				DishID:         *meal.DishID,
				SourceDishID:   line.SourceDishID,
				SourceDishName: line.SourceDishName,
				Amount:         line.Amount,
				Unit:           line.Unit,
				Optional:       line.Optional,
				AddedAt:        now,
			}
			if meal.DishName != nil {
				entry.DishName = *meal.DishName
			}
			p.sources = append(p.sources, entry)
		}
	}

	res := GenerateResult{EligibleMeals: len(meals), Truncated: collector.Truncated()}

	for _, key := range order {
		p := pending[key]
		if idx, ok := existing[key]; ok {
			item := &list.Items[idx]
			seen := make(map[string]bool)
			for _, a := range item.Amounts {
				if a.SourceType == model.SourceMeal {
					seen[a.MealID] = true
				}
			}
			added := false
			for _, s := range p.sources {
				if seen[s.MealID] {
					continue
				}
				item.Amounts = append(item.Amounts, s)
				added = true
			}
			if added {
				recalculate(item)
				res.Merged++
			}
			continue
		}

		item := model.ShoppingItem{
			ID:            newID(),
			ProductID:     p.productID,
			ProductName:   p.productName,
			FreshnessDays: p.freshnessDays,
			Amounts:       p.sources,
			MergeKey:      key,
		}
		applyCategory(&item, cat, p.categoryID)
		recalculate(&item)
		list.Items = append(list.Items, item)
		existing[key] = len(list.Items) - 1
		res.Created++
	}

	for i := range list.Items {
		if list.Items[i].HasMealSources() {
			applyFreshness(&list.Items[i], req.ShoppingDate)
		}
	}
	SortItems(list.Items)

	mealIDs := make([]string, 0, len(meals))
	for _, m := range meals {
		mealIDs = append(mealIDs, m.ID)
	}

	list.FromDate = ptr(req.FromDate)
	list.ToDate = ptr(req.ToDate)
	list.ShoppingDate = req.ShoppingDate
	list.GeneratedAt = now
	list.UpdatedAt = now
	list.MealIDs = mealIDs

	res.List = list
	return res, nil
}

// SortItems orders items by vendor name with the misc vendor last, then by
// category order, then by product name, comparing names with German collation.
func SortItems(items []model.ShoppingItem) {
	col := collate.New(language.German)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if a.VendorName != b.VendorName {
			if a.VendorName == model.MiscVendorName {
				return false
			}
			if b.VendorName == model.MiscVendorName {
				return true
			}
			return col.CompareString(a.VendorName, b.VendorName) < 0
		}
		if a.CategoryOrder != b.CategoryOrder {
			return a.CategoryOrder < b.CategoryOrder
		}
		return col.CompareString(a.ProductName, b.ProductName) < 0
	})
}
