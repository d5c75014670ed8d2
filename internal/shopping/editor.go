package shopping

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dukerupert/schompf/internal/model"
)

// adjustmentEpsilon is the smallest quantity change recorded as an adjustment.
const adjustmentEpsilon = 0.001

// ManualItem is a user-entered shopping item. When CategorySet is false the
// category of a product with the same name is used.
type ManualItem struct {
	ProductName string
	Amount      *float64
	Unit        *string
	CategorySet bool
	CategoryID  *string
}

// ItemUpdate changes an item's quantity and/or display category. Amount and
// Unit must be given together. When CategorySet is true, a nil CategoryID moves
// the item to uncategorized.
type ItemUpdate struct {
	Amount      *float64
	Unit        *string
	CategorySet bool
	CategoryID  *string
}

func validateCategory(cat Catalog, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	if _, ok := cat.Category(*categoryID); !ok {
		return nil, fmt.Errorf("%w: category %q does not exist", model.ErrValidation, *categoryID)
	}
	return categoryID, nil
}

// AddManualItem adds a manual entry to the item with the same merge key, or
// creates a new item. A soft-deleted item that receives a manual entry is
// restored.
func AddManualItem(list *model.ShoppingList, cat Catalog, req ManualItem, now time.Time, newID func() string) (model.ShoppingItem, error) {
	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		return model.ShoppingItem{}, fmt.Errorf("%w: productName is required", model.ErrValidation)
	}

	product, _ := cat.ProductByName(name)

	categoryID := req.CategoryID
	if !req.CategorySet && product != nil {
		categoryID = product.CategoryID
	}
	categoryID, err := validateCategory(cat, categoryID)
	if err != nil {
		return model.ShoppingItem{}, err
	}

	if product != nil {
		name = product.Name
	}
	key := MergeKey(name, categoryID)

	entry := model.SourceEntry{
		SourceType: model.SourceManual,
		Amount:     req.Amount,
		AddedAt:    now,
	}
	if req.Unit != nil {
		entry.Unit = *req.Unit
	}

	list.UpdatedAt = now
	for i := range list.Items {
		item := &list.Items[i]
		if itemKey(item) != key {
			continue
		}
		item.Amounts = append(item.Amounts, entry)
		item.Deleted = false
		recalculate(item)
		return *item, nil
	}

	item := model.ShoppingItem{
		ID:              newID(),
		ProductName:     name,
		FreshnessDays:   resolveFreshness(product, cat.CurrentSettings()),
		FreshnessStatus: model.FreshnessOK,
		Amounts:         []model.SourceEntry{entry},
		MergeKey:        key,
	}
	if product != nil {
		item.ProductID = ptr(product.ID)
	}
	applyCategory(&item, cat, categoryID)
	recalculate(&item)
	list.Items = append(list.Items, item)
	return item, nil
}

// UpdateItem applies upd to the item. Quantity changes never rewrite existing
// entries: the difference to the requested total is appended as an adjustment.
// Category changes only move the item for display; its merge key is kept.
func UpdateItem(list *model.ShoppingList, cat Catalog, id string, upd ItemUpdate, now time.Time) (model.ShoppingItem, error) {
	item := list.Item(id)
	if item == nil {
		return model.ShoppingItem{}, fmt.Errorf("%w: shopping item %q", model.ErrNotFound, id)
	}
	if (upd.Amount == nil) != (upd.Unit == nil) {
		return model.ShoppingItem{}, fmt.Errorf("%w: amount and unit must be given together", model.ErrValidation)
	}

	var categoryID *string
	if upd.CategorySet {
		var err error
		if categoryID, err = validateCategory(cat, upd.CategoryID); err != nil {
			return model.ShoppingItem{}, err
		}
	}

	if item.MergeKey == "" {
		item.MergeKey = itemKey(item)
	}
	if upd.Amount != nil {
		adjustTo(item, *upd.Amount, *upd.Unit, now)
	}
	if upd.CategorySet {
		applyCategory(item, cat, categoryID)
	}

	recalculate(item)
	list.UpdatedAt = now
	return *item, nil
}

// adjustTo appends the signed difference between the requested total and the
// item's current total in the same unit group (or the same raw unit when the
// unit is not recognized). The adjustment is expressed in the caller's unit
// when that unit converts to the same group.
func adjustTo(item *model.ShoppingItem, amount float64, unit string, now time.Time) {
	target := Normalize(amount, unit)
	active := activeEntries(item.Amounts)

	var current float64
	if t, ok := Aggregate(active).Group(target.Group); target.Group != GroupNone && ok {
		current = t.Amount
	} else {
		for _, e := range active {
			if e.Amount != nil && strings.EqualFold(e.Unit, unit) {
				current += *e.Amount
			}
		}
	}

	delta := target.Amount - current
	if math.Abs(delta) <= adjustmentEpsilon {
		return
	}

	adjAmount, adjUnit := delta, target.Unit
	if def, ok := lookupUnit(unit); ok && def.group == target.Group && def.base != strings.ToLower(strings.TrimSpace(unit)) {
		adjAmount = delta / def.factor
		adjUnit = unit
	}

	item.Amounts = append(item.Amounts, model.SourceEntry{
		SourceType:   model.SourceManual,
		Amount:       ptr(adjAmount),
		Unit:         adjUnit,
		AddedAt:      now,
		IsAdjustment: true,
	})
}

// DeleteItem removes the item. Items with meal entries are soft-deleted: they
// stay on the list marked deleted, with negative adjustments zeroing every
// unit group, so the next generate still recognizes their meals. Purely manual
// items are removed. It reports whether the delete was soft.
func DeleteItem(list *model.ShoppingList, id string, now time.Time) (bool, error) {
	idx := -1
	for i := range list.Items {
		if list.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, fmt.Errorf("%w: shopping item %q", model.ErrNotFound, id)
	}
	list.UpdatedAt = now

	item := &list.Items[idx]
	if !item.HasMealSources() {
		list.Items = append(list.Items[:idx], list.Items[idx+1:]...)
		return false, nil
	}

	item.Deleted = true
	agg := Aggregate(activeEntries(item.Amounts))
	var zeroing []model.SourceEntry
	for _, g := range agg.Groups {
		if g.Amount != 0 {
			zeroing = append(zeroing, deletionAdjustment(-g.Amount, g.Unit, now))
		}
	}
	for _, q := range agg.Incompatible {
		if q.Amount != 0 {
			zeroing = append(zeroing, deletionAdjustment(-q.Amount, q.Unit, now))
		}
	}
	item.Amounts = append(item.Amounts, zeroing...)

	recalculate(item)
	item.Amount = ptr(0.0)
	if item.DisplayAmount == "" {
		item.DisplayAmount = "0"
	}
	return true, nil
}

func deletionAdjustment(amount float64, unit string, now time.Time) model.SourceEntry {
	return model.SourceEntry{
		SourceType:   model.SourceManual,
		Amount:       ptr(amount),
		Unit:         unit,
		AddedAt:      now,
		IsAdjustment: true,
		Reason:       model.DeletedAdjustmentNote,
	}
}

// ToggleChecked flips the item's checked flag.
func ToggleChecked(list *model.ShoppingList, id string, now time.Time) (model.ShoppingItem, error) {
	item := list.Item(id)
	if item == nil {
		return model.ShoppingItem{}, fmt.Errorf("%w: shopping item %q", model.ErrNotFound, id)
	}
	item.Checked = !item.Checked
	list.UpdatedAt = now
	return *item, nil
}

// RemoveChecked drops every checked item and returns how many were removed.
func RemoveChecked(list *model.ShoppingList, now time.Time) int {
	kept := list.Items[:0]
	for _, item := range list.Items {
		if !item.Checked {
			kept = append(kept, item)
		}
	}
	removed := len(list.Items) - len(kept)
	list.Items = kept
	list.UpdatedAt = now
	return removed
}

// Clear empties the list but keeps its identity and date range.
func Clear(list *model.ShoppingList, now time.Time) {
	list.Items = []model.ShoppingItem{}
	list.UpdatedAt = now
}
