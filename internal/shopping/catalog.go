package shopping

import (
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

// Catalog is the read-only view of the document the shopping list is built
// from. *model.Document satisfies it.
type Catalog interface {
	DishLookup
	Product(id string) (*model.Product, bool)
	ProductByName(name string) (*model.Product, bool)
	Category(id string) (*model.Category, bool)
	Vendor(id string) (*model.Vendor, bool)
	CurrentSettings() model.Settings
	MealsInRange(from, to string) []model.Meal
}

// MergeKey identifies a shopping item for merging: the trimmed, lowercased
// product name plus the category id. It deliberately ignores the product id.
func MergeKey(productName string, categoryID *string) string {
	cat := "null"
	if categoryID != nil && *categoryID != "" {
		cat = *categoryID
	}
	return strings.ToLower(strings.TrimSpace(productName)) + "::" + cat
}

func itemKey(item *model.ShoppingItem) string {
	if item.MergeKey != "" {
		return item.MergeKey
	}
	return MergeKey(item.ProductName, item.CategoryID)
}

// applyCategory sets the denormalized category and vendor display fields.
// Unknown ids fall back to the uncategorized defaults.
func applyCategory(item *model.ShoppingItem, cat Catalog, categoryID *string) {
	if categoryID != nil && *categoryID == "" {
		categoryID = nil
	}
	item.CategoryID = categoryID
	item.CategoryName = nil
	item.CategoryOrder = model.UncategorizedOrder
	item.VendorID = nil
	item.VendorName = model.MiscVendorName
	item.VendorColor = model.MiscVendorColor

	if categoryID == nil {
		return
	}
	category, ok := cat.Category(*categoryID)
	if !ok {
		return
	}
	name := category.Name
	item.CategoryName = &name
	item.CategoryOrder = category.Order

	vendor, ok := cat.Vendor(category.VendorID)
	if !ok {
		return
	}
	vendorID := vendor.ID
	item.VendorID = &vendorID
	item.VendorName = vendor.Name
	item.VendorColor = vendor.Color
}

// resolveFreshness returns the product's shelf life. Known products keep their
// own value, nil meaning untracked; unknown products use the settings default.
func resolveFreshness(product *model.Product, settings model.Settings) *int {
	if product != nil {
		return copyInt(product.FreshnessDays)
	}
	return copyInt(settings.DefaultFreshnessDays)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func ptr[T any](v T) *T {
	return &v
}
