package shopping

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/dukerupert/schompf/internal/model"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func ingredient(productID, name string, amount float64, unit string) model.Ingredient {
	ing := model.Ingredient{ID: "ing-" + productID, ProductName: name, Unit: unit, Amount: &amount}
	if productID != "" {
		ing.ProductID = ptr(productID)
	}
	return ing
}

// testDocument builds a small household: two vendors, a pasta dish whose sauce
// refers back to it, an eating-out dish and three meals around 2024-01-10.
func testDocument(t *testing.T) *model.Document {
	t.Helper()

	doc := model.NewDocument()
	doc.Vendors = []model.Vendor{
		{ID: "v-edeka", Name: "Edeka", Color: "#10B981"},
		{ID: "v-aldi", Name: "Aldi", Color: "#3B82F6"},
	}
	doc.Categories = []model.Category{
		{ID: "c-veg", Name: "Gemüse", VendorID: "v-edeka", Order: 1},
		{ID: "c-dairy", Name: "Milchprodukte", VendorID: "v-edeka", Order: 2},
		{ID: "c-bakery", Name: "Backwaren", VendorID: "v-aldi", Order: 1},
	}
	doc.Products = []model.Product{
		{ID: "p-tomato", Name: "Tomaten", CategoryID: ptr("c-veg"), FreshnessDays: ptr(7)},
		{ID: "p-milk", Name: "Milch", CategoryID: ptr("c-dairy"), FreshnessDays: ptr(3)},
		{ID: "p-salt", Name: "Salz"},
		{ID: "p-bread", Name: "Brot", CategoryID: ptr("c-bakery"), FreshnessDays: ptr(2)},
	}

	salt := model.Ingredient{ID: "ing-salt", ProductID: ptr("p-salt"), ProductName: "Salz", Unit: "Prise"}
	doc.Dishes = []model.Dish{
		{
			ID: "d-pasta", Name: "Pasta", Type: model.DishTypeDish, DefaultServings: 2,
			Ingredients: []model.Ingredient{ingredient("p-tomato", "Tomaten", 200, "g"), salt},
			SubDishes:   []model.SubDishRef{{DishID: "d-sauce", ScalingFactor: 0.5}},
		},
		{
			ID: "d-sauce", Name: "Soße", Type: model.DishTypeDish,
			Ingredients: []model.Ingredient{ingredient("p-milk", "Milch", 100, "ml")},
			SubDishes:   []model.SubDishRef{{DishID: "d-pasta", ScalingFactor: 1}},
		},
		{
			ID: "d-restaurant", Name: "Pizzeria", Type: model.DishTypeEatingOut,
			Ingredients: []model.Ingredient{ingredient("p-bread", "Brot", 1, "Stück")},
		},
	}
	doc.Meals = []model.Meal{
		{ID: "m1", Date: "2024-01-10", SlotName: "Abendessen", SlotOrder: 2, DishID: ptr("d-pasta"), DishName: ptr("Pasta"), Servings: 2, Status: model.MealStatusPlanned},
		{ID: "m2", Date: "2024-01-12", SlotName: "Abendessen", SlotOrder: 2, DishID: ptr("d-pasta"), DishName: ptr("Pasta"), Servings: 1, Status: model.MealStatusCommitted},
		{ID: "m3", Date: "2024-01-11", SlotName: "Mittagessen", SlotOrder: 1, DishID: ptr("d-restaurant"), DishName: ptr("Pizzeria"), Servings: 2, Status: model.MealStatusPlanned},
	}
	return doc
}

func findItem(t *testing.T, list *model.ShoppingList, name string) *model.ShoppingItem {
	t.Helper()
	for i := range list.Items {
		if list.Items[i].ProductName == name {
			return &list.Items[i]
		}
	}
	t.Fatalf("item %q not on list", name)
	return nil
}

func generate(t *testing.T, list *model.ShoppingList, doc *model.Document, from, to string, shoppingDate *string, newID func() string) GenerateResult {
	t.Helper()
	res, err := Generate(list, doc, GenerateRequest{FromDate: from, ToDate: to, ShoppingDate: shoppingDate}, testNow, newID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
