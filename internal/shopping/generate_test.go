package shopping

import (
	"errors"
	"testing"

	"github.com/dukerupert/schompf/internal/model"
)

func TestGenerateBuildsItems(t *testing.T) {
	doc := testDocument(t)
	res := generate(t, nil, doc, "2024-01-08", "2024-01-14", nil, sequentialIDs())

	if res.EligibleMeals != 2 {
		t.Errorf("eligible meals = %d, want 2 (committed meal excluded)", res.EligibleMeals)
	}
	if res.Created != 3 {
		t.Errorf("created = %d, want 3", res.Created)
	}
	list := res.List
	if len(list.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(list.Items))
	}

	wantOrder := []string{"Tomaten", "Milch", "Salz"}
	for i, name := range wantOrder {
		if list.Items[i].ProductName != name {
			t.Errorf("items[%d] = %q, want %q", i, list.Items[i].ProductName, name)
		}
	}

	tomato := findItem(t, list, "Tomaten")
	if tomato.DisplayAmount != "400 g" {
		t.Errorf("tomato display = %q, want %q", tomato.DisplayAmount, "400 g")
	}
	if tomato.VendorName != "Edeka" || tomato.CategoryOrder != 1 {
		t.Errorf("tomato vendor/order = %q/%d", tomato.VendorName, tomato.CategoryOrder)
	}
	if tomato.MergeKey != "tomaten::c-veg" {
		t.Errorf("merge key = %q, want %q", tomato.MergeKey, "tomaten::c-veg")
	}
	if len(tomato.Amounts) != 1 || tomato.Amounts[0].MealID != "m1" || tomato.Amounts[0].DishName != "Pasta" {
		t.Errorf("tomato amounts = %+v", tomato.Amounts)
	}

	salt := findItem(t, list, "Salz")
	if salt.VendorName != model.MiscVendorName || salt.CategoryOrder != model.UncategorizedOrder {
		t.Errorf("salt vendor/order = %q/%d", salt.VendorName, salt.CategoryOrder)
	}
	if salt.Amount != nil || salt.DisplayAmount != "" {
		t.Errorf("salt amount = %v %q, want nil and empty", salt.Amount, salt.DisplayAmount)
	}

	for _, item := range list.Items {
		if item.ProductName == "Brot" {
			t.Error("eating-out dish contributed to the list")
		}
	}
	if len(list.MealIDs) != 2 || list.MealIDs[0] != "m1" || list.MealIDs[1] != "m3" {
		t.Errorf("meal ids = %v, want [m1 m3]", list.MealIDs)
	}
	if list.FromDate == nil || *list.FromDate != "2024-01-08" {
		t.Errorf("from date = %v", list.FromDate)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	doc := testDocument(t)
	newID := sequentialIDs()
	list := generate(t, nil, doc, "2024-01-08", "2024-01-14", nil, newID).List
	before := mustJSON(t, list.Items)

	res := generate(t, list, doc, "2024-01-08", "2024-01-14", nil, newID)
	if res.Created != 0 || res.Merged != 0 {
		t.Errorf("created/merged = %d/%d, want 0/0", res.Created, res.Merged)
	}
	if after := mustJSON(t, res.List.Items); after != before {
		t.Errorf("items changed on regenerate:\nbefore %s\nafter  %s", before, after)
	}
}

func TestGenerateMergesNewMeals(t *testing.T) {
	doc := testDocument(t)
	newID := sequentialIDs()
	list := generate(t, nil, doc, "2024-01-08", "2024-01-14", nil, newID).List

	doc.Meals = append(doc.Meals, model.Meal{
		ID: "m4", Date: "2024-01-13", DishID: ptr("d-pasta"), Servings: 1, Status: model.MealStatusPlanned,
	})
	res := generate(t, list, doc, "2024-01-08", "2024-01-14", nil, newID)
	if res.Created != 0 || res.Merged != 3 {
		t.Errorf("created/merged = %d/%d, want 0/3", res.Created, res.Merged)
	}

	tomato := findItem(t, res.List, "Tomaten")
	if tomato.DisplayAmount != "600 g" {
		t.Errorf("tomato display = %q, want %q", tomato.DisplayAmount, "600 g")
	}
}

func TestGenerateKeepsManualEntriesAndCheckedState(t *testing.T) {
	doc := testDocument(t)
	newID := sequentialIDs()
	list := &model.ShoppingList{ID: "list-1"}

	if _, err := AddManualItem(list, doc, ManualItem{ProductName: "Tomaten", Amount: ptr(0.1), Unit: ptr("kg")}, testNow, newID); err != nil {
		t.Fatalf("AddManualItem: %v", err)
	}
	list.Items[0].Checked = true

	res := generate(t, list, doc, "2024-01-08", "2024-01-14", nil, newID)
	if res.List.ID != "list-1" {
		t.Errorf("list id = %q, want list-1", res.List.ID)
	}
	tomato := findItem(t, res.List, "Tomaten")
	if !tomato.Checked {
		t.Error("checked state lost on generate")
	}
	if len(tomato.Amounts) != 2 || tomato.Amounts[0].SourceType != model.SourceManual {
		t.Errorf("amounts = %+v, want manual entry kept first", tomato.Amounts)
	}
	if tomato.DisplayAmount != "500 g" {
		t.Errorf("display = %q, want %q", tomato.DisplayAmount, "500 g")
	}
}

func TestGenerateFreshness(t *testing.T) {
	tests := []struct {
		name         string
		shoppingDate *string
		wantTomato   model.FreshnessStatus
		wantMilk     model.FreshnessStatus
	}{
		{"no shopping date", nil, model.FreshnessOK, model.FreshnessOK},
		{"too early for both", ptr("2024-01-01"), model.FreshnessWait, model.FreshnessWait},
		{"tomatoes ok", ptr("2024-01-05"), model.FreshnessOK, model.FreshnessWait},
		{"on purchase date", ptr("2024-01-07"), model.FreshnessOK, model.FreshnessOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := generate(t, nil, testDocument(t), "2024-01-08", "2024-01-14", tt.shoppingDate, sequentialIDs()).List

			tomato := findItem(t, list, "Tomaten")
			if tomato.EarliestPurchaseDate == nil || *tomato.EarliestPurchaseDate != "2024-01-03" {
				t.Errorf("tomato purchase date = %v, want 2024-01-03", tomato.EarliestPurchaseDate)
			}
			if tomato.FreshnessStatus != tt.wantTomato {
				t.Errorf("tomato status = %q, want %q", tomato.FreshnessStatus, tt.wantTomato)
			}
			if milk := findItem(t, list, "Milch"); milk.FreshnessStatus != tt.wantMilk {
				t.Errorf("milk status = %q, want %q", milk.FreshnessStatus, tt.wantMilk)
			}

			salt := findItem(t, list, "Salz")
			if salt.EarliestUseDate == nil || *salt.EarliestUseDate != "2024-01-10" {
				t.Errorf("salt use date = %v, want 2024-01-10", salt.EarliestUseDate)
			}
			if salt.EarliestPurchaseDate != nil || salt.FreshnessStatus != model.FreshnessOK {
				t.Errorf("untracked salt = %v/%q, want nil/ok", salt.EarliestPurchaseDate, salt.FreshnessStatus)
			}
		})
	}
}

func TestGenerateRefreshesFreshnessOfExistingItems(t *testing.T) {
	doc := testDocument(t)
	newID := sequentialIDs()
	list := generate(t, nil, doc, "2024-01-08", "2024-01-14", ptr("2024-01-01"), newID).List
	if tomato := findItem(t, list, "Tomaten"); tomato.FreshnessStatus != model.FreshnessWait {
		t.Fatalf("tomato status = %q, want wait", tomato.FreshnessStatus)
	}

	res := generate(t, list, doc, "2024-01-08", "2024-01-14", ptr("2024-01-05"), newID)
	if res.Created != 0 {
		t.Errorf("created = %d, want 0", res.Created)
	}
	if tomato := findItem(t, res.List, "Tomaten"); tomato.FreshnessStatus != model.FreshnessOK {
		t.Errorf("tomato status after later shopping date = %q, want ok", tomato.FreshnessStatus)
	}
	if milk := findItem(t, res.List, "Milch"); milk.FreshnessStatus != model.FreshnessWait {
		t.Errorf("milk status = %q, want wait", milk.FreshnessStatus)
	}
}

func TestGenerateUnknownProductUsesDefaultFreshness(t *testing.T) {
	doc := testDocument(t)
	doc.Dishes = append(doc.Dishes, model.Dish{
		ID: "d-soup", Name: "Suppe", Type: model.DishTypeDish,
		Ingredients: []model.Ingredient{ingredient("", "Kräuter", 1, "Bund")},
	})
	doc.Meals = []model.Meal{{ID: "m", Date: "2024-01-10", DishID: ptr("d-soup"), Servings: 1}}

	list := generate(t, nil, doc, "2024-01-10", "2024-01-10", ptr("2024-01-02"), sequentialIDs()).List
	herbs := findItem(t, list, "Kräuter")
	if herbs.FreshnessDays == nil || *herbs.FreshnessDays != 7 {
		t.Fatalf("freshness days = %v, want 7", herbs.FreshnessDays)
	}
	if herbs.FreshnessStatus != model.FreshnessWait {
		t.Errorf("status = %q, want wait", herbs.FreshnessStatus)
	}
	if herbs.DisplayAmount != "1 Bund" {
		t.Errorf("display = %q, want %q", herbs.DisplayAmount, "1 Bund")
	}
}

func TestGenerateMergeKeySurvivesCategoryEdit(t *testing.T) {
	doc := testDocument(t)
	newID := sequentialIDs()
	list := generate(t, nil, doc, "2024-01-08", "2024-01-14", nil, newID).List

	tomato := findItem(t, list, "Tomaten")
	updated, err := UpdateItem(list, doc, tomato.ID, ItemUpdate{CategorySet: true, CategoryID: ptr("c-dairy")}, testNow)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.CategoryName == nil || *updated.CategoryName != "Milchprodukte" {
		t.Errorf("category name = %v, want Milchprodukte", updated.CategoryName)
	}

	doc.Meals = append(doc.Meals, model.Meal{
		ID: "m4", Date: "2024-01-13", DishID: ptr("d-pasta"), Servings: 1, Status: model.MealStatusPlanned,
	})
	res := generate(t, list, doc, "2024-01-08", "2024-01-14", nil, newID)

	count := 0
	for _, item := range res.List.Items {
		if item.ProductName == "Tomaten" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d tomato items, want 1", count)
	}
	tomato = findItem(t, res.List, "Tomaten")
	if tomato.CategoryID == nil || *tomato.CategoryID != "c-dairy" {
		t.Errorf("category = %v, want c-dairy", tomato.CategoryID)
	}
	if tomato.DisplayAmount != "600 g" {
		t.Errorf("display = %q, want %q", tomato.DisplayAmount, "600 g")
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  GenerateRequest
	}{
		{"missing dates", GenerateRequest{}},
		{"reversed range", GenerateRequest{FromDate: "2024-01-14", ToDate: "2024-01-08"}},
		{"bad date", GenerateRequest{FromDate: "2024-13-01", ToDate: "2024-12-01"}},
		{"bad shopping date", GenerateRequest{FromDate: "2024-01-01", ToDate: "2024-01-02", ShoppingDate: ptr("soon")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(nil, testDocument(t), tt.req, testNow, sequentialIDs())
			if !errors.Is(err, model.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSubtractDays(t *testing.T) {
	tests := []struct {
		date string
		days int
		want string
	}{
		{"2024-01-10", 7, "2024-01-03"},
		{"2024-03-01", 1, "2024-02-29"},
		{"2024-01-01", 1, "2023-12-31"},
		{"2024-03-31", 0, "2024-03-31"},
	}
	for _, tt := range tests {
		got, err := SubtractDays(tt.date, tt.days)
		if err != nil {
			t.Fatalf("SubtractDays(%q, %d): %v", tt.date, tt.days, err)
		}
		if got != tt.want {
			t.Errorf("SubtractDays(%q, %d) = %q, want %q", tt.date, tt.days, got, tt.want)
		}
	}
}

func TestSortItems(t *testing.T) {
	items := []model.ShoppingItem{
		{ProductName: "Zwiebeln", VendorName: model.MiscVendorName, CategoryOrder: model.UncategorizedOrder},
		{ProductName: "Äpfel", VendorName: "Edeka", CategoryOrder: 1},
		{ProductName: "Brot", VendorName: "Aldi", CategoryOrder: 1},
		{ProductName: "Birnen", VendorName: "Edeka", CategoryOrder: 1},
		{ProductName: "Käse", VendorName: "Edeka", CategoryOrder: 0},
	}
	SortItems(items)

	want := []string{"Brot", "Käse", "Äpfel", "Birnen", "Zwiebeln"}
	for i, name := range want {
		if items[i].ProductName != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].ProductName, name)
		}
	}
}
