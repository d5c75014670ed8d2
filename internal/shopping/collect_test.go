package shopping

import (
	"fmt"
	"testing"

	"github.com/dukerupert/schompf/internal/model"
)

func sumAmounts(lines []IngredientLine, name string) float64 {
	var total float64
	for _, l := range lines {
		if l.ProductName == name && l.Amount != nil {
			total += *l.Amount
		}
	}
	return total
}

func TestCollectScalesAndStopsAtCycle(t *testing.T) {
	doc := testDocument(t)
	c := NewCollector(doc)

	lines := c.Collect("d-pasta", 2, nil)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %+v", len(lines), lines)
	}
	if got := sumAmounts(lines, "Tomaten"); got != 400 {
		t.Errorf("tomatoes = %v, want 400", got)
	}
	if got := sumAmounts(lines, "Milch"); got != 100 {
		t.Errorf("milk = %v, want 100", got)
	}
	for _, l := range lines {
		if l.ProductName == "Salz" && l.Amount != nil {
			t.Errorf("salt amount = %v, want nil", *l.Amount)
		}
		if l.ProductName == "Milch" && l.SourceDishID != "d-sauce" {
			t.Errorf("milk source dish = %q, want d-sauce", l.SourceDishID)
		}
	}
	if c.Truncated() != 0 {
		t.Errorf("truncated = %d, want 0", c.Truncated())
	}
}

func TestCollectSelfReference(t *testing.T) {
	doc := model.NewDocument()
	doc.Dishes = []model.Dish{{
		ID:          "d-loop",
		Name:        "Loop",
		Ingredients: []model.Ingredient{ingredient("", "Mehl", 100, "g")},
		SubDishes:   []model.SubDishRef{{DishID: "d-loop", ScalingFactor: 2}},
	}}

	lines := NewCollector(doc).Collect("d-loop", 1, nil)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
}

func TestCollectDiamondExpandsPerPath(t *testing.T) {
	doc := model.NewDocument()
	doc.Dishes = []model.Dish{
		{ID: "a", Name: "A", SubDishes: []model.SubDishRef{{DishID: "b"}, {DishID: "c"}}},
		{ID: "b", Name: "B", SubDishes: []model.SubDishRef{{DishID: "d"}}},
		{ID: "c", Name: "C", SubDishes: []model.SubDishRef{{DishID: "d"}}},
		{ID: "d", Name: "D", Ingredients: []model.Ingredient{ingredient("", "Mehl", 100, "g")}},
	}

	lines := NewCollector(doc).Collect("a", 1, nil)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := sumAmounts(lines, "Mehl"); got != 200 {
		t.Errorf("flour = %v, want 200", got)
	}
}

func TestCollectDepthBound(t *testing.T) {
	doc := model.NewDocument()
	const chain = 20
	for i := 0; i < chain; i++ {
		d := model.Dish{
			ID:          fmt.Sprintf("d%d", i),
			Name:        fmt.Sprintf("Dish %d", i),
			Ingredients: []model.Ingredient{ingredient("", "Mehl", 1, "g")},
		}
		if i+1 < chain {
			d.SubDishes = []model.SubDishRef{{DishID: fmt.Sprintf("d%d", i+1)}}
		}
		doc.Dishes = append(doc.Dishes, d)
	}

	c := NewCollector(doc)
	lines := c.Collect("d0", 1, nil)
	if len(lines) != DefaultMaxDepth+1 {
		t.Errorf("got %d lines, want %d", len(lines), DefaultMaxDepth+1)
	}
	if c.Truncated() != 1 {
		t.Errorf("truncated = %d, want 1", c.Truncated())
	}
}

func TestCollectUnknownDish(t *testing.T) {
	if lines := NewCollector(model.NewDocument()).Collect("missing", 1, nil); len(lines) != 0 {
		t.Errorf("got %d lines, want 0", len(lines))
	}
}

func TestCollectMealSubDishes(t *testing.T) {
	doc := testDocument(t)
	meal := model.Meal{
		ID:        "m",
		DishID:    ptr("d-pasta"),
		Servings:  2,
		SubDishes: []model.SubDishRef{{DishID: "d-sauce", ScalingFactor: 1, Optional: true}},
	}

	lines := NewCollector(doc).CollectMeal(meal)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %+v", len(lines), lines)
	}
	if got := sumAmounts(lines, "Milch"); got != 300 {
		t.Errorf("milk = %v, want 300", got)
	}
	last := lines[len(lines)-1]
	if last.ProductName != "Milch" || !last.Optional {
		t.Errorf("last line = %+v, want optional milk", last)
	}
	if got := sumAmounts(lines, "Tomaten"); got != 400 {
		t.Errorf("tomatoes = %v, want 400 (main dish not re-entered)", got)
	}
}

func TestCollectMealPlaceholder(t *testing.T) {
	if lines := NewCollector(testDocument(t)).CollectMeal(model.Meal{ID: "m"}); lines != nil {
		t.Errorf("got %d lines, want none", len(lines))
	}
}
