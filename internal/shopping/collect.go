package shopping

import "github.com/dukerupert/schompf/internal/model"

// Bounds on sub-dish expansion. The visited set prevents cycles but not long
// acyclic chains or wide fan-out.
const (
	DefaultMaxDepth = 16
	DefaultMaxNodes = 1000
)

// DishLookup resolves dishes by id.
type DishLookup interface {
	Dish(id string) (*model.Dish, bool)
}

// IngredientLine is one scaled ingredient produced by expanding a dish.
type IngredientLine struct {
	ProductID      *string
	ProductName    string
	Amount         *float64
	Unit           string
	Optional       bool
	SourceDishID   string
	SourceDishName string
}

// Collector expands dishes into flat ingredient lines.
type Collector struct {
	dishes    DishLookup
	maxDepth  int
	maxNodes  int
	expanded  int
	truncated int
}

func NewCollector(dishes DishLookup) *Collector {
	return &Collector{dishes: dishes, maxDepth: DefaultMaxDepth, maxNodes: DefaultMaxNodes}
}

// Truncated returns how many sub-dish references were not expanded because
// the depth or node bound was reached. The node bound applies per Collect call.
func (c *Collector) Truncated() int {
	return c.truncated
}

// Collect expands dishID and its sub-dishes, multiplying every amount by
// multiplier. visited holds the dishes on the current path: a dish already on
// the path is skipped, which breaks cycles. A dish reached through two
// different parents is expanded once per path and its amounts add up.
func (c *Collector) Collect(dishID string, multiplier float64, visited map[string]bool) []IngredientLine {
	if visited == nil {
		visited = make(map[string]bool)
	}
	c.expanded = 0
	return c.collect(dishID, multiplier, visited, false, 0)
}

func (c *Collector) collect(dishID string, multiplier float64, visited map[string]bool, optional bool, depth int) []IngredientLine {
	if visited[dishID] {
		return nil
	}
	visited[dishID] = true
	defer delete(visited, dishID)
	c.expanded++

	dish, ok := c.dishes.Dish(dishID)
	if !ok {
		return nil
	}

	lines := make([]IngredientLine, 0, len(dish.Ingredients))
	for _, ing := range dish.Ingredients {
		var amount *float64
		if ing.Amount != nil {
			v := *ing.Amount * multiplier
			amount = &v
		}
		lines = append(lines, IngredientLine{
			ProductID:      ing.ProductID,
			ProductName:    ing.ProductName,
			Amount:         amount,
			Unit:           ing.Unit,
			Optional:       ing.Optional || optional,
			SourceDishID:   dish.ID,
			SourceDishName: dish.Name,
		})
	}

	for _, sub := range dish.SubDishes {
		if depth+1 > c.maxDepth || c.expanded >= c.maxNodes {
			c.truncated++
			continue
		}
		lines = append(lines, c.collect(sub.DishID, multiplier*sub.Factor(), visited, optional || sub.Optional, depth+1)...)
	}
	return lines
}

// CollectMeal expands a meal's dish scaled by its servings, then each of the
// meal's own sub-dish selections. Every selection starts from a fresh visited
// set holding only the meal's dish, so it may include sub-dishes the main dish
// already pulled in but never the main dish itself.
func (c *Collector) CollectMeal(meal model.Meal) []IngredientLine {
	if meal.DishID == nil {
		return nil
	}
	mainID := *meal.DishID

	lines := c.Collect(mainID, meal.Servings, nil)
	for _, sub := range meal.SubDishes {
		visited := map[string]bool{mainID: true}
		c.expanded = 0
		lines = append(lines, c.collect(sub.DishID, meal.Servings*sub.Factor(), visited, sub.Optional, 1)...)
	}
	return lines
}
