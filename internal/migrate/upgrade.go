// Package migrate converts stored documents written by earlier versions of
// the application into the current layout.
package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dukerupert/schompf/internal/model"
)

// Report counts the conversions Upgrade applied.
type Report struct {
	ItemsConverted    int `json:"itemsConverted"`
	DishesPublished   int `json:"dishesPublished"`
	DishesRecipe      int `json:"dishesRecipe"`
	SubDishesRescaled int `json:"subDishesRescaled"`
}

// Changed reports whether the document was modified.
func (r Report) Changed() bool {
	return r.ItemsConverted+r.DishesPublished+r.DishesRecipe+r.SubDishesRescaled > 0
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("items_converted", r.ItemsConverted),
		slog.Int("dishes_published", r.DishesPublished),
		slog.Int("dishes_recipe", r.DishesRecipe),
		slog.Int("sub_dishes_rescaled", r.SubDishesRescaled),
	)
}

func (r Report) String() string {
	return fmt.Sprintf("%d shopping items converted, %d dishes published, %d dishes given a recipe field, %d sub-dish references rescaled",
		r.ItemsConverted, r.DishesPublished, r.DishesRecipe, r.SubDishesRescaled)
}

type object = map[string]any

// Upgrade rewrites data in place of the legacy fields:
//   - shopping items with "sources" and no "amounts" get amounts whose
//     sourceType follows the legacy "manual" flag
//   - dishes without "published" become published
//   - dishes without "recipe" get an explicit null
//   - dish sub-dish references keyed by "multiplier" move to "scalingFactor"
//
// Unknown fields are preserved. When nothing changes the input is returned
// unmodified.
func Upgrade(data []byte) ([]byte, Report, error) {
	var rep Report
	if len(bytes.TrimSpace(data)) == 0 {
		return data, rep, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc object
	if err := dec.Decode(&doc); err != nil {
		return nil, rep, fmt.Errorf("%w: decode document: %v", model.ErrValidation, err)
	}

	for _, dish := range objects(doc["dishes"]) {
		if _, ok := dish["published"]; !ok {
			dish["published"] = true
			rep.DishesPublished++
		}
		if _, ok := dish["recipe"]; !ok {
			dish["recipe"] = nil
			rep.DishesRecipe++
		}
		for _, sub := range objects(dish["subDishes"]) {
			m, ok := sub["multiplier"]
			if !ok {
				continue
			}
			if _, has := sub["scalingFactor"]; !has {
				sub["scalingFactor"] = m
			}
			delete(sub, "multiplier")
			rep.SubDishesRescaled++
		}
	}

	if list, ok := doc["shoppingList"].(object); ok {
		for _, item := range objects(list["items"]) {
			if convertSources(item) {
				rep.ItemsConverted++
			}
		}
	}

	if !rep.Changed() {
		return data, rep, nil
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, rep, fmt.Errorf("encode document: %w", err)
	}
	return out, rep, nil
}

func convertSources(item object) bool {
	sources, hasSources := item["sources"]
	if _, hasAmounts := item["amounts"]; hasAmounts {
		if hasSources {
			delete(item, "sources")
			return true
		}
		return false
	}
	if !hasSources {
		item["amounts"] = []any{}
		return true
	}

	amounts := []any{}
	for _, src := range objects(sources) {
		entry := make(object, len(src))
		for k, v := range src {
			if k != "manual" {
				entry[k] = v
			}
		}
		if manual, _ := src["manual"].(bool); manual {
			entry["sourceType"] = string(model.SourceManual)
		} else {
			entry["sourceType"] = string(model.SourceMeal)
		}
		amounts = append(amounts, entry)
	}
	item["amounts"] = amounts
	delete(item, "sources")
	return true
}

// objects returns the JSON objects in v when v is an array, skipping other
// element kinds.
func objects(v any) []object {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]object, 0, len(arr))
	for _, el := range arr {
		if o, ok := el.(object); ok {
			out = append(out, o)
		}
	}
	return out
}
