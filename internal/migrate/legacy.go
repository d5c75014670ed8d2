package migrate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/schompf/internal/model"
)

// The menu-only format used before vendors, categories and meals existed.
type legacyDocument struct {
	Menu struct {
		Dishes []legacyDish `json:"dishes"`
	} `json:"menu"`
}

type legacyDish struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Recipe         *string            `json:"recipe"`
	StandardAmount int                `json:"standardAmount"`
	Ingredients    []legacyIngredient `json:"ingredients"`
}

type legacyIngredient struct {
	Name   string `json:"name"`
	Amount *struct {
		Value *float64 `json:"value"`
		Unit  *string  `json:"unit"`
	} `json:"amount"`
	Optional bool `json:"optional"`
}

const (
	legacyDefaultUnit     = "Stück"
	legacyFreshnessDays   = 7
	legacyDefaultServings = 2
)

type ImportReport struct {
	Products      int `json:"products"`
	Dishes        int `json:"dishes"`
	SkippedDishes int `json:"skippedDishes"`
}

func (r ImportReport) String() string {
	return fmt.Sprintf("%d products extracted, %d dishes imported, %d skipped without a name",
		r.Products, r.Dishes, r.SkippedDishes)
}

// ImportLegacy converts a menu-only document into a fresh document. Every
// distinct ingredient name becomes an uncategorized product; dishes without
// a title are skipped. The recipe link of the old format becomes recipeUrl.
func ImportLegacy(data []byte, now time.Time, newID func() string) (*model.Document, ImportReport, error) {
	var rep ImportReport
	var old legacyDocument
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, rep, fmt.Errorf("%w: decode legacy document: %v", model.ErrValidation, err)
	}

	doc := model.NewDocument()
	productIDs := map[string]string{}

	for _, d := range old.Menu.Dishes {
		title := strings.TrimSpace(d.Title)
		if title == "" {
			rep.SkippedDishes++
			continue
		}

		ingredients := []model.Ingredient{}
		for _, ing := range d.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" {
				continue
			}

			var amount *float64
			unit := ""
			if ing.Amount != nil {
				if ing.Amount.Value != nil && *ing.Amount.Value > 0 {
					v := *ing.Amount.Value
					amount = &v
				}
				if ing.Amount.Unit != nil {
					unit = *ing.Amount.Unit
				}
			}

			id, ok := productIDs[name]
			if !ok {
				id = newID()
				productIDs[name] = id
				defaultUnit := unit
				if defaultUnit == "" {
					defaultUnit = legacyDefaultUnit
				}
				freshness := legacyFreshnessDays
				doc.Products = append(doc.Products, model.Product{
					ID:            id,
					Name:          name,
					DefaultUnit:   &defaultUnit,
					FreshnessDays: &freshness,
					CreatedAt:     now,
					UpdatedAt:     now,
				})
			}

			productID := id
			ingredients = append(ingredients, model.Ingredient{
				ID:          newID(),
				ProductID:   &productID,
				ProductName: name,
				Amount:      amount,
				Unit:        unit,
				Optional:    ing.Optional,
			})
		}

		id := d.ID
		if id == "" {
			id = newID()
		}
		servings := d.StandardAmount
		if servings <= 0 {
			servings = legacyDefaultServings
		}
		var recipeURL *string
		if d.Recipe != nil && strings.TrimSpace(*d.Recipe) != "" {
			u := strings.TrimSpace(*d.Recipe)
			recipeURL = &u
		}

		doc.Dishes = append(doc.Dishes, model.Dish{
			ID:              id,
			Name:            title,
			Type:            model.DishTypeDish,
			RecipeURL:       recipeURL,
			Published:       true,
			DefaultServings: servings,
			Ingredients:     ingredients,
			SubDishes:       []model.SubDishRef{},
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	rep.Products = len(doc.Products)
	rep.Dishes = len(doc.Dishes)
	return doc, rep, nil
}
