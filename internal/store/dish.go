package store

import (
	"context"
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

type IngredientInput struct {
	ID          string   `json:"id"`
	ProductID   *string  `json:"productId"`
	ProductName string   `json:"productName"`
	Amount      *float64 `json:"amount" validate:"omitempty,min=0"`
	Unit        string   `json:"unit"`
	Optional    bool     `json:"optional"`
}

// SubDishInput accepts the legacy "multiplier" key as an alias for scalingFactor.
type SubDishInput struct {
	DishID        string   `json:"dishId" validate:"required"`
	ScalingFactor *float64 `json:"scalingFactor" validate:"omitempty,gt=0"`
	Multiplier    *float64 `json:"multiplier" validate:"omitempty,gt=0"`
	Optional      bool     `json:"optional"`
}

func (in SubDishInput) ref() model.SubDishRef {
	factor := 1.0
	switch {
	case in.ScalingFactor != nil && *in.ScalingFactor > 0:
		factor = *in.ScalingFactor
	case in.Multiplier != nil && *in.Multiplier > 0:
		factor = *in.Multiplier
	}
	return model.SubDishRef{DishID: in.DishID, ScalingFactor: factor, Optional: in.Optional}
}

func subDishRefs(in []SubDishInput) ([]model.SubDishRef, error) {
	refs := make([]model.SubDishRef, 0, len(in))
	for _, sub := range in {
		if sub.DishID == "" {
			return nil, invalid("sub-dish dishId is required")
		}
		refs = append(refs, sub.ref())
	}
	return refs, nil
}

// DishInput is a create or partial update. Nil slices leave ingredients and
// sub-dishes untouched on update.
type DishInput struct {
	Name            *string                `json:"name" validate:"omitempty,max=200"`
	Type            *model.DishType        `json:"type"`
	RecipeURL       model.Nullable[string] `json:"recipeUrl"`
	Recipe          model.Nullable[string] `json:"recipe"`
	Published       *bool                  `json:"published"`
	DefaultServings *int                   `json:"defaultServings" validate:"omitempty,min=1,max=100"`
	Ingredients     []IngredientInput      `json:"ingredients" validate:"omitempty,dive"`
	SubDishes       []SubDishInput         `json:"subDishes" validate:"omitempty,dive"`
}

// DishFilter narrows List. Search matches a case-insensitive substring of the name.
type DishFilter struct {
	Search string
	Type   model.DishType
}

type DishStore struct {
	docs *Store
}

func NewDishStore(docs *Store) *DishStore {
	return &DishStore{docs: docs}
}

// ingredients assigns ids to new ingredients and fills in missing product
// names from the catalog.
func ingredients(doc *model.Document, in []IngredientInput) []model.Ingredient {
	out := make([]model.Ingredient, 0, len(in))
	for _, ing := range in {
		id := ing.ID
		if id == "" {
			id = newID()
		}
		productID := emptyToNil(ing.ProductID)
		name := strings.TrimSpace(ing.ProductName)
		if name == "" && productID != nil {
			if p, ok := doc.Product(*productID); ok {
				name = p.Name
			}
		}
		var amount *float64
		if ing.Amount != nil && *ing.Amount > 0 {
			v := *ing.Amount
			amount = &v
		}
		out = append(out, model.Ingredient{
			ID:          id,
			ProductID:   productID,
			ProductName: name,
			Amount:      amount,
			Unit:        strings.TrimSpace(ing.Unit),
			Optional:    ing.Optional,
		})
	}
	return out
}

func (s *DishStore) List(ctx context.Context, f DishFilter) ([]model.Dish, error) {
	dishes := []model.Dish{}
	search := strings.ToLower(f.Search)
	err := s.docs.View(ctx, func(doc *model.Document) error {
		for _, d := range doc.Dishes {
			if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
				continue
			}
			if f.Type != "" && d.Type != f.Type {
				continue
			}
			dishes = append(dishes, d)
		}
		return nil
	})
	return dishes, err
}

func (s *DishStore) Get(ctx context.Context, id string) (*model.Dish, error) {
	var dish model.Dish
	err := s.docs.View(ctx, func(doc *model.Document) error {
		d, ok := doc.Dish(id)
		if !ok {
			return notFound("dish", id)
		}
		dish = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (s *DishStore) Create(ctx context.Context, in DishInput) (*model.Dish, error) {
	name, err := requiredName(in.Name, "name")
	if err != nil {
		return nil, err
	}
	dishType := model.DishTypeDish
	if in.Type != nil && *in.Type != "" {
		if !in.Type.Valid() {
			return nil, invalid("unknown dish type %q", *in.Type)
		}
		dishType = *in.Type
	}
	subDishes, err := subDishRefs(in.SubDishes)
	if err != nil {
		return nil, err
	}

	var dish model.Dish
	err = s.docs.Update(ctx, func(doc *model.Document) error {
		servings := doc.CurrentSettings().DefaultServings
		if in.DefaultServings != nil && *in.DefaultServings > 0 {
			servings = *in.DefaultServings
		}
		published := true
		if in.Published != nil {
			published = *in.Published
		}

		t := now()
		dish = model.Dish{
			ID:              newID(),
			Name:            name,
			Type:            dishType,
			RecipeURL:       emptyToNil(in.RecipeURL.Value),
			Recipe:          emptyToNil(in.Recipe.Value),
			Published:       published,
			DefaultServings: servings,
			Ingredients:     ingredients(doc, in.Ingredients),
			SubDishes:       subDishes,
			CreatedAt:       t,
			UpdatedAt:       t,
		}
		doc.Dishes = append(doc.Dishes, dish)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (s *DishStore) Update(ctx context.Context, id string, in DishInput) (*model.Dish, error) {
	if in.Type != nil && !in.Type.Valid() {
		return nil, invalid("unknown dish type %q", *in.Type)
	}
	var subDishes []model.SubDishRef
	if in.SubDishes != nil {
		var err error
		if subDishes, err = subDishRefs(in.SubDishes); err != nil {
			return nil, err
		}
	}

	var dish model.Dish
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		d, ok := doc.Dish(id)
		if !ok {
			return notFound("dish", id)
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return invalid("name must not be empty")
			}
			d.Name = name
		}
		if in.Type != nil {
			d.Type = *in.Type
		}
		if in.RecipeURL.Set {
			d.RecipeURL = emptyToNil(in.RecipeURL.Value)
		}
		if in.Recipe.Set {
			d.Recipe = emptyToNil(in.Recipe.Value)
		}
		if in.Published != nil {
			d.Published = *in.Published
		}
		if in.DefaultServings != nil {
			d.DefaultServings = *in.DefaultServings
		}
		if in.Ingredients != nil {
			d.Ingredients = ingredients(doc, in.Ingredients)
		}
		if in.SubDishes != nil {
			d.SubDishes = subDishes
		}
		d.UpdatedAt = now()
		dish = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (s *DishStore) Delete(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Dishes, func(d *model.Dish) bool { return d.ID == id })
		if i == -1 {
			return notFound("dish", id)
		}
		doc.Dishes = append(doc.Dishes[:i], doc.Dishes[i+1:]...)
		return nil
	})
}
