package store

import (
	"context"
	"strings"
	"time"

	"github.com/dukerupert/schompf/internal/model"
)

// Slot fallbacks for meals whose slot is not configured.
const (
	defaultSlotName  = "Mahlzeit"
	defaultSlotOrder = 99
)

type MealInput struct {
	Date      *string                `json:"date" validate:"omitempty,datetime=2006-01-02"`
	SlotID    model.Nullable[string] `json:"slotId"`
	SlotName  *string                `json:"slotName"`
	SlotOrder *int                   `json:"slotOrder"`
	DishID    model.Nullable[string] `json:"dishId"`
	DishName  model.Nullable[string] `json:"dishName"`
	Servings  *float64               `json:"servings" validate:"omitempty,gt=0"`
	Notes     model.Nullable[string] `json:"notes"`
	SubDishes []SubDishInput         `json:"subDishes" validate:"omitempty,dive"`
	Status    *model.MealStatus      `json:"status"`
}

type MealStore struct {
	docs *Store
}

func NewMealStore(docs *Store) *MealStore {
	return &MealStore{docs: docs}
}

// List returns meals with from <= date <= to ordered by date and slot. Empty
// bounds are open.
func (s *MealStore) List(ctx context.Context, from, to string) ([]model.Meal, error) {
	meals := []model.Meal{}
	err := s.docs.View(ctx, func(doc *model.Document) error {
		meals = append(meals, doc.MealsInRange(from, to)...)
		return nil
	})
	return meals, err
}

func (s *MealStore) ListByDate(ctx context.Context, date string) ([]model.Meal, error) {
	return s.List(ctx, date, date)
}

func (s *MealStore) Get(ctx context.Context, id string) (*model.Meal, error) {
	var meal model.Meal
	err := s.docs.View(ctx, func(doc *model.Document) error {
		m, ok := doc.Meal(id)
		if !ok {
			return notFound("meal", id)
		}
		meal = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// newMeal builds a planned meal from in. Slot name and order come from the
// configured slot unless given; servings fall back to the dish's default and
// then the settings default.
func newMeal(doc *model.Document, in MealInput, dish *model.Dish) model.Meal {
	settings := doc.CurrentSettings()
	slotID := emptyToNil(in.SlotID.Value)

	slotName, slotOrder := defaultSlotName, defaultSlotOrder
	if slotID != nil {
		if slot, ok := settings.Slot(*slotID); ok {
			slotName, slotOrder = slot.Name, slot.Order
		}
	}
	if in.SlotName != nil && *in.SlotName != "" {
		slotName = *in.SlotName
	}
	if in.SlotOrder != nil {
		slotOrder = *in.SlotOrder
	}

	var dishID, dishName *string
	if dish != nil {
		id, name := dish.ID, dish.Name
		dishID, dishName = &id, &name
	}
	if n := emptyToNil(in.DishName.Value); n != nil {
		dishName = n
	}

	servings := float64(settings.DefaultServings)
	if dish != nil && dish.DefaultServings > 0 {
		servings = float64(dish.DefaultServings)
	}
	if in.Servings != nil && *in.Servings > 0 {
		servings = *in.Servings
	}

	subDishes := make([]model.SubDishRef, 0, len(in.SubDishes))
	for _, sub := range in.SubDishes {
		if sub.DishID != "" {
			subDishes = append(subDishes, sub.ref())
		}
	}

	t := now()
	return model.Meal{
		ID:        newID(),
		Date:      *in.Date,
		SlotID:    slotID,
		SlotName:  slotName,
		SlotOrder: slotOrder,
		DishID:    dishID,
		DishName:  dishName,
		Servings:  servings,
		Notes:     emptyToNil(in.Notes.Value),
		SubDishes: subDishes,
		Status:    model.MealStatusPlanned,
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// Create schedules a meal. A dishId that does not resolve is rejected.
func (s *MealStore) Create(ctx context.Context, in MealInput) (*model.Meal, error) {
	if in.Date == nil || strings.TrimSpace(*in.Date) == "" {
		return nil, invalid("date is required")
	}

	var meal model.Meal
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		var dish *model.Dish
		if id := emptyToNil(in.DishID.Value); id != nil {
			d, ok := doc.Dish(*id)
			if !ok {
				return invalid("dish %q does not exist", *id)
			}
			dish = d
		}
		meal = newMeal(doc, in, dish)
		doc.Meals = append(doc.Meals, meal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// bulkEntryValid reports whether a bulk entry has a YYYY-MM-DD date and, if
// servings are given, a positive count.
func bulkEntryValid(in MealInput) bool {
	if in.Date == nil {
		return false
	}
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(*in.Date)); err != nil {
		return false
	}
	return in.Servings == nil || *in.Servings > 0
}

// BulkCreate schedules several meals at once. Entries without a valid date or
// with non-positive servings are skipped; unknown dishes leave the meal as a
// placeholder.
func (s *MealStore) BulkCreate(ctx context.Context, in []MealInput) ([]model.Meal, error) {
	created := []model.Meal{}
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		for _, entry := range in {
			if !bulkEntryValid(entry) {
				continue
			}
			var dish *model.Dish
			if id := emptyToNil(entry.DishID.Value); id != nil {
				if d, ok := doc.Dish(*id); ok {
					dish = d
				}
			}
			meal := newMeal(doc, entry, dish)
			doc.Meals = append(doc.Meals, meal)
			created = append(created, meal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *MealStore) Update(ctx context.Context, id string, in MealInput) (*model.Meal, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, invalid("unknown meal status %q", *in.Status)
	}

	var meal model.Meal
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		m, ok := doc.Meal(id)
		if !ok {
			return notFound("meal", id)
		}

		if in.DishID.Set {
			dishID := emptyToNil(in.DishID.Value)
			var dishName *string
			if dishID != nil {
				d, ok := doc.Dish(*dishID)
				if !ok {
					return invalid("dish %q does not exist", *dishID)
				}
				name := d.Name
				dishName = &name
			}
			m.DishID = dishID
			if !in.DishName.Set {
				m.DishName = dishName
			}
		}
		if in.DishName.Set {
			m.DishName = emptyToNil(in.DishName.Value)
		}
		if in.Date != nil && *in.Date != "" {
			m.Date = *in.Date
		}
		if in.SlotID.Set {
			m.SlotID = emptyToNil(in.SlotID.Value)
		}
		if in.SlotName != nil {
			m.SlotName = *in.SlotName
		}
		if in.SlotOrder != nil {
			m.SlotOrder = *in.SlotOrder
		}
		if in.Servings != nil {
			m.Servings = *in.Servings
		}
		if in.Notes.Set {
			m.Notes = emptyToNil(in.Notes.Value)
		}
		if in.SubDishes != nil {
			refs, err := subDishRefs(in.SubDishes)
			if err != nil {
				return err
			}
			m.SubDishes = refs
		}
		if in.Status != nil {
			m.Status = *in.Status
		} else if m.Status == "" {
			m.Status = model.MealStatusPlanned
		}
		m.UpdatedAt = now()
		meal = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealStore) Delete(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Meals, func(m *model.Meal) bool { return m.ID == id })
		if i == -1 {
			return notFound("meal", id)
		}
		doc.Meals = append(doc.Meals[:i], doc.Meals[i+1:]...)
		return nil
	})
}

// Commit marks the meals as committed so they are no longer shopped for.
// Unknown ids are ignored; the updated meals are returned.
func (s *MealStore) Commit(ctx context.Context, ids []string) ([]model.Meal, error) {
	updated := []model.Meal{}
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		t := now()
		for _, id := range ids {
			m, ok := doc.Meal(id)
			if !ok {
				continue
			}
			m.Status = model.MealStatusCommitted
			m.UpdatedAt = t
			updated = append(updated, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MealStore) MarkPrepared(ctx context.Context, id string) (*model.Meal, error) {
	return s.setStatus(ctx, id, model.MealStatusPrepared)
}

func (s *MealStore) ResetToCommitted(ctx context.Context, id string) (*model.Meal, error) {
	return s.setStatus(ctx, id, model.MealStatusCommitted)
}

func (s *MealStore) setStatus(ctx context.Context, id string, status model.MealStatus) (*model.Meal, error) {
	var meal model.Meal
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		m, ok := doc.Meal(id)
		if !ok {
			return notFound("meal", id)
		}
		m.Status = status
		m.UpdatedAt = now()
		meal = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}
